package completion

import "testing"

func TestPatternTableRefAnalyzer_SimpleFrom(t *testing.T) {
	refs := NewPatternTableRefAnalyzer("SELECT * FROM users WHERE id = 1")
	all := refs.TableAliasesFromQuery()
	if alias, ok := all["users"]; !ok || alias != "" {
		t.Fatalf("all = %v, want users with no alias", all)
	}
}

func TestPatternTableRefAnalyzer_FromWithAlias(t *testing.T) {
	refs := NewPatternTableRefAnalyzer("SELECT u.id FROM users u WHERE u.active")
	all := refs.TableAliasesFromQuery()
	if alias, ok := all["users"]; !ok || alias != "u" {
		t.Fatalf("all = %v, want users->u", all)
	}
}

func TestPatternTableRefAnalyzer_FromWithAsAlias(t *testing.T) {
	refs := NewPatternTableRefAnalyzer("SELECT * FROM orders AS o")
	all := refs.TableAliasesFromQuery()
	if alias, ok := all["orders"]; !ok || alias != "o" {
		t.Fatalf("all = %v, want orders->o", all)
	}
}

func TestPatternTableRefAnalyzer_JoinClause(t *testing.T) {
	refs := NewPatternTableRefAnalyzer("SELECT * FROM orders o JOIN users u ON o.user_id = u.id")
	all := refs.TableAliasesFromQuery()
	if len(all) != 2 {
		t.Fatalf("all = %v, want 2 entries", all)
	}
	if all["orders"] != "o" || all["users"] != "u" {
		t.Fatalf("all = %v, want orders->o, users->u", all)
	}
}

func TestPatternTableRefAnalyzer_DoesNotMistakeWhereForAlias(t *testing.T) {
	refs := NewPatternTableRefAnalyzer("SELECT * FROM users WHERE active = true")
	all := refs.TableAliasesFromQuery()
	if alias := all["users"]; alias != "" {
		t.Fatalf("alias = %q, want empty (WHERE must not be treated as an alias)", alias)
	}
}

func TestPatternTableRefAnalyzer_UpdateAndInto(t *testing.T) {
	refs := NewPatternTableRefAnalyzer("UPDATE users SET active = false")
	if _, ok := refs.TableAliasesFromQuery()["users"]; !ok {
		t.Fatal("expected UPDATE target to be tracked")
	}

	refs2 := NewPatternTableRefAnalyzer("INSERT INTO orders (id, user_id) VALUES (1, 2)")
	if _, ok := refs2.TableAliasesFromQuery()["orders"]; !ok {
		t.Fatal("expected INSERT INTO target to be tracked")
	}
}

func TestPatternTableRefAnalyzer_TableAliasesPrefixFilter(t *testing.T) {
	refs := NewPatternTableRefAnalyzer("SELECT * FROM orders o JOIN users u ON o.user_id = u.id")

	filtered := refs.TableAliases("ord")
	if len(filtered) != 1 {
		t.Fatalf("filtered = %v, want only orders", filtered)
	}
	if _, ok := filtered["orders"]; !ok {
		t.Fatalf("filtered = %v, want orders", filtered)
	}

	all := refs.TableAliases("")
	if len(all) != 2 {
		t.Fatalf("TableAliases(\"\") = %v, want all 2 entries", all)
	}
}

func TestPatternTableRefAnalyzer_QualifiedName(t *testing.T) {
	refs := NewPatternTableRefAnalyzer("SELECT * FROM public.users u")
	all := refs.TableAliasesFromQuery()
	if alias, ok := all["public.users"]; !ok || alias != "u" {
		t.Fatalf("all = %v, want public.users->u", all)
	}
}
