package completion

import "testing"

func TestStructuralTableRefAnalyzer_SimpleFrom(t *testing.T) {
	refs := NewStructuralTableRefAnalyzer("SELECT * FROM users WHERE id = 1")
	all := refs.TableAliasesFromQuery()
	if alias, ok := all["users"]; !ok || alias != "" {
		t.Fatalf("all = %v, want users with no alias", all)
	}
}

func TestStructuralTableRefAnalyzer_FromWithAlias(t *testing.T) {
	refs := NewStructuralTableRefAnalyzer("SELECT u.id FROM users u WHERE u.active")
	all := refs.TableAliasesFromQuery()
	if alias, ok := all["users"]; !ok || alias != "u" {
		t.Fatalf("all = %v, want users->u", all)
	}
}

func TestStructuralTableRefAnalyzer_JoinClause(t *testing.T) {
	refs := NewStructuralTableRefAnalyzer("SELECT * FROM orders o JOIN users u ON o.user_id = u.id")
	all := refs.TableAliasesFromQuery()
	if all["orders"] != "o" || all["users"] != "u" {
		t.Fatalf("all = %v, want orders->o, users->u", all)
	}
}

func TestStructuralTableRefAnalyzer_QualifiedName(t *testing.T) {
	refs := NewStructuralTableRefAnalyzer("SELECT * FROM public.users u")
	all := refs.TableAliasesFromQuery()
	if alias, ok := all["public.users"]; !ok || alias != "u" {
		t.Fatalf("all = %v, want public.users->u", all)
	}
}

func TestStructuralTableRefAnalyzer_PrefixFilter(t *testing.T) {
	refs := NewStructuralTableRefAnalyzer("SELECT * FROM orders o JOIN users u ON o.user_id = u.id")

	filtered := refs.TableAliases("ord")
	if len(filtered) != 1 {
		t.Fatalf("filtered = %v, want only orders", filtered)
	}
	if _, ok := filtered["orders"]; !ok {
		t.Fatalf("filtered = %v, want orders", filtered)
	}
}

func TestStructuralTableRefAnalyzer_UnparsableInputYieldsEmptyMap(t *testing.T) {
	refs := NewStructuralTableRefAnalyzer("SELECT * FROM")
	all := refs.TableAliasesFromQuery()
	if len(all) != 0 {
		t.Fatalf("all = %v, want empty map for an unparsable partial statement", all)
	}
}

func TestNewTableReferenceAnalyzer_SelectsImplementation(t *testing.T) {
	pattern := NewTableReferenceAnalyzer("SELECT * FROM users u", false)
	if _, ok := pattern.(*patternTableRefAnalyzer); !ok {
		t.Fatalf("useStructural=false should select the pattern analyzer, got %T", pattern)
	}

	structural := NewTableReferenceAnalyzer("SELECT * FROM users u", true)
	if _, ok := structural.(*structuralTableRefAnalyzer); !ok {
		t.Fatalf("useStructural=true should select the structural analyzer, got %T", structural)
	}
}
