package completion

import (
	"context"
	"testing"

	"github.com/sadopc/gotermsql/internal/catalog"
	"github.com/sadopc/gotermsql/internal/dialect"
)

func TestWantsWhereQualification(t *testing.T) {
	cls := ClassifierOutput{Word: WordDetectorOutput{PrevKeyWord: "WHERE"}}
	if !wantsWhereQualification(cls) {
		t.Error("expected WHERE with an empty word part to want qualification")
	}

	cls.Word.WordPart = "st"
	if wantsWhereQualification(cls) {
		t.Error("a non-empty word part should never want auto-qualification")
	}

	cls2 := ClassifierOutput{Word: WordDetectorOutput{PrevKeyWord: "SELECT"}}
	if wantsWhereQualification(cls2) {
		t.Error("SELECT is not a qualification-triggering keyword")
	}
}

func TestIsEntityCandidate(t *testing.T) {
	tctx := newTestContext(t, "postgres")
	ctx := context.Background()
	kids, err := tctx.Navigator.Children(ctx, tctx.ExecContext.SelectedSchema)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	var usersTable catalog.Node
	for _, k := range kids {
		if k.Name() == "users" {
			usersTable = k
		}
	}
	if usersTable == nil {
		t.Fatal("expected a 'users' table node in the fixture schema")
	}
	if !isEntityCandidate(usersTable) {
		t.Error("a table node should satisfy isEntityCandidate")
	}
}

func TestAliasInjectionApplies(t *testing.T) {
	pg := dialect.For("postgres")
	cfg := Config{AliasInsertMode: AliasInsertPlain}

	fromCls := ClassifierOutput{Word: WordDetectorOutput{PrevKeyWord: "FROM"}}
	if !aliasInjectionApplies(fromCls, cfg, pg) {
		t.Error("expected alias injection after FROM")
	}

	noneCfg := Config{AliasInsertMode: AliasInsertNone}
	if aliasInjectionApplies(fromCls, noneCfg, pg) {
		t.Error("AliasInsertNone must suppress injection regardless of keyword")
	}

	selectCls := ClassifierOutput{Word: WordDetectorOutput{PrevKeyWord: "SELECT"}}
	if aliasInjectionApplies(selectCls, cfg, pg) {
		t.Error("alias injection should not apply after SELECT")
	}
}

func TestFullyQualifiedName(t *testing.T) {
	tctx := newTestContext(t, "postgres")
	ctx := context.Background()
	kids, err := tctx.Navigator.Children(ctx, tctx.ExecContext.SelectedSchema)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	var usersTable catalog.Node
	for _, k := range kids {
		if k.Name() == "users" {
			usersTable = k
		}
	}
	if usersTable == nil {
		t.Fatal("expected a 'users' table node")
	}

	// The ancestor chain is dataSource("postgres") -> catalog("app") ->
	// schema("public") -> table("users"); fullyQualifiedName drops only the
	// data-source root's own name, keeping catalog and schema.
	got := fullyQualifiedName(usersTable, tctx.Dialect)
	want := "app.public.users"
	if got != want {
		t.Fatalf("fullyQualifiedName = %q, want %q", got, want)
	}
}

func TestOwnerAliasOf(t *testing.T) {
	tctx := newTestContext(t, "postgres")
	ctx := context.Background()
	kids, err := tctx.Navigator.Children(ctx, tctx.ExecContext.SelectedSchema)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	var usersTable catalog.Node
	for _, k := range kids {
		if k.Name() == "users" {
			usersTable = k
		}
	}

	refs := NewPatternTableRefAnalyzer("SELECT * FROM users u WHERE")
	if got := ownerAliasOf(usersTable, refs); got != "u" {
		t.Fatalf("ownerAliasOf = %q, want u", got)
	}

	bareRefs := NewPatternTableRefAnalyzer("SELECT * FROM users WHERE")
	if got := ownerAliasOf(usersTable, bareRefs); got != "users" {
		t.Fatalf("ownerAliasOf = %q, want users (falls back to the bare table name)", got)
	}

	noRefs := NewPatternTableRefAnalyzer("SELECT 1")
	if got := ownerAliasOf(usersTable, noRefs); got != "" {
		t.Fatalf("ownerAliasOf = %q, want empty when the container isn't referenced", got)
	}
}
