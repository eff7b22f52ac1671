package completion

import (
	"testing"

	"github.com/sadopc/gotermsql/internal/dialect"
)

type fakeRefs struct {
	aliases map[string]string
}

func (f fakeRefs) TableAliases(prefix string) map[string]string { return f.aliases }
func (f fakeRefs) TableAliasesFromQuery() map[string]string     { return f.aliases }
func (f fakeRefs) OrderedTableNames() []string {
	names := make([]string, 0, len(f.aliases))
	for n := range f.aliases {
		names = append(names, n)
	}
	return names
}

func TestApplyInsertCase(t *testing.T) {
	cases := []struct {
		mode InsertCase
		in   string
		want string
	}{
		{InsertCaseUpper, "select", "SELECT"},
		{InsertCaseLower, "SELECT", "select"},
		{InsertCaseAsTyped, "SeLeCt", "SeLeCt"},
	}
	for _, tc := range cases {
		if got := applyInsertCase(tc.in, tc.mode); got != tc.want {
			t.Errorf("applyInsertCase(%q, %v) = %q, want %q", tc.in, tc.mode, got, tc.want)
		}
	}
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"users":      "U",
		"order_item": "OI",
		"my-table":   "MT",
		"Foo Bar":    "FB",
		"":           "",
	}
	for in, want := range cases {
		if got := initials(in); got != want {
			t.Errorf("initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateAlias_SuffixesOnCollision(t *testing.T) {
	dlt := dialect.For("postgres")
	refs := fakeRefs{aliases: map[string]string{}}
	used := map[string]bool{"u": true}

	alias := generateAlias("users", used, dlt, refs)
	if alias != "U2" {
		t.Fatalf("generateAlias = %q, want U2 (U already used)", alias)
	}
}

func TestGenerateAlias_AvoidsKeywords(t *testing.T) {
	dlt := dialect.For("postgres")
	refs := fakeRefs{aliases: map[string]string{}}
	used := map[string]bool{}

	// initials("a_n_d") == "AND", which collides with the AND keyword and
	// must be suffixed rather than used verbatim.
	alias := generateAlias("a_n_d", used, dlt, refs)
	if alias == "AND" {
		t.Fatalf("generateAlias = %q, must not collide with a dialect keyword", alias)
	}
}

func TestGenerateAlias_AvoidsStatementAliases(t *testing.T) {
	dlt := dialect.For("postgres")
	refs := fakeRefs{aliases: map[string]string{"orders": "U"}}
	used := map[string]bool{}

	alias := generateAlias("users", used, dlt, refs)
	if alias == "U" {
		t.Fatalf("generateAlias = %q, must not collide with an alias already used in the statement", alias)
	}
}

func TestSQLLiteralForm(t *testing.T) {
	cases := map[string]string{
		"true":  "true",
		"false": "false",
		"42":    "42",
		"3.14":  "3.14",
		"hello": "'hello'",
		"it's":  "'it''s'",
	}
	for in, want := range cases {
		if got := sqlLiteralForm(in); got != want {
			t.Errorf("sqlLiteralForm(%q) = %q, want %q", in, got, want)
		}
	}
}
