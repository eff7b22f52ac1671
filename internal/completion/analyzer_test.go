package completion

import (
	"context"
	"testing"

	"github.com/sadopc/gotermsql/internal/catalog"
	"github.com/sadopc/gotermsql/internal/dialect"
	"github.com/sadopc/gotermsql/internal/schema"
)

func sampleAnalyzerDatabases() []schema.Database {
	return []schema.Database{
		{
			Name: "app",
			Schemas: []schema.Schema{
				{
					Name: "public",
					Tables: []schema.Table{
						{
							Name: "users",
							Columns: []schema.Column{
								{Name: "id", Type: "integer", IsPK: true},
								{Name: "status", Type: "enum('active','inactive')"},
								{Name: "active", Type: "boolean"},
							},
						},
						{
							Name: "orders",
							Columns: []schema.Column{
								{Name: "id", Type: "integer", IsPK: true},
								{Name: "user_id", Type: "integer"},
							},
						},
					},
					Views: []schema.View{
						{Name: "active_users", Columns: []schema.Column{{Name: "id", Type: "integer"}}},
					},
				},
			},
		},
	}
}

// newTestContext builds a Context with its selected schema pre-populated,
// mirroring internal/completion/engine.go's defaultExecContext: a session
// that has connected and navigated into the first database/schema.
func newTestContext(t *testing.T, dialectName string) Context {
	t.Helper()
	nav := catalog.NewNavigator(catalog.NewTree(dialectName, sampleAnalyzerDatabases(), nil), catalog.CacheOnly)
	assistant := catalog.NewStructureAssistant(nav)

	ctx := context.Background()
	dbs, err := nav.Children(ctx, nav.Root())
	if err != nil || len(dbs) == 0 {
		t.Fatalf("failed to enumerate databases: %v", err)
	}
	db := dbs[0].(catalog.Container)
	schemas, err := nav.Children(ctx, db)
	if err != nil || len(schemas) == 0 {
		t.Fatalf("failed to enumerate schemas: %v", err)
	}
	schemaNode := schemas[0].(catalog.Container)

	return Context{
		Dialect:        dialect.For(dialectName),
		Navigator:      nav,
		Assistant:      assistant,
		DataSourceName: dialectName,
		ExecContext:    ExecutionContext{SelectedCatalog: db, SelectedSchema: schemaNode},
		Config:         DefaultConfig(),
	}
}

func runAnalyzer(t *testing.T, text string, cursor int, tctx Context) []Proposal {
	t.Helper()
	doc := StringDocument(text)
	req := Request{
		Document:     doc,
		CursorOffset: cursor,
		Statement:    &StatementSpan{Offset: 0, Text: text},
		Partition:    ClassifyPartition(text, cursor),
		Ctx:          tctx,
	}
	an := NewAnalyzer(req)
	if err := an.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return an.Proposals()
}

func findProposal(proposals []Proposal, display string) (Proposal, bool) {
	for _, p := range proposals {
		if p.DisplayString == display {
			return p, true
		}
	}
	return Proposal{}, false
}

func TestAnalyzer_TableCompletionWithAlias(t *testing.T) {
	tctx := newTestContext(t, "sqlite")
	text := "SELECT * FROM us"
	proposals := runAnalyzer(t, text, len(text), tctx)

	p, ok := findProposal(proposals, "users U")
	if !ok {
		t.Fatalf("proposals = %+v, want one for 'users U' (table + synthesized alias)", proposals)
	}
	if p.Kind != KindOther {
		t.Errorf("Kind = %v, want KindOther", p.Kind)
	}
	if p.BackingObject == nil {
		t.Error("expected BackingObject to be set for a table proposal")
	}
	if _, isOrders := findProposal(proposals, "orders O"); isOrders {
		t.Error("did not expect 'orders' to match prefix 'us'")
	}
}

func TestAnalyzer_StatementStartOffersTablesAndKeywords(t *testing.T) {
	tctx := newTestContext(t, "postgres")
	proposals := runAnalyzer(t, "", 0, tctx)

	if _, ok := findProposal(proposals, "users"); !ok {
		t.Error("expected 'users' among default-schema children at statement start")
	}
	if _, ok := findProposal(proposals, "SELECT"); !ok {
		t.Error("expected 'SELECT' keyword assist at statement start")
	}
}

func TestAnalyzer_ColumnAssistAfterWhere(t *testing.T) {
	tctx := newTestContext(t, "postgres")
	text := "SELECT * FROM users WHERE st"
	proposals := runAnalyzer(t, text, len(text), tctx)

	// Bare (unqualified) column search resolves against the session's
	// default schema container, not the FROM-referenced table, so this
	// matches schema-level children starting with "st" -- none here --
	// falling through to keyword assist only.
	if len(proposals) == 0 {
		t.Fatal("expected at least keyword-assist proposals")
	}
	for _, p := range proposals {
		if p.BackingObject != nil {
			t.Errorf("unexpected catalog-backed proposal %+v for unqualified WHERE prefix with no matching schema child", p)
		}
	}
}

func TestAnalyzer_SingleUseGuard(t *testing.T) {
	tctx := newTestContext(t, "sqlite")
	text := "SELECT * FROM us"
	req := Request{
		Document:     StringDocument(text),
		CursorOffset: len(text),
		Statement:    &StatementSpan{Offset: 0, Text: text},
		Partition:    ClassifyPartition(text, len(text)),
		Ctx:          tctx,
	}
	an := NewAnalyzer(req)
	if err := an.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first := an.Proposals()

	if err := an.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	second := an.Proposals()

	if len(first) != len(second) {
		t.Fatalf("second Run mutated proposals: %d vs %d", len(first), len(second))
	}
}

// TestAnalyzer_InsertIntoColumnListConventionalSpacing covers spec §4.3's
// INTO column-list assist under normal typing, where PrevDelimiter carries
// the whitespace a user would actually type (", " after a prior column,
// not the artificial no-space "users(id," form) -- it must still dispatch
// to QueryTypeColumn rather than falling through to QueryTypeTable.
func TestAnalyzer_InsertIntoColumnListConventionalSpacing(t *testing.T) {
	tctx := newTestContext(t, "postgres")
	text := "INSERT INTO users (id, "
	proposals := runAnalyzer(t, text, len(text), tctx)

	if _, ok := findProposal(proposals, "status"); !ok {
		t.Fatalf("proposals = %+v, want a 'status' column proposal (QueryTypeColumn dispatch)", proposals)
	}
	if _, ok := findProposal(proposals, "users U"); ok {
		t.Error("did not expect an aliased 'users U' table proposal; INTO's column-list case must win over the entity-query-word fallback")
	}
}

func TestAnalyzer_CancelledContextDiscardsResults(t *testing.T) {
	tctx := newTestContext(t, "sqlite")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := Request{
		Document:     StringDocument("SELECT * FROM us"),
		CursorOffset: len("SELECT * FROM us"),
		Ctx:          tctx,
	}
	an := NewAnalyzer(req)
	if err := an.Run(ctx); err != ErrCancelled {
		t.Fatalf("Run() = %v, want ErrCancelled", err)
	}
	if len(an.Proposals()) != 0 {
		t.Error("expected no proposals from a cancelled run")
	}
}
