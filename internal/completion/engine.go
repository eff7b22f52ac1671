package completion

import (
	"context"

	"github.com/sadopc/gotermsql/internal/adapter"
	"github.com/sadopc/gotermsql/internal/catalog"
	"github.com/sadopc/gotermsql/internal/dialect"
	"github.com/sadopc/gotermsql/internal/schema"
)

// Engine is the UI-facing facade over the analyzer pipeline, preserving
// the narrow surface internal/app and internal/ui/autocomplete drive:
// construct once per connection dialect, refresh the catalog snapshot on
// schema load, then ask for completions at a cursor position. The editor
// layer hands us plain text and an end-of-buffer-relative cursor offset
// rather than a structured document and active-statement span; we treat
// the whole buffer as the active statement (spec.md's "active statement"
// is an external collaborator this terminal UI does not implement).
type Engine struct {
	dialectName string
	dlt         *dialect.Dialect
	cfg         Config
	nav         *catalog.Navigator
	assistant   *catalog.StructureAssistant
}

// NewEngine builds an Engine for the given SQL dialect name.
func NewEngine(dialectName string) *Engine {
	return &Engine{
		dialectName: dialectName,
		dlt:         dialect.For(dialectName),
		cfg:         DefaultConfig(),
	}
}

// Configure replaces the engine's analyzer configuration, applied to every
// Complete call from this point on.
func (e *Engine) Configure(cfg Config) {
	e.cfg = cfg
}

// UpdateSchema replaces the engine's catalog snapshot.
func (e *Engine) UpdateSchema(databases []schema.Database) {
	tree := catalog.NewTree(e.dialectName, databases, nil)
	e.nav = catalog.NewNavigator(tree, catalog.CacheOnly)
	e.assistant = catalog.NewStructureAssistant(e.nav)
}

// Complete runs one analysis over text at cursorPos and adapts the result
// to the UI's adapter.CompletionItem shape.
func (e *Engine) Complete(text string, cursorPos int) []adapter.CompletionItem {
	if e.nav == nil {
		return nil
	}

	ctx := context.Background()
	doc := StringDocument(text)
	partition := ClassifyPartition(text, cursorPos)

	req := Request{
		Document:     doc,
		CursorOffset: cursorPos,
		Statement:    &StatementSpan{Offset: 0, Text: text},
		Partition:    partition,
		Ctx: Context{
			Dialect:        e.dlt,
			Navigator:      e.nav,
			Assistant:      e.assistant,
			DataSourceName: e.dialectName,
			ExecContext:    e.defaultExecContext(ctx),
			Config:         e.cfg,
		},
	}

	an := NewAnalyzer(req)
	if err := an.Run(ctx); err != nil {
		logDebug("engine.Complete", err)
		return nil
	}

	proposals := an.Proposals()
	out := make([]adapter.CompletionItem, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, adapter.CompletionItem{
			Label:  p.DisplayString,
			Kind:   completionKindFor(p),
			Detail: detailFor(p),
		})
	}
	return out
}

// defaultExecContext picks the first database and first schema in the
// snapshot as the session's implicit default, since this terminal UI has
// no catalog/schema switcher of its own.
func (e *Engine) defaultExecContext(ctx context.Context) ExecutionContext {
	var execCtx ExecutionContext

	dbs, err := e.nav.Children(ctx, e.nav.Root())
	if err != nil || len(dbs) == 0 {
		return execCtx
	}
	dbContainer, ok := dbs[0].(catalog.Container)
	if !ok {
		return execCtx
	}
	execCtx.SelectedCatalog = dbContainer

	schemas, err := e.nav.Children(ctx, dbContainer)
	if err != nil || len(schemas) == 0 {
		return execCtx
	}
	if schContainer, ok := schemas[0].(catalog.Container); ok {
		execCtx.SelectedSchema = schContainer
	}
	return execCtx
}

func completionKindFor(p Proposal) adapter.CompletionKind {
	switch p.Kind {
	case KindKeyword:
		return adapter.CompletionKeyword
	case KindFunction:
		return adapter.CompletionFunction
	}

	switch obj := p.BackingObject.(type) {
	case catalog.Attribute:
		return adapter.CompletionColumn
	case catalog.Procedure:
		return adapter.CompletionFunction
	case catalog.ViewTag:
		if obj.IsView() {
			return adapter.CompletionView
		}
	case catalog.Entity:
		return adapter.CompletionTable
	case catalog.DatabaseTag:
		return adapter.CompletionDatabase
	case catalog.SchemaTag:
		return adapter.CompletionSchema
	}

	if p.BackingObject == nil {
		return adapter.CompletionKeyword
	}
	return adapter.CompletionTable
}

func detailFor(p Proposal) string {
	if attr, ok := p.BackingObject.(catalog.Attribute); ok {
		return attr.DataType()
	}
	return ""
}
