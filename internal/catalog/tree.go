package catalog

import (
	"context"
	"strings"

	"github.com/sadopc/gotermsql/internal/adapter"
	"github.com/sadopc/gotermsql/internal/schema"
)

// Tree is a Container rooted at the data source, built from a snapshot of
// schema.Database values (the shape internal/app already assembles via
// adapter.Connection.Databases/Columns/Indexes/ForeignKeys before calling
// the old Engine.UpdateSchema). A live adapter.Connection may optionally be
// attached so that Associations/EnumValues can re-fetch when the snapshot
// lacks data and the Monitor allows I/O (spec §5's live-vs-stale split).
type Tree struct {
	name string
	dbs  []schema.Database
	conn adapter.Connection // optional, for live reads
}

// NewTree builds the root Container from a schema snapshot.
func NewTree(dataSourceName string, databases []schema.Database, conn adapter.Connection) *Tree {
	return &Tree{name: dataSourceName, dbs: databases, conn: conn}
}

func (t *Tree) Name() string              { return t.name }
func (t *Tree) Parent() (Node, bool)      { return nil, false }
func (t *Tree) Cached() bool              { return true }
func (t *Tree) Children(_ context.Context, _ *Monitor) ([]Node, error) {
	out := make([]Node, 0, len(t.dbs))
	for i := range t.dbs {
		out = append(out, &catalogNode{tree: t, db: &t.dbs[i]})
	}
	return out, nil
}

// catalogNode is the "catalog" level (a database in the multi-database
// sense, e.g. Postgres's cluster-level database or MySQL's schema).
type catalogNode struct {
	tree *Tree
	db   *schema.Database
}

func (c *catalogNode) Name() string         { return c.db.Name }
func (c *catalogNode) Parent() (Node, bool) { return c.tree, true }
func (c *catalogNode) Cached() bool         { return true }

// IsDatabase satisfies the DatabaseTag capability (see viewEntityNode.IsView).
func (c *catalogNode) IsDatabase() bool { return true }
func (c *catalogNode) Children(_ context.Context, _ *Monitor) ([]Node, error) {
	out := make([]Node, 0, len(c.db.Schemas))
	for i := range c.db.Schemas {
		out = append(out, &schemaNode{parent: c, sch: &c.db.Schemas[i]})
	}
	return out, nil
}

// schemaNode is the "schema" level (e.g. Postgres's "public").
type schemaNode struct {
	parent *catalogNode
	sch    *schema.Schema
}

func (s *schemaNode) Name() string         { return s.sch.Name }
func (s *schemaNode) Parent() (Node, bool) { return s.parent, true }
func (s *schemaNode) Cached() bool         { return true }

// IsSchema satisfies the SchemaTag capability (see viewEntityNode.IsView).
func (s *schemaNode) IsSchema() bool { return true }
func (s *schemaNode) Children(_ context.Context, _ *Monitor) ([]Node, error) {
	out := make([]Node, 0, len(s.sch.Tables)+len(s.sch.Views))
	for i := range s.sch.Tables {
		out = append(out, &entityNode{parent: s, table: &s.sch.Tables[i]})
	}
	for i := range s.sch.Views {
		out = append(out, &viewEntityNode{parent: s, view: &s.sch.Views[i]})
	}
	return out, nil
}

// entityNode wraps a schema.Table as a catalog Entity + Container (its
// children are its own attributes, for dotted-path descent into
// table.column).
type entityNode struct {
	parent *schemaNode
	table  *schema.Table
}

func (e *entityNode) Name() string         { return e.table.Name }
func (e *entityNode) Parent() (Node, bool) { return e.parent, true }
func (e *entityNode) Cached() bool         { return len(e.table.Columns) > 0 }

func (e *entityNode) Children(ctx context.Context, mon *Monitor) ([]Node, error) {
	attrs, err := e.Attributes(ctx, mon)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(attrs))
	for i, a := range attrs {
		out[i] = a.(Node)
	}
	return out, nil
}

func (e *entityNode) Attributes(ctx context.Context, mon *Monitor) ([]Attribute, error) {
	if len(e.table.Columns) == 0 && mon.AllowsIO() && e.parent.parent.tree.conn != nil {
		cols, err := e.parent.parent.tree.conn.Columns(ctx, e.parent.parent.db.Name, e.parent.sch.Name, e.table.Name)
		if err == nil {
			e.table.Columns = cols
		}
	}
	out := make([]Attribute, len(e.table.Columns))
	for i := range e.table.Columns {
		out[i] = &attributeNode{parent: e, col: &e.table.Columns[i]}
	}
	return out, nil
}

func (e *entityNode) Associations(ctx context.Context, mon *Monitor) ([]Association, error) {
	fks := e.table.FKs
	if len(fks) == 0 && mon.AllowsIO() && e.parent.parent.tree.conn != nil {
		live, err := e.parent.parent.tree.conn.ForeignKeys(ctx, e.parent.parent.db.Name, e.parent.sch.Name, e.table.Name)
		if err == nil {
			fks = live
			e.table.FKs = live
		}
	}
	var assocs []Association
	for _, fk := range fks {
		target, ok := findTableInSchema(e.parent.sch, fk.RefTable)
		if !ok {
			continue
		}
		assocs = append(assocs, Association{
			Name:     fk.Name,
			From:     e,
			To:       &entityNode{parent: e.parent, table: target},
			FromCols: fk.Columns,
			ToCols:   fk.RefColumns,
		})
	}
	// Reverse associations: any sibling entity whose FK points at us.
	for i := range e.parent.sch.Tables {
		other := &e.parent.sch.Tables[i]
		if other == e.table {
			continue
		}
		for _, fk := range other.FKs {
			if strings.EqualFold(fk.RefTable, e.table.Name) {
				assocs = append(assocs, Association{
					Name:     fk.Name,
					From:     e,
					To:       &entityNode{parent: e.parent, table: other},
					FromCols: fk.RefColumns,
					ToCols:   fk.Columns,
					Reversed: true,
				})
			}
		}
	}
	return assocs, nil
}

func findTableInSchema(s *schema.Schema, name string) (*schema.Table, bool) {
	for i := range s.Tables {
		if strings.EqualFold(s.Tables[i].Name, name) {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// viewEntityNode adapts schema.View to the same Entity/Container surface as
// entityNode; views have no foreign keys of their own.
type viewEntityNode struct {
	parent *schemaNode
	view   *schema.View
}

func (v *viewEntityNode) Name() string         { return v.view.Name }
func (v *viewEntityNode) Parent() (Node, bool) { return v.parent, true }
func (v *viewEntityNode) Cached() bool         { return true }

// IsView satisfies the ViewTag capability so callers outside this package
// (the completion engine's UI-facing kind mapping) can tell a view entity
// apart from a table entity without depending on the unexported type.
func (v *viewEntityNode) IsView() bool { return true }

func (v *viewEntityNode) Children(ctx context.Context, mon *Monitor) ([]Node, error) {
	attrs, err := v.Attributes(ctx, mon)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(attrs))
	for i, a := range attrs {
		out[i] = a.(Node)
	}
	return out, nil
}

func (v *viewEntityNode) Attributes(_ context.Context, _ *Monitor) ([]Attribute, error) {
	out := make([]Attribute, len(v.view.Columns))
	for i := range v.view.Columns {
		out[i] = &viewAttributeNode{parent: v, col: &v.view.Columns[i]}
	}
	return out, nil
}

func (v *viewEntityNode) Associations(_ context.Context, _ *Monitor) ([]Association, error) {
	return nil, nil
}

// attributeNode wraps a schema.Column as a catalog Attribute.
type attributeNode struct {
	parent *entityNode
	col    *schema.Column
}

func (a *attributeNode) Name() string         { return a.col.Name }
func (a *attributeNode) Parent() (Node, bool) { return a.parent, true }
func (a *attributeNode) DataType() string     { return a.col.Type }
func (a *attributeNode) Nullable() bool       { return a.col.Nullable }
func (a *attributeNode) IsPrimaryKey() bool   { return a.col.IsPK }

func (a *attributeNode) Enumerable() bool {
	t := strings.ToUpper(a.col.Type)
	return strings.Contains(t, "ENUM") || t == "BOOLEAN" || t == "BOOL"
}

func (a *attributeNode) EnumValues(_ context.Context, _ *Monitor) ([]string, error) {
	t := strings.ToUpper(a.col.Type)
	switch {
	case t == "BOOLEAN" || t == "BOOL":
		return []string{"true", "false"}, nil
	case strings.Contains(t, "ENUM"):
		return parseEnumValues(a.col.Type), nil
	default:
		return nil, nil
	}
}

// DictionaryRef reports the lookup table a foreign key on this column
// targets, if any, so the resolver can enumerate label/value pairs from it
// (spec §D supplement).
func (a *attributeNode) DictionaryRef() (Container, bool) {
	for _, fk := range a.parent.table.FKs {
		for _, c := range fk.Columns {
			if strings.EqualFold(c, a.col.Name) {
				if target, ok := findTableInSchema(a.parent.parent.sch, fk.RefTable); ok {
					return &entityNode{parent: a.parent.parent, table: target}, true
				}
			}
		}
	}
	return nil, false
}

// parseEnumValues extracts quoted labels from a MySQL-style
// "enum('a','b','c')" type string.
func parseEnumValues(typ string) []string {
	start := strings.IndexByte(typ, '(')
	end := strings.LastIndexByte(typ, ')')
	if start < 0 || end < 0 || end <= start {
		return nil
	}
	inner := typ[start+1 : end]
	var out []string
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, "'\"")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// viewAttributeNode wraps a view's schema.Column; views are read-only so
// enumeration/dictionary lookups are always empty.
type viewAttributeNode struct {
	parent *viewEntityNode
	col    *schema.Column
}

func (a *viewAttributeNode) Name() string                                     { return a.col.Name }
func (a *viewAttributeNode) Parent() (Node, bool)                             { return a.parent, true }
func (a *viewAttributeNode) DataType() string                                 { return a.col.Type }
func (a *viewAttributeNode) Nullable() bool                                   { return a.col.Nullable }
func (a *viewAttributeNode) IsPrimaryKey() bool                               { return false }
func (a *viewAttributeNode) Enumerable() bool                                 { return false }
func (a *viewAttributeNode) EnumValues(context.Context, *Monitor) ([]string, error) { return nil, nil }
func (a *viewAttributeNode) DictionaryRef() (Container, bool)                 { return nil, false }
