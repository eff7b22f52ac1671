// Package catalog models the hierarchical object tree the completion
// analyzer resolves against (data source → catalog → schema → entity →
// attribute), lazily wrapping internal/adapter introspection behind a
// cache-policy-aware Navigator (spec §3 Catalog Entity, §4.2 Catalog
// Navigator, §6 Catalog capability contract).
package catalog

import "context"

// Node is the base capability every catalog object satisfies. Concrete
// objects additionally satisfy Container, Entity, Attribute, Procedure,
// AliasRef, or ObjectReference depending on what kind of object they are;
// the resolver dispatches on these via type assertion rather than a
// closed sum type, mirroring the tagged-variant design in spec.md §9.
type Node interface {
	Name() string
	Parent() (Node, bool)
}

// Container is a node that has children and may be cached (data source,
// catalog, schema, or a virtual grouping folder).
type Container interface {
	Node
	Children(ctx context.Context, mon *Monitor) ([]Node, error)
	// Cached reports whether Children has already been fetched and can be
	// served without an I/O round-trip.
	Cached() bool
}

// Entity is a table- or view-like object: it has attributes and may
// participate in associations (foreign keys) with other entities.
type Entity interface {
	Node
	Attributes(ctx context.Context, mon *Monitor) ([]Attribute, error)
	Associations(ctx context.Context, mon *Monitor) ([]Association, error)
}

// Attribute is a typed column. Enumerable attributes (small fixed value
// sets, e.g. an enum type or a boolean) and dictionary-backed attributes
// (foreign-keyed to a lookup table) both support value enumeration for the
// proposal builder's value path (spec §4.5).
type Attribute interface {
	Node
	DataType() string
	Nullable() bool
	IsPrimaryKey() bool

	// Enumerable reports whether EnumValues can be called.
	Enumerable() bool
	// EnumValues returns the native-form values of an enumerable
	// attribute. It does not cap the list; callers apply
	// MaxAttributeValueProposals.
	EnumValues(ctx context.Context, mon *Monitor) ([]string, error)

	// DictionaryRef returns the container holding label/value rows this
	// attribute references, if any (spec.md §4.5, §D supplement).
	DictionaryRef() (Container, bool)
}

// Procedure is a stored procedure or function container target.
type Procedure interface {
	Node
}

// AliasRef is a synonym/alias node that resolves to another node.
type AliasRef interface {
	Node
	Target(ctx context.Context, mon *Monitor) (Node, error)
}

// ObjectReference is an unresolved handle carrying only a name and a class
// tag (e.g. a dotted-path segment that hasn't been looked up yet).
type ObjectReference interface {
	Node
	ClassTag() string
}

// ViewTag is optionally satisfied by an Entity backed by a database view
// rather than a table, so callers that render a different icon for views
// (spec.md §D supplement) can tell them apart without a type switch over
// unexported concrete types.
type ViewTag interface {
	IsView() bool
}

// DatabaseTag is satisfied by the "catalog" level of the tree (spec.md
// §3's Container variant one level below the data-source root).
type DatabaseTag interface {
	IsDatabase() bool
}

// SchemaTag is satisfied by the schema level of the tree.
type SchemaTag interface {
	IsSchema() bool
}

// Association describes a foreign-key relationship between two entities,
// in either direction (spec §D: "join-association inference").
type Association struct {
	Name       string
	From       Entity
	To         Entity
	FromCols   []string
	ToCols     []string
	Reversed   bool // true if this Association was synthesized from the "to" side's FK
}

// MaxAttributeValueProposals bounds value-enumeration results (spec §4.5).
const MaxAttributeValueProposals = 50
