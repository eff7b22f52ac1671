package completion

import (
	"github.com/sadopc/gotermsql/internal/catalog"
	"github.com/sadopc/gotermsql/internal/dialect"
)

// Partition is the lexer/partitioner's verdict for the character at the
// cursor (spec §3). The analyzer treats this as ground truth supplied by
// an external collaborator (partition.go derives it from chroma's lexer).
type Partition int

const (
	PartitionCode Partition = iota
	PartitionString
	PartitionQuotedIdent
)

// Document is the read-only text buffer the word detector scans (spec §6).
// internal/ui/editor's textarea value, as a plain string, satisfies this
// via StringDocument.
type Document interface {
	// CharAt returns the rune at offset and true, or (0, false) if offset
	// is out of bounds (treated as "unknown character" per spec §7).
	CharAt(offset int) (rune, bool)
	Len() int
}

// StringDocument adapts a plain string to the Document contract.
type StringDocument string

func (d StringDocument) Len() int { return len(d) }

func (d StringDocument) CharAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(d) {
		return 0, false
	}
	return rune(d[offset]), true
}

// StatementSpan identifies the active statement containing the cursor
// (spec §3), as delimited by the editor's statement splitter.
type StatementSpan struct {
	Offset int
	Text   string
}

// ExecutionContext carries the session's currently selected catalog/schema
// and any explicitly selected objects (spec §6).
type ExecutionContext struct {
	SelectedCatalog Container
	SelectedSchema  Container
	SelectedObjects []catalog.Node
}

// Container is a local alias kept for readability at call sites that only
// need the Container capability from internal/catalog.
type Container = catalog.Container

// Context bundles the request-scoped collaborators (spec §3).
type Context struct {
	Dialect          *dialect.Dialect
	Navigator        *catalog.Navigator
	Assistant        *catalog.StructureAssistant
	DataSourceName   string
	ExecContext      ExecutionContext
	Config           Config
}

// Request is the immutable input to one analyzer run (spec §3).
type Request struct {
	Document     Document
	CursorOffset int
	Statement    *StatementSpan // nil if no active statement is known
	Partition    Partition
	Ctx          Context
}
