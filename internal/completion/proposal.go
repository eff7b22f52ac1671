package completion

import "github.com/sadopc/gotermsql/internal/catalog"

// Kind classifies a Proposal for display/icon purposes (spec §3).
type Kind int

const (
	KindOther Kind = iota
	KindKeyword
	KindFunction
	KindType
	KindLiteral
)

// Proposal is a single completion candidate (spec §3).
type Proposal struct {
	DisplayString    string
	ReplaceString    string
	CursorOffset     int
	Image            string
	Kind             Kind
	Score            int
	BackingObject    catalog.Node
	ContainerObject  catalog.Node
	IsFullyQualified bool
	IsSingleObject   bool
	Params           map[string]any
}
