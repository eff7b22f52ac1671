package completion

// InsertCase selects how non-identifier keyword text is cased on insertion.
type InsertCase int

const (
	InsertCaseUpper InsertCase = iota
	InsertCaseLower
	InsertCaseAsTyped
)

// AliasInsertMode selects whether and how a fresh alias is appended after a
// table-name proposal (spec §4.5).
type AliasInsertMode int

const (
	AliasInsertNone AliasInsertMode = iota
	AliasInsertPlain
	AliasInsertExtended // "AS alias"
)

// Config is the flat, string-keyed-in-spirit option record the editor layer
// supplies (spec §3's enumerated Configuration options). It also backs
// internal/config.CompletionConfig, which is its YAML-persisted form.
type Config struct {
	InsertCase         InsertCase
	UseFQNames         bool
	UseShortNames      bool
	SortAlphabetically bool
	SearchInsideNames  bool
	SearchGlobally     bool
	SearchProcedures   bool
	ShowValues         bool
	HideDuplicates     bool
	SimpleMode         bool
	AliasInsertMode    AliasInsertMode
	ExperimentalReferenceAnalyzer bool
	HippieEnabled      bool
}

// DefaultConfig returns the conservative defaults a freshly opened
// connection uses before any user preference is loaded.
func DefaultConfig() Config {
	return Config{
		InsertCase:         InsertCaseAsTyped,
		UseFQNames:         false,
		UseShortNames:      true,
		SortAlphabetically: true,
		SearchInsideNames:  false,
		SearchGlobally:     false,
		SearchProcedures:   false,
		ShowValues:         true,
		HideDuplicates:     true,
		SimpleMode:         false,
		AliasInsertMode:    AliasInsertPlain,
		HippieEnabled:      true,
	}
}
