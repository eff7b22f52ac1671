// Package dialect describes the per-database SQL syntax facts the
// completion analyzer needs: keyword classification, identifier quoting and
// casing rules, and the separator characters used to build and split
// qualified names.
package dialect

import "strings"

// KeywordType classifies a keyword for the proposal builder's casing step
// and the post-filter's keyword-assist step.
type KeywordType int

const (
	// KeywordTypeNone means the token is not a recognized keyword.
	KeywordTypeNone KeywordType = iota
	KeywordTypeKeyword
	KeywordTypeFunction
	KeywordTypeType
	KeywordTypeOther
)

// Dialect is the capability contract consumed by the analyzer (spec §6).
type Dialect struct {
	name string

	entityQueryWords    map[string]bool
	attributeQueryWords map[string]bool
	execQueryWords      map[string]bool

	keywordTypes map[string]KeywordType
	allKeywords  []string

	queryKeywords   map[string]bool
	dmlKeywords     map[string]bool
	ddlKeywords     map[string]bool
	executeKeywords map[string]bool

	structSeparator  byte
	catalogSeparator byte
	quoteStrings     []string
	unquotedLower    bool // true: dialect folds unquoted identifiers to lowercase
	aliasInSelect    bool
	aliasInUpdate    bool
}

// Name returns the dialect's registry name ("postgres", "mysql", ...).
func (d *Dialect) Name() string { return d.name }

// IsEntityQueryWord reports whether k (case-insensitive) introduces a
// TABLE-context completion (FROM, UPDATE, INTO, TABLE, DELETE, ...).
func (d *Dialect) IsEntityQueryWord(k string) bool {
	return d.entityQueryWords[strings.ToUpper(k)]
}

// IsAttributeQueryWord reports whether k introduces a COLUMN-context
// completion (SELECT, WHERE, SET, ON, BY, HAVING, AND, OR, ...).
func (d *Dialect) IsAttributeQueryWord(k string) bool {
	return d.attributeQueryWords[strings.ToUpper(k)]
}

// IsExecQuery reports whether k introduces an EXEC-context completion
// (CALL, EXEC, EXECUTE, ...).
func (d *Dialect) IsExecQuery(k string) bool {
	return d.execQueryWords[strings.ToUpper(k)]
}

// GetKeywordType returns the classification of k, or KeywordTypeNone if k is
// not a known keyword/function/type name in this dialect.
func (d *Dialect) GetKeywordType(k string) KeywordType {
	if t, ok := d.keywordTypes[strings.ToUpper(k)]; ok {
		return t
	}
	return KeywordTypeNone
}

// GetMatchedKeywords returns every known keyword (any classification). It
// does no prefix matching itself; matching and ranking against the typed
// prefix are left to the caller (internal/completion/postfilter.go).
func (d *Dialect) GetMatchedKeywords() []string {
	return d.allKeywords
}

// GetCatalogSeparator returns the dialect's catalog-qualifier separator.
func (d *Dialect) GetCatalogSeparator() byte { return d.catalogSeparator }

// GetStructSeparator returns the dialect's identifier-hierarchy separator.
func (d *Dialect) GetStructSeparator() byte { return d.structSeparator }

// GetIdentifierQuoteStrings returns the dialect's quote character pairs,
// e.g. `"`/`"` for Postgres, "`"/"`" for MySQL.
func (d *Dialect) GetIdentifierQuoteStrings() []string { return d.quoteStrings }

// GetQueryKeywords returns keywords that may legally start a new statement
// (SELECT, WITH, ...), used by the post-filter's statement-start case.
func (d *Dialect) GetQueryKeywords() []string { return setKeys(d.queryKeywords) }

// GetDMLKeywords returns INSERT/UPDATE/DELETE/MERGE-class leads.
func (d *Dialect) GetDMLKeywords() []string { return setKeys(d.dmlKeywords) }

// GetDDLKeywords returns CREATE/ALTER/DROP-class leads.
func (d *Dialect) GetDDLKeywords() []string { return setKeys(d.ddlKeywords) }

// GetExecuteKeywords returns CALL/EXEC-class leads.
func (d *Dialect) GetExecuteKeywords() []string { return setKeys(d.executeKeywords) }

// StoresUnquotedCase reports whether the dialect folds unquoted identifiers
// to lowercase when storing them (Postgres does; MySQL/SQLite/DuckDB keep
// the identifier as typed).
func (d *Dialect) StoresUnquotedCase() bool { return d.unquotedLower }

// SupportsAliasInSelect reports whether a bare "expr alias" is legal in a
// SELECT list for this dialect (all four supported dialects: yes).
func (d *Dialect) SupportsAliasInSelect() bool { return d.aliasInSelect }

// SupportsAliasInUpdate reports whether a table alias is legal directly
// after the table name in an UPDATE statement.
func (d *Dialect) SupportsAliasInUpdate() bool { return d.aliasInUpdate }

// IsQuoted reports whether token is wrapped in one of the dialect's quote
// pairs.
func (d *Dialect) IsQuoted(token string) bool {
	for _, q := range d.quoteStrings {
		if len(token) >= 2*len(q) && strings.HasPrefix(token, q) && strings.HasSuffix(token, q) {
			return true
		}
	}
	return false
}

// RemoveQuotes strips one layer of dialect quoting from token, if present.
func (d *Dialect) RemoveQuotes(token string) string {
	for _, q := range d.quoteStrings {
		if len(token) >= 2*len(q) && strings.HasPrefix(token, q) && strings.HasSuffix(token, q) {
			return token[len(q) : len(token)-len(q)]
		}
	}
	return token
}

// AddQuotes wraps token in the dialect's primary quote string.
func (d *Dialect) AddQuotes(token string) string {
	if len(d.quoteStrings) == 0 {
		return token
	}
	q := d.quoteStrings[0]
	return q + token + q
}

// ContainsSeparator reports whether token contains the struct separator
// outside of quoting.
func (d *Dialect) ContainsSeparator(token string) bool {
	return strings.IndexByte(token, d.structSeparator) >= 0
}

// SplitIdentifier splits token by the struct separator, respecting
// quoting: a separator inside a quoted segment does not split.
func (d *Dialect) SplitIdentifier(token string) []string {
	var parts []string
	var cur strings.Builder
	inQuote := false
	var quoteCh byte
	for i := 0; i < len(token); i++ {
		c := token[i]
		if inQuote {
			cur.WriteByte(c)
			if c == quoteCh {
				inQuote = false
			}
			continue
		}
		if isQuoteStart(d.quoteStrings, c) {
			inQuote = true
			quoteCh = closingQuoteFor(d.quoteStrings, c)
			cur.WriteByte(c)
			continue
		}
		if c == d.structSeparator {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	parts = append(parts, cur.String())
	return parts
}

func isQuoteStart(quotes []string, c byte) bool {
	for _, q := range quotes {
		if len(q) == 1 && q[0] == c {
			return true
		}
	}
	return false
}

func closingQuoteFor(quotes []string, open byte) byte {
	// All of our quote strings are single self-matching characters
	// (", `, []'s opening differs but we don't use bracket quoting here).
	for _, q := range quotes {
		if len(q) == 1 && q[0] == open {
			return open
		}
	}
	return open
}

func setKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
