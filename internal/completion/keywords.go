package completion

import (
	"strings"

	"github.com/sadopc/gotermsql/internal/dialect"
)

// KeywordsForDialect returns the keyword tokens the named dialect
// recognizes (its query/DML/DDL/execute vocabulary plus reserved words),
// excluding TYPE tokens. A thin convenience over internal/dialect for
// callers that want a flat list rather than a Dialect value; the analyzer
// pipeline itself talks to internal/dialect directly (see postfilter.go).
func KeywordsForDialect(dialectName string) []string {
	dlt := dialect.For(dialectName)
	var out []string
	for _, kw := range dlt.GetMatchedKeywords() {
		if dlt.GetKeywordType(kw) == dialect.KeywordTypeType {
			continue
		}
		out = append(out, kw)
	}
	return out
}

// FunctionsForDialect returns the named dialect's recognized function
// tokens (dialect.KeywordTypeFunction entries), upper-cased.
func FunctionsForDialect(dialectName string) []string {
	dlt := dialect.For(dialectName)
	var out []string
	for _, kw := range dlt.GetMatchedKeywords() {
		if dlt.GetKeywordType(kw) == dialect.KeywordTypeFunction {
			out = append(out, strings.ToUpper(kw))
		}
	}
	return out
}
