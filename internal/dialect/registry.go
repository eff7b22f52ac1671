package dialect

import "strings"

// For builds the Dialect capability set for the given adapter name
// ("postgres", "mysql", "sqlite", "duckdb", or anything else, which falls
// back to the common/ANSI-ish profile).
func For(name string) *Dialect {
	norm := strings.ToLower(name)

	d := &Dialect{
		name:             norm,
		structSeparator:  '.',
		catalogSeparator: '.',
		aliasInSelect:    true,
		aliasInUpdate:    true,
	}

	var extra []string
	switch norm {
	case "postgres", "postgresql":
		d.quoteStrings = []string{`"`}
		d.unquotedLower = true
		extra = postgresKeywords
	case "mysql":
		d.quoteStrings = []string{"`"}
		d.unquotedLower = false
		extra = mysqlKeywords
	case "sqlite":
		d.quoteStrings = []string{`"`, "`"}
		d.unquotedLower = false
		extra = sqliteKeywords
	case "duckdb":
		d.quoteStrings = []string{`"`}
		d.unquotedLower = false
		extra = duckdbKeywords
	default:
		d.quoteStrings = []string{`"`}
		d.unquotedLower = false
	}

	d.keywordTypes = make(map[string]KeywordType)
	add := func(words []string, t KeywordType) {
		for _, w := range words {
			d.keywordTypes[w] = t
			d.allKeywords = append(d.allKeywords, w)
		}
	}
	add(commonKeywords, KeywordTypeKeyword)
	add(extra, KeywordTypeKeyword)
	add(commonFunctions, KeywordTypeFunction)
	add(commonTypes, KeywordTypeType)

	d.entityQueryWords = toSet(entityQueryWords)
	d.attributeQueryWords = toSet(attributeQueryWords)
	d.execQueryWords = toSet(execQueryWords)
	d.queryKeywords = toSet(queryLeadWords)
	d.dmlKeywords = toSet(dmlLeadWords)
	d.ddlKeywords = toSet(ddlLeadWords)
	d.executeKeywords = toSet(executeLeadWords)

	return d
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
