package completion

import "strings"

// QueryType is the classifier's verdict for which proposal sources the
// resolver should consult (spec §4.3).
type QueryType int

const (
	QueryTypeUnset QueryType = iota
	QueryTypeTable
	QueryTypeColumn
	QueryTypeJoin
	QueryTypeExec
)

// ClassifierOutput is the classifier's full verdict, including the
// (possibly rewritten) word-detector output it classified against.
type ClassifierOutput struct {
	QueryType               QueryType
	Word                    WordDetectorOutput
	SearchPrefix            string
	SuppressAll             bool
	ParamExec               bool
	ScheduleProcedureSearch bool
}

var procedureDeclWords = map[string]bool{"PROCEDURE": true, "FUNCTION": true}

// Classify runs the context classifier (spec §4.3) over word, given the
// request's partition verdict and active-statement span.
func Classify(req Request, word WordDetectorOutput) ClassifierOutput {
	dlt := req.Ctx.Dialect

	// Pre-processing: discard a prevKeyWord that actually belongs to a
	// preceding statement.
	if req.Statement != nil && req.Statement.Offset > word.PrevKeyWordOffset {
		word.PrevKeyWord = ""
		word.PrevKeyWordOffset = 0
		word.PrevWords = nil
	}

	out := ClassifierOutput{Word: word, SearchPrefix: word.WordPart, ParamExec: true}

	if len(word.PrevWords) > 0 && procedureDeclWords[strings.ToUpper(word.PrevWords[0])] {
		out.ParamExec = false
	}

	pk := strings.ToUpper(word.PrevKeyWord)

	if req.Partition == PartitionString && pk == "INTO" {
		out.SuppressAll = true
		return out
	}

	switch {
	case pk == "INTO" && len(word.PrevWords) > 0 && isOpenParenStar(word.PrevDelimiter):
		out.QueryType = QueryTypeColumn
		out.SearchPrefix = "*"
		out.Word.ShiftOffset(-1)

	case pk == "INTO" && len(word.PrevWords) > 0 && isListDelimiter(word.PrevDelimiter):
		out.QueryType = QueryTypeColumn

	case pk == "JOIN" && len(word.PrevWords) == 0:
		out.QueryType = QueryTypeJoin

	case dlt.IsEntityQueryWord(pk):
		if pk == "DELETE" || pk == "INSERT" {
			out.QueryType = QueryTypeUnset
		} else {
			out.QueryType = QueryTypeTable
		}

	case dlt.IsAttributeQueryWord(pk):
		out.QueryType = QueryTypeColumn

	case dlt.IsExecQuery(pk):
		out.QueryType = QueryTypeExec

	case pk == "" && len(word.PrevWords) > 0 && procedureDeclWords[strings.ToUpper(word.PrevWords[0])]:
		out.QueryType = QueryTypeUnset
		out.ScheduleProcedureSearch = true

	default:
		out.QueryType = QueryTypeUnset
	}

	if out.QueryType == QueryTypeColumn && word.WordPart == "" && significantDelimiter(word.PrevDelimiter) == "*" && word.NextWord != "" {
		out.SearchPrefix = "*"
		out.Word.ShiftOffset(-1)
	}

	return out
}

// isListDelimiter reports whether delim separates items in an INTO
// column list ("(" opens it, "," continues it). delim carries DetectWord's
// raw punctuation-and-whitespace run, so only its significant (non-space)
// characters are compared (e.g. "users (id, " yields PrevDelimiter ", ").
func isListDelimiter(delim string) bool {
	switch significantDelimiter(delim) {
	case "(", ",":
		return true
	default:
		return false
	}
}

func isOpenParenStar(delim string) bool {
	switch significantDelimiter(delim) {
	case "(*", "{*", "[*":
		return true
	default:
		return false
	}
}
