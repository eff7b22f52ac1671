package completion

import (
	"testing"

	"github.com/sadopc/gotermsql/internal/dialect"
)

func baseRequest(dlt *dialect.Dialect) Request {
	return Request{
		Ctx: Context{Dialect: dlt},
	}
}

func TestClassify_AttributeQueryWord(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{WordPart: "na", PrevKeyWord: "WHERE"}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeColumn {
		t.Errorf("QueryType = %v, want QueryTypeColumn", out.QueryType)
	}
	if out.SearchPrefix != "na" {
		t.Errorf("SearchPrefix = %q, want na", out.SearchPrefix)
	}
}

func TestClassify_EntityQueryWord(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{WordPart: "us", PrevKeyWord: "FROM"}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeTable {
		t.Errorf("QueryType = %v, want QueryTypeTable", out.QueryType)
	}
}

func TestClassify_DeleteIsSpecialCased(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{WordPart: "", PrevKeyWord: "DELETE"}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeUnset {
		t.Errorf("QueryType = %v, want QueryTypeUnset for DELETE", out.QueryType)
	}
}

func TestClassify_ExecQueryWord(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{WordPart: "do", PrevKeyWord: "CALL"}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeExec {
		t.Errorf("QueryType = %v, want QueryTypeExec", out.QueryType)
	}
}

func TestClassify_JoinWithNoPrevWords(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{WordPart: "or", PrevKeyWord: "JOIN"}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeJoin {
		t.Errorf("QueryType = %v, want QueryTypeJoin", out.QueryType)
	}
}

func TestClassify_IntoWithOpenParenStar(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{
		WordPart:      "",
		PrevKeyWord:   "INTO",
		PrevWords:     []string{"users"},
		PrevDelimiter: "(*",
		WordStart:     20,
		WordEnd:       20,
	}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeColumn {
		t.Fatalf("QueryType = %v, want QueryTypeColumn", out.QueryType)
	}
	if out.SearchPrefix != "*" {
		t.Errorf("SearchPrefix = %q, want *", out.SearchPrefix)
	}
	if out.Word.WordStart != 19 {
		t.Errorf("WordStart = %d, want shifted to 19", out.Word.WordStart)
	}
}

func TestClassify_IntoWithListDelimiter(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{
		WordPart:      "na",
		PrevKeyWord:   "INTO",
		PrevWords:     []string{"users"},
		PrevDelimiter: ",",
	}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeColumn {
		t.Errorf("QueryType = %v, want QueryTypeColumn", out.QueryType)
	}
}

func TestClassify_IntoWithOpenParenStarConventionalSpacing(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{
		WordPart:      "",
		PrevKeyWord:   "INTO",
		PrevWords:     []string{"users"},
		PrevDelimiter: " (*", // "INSERT INTO users (*" -- a space before the paren
		WordStart:     20,
		WordEnd:       20,
	}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeColumn {
		t.Fatalf("QueryType = %v, want QueryTypeColumn", out.QueryType)
	}
	if out.SearchPrefix != "*" {
		t.Errorf("SearchPrefix = %q, want *", out.SearchPrefix)
	}
}

func TestClassify_IntoWithListDelimiterConventionalSpacing(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{
		WordPart:      "na",
		PrevKeyWord:   "INTO",
		PrevWords:     []string{"users"},
		PrevDelimiter: ", ", // "INSERT INTO users (id, na" -- comma then space
	}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeColumn {
		t.Errorf("QueryType = %v, want QueryTypeColumn", out.QueryType)
	}
}

func TestClassify_StringPartitionSuppressesInto(t *testing.T) {
	dlt := dialect.For("postgres")
	req := baseRequest(dlt)
	req.Partition = PartitionString
	word := WordDetectorOutput{WordPart: "foo", PrevKeyWord: "INTO"}
	out := Classify(req, word)

	if !out.SuppressAll {
		t.Fatal("expected SuppressAll when inside a string literal after INTO")
	}
}

func TestClassify_ProcedureDeclaration(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{WordPart: "", PrevKeyWord: "", PrevWords: []string{"PROCEDURE"}}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeUnset {
		t.Errorf("QueryType = %v, want QueryTypeUnset", out.QueryType)
	}
	if !out.ScheduleProcedureSearch {
		t.Error("expected ScheduleProcedureSearch to be set")
	}
	if out.ParamExec {
		t.Error("expected ParamExec false when declaring a procedure's own parameters")
	}
}

func TestClassify_DefaultUnset(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{WordPart: "SEL"}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeUnset {
		t.Errorf("QueryType = %v, want QueryTypeUnset", out.QueryType)
	}
}

func TestClassify_TrailingStarRewrite(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{
		WordPart:      "",
		PrevKeyWord:   "SELECT",
		PrevDelimiter: "*",
		NextWord:      "FROM",
		WordStart:     10,
		WordEnd:       10,
	}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeColumn {
		t.Fatalf("QueryType = %v, want QueryTypeColumn (SELECT is an attribute query word)", out.QueryType)
	}
	if out.SearchPrefix != "*" {
		t.Errorf("SearchPrefix = %q, want *", out.SearchPrefix)
	}
	if out.Word.WordStart != 9 {
		t.Errorf("WordStart = %d, want shifted to 9", out.Word.WordStart)
	}
}

func TestClassify_TrailingStarRewriteConventionalSpacing(t *testing.T) {
	dlt := dialect.For("postgres")
	word := WordDetectorOutput{
		WordPart:      "",
		PrevKeyWord:   "SELECT",
		PrevDelimiter: " *", // "SELECT * FROM" -- a space before the star
		NextWord:      "FROM",
		WordStart:     10,
		WordEnd:       10,
	}
	out := Classify(baseRequest(dlt), word)

	if out.QueryType != QueryTypeColumn {
		t.Fatalf("QueryType = %v, want QueryTypeColumn", out.QueryType)
	}
	if out.SearchPrefix != "*" {
		t.Errorf("SearchPrefix = %q, want *", out.SearchPrefix)
	}
}

func TestClassify_DiscardsStalePrevKeyWord(t *testing.T) {
	dlt := dialect.For("postgres")
	req := baseRequest(dlt)
	req.Statement = &StatementSpan{Offset: 100, Text: "SELECT na"}
	word := WordDetectorOutput{WordPart: "na", PrevKeyWord: "WHERE", PrevKeyWordOffset: 10}
	out := Classify(req, word)

	if out.Word.PrevKeyWord != "" {
		t.Errorf("PrevKeyWord = %q, want cleared (belongs to a previous statement)", out.Word.PrevKeyWord)
	}
	if out.QueryType != QueryTypeUnset {
		t.Errorf("QueryType = %v, want QueryTypeUnset once PrevKeyWord is discarded", out.QueryType)
	}
}
