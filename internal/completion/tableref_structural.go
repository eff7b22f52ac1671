package completion

import (
	"strings"

	"github.com/freeeve/machparse"
	"github.com/freeeve/machparse/ast"
)

// structuralTableRefAnalyzer is the opt-in, real-parse implementation of
// TableReferenceAnalyzer (spec §4.2), enabled by
// Config.ExperimentalReferenceAnalyzer. It parses the active statement with
// machparse and walks the AST for AliasedTableExpr/TableName nodes,
// recovering both explicit and implicit (bare-name) table references.
type structuralTableRefAnalyzer struct {
	statementText string
}

// NewStructuralTableRefAnalyzer builds the machparse-backed analyzer. Parse
// failures are swallowed (spec §7: "parser errors... the affected
// extraction yields an empty map") rather than surfaced, since the
// statement under the cursor is frequently incomplete while the user is
// still typing it.
func NewStructuralTableRefAnalyzer(statementText string) TableReferenceAnalyzer {
	return &structuralTableRefAnalyzer{statementText: statementText}
}

// allOrdered walks the parsed statement once, returning both the alias map
// and the qualified names in the order machparse's walk visits them (which
// follows the statement's own left-to-right structure), so
// OrderedTableNames can report the real leftmost table rather than an
// alphabetical one.
func (s *structuralTableRefAnalyzer) allOrdered() ([]string, map[string]string) {
	out := make(map[string]string)
	var order []string
	record := func(name, alias string, overwrite bool) {
		if _, exists := out[name]; !exists {
			order = append(order, name)
			out[name] = alias
			return
		}
		if overwrite {
			out[name] = alias
		}
	}

	stmt, err := machparse.Parse(s.statementText)
	if err != nil || stmt == nil {
		return order, out
	}

	machparse.Walk(stmt, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.AliasedTableExpr:
			if tn, ok := node.Expr.(*ast.TableName); ok {
				record(qualifiedPartsName(tn), node.Alias, true)
			}
		case *ast.TableName:
			// Only record bare TableName nodes not already captured as
			// the Expr of an AliasedTableExpr (those are handled above);
			// duplicates here are harmless since an existing alias entry
			// is never overwritten with "".
			record(qualifiedPartsName(node), "", false)
		}
		return true
	})

	return order, out
}

func (s *structuralTableRefAnalyzer) all() map[string]string {
	_, out := s.allOrdered()
	return out
}

func (s *structuralTableRefAnalyzer) OrderedTableNames() []string {
	order, _ := s.allOrdered()
	return order
}

func qualifiedPartsName(tn *ast.TableName) string {
	return strings.Join(tn.Parts, ".")
}

func (s *structuralTableRefAnalyzer) TableAliasesFromQuery() map[string]string {
	return s.all()
}

func (s *structuralTableRefAnalyzer) TableAliases(prefix string) map[string]string {
	all := s.all()
	if prefix == "" {
		return all
	}
	lowerPrefix := strings.ToLower(prefix)
	out := make(map[string]string)
	for qualified, alias := range all {
		if strings.HasPrefix(strings.ToLower(qualified), lowerPrefix) ||
			(alias != "" && strings.HasPrefix(strings.ToLower(alias), lowerPrefix)) {
			out[qualified] = alias
		}
	}
	return out
}

// NewTableReferenceAnalyzer selects the pattern-based or structural
// implementation per the experimental-reference-analyzer option (spec
// §4.2, §9: "expose as a single capability selected at construction").
func NewTableReferenceAnalyzer(statementText string, useStructural bool) TableReferenceAnalyzer {
	if useStructural {
		return NewStructuralTableRefAnalyzer(statementText)
	}
	return NewPatternTableRefAnalyzer(statementText)
}
