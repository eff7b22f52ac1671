package completion

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/sadopc/gotermsql/internal/catalog"
	"github.com/sadopc/gotermsql/internal/dialect"
)

// BuildProposals converts resolver candidates into proposal records (spec
// §4.5). Alias-derived table proposals would be inserted at position 0 by
// the caller (spec §5's ordering guarantee); this analyzer has no such
// proposals since the resolver always returns catalog-backed candidates
// directly, so BuildProposals preserves candidate order as given.
func BuildProposals(req Request, cls ClassifierOutput, resolved ResolverOutput, refs TableReferenceAnalyzer) []Proposal {
	usedAliases := make(map[string]bool)
	out := make([]Proposal, 0, len(resolved.Candidates))
	for _, c := range resolved.Candidates {
		switch {
		case c.Value != nil:
			out = append(out, buildValueProposal(req, c))
		case c.AllColumns:
			out = append(out, buildAllColumnsProposal(c))
		case c.JoinConditionText != "":
			out = append(out, buildJoinConditionProposal(c))
		case c.Object != nil:
			out = append(out, buildObjectProposal(req, cls, c, refs, usedAliases))
		}
	}
	return out
}

func buildValueProposal(req Request, c Candidate) Proposal {
	v := c.Value
	display := v.SQLLiteral
	if v.Label != "" {
		display = v.SQLLiteral + " - " + v.Label
	}
	replace := v.SQLLiteral
	if req.Partition != PartitionString {
		replace = sqlLiteralForm(v.SQLLiteral)
	}
	return Proposal{
		DisplayString: display,
		ReplaceString: replace,
		CursorOffset:  len(replace),
		Kind:          KindLiteral,
	}
}

// sqlLiteralForm converts a raw value into a SQL literal for insertion
// outside of an existing string literal (spec §4.5's value handler).
func sqlLiteralForm(v string) string {
	if v == "true" || v == "false" {
		return v
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func buildAllColumnsProposal(c Candidate) Proposal {
	return Proposal{
		DisplayString:   "*",
		ReplaceString:   c.AllColumnsText,
		CursorOffset:    len(c.AllColumnsText),
		Kind:            KindOther,
		ContainerObject: c.Container,
	}
}

func buildJoinConditionProposal(c Candidate) Proposal {
	return Proposal{
		DisplayString: c.JoinConditionText,
		ReplaceString: c.JoinConditionText,
		CursorOffset:  len(c.JoinConditionText),
		Kind:          KindOther,
	}
}

func buildObjectProposal(req Request, cls ClassifierOutput, c Candidate, refs TableReferenceAnalyzer, usedAliases map[string]bool) Proposal {
	dlt := req.Ctx.Dialect
	cfg := req.Ctx.Config
	name := c.Object.Name()
	replace := name
	isFQ := false

	if needsFullQualification(req, cls, cfg, c) {
		replace = fullyQualifiedName(c.Object, dlt)
		isFQ = true
	}

	if !isFQ && !dlt.IsQuoted(replace) {
		if dlt.GetKeywordType(replace) == dialect.KeywordTypeKeyword {
			replace = applyInsertCase(replace, cfg.InsertCase)
		} else if dlt.StoresUnquotedCase() {
			replace = strings.ToLower(replace)
		}
	}

	if wantsWhereQualification(cls) {
		if _, isAttr := c.Object.(catalog.Attribute); isAttr {
			if owner := ownerAliasOf(c.Container, refs); owner != "" {
				replace = owner + "." + replace
			}
		}
	}

	if isEntityCandidate(c.Object) && aliasInjectionApplies(cls, cfg, dlt) {
		alias := generateAlias(name, usedAliases, dlt, refs)
		if alias != "" && !strings.EqualFold(alias, name) {
			usedAliases[strings.ToLower(alias)] = true
			if cfg.AliasInsertMode == AliasInsertExtended {
				replace += " AS " + alias
			} else {
				replace += " " + alias
			}
		}
	}

	if c.JoinCondition {
		replace += " ON"
	}

	kind := KindOther
	cursorOffset := len(replace)
	if _, isProc := c.Object.(catalog.Procedure); isProc {
		kind = KindFunction
		replace += "()"
		cursorOffset = len(replace) - 1
	}

	return Proposal{
		DisplayString:    replace,
		ReplaceString:    replace,
		CursorOffset:     cursorOffset,
		Kind:             kind,
		Score:            scoreFor(c),
		BackingObject:    c.Object,
		ContainerObject:  c.Container,
		IsFullyQualified: isFQ,
		IsSingleObject:   true,
	}
}

func needsFullQualification(req Request, cls ClassifierOutput, cfg Config, c Candidate) bool {
	if cfg.UseFQNames {
		return true
	}
	if _, ok := c.Object.(catalog.ObjectReference); !ok {
		return false
	}
	if strings.Contains(cls.SearchPrefix, ".") {
		return false
	}
	if len(req.Ctx.ExecContext.SelectedObjects) == 0 {
		return true
	}
	sel := req.Ctx.ExecContext.SelectedObjects[0]
	return c.Container == nil || !strings.EqualFold(sel.Name(), c.Container.Name())
}

// fullyQualifiedName joins an object's ancestor chain (excluding the
// data-source root) with the dialect's catalog separator.
func fullyQualifiedName(obj catalog.Node, dlt *dialect.Dialect) string {
	var parts []string
	cur := obj
	for cur != nil {
		parts = append([]string{cur.Name()}, parts...)
		p, ok := cur.Parent()
		if !ok || p == nil {
			break
		}
		cur = p
	}
	if len(parts) > 1 {
		parts = parts[1:] // drop the data-source root's own name
	}
	sep := string(rune(dlt.GetCatalogSeparator()))
	return strings.Join(parts, sep)
}

func wantsWhereQualification(cls ClassifierOutput) bool {
	if cls.Word.WordPart != "" {
		return false
	}
	switch strings.ToUpper(cls.Word.PrevKeyWord) {
	case "WHERE", "AND":
		return true
	default:
		return false
	}
}

func ownerAliasOf(container catalog.Node, refs TableReferenceAnalyzer) string {
	if container == nil {
		return ""
	}
	name := container.Name()
	for qn, alias := range refs.TableAliasesFromQuery() {
		if strings.EqualFold(lastSegment(qn), name) {
			if alias != "" {
				return alias
			}
			return name
		}
	}
	return ""
}

func isEntityCandidate(obj catalog.Node) bool {
	_, ok := obj.(catalog.Entity)
	return ok
}

func aliasInjectionApplies(cls ClassifierOutput, cfg Config, dlt *dialect.Dialect) bool {
	if cfg.AliasInsertMode == AliasInsertNone {
		return false
	}
	switch strings.ToUpper(cls.Word.PrevKeyWord) {
	case "FROM", "JOIN":
		return dlt.SupportsAliasInSelect()
	case "INTO":
		return dlt.SupportsAliasInUpdate()
	default:
		return false
	}
}

// generateAlias synthesizes a fresh alias from name's uppercase initials,
// appending a numeric suffix until it is unique against aliases already
// used in this run, dialect keywords, and known table references (spec
// §4.5).
func generateAlias(name string, used map[string]bool, dlt *dialect.Dialect, refs TableReferenceAnalyzer) string {
	base := initials(name)
	if base == "" {
		return ""
	}
	candidate := base
	suffix := 1
	for aliasTaken(candidate, used, dlt, refs) {
		suffix++
		candidate = base + strconv.Itoa(suffix)
	}
	return candidate
}

func initials(name string) string {
	var b strings.Builder
	newWord := true
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' {
			newWord = true
			continue
		}
		if newWord {
			b.WriteRune(unicode.ToUpper(r))
			newWord = false
		}
	}
	return b.String()
}

func aliasTaken(candidate string, used map[string]bool, dlt *dialect.Dialect, refs TableReferenceAnalyzer) bool {
	lower := strings.ToLower(candidate)
	if used[lower] {
		return true
	}
	if dlt.GetKeywordType(candidate) != dialect.KeywordTypeNone {
		return true
	}
	for _, alias := range refs.TableAliasesFromQuery() {
		if alias != "" && strings.ToLower(alias) == lower {
			return true
		}
	}
	return false
}

func applyInsertCase(s string, mode InsertCase) string {
	switch mode {
	case InsertCaseUpper:
		return strings.ToUpper(s)
	case InsertCaseLower:
		return strings.ToLower(s)
	default:
		return s
	}
}

func scoreFor(c Candidate) int {
	if c.Score > 0 {
		return c.Score
	}
	return 0
}
