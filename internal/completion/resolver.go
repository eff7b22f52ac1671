package completion

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/sadopc/gotermsql/internal/catalog"
)

// Candidate is one resolver-produced hit, handed to the proposal builder
// (spec §4.4, §4.5). Exactly one of Object, JoinConditionText, or Value is
// populated, except AllColumns which carries its own pre-built text.
type Candidate struct {
	Object        catalog.Node
	Container     catalog.Node
	Score         int // -1 means startsWith filtering (no fuzzy score); >=0 is a fuzzy score
	AllColumns    bool
	AllColumnsText string
	JoinCondition bool // append " ON" to this object's replacement (spec §4.4.1 JOIN filtering)
	JoinConditionText string
	Value         *ValueCandidate
}

// ValueCandidate is a resolved value-literal hit (spec §4.5 value enumeration).
type ValueCandidate struct {
	SQLLiteral string
	Label      string
}

// ResolverOutput is what Resolve hands to the proposal builder.
type ResolverOutput struct {
	Candidates     []Candidate
	SearchFinished bool
}

// Resolve drives the query-type-specific search (spec §4.4).
func Resolve(ctx context.Context, req Request, cls ClassifierOutput, refs TableReferenceAnalyzer) (ResolverOutput, error) {
	if cls.SuppressAll {
		return ResolverOutput{SearchFinished: true}, nil
	}

	if cls.QueryType == QueryTypeExec {
		return resolveProcedureSearch(ctx, req, cls)
	}

	var out ResolverOutput
	var err error
	if cls.SearchPrefix == "" || req.Partition == PartitionString {
		out, err = resolveEmptyPrefix(ctx, req, cls, refs)
	} else {
		out, err = resolveNonEmptyPrefix(ctx, req, cls, refs)
	}
	if err != nil || out.SearchFinished {
		return out, err
	}

	if cls.ScheduleProcedureSearch || (cls.QueryType == QueryTypeColumn && req.Ctx.Config.SearchProcedures) {
		if procOut, perr := resolveProcedureSearch(ctx, req, cls); perr == nil {
			out.Candidates = append(out.Candidates, procOut.Candidates...)
		}
	}

	return out, nil
}

// resolveEmptyPrefix implements spec §4.4.1.
func resolveEmptyPrefix(ctx context.Context, req Request, cls ClassifierOutput, refs TableReferenceAnalyzer) (ResolverOutput, error) {
	nav := req.Ctx.Navigator
	cfg := req.Ctx.Config
	var out ResolverOutput

	if cls.QueryType != QueryTypeColumn {
		container := defaultContainer(req)
		kids, err := enumerateChildren(ctx, nav, container, "", "", cfg)
		if err == nil {
			out.Candidates = append(out.Candidates, kids...)
		}
		if cls.QueryType == QueryTypeJoin {
			filterJoinCompatible(ctx, &out, req, refs)
		}
		return out, nil
	}

	aliasMap := refs.TableAliases("")
	names := refs.OrderedTableNames()
	var roots []catalog.Node
	for _, qn := range names {
		obj, ok := resolveTableReference(ctx, req, qn)
		if !ok {
			continue
		}
		roots = append(roots, obj)

		if strings.EqualFold(cls.Word.PrevKeyWord, "ON") && len(roots) > 1 {
			if rightEnt, ok := obj.(catalog.Entity); ok {
				if leftEnt, ok := roots[0].(catalog.Entity); ok {
					conds := joinConditionCandidates(ctx, rightEnt, leftEnt, aliasMap[qn], aliasMap[names[0]])
					out.Candidates = append(out.Candidates, conds...)
				}
			}
		}

		if cfg.ShowValues && isValuePosition(req, cls) {
			out.Candidates = append(out.Candidates, valueEnumerationCandidates(ctx, req, cls, obj)...)
		}
	}

	if req.Partition != PartitionString {
		if len(roots) == 0 {
			if ds := nav.Root(); ds != nil {
				kids, err := enumerateChildren(ctx, nav, ds, "", "", cfg)
				if err == nil {
					out.Candidates = append(out.Candidates, kids...)
				}
			}
		}
		for _, root := range roots {
			kids, err := enumerateChildren(ctx, nav, root, "", "", cfg)
			if err == nil {
				out.Candidates = append(out.Candidates, kids...)
			}
		}
	}

	return out, nil
}

// resolveNonEmptyPrefix implements spec §4.4.2.
func resolveNonEmptyPrefix(ctx context.Context, req Request, cls ClassifierOutput, refs TableReferenceAnalyzer) (ResolverOutput, error) {
	dlt := req.Ctx.Dialect
	nav := req.Ctx.Navigator
	cfg := req.Ctx.Config
	prefix := cls.SearchPrefix
	var out ResolverOutput

	if cls.QueryType == QueryTypeColumn {
		if dlt.ContainsSeparator(prefix) {
			parts := dlt.SplitIdentifier(prefix)
			aliasTok := parts[0]
			rest := strings.Join(parts[1:], string(rune(dlt.GetStructSeparator())))
			if container, ok := resolveAliasToken(ctx, req, refs, aliasTok); ok {
				kids, err := enumerateChildren(ctx, nav, container, rest, aliasTok+string(rune(dlt.GetStructSeparator())), cfg)
				if err == nil {
					out.Candidates = kids
				}
				return out, nil
			}
		} else if prefix == "*" {
			if aliasTok, ok := starPrecedingAlias(cls); ok {
				if container, ok := resolveAliasToken(ctx, req, refs, aliasTok); ok {
					kids, err := enumerateChildren(ctx, nav, container, "*", aliasTok+".", cfg)
					if err == nil {
						out.Candidates = kids
					}
					return out, nil
				}
			}
		}

		if _, ok := resolveAliasToken(ctx, req, refs, prefix); ok {
			out.SearchFinished = true
			return out, nil
		}
	}

	segs := dlt.SplitIdentifier(prefix)
	lastIncomplete := len(segs) == 0 || prefix[len(prefix)-1] != dlt.GetStructSeparator()
	var startSegs []string
	mask := ""
	if lastIncomplete && len(segs) > 0 {
		mask = segs[len(segs)-1]
		startSegs = segs[:len(segs)-1]
	} else {
		startSegs = segs
	}

	if container, ok := descendContainers(ctx, req, startSegs); ok {
		kids, err := enumerateChildren(ctx, nav, container, mask, qualifyPrefix(startSegs, dlt), cfg)
		if err == nil {
			out.Candidates = kids
		}
		return out, nil
	}

	if len(startSegs) == 0 {
		if _, ok := resolveAliasToken(ctx, req, refs, mask); ok {
			out.SearchFinished = true
			return out, nil
		}
		out.Candidates = fuzzyStructureFallback(ctx, req, mask)
	}

	return out, nil
}

func qualifyPrefix(segs []string, dlt interface{ GetStructSeparator() byte }) string {
	if len(segs) == 0 {
		return ""
	}
	return strings.Join(segs, string(rune(dlt.GetStructSeparator()))) + string(rune(dlt.GetStructSeparator()))
}

// resolveProcedureSearch implements spec §4.4.3.
func resolveProcedureSearch(ctx context.Context, req Request, cls ClassifierOutput) (ResolverOutput, error) {
	assistant := req.Ctx.Assistant
	if assistant == nil {
		return ResolverOutput{}, nil
	}
	var parent catalog.Container
	if len(req.Ctx.ExecContext.SelectedObjects) > 0 {
		if c, ok := req.Ctx.ExecContext.SelectedObjects[0].(catalog.Container); ok {
			parent = c
		}
	}
	if parent == nil {
		parent = req.Ctx.ExecContext.SelectedSchema
	}

	mask := BuildMask(cls.SearchPrefix, req.Ctx.Dialect, req.Ctx.Config.SearchInsideNames)
	params := catalog.SearchParams{
		Types:        []catalog.ObjectType{catalog.ObjectTypeProcedure},
		Mask:         mask,
		Parent:       parent,
		GlobalSearch: req.Ctx.Config.SearchGlobally,
	}
	nodes, err := assistant.FindObjectsByMask(ctx, params)
	if err != nil {
		return ResolverOutput{}, nil
	}
	out := make([]Candidate, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Candidate{Object: n, Score: 1})
	}
	return ResolverOutput{Candidates: out}, nil
}

// enumerateChildren implements spec §4.4.4.
func enumerateChildren(ctx context.Context, nav *catalog.Navigator, parent catalog.Node, startPart, qualify string, cfg Config) ([]Candidate, error) {
	if parent == nil {
		return nil, nil
	}
	if alias, ok := parent.(catalog.AliasRef); ok {
		mon := catalog.NewStaleMonitor(ctx)
		if target, err := alias.Target(ctx, mon); err == nil && target != nil {
			parent = target
		}
	}

	kids, err := childNodes(ctx, nav, parent)
	if err != nil {
		return nil, err
	}

	var visible []catalog.Node
	for _, k := range kids {
		if h, ok := k.(catalog.Hidden); ok && h.Hidden() {
			continue
		}
		visible = append(visible, k)
	}

	if startPart == "*" && !cfg.SimpleMode {
		return []Candidate{allColumnsCandidate(visible, parent, qualify)}, nil
	}

	type scored struct {
		node  catalog.Node
		score int
	}
	var matched []scored
	if cfg.SearchInsideNames {
		source := nodeSource(visible)
		for _, m := range fuzzy.FindFrom(startPart, source) {
			matched = append(matched, scored{visible[m.Index], m.Score})
		}
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].score > matched[j].score })
	} else {
		lowerPrefix := strings.ToLower(startPart)
		for _, k := range visible {
			if strings.HasPrefix(strings.ToLower(k.Name()), lowerPrefix) {
				matched = append(matched, scored{k, -1})
			}
		}
		if cfg.SortAlphabetically {
			sort.SliceStable(matched, func(i, j int) bool {
				return strings.ToLower(matched[i].node.Name()) < strings.ToLower(matched[j].node.Name())
			})
		}
	}

	out := make([]Candidate, 0, len(matched))
	for _, m := range matched {
		out = append(out, Candidate{Object: m.node, Container: parent, Score: m.score})
	}
	return out, nil
}

func childNodes(ctx context.Context, nav *catalog.Navigator, parent catalog.Node) ([]catalog.Node, error) {
	switch p := parent.(type) {
	case catalog.Container:
		return nav.Children(ctx, p)
	case catalog.Entity:
		mon := catalog.NewStaleMonitor(ctx)
		attrs, err := p.Attributes(ctx, mon)
		if err != nil {
			return nil, err
		}
		out := make([]catalog.Node, 0, len(attrs))
		for _, a := range attrs {
			out = append(out, a)
		}
		return out, nil
	default:
		return nil, nil
	}
}

func allColumnsCandidate(kids []catalog.Node, parent catalog.Node, qualify string) Candidate {
	names := make([]string, 0, len(kids))
	for _, k := range kids {
		names = append(names, qualify+k.Name())
	}
	return Candidate{Container: parent, AllColumns: true, AllColumnsText: strings.Join(names, ", ")}
}

type nodeSource []catalog.Node

func (s nodeSource) String(i int) string { return strings.ToLower(s[i].Name()) }
func (s nodeSource) Len() int            { return len(s) }

// descendContainers walks a dotted path of container names from root, or
// (on the first segment only) from each selected-object container if root
// descent fails (spec §4.4.2).
func descendContainers(ctx context.Context, req Request, segs []string) (catalog.Node, bool) {
	nav := req.Ctx.Navigator
	if len(segs) == 0 {
		return defaultContainer(req), true
	}

	var cur catalog.Node
	if n, ok := nav.ResolveObject(ctx, segs[:1]); ok {
		cur = n
	} else {
		for _, sel := range req.Ctx.ExecContext.SelectedObjects {
			if c, ok := sel.(catalog.Container); ok {
				if n, ok := nav.Child(ctx, c, segs[0]); ok {
					cur = n
					break
				}
			}
		}
	}
	if cur == nil {
		return nil, false
	}

	for _, seg := range segs[1:] {
		c, ok := cur.(catalog.Container)
		if !ok {
			return nil, false
		}
		next, found := nav.Child(ctx, c, seg)
		if !found {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func defaultContainer(req Request) catalog.Node {
	if req.Ctx.ExecContext.SelectedSchema != nil {
		return req.Ctx.ExecContext.SelectedSchema
	}
	if req.Ctx.ExecContext.SelectedCatalog != nil {
		return req.Ctx.ExecContext.SelectedCatalog
	}
	if req.Ctx.Navigator != nil {
		return req.Ctx.Navigator.Root()
	}
	return nil
}

// resolveTableReference resolves a (possibly dotted) table-reference name
// produced by the table-reference analyzer against the root catalog, or
// the selected schema/catalog as a fallback for a bare name.
func resolveTableReference(ctx context.Context, req Request, qualifiedName string) (catalog.Node, bool) {
	dlt := req.Ctx.Dialect
	nav := req.Ctx.Navigator
	segs := dlt.SplitIdentifier(qualifiedName)
	if len(segs) == 0 {
		return nil, false
	}
	if node, ok := descendContainers(ctx, req, segs); ok {
		return node, true
	}
	last := segs[len(segs)-1]
	if req.Ctx.ExecContext.SelectedSchema != nil {
		if n, ok := nav.Child(ctx, req.Ctx.ExecContext.SelectedSchema, last); ok {
			return n, true
		}
	}
	if req.Ctx.ExecContext.SelectedCatalog != nil {
		if n, ok := nav.Child(ctx, req.Ctx.ExecContext.SelectedCatalog, last); ok {
			return n, true
		}
	}
	return nil, false
}

// resolveAliasToken resolves token (an alias, a bare table name, or the
// last segment of a qualified table name) against the statement's table
// references, returning the backing catalog node.
func resolveAliasToken(ctx context.Context, req Request, refs TableReferenceAnalyzer, token string) (catalog.Node, bool) {
	lower := strings.ToLower(token)
	all := refs.TableAliasesFromQuery()
	for qn, alias := range all {
		if alias != "" && strings.ToLower(alias) == lower {
			return resolveTableReference(ctx, req, qn)
		}
	}
	for qn := range all {
		if strings.ToLower(qn) == lower || strings.ToLower(lastSegment(qn)) == lower {
			return resolveTableReference(ctx, req, qn)
		}
	}
	return nil, false
}

func lastSegment(qualified string) string {
	idx := strings.LastIndex(qualified, ".")
	if idx < 0 {
		return qualified
	}
	return qualified[idx+1:]
}

// starPrecedingAlias detects the "t.*" pattern where wordPart landed empty
// but the preceding non-keyword word carries the struct separator (spec
// §4.4.2's bare-"*" special case).
func starPrecedingAlias(cls ClassifierOutput) (string, bool) {
	if strings.EqualFold(cls.Word.PrevKeyWord, "INTO") {
		return "", false
	}
	if len(cls.Word.PrevWords) == 0 {
		return "", false
	}
	pw := cls.Word.PrevWords[0]
	if idx := strings.LastIndex(pw, "."); idx > 0 {
		return pw[:idx], true
	}
	return "", false
}

func isValuePosition(req Request, cls ClassifierOutput) bool {
	switch strings.ToUpper(cls.Word.PrevKeyWord) {
	case "SET", "WHERE", "AND", "OR", "ON":
	default:
		return false
	}
	if req.Partition == PartitionString {
		return true
	}
	if len(cls.Word.PrevWords) > 0 {
		switch strings.ToUpper(cls.Word.PrevWords[0]) {
		case "LIKE", "ILIKE":
			return true
		}
	}
	delim := significantDelimiter(cls.Word.PrevDelimiter)
	return delim != "" && !strings.HasSuffix(delim, ")")
}

func valueEnumerationCandidates(ctx context.Context, req Request, cls ClassifierOutput, tableObj catalog.Node) []Candidate {
	if len(cls.Word.PrevWords) == 0 {
		return nil
	}
	ent, ok := tableObj.(catalog.Entity)
	if !ok {
		return nil
	}
	colName := cls.Word.PrevWords[0]
	mon := catalog.NewStaleMonitor(ctx)
	attrs, err := ent.Attributes(ctx, mon)
	if err != nil {
		return nil
	}
	var attr catalog.Attribute
	for _, a := range attrs {
		if strings.EqualFold(a.Name(), colName) {
			attr = a
			break
		}
	}
	if attr == nil {
		return nil
	}

	if dict, ok := attr.DictionaryRef(); ok {
		if kids, err := req.Ctx.Navigator.Children(ctx, dict); err == nil {
			out := make([]Candidate, 0, len(kids))
			for _, k := range kids {
				out = append(out, Candidate{Value: &ValueCandidate{SQLLiteral: k.Name(), Label: k.Name()}})
			}
			return out
		}
	}

	if attr.Enumerable() {
		if vals, err := attr.EnumValues(ctx, mon); err == nil {
			out := make([]Candidate, 0, len(vals))
			for _, v := range vals {
				if len(out) >= catalog.MaxAttributeValueProposals {
					break
				}
				out = append(out, Candidate{Value: &ValueCandidate{SQLLiteral: v}})
			}
			return out
		}
	}
	return nil
}

func joinConditionCandidates(ctx context.Context, rightEnt, leftEnt catalog.Entity, rightAlias, leftAlias string) []Candidate {
	mon := catalog.NewStaleMonitor(ctx)
	assocs, err := rightEnt.Associations(ctx, mon)
	if err != nil {
		return nil
	}
	rightRef := rightAlias
	if rightRef == "" {
		rightRef = rightEnt.Name()
	}
	leftRef := leftAlias
	if leftRef == "" {
		leftRef = leftEnt.Name()
	}

	var out []Candidate
	for _, a := range assocs {
		if a.To.Name() != leftEnt.Name() && a.From.Name() != leftEnt.Name() {
			continue
		}
		for i := range a.FromCols {
			if i >= len(a.ToCols) {
				break
			}
			text := rightRef + "." + a.FromCols[i] + " = " + leftRef + "." + a.ToCols[i]
			out = append(out, Candidate{JoinConditionText: text})
		}
	}
	return out
}

func filterJoinCompatible(ctx context.Context, out *ResolverOutput, req Request, refs TableReferenceAnalyzer) {
	names := refs.OrderedTableNames()
	if len(names) == 0 {
		return
	}
	leftNode, ok := resolveTableReference(ctx, req, names[0])
	if !ok {
		return
	}
	leftEnt, ok := leftNode.(catalog.Entity)
	if !ok {
		return
	}

	mon := catalog.NewStaleMonitor(ctx)
	var kept []Candidate
	for _, c := range out.Candidates {
		ent, ok := c.Object.(catalog.Entity)
		if !ok {
			continue
		}
		if ent.Name() == leftEnt.Name() {
			continue
		}
		assocs, err := ent.Associations(ctx, mon)
		if err != nil {
			continue
		}
		for _, a := range assocs {
			if a.To.Name() == leftEnt.Name() || a.From.Name() == leftEnt.Name() {
				c.JoinCondition = true
				kept = append(kept, c)
				break
			}
		}
	}
	out.Candidates = kept
}

func fuzzyStructureFallback(ctx context.Context, req Request, mask string) []Candidate {
	assistant := req.Ctx.Assistant
	if assistant == nil {
		return nil
	}
	m := BuildMask(mask, req.Ctx.Dialect, req.Ctx.Config.SearchInsideNames)
	params := catalog.SearchParams{
		Types:        assistant.GetAutoCompleteObjectTypes(),
		Mask:         m,
		GlobalSearch: true,
		MaxResults:   2,
	}
	nodes, err := assistant.FindObjectsByMask(ctx, params)
	if err != nil {
		return nil
	}
	out := make([]Candidate, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Candidate{Object: n, Score: 1})
	}
	return out
}
