package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ObjectType tags what kind of node a structure-assistant search is looking
// for (spec §6's findObjectsByMask "types" parameter).
type ObjectType int

const (
	ObjectTypeTable ObjectType = iota
	ObjectTypeView
	ObjectTypeColumn
	ObjectTypeProcedure
	ObjectTypeSchema
	ObjectTypeAny
)

// SearchParams bundles the findObjectsByMask arguments (spec §6).
type SearchParams struct {
	Types         []ObjectType
	Mask          string // SQL-LIKE style mask, built by completion's mask.go
	Parent        Container
	CaseSensitive bool
	GlobalSearch  bool
	MaxResults    int
}

// StructureAssistant searches a catalog by mask without requiring the
// caller to already know the schema (spec §4.4.2 fallback (b), §4.4.3
// procedure search, §D fuzzy fallback).
type StructureAssistant struct {
	nav *Navigator
}

// NewStructureAssistant builds an assistant over nav.
func NewStructureAssistant(nav *Navigator) *StructureAssistant {
	return &StructureAssistant{nav: nav}
}

// GetAutoCompleteObjectTypes returns the object types this assistant knows
// how to flatten and search.
func (a *StructureAssistant) GetAutoCompleteObjectTypes() []ObjectType {
	return []ObjectType{ObjectTypeTable, ObjectTypeView, ObjectTypeColumn, ObjectTypeProcedure, ObjectTypeSchema}
}

// FindObjectsByMask flattens the searchable universe (params.Parent if set
// and not a global search, else the whole Navigator root) and fuzzy-scores
// each candidate name against params.Mask, returning up to MaxResults hits
// ordered by descending score.
func (a *StructureAssistant) FindObjectsByMask(ctx context.Context, params SearchParams) ([]Node, error) {
	root := params.Parent
	if root == nil || params.GlobalSearch {
		root = a.nav.Root()
	}

	candidates, err := a.flatten(ctx, root, 0)
	if err != nil {
		return nil, err
	}

	pattern := maskToFuzzyPattern(params.Mask)
	if pattern == "" {
		if params.MaxResults > 0 && len(candidates) > params.MaxResults {
			candidates = candidates[:params.MaxResults]
		}
		return candidates, nil
	}

	source := nodeNameSource(candidates)
	matches := fuzzy.FindFrom(pattern, source)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	max := params.MaxResults
	if max <= 0 || max > len(matches) {
		max = len(matches)
	}
	out := make([]Node, 0, max)
	for i := 0; i < max; i++ {
		out = append(out, candidates[matches[i].Index])
	}
	return out, nil
}

// flatten walks depth first, bounded to a shallow depth to keep the search
// space sane for large catalogs (data source → catalog → schema → entity →
// attribute is at most 5 deep).
func (a *StructureAssistant) flatten(ctx context.Context, container Container, depth int) ([]Node, error) {
	if depth > 4 {
		return nil, nil
	}
	kids, err := a.nav.Children(ctx, container)
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(kids))
	for _, k := range kids {
		out = append(out, k)
		if c, ok := k.(Container); ok {
			nested, err := a.flatten(ctx, c, depth+1)
			if err == nil {
				out = append(out, nested...)
			}
		}
	}
	return out, nil
}

// maskToFuzzyPattern strips the SQL-LIKE wildcard characters a mask.go mask
// carries ("%") since fuzzy.FindFrom works on a bare pattern string.
func maskToFuzzyPattern(mask string) string {
	return strings.Trim(mask, "%")
}

type nodeNameSource []Node

func (s nodeNameSource) String(i int) string { return strings.ToLower(s[i].Name()) }
func (s nodeNameSource) Len() int            { return len(s) }
