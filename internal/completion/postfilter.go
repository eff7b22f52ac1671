package completion

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/sadopc/gotermsql/internal/dialect"
)

// PostFilter runs the post-filter pipeline over the builder's object
// proposals, then appends keyword assist and hippie proposals (spec §4.7).
func PostFilter(req Request, cls ClassifierOutput, objectProposals []Proposal) []Proposal {
	out := dedupeByDisplayString(objectProposals)
	out = hideCrossContainerDuplicates(req, out)
	// Per-container, per-object-class glob filters (spec §4.7 step 3) are
	// not modeled: this codebase's catalog capability set has no
	// include/exclude-glob hook on Container, so there is nothing to apply.

	if cls.SuppressAll {
		return out
	}

	exclude := make(map[string]bool, len(out))
	for _, p := range out {
		exclude[strings.ToLower(p.DisplayString)] = true
	}

	out = append(out, KeywordAssist(req, cls)...)

	if req.Ctx.Config.HippieEnabled {
		out = append(out, HippieProposals(req.Document, req.CursorOffset, cls.SearchPrefix, exclude)...)
	}

	return dedupeByDisplayString(out)
}

// dedupeByDisplayString keeps the first proposal for each display string
// (spec §4.7 step 1, §8 "no duplicate display strings").
func dedupeByDisplayString(proposals []Proposal) []Proposal {
	seen := make(map[string]bool, len(proposals))
	out := make([]Proposal, 0, len(proposals))
	for _, p := range proposals {
		if seen[p.DisplayString] {
			continue
		}
		seen[p.DisplayString] = true
		out = append(out, p)
	}
	return out
}

// hideCrossContainerDuplicates drops, for any two proposals with the same
// backing-object name, the one not belonging to the active container
// (spec §4.7 step 2).
func hideCrossContainerDuplicates(req Request, proposals []Proposal) []Proposal {
	if !req.Ctx.Config.HideDuplicates || len(req.Ctx.ExecContext.SelectedObjects) == 0 {
		return proposals
	}
	active := req.Ctx.ExecContext.SelectedObjects[0]

	byName := make(map[string][]int)
	for i, p := range proposals {
		if p.BackingObject == nil {
			continue
		}
		key := strings.ToLower(p.BackingObject.Name())
		byName[key] = append(byName[key], i)
	}

	drop := make(map[int]bool)
	for _, idxs := range byName {
		if len(idxs) < 2 {
			continue
		}
		activeIdx := -1
		for _, i := range idxs {
			if proposals[i].ContainerObject != nil && strings.EqualFold(proposals[i].ContainerObject.Name(), active.Name()) {
				activeIdx = i
				break
			}
		}
		if activeIdx == -1 {
			continue
		}
		for _, i := range idxs {
			if i != activeIdx {
				drop[i] = true
			}
		}
	}

	out := make([]Proposal, 0, len(proposals))
	for i, p := range proposals {
		if !drop[i] {
			out = append(out, p)
		}
	}
	return out
}

// KeywordAssist matches wordPart against the dialect's keyword set,
// excluding TYPE keywords, and restricts to allowedKeywordSet when the
// classifier context names one (spec §4.7 step 4). Suppressed entirely in
// STRING partition (spec §8 "string-partition purity").
func KeywordAssist(req Request, cls ClassifierOutput) []Proposal {
	if req.Partition == PartitionString {
		return nil
	}
	dlt := req.Ctx.Dialect
	prefix := cls.SearchPrefix
	allowed := allowedKeywordSet(cls, dlt)

	type scoredKeyword struct {
		word  string
		kind  Kind
		score int
	}
	var matches []scoredKeyword
	for _, kw := range dlt.GetMatchedKeywords() {
		kt := dlt.GetKeywordType(kw)
		if kt == dialect.KeywordTypeType {
			continue
		}
		if allowed != nil && !allowed[strings.ToUpper(kw)] {
			continue
		}
		score := fuzzyScoreAgainst(kw, prefix)
		if prefix != "" && score < 0 {
			continue
		}
		matches = append(matches, scoredKeyword{kw, kindForKeywordType(kt), score})
	}

	if !req.Ctx.Config.SimpleMode {
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].score < matches[j].score })
	}

	out := make([]Proposal, 0, len(matches))
	for _, m := range matches {
		rep := applyInsertCase(m.word, req.Ctx.Config.InsertCase)
		out = append(out, Proposal{
			DisplayString: rep,
			ReplaceString: rep,
			CursorOffset:  len(rep),
			Kind:          m.kind,
		})
	}
	return out
}

func fuzzyScoreAgainst(word, prefix string) int {
	if prefix == "" {
		return 0
	}
	matches := fuzzy.Find(prefix, []string{word})
	if len(matches) == 0 {
		return -1
	}
	return matches[0].Score
}

func kindForKeywordType(kt dialect.KeywordType) Kind {
	switch kt {
	case dialect.KeywordTypeFunction:
		return KindFunction
	case dialect.KeywordTypeKeyword:
		return KindKeyword
	default:
		return KindOther
	}
}

// allowedKeywordSet computes the restricted keyword set for a few
// classifier transitions (spec §4.7 step 4); nil means "no restriction
// beyond kind filtering".
func allowedKeywordSet(cls ClassifierOutput, dlt *dialect.Dialect) map[string]bool {
	switch strings.ToUpper(cls.Word.PrevKeyWord) {
	case "SELECT":
		return map[string]bool{"FROM": true}
	case "DELETE":
		return map[string]bool{"FROM": true}
	case "UPDATE":
		return map[string]bool{"SET": true}
	case "":
		set := make(map[string]bool)
		addUpper := func(words []string) {
			for _, w := range words {
				set[strings.ToUpper(w)] = true
			}
		}
		addUpper(dlt.GetQueryKeywords())
		addUpper(dlt.GetDMLKeywords())
		addUpper(dlt.GetDDLKeywords())
		addUpper(dlt.GetExecuteKeywords())
		return set
	default:
		return nil
	}
}
