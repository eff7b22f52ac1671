package completion

import (
	"context"
)

// Analyzer runs one completion analysis (spec §3's lifecycle: created with
// a request, run once, then exposes its proposal list read-only).
type Analyzer struct {
	req       Request
	proposals []Proposal
	ran       bool
}

// NewAnalyzer builds an Analyzer over req. The analyzer instance is
// single-use: call Run exactly once, then read Proposals.
func NewAnalyzer(req Request) *Analyzer {
	return &Analyzer{req: req}
}

// Run executes classifier -> resolver -> builder -> post-filter exactly
// once, populating Proposals(). It returns ErrCancelled if the context is
// cancelled before completion (spec §5, §7); any partial proposal list
// from a cancelled run is discarded.
func (a *Analyzer) Run(ctx context.Context) error {
	if a.ran {
		return nil
	}
	a.ran = true

	if err := ctx.Err(); err != nil {
		return ErrCancelled
	}

	word := DetectWord(a.req.Document, a.req.CursorOffset, a.req.Ctx.Dialect)
	cls := Classify(a.req, word)

	var statementText string
	if a.req.Statement != nil {
		statementText = a.req.Statement.Text
	}
	refs := NewTableReferenceAnalyzer(statementText, a.req.Ctx.Config.ExperimentalReferenceAnalyzer)

	if err := ctx.Err(); err != nil {
		return ErrCancelled
	}

	resolved, err := Resolve(ctx, a.req, cls, refs)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return ErrCancelled
	}

	objectProposals := BuildProposals(a.req, cls, resolved, refs)
	a.proposals = PostFilter(a.req, cls, objectProposals)

	return nil
}

// Proposals returns the analyzer's output. Valid only after Run returns
// nil; an analyzer that hasn't run, or whose run was cancelled, returns an
// empty slice rather than nil panics (spec §7's cancel contract: "caller
// ignores on cancel").
func (a *Analyzer) Proposals() []Proposal {
	return a.proposals
}
