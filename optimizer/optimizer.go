// Package optimizer rewrites a document through a fixed, ordered list of
// total rewrite rules. Rules never touch code blocks or link URLs, and a
// second pass over the optimizer's own output makes no further changes.
package optimizer

import (
	"fmt"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
)

// Rule is one named document transform. Every rule is total: it returns
// a valid document for any input and never panics on malformed text.
type Rule struct {
	Name  string
	Apply func(*document.Document) *document.Document
}

// Rules is the fixed rewrite order. Reordering is a deliberate act, not
// an accident of control flow.
var Rules = []Rule{
	{"heading-levels", fixHeadingLevels},
	{"paragraph-split", splitLongParagraphs},
	{"transitions", insertTransitions},
	{"filler-removal", removeFillers},
	{"passive-to-active", passiveToActive},
	{"sentence-split", splitLongSentences},
	{"canonical-terms", canonicalizeTerms},
	{"formal-phrases", replaceFormalPhrases},
	{"personalization", personalize},
}

// Result reports one optimization pass.
type Result struct {
	Before       *document.Document        `json:"-"`
	After        *document.Document        `json:"-"`
	BeforeScores map[scoring.Criterion]int `json:"beforeScores"`
	AfterScores  map[scoring.Criterion]int `json:"afterScores"`
	AppliedRules []string                  `json:"appliedRules"`
	Warnings     []string                  `json:"warnings"`
}

// Optimize runs every rule in order and reports before/after scores.
// A criterion that regresses is surfaced as a warning, never hidden;
// the best-effort output is returned regardless.
func Optimize(doc *document.Document) *Result {
	res := &Result{
		Before:       doc,
		BeforeScores: scoring.Score(doc).Values(),
	}

	// Reflow the body through Segment/Join once up front so the
	// per-rule diffs below record semantic changes, not the whitespace
	// normalization the first rule would otherwise absorb.
	current := rebuild(doc, func(blocks []document.Block) []document.Block { return blocks })
	for _, rule := range Rules {
		next := rule.Apply(current)
		if next.Body() != current.Body() {
			res.AppliedRules = append(res.AppliedRules, rule.Name)
		}
		current = next
	}

	res.After = current
	res.AfterScores = scoring.Score(current).Values()

	for _, c := range scoring.Criteria {
		if res.AfterScores[c] < res.BeforeScores[c] {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s regressed from %d to %d", c, res.BeforeScores[c], res.AfterScores[c]))
		}
	}
	return res
}
