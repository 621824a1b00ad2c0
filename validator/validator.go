// Package validator runs the independent publishing validators (grammar
// and style, link integrity, formatting, embedded code, publishing
// readiness), combines them into a weighted overall score and evaluates
// per-destination readiness gates.
package validator

import (
	"context"
	"fmt"
	"sort"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/metadata"
	"github.com/contentpipe/backend/scoring"
)

// DefaultPlatformMinimums are the per-destination score gates.
var DefaultPlatformMinimums = map[string]float64{
	metadata.PlatformBlog:       85,
	metadata.PlatformTwitter:    80,
	metadata.PlatformLinkedIn:   85,
	metadata.PlatformHackerNews: 90,
	metadata.PlatformMedium:     85,
	metadata.PlatformDevTo:      80,
}

const defaultMinWordCount = 1000

// Options configure a Validator. Zero values fall back to the offline
// heuristic checker and the default gates.
type Options struct {
	Checker          ReachabilityChecker
	PlatformMinimums map[string]float64
	MinWordCount     int
}

// Validator holds the configured checker and gates. It is stateless
// across documents and safe for concurrent use.
type Validator struct {
	checker  ReachabilityChecker
	minimums map[string]float64
	minWords int
}

// New builds a Validator.
func New(opts Options) *Validator {
	v := &Validator{
		checker:  opts.Checker,
		minimums: opts.PlatformMinimums,
		minWords: opts.MinWordCount,
	}
	if v.checker == nil {
		v.checker = NewHeuristicChecker()
	}
	if len(v.minimums) == 0 {
		v.minimums = DefaultPlatformMinimums
	}
	if v.minWords <= 0 {
		v.minWords = defaultMinWordCount
	}
	return v
}

// Validate runs every sub-validator, combines the weighted overall
// score, gates each platform, and derives the prioritized action list.
// meta may be nil when validation runs before extraction.
func (v *Validator) Validate(ctx context.Context, doc *document.Document, meta *metadata.Metadata) *Report {
	r := &Report{
		Grammar:             v.validateGrammar(doc),
		Links:               v.validateLinks(ctx, doc),
		Formatting:          v.validateFormatting(doc),
		CodeExamples:        v.validateCode(doc),
		PublishingReadiness: v.validateReadiness(doc, meta),
		LinkCheckMode:       v.checker.Mode(),
	}

	overall := WeightGrammar*float64(r.Grammar.Score) +
		WeightLinks*float64(r.Links.Score) +
		WeightFormatting*float64(r.Formatting.Score) +
		WeightCode*float64(r.CodeExamples.Score) +
		WeightReadiness*float64(r.PublishingReadiness.Score)
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	r.OverallScore = overall
	r.Status = statusFor(overall)
	r.PlatformReadiness = v.gatePlatforms(r)
	r.ActionItems = buildActionItems(r)
	return r
}

func statusFor(score float64) Status {
	switch {
	case score >= 90:
		return StatusExcellent
	case score >= 85:
		return StatusReady
	case score >= 70:
		return StatusNeedsMinorFixes
	case score >= 50:
		return StatusNeedsMajorFixes
	default:
		return StatusNotReady
	}
}

// gatePlatforms compares the overall score against every destination's
// minimum. The ready flag is always consistent with the stored score.
func (v *Validator) gatePlatforms(r *Report) map[string]PlatformStatus {
	out := make(map[string]PlatformStatus, len(v.minimums))
	for platform, min := range v.minimums {
		status := PlatformStatus{Score: r.OverallScore, Ready: r.OverallScore >= min}
		if !status.Ready {
			status.Requirements = append(status.Requirements,
				requirementFor(platform, min, r)...)
		}
		out[platform] = status
	}
	return out
}

func requirementFor(platform string, min float64, r *Report) []string {
	reqs := []string{
		// Keep the numeric gap front and center; the action items carry
		// the specific fixes.
		formatRequirement(platform, min, r.OverallScore),
	}
	if r.Links.Score < 100 {
		reqs = append(reqs, "resolve link issues")
	}
	if r.Grammar.Score < 90 {
		reqs = append(reqs, "clean up grammar and style findings")
	}
	if r.PublishingReadiness.Score < 90 {
		reqs = append(reqs, "complete the publishing essentials (title, description, length)")
	}
	return reqs
}

func formatRequirement(platform string, min, score float64) string {
	return fmt.Sprintf("raise overall score from %.1f to at least %.0f for %s", score, min, platform)
}

// actionFor maps an issue category to a short imperative.
var actionFor = map[string]string{
	"grammar":    "Fix grammar or style issue",
	"brokenLink": "Fix broken link",
	"links":      "Improve link quality",
	"formatting": "Fix formatting inconsistency",
	"code":       "Add a language tag to the code block",
	"codeSyntax": "Fix code example syntax",
	"readiness":  "Complete publishing essentials",
}

// buildActionItems flattens every sub-validator issue into a prioritized
// list. Broken links and code-syntax errors are always high priority.
func buildActionItems(r *Report) []ActionItem {
	var items []ActionItem
	add := func(rep CategoryReport) {
		for _, is := range rep.Issues {
			p := priorityFor(is)
			action := actionFor[is.Category]
			if action == "" {
				action = "Review issue"
			}
			items = append(items, ActionItem{
				Priority: p,
				Category: is.Category,
				Action:   action,
				Details:  is.Message,
			})
		}
	}
	add(r.Grammar)
	add(r.Links)
	add(r.Formatting)
	add(r.CodeExamples)
	add(r.PublishingReadiness)

	rank := map[Priority]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}
	sort.SliceStable(items, func(i, j int) bool {
		return rank[items[i].Priority] < rank[items[j].Priority]
	})
	return items
}

func priorityFor(is scoring.Issue) Priority {
	if is.Category == "brokenLink" || is.Category == "codeSyntax" {
		return PriorityHigh
	}
	switch is.Severity {
	case scoring.SeverityHigh:
		return PriorityHigh
	case scoring.SeverityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
