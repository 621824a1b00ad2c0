package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
)

// grammarRule is one fixed style/grammar pattern with its deduction
// severity.
type grammarRule struct {
	pattern  *regexp.Regexp
	message  string
	severity scoring.Severity
}

var grammarRules = []grammarRule{
	{regexp.MustCompile(`(?i)\b(could|should|would|must) of\b`), "\"of\" after a modal verb; write \"have\"", scoring.SeverityHigh},
	{regexp.MustCompile(`(?i)\balot\b`), "\"alot\" is not a word; write \"a lot\"", scoring.SeverityMedium},
	{regexp.MustCompile(`(?i)\birregardless\b`), "\"irregardless\"; write \"regardless\"", scoring.SeverityMedium},
	{regexp.MustCompile(`(?i)\b(definately|seperate|recieve|occured|untill|accross)\b`), "common misspelling", scoring.SeverityMedium},
	{regexp.MustCompile(`(?i)\bvery unique\b`), "\"unique\" takes no intensifier", scoring.SeverityLow},
	{regexp.MustCompile(`(?i)\b(absolutely essential|advance planning|basic fundamentals|close proximity|end result|final outcome|past history|completely eliminate|free gift)\b`), "redundant phrase", scoring.SeverityLow},
	{regexp.MustCompile(`(?i)\bin spite of the fact that\b`), "wordy; write \"although\"", scoring.SeverityLow},
}

const (
	grammarSentenceCeiling  = 40
	grammarParagraphCeiling = 8
)

// deductionFor maps severity to the score it costs.
func deductionFor(sev scoring.Severity) int {
	switch sev {
	case scoring.SeverityHigh:
		return 10
	case scoring.SeverityMedium:
		return 5
	default:
		return 3
	}
}

// validateGrammar applies the fixed style rule set to the prose, plus
// hard sentence and paragraph length ceilings.
func (v *Validator) validateGrammar(doc *document.Document) CategoryReport {
	score := 100
	var issues []scoring.Issue

	var prose string
	for _, p := range doc.Paragraphs() {
		prose += document.StripMarkdown(p) + " "
	}

	for _, rule := range grammarRules {
		matches := rule.pattern.FindAllString(prose, -1)
		if len(matches) == 0 {
			continue
		}
		score -= deductionFor(rule.severity) * len(matches)
		issues = append(issues, scoring.Issue{
			Category: "grammar",
			Message:  fmt.Sprintf("%s (%d occurrence(s), e.g. %q)", rule.message, len(matches), matches[0]),
			Severity: rule.severity,
		})
	}

	if n := repeatedWords(prose); n > 0 {
		score -= 5 * n
		issues = append(issues, scoring.Issue{
			Category: "grammar",
			Message:  fmt.Sprintf("%d doubled word(s) (\"the the\" and friends)", n),
			Severity: scoring.SeverityMedium,
		})
	}

	for _, s := range document.SplitSentences(prose) {
		if n := len(document.Words(s)); n > grammarSentenceCeiling {
			score -= 5
			issues = append(issues, scoring.Issue{
				Category: "grammar",
				Message:  fmt.Sprintf("sentence with %d words exceeds the %d-word ceiling", n, grammarSentenceCeiling),
				Severity: scoring.SeverityMedium,
			})
		}
	}
	for _, p := range doc.Paragraphs() {
		if n := len(document.SplitSentences(document.StripMarkdown(p))); n > grammarParagraphCeiling {
			score -= 5
			issues = append(issues, scoring.Issue{
				Category: "grammar",
				Message:  fmt.Sprintf("paragraph with %d sentences exceeds the %d-sentence ceiling", n, grammarParagraphCeiling),
				Severity: scoring.SeverityMedium,
			})
		}
	}

	return CategoryReport{Score: clampScore(score), Issues: issues}
}

// repeatedWords counts immediately doubled words, the one confusable
// check a regexp without backreferences cannot express.
func repeatedWords(prose string) int {
	words := document.Words(strings.ToLower(prose))
	count := 0
	for i := 1; i < len(words); i++ {
		w := strings.Trim(words[i], ".,;:!?\"'")
		prev := strings.Trim(words[i-1], ".,;:!?\"'")
		if w != "" && w == prev && len(w) > 1 {
			count++
		}
	}
	return count
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
