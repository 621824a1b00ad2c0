// Package scoring computes the four writing-quality sub-scores (clarity,
// conciseness, correctness, conversational tone) from a document. Every
// scorer is a pure function of the document: scoring the same document
// twice yields identical reports, and the four scorers share no state.
package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/contentpipe/backend/document"
)

// Score evaluates all four criteria.
func Score(doc *document.Document) Scores {
	return Scores{
		Clarity:        ScoreClarity(doc),
		Conciseness:    ScoreConciseness(doc),
		Correctness:    ScoreCorrectness(doc),
		Conversational: ScoreConversational(doc),
	}
}

// ScoreClarity checks heading hierarchy and paragraph length.
// Start 100; -20 once for an invalid hierarchy, -10 per extra top-level
// heading, -5 per paragraph longer than five sentences. Floor 0.
func ScoreClarity(doc *document.Document) Report {
	score := 100
	var issues []Issue

	prev := 0
	h1Count := 0
	validHierarchy := true
	for _, h := range doc.Headings() {
		if h.Level == 1 {
			h1Count++
		}
		if prev > 0 && h.Level > prev+1 {
			validHierarchy = false
		}
		prev = h.Level
	}
	if !validHierarchy {
		score -= 20
		issues = append(issues, Issue{
			Category: "structure",
			Message:  "heading levels jump by more than one step",
			Severity: SeverityHigh,
		})
	}
	if h1Count > 1 {
		score -= 10 * (h1Count - 1)
		issues = append(issues, Issue{
			Category: "structure",
			Message:  fmt.Sprintf("%d top-level headings; use a single H1", h1Count),
			Severity: SeverityMedium,
		})
	}

	for _, p := range doc.Paragraphs() {
		n := len(document.SplitSentences(document.StripMarkdown(p)))
		if n > 5 {
			score -= 5
			issues = append(issues, Issue{
				Category: "structure",
				Message:  fmt.Sprintf("paragraph with %d sentences; split it up (starts %q)", n, firstWords(p, 6)),
				Severity: SeverityLow,
			})
		}
	}

	return Report{Score: clamp(score), Issues: issues}
}

// ScoreConciseness counts fillers, passive markers and sentence length.
// Start 100; -2 per filler instance, -3 per passive instance, -2 per
// word of average sentence length beyond 20. Floor 0.
func ScoreConciseness(doc *document.Document) Report {
	score := 100
	var issues []Issue
	prose := proseOf(doc)

	for _, filler := range FillerWords {
		n := countPhrase(prose, filler)
		if n == 0 {
			continue
		}
		score -= 2 * n
		sev := SeverityLow
		if n > 2 {
			sev = SeverityMedium
		}
		issues = append(issues, Issue{
			Category: "wordiness",
			Message:  fmt.Sprintf("filler %q appears %d time(s)", filler, n),
			Severity: sev,
		})
	}

	if n := len(PassiveRe.FindAllString(prose, -1)); n > 0 {
		score -= 3 * n
		issues = append(issues, Issue{
			Category: "voice",
			Message:  fmt.Sprintf("%d passive-voice construction(s)", n),
			Severity: SeverityMedium,
		})
	}

	sentences := document.SplitSentences(prose)
	long := 0
	totalWords := 0
	for _, s := range sentences {
		w := len(document.Words(s))
		totalWords += w
		if w > 25 {
			long++
		}
	}
	if long > 0 {
		issues = append(issues, Issue{
			Category: "length",
			Message:  fmt.Sprintf("%d sentence(s) over 25 words", long),
			Severity: SeverityLow,
		})
	}
	if len(sentences) > 0 {
		avg := float64(totalWords) / float64(len(sentences))
		if avg > 20 {
			over := int(avg) - 20
			score -= 2 * over
			issues = append(issues, Issue{
				Category: "length",
				Message:  fmt.Sprintf("average sentence length %.1f words; aim for 20 or fewer", avg),
				Severity: SeverityMedium,
			})
		}
	}

	return Report{Score: clamp(score), Issues: issues}
}

// ScoreCorrectness checks canonical term spelling and counts code blocks
// and links as positive signals. Start 100; -5 per miscapitalized term
// occurrence; +2 per tagged code block and +1 per link, bonus capped at
// 10 and the total clamped to [0,100].
func ScoreCorrectness(doc *document.Document) Report {
	score := 100
	var issues []Issue
	prose := proseOf(doc)

	for _, term := range CanonicalTerms {
		wrong := 0
		for _, m := range phraseRe(term.From).FindAllString(prose, -1) {
			if m != term.To {
				wrong++
			}
		}
		if wrong == 0 {
			continue
		}
		score -= 5 * wrong
		issues = append(issues, Issue{
			Category: "terminology",
			Message:  fmt.Sprintf("%q miscapitalized %d time(s); write %q", term.From, wrong, term.To),
			Severity: SeverityMedium,
		})
	}

	bonus := 0
	for _, cb := range doc.CodeBlocks() {
		if cb.Language == "" {
			issues = append(issues, Issue{
				Category: "code",
				Message:  fmt.Sprintf("code block at line %d has no language tag", cb.Line),
				Severity: SeverityLow,
			})
			continue
		}
		bonus += 2
	}
	bonus += len(doc.Links())
	if bonus > 10 {
		bonus = 10
	}

	return Report{Score: clamp(score + bonus), Issues: issues}
}

// ScoreConversational rewards direct-address writing. Base 50; +2 per
// engagement word (capped at +30), +1 per personal pronoun (capped at
// +30), -5 per formal phrase. Clamped to [0,100].
func ScoreConversational(doc *document.Document) Report {
	score := 50
	var issues []Issue
	prose := proseOf(doc)

	tokens := document.Words(strings.ToLower(prose))
	for i, t := range tokens {
		tokens[i] = strings.Trim(t, ".,;:!?\"'()[]{}")
	}

	engagement := 0
	for _, t := range tokens {
		for _, e := range EngagementWords {
			if t == e {
				engagement++
				break
			}
		}
	}
	if engagement*2 > 30 {
		score += 30
	} else {
		score += engagement * 2
	}

	pronouns := 0
	for _, t := range tokens {
		for _, p := range PersonalPronouns {
			if t == p {
				pronouns++
				break
			}
		}
	}
	if pronouns > 30 {
		pronouns = 30
	}
	score += pronouns
	if pronouns == 0 {
		issues = append(issues, Issue{
			Category: "tone",
			Message:  "no personal pronouns; the text reads impersonal",
			Severity: SeverityLow,
		})
	}

	for _, f := range FormalPhrases {
		n := countPhrase(prose, f.From)
		if n == 0 {
			continue
		}
		score -= 5 * n
		issues = append(issues, Issue{
			Category: "tone",
			Message:  fmt.Sprintf("formal phrase %q appears %d time(s); try %q", f.From, n, f.To),
			Severity: SeverityLow,
		})
	}

	return Report{Score: clamp(score), Issues: issues}
}

// proseOf joins heading text and stripped paragraphs; code blocks and
// link URLs never feed the scorers.
func proseOf(doc *document.Document) string {
	var parts []string
	for _, h := range doc.Headings() {
		parts = append(parts, h.Text)
	}
	for _, p := range doc.Paragraphs() {
		parts = append(parts, document.StripMarkdown(p))
	}
	return strings.Join(parts, " ")
}

func firstWords(text string, n int) string {
	words := document.Words(document.StripMarkdown(text))
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

var phraseRes sync.Map

// phraseRe returns a cached case-insensitive whole-phrase matcher.
func phraseRe(phrase string) *regexp.Regexp {
	if v, ok := phraseRes.Load(phrase); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	phraseRes.Store(phrase, re)
	return re
}

func countPhrase(text, phrase string) int {
	return len(phraseRe(phrase).FindAllString(text, -1))
}
