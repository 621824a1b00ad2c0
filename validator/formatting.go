package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
)

var (
	boldStarRe    = regexp.MustCompile(`\*\*[^*]+\*\*`)
	boldUnderRe   = regexp.MustCompile(`__[^_]+__`)
	italicStarRe  = regexp.MustCompile(`(^|[^*])\*[^*\s][^*]*\*($|[^*])`)
	italicUnderRe = regexp.MustCompile(`(^|[^_])_[^_\s][^_]*_($|[^_])`)
)

// validateFormatting checks heading hierarchy, emphasis-marker
// consistency and list-bullet consistency.
func (v *Validator) validateFormatting(doc *document.Document) CategoryReport {
	score := 100
	var issues []scoring.Issue

	prev := 0
	for _, h := range doc.Headings() {
		if prev > 0 && h.Level > prev+1 {
			score -= 20
			issues = append(issues, scoring.Issue{
				Category: "formatting",
				Message:  fmt.Sprintf("heading jumps from H%d to H%d (%q)", prev, h.Level, h.Text),
				Severity: scoring.SeverityHigh,
			})
			break
		}
		prev = h.Level
	}

	// Emphasis checks run over prose blocks only; code blocks are full
	// of underscores and asterisks that mean something else entirely.
	var prose strings.Builder
	bullets := map[string]bool{}
	for _, b := range document.Segment(doc.Body()) {
		switch b.Kind {
		case document.BlockParagraph, document.BlockQuote:
			prose.WriteString(b.Text)
			prose.WriteByte('\n')
		case document.BlockList:
			for _, line := range strings.Split(b.Text, "\n") {
				t := strings.TrimSpace(line)
				if len(t) > 1 && (t[0] == '-' || t[0] == '*' || t[0] == '+') && t[1] == ' ' {
					bullets[string(t[0])] = true
				}
				prose.WriteString(line)
				prose.WriteByte('\n')
			}
		}
	}
	text := prose.String()

	if boldStarRe.MatchString(text) && boldUnderRe.MatchString(text) {
		score -= 10
		issues = append(issues, scoring.Issue{
			Category: "formatting",
			Message:  "mixed bold markers (** and __); pick one",
			Severity: scoring.SeverityMedium,
		})
	}
	if italicStarRe.MatchString(text) && italicUnderRe.MatchString(text) {
		score -= 10
		issues = append(issues, scoring.Issue{
			Category: "formatting",
			Message:  "mixed italic markers (* and _); pick one",
			Severity: scoring.SeverityMedium,
		})
	}
	if len(bullets) > 1 {
		score -= 10
		issues = append(issues, scoring.Issue{
			Category: "formatting",
			Message:  fmt.Sprintf("%d different list bullet styles; pick one", len(bullets)),
			Severity: scoring.SeverityMedium,
		})
	}

	return CategoryReport{Score: clampScore(score), Issues: issues}
}
