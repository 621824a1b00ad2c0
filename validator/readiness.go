package validator

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/metadata"
	"github.com/contentpipe/backend/scoring"
)

// ctaVerbs count as engagement elements alongside a question mark.
var ctaVerbs = []string{"try", "learn", "check", "start", "build", "explore", "share", "let's", "subscribe", "download"}

// validateReadiness checks the publishing essentials: title and
// description presence and length, word count, social metadata, an
// engagement element, and markdown constructs the weakest platform
// cannot render.
func (v *Validator) validateReadiness(doc *document.Document, meta *metadata.Metadata) CategoryReport {
	score := 100
	var issues []scoring.Issue

	title := doc.Title()
	description := ""
	if meta != nil {
		if meta.Meta.Title != "" {
			title = meta.Meta.Title
		}
		description = meta.Meta.Description
	}

	if title == "" {
		score -= 20
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  "no title in front matter, metadata or first heading",
			Severity: scoring.SeverityHigh,
		})
	} else if len(title) < 20 || len(title) > 70 {
		score -= 5
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  fmt.Sprintf("title length %d outside the 20-70 character window", len(title)),
			Severity: scoring.SeverityLow,
		})
	}

	if description == "" {
		score -= 15
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  "no description available for search or social previews",
			Severity: scoring.SeverityMedium,
		})
	} else if len(description) < 120 {
		score -= 5
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  fmt.Sprintf("description is %d characters; 120-300 previews best", len(description)),
			Severity: scoring.SeverityLow,
		})
	}

	if words := doc.WordCount(); words < v.minWords {
		score -= 15
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  fmt.Sprintf("%d words; at least %d recommended for publication", words, v.minWords),
			Severity: scoring.SeverityMedium,
		})
	}

	if meta == nil || len(meta.SocialVariants) == 0 {
		score -= 10
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  "no social metadata variants generated",
			Severity: scoring.SeverityMedium,
		})
	}

	if !hasEngagementElement(doc) {
		score -= 10
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  "no question or call to action anywhere in the text",
			Severity: scoring.SeverityMedium,
		})
	}

	tables := 0
	rawHTML := 0
	for _, b := range document.Segment(doc.Body()) {
		switch {
		case b.Kind == document.BlockTable:
			tables++
		case b.Kind == document.BlockParagraph && strings.HasPrefix(strings.TrimSpace(b.Text), "<"):
			rawHTML++
		}
	}
	if tables > 0 {
		score -= 5
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  fmt.Sprintf("%d table(s); the weakest target platforms render tables poorly", tables),
			Severity: scoring.SeverityLow,
		})
	}
	if rawHTML > 0 {
		score -= 5
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  fmt.Sprintf("%d raw HTML block(s); several platforms strip embedded markup", rawHTML),
			Severity: scoring.SeverityLow,
		})
	}

	if missing := imagesWithoutAlt(doc); missing > 0 {
		score -= 5
		issues = append(issues, scoring.Issue{
			Category: "readiness",
			Message:  fmt.Sprintf("%d image(s) without alt text", missing),
			Severity: scoring.SeverityLow,
		})
	}

	return CategoryReport{Score: clampScore(score), Issues: issues}
}

// imagesWithoutAlt counts images missing alt text in the rendered
// document. Inspecting the HTML catches both markdown images and ones
// embedded as raw <img> tags.
func imagesWithoutAlt(doc *document.Document) int {
	q, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML()))
	if err != nil {
		return 0
	}
	missing := 0
	q.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, _ := s.Attr("alt"); strings.TrimSpace(alt) == "" {
			missing++
		}
	})
	return missing
}

func hasEngagementElement(doc *document.Document) bool {
	for _, p := range doc.Paragraphs() {
		if strings.Contains(p, "?") {
			return true
		}
		lower := strings.ToLower(p)
		for _, verb := range ctaVerbs {
			if strings.Contains(lower, verb) {
				return true
			}
		}
	}
	return false
}
