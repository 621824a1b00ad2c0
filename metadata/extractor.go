// Package metadata derives search and social metadata from a document:
// an optimized title and description, ranked keyword sets, a Flesch
// readability score, per-platform social variants and a JSON-LD-shaped
// structured-data record.
package metadata

import (
	"fmt"
	"math"
	"strings"

	"github.com/contentpipe/backend/document"
)

// Options tune extraction. Zero value gets sensible defaults.
type Options struct {
	// Title supplies a title override; defaults to the document title.
	Title string
	// TitleMaxLen is the title character budget (default 60).
	TitleMaxLen int
	// DomainKeywords steer keyword ranking and title qualification.
	DomainKeywords []string
	// CanonicalURL for the meta block, usually from the side-file.
	CanonicalURL string
	// Author and Image override front-matter values.
	Author string
	Image  string
}

const (
	defaultTitleMax   = 60
	descriptionMax    = 300
	descriptionMinCTA = 140
	wordsPerMinute    = 200

	titleQualifier = ": A Practical Guide"
	descriptionCTA = " Read on for the details."
)

// DefaultDomainKeywords used when no configuration supplies a list.
var DefaultDomainKeywords = []string{
	"go", "golang", "api", "backend", "cloud", "architecture",
	"performance", "testing", "devops", "microservices",
}

// Extract derives the full metadata record from a document.
func Extract(doc *document.Document, opts Options) *Metadata {
	if opts.TitleMaxLen <= 0 {
		opts.TitleMaxLen = defaultTitleMax
	}
	if len(opts.DomainKeywords) == 0 {
		opts.DomainKeywords = DefaultDomainKeywords
	}
	if opts.Author == "" {
		opts.Author = doc.FrontMatterString("author")
	}
	if opts.Image == "" {
		opts.Image = doc.FrontMatterString("image")
	}

	title := opts.Title
	if title == "" {
		title = doc.Title()
	}
	title = optimizeTitle(title, opts)

	description := buildDescription(doc)
	keywords := extractKeywords(doc, opts.DomainKeywords)
	readability := scoreReadability(doc)
	words := doc.WordCount()
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}

	m := &Metadata{
		Meta: Meta{
			Title:              title,
			Description:        description,
			Keywords:           append(append([]string{}, keywords.Primary...), keywords.Secondary...),
			CanonicalURL:       opts.CanonicalURL,
			ReadingTimeMinutes: minutes,
			WordCount:          words,
		},
		Keywords:    keywords,
		Readability: readability,
		StructuredData: StructuredData{
			Context:       "https://schema.org",
			Type:          "Article",
			Headline:      title,
			Description:   description,
			Author:        opts.Author,
			DatePublished: doc.FrontMatterString("date"),
			WordCount:     words,
			TimeRequired:  fmt.Sprintf("PT%dM", minutes),
			Keywords:      keywords.Primary,
		},
	}
	m.SocialVariants = buildSocialVariants(doc, m, opts)
	return m
}

// optimizeTitle appends the fixed qualifier when no domain keyword is
// present and truncates over-budget titles with an ellipsis.
func optimizeTitle(title string, opts Options) string {
	if title == "" {
		title = "Untitled"
	}
	lower := strings.ToLower(title)
	hasKeyword := false
	for _, kw := range opts.DomainKeywords {
		if containsWord(lower, strings.ToLower(kw)) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		title += titleQualifier
	}
	return truncate(title, opts.TitleMaxLen)
}

func containsWord(text, word string) bool {
	for _, t := range document.Words(text) {
		if strings.Trim(t, ".,;:!?\"'()") == word {
			return true
		}
	}
	return false
}

// buildDescription takes the first one to three prose paragraphs,
// strips markup, truncates at a sentence boundary under the budget and
// appends the call-to-action when the result runs short.
func buildDescription(doc *document.Document) string {
	var parts []string
	for i, p := range doc.Paragraphs() {
		if i == 3 {
			break
		}
		parts = append(parts, document.StripMarkdown(p))
		if len(strings.Join(parts, " ")) >= descriptionMax {
			break
		}
	}
	desc := strings.Join(parts, " ")
	if len(desc) > descriptionMax {
		desc = cutAtSentence(desc, descriptionMax)
	}
	if desc != "" && len(desc) < descriptionMinCTA {
		desc += descriptionCTA
	}
	return strings.TrimSpace(desc)
}

// cutAtSentence truncates to max characters, preferring the last full
// sentence boundary over a hard cut.
func cutAtSentence(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if i := strings.LastIndexAny(cut, ".!?"); i > max/2 {
		return strings.TrimSpace(cut[:i+1])
	}
	return truncate(text, max)
}

// truncate enforces a rune-safe character budget with an ellipsis.
func truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	if max <= 3 {
		return string(r[:max])
	}
	return strings.TrimSpace(string(r[:max-3])) + "..."
}
