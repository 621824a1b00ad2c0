package metadata

import (
	"fmt"
	"strings"

	"github.com/contentpipe/backend/document"
)

// Platform names shared across metadata, validation and artifact
// emission.
const (
	PlatformBlog       = "blog"
	PlatformOpenGraph  = "opengraph"
	PlatformTwitter    = "twitter"
	PlatformLinkedIn   = "linkedin"
	PlatformMedium     = "medium"
	PlatformDevTo      = "devto"
	PlatformHackerNews = "hackernews"
)

// SocialPlatforms lists every platform that gets a social variant, in
// emission order.
var SocialPlatforms = []string{
	PlatformOpenGraph,
	PlatformTwitter,
	PlatformLinkedIn,
	PlatformMedium,
	PlatformDevTo,
}

// budget holds per-platform character limits.
type budget struct {
	title       int
	description int
}

var budgets = map[string]budget{
	PlatformOpenGraph: {90, 200},
	PlatformTwitter:   {70, 250},
	PlatformLinkedIn:  {100, 600},
	PlatformMedium:    {100, 140},
	PlatformDevTo:     {80, 250},
}

const linkedInCTA = " What has your experience been? Tell me in the comments."

// buildSocialVariants shapes the derived metadata for each platform:
// a numbered heading digest for the short-form platform, a narrative
// post with a call-to-action for the professional network, subtitle
// style for long-form publishing and tagged metadata for the developer
// community.
func buildSocialVariants(doc *document.Document, m *Metadata, opts Options) map[string]SocialVariant {
	variants := make(map[string]SocialVariant, len(SocialPlatforms))
	for _, platform := range SocialPlatforms {
		b := budgets[platform]
		v := SocialVariant{
			Title: truncate(m.Meta.Title, b.title),
			Image: opts.Image,
		}
		switch platform {
		case PlatformTwitter:
			v.Description = truncate(headingDigest(doc), b.description)
			v.Tags = hashTags(m.Keywords.Primary, 3)
		case PlatformLinkedIn:
			v.Description = truncate(narrativePost(doc, m), b.description)
		case PlatformMedium:
			v.Description = truncate(m.Meta.Description, b.description)
		case PlatformDevTo:
			v.Description = truncate(m.Meta.Description, b.description)
			v.Tags = slugTags(m.Keywords.Primary, 4)
		default:
			v.Description = truncate(m.Meta.Description, b.description)
		}
		variants[platform] = v
	}
	return variants
}

// headingDigest renders the major sections as a numbered list.
func headingDigest(doc *document.Document) string {
	var lines []string
	n := 0
	for _, h := range doc.Headings() {
		if h.Level != 2 {
			continue
		}
		n++
		lines = append(lines, fmt.Sprintf("%d. %s", n, h.Text))
		if n == 5 {
			break
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, " ")
}

// narrativePost is the opening paragraph plus the fixed call-to-action.
func narrativePost(doc *document.Document, m *Metadata) string {
	paras := doc.Paragraphs()
	if len(paras) == 0 {
		return m.Meta.Description + linkedInCTA
	}
	return document.StripMarkdown(paras[0]) + linkedInCTA
}

func hashTags(keywords []string, max int) []string {
	var tags []string
	for _, k := range keywords {
		if len(tags) == max {
			break
		}
		tags = append(tags, "#"+slug(k))
	}
	return tags
}

func slugTags(keywords []string, max int) []string {
	var tags []string
	for _, k := range keywords {
		if len(tags) == max {
			break
		}
		tags = append(tags, slug(k))
	}
	return tags
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
