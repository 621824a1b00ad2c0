package metadata

import (
	"strings"
	"testing"

	"github.com/contentpipe/backend/document"
)

func TestOptimizeTitleAppendsQualifier(t *testing.T) {
	doc := document.Parse("# Deployment Strategies\n\nSome intro text about rollouts.\n")
	m := Extract(doc, Options{DomainKeywords: []string{"kubernetes"}})

	if !strings.HasSuffix(m.Meta.Title, ": A Practical Guide") {
		t.Errorf("title missing qualifier: %q", m.Meta.Title)
	}
}

func TestOptimizeTitleKeepsKeywordTitle(t *testing.T) {
	doc := document.Parse("# Kubernetes Deployment Strategies\n\nIntro.\n")
	m := Extract(doc, Options{DomainKeywords: []string{"kubernetes"}})

	if m.Meta.Title != "Kubernetes Deployment Strategies" {
		t.Errorf("keyword title was modified: %q", m.Meta.Title)
	}
}

func TestOptimizeTitleTruncates(t *testing.T) {
	long := "Go " + strings.Repeat("Observability ", 10)
	doc := document.Parse("# " + strings.TrimSpace(long) + "\n\nIntro.\n")
	m := Extract(doc, Options{TitleMaxLen: 60})

	if len([]rune(m.Meta.Title)) > 60 {
		t.Errorf("title over budget (%d): %q", len(m.Meta.Title), m.Meta.Title)
	}
	if !strings.HasSuffix(m.Meta.Title, "...") {
		t.Errorf("truncated title missing ellipsis: %q", m.Meta.Title)
	}
}

func TestBuildDescriptionShortGetsCTA(t *testing.T) {
	doc := document.Parse("# Go Caching\n\nA short opener about caching.\n")
	m := Extract(doc, Options{})

	if !strings.HasSuffix(m.Meta.Description, "Read on for the details.") {
		t.Errorf("short description missing call to action: %q", m.Meta.Description)
	}
}

func TestBuildDescriptionBudget(t *testing.T) {
	para := strings.TrimSpace(strings.Repeat("This sentence pads out the opening paragraph nicely. ", 12))
	doc := document.Parse("# Go Caching\n\n" + para + "\n")
	m := Extract(doc, Options{})

	if len(m.Meta.Description) > 300 {
		t.Errorf("description over budget: %d chars", len(m.Meta.Description))
	}
	if !strings.HasSuffix(m.Meta.Description, ".") {
		t.Errorf("description should end at a sentence boundary: %q", m.Meta.Description)
	}
}

func TestKeywordsDomainBoost(t *testing.T) {
	body := "# Shipping Services\n\nWe ship services with kubernetes pipelines. The kubernetes rollout " +
		"story matters more than raw throughput numbers here today.\n"
	doc := document.Parse(body)
	m := Extract(doc, Options{DomainKeywords: []string{"kubernetes", "go"}})

	if len(m.Keywords.Primary) == 0 || m.Keywords.Primary[0] != "kubernetes" {
		t.Errorf("domain keyword not boosted to front: %v", m.Keywords.Primary)
	}
}

func TestKeywordsTechnicalTerms(t *testing.T) {
	body := "# Pools\n\nWe lean on sync.Pool and a configMap loader with the HTTP client.\n"
	doc := document.Parse(body)
	m := Extract(doc, Options{})

	want := map[string]bool{"sync.Pool": true, "configMap": true, "HTTP": true}
	for _, term := range m.Keywords.Technical {
		delete(want, term)
	}
	if len(want) != 0 {
		t.Errorf("missing technical terms %v in %v", want, m.Keywords.Technical)
	}
}

func TestReadabilityLevels(t *testing.T) {
	easy := document.Parse("# Dogs\n\nThe dog ran. The cat sat. We all laughed.\n")
	m := Extract(easy, Options{})
	if m.Readability.Score < 80 {
		t.Errorf("simple prose scored %.1f, expected an easy band", m.Readability.Score)
	}

	hard := document.Parse("# Epistemology\n\nNotwithstanding institutional heterogeneity, organizational " +
		"interdependencies necessitate comprehensive intermediation methodologies alongside considerable " +
		"infrastructural rationalization initiatives.\n")
	h := Extract(hard, Options{})
	if h.Readability.Score >= m.Readability.Score {
		t.Errorf("dense prose (%.1f) should score below simple prose (%.1f)",
			h.Readability.Score, m.Readability.Score)
	}
}

func TestSocialVariantBudgets(t *testing.T) {
	body := "# Building Resilient Go Services With Backpressure And Load Shedding\n\n" +
		strings.TrimSpace(strings.Repeat("Load shedding keeps latency flat while traffic spikes roll through the cluster. ", 5)) + "\n\n" +
		"## Queues\n\nBound them.\n\n## Timeouts\n\nSet them.\n"
	m := Extract(document.Parse(body), Options{})

	limits := map[string][2]int{
		PlatformOpenGraph: {90, 200},
		PlatformTwitter:   {70, 250},
		PlatformLinkedIn:  {100, 600},
		PlatformMedium:    {100, 140},
		PlatformDevTo:     {80, 250},
	}
	for platform, lim := range limits {
		v, ok := m.SocialVariants[platform]
		if !ok {
			t.Errorf("no variant for %s", platform)
			continue
		}
		if n := len([]rune(v.Title)); n > lim[0] {
			t.Errorf("%s title over budget: %d > %d", platform, n, lim[0])
		}
		if n := len([]rune(v.Description)); n > lim[1] {
			t.Errorf("%s description over budget: %d > %d", platform, n, lim[1])
		}
	}

	tw := m.SocialVariants[PlatformTwitter]
	if !strings.Contains(tw.Description, "1. Queues") {
		t.Errorf("twitter digest missing numbered sections: %q", tw.Description)
	}
	if len(tw.Tags) == 0 || !strings.HasPrefix(tw.Tags[0], "#") {
		t.Errorf("twitter tags malformed: %v", tw.Tags)
	}

	li := m.SocialVariants[PlatformLinkedIn]
	if !strings.Contains(li.Description, "comments") {
		t.Errorf("linkedin post missing call to action: %q", li.Description)
	}
}

func TestReadingTime(t *testing.T) {
	words := strings.TrimSpace(strings.Repeat("word ", 450))
	m := Extract(document.Parse("# T\n\n"+words+"\n"), Options{})
	if m.Meta.ReadingTimeMinutes != 3 {
		t.Errorf("reading time = %d, want 3 for ~450 words", m.Meta.ReadingTimeMinutes)
	}
	if m.StructuredData.TimeRequired != "PT3M" {
		t.Errorf("TimeRequired = %q", m.StructuredData.TimeRequired)
	}
}

func TestStructuredData(t *testing.T) {
	raw := "---\nauthor: Jordan\ndate: \"2026-01-15\"\n---\n\n# Go Profiling\n\nIntro paragraph.\n"
	m := Extract(document.Parse(raw), Options{})

	if m.StructuredData.Context != "https://schema.org" || m.StructuredData.Type != "Article" {
		t.Errorf("structured data shape wrong: %+v", m.StructuredData)
	}
	if m.StructuredData.Author != "Jordan" {
		t.Errorf("author = %q", m.StructuredData.Author)
	}
	if m.StructuredData.DatePublished != "2026-01-15" {
		t.Errorf("date = %q", m.StructuredData.DatePublished)
	}
}
