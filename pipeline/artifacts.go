package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/contentpipe/backend/metadata"
)

// writeDocumentArtifacts emits the optimized markdown and metadata
// for a processed document, plus one derivative per destination that
// cleared its gate. Paths of everything written land in
// result.Artifacts.
func (o *Orchestrator) writeDocumentArtifacts(result *DocumentResult) error {
	doc := result.Optimization.After

	optimized := renderMarkdown(doc.FrontMatter(), doc.Body())
	if err := o.writeArtifact(result, filepath.Join("optimized", result.Name+".md"), optimized); err != nil {
		return err
	}

	metaJSON, err := json.MarshalIndent(result.Metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := o.writeArtifact(result, filepath.Join("metadata", result.Name+".json"), string(metaJSON)+"\n"); err != nil {
		return err
	}
	if err := o.writeArtifact(result, filepath.Join("metadata", result.Name+".txt"), metadataText(result)); err != nil {
		return err
	}

	if result.Validation.OverallScore < o.cfg.ReadyThreshold {
		return nil
	}
	for _, platform := range result.ReadyPlatforms {
		body := derivativeFor(platform, result)
		if body == "" {
			continue
		}
		rel := filepath.Join("platforms", platform, result.Name+".md")
		if err := o.writeArtifact(result, rel, body); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) writeArtifact(result *DocumentResult, rel, content string) error {
	path := filepath.Join(o.cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	result.Artifacts = append(result.Artifacts, path)
	return nil
}

// renderMarkdown reassembles a document with its front matter block.
// Keys are emitted in sorted order so repeated runs produce identical
// files.
func renderMarkdown(frontMatter map[string]any, body string) string {
	if len(frontMatter) == 0 {
		return body
	}
	keys := make([]string, 0, len(frontMatter))
	for k := range frontMatter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("---\n")
	for _, k := range keys {
		line, err := yaml.Marshal(map[string]any{k: frontMatter[k]})
		if err != nil {
			continue
		}
		b.Write(line)
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}

// derivativeFor shapes the per-destination artifact body. The blog
// derivative is the full article; the others come from the social
// variants built during extraction.
func derivativeFor(platform string, result *DocumentResult) string {
	meta := result.Metadata
	doc := result.Optimization.After
	variant, hasVariant := meta.SocialVariants[platform]

	switch platform {
	case metadata.PlatformBlog:
		return renderMarkdown(doc.FrontMatter(), doc.Body())

	case metadata.PlatformTwitter:
		if !hasVariant {
			return ""
		}
		var b strings.Builder
		b.WriteString(variant.Title + "\n\n")
		b.WriteString(variant.Description + "\n")
		if len(variant.Tags) > 0 {
			b.WriteString("\n" + hashTagLine(variant.Tags) + "\n")
		}
		return b.String()

	case metadata.PlatformLinkedIn:
		if !hasVariant {
			return ""
		}
		var b strings.Builder
		b.WriteString(variant.Description + "\n")
		if len(variant.Tags) > 0 {
			b.WriteString("\n" + hashTagLine(variant.Tags) + "\n")
		}
		return b.String()

	case metadata.PlatformMedium:
		if !hasVariant {
			return ""
		}
		var b strings.Builder
		b.WriteString("# " + variant.Title + "\n\n")
		if variant.Description != "" {
			b.WriteString("> " + variant.Description + "\n\n")
		}
		b.WriteString(stripLeadingTitle(doc.Body()))
		return b.String()

	case metadata.PlatformDevTo:
		if !hasVariant {
			return ""
		}
		fm := map[string]any{
			"title":       variant.Title,
			"description": variant.Description,
			"published":   false,
		}
		if len(variant.Tags) > 0 {
			fm["tags"] = strings.Join(variant.Tags, ", ")
		}
		if meta.Meta.CanonicalURL != "" {
			fm["canonical_url"] = meta.Meta.CanonicalURL
		}
		return renderMarkdown(fm, stripLeadingTitle(doc.Body()))

	case metadata.PlatformHackerNews:
		var b strings.Builder
		b.WriteString(meta.Meta.Title + "\n\n")
		if meta.Meta.CanonicalURL != "" {
			b.WriteString(meta.Meta.CanonicalURL + "\n\n")
		}
		b.WriteString(meta.Meta.Description + "\n")
		return b.String()
	}
	return ""
}

// stripLeadingTitle drops a leading H1 so destinations that render the
// title separately don't show it twice.
func stripLeadingTitle(body string) string {
	trimmed := strings.TrimLeft(body, "\n")
	if strings.HasPrefix(trimmed, "# ") {
		if idx := strings.Index(trimmed, "\n"); idx >= 0 {
			return strings.TrimLeft(trimmed[idx+1:], "\n")
		}
		return ""
	}
	return body
}

func hashTagLine(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, "#"+strings.TrimPrefix(t, "#"))
	}
	return strings.Join(parts, " ")
}

// metadataText is the human-readable companion to the metadata JSON.
func metadataText(result *DocumentResult) string {
	m := result.Metadata
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", m.Meta.Title)
	fmt.Fprintf(&b, "Description: %s\n", m.Meta.Description)
	fmt.Fprintf(&b, "Reading time: %d min (%d words)\n", m.Meta.ReadingTimeMinutes, m.Meta.WordCount)
	fmt.Fprintf(&b, "Readability: %.1f (%s)\n", m.Readability.Score, m.Readability.Level)
	if m.Meta.CanonicalURL != "" {
		fmt.Fprintf(&b, "Canonical URL: %s\n", m.Meta.CanonicalURL)
	}
	b.WriteString("\nKeywords\n")
	fmt.Fprintf(&b, "  primary:   %s\n", strings.Join(m.Keywords.Primary, ", "))
	fmt.Fprintf(&b, "  secondary: %s\n", strings.Join(m.Keywords.Secondary, ", "))
	if len(m.Keywords.LongTail) > 0 {
		fmt.Fprintf(&b, "  long-tail: %s\n", strings.Join(m.Keywords.LongTail, ", "))
	}
	if len(m.Keywords.Technical) > 0 {
		fmt.Fprintf(&b, "  technical: %s\n", strings.Join(m.Keywords.Technical, ", "))
	}
	b.WriteString("\nSocial variants\n")
	for _, platform := range metadata.SocialPlatforms {
		v, ok := m.SocialVariants[platform]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-10s %s\n", platform+":", v.Title)
	}
	if result.Validation != nil {
		fmt.Fprintf(&b, "\nValidation: %.1f (%s)\n", result.Validation.OverallScore, result.Validation.Status)
		if len(result.ReadyPlatforms) > 0 {
			fmt.Fprintf(&b, "Ready for: %s\n", strings.Join(result.ReadyPlatforms, ", "))
		}
	}
	return b.String()
}

// writeCorpusReports emits the run-level summary JSON and a
// human-readable readiness report.
func (o *Orchestrator) writeCorpusReports(report *RunReport) error {
	dir := filepath.Join(o.cfg.OutputDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir reports: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.json"), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary.json: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, "readiness.txt"), []byte(readinessText(report)), 0o644)
}

func readinessText(report *RunReport) string {
	var b strings.Builder
	agg := report.Aggregate
	fmt.Fprintf(&b, "Documents: %d  succeeded: %d  failed: %d  ready: %d\n",
		agg.Documents, agg.Succeeded, agg.Failed, agg.Ready)
	fmt.Fprintf(&b, "Average overall score: %.1f\n\n", agg.AverageOverall)

	for _, r := range report.PerDocument {
		if r == nil {
			continue
		}
		if r.Err != "" && r.Validation == nil {
			fmt.Fprintf(&b, "%-30s FAILED: %s\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(&b, "%-30s %.1f (%s)", r.Name, r.Validation.OverallScore, r.Validation.Status)
		if len(r.ReadyPlatforms) > 0 {
			fmt.Fprintf(&b, "  ready: %s", strings.Join(r.ReadyPlatforms, ", "))
		}
		b.WriteString("\n")
	}

	if len(agg.ActionItems) > 0 {
		b.WriteString("\nAction items\n")
		for _, item := range agg.ActionItems {
			fmt.Fprintf(&b, "  [%s] %s: %s\n", item.Priority, item.Category, item.Action)
		}
	}
	return b.String()
}
