package document

import (
	"strings"
	"testing"
)

const sampleDoc = `---
title: Testing Distributed Systems
tags:
  - go
  - testing
---

# Testing Distributed Systems

This is the opening paragraph. It introduces the topic and links to
[the docs](https://example.com/docs).

## Setup

Install the tool first. Then configure it.

` + "```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```" + `

See [the local guide](./guide.md) for details.
`

func TestParseFrontMatter(t *testing.T) {
	doc := Parse(sampleDoc)

	if got := doc.FrontMatterString("title"); got != "Testing Distributed Systems" {
		t.Errorf("title = %q", got)
	}
	if strings.Contains(doc.Body(), "---") {
		t.Errorf("front matter leaked into body:\n%s", doc.Body())
	}
	if !strings.HasPrefix(doc.Body(), "\n# Testing") && !strings.HasPrefix(doc.Body(), "# Testing") {
		t.Errorf("body does not start at the H1:\n%.60s", doc.Body())
	}
}

func TestParseByteOrderMark(t *testing.T) {
	doc := Parse("\uFEFF" + sampleDoc)

	if got := doc.FrontMatterString("title"); got != "Testing Distributed Systems" {
		t.Errorf("title = %q, BOM should not block front matter", got)
	}
	if strings.Contains(doc.Body(), "\uFEFF") {
		t.Errorf("BOM leaked into body")
	}
}

func TestParseMalformedFrontMatter(t *testing.T) {
	raw := "---\ntitle: [unclosed\n---\n\n# Heading\n\nBody text.\n"
	doc := Parse(raw)

	if len(doc.FrontMatter()) != 0 {
		t.Errorf("malformed front matter should be empty, got %v", doc.FrontMatter())
	}
	if doc.Body() != raw {
		t.Errorf("malformed front matter should keep the whole input as body")
	}
}

func TestParseNoFrontMatter(t *testing.T) {
	raw := "# Plain\n\nNo front matter here.\n"
	doc := Parse(raw)
	if doc.Body() != raw {
		t.Errorf("body changed: %q", doc.Body())
	}
	if doc.Title() != "Plain" {
		t.Errorf("title = %q, want first H1", doc.Title())
	}
}

func TestDerivedFacts(t *testing.T) {
	doc := Parse(sampleDoc)

	headings := doc.Headings()
	if len(headings) != 2 {
		t.Fatalf("headings = %d, want 2", len(headings))
	}
	if headings[0].Level != 1 || headings[1].Level != 2 {
		t.Errorf("heading levels = %d, %d", headings[0].Level, headings[1].Level)
	}

	blocks := doc.CodeBlocks()
	if len(blocks) != 1 {
		t.Fatalf("code blocks = %d, want 1", len(blocks))
	}
	if blocks[0].Language != "go" {
		t.Errorf("language = %q", blocks[0].Language)
	}
	if !strings.Contains(blocks[0].Body, "fmt.Println") {
		t.Errorf("code body missing content: %q", blocks[0].Body)
	}

	links := doc.Links()
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	if !links[0].External {
		t.Errorf("https link should be external")
	}
	if links[1].External {
		t.Errorf("relative link should not be external")
	}
}

func TestWordCountExcludesCode(t *testing.T) {
	withCode := Parse("# T\n\nOne two three.\n\n```\nalpha beta gamma delta\n```\n")
	withoutCode := Parse("# T\n\nOne two three.\n")
	if withCode.WordCount() != withoutCode.WordCount() {
		t.Errorf("code block changed word count: %d vs %d", withCode.WordCount(), withoutCode.WordCount())
	}
}

func TestDocumentImmutability(t *testing.T) {
	doc := Parse(sampleDoc)
	fm := doc.FrontMatter()
	fm["title"] = "mutated"
	if doc.FrontMatterString("title") == "mutated" {
		t.Errorf("FrontMatter() must return a copy")
	}
}

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"One. Two. Three.", 3},
		{"Does it work? Yes! Great.", 3},
		{"No terminator at all", 1},
		{"", 0},
	}
	for _, c := range cases {
		if got := len(SplitSentences(c.text)); got != c.want {
			t.Errorf("SplitSentences(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"go", 1},
		{"table", 2},
		{"syllable", 3},
		{"a", 1},
	}
	for _, c := range cases {
		if got := CountSyllables(c.word); got != c.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", c.word, got, c.want)
		}
	}
}

func TestTransformProseProtectsCodeAndURLs(t *testing.T) {
	in := "Use `basically this` and see [basically](https://example.com/basically) for basically everything."
	out := TransformProse(in, func(s string) string {
		return strings.ReplaceAll(s, "basically ", "")
	})

	if !strings.Contains(out, "`basically this`") {
		t.Errorf("inline code was rewritten: %q", out)
	}
	if !strings.Contains(out, "(https://example.com/basically)") {
		t.Errorf("link URL was rewritten: %q", out)
	}
	if strings.Contains(out, "basically everything") {
		t.Errorf("prose was not rewritten: %q", out)
	}
}

func TestSegmentJoinRoundTrip(t *testing.T) {
	body := "# Title\n\nA paragraph.\n\n```py\nprint(1)\n```\n\n- item one\n- item two\n"
	blocks := Segment(body)

	kinds := []BlockKind{BlockHeading, BlockParagraph, BlockCode, BlockList}
	if len(blocks) != len(kinds) {
		t.Fatalf("blocks = %d, want %d", len(blocks), len(kinds))
	}
	for i, k := range kinds {
		if blocks[i].Kind != k {
			t.Errorf("block %d kind = %v, want %v", i, blocks[i].Kind, k)
		}
	}

	rejoined := Join(blocks)
	if Join(Segment(rejoined)) != rejoined {
		t.Errorf("Segment/Join is not stable:\n%q", rejoined)
	}
}
