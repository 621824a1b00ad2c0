package document

import (
	"bytes"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// md is the shared goldmark engine. It is stateless and safe for
// concurrent use.
var md = goldmark.New()

// Document is the canonical in-memory representation of one piece of
// content. It is immutable after construction: every pipeline stage that
// changes the body produces a new Document, which recomputes its derived
// facts from scratch. Derived facts are computed lazily and cached.
type Document struct {
	rawBody     string
	frontMatter map[string]any

	factsOnce sync.Once
	facts     derivedFacts

	htmlOnce sync.Once
	html     string
}

type derivedFacts struct {
	headings   []Heading
	paragraphs []string
	codeBlocks []CodeBlock
	links      []Link
	words      int
	sentences  int
	syllables  int
}

// Parse builds a Document from raw markdown, splitting off an optional
// YAML front-matter block. Malformed front matter is not an error: the
// whole input is treated as body and the front matter left empty.
func Parse(raw string) *Document {
	fm, body, ok := splitFrontMatter(raw)
	if !ok {
		return &Document{rawBody: raw, frontMatter: map[string]any{}}
	}
	return &Document{rawBody: body, frontMatter: fm}
}

// New builds a Document from an already-separated body and front matter.
// The optimizer and renderer use this to produce successor documents.
func New(body string, frontMatter map[string]any) *Document {
	fm := make(map[string]any, len(frontMatter))
	for k, v := range frontMatter {
		fm[k] = v
	}
	return &Document{rawBody: body, frontMatter: fm}
}

// splitFrontMatter returns the parsed front matter and remaining body.
// ok is false when there is no front-matter block or it fails to parse.
func splitFrontMatter(raw string) (map[string]any, string, bool) {
	trimmed := strings.TrimPrefix(raw, "\uFEFF")
	if !strings.HasPrefix(trimmed, "---") {
		return nil, "", false
	}
	lines := strings.Split(trimmed, "\n")
	if strings.TrimRight(lines[0], "\r") != "---" {
		return nil, "", false
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if s := strings.TrimRight(lines[i], "\r"); s == "---" || s == "..." {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, "", false
	}
	fm := map[string]any{}
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &fm); err != nil {
		return nil, "", false
	}
	body := strings.Join(lines[end+1:], "\n")
	return fm, strings.TrimPrefix(body, "\n"), true
}

// Body returns the markdown body without front matter.
func (d *Document) Body() string { return d.rawBody }

// FrontMatter returns a copy of the front-matter map.
func (d *Document) FrontMatter() map[string]any {
	out := make(map[string]any, len(d.frontMatter))
	for k, v := range d.frontMatter {
		out[k] = v
	}
	return out
}

// FrontMatterString returns the front-matter value for key as a string,
// or empty when absent or not a scalar.
func (d *Document) FrontMatterString(key string) string {
	v, ok := d.frontMatter[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Title returns the front-matter title, or the first H1 text, or empty.
func (d *Document) Title() string {
	if t := d.FrontMatterString("title"); t != "" {
		return t
	}
	for _, h := range d.Headings() {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

func (d *Document) derived() derivedFacts {
	d.factsOnce.Do(func() {
		d.facts = computeFacts(d.rawBody)
	})
	return d.facts
}

// Headings returns all headings in document order.
func (d *Document) Headings() []Heading { return d.derived().headings }

// Paragraphs returns the prose paragraphs (headings, code, lists and
// tables excluded), each reflowed to a single line.
func (d *Document) Paragraphs() []string { return d.derived().paragraphs }

// CodeBlocks returns all fenced code blocks.
func (d *Document) CodeBlocks() []CodeBlock { return d.derived().codeBlocks }

// Links returns all markdown links and autolinks.
func (d *Document) Links() []Link { return d.derived().links }

// WordCount counts words in the prose text (code blocks excluded).
func (d *Document) WordCount() int { return d.derived().words }

// SentenceCount counts sentences in the prose text.
func (d *Document) SentenceCount() int { return d.derived().sentences }

// SyllableCount estimates total syllables in the prose text.
func (d *Document) SyllableCount() int { return d.derived().syllables }

// HTML renders the body to HTML. The result is cached; rendering the
// same document twice does no extra work.
func (d *Document) HTML() string {
	d.htmlOnce.Do(func() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(d.rawBody), &buf); err != nil {
			// goldmark does not fail on any text input; keep the raw
			// body as a last resort so downstream DOM checks see something.
			d.html = d.rawBody
			return
		}
		d.html = buf.String()
	})
	return d.html
}

func computeFacts(body string) derivedFacts {
	source := []byte(body)
	root := md.Parser().Parse(gtext.NewReader(source))

	var f derivedFacts
	_ = gast.Walk(root, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *gast.Heading:
			f.headings = append(f.headings, Heading{
				Level: v.Level,
				Text:  string(v.Text(source)),
				Line:  lineOf(source, v.Lines()),
			})
		case *gast.FencedCodeBlock:
			var b strings.Builder
			for i := 0; i < v.Lines().Len(); i++ {
				seg := v.Lines().At(i)
				b.Write(seg.Value(source))
			}
			f.codeBlocks = append(f.codeBlocks, CodeBlock{
				Language: string(v.Language(source)),
				Body:     b.String(),
				Line:     lineOf(source, v.Lines()),
			})
		case *gast.Link:
			url := string(v.Destination)
			f.links = append(f.links, Link{
				Text:     string(v.Text(source)),
				URL:      url,
				External: isExternal(url),
			})
		case *gast.AutoLink:
			url := string(v.URL(source))
			f.links = append(f.links, Link{Text: url, URL: url, External: isExternal(url)})
		}
		return gast.WalkContinue, nil
	})

	for _, b := range Segment(body) {
		if b.Kind == BlockParagraph {
			f.paragraphs = append(f.paragraphs, b.Text)
		}
	}

	prose := proseText(body)
	words := Words(prose)
	f.words = len(words)
	f.sentences = len(SplitSentences(prose))
	for _, w := range words {
		f.syllables += CountSyllables(w)
	}
	return f
}

// lineOf converts the first source segment of a node to a 1-based line.
func lineOf(source []byte, lines *gtext.Segments) int {
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	start := lines.At(0).Start
	if start > len(source) {
		start = len(source)
	}
	return 1 + bytes.Count(source[:start], []byte("\n"))
}

func isExternal(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// proseText returns the body with code blocks removed and markdown
// markup stripped, for counting purposes.
func proseText(body string) string {
	var parts []string
	for _, b := range Segment(body) {
		switch b.Kind {
		case BlockParagraph, BlockHeading, BlockList, BlockQuote:
			parts = append(parts, StripMarkdown(b.Text))
		}
	}
	return strings.Join(parts, " ")
}
