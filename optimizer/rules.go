package optimizer

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
)

// rebuild maps the document's blocks through fn and assembles a new
// document carrying the same front matter.
func rebuild(doc *document.Document, fn func([]document.Block) []document.Block) *document.Document {
	blocks := fn(document.Segment(doc.Body()))
	return document.New(document.Join(blocks), doc.FrontMatter())
}

// mapProse applies fn to the prose of every paragraph and heading
// block, leaving inline code and link targets untouched. Headings are
// included because the scorers read heading text as prose; a phrase the
// scorer flags there must be reachable by the rewrite that fixes it.
func mapProse(doc *document.Document, fn func(string) string) *document.Document {
	return rebuild(doc, func(blocks []document.Block) []document.Block {
		for i, b := range blocks {
			if b.Kind == document.BlockParagraph || b.Kind == document.BlockHeading {
				blocks[i].Text = document.TransformProse(b.Text, fn)
			}
		}
		return blocks
	})
}

// fixHeadingLevels clamps every heading to at most one level below its
// predecessor and demotes top-level headings after the first to H2.
func fixHeadingLevels(doc *document.Document) *document.Document {
	return rebuild(doc, func(blocks []document.Block) []document.Block {
		prev := 0
		seenH1 := false
		for i, b := range blocks {
			if b.Kind != document.BlockHeading {
				continue
			}
			level := b.Level
			if level == 1 {
				if seenH1 {
					level = 2
				}
				seenH1 = true
			}
			if prev > 0 && level > prev+1 {
				level = prev + 1
			}
			if level != b.Level {
				text := strings.TrimLeft(b.Text, "# ")
				blocks[i].Text = strings.Repeat("#", level) + " " + text
				blocks[i].Level = level
			}
			prev = level
		}
		return blocks
	})
}

// splitLongParagraphs breaks paragraphs of more than five sentences at
// the midpoint sentence boundary, recursively, so no output paragraph
// exceeds five sentences.
func splitLongParagraphs(doc *document.Document) *document.Document {
	return rebuild(doc, func(blocks []document.Block) []document.Block {
		var out []document.Block
		for _, b := range blocks {
			if b.Kind != document.BlockParagraph {
				out = append(out, b)
				continue
			}
			for _, part := range splitParagraph(b.Text) {
				out = append(out, document.Block{Kind: document.BlockParagraph, Text: part})
			}
		}
		return out
	})
}

func splitParagraph(text string) []string {
	sentences := document.SplitSentences(text)
	if len(sentences) <= 5 {
		return []string{text}
	}
	mid := len(sentences) / 2
	first := strings.Join(sentences[:mid], " ")
	second := strings.Join(sentences[mid:], " ")
	return append(splitParagraph(first), splitParagraph(second)...)
}

// insertTransitions prepends a cycled transition phrase to the opening
// paragraph of each major (H2) section after the first, unless the
// paragraph already opens with a transition-like word.
func insertTransitions(doc *document.Document) *document.Document {
	return rebuild(doc, func(blocks []document.Block) []document.Block {
		sections := 0
		cycle := 0
		for i, b := range blocks {
			if b.Kind != document.BlockHeading || b.Level != 2 {
				continue
			}
			sections++
			if sections == 1 {
				continue
			}
			for j := i + 1; j < len(blocks); j++ {
				if blocks[j].Kind == document.BlockHeading {
					break
				}
				if blocks[j].Kind != document.BlockParagraph {
					continue
				}
				if !opensWithTransition(blocks[j].Text) {
					phrase := scoring.TransitionPhrases[cycle%len(scoring.TransitionPhrases)]
					blocks[j].Text = phrase + " " + blocks[j].Text
					cycle++
				}
				break
			}
		}
		return blocks
	})
}

func opensWithTransition(text string) bool {
	words := document.Words(text)
	if len(words) == 0 {
		return true
	}
	first := strings.ToLower(strings.Trim(words[0], ".,;:!?\"'"))
	for _, t := range scoring.TransitionOpeners {
		if first == t {
			return true
		}
	}
	return false
}

var (
	fillerRes     sync.Map
	punctSpaceRe  = regexp.MustCompile(`\s+([,.;:!?])`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
	doubleCommaRe = regexp.MustCompile(`,\s*,`)
)

func fillerRe(filler string) *regexp.Regexp {
	if v, ok := fillerRes.Load(filler); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(filler) + `\b,?\s*`)
	fillerRes.Store(filler, re)
	return re
}

// removeFillers strips the filler lexicon from prose and normalizes the
// whitespace left behind.
func removeFillers(doc *document.Document) *document.Document {
	return mapProse(doc, func(s string) string {
		for _, filler := range scoring.FillerWords {
			s = fillerRe(filler).ReplaceAllString(s, "")
		}
		return normalizeSpacing(s)
	})
}

func normalizeSpacing(s string) string {
	s = doubleCommaRe.ReplaceAllString(s, ",")
	s = punctSpaceRe.ReplaceAllString(s, "$1")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// replacePhrase substitutes from with to case-insensitively, keeping the
// leading capitalization of each match.
func replacePhrase(s, from, to string) string {
	re := fillerRe(from)
	return re.ReplaceAllStringFunc(s, func(m string) string {
		suffix := ""
		trimmed := strings.TrimRight(m, " \t")
		if len(trimmed) < len(m) {
			suffix = m[len(trimmed):]
		}
		if strings.HasSuffix(trimmed, ",") {
			suffix = "," + suffix
		}
		repl := to
		if r := []rune(trimmed); len(r) > 0 && unicode.IsUpper(r[0]) {
			repl = capitalize(to)
		}
		return repl + suffix
	})
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// passiveToActive converts the known passive shapes to active phrasing.
func passiveToActive(doc *document.Document) *document.Document {
	return mapProse(doc, func(s string) string {
		for _, r := range scoring.PassiveRewrites {
			s = replacePhrase(s, r.From, r.To)
		}
		return normalizeSpacing(s)
	})
}

var conjunctions = map[string]bool{"and": true, "but": true, "or": true, "so": true, "yet": true, "nor": true}

// splitLongSentences breaks sentences over 25 words at the first
// coordinating conjunction past word five and before the final five
// words, iterating to a fixed point. Sentences containing links or
// inline code are left alone rather than risk splitting inside markup.
func splitLongSentences(doc *document.Document) *document.Document {
	return rebuild(doc, func(blocks []document.Block) []document.Block {
		var out []document.Block
		for _, b := range blocks {
			if b.Kind != document.BlockParagraph {
				out = append(out, b)
				continue
			}
			text := b.Text
			for pass := 0; pass < 10; pass++ {
				next := splitSentencesOnce(text)
				if next == text {
					break
				}
				text = next
			}
			// Splitting sentences can push the paragraph past the
			// five-sentence ceiling; re-split so no output paragraph
			// exceeds it.
			for _, part := range splitParagraph(text) {
				out = append(out, document.Block{Kind: document.BlockParagraph, Text: part})
			}
		}
		return out
	})
}

func splitSentencesOnce(text string) string {
	sentences := document.SplitSentences(text)
	changed := false
	for i, s := range sentences {
		if strings.Contains(s, "](") || strings.Contains(s, "`") {
			continue
		}
		words := document.Words(s)
		if len(words) <= 25 {
			continue
		}
		for j := 5; j < len(words)-5; j++ {
			if !conjunctions[strings.ToLower(words[j])] {
				continue
			}
			head := strings.TrimSuffix(strings.Join(words[:j], " "), ",") + "."
			tail := capitalize(strings.Join(words[j:], " "))
			sentences[i] = head + " " + tail
			changed = true
			break
		}
	}
	if !changed {
		return text
	}
	return strings.Join(sentences, " ")
}

// canonicalizeTerms rewrites miscapitalized technical names, in both
// paragraphs and headings.
func canonicalizeTerms(doc *document.Document) *document.Document {
	fix := func(s string) string {
		for _, t := range scoring.CanonicalTerms {
			s = canonicalRe(t.From).ReplaceAllString(s, t.To)
		}
		return s
	}
	return rebuild(doc, func(blocks []document.Block) []document.Block {
		for i, b := range blocks {
			switch b.Kind {
			case document.BlockParagraph:
				blocks[i].Text = document.TransformProse(b.Text, fix)
			case document.BlockHeading:
				blocks[i].Text = document.TransformProse(b.Text, fix)
			}
		}
		return blocks
	})
}

var canonicalRes sync.Map

func canonicalRe(term string) *regexp.Regexp {
	if v, ok := canonicalRes.Load(term); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	canonicalRes.Store(term, re)
	return re
}

// replaceFormalPhrases swaps bureaucratic phrasing for conversational
// equivalents.
func replaceFormalPhrases(doc *document.Document) *document.Document {
	return mapProse(doc, func(s string) string {
		for _, r := range scoring.FormalPhrases {
			s = replacePhrase(s, r.From, r.To)
		}
		return normalizeSpacing(s)
	})
}

// personalize shifts third-person-agent phrasing to address the reader.
func personalize(doc *document.Document) *document.Document {
	return mapProse(doc, func(s string) string {
		for _, r := range scoring.PersonalizationRewrites {
			s = replacePhrase(s, r.From, r.To)
		}
		return normalizeSpacing(s)
	})
}
