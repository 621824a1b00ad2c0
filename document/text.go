package document

import (
	"regexp"
	"sort"
	"strings"
)

var (
	sentenceEndRe = regexp.MustCompile(`([.!?]+)(\s+|$)`)
	inlineCodeRe  = regexp.MustCompile("`[^`\n]*`")
	linkRe        = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	imageRe       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	emphasisRe    = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	headingMarkRe = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	listMarkRe    = regexp.MustCompile(`(?m)^(\s*)([-*+]|\d+[.)])\s+`)
	quoteMarkRe   = regexp.MustCompile(`(?m)^>\s?`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// SplitSentences splits prose into sentences on terminal punctuation.
// It is a heuristic shared by every analyzer so that their counts agree.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	marked := sentenceEndRe.ReplaceAllString(text, "$1\x00")
	var out []string
	for _, s := range strings.Split(marked, "\x00") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Words splits text into whitespace-delimited word tokens.
func Words(text string) []string {
	return strings.Fields(text)
}

// CountSyllables estimates syllables in one word using vowel groups,
// with a silent-e adjustment. Every word counts at least one.
func CountSyllables(word string) int {
	w := strings.ToLower(strings.Trim(word, ".,;:!?\"'()[]{}"))
	if w == "" {
		return 0
	}
	isVowel := func(r byte) bool {
		return strings.IndexByte("aeiouy", r) >= 0
	}
	count := 0
	prevVowel := false
	for i := 0; i < len(w); i++ {
		v := isVowel(w[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// StripMarkdown removes emphasis, inline code, link and image markup,
// heading and list markers, leaving plain prose.
func StripMarkdown(text string) string {
	out := imageRe.ReplaceAllString(text, "$1")
	out = linkRe.ReplaceAllString(out, "$1")
	out = inlineCodeRe.ReplaceAllStringFunc(out, func(s string) string {
		return strings.Trim(s, "`")
	})
	for emphasisRe.MatchString(out) {
		out = emphasisRe.ReplaceAllString(out, "$2")
	}
	out = headingMarkRe.ReplaceAllString(out, "")
	out = listMarkRe.ReplaceAllString(out, "$1")
	out = quoteMarkRe.ReplaceAllString(out, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(out, " "))
}

// TransformProse applies fn to the prose portions of a paragraph while
// leaving inline code spans and link targets untouched. Rewrite rules
// must never alter code or URLs; this is the single chokepoint that
// enforces it.
func TransformProse(text string, fn func(string) string) string {
	type span struct{ start, end int }
	var protected []span
	for _, m := range inlineCodeRe.FindAllStringIndex(text, -1) {
		protected = append(protected, span{m[0], m[1]})
	}
	for _, m := range linkRe.FindAllStringSubmatchIndex(text, -1) {
		// Protect only the (url) part; anchor text is fair game.
		protected = append(protected, span{m[4] - 1, m[5] + 1})
	}
	if len(protected) == 0 {
		return fn(text)
	}
	sort.Slice(protected, func(i, j int) bool { return protected[i].start < protected[j].start })

	var b strings.Builder
	last := 0
	for _, p := range protected {
		if p.start < last {
			continue
		}
		b.WriteString(fn(text[last:p.start]))
		b.WriteString(text[p.start:p.end])
		last = p.end
	}
	b.WriteString(fn(text[last:]))
	return b.String()
}
