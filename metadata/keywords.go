package metadata

import (
	"regexp"
	"sort"
	"strings"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
)

const (
	primaryCount   = 5
	secondaryCount = 10
	longTailCount  = 8
	technicalCount = 10
	minTokenLen    = 2
)

var (
	camelRe   = regexp.MustCompile(`\b[a-z]+[A-Z][A-Za-z]*\b`)
	acronymRe = regexp.MustCompile(`\b[A-Z]{2,6}\b`)
	dottedRe  = regexp.MustCompile(`\b[A-Za-z]\w*\.[A-Za-z]{1,4}\b`)
)

// extractKeywords ranks prose tokens by frequency, boosts overlaps with
// the domain keyword list into the primary set, mines repeated 2-4 word
// phrases as long-tail candidates and pattern-matches technical terms.
// Code blocks and link URLs never contribute tokens.
func extractKeywords(doc *document.Document, domain []string) KeywordSet {
	prose := proseOf(doc)
	tokens := tokenize(prose)

	freq := map[string]int{}
	for _, t := range tokens {
		freq[t]++
	}

	type ranked struct {
		token  string
		count  int
		domain bool
	}
	domainSet := map[string]bool{}
	for _, d := range domain {
		domainSet[strings.ToLower(d)] = true
	}
	all := make([]ranked, 0, len(freq))
	for t, c := range freq {
		all = append(all, ranked{t, c, domainSet[t]})
	}
	// Domain-overlapping tokens outrank everything; ties break by
	// frequency then alphabetically so the output is stable.
	sort.Slice(all, func(i, j int) bool {
		if all[i].domain != all[j].domain {
			return all[i].domain
		}
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].token < all[j].token
	})

	var primary, secondary []string
	for _, r := range all {
		switch {
		case len(primary) < primaryCount:
			primary = append(primary, r.token)
		case len(secondary) < secondaryCount:
			secondary = append(secondary, r.token)
		}
		if len(secondary) == secondaryCount {
			break
		}
	}

	return KeywordSet{
		Primary:   primary,
		Secondary: secondary,
		LongTail:  longTailPhrases(tokens),
		Technical: technicalTerms(prose),
	}
}

// tokenize lowercases, strips punctuation, and drops stop words and
// short tokens.
func tokenize(prose string) []string {
	var out []string
	for _, w := range document.Words(strings.ToLower(prose)) {
		t := strings.Trim(w, ".,;:!?\"'()[]{}*_`")
		if len(t) < minTokenLen || scoring.StopWords[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// longTailPhrases returns 2-4 word n-grams that appear more than once,
// skipping phrases that begin or end with a stop word.
func longTailPhrases(tokens []string) []string {
	counts := map[string]int{}
	for n := 2; n <= 4; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i : i+n]
			if scoring.StopWords[gram[0]] || scoring.StopWords[gram[n-1]] {
				continue
			}
			counts[strings.Join(gram, " ")]++
		}
	}
	var phrases []string
	for p, c := range counts {
		if c > 1 {
			phrases = append(phrases, p)
		}
	}
	sort.Slice(phrases, func(i, j int) bool {
		if counts[phrases[i]] != counts[phrases[j]] {
			return counts[phrases[i]] > counts[phrases[j]]
		}
		return phrases[i] < phrases[j]
	})
	if len(phrases) > longTailCount {
		phrases = phrases[:longTailCount]
	}
	return phrases
}

// technicalTerms pulls camelCase identifiers, all-caps acronyms and
// dotted names (Node.js, sync.Pool) out of the original-cased prose.
func technicalTerms(prose string) []string {
	seen := map[string]bool{}
	var terms []string
	add := func(matches []string) {
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				terms = append(terms, m)
			}
		}
	}
	add(camelRe.FindAllString(prose, -1))
	add(acronymRe.FindAllString(prose, -1))
	add(dottedRe.FindAllString(prose, -1))
	sort.Strings(terms)
	if len(terms) > technicalCount {
		terms = terms[:technicalCount]
	}
	return terms
}

// proseOf is the extraction text: headings plus stripped paragraphs.
func proseOf(doc *document.Document) string {
	var parts []string
	for _, h := range doc.Headings() {
		parts = append(parts, h.Text)
	}
	for _, p := range doc.Paragraphs() {
		parts = append(parts, document.StripMarkdown(p))
	}
	return strings.Join(parts, " ")
}
