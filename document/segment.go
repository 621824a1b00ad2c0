package document

import (
	"regexp"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	listItemRe = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+`)
	fenceRe    = regexp.MustCompile("^(```|~~~)")
)

// Segment splits a markdown body into top-level blocks. Fenced code is
// never merged with surrounding prose, so rewrite rules can skip it
// wholesale. The segmentation is line based and total: any input yields
// a block list that Join can reassemble into equivalent markdown.
func Segment(body string) []Block {
	lines := strings.Split(body, "\n")
	var blocks []Block
	var para []string

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.Join(para, " ")})
		para = nil
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case fenceRe.MatchString(trimmed):
			flushPara()
			fence := trimmed[:3]
			code := []string{line}
			for i++; i < len(lines); i++ {
				l := strings.TrimRight(lines[i], "\r")
				code = append(code, l)
				if strings.HasPrefix(strings.TrimSpace(l), fence) {
					break
				}
			}
			blocks = append(blocks, Block{Kind: BlockCode, Text: strings.Join(code, "\n")})

		case trimmed == "":
			flushPara()

		case headingRe.MatchString(trimmed):
			flushPara()
			m := headingRe.FindStringSubmatch(trimmed)
			blocks = append(blocks, Block{Kind: BlockHeading, Text: trimmed, Level: len(m[1])})

		case listItemRe.MatchString(line):
			flushPara()
			items := []string{line}
			for i+1 < len(lines) {
				next := strings.TrimRight(lines[i+1], "\r")
				if strings.TrimSpace(next) == "" || (!listItemRe.MatchString(next) && !strings.HasPrefix(next, "  ")) {
					break
				}
				i++
				items = append(items, next)
			}
			blocks = append(blocks, Block{Kind: BlockList, Text: strings.Join(items, "\n")})

		case strings.HasPrefix(trimmed, ">"):
			flushPara()
			quote := []string{line}
			for i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(strings.TrimRight(lines[i+1], "\r")), ">") {
				i++
				quote = append(quote, strings.TrimRight(lines[i], "\r"))
			}
			blocks = append(blocks, Block{Kind: BlockQuote, Text: strings.Join(quote, "\n")})

		case strings.HasPrefix(trimmed, "|"):
			flushPara()
			table := []string{line}
			for i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(strings.TrimRight(lines[i+1], "\r")), "|") {
				i++
				table = append(table, strings.TrimRight(lines[i], "\r"))
			}
			blocks = append(blocks, Block{Kind: BlockTable, Text: strings.Join(table, "\n")})

		case strings.HasPrefix(trimmed, "---") || strings.HasPrefix(trimmed, "***"):
			flushPara()
			blocks = append(blocks, Block{Kind: BlockOther, Text: trimmed})

		default:
			para = append(para, trimmed)
		}
	}
	flushPara()
	return blocks
}

// Join reassembles blocks into a markdown body, one blank line between
// blocks. It is the inverse of Segment up to paragraph reflow.
func Join(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n\n") + "\n"
}
