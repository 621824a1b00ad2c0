package validator

import (
	"fmt"
	"strings"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
)

// validateCode requires a language tag on every fenced block and runs a
// balanced-delimiter scan as a proxy for gross syntax errors. Deeper
// per-language checks are out of scope.
func (v *Validator) validateCode(doc *document.Document) CategoryReport {
	score := 100
	var issues []scoring.Issue

	for _, cb := range doc.CodeBlocks() {
		if cb.Language == "" {
			score -= 10
			issues = append(issues, scoring.Issue{
				Category: "code",
				Message:  fmt.Sprintf("code block at line %d is missing a language tag", cb.Line),
				Severity: scoring.SeverityMedium,
			})
		}
		if unbalanced := balanceCheck(cb.Body); unbalanced != "" {
			score -= 15
			issues = append(issues, scoring.Issue{
				Category: "codeSyntax",
				Message:  fmt.Sprintf("code block at line %d has unbalanced %s", cb.Line, unbalanced),
				Severity: scoring.SeverityHigh,
			})
		}
	}

	return CategoryReport{Score: clampScore(score), Issues: issues}
}

// balanceCheck verifies brackets, braces and parens close in order,
// skipping string literals and line comments. Returns a description of
// the first imbalance, or empty when balanced.
func balanceCheck(code string) string {
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	var stack []byte
	for _, line := range strings.Split(code, "\n") {
		inString := byte(0)
		for i := 0; i < len(line); i++ {
			ch := line[i]
			if inString != 0 {
				if ch == '\\' {
					i++
				} else if ch == inString {
					inString = 0
				}
				continue
			}
			switch ch {
			case '"', '\'', '`':
				inString = ch
			case '#':
				i = len(line)
			case '/':
				if i+1 < len(line) && line[i+1] == '/' {
					i = len(line)
				}
			case '(', '[', '{':
				stack = append(stack, ch)
			case ')', ']', '}':
				if len(stack) == 0 || stack[len(stack)-1] != pairs[ch] {
					return fmt.Sprintf("%q", string(ch))
				}
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) > 0 {
		return fmt.Sprintf("%q", string(stack[len(stack)-1]))
	}
	return ""
}
