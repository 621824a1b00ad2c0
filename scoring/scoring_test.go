package scoring

import (
	"reflect"
	"strings"
	"testing"

	"github.com/contentpipe/backend/document"
)

func TestScoreIsPure(t *testing.T) {
	doc := document.Parse("# Title\n\nWe basically think you should try this. It was written by us.\n")
	first := Score(doc)
	second := Score(doc)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring the same document twice differed:\n%v\n%v", first, second)
	}
}

func TestClarityMultipleH1(t *testing.T) {
	body := "# First\n\nText here.\n\n# Second\n\nMore text.\n\n# Third\n\nEven more.\n"
	rep := ScoreClarity(document.Parse(body))

	// Two extra top-level headings at 10 points each.
	if rep.Score != 80 {
		t.Errorf("clarity = %d, want 80", rep.Score)
	}
	if len(rep.Issues) != 1 {
		t.Errorf("issues = %d, want 1", len(rep.Issues))
	}
}

func TestClarityHierarchyJump(t *testing.T) {
	body := "# Title\n\nIntro.\n\n### Deep\n\nSkipped a level.\n"
	rep := ScoreClarity(document.Parse(body))
	if rep.Score != 80 {
		t.Errorf("clarity = %d, want 80 after one hierarchy deduction", rep.Score)
	}
}

func TestClarityLongParagraph(t *testing.T) {
	body := "# Title\n\nOne. Two. Three. Four. Five. Six. Seven.\n"
	rep := ScoreClarity(document.Parse(body))
	if rep.Score != 95 {
		t.Errorf("clarity = %d, want 95 for one long paragraph", rep.Score)
	}
}

func TestClarityCleanDocument(t *testing.T) {
	body := "# Title\n\nShort intro.\n\n## Section\n\nShort body. Two sentences only.\n"
	rep := ScoreClarity(document.Parse(body))
	if rep.Score != 100 {
		t.Errorf("clarity = %d, want 100, issues %v", rep.Score, rep.Issues)
	}
}

func TestConcisenessFillersAndPassive(t *testing.T) {
	body := "# Title\n\nThis is basically done. The value was computed by the worker.\n"
	rep := ScoreConciseness(document.Parse(body))

	// One filler (-2) and one passive construction (-3).
	if rep.Score != 95 {
		t.Errorf("conciseness = %d, want 95, issues %v", rep.Score, rep.Issues)
	}
}

func TestConcisenessIgnoresCodeBlocks(t *testing.T) {
	clean := "# Title\n\nShort and direct.\n"
	withCode := clean + "\n```go\n// basically very actually was computed by\nx := 1\n```\n"
	a := ScoreConciseness(document.Parse(clean))
	b := ScoreConciseness(document.Parse(withCode))
	if a.Score != b.Score {
		t.Errorf("code block changed conciseness: %d vs %d", a.Score, b.Score)
	}
}

func TestCorrectnessTermCapitalization(t *testing.T) {
	body := "# Title\n\nWe deploy with kubernetes and write javascript daily.\n"
	rep := ScoreCorrectness(document.Parse(body))
	if rep.Score != 90 {
		t.Errorf("correctness = %d, want 90 after two term deductions", rep.Score)
	}
	if len(rep.Issues) != 2 {
		t.Errorf("issues = %d, want 2: %v", len(rep.Issues), rep.Issues)
	}
}

func TestCorrectnessBonusCap(t *testing.T) {
	body := "# Title\n\nText.\n"
	for i := 0; i < 8; i++ {
		body += "\n```go\nx := 1\n```\n"
	}
	rep := ScoreCorrectness(document.Parse(body))
	if rep.Score != 100 {
		t.Errorf("correctness = %d, want 100 with capped bonus", rep.Score)
	}
}

func TestConversationalEngagement(t *testing.T) {
	impersonal := "# Title\n\nThe system processes records.\n"
	personal := "# Title\n\nYou should try this yourself. We think you will like it.\n"

	a := ScoreConversational(document.Parse(impersonal))
	b := ScoreConversational(document.Parse(personal))
	if b.Score <= a.Score {
		t.Errorf("personal text (%d) should outscore impersonal (%d)", b.Score, a.Score)
	}
	if len(a.Issues) == 0 {
		t.Errorf("impersonal text should flag missing pronouns")
	}
}

func TestConversationalFormalPhrases(t *testing.T) {
	body := "# Title\n\nYou can utilize the tool in order to facilitate your work.\n"
	rep := ScoreConversational(document.Parse(body))
	found := 0
	for _, i := range rep.Issues {
		if i.Category == "tone" && i.Severity == SeverityLow {
			found++
		}
	}
	if found == 0 {
		t.Errorf("formal phrases not flagged: %v", rep.Issues)
	}
}

func TestTransitionPhrasesOpenWithKnownOpeners(t *testing.T) {
	for _, phrase := range TransitionPhrases {
		first := strings.ToLower(strings.Trim(strings.Fields(phrase)[0], ".,;:!?\"'"))
		ok := false
		for _, opener := range TransitionOpeners {
			if first == opener {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("phrase %q opens with %q, missing from TransitionOpeners", phrase, first)
		}
	}
}
