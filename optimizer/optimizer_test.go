package optimizer

import (
	"strings"
	"testing"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
)

func TestOptimizeIsIdempotent(t *testing.T) {
	bodies := []string{
		"# First\n\nThis is basically a test. The system was designed by experts.\n\n# Second\n\nThe user can utilize the tool in order to facilitate work.\n",
		"# Title\n\nOne. Two. Three. Four. Five. Six. Seven. Eight.\n\n## A\n\nIntro paragraph.\n\n## B\n\nAnother paragraph without an opener.\n",
		"# Clean\n\nShort and already direct.\n",
	}
	for _, body := range bodies {
		once := Optimize(document.Parse(body))
		twice := Optimize(once.After)
		if twice.After.Body() != once.After.Body() {
			t.Errorf("second pass changed the output:\nfirst:\n%s\nsecond:\n%s",
				once.After.Body(), twice.After.Body())
		}
		if len(twice.AppliedRules) != 0 {
			t.Errorf("second pass applied rules %v", twice.AppliedRules)
		}
	}
}

func TestOptimizeTransitionsDoNotStack(t *testing.T) {
	// Enough cold-opening sections to cycle through every transition
	// phrase, including the ones that open with a contraction.
	body := "# Guide\n\nIntro.\n\n## One\n\nCold opener one.\n\n## Two\n\nCold opener two.\n\n" +
		"## Three\n\nCold opener three.\n\n## Four\n\nCold opener four.\n\n" +
		"## Five\n\nCold opener five.\n\n## Six\n\nCold opener six.\n"

	once := Optimize(document.Parse(body))
	twice := Optimize(once.After)

	if twice.After.Body() != once.After.Body() {
		t.Errorf("second pass changed transitions:\nfirst:\n%s\nsecond:\n%s",
			once.After.Body(), twice.After.Body())
	}
	if len(twice.AppliedRules) != 0 {
		t.Errorf("second pass applied rules %v", twice.AppliedRules)
	}
	for _, phrase := range scoring.TransitionPhrases {
		if n := strings.Count(twice.After.Body(), phrase); n > 1 {
			t.Errorf("phrase %q inserted %d times", phrase, n)
		}
	}
}

func TestOptimizeSentenceSplitKeepsParagraphsShort(t *testing.T) {
	// Five sentences, each long enough to be split in two: sentence
	// splitting alone would leave a ten-sentence paragraph behind.
	sentence := "The scheduler scans the pending queue for expired leases every cycle " +
		"and it renews each lease before the worker pool begins the next batch of jobs for the day."
	body := "# Title\n\n" + strings.TrimSpace(strings.Repeat(sentence+" ", 5)) + "\n"

	once := Optimize(document.Parse(body))
	for _, p := range once.After.Paragraphs() {
		if n := len(document.SplitSentences(p)); n > 5 {
			t.Errorf("paragraph left with %d sentences: %.60q", n, p)
		}
	}

	twice := Optimize(once.After)
	if twice.After.Body() != once.After.Body() {
		t.Errorf("second pass restructured the output:\nfirst:\n%s\nsecond:\n%s",
			once.After.Body(), twice.After.Body())
	}
	if len(twice.AppliedRules) != 0 {
		t.Errorf("second pass applied rules %v", twice.AppliedRules)
	}
}

func TestOptimizeMultipleH1(t *testing.T) {
	body := "# First\n\nText one.\n\n# Second\n\nText two.\n\n# Third\n\nText three.\n"
	res := Optimize(document.Parse(body))

	h1 := 0
	for _, h := range res.After.Headings() {
		if h.Level == 1 {
			h1++
		}
	}
	if h1 != 1 {
		t.Fatalf("h1 count after optimize = %d, want 1", h1)
	}
	if got := scoring.ScoreClarity(res.After).Score; got != 100 {
		t.Errorf("clarity after optimize = %d, want 100", got)
	}
	if res.AfterScores[scoring.Clarity] <= res.BeforeScores[scoring.Clarity] {
		t.Errorf("clarity did not improve: %d -> %d",
			res.BeforeScores[scoring.Clarity], res.AfterScores[scoring.Clarity])
	}
}

func TestOptimizeRemovesFillersAndFormalPhrases(t *testing.T) {
	body := "# Title\n\nThis is basically very simple. You should utilize the helper in order to save time.\n"
	res := Optimize(document.Parse(body))
	out := res.After.Body()

	for _, banned := range []string{"basically", "very", "utilize", "in order to"} {
		if strings.Contains(strings.ToLower(out), banned) {
			t.Errorf("%q survived optimization:\n%s", banned, out)
		}
	}
	if !strings.Contains(out, "use the helper") {
		t.Errorf("expected conversational replacement, got:\n%s", out)
	}
}

func TestOptimizeFillerLadenSentence(t *testing.T) {
	body := "# Title\n\nThis is actually, basically, very important to note.\n"
	res := Optimize(document.Parse(body))
	out := strings.ToLower(res.After.Body())

	for _, filler := range []string{"actually", "basically", "very"} {
		if strings.Contains(out, filler) {
			t.Errorf("filler %q survived:\n%s", filler, res.After.Body())
		}
	}
	if res.AfterScores[scoring.Conciseness] <= res.BeforeScores[scoring.Conciseness] {
		t.Errorf("conciseness did not increase: %d -> %d",
			res.BeforeScores[scoring.Conciseness], res.AfterScores[scoring.Conciseness])
	}
}

func TestOptimizePreservesCodeBlocks(t *testing.T) {
	code := "```go\n// basically utilize this in order to test\nx := ActuallyVeryLongName\n```"
	body := "# Title\n\nSome basically wordy prose here.\n\n" + code + "\n\nMore prose.\n"
	res := Optimize(document.Parse(body))

	blocks := res.After.CodeBlocks()
	if len(blocks) != 1 {
		t.Fatalf("code blocks = %d, want 1", len(blocks))
	}
	if !strings.Contains(blocks[0].Body, "basically utilize this in order to test") {
		t.Errorf("code block contents changed: %q", blocks[0].Body)
	}
	if !strings.Contains(blocks[0].Body, "ActuallyVeryLongName") {
		t.Errorf("identifier inside code changed: %q", blocks[0].Body)
	}
}

func TestOptimizePreservesLinkTargets(t *testing.T) {
	body := "# Title\n\nSee [the guide](https://example.com/basically-everything) for more.\n"
	res := Optimize(document.Parse(body))
	if !strings.Contains(res.After.Body(), "https://example.com/basically-everything") {
		t.Errorf("link target changed:\n%s", res.After.Body())
	}
}

func TestOptimizeSplitsLongParagraphs(t *testing.T) {
	body := "# Title\n\nOne one. Two two. Three three. Four four. Five five. Six six. Seven seven. Eight eight.\n"
	res := Optimize(document.Parse(body))

	for _, p := range res.After.Paragraphs() {
		if n := len(document.SplitSentences(p)); n > 5 {
			t.Errorf("paragraph still has %d sentences: %q", n, p)
		}
	}
	if got := scoring.ScoreClarity(res.After).Score; got != 100 {
		t.Errorf("clarity after split = %d, want 100", got)
	}
}

func TestOptimizeCanonicalizesTerms(t *testing.T) {
	body := "# Using kubernetes\n\nWe write javascript and deploy to kubernetes.\n"
	res := Optimize(document.Parse(body))
	out := res.After.Body()

	if !strings.Contains(out, "JavaScript") || !strings.Contains(out, "Kubernetes") {
		t.Errorf("terms not canonicalized:\n%s", out)
	}
	if strings.Contains(out, "javascript") || strings.Contains(out, "kubernetes") {
		t.Errorf("lowercase term survived:\n%s", out)
	}
}

func TestOptimizeInsertsTransitions(t *testing.T) {
	body := "# Title\n\nIntro text.\n\n## Setup\n\nInstall the binary.\n\n## Usage\n\nRun the binary.\n"
	res := Optimize(document.Parse(body))
	out := res.After.Body()

	// The first H2 section opens cold; only the second gets a phrase.
	if !strings.Contains(out, "Install the binary.") {
		t.Errorf("first section was modified:\n%s", out)
	}
	if strings.Contains(out, "\n\nRun the binary.") {
		t.Errorf("second section did not get a transition:\n%s", out)
	}
}

func TestOptimizeRecordsAppliedRules(t *testing.T) {
	body := "# Title\n\nThis is basically simple.\n"
	res := Optimize(document.Parse(body))

	found := false
	for _, r := range res.AppliedRules {
		if r == "filler-removal" {
			found = true
		}
	}
	if !found {
		t.Errorf("filler-removal not recorded, got %v", res.AppliedRules)
	}
}

func TestOptimizeReflowNotRecorded(t *testing.T) {
	body := "# Title\n\nThis paragraph wraps across\nseveral source lines without\nneeding any fixes.\n"
	res := Optimize(document.Parse(body))

	if len(res.AppliedRules) != 0 {
		t.Errorf("line reflow credited to rules: %v", res.AppliedRules)
	}
	if twice := Optimize(res.After); twice.After.Body() != res.After.Body() {
		t.Errorf("reflowed output not stable:\nfirst:\n%s\nsecond:\n%s",
			res.After.Body(), twice.After.Body())
	}
}

func TestOptimizeRewritesHeadings(t *testing.T) {
	body := "# Basically Getting Started\n\nIntro text here.\n\n## Utilize the API\n\nCall it once.\n"
	res := Optimize(document.Parse(body))
	out := res.After.Body()

	if strings.Contains(strings.ToLower(out), "basically") {
		t.Errorf("filler survived in heading:\n%s", out)
	}
	if strings.Contains(strings.ToLower(out), "utilize") {
		t.Errorf("formal phrase survived in heading:\n%s", out)
	}
	if !strings.Contains(out, "## Use the API") {
		t.Errorf("heading replacement lost capitalization:\n%s", out)
	}
}

func TestOptimizeCleanDocumentUnchanged(t *testing.T) {
	body := "# Title\n\nShort and already direct. Nothing to fix here.\n"
	res := Optimize(document.Parse(body))
	if res.After.Body() != res.Before.Body() {
		t.Errorf("clean document was modified:\nbefore:\n%s\nafter:\n%s",
			res.Before.Body(), res.After.Body())
	}
	if len(res.AppliedRules) != 0 {
		t.Errorf("rules applied to clean document: %v", res.AppliedRules)
	}
}
