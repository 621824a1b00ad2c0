package scoring

// Criterion names one of the four writing-quality axes.
type Criterion string

const (
	Clarity        Criterion = "clarity"
	Conciseness    Criterion = "conciseness"
	Correctness    Criterion = "correctness"
	Conversational Criterion = "conversational"
)

// Criteria lists the axes in canonical order.
var Criteria = []Criterion{Clarity, Conciseness, Correctness, Conversational}

// Severity grades an issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is one finding attached to a criterion score.
type Issue struct {
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Report carries the score and findings for one criterion.
type Report struct {
	Score  int     `json:"score"`
	Issues []Issue `json:"issues"`
}

// Scores maps every criterion to its report.
type Scores map[Criterion]Report

// Values flattens the reports to bare numbers, for before/after deltas.
func (s Scores) Values() map[Criterion]int {
	out := make(map[Criterion]int, len(s))
	for c, r := range s {
		out[c] = r.Score
	}
	return out
}
