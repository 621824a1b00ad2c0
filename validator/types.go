package validator

import "github.com/contentpipe/backend/scoring"

// CategoryReport is one sub-validator's score and findings.
type CategoryReport struct {
	Score  int             `json:"score"`
	Issues []scoring.Issue `json:"issues"`
}

// Status bands the overall score.
type Status string

const (
	StatusExcellent       Status = "excellent"
	StatusReady           Status = "ready"
	StatusNeedsMinorFixes Status = "needsMinorFixes"
	StatusNeedsMajorFixes Status = "needsMajorFixes"
	StatusNotReady        Status = "notReady"
)

// Category weights for the overall score. Fixed by contract.
const (
	WeightGrammar    = 0.25
	WeightLinks      = 0.20
	WeightFormatting = 0.20
	WeightCode       = 0.20
	WeightReadiness  = 0.15
)

// PlatformStatus gates one destination.
type PlatformStatus struct {
	Ready        bool     `json:"ready"`
	Score        float64  `json:"score"`
	Requirements []string `json:"requirements,omitempty"`
}

// Priority orders action items.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionItem is one prioritized fix derived from an issue.
type ActionItem struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Action   string   `json:"action"`
	Details  string   `json:"details,omitempty"`
}

// Report is the full validation result for one document.
type Report struct {
	Grammar             CategoryReport            `json:"grammar"`
	Links               CategoryReport            `json:"links"`
	Formatting          CategoryReport            `json:"formatting"`
	CodeExamples        CategoryReport            `json:"codeExamples"`
	PublishingReadiness CategoryReport            `json:"publishingReadiness"`
	OverallScore        float64                   `json:"overallScore"`
	Status              Status                    `json:"status"`
	PlatformReadiness   map[string]PlatformStatus `json:"platformReadiness"`
	ActionItems         []ActionItem              `json:"actionItems"`
	// LinkCheckMode records whether links were verified live or by the
	// offline heuristic, so reports are never mistaken for each other.
	LinkCheckMode string `json:"linkCheckMode"`
}
