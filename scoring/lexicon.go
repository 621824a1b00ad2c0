package scoring

import "regexp"

// The lexicons below are the fixed rule data shared by the scorers and
// the rewrite rules. They are ordered slices rather than maps so every
// pass over them is deterministic.

// FillerWords are removable hedges and intensifiers.
var FillerWords = []string{
	"actually",
	"basically",
	"literally",
	"really",
	"very",
	"quite",
	"simply",
	"definitely",
	"certainly",
	"obviously",
	"needless to say",
	"as a matter of fact",
}

// PassiveRe matches the small set of passive-voice shapes this pipeline
// cares about. It is a heuristic and stays one: the thresholds elsewhere
// were tuned against its false positives.
var PassiveRe = regexp.MustCompile(`(?i)\b(is|are|was|were|be|been|being)\s+(\w+ed|built|chosen|done|given|held|kept|known|made|seen|shown|taken|understood|written)\b`)

// Replacement is one fixed phrase substitution.
type Replacement struct {
	From string
	To   string
}

// FormalPhrases maps bureaucratic phrasing to conversational equivalents.
// The From side doubles as the negative-signal lexicon for the
// conversational scorer.
var FormalPhrases = []Replacement{
	{"in order to", "to"},
	{"prior to", "before"},
	{"subsequent to", "after"},
	{"in the event that", "if"},
	{"with regard to", "about"},
	{"at this point in time", "now"},
	{"it should be noted that", "note that"},
	{"for the purpose of", "for"},
	{"in the near future", "soon"},
	{"utilize", "use"},
	{"facilitate", "help"},
	{"commence", "start"},
	{"terminate", "end"},
	{"furthermore", "also"},
	{"nevertheless", "still"},
	{"subsequently", "later"},
}

// PassiveRewrites are the known passive shapes the optimizer converts to
// active phrasing. Deliberately small: only conversions that preserve
// meaning without a grammatical parse.
var PassiveRewrites = []Replacement{
	{"it is recommended that you", "we recommend you"},
	{"it is recommended to", "we recommend you"},
	{"it was decided that", "we decided that"},
	{"it should be noted", "note"},
	{"can be used to", "lets you"},
	{"is required to", "needs to"},
	{"are required to", "need to"},
	{"is designed to", "aims to"},
	{"mistakes were made", "we made mistakes"},
}

// PersonalizationRewrites shift third-person-agent phrasing toward the
// reader.
var PersonalizationRewrites = []Replacement{
	{"the user can", "you can"},
	{"the user should", "you should"},
	{"the user must", "you must"},
	{"users can", "you can"},
	{"developers can", "you can"},
	{"developers should", "you should"},
	{"one can", "you can"},
	{"one should", "you should"},
	{"the reader will", "you will"},
	{"this article will show", "I'll show you"},
	{"this post will cover", "I'll cover"},
}

// EngagementWords invite the reader in; each occurrence is a positive
// conversational signal.
var EngagementWords = []string{
	"let's",
	"imagine",
	"consider",
	"try",
	"notice",
	"remember",
	"think",
	"explore",
	"check",
	"dive",
	"look",
	"ask",
}

// PersonalPronouns counted as conversational signal.
var PersonalPronouns = []string{
	"i", "we", "you", "me", "us", "my", "our", "your",
}

// CanonicalTerms holds the canonical spelling of technical names. The
// From side is matched case-insensitively; an occurrence that is not
// byte-identical to To counts as a miscapitalization.
var CanonicalTerms = []Replacement{
	{"javascript", "JavaScript"},
	{"typescript", "TypeScript"},
	{"github", "GitHub"},
	{"gitlab", "GitLab"},
	{"nodejs", "Node.js"},
	{"postgresql", "PostgreSQL"},
	{"mongodb", "MongoDB"},
	{"graphql", "GraphQL"},
	{"kubernetes", "Kubernetes"},
	{"docker", "Docker"},
	{"linux", "Linux"},
	{"macos", "macOS"},
	{"json", "JSON"},
	{"yaml", "YAML"},
	{"html", "HTML"},
	{"css", "CSS"},
	{"sql", "SQL"},
	{"aws", "AWS"},
}

// TransitionPhrases are cycled onto major sections that open cold.
var TransitionPhrases = []string{
	"With that in place, let's keep going.",
	"Now for the next piece.",
	"Here's where it gets interesting.",
	"Building on that, let's continue.",
	"So far so good - on to the next part.",
}

// TransitionOpeners mark a section that already has a transition; the
// insertion rule skips these. Every first word of TransitionPhrases must
// appear here, or inserted phrases stack on repeated passes.
var TransitionOpeners = []string{
	"now", "next", "first", "second", "third", "finally", "so",
	"but", "however", "with", "let's", "here", "here's", "building",
	"moving", "after", "before", "then", "once", "meanwhile",
}

// StopWords excluded from keyword extraction.
var StopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "but": true, "by": true, "for": true,
	"from": true, "has": true, "have": true, "how": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"more": true, "not": true, "of": true, "on": true, "or": true,
	"our": true, "so": true, "such": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "to": true, "was": true,
	"we": true, "were": true, "what": true, "when": true, "which": true,
	"while": true, "will": true, "with": true, "you": true, "your": true,
	"can": true, "all": true, "also": true, "one": true, "out": true,
	"use": true, "used": true, "using": true,
}
