package metadata

// Meta is the core search metadata for one document.
type Meta struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Keywords           []string `json:"keywords"`
	CanonicalURL       string   `json:"canonicalUrl,omitempty"`
	ReadingTimeMinutes int      `json:"readingTimeMinutes"`
	WordCount          int      `json:"wordCount"`
}

// SocialVariant is platform-shaped derivative metadata.
type SocialVariant struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// KeywordSet buckets extracted keywords by role.
type KeywordSet struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	LongTail  []string `json:"longTail"`
	Technical []string `json:"technical"`
}

// StructuredData is a JSON-LD-shaped Article record for rich results.
type StructuredData struct {
	Context       string   `json:"@context"`
	Type          string   `json:"@type"`
	Headline      string   `json:"headline"`
	Description   string   `json:"description"`
	Author        string   `json:"author,omitempty"`
	DatePublished string   `json:"datePublished,omitempty"`
	WordCount     int      `json:"wordCount"`
	TimeRequired  string   `json:"timeRequired"`
	Keywords      []string `json:"keywords,omitempty"`
}

// ReadabilityLevel is the Flesch Reading Ease band.
type ReadabilityLevel string

const (
	LevelVeryEasy        ReadabilityLevel = "veryEasy"
	LevelEasy            ReadabilityLevel = "easy"
	LevelFairlyEasy      ReadabilityLevel = "fairlyEasy"
	LevelStandard        ReadabilityLevel = "standard"
	LevelFairlyDifficult ReadabilityLevel = "fairlyDifficult"
	LevelDifficult       ReadabilityLevel = "difficult"
	LevelVeryDifficult   ReadabilityLevel = "veryDifficult"
)

// Readability reports the Flesch score and its inputs.
type Readability struct {
	Score             float64          `json:"score"`
	Level             ReadabilityLevel `json:"level"`
	AvgSentenceLength float64          `json:"avgSentenceLength"`
}

// Metadata is the full extraction result for one document.
type Metadata struct {
	Meta           Meta                     `json:"meta"`
	SocialVariants map[string]SocialVariant `json:"socialVariants"`
	Keywords       KeywordSet               `json:"keywords"`
	StructuredData StructuredData           `json:"structuredData"`
	Readability    Readability              `json:"readability"`
}
