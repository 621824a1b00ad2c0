package metadata

import "github.com/contentpipe/backend/document"

// Flesch Reading Ease coefficients.
const (
	fleschBase     = 206.835
	fleschSentence = 1.015
	fleschSyllable = 84.6
)

// scoreReadability computes Flesch Reading Ease from the document's
// word, sentence and syllable counts. Syllables come from the shared
// vowel-group heuristic, not a dictionary.
func scoreReadability(doc *document.Document) Readability {
	words := doc.WordCount()
	sentences := doc.SentenceCount()
	syllables := doc.SyllableCount()
	if words == 0 || sentences == 0 {
		return Readability{Score: 0, Level: LevelVeryDifficult}
	}

	avgSentence := float64(words) / float64(sentences)
	score := fleschBase - fleschSentence*avgSentence - fleschSyllable*(float64(syllables)/float64(words))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Readability{
		Score:             score,
		Level:             levelFor(score),
		AvgSentenceLength: avgSentence,
	}
}

func levelFor(score float64) ReadabilityLevel {
	switch {
	case score >= 90:
		return LevelVeryEasy
	case score >= 80:
		return LevelEasy
	case score >= 70:
		return LevelFairlyEasy
	case score >= 60:
		return LevelStandard
	case score >= 50:
		return LevelFairlyDifficult
	case score >= 30:
		return LevelDifficult
	default:
		return LevelVeryDifficult
	}
}
