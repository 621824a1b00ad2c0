package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/contentpipe/backend/metadata"
	"github.com/contentpipe/backend/optimizer"
	"github.com/contentpipe/backend/scoring"
	"github.com/contentpipe/backend/validator"
)

// DocumentResult is the complete outcome for one input document. Err
// is set (and downstream fields may be nil) when any stage failed.
type DocumentResult struct {
	Path           string             `json:"path"`
	Name           string             `json:"name"`
	Optimization   *optimizer.Result  `json:"optimization,omitempty"`
	Metadata       *metadata.Metadata `json:"metadata,omitempty"`
	Validation     *validator.Report  `json:"validation,omitempty"`
	ReadyPlatforms []string           `json:"readyPlatforms,omitempty"`
	Artifacts      []string           `json:"artifacts,omitempty"`
	Err            string             `json:"error,omitempty"`
}

// Summary aggregates a corpus run.
type Summary struct {
	Documents      int                           `json:"documents"`
	Succeeded      int                           `json:"succeeded"`
	Failed         int                           `json:"failed"`
	Ready          int                           `json:"ready"`
	AverageScores  map[scoring.Criterion]float64 `json:"averageScores"`
	AverageOverall float64                       `json:"averageOverall"`
	ActionItems    []validator.ActionItem        `json:"actionItems"`
}

// RunReport is everything a corpus run produced.
type RunReport struct {
	PerDocument []*DocumentResult `json:"perDocument"`
	Aggregate   *Summary          `json:"aggregate"`
}

// summarize folds per-document results into corpus totals. Averages
// cover only documents that completed validation.
func summarize(results []*DocumentResult) *Summary {
	s := &Summary{
		Documents:     len(results),
		AverageScores: make(map[scoring.Criterion]float64),
	}
	sums := make(map[scoring.Criterion]int)
	var overallSum float64
	for _, r := range results {
		if r.Validation == nil {
			s.Failed++
			continue
		}
		// Artifact write failures after validation keep the document in
		// the succeeded count; the error stays on the per-document row.
		s.Succeeded++
		if r.Optimization != nil {
			for c, v := range r.Optimization.AfterScores {
				sums[c] += v
			}
		}
		overallSum += r.Validation.OverallScore
		if len(r.ReadyPlatforms) > 0 {
			s.Ready++
		}
		s.ActionItems = append(s.ActionItems, r.Validation.ActionItems...)
	}
	if s.Succeeded > 0 {
		for _, c := range scoring.Criteria {
			s.AverageScores[c] = float64(sums[c]) / float64(s.Succeeded)
		}
		s.AverageOverall = overallSum / float64(s.Succeeded)
	}
	sort.SliceStable(s.ActionItems, func(i, j int) bool {
		return priorityRank(s.ActionItems[i].Priority) < priorityRank(s.ActionItems[j].Priority)
	})
	return s
}

func priorityRank(p validator.Priority) int {
	switch p {
	case validator.PriorityHigh:
		return 0
	case validator.PriorityMedium:
		return 1
	default:
		return 2
	}
}

// sideEntry carries publication details that live outside the
// document itself, keyed by filename in a metadata.json next to the
// corpus.
type sideEntry struct {
	CanonicalURL string `json:"canonicalUrl"`
	Author       string `json:"author"`
	Image        string `json:"image"`
}

// sideFileCache loads each directory's metadata.json at most once.
type sideFileCache struct {
	mu   sync.Mutex
	dirs map[string]map[string]sideEntry
}

func newSideFileCache() *sideFileCache {
	return &sideFileCache{dirs: make(map[string]map[string]sideEntry)}
}

// lookup returns the side-file entry for path, or a zero entry when
// the directory has no metadata.json or no record for this file.
func (c *sideFileCache) lookup(path string) sideEntry {
	dir := filepath.Dir(path)
	c.mu.Lock()
	entries, ok := c.dirs[dir]
	if !ok {
		entries = loadSideFile(dir)
		c.dirs[dir] = entries
	}
	c.mu.Unlock()
	return entries[filepath.Base(path)]
}

func loadSideFile(dir string) map[string]sideEntry {
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil
	}
	var entries map[string]sideEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}
