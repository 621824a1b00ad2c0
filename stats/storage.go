// Package stats persists pipeline run statistics, bucketed by month, to
// a JSON file with atomic rewrites and a background writer.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats aggregates one month of pipeline activity.
type MonthlyStats struct {
	DocumentsProcessed int       `json:"documents_processed"`
	DocumentsReady     int       `json:"documents_ready"`
	Failures           int       `json:"failures"`
	LinkCacheHits      int       `json:"link_cache_hits"`
	LinkCacheMisses    int       `json:"link_cache_misses"`
	Requests           int       `json:"requests"`
	RequestErrors      int       `json:"request_errors"`
	LastUpdated        time.Time `json:"last_updated"`
}

// Storage handles persistent storage of statistics.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
}

// NewStorage creates a statistics store under dataDir.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()
	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.stats)
}

// save writes statistics via a temp file and rename so readers never
// see a torn file.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			return
		}
	}
}

func getCurrentMonth() string {
	return time.Now().Format("2006-01")
}

func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

func (s *Storage) bump(update func(*MonthlyStats)) {
	month := getCurrentMonth()

	s.mutex.Lock()
	m, exists := s.stats[month]
	if !exists {
		m = &MonthlyStats{}
		s.stats[month] = m
	}
	update(m)
	m.LastUpdated = time.Now()
	flush := time.Since(s.lastWrite) > time.Minute
	if flush {
		s.lastWrite = time.Now()
	}
	s.mutex.Unlock()

	if flush {
		s.requestWrite()
	}
}

// IncrementRun records documents flowing through a corpus run.
func (s *Storage) IncrementRun(processed, ready, failed int) {
	s.bump(func(m *MonthlyStats) {
		m.DocumentsProcessed += processed
		m.DocumentsReady += ready
		m.Failures += failed
	})
}

// IncrementLinkCache records link checker cache activity.
func (s *Storage) IncrementLinkCache(hits, misses int) {
	s.bump(func(m *MonthlyStats) {
		m.LinkCacheHits += hits
		m.LinkCacheMisses += misses
	})
}

// IncrementRequests records HTTP API traffic.
func (s *Storage) IncrementRequests(requests, errors int) {
	s.bump(func(m *MonthlyStats) {
		m.Requests += requests
		m.RequestErrors += errors
	})
}

// GetCurrentStats returns statistics for the current month.
func (s *Storage) GetCurrentStats() MonthlyStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if m, exists := s.stats[getCurrentMonth()]; exists {
		return *m
	}
	return MonthlyStats{}
}

// GetMonthlyStats returns statistics for a specific month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if m, exists := s.stats[yearMonth]; exists {
		return *m, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns every month with data, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Cleanup keeps only the current and previous month.
func (s *Storage) Cleanup() {
	now := time.Now()
	current := now.Format("2006-01")
	previous := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	for key := range s.stats {
		if key != current && key != previous {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// Shutdown stops the background writer and flushes to disk.
func (s *Storage) Shutdown() error {
	close(s.done)
	return s.save()
}
