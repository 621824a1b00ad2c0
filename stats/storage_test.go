package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "stats-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Run("Increment", func(t *testing.T) {
		storage.IncrementRun(3, 2, 1)
		storage.IncrementLinkCache(5, 4)
		storage.IncrementRequests(10, 1)
		stats := storage.GetCurrentStats()

		if stats.DocumentsProcessed != 3 {
			t.Errorf("Expected 3 documents processed, got %d", stats.DocumentsProcessed)
		}
		if stats.DocumentsReady != 2 {
			t.Errorf("Expected 2 documents ready, got %d", stats.DocumentsReady)
		}
		if stats.Failures != 1 {
			t.Errorf("Expected 1 failure, got %d", stats.Failures)
		}
		if stats.LinkCacheHits != 5 || stats.LinkCacheMisses != 4 {
			t.Errorf("Expected 5/4 link cache hits/misses, got %d/%d", stats.LinkCacheHits, stats.LinkCacheMisses)
		}
		if stats.Requests != 10 || stats.RequestErrors != 1 {
			t.Errorf("Expected 10/1 requests/errors, got %d/%d", stats.Requests, stats.RequestErrors)
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}

		stats := storage2.GetCurrentStats()
		if stats.DocumentsProcessed != 3 {
			t.Errorf("Expected 3 documents processed after reload, got %d", stats.DocumentsProcessed)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		storage.mutex.Lock()
		storage.stats[oldMonth] = &MonthlyStats{
			DocumentsProcessed: 100,
			LastUpdated:        time.Now().AddDate(0, -2, 0),
		}
		storage.mutex.Unlock()

		storage.Cleanup()

		storage.mutex.RLock()
		_, exists := storage.stats[oldMonth]
		storage.mutex.RUnlock()
		if exists {
			t.Error("Old stats should have been cleaned up")
		}
	})

	t.Run("FileSize", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}

		// File should be relatively small (< 1KB for this test data)
		if info.Size() > 1024 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats()
		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					storage.IncrementLinkCache(1, 1)
					storage.GetCurrentStats()
				}
				done <- true
			}()
		}
		for i := 0; i < 10; i++ {
			<-done
		}

		stats := storage.GetCurrentStats()
		if got := stats.LinkCacheHits - before.LinkCacheHits; got != 1000 {
			t.Errorf("Expected 1000 new link cache hits, got %d", got)
		}
	})
}
