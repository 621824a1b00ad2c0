package validator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
	"github.com/contentpipe/backend/stats"
)

// ReachabilityChecker answers whether a URL is worth linking to. The
// live implementation calls out over HTTP; the offline heuristic never
// touches the network. Mode distinguishes the two in reports.
type ReachabilityChecker interface {
	CheckReachable(ctx context.Context, rawURL string) bool
	Mode() string
}

// linkStatus caches one reachability verdict.
type linkStatus struct {
	reachable bool
	checked   time.Time
}

// HTTPChecker verifies links with HEAD requests. Verdicts are cached
// with a TTL so a corpus full of repeated links does not hammer hosts.
type HTTPChecker struct {
	client    *http.Client
	timeout   time.Duration
	cache     map[string]linkStatus
	cacheMu   sync.RWMutex
	cacheTTL  time.Duration
	maxCached int
	stats     *stats.Storage
}

// NewHTTPChecker builds a live checker. st may be nil; when present it
// receives cache hit/miss counters.
func NewHTTPChecker(timeout time.Duration, st *stats.Storage) *HTTPChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPChecker{
		client:    &http.Client{Timeout: timeout, Transport: transport},
		timeout:   timeout,
		cache:     make(map[string]linkStatus),
		cacheTTL:  10 * time.Minute,
		maxCached: 10000,
		stats:     st,
	}
}

// Mode reports "live".
func (c *HTTPChecker) Mode() string { return "live" }

// CheckReachable issues a HEAD request with a bounded timeout. Any
// transport error or status outside 200-399 counts as unreachable; a
// timeout is a failed link, never an error.
func (c *HTTPChecker) CheckReachable(ctx context.Context, rawURL string) bool {
	c.cacheMu.RLock()
	if entry, ok := c.cache[rawURL]; ok && time.Since(entry.checked) < c.cacheTTL {
		c.cacheMu.RUnlock()
		if c.stats != nil {
			c.stats.IncrementLinkCache(1, 0)
		}
		return entry.reachable
	}
	c.cacheMu.RUnlock()
	if c.stats != nil {
		c.stats.IncrementLinkCache(0, 1)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return c.remember(rawURL, false)
	}
	req.Header.Set("User-Agent", "ContentPipeline/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return c.remember(rawURL, false)
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 400
	return c.remember(rawURL, ok)
}

func (c *HTTPChecker) remember(rawURL string, reachable bool) bool {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if len(c.cache) >= c.maxCached {
		// Drop the whole map rather than track ages; the TTL is short.
		c.cache = make(map[string]linkStatus)
	}
	c.cache[rawURL] = linkStatus{reachable: reachable, checked: time.Now()}
	return reachable
}

// HeuristicChecker is the conservative offline fallback: a URL is
// reachable unless it is malformed, points at a loopback host, or its
// path looks like an error page.
type HeuristicChecker struct {
	DenyHosts []string
	DenyPaths []string
}

// NewHeuristicChecker builds the offline checker with default deny
// lists.
func NewHeuristicChecker() *HeuristicChecker {
	return &HeuristicChecker{
		DenyHosts: []string{"localhost", "127.0.0.1", "0.0.0.0", "example.invalid"},
		DenyPaths: []string{"/404", "/error", "/not-found", "/deleted"},
	}
}

// Mode reports "heuristic".
func (c *HeuristicChecker) Mode() string { return "heuristic" }

// CheckReachable never does I/O.
func (c *HeuristicChecker) CheckReachable(_ context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || !strings.Contains(host, ".") {
		return false
	}
	for _, d := range c.DenyHosts {
		if host == d {
			return false
		}
	}
	path := strings.ToLower(strings.TrimSuffix(u.Path, "/"))
	for _, d := range c.DenyPaths {
		if strings.HasSuffix(path, d) {
			return false
		}
	}
	return true
}

// genericAnchors is the anchor-text quality denylist.
var genericAnchors = []string{"click here", "here", "link", "this", "read more", "more"}

const maxConcurrentChecks = 10

// validateLinks checks every link for reachability, protocol and anchor
// quality. External links are checked concurrently behind a semaphore;
// issue order stays deterministic because findings are assembled from
// the positional results afterwards.
func (v *Validator) validateLinks(ctx context.Context, doc *document.Document) CategoryReport {
	links := doc.Links()
	if len(links) == 0 {
		return CategoryReport{Score: 100}
	}

	reachable := make([]bool, len(links))
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentChecks)
	for i, l := range links {
		if !l.External {
			// Relative links cannot be resolved without a site root;
			// count them as working.
			reachable[i] = true
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			reachable[i] = v.checker.CheckReachable(ctx, url)
		}(i, l.URL)
	}
	wg.Wait()

	var issues []scoring.Issue
	working := 0
	for i, l := range links {
		if reachable[i] {
			working++
		} else {
			issues = append(issues, scoring.Issue{
				Category: "brokenLink",
				Message:  fmt.Sprintf("broken link: %s", l.URL),
				Severity: scoring.SeverityHigh,
			})
		}
		if strings.HasPrefix(l.URL, "http://") {
			issues = append(issues, scoring.Issue{
				Category: "links",
				Message:  fmt.Sprintf("insecure scheme: %s", l.URL),
				Severity: scoring.SeverityMedium,
			})
		}
		anchor := strings.ToLower(strings.TrimSpace(l.Text))
		for _, g := range genericAnchors {
			if anchor == g {
				issues = append(issues, scoring.Issue{
					Category: "links",
					Message:  fmt.Sprintf("generic anchor text %q for %s", l.Text, l.URL),
					Severity: scoring.SeverityLow,
				})
				break
			}
		}
	}

	score := working * 100 / len(links)
	return CategoryReport{Score: score, Issues: issues}
}
