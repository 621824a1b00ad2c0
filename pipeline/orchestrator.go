// Package pipeline drives the full content pipeline across a corpus:
// load, optimize, extract metadata, validate, and emit destination
// artifacts for every document that clears the readiness gate. One
// document's failure never aborts the batch.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/contentpipe/backend/config"
	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/logging"
	"github.com/contentpipe/backend/metadata"
	"github.com/contentpipe/backend/optimizer"
	"github.com/contentpipe/backend/stats"
	"github.com/contentpipe/backend/validator"
)

// Orchestrator wires the stages together for batch runs.
type Orchestrator struct {
	cfg       *config.Config
	log       *logging.Logger
	validator *validator.Validator
	stats     *stats.Storage
}

// New builds an Orchestrator from configuration. st may be nil.
func New(cfg *config.Config, log *logging.Logger, st *stats.Storage) *Orchestrator {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logging.NewNop()
	}
	var checker validator.ReachabilityChecker
	if cfg.LinkCheck.Mode == "live" {
		checker = validator.NewHTTPChecker(time.Duration(cfg.LinkCheck.TimeoutSeconds)*time.Second, st)
	} else {
		checker = validator.NewHeuristicChecker()
	}
	return &Orchestrator{
		cfg: cfg,
		log: log,
		validator: validator.New(validator.Options{
			Checker:          checker,
			PlatformMinimums: cfg.PlatformMinimums,
			MinWordCount:     cfg.MinWordCount,
		}),
		stats: st,
	}
}

// DiscoverMarkdown lists the markdown files directly under dir, sorted.
func DiscoverMarkdown(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".markdown") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// RunCorpus processes every path, in parallel up to the configured
// concurrency, and writes per-document and corpus-level artifacts.
// Per-document failures are captured in the results, never raised.
func (o *Orchestrator) RunCorpus(ctx context.Context, paths []string) (*RunReport, error) {
	report := &RunReport{
		PerDocument: make([]*DocumentResult, len(paths)),
	}
	sideFiles := newSideFileCache()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			report.PerDocument[i] = o.processOne(gctx, path, sideFiles)
			return nil
		})
	}
	// Workers never return errors; Wait only orders the writes below
	// after every slot is filled.
	_ = g.Wait()

	report.Aggregate = summarize(report.PerDocument)
	if o.stats != nil {
		o.stats.IncrementRun(report.Aggregate.Succeeded, report.Aggregate.Ready, report.Aggregate.Failed)
	}

	if err := o.writeCorpusReports(report); err != nil {
		o.log.Error("writing corpus reports", "error", err)
	}
	o.log.Info("corpus run complete",
		"documents", len(paths),
		"succeeded", report.Aggregate.Succeeded,
		"failed", report.Aggregate.Failed,
		"ready", report.Aggregate.Ready,
	)
	return report, nil
}

// processOne runs the fixed stage order for a single document. A panic
// anywhere inside the stages is captured as that document's failure.
func (o *Orchestrator) processOne(ctx context.Context, path string, sideFiles *sideFileCache) (result *DocumentResult) {
	result = &DocumentResult{Path: path, Name: baseName(path)}
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Sprintf("panic processing %s: %v", path, r)
			o.log.Error("document processing panicked", "path", path, "panic", r)
		}
	}()

	raw, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Sprintf("read: %v", err)
		return result
	}

	doc := document.Parse(string(raw))
	opt := optimizer.Optimize(doc)
	result.Optimization = opt
	for _, w := range opt.Warnings {
		o.log.Warn("optimization regression", "path", path, "detail", w)
	}

	side := sideFiles.lookup(path)
	meta := metadata.Extract(opt.After, metadata.Options{
		TitleMaxLen:    o.cfg.TitleMaxLen,
		DomainKeywords: o.cfg.DomainKeywords,
		CanonicalURL:   side.CanonicalURL,
		Author:         side.Author,
		Image:          side.Image,
	})
	result.Metadata = meta

	result.Validation = o.validator.Validate(ctx, opt.After, meta)

	for platform, status := range result.Validation.PlatformReadiness {
		if status.Ready {
			result.ReadyPlatforms = append(result.ReadyPlatforms, platform)
		}
	}
	sort.Strings(result.ReadyPlatforms)

	if err := o.writeDocumentArtifacts(result); err != nil {
		o.log.Error("writing document artifacts", "path", path, "error", err)
		result.Err = fmt.Sprintf("artifacts: %v", err)
	}
	return result
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(name, ".markdown"), ".md")
}
