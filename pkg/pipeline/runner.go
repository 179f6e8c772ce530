package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnaimport/pkg/cache"
	"github.com/matzehuels/rnaimport/pkg/dialect"
	rnaio "github.com/matzehuels/rnaimport/pkg/io"
	"github.com/matzehuels/rnaimport/pkg/model"
	"github.com/matzehuels/rnaimport/pkg/observability"
)

// cacheKeyType labels import entries in cache hooks.
const cacheKeyType = "import"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; every import builds its own parse state.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLImport,
	}
}

// Execute runs the complete import → convert pipeline with caching.
func (r *Runner) Execute(ctx context.Context, text string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{DocumentHash: cache.Hash([]byte(text))}

	// Stage 1: Import
	importStart := time.Now()
	doc, d, hit, err := r.ImportWithCacheInfo(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Dialect = d
	result.CacheInfo.ImportHit = hit
	result.Stats.ImportTime = time.Since(importStart)
	result.Stats.Complexes = len(doc.Complexes)
	result.Stats.Nucleotides = doc.NucleotideCount()
	result.Stats.BasePairs = doc.BasePairCount()

	r.Logger.Info("imported document",
		"dialect", d,
		"complexes", result.Stats.Complexes,
		"nucleotides", result.Stats.Nucleotides,
		"base_pairs", result.Stats.BasePairs,
		"cached", hit,
		"duration", result.Stats.ImportTime)

	// Stage 2: Convert
	convertStart := time.Now()
	observability.Import().OnConvertStart(ctx, opts.Formats)
	artifacts, err := Convert(ctx, doc, opts)
	result.Stats.ConvertTime = time.Since(convertStart)
	observability.Import().OnConvertComplete(ctx, opts.Formats, result.Stats.ConvertTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	r.Logger.Debug("converted outputs",
		"formats", opts.Formats,
		"duration", result.Stats.ConvertTime)

	return result, nil
}

// ImportWithCacheInfo imports text with caching and reports whether the
// model came from the cache. Import errors are never cached.
func (r *Runner) ImportWithCacheInfo(ctx context.Context, text string, opts Options) (*model.Document, dialect.Dialect, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForImport(); err != nil {
		return nil, 0, false, err
	}

	d := opts.ResolveDialect(text)
	cacheKey := r.Keyer.ImportKey(cache.Hash([]byte(text)), opts.ImportKeyOpts(d))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		if err == nil && hit {
			doc, err := rnaio.ReadJSON(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKeyType)
				return doc, d, true, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	start := time.Now()
	observability.Import().OnImportStart(ctx, d.String())
	doc, d, err := Import(text, opts)
	if err != nil {
		observability.Import().OnImportComplete(ctx, d.String(), 0, 0, time.Since(start), err)
		return nil, d, false, err
	}
	observability.Import().OnImportComplete(ctx, d.String(),
		doc.NucleotideCount(), doc.BasePairCount(), time.Since(start), nil)

	var buf bytes.Buffer
	if err := rnaio.WriteJSON(doc, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, buf.Len())
		}
	}
	return doc, d, false, nil
}

// Import is a convenience wrapper that calls ImportWithCacheInfo and discards the cache hit info.
func (r *Runner) Import(ctx context.Context, text string, opts Options) (*model.Document, error) {
	doc, _, _, err := r.ImportWithCacheInfo(ctx, text, opts)
	return doc, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
