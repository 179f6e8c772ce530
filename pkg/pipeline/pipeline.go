// Package pipeline provides the import → convert pipeline shared by the CLI
// and the HTTP server.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Import: detect the dialect, parse the document and resolve geometric
//     marks into a [model.Document]
//  2. Convert: serialize the model into the requested formats (JSON,
//     annotated SVG, Graphviz DOT, pairing-graph SVG)
//
// The import stage is cached by document content and import options; the
// convert stage is cheap and always recomputed.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, text, pipeline.Options{
//	    Formats: []string{pipeline.FormatJSON},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts[pipeline.FormatJSON]
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnaimport/pkg/cache"
	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/importer"
	"github.com/matzehuels/rnaimport/pkg/model"
	"github.com/matzehuels/rnaimport/pkg/resolve"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultTolerance is the snapping distance of the reference resolver.
const DefaultTolerance = resolve.DefaultTolerance

// Duplicate policy names.
const (
	PolicyKeep    = "keep"
	PolicyReplace = "replace"
)

// DefaultPolicy keeps the first record of a repeated base pair.
const DefaultPolicy = PolicyKeep

// Format constants for output formats.
const (
	FormatJSON     = "json"
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatGraphSVG = "graph-svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:     true,
	FormatSVG:      true,
	FormatDOT:      true,
	FormatGraphSVG: true,
}

// ValidPolicies is the set of supported duplicate policies.
var ValidPolicies = map[string]bool{
	PolicyKeep:    true,
	PolicyReplace: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the import pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Import options
	Dialect         string  `json:"dialect,omitempty"` // empty = detect
	DuplicatePolicy string  `json:"duplicate_policy,omitempty"`
	Tolerance       float64 `json:"tolerance,omitempty"`
	Refresh         bool    `json:"refresh,omitempty"`

	// Convert options
	Formats            []string `json:"formats,omitempty"`
	InvertY            bool     `json:"invert_y,omitempty"`
	RelativeLabelLines bool     `json:"relative_label_lines,omitempty"`
	Backbone           bool     `json:"backbone,omitempty"`  // DOT: link consecutive nucleotides
	Positions          bool     `json:"positions,omitempty"` // DOT: pin nodes at diagram coordinates

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Resolver importer.Resolver `json:"-"` // nil = resolve.Nearest

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the imported model.
	Document *model.Document

	// Dialect is the dialect the document was parsed as.
	Dialect dialect.Dialect

	// DocumentHash is the content hash of the raw document.
	DocumentHash string

	// Artifacts contains converted outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Complexes   int
	Nucleotides int
	BasePairs   int
	ImportTime  time.Duration
	ConvertTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ImportHit bool // Whether the model came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, svg, dot, graph-svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePolicy checks that a duplicate policy is valid.
func ValidatePolicy(policy string) error {
	if !ValidPolicies[policy] {
		return fmt.Errorf("invalid duplicate_policy: %q (must be one of: keep, replace)", policy)
	}
	return nil
}

// ValidateDialect checks a dialect override. Empty means detect.
func ValidateDialect(name string) error {
	if name == "" {
		return nil
	}
	_, err := dialect.Parse(name)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForImport(); err != nil {
		return err
	}
	if err := o.ValidateForConvert(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForImport validates and sets defaults for the import stage.
func (o *Options) ValidateForImport() error {
	if o.DuplicatePolicy == "" {
		o.DuplicatePolicy = DefaultPolicy
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) || math.IsInf(o.Tolerance, 0) {
		return fmt.Errorf("tolerance must be a positive finite number, got %g", o.Tolerance)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateDialect(o.Dialect); err != nil {
		return err
	}
	return ValidatePolicy(o.DuplicatePolicy)
}

// ValidateForConvert validates and sets defaults for the convert stage.
func (o *Options) ValidateForConvert() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// Policy returns the model duplicate policy for DuplicatePolicy.
func (o *Options) Policy() model.DuplicatePolicy {
	if o.DuplicatePolicy == PolicyReplace {
		return model.DeletePreviousMapping
	}
	return model.DoNothing
}

// ResolveDialect returns the dialect override, or the sniffed dialect of text.
func (o *Options) ResolveDialect(text string) dialect.Dialect {
	if d, err := dialect.Parse(o.Dialect); o.Dialect != "" && err == nil {
		return d
	}
	return dialect.Sniff(text)
}

// ImportKeyOpts returns cache key options for the import stage.
func (o *Options) ImportKeyOpts(d dialect.Dialect) cache.ImportKeyOpts {
	opts := cache.ImportKeyOpts{Dialect: d.String(), Policy: o.DuplicatePolicy}
	// Tolerance only matters to the geometric resolver.
	if d.Geometric() {
		opts.Tolerance = o.Tolerance
	}
	return opts
}
