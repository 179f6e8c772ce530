package pipeline

import (
	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/document"
	"github.com/matzehuels/rnaimport/pkg/importer"
	"github.com/matzehuels/rnaimport/pkg/model"
	"github.com/matzehuels/rnaimport/pkg/resolve"
)

// Import parses text without caching. The dialect is the override in opts or
// the sniffed one; geometric dialects are resolved with opts.Resolver, or
// [resolve.Nearest] at opts.Tolerance when none is set.
func Import(text string, opts Options) (*model.Document, dialect.Dialect, error) {
	if err := opts.ValidateForImport(); err != nil {
		return nil, 0, err
	}
	d := opts.ResolveDialect(text)

	resolver := opts.Resolver
	if resolver == nil {
		resolver = resolve.Nearest{Tolerance: opts.Tolerance, Logger: opts.Logger}
	}
	doc, err := importer.ImportDialect(text, d, importer.Options{
		Resolver:        resolver,
		DuplicatePolicy: opts.Policy(),
		Measurer:        document.EstimateMeasurer{},
		Logger:          opts.Logger,
	})
	if err != nil {
		return nil, d, err
	}
	return doc, d, nil
}
