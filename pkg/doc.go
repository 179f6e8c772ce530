// Package pkg provides the libraries behind rnaimport, an importer for RNA
// secondary-structure diagrams.
//
// # Overview
//
// rnaimport reads SVG drawings of RNA complexes produced by several export
// tools and reconstructs the structure model: complexes, molecules,
// nucleotides (symbol, position, font), base pairs and numbering labels.
// Each file is written in one of three dialects:
//
//  1. annotated - every element carries data-rna-type attributes
//  2. legacy-grouped - nucleotides sit in a group with id "Letters"
//  3. unannotated - bare text and lines, matched by geometry
//
// # Architecture
//
// The typical data flow:
//
//	SVG text
//	   ↓
//	[document] (element tree, style cascade, text measurement)
//	   ↓
//	[dialect] (detect the writer of the file)
//	   ↓
//	[importer] (walk the tree with the dialect's strategy)
//	   ↓
//	[resolve] (attach unannotated pairs and labels by geometry)
//	   ↓
//	[model] (the structure model)
//	   ↓
//	[io] / [export] / [inspect] (JSON, annotated SVG, Graphviz)
//
// # Quick Start
//
//	doc, err := importer.Import(text, importer.Options{
//	    Resolver: resolve.Nearest{Tolerance: resolve.DefaultTolerance},
//	})
//	if err != nil {
//	    return err
//	}
//	err = io.WriteJSON(doc, os.Stdout)
//
// # Main Packages
//
// ## Core
//
// [model] - The structure model. Base pairs are stored on both nucleotides
// and kept symmetric.
//
// [affine] - 2D affine matrices parsed from SVG transform attributes.
//
// [document] - A parsed SVG element tree with inherited presentation
// attributes and CSS style sheets.
//
// [dialect] - Dialect names and detection.
//
// [importer] - The tree walker and per-dialect strategies.
//
// [resolve] - The reference geometric resolver.
//
// ## Output
//
// [io] - JSON encoding of the model.
//
// [export] - Annotated SVG writer.
//
// [inspect] - Graphviz rendering of the base-pairing graph.
//
// ## Infrastructure
//
// [pipeline] - Import with caching and conversion to output formats. Used by
// the CLI and the HTTP server.
//
// [cache] - File, Redis and null cache backends.
//
// [config] - TOML configuration file.
//
// [server] - HTTP API.
//
// [observability] - Hooks for metrics and tracing.
//
// [errors] - Coded errors reported to users.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example ./... # Examples only
//
// [model]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/model
// [affine]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/affine
// [document]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/document
// [dialect]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/dialect
// [importer]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/importer
// [resolve]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/resolve
// [io]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/io
// [export]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/export
// [inspect]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/inspect
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/rnaimport/pkg/errors
package pkg
