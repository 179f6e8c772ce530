// Package inspect renders the pairing structure of an imported document as a
// graph for visual checking.
//
// Every nucleotide becomes a node; base pairs become edges styled by pair
// type. Backbone edges between consecutive nucleotides can be added, and
// nucleotide coordinates can be pinned so the graph resembles the original
// drawing:
//
//	dot := inspect.ToDOT(doc, inspect.Options{Backbone: true, Positions: true})
//	svg, err := inspect.RenderSVG(ctx, dot, inspect.Options{Positions: true})
//
// # Dependencies
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]. PDF and PNG conversion shells out to
// rsvg-convert from librsvg.
package inspect
