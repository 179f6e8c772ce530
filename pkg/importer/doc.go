// Package importer reconstructs a [model.Document] from a diagram file in any
// of the three supported dialects.
//
// # Overview
//
// [Import] sniffs the dialect, decodes the element tree, and runs one
// depth-first walk over it. The walk is generic: a [Strategy] supplies the
// per-node visitor and a table of post-order hooks keyed by semantic type.
// All mutable state lives in a [Cache] created for the one call.
//
//	doc, err := importer.Import(text, importer.Options{})
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	}
//
// # Deferred Facts
//
// Base pairs and labels in the annotated dialect may name nucleotides that
// appear later in the file. They are queued per complex and flushed when the
// complex's subtree closes (labels for complexes seen later are flushed at
// document end).
//
// The legacy grouped and unannotated dialects carry no linkage at all. Their
// lines, circles and loose text are collected as marks and handed to a
// [Resolver] exactly once after the walk. The core default is [NopResolver],
// which drops them; see package resolve for a geometric implementation.
package importer
