// Package export writes a [model.Document] as an annotated-dialect SVG.
//
// The output tags every element with data-rna-type so that importing it
// again reproduces the model:
//
//	svg := export.RenderSVG(doc)
//	back, _ := importer.Import(string(svg), importer.Options{})
//
// Nucleotides are placed with translate() transforms, base pairs are drawn
// as lines between their endpoints (or as polylines when the pair carries
// its own points), and labels are written as label-line and label-content
// elements addressed by complex, molecule and formatted index.
package export
