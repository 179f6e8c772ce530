// Package io provides JSON import and export for imported diagram models.
//
// # JSON Format
//
// Indices in the JSON are formatted (file-facing) indices. Each base pair is
// written once, from its primary endpoint:
//
//	{
//	  "name": "demo",
//	  "complexes": [{
//	    "name": "C",
//	    "molecules": [{
//	      "name": "M",
//	      "first_index": 1,
//	      "nucleotides": [
//	        {"index": 1, "symbol": "G", "x": 0, "y": 0},
//	        {"index": 4, "symbol": "C", "x": 30, "y": 0}
//	      ]
//	    }],
//	    "base_pairs": [
//	      {"a": {"molecule": "M", "index": 1}, "b": {"molecule": "M", "index": 4}, "type": "canonical"}
//	    ]
//	  }]
//	}
//
// Optional nucleotide fields are font, color, stroke, label and label_line.
// Optional base-pair fields are color, stroke_width and points.
//
// # Import
//
// [ReadJSON] rebuilds a [model.Document], re-inserting every pair through
// the base-pair store so that symmetry and orientation hold on the result:
//
//	doc, err := io.ImportJSON("diagram.json")
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the format above. Export followed by
// import yields an identical model.
package io
