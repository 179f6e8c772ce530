// Package affine parses SVG-style transform functions into 2D affine matrices.
//
// A [Matrix] is the 6-tuple [a, b, c, d, e, f] of the homogeneous matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// and is applied to a point as x' = a·x + c·y + e, y' = b·x + d·y + f.
//
// # Parsing
//
// [Parse] accepts exactly one function call. Supported functions and their
// argument arities are:
//
//	matrix        6..6
//	translate     2..2
//	translateX/Y  1..1
//	scale         1..2   (uniform when one argument)
//	scaleX/Y      1..1
//	rotate/Z      1..1   (degrees)
//	skew          1..2   (degrees)
//	skewX/Y       1..1   (degrees)
//
// Function names are matched case-insensitively; arguments may be separated by
// commas, whitespace, or both. Any other input fails with a
// MALFORMED_TRANSFORM error from [github.com/matzehuels/rnaimport/pkg/errors].
//
// [ParseList] accepts a whole transform attribute (several functions) and
// composes them in document order, so the rightmost function is applied to a
// point first.
//
// # Composition
//
// [Compose] multiplies m0·m1 where m0 is the outer (already applied)
// transform and m1 the inner one. Composition is associative, which lets the
// importer accumulate ancestor transforms while walking a document.
package affine
