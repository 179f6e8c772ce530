// Package document provides a generic attributed tree of drawing primitives.
//
// Every [Element] has a tag name, an attribute map, a class list, its own
// character data and ordered children. The tree is dialect-agnostic: it is
// produced by [Parse] from XML text and consumed by the importer's walker.
//
// # Styles
//
// Embedded <style> blocks are parsed into a [StyleSheet]. [Cascade] is the
// pure merge that computes an element's effective style, in increasing
// precedence:
//
//  1. root default rules (selector "*" or the root tag)
//  2. bare tag rules ("text")
//  3. class rules (".seq"), in class-list order
//  4. tag+class rules ("text.seq"), in class-list order
//  5. the element's inline style="" declarations
//
// Later layers override earlier ones key by key, never wholesale.
//
// # Text Measurement
//
// Geometric dialects need a bounding width/height for every text primitive.
// [Annotate] attaches these as [AttrMeasuredWidth] and [AttrMeasuredHeight]
// using a [Measurer]; elements that already carry them are left alone.
package document
