// Package model defines the in-memory model of an RNA secondary-structure
// diagram: documents, complexes, molecules, nucleotides, base pairs and
// label annotations.
//
// # Indices
//
// Molecules store nucleotides under *relative* indices (0-based within the
// molecule). Files speak *formatted* (absolute) indices. The two are related
// by the molecule's first index:
//
//	relative  = formatted - FirstIndex
//	formatted = relative + FirstIndex
//
// Storage is sparse because some dialects assign indices out of order or with
// gaps.
//
// # Base Pairs
//
// A [Complex] owns the base-pair store. Every pair between nucleotides A and
// B is recorded twice: once under A referencing B and once under B
// referencing A. [CompareKeys] defines a total order over (molecule, index)
// keys; the smaller endpoint is the primary side. Each endpoint's
// [PartnerDescriptor] carries the pair type from its own perspective, so for
// orientation-sensitive Leontis–Westhof types the non-primary entry holds the
// reversed type.
//
// Use [Complex.InsertBasePair] to record pairs; it is the only way pairs
// enter the store and it maintains both invariants.
package model
