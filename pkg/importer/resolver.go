package importer

import (
	"github.com/matzehuels/rnaimport/pkg/model"
)

// MarkKind distinguishes the primitive a pair mark came from.
type MarkKind int

const (
	LineMark MarkKind = iota
	CircleMark
)

func (k MarkKind) String() string {
	if k == CircleMark {
		return "circle"
	}
	return "line"
}

// PairMark is a tentative base pair drawn as a line or circle. Coordinates
// are absolute.
type PairMark struct {
	Kind MarkKind
	// Type is canonical for lines; wobble or mismatch for circles.
	Type model.BasePairType

	// Points holds the two line endpoints.
	Points []model.Point
	// Center and Radius describe circles.
	Center model.Point
	Radius float64

	Color       string
	StrokeWidth *float64
}

// LabelLineMark is a tentative label line with absolute coordinates.
type LabelLineMark struct {
	Points []model.Point
	Stroke *model.Stroke
}

// LabelMark is a free-floating label fragment. Position is the text anchor;
// Width and Height are the pre-measured extents.
type LabelMark struct {
	Text     string
	Position model.Point
	Width    float64
	Height   float64
	Font     *model.Font
	Color    string
}

// ComplexMarks collects everything a resolver needs for one complex.
type ComplexMarks struct {
	Complex    *model.Complex
	PairMarks  []PairMark
	LabelLines []LabelLineMark
	Labels     []LabelMark
	// Offsets holds per-nucleotide dx/dy adjustments, keyed by relative key.
	Offsets map[model.NucleotideKey]model.Point
}

// ResolverInput is passed to [Resolver.Resolve] once per import.
type ResolverInput struct {
	Document  *model.Document
	Complexes []ComplexMarks
	// Policy is the duplicate policy configured for the import.
	Policy model.DuplicatePolicy
}

// Resolver links position-only marks to nucleotides. Implementations insert
// pairs with [model.Complex.InsertBasePair] and attach labels, then return
// the completed document.
type Resolver interface {
	Resolve(in *ResolverInput) (*model.Document, error)
}

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc func(in *ResolverInput) (*model.Document, error)

// Resolve implements [Resolver].
func (f ResolverFunc) Resolve(in *ResolverInput) (*model.Document, error) { return f(in) }

// NopResolver returns the document unchanged, dropping every mark.
type NopResolver struct{}

// Resolve implements [Resolver].
func (NopResolver) Resolve(in *ResolverInput) (*model.Document, error) { return in.Document, nil }
