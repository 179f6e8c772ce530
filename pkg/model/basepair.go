package model

import (
	"cmp"
	"fmt"
	"maps"
	"regexp"
	"slices"

	"github.com/matzehuels/rnaimport/pkg/errors"
)

// BasePairType is either a simple variant (canonical, wobble, mismatch) or a
// directed Leontis–Westhof code such as "cWH": orientation (c = cis,
// t = trans) followed by the edges of the first and second nucleotide
// (W = Watson–Crick, H = Hoogsteen, S = sugar edge).
type BasePairType string

// Simple base-pair types.
const (
	Canonical BasePairType = "canonical"
	Wobble    BasePairType = "wobble"
	Mismatch  BasePairType = "mismatch"
)

// Leontis–Westhof edges.
const (
	EdgeWatsonCrick = 'W'
	EdgeHoogsteen   = 'H'
	EdgeSugar       = 'S'
)

var lwRe = regexp.MustCompile(`^[ct][WHS][WHS]$`)

// ParseBasePairType validates a base-pair type literal.
func ParseBasePairType(s string) (BasePairType, error) {
	switch t := BasePairType(s); t {
	case Canonical, Wobble, Mismatch:
		return t, nil
	}
	if lwRe.MatchString(s) {
		return BasePairType(s), nil
	}
	return "", errors.UnrecognizedBasePairType(s)
}

// IsLeontisWesthof reports whether t is a directed Leontis–Westhof code.
func (t BasePairType) IsLeontisWesthof() bool {
	return lwRe.MatchString(string(t))
}

// IsCis reports whether t is a cis Leontis–Westhof code.
func (t BasePairType) IsCis() bool { return t.IsLeontisWesthof() && t[0] == 'c' }

// Edges returns the first and second edge of a Leontis–Westhof code.
func (t BasePairType) Edges() (first, second byte, ok bool) {
	if !t.IsLeontisWesthof() {
		return 0, 0, false
	}
	return t[1], t[2], true
}

// OrientationSensitive reports whether swapping the endpoints changes the type.
func (t BasePairType) OrientationSensitive() bool {
	a, b, ok := t.Edges()
	return ok && a != b
}

// Reverse returns the type as seen from the other endpoint.
func (t BasePairType) Reverse() BasePairType {
	if !t.OrientationSensitive() {
		return t
	}
	return BasePairType([]byte{t[0], t[2], t[1]})
}

// NucleotideKey addresses a nucleotide within a complex by molecule name and
// relative index.
type NucleotideKey struct {
	Molecule string
	Index    int
}

func (k NucleotideKey) String() string { return fmt.Sprintf("%s[%d]", k.Molecule, k.Index) }

// CompareKeys orders keys by molecule name, then by index.
func CompareKeys(k0, k1 NucleotideKey) int {
	if c := cmp.Compare(k0.Molecule, k1.Molecule); c != 0 {
		return c
	}
	return cmp.Compare(k0.Index, k1.Index)
}

// PartnerDescriptor is one endpoint's view of a base pair.
type PartnerDescriptor struct {
	Molecule    string
	Index       int
	Type        BasePairType
	Color       string
	StrokeWidth *float64
	Points      []Point
}

// Key returns the partner's key.
func (p PartnerDescriptor) Key() NucleotideKey {
	return NucleotideKey{Molecule: p.Molecule, Index: p.Index}
}

// PairAttributes carries the type and styling of a pair being inserted. Type
// and Points belong to the primary endpoint, the one [CompareKeys] orders
// first, whichever argument order the pair is inserted with.
type PairAttributes struct {
	Type        BasePairType
	Color       string
	StrokeWidth *float64
	Points      []Point
}

// DuplicatePolicy controls what [Complex.InsertBasePair] does when the pair
// already exists.
type DuplicatePolicy int

const (
	// DoNothing keeps the existing pair untouched.
	DoNothing DuplicatePolicy = iota
	// DeletePreviousMapping removes the old pair and records the new one.
	DeletePreviousMapping
)

func (p DuplicatePolicy) String() string {
	if p == DeletePreviousMapping {
		return "replace"
	}
	return "keep"
}

// BasePair is a pair seen from its primary (smaller-key) endpoint.
type BasePair struct {
	A, B        NucleotideKey
	Type        BasePairType
	Color       string
	StrokeWidth *float64
	Points      []Point
}

// InsertBasePair records a pair between a and b (relative keys).
//
// If the pair does not exist, a descriptor is appended to both endpoints.
// If it exists, policy decides between leaving both sides unchanged and
// replacing them with attrs.
func (c *Complex) InsertBasePair(a, b NucleotideKey, policy DuplicatePolicy, attrs PairAttributes) error {
	if CompareKeys(a, b) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot pair nucleotide %s with itself", a)
	}
	if _, err := ParseBasePairType(string(attrs.Type)); err != nil {
		return err
	}
	for _, k := range []NucleotideKey{a, b} {
		if _, ok := c.Nucleotide(k); !ok {
			return c.dangling(k)
		}
	}

	if c.partnerIndex(a, b) >= 0 {
		if policy == DoNothing {
			return nil
		}
		c.RemoveBasePair(a, b)
	}

	primary, other := a, b
	if CompareKeys(a, b) > 0 {
		primary, other = b, a
	}
	c.appendPartner(primary, PartnerDescriptor{
		Molecule:    other.Molecule,
		Index:       other.Index,
		Type:        attrs.Type,
		Color:       attrs.Color,
		StrokeWidth: cloneFloat(attrs.StrokeWidth),
		Points:      slices.Clone(attrs.Points),
	})
	c.appendPartner(other, PartnerDescriptor{
		Molecule:    primary.Molecule,
		Index:       primary.Index,
		Type:        attrs.Type.Reverse(),
		Color:       attrs.Color,
		StrokeWidth: cloneFloat(attrs.StrokeWidth),
		Points:      reversed(attrs.Points),
	})
	return nil
}

// RemoveBasePair deletes both descriptors of the pair. It reports whether a
// pair was removed.
func (c *Complex) RemoveBasePair(a, b NucleotideKey) bool {
	removed := c.removePartner(a, b)
	if c.removePartner(b, a) {
		removed = true
	}
	return removed
}

// Partners returns the descriptors recorded under k.
func (c *Complex) Partners(k NucleotideKey) []PartnerDescriptor {
	return slices.Clone(c.basePairs[k.Molecule][k.Index])
}

// HasBasePair reports whether a and b are paired.
func (c *Complex) HasBasePair(a, b NucleotideKey) bool {
	return c.partnerIndex(a, b) >= 0
}

// BasePairs returns every pair once, seen from its primary endpoint, in
// canonical order.
func (c *Complex) BasePairs() []BasePair {
	var out []BasePair
	for _, mol := range slices.Sorted(maps.Keys(c.basePairs)) {
		byIndex := c.basePairs[mol]
		for _, idx := range slices.Sorted(maps.Keys(byIndex)) {
			self := NucleotideKey{Molecule: mol, Index: idx}
			for _, p := range byIndex[idx] {
				if CompareKeys(self, p.Key()) >= 0 {
					continue
				}
				out = append(out, BasePair{
					A: self, B: p.Key(),
					Type:        p.Type,
					Color:       p.Color,
					StrokeWidth: cloneFloat(p.StrokeWidth),
					Points:      slices.Clone(p.Points),
				})
			}
		}
	}
	slices.SortStableFunc(out, func(x, y BasePair) int {
		if d := CompareKeys(x.A, y.A); d != 0 {
			return d
		}
		return CompareKeys(x.B, y.B)
	})
	return out
}

// BasePairCount returns the number of distinct pairs.
func (c *Complex) BasePairCount() int {
	n := 0
	for _, byIndex := range c.basePairs {
		for _, partners := range byIndex {
			n += len(partners)
		}
	}
	return n / 2
}

// CheckSymmetry verifies that every descriptor has a mirror entry with the
// orientation-correct type.
func (c *Complex) CheckSymmetry() error {
	for mol, byIndex := range c.basePairs {
		for idx, partners := range byIndex {
			self := NucleotideKey{Molecule: mol, Index: idx}
			for _, p := range partners {
				i := c.partnerIndex(p.Key(), self)
				if i < 0 {
					return fmt.Errorf("pair %s-%s has no mirror entry", self, p.Key())
				}
				mirror := c.basePairs[p.Molecule][p.Index][i]
				if mirror.Type != p.Type.Reverse() {
					return fmt.Errorf("pair %s-%s: mirror type %q, want %q", self, p.Key(), mirror.Type, p.Type.Reverse())
				}
			}
		}
	}
	return nil
}

func (c *Complex) partnerIndex(a, b NucleotideKey) int {
	return slices.IndexFunc(c.basePairs[a.Molecule][a.Index], func(p PartnerDescriptor) bool {
		return p.Molecule == b.Molecule && p.Index == b.Index
	})
}

func (c *Complex) appendPartner(k NucleotideKey, p PartnerDescriptor) {
	byIndex, ok := c.basePairs[k.Molecule]
	if !ok {
		byIndex = make(map[int][]PartnerDescriptor)
		c.basePairs[k.Molecule] = byIndex
	}
	byIndex[k.Index] = append(byIndex[k.Index], p)
}

func (c *Complex) removePartner(a, b NucleotideKey) bool {
	i := c.partnerIndex(a, b)
	if i < 0 {
		return false
	}
	byIndex := c.basePairs[a.Molecule]
	byIndex[a.Index] = slices.Delete(byIndex[a.Index], i, i+1)
	if len(byIndex[a.Index]) == 0 {
		delete(byIndex, a.Index)
	}
	if len(byIndex) == 0 {
		delete(c.basePairs, a.Molecule)
	}
	return true
}

func (c *Complex) dangling(k NucleotideKey) error {
	m, ok := c.molecules[k.Molecule]
	if !ok {
		return errors.DanglingReference("Molecule %q does not exist in complex %q.", k.Molecule, c.Name)
	}
	return errors.DanglingReference("Nucleotide %d does not exist in molecule %q of complex %q.",
		m.Formatted(k.Index), k.Molecule, c.Name)
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func reversed(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := slices.Clone(pts)
	slices.Reverse(out)
	return out
}
