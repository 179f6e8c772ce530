package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/rnaimport/pkg/errors"
)

// Document is the result of importing one diagram file.
type Document struct {
	Name      string
	Complexes []*Complex
}

// NewDocument creates an empty document.
func NewDocument(name string) *Document {
	return &Document{Name: name}
}

// Complex returns the complex with the given name.
func (d *Document) Complex(name string) (*Complex, bool) {
	for _, c := range d.Complexes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// EnsureComplex returns the complex named name, creating and appending it if
// it does not exist. Complex identity is the name: a second declaration with
// the same name merges into the first.
func (d *Document) EnsureComplex(name string) *Complex {
	if c, ok := d.Complex(name); ok {
		return c
	}
	c := NewComplex(name)
	d.Complexes = append(d.Complexes, c)
	return c
}

// NucleotideCount returns the total number of nucleotides across all complexes.
func (d *Document) NucleotideCount() int {
	n := 0
	for _, c := range d.Complexes {
		n += c.NucleotideCount()
	}
	return n
}

// BasePairCount returns the total number of base pairs across all complexes.
func (d *Document) BasePairCount() int {
	n := 0
	for _, c := range d.Complexes {
		n += c.BasePairCount()
	}
	return n
}

// CheckSymmetry verifies the base-pair symmetry invariant of every complex.
func (d *Document) CheckSymmetry() error {
	for _, c := range d.Complexes {
		if err := c.CheckSymmetry(); err != nil {
			return fmt.Errorf("complex %q: %w", c.Name, err)
		}
	}
	return nil
}

// Complex is a collection of interacting molecules sharing one base-pair space.
// Molecules keep their insertion order.
type Complex struct {
	Name string

	order     []string
	molecules map[string]*Molecule
	basePairs map[string]map[int][]PartnerDescriptor
}

// NewComplex creates an empty complex.
func NewComplex(name string) *Complex {
	return &Complex{
		Name:      name,
		molecules: make(map[string]*Molecule),
		basePairs: make(map[string]map[int][]PartnerDescriptor),
	}
}

// MoleculeNames returns molecule names in insertion order.
func (c *Complex) MoleculeNames() []string {
	return slices.Clone(c.order)
}

// Molecules returns molecules in insertion order.
func (c *Complex) Molecules() []*Molecule {
	out := make([]*Molecule, len(c.order))
	for i, name := range c.order {
		out[i] = c.molecules[name]
	}
	return out
}

// Molecule returns the molecule with the given name.
func (c *Complex) Molecule(name string) (*Molecule, bool) {
	m, ok := c.molecules[name]
	return m, ok
}

// AddMolecule appends a new molecule. If a molecule with the same name already
// exists it is returned unchanged, provided its first index matches.
func (c *Complex) AddMolecule(name string, firstIndex int) (*Molecule, error) {
	if err := errors.ValidateName("molecule", name); err != nil {
		return nil, err
	}
	if m, ok := c.molecules[name]; ok {
		if m.FirstIndex != firstIndex {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"molecule %q redeclared with first index %d (was %d)", name, firstIndex, m.FirstIndex)
		}
		return m, nil
	}
	m := NewMolecule(name, firstIndex)
	c.molecules[name] = m
	c.order = append(c.order, name)
	return m, nil
}

// RebaseMolecule changes a molecule's first index while keeping every stored
// nucleotide at the same formatted index. It fails once base pairs reference
// the molecule, since those are keyed by relative index.
func (c *Complex) RebaseMolecule(name string, firstIndex int) error {
	m, ok := c.molecules[name]
	if !ok {
		return errors.DanglingReference("Molecule %q does not exist in complex %q.", name, c.Name)
	}
	if len(c.basePairs[name]) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot rebase molecule %q: base pairs already recorded", name)
	}
	m.rebase(firstIndex)
	return nil
}

// Nucleotide resolves a relative key to a nucleotide.
func (c *Complex) Nucleotide(k NucleotideKey) (*Nucleotide, bool) {
	m, ok := c.molecules[k.Molecule]
	if !ok {
		return nil, false
	}
	return m.Nucleotide(k.Index)
}

// NucleotideCount returns the number of nucleotides in all molecules.
func (c *Complex) NucleotideCount() int {
	n := 0
	for _, m := range c.molecules {
		n += m.Len()
	}
	return n
}

// Each calls fn for every nucleotide, molecules in insertion order and
// nucleotides in ascending relative index.
func (c *Complex) Each(fn func(k NucleotideKey, n *Nucleotide)) {
	for _, name := range c.order {
		m := c.molecules[name]
		for _, idx := range m.Indices() {
			fn(NucleotideKey{Molecule: name, Index: idx}, m.nucleotides[idx])
		}
	}
}

// Molecule is one linear nucleotide sequence with its own index origin.
type Molecule struct {
	Name       string
	FirstIndex int

	nucleotides map[int]*Nucleotide
}

// NewMolecule creates an empty molecule whose relative index 0 corresponds to
// formatted index firstIndex.
func NewMolecule(name string, firstIndex int) *Molecule {
	return &Molecule{Name: name, FirstIndex: firstIndex, nucleotides: make(map[int]*Nucleotide)}
}

// Relative converts a formatted index to a relative index.
func (m *Molecule) Relative(formatted int) int { return formatted - m.FirstIndex }

// Formatted converts a relative index to a formatted index.
func (m *Molecule) Formatted(relative int) int { return relative + m.FirstIndex }

// Set stores n at the relative index, replacing any previous nucleotide.
func (m *Molecule) Set(relative int, n *Nucleotide) {
	m.nucleotides[relative] = n
}

// Nucleotide returns the nucleotide at the relative index.
func (m *Molecule) Nucleotide(relative int) (*Nucleotide, bool) {
	n, ok := m.nucleotides[relative]
	return n, ok
}

// Indices returns the occupied relative indices in ascending order.
func (m *Molecule) Indices() []int {
	out := make([]int, 0, len(m.nucleotides))
	for idx := range m.nucleotides {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of stored nucleotides.
func (m *Molecule) Len() int { return len(m.nucleotides) }

// Sequence returns the symbols in ascending index order, gaps skipped.
func (m *Molecule) Sequence() string {
	var b strings.Builder
	for _, idx := range m.Indices() {
		b.WriteString(string(m.nucleotides[idx].Symbol))
	}
	return b.String()
}

func (m *Molecule) rebase(firstIndex int) {
	shift := m.FirstIndex - firstIndex
	if shift == 0 {
		return
	}
	moved := make(map[int]*Nucleotide, len(m.nucleotides))
	for idx, n := range m.nucleotides {
		moved[idx+shift] = n
	}
	m.nucleotides = moved
	m.FirstIndex = firstIndex
}
