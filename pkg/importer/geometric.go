package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/document"
	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// Group ids that steer the legacy grouped dialect.
const (
	GroupLetters           = dialect.LettersGroup
	GroupLabelLines        = "Labels_Lines"
	GroupLabelText         = "Labels_Text"
	GroupNucleotideLines   = "Nucleotide_Lines"
	GroupNucleotideCircles = "Nucleotide_Circles"
)

var groupVocabulary = map[string]bool{
	GroupLetters:           true,
	GroupLabelLines:        true,
	GroupLabelText:         true,
	GroupNucleotideLines:   true,
	GroupNucleotideCircles: true,
}

// Defaults for documents that name neither their complex nor their molecules.
const (
	DefaultComplexName  = "complex"
	DefaultMoleculeName = "molecule"
)

var (
	bareIDRe   = regexp.MustCompile(`^-?\d+$`)
	prefixIDRe = regexp.MustCompile(`^[^_]+_(.+):(-?\d+)$`)
)

// parseLegacyID decodes "12" or "prefix_molecule:12". molecule is empty for
// the bare form.
func parseLegacyID(id string) (molecule string, index int, ok bool) {
	id = strings.TrimSpace(id)
	if bareIDRe.MatchString(id) {
		i, err := strconv.Atoi(id)
		return "", i, err == nil
	}
	if m := prefixIDRe.FindStringSubmatch(id); m != nil {
		i, err := strconv.Atoi(m[2])
		return m[1], i, err == nil
	}
	return "", 0, false
}

type geometric struct {
	unannotated bool
}

// LegacyGrouped returns the strategy for files that group primitives under
// the fixed id vocabulary.
func LegacyGrouped() Strategy {
	g := geometric{}
	return Strategy{Name: dialect.LegacyGrouped.String(), Visit: g.visit, Finish: finishGeometric}
}

// Unannotated returns the strategy for files of bare primitives.
func Unannotated() Strategy {
	g := geometric{unannotated: true}
	return Strategy{Name: dialect.Unannotated.String(), Visit: g.visit, Finish: finishGeometric}
}

// StrategyFor returns the strategy that parses d.
func StrategyFor(d dialect.Dialect) Strategy {
	switch d {
	case dialect.Annotated:
		return Annotated()
	case dialect.LegacyGrouped:
		return LegacyGrouped()
	default:
		return Unannotated()
	}
}

// beginGeometric opens the single complex that geometric dialects produce.
func beginGeometric(c *Cache, name string) {
	if name == "" {
		name = DefaultComplexName
	}
	x := c.Doc.EnsureComplex(name)
	c.openComplex(x)
	c.marks = &ComplexMarks{Complex: x, Offsets: make(map[model.NucleotideKey]model.Point)}
}

func (g geometric) visit(n *Node, c *Cache) error {
	if id := n.El.ID(); groupVocabulary[id] {
		c.group = id
		return nil
	}
	switch n.El.Tag {
	case "text":
		return g.text(n, c)
	case "line":
		return g.line(n, c)
	case "circle":
		return g.circle(n, c)
	case "polyline", "polygon", "path", "rect", "ellipse":
		c.Logger.Debug("skipping primitive", "tag", n.El.Tag, "group", c.group)
	}
	return nil
}

func (g geometric) text(n *Node, c *Cache) error {
	if !g.unannotated {
		switch c.group {
		case GroupLetters:
			mol, idx, ok := parseLegacyID(n.El.ID())
			if !ok {
				c.Logger.Debug("skipping letter without index", "id", n.El.ID())
				return nil
			}
			return addNucleotide(n, c, mol, idx)
		case GroupLabelText:
			return addLabel(n, c)
		}
		return nil
	}

	if _, err := model.ParseSymbol(n.El.TextContent()); err != nil {
		return addLabel(n, c)
	}
	mol, idx, ok := parseLegacyID(n.El.ID())
	if ok {
		c.counter = idx
	} else {
		c.counter++
		idx = c.counter
	}
	return addNucleotide(n, c, mol, idx)
}

func addNucleotide(n *Node, c *Cache, mol string, idx int) error {
	sym, err := model.ParseSymbol(n.El.TextContent())
	if err != nil {
		return err
	}
	if mol == "" {
		mol = DefaultMoleculeName
		if c.molecule != nil {
			mol = c.molecule.Name
		}
	}
	m, err := ensureMolecule(c, mol, idx)
	if err != nil {
		return err
	}

	pos, err := n.Point("x", "y")
	if err != nil {
		return err
	}
	dx, err := n.Float("dx", 0)
	if err != nil {
		return err
	}
	dy, err := n.Float("dy", 0)
	if err != nil {
		return err
	}
	if dx != 0 || dy != 0 {
		if c.offsets[mol] == nil {
			c.offsets[mol] = make(map[int]model.Point)
		}
		c.offsets[mol][idx] = model.Point{X: dx, Y: dy}
	}
	stroke, err := readStroke(n)
	if err != nil {
		return err
	}

	rel := m.Relative(idx)
	if _, dup := m.Nucleotide(rel); dup {
		c.Logger.Debug("replacing nucleotide", "molecule", mol, "index", idx)
	}
	m.Set(rel, &model.Nucleotide{
		Symbol: sym,
		X:      pos.X,
		Y:      pos.Y,
		Font:   readFont(n),
		Color:  readFill(n),
		Stroke: stroke,
	})
	return nil
}

// ensureMolecule returns the named molecule, creating it or lowering its
// first index so that idx is never negative relative.
func ensureMolecule(c *Cache, name string, idx int) (*model.Molecule, error) {
	x := c.Complex()
	m, ok := x.Molecule(name)
	if !ok {
		var err error
		if m, err = x.AddMolecule(name, idx); err != nil {
			return nil, err
		}
	} else if idx < m.FirstIndex {
		if err := x.RebaseMolecule(name, idx); err != nil {
			return nil, err
		}
	}
	c.molecule = m
	return m, nil
}

func addLabel(n *Node, c *Cache) error {
	text := strings.TrimSpace(n.El.TextContent())
	if text == "" {
		return nil
	}
	w, err := measured(n, document.AttrMeasuredWidth)
	if err != nil {
		return err
	}
	h, err := measured(n, document.AttrMeasuredHeight)
	if err != nil {
		return err
	}
	pos, err := n.Point("x", "y")
	if err != nil {
		return err
	}
	c.marks.Labels = append(c.marks.Labels, LabelMark{
		Text:     text,
		Position: pos,
		Width:    w,
		Height:   h,
		Font:     readFont(n),
		Color:    readFill(n),
	})
	return nil
}

func measured(n *Node, name string) (float64, error) {
	if _, ok := n.El.Attr(name); !ok {
		return 0, errors.MissingAttribute(name)
	}
	return n.Float(name, 0)
}

func (g geometric) line(n *Node, c *Cache) error {
	asPair := g.unannotated || c.group == GroupNucleotideLines
	asLabel := g.unannotated || c.group == GroupLabelLines
	if !asPair && !asLabel {
		return nil
	}
	p1, err := n.Point("x1", "y1")
	if err != nil {
		return err
	}
	p2, err := n.Point("x2", "y2")
	if err != nil {
		return err
	}
	stroke, err := readStroke(n)
	if err != nil {
		return err
	}
	if asPair {
		mark := PairMark{Kind: LineMark, Type: model.Canonical, Points: []model.Point{p1, p2}}
		if stroke != nil {
			mark.Color, mark.StrokeWidth = stroke.Color, stroke.Width
		}
		c.marks.PairMarks = append(c.marks.PairMarks, mark)
	}
	if asLabel {
		c.marks.LabelLines = append(c.marks.LabelLines, LabelLineMark{Points: []model.Point{p1, p2}, Stroke: stroke})
	}
	return nil
}

func (g geometric) circle(n *Node, c *Cache) error {
	if !g.unannotated && c.group != GroupNucleotideCircles {
		return nil
	}
	center, err := n.Point("cx", "cy")
	if err != nil {
		return err
	}
	r, err := n.Float("r", 0)
	if err != nil {
		return err
	}
	mark := PairMark{
		Kind:   CircleMark,
		Type:   model.Mismatch,
		Center: center,
		Radius: r * math.Sqrt(math.Abs(n.CTM.Determinant())),
	}
	fill, _ := n.Value("fill")
	if fill = strings.TrimSpace(strings.ToLower(fill)); fill != "" && fill != "none" {
		mark.Type = model.Wobble
		mark.Color = model.NormalizeColor(fill)
	}
	if v, ok := n.Value("stroke"); ok && mark.Color == "" {
		mark.Color = model.NormalizeColor(v)
	}
	if mark.StrokeWidth, err = readStrokeWidth(n); err != nil {
		return err
	}
	c.marks.PairMarks = append(c.marks.PairMarks, mark)
	return nil
}

// finishGeometric re-keys offsets by relative index now that every
// molecule's first index is final.
func finishGeometric(c *Cache) error {
	x := c.Complex()
	for mol, byIndex := range c.offsets {
		m, ok := x.Molecule(mol)
		if !ok {
			continue
		}
		for idx, p := range byIndex {
			c.marks.Offsets[model.NucleotideKey{Molecule: mol, Index: m.Relative(idx)}] = p
		}
	}
	c.closeComplex()
	return nil
}
