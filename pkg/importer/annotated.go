package importer

import (
	"strings"

	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// Semantic types of the annotated dialect.
const (
	TypeScene        = "scene"
	TypeComplex      = "complex"
	TypeMolecule     = "molecule"
	TypeNucleotide   = "nucleotide"
	TypeLabelLine    = "label-line"
	TypeLabelContent = "label-content"
	TypeBasePair     = "base-pair"
	TypePath         = "path"
	TypeCenterline   = "centerline"
)

var annotatedVisitors = map[string]Visitor{
	TypeScene:        visitScene,
	TypeComplex:      visitComplex,
	TypeMolecule:     visitMolecule,
	TypeNucleotide:   visitNucleotide,
	TypeLabelLine:    visitLabelLine,
	TypeLabelContent: visitLabelContent,
	TypeBasePair:     visitBasePair,
	TypePath:         nil,
	TypeCenterline:   nil,
}

// Annotated returns the strategy for files whose elements carry explicit
// data-rna-type tags. Elements without a tag are walked through.
func Annotated() Strategy {
	return Strategy{
		Name:         dialect.Annotated.String(),
		SemanticType: semanticType,
		Visit:        visitAnnotated,
		PostOrder: map[string]Visitor{
			TypeComplex:  closeComplex,
			TypeMolecule: closeMolecule,
		},
		Finish: finishAnnotated,
	}
}

func semanticType(n *Node) string {
	v, _ := n.El.Attr(dialect.Marker)
	return strings.TrimSpace(v)
}

func visitAnnotated(n *Node, c *Cache) error {
	if _, ok := n.El.Attr(dialect.Marker); !ok {
		return nil
	}
	t := semanticType(n)
	visit, ok := annotatedVisitors[t]
	if !ok {
		return errors.UnrecognizedSemanticType(t)
	}
	if visit == nil {
		return nil
	}
	return visit(n, c)
}

func visitScene(n *Node, c *Cache) error {
	if name, ok := n.El.Attr("data-name"); ok {
		c.Doc.Name = name
	}
	c.labelsRelative = readBool(n, "data-label-lines-relative")
	c.invertY = readBool(n, "data-invert-y")
	return nil
}

func visitComplex(n *Node, c *Cache) error {
	name, err := n.Require("data-name")
	if err != nil {
		return err
	}
	if err := errors.ValidateName("complex", name); err != nil {
		return err
	}
	c.openComplex(c.Doc.EnsureComplex(name))
	return nil
}

func visitMolecule(n *Node, c *Cache) error {
	name, err := n.Require("data-name")
	if err != nil {
		return err
	}
	first, err := n.RequireInt("data-first-index")
	if err != nil {
		return err
	}
	x := c.Complex()
	if x == nil {
		return errors.New(errors.ErrCodeMalformedDocument, "molecule %q is outside any complex", name)
	}
	m, err := x.AddMolecule(name, first)
	if err != nil {
		return err
	}
	c.molecule = m
	return nil
}

func visitNucleotide(n *Node, c *Cache) error {
	if _, err := n.Require("transform"); err != nil {
		return err
	}
	idx, err := n.RequireInt("data-index")
	if err != nil {
		return err
	}
	sym, err := model.ParseSymbol(n.El.TextContent())
	if err != nil {
		return err
	}
	m := c.molecule
	if m == nil {
		return errors.New(errors.ErrCodeMalformedDocument, "nucleotide %d is outside any molecule", idx)
	}
	pos, err := c.position(n)
	if err != nil {
		return err
	}
	stroke, err := readStroke(n)
	if err != nil {
		return err
	}
	m.Set(m.Relative(idx), &model.Nucleotide{
		Symbol: sym,
		X:      pos.X,
		Y:      pos.Y,
		Font:   readFont(n),
		Color:  readFill(n),
		Stroke: stroke,
	})
	return nil
}

func visitLabelLine(n *Node, c *Cache) error {
	at, err := labelTarget(n)
	if err != nil {
		return err
	}
	raw, err := n.Require("points")
	if err != nil {
		return err
	}
	pts, err := parsePoints(raw)
	if err != nil {
		return err
	}
	for i, p := range pts {
		if !c.labelsRelative {
			p = applyCTM(n, p)
		}
		pts[i] = c.flip(p)
	}
	stroke, err := readStroke(n)
	if err != nil {
		return err
	}
	line := &model.LabelLine{Points: pts, Stroke: stroke}
	if err := line.Validate(); err != nil {
		return err
	}
	c.queueLabel(pendingLabel{at: at, line: line})
	return nil
}

func visitLabelContent(n *Node, c *Cache) error {
	at, err := labelTarget(n)
	if err != nil {
		return err
	}
	if _, err := n.Require("transform"); err != nil {
		return err
	}
	pos, err := c.position(n)
	if err != nil {
		return err
	}
	c.queueLabel(pendingLabel{at: at, content: &model.LabelContent{
		Text:  strings.TrimSpace(n.El.TextContent()),
		X:     pos.X,
		Y:     pos.Y,
		Font:  readFont(n),
		Color: readFill(n),
	}})
	return nil
}

func visitBasePair(n *Node, c *Cache) error {
	var ends [2]target
	for i, suffix := range []string{"1", "2"} {
		mol, err := n.Require("data-molecule-" + suffix)
		if err != nil {
			return err
		}
		idx, err := n.RequireInt("data-index-" + suffix)
		if err != nil {
			return err
		}
		ends[i] = target{molecule: mol, index: idx}
	}
	raw, err := n.Require("data-pair-type")
	if err != nil {
		return err
	}
	typ, err := model.ParseBasePairType(raw)
	if err != nil {
		return err
	}

	x := c.Complex()
	if x == nil {
		return errors.New(errors.ErrCodeMalformedDocument, "base pair %s[%d]-%s[%d] is outside any complex",
			ends[0].molecule, ends[0].index, ends[1].molecule, ends[1].index)
	}
	ends[0].complex, ends[1].complex = x.Name, x.Name

	attrs := model.PairAttributes{Type: typ}
	if v, ok := n.Value("stroke"); ok {
		attrs.Color = model.NormalizeColor(v)
	}
	if attrs.StrokeWidth, err = readStrokeWidth(n); err != nil {
		return err
	}
	if v, ok := n.El.Attr("points"); ok {
		pts, err := parsePoints(v)
		if err != nil {
			return err
		}
		for i, p := range pts {
			pts[i] = c.flip(applyCTM(n, p))
		}
		attrs.Points = pts
	}
	c.pendingPairs[x.Name] = append(c.pendingPairs[x.Name], pendingPair{a: ends[0], b: ends[1], attrs: attrs})
	return nil
}

func labelTarget(n *Node) (target, error) {
	var t target
	var err error
	if t.complex, err = n.Require("data-complex"); err != nil {
		return t, err
	}
	if t.molecule, err = n.Require("data-molecule"); err != nil {
		return t, err
	}
	if t.index, err = n.RequireInt("data-index"); err != nil {
		return t, err
	}
	return t, nil
}

// closeComplex flushes the complex's deferred pairs and labels.
// closeMolecule ends the molecule scope so later siblings cannot attach
// nucleotides to it.
func closeMolecule(_ *Node, c *Cache) error {
	c.molecule = nil
	return nil
}

func closeComplex(_ *Node, c *Cache) error {
	x := c.Complex()
	if x == nil {
		return errors.New(errors.ErrCodeInternal, "complex closed without being opened")
	}
	pairs := c.pendingPairs[x.Name]
	delete(c.pendingPairs, x.Name)
	for _, p := range pairs {
		a, err := relativeKey(x, p.a)
		if err != nil {
			return err
		}
		b, err := relativeKey(x, p.b)
		if err != nil {
			return err
		}
		if err := x.InsertBasePair(a, b, c.Policy, p.attrs); err != nil {
			return err
		}
	}
	if err := c.flushLabels(x.Name); err != nil {
		return err
	}
	c.closeComplex()
	return nil
}

func finishAnnotated(c *Cache) error {
	for _, name := range c.labelOrder {
		if err := c.flushLabels(name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) flushLabels(name string) error {
	labels := c.pendingLabels[name]
	if len(labels) == 0 {
		return nil
	}
	delete(c.pendingLabels, name)

	x, ok := c.Doc.Complex(name)
	if !ok {
		return errors.DanglingReference("Label references complex %q, which does not exist.", name)
	}
	for _, l := range labels {
		k, err := relativeKey(x, l.at)
		if err != nil {
			return err
		}
		nt, ok := x.Nucleotide(k)
		if !ok {
			return errors.DanglingReference("Label references nucleotide %s[%d] in complex %q, which does not exist.",
				l.at.molecule, l.at.index, name)
		}
		if l.line != nil {
			if !c.labelsRelative {
				for i, p := range l.line.Points {
					l.line.Points[i] = model.Point{X: p.X - nt.X, Y: p.Y - nt.Y}
				}
			}
			nt.LabelLine = l.line
		}
		if l.content != nil {
			l.content.X -= nt.X
			l.content.Y -= nt.Y
			nt.Label = l.content
		}
	}
	return nil
}

func relativeKey(x *model.Complex, t target) (model.NucleotideKey, error) {
	m, ok := x.Molecule(t.molecule)
	if !ok {
		return model.NucleotideKey{}, errors.DanglingReference("Molecule %q does not exist in complex %q.", t.molecule, x.Name)
	}
	return model.NucleotideKey{Molecule: m.Name, Index: m.Relative(t.index)}, nil
}

// position returns the node's (x, y) under its CTM, honoring the scene's
// y-axis flag.
func (c *Cache) position(n *Node) (model.Point, error) {
	p, err := n.Point("x", "y")
	if err != nil {
		return p, err
	}
	return c.flip(p), nil
}

func (c *Cache) flip(p model.Point) model.Point {
	if c.invertY {
		p.Y = -p.Y
	}
	return p
}
