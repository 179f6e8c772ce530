package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/model"
)

const margin = 20.0

// Option configures [RenderSVG].
type Option func(*writer)

// WithInvertY stores y coordinates negated and sets the scene's
// data-invert-y flag.
func WithInvertY() Option { return func(w *writer) { w.invertY = true } }

// WithRelativeLabelLines stores label-line points relative to their
// nucleotide and sets the scene's data-label-lines-relative flag.
func WithRelativeLabelLines() Option { return func(w *writer) { w.relative = true } }

type writer struct {
	buf      bytes.Buffer
	invertY  bool
	relative bool
}

// RenderSVG returns doc as annotated SVG.
func RenderSVG(doc *model.Document, opts ...Option) []byte {
	w := &writer{}
	for _, opt := range opts {
		opt(w)
	}

	minX, minY, maxX, maxY := bounds(doc)
	if w.invertY {
		minY, maxY = -maxY, -minY
	}
	fmt.Fprintf(&w.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		num(minX-margin), num(minY-margin), num(maxX-minX+2*margin), num(maxY-minY+2*margin))

	w.buf.WriteString(`<g ` + dialect.Marker + `="scene"`)
	if doc.Name != "" {
		w.attr("data-name", doc.Name)
	}
	w.attr("data-label-lines-relative", strconv.FormatBool(w.relative))
	w.attr("data-invert-y", strconv.FormatBool(w.invertY))
	w.buf.WriteString(">\n")

	for _, c := range doc.Complexes {
		w.complex(c)
	}
	w.buf.WriteString("</g>\n</svg>\n")
	return w.buf.Bytes()
}

// WriteSVG writes the annotated SVG of doc to out.
func WriteSVG(doc *model.Document, out io.Writer, opts ...Option) error {
	_, err := out.Write(RenderSVG(doc, opts...))
	return err
}

func (w *writer) complex(c *model.Complex) {
	w.open("g", "complex")
	w.attr("data-name", c.Name)
	w.buf.WriteString(">\n")

	for _, m := range c.Molecules() {
		w.open("g", "molecule")
		w.attr("data-name", m.Name)
		w.attr("data-first-index", strconv.Itoa(m.FirstIndex))
		w.buf.WriteString(">\n")
		for _, idx := range m.Indices() {
			n, _ := m.Nucleotide(idx)
			w.nucleotide(m.Formatted(idx), n)
		}
		w.buf.WriteString("</g>\n")
	}

	for _, bp := range c.BasePairs() {
		w.basePair(c, bp)
	}

	c.Each(func(k model.NucleotideKey, n *model.Nucleotide) {
		m, _ := c.Molecule(k.Molecule)
		if n.LabelLine != nil {
			w.labelLine(c.Name, m.Name, m.Formatted(k.Index), n)
		}
		if n.Label != nil {
			w.labelContent(c.Name, m.Name, m.Formatted(k.Index), n)
		}
	})
	w.buf.WriteString("</g>\n")
}

func (w *writer) nucleotide(index int, n *model.Nucleotide) {
	w.open("text", "nucleotide")
	w.attr("data-index", strconv.Itoa(index))
	w.attr("transform", w.translate(n.X, n.Y))
	w.font(n.Font)
	if n.Color != "" {
		w.attr("fill", n.Color)
	}
	w.stroke(n.Stroke)
	w.buf.WriteString(">")
	w.text(string(n.Symbol))
	w.buf.WriteString("</text>\n")
}

func (w *writer) basePair(c *model.Complex, bp model.BasePair) {
	ma, _ := c.Molecule(bp.A.Molecule)
	mb, _ := c.Molecule(bp.B.Molecule)
	if len(bp.Points) > 0 {
		w.open("polyline", "base-pair")
	} else {
		w.open("line", "base-pair")
	}
	w.attr("data-molecule-1", bp.A.Molecule)
	w.attr("data-index-1", strconv.Itoa(ma.Formatted(bp.A.Index)))
	w.attr("data-molecule-2", bp.B.Molecule)
	w.attr("data-index-2", strconv.Itoa(mb.Formatted(bp.B.Index)))
	w.attr("data-pair-type", string(bp.Type))
	if bp.Color != "" {
		w.attr("stroke", bp.Color)
	}
	if bp.StrokeWidth != nil {
		w.attr("stroke-width", num(*bp.StrokeWidth))
	}
	if len(bp.Points) > 0 {
		w.attr("points", w.points(bp.Points, model.Point{}))
		w.attr("fill", "none")
	} else {
		na, _ := c.Nucleotide(bp.A)
		nb, _ := c.Nucleotide(bp.B)
		w.attr("x1", num(na.X))
		w.attr("y1", num(w.y(na.Y)))
		w.attr("x2", num(nb.X))
		w.attr("y2", num(w.y(nb.Y)))
	}
	w.buf.WriteString("/>\n")
}

func (w *writer) labelLine(complex, molecule string, index int, n *model.Nucleotide) {
	w.open("polyline", "label-line")
	w.target(complex, molecule, index)
	origin := model.Point{X: n.X, Y: n.Y}
	if w.relative {
		origin = model.Point{}
	}
	w.attr("points", w.points(n.LabelLine.Points, origin))
	w.attr("fill", "none")
	w.stroke(n.LabelLine.Stroke)
	w.buf.WriteString("/>\n")
}

func (w *writer) labelContent(complex, molecule string, index int, n *model.Nucleotide) {
	l := n.Label
	w.open("text", "label-content")
	w.target(complex, molecule, index)
	w.attr("transform", w.translate(n.X+l.X, n.Y+l.Y))
	w.font(l.Font)
	if l.Color != "" {
		w.attr("fill", l.Color)
	}
	w.buf.WriteString(">")
	w.text(l.Text)
	w.buf.WriteString("</text>\n")
}

func (w *writer) target(complex, molecule string, index int) {
	w.attr("data-complex", complex)
	w.attr("data-molecule", molecule)
	w.attr("data-index", strconv.Itoa(index))
}

func (w *writer) font(f *model.Font) {
	if f == nil {
		return
	}
	for _, a := range [][2]string{
		{"font-family", f.Family},
		{"font-size", f.Size},
		{"font-weight", f.Weight},
		{"font-style", f.Style},
	} {
		if a[1] != "" {
			w.attr(a[0], a[1])
		}
	}
}

func (w *writer) stroke(s *model.Stroke) {
	if s == nil {
		return
	}
	if s.Color != "" {
		w.attr("stroke", s.Color)
	}
	if s.Width != nil {
		w.attr("stroke-width", num(*s.Width))
	}
}

func (w *writer) open(tag, semanticType string) {
	fmt.Fprintf(&w.buf, `<%s %s="%s"`, tag, dialect.Marker, semanticType)
}

func (w *writer) attr(name, value string) {
	w.buf.WriteString(" " + name + `="`)
	xml.EscapeText(&w.buf, []byte(value))
	w.buf.WriteString(`"`)
}

func (w *writer) text(s string) {
	xml.EscapeText(&w.buf, []byte(s))
}

func (w *writer) translate(x, y float64) string {
	return "translate(" + num(x) + ", " + num(w.y(y)) + ")"
}

func (w *writer) points(pts []model.Point, origin model.Point) string {
	var b bytes.Buffer
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(num(origin.X + p.X))
		b.WriteByte(',')
		b.WriteString(num(w.y(origin.Y + p.Y)))
	}
	return b.String()
}

func (w *writer) y(v float64) float64 {
	if w.invertY {
		return -v
	}
	return v
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func bounds(doc *model.Document) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range doc.Complexes {
		c.Each(func(_ model.NucleotideKey, n *model.Nucleotide) {
			minX, maxX = math.Min(minX, n.X), math.Max(maxX, n.X)
			minY, maxY = math.Min(minY, n.Y), math.Max(maxY, n.Y)
		})
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}
