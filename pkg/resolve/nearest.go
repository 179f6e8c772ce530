// Package resolve links the position-only marks of geometric dialects to
// nucleotides.
//
// [Nearest] is a simple snapping policy: every mark end is matched to the
// closest drawn nucleotide within a tolerance. It is good enough for files
// exported with conventional spacing; callers with better knowledge of a
// particular exporter can supply their own [importer.Resolver].
package resolve

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnaimport/pkg/importer"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// DefaultTolerance is the snapping distance used when Tolerance is unset.
const DefaultTolerance = 12.0

// Nearest resolves marks by proximity.
//
//   - A pair line whose two ends snap to distinct nucleotides becomes a pair
//     of the line's type. A line with one snapped end becomes that
//     nucleotide's label line.
//   - A circle retypes the existing pair whose midpoint is nearest its
//     centre. Failing that it pairs the two nucleotides nearest the centre,
//     both within twice the tolerance.
//   - A label fragment attaches to the nucleotide whose label line ends at
//     the fragment, else to the nearest nucleotide without a label.
type Nearest struct {
	Tolerance float64
	Logger    *log.Logger
}

// Resolve implements [importer.Resolver].
func (r Nearest) Resolve(in *importer.ResolverInput) (*model.Document, error) {
	tol := r.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	for i := range in.Complexes {
		s := newSnapper(&in.Complexes[i], tol, in.Policy, logger)
		if err := s.run(); err != nil {
			return nil, err
		}
	}
	return in.Document, nil
}

type placed struct {
	key model.NucleotideKey
	nt  *model.Nucleotide
	pos model.Point // drawn position including offsets
}

type snapper struct {
	marks  *importer.ComplexMarks
	tol    float64
	policy model.DuplicatePolicy
	log    *log.Logger
	nts    []placed
}

func newSnapper(marks *importer.ComplexMarks, tol float64, policy model.DuplicatePolicy, logger *log.Logger) *snapper {
	s := &snapper{marks: marks, tol: tol, policy: policy, log: logger}
	marks.Complex.Each(func(k model.NucleotideKey, n *model.Nucleotide) {
		pos := n.Position()
		if off, ok := marks.Offsets[k]; ok {
			pos.X += off.X
			pos.Y += off.Y
		}
		s.nts = append(s.nts, placed{key: k, nt: n, pos: pos})
	})
	return s
}

func (s *snapper) run() error {
	for _, m := range s.marks.PairMarks {
		if m.Kind != importer.LineMark {
			continue
		}
		if err := s.pairLine(m); err != nil {
			return err
		}
	}
	for _, m := range s.marks.PairMarks {
		if m.Kind != importer.CircleMark {
			continue
		}
		if err := s.circle(m); err != nil {
			return err
		}
	}
	for _, m := range s.marks.LabelLines {
		s.labelLine(m)
	}
	for _, m := range s.marks.Labels {
		s.label(m)
	}
	return nil
}

func (s *snapper) pairLine(m importer.PairMark) error {
	if len(m.Points) < 2 {
		return nil
	}
	a, okA := s.nearest(m.Points[0], s.tol, nil)
	b, okB := s.nearest(m.Points[len(m.Points)-1], s.tol, nil)
	switch {
	case okA && okB && a.key != b.key:
		return s.marks.Complex.InsertBasePair(a.key, b.key, s.policy, model.PairAttributes{
			Type:        m.Type,
			Color:       m.Color,
			StrokeWidth: m.StrokeWidth,
		})
	case okA && !okB:
		s.attachLine(a, m.Points, &model.Stroke{Color: m.Color, Width: m.StrokeWidth})
	case okB && !okA:
		s.attachLine(b, reverse(m.Points), &model.Stroke{Color: m.Color, Width: m.StrokeWidth})
	default:
		s.log.Debug("unmatched pair line", "from", m.Points[0], "to", m.Points[len(m.Points)-1])
	}
	return nil
}

func (s *snapper) circle(m importer.PairMark) error {
	x := s.marks.Complex
	best, bestDist := model.BasePair{}, math.Inf(1)
	for _, bp := range x.BasePairs() {
		na, _ := x.Nucleotide(bp.A)
		nb, _ := x.Nucleotide(bp.B)
		mid := model.Point{X: (na.X + nb.X) / 2, Y: (na.Y + nb.Y) / 2}
		if d := dist(mid, m.Center); d < bestDist {
			best, bestDist = bp, d
		}
	}
	attrs := model.PairAttributes{Type: m.Type, Color: m.Color, StrokeWidth: m.StrokeWidth}
	if bestDist <= s.tol {
		return x.InsertBasePair(best.A, best.B, model.DeletePreviousMapping, attrs)
	}

	a, okA := s.nearest(m.Center, 2*s.tol, nil)
	if !okA {
		s.log.Debug("unmatched circle", "center", m.Center)
		return nil
	}
	b, okB := s.nearest(m.Center, 2*s.tol, &a.key)
	if !okB {
		s.log.Debug("circle near a single nucleotide", "center", m.Center, "nucleotide", a.key)
		return nil
	}
	return x.InsertBasePair(a.key, b.key, s.policy, attrs)
}

// labelLine attaches a line with exactly one end on a nucleotide. Lines
// joining two nucleotides were pair lines.
func (s *snapper) labelLine(m importer.LabelLineMark) {
	if len(m.Points) < 2 {
		return
	}
	a, okA := s.nearest(m.Points[0], s.tol, nil)
	b, okB := s.nearest(m.Points[len(m.Points)-1], s.tol, nil)
	switch {
	case okA && okB:
		if a.key == b.key {
			s.attachLine(a, m.Points, m.Stroke)
		}
	case okA:
		s.attachLine(a, m.Points, m.Stroke)
	case okB:
		s.attachLine(b, reverse(m.Points), m.Stroke)
	}
}

func (s *snapper) attachLine(p placed, pts []model.Point, stroke *model.Stroke) {
	if p.nt.LabelLine != nil {
		return
	}
	if stroke != nil && stroke.Color == "" && stroke.Width == nil {
		stroke = nil
	}
	rel := make([]model.Point, len(pts))
	for i, q := range pts {
		rel[i] = model.Point{X: q.X - p.nt.X, Y: q.Y - p.nt.Y}
	}
	p.nt.LabelLine = &model.LabelLine{Points: rel, Stroke: stroke}
}

func (s *snapper) label(m importer.LabelMark) {
	target, ok := placed{}, false
	best := math.Inf(1)
	for _, p := range s.nts {
		line := p.nt.LabelLine
		if line == nil || p.nt.Label != nil {
			continue
		}
		end := line.Points[len(line.Points)-1]
		abs := model.Point{X: p.nt.X + end.X, Y: p.nt.Y + end.Y}
		if d := boxDist(m, abs); d <= s.tol && d < best {
			target, ok, best = p, true, d
		}
	}
	if !ok {
		center := model.Point{X: m.Position.X + m.Width/2, Y: m.Position.Y - m.Height/2}
		for _, p := range s.nts {
			if p.nt.Label != nil {
				continue
			}
			if d := dist(p.pos, center); d < best {
				target, ok, best = p, true, d
			}
		}
	}
	if !ok {
		s.log.Debug("unmatched label", "text", m.Text)
		return
	}
	target.nt.Label = &model.LabelContent{
		Text:  m.Text,
		X:     m.Position.X - target.nt.X,
		Y:     m.Position.Y - target.nt.Y,
		Font:  m.Font,
		Color: m.Color,
	}
}

// nearest returns the closest nucleotide within limit, skipping exclude.
func (s *snapper) nearest(pt model.Point, limit float64, exclude *model.NucleotideKey) (placed, bool) {
	var out placed
	best := math.Inf(1)
	for _, p := range s.nts {
		if exclude != nil && p.key == *exclude {
			continue
		}
		if d := dist(p.pos, pt); d <= limit && d < best {
			out, best = p, d
		}
	}
	return out, !math.IsInf(best, 1)
}

func dist(a, b model.Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// boxDist is the distance from pt to the label's box; the text anchor is the
// box's bottom-left corner.
func boxDist(m importer.LabelMark, pt model.Point) float64 {
	dx := math.Max(0, math.Max(m.Position.X-pt.X, pt.X-(m.Position.X+m.Width)))
	dy := math.Max(0, math.Max((m.Position.Y-m.Height)-pt.Y, pt.Y-m.Position.Y))
	return math.Hypot(dx, dy)
}

func reverse(pts []model.Point) []model.Point {
	out := make([]model.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
