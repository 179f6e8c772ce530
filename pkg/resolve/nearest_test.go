package resolve

import (
	"testing"

	"github.com/matzehuels/rnaimport/pkg/importer"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// square builds one molecule with nucleotides at the corners of a square:
// M[0]=(0,0) M[1]=(100,0) M[2]=(0,100) M[3]=(100,100).
func square(t *testing.T) (*model.Document, *model.Complex) {
	t.Helper()
	doc := model.NewDocument("test")
	c := doc.EnsureComplex("C")
	m, err := c.AddMolecule("M", 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range []model.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}} {
		m.Set(i, &model.Nucleotide{Symbol: model.SymbolG, X: p.X, Y: p.Y})
	}
	return doc, c
}

func key(i int) model.NucleotideKey { return model.NucleotideKey{Molecule: "M", Index: i} }

func line(x1, y1, x2, y2 float64) []model.Point {
	return []model.Point{{X: x1, Y: y1}, {X: x2, Y: y2}}
}

func resolve(t *testing.T, r Nearest, doc *model.Document, marks importer.ComplexMarks) *model.Document {
	t.Helper()
	out, err := r.Resolve(&importer.ResolverInput{Document: doc, Complexes: []importer.ComplexMarks{marks}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return out
}

func TestNearestPairLine(t *testing.T) {
	doc, c := square(t)
	width := 1.5
	resolve(t, Nearest{}, doc, importer.ComplexMarks{
		Complex: c,
		PairMarks: []importer.PairMark{
			{Kind: importer.LineMark, Type: model.Canonical, Points: line(2, 1, 98, -1), Color: "#000000", StrokeWidth: &width},
			{Kind: importer.LineMark, Type: model.Canonical, Points: line(40, 40, 60, 60)},
		},
	})
	if c.BasePairCount() != 1 {
		t.Fatalf("pairs = %d, want 1", c.BasePairCount())
	}
	bp := c.BasePairs()[0]
	if bp.A != key(0) || bp.B != key(1) || bp.Type != model.Canonical || bp.Color != "#000000" {
		t.Errorf("pair = %+v", bp)
	}
}

func TestNearestPairLineOneEnd(t *testing.T) {
	doc, c := square(t)
	resolve(t, Nearest{}, doc, importer.ComplexMarks{
		Complex:   c,
		PairMarks: []importer.PairMark{{Kind: importer.LineMark, Type: model.Canonical, Points: line(50, 50, 99, 99)}},
	})
	if c.BasePairCount() != 0 {
		t.Errorf("unexpected pair")
	}
	nt, _ := c.Nucleotide(key(3))
	if nt.LabelLine == nil || nt.LabelLine.Points[0] != (model.Point{X: -1, Y: -1}) {
		t.Errorf("label line = %+v", nt.LabelLine)
	}
}

func TestNearestCircle(t *testing.T) {
	t.Run("retypes existing pair", func(t *testing.T) {
		doc, c := square(t)
		resolve(t, Nearest{Tolerance: 20}, doc, importer.ComplexMarks{
			Complex: c,
			PairMarks: []importer.PairMark{
				{Kind: importer.CircleMark, Type: model.Wobble, Center: model.Point{X: 52, Y: 3}},
				{Kind: importer.LineMark, Type: model.Canonical, Points: line(0, 0, 100, 0)},
			},
		})
		if c.BasePairCount() != 1 || c.BasePairs()[0].Type != model.Wobble {
			t.Errorf("pairs = %+v", c.BasePairs())
		}
	})

	t.Run("pairs nearest nucleotides", func(t *testing.T) {
		doc, c := square(t)
		resolve(t, Nearest{Tolerance: 30}, doc, importer.ComplexMarks{
			Complex:   c,
			PairMarks: []importer.PairMark{{Kind: importer.CircleMark, Type: model.Mismatch, Center: model.Point{X: 0, Y: 50}}},
		})
		if !c.HasBasePair(key(0), key(2)) {
			t.Fatalf("pairs = %+v", c.BasePairs())
		}
		if c.BasePairs()[0].Type != model.Mismatch {
			t.Errorf("type = %s", c.BasePairs()[0].Type)
		}
	})

	t.Run("too far", func(t *testing.T) {
		doc, c := square(t)
		resolve(t, Nearest{}, doc, importer.ComplexMarks{
			Complex:   c,
			PairMarks: []importer.PairMark{{Kind: importer.CircleMark, Type: model.Mismatch, Center: model.Point{X: 50, Y: 50}}},
		})
		if c.BasePairCount() != 0 {
			t.Errorf("unexpected pairs %+v", c.BasePairs())
		}
	})
}

func TestNearestLabels(t *testing.T) {
	doc, c := square(t)
	resolve(t, Nearest{}, doc, importer.ComplexMarks{
		Complex:    c,
		LabelLines: []importer.LabelLineMark{{Points: line(-20, 120, 0, 100)}},
		Labels: []importer.LabelMark{
			{Text: "3", Position: model.Point{X: -30, Y: 128}, Width: 10, Height: 8},
			{Text: "x", Position: model.Point{X: 104, Y: 98}, Width: 4, Height: 4},
		},
	})

	withLine, _ := c.Nucleotide(key(2))
	if withLine.LabelLine == nil {
		t.Fatal("label line not attached")
	}
	if got := withLine.LabelLine.Points; got[0] != (model.Point{}) || got[1] != (model.Point{X: -20, Y: 20}) {
		t.Errorf("label line points = %v", got)
	}
	if withLine.Label == nil || withLine.Label.Text != "3" || withLine.Label.X != -30 || withLine.Label.Y != 28 {
		t.Errorf("label = %+v", withLine.Label)
	}

	near, _ := c.Nucleotide(key(3))
	if near.Label == nil || near.Label.Text != "x" {
		t.Errorf("fallback label = %+v", near.Label)
	}
}

func TestNearestOffsets(t *testing.T) {
	doc, c := square(t)
	resolve(t, Nearest{Tolerance: 5}, doc, importer.ComplexMarks{
		Complex:   c,
		PairMarks: []importer.PairMark{{Kind: importer.LineMark, Type: model.Canonical, Points: line(10, 0, 100, 0)}},
		Offsets:   map[model.NucleotideKey]model.Point{key(0): {X: 10}},
	})
	if !c.HasBasePair(key(0), key(1)) {
		t.Error("offset position should snap")
	}
}

func TestNearestThroughImporter(t *testing.T) {
	text := `<svg>
<text x="0" y="0">G</text>
<text x="0" y="20">G</text>
<text x="40" y="20">C</text>
<text x="40" y="0">C</text>
<line x1="2" y1="0" x2="38" y2="0"/>
<circle cx="20" cy="20" r="3" fill="black"/>
</svg>`
	doc, err := importer.Import(text, importer.Options{Resolver: Nearest{}})
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Complexes[0]
	pairs := c.BasePairs()
	if len(pairs) != 2 {
		t.Fatalf("pairs = %+v", pairs)
	}
	want := map[[2]int]model.BasePairType{{0, 3}: model.Canonical, {1, 2}: model.Wobble}
	for _, bp := range pairs {
		if got := want[[2]int{bp.A.Index, bp.B.Index}]; got != bp.Type {
			t.Errorf("pair %v-%v = %s, want %q", bp.A, bp.B, bp.Type, got)
		}
	}
	if err := doc.CheckSymmetry(); err != nil {
		t.Error(err)
	}
}
