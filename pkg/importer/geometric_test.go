package importer

import (
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/rnaimport/pkg/document"
	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// recorder captures the resolver input and returns the document unchanged.
type recorder struct {
	calls int
	in    *ResolverInput
}

func (r *recorder) Resolve(in *ResolverInput) (*model.Document, error) {
	r.calls++
	r.in = in
	return in.Document, nil
}

func TestUnannotatedScenario(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">`)
	for i, s := range "GGGAAACCCU" {
		b.WriteString(`<text x="` + strconv.Itoa(i*10) + `" y="0">` + string(s) + `</text>`)
	}
	b.WriteString(`<line x1="0" y1="0" x2="90" y2="0" stroke="black"/>`)
	b.WriteString(`<circle cx="45" cy="5" r="2"/>`)
	b.WriteString(`</svg>`)

	rec := &recorder{}
	doc, err := Import(b.String(), Options{Resolver: rec})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(doc.Complexes) != 1 {
		t.Fatalf("complexes = %d", len(doc.Complexes))
	}
	c := doc.Complexes[0]
	if c.Name != DefaultComplexName {
		t.Errorf("complex name = %q", c.Name)
	}
	mols := c.Molecules()
	if len(mols) != 1 || mols[0].Len() != 10 || mols[0].FirstIndex != 1 {
		t.Fatalf("molecules = %+v", mols)
	}
	if got := mols[0].Sequence(); got != "GGGAAACCCU" {
		t.Errorf("sequence = %s", got)
	}

	if rec.calls != 1 {
		t.Fatalf("resolver called %d times, want 1", rec.calls)
	}
	if len(rec.in.Complexes) != 1 || rec.in.Complexes[0].Complex != c {
		t.Fatal("resolver did not receive the complex")
	}
	marks := rec.in.Complexes[0]
	var lines, mismatches int
	for _, m := range marks.PairMarks {
		switch {
		case m.Kind == LineMark && m.Type == model.Canonical:
			lines++
		case m.Kind == CircleMark && m.Type == model.Mismatch:
			mismatches++
		default:
			t.Errorf("unexpected mark %+v", m)
		}
	}
	if lines != 1 || mismatches != 1 {
		t.Errorf("pair marks: %d lines, %d mismatches", lines, mismatches)
	}
	if len(marks.LabelLines) != 1 {
		t.Errorf("label line marks = %d, want 1", len(marks.LabelLines))
	}
	if len(marks.Labels) != 0 {
		t.Errorf("labels = %+v", marks.Labels)
	}
	if doc.BasePairCount() != 0 {
		t.Errorf("recording resolver should not add pairs")
	}
}

func TestUnannotatedClassification(t *testing.T) {
	text := `<svg>
<style>.filled { fill: #00F }</style>
<title>  hairpin </title>
<text x="0" y="0">5′</text>
<text x="10" y="0" dx="1" dy="-2">G</text>
<text id="seq_M:7" x="20" y="0">C</text>
<text x="30" y="0">U</text>
<text x="5" y="10">10</text>
<text x="5" y="20">  </text>
<text x="40" y="0">3'</text>
<circle class="filled" cx="0" cy="0" r="1"/>
<rect x="0" y="0" width="1" height="1"/>
</svg>`
	rec := &recorder{}
	doc, err := Import(text, Options{Resolver: rec, Measurer: document.EstimateMeasurer{}})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if doc.Name != "hairpin" {
		t.Errorf("document name = %q", doc.Name)
	}
	c, ok := doc.Complex("hairpin")
	if !ok {
		t.Fatal("complex named after title missing")
	}
	if got := strings.Join(c.MoleculeNames(), ","); got != "molecule,M" {
		t.Fatalf("molecules = %s", got)
	}

	def, _ := c.Molecule(DefaultMoleculeName)
	if def.Sequence() != "5′G" || def.FirstIndex != 1 {
		t.Errorf("default molecule = %s from %d", def.Sequence(), def.FirstIndex)
	}
	m, _ := c.Molecule("M")
	// explicit index 7 resets the counter: U is 8 and 3' is 9
	if m.Sequence() != "CU3′" || m.FirstIndex != 7 {
		t.Errorf("molecule M = %s from %d", m.Sequence(), m.FirstIndex)
	}
	if _, ok := m.Nucleotide(m.Relative(9)); !ok {
		t.Error("3' end should be at formatted index 9")
	}

	marks := rec.in.Complexes[0]
	if len(marks.Labels) != 1 || marks.Labels[0].Text != "10" {
		t.Fatalf("labels = %+v", marks.Labels)
	}
	if marks.Labels[0].Width <= 0 || marks.Labels[0].Height <= 0 {
		t.Errorf("label extents = %v x %v", marks.Labels[0].Width, marks.Labels[0].Height)
	}
	off, ok := marks.Offsets[model.NucleotideKey{Molecule: DefaultMoleculeName, Index: 1}]
	if !ok || off != (model.Point{X: 1, Y: -2}) {
		t.Errorf("offsets = %v", marks.Offsets)
	}
	if len(marks.PairMarks) != 1 || marks.PairMarks[0].Type != model.Wobble || marks.PairMarks[0].Color != "#0000ff" {
		t.Errorf("circle mark = %+v", marks.PairMarks)
	}
}

func TestUnannotatedBareEndMarkersAreNucleotides(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<svg>`)
	for i, s := range strings.Fields("5 G G A A C C U U 3") {
		b.WriteString(`<text x="` + strconv.Itoa(i*10) + `" y="0">` + s + `</text>`)
	}
	b.WriteString(`</svg>`)

	rec := &recorder{}
	doc, err := Import(b.String(), Options{Resolver: rec})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n := doc.NucleotideCount(); n != 10 {
		t.Errorf("nucleotides = %d, want 10", n)
	}
	if n := len(rec.in.Complexes[0].Labels); n != 0 {
		t.Errorf("labels = %d, want 0", n)
	}
	m, _ := doc.Complexes[0].Molecule(DefaultMoleculeName)
	if got := m.Sequence(); got != "5GGAACCUU3" {
		t.Errorf("sequence = %s", got)
	}
}

func TestUnannotatedLabelNeedsMeasurement(t *testing.T) {
	_, err := Import(`<svg><text>A</text><text>loop</text></svg>`, Options{})
	if !errors.Is(err, errors.ErrCodeMissingAttribute) {
		t.Fatalf("error = %v, want MISSING_ATTRIBUTE", err)
	}
	if msg := errors.UserMessage(err); msg != `Required attribute "data-measured-width" is missing.` {
		t.Errorf("message = %q", msg)
	}
}

func TestLegacyGrouped(t *testing.T) {
	text := `<svg>
<title>tRNA</title>
<g id="Letters">
  <text id="5" x="50" y="0">G</text>
  <text id="seq_A:3" x="30" y="0">C</text>
  <text id="4" x="40" y="0">U</text>
  <text id="seq_A:2" x="20" y="0">A</text>
  <text x="0" y="0">G</text>
</g>
<g id="Nucleotide_Lines">
  <line x1="20" y1="0" x2="40" y2="0"/>
  <text x="0" y="0">ignored</text>
</g>
<g id="Nucleotide_Circles">
  <circle transform="scale(2)" cx="1" cy="1" r="2" fill="red"/>
  <circle cx="0" cy="0" r="1" fill="none" stroke="#123456"/>
</g>
<g id="Labels_Lines">
  <line x1="0" y1="0" x2="5" y2="5"/>
  <circle cx="0" cy="0" r="1"/>
</g>
<g id="Labels_Text">
  <text x="1" y="2" data-measured-width="10" data-measured-height="8">10</text>
</g>
</svg>`
	rec := &recorder{}
	doc, err := Import(text, Options{Resolver: rec})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	c, ok := doc.Complex("tRNA")
	if !ok {
		t.Fatal("complex tRNA missing")
	}
	if got := strings.Join(c.MoleculeNames(), ","); got != "molecule,A" {
		t.Fatalf("molecules = %s", got)
	}
	def, _ := c.Molecule(DefaultMoleculeName)
	if def.Len() != 1 || def.FirstIndex != 5 {
		t.Errorf("default molecule = %d nucleotides from %d", def.Len(), def.FirstIndex)
	}
	a, _ := c.Molecule("A")
	if a.FirstIndex != 2 || a.Sequence() != "ACU" {
		t.Errorf("molecule A = %s from %d", a.Sequence(), a.FirstIndex)
	}
	nt, _ := a.Nucleotide(a.Relative(3))
	if nt == nil || nt.Symbol != model.SymbolC || !approx(nt.X, 30) {
		t.Errorf("A[3] = %+v", nt)
	}

	marks := rec.in.Complexes[0]
	if len(marks.PairMarks) != 3 {
		t.Fatalf("pair marks = %+v", marks.PairMarks)
	}
	line, wobble, mismatch := marks.PairMarks[0], marks.PairMarks[1], marks.PairMarks[2]
	if line.Kind != LineMark || line.Points[1] != (model.Point{X: 40}) {
		t.Errorf("line mark = %+v", line)
	}
	if wobble.Type != model.Wobble || wobble.Center != (model.Point{X: 2, Y: 2}) || !approx(wobble.Radius, 4) {
		t.Errorf("wobble mark = %+v", wobble)
	}
	if mismatch.Type != model.Mismatch || mismatch.Color != "#123456" {
		t.Errorf("mismatch mark = %+v", mismatch)
	}
	if len(marks.LabelLines) != 1 {
		t.Errorf("label lines = %d", len(marks.LabelLines))
	}
	if len(marks.Labels) != 1 || marks.Labels[0].Width != 10 || marks.Labels[0].Position != (model.Point{X: 1, Y: 2}) {
		t.Errorf("labels = %+v", marks.Labels)
	}
}

func TestLegacyGroupedBadSymbol(t *testing.T) {
	_, err := Import(`<svg><g id="Letters"><text id="1">X</text></g></svg>`, Options{})
	if !errors.Is(err, errors.ErrCodeUnrecognizedSymbol) {
		t.Errorf("error = %v, want UNRECOGNIZED_SYMBOL", err)
	}
}

func TestGeometricResolverError(t *testing.T) {
	boom := errors.New(errors.ErrCodeInternal, "boom")
	_, err := Import(`<svg><text>A</text></svg>`, Options{
		Resolver: ResolverFunc(func(*ResolverInput) (*model.Document, error) { return nil, boom }),
	})
	if err != boom {
		t.Errorf("error = %v, want resolver error", err)
	}
	_, err = Import(`<svg><text>A</text></svg>`, Options{
		Resolver: ResolverFunc(func(*ResolverInput) (*model.Document, error) { return nil, nil }),
	})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want INTERNAL_ERROR", err)
	}
}

func TestAnnotatedNeverCallsResolver(t *testing.T) {
	rec := &recorder{}
	if _, err := Import(annotatedDoc("", "", ""), Options{Resolver: rec}); err != nil {
		t.Fatal(err)
	}
	if rec.calls != 0 {
		t.Errorf("resolver called %d times for annotated input", rec.calls)
	}
}
