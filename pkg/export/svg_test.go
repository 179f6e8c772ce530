package export

import (
	"strings"
	"testing"

	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/importer"
	"github.com/matzehuels/rnaimport/pkg/model"
)

func sampleDocument(t *testing.T) *model.Document {
	t.Helper()
	doc := model.NewDocument("demo & co")
	c := doc.EnsureComplex("C")
	a, _ := c.AddMolecule("A", 1)
	b, _ := c.AddMolecule("B", 10)
	width := 1.5
	for i, s := range []model.Symbol{model.SymbolFivePrime, model.SymbolG, model.SymbolG, model.SymbolA} {
		a.Set(i, &model.Nucleotide{Symbol: s, X: float64(i) * 10.25, Y: 3})
	}
	for i, s := range []model.Symbol{model.SymbolU, model.SymbolC, model.SymbolC, model.SymbolThreePrime} {
		b.Set(i, &model.Nucleotide{Symbol: s, X: float64(i) * 10.25, Y: -20.5, Color: "#112233"})
	}
	n, _ := a.Nucleotide(1)
	n.Font = &model.Font{Family: "Arial", Size: "9", Weight: "bold"}
	n.Stroke = &model.Stroke{Color: "black", Width: &width}
	n.LabelLine = &model.LabelLine{Points: []model.Point{{X: 0, Y: 2}, {X: -4.5, Y: 8}}, Stroke: &model.Stroke{Color: "#999999"}}
	n.Label = &model.LabelContent{Text: "<2>", X: -7, Y: 12.25, Font: &model.Font{Size: "6"}}

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(c.InsertBasePair(model.NucleotideKey{Molecule: "A", Index: 1}, model.NucleotideKey{Molecule: "B", Index: 2}, model.DoNothing,
		model.PairAttributes{Type: model.Canonical, Color: "#ff0000", StrokeWidth: &width}))
	must(c.InsertBasePair(model.NucleotideKey{Molecule: "B", Index: 1}, model.NucleotideKey{Molecule: "A", Index: 2}, model.DoNothing,
		model.PairAttributes{Type: "tSW", Points: []model.Point{{X: 10.25, Y: -20.5}, {X: 15, Y: -10}, {X: 20.5, Y: 3}}}))
	return doc
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"default", nil},
		{"inverted", []Option{WithInvertY()}},
		{"relative label lines", []Option{WithRelativeLabelLines()}},
		{"both", []Option{WithInvertY(), WithRelativeLabelLines()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument(t)
			svg := string(RenderSVG(doc, tt.opts...))
			if dialect.Sniff(svg) != dialect.Annotated {
				t.Fatal("output is not detected as annotated")
			}
			back, err := importer.Import(svg, importer.Options{})
			if err != nil {
				t.Fatalf("re-import: %v\n%s", err, svg)
			}
			if d := model.Diff(doc, back, 1e-9); len(d) != 0 {
				t.Errorf("round trip differs:\n%s\n%s", strings.Join(d, "\n"), svg)
			}
		})
	}
}

func TestRoundTripFromImport(t *testing.T) {
	src := `<svg>
<g data-rna-type="scene" data-label-lines-relative="true">
  <g data-rna-type="complex" data-name="hairpin">
    <g data-rna-type="molecule" data-name="M" data-first-index="0">
      <text data-rna-type="nucleotide" data-index="0" transform="translate(0,0) rotate(30)" x="2" y="1">G</text>
      <text data-rna-type="nucleotide" data-index="1" transform="translate(10,0)">C</text>
    </g>
    <line data-rna-type="base-pair" data-molecule-1="M" data-index-1="1" data-molecule-2="M" data-index-2="0" data-pair-type="cHS"/>
    <polyline data-rna-type="label-line" data-complex="hairpin" data-molecule="M" data-index="0" points="0,0 -3,-3"/>
  </g>
</g>
</svg>`
	first, err := importer.Import(src, importer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := importer.Import(string(RenderSVG(first)), importer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if d := model.Diff(first, second, 1e-9); len(d) != 0 {
		t.Errorf("round trip differs: %v", d)
	}
}

func TestRenderSVGEscapes(t *testing.T) {
	svg := string(RenderSVG(sampleDocument(t)))
	for _, want := range []string{`data-name="demo &amp; co"`, `&lt;2&gt;`, `data-pair-type="tSW"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(model.NewDocument("")))
	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-20 -20 40 40">`) {
		t.Errorf("unexpected header: %s", svg)
	}
}
