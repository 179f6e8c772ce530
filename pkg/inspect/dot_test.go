package inspect

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/rnaimport/pkg/model"
)

func hairpin(t *testing.T) *model.Document {
	t.Helper()
	doc := model.NewDocument("demo")
	c := doc.EnsureComplex("C")
	m, _ := c.AddMolecule("M", 1)
	for i, s := range "GGAACC" {
		m.Set(i, &model.Nucleotide{Symbol: model.Symbol(string(s)), X: float64(i) * 36, Y: 36})
	}
	pairs := []struct {
		a, b int
		typ  model.BasePairType
	}{
		{0, 5, model.Canonical},
		{1, 4, model.Wobble},
		{2, 3, "tHS"},
	}
	for _, p := range pairs {
		err := c.InsertBasePair(model.NucleotideKey{Molecule: "M", Index: p.a}, model.NucleotideKey{Molecule: "M", Index: p.b},
			model.DoNothing, model.PairAttributes{Type: p.typ, Color: "#ff0000"})
		if err != nil {
			t.Fatal(err)
		}
	}
	return doc
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(hairpin(t), Options{})

	for _, want := range []string{
		"graph G {",
		`label="demo"`,
		"subgraph cluster_0",
		`"C/M:1" [label="G"]`,
		`"C/M:1" -- "C/M:6" [style=solid, color="#ff0000"]`,
		`"C/M:2" -- "C/M:5" [style=bold`,
		`"C/M:3" -- "C/M:4" [style=dashed, label="tHS"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "grey") {
		t.Error("backbone edges should be off by default")
	}
	if strings.Contains(dot, "pos=") {
		t.Error("positions should be off by default")
	}
}

func TestToDOTBackboneAndPositions(t *testing.T) {
	dot := ToDOT(hairpin(t), Options{Backbone: true, Positions: true})
	if n := strings.Count(dot, "color=grey"); n != 5 {
		t.Errorf("backbone edges = %d, want 5", n)
	}
	if !strings.Contains(dot, `pos="1.000,-1.000!"`) {
		t.Errorf("missing pinned position for second nucleotide\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(hairpin(t), Options{Backbone: true}), Options{})
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("unexpected SVG header: %.200s", svg)
	}
}
