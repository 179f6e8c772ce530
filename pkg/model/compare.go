package model

import (
	"fmt"
	"math"
	"slices"
)

// Diff reports the differences between two documents, comparing
// coordinates within eps. An empty result means the documents are equal.
// Complexes and molecules are matched by name.
func Diff(a, b *Document, eps float64) []string {
	var out []string
	add := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }

	if a.Name != b.Name {
		add("document name %q != %q", a.Name, b.Name)
	}
	if len(a.Complexes) != len(b.Complexes) {
		add("complex count %d != %d", len(a.Complexes), len(b.Complexes))
	}
	for _, ca := range a.Complexes {
		cb, ok := b.Complex(ca.Name)
		if !ok {
			add("complex %q missing", ca.Name)
			continue
		}
		if !slices.Equal(ca.MoleculeNames(), cb.MoleculeNames()) {
			add("complex %q molecules %v != %v", ca.Name, ca.MoleculeNames(), cb.MoleculeNames())
		}
		for _, ma := range ca.Molecules() {
			mb, ok := cb.Molecule(ma.Name)
			if !ok {
				continue
			}
			if ma.FirstIndex != mb.FirstIndex {
				add("molecule %q first index %d != %d", ma.Name, ma.FirstIndex, mb.FirstIndex)
			}
			if !slices.Equal(ma.Indices(), mb.Indices()) {
				add("molecule %q indices differ", ma.Name)
				continue
			}
			for _, idx := range ma.Indices() {
				na, _ := ma.Nucleotide(idx)
				nb, _ := mb.Nucleotide(idx)
				for _, d := range diffNucleotide(na, nb, eps) {
					add("%s: %s", NucleotideKey{Molecule: ma.Name, Index: idx}, d)
				}
			}
		}
		pa, pb := ca.BasePairs(), cb.BasePairs()
		if len(pa) != len(pb) {
			add("complex %q pair count %d != %d", ca.Name, len(pa), len(pb))
			continue
		}
		for i := range pa {
			if d := diffPair(pa[i], pb[i], eps); d != "" {
				add("complex %q pair %s-%s: %s", ca.Name, pa[i].A, pa[i].B, d)
			}
		}
	}
	return out
}

func diffNucleotide(a, b *Nucleotide, eps float64) []string {
	var out []string
	if a.Symbol != b.Symbol {
		out = append(out, fmt.Sprintf("symbol %s != %s", a.Symbol, b.Symbol))
	}
	if !near(a.X, b.X, eps) || !near(a.Y, b.Y, eps) {
		out = append(out, fmt.Sprintf("position (%g, %g) != (%g, %g)", a.X, a.Y, b.X, b.Y))
	}
	if a.Color != b.Color {
		out = append(out, fmt.Sprintf("color %q != %q", a.Color, b.Color))
	}
	if !equalFont(a.Font, b.Font) {
		out = append(out, "font differs")
	}
	if !equalStroke(a.Stroke, b.Stroke) {
		out = append(out, "stroke differs")
	}
	switch la, lb := a.Label, b.Label; {
	case (la == nil) != (lb == nil):
		out = append(out, "label presence differs")
	case la != nil && (la.Text != lb.Text || !near(la.X, lb.X, eps) || !near(la.Y, lb.Y, eps) ||
		la.Color != lb.Color || !equalFont(la.Font, lb.Font)):
		out = append(out, "label differs")
	}
	switch la, lb := a.LabelLine, b.LabelLine; {
	case (la == nil) != (lb == nil):
		out = append(out, "label line presence differs")
	case la != nil && (!nearPoints(la.Points, lb.Points, eps) || !equalStroke(la.Stroke, lb.Stroke)):
		out = append(out, "label line differs")
	}
	return out
}

func diffPair(a, b BasePair, eps float64) string {
	switch {
	case a.A != b.A || a.B != b.B:
		return fmt.Sprintf("endpoints %s-%s != %s-%s", a.A, a.B, b.A, b.B)
	case a.Type != b.Type:
		return fmt.Sprintf("type %s != %s", a.Type, b.Type)
	case a.Color != b.Color:
		return fmt.Sprintf("color %q != %q", a.Color, b.Color)
	case !equalFloatPtr(a.StrokeWidth, b.StrokeWidth):
		return "stroke width differs"
	case !nearPoints(a.Points, b.Points, eps):
		return "points differ"
	}
	return ""
}

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func nearPoints(a, b []Point, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !near(a[i].X, b[i].X, eps) || !near(a[i].Y, b[i].Y, eps) {
			return false
		}
	}
	return true
}

func equalFont(a, b *Font) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStroke(a, b *Stroke) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Color == b.Color && equalFloatPtr(a.Width, b.Width)
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
