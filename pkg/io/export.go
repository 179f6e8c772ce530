package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rnaimport/pkg/model"
)

// WriteJSON encodes doc as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(doc *model.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromModel(doc)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
func ExportJSON(doc *model.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}

func fromModel(doc *model.Document) document {
	out := document{Name: doc.Name, Complexes: make([]complex, 0, len(doc.Complexes))}
	for _, c := range doc.Complexes {
		cx := complex{Name: c.Name, Molecules: make([]molecule, 0)}
		for _, m := range c.Molecules() {
			mol := molecule{Name: m.Name, FirstIndex: m.FirstIndex, Nucleotides: make([]nucleotide, 0, m.Len())}
			for _, idx := range m.Indices() {
				n, _ := m.Nucleotide(idx)
				mol.Nucleotides = append(mol.Nucleotides, fromNucleotide(m.Formatted(idx), n))
			}
			cx.Molecules = append(cx.Molecules, mol)
		}
		for _, bp := range c.BasePairs() {
			cx.BasePairs = append(cx.BasePairs, basePair{
				A:           formattedEndpoint(c, bp.A),
				B:           formattedEndpoint(c, bp.B),
				Type:        bp.Type,
				Color:       bp.Color,
				StrokeWidth: bp.StrokeWidth,
				Points:      toPoints(bp.Points),
			})
		}
		out.Complexes = append(out.Complexes, cx)
	}
	return out
}

func fromNucleotide(index int, n *model.Nucleotide) nucleotide {
	out := nucleotide{
		Index:  index,
		Symbol: n.Symbol,
		X:      n.X,
		Y:      n.Y,
		Font:   toFont(n.Font),
		Color:  n.Color,
		Stroke: toStroke(n.Stroke),
	}
	if l := n.Label; l != nil {
		out.Label = &labelContent{Text: l.Text, X: l.X, Y: l.Y, Font: toFont(l.Font), Color: l.Color}
	}
	if l := n.LabelLine; l != nil {
		out.LabelLine = &labelLine{Points: toPoints(l.Points), Stroke: toStroke(l.Stroke)}
	}
	return out
}

func formattedEndpoint(c *model.Complex, k model.NucleotideKey) endpoint {
	m, _ := c.Molecule(k.Molecule)
	return endpoint{Molecule: k.Molecule, Index: m.Formatted(k.Index)}
}
