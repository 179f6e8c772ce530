package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// ReadJSON decodes a JSON document from r.
//
// ReadJSON returns an error if the JSON is malformed, a symbol or pair type
// is outside its vocabulary, a molecule is declared twice with different
// first indices, or a base pair references a missing nucleotide. Pairs are
// inserted through [model.Complex.InsertBasePair]; a repeated pair keeps the
// first record.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*model.Document, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}

	doc := model.NewDocument(data.Name)
	for _, cx := range data.Complexes {
		if err := errors.ValidateName("complex", cx.Name); err != nil {
			return nil, err
		}
		c := doc.EnsureComplex(cx.Name)
		for _, mol := range cx.Molecules {
			m, err := c.AddMolecule(mol.Name, mol.FirstIndex)
			if err != nil {
				return nil, err
			}
			for _, n := range mol.Nucleotides {
				nt, err := toNucleotide(n)
				if err != nil {
					return nil, fmt.Errorf("nucleotide %s[%d]: %w", mol.Name, n.Index, err)
				}
				m.Set(m.Relative(n.Index), nt)
			}
		}
		for _, bp := range cx.BasePairs {
			a, err := relativeKey(c, bp.A)
			if err != nil {
				return nil, err
			}
			b, err := relativeKey(c, bp.B)
			if err != nil {
				return nil, err
			}
			attrs := model.PairAttributes{
				Type:        bp.Type,
				Color:       bp.Color,
				StrokeWidth: bp.StrokeWidth,
				Points:      fromPoints(bp.Points),
			}
			if err := c.InsertBasePair(a, b, model.DoNothing, attrs); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// ImportJSON reads a JSON file at path and returns the decoded document.
func ImportJSON(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func toNucleotide(n nucleotide) (*model.Nucleotide, error) {
	sym, err := model.ParseSymbol(string(n.Symbol))
	if err != nil {
		return nil, err
	}
	out := &model.Nucleotide{
		Symbol: sym,
		X:      n.X,
		Y:      n.Y,
		Font:   fromFont(n.Font),
		Color:  n.Color,
		Stroke: fromStroke(n.Stroke),
	}
	if l := n.Label; l != nil {
		out.Label = &model.LabelContent{Text: l.Text, X: l.X, Y: l.Y, Font: fromFont(l.Font), Color: l.Color}
	}
	if l := n.LabelLine; l != nil {
		out.LabelLine = &model.LabelLine{Points: fromPoints(l.Points), Stroke: fromStroke(l.Stroke)}
		if err := out.LabelLine.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func relativeKey(c *model.Complex, e endpoint) (model.NucleotideKey, error) {
	m, ok := c.Molecule(e.Molecule)
	if !ok {
		return model.NucleotideKey{}, errors.DanglingReference("Molecule %q does not exist in complex %q.", e.Molecule, c.Name)
	}
	return model.NucleotideKey{Molecule: e.Molecule, Index: m.Relative(e.Index)}, nil
}
