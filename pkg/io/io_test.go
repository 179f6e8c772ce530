package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/model"
)

func sampleDocument(t *testing.T) *model.Document {
	t.Helper()
	doc := model.NewDocument("demo")
	c := doc.EnsureComplex("C")
	m, err := c.AddMolecule("M", 5)
	if err != nil {
		t.Fatal(err)
	}
	width := 1.5
	m.Set(0, &model.Nucleotide{
		Symbol: model.SymbolG, X: 1, Y: 2,
		Font:      &model.Font{Family: "Arial", Size: "12"},
		Color:     "#ff0000",
		Stroke:    &model.Stroke{Color: "black", Width: &width},
		Label:     &model.LabelContent{Text: "5", X: -3, Y: 4},
		LabelLine: &model.LabelLine{Points: []model.Point{{X: 0, Y: 0}, {X: -2, Y: 3}}},
	})
	m.Set(3, &model.Nucleotide{Symbol: model.SymbolC, X: 30, Y: 2})
	m.Set(4, &model.Nucleotide{Symbol: model.SymbolThreePrime, X: 40, Y: 2})
	err = c.InsertBasePair(
		model.NucleotideKey{Molecule: "M", Index: 3},
		model.NucleotideKey{Molecule: "M", Index: 0},
		model.DoNothing,
		model.PairAttributes{Type: "cWH", Color: "#00ff00", StrokeWidth: &width, Points: []model.Point{{X: 30, Y: 2}, {X: 1, Y: 2}}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDocument(t)
	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"index": 5`) {
		t.Errorf("JSON should use formatted indices:\n%s", buf.String())
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if d := model.Diff(doc, back, 0); len(d) != 0 {
		t.Errorf("round trip differs: %v", d)
	}
	if err := back.CheckSymmetry(); err != nil {
		t.Error(err)
	}
}

func TestExportImportFile(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := ExportJSON(doc, path); err != nil {
		t.Fatal(err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.BasePairCount() != 1 || back.NucleotideCount() != 3 {
		t.Errorf("counts = %d pairs, %d nucleotides", back.BasePairCount(), back.NucleotideCount())
	}
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"complexes": [`, errors.ErrCodeInvalidInput},
		{"bad symbol", `{"complexes":[{"name":"C","molecules":[{"name":"M","first_index":1,"nucleotides":[{"index":1,"symbol":"T"}]}]}]}`, errors.ErrCodeUnrecognizedSymbol},
		{"bad pair type", `{"complexes":[{"name":"C","molecules":[{"name":"M","first_index":1,"nucleotides":[{"index":1,"symbol":"G"},{"index":2,"symbol":"C"}]}],
			"base_pairs":[{"a":{"molecule":"M","index":1},"b":{"molecule":"M","index":2},"type":"x"}]}]}`, errors.ErrCodeUnrecognizedBasePairType},
		{"dangling", `{"complexes":[{"name":"C","molecules":[{"name":"M","first_index":1,"nucleotides":[{"index":1,"symbol":"G"}]}],
			"base_pairs":[{"a":{"molecule":"M","index":1},"b":{"molecule":"M","index":9},"type":"canonical"}]}]}`, errors.ErrCodeDanglingReference},
		{"unknown molecule", `{"complexes":[{"name":"C","molecules":[],
			"base_pairs":[{"a":{"molecule":"X","index":1},"b":{"molecule":"M","index":9},"type":"canonical"}]}]}`, errors.ErrCodeDanglingReference},
		{"empty complex name", `{"complexes":[{"name":"","molecules":[]}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}
