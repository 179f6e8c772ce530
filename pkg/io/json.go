package io

import "github.com/matzehuels/rnaimport/pkg/model"

type document struct {
	Name      string    `json:"name,omitempty"`
	Complexes []complex `json:"complexes"`
}

type complex struct {
	Name      string     `json:"name"`
	Molecules []molecule `json:"molecules"`
	BasePairs []basePair `json:"base_pairs,omitempty"`
}

type molecule struct {
	Name        string       `json:"name"`
	FirstIndex  int          `json:"first_index"`
	Nucleotides []nucleotide `json:"nucleotides"`
}

type nucleotide struct {
	Index     int           `json:"index"`
	Symbol    model.Symbol  `json:"symbol"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Font      *font         `json:"font,omitempty"`
	Color     string        `json:"color,omitempty"`
	Stroke    *stroke       `json:"stroke,omitempty"`
	Label     *labelContent `json:"label,omitempty"`
	LabelLine *labelLine    `json:"label_line,omitempty"`
}

type stroke struct {
	Color string   `json:"color,omitempty"`
	Width *float64 `json:"width,omitempty"`
}

type labelContent struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Font  *font   `json:"font,omitempty"`
	Color string  `json:"color,omitempty"`
}

type font struct {
	Family string `json:"family,omitempty"`
	Size   string `json:"size,omitempty"`
	Weight string `json:"weight,omitempty"`
	Style  string `json:"style,omitempty"`
}

type labelLine struct {
	Points []point `json:"points"`
	Stroke *stroke `json:"stroke,omitempty"`
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type endpoint struct {
	Molecule string `json:"molecule"`
	Index    int    `json:"index"`
}

type basePair struct {
	A           endpoint           `json:"a"`
	B           endpoint           `json:"b"`
	Type        model.BasePairType `json:"type"`
	Color       string             `json:"color,omitempty"`
	StrokeWidth *float64           `json:"stroke_width,omitempty"`
	Points      []point            `json:"points,omitempty"`
}

func toPoints(pts []model.Point) []point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = point(p)
	}
	return out
}

func fromPoints(pts []point) []model.Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]model.Point, len(pts))
	for i, p := range pts {
		out[i] = model.Point(p)
	}
	return out
}

func toStroke(s *model.Stroke) *stroke {
	if s == nil {
		return nil
	}
	return &stroke{Color: s.Color, Width: s.Width}
}

func fromStroke(s *stroke) *model.Stroke {
	if s == nil {
		return nil
	}
	return &model.Stroke{Color: s.Color, Width: s.Width}
}

func toFont(f *model.Font) *font {
	if f == nil {
		return nil
	}
	v := font(*f)
	return &v
}

func fromFont(f *font) *model.Font {
	if f == nil {
		return nil
	}
	v := model.Font(*f)
	return &v
}
