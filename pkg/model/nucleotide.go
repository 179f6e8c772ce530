package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/rnaimport/pkg/affine"
	"github.com/matzehuels/rnaimport/pkg/errors"
)

// Point is a position in diagram space.
type Point = affine.Point

// Symbol is a nucleotide glyph drawn from a closed alphabet.
type Symbol string

// Nucleotide symbols.
const (
	SymbolA          Symbol = "A"
	SymbolC          Symbol = "C"
	SymbolG          Symbol = "G"
	SymbolU          Symbol = "U"
	SymbolFive       Symbol = "5"
	SymbolThree      Symbol = "3"
	SymbolFivePrime  Symbol = "5′"
	SymbolThreePrime Symbol = "3′"
)

var symbols = map[string]Symbol{
	"A":  SymbolA,
	"C":  SymbolC,
	"G":  SymbolG,
	"U":  SymbolU,
	"5":  SymbolFive,
	"3":  SymbolThree,
	"5′": SymbolFivePrime,
	"3′": SymbolThreePrime,
	"5'": SymbolFivePrime,
	"3'": SymbolThreePrime,
}

// ParseSymbol validates nucleotide text. Surrounding whitespace is ignored and
// an ASCII apostrophe is accepted in place of the prime mark.
func ParseSymbol(text string) (Symbol, error) {
	if s, ok := symbols[strings.TrimSpace(text)]; ok {
		return s, nil
	}
	return "", errors.UnrecognizedSymbol(text)
}

// IsLetter reports whether s is one of the four base letters.
func (s Symbol) IsLetter() bool {
	return s == SymbolA || s == SymbolC || s == SymbolG || s == SymbolU
}

// Font describes text styling. Values are kept as written in the source.
type Font struct {
	Family string
	Size   string
	Weight string
	Style  string
}

// IsZero reports whether no font property is set.
func (f Font) IsZero() bool { return f == Font{} }

// Stroke describes line styling.
type Stroke struct {
	Color string
	Width *float64
}

// Nucleotide is one drawn nucleotide.
type Nucleotide struct {
	Symbol Symbol
	X, Y   float64

	Font   *Font
	Color  string // fill
	Stroke *Stroke

	Label     *LabelContent
	LabelLine *LabelLine
}

// Position returns the nucleotide's anchor point.
func (n *Nucleotide) Position() Point { return Point{X: n.X, Y: n.Y} }

// LabelLine is a polyline attached to a nucleotide. Points are relative to the
// nucleotide's own position.
type LabelLine struct {
	Points []Point
	Stroke *Stroke
}

// Validate checks the two-point minimum.
func (l *LabelLine) Validate() error {
	if len(l.Points) < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "label line needs at least 2 points, got %d", len(l.Points))
	}
	return nil
}

// LabelContent is a text annotation attached to a nucleotide. X and Y are
// relative to the nucleotide's own position.
type LabelContent struct {
	Text  string
	X, Y  float64
	Font  *Font
	Color string
}

var rgbRe = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*[, ]\s*(\d{1,3})\s*[, ]\s*(\d{1,3})\s*\)$`)

// NormalizeColor canonicalizes hex and rgb() colors to lower-case #rrggbb.
// Named colors and keywords such as "none" are lower-cased and kept.
func NormalizeColor(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "#") {
		if c, err := colorful.Hex(s); err == nil {
			return c.Hex()
		}
		return s
	}
	if m := rgbRe.FindStringSubmatch(s); m != nil {
		var v [3]float64
		for i := range v {
			n, _ := strconv.Atoi(m[i+1])
			v[i] = float64(min(n, 255)) / 255
		}
		return colorful.Color{R: v[0], G: v[1], B: v[2]}.Hex()
	}
	return s
}

// ParseLength parses a numeric length such as "1.5" or "2px".
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return v, nil
}
