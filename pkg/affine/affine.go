package affine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/rnaimport/pkg/errors"
)

// Matrix is a 2D affine transform [a, b, c, d, e, f].
type Matrix [6]float64

// Point is a position in diagram space.
type Point struct {
	X, Y float64
}

// Identity returns [1, 0, 0, 1, 0, 0].
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Compose returns m0·m1: m1 is applied first, then m0.
func Compose(m0, m1 Matrix) Matrix {
	a0, b0, c0, d0, e0, f0 := m0[0], m0[1], m0[2], m0[3], m0[4], m0[5]
	a1, b1, c1, d1, e1, f1 := m1[0], m1[1], m1[2], m1[3], m1[4], m1[5]
	return Matrix{
		a0*a1 + c0*b1,
		b0*a1 + d0*b1,
		a0*c1 + c0*d1,
		b0*c1 + d0*d1,
		a0*e1 + c0*f1 + e0,
		b0*e1 + d0*f1 + f0,
	}
}

// Apply maps p through m.
func Apply(m Matrix, p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Translation returns the (e, f) component, i.e. where m sends the origin.
func (m Matrix) Translation() Point {
	return Point{X: m[4], Y: m[5]}
}

// Determinant returns a·d − b·c.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of m. ok is false when m is singular.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) {
		return Matrix{}, false
	}
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Matrix{
		d / det,
		-b / det,
		-c / det,
		a / det,
		(c*f - d*e) / det,
		(b*e - a*f) / det,
	}, true
}

// ApproxEqual reports whether every component of m and o differs by at most eps.
func (m Matrix) ApproxEqual(o Matrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// arity is the inclusive argument count range of a transform function.
type arity struct{ min, max int }

type builder func(args []float64) Matrix

type function struct {
	arity   arity
	degrees bool
	build   builder
}

// functions is keyed by lower-cased function name.
var functions = map[string]function{
	"matrix": {arity{6, 6}, false, func(a []float64) Matrix {
		return Matrix{a[0], a[1], a[2], a[3], a[4], a[5]}
	}},
	"translate": {arity{2, 2}, false, func(a []float64) Matrix {
		return Matrix{1, 0, 0, 1, a[0], a[1]}
	}},
	"translatex": {arity{1, 1}, false, func(a []float64) Matrix {
		return Matrix{1, 0, 0, 1, a[0], 0}
	}},
	"translatey": {arity{1, 1}, false, func(a []float64) Matrix {
		return Matrix{1, 0, 0, 1, 0, a[0]}
	}},
	"scale": {arity{1, 2}, false, func(a []float64) Matrix {
		sx, sy := a[0], a[0]
		if len(a) == 2 {
			sy = a[1]
		}
		return Matrix{sx, 0, 0, sy, 0, 0}
	}},
	"scalex": {arity{1, 1}, false, func(a []float64) Matrix {
		return Matrix{a[0], 0, 0, 1, 0, 0}
	}},
	"scaley": {arity{1, 1}, false, func(a []float64) Matrix {
		return Matrix{1, 0, 0, a[0], 0, 0}
	}},
	"rotate":  {arity{1, 1}, true, rotation},
	"rotatez": {arity{1, 1}, true, rotation},
	"skew": {arity{1, 2}, true, func(a []float64) Matrix {
		ty := 0.0
		if len(a) == 2 {
			ty = math.Tan(a[1])
		}
		return Matrix{1, ty, math.Tan(a[0]), 1, 0, 0}
	}},
	"skewx": {arity{1, 1}, true, func(a []float64) Matrix {
		return Matrix{1, 0, math.Tan(a[0]), 1, 0, 0}
	}},
	"skewy": {arity{1, 1}, true, func(a []float64) Matrix {
		return Matrix{1, math.Tan(a[0]), 0, 1, 0, 0}
	}},
}

func rotation(a []float64) Matrix {
	cos, sin := math.Cos(a[0]), math.Sin(a[0])
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

var (
	callRe = regexp.MustCompile(`^\s*([A-Za-z]+)\s*\(([^()]*)\)\s*$`)
	listRe = regexp.MustCompile(`[A-Za-z]+\s*\([^()]*\)`)
)

// Parse parses a single transform function call such as "rotate(45)".
func Parse(text string) (Matrix, error) {
	m := callRe.FindStringSubmatch(text)
	if m == nil {
		return Matrix{}, errors.MalformedTransform(text, "expected a single name(args...) call")
	}
	name := strings.ToLower(m[1])
	fn, ok := functions[name]
	if !ok {
		return Matrix{}, errors.MalformedTransform(text, "unsupported function "+m[1])
	}

	fields := strings.Fields(strings.ReplaceAll(m[2], ",", " "))
	if len(fields) < fn.arity.min || len(fields) > fn.arity.max {
		return Matrix{}, errors.MalformedTransform(text, arityReason(m[1], fn.arity, len(fields)))
	}

	args := make([]float64, len(fields))
	for i, f := range fields {
		if fn.degrees {
			f = strings.TrimSuffix(strings.ToLower(f), "deg")
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Matrix{}, errors.MalformedTransform(text, "invalid number "+strconv.Quote(fields[i]))
		}
		if fn.degrees {
			v = v * math.Pi / 180
		}
		args[i] = v
	}
	return fn.build(args), nil
}

func arityReason(name string, a arity, got int) string {
	if a.min == a.max {
		return name + " takes " + strconv.Itoa(a.min) + " argument(s), got " + strconv.Itoa(got)
	}
	return name + " takes " + strconv.Itoa(a.min) + " to " + strconv.Itoa(a.max) + " arguments, got " + strconv.Itoa(got)
}

// ParseList parses a transform attribute holding zero or more function calls
// and composes them left to right. Blank text yields [Identity].
func ParseList(text string) (Matrix, error) {
	acc := Identity()
	if strings.TrimSpace(text) == "" {
		return acc, nil
	}

	locs := listRe.FindAllStringIndex(text, -1)
	prev := 0
	for _, loc := range locs {
		if !isSeparator(text[prev:loc[0]]) {
			return Matrix{}, errors.MalformedTransform(text, "unexpected text "+strconv.Quote(strings.TrimSpace(text[prev:loc[0]])))
		}
		m, err := Parse(text[loc[0]:loc[1]])
		if err != nil {
			return Matrix{}, err
		}
		acc = Compose(acc, m)
		prev = loc[1]
	}
	if len(locs) == 0 || !isSeparator(text[prev:]) {
		return Matrix{}, errors.MalformedTransform(text, "expected name(args...) calls")
	}
	return acc, nil
}

func isSeparator(s string) bool {
	return strings.Trim(s, " \t\r\n,") == ""
}
