package affine

import (
	"math"
	"testing"

	"github.com/matzehuels/rnaimport/pkg/errors"
)

const eps = 1e-9

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Matrix
	}{
		{"translate", "translate(1,2)", Matrix{1, 0, 0, 1, 1, 2}},
		{"translate whitespace", "  translate( 1 ,  2 ) ", Matrix{1, 0, 0, 1, 1, 2}},
		{"translate spaces only", "translate(1 2)", Matrix{1, 0, 0, 1, 1, 2}},
		{"translateX", "translateX(5)", Matrix{1, 0, 0, 1, 5, 0}},
		{"translateY", "translatey(-3.5)", Matrix{1, 0, 0, 1, 0, -3.5}},
		{"matrix", "matrix(1,2,3,4,5,6)", Matrix{1, 2, 3, 4, 5, 6}},
		{"scale uniform", "scale(2)", Matrix{2, 0, 0, 2, 0, 0}},
		{"scale per axis", "scale(2, 3)", Matrix{2, 0, 0, 3, 0, 0}},
		{"scaleX", "scaleX(4)", Matrix{4, 0, 0, 1, 0, 0}},
		{"scaleY", "SCALEY(4)", Matrix{1, 0, 0, 4, 0, 0}},
		{"rotate", "rotate(90)", Matrix{0, 1, -1, 0, 0, 0}},
		{"rotateZ", "rotateZ(180)", Matrix{-1, 0, 0, -1, 0, 0}},
		{"rotate deg suffix", "rotate(90deg)", Matrix{0, 1, -1, 0, 0, 0}},
		{"skewX", "skewX(45)", Matrix{1, 0, 1, 1, 0, 0}},
		{"skewY", "skewY(45)", Matrix{1, 1, 0, 1, 0, 0}},
		{"skew one arg", "skew(45)", Matrix{1, 0, 1, 1, 0, 0}},
		{"skew two args", "skew(45, 45)", Matrix{1, 1, 1, 1, 0, 0}},
		{"exponent", "translate(1e2,-2E-1)", Matrix{1, 0, 0, 1, 100, -0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if !got.ApproxEqual(tt.want, eps) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"scale too many", "scale(1,2,3)"},
		{"translate too few", "translate(1)"},
		{"matrix too few", "matrix(1,2,3,4,5)"},
		{"rotate too many", "rotate(1,2)"},
		{"skewX too many", "skewX(1,2)"},
		{"unknown function", "spin(10)"},
		{"empty", ""},
		{"no parens", "translate 1 2"},
		{"two calls", "translate(1,2) scale(2)"},
		{"bad number", "translate(a,b)"},
		{"no args", "scale()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.in)
			}
			if !errors.Is(err, errors.ErrCodeMalformedTransform) {
				t.Errorf("Parse(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeMalformedTransform)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Matrix
	}{
		{"blank", "  ", Identity()},
		{"single", "translate(3,4)", Matrix{1, 0, 0, 1, 3, 4}},
		{"translate then scale", "translate(10,0) scale(2)", Matrix{2, 0, 0, 2, 10, 0}},
		{"comma separated", "scale(2),translate(10,0)", Matrix{2, 0, 0, 2, 20, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseList(tt.in)
			if err != nil {
				t.Fatalf("ParseList(%q) error: %v", tt.in, err)
			}
			if !got.ApproxEqual(tt.want, eps) {
				t.Errorf("ParseList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"translate(1,2) garbage", "junk", "scale(1,2,3) translate(1,1)"} {
		if _, err := ParseList(bad); err == nil {
			t.Errorf("ParseList(%q) should fail", bad)
		}
	}
}

func TestComposeOrder(t *testing.T) {
	// translate(10,0) applied after scale(2): (1,1) -> (2,2) -> (12,2)
	m := Compose(Matrix{1, 0, 0, 1, 10, 0}, Matrix{2, 0, 0, 2, 0, 0})
	p := Apply(m, Point{1, 1})
	if p != (Point{12, 2}) {
		t.Errorf("Apply = %v, want {12 2}", p)
	}

	if got := Compose(Identity(), m); got != m {
		t.Errorf("Compose(I, m) = %v, want %v", got, m)
	}
	if got := Compose(m, Identity()); got != m {
		t.Errorf("Compose(m, I) = %v, want %v", got, m)
	}
}

func TestComposeAssociative(t *testing.T) {
	inputs := []string{
		"translate(3,-7)", "rotate(33)", "scale(2,0.5)", "skewX(12)",
		"skew(5,9)", "matrix(1.5,0.2,-0.3,0.9,4,5)", "rotateZ(-120)", "scaleY(3)",
	}
	ms := make([]Matrix, len(inputs))
	for i, in := range inputs {
		m, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		ms[i] = m
	}

	for i := range ms {
		for j := range ms {
			for k := range ms {
				left := Compose(Compose(ms[i], ms[j]), ms[k])
				right := Compose(ms[i], Compose(ms[j], ms[k]))
				if !left.ApproxEqual(right, 1e-9) {
					t.Fatalf("associativity failed for %s, %s, %s: %v vs %v", inputs[i], inputs[j], inputs[k], left, right)
				}
			}
		}
	}
}

func TestInvert(t *testing.T) {
	m, err := ParseList("translate(5,6) rotate(30) scale(2,3)")
	if err != nil {
		t.Fatal(err)
	}
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported singular matrix")
	}
	if got := Compose(m, inv); !got.ApproxEqual(Identity(), eps) {
		t.Errorf("m·m⁻¹ = %v, want identity", got)
	}

	if _, ok := (Matrix{0, 0, 0, 0, 1, 1}).Invert(); ok {
		t.Error("singular matrix should not invert")
	}
}

func TestRotateApply(t *testing.T) {
	m, _ := Parse("rotate(90)")
	p := Apply(m, Point{1, 0})
	if math.Abs(p.X) > eps || math.Abs(p.Y-1) > eps {
		t.Errorf("rotate(90) * (1,0) = %v, want (0,1)", p)
	}
}
