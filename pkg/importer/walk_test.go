package importer

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/rnaimport/pkg/affine"
	"github.com/matzehuels/rnaimport/pkg/document"
	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/model"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func newTestCache(t *testing.T, root *document.Element) *Cache {
	t.Helper()
	ss, err := document.NewStyleSheet(root)
	if err != nil {
		t.Fatal(err)
	}
	return NewCache(model.NewDocument(""), ss, model.DoNothing, nil)
}

func TestWalkOrder(t *testing.T) {
	root, err := document.ParseString(`<a id="a"><b id="b"><c id="c"/></b><d id="d"/></a>`)
	if err != nil {
		t.Fatal(err)
	}
	var trace []string
	s := Strategy{
		SemanticType: func(n *Node) string { return n.El.Tag },
		Visit: func(n *Node, _ *Cache) error {
			trace = append(trace, "visit "+n.El.ID())
			return nil
		},
		PostOrder: map[string]Visitor{
			"b": func(n *Node, _ *Cache) error {
				trace = append(trace, "close "+n.El.ID())
				return nil
			},
		},
		Finish: func(*Cache) error {
			trace = append(trace, "finish")
			return nil
		},
	}
	if err := Walk(root, s, newTestCache(t, root)); err != nil {
		t.Fatal(err)
	}
	want := "visit a,visit b,visit c,close b,visit d,finish"
	if got := strings.Join(trace, ","); got != want {
		t.Errorf("trace = %s\nwant    %s", got, want)
	}
}

func TestWalkCumulativeTransform(t *testing.T) {
	root, err := document.ParseString(`<svg>
  <g transform="translate(10, 0)">
    <g transform="scale(2)">
      <text id="t" x="1" y="3" transform="translate(0 5)">A</text>
    </g>
  </g>
</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	var got affine.Point
	s := Strategy{Visit: func(n *Node, _ *Cache) error {
		if n.El.ID() == "t" {
			p, err := n.Point("x", "y")
			got = p
			return err
		}
		return nil
	}}
	if err := Walk(root, s, newTestCache(t, root)); err != nil {
		t.Fatal(err)
	}
	// translate(10,0) . scale(2) . translate(0,5) applied to (1,3)
	if !approx(got.X, 12) || !approx(got.Y, 16) {
		t.Errorf("position = %+v, want (12, 16)", got)
	}
}

func TestWalkAbortsOnError(t *testing.T) {
	root, err := document.ParseString(`<svg><g transform="skewX(1, 2)"><text/></g></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	visited := 0
	s := Strategy{Visit: func(*Node, *Cache) error { visited++; return nil }}
	err = Walk(root, s, newTestCache(t, root))
	if !errors.Is(err, errors.ErrCodeMalformedTransform) {
		t.Errorf("error = %v, want MALFORMED_TRANSFORM", err)
	}
	if visited != 1 {
		t.Errorf("visited %d nodes after failure, want 1", visited)
	}
}

func TestNodeValueFallsBackToStyle(t *testing.T) {
	root, err := document.ParseString(`<svg><style>.x { fill: red; stroke: blue }</style><circle class="x" fill="green"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	c := newTestCache(t, root)
	circle := root.Children[1]
	n := &Node{El: circle, Style: c.Styles.Resolve(circle), CTM: affine.Identity()}
	if v, _ := n.Value("fill"); v != "green" {
		t.Errorf("fill = %q, want attribute value", v)
	}
	if v, _ := n.Value("stroke"); v != "blue" {
		t.Errorf("stroke = %q, want style value", v)
	}
	if _, ok := n.Value("font-size"); ok {
		t.Error("unexpected font-size")
	}
}

func TestParseLegacyID(t *testing.T) {
	tests := []struct {
		id   string
		mol  string
		idx  int
		want bool
	}{
		{"12", "", 12, true},
		{" 7 ", "", 7, true},
		{"-3", "", -3, true},
		{"seq_5S:42", "5S", 42, true},
		{"nt_my_mol:1", "my_mol", 1, true},
		{"Letters", "", 0, false},
		{"seq_A", "", 0, false},
		{"A:1", "", 0, false},
		{"", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			mol, idx, ok := parseLegacyID(tt.id)
			if ok != tt.want || (ok && (mol != tt.mol || idx != tt.idx)) {
				t.Errorf("parseLegacyID(%q) = %q, %d, %v", tt.id, mol, idx, ok)
			}
		})
	}
}

func TestParsePoints(t *testing.T) {
	pts, err := parsePoints("1,2 3.5,-4")
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 2 || pts[1] != (model.Point{X: 3.5, Y: -4}) {
		t.Errorf("points = %v", pts)
	}
	if _, err := parsePoints("1,2 3"); err == nil {
		t.Error("expected error for odd coordinate count")
	}
	if _, err := parsePoints("1,x"); err == nil {
		t.Error("expected error for bad number")
	}
}
