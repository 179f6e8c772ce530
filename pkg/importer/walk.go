package importer

import (
	"strconv"
	"strings"

	"github.com/matzehuels/rnaimport/pkg/affine"
	"github.com/matzehuels/rnaimport/pkg/document"
	"github.com/matzehuels/rnaimport/pkg/errors"
)

// Node is the walk context of one element.
type Node struct {
	El     *document.Element
	Style  document.Style
	CTM    affine.Matrix // includes the element's own transform
	Parent *Node
}

// Value returns the attribute if present, else the effective style property.
func (n *Node) Value(name string) (string, bool) {
	if v, ok := n.El.Attr(name); ok {
		return v, true
	}
	return n.Style.Get(name)
}

// Require returns a mandatory attribute.
func (n *Node) Require(name string) (string, error) {
	v, ok := n.El.Attr(name)
	if !ok {
		return "", errors.MissingAttribute(name)
	}
	return v, nil
}

// RequireInt returns a mandatory integer attribute.
func (n *Node) RequireInt(name string) (int, error) {
	v, err := n.Require(name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "attribute %q: invalid integer %q", name, v)
	}
	return i, nil
}

// Float returns a numeric attribute or fallback when absent. Lists such as
// "3 4 5" yield their first value.
func (n *Node) Float(name string, fallback float64) (float64, error) {
	v, ok := n.El.Attr(name)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	if f := strings.Fields(strings.ReplaceAll(v, ",", " ")); len(f) > 0 {
		v = f[0]
	}
	x, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "attribute %q: invalid number %q", name, v)
	}
	return x, nil
}

// Point returns CTM applied to the (xName, yName) attributes, each defaulting
// to 0.
func (n *Node) Point(xName, yName string) (affine.Point, error) {
	x, err := n.Float(xName, 0)
	if err != nil {
		return affine.Point{}, err
	}
	y, err := n.Float(yName, 0)
	if err != nil {
		return affine.Point{}, err
	}
	return affine.Apply(n.CTM, affine.Point{X: x, Y: y}), nil
}

// Visitor handles one node.
type Visitor func(n *Node, c *Cache) error

// Strategy is one dialect's set of walk callbacks.
type Strategy struct {
	Name string
	// SemanticType selects the post-order hook for a node. Nil means no hooks.
	SemanticType func(n *Node) string
	Visit        Visitor
	PostOrder    map[string]Visitor
	// Finish runs once after the whole tree has been walked.
	Finish func(c *Cache) error
}

// Walk traverses root depth-first. Every node's style is resolved from the
// cache's style sheet, Visit runs before the children, and the post-order
// hook for the node's semantic type runs after them. The first error aborts
// the walk.
func Walk(root *document.Element, s Strategy, c *Cache) error {
	if err := walk(root, nil, s, c); err != nil {
		return err
	}
	if s.Finish != nil {
		return s.Finish(c)
	}
	return nil
}

func walk(el *document.Element, parent *Node, s Strategy, c *Cache) error {
	ctm := affine.Identity()
	if parent != nil {
		ctm = parent.CTM
	}
	if t, ok := el.Attr("transform"); ok {
		m, err := affine.ParseList(t)
		if err != nil {
			return err
		}
		ctm = affine.Compose(ctm, m)
	}

	n := &Node{El: el, Style: c.Styles.Resolve(el), CTM: ctm, Parent: parent}
	if s.Visit != nil {
		if err := s.Visit(n, c); err != nil {
			return err
		}
	}
	for _, child := range el.Children {
		if err := walk(child, n, s, c); err != nil {
			return err
		}
	}
	if s.SemanticType == nil {
		return nil
	}
	if hook, ok := s.PostOrder[s.SemanticType(n)]; ok {
		return hook(n, c)
	}
	return nil
}

func applyCTM(n *Node, p affine.Point) affine.Point { return affine.Apply(n.CTM, p) }
