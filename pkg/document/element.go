package document

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/matzehuels/rnaimport/pkg/errors"
)

// Element is one node of the drawing-primitive tree.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Classes  []string
	Text     string
	Children []*Element
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// ID returns the id attribute.
func (e *Element) ID() string { return e.Attrs["id"] }

// SetAttr sets an attribute, allocating the map if needed.
func (e *Element) SetAttr(name, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[name] = value
}

// TextContent returns the element's own text followed by that of its
// descendants, in document order.
func (e *Element) TextContent() string {
	if len(e.Children) == 0 {
		return e.Text
	}
	var b strings.Builder
	var walk func(*Element)
	walk = func(n *Element) {
		b.WriteString(n.Text)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(e)
	return b.String()
}

// Find returns every element (including e) for which match returns true,
// in document order.
func (e *Element) Find(match func(*Element) bool) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		if match(n) {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(e)
	return out
}

// Parse decodes XML text into an element tree. Namespace prefixes are dropped
// from tag and attribute names; xmlns declarations are discarded. HTML
// entities such as &nbsp; are accepted.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode document")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := newElement(t)
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New(errors.ErrCodeMalformedDocument, "document has more than one root element")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "document has no root element")
	}
	return root, nil
}

// ParseString is [Parse] over a string.
func ParseString(text string) (*Element, error) {
	return Parse(strings.NewReader(text))
}

func newElement(t xml.StartElement) *Element {
	el := &Element{Tag: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		el.Attrs[a.Name.Local] = a.Value
	}
	el.Classes = strings.Fields(el.Attrs["class"])
	return el
}
