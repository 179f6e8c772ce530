package document

import (
	"maps"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/matzehuels/rnaimport/pkg/errors"
)

// Style maps CSS property names to values.
type Style map[string]string

// Get returns the value of a property.
func (s Style) Get(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// StyleSheet is the style-rule table of one document. It is built once per
// parse and never mutated afterwards.
type StyleSheet struct {
	root       Style
	tags       map[string]Style
	classes    map[string]Style
	tagClasses map[string]Style
}

var (
	tagSelRe      = regexp.MustCompile(`^[A-Za-z][\w-]*$`)
	classSelRe    = regexp.MustCompile(`^\.([\w-]+)$`)
	tagClassSelRe = regexp.MustCompile(`^([A-Za-z][\w-]*)\.([\w-]+)$`)
)

// NewStyleSheet collects every <style> block under root and parses it.
// Selectors other than "*", the root tag, "tag", ".class" and "tag.class"
// are ignored.
func NewStyleSheet(root *Element) (*StyleSheet, error) {
	ss := &StyleSheet{
		root:       Style{},
		tags:       make(map[string]Style),
		classes:    make(map[string]Style),
		tagClasses: make(map[string]Style),
	}
	for _, el := range root.Find(func(e *Element) bool { return e.Tag == "style" }) {
		if err := ss.add(el.TextContent(), root.Tag); err != nil {
			return nil, err
		}
	}
	return ss, nil
}

// ParseStyleSheet parses CSS text directly. rootTag names the document root
// so that its rules are treated as root defaults.
func ParseStyleSheet(text, rootTag string) (*StyleSheet, error) {
	ss := &StyleSheet{
		root:       Style{},
		tags:       make(map[string]Style),
		classes:    make(map[string]Style),
		tagClasses: make(map[string]Style),
	}
	if err := ss.add(text, rootTag); err != nil {
		return nil, err
	}
	return ss, nil
}

func (ss *StyleSheet) add(text, rootTag string) error {
	sheet, err := parser.Parse(text)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMalformedDocument, err, "parse style block")
	}
	for _, rule := range sheet.Rules {
		if rule.Kind != css.QualifiedRule {
			continue
		}
		decls := declarations(rule.Declarations)
		for _, sel := range rule.Selectors {
			sel = strings.TrimSpace(sel)
			switch {
			case sel == "*" || sel == rootTag:
				maps.Copy(ss.root, decls)
			case tagSelRe.MatchString(sel):
				mergeInto(ss.tags, sel, decls)
			case classSelRe.MatchString(sel):
				mergeInto(ss.classes, classSelRe.FindStringSubmatch(sel)[1], decls)
			case tagClassSelRe.MatchString(sel):
				mergeInto(ss.tagClasses, sel, decls)
			}
		}
	}
	return nil
}

// Resolve computes the effective style of el.
func (ss *StyleSheet) Resolve(el *Element) Style {
	var classStyles, tagClassStyles []Style
	if ss != nil {
		for _, c := range el.Classes {
			if s, ok := ss.classes[c]; ok {
				classStyles = append(classStyles, s)
			}
			if s, ok := ss.tagClasses[el.Tag+"."+c]; ok {
				tagClassStyles = append(tagClassStyles, s)
			}
		}
	}
	var root, tag Style
	if ss != nil {
		root, tag = ss.root, ss.tags[el.Tag]
	}
	return Cascade(root, tag, classStyles, tagClassStyles, InlineStyle(el))
}

// Cascade merges style layers in increasing precedence and returns a new map.
// None of the inputs are modified.
func Cascade(root, tag Style, classStyles, tagClassStyles []Style, inline Style) Style {
	out := Style{}
	maps.Copy(out, root)
	maps.Copy(out, tag)
	for _, s := range classStyles {
		maps.Copy(out, s)
	}
	for _, s := range tagClassStyles {
		maps.Copy(out, s)
	}
	maps.Copy(out, inline)
	return out
}

// InlineStyle parses the element's style="" attribute. Unparseable inline
// styles are ignored.
func InlineStyle(el *Element) Style {
	text, ok := el.Attr("style")
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil
	}
	return declarations(decls)
}

func declarations(decls []*css.Declaration) Style {
	out := make(Style, len(decls))
	for _, d := range decls {
		out[strings.ToLower(d.Property)] = strings.TrimSpace(d.Value)
	}
	return out
}

func mergeInto(dst map[string]Style, key string, decls Style) {
	s, ok := dst[key]
	if !ok {
		s = Style{}
		dst[key] = s
	}
	maps.Copy(s, decls)
}
