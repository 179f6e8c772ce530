package document

import (
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/rnaimport/pkg/model"
)

// Attributes written by [Annotate].
const (
	AttrMeasuredWidth  = "data-measured-width"
	AttrMeasuredHeight = "data-measured-height"
)

// Measurer measures the bounding box of a text element.
type Measurer interface {
	Measure(el *Element, style Style) (width, height float64)
}

const (
	defaultFontSize = 12.0
	charWidthRatio  = 0.55
)

// EstimateMeasurer approximates text extents from the font size and the
// number of characters.
type EstimateMeasurer struct {
	// DefaultFontSize is used when neither attribute nor style sets one.
	DefaultFontSize float64
}

// Measure implements [Measurer].
func (m EstimateMeasurer) Measure(el *Element, style Style) (float64, float64) {
	size := m.DefaultFontSize
	if size <= 0 {
		size = defaultFontSize
	}
	raw, ok := el.Attr("font-size")
	if !ok {
		raw, ok = style.Get("font-size")
	}
	if ok {
		if v, err := model.ParseLength(raw); err == nil && v > 0 {
			size = v
		}
	}
	n := utf8.RuneCountInString(el.TextContent())
	return float64(n) * size * charWidthRatio, size
}

// Annotate sets measured width and height on every <text> element that does
// not already carry both.
func Annotate(root *Element, ss *StyleSheet, m Measurer) {
	for _, el := range root.Find(func(e *Element) bool { return e.Tag == "text" }) {
		_, hasW := el.Attr(AttrMeasuredWidth)
		_, hasH := el.Attr(AttrMeasuredHeight)
		if hasW && hasH {
			continue
		}
		w, h := m.Measure(el, ss.Resolve(el))
		el.SetAttr(AttrMeasuredWidth, strconv.FormatFloat(w, 'f', -1, 64))
		el.SetAttr(AttrMeasuredHeight, strconv.FormatFloat(h, 'f', -1, 64))
	}
}
