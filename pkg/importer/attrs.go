package importer

import (
	"strconv"
	"strings"

	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/model"
)

func readFont(n *Node) *model.Font {
	var f model.Font
	f.Family, _ = n.Value("font-family")
	f.Size, _ = n.Value("font-size")
	f.Weight, _ = n.Value("font-weight")
	f.Style, _ = n.Value("font-style")
	if f.IsZero() {
		return nil
	}
	return &f
}

func readFill(n *Node) string {
	v, _ := n.Value("fill")
	return model.NormalizeColor(v)
}

func readStroke(n *Node) (*model.Stroke, error) {
	color, hasColor := n.Value("stroke")
	width, err := readStrokeWidth(n)
	if err != nil {
		return nil, err
	}
	if !hasColor && width == nil {
		return nil, nil
	}
	return &model.Stroke{Color: model.NormalizeColor(color), Width: width}, nil
}

func readStrokeWidth(n *Node) (*float64, error) {
	v, ok := n.Value("stroke-width")
	if !ok {
		return nil, nil
	}
	w, err := model.ParseLength(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "attribute %q", "stroke-width")
	}
	return &w, nil
}

func readBool(n *Node, name string) bool {
	v, ok := n.El.Attr(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// parsePoints parses an SVG points list such as "1,2 3,4".
func parsePoints(text string) ([]model.Point, error) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(fields)%2 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "points %q: odd number of coordinates", text)
	}
	pts := make([]model.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "points %q: invalid number %q", text, fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "points %q: invalid number %q", text, fields[i+1])
		}
		pts = append(pts, model.Point{X: x, Y: y})
	}
	return pts, nil
}
