package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/rnaimport/pkg/export"
	"github.com/matzehuels/rnaimport/pkg/inspect"
	rnaio "github.com/matzehuels/rnaimport/pkg/io"
	"github.com/matzehuels/rnaimport/pkg/model"
)

// Convert serializes doc into every format in opts.Formats.
func Convert(ctx context.Context, doc *model.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForConvert(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := convertOne(ctx, doc, format, opts)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func convertOne(ctx context.Context, doc *model.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := rnaio.WriteJSON(doc, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatSVG:
		return export.RenderSVG(doc, opts.svgOptions()...), nil
	case FormatDOT:
		return []byte(inspect.ToDOT(doc, opts.dotOptions())), nil
	case FormatGraphSVG:
		return inspect.RenderSVG(ctx, inspect.ToDOT(doc, opts.dotOptions()), opts.dotOptions())
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (o *Options) svgOptions() []export.Option {
	var out []export.Option
	if o.InvertY {
		out = append(out, export.WithInvertY())
	}
	if o.RelativeLabelLines {
		out = append(out, export.WithRelativeLabelLines())
	}
	return out
}

func (o *Options) dotOptions() inspect.Options {
	return inspect.Options{Backbone: o.Backbone, Positions: o.Positions}
}
