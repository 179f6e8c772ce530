package inspect

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/rnaimport/pkg/model"
)

// Options configures graph generation.
type Options struct {
	// Backbone adds edges between consecutive nucleotides of a molecule.
	Backbone bool
	// Positions pins nodes at their diagram coordinates.
	Positions bool
	// Scale converts diagram units to inches when Positions is set.
	// Zero means 1/36.
	Scale float64
}

const defaultScale = 1.0 / 36

// NodeID returns the DOT node id of a nucleotide.
func NodeID(complex, molecule string, formatted int) string {
	return fmt.Sprintf("%s/%s:%d", complex, molecule, formatted)
}

// ToDOT converts doc to an undirected Graphviz graph. Each complex is a
// cluster.
func ToDOT(doc *model.Document, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = defaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3, fixedsize=true];\n")
	if doc.Name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", doc.Name)
	}

	for i, c := range doc.Complexes {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", c.Name)
		c.Each(func(k model.NucleotideKey, n *model.Nucleotide) {
			m, _ := c.Molecule(k.Molecule)
			attrs := []string{fmt.Sprintf("label=%q", string(n.Symbol))}
			if n.Color != "" && n.Color != "none" {
				attrs = append(attrs, fmt.Sprintf("fontcolor=%q", n.Color))
			}
			if opts.Positions {
				attrs = append(attrs, fmt.Sprintf("pos=\"%.3f,%.3f!\"", n.X*scale, -n.Y*scale))
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", NodeID(c.Name, k.Molecule, m.Formatted(k.Index)), strings.Join(attrs, ", "))
		})

		if opts.Backbone {
			for _, m := range c.Molecules() {
				idx := m.Indices()
				for j := 1; j < len(idx); j++ {
					if idx[j] != idx[j-1]+1 {
						continue
					}
					fmt.Fprintf(&buf, "    %q -- %q [color=grey, penwidth=2];\n",
						NodeID(c.Name, m.Name, m.Formatted(idx[j-1])), NodeID(c.Name, m.Name, m.Formatted(idx[j])))
				}
			}
		}

		for _, bp := range c.BasePairs() {
			ma, _ := c.Molecule(bp.A.Molecule)
			mb, _ := c.Molecule(bp.B.Molecule)
			fmt.Fprintf(&buf, "    %q -- %q [%s];\n",
				NodeID(c.Name, bp.A.Molecule, ma.Formatted(bp.A.Index)),
				NodeID(c.Name, bp.B.Molecule, mb.Formatted(bp.B.Index)),
				strings.Join(pairAttrs(bp), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pairAttrs(bp model.BasePair) []string {
	var attrs []string
	switch {
	case bp.Type == model.Canonical:
		attrs = append(attrs, "style=solid")
	case bp.Type == model.Wobble:
		attrs = append(attrs, "style=bold")
	case bp.Type == model.Mismatch:
		attrs = append(attrs, "style=dotted")
	case bp.Type.IsLeontisWesthof():
		style := "dashed"
		if bp.Type.IsCis() {
			style = "solid"
		}
		attrs = append(attrs, "style="+style, fmt.Sprintf("label=%q", string(bp.Type)), "fontsize=8")
	}
	if bp.Color != "" && bp.Color != "none" {
		attrs = append(attrs, fmt.Sprintf("color=%q", bp.Color))
	}
	return attrs
}
