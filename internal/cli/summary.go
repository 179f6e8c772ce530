package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/rnaimport/pkg/model"
	"github.com/matzehuels/rnaimport/pkg/pipeline"
)

// summaryRows lists one row per molecule: complex, molecule, first index,
// length, base pairs touching the molecule and sequence.
func summaryRows(doc *model.Document) [][]string {
	var rows [][]string
	for _, cx := range doc.Complexes {
		pairs := make(map[string]int)
		for _, bp := range cx.BasePairs() {
			pairs[bp.A.Molecule]++
			if bp.B.Molecule != bp.A.Molecule {
				pairs[bp.B.Molecule]++
			}
		}
		for _, m := range cx.Molecules() {
			rows = append(rows, []string{
				cx.Name,
				m.Name,
				strconv.Itoa(m.FirstIndex),
				strconv.Itoa(m.Len()),
				strconv.Itoa(pairs[m.Name]),
				abbreviate(m.Sequence(), 40),
			})
		}
	}
	return rows
}

// renderSummary renders the import result as a bordered table.
func renderSummary(result *pipeline.Result) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	numberStyle := lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Complex", "Molecule", "First", "Length", "Pairs", "Sequence").
		Rows(summaryRows(result.Document)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col >= 2 && col <= 4:
				return numberStyle
			}
			return cellStyle
		})

	title := StyleTitle.Render(result.Document.Name) + " " +
		StyleDim.Render(result.Dialect.String())
	return title + "\n" + t.Render()
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
