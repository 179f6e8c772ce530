package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnaimport/pkg/pipeline"
)

// graphCommand creates the graph command, which exports the base-pairing
// graph for inspection.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags     importFlags
		output    string
		format    string
		backbone  bool
		positions bool
	)

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Export the base-pairing graph as DOT or SVG",
		Long: `Graph imports a diagram and writes its nucleotides and base pairs as a
Graphviz graph. With --format svg the graph is laid out and rendered.`,
		Example: `  rnaimport graph hairpin.svg > hairpin.dot
  rnaimport graph hairpin.svg --format svg --backbone --positions -o pairs.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			switch format {
			case "dot":
				target = pipeline.FormatDOT
			case "svg":
				target = pipeline.FormatGraphSVG
			default:
				return fmt.Errorf("invalid format %q: must be dot or svg", format)
			}

			opts := flags.options(c, target)
			opts.Backbone = backbone
			opts.Positions = positions

			result, err := c.execute(cmd, args[0], opts, flags.noCache)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), output, result.Artifacts[target]); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Exported graph of %s", filepath.Base(args[0]))
				printFile(output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().BoolVar(&backbone, "backbone", false, "link consecutive nucleotides of each molecule")
	cmd.Flags().BoolVar(&positions, "positions", false, "pin nodes at their diagram coordinates")

	return cmd
}
