package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnaimport/pkg/pipeline"
)

// convertCommand creates the convert command, which rewrites any dialect as
// an annotated diagram.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		flags              importFlags
		output             string
		invertY            bool
		relativeLabelLines bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Rewrite a diagram as annotated SVG",
		Long: `Convert imports a diagram of any dialect and writes it back as an
annotated SVG document, which later imports read without geometric matching.`,
		Example: `  rnaimport convert legacy.svg -o annotated.svg
  rnaimport convert figure.svg --invert-y > flipped.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(c, pipeline.FormatSVG)
			opts.InvertY = invertY
			opts.RelativeLabelLines = relativeLabelLines

			result, err := c.execute(cmd, args[0], opts, flags.noCache)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), output, result.Artifacts[pipeline.FormatSVG]); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Converted %s (%s)", filepath.Base(args[0]), result.Dialect)
				printStats(result.Stats.Nucleotides, result.Stats.BasePairs, result.CacheInfo.ImportHit)
				printFile(output)
				printNextStep("Inspect the model", appName+" import "+output+" --summary")
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&invertY, "invert-y", false, "mirror the diagram vertically")
	cmd.Flags().BoolVar(&relativeLabelLines, "relative-label-lines", false, "write label line endpoints relative to their nucleotide")

	return cmd
}
