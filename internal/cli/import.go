package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/pipeline"
)

// importFlags holds the import options shared by import, convert and graph.
type importFlags struct {
	dialect   string
	replace   bool
	tolerance float64
	noCache   bool
	refresh   bool
}

// register adds the shared import flags to cmd.
func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dialect, "dialect", "", "force a dialect: annotated, legacy-grouped or unannotated (default: detect)")
	cmd.Flags().BoolVar(&f.replace, "replace-duplicates", false, "a later base pair on the same nucleotides replaces the earlier one")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "maximum distance for geometric matching (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the import cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-import even when a cached model exists")

	var names []string
	for _, d := range dialect.All() {
		names = append(names, d.String())
	}
	_ = cmd.RegisterFlagCompletionFunc("dialect", cobra.FixedCompletions(names, cobra.ShellCompDirectiveNoFileComp))
}

// options merges the flags over the configured defaults.
func (f *importFlags) options(c *CLI, formats ...string) pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.Dialect = f.dialect
	opts.Refresh = f.refresh
	opts.Formats = formats
	if f.replace {
		opts.DuplicatePolicy = pipeline.PolicyReplace
	}
	if f.tolerance > 0 {
		opts.Tolerance = f.tolerance
	}
	opts.Logger = c.Logger
	return opts
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var (
		flags   importFlags
		output  string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a diagram and print the model as JSON",
		Long: `Import reads an SVG diagram, detects its dialect and reconstructs the
structure model. The model is written as JSON to stdout or to --output.

Use "-" to read the diagram from stdin.`,
		Example: `  rnaimport import hairpin.svg
  rnaimport import legacy.svg -o model.json --summary
  cat figure.svg | rnaimport import - --dialect unannotated --tolerance 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.execute(cmd, args[0], flags.options(c, pipeline.FormatJSON), flags.noCache)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), output, result.Artifacts[pipeline.FormatJSON]); err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(uiOut, renderSummary(result))
			}
			if output != "" {
				printSuccess("Imported %s as %s", filepath.Base(args[0]), result.Dialect)
				printStats(result.Stats.Nucleotides, result.Stats.BasePairs, result.CacheInfo.ImportHit)
				printFile(output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a per-molecule summary table to stderr")

	return cmd
}

// execute reads path and runs the pipeline with a spinner on stderr.
func (c *CLI) execute(cmd *cobra.Command, path string, opts pipeline.Options, noCache bool) (*pipeline.Result, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	text, err := readInput(path)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, uiOut, "Importing "+filepath.Base(path)+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, text, opts)
	cancelled := spinner.Cancelled()
	spinner.Stop()
	if cancelled {
		return nil, fmt.Errorf("import of %s cancelled: %w", path, ctx.Err())
	}
	if err != nil {
		return nil, err
	}
	prog.done("Imported " + filepath.Base(path))
	return result, nil
}
