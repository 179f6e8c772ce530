package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnaimport/pkg/dialect"
)

// sniffCommand creates the sniff command, which reports the detected dialect.
func (c *CLI) sniffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sniff <file>...",
		Short: "Print the detected dialect of each diagram",
		Example: `  rnaimport sniff figure.svg
  rnaimport sniff diagrams/*.svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				text, err := readInput(path)
				if err != nil {
					return err
				}
				d := dialect.Sniff(text)
				if len(args) == 1 {
					fmt.Fprintln(out, d)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", path, d)
			}
			return nil
		},
	}
}
