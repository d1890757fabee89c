package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kenf1/bytes-radar/internal/langreg"
)

// newLanguageCmd creates the language subcommand, listing all registered
// languages and their recognized extensions/filenames.
func newLanguageCmd(registry *langreg.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "List recognized languages and their extensions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tFILENAMES"); err != nil {
				return err
			}

			for _, rules := range registry.IterLanguages() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\t%s\n",
					rules.DisplayName,
					strings.Join(rules.Extensions, ", "),
					strings.Join(rules.Filenames, ", "),
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
