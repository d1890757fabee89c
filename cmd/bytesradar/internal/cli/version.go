package cli

import "github.com/spf13/cobra"

// newVersionCmd creates the version subcommand.
func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("bytesradar version %s\n", version)
		},
	}
}
