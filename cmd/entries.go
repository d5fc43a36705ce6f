package cmd

import (
	"github.com/spf13/cobra"

	"github.com/packwright/packwright/internal/domain"
)

// entriesCmd represents the entries command.
var entriesCmd = newEntriesCmd()

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List resolved entry points and binary targets",
		Long:  entriesLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(c *cobra.Command, _ []string) error {
			root, err := resolveRoot()
			if err != nil {
				return err
			}

			return workflow.Entries(c.Context(), domain.EntriesArgs{Root: root})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(entriesCmd)
}
