package cmd

import (
	"github.com/spf13/cobra"

	"github.com/packwright/packwright/internal/domain"
)

// conditionsCmd represents the conditions command.
var conditionsCmd = newConditionsCmd()

func newConditionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conditions",
		Short: "List the build passes the configured conditions enumerate",
		Long:  conditionsLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := resolveRoot()
			if err != nil {
				return err
			}

			return workflow.Combinations(domain.CombinationsArgs{Root: root})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(conditionsCmd)
}
