package cmd

import (
	"github.com/spf13/cobra"

	"github.com/packwright/packwright/internal/domain"
)

// buildCmd represents the build command.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every condition combination and rewrite package exports",
		Long:  buildLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(c *cobra.Command, _ []string) error {
			root, err := resolveRoot()
			if err != nil {
				return err
			}

			return workflow.Build(c.Context(), domain.BuildArgs{Root: root})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
