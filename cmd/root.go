// Package cmd provides the root command and CLI setup for packwright.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packwright/packwright/internal/adapter"
	"github.com/packwright/packwright/internal/controller"
	"github.com/packwright/packwright/internal/domain"
	m "github.com/packwright/packwright/internal/model"
)

var sourceFS adapter.SourceFS
var scriptParser adapter.ScriptParser
var manifestStore adapter.ManifestStore
var ui controller.UI
var workflow domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sourceFS = adapter.NewLocalSourceFS()
	scriptParser = adapter.NewLeadingDocParser()
	manifestStore = adapter.NewManifestStore()
	workflow = domain.NewWorkflow(sourceFS, scriptParser, manifestStore, ui, newCommandBundler)
}

func newCommandBundler(argv []string, dir string) adapter.Bundler {
	return adapter.NewCommandBundler(argv, dir)
}

var rootDirFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packwright",
		Short: "Conditional multi-target package build toolchain",
		Long:  rootLongDescription,
	}

	cmd.PersistentFlags().StringVarP(&rootDirFlag, "chdir", "C", ".", "project root directory")

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func resolveRoot() (m.Path, error) {
	abs, err := filepath.Abs(rootDirFlag)
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}
