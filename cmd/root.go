package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "portfolio-admin",
	Short: "View and edit a portfolio hosted on the Portfolio API",
	Long: `portfolio-admin reads your portfolio (profile, skills, experience, education)
from the Portfolio API, renders it in the terminal or to markdown/PDF, and edits it
section by section.

Edits are applied locally as soon as the backend accepts them. If a save fails,
the local view goes back to the last data loaded from the backend.

A PDF CV can be sent for extraction, either to preview the extracted data or to
replace everything stored in the backend.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.portfolio-admin/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}
