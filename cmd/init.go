package cmd

import (
	"fmt"

	"github.com/nikogura/portfolio-admin/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Writes a default config file pointing at a local Portfolio API.

Example:
  portfolio-admin init
  portfolio-admin init --config ./portfolio.yaml`,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	path := getConfigFile()
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	err = config.InitConfig(path)
	if err != nil {
		return err
	}

	fmt.Printf("Config written to %s\n", path)
	fmt.Println("Edit api_url to point at your Portfolio API, then run 'portfolio-admin login'.")
	return err
}
