package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
)

var flagConfigValidate string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or validate the agent configuration",
	Long: `Print the effective agent configuration as YAML (after the search path,
defaults and --preset are applied), or validate a file against the schema.

Examples:
  kong config > my-agent.yaml
  kong config --preset hard
  kong config --validate ./my-agent.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigValidate, "validate", "", "Validate this YAML file and exit")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigValidate != "" {
		data, err := os.ReadFile(flagConfigValidate)
		if err != nil {
			return err
		}
		if _, err := config.Parse(data); err != nil {
			return fmt.Errorf("%s: %w", flagConfigValidate, err)
		}
		fmt.Printf("%s: ok\n", flagConfigValidate)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
