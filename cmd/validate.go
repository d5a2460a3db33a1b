package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/ravenmq/raven/state"
	"github.com/spf13/cobra"
)

func readRouterConfig(path string) (*state.RouterCfg, error) {
	var cfg state.RouterCfg
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	err = state.RouterConfigValidator(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the router configuration",
	Long:  `Checks the configuration file for errors without starting the router.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readRouterConfig(configPath)
		if err != nil {
			fmt.Printf("config is not valid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("config for router %s is valid, %d provisioned addresses\n", cfg.Id, len(cfg.Addresses))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
