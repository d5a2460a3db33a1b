package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "raven",
	Short: "Raven AMQP Message Router",
	Long: `Raven is an AMQP message router.
At its core, raven keeps a live routing table of addresses and their forwarding targets, mutated race-free through a single-writer action queue.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "router.yaml", "Path to the router configuration file")
}
