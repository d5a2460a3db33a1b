package cmd

import (
	"log/slog"

	"github.com/ravenmq/raven/core"
	"github.com/ravenmq/raven/state"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the router",
	Long:  `This will run the router on the current host until it receives SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readRouterConfig(configPath)
		if err != nil {
			panic(err)
		}

		level := slog.LevelInfo
		if ok, _ := cmd.Flags().GetBool("verbose"); ok {
			level = slog.LevelDebug
		}

		err = core.Start(*cfg, level)
		if err != nil {
			panic(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	runCmd.Flags().BoolVarP(&state.DBG_log_core, "lcore", "t", false, "Write address table changes to the console")
	runCmd.Flags().BoolVarP(&state.DBG_log_sweeper, "lsweep", "s", false, "Write sweeper decisions to the console")
}
