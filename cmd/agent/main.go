// Command agent runs the GOAP Execution Manager for a single character
// against a configured goal template, or reports/stops an already-running
// instance. Grounded on the teacher pack's cobra root-command pattern
// (cmd/nerd/main.go): persistent flags for global config, a
// PersistentPreRunE that wires logging once per invocation.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goaplanner/agent/logging"
)

var (
	logLevel   string
	configDir  string
	logger     *logging.ZeroLogger
)

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Goal-Oriented Action Planner and Execution Manager",
	Long: `agent drives one character toward a declared goal by repeatedly
planning with A* search over symbolic world state, executing the plan
step by step against the remote game service, and replanning whenever
execution reveals the plan no longer holds.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewZeroLogger(logLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", zerolog.InfoLevel.String(), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./configs", "directory containing actions.yaml, state_defaults.yaml, goals.yaml")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
