package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "roundtable",
	Short: "Roundtable - simulated multi-agent planning sessions",
	Long: `Roundtable runs a planning conversation between role-specific agents
(product, engineering, design, marketing) about a project brief, detects
when the team converges and collects the deliverables produced along the
way.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "roundtable.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd, initCmd)
}
