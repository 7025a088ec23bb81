package cmd

import (
	"github.com/kunal/vetta/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vetta",
	Short: "AI-assisted technical interview sessions in the terminal",
	Long:  "Vetta runs adaptive mock technical interviews: it analyzes a candidate against a role, asks questions at a difficulty that tracks performance, and scores every answer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VETTA_DB env var)")
	rootCmd.Flags().String("role", "", "Path to a free-text role description (requires an LLM provider)")
	rootCmd.Flags().String("candidate", "", "Path to a free-text candidate resume (requires an LLM provider)")
	rootCmd.Flags().Int("questions", 0, "Number of questions before the session completes (default 10)")

	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then VETTA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
