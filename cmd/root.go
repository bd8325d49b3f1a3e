package cmd

import (
	"github.com/spf13/cobra"

	"github.com/XSaadiX/Quiz-app/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizapp",
	Short: "Terminal quiz runner",
	Long:  "quizapp runs multiple-choice and true/false quizzes in the terminal, saving progress between runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZAPP_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Question catalog (.json or .xlsx); defaults to the built-in set")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then storage.dsn from config, then QUIZAPP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
