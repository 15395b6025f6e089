package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/logger"
	"github.com/abhisek/wordiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wordiz",
	Short: "Vocabulary drill for the terminal",
	Long:  "Wordiz drills a word list across four question types until every word is mastered.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/wordiz/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDIZ_DB)")
	rootCmd.PersistentFlags().String("words", "", "Path to a JSON word list (default: built-in list)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(tipCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies the
// persistent flags, which take precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if p, _ := cmd.Flags().GetString("words"); p != "" {
		cfg.Words = p
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to
// the XDG default.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore loads configuration and opens the database for a CLI command.
// Logs go to stderr unless a log file is configured.
func openStore(cmd *cobra.Command) (*config.Config, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if _, _, err := setupLogger(cfg, os.Stderr); err != nil {
		return nil, nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, st, nil
}

func setupLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	log, closer, err := logger.Setup(cfg.Log, fallback)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}
	return log, closer, nil
}
