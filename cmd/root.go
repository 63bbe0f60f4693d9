package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vinicius-m-santos/elosense-sub000/internal/storage"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "elosense",
	Short: "Ranked benchmark collection and scoring tool",
	Long: `Sample ranked ladders through the Riot API, aggregate per-bracket
performance benchmarks, and grade individual performances against them.`,
}

// Execute runs the root command.
func Execute() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".elosense", "elosense.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(benchmarksCmd)
	rootCmd.AddCommand(backfillCmd)
	rootCmd.AddCommand(summaryCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// openDB creates the database directory if needed and opens the store.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// riotAPIKey resolves the API key from RIOT_API_KEY (the .env file is
// loaded first) or, failing that, from ~/.elosense/riot_api_key.
func riotAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv("RIOT_API_KEY")); key != "" {
		return key, nil
	}
	path := filepath.Join(mustUserHome(), ".elosense", "riot_api_key")
	data, err := os.ReadFile(path)
	if err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("no Riot API key: set RIOT_API_KEY or write it to %s", path)
}
