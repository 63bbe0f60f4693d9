package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinicius-m-santos/elosense-sub000/internal/report"
)

// benchmarks command flags.
var (
	benchmarksRegion string
	benchmarksTier   string
)

// benchmarksCmd lists stored role-level benchmark rows.
var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "List stored role-level benchmarks",
	Long: `Lists the role-level benchmark rows for a region, optionally filtered
to a single tier. Matchup-level rows are not listed; they are served
through the score command's lookup.`,
	Args: cobra.NoArgs,
	RunE: runBenchmarks,
}

func init() {
	benchmarksCmd.Flags().StringVar(&benchmarksRegion, "region", "", "platform region, e.g. NA1 (required)")
	benchmarksCmd.Flags().StringVar(&benchmarksTier, "tier", "", "restrict to one tier, e.g. GOLD")
	_ = benchmarksCmd.MarkFlagRequired("region")
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	region := strings.ToUpper(strings.TrimSpace(benchmarksRegion))
	tier := strings.ToUpper(strings.TrimSpace(benchmarksTier))

	rows, err := db.ListBenchmarks(region, tier)
	if err != nil {
		return fmt.Errorf("list benchmarks: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("No benchmarks stored yet. Run 'elosense collect' then 'elosense aggregate'.")
		return nil
	}

	report.PrintBenchmarkTable(os.Stdout, rows)
	return nil
}
