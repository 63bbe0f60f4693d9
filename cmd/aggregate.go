package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinicius-m-santos/elosense-sub000/internal/benchmark"
)

// aggregate command flags.
var (
	// aggregateRegion restricts aggregation to one region; empty means all.
	aggregateRegion string
	// aggregateMinMatchup is the minimum group size for matchup-level rows.
	aggregateMinMatchup int
)

// aggregateCmd recomputes all benchmark rows from stored participants.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Recompute benchmarks from stored match participants",
	Long: `Groups every qualifying participant row by (region, queue, tier,
division, role) and recomputes the mean/P50/P75 benchmark per group, plus
champion-matchup rows for groups with enough samples. Re-running on the
same data overwrites the previous benchmarks.`,
	Args: cobra.NoArgs,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().StringVar(&aggregateRegion, "region", "", "restrict to one region (default: all)")
	aggregateCmd.Flags().IntVar(&aggregateMinMatchup, "min-matchup", benchmark.DefaultMinMatchupSample,
		"minimum samples for a champion-matchup row")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	agg := benchmark.NewAggregator(db, aggregateMinMatchup)
	stats, err := agg.Run(strings.ToUpper(strings.TrimSpace(aggregateRegion)))
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	fmt.Printf("Aggregated %d participants into %d role benchmarks and %d matchup benchmarks.\n",
		stats.ParticipantsRead, stats.RoleRows, stats.MatchupRows)
	return nil
}
