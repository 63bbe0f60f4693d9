package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinicius-m-santos/elosense-sub000/internal/report"
)

var summaryRegion string

// summaryCmd is the cobra command for a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate counts for the stored data: sampled players,
matches, participant rows, and benchmark coverage, plus a per-stratum
breakdown of sampled players.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryRegion, "region", "", "restrict the stratum breakdown to one region")
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.SampledPlayers == 0 && ov.SampleMatches == 0 {
		fmt.Println("No data stored yet. Run 'elosense collect --region <region>' to start.")
		return nil
	}

	report.PrintOverview(os.Stdout, ov)

	counts, err := db.GetStratumCounts(strings.ToUpper(strings.TrimSpace(summaryRegion)))
	if err != nil {
		return fmt.Errorf("get stratum counts: %w", err)
	}
	if len(counts) > 0 {
		fmt.Fprintf(os.Stdout, "\n--- Sampled Players by Stratum ---\n\n")
		report.PrintStratumTable(os.Stdout, counts)
	}
	return nil
}
