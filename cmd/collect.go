package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinicius-m-santos/elosense-sub000/internal/collector"
	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
	"github.com/vinicius-m-santos/elosense-sub000/internal/riot"
)

// collect command flags.
var (
	// collectRegion is the platform region to sample (e.g. NA1, EUW1, KR).
	collectRegion string
	// collectQueue is the ranked queue id (420 solo, 440 flex).
	collectQueue int
	// collectPlayers is the number of players drawn per (tier, division) stratum.
	collectPlayers int
	// collectMatches is the number of recent ranked matches fetched per player.
	collectMatches int
	// collectSeed makes the per-stratum player draw reproducible; 0 keeps API order.
	collectSeed int64
	// collectNoResume discards the checkpoint and walks every stratum again.
	collectNoResume bool
	// collectRetryAfter is the fallback backoff in seconds for 429 responses
	// without a usable Retry-After header.
	collectRetryAfter int
)

// collectCmd is the cobra command for the stratified ladder walk.
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Sample the ranked ladder and store recent matches",
	Long: `Walks every (tier, division) stratum of a region's ranked ladder from
IRON IV up to CHALLENGER, samples players from each, and stores their
recent ranked matches for benchmark aggregation.

A checkpoint is written after each completed stratum; an interrupted run
continues from it by default. Use --no-resume to start over.

Examples:
  elosense collect --region NA1 --players 10 --matches 5
  elosense collect --region EUW1 --queue 440 --no-resume`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectRegion, "region", "", "platform region, e.g. NA1 (required)")
	collectCmd.Flags().IntVar(&collectQueue, "queue", model.QueueRankedSolo, "ranked queue id (420 solo, 440 flex)")
	collectCmd.Flags().IntVar(&collectPlayers, "players", 10, "players sampled per stratum")
	collectCmd.Flags().IntVar(&collectMatches, "matches", 5, "matches fetched per player")
	collectCmd.Flags().Int64Var(&collectSeed, "seed", 0, "random seed for the player draw (0 = API order)")
	collectCmd.Flags().BoolVar(&collectNoResume, "no-resume", false, "ignore the checkpoint and start from IRON IV")
	collectCmd.Flags().IntVar(&collectRetryAfter, "retry-after", 10, "fallback backoff in seconds for rate-limit responses")
	_ = collectCmd.MarkFlagRequired("region")
}

func runCollect(cmd *cobra.Command, args []string) error {
	region := strings.ToUpper(strings.TrimSpace(collectRegion))
	if region == "" {
		return fmt.Errorf("region is required")
	}
	if collectQueue != model.QueueRankedSolo && collectQueue != model.QueueRankedFlex {
		return fmt.Errorf("unsupported queue %d: use %d or %d", collectQueue, model.QueueRankedSolo, model.QueueRankedFlex)
	}

	apiKey, err := riotAPIKey()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	checkpoints, err := collector.NewCheckpoints(filepath.Join(filepath.Dir(dbPath), "checkpoints"))
	if err != nil {
		return err
	}

	client := riot.NewClient(apiKey, riot.NewRateLimiter(0, 0), time.Duration(collectRetryAfter)*time.Second)
	col := collector.New(client, db, checkpoints)

	stats, err := col.Run(cmd.Context(), collector.Config{
		Region:            region,
		QueueID:           collectQueue,
		PlayersPerStratum: collectPlayers,
		MatchesPerPlayer:  collectMatches,
		Seed:              collectSeed,
		NoResume:          collectNoResume,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "collection stopped: %v\n", err)
	}

	fmt.Printf("\nDone: %d strata, %d players, %d matches stored (%d skipped, %d errors).\n",
		stats.StrataProcessed, stats.PlayersSampled, stats.MatchesStored, stats.Skipped, stats.Errors)
	return err
}
