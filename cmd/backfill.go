package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
	"github.com/vinicius-m-santos/elosense-sub000/internal/riot"
	"github.com/vinicius-m-santos/elosense-sub000/internal/sample"
	"github.com/vinicius-m-santos/elosense-sub000/internal/storage"
)

// backfill command flags, shared by both subcommands.
var (
	backfillRegion string
	backfillLimit  int
	backfillDryRun bool
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Fill in data derivable from what is already stored",
}

// backfillParticipantsCmd re-extracts participant rows from stored match
// payloads. Useful when a player was sampled after their matches were
// stored, or after an extraction change.
var backfillParticipantsCmd = &cobra.Command{
	Use:   "participants",
	Short: "Extract missing participant rows from stored match payloads",
	Args:  cobra.NoArgs,
	RunE:  runBackfillParticipants,
}

// backfillRanksCmd stamps tier/division onto participant rows whose player
// has since been sampled.
var backfillRanksCmd = &cobra.Command{
	Use:   "ranks",
	Short: "Fill missing tier/division on participant rows from sampled players",
	Args:  cobra.NoArgs,
	RunE:  runBackfillRanks,
}

func init() {
	backfillCmd.PersistentFlags().StringVar(&backfillRegion, "region", "", "restrict to one region (default: all)")
	backfillCmd.PersistentFlags().IntVar(&backfillLimit, "limit", 0, "maximum rows to process (0 = all)")
	backfillCmd.PersistentFlags().BoolVar(&backfillDryRun, "dry-run", false, "report what would change without writing")

	backfillCmd.AddCommand(backfillParticipantsCmd)
	backfillCmd.AddCommand(backfillRanksCmd)
}

type playerKey struct {
	region string
	puuid  string
}

// sampledIndex loads the sampled-player index, keyed per region so the
// same account sampled on two platforms keeps both rank labels.
func sampledIndex(db *storage.DB, region string) (map[playerKey]model.SampledPlayer, error) {
	players, err := db.ListSampledPlayers(region)
	if err != nil {
		return nil, fmt.Errorf("list sampled players: %w", err)
	}
	idx := make(map[playerKey]model.SampledPlayer, len(players))
	for _, p := range players {
		idx[playerKey{region: p.Region, puuid: p.PUUID}] = p
	}
	return idx, nil
}

func runBackfillParticipants(cmd *cobra.Command, args []string) error {
	region := strings.ToUpper(strings.TrimSpace(backfillRegion))

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sampled, err := sampledIndex(db, region)
	if err != nil {
		return err
	}
	matches, err := db.ListMatches(region, backfillLimit)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}

	store := sample.NewStore(db)
	var added, skipped int
	for _, m := range matches {
		var match riot.Match
		if err := json.Unmarshal(m.Payload, &match); err != nil {
			fmt.Fprintf(os.Stderr, "  [skip] match %s: bad payload: %v\n", m.MatchID, err)
			skipped++
			continue
		}

		for _, puuid := range match.Metadata.Participants {
			player, ok := sampled[playerKey{region: m.Region, puuid: puuid}]
			if !ok {
				continue
			}
			exists, err := db.ParticipantExists(m.MatchID, m.Region, puuid)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if backfillDryRun {
				added++
				continue
			}
			if _, err := store.PersistMatchPayload(&match, m.Payload, m.Region, puuid, player.Tier, player.Division); err != nil {
				fmt.Fprintf(os.Stderr, "  [error] match %s player %s: %v\n", m.MatchID, puuid, err)
				skipped++
				continue
			}
			added++
		}
	}

	verb := "added"
	if backfillDryRun {
		verb = "would add"
	}
	fmt.Printf("Scanned %d matches: %s %d participant rows (%d skipped).\n", len(matches), verb, added, skipped)
	return nil
}

func runBackfillRanks(cmd *cobra.Command, args []string) error {
	region := strings.ToUpper(strings.TrimSpace(backfillRegion))

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sampled, err := sampledIndex(db, region)
	if err != nil {
		return err
	}
	missing, err := db.ListParticipantsMissingRank(region, backfillLimit)
	if err != nil {
		return fmt.Errorf("list unranked participants: %w", err)
	}

	var updated int
	for _, p := range missing {
		player, ok := sampled[playerKey{region: p.Region, puuid: p.PUUID}]
		if !ok {
			continue
		}
		if backfillDryRun {
			updated++
			continue
		}
		if err := db.UpdateParticipantRank(p.MatchID, p.Region, p.PUUID, player.Tier, player.Division); err != nil {
			return fmt.Errorf("update rank for %s/%s: %w", p.MatchID, p.PUUID, err)
		}
		updated++
	}

	verb := "updated"
	if backfillDryRun {
		verb = "would update"
	}
	fmt.Printf("Checked %d unranked rows: %s %d.\n", len(missing), verb, updated)
	return nil
}
