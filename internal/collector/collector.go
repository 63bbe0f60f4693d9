package collector

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
	"github.com/vinicius-m-santos/elosense-sub000/internal/riot"
	"github.com/vinicius-m-santos/elosense-sub000/internal/sample"
	"github.com/vinicius-m-santos/elosense-sub000/internal/storage"
)

// Config controls one collection run.
type Config struct {
	Region            string
	QueueID           int
	PlayersPerStratum int
	MatchesPerPlayer  int
	Seed              int64 // 0 takes ladder entries in API order
	NoResume          bool
}

// RunStats summarizes a collection run. Skips and errors never abort the
// run; they are counted and reported at the end.
type RunStats struct {
	StrataProcessed int
	PlayersSampled  int
	MatchesStored   int
	Skipped         int
	Errors          int
}

// Collector drives the stratified ladder walk.
type Collector struct {
	client      *riot.Client
	db          *storage.DB
	store       *sample.Store
	checkpoints *Checkpoints
}

// New returns a Collector wired to the given API client and database.
func New(client *riot.Client, db *storage.DB, checkpoints *Checkpoints) *Collector {
	return &Collector{
		client:      client,
		db:          db,
		store:       sample.NewStore(db),
		checkpoints: checkpoints,
	}
}

// Run walks every remaining stratum for (region, queue), sampling players
// and storing their matches. The checkpoint advances after each completed
// stratum so an interrupted run resumes at the next one.
func (c *Collector) Run(ctx context.Context, cfg Config) (RunStats, error) {
	var stats RunStats
	strata := Strata()

	start := 0
	if cfg.NoResume {
		if err := c.checkpoints.Clear(cfg.Region, cfg.QueueID); err != nil {
			return stats, err
		}
	} else if cp := c.checkpoints.Load(cfg.Region, cfg.QueueID); cp != nil {
		start = resumeIndex(cp, strata)
	}
	if start >= len(strata) {
		fmt.Printf("All %d strata already collected for %s queue %d.\n", len(strata), cfg.Region, cfg.QueueID)
		return stats, nil
	}

	// In-run match dedup ahead of the database existence check. Sized for
	// the worst case of every sampled match being unique.
	expected := uint(len(strata) * cfg.PlayersPerStratum * cfg.MatchesPerPlayer)
	if expected < 1000 {
		expected = 1000
	}
	seen := bloom.NewWithEstimates(expected, 0.01)

	queueType := model.QueueTypeForID(cfg.QueueID)
	for i := start; i < len(strata); i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stratum := strata[i]
		fmt.Printf("Collecting %s (%d/%d)...\n", stratum, i+1, len(strata))

		entries, err := c.ladderEntries(ctx, cfg, queueType, stratum)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [error] %s: ladder fetch: %v\n", stratum, err)
			stats.Errors++
			continue
		}
		picked := samplePlayers(entries, cfg.PlayersPerStratum, cfg.Seed, i)

		for _, entry := range picked {
			c.collectPlayer(ctx, cfg, stratum, entry, seen, &stats)
		}

		if err := c.checkpoints.Save(cfg.Region, cfg.QueueID, checkpointFor(stratum)); err != nil {
			return stats, err
		}
		stats.StrataProcessed++
	}
	return stats, nil
}

// ladderEntries fetches the ladder slice for a stratum. Apex tiers come
// from their dedicated league endpoints, the rest from paginated entries.
func (c *Collector) ladderEntries(ctx context.Context, cfg Config, queueType string, s Stratum) ([]riot.LeagueEntry, error) {
	if s.IsApex() {
		list, err := c.client.ApexLeague(ctx, cfg.Region, queueType, s.Tier)
		if err != nil {
			return nil, err
		}
		return list.Entries, nil
	}
	return c.client.LeagueEntries(ctx, cfg.Region, queueType, s.Tier, s.Division)
}

// collectPlayer resolves one ladder entry to a PUUID, records the player,
// and persists their recent matches. Any failure skips the player or match
// without aborting the stratum.
func (c *Collector) collectPlayer(ctx context.Context, cfg Config, stratum Stratum, entry riot.LeagueEntry, seen *bloom.BloomFilter, stats *RunStats) {
	puuid := entry.PUUID
	if puuid == "" {
		summoner, err := c.client.SummonerByID(ctx, cfg.Region, entry.SummonerID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [skip] summoner %s: %v\n", entry.SummonerID, err)
			stats.Skipped++
			return
		}
		puuid = summoner.PUUID
	}
	if puuid == "" {
		stats.Skipped++
		return
	}

	err := c.db.UpsertSampledPlayer(model.SampledPlayer{
		PUUID:     puuid,
		Region:    cfg.Region,
		Tier:      stratum.Tier,
		Division:  stratum.Division,
		QueueType: model.QueueTypeForID(cfg.QueueID),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "  [error] store player %s: %v\n", puuid, err)
		stats.Errors++
		return
	}
	stats.PlayersSampled++

	ids, err := c.client.MatchIDs(ctx, cfg.Region, puuid, cfg.QueueID, cfg.MatchesPerPlayer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  [skip] matches for %s: %v\n", puuid, err)
		stats.Skipped++
		return
	}

	for _, matchID := range ids {
		if seen.TestOrAdd([]byte(matchID)) {
			continue
		}
		exists, err := c.db.MatchExists(matchID, cfg.Region)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [error] match %s: %v\n", matchID, err)
			stats.Errors++
			continue
		}
		if exists {
			// Fetched on an earlier run; backfill covers its participant rows.
			continue
		}
		match, payload, err := c.client.MatchByID(ctx, cfg.Region, matchID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [error] match %s: %v\n", matchID, err)
			stats.Errors++
			continue
		}
		stored, err := c.store.PersistMatchPayload(match, payload, cfg.Region, puuid, stratum.Tier, stratum.Division)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [error] persist %s: %v\n", matchID, err)
			stats.Errors++
			continue
		}
		if stored {
			stats.MatchesStored++
		}
	}
}

// samplePlayers picks up to k entries. With a non-zero seed a partial
// Fisher-Yates shuffle draws a reproducible random subset per stratum;
// with seed zero the first k entries are taken as returned by the API.
func samplePlayers(entries []riot.LeagueEntry, k int, seed int64, stratumIndex int) []riot.LeagueEntry {
	if k <= 0 || len(entries) == 0 {
		return nil
	}
	if k >= len(entries) {
		k = len(entries)
	}
	if seed == 0 {
		return entries[:k]
	}

	picked := make([]riot.LeagueEntry, len(entries))
	copy(picked, entries)
	rng := rand.New(rand.NewSource(seed + int64(stratumIndex)))
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:k]
}
