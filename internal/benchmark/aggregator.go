// Package benchmark computes and serves percentile reference distributions
// for ranked performances.
package benchmark

import (
	"sort"
	"time"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
	"github.com/vinicius-m-santos/elosense-sub000/internal/storage"
)

// DefaultMinMatchupSample is the minimum group size for a matchup-level row.
const DefaultMinMatchupSample = 10

// Aggregator recomputes the benchmark table from current participant data.
// It is a pure function of its inputs: re-running it on unchanged data
// reproduces identical rows.
type Aggregator struct {
	db               *storage.DB
	minMatchupSample int
}

// NewAggregator returns an aggregator writing to db. minMatchupSample <= 0
// selects the default.
func NewAggregator(db *storage.DB, minMatchupSample int) *Aggregator {
	if minMatchupSample <= 0 {
		minMatchupSample = DefaultMinMatchupSample
	}
	return &Aggregator{db: db, minMatchupSample: minMatchupSample}
}

// RunStats summarizes one aggregation run.
type RunStats struct {
	ParticipantsRead int
	RoleRows         int
	MatchupRows      int
}

type groupKey struct {
	region   string
	queueID  int
	tier     string
	division string
	role     model.Role
	champion int
	opponent int
}

// Run executes both aggregation passes, optionally scoped to one region,
// and upserts every emitted row in a single transaction.
func (a *Aggregator) Run(region string) (*RunStats, error) {
	participants, err := a.db.ListQualifyingParticipants(region)
	if err != nil {
		return nil, err
	}

	roleGroups := make(map[groupKey][]model.SampleParticipant)
	matchupGroups := make(map[groupKey][]model.SampleParticipant)
	for _, p := range participants {
		key := groupKey{
			region: p.Region, queueID: p.QueueID,
			tier: p.Tier, division: p.Division, role: p.Role,
		}
		roleGroups[key] = append(roleGroups[key], p)

		if p.ChampionID != 0 && p.OpponentChampionID != 0 {
			mKey := key
			mKey.champion = p.ChampionID
			mKey.opponent = p.OpponentChampionID
			matchupGroups[mKey] = append(matchupGroups[mKey], p)
		}
	}

	now := time.Now()
	var rows []model.Benchmark
	stats := &RunStats{ParticipantsRead: len(participants)}

	// Role-level rows are always emitted, whatever the group size.
	for _, key := range sortedKeys(roleGroups) {
		rows = append(rows, buildBenchmark(key, roleGroups[key], now))
		stats.RoleRows++
	}
	// Matchup-level rows only above the minimum sample size.
	for _, key := range sortedKeys(matchupGroups) {
		group := matchupGroups[key]
		if len(group) < a.minMatchupSample {
			continue
		}
		rows = append(rows, buildBenchmark(key, group, now))
		stats.MatchupRows++
	}

	if err := a.db.UpsertBenchmarks(rows); err != nil {
		return nil, err
	}
	return stats, nil
}

func sortedKeys(groups map[groupKey][]model.SampleParticipant) []groupKey {
	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		switch {
		case a.region != b.region:
			return a.region < b.region
		case a.queueID != b.queueID:
			return a.queueID < b.queueID
		case a.tier != b.tier:
			return a.tier < b.tier
		case a.division != b.division:
			return a.division < b.division
		case a.role != b.role:
			return a.role < b.role
		case a.champion != b.champion:
			return a.champion < b.champion
		default:
			return a.opponent < b.opponent
		}
	})
	return keys
}

func buildBenchmark(key groupKey, group []model.SampleParticipant, now time.Time) model.Benchmark {
	var cs, damage, vision, gold, kp, deaths []float64
	for _, p := range group {
		cs = append(cs, p.CSPerMin)
		damage = append(damage, p.DamagePerMin)
		vision = append(vision, p.VisionScore)
		deaths = append(deaths, float64(p.Deaths))
		if p.GoldPerMin != nil {
			gold = append(gold, *p.GoldPerMin)
		}
		if p.KillParticipation != nil {
			kp = append(kp, *p.KillParticipation)
		}
	}
	return model.Benchmark{
		Region:             key.region,
		QueueID:            key.queueID,
		Tier:               key.tier,
		Division:           key.division,
		Role:               key.role,
		ChampionID:         key.champion,
		OpponentChampionID: key.opponent,
		SampleSize:         len(group),
		CSPerMin:           statTriple(cs),
		DamagePerMin:       statTriple(damage),
		VisionScore:        statTriple(vision),
		GoldPerMin:         statTriple(gold),
		KillParticipation:  statTriple(kp),
		Deaths:             statTriple(deaths),
		UpdatedAt:          now,
	}
}

func statTriple(values []float64) model.StatBenchmark {
	if len(values) == 0 {
		return model.StatBenchmark{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return model.StatBenchmark{
		Mean: mean(sorted),
		P50:  Percentile(sorted, 0.50),
		P75:  Percentile(sorted, 0.75),
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Percentile computes the continuous (linear-interpolation) percentile of a
// pre-sorted ascending slice: rank h = (n-1)·p, interpolated between the
// neighboring order statistics.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(h)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
