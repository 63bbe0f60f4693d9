package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

// UpsertBenchmarks writes all benchmark rows in one transaction, replacing
// any existing row with the same identity key.
func (db *DB) UpsertBenchmarks(benchmarks []model.Benchmark) error {
	if len(benchmarks) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO benchmarks(
			region, queue_id, tier, division, role, champion_id, opponent_champion_id,
			sample_size,
			cs_mean, cs_p50, cs_p75,
			damage_mean, damage_p50, damage_p75,
			vision_mean, vision_p50, vision_p75,
			gold_mean, gold_p50, gold_p75,
			kp_mean, kp_p50, kp_p75,
			deaths_mean, deaths_p50, deaths_p75,
			updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range benchmarks {
		_, err = stmt.Exec(
			b.Region, b.QueueID, b.Tier, b.Division, string(b.Role),
			b.ChampionID, b.OpponentChampionID,
			b.SampleSize,
			b.CSPerMin.Mean, b.CSPerMin.P50, b.CSPerMin.P75,
			b.DamagePerMin.Mean, b.DamagePerMin.P50, b.DamagePerMin.P75,
			b.VisionScore.Mean, b.VisionScore.P50, b.VisionScore.P75,
			b.GoldPerMin.Mean, b.GoldPerMin.P50, b.GoldPerMin.P75,
			b.KillParticipation.Mean, b.KillParticipation.P50, b.KillParticipation.P75,
			b.Deaths.Mean, b.Deaths.P50, b.Deaths.P75,
			b.UpdatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("upsert benchmark %s/%s/%s/%s: %w", b.Region, b.Tier, b.Division, b.Role, err)
		}
	}
	return tx.Commit()
}

const benchmarkColumns = `
	region, queue_id, tier, division, role, champion_id, opponent_champion_id,
	sample_size,
	cs_mean, cs_p50, cs_p75,
	damage_mean, damage_p50, damage_p75,
	vision_mean, vision_p50, vision_p75,
	gold_mean, gold_p50, gold_p75,
	kp_mean, kp_p50, kp_p75,
	deaths_mean, deaths_p50, deaths_p75,
	updated_at`

// GetBenchmark fetches one benchmark row by full identity key, or nil when
// absent. Role-level rows use zero champion ids.
func (db *DB) GetBenchmark(region string, queueID int, tier, division string, role model.Role, championID, opponentChampionID int) (*model.Benchmark, error) {
	row := db.conn.QueryRow(`
		SELECT `+benchmarkColumns+`
		FROM benchmarks
		WHERE region = ? AND queue_id = ? AND tier = ? AND division = ? AND role = ?
		  AND champion_id = ? AND opponent_champion_id = ?`,
		region, queueID, tier, division, string(role), championID, opponentChampionID)

	b, err := scanBenchmark(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBenchmarks returns role-level benchmark rows for display, optionally
// filtered by region and tier, in deterministic order.
func (db *DB) ListBenchmarks(region, tier string) ([]model.Benchmark, error) {
	query := `
		SELECT ` + benchmarkColumns + `
		FROM benchmarks
		WHERE champion_id = 0 AND opponent_champion_id = 0`
	args := []interface{}{}
	if region != "" {
		query += ` AND region = ?`
		args = append(args, region)
	}
	if tier != "" {
		query += ` AND tier = ?`
		args = append(args, tier)
	}
	query += ` ORDER BY region, queue_id, tier, division, role`
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Benchmark
	for rows.Next() {
		b, err := scanBenchmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBenchmark(row rowScanner) (*model.Benchmark, error) {
	var b model.Benchmark
	var role, updated string
	err := row.Scan(
		&b.Region, &b.QueueID, &b.Tier, &b.Division, &role,
		&b.ChampionID, &b.OpponentChampionID,
		&b.SampleSize,
		&b.CSPerMin.Mean, &b.CSPerMin.P50, &b.CSPerMin.P75,
		&b.DamagePerMin.Mean, &b.DamagePerMin.P50, &b.DamagePerMin.P75,
		&b.VisionScore.Mean, &b.VisionScore.P50, &b.VisionScore.P75,
		&b.GoldPerMin.Mean, &b.GoldPerMin.P50, &b.GoldPerMin.P75,
		&b.KillParticipation.Mean, &b.KillParticipation.P50, &b.KillParticipation.P75,
		&b.Deaths.Mean, &b.Deaths.P50, &b.Deaths.P75,
		&updated,
	)
	if err != nil {
		return nil, err
	}
	b.Role = model.Role(role)
	b.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return &b, nil
}

// Overview holds the high-level counts shown by the summary command.
type Overview struct {
	SampledPlayers    int
	SampleMatches     int
	Participants      int
	RankedRegions     int
	RoleBenchmarks    int
	MatchupBenchmarks int
}

// GetOverview returns store-wide counts.
func (db *DB) GetOverview() (*Overview, error) {
	var ov Overview
	queries := []struct {
		sql  string
		dest *int
	}{
		{`SELECT COUNT(1) FROM sampled_players`, &ov.SampledPlayers},
		{`SELECT COUNT(1) FROM sample_matches`, &ov.SampleMatches},
		{`SELECT COUNT(1) FROM sample_participants`, &ov.Participants},
		{`SELECT COUNT(DISTINCT region) FROM sampled_players`, &ov.RankedRegions},
		{`SELECT COUNT(1) FROM benchmarks WHERE champion_id = 0`, &ov.RoleBenchmarks},
		{`SELECT COUNT(1) FROM benchmarks WHERE champion_id != 0`, &ov.MatchupBenchmarks},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}
	return &ov, nil
}

// StratumCount is the sampled-player count for one (tier, division) cell.
type StratumCount struct {
	Tier     string
	Division string
	Players  int
}

// GetStratumCounts returns sampled-player counts grouped by stratum.
func (db *DB) GetStratumCounts(region string) ([]StratumCount, error) {
	query := `SELECT tier, division, COUNT(1) FROM sampled_players`
	args := []interface{}{}
	if region != "" {
		query += ` WHERE region = ?`
		args = append(args, region)
	}
	query += ` GROUP BY tier, division`
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StratumCount
	for rows.Next() {
		var sc StratumCount
		if err := rows.Scan(&sc.Tier, &sc.Division, &sc.Players); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
