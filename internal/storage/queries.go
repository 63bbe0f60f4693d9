package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

const timeLayout = time.RFC3339

// UpsertSampledPlayer overwrites the sampled-player row for (puuid, region).
func (db *DB) UpsertSampledPlayer(p model.SampledPlayer) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO sampled_players(puuid, region, tier, division, queue_type, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.PUUID, p.Region, p.Tier, p.Division, p.QueueType, p.UpdatedAt.UTC().Format(timeLayout),
	)
	return err
}

// ListSampledPlayers returns all sampled players, optionally filtered by region.
func (db *DB) ListSampledPlayers(region string) ([]model.SampledPlayer, error) {
	query := `SELECT puuid, region, tier, division, queue_type, updated_at FROM sampled_players`
	args := []interface{}{}
	if region != "" {
		query += ` WHERE region = ?`
		args = append(args, region)
	}
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SampledPlayer
	for rows.Next() {
		var p model.SampledPlayer
		var updated string
		if err := rows.Scan(&p.PUUID, &p.Region, &p.Tier, &p.Division, &p.QueueType, &updated); err != nil {
			return nil, err
		}
		p.UpdatedAt, _ = time.Parse(timeLayout, updated)
		out = append(out, p)
	}
	return out, rows.Err()
}

// MatchExists returns true if a match with the given key is already stored.
func (db *DB) MatchExists(matchID, region string) (bool, error) {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(1) FROM sample_matches WHERE match_id = ? AND region = ?`,
		matchID, region).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores a match snapshot. Write-once: an existing row for the
// same (match_id, region) is left untouched.
func (db *DB) InsertMatch(m model.SampleMatch) error {
	_, err := db.conn.Exec(`
		INSERT OR IGNORE INTO sample_matches(match_id, region, payload, game_creation, game_duration, queue_id, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Region, string(m.Payload), m.GameCreation, m.GameDuration,
		m.QueueID, m.IngestedAt.UTC().Format(timeLayout),
	)
	return err
}

// ListMatches returns stored matches ordered by ingest time, optionally
// filtered by region and capped at limit (0 = no cap).
func (db *DB) ListMatches(region string, limit int) ([]model.SampleMatch, error) {
	query := `SELECT match_id, region, payload, game_creation, game_duration, queue_id, ingested_at FROM sample_matches`
	args := []interface{}{}
	if region != "" {
		query += ` WHERE region = ?`
		args = append(args, region)
	}
	query += ` ORDER BY ingested_at`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SampleMatch
	for rows.Next() {
		var m model.SampleMatch
		var payload, ingested string
		if err := rows.Scan(&m.MatchID, &m.Region, &payload, &m.GameCreation,
			&m.GameDuration, &m.QueueID, &ingested); err != nil {
			return nil, err
		}
		m.Payload = []byte(payload)
		m.IngestedAt, _ = time.Parse(timeLayout, ingested)
		out = append(out, m)
	}
	return out, rows.Err()
}

// ParticipantExists returns true if a participant row exists for the key.
func (db *DB) ParticipantExists(matchID, region, puuid string) (bool, error) {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(1) FROM sample_participants WHERE match_id = ? AND region = ? AND puuid = ?`,
		matchID, region, puuid).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertParticipant stores one participant row. Write-once per key.
func (db *DB) InsertParticipant(p model.SampleParticipant) error {
	_, err := db.conn.Exec(`
		INSERT OR IGNORE INTO sample_participants(
			match_id, region, puuid, queue_id, tier, division, role,
			champion_id, opponent_champion_id,
			kills, deaths, assists,
			cs_per_min, damage_per_min, vision_score, gold_per_min, kill_participation,
			win
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.MatchID, p.Region, p.PUUID, p.QueueID,
		nullStr(p.Tier), nullStr(p.Division), string(p.Role),
		p.ChampionID, nullInt(p.OpponentChampionID),
		p.Kills, p.Deaths, p.Assists,
		p.CSPerMin, p.DamagePerMin, p.VisionScore,
		nullFloatPtr(p.GoldPerMin), nullFloatPtr(p.KillParticipation),
		boolInt(p.Win),
	)
	if err != nil {
		return fmt.Errorf("insert participant %s/%s: %w", p.MatchID, p.PUUID, err)
	}
	return nil
}

// ListQualifyingParticipants returns the participant rows that feed
// aggregation: ranked queues only, tier and division both known.
// An empty region means all regions.
func (db *DB) ListQualifyingParticipants(region string) ([]model.SampleParticipant, error) {
	query := `
		SELECT match_id, region, puuid, queue_id, tier, division, role,
		       champion_id, opponent_champion_id,
		       kills, deaths, assists,
		       cs_per_min, damage_per_min, vision_score, gold_per_min, kill_participation,
		       win
		FROM sample_participants
		WHERE queue_id IN (` + queuePlaceholders() + `)
		  AND tier IS NOT NULL AND tier != ''
		  AND division IS NOT NULL AND division != ''`
	args := make([]interface{}, 0, len(model.RankedQueueIDs)+1)
	for _, id := range model.RankedQueueIDs {
		args = append(args, id)
	}
	if region != "" {
		query += ` AND region = ?`
		args = append(args, region)
	}
	query += ` ORDER BY match_id, puuid`
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SampleParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func queuePlaceholders() string {
	return strings.TrimSuffix(strings.Repeat("?, ", len(model.RankedQueueIDs)), ", ")
}

// ListParticipantsMissingRank returns participant keys with no tier or
// division, optionally filtered by region and capped at limit.
func (db *DB) ListParticipantsMissingRank(region string, limit int) ([]model.SampleParticipant, error) {
	query := `
		SELECT match_id, region, puuid, queue_id, tier, division, role,
		       champion_id, opponent_champion_id,
		       kills, deaths, assists,
		       cs_per_min, damage_per_min, vision_score, gold_per_min, kill_participation,
		       win
		FROM sample_participants
		WHERE (tier IS NULL OR tier = '' OR division IS NULL OR division = '')`
	args := []interface{}{}
	if region != "" {
		query += ` AND region = ?`
		args = append(args, region)
	}
	query += ` ORDER BY match_id, puuid`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SampleParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateParticipantRank backfills tier/division on one participant row.
func (db *DB) UpdateParticipantRank(matchID, region, puuid, tier, division string) error {
	_, err := db.conn.Exec(`
		UPDATE sample_participants SET tier = ?, division = ?
		WHERE match_id = ? AND region = ? AND puuid = ?`,
		tier, division, matchID, region, puuid)
	return err
}

func scanParticipant(rows *sql.Rows) (model.SampleParticipant, error) {
	var p model.SampleParticipant
	var tier, division sql.NullString
	var oppChampion sql.NullInt64
	var gold, kp sql.NullFloat64
	var role string
	var win int
	err := rows.Scan(
		&p.MatchID, &p.Region, &p.PUUID, &p.QueueID, &tier, &division, &role,
		&p.ChampionID, &oppChampion,
		&p.Kills, &p.Deaths, &p.Assists,
		&p.CSPerMin, &p.DamagePerMin, &p.VisionScore, &gold, &kp,
		&win,
	)
	if err != nil {
		return p, err
	}
	p.Tier = tier.String
	p.Division = division.String
	p.Role = model.Role(role)
	if oppChampion.Valid {
		p.OpponentChampionID = int(oppChampion.Int64)
	}
	if gold.Valid {
		v := gold.Float64
		p.GoldPerMin = &v
	}
	if kp.Valid {
		v := kp.Float64
		p.KillParticipation = &v
	}
	p.Win = win != 0
	return p, nil
}

func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

func nullFloatPtr(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
