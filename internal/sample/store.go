// Package sample extracts per-player, per-match statistics from raw match
// payloads into the flat sample store.
package sample

import (
	"time"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
	"github.com/vinicius-m-santos/elosense-sub000/internal/riot"
	"github.com/vinicius-m-santos/elosense-sub000/internal/storage"
)

// Store persists match snapshots and extracted participant rows.
type Store struct {
	db *storage.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db}
}

// PersistMatchPayload stores the match snapshot (write-once) and extracts a
// participant row for the sampled player. Idempotent: calling it again for
// the same (match, region, player) has no effect, and each call adds at
// most one new participant row, so overlapping sampling passes can keep
// contributing rows to the same match.
//
// Returns true when a new participant row was written. A payload that does
// not contain the sampled player, or whose lane cannot be normalized, is
// skipped without effect.
func (s *Store) PersistMatchPayload(match *riot.Match, payload []byte, region, puuid, tier, division string) (bool, error) {
	exists, err := s.db.MatchExists(match.Metadata.MatchID, region)
	if err != nil {
		return false, err
	}
	if !exists {
		err := s.db.InsertMatch(model.SampleMatch{
			MatchID:      match.Metadata.MatchID,
			Region:       region,
			Payload:      payload,
			GameCreation: match.Info.GameCreation,
			GameDuration: match.Info.GameDuration,
			QueueID:      match.Info.QueueID,
			IngestedAt:   time.Now(),
		})
		if err != nil {
			return false, err
		}
	}

	participant := findParticipant(match, puuid)
	if participant == nil {
		return false, nil
	}

	role := model.NormalizeRole(participant.TeamPosition)
	if role == "" {
		return false, nil
	}

	rowExists, err := s.db.ParticipantExists(match.Metadata.MatchID, region, puuid)
	if err != nil {
		return false, err
	}
	if rowExists {
		return false, nil
	}

	row := ExtractParticipant(match, participant, region, tier, division)
	if err := s.db.InsertParticipant(row); err != nil {
		return false, err
	}
	return true, nil
}

// ExtractParticipant computes the normalized statistics row for one
// participant block.
func ExtractParticipant(match *riot.Match, p *riot.Participant, region, tier, division string) model.SampleParticipant {
	minutes := float64(match.Info.GameDuration) / 60.0
	if minutes <= 0 {
		// Guard against zero-duration payloads (remakes, corrupt records).
		minutes = 1
	}

	row := model.SampleParticipant{
		MatchID:      match.Metadata.MatchID,
		Region:       region,
		PUUID:        p.PUUID,
		QueueID:      match.Info.QueueID,
		Tier:         tier,
		Division:     division,
		Role:         model.NormalizeRole(p.TeamPosition),
		ChampionID:   p.ChampionID,
		Kills:        p.Kills,
		Deaths:       p.Deaths,
		Assists:      p.Assists,
		CSPerMin:     float64(p.TotalMinionsKilled+p.NeutralMinionsKilled) / minutes,
		DamagePerMin: float64(p.TotalDamageDealtToChampions) / minutes,
		VisionScore:  float64(p.VisionScore),
		Win:          p.Win,
	}

	gold := float64(p.GoldEarned) / minutes
	row.GoldPerMin = &gold

	if teamKills := teamKillTotal(match, p.TeamID); teamKills > 0 {
		kp := float64(p.Kills+p.Assists) / float64(teamKills) * 100
		row.KillParticipation = &kp
	}

	if opp := opponentChampion(match, p); opp != 0 {
		row.OpponentChampionID = opp
	}
	return row
}

func findParticipant(match *riot.Match, puuid string) *riot.Participant {
	for i := range match.Info.Participants {
		if match.Info.Participants[i].PUUID == puuid {
			return &match.Info.Participants[i]
		}
	}
	return nil
}

func teamKillTotal(match *riot.Match, teamID int) int {
	total := 0
	for _, p := range match.Info.Participants {
		if p.TeamID == teamID {
			total += p.Kills
		}
	}
	return total
}

// opponentChampion finds the champion played in the same normalized role on
// the opposing team, or 0 when no such participant exists.
func opponentChampion(match *riot.Match, p *riot.Participant) int {
	role := model.NormalizeRole(p.TeamPosition)
	if role == "" {
		return 0
	}
	for _, other := range match.Info.Participants {
		if other.TeamID == p.TeamID {
			continue
		}
		if model.NormalizeRole(other.TeamPosition) == role {
			return other.ChampionID
		}
	}
	return 0
}
