// Package collector walks the ranked ladder stratum by stratum, sampling
// players and persisting their recent matches.
package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

// Stratum is one (tier, division) cell of the sampling plan. Apex tiers
// carry the reserved placeholder division.
type Stratum struct {
	Tier     string
	Division string
}

// IsApex reports whether the stratum is a divisionless apex tier.
func (s Stratum) IsApex() bool {
	return model.IsApexTier(s.Tier)
}

func (s Stratum) String() string {
	if s.IsApex() {
		return s.Tier
	}
	return s.Tier + " " + s.Division
}

// Strata returns the full sampling plan in ascending skill order:
// four divisions per non-apex tier, lowest first, then the apex tiers.
func Strata() []Stratum {
	var out []Stratum
	for _, tier := range model.Tiers {
		if model.IsApexTier(tier) {
			out = append(out, Stratum{Tier: tier, Division: model.ApexDivision})
			continue
		}
		for _, div := range model.Divisions {
			out = append(out, Stratum{Tier: tier, Division: div})
		}
	}
	return out
}

// Checkpoint records the last fully processed stratum of a run.
// Division is null for apex tiers.
type Checkpoint struct {
	Tier     string  `json:"tier"`
	Division *string `json:"division"`
}

func (c Checkpoint) stratum() Stratum {
	s := Stratum{Tier: c.Tier, Division: model.ApexDivision}
	if c.Division != nil {
		s.Division = *c.Division
	}
	return s
}

func checkpointFor(s Stratum) Checkpoint {
	c := Checkpoint{Tier: s.Tier}
	if !s.IsApex() {
		div := s.Division
		c.Division = &div
	}
	return c
}

// Checkpoints persists one checkpoint file per (region, queue) under dir.
type Checkpoints struct {
	dir string
}

// NewCheckpoints returns a checkpoint store rooted at dir, creating it if
// needed.
func NewCheckpoints(dir string) (*Checkpoints, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint dir: %w", err)
	}
	return &Checkpoints{dir: dir}, nil
}

func (c *Checkpoints) path(region string, queueID int) string {
	name := fmt.Sprintf("collect_%s_%d.json", strings.ToLower(region), queueID)
	return filepath.Join(c.dir, name)
}

// Load returns the stored checkpoint, or nil when none exists or the file
// cannot be parsed. A broken checkpoint restarts the run from the bottom
// rather than failing it.
func (c *Checkpoints) Load(region string, queueID int) *Checkpoint {
	data, err := os.ReadFile(c.path(region, queueID))
	if err != nil {
		return nil
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil
	}
	if cp.Tier == "" {
		return nil
	}
	return &cp
}

// Save writes the checkpoint for (region, queue), replacing any previous
// one. The write goes through a temp file and a rename so a crash mid-write
// never leaves a truncated checkpoint behind.
func (c *Checkpoints) Save(region string, queueID int, cp Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	path := c.path(region, queueID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// Clear removes the checkpoint for (region, queue) if present.
func (c *Checkpoints) Clear(region string, queueID int) error {
	err := os.Remove(c.path(region, queueID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resumeIndex maps a checkpoint onto the index of the first stratum still
// to process. A nil or unmatched checkpoint starts from the bottom; a
// checkpoint at the final stratum yields len(strata), leaving nothing to do.
func resumeIndex(cp *Checkpoint, strata []Stratum) int {
	if cp == nil {
		return 0
	}
	done := cp.stratum()
	for i, s := range strata {
		if s == done {
			return i + 1
		}
	}
	return 0
}
