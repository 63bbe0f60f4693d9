package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

func TestStrataPlan(t *testing.T) {
	strata := Strata()
	// 7 divided tiers x 4 divisions + 3 apex tiers.
	if len(strata) != 31 {
		t.Fatalf("got %d strata, want 31", len(strata))
	}
	if strata[0] != (Stratum{Tier: "IRON", Division: "IV"}) {
		t.Errorf("first stratum = %v, want IRON IV", strata[0])
	}
	if strata[1] != (Stratum{Tier: "IRON", Division: "III"}) {
		t.Errorf("second stratum = %v, divisions must ascend from IV", strata[1])
	}
	if strata[27] != (Stratum{Tier: "DIAMOND", Division: "I"}) {
		t.Errorf("stratum 27 = %v, want DIAMOND I", strata[27])
	}
	if strata[28].Tier != "MASTER" || strata[28].Division != model.ApexDivision {
		t.Errorf("stratum 28 = %v, want MASTER with the placeholder division", strata[28])
	}
	if strata[30].Tier != "CHALLENGER" {
		t.Errorf("last stratum = %v, want CHALLENGER", strata[30])
	}
}

func TestResumeIndex(t *testing.T) {
	strata := Strata()
	div := "II"

	if got := resumeIndex(nil, strata); got != 0 {
		t.Errorf("nil checkpoint resumes at %d, want 0", got)
	}

	// GOLD II done: GOLD is tier index 3, II is the third division, so the
	// next stratum is GOLD I.
	cp := &Checkpoint{Tier: "GOLD", Division: &div}
	got := resumeIndex(cp, strata)
	if strata[got] != (Stratum{Tier: "GOLD", Division: "I"}) {
		t.Errorf("resume after GOLD II lands on %v, want GOLD I", strata[got])
	}

	// A checkpoint naming no known stratum restarts from the bottom.
	bogus := "V"
	if got := resumeIndex(&Checkpoint{Tier: "GOLD", Division: &bogus}, strata); got != 0 {
		t.Errorf("unmatched checkpoint resumes at %d, want 0", got)
	}

	// Final stratum done: nothing left.
	if got := resumeIndex(&Checkpoint{Tier: "CHALLENGER"}, strata); got != len(strata) {
		t.Errorf("resume after CHALLENGER = %d, want %d", got, len(strata))
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	cps, err := NewCheckpoints(t.TempDir())
	if err != nil {
		t.Fatalf("NewCheckpoints: %v", err)
	}

	if got := cps.Load("NA1", 420); got != nil {
		t.Errorf("fresh store returned %+v, want nil", got)
	}

	div := "III"
	if err := cps.Save("NA1", 420, Checkpoint{Tier: "SILVER", Division: &div}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := cps.Load("NA1", 420)
	if got == nil || got.Tier != "SILVER" || got.Division == nil || *got.Division != "III" {
		t.Fatalf("Load = %+v, want SILVER III", got)
	}

	// Apex checkpoints carry a null division.
	if err := cps.Save("NA1", 420, checkpointFor(Stratum{Tier: "MASTER", Division: model.ApexDivision})); err != nil {
		t.Fatalf("Save apex: %v", err)
	}
	got = cps.Load("NA1", 420)
	if got == nil || got.Tier != "MASTER" || got.Division != nil {
		t.Fatalf("apex Load = %+v, want MASTER with nil division", got)
	}

	// Checkpoints are scoped per (region, queue).
	if other := cps.Load("EUW1", 420); other != nil {
		t.Errorf("EUW1 checkpoint = %+v, want nil", other)
	}
	if other := cps.Load("NA1", 440); other != nil {
		t.Errorf("queue 440 checkpoint = %+v, want nil", other)
	}
}

func TestCheckpointSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	cps, err := NewCheckpoints(dir)
	if err != nil {
		t.Fatalf("NewCheckpoints: %v", err)
	}

	// A stale temp file from an interrupted earlier save must not get in
	// the way of the next one.
	stale := filepath.Join(dir, "collect_na1_420.json.tmp")
	if err := os.WriteFile(stale, []byte("{truncat"), 0o644); err != nil {
		t.Fatalf("write stale temp file: %v", err)
	}

	div := "I"
	if err := cps.Save("NA1", 420, Checkpoint{Tier: "GOLD", Division: &div}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := cps.Load("NA1", 420)
	if got == nil || got.Tier != "GOLD" || got.Division == nil || *got.Division != "I" {
		t.Fatalf("Load = %+v, want GOLD I", got)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("temp file left behind after Save: stat err = %v", err)
	}
}

func TestCheckpointCorruptFile(t *testing.T) {
	dir := t.TempDir()
	cps, err := NewCheckpoints(dir)
	if err != nil {
		t.Fatalf("NewCheckpoints: %v", err)
	}

	path := filepath.Join(dir, "collect_na1_420.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	// A broken checkpoint restarts the walk instead of failing it.
	if got := cps.Load("NA1", 420); got != nil {
		t.Errorf("corrupt checkpoint = %+v, want nil", got)
	}
}

func TestCheckpointClear(t *testing.T) {
	cps, err := NewCheckpoints(t.TempDir())
	if err != nil {
		t.Fatalf("NewCheckpoints: %v", err)
	}

	// Clearing a missing checkpoint is fine.
	if err := cps.Clear("NA1", 420); err != nil {
		t.Fatalf("Clear absent: %v", err)
	}

	if err := cps.Save("NA1", 420, Checkpoint{Tier: "IRON"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := cps.Clear("NA1", 420); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := cps.Load("NA1", 420); got != nil {
		t.Errorf("checkpoint survived Clear: %+v", got)
	}
}
