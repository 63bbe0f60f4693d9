package score

import (
	"math"
	"testing"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

func TestRoleWeightsSumToOne(t *testing.T) {
	for role, w := range roleWeights {
		sum := w.CS + w.Deaths + w.Damage + w.Vision + w.KP
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("%s weights sum to %v, want 1.0", role, sum)
		}
	}
}

func TestWeightsForUnknownRole(t *testing.T) {
	if WeightsFor("") != roleWeights[model.RoleMid] {
		t.Error("unknown role should score with the MID weights")
	}
}

func TestGradeThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Grade
	}{
		{1.0, model.GradeS},
		{0.90, model.GradeS},
		{0.89, model.GradeA},
		{0.75, model.GradeA},
		{0.74, model.GradeB},
		{0.55, model.GradeB},
		{0.54, model.GradeC},
		{0.35, model.GradeC},
		{0.34, model.GradeD},
		{0.0, model.GradeD},
	}
	for _, tc := range tests {
		if got := gradeFor(tc.score); got != tc.want {
			t.Errorf("gradeFor(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func midBenchmark() *model.Benchmark {
	return &model.Benchmark{
		Region: "NA1", QueueID: 420, Tier: "GOLD", Division: "II", Role: model.RoleMid,
		SampleSize:        50,
		CSPerMin:          model.StatBenchmark{P50: 6, P75: 8},
		Deaths:            model.StatBenchmark{P50: 3, P75: 6},
		DamagePerMin:      model.StatBenchmark{P50: 500, P75: 700},
		VisionScore:       model.StatBenchmark{P50: 15, P75: 25},
		KillParticipation: model.StatBenchmark{P50: 50, P75: 70},
	}
}

func TestCombinedScoreBenchmarkMode(t *testing.T) {
	kp := 60.0
	metrics := model.Metrics{
		CSPerMin:          7,   // halfway between P50 and P75 -> 0.5
		Deaths:            3,   // at P50 -> 1.0
		DamagePerMin:      700, // at P75 -> 1.0
		VisionScore:       10,  // below P50 -> 0.0
		KillParticipation: &kp, // halfway -> 0.5
	}
	ctx := model.PerformanceContext{Role: model.RoleMid, Benchmark: midBenchmark()}

	got := combinedScore(metrics, ctx)
	want := 0.25*0.5 + 0.22*1.0 + 0.25*1.0 + 0.13*0.0 + 0.15*0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("combinedScore = %v, want %v", got, want)
	}
	if CalculateScore(metrics, ctx) != model.GradeB {
		t.Errorf("grade = %s, want B for score %.2f", CalculateScore(metrics, ctx), got)
	}
}

func TestCalculateScoreTypicalStrongMidGame(t *testing.T) {
	kp := 60.0
	metrics := model.Metrics{
		CSPerMin: 9, Deaths: 2, DamagePerMin: 700, VisionScore: 30, KillParticipation: &kp,
	}
	b := &model.Benchmark{
		Role:              model.RoleMid,
		CSPerMin:          model.StatBenchmark{P50: 6, P75: 9},
		Deaths:            model.StatBenchmark{P50: 5, P75: 8},
		DamagePerMin:      model.StatBenchmark{P50: 500, P75: 800},
		VisionScore:       model.StatBenchmark{P50: 20, P75: 35},
		KillParticipation: model.StatBenchmark{P50: 50, P75: 70},
	}
	ctx := model.PerformanceContext{Role: model.RoleMid, Benchmark: b}

	// cs and deaths normalize to 1, damage and vision to 2/3, kp to 0.5.
	got := combinedScore(metrics, ctx)
	want := 0.25*1 + 0.22*1 + 0.25*(2.0/3.0) + 0.13*(2.0/3.0) + 0.15*0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("combinedScore = %v, want %v", got, want)
	}
	if grade := CalculateScore(metrics, ctx); grade != model.GradeA {
		t.Errorf("grade = %s, want A", grade)
	}
}

func TestCalculateScoreAllStrong(t *testing.T) {
	kp := 90.0
	metrics := model.Metrics{
		CSPerMin: 9, Deaths: 1, DamagePerMin: 900, VisionScore: 30, KillParticipation: &kp,
	}
	ctx := model.PerformanceContext{Role: model.RoleMid, Benchmark: midBenchmark()}
	if got := CalculateScore(metrics, ctx); got != model.GradeS {
		t.Errorf("grade = %s, want S when every stat clears P75", got)
	}
}

func TestCalculateScoreAllWeak(t *testing.T) {
	kp := 10.0
	metrics := model.Metrics{
		CSPerMin: 2, Deaths: 9, DamagePerMin: 100, VisionScore: 5, KillParticipation: &kp,
	}
	ctx := model.PerformanceContext{Role: model.RoleMid, Benchmark: midBenchmark()}
	if got := CalculateScore(metrics, ctx); got != model.GradeD {
		t.Errorf("grade = %s, want D when every stat is below P50 and deaths above P75", got)
	}
}

func TestBenchmarkModeAbsentStatsAreNeutral(t *testing.T) {
	// A benchmark with no percentile data at all scores every component 0.5.
	metrics := model.Metrics{CSPerMin: 7, Deaths: 3, DamagePerMin: 600, VisionScore: 20}
	ctx := model.PerformanceContext{Role: model.RoleMid, Benchmark: &model.Benchmark{}}

	if got := combinedScore(metrics, ctx); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("combinedScore = %v, want 0.5 for an all-absent benchmark", got)
	}
}

func TestNormHigher(t *testing.T) {
	s := model.StatBenchmark{P50: 10, P75: 20}
	tests := []struct {
		v    float64
		want float64
	}{
		{5, 0}, {10, 0}, {15, 0.5}, {20, 1}, {30, 1},
	}
	for _, tc := range tests {
		if got := normHigher(tc.v, s); got != tc.want {
			t.Errorf("normHigher(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
	if got := normHigher(42, model.StatBenchmark{}); got != 0.5 {
		t.Errorf("absent stat = %v, want neutral 0.5", got)
	}
}

func TestNormDeathsMirrored(t *testing.T) {
	s := model.StatBenchmark{P50: 3, P75: 6}
	tests := []struct {
		v    float64
		want float64
	}{
		{0, 1}, {3, 1}, {4.5, 0.5}, {6, 0}, {10, 0},
	}
	for _, tc := range tests {
		if got := normDeaths(tc.v, s); got != tc.want {
			t.Errorf("normDeaths(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestFallbackTierMultiplier(t *testing.T) {
	tests := []struct {
		tier string
		want float64
	}{
		{"IRON", 0.85},
		{"GOLD", 0.925},
		{"CHALLENGER", 1.075},
		{"NOT_A_TIER", 0.85},
	}
	for _, tc := range tests {
		n := fallbackNormalizer{role: model.RoleMid, tier: tc.tier}
		if got := n.tierMultiplier(); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("tierMultiplier(%s) = %v, want %v", tc.tier, got, tc.want)
		}
	}
}

func TestFallbackCapsClamp(t *testing.T) {
	n := fallbackNormalizer{role: model.RoleMid, tier: "IRON"}

	if got := n.cs(100); got != 1 {
		t.Errorf("cs far above cap = %v, want clamped 1", got)
	}
	if got := n.cs(0); got != 0 {
		t.Errorf("cs zero = %v, want 0", got)
	}
	if got := n.kp(50); got != 0.5 {
		t.Errorf("kp 50%% = %v, want 0.5", got)
	}
	if got := n.kp(150); got != 1 {
		t.Errorf("kp above 100%% = %v, want capped 1", got)
	}
}

func TestFallbackDeathsCurve(t *testing.T) {
	n := fallbackNormalizer{role: model.RoleMid, tier: "GOLD"}

	// 30-minute game.
	deathless := model.Metrics{Deaths: 0, GameDuration: 1800}
	if got := n.deaths(deathless); got != 1 {
		t.Errorf("deathless = %v, want 1", got)
	}

	// 12 deaths in 30 minutes is 4 per 10 minutes, the curve floor.
	feeding := model.Metrics{Deaths: 12, GameDuration: 1800}
	if got := n.deaths(feeding); got != 0 {
		t.Errorf("4 deaths/10min = %v, want 0", got)
	}

	// The curve decreases between its endpoints.
	mid := n.deaths(model.Metrics{Deaths: 6, GameDuration: 1800})
	low := n.deaths(model.Metrics{Deaths: 3, GameDuration: 1800})
	if !(low > mid && mid > 0 && low < 1) {
		t.Errorf("curve not decreasing: deaths(3)=%v deaths(6)=%v", low, mid)
	}

	// Zero duration falls back to a one-minute game rather than dividing
	// by zero; any deaths then max out the rate.
	if got := n.deaths(model.Metrics{Deaths: 2, GameDuration: 0}); got != 0 {
		t.Errorf("zero duration = %v, want 0", got)
	}
}

func TestCalculateScoreNeverPanics(t *testing.T) {
	contexts := []model.PerformanceContext{
		{},
		{Role: model.RoleUtility, Tier: "IRON"},
		{Role: "UNKNOWN", Benchmark: &model.Benchmark{}},
		{Role: model.RoleMid, Benchmark: midBenchmark()},
	}
	for _, ctx := range contexts {
		for _, m := range []model.Metrics{{}, {CSPerMin: 12, Deaths: 30, DamagePerMin: 5000, VisionScore: 200}} {
			grade := CalculateScore(m, ctx)
			switch grade {
			case model.GradeS, model.GradeA, model.GradeB, model.GradeC, model.GradeD:
			default:
				t.Errorf("invalid grade %q for %+v / %+v", grade, m, ctx)
			}
		}
	}
}
