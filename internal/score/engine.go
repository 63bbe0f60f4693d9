// Package score turns raw match metrics into a letter grade and
// human-readable benchmark comparisons.
package score

import (
	"math"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

// Weights is the per-role contribution of each scored statistic.
// Every vector sums to 1.0.
type Weights struct {
	CS     float64
	Deaths float64
	Damage float64
	Vision float64
	KP     float64
}

// Hand-tuned role weight vectors. Preserve values exactly; recalibration
// needs product review.
var roleWeights = map[model.Role]Weights{
	model.RoleTop:     {CS: 0.22, Deaths: 0.26, Damage: 0.22, Vision: 0.15, KP: 0.15},
	model.RoleJungle:  {CS: 0.15, Deaths: 0.25, Damage: 0.20, Vision: 0.22, KP: 0.18},
	model.RoleMid:     {CS: 0.25, Deaths: 0.22, Damage: 0.25, Vision: 0.13, KP: 0.15},
	model.RoleBottom:  {CS: 0.25, Deaths: 0.22, Damage: 0.25, Vision: 0.13, KP: 0.15},
	model.RoleUtility: {CS: 0.10, Deaths: 0.22, Damage: 0.13, Vision: 0.30, KP: 0.25},
}

// WeightsFor returns the weight vector for a role; unrecognized roles
// score with the MID vector.
func WeightsFor(role model.Role) Weights {
	if w, ok := roleWeights[role]; ok {
		return w
	}
	return roleWeights[model.RoleMid]
}

// Static per-role caps used when no benchmark exists. Vision caps are on
// the raw score, the others on per-minute rates.
type fallbackCaps struct {
	cs     float64
	damage float64
	vision float64
}

var roleCaps = map[model.Role]fallbackCaps{
	model.RoleTop:     {cs: 8.0, damage: 800, vision: 25},
	model.RoleJungle:  {cs: 7.0, damage: 700, vision: 35},
	model.RoleMid:     {cs: 8.5, damage: 1000, vision: 25},
	model.RoleBottom:  {cs: 9.0, damage: 1000, vision: 25},
	model.RoleUtility: {cs: 3.0, damage: 500, vision: 60},
}

func capsFor(role model.Role) fallbackCaps {
	if c, ok := roleCaps[role]; ok {
		return c
	}
	return roleCaps[model.RoleMid]
}

// CalculateScore grades a performance. Benchmark mode normalizes each
// statistic against the group percentiles; without a benchmark, static
// tier-scaled caps are used instead. Never fails for finite input.
func CalculateScore(metrics model.Metrics, ctx model.PerformanceContext) model.Grade {
	return gradeFor(combinedScore(metrics, ctx))
}

// combinedScore is the weighted [0,1] quality score behind the grade.
func combinedScore(metrics model.Metrics, ctx model.PerformanceContext) float64 {
	var n normalizer
	if ctx.Benchmark != nil {
		n = benchmarkNormalizer{b: ctx.Benchmark}
	} else {
		n = fallbackNormalizer{role: ctx.Role, tier: ctx.Tier}
	}

	w := WeightsFor(ctx.Role)
	kp := 0.0
	if metrics.KillParticipation != nil {
		kp = *metrics.KillParticipation
	}

	sum := w.CS*n.cs(metrics.CSPerMin) +
		w.Deaths*n.deaths(metrics) +
		w.Damage*n.damage(metrics.DamagePerMin) +
		w.Vision*n.vision(metrics.VisionScore) +
		w.KP*n.kp(kp)
	weightTotal := w.CS + w.Deaths + w.Damage + w.Vision + w.KP
	if weightTotal <= 0 {
		return 0
	}
	return sum / weightTotal
}

// Grade thresholds on the combined score.
func gradeFor(score float64) model.Grade {
	switch {
	case score >= 0.90:
		return model.GradeS
	case score >= 0.75:
		return model.GradeA
	case score >= 0.55:
		return model.GradeB
	case score >= 0.35:
		return model.GradeC
	default:
		return model.GradeD
	}
}

// normalizer maps each raw statistic to [0,1]. Two implementations: one
// against benchmark percentiles, one against static caps.
type normalizer interface {
	cs(v float64) float64
	deaths(m model.Metrics) float64
	damage(v float64) float64
	vision(v float64) float64
	kp(v float64) float64
}

type benchmarkNormalizer struct {
	b *model.Benchmark
}

func (n benchmarkNormalizer) cs(v float64) float64     { return normHigher(v, n.b.CSPerMin) }
func (n benchmarkNormalizer) damage(v float64) float64 { return normHigher(v, n.b.DamagePerMin) }
func (n benchmarkNormalizer) vision(v float64) float64 { return normHigher(v, n.b.VisionScore) }
func (n benchmarkNormalizer) kp(v float64) float64     { return normHigher(v, n.b.KillParticipation) }

func (n benchmarkNormalizer) deaths(m model.Metrics) float64 {
	return normDeaths(float64(m.Deaths), n.b.Deaths)
}

// normHigher maps a higher-is-better value onto [0,1] between P50 and P75.
func normHigher(v float64, s model.StatBenchmark) float64 {
	if s.Absent() {
		return 0.5
	}
	if v <= s.P50 {
		return 0
	}
	if v >= s.P75 {
		return 1
	}
	return (v - s.P50) / (s.P75 - s.P50)
}

// normDeaths is the mirrored rule: at or under P50 is perfect, at or over
// P75 scores zero.
func normDeaths(v float64, s model.StatBenchmark) float64 {
	if s.Absent() {
		return 0.5
	}
	if v <= s.P50 {
		return 1
	}
	if v >= s.P75 {
		return 0
	}
	return (s.P75 - v) / (s.P75 - s.P50)
}

type fallbackNormalizer struct {
	role model.Role
	tier string
}

// tierMultiplier scales the static caps by skill tier: 0.85 at IRON up to
// 1.075 at CHALLENGER.
func (n fallbackNormalizer) tierMultiplier() float64 {
	idx := 0
	if i, ok := model.TierOrder[n.tier]; ok {
		idx = i
	}
	return 0.85 + float64(idx)*0.025
}

func (n fallbackNormalizer) cs(v float64) float64 {
	return clamp01(v / (capsFor(n.role).cs * n.tierMultiplier()))
}

func (n fallbackNormalizer) damage(v float64) float64 {
	return clamp01(v / (capsFor(n.role).damage * n.tierMultiplier()))
}

func (n fallbackNormalizer) vision(v float64) float64 {
	return clamp01(v / (capsFor(n.role).vision * n.tierMultiplier()))
}

func (n fallbackNormalizer) kp(v float64) float64 {
	return math.Min(1, v/100)
}

// deaths applies a non-linear curve on deaths per 10 minutes, penalizing
// frequent deaths more steeply than a linear model would.
func (n fallbackNormalizer) deaths(m model.Metrics) float64 {
	minutes := float64(m.GameDuration) / 60.0
	if minutes <= 0 {
		minutes = 1
	}
	rate := float64(m.Deaths) / (minutes / 10.0)
	switch {
	case rate <= 0:
		return 1.0
	case rate >= 4.0:
		return 0.0
	default:
		return 1.0 - math.Pow(rate/4.0, 1.3)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
