package score

import (
	"fmt"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

const noBenchmarkSummary = "No benchmark data for this bracket yet; graded against static reference values."

// GenerateInsights compares each metric against the benchmark percentiles
// and produces one labeled insight per comparable statistic plus a short
// overall summary. With a nil benchmark only the summary is returned.
func GenerateInsights(metrics model.Metrics, b *model.Benchmark) ([]model.Insight, string) {
	if b == nil {
		return nil, noBenchmarkSummary
	}

	var insights []model.Insight
	add := func(in model.Insight, ok bool) {
		if ok {
			insights = append(insights, in)
		}
	}

	add(higherInsight("csPerMin", "CS per minute", metrics.CSPerMin, b.CSPerMin))
	add(deathsInsight(metrics.Deaths, b.Deaths))
	add(higherInsight("damagePerMin", "Damage per minute", metrics.DamagePerMin, b.DamagePerMin))
	add(higherInsight("visionScore", "Vision score", metrics.VisionScore, b.VisionScore))
	if metrics.GoldPerMin != nil {
		add(higherInsight("goldPerMin", "Gold per minute", *metrics.GoldPerMin, b.GoldPerMin))
	}
	if metrics.KillParticipation != nil {
		add(higherInsight("killParticipation", "Kill participation", *metrics.KillParticipation, b.KillParticipation))
	}

	return insights, summarize(insights)
}

// higherInsight classifies a higher-is-better statistic. Statistics with
// no percentile data are reported as unknown with no percentile fields.
func higherInsight(metric, label string, v float64, s model.StatBenchmark) (model.Insight, bool) {
	in := model.Insight{Metric: metric, Label: label, Value: v}
	if s.Absent() {
		in.Classification = model.ClassUnknown
		return in, true
	}
	p50, p75 := s.P50, s.P75
	in.P50, in.P75 = &p50, &p75
	switch {
	case v >= s.P75:
		in.Classification = model.ClassAboveP75
	case v >= s.P50:
		in.Classification = model.ClassAboveP50
	default:
		in.Classification = model.ClassBelowP50
	}
	return in, true
}

// deathsInsight mirrors the classification: fewer deaths than the median
// is the strong outcome.
func deathsInsight(deaths int, s model.StatBenchmark) (model.Insight, bool) {
	v := float64(deaths)
	in := model.Insight{Metric: "deaths", Label: "Deaths", Value: v}
	if s.Absent() {
		in.Classification = model.ClassUnknown
		return in, true
	}
	p50, p75 := s.P50, s.P75
	in.P50, in.P75 = &p50, &p75
	switch {
	case v <= s.P50:
		in.Classification = model.ClassBelowP50
	case v <= s.P75:
		in.Classification = model.ClassBelowP75
	default:
		in.Classification = model.ClassAboveP75
	}
	return in, true
}

// summarize folds per-stat classifications into one sentence. For deaths
// the strong and weak ends are reversed relative to the other stats.
func summarize(insights []model.Insight) string {
	var strong, weak, compared int
	for _, in := range insights {
		if in.Classification == model.ClassUnknown {
			continue
		}
		compared++
		if in.Metric == "deaths" {
			switch in.Classification {
			case model.ClassBelowP50:
				strong++
			case model.ClassAboveP75:
				weak++
			}
			continue
		}
		switch in.Classification {
		case model.ClassAboveP75:
			strong++
		case model.ClassBelowP50:
			weak++
		}
	}

	switch {
	case compared == 0:
		return "Not enough benchmark data to compare this performance."
	case strong > 0 && weak == 0:
		return fmt.Sprintf("Strong game: %d of %d stats at or above the 75th percentile for this bracket.", strong, compared)
	case strong > 0 && weak > 0:
		return fmt.Sprintf("Mixed game: %d stats above the 75th percentile, %d below the median.", strong, weak)
	case weak > 0:
		return fmt.Sprintf("%d of %d stats below the bracket median; focus there first.", weak, compared)
	default:
		return "Performance close to the median for this bracket."
	}
}
