package score

import (
	"strings"
	"testing"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

func classOf(t *testing.T, insights []model.Insight, metric string) string {
	t.Helper()
	for _, in := range insights {
		if in.Metric == metric {
			return in.Classification
		}
	}
	t.Fatalf("no insight for metric %q", metric)
	return ""
}

func TestGenerateInsightsNilBenchmark(t *testing.T) {
	insights, summary := GenerateInsights(model.Metrics{CSPerMin: 7}, nil)
	if insights != nil {
		t.Errorf("insights = %v, want none without a benchmark", insights)
	}
	if summary != noBenchmarkSummary {
		t.Errorf("summary = %q", summary)
	}
}

func TestGenerateInsightsClassifications(t *testing.T) {
	kp := 75.0
	gold := 400.0
	metrics := model.Metrics{
		CSPerMin:          9,    // above P75
		Deaths:            2,    // at or below P50 (strong)
		DamagePerMin:      600,  // between P50 and P75
		VisionScore:       10,   // below P50
		GoldPerMin:        &gold,
		KillParticipation: &kp,
	}
	b := midBenchmark()
	b.GoldPerMin = model.StatBenchmark{P50: 380, P75: 450}

	insights, _ := GenerateInsights(metrics, b)
	if len(insights) != 6 {
		t.Fatalf("got %d insights, want 6", len(insights))
	}

	if got := classOf(t, insights, "csPerMin"); got != model.ClassAboveP75 {
		t.Errorf("cs classification = %s", got)
	}
	if got := classOf(t, insights, "deaths"); got != model.ClassBelowP50 {
		t.Errorf("deaths classification = %s, low deaths should read below_p50", got)
	}
	if got := classOf(t, insights, "damagePerMin"); got != model.ClassAboveP50 {
		t.Errorf("damage classification = %s", got)
	}
	if got := classOf(t, insights, "visionScore"); got != model.ClassBelowP50 {
		t.Errorf("vision classification = %s", got)
	}
	if got := classOf(t, insights, "killParticipation"); got != model.ClassAboveP75 {
		t.Errorf("kp classification = %s", got)
	}
}

func TestGenerateInsightsDeathsMirrored(t *testing.T) {
	b := midBenchmark() // deaths P50=3 P75=6
	tests := []struct {
		deaths int
		want   string
	}{
		{2, model.ClassBelowP50},
		{3, model.ClassBelowP50},
		{5, model.ClassBelowP75},
		{6, model.ClassBelowP75},
		{9, model.ClassAboveP75},
	}
	for _, tc := range tests {
		insights, _ := GenerateInsights(model.Metrics{Deaths: tc.deaths}, b)
		if got := classOf(t, insights, "deaths"); got != tc.want {
			t.Errorf("deaths=%d classification = %s, want %s", tc.deaths, got, tc.want)
		}
	}
}

func TestGenerateInsightsSkipsNilOptionals(t *testing.T) {
	insights, _ := GenerateInsights(model.Metrics{CSPerMin: 7, Deaths: 3}, midBenchmark())
	for _, in := range insights {
		if in.Metric == "goldPerMin" || in.Metric == "killParticipation" {
			t.Errorf("optional metric %s reported despite being absent", in.Metric)
		}
	}
}

func TestGenerateInsightsAbsentStatUnknown(t *testing.T) {
	b := midBenchmark()
	b.VisionScore = model.StatBenchmark{}

	insights, _ := GenerateInsights(model.Metrics{VisionScore: 20}, b)
	for _, in := range insights {
		if in.Metric != "visionScore" {
			continue
		}
		if in.Classification != model.ClassUnknown {
			t.Errorf("classification = %s, want unknown", in.Classification)
		}
		if in.P50 != nil || in.P75 != nil {
			t.Error("percentile fields must stay unset for an absent stat")
		}
	}
}

func TestSummaryPhrasing(t *testing.T) {
	kp := 90.0
	b := midBenchmark()

	// Everything strong.
	strong := model.Metrics{CSPerMin: 9, Deaths: 1, DamagePerMin: 900, VisionScore: 30, KillParticipation: &kp}
	if _, summary := GenerateInsights(strong, b); !strings.Contains(summary, "Strong game") {
		t.Errorf("strong summary = %q", summary)
	}

	// Everything weak.
	weak := model.Metrics{CSPerMin: 2, Deaths: 9, DamagePerMin: 100, VisionScore: 5}
	if _, summary := GenerateInsights(weak, b); !strings.Contains(summary, "below the bracket median") {
		t.Errorf("weak summary = %q", summary)
	}

	// Mixed: strong cs, weak vision.
	mixed := model.Metrics{CSPerMin: 9, Deaths: 4, DamagePerMin: 600, VisionScore: 5}
	if _, summary := GenerateInsights(mixed, b); !strings.Contains(summary, "Mixed game") {
		t.Errorf("mixed summary = %q", summary)
	}

	// Everything near the median.
	median := model.Metrics{CSPerMin: 7, Deaths: 4, DamagePerMin: 600, VisionScore: 20}
	if _, summary := GenerateInsights(median, b); !strings.Contains(summary, "close to the median") {
		t.Errorf("median summary = %q", summary)
	}

	// Nothing comparable at all.
	empty := &model.Benchmark{}
	if _, summary := GenerateInsights(model.Metrics{}, empty); !strings.Contains(summary, "Not enough benchmark data") {
		t.Errorf("empty summary = %q", summary)
	}
}
