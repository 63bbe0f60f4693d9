package score

import (
	"fmt"

	"github.com/vinicius-m-santos/elosense-sub000/internal/benchmark"
	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
)

// Evaluator glues benchmark lookup, grading and insight generation behind
// a single read operation.
type Evaluator struct {
	lookup *benchmark.Lookup
}

// NewEvaluator returns an Evaluator reading benchmarks through lookup.
func NewEvaluator(lookup *benchmark.Lookup) *Evaluator {
	return &Evaluator{lookup: lookup}
}

// Evaluate grades one performance in context. The grade always comes back;
// only a storage failure during benchmark lookup is an error.
func (e *Evaluator) Evaluate(metrics model.Metrics, ctx benchmark.LookupContext) (*model.ScoreResult, error) {
	ctx = ctx.Normalized()
	b, err := e.lookup.GetBenchmark(ctx)
	if err != nil {
		return nil, fmt.Errorf("benchmark lookup: %w", err)
	}

	perf := model.PerformanceContext{
		Region:             ctx.Region,
		QueueID:            ctx.QueueID,
		Tier:               ctx.Tier,
		Division:           ctx.Division,
		Role:               model.Role(ctx.Role),
		ChampionID:         ctx.ChampionID,
		OpponentChampionID: ctx.OpponentChampionID,
		Benchmark:          b,
	}

	insights, summary := GenerateInsights(metrics, b)
	result := &model.ScoreResult{
		Score:          CalculateScore(metrics, perf),
		Insights:       insights,
		InsightSummary: summary,
	}
	if b != nil {
		size := b.SampleSize
		result.BenchmarkSampleSize = &size
	}
	return result, nil
}
