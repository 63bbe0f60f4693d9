// Package report renders human-readable tables for the CLI commands.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
	"github.com/vinicius-m-santos/elosense-sub000/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintBenchmarkTable prints role-level benchmark rows.
// Columns show the P50/P75 pair for each tracked statistic.
func PrintBenchmarkTable(w io.Writer, benchmarks []model.Benchmark) {
	table := newTable(w)
	table.Header("TIER", "DIV", "ROLE", "N", "CS/M P50", "CS/M P75", "DMG/M P50", "DMG/M P75",
		"VISION P50", "VISION P75", "DEATHS P50", "DEATHS P75", "KP% P50", "KP% P75")

	for _, b := range benchmarks {
		table.Append(
			b.Tier,
			b.Division,
			string(b.Role),
			strconv.Itoa(b.SampleSize),
			fmt.Sprintf("%.1f", b.CSPerMin.P50),
			fmt.Sprintf("%.1f", b.CSPerMin.P75),
			fmt.Sprintf("%.0f", b.DamagePerMin.P50),
			fmt.Sprintf("%.0f", b.DamagePerMin.P75),
			fmt.Sprintf("%.1f", b.VisionScore.P50),
			fmt.Sprintf("%.1f", b.VisionScore.P75),
			fmt.Sprintf("%.1f", b.Deaths.P50),
			fmt.Sprintf("%.1f", b.Deaths.P75),
			fmt.Sprintf("%.0f", b.KillParticipation.P50),
			fmt.Sprintf("%.0f", b.KillParticipation.P75),
		)
	}
	table.Render()
}

// PrintStratumTable prints sampled-player counts per ladder stratum,
// ordered by ascending skill.
func PrintStratumTable(w io.Writer, counts []storage.StratumCount) {
	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		if model.TierOrder[a.Tier] != model.TierOrder[b.Tier] {
			return model.TierOrder[a.Tier] < model.TierOrder[b.Tier]
		}
		return divisionOrder(a.Division) < divisionOrder(b.Division)
	})

	table := newTable(w)
	table.Header("TIER", "DIVISION", "PLAYERS")
	for _, c := range counts {
		table.Append(c.Tier, c.Division, strconv.Itoa(c.Players))
	}
	table.Render()
}

func divisionOrder(div string) int {
	for i, d := range model.Divisions {
		if d == div {
			return i
		}
	}
	return len(model.Divisions)
}

// PrintScoreResult prints the grade, the per-stat benchmark comparisons
// and the summary line.
func PrintScoreResult(w io.Writer, res *model.ScoreResult) {
	fmt.Fprintf(w, "\nGrade: %s\n", res.Score)
	if res.BenchmarkSampleSize != nil {
		fmt.Fprintf(w, "Benchmark sample: %d performances\n", *res.BenchmarkSampleSize)
	}
	fmt.Fprintln(w)

	if len(res.Insights) > 0 {
		table := newTable(w)
		table.Header("METRIC", "VALUE", "P50", "P75", "VS BRACKET")
		for _, in := range res.Insights {
			p50, p75 := "—", "—"
			if in.P50 != nil {
				p50 = fmt.Sprintf("%.1f", *in.P50)
			}
			if in.P75 != nil {
				p75 = fmt.Sprintf("%.1f", *in.P75)
			}
			table.Append(in.Label, fmt.Sprintf("%.1f", in.Value), p50, p75, classLabel(in))
		}
		table.Render()
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, res.InsightSummary)
}

// classLabel renders a classification for display. Deaths flip polarity:
// staying under the median is the strong outcome.
func classLabel(in model.Insight) string {
	mirrored := in.Metric == "deaths"
	switch in.Classification {
	case model.ClassAboveP75:
		if mirrored {
			return "high"
		}
		return "top 25%"
	case model.ClassAboveP50:
		return "above median"
	case model.ClassBelowP75:
		return "below top 25%"
	case model.ClassBelowP50:
		if mirrored {
			return "low"
		}
		return "below median"
	default:
		return "no data"
	}
}

// PrintOverview prints store-wide counts.
func PrintOverview(w io.Writer, ov *storage.Overview) {
	fmt.Fprintf(w, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(w, "  Sampled players     : %d\n", ov.SampledPlayers)
	fmt.Fprintf(w, "  Stored matches      : %d\n", ov.SampleMatches)
	fmt.Fprintf(w, "  Participant rows    : %d\n", ov.Participants)
	fmt.Fprintf(w, "  Regions             : %d\n", ov.RankedRegions)
	fmt.Fprintf(w, "  Role benchmarks     : %d\n", ov.RoleBenchmarks)
	fmt.Fprintf(w, "  Matchup benchmarks  : %d\n", ov.MatchupBenchmarks)
}
