package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinicius-m-santos/elosense-sub000/internal/benchmark"
	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
	"github.com/vinicius-m-santos/elosense-sub000/internal/report"
	"github.com/vinicius-m-santos/elosense-sub000/internal/score"
)

// score command flags.
var (
	scoreRegion   string
	scoreQueue    int
	scoreTier     string
	scoreDivision string
	scoreRole     string
	scoreChampion int
	scoreOpponent int

	scoreCS       float64
	scoreDeaths   int
	scoreDamage   float64
	scoreVision   float64
	scoreGold     float64
	scoreKP       float64
	scoreDuration int

	scoreJSON bool
)

// scoreCmd grades one performance against the stored benchmarks.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Grade a performance against its bracket benchmark",
	Long: `Grades a single match performance. The most specific stored benchmark
for the context is used (champion matchup first, then role level); with no
benchmark the grade falls back to static tier-scaled reference values.

Example:
  elosense score --region NA1 --tier GOLD --division II --role MID \
    --cs 7.2 --deaths 4 --damage 820 --vision 18 --kp 58 --duration 1800`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreRegion, "region", "", "platform region, e.g. NA1 (required)")
	scoreCmd.Flags().IntVar(&scoreQueue, "queue", model.QueueRankedSolo, "ranked queue id")
	scoreCmd.Flags().StringVar(&scoreTier, "tier", "", "skill tier, e.g. GOLD (required)")
	scoreCmd.Flags().StringVar(&scoreDivision, "division", "", "division I-IV (ignored for apex tiers)")
	scoreCmd.Flags().StringVar(&scoreRole, "role", "", "role: TOP, JUNGLE, MID, BOTTOM, UTILITY (required)")
	scoreCmd.Flags().IntVar(&scoreChampion, "champion", 0, "champion id (enables matchup benchmarks)")
	scoreCmd.Flags().IntVar(&scoreOpponent, "opponent", 0, "opposing champion id")

	scoreCmd.Flags().Float64Var(&scoreCS, "cs", 0, "CS per minute")
	scoreCmd.Flags().IntVar(&scoreDeaths, "deaths", 0, "death count")
	scoreCmd.Flags().Float64Var(&scoreDamage, "damage", 0, "damage to champions per minute")
	scoreCmd.Flags().Float64Var(&scoreVision, "vision", 0, "vision score")
	scoreCmd.Flags().Float64Var(&scoreGold, "gold", -1, "gold per minute (omit when unknown)")
	scoreCmd.Flags().Float64Var(&scoreKP, "kp", -1, "kill participation percent (omit when unknown)")
	scoreCmd.Flags().IntVar(&scoreDuration, "duration", 0, "game duration in seconds")

	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "emit the result as JSON")

	_ = scoreCmd.MarkFlagRequired("region")
	_ = scoreCmd.MarkFlagRequired("tier")
	_ = scoreCmd.MarkFlagRequired("role")
}

func runScore(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	metrics := model.Metrics{
		CSPerMin:     scoreCS,
		Deaths:       scoreDeaths,
		DamagePerMin: scoreDamage,
		VisionScore:  scoreVision,
		GameDuration: scoreDuration,
	}
	if scoreGold >= 0 {
		g := scoreGold
		metrics.GoldPerMin = &g
	}
	if scoreKP >= 0 {
		kp := scoreKP
		metrics.KillParticipation = &kp
	}

	eval := score.NewEvaluator(benchmark.NewLookup(db))
	result, err := eval.Evaluate(metrics, benchmark.LookupContext{
		Region:             scoreRegion,
		QueueID:            scoreQueue,
		Tier:               scoreTier,
		Division:           scoreDivision,
		Role:               scoreRole,
		ChampionID:         scoreChampion,
		OpponentChampionID: scoreOpponent,
	})
	if err != nil {
		return err
	}

	if scoreJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	report.PrintScoreResult(os.Stdout, result)
	return nil
}
