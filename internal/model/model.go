package model

import "time"

// Role is a normalized lane assignment.
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleBottom  Role = "BOTTOM"
	RoleUtility Role = "UTILITY"
)

// Roles lists every valid role.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleBottom, RoleUtility}

// NormalizeRole maps a raw Riot teamPosition value onto the closed role set.
// Returns "" for positions that cannot be normalized (arena modes, AFK slots).
func NormalizeRole(position string) Role {
	switch position {
	case "TOP":
		return RoleTop
	case "JUNGLE":
		return RoleJungle
	case "MIDDLE", "MID":
		return RoleMid
	case "BOTTOM", "BOT":
		return RoleBottom
	case "UTILITY", "SUPPORT":
		return RoleUtility
	default:
		return ""
	}
}

// Ranked queue ids tracked by the sampler and aggregator.
const (
	QueueRankedSolo = 420
	QueueRankedFlex = 440
)

// RankedQueueIDs are the only queues whose participant rows feed aggregation.
var RankedQueueIDs = []int{QueueRankedSolo, QueueRankedFlex}

// QueueTypeForID maps a queue id to its league-v4 queue type string.
func QueueTypeForID(queueID int) string {
	if queueID == QueueRankedFlex {
		return "RANKED_FLEX_SR"
	}
	return "RANKED_SOLO_5x5"
}

// TierOrder ranks skill tiers from lowest (0) to highest (9).
var TierOrder = map[string]int{
	"IRON":        0,
	"BRONZE":      1,
	"SILVER":      2,
	"GOLD":        3,
	"PLATINUM":    4,
	"EMERALD":     5,
	"DIAMOND":     6,
	"MASTER":      7,
	"GRANDMASTER": 8,
	"CHALLENGER":  9,
}

// Tiers lists all skill tiers in ascending order.
var Tiers = []string{
	"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM",
	"EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER",
}

// Divisions lists divisions within a non-apex tier, lowest first.
var Divisions = []string{"IV", "III", "II", "I"}

// ApexDivision is the reserved division placeholder stored for the three
// apex tiers, which have no real division.
const ApexDivision = "NA"

// IsApexTier reports whether the tier is one of the three divisionless tiers.
func IsApexTier(tier string) bool {
	switch tier {
	case "MASTER", "GRANDMASTER", "CHALLENGER":
		return true
	default:
		return false
	}
}

// SampledPlayer is a ladder entry drawn by the collector. Re-sampling the
// same player overwrites the row.
type SampledPlayer struct {
	PUUID     string
	Region    string
	Tier      string
	Division  string
	QueueType string
	UpdatedAt time.Time
}

// SampleMatch is an immutable snapshot of one fetched match.
type SampleMatch struct {
	MatchID      string
	Region       string
	Payload      []byte
	GameCreation int64
	GameDuration int
	QueueID      int
	IngestedAt   time.Time
}

// SampleParticipant is one player's extracted statistics in one match.
// Write-once per (match, region, puuid); Tier/Division may be backfilled
// later when the player is sampled after the match was stored.
type SampleParticipant struct {
	MatchID string
	Region  string
	PUUID   string
	QueueID int

	Tier     string
	Division string // empty when unknown

	Role               Role
	ChampionID         int
	OpponentChampionID int // 0 when no same-role opponent was found

	Kills   int
	Deaths  int
	Assists int

	CSPerMin     float64
	DamagePerMin float64
	VisionScore  float64

	GoldPerMin        *float64
	KillParticipation *float64 // percent of team kills

	Win bool
}

// StatBenchmark is the {mean, P50, P75} triple for one statistic.
type StatBenchmark struct {
	Mean float64
	P50  float64
	P75  float64
}

// Absent reports whether no percentile data exists for this statistic.
func (s StatBenchmark) Absent() bool {
	return s.P50 == 0 && s.P75 == 0
}

// Benchmark is the persisted reference distribution for one
// (region, queue, tier, division, role[, matchup]) group. ChampionID and
// OpponentChampionID are both zero for role-level rows and both set for
// matchup-level rows.
type Benchmark struct {
	Region             string
	QueueID            int
	Tier               string
	Division           string
	Role               Role
	ChampionID         int
	OpponentChampionID int

	SampleSize int

	CSPerMin          StatBenchmark
	DamagePerMin      StatBenchmark
	VisionScore       StatBenchmark
	GoldPerMin        StatBenchmark
	KillParticipation StatBenchmark
	Deaths            StatBenchmark

	UpdatedAt time.Time
}

// IsMatchup reports whether this is a matchup-level row.
func (b *Benchmark) IsMatchup() bool {
	return b.ChampionID != 0 && b.OpponentChampionID != 0
}

// Metrics are the raw per-match numbers a performance is scored on.
// GoldPerMin and KillParticipation are optional: some upstream payloads
// never carry them.
type Metrics struct {
	CSPerMin          float64
	Deaths            int
	DamagePerMin      float64
	VisionScore       float64
	GoldPerMin        *float64
	KillParticipation *float64
	GameDuration      int // seconds; used by fallback death-rate normalization
}

// PerformanceContext carries everything needed to locate a benchmark and
// score a performance.
type PerformanceContext struct {
	Region             string
	QueueID            int
	Tier               string
	Division           string
	Role               Role
	ChampionID         int
	OpponentChampionID int

	Benchmark *Benchmark // nil when no benchmark applies
}

// Grade is a discrete performance letter.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Insight classifications relative to the benchmark percentiles.
const (
	ClassAboveP75 = "above_p75"
	ClassAboveP50 = "above_p50"
	ClassBelowP50 = "below_p50"
	ClassBelowP75 = "below_p75"
	ClassUnknown  = "unknown"
)

// Insight is one labeled metric-vs-benchmark comparison.
type Insight struct {
	Metric         string   `json:"metric"`
	Label          string   `json:"label"`
	Value          float64  `json:"value"`
	P50            *float64 `json:"p50,omitempty"`
	P75            *float64 `json:"p75,omitempty"`
	Classification string   `json:"classification"`
}

// ScoreResult is the consumer-facing read contract payload.
type ScoreResult struct {
	Score               Grade     `json:"score"`
	Insights            []Insight `json:"insights"`
	InsightSummary      string    `json:"insightSummary"`
	BenchmarkSampleSize *int      `json:"benchmarkSampleSize"`
}
