package benchmark

import (
	"strings"

	"github.com/vinicius-m-santos/elosense-sub000/internal/model"
	"github.com/vinicius-m-santos/elosense-sub000/internal/storage"
)

// Lookup is the benchmark read path. It normalizes the incoming context and
// tries an ordered chain of strategies, most specific first.
type Lookup struct {
	db *storage.DB
}

// NewLookup returns a Lookup reading from db.
func NewLookup(db *storage.DB) *Lookup {
	return &Lookup{db: db}
}

// LookupContext identifies the group a performance belongs to.
type LookupContext struct {
	Region             string
	QueueID            int
	Tier               string
	Division           string
	Role               string
	ChampionID         int
	OpponentChampionID int
}

// Normalized returns the context with its string fields in canonical form:
// region, tier and division upper-cased and trimmed, role mapped onto the
// closed role set (empty when unrecognized). Callers that key other tables
// off the same fields should normalize once and reuse the result.
func (ctx LookupContext) Normalized() LookupContext {
	out := ctx
	out.Region = strings.ToUpper(strings.TrimSpace(ctx.Region))
	out.Tier = strings.ToUpper(strings.TrimSpace(ctx.Tier))
	out.Division = strings.ToUpper(strings.TrimSpace(ctx.Division))
	out.Role = string(model.NormalizeRole(strings.ToUpper(strings.TrimSpace(ctx.Role))))
	return out
}

// GetBenchmark returns the most specific applicable benchmark for the
// context, or nil when the context is insufficient or no row exists.
// Matchup-level rows are preferred when both champion ids are present;
// otherwise, or when no matchup row exists, the role-level row is used.
func (l *Lookup) GetBenchmark(ctx LookupContext) (*model.Benchmark, error) {
	norm, ok := normalize(ctx)
	if !ok {
		return nil, nil
	}

	for _, strategy := range l.strategies(norm) {
		b, err := strategy()
		if err != nil {
			return nil, err
		}
		if b != nil {
			return b, nil
		}
	}
	return nil, nil
}

type normalizedContext struct {
	region   string
	queueID  int
	tier     string
	division string
	role     model.Role
	champion int
	opponent int
}

// strategies returns the fallback chain: exact matchup first when both
// champion ids are known, then the role-level row.
func (l *Lookup) strategies(n normalizedContext) []func() (*model.Benchmark, error) {
	var chain []func() (*model.Benchmark, error)
	if n.champion != 0 && n.opponent != 0 {
		chain = append(chain, func() (*model.Benchmark, error) {
			return l.db.GetBenchmark(n.region, n.queueID, n.tier, n.division, n.role, n.champion, n.opponent)
		})
	}
	chain = append(chain, func() (*model.Benchmark, error) {
		return l.db.GetBenchmark(n.region, n.queueID, n.tier, n.division, n.role, 0, 0)
	})
	return chain
}

func normalize(ctx LookupContext) (normalizedContext, bool) {
	c := ctx.Normalized()
	n := normalizedContext{
		region:   c.Region,
		tier:     c.Tier,
		division: c.Division,
		role:     model.Role(c.Role),
		champion: c.ChampionID,
		opponent: c.OpponentChampionID,
	}
	if n.region == "" || n.tier == "" || n.role == "" {
		return n, false
	}

	n.queueID = ctx.QueueID
	if n.queueID != model.QueueRankedSolo && n.queueID != model.QueueRankedFlex {
		n.queueID = model.QueueRankedSolo
	}

	if model.IsApexTier(n.tier) {
		n.division = model.ApexDivision
	} else if n.division == "" {
		return n, false
	}
	return n, true
}
