package models

// Strategy identifies the kind of synchronization a recommendation performs.
type Strategy string

const (
	StrategyPush          Strategy = "push"
	StrategyPullThenPush  Strategy = "pull-then-push"
	StrategyStashPullPush Strategy = "stash-pull-push"
	StrategyRebase        Strategy = "rebase"
	StrategyMerge         Strategy = "merge"
	StrategyManual        Strategy = "manual"
)

// Strategies lists every known strategy in declaration order.
var Strategies = []Strategy{
	StrategyPush,
	StrategyPullThenPush,
	StrategyStashPullPush,
	StrategyRebase,
	StrategyMerge,
	StrategyManual,
}

// ParseStrategy returns the strategy for s and whether it is known.
func ParseStrategy(s string) (Strategy, bool) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Recommendation is the output of a provider: an ordered plan plus annotations.
type Recommendation struct {
	Strategy             Strategy `json:"strategy"`
	Commands             []string `json:"commands"`
	Reasoning            string   `json:"reasoning"`
	Risks                []string `json:"risks"`
	RequiresManualReview bool     `json:"requires_manual_review"`
	Confidence           int      `json:"confidence"` // 0-100
	Provider             string   `json:"-"`          // Name of the provider that produced it
}

// CanAutoExecute reports whether the plan may be executed without human intervention.
// Confidence never overrides a manual review flag or an empty plan.
func (r *Recommendation) CanAutoExecute() bool {
	return !r.RequiresManualReview && len(r.Commands) > 0
}
