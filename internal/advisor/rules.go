package advisor

import (
	"context"

	"github.com/kilupskalvis/gitgud/internal/models"
)

const (
	riskRebase    = "Rebase may cause conflicts that need manual resolution"
	riskStashPop  = "Stash pop may cause conflicts"
	riskForcePush = "Force push will overwrite remote history"
	riskMerge     = "Merge creates a merge commit"
	riskRewrite   = "Rebase rewrites local history"
	riskUnknown   = "Unable to determine a safe automated approach"
)

// RulesProvider is the deterministic fallback. It is always available and never fails.
type RulesProvider struct{}

// NewRulesProvider returns the rule-based provider.
func NewRulesProvider() *RulesProvider {
	return &RulesProvider{}
}

func (p *RulesProvider) Name() string { return "rules" }
func (p *RulesProvider) Kind() Kind   { return KindRules }
func (p *RulesProvider) sealed()      {}

// Available always returns true.
func (p *RulesProvider) Available(ctx context.Context) bool {
	return true
}

// Analyze never returns an error.
func (p *RulesProvider) Analyze(ctx context.Context, dc models.DecisionContext) (*models.Recommendation, error) {
	return Recommend(dc), nil
}

// Recommend applies the decision rules in precedence order; the first match wins.
func Recommend(dc models.DecisionContext) *models.Recommendation {
	ahead, behind, dirty := dc.CommitsAhead, dc.CommitsBehind, dc.UncommittedChanges
	divergent := dc.IsDivergent()

	switch {
	case ahead > 0 && behind == 0 && dirty == 0:
		return &models.Recommendation{
			Strategy:   models.StrategyPush,
			Commands:   []string{"push"},
			Reasoning:  "Local branch is ahead of remote with no conflicts. Safe to push.",
			Risks:      []string{},
			Confidence: 95,
		}

	case behind > 0 && !divergent && dirty == 0:
		return &models.Recommendation{
			Strategy:   models.StrategyPullThenPush,
			Commands:   []string{"pull --rebase", "push"},
			Reasoning:  "Remote has new commits. Pull with rebase to keep a linear history, then push.",
			Risks:      []string{riskRebase},
			Confidence: 85,
		}

	case behind > 0 && !divergent && dirty > 0:
		return &models.Recommendation{
			Strategy:   models.StrategyStashPullPush,
			Commands:   []string{"stash", "pull --rebase", "stash pop", "push"},
			Reasoning:  "Uncommitted changes need to be stashed before pulling.",
			Risks:      []string{riskStashPop, riskRebase},
			Confidence: 75,
		}

	case divergent:
		return &models.Recommendation{
			Strategy:             models.StrategyManual,
			Commands:             []string{},
			Reasoning:            "Branches have diverged. Choose between rebase, merge or force push after reviewing both histories.",
			Risks:                []string{riskForcePush, riskMerge, riskRewrite},
			RequiresManualReview: true,
			Confidence:           50,
		}

	case ahead == 0 && dirty == 0:
		return &models.Recommendation{
			Strategy:   models.StrategyManual,
			Commands:   []string{},
			Reasoning:  "Nothing to do. Working tree is clean and up to date.",
			Risks:      []string{},
			Confidence: 100,
		}

	case ahead == 0 && dirty > 0:
		return &models.Recommendation{
			Strategy:             models.StrategyManual,
			Commands:             []string{},
			Reasoning:            `You have uncommitted changes but no commits to push. Commit first with: git add . && git commit -m "your message"`,
			Risks:                []string{},
			RequiresManualReview: true,
			Confidence:           100,
		}

	default:
		return &models.Recommendation{
			Strategy:             models.StrategyManual,
			Commands:             []string{},
			Reasoning:            "Complex repository state detected. Manual review recommended.",
			Risks:                []string{riskUnknown},
			RequiresManualReview: true,
			Confidence:           30,
		}
	}
}
