package core

import (
	"fmt"

	"github.com/kilupskalvis/gitgud/internal/models"
)

// ResolveChoice is how to integrate remote commits into a divergent branch.
type ResolveChoice string

const (
	ChoiceRebase ResolveChoice = "rebase"
	ChoiceMerge  ResolveChoice = "merge"
)

// Advice is the suggested resolution for a divergent branch.
type Advice struct {
	Choice    ResolveChoice
	Command   string
	Reasoning string
}

// ResolveAdvice suggests rebase for small divergences and merge when the
// remote is far ahead.
func ResolveAdvice(ahead, behind int) Advice {
	switch {
	case ahead <= 2 && behind <= 2:
		return Advice{
			Choice:    ChoiceRebase,
			Command:   "pull --rebase",
			Reasoning: "Small divergence, rebase should be smooth and keeps history linear.",
		}
	case behind > 5:
		return Advice{
			Choice:    ChoiceMerge,
			Command:   "pull --no-rebase",
			Reasoning: fmt.Sprintf("Remote is %d commits ahead, merging avoids replaying your commits over a long history.", behind),
		}
	default:
		return Advice{
			Choice:    ChoiceRebase,
			Command:   "pull --rebase",
			Reasoning: "Rebase keeps a linear history; resolve conflicts commit by commit if they appear.",
		}
	}
}

// ResolutionPlan returns the steps that integrate remote commits, stashing
// local changes around the pull when stash is set.
func ResolutionPlan(choice ResolveChoice, stash bool) []string {
	pull := "pull --rebase"
	if choice == ChoiceMerge {
		pull = "pull --no-rebase"
	}

	if !stash {
		return []string{pull}
	}
	return []string{"stash", pull, "stash pop"}
}

// SyncTip describes what to do when the branch is not divergent.
func SyncTip(dc models.DecisionContext) string {
	switch {
	case dc.CommitsBehind > 0:
		return fmt.Sprintf("Branch is %d commit(s) behind. Run: git pull", dc.CommitsBehind)
	case dc.CommitsAhead > 0:
		return fmt.Sprintf("Branch is %d commit(s) ahead. Run: gitgud push", dc.CommitsAhead)
	default:
		return "Branch is in sync with its remote."
	}
}
