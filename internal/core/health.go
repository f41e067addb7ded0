package core

import (
	"fmt"

	"github.com/kilupskalvis/gitgud/internal/models"
)

// Health is the one-line classification shown by the status dashboard.
type Health string

const (
	HealthDivergent   Health = "DIVERGENT"
	HealthNeedsSync   Health = "NEEDS SYNC"
	HealthUncommitted Health = "UNCOMMITTED CHANGES"
	HealthClean       Health = "CLEAN"
)

// Assessment is the health classification plus follow-up tips.
type Assessment struct {
	Health Health
	Tips   []string
}

// AssessHealth classifies a status snapshot, most urgent state first.
func AssessHealth(s *models.RepositoryStatus) Assessment {
	var a Assessment
	switch {
	case models.IsDivergent(s.Ahead, s.Behind):
		a.Health = HealthDivergent
		a.Tips = append(a.Tips, "Run: gitgud resolve")
	case s.Behind > 0:
		a.Health = HealthNeedsSync
	case !s.IsClean():
		a.Health = HealthUncommitted
	default:
		a.Health = HealthClean
	}

	if s.Tracking == "" && !s.IsDetached() {
		a.Tips = append(a.Tips, fmt.Sprintf("No tracking branch. Run: git push -u origin %s", s.Branch))
	}
	if s.Ahead > 0 && !models.IsDivergent(s.Ahead, s.Behind) {
		a.Tips = append(a.Tips, "Run: gitgud push")
	}
	if s.HasConflicts() {
		a.Tips = append(a.Tips, fmt.Sprintf("%d file(s) have unresolved conflicts", len(s.Conflicted)))
	}
	return a
}
