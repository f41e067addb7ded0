// Package core implements the gitgud workflows: building a decision context
// from the repository, running an approved plan, and the push, resolve and
// status flows built on top of them.
package core

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/kilupskalvis/gitgud/internal/repo"
	"go.uber.org/zap"
)

// BuildContext refreshes remote-tracking refs and projects the repository
// status into a DecisionContext. A failed fetch is logged and the local state
// is used.
func BuildContext(ctx context.Context, r repo.Repository, logger *zap.Logger) (models.DecisionContext, *models.RepositoryStatus, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !r.IsRepository() {
		return models.DecisionContext{}, nil, errors.WithHint(
			errors.Mark(models.ErrNotRepository, models.ErrUnavailable),
			"run gitgud inside a git working tree",
		)
	}

	if !r.Fetch(ctx) {
		logger.Warn("could not fetch from remote, ahead/behind counts may be stale")
	}

	status, err := r.Status(ctx)
	if err != nil {
		return models.DecisionContext{}, nil, errors.Wrap(err, "read repository status")
	}

	dc := models.NewDecisionContext(status)
	logger.Debug("decision context",
		zap.String("branch", dc.LocalBranch),
		zap.String("tracking", dc.RemoteBranch),
		zap.Int("ahead", dc.CommitsAhead),
		zap.Int("behind", dc.CommitsBehind),
		zap.Int("uncommitted", dc.UncommittedChanges))
	return dc, status, nil
}
