package core

import (
	"context"

	"github.com/kilupskalvis/gitgud/internal/advisor"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/kilupskalvis/gitgud/internal/repo"
	"go.uber.org/zap"
)

// ConfirmFunc asks the user to approve a recommendation.
type ConfirmFunc func(rec *models.Recommendation) bool

// ReportFunc receives the analysis before anything is executed.
type ReportFunc func(dc models.DecisionContext, rec *models.Recommendation)

// PushOptions configures the push workflow.
type PushOptions struct {
	// Confirm is skipped when AssumeYes is set. A nil Confirm declines.
	Confirm   ConfirmFunc
	AssumeYes bool
	Report    ReportFunc
	Observe   StepObserver
}

// PushOutcome describes what the push workflow did.
type PushOutcome struct {
	Context        models.DecisionContext
	Recommendation *models.Recommendation
	ManualReview   bool        // recommendation was not executable, nothing ran
	Cancelled      bool        // user declined, nothing ran
	Plan           *PlanResult // nil unless execution started
}

// Push analyzes the repository and, when the recommendation is executable and
// approved, runs it.
func Push(ctx context.Context, r repo.Repository, orch *advisor.Orchestrator, opts PushOptions, logger *zap.Logger) (*PushOutcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dc, _, err := BuildContext(ctx, r, logger)
	if err != nil {
		return nil, err
	}

	rec, err := orch.Analyze(ctx, dc)
	if err != nil {
		return nil, err
	}

	if opts.Report != nil {
		opts.Report(dc, rec)
	}

	out := &PushOutcome{Context: dc, Recommendation: rec}
	if !rec.CanAutoExecute() {
		out.ManualReview = true
		return out, nil
	}

	if !opts.AssumeYes && (opts.Confirm == nil || !opts.Confirm(rec)) {
		out.Cancelled = true
		return out, nil
	}

	out.Plan = ExecutePlan(ctx, r, rec.Commands, opts.Observe, logger)
	return out, out.Plan.Err()
}
