package core

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/kilupskalvis/gitgud/internal/repo"
	"go.uber.org/zap"
)

// StepObserver is called after each plan step with its index, command text
// and whether it succeeded.
type StepObserver func(index int, command string, ok bool)

// PlanResult is the outcome of ExecutePlan.
type PlanResult struct {
	Completed int
	FailedAt  int // -1 when every step succeeded
	Commands  []string
}

// Succeeded returns true if every step ran successfully.
func (r *PlanResult) Succeeded() bool {
	return r.FailedAt < 0
}

// Err returns nil on success, otherwise an error marked models.ErrCommandFailed.
func (r *PlanResult) Err() error {
	if r.Succeeded() {
		return nil
	}
	return errors.WithHint(
		errors.Mark(errors.Newf("step %d failed: git %s", r.FailedAt+1, r.Commands[r.FailedAt]), models.ErrCommandFailed),
		"completed steps were not rolled back; run git status to inspect the repository",
	)
}

// ExecutePlan runs commands in order and stops at the first failure. A
// command that does not parse or is not allow-listed counts as a failure.
func ExecutePlan(ctx context.Context, r repo.Repository, commands []string, observe StepObserver, logger *zap.Logger) *PlanResult {
	if observe == nil {
		observe = func(int, string, bool) {}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	result := &PlanResult{FailedAt: -1, Commands: commands}
	for i, line := range commands {
		ok := runStep(ctx, r, line, logger)
		observe(i, line, ok)
		if !ok {
			result.FailedAt = i
			return result
		}
		result.Completed++
	}
	return result
}

func runStep(ctx context.Context, r repo.Repository, line string, logger *zap.Logger) bool {
	cmd, err := repo.ParseCommand(line)
	if err != nil {
		logger.Error("invalid plan step", zap.String("command", line), zap.Error(err))
		return false
	}
	return r.Execute(ctx, cmd.Name, cmd.Args)
}
