package advisor

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/models"
	"go.uber.org/zap"
)

// Orchestrator tries providers in priority order and falls through on
// unavailability or failure.
type Orchestrator struct {
	providers []Provider
	logger    *zap.Logger
}

// NewOrchestrator builds the provider chain. model may be nil to disable the
// model-backed provider; the rule-based provider is always appended last.
func NewOrchestrator(model *ModelProvider, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}

	var providers []Provider
	if model != nil {
		providers = append(providers, model)
	}
	providers = append(providers, NewRulesProvider())

	return &Orchestrator{providers: providers, logger: logger}
}

// Providers returns the provider names in the order they are tried.
func (o *Orchestrator) Providers() []string {
	names := make([]string, len(o.providers))
	for i, p := range o.providers {
		names[i] = p.Name()
	}
	return names
}

// Analyze returns the first recommendation a provider produces. Each provider
// sees its own copy of dc.
func (o *Orchestrator) Analyze(ctx context.Context, dc models.DecisionContext) (*models.Recommendation, error) {
	for _, p := range o.providers {
		if !p.Available(ctx) {
			o.logger.Info("provider unavailable, skipping", zap.String("provider", p.Name()))
			continue
		}

		rec, err := p.Analyze(ctx, dc.Clone())
		if err != nil {
			o.logger.Warn("provider failed, falling back", zap.String("provider", p.Name()), zap.Error(err))
			continue
		}

		rec.Provider = p.Name()
		o.logger.Debug("using provider", zap.String("provider", p.Name()), zap.String("strategy", string(rec.Strategy)))
		return rec, nil
	}

	return nil, errors.WithHint(
		errors.Mark(errors.New("every recommendation provider failed"), models.ErrNoProvider),
		"this indicates a bug: the rule-based provider should always answer",
	)
}
