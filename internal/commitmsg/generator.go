package commitmsg

import (
	"context"

	"github.com/kilupskalvis/gitgud/internal/models"
	"go.uber.org/zap"
)

// Generator tries the model first when one is configured and reachable, then
// the heuristic.
type Generator struct {
	model  *ModelGenerator
	logger *zap.Logger
}

// NewGenerator returns a generator. model may be nil for heuristic only.
func NewGenerator(model *ModelGenerator, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{model: model, logger: logger}
}

// Generate never fails; "" means no message could be produced and the caller
// should ask the user.
func (g *Generator) Generate(ctx context.Context, diff string, status *models.RepositoryStatus) string {
	if g.model != nil {
		if g.model.Available(ctx) {
			msg, err := g.model.Generate(ctx, diff, status)
			if err == nil && msg != "" {
				return msg
			}
			g.logger.Warn("model commit message failed, using heuristic", zap.Error(err))
		} else {
			g.logger.Info("model service unavailable, using heuristic")
		}
	}
	return Heuristic(diff, status)
}
