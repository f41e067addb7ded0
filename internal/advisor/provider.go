// Package advisor recommends how to synchronize a branch with its remote.
//
// Two providers exist: a model-backed provider that asks a local model service,
// and a rule-based provider that is a pure function of the decision context.
// The Orchestrator tries them in order and always ends with the rules.
package advisor

import (
	"context"

	"github.com/kilupskalvis/gitgud/internal/models"
)

// Kind tags the provider variant.
type Kind int

const (
	KindRules Kind = iota
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindRules:
		return "rules"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

// Provider produces a recommendation for a decision context.
// The interface is closed: only *RulesProvider and *ModelProvider implement it.
type Provider interface {
	// Name identifies the provider in logs and output.
	Name() string

	// Kind returns the provider variant.
	Kind() Kind

	// Available is a side-effect-free check.
	Available(ctx context.Context) bool

	// Analyze returns a recommendation or an error marked models.ErrProvider
	// or models.ErrUnavailable.
	Analyze(ctx context.Context, dc models.DecisionContext) (*models.Recommendation, error)

	sealed()
}

var (
	_ Provider = (*RulesProvider)(nil)
	_ Provider = (*ModelProvider)(nil)
)
