package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/kilupskalvis/gitgud/internal/ollama"
	"go.uber.org/zap"
)

const defaultModelConfidence = 50

// ModelProvider delegates the recommendation to a local model service.
type ModelProvider struct {
	client *ollama.Client
	logger *zap.Logger
}

// NewModelProvider returns a provider backed by client.
func NewModelProvider(client *ollama.Client, logger *zap.Logger) *ModelProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelProvider{client: client, logger: logger}
}

func (p *ModelProvider) Name() string { return "ollama" }
func (p *ModelProvider) Kind() Kind   { return KindModel }
func (p *ModelProvider) sealed()      {}

// Available checks the model service with a short timeout.
func (p *ModelProvider) Available(ctx context.Context) bool {
	if err := p.client.Ping(ctx); err != nil {
		p.logger.Debug("model service unreachable", zap.String("endpoint", p.client.Endpoint()), zap.Error(err))
		return false
	}
	return true
}

// Analyze asks the model for a strict-JSON recommendation.
func (p *ModelProvider) Analyze(ctx context.Context, dc models.DecisionContext) (*models.Recommendation, error) {
	text, err := p.client.Generate(ctx, BuildPrompt(dc), ollama.FormatJSON)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "ollama analysis failed"), models.ErrProvider)
	}

	rec, err := ParseRecommendation(text)
	if err != nil {
		p.logger.Debug("unparseable model response", zap.String("response", text))
		return nil, err
	}
	return rec, nil
}

// BuildPrompt renders the decision context into a prompt requesting strict JSON.
func BuildPrompt(dc models.DecisionContext) string {
	remote := dc.RemoteBranch
	if remote == "" {
		remote = "none"
	}
	conflicts := strings.Join(dc.ConflictingFiles, ", ")
	if conflicts == "" {
		conflicts = "none"
	}

	strategies := make([]string, len(models.Strategies))
	for i, s := range models.Strategies {
		strategies[i] = string(s)
	}

	var b strings.Builder
	b.WriteString("You are a Git expert. Analyze this repository state and recommend the safest push strategy.\n\n")
	b.WriteString("Repository State:\n")
	fmt.Fprintf(&b, "- Local Branch: %s\n", dc.LocalBranch)
	fmt.Fprintf(&b, "- Remote Branch: %s\n", remote)
	fmt.Fprintf(&b, "- Commits Ahead: %d\n", dc.CommitsAhead)
	fmt.Fprintf(&b, "- Commits Behind: %d\n", dc.CommitsBehind)
	fmt.Fprintf(&b, "- Uncommitted Changes: %d\n", dc.UncommittedChanges)
	fmt.Fprintf(&b, "- Staged Changes: %d\n", dc.StagedChanges)
	fmt.Fprintf(&b, "- Has Stash: %t\n", dc.HasStash)
	fmt.Fprintf(&b, "- Branch Divergent: %t\n", dc.IsDivergent())
	fmt.Fprintf(&b, "- Conflicting Files: %s\n\n", conflicts)
	b.WriteString("Respond ONLY with valid JSON in this exact format:\n")
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"strategy\": \"%s\",\n", strings.Join(strategies, "|"))
	b.WriteString("  \"commands\": [\"git command 1\", \"git command 2\"],\n")
	b.WriteString("  \"reasoning\": \"Brief explanation\",\n")
	b.WriteString("  \"risks\": [\"risk 1\", \"risk 2\"],\n")
	b.WriteString("  \"requires_manual_review\": true or false,\n")
	b.WriteString("  \"confidence\": 0-100\n")
	b.WriteString("}")
	return b.String()
}

// wireRecommendation distinguishes absent fields from zero values.
type wireRecommendation struct {
	Strategy             *string   `json:"strategy"`
	Commands             *[]string `json:"commands"`
	Reasoning            *string   `json:"reasoning"`
	Risks                []string  `json:"risks"`
	RequiresManualReview *bool     `json:"requires_manual_review"`
	Confidence           *float64  `json:"confidence"`
}

// ParseRecommendation decodes the model's JSON. strategy, commands and reasoning
// are required; risks, requires_manual_review and confidence default to
// empty, false and 50.
func ParseRecommendation(text string) (*models.Recommendation, error) {
	var w wireRecommendation
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &w); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse model response"), models.ErrProvider)
	}

	var missing []string
	if w.Strategy == nil {
		missing = append(missing, "strategy")
	}
	if w.Commands == nil {
		missing = append(missing, "commands")
	}
	if w.Reasoning == nil {
		missing = append(missing, "reasoning")
	}
	if len(missing) > 0 {
		return nil, errors.Mark(errors.Newf("model response missing required fields: %s", strings.Join(missing, ", ")), models.ErrProvider)
	}

	strategy, ok := models.ParseStrategy(*w.Strategy)
	if !ok {
		return nil, errors.Mark(errors.Newf("model response has unknown strategy %q", *w.Strategy), models.ErrProvider)
	}

	commands := make([]string, 0, len(*w.Commands))
	for _, c := range *w.Commands {
		if c = strings.TrimSpace(c); c != "" {
			commands = append(commands, c)
		}
	}

	rec := &models.Recommendation{
		Strategy:   strategy,
		Commands:   commands,
		Reasoning:  *w.Reasoning,
		Risks:      w.Risks,
		Confidence: defaultModelConfidence,
	}
	if rec.Risks == nil {
		rec.Risks = []string{}
	}
	if w.RequiresManualReview != nil {
		rec.RequiresManualReview = *w.RequiresManualReview
	}
	if w.Confidence != nil {
		rec.Confidence = clampConfidence(*w.Confidence)
	}
	return rec, nil
}

func clampConfidence(v float64) int {
	c := int(math.Round(v))
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
