package cli

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/gitgud/internal/core"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/spf13/cobra"
)

var pushYes bool
var pushNoAI bool

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Analyze the branch and push it safely",
	Long: `Fetch, analyze the branch against its remote and recommend a push strategy.
The recommended commands run only after confirmation, and never when the
recommendation requires manual review.

Examples:
  gitgud push          Analyze, confirm and push
  gitgud push -y       Skip the confirmation
  gitgud push --no-ai  Use only the built-in rules`,
	Args: cobra.NoArgs,
	Run:  runPush,
}

func init() {
	pushCmd.Flags().BoolVarP(&pushYes, "yes", "y", false, "Execute without asking for confirmation")
	pushCmd.Flags().BoolVar(&pushNoAI, "no-ai", false, "Do not consult the model service")
}

func runPush(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext(cmd)
	defer c.Close()

	fmt.Fprintln(c.Out, "Analyzing repository...")

	out, err := core.Push(ctx, c.Repo, c.orchestrator(!pushNoAI), core.PushOptions{
		AssumeYes: pushYes,
		Report: func(_ models.DecisionContext, rec *models.Recommendation) {
			renderRecommendation(c.Out, rec)
		},
		Confirm: func(*models.Recommendation) bool {
			return c.Prompt.Confirm("Execute these commands?", false)
		},
		Observe: stepPrinter(c.Out),
	}, c.Logger)
	if err != nil {
		exitError(err)
	}

	switch {
	case out.ManualReview && len(out.Recommendation.Commands) == 0 && !out.Recommendation.RequiresManualReview:
		green.Fprintln(c.Out, "Nothing to push.")
	case out.ManualReview:
		yellow.Fprintln(c.Out, "Manual review required. No commands were executed.")
		if out.Context.IsDivergent() {
			fmt.Fprintln(c.Out, "Run 'gitgud resolve' for guided resolution.")
		}
		exitErrorf("push aborted: %v", models.ErrManualReview)
	case out.Cancelled:
		yellow.Fprintln(c.Out, "Cancelled. No commands were executed.")
		exitErrorf("push cancelled")
	default:
		green.Fprintf(c.Out, "Done: %d command(s) executed.\n", out.Plan.Completed)
	}
}
