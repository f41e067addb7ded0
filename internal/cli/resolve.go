package cli

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/gitgud/internal/core"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Guide the resolution of a divergent branch",
	Long: `When local and remote both have commits the other lacks, explain the
situation, suggest rebase or merge and run the chosen plan. Uncommitted
changes are stashed around the pull.`,
	Args: cobra.NoArgs,
	Run:  runResolve,
}

func runResolve(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext(cmd)
	defer c.Close()

	dc, _, err := core.BuildContext(ctx, c.Repo, c.Logger)
	if err != nil {
		exitError(err)
	}

	if !dc.IsDivergent() {
		fmt.Fprintln(c.Out, core.SyncTip(dc))
		return
	}

	advice := core.ResolveAdvice(dc.CommitsAhead, dc.CommitsBehind)
	rows := fmt.Sprintf("%s\n\n%s%d unique local commit(s)\n%s%d unique remote commit(s) on %s\n\nSuggested: git %s\n%s",
		titleStyle.Render("Divergent branch"),
		labelStyle.Render("Local:  "), dc.CommitsAhead,
		labelStyle.Render("Remote: "), dc.CommitsBehind, dc.RemoteBranch,
		advice.Command, advice.Reasoning)
	fmt.Fprintln(c.Out, warnPanelStyle.Render(rows))

	def := 0
	if advice.Choice == core.ChoiceMerge {
		def = 1
	}
	choice, err := c.Prompt.Select("How do you want to integrate the remote commits?",
		[]string{"Rebase (linear history)", "Merge (keeps both histories)", "Cancel"}, def)
	if err != nil {
		exitError(err)
	}

	var resolve core.ResolveChoice
	switch choice {
	case 0:
		resolve = core.ChoiceRebase
	case 1:
		resolve = core.ChoiceMerge
	default:
		yellow.Fprintln(c.Out, "Cancelled. No commands were executed.")
		return
	}

	stash := dc.UncommittedChanges > 0
	if stash {
		fmt.Fprintf(c.Out, "%d uncommitted change(s) will be stashed and restored.\n", dc.UncommittedChanges)
	}

	plan := core.ExecutePlan(ctx, c.Repo, core.ResolutionPlan(resolve, stash), stepPrinter(c.Out), c.Logger)
	if err := plan.Err(); err != nil {
		exitError(err)
	}
	green.Fprintln(c.Out, "Branch integrated with remote.")

	if !c.Prompt.Confirm("Push now?", true) {
		fmt.Fprintln(c.Out, "Run 'gitgud push' when ready.")
		return
	}
	push := core.ExecutePlan(ctx, c.Repo, []string{"push"}, stepPrinter(c.Out), c.Logger)
	if err := push.Err(); err != nil {
		exitError(err)
	}
}
