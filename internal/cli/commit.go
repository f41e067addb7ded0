package cli

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var commitMessage string
var commitAI bool
var commitManual bool

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Stage all changes and commit with a generated message",
	Long: `Stage every change in the working tree and commit it.

Without flags a conventional commit message is generated from the diff with
built-in heuristics; --ai asks the model service first. A generated message
can be used as is, edited, replaced or the commit cancelled.

Examples:
  gitgud commit                   Generate a message with heuristics
  gitgud commit --ai              Generate a message with the model service
  gitgud commit -m "fix: typo"    Use the given message
  gitgud commit --manual          Type the message yourself`,
	Args: cobra.NoArgs,
	Run:  runCommit,
}

func init() {
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "Commit message")
	commitCmd.Flags().BoolVar(&commitAI, "ai", false, "Generate the message with the model service")
	commitCmd.Flags().BoolVar(&commitManual, "manual", false, "Type the commit message")
	commitCmd.MarkFlagsMutuallyExclusive("message", "ai", "manual")
}

func runCommit(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext(cmd)
	defer c.Close()

	status, err := c.Repo.Status(ctx)
	if err != nil {
		exitError(err)
	}
	if status.IsClean() {
		fmt.Fprintln(c.Out, "Nothing to commit, working tree clean")
		return
	}

	changed := status.UncommittedChanges() + status.Staged
	if limit := c.Config.Commit.LargeCommitFiles; limit > 0 && changed > limit {
		yellow.Fprintf(c.Out, "Warning: %d changed files exceeds %d.\n", changed, limit)
		if !c.Prompt.Confirm("Commit all of them?", false) {
			exitErrorf("commit cancelled")
		}
	}

	msg := commitMessage
	switch {
	case msg != "":
	case commitManual:
		msg = askMessage(c)
	default:
		msg = generateMessage(ctx, c, status)
	}

	if msg == "" {
		exitErrorf("aborting commit due to empty commit message")
	}

	if !c.Repo.Execute(ctx, "add", []string{"-A"}) {
		exitErrorf("failed to stage changes")
	}
	if !c.Repo.Execute(ctx, "commit", []string{"-m", msg}) {
		exitErrorf("git commit failed")
	}

	green.Fprintf(c.Out, "[OK] Committed %d file(s)\n", changed)
}

// generateMessage produces a message and lets the user accept or change it
func generateMessage(ctx context.Context, c *cmdContext, status *models.RepositoryStatus) string {
	diff, err := c.Repo.Diff(ctx)
	if err != nil {
		c.Logger.Warn("failed to read diff, generating from status only", zap.Error(err))
	}

	msg := c.commitGenerator(commitAI).Generate(ctx, diff, status)
	if msg == "" {
		yellow.Fprintln(c.Out, "Could not generate a commit message.")
		return askMessage(c)
	}

	renderMessage(c.Out, msg)

	choice, err := c.Prompt.Select("Use this message?", []string{"Use", "Edit", "Write my own", "Cancel"}, 0)
	if err != nil {
		exitError(err)
	}

	switch choice {
	case 0:
		return msg
	case 1:
		edited, err := editMessage(msg)
		if err != nil {
			exitError(err)
		}
		return edited
	case 2:
		return askMessage(c)
	default:
		exitErrorf("commit cancelled")
		return ""
	}
}

func askMessage(c *cmdContext) string {
	msg, err := c.Prompt.Line("Commit message")
	if err != nil {
		exitError(err)
	}
	return msg
}
