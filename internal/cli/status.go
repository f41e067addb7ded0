package cli

import (
	"context"

	"github.com/kilupskalvis/gitgud/internal/core"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branch and working tree health",
	Long: `Fetch from the remote, then show the current branch, its tracking branch,
ahead/behind counts, local changes and an overall health classification.`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext(cmd)
	defer c.Close()

	_, status, err := core.BuildContext(ctx, c.Repo, c.Logger)
	if err != nil {
		exitError(err)
	}

	renderStatus(c.Out, status, core.AssessHealth(status))
}
