package cli

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a shell completion script for gitgud.

Bash:
  $ source <(gitgud completion bash)

Zsh:
  $ gitgud completion zsh > "${fpath[1]}/_gitgud"

Fish:
  $ gitgud completion fish > ~/.config/fish/completions/gitgud.fish

PowerShell:
  PS> gitgud completion powershell | Out-String | Invoke-Expression
`,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(w, true)
		case "zsh":
			return rootCmd.GenZshCompletion(w)
		case "fish":
			return rootCmd.GenFishCompletion(w, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(w)
		}
	},
}
