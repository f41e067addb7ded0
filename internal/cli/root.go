// Package cli implements the command-line interface for gitgud.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/advisor"
	"github.com/kilupskalvis/gitgud/internal/commitmsg"
	"github.com/kilupskalvis/gitgud/internal/config"
	"github.com/kilupskalvis/gitgud/internal/logging"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/kilupskalvis/gitgud/internal/ollama"
	"github.com/kilupskalvis/gitgud/internal/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config *config.Config
	Repo   *repo.GitRepository
	Logger *zap.Logger
	Out    io.Writer
	Prompt *Prompter
}

// Close flushes the logger
func (c *cmdContext) Close() {
	_ = c.Logger.Sync()
}

// initContext loads config, builds the logger and opens the repository
func initContext(cmd *cobra.Command) *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError(errors.Wrap(err, "failed to load config"))
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(level, cmd.ErrOrStderr())

	cwd, err := os.Getwd()
	if err != nil {
		exitError(err)
	}

	r := repo.Open(cwd, repo.NewExecRunner(), logger)
	if !r.IsRepository() {
		exitError(errors.WithHint(models.ErrNotRepository, "run gitgud inside a git working tree"))
	}

	out := cmd.OutOrStdout()
	return &cmdContext{
		Config: cfg,
		Repo:   r,
		Logger: logger,
		Out:    out,
		Prompt: stdinPrompter(out),
	}
}

// ollamaClient builds a model service client from the config
func (c *cmdContext) ollamaClient() *ollama.Client {
	return ollama.NewClient(ollama.Options{
		Endpoint:       c.Config.Ollama.Endpoint,
		Model:          c.Config.Ollama.Model,
		PingTimeout:   c.Config.PingTimeout(),
		RequestTimeout: c.Config.RequestTimeout(),
	}, c.Logger)
}

// orchestrator builds the provider chain, with the model provider only when
// useModel is set and the config enables it
func (c *cmdContext) orchestrator(useModel bool) *advisor.Orchestrator {
	var model *advisor.ModelProvider
	if useModel && c.Config.UseModel() {
		model = advisor.NewModelProvider(c.ollamaClient(), c.Logger)
	}
	return advisor.NewOrchestrator(model, c.Logger)
}

// commitGenerator builds the commit message generator
func (c *cmdContext) commitGenerator(useModel bool) *commitmsg.Generator {
	var model *commitmsg.ModelGenerator
	if useModel {
		model = commitmsg.NewModelGenerator(c.ollamaClient(), c.Config.Commit.MaxDiffChars, c.Logger)
	}
	return commitmsg.NewGenerator(model, c.Logger)
}

var rootCmd = &cobra.Command{
	Use:   "gitgud",
	Short: "A git assistant that recommends how to sync your branch",
	Long: `gitgud inspects your repository, explains its state and recommends the
safest way to push, pull or resolve a divergent branch. Recommendations come
from a local model service when one is reachable and from built-in rules
otherwise. Nothing runs without your confirmation.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// exitError prints an error with any hints and exits
func exitError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
	}
	os.Exit(1)
}

// exitErrorf prints a formatted error and exits
func exitErrorf(format string, args ...interface{}) {
	exitError(errors.Newf(format, args...))
}
