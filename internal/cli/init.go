package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/config"
	"github.com/kilupskalvis/gitgud/internal/logging"
	"github.com/kilupskalvis/gitgud/internal/ollama"
	"github.com/kilupskalvis/gitgud/internal/repo"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a gitgud config file",
	Long: `Write a .gitgud.toml at the root of the current repository, or the user
config file with --global, and check that the model service is reachable.`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

var (
	initGlobal   bool
	initForce    bool
	initProvider string
	initEndpoint string
	initModel    string
)

func init() {
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "Write the user config file instead of the repository one")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().StringVar(&initProvider, "provider", config.ProviderOllama, "Recommendation provider (ollama or heuristic)")
	initCmd.Flags().StringVar(&initEndpoint, "endpoint", config.DefaultOllamaEndpoint, "Model service URL")
	initCmd.Flags().StringVar(&initModel, "model", config.DefaultOllamaModel, "Model name")
}

func runInit(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	path, err := initConfigPath()
	if err != nil {
		exitError(err)
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		exitError(errors.WithHint(errors.Newf("%s already exists", path), "use --force to overwrite it"))
	}

	cfg := config.Default()
	cfg.Provider = initProvider
	cfg.Ollama.Endpoint = initEndpoint
	cfg.Ollama.Model = initModel
	if err := cfg.Validate(); err != nil {
		exitError(err)
	}

	if cfg.UseModel() {
		fmt.Fprintf(out, "Checking model service at %s...\n", cfg.Ollama.Endpoint)
		client := ollama.NewClient(ollama.Options{
			Endpoint:     cfg.Ollama.Endpoint,
			Model:        cfg.Ollama.Model,
			PingTimeout: cfg.PingTimeout(),
		}, logging.New(cfg.LogLevel, cmd.ErrOrStderr()))
		if err := client.Ping(ctx); err != nil {
			yellow.Fprintf(out, "Warning: model service unreachable (%v), the built-in rules will be used until it is running\n", err)
		} else {
			green.Fprintln(out, "Model service reachable")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		exitError(err)
	}
	if err := cfg.Save(path); err != nil {
		exitError(errors.Wrap(err, "failed to write config"))
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
}

// initConfigPath returns the file init writes to
func initConfigPath() (string, error) {
	if initGlobal {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, config.UserConfigDir, config.UserConfigFile), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	r := repo.Open(cwd, nil, nil)
	if !r.IsRepository() {
		return "", errors.WithHint(errors.New("not inside a git repository"), "use --global to write the user config file")
	}
	return filepath.Join(r.Root(), config.ConfigFile), nil
}
