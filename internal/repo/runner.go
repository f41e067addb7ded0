package repo

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Runner runs the git binary. Implementations must not invoke a shell.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs git as a child process.
// No timeout is imposed; git's own network and lock timeouts apply.
// Credential prompts are disabled so an unauthenticated remote fails instead
// of waiting for terminal input.
type ExecRunner struct {
	Binary string
}

// NewExecRunner returns a runner for the git binary on PATH.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Binary: "git"}
}

// Run executes git with args in dir and returns its stdout.
// On failure the error includes git's stderr.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return stdout.String(), errors.Wrapf(err, "git %s: %s", strings.Join(args, " "), msg)
	}

	return stdout.String(), nil
}
