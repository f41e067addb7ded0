package repo

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_StripsGitPrefix(t *testing.T) {
	cmd, err := ParseCommand("git pull --rebase")
	require.NoError(t, err)
	assert.Equal(t, "pull", cmd.Name)
	assert.Equal(t, []string{"--rebase"}, cmd.Args)
	assert.Equal(t, "git pull --rebase", cmd.String())
}

func TestParseCommand_WithoutPrefix(t *testing.T) {
	cmd, err := ParseCommand("stash pop")
	require.NoError(t, err)
	assert.Equal(t, []string{"stash", "pop"}, cmd.Argv())
}

func TestParseCommand_Quotes(t *testing.T) {
	cmd, err := ParseCommand(`git commit -m "fix: handle empty input"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-m", "fix: handle empty input"}, cmd.Args)

	cmd, err = ParseCommand(`commit -m 'docs: it''s'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-m", "docs: its"}, cmd.Args)
}

func TestParseCommand_UnterminatedQuote(t *testing.T) {
	_, err := ParseCommand(`commit -m "oops`)
	assert.Error(t, err)
}

func TestParseCommand_Empty(t *testing.T) {
	_, err := ParseCommand("git")
	assert.Error(t, err)

	_, err = ParseCommand("   ")
	assert.Error(t, err)
}

func TestNewCommand_RejectsUnknownSubcommand(t *testing.T) {
	for _, name := range []string{"reset", "clean", "config", "!sh", "checkout"} {
		_, err := NewCommand(name, nil)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, models.ErrCommandNotAllowed), name)
	}
}

func TestNewCommand_RejectsProgramFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"rebase", []string{"--exec", "rm -rf /"}},
		{"rebase", []string{"--exec=make"}},
		{"rebase", []string{"-xmake"}},
		{"pull", []string{"-x"}},
		{"push", []string{"--receive-pack=/tmp/evil"}},
		{"fetch", []string{"--upload-pack", "/tmp/evil"}},
	}

	for _, tt := range tests {
		_, err := NewCommand(tt.name, tt.args)
		require.Error(t, err, "%s %v", tt.name, tt.args)
		assert.True(t, errors.Is(err, models.ErrCommandNotAllowed))
	}
}

func TestNewCommand_CopiesArgs(t *testing.T) {
	args := []string{"origin", "main"}
	cmd, err := NewCommand("push", args)
	require.NoError(t, err)

	args[0] = "evil"
	assert.Equal(t, "origin", cmd.Args[0])
}

func TestAllowedCommands_Sorted(t *testing.T) {
	assert.Equal(t, []string{"add", "commit", "fetch", "merge", "pull", "push", "rebase", "stash"}, AllowedCommands())
}
