package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeRunner records git invocations and returns canned results.
type fakeRunner struct {
	calls   [][]string
	outputs map[string]string // keyed by first argument
	errs    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	return f.outputs[args[0]], f.errs[args[0]]
}

func initRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return r, dir
}

func commitFile(t *testing.T, r *git.Repository, dir, name, content string) plumbing.Hash {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))

	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func currentBranchName(t *testing.T, r *git.Repository) string {
	t.Helper()
	head, err := r.Head()
	require.NoError(t, err)
	return head.Name().Short()
}

func setUpstream(t *testing.T, r *git.Repository, branch string, remoteTip plumbing.Hash) {
	t.Helper()
	cfg, err := r.Config()
	require.NoError(t, err)
	cfg.Branches[branch] = &config.Branch{
		Name:   branch,
		Remote: "origin",
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	require.NoError(t, r.SetConfig(cfg))

	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", branch), remoteTip)
	require.NoError(t, r.Storer.SetReference(ref))
}

func TestOpen_NotRepository(t *testing.T) {
	g := Open(t.TempDir(), newFakeRunner(), zap.NewNop())
	assert.False(t, g.IsRepository())

	_, err := g.Status(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUnavailable))
	assert.False(t, g.Fetch(context.Background()))
	assert.False(t, g.Execute(context.Background(), "push", nil))
}

func TestOpen_SearchesParents(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "README.md", "hello")

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	g := Open(nested, newFakeRunner(), zap.NewNop())
	assert.True(t, g.IsRepository())
	assert.NotEmpty(t, g.Root())
}

func TestStatus_CleanWithoutUpstream(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "README.md", "hello")

	g := Open(dir, newFakeRunner(), zap.NewNop())
	status, err := g.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, currentBranchName(t, r), status.Branch)
	assert.Empty(t, status.Tracking)
	assert.Equal(t, 0, status.Ahead)
	assert.Equal(t, 0, status.Behind)
	assert.True(t, status.IsClean())
}

func TestStatus_EmptyRepository(t *testing.T) {
	_, dir := initRepo(t)

	g := Open(dir, newFakeRunner(), zap.NewNop())
	status, err := g.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "master", status.Branch)
	assert.False(t, status.IsDetached())
	assert.True(t, status.IsClean())
}

func TestStatus_WorktreeCounts(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")
	commitFile(t, r, dir, "b.txt", "b")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed"), 0644))
	require.NoError(t, os.Remove(filepath.Join(dir, "b.txt")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("new"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staged.txt"), []byte("staged"), 0644))

	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("staged.txt")
	require.NoError(t, err)

	g := Open(dir, newFakeRunner(), zap.NewNop())
	status, err := g.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, status.Modified)
	assert.Equal(t, 1, status.Deleted)
	assert.Equal(t, 1, status.Created)
	assert.Equal(t, 1, status.Staged)
	assert.Equal(t, 3, status.UncommittedChanges())
	assert.False(t, status.IsClean())
}

func TestStatus_AheadOfUpstream(t *testing.T) {
	r, dir := initRepo(t)
	base := commitFile(t, r, dir, "a.txt", "a")
	commitFile(t, r, dir, "b.txt", "b")
	commitFile(t, r, dir, "c.txt", "c")

	branch := currentBranchName(t, r)
	setUpstream(t, r, branch, base)

	g := Open(dir, newFakeRunner(), zap.NewNop())
	info, err := g.BranchInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "origin/"+branch, info.Remote)
	assert.Equal(t, 2, info.Ahead)
	assert.Equal(t, 0, info.Behind)
	assert.False(t, info.IsDivergent())
}

func TestStatus_Divergent(t *testing.T) {
	r, dir := initRepo(t)
	base := commitFile(t, r, dir, "a.txt", "a")
	branch := currentBranchName(t, r)
	commitFile(t, r, dir, "local.txt", "local")

	// Build a remote-only commit on top of base
	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Hash: base}))
	remoteTip := commitFile(t, r, dir, "remote.txt", "remote")
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branch)}))

	setUpstream(t, r, branch, remoteTip)

	g := Open(dir, newFakeRunner(), zap.NewNop())
	status, err := g.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, status.Ahead)
	assert.Equal(t, 1, status.Behind)
	assert.True(t, models.NewBranchInfo(status).IsDivergent())
}

func TestStatus_UpstreamNeverFetched(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")
	branch := currentBranchName(t, r)

	cfg, err := r.Config()
	require.NoError(t, err)
	cfg.Branches[branch] = &config.Branch{Name: branch, Remote: "origin", Merge: plumbing.NewBranchReferenceName(branch)}
	require.NoError(t, r.SetConfig(cfg))

	g := Open(dir, newFakeRunner(), zap.NewNop())
	status, err := g.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "origin/"+branch, status.Tracking)
	assert.Equal(t, 0, status.Ahead)
	assert.Equal(t, 0, status.Behind)
}

func TestStatus_DetachedHead(t *testing.T) {
	r, dir := initRepo(t)
	first := commitFile(t, r, dir, "a.txt", "a")
	commitFile(t, r, dir, "b.txt", "b")

	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Hash: first}))

	g := Open(dir, newFakeRunner(), zap.NewNop())
	status, err := g.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.DetachedHead, status.Branch)
	assert.True(t, status.IsDetached())
	assert.Empty(t, status.Tracking)
}

func TestFetch_NoRemotesIsSuccess(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")

	runner := newFakeRunner()
	g := Open(dir, runner, zap.NewNop())

	assert.True(t, g.Fetch(context.Background()))
	assert.Empty(t, runner.calls)
}

func TestFetch_PrefersOrigin(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")
	_, err := r.CreateRemote(&config.RemoteConfig{Name: "backup", URLs: []string{"https://example.invalid/backup.git"}})
	require.NoError(t, err)
	_, err = r.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"https://example.invalid/origin.git"}})
	require.NoError(t, err)

	runner := newFakeRunner()
	g := Open(dir, runner, zap.NewNop())

	assert.True(t, g.Fetch(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"fetch", "origin"}, runner.calls[0])
}

func TestFetch_FirstRemoteWithoutOrigin(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")
	_, err := r.CreateRemote(&config.RemoteConfig{Name: "upstream", URLs: []string{"https://example.invalid/up.git"}})
	require.NoError(t, err)

	runner := newFakeRunner()
	g := Open(dir, runner, zap.NewNop())

	assert.True(t, g.Fetch(context.Background()))
	assert.Equal(t, []string{"fetch", "upstream"}, runner.calls[0])
}

func TestFetch_FailureReturnsFalse(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")
	_, err := r.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"https://example.invalid/origin.git"}})
	require.NoError(t, err)

	runner := newFakeRunner()
	runner.errs["fetch"] = errors.New("could not resolve host")
	g := Open(dir, runner, zap.NewNop())

	assert.False(t, g.Fetch(context.Background()))
}

func TestExecute_RunsAllowedCommand(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")

	runner := newFakeRunner()
	g := Open(dir, runner, zap.NewNop())

	assert.True(t, g.Execute(context.Background(), "pull", []string{"--rebase"}))
	assert.Equal(t, []string{"pull", "--rebase"}, runner.calls[0])
}

func TestExecute_FailureIsLogged(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")

	core, logs := observer.New(zap.ErrorLevel)
	runner := newFakeRunner()
	runner.errs["push"] = errors.New("rejected")
	g := Open(dir, runner, zap.New(core))

	assert.False(t, g.Execute(context.Background(), "push", nil))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "command failed", logs.All()[0].Message)
}

func TestExecute_RejectsDisallowedCommand(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")

	core, logs := observer.New(zap.ErrorLevel)
	runner := newFakeRunner()
	g := Open(dir, runner, zap.New(core))

	assert.False(t, g.Execute(context.Background(), "reset", []string{"--hard"}))
	assert.Empty(t, runner.calls, "disallowed commands never reach git")
	assert.Equal(t, 1, logs.Len())
}

func TestDiff_AppendsUntrackedFiles(t *testing.T) {
	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.py"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.py"), []byte("y"), 0644))

	runner := newFakeRunner()
	runner.outputs["diff"] = "diff --git a/a.txt b/a.txt\n"
	g := Open(dir, runner, zap.NewNop())

	diff, err := g.Diff(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(diff, "diff --git a/a.txt b/a.txt"))
	assert.Contains(t, diff, "Untracked files:\n  b.py\n  z.py")
}

func TestFormatDiff_NoUntracked(t *testing.T) {
	assert.Equal(t, "diff", FormatDiff("diff", nil))
}

// withGlobalExcludes points HOME at a directory whose .gitconfig names an
// excludes file containing patterns.
func withGlobalExcludes(t *testing.T, patterns string) {
	t.Helper()
	home := t.TempDir()
	excludes := filepath.Join(home, "gitignore_global")
	require.NoError(t, os.WriteFile(excludes, []byte(patterns), 0644))
	gitconfig := "[core]\n\texcludesfile = " + excludes + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(gitconfig), 0644))
	t.Setenv("HOME", home)
}

func TestStatus_HonoursGlobalExcludes(t *testing.T) {
	withGlobalExcludes(t, "*.log\n")

	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "debug.log"), []byte("noise"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.go"), []byte("package x"), 0644))

	g := Open(dir, newFakeRunner(), zap.NewNop())
	status, err := g.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, status.Created, "debug.log is ignored globally")

	diff, err := g.Diff(context.Background())
	require.NoError(t, err)
	assert.Contains(t, diff, "  new.go")
	assert.NotContains(t, diff, "debug.log")
}

func TestStatus_GloballyIgnoredFileKeepsTreeClean(t *testing.T) {
	withGlobalExcludes(t, ".DS_Store\n")

	r, dir := initRepo(t)
	commitFile(t, r, dir, "a.txt", "a")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte{0}, 0644))

	status, err := Open(dir, newFakeRunner(), zap.NewNop()).Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.IsClean())
}
