package repo

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/kilupskalvis/gitgud/internal/models"
	"go.uber.org/zap"
)

// GitRepository implements Repository with go-git for queries and the git
// binary for commands that touch remotes or rewrite the working tree.
type GitRepository struct {
	repo   *git.Repository
	root   string
	runner Runner
	logger *zap.Logger
}

// Open locates the repository containing path, searching parent directories.
// The returned value is usable even when no repository exists; IsRepository
// reports false and reads return models.ErrUnavailable.
func Open(path string, runner Runner, logger *zap.Logger) *GitRepository {
	if runner == nil {
		runner = NewExecRunner()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &GitRepository{runner: runner, logger: logger}

	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			logger.Debug("failed to open repository", zap.String("path", path), zap.Error(err))
		}
		return g
	}

	g.repo = r
	g.root = path
	if wt, err := r.Worktree(); err == nil {
		g.root = wt.Filesystem.Root()
	}
	return g
}

// IsRepository reports whether a repository was found.
func (g *GitRepository) IsRepository() bool {
	return g.repo != nil
}

// Root returns the top-level directory of the working tree.
func (g *GitRepository) Root() string {
	return g.root
}

// Status computes a fresh snapshot of branch and working-tree state.
func (g *GitRepository) Status(ctx context.Context) (*models.RepositoryStatus, error) {
	if g.repo == nil {
		return nil, errors.Mark(models.ErrNotRepository, models.ErrUnavailable)
	}

	status := &models.RepositoryStatus{Branch: g.currentBranch()}

	if !status.IsDetached() {
		tracking, ahead, behind, err := g.trackingCounts(status.Branch)
		if err != nil {
			// Best effort: no remote, missing refs or a broken walk all mean 0/0
			g.logger.Debug("tracking branch unavailable", zap.String("branch", status.Branch), zap.Error(err))
		} else {
			status.Tracking = tracking
			status.Ahead = ahead
			status.Behind = behind
		}
	}

	if err := g.fillWorktree(status); err != nil {
		g.logger.Debug("worktree status unavailable", zap.Error(err))
	}

	return status, nil
}

// BranchInfo derives the branch view from a fresh status snapshot.
func (g *GitRepository) BranchInfo(ctx context.Context) (*models.BranchInfo, error) {
	status, err := g.Status(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewBranchInfo(status), nil
}

// Fetch updates remote-tracking refs for origin, or the first remote if there
// is no origin. With no remotes configured it is a successful no-op.
func (g *GitRepository) Fetch(ctx context.Context) bool {
	if g.repo == nil {
		return false
	}

	remotes, err := g.repo.Remotes()
	if err != nil {
		g.logger.Warn("failed to list remotes", zap.Error(err))
		return false
	}
	if len(remotes) == 0 {
		return true
	}

	name := remotes[0].Config().Name
	for _, r := range remotes {
		if r.Config().Name == "origin" {
			name = "origin"
			break
		}
	}

	if _, err := g.runner.Run(ctx, g.root, "fetch", name); err != nil {
		g.logger.Warn("fetch failed, using local state", zap.String("remote", name), zap.Error(err))
		return false
	}
	return true
}

// Execute runs one allow-listed git subcommand against the working tree.
func (g *GitRepository) Execute(ctx context.Context, name string, args []string) bool {
	if g.repo == nil {
		return false
	}

	cmd, err := NewCommand(name, args)
	if err != nil {
		g.logger.Error("refusing to run command", zap.String("command", name), zap.Strings("args", args), zap.Error(err))
		return false
	}

	out, err := g.runner.Run(ctx, g.root, cmd.Argv()...)
	if err != nil {
		g.logger.Error("command failed",
			zap.String("command", cmd.String()),
			zap.String("output", strings.TrimSpace(out)),
			zap.Error(err))
		return false
	}

	g.logger.Debug("command succeeded", zap.String("command", cmd.String()))
	return true
}

// Diff returns the unstaged diff followed by an "Untracked files:" listing.
func (g *GitRepository) Diff(ctx context.Context) (string, error) {
	if g.repo == nil {
		return "", errors.Mark(models.ErrNotRepository, models.ErrUnavailable)
	}

	diff, err := g.runner.Run(ctx, g.root, "diff")
	if err != nil {
		return "", errors.Wrap(err, "diff")
	}

	untracked, err := g.untrackedFiles()
	if err != nil {
		return "", errors.Wrap(err, "list untracked files")
	}

	return FormatDiff(diff, untracked), nil
}

// FormatDiff appends an untracked files listing to a unified diff.
func FormatDiff(diff string, untracked []string) string {
	if len(untracked) == 0 {
		return diff
	}

	var b strings.Builder
	b.WriteString(diff)
	b.WriteString("\n\nUntracked files:\n")
	for i, f := range untracked {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.WriteString(f)
	}
	return b.String()
}

// currentBranch returns the short branch name, the symbolic HEAD target for an
// empty repository, or models.DetachedHead.
func (g *GitRepository) currentBranch() string {
	head, err := g.repo.Head()
	if err == nil {
		if head.Name().IsBranch() {
			return head.Name().Short()
		}
		return models.DetachedHead
	}

	// No commits yet: HEAD is symbolic but unresolvable
	sym, err := g.repo.Reference(plumbing.HEAD, false)
	if err == nil && sym.Type() == plumbing.SymbolicReference && sym.Target().IsBranch() {
		return sym.Target().Short()
	}
	return models.DetachedHead
}

// trackingCounts resolves the upstream of branch and counts |upstream..HEAD|
// and |HEAD..upstream|.
func (g *GitRepository) trackingCounts(branch string) (string, int, int, error) {
	cfg, err := g.repo.Config()
	if err != nil {
		return "", 0, 0, err
	}

	bc, ok := cfg.Branches[branch]
	if !ok || bc.Remote == "" || bc.Merge == "" {
		return "", 0, 0, errors.Newf("branch %q has no upstream", branch)
	}

	upstreamRef := bc.Merge
	tracking := bc.Merge.Short()
	if bc.Remote != "." {
		upstreamRef = plumbing.NewRemoteReferenceName(bc.Remote, bc.Merge.Short())
		tracking = bc.Remote + "/" + bc.Merge.Short()
	}

	upstream, err := g.repo.Reference(upstreamRef, true)
	if err != nil {
		// Configured but never fetched
		return tracking, 0, 0, nil
	}

	head, err := g.repo.Head()
	if err != nil {
		return tracking, 0, 0, nil
	}

	local, err := g.ancestors(head.Hash())
	if err != nil {
		return "", 0, 0, err
	}
	remote, err := g.ancestors(upstream.Hash())
	if err != nil {
		return "", 0, 0, err
	}

	ahead, behind := 0, 0
	for h := range local {
		if !remote[h] {
			ahead++
		}
	}
	for h := range remote {
		if !local[h] {
			behind++
		}
	}
	return tracking, ahead, behind, nil
}

// ancestors returns the set of commits reachable from h, including h.
func (g *GitRepository) ancestors(h plumbing.Hash) (map[plumbing.Hash]bool, error) {
	commit, err := g.repo.CommitObject(h)
	if err != nil {
		return nil, err
	}

	seen := make(map[plumbing.Hash]bool)
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	return seen, err
}

// fillWorktree counts file states from the worktree status.
func (g *GitRepository) fillWorktree(status *models.RepositoryStatus) error {
	st, err := g.worktreeStatus()
	if err != nil {
		return err
	}

	for path, fs := range st {
		switch {
		case fs.Staging == git.UpdatedButUnmerged || fs.Worktree == git.UpdatedButUnmerged:
			status.Conflicted = append(status.Conflicted, path)
		case fs.Worktree == git.Untracked:
			status.Created++
		default:
			if fs.Staging != git.Unmodified {
				status.Staged++
			}
			switch fs.Worktree {
			case git.Modified, git.Renamed, git.Copied:
				status.Modified++
			case git.Deleted:
				status.Deleted++
			}
		}
	}

	sort.Strings(status.Conflicted)
	return nil
}

func (g *GitRepository) untrackedFiles() ([]string, error) {
	st, err := g.worktreeStatus()
	if err != nil {
		return nil, err
	}

	var files []string
	for path, fs := range st {
		if fs.Worktree == git.Untracked {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// worktreeStatus returns the worktree status with the user's core.excludesFile
// and the system excludes applied on top of the repository's .gitignore files.
func (g *GitRepository) worktreeStatus() (git.Status, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return nil, err
	}

	root := osfs.New("/")
	if ps, err := gitignore.LoadGlobalPatterns(root); err != nil {
		g.logger.Debug("failed to load global excludes", zap.Error(err))
	} else {
		wt.Excludes = append(wt.Excludes, ps...)
	}
	if ps, err := gitignore.LoadSystemPatterns(root); err != nil {
		g.logger.Debug("failed to load system excludes", zap.Error(err))
	} else {
		wt.Excludes = append(wt.Excludes, ps...)
	}

	return wt.Status()
}
