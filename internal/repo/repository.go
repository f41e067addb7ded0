// Package repo reads repository state and runs a bounded set of git commands.
package repo

import (
	"context"

	"github.com/kilupskalvis/gitgud/internal/models"
)

// Repository defines the contract for reading and updating a git repository.
// Reads degrade to zero values rather than failing so analysis is always possible.
type Repository interface {
	// IsRepository reports whether the working directory or one of its parents is a repository.
	IsRepository() bool

	// Root returns the top-level directory of the working tree.
	Root() string

	// Status computes a fresh snapshot. Returns models.ErrUnavailable if there is no repository.
	Status(ctx context.Context) (*models.RepositoryStatus, error)

	// BranchInfo derives the branch view from a fresh status snapshot.
	BranchInfo(ctx context.Context) (*models.BranchInfo, error)

	// Fetch updates remote-tracking refs. Never fails; returns false on network or auth errors.
	Fetch(ctx context.Context) bool

	// Execute runs one allow-listed git subcommand. Returns false on any failure.
	Execute(ctx context.Context, name string, args []string) bool

	// Diff returns the unstaged diff followed by an "Untracked files:" listing.
	Diff(ctx context.Context) (string, error)
}

// Verify that *GitRepository implements Repository at compile time
var _ Repository = (*GitRepository)(nil)
