package models

import "github.com/cockroachdb/errors"

// Error kinds shared across packages. Wrap with errors.Mark to classify and
// test with errors.Is.
var (
	// ErrUnavailable means a repository or provider cannot answer at all.
	ErrUnavailable = errors.New("unavailable")

	// ErrProvider means a provider attempted analysis and failed.
	ErrProvider = errors.New("provider error")

	// ErrNoProvider means every provider failed, including the rule-based one.
	ErrNoProvider = errors.New("no provider available")

	// ErrCommandFailed means one step of an approved plan failed.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandNotAllowed means a command is outside the executable allow-list.
	ErrCommandNotAllowed = errors.New("command not allowed")

	// ErrManualReview means the recommendation must not be executed automatically.
	ErrManualReview = errors.New("manual review required")

	// ErrNotRepository means no repository was found at or above the working directory.
	ErrNotRepository = errors.New("not a git repository (or any parent up to root)")
)
