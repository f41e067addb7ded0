package models

// DecisionContext is the provider-facing view of a repository.
// Providers receive it by value and must treat it as read-only.
type DecisionContext struct {
	LocalBranch        string   `json:"local_branch"`
	RemoteBranch       string   `json:"remote_branch,omitempty"`
	CommitsAhead       int      `json:"commits_ahead"`
	CommitsBehind      int      `json:"commits_behind"`
	UncommittedChanges int      `json:"uncommitted_changes"`
	StagedChanges      int      `json:"staged_changes"`
	HasStash           bool     `json:"has_stash"`
	ConflictingFiles   []string `json:"conflicting_files"`
}

// NewDecisionContext projects a status snapshot into a decision context.
//
// Staged changes and stash presence are always reported as zero/false; the
// decision rules do not consume them yet.
func NewDecisionContext(status *RepositoryStatus) DecisionContext {
	conflicts := make([]string, len(status.Conflicted))
	copy(conflicts, status.Conflicted)

	return DecisionContext{
		LocalBranch:        status.Branch,
		RemoteBranch:       status.Tracking,
		CommitsAhead:       status.Ahead,
		CommitsBehind:      status.Behind,
		UncommittedChanges: status.UncommittedChanges(),
		StagedChanges:      0,
		HasStash:           false,
		ConflictingFiles:   conflicts,
	}
}

// IsDivergent returns true when both ahead and behind are nonzero.
func (c DecisionContext) IsDivergent() bool {
	return IsDivergent(c.CommitsAhead, c.CommitsBehind)
}

// Clone returns a deep copy so a provider cannot affect the caller's context.
func (c DecisionContext) Clone() DecisionContext {
	out := c
	out.ConflictingFiles = make([]string, len(c.ConflictingFiles))
	copy(out.ConflictingFiles, c.ConflictingFiles)
	return out
}
