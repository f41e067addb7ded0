package models

// RepositoryStatus is a snapshot of the working tree and branch state.
// It is recomputed on every read and never cached.
type RepositoryStatus struct {
	Branch     string   `json:"branch"`             // DetachedHead when HEAD is detached
	Tracking   string   `json:"tracking,omitempty"` // e.g. "origin/main", empty if none
	Ahead      int      `json:"ahead"`
	Behind     int      `json:"behind"`
	Modified   int      `json:"modified"`
	Created    int      `json:"created"` // Untracked files
	Deleted    int      `json:"deleted"`
	Staged     int      `json:"staged"`
	Conflicted []string `json:"conflicted,omitempty"`
}

// IsClean returns true if there are no modified, untracked, deleted or staged files.
func (s *RepositoryStatus) IsClean() bool {
	return s.Modified == 0 && s.Created == 0 && s.Deleted == 0 && s.Staged == 0
}

// IsDetached returns true if HEAD is not on a branch.
func (s *RepositoryStatus) IsDetached() bool {
	return s.Branch == DetachedHead
}

// UncommittedChanges returns the number of modified, untracked and deleted files.
func (s *RepositoryStatus) UncommittedChanges() int {
	return s.Modified + s.Created + s.Deleted
}

// HasConflicts returns true if any file is in an unmerged state.
func (s *RepositoryStatus) HasConflicts() bool {
	return len(s.Conflicted) > 0
}
