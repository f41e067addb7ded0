package models

// DetachedHead is reported as the branch name when HEAD does not point at a branch.
const DetachedHead = "HEAD (detached)"

// BranchInfo is a lightweight view of the current branch and its tracking branch.
// Divergence is derived from Ahead and Behind and cannot be set on its own.
type BranchInfo struct {
	Local  string `json:"local"`
	Remote string `json:"remote,omitempty"` // Empty when no tracking branch is configured
	Ahead  int    `json:"ahead"`
	Behind int    `json:"behind"`
}

// NewBranchInfo builds the branch view from a status snapshot.
func NewBranchInfo(status *RepositoryStatus) *BranchInfo {
	return &BranchInfo{
		Local:  status.Branch,
		Remote: status.Tracking,
		Ahead:  status.Ahead,
		Behind: status.Behind,
	}
}

// IsDivergent returns true when local and remote both have unique commits.
func (b *BranchInfo) IsDivergent() bool {
	return IsDivergent(b.Ahead, b.Behind)
}

// HasRemote returns true if a tracking branch is configured.
func (b *BranchInfo) HasRemote() bool {
	return b.Remote != ""
}

// IsDivergent is the single definition of divergence used across the module.
func IsDivergent(ahead, behind int) bool {
	return ahead > 0 && behind > 0
}
