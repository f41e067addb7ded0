package repo

import (
	"context"
	"strings"

	"github.com/kilupskalvis/gitgud/internal/models"
)

// MockRepository is a mock implementation of Repository for testing.
type MockRepository struct {
	// IsRepo is returned by IsRepository
	IsRepo bool
	// StatusResult is returned by Status (a copy per call)
	StatusResult *models.RepositoryStatus
	// StatusErr can be set to make Status fail
	StatusErr error
	// FetchResult is returned by Fetch
	FetchResult bool
	// DiffText and DiffErr are returned by Diff
	DiffText string
	DiffErr  error
	// FailOn makes Execute return false for the given "name args" lines
	FailOn map[string]bool

	// Call tracking
	FetchCalls  int
	StatusCalls int
	Executed    []string
}

// NewMockRepository creates a MockRepository for a clean repository on main.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		IsRepo:       true,
		FetchResult:  true,
		StatusResult: &models.RepositoryStatus{Branch: "main", Tracking: "origin/main"},
		FailOn:       make(map[string]bool),
	}
}

// IsRepository returns IsRepo.
func (m *MockRepository) IsRepository() bool {
	return m.IsRepo
}

// Root returns a fixed path.
func (m *MockRepository) Root() string {
	return "/mock/repo"
}

// Status returns a copy of StatusResult.
func (m *MockRepository) Status(ctx context.Context) (*models.RepositoryStatus, error) {
	m.StatusCalls++
	if m.StatusErr != nil {
		return nil, m.StatusErr
	}
	s := *m.StatusResult
	s.Conflicted = append([]string(nil), m.StatusResult.Conflicted...)
	return &s, nil
}

// BranchInfo derives from Status.
func (m *MockRepository) BranchInfo(ctx context.Context) (*models.BranchInfo, error) {
	s, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewBranchInfo(s), nil
}

// Fetch records the call and returns FetchResult.
func (m *MockRepository) Fetch(ctx context.Context) bool {
	m.FetchCalls++
	return m.FetchResult
}

// Execute records the command and fails if it is listed in FailOn.
func (m *MockRepository) Execute(ctx context.Context, name string, args []string) bool {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	m.Executed = append(m.Executed, line)
	return !m.FailOn[line]
}

// Diff returns DiffText or DiffErr.
func (m *MockRepository) Diff(ctx context.Context) (string, error) {
	return m.DiffText, m.DiffErr
}
