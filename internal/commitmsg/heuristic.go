package commitmsg

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kilupskalvis/gitgud/internal/models"
)

// Conventional commit types.
const (
	TypeFeat     = "feat"
	TypeFix      = "fix"
	TypeDocs     = "docs"
	TypeStyle    = "style"
	TypeRefactor = "refactor"
	TypeTest     = "test"
	TypeChore    = "chore"
)

// Types is every accepted conventional commit type.
var Types = []string{TypeFeat, TypeFix, TypeDocs, TypeStyle, TypeRefactor, TypeTest, TypeChore}

// LargeChangeset is the number of files above which the heuristic only
// reports a count.
const LargeChangeset = 50

// MaxSubjectLength caps the first line of a generated message.
const MaxSubjectLength = 72

var (
	featureRe  = regexp.MustCompile(`(?i)\b(add|adds|added|new|create|implement|feature)\b`)
	fixRe      = regexp.MustCompile(`(?i)\b(fix|fixes|fixed|bug|issue|error|correct|resolve)\b`)
	refactorRe = regexp.MustCompile(`(?i)\b(refactor|restructure|reorganize|cleanup|simplify|rename)\b`)
)

var docExtensions = []string{".md", ".rst", ".txt", ".adoc"}

// Heuristic classifies a diff into a conventional commit message. It returns
// "" when there is nothing to describe.
func Heuristic(diff string, status *models.RepositoryStatus) string {
	summary := ParseDiff(diff)
	files := summary.AllFiles()

	if len(files) == 0 && (status == nil || status.UncommittedChanges() == 0) {
		return ""
	}

	count := len(files)
	if status != nil && status.UncommittedChanges() > count {
		count = status.UncommittedChanges()
	}
	if count > LargeChangeset {
		return withBody(Subject(TypeChore, fmt.Sprintf("update %d files", count)), status)
	}

	changed := strings.Join(summary.Changed, "\n")

	var subject string
	switch {
	case len(summary.Declarations) > 0:
		subject = Subject(TypeFeat, "implement "+strings.Join(summary.Declarations, ", "))
	case featureRe.MatchString(changed):
		subject = Subject(TypeFeat, "add new functionality"+inFiles(summary.Files))
	case fixRe.MatchString(changed):
		subject = Subject(TypeFix, "resolve issues"+inFiles(summary.Files))
	case isDocs(files):
		subject = Subject(TypeDocs, "update documentation")
	case refactorRe.MatchString(changed):
		subject = Subject(TypeRefactor, "improve code structure"+inFiles(summary.Files))
	case len(summary.Untracked) > 0:
		subject = Subject(TypeFeat, "add "+describeFiles(summary.Untracked))
	default:
		subject = Subject(TypeChore, "update files")
	}

	return withBody(subject, status)
}

// Subject formats "<type>: <description>" capped at MaxSubjectLength.
func Subject(typ, description string) string {
	s := typ + ": " + strings.TrimSpace(description)
	if len(s) > MaxSubjectLength {
		s = strings.TrimRight(cut(s, MaxSubjectLength-3), " ,") + "..."
	}
	return s
}

// cut returns at most n bytes of s without splitting a rune.
func cut(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func withBody(subject string, status *models.RepositoryStatus) string {
	if status == nil {
		return subject
	}

	var details []string
	if status.Modified > 0 {
		details = append(details, fmt.Sprintf("- Update %d file(s)", status.Modified))
	}
	if status.Created > 0 {
		details = append(details, fmt.Sprintf("- Add %d new file(s)", status.Created))
	}
	if status.Deleted > 0 {
		details = append(details, fmt.Sprintf("- Remove %d file(s)", status.Deleted))
	}
	if len(details) == 0 {
		return subject
	}
	return subject + "\n\n" + strings.Join(details, "\n")
}

func isDocs(files []string) bool {
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !isDocFile(f) {
			return false
		}
	}
	return true
}

func isDocFile(f string) bool {
	base := strings.ToUpper(path.Base(f))
	if strings.HasPrefix(base, "README") || strings.HasPrefix(base, "CHANGELOG") {
		return true
	}
	ext := strings.ToLower(path.Ext(f))
	for _, e := range docExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func describeFiles(files []string) string {
	switch len(files) {
	case 1:
		return path.Base(files[0])
	case 2:
		return path.Base(files[0]) + " and " + path.Base(files[1])
	default:
		return fmt.Sprintf("%d new files", len(files))
	}
}

func inFiles(files []string) string {
	if len(files) != 1 {
		return ""
	}
	return " in " + path.Base(files[0])
}
