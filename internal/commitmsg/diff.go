// Package commitmsg generates conventional commit messages from a diff.
package commitmsg

import (
	"regexp"
	"strings"
)

// MaxDeclarations caps the number of declaration names extracted from a diff.
const MaxDeclarations = 3

const untrackedHeader = "Untracked files:"

var (
	diffHeaderRe  = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	declarationRe = regexp.MustCompile(`^\+(?:export\s+)?(?:async\s+)?(?:def|class|func|function)\s+(?:\([^)]*\)\s*)?([A-Za-z_][A-Za-z0-9_]*)`)
)

// DiffSummary is what the heuristic needs to know about a diff.
type DiffSummary struct {
	Files        []string // paths from "diff --git" headers
	Untracked    []string // paths from the untracked files listing
	Declarations []string // names of added top-level declarations
	Changed      []string // content of added and removed lines
}

// AllFiles returns tracked and untracked paths without duplicates.
func (s DiffSummary) AllFiles() []string {
	seen := make(map[string]bool, len(s.Files)+len(s.Untracked))
	var out []string
	for _, f := range append(append([]string{}, s.Files...), s.Untracked...) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// ParseDiff extracts file names, added declarations and changed lines from a
// unified diff optionally followed by an "Untracked files:" listing.
func ParseDiff(diff string) DiffSummary {
	var s DiffSummary
	seenDecl := make(map[string]bool)
	inUntracked := false

	for _, line := range strings.Split(diff, "\n") {
		if strings.TrimSpace(line) == untrackedHeader {
			inUntracked = true
			continue
		}
		if inUntracked {
			if f := strings.TrimSpace(line); f != "" {
				s.Untracked = append(s.Untracked, f)
			}
			continue
		}

		if m := diffHeaderRe.FindStringSubmatch(line); m != nil {
			s.Files = append(s.Files, m[2])
			continue
		}
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}

		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			s.Changed = append(s.Changed, line[1:])
		}

		if m := declarationRe.FindStringSubmatch(line); m != nil && len(s.Declarations) < MaxDeclarations && !seenDecl[m[1]] {
			seenDecl[m[1]] = true
			s.Declarations = append(s.Declarations, m[1])
		}
	}
	return s
}
