package repo

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/models"
)

// allowedCommands is the complete set of git subcommands gitgud will run.
var allowedCommands = map[string]bool{
	"add":    true,
	"commit": true,
	"fetch":  true,
	"merge":  true,
	"pull":   true,
	"push":   true,
	"rebase": true,
	"stash":  true,
}

// deniedFlags make git spawn arbitrary programs.
var deniedFlags = []string{
	"--exec",
	"--upload-pack",
	"--receive-pack",
}

// Command is a validated git subcommand with its arguments.
type Command struct {
	Name string
	Args []string
}

// AllowedCommands returns the allow-listed subcommands in sorted order.
func AllowedCommands() []string {
	names := make([]string, 0, len(allowedCommands))
	for name := range allowedCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewCommand validates name and args against the allow-list.
func NewCommand(name string, args []string) (Command, error) {
	if !allowedCommands[name] {
		return Command{}, errors.Mark(errors.Newf("git %q is not an allowed command", name), models.ErrCommandNotAllowed)
	}

	for _, arg := range args {
		if arg == "-x" || (name == "rebase" && strings.HasPrefix(arg, "-x")) {
			return Command{}, errors.Mark(errors.Newf("argument %q is not allowed", arg), models.ErrCommandNotAllowed)
		}
		for _, flag := range deniedFlags {
			if arg == flag || strings.HasPrefix(arg, flag+"=") {
				return Command{}, errors.Mark(errors.Newf("argument %q is not allowed", arg), models.ErrCommandNotAllowed)
			}
		}
	}

	out := make([]string, len(args))
	copy(out, args)
	return Command{Name: name, Args: out}, nil
}

// ParseCommand parses a plan step such as "git pull --rebase" or "stash pop".
// A leading "git" token is optional. Single and double quotes group arguments.
func ParseCommand(line string) (Command, error) {
	fields, err := splitArgs(line)
	if err != nil {
		return Command{}, err
	}
	if len(fields) > 0 && fields[0] == "git" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return Command{}, errors.Newf("empty command %q", line)
	}
	return NewCommand(fields[0], fields[1:])
}

// Argv returns the arguments passed to the git binary.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(append([]string{"git"}, c.Argv()...), " ")
}

func splitArgs(line string) ([]string, error) {
	var (
		fields  []string
		current strings.Builder
		quote   rune
		inField bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inField = true
		case r == ' ' || r == '\t' || r == '\n':
			if inField {
				fields = append(fields, current.String())
				current.Reset()
				inField = false
			}
		default:
			current.WriteRune(r)
			inField = true
		}
	}

	if quote != 0 {
		return nil, errors.Newf("unterminated quote in %q", line)
	}
	if inField {
		fields = append(fields, current.String())
	}
	return fields, nil
}
