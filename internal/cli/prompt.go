package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// errNotInteractive is returned when input is required but stdin is not a terminal.
var errNotInteractive = errors.New("input required but stdin is not a terminal")

// Prompter asks the user questions on out and reads answers from in.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter returns a Prompter. When interactive is false every Confirm
// declines and every other question fails.
func NewPrompter(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

func stdinPrompter(out io.Writer) *Prompter {
	return NewPrompter(os.Stdin, out, term.IsTerminal(int(os.Stdin.Fd())))
}

// Confirm asks a yes/no question. An empty answer selects def.
func (p *Prompter) Confirm(question string, def bool) bool {
	if !p.interactive {
		fmt.Fprintf(p.out, "%s [non-interactive, declining]\n", question)
		return false
	}

	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}

	for {
		fmt.Fprintf(p.out, "%s %s ", question, suffix)
		line, err := p.readLine()
		if err != nil {
			return false
		}
		switch strings.ToLower(line) {
		case "":
			return def
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Line asks for a single line of text.
func (p *Prompter) Line(question string) (string, error) {
	if !p.interactive {
		return "", errNotInteractive
	}
	fmt.Fprintf(p.out, "%s: ", question)
	return p.readLine()
}

// Select shows numbered options and returns the chosen index. An empty answer
// selects def.
func (p *Prompter) Select(question string, options []string, def int) (int, error) {
	if !p.interactive {
		return 0, errNotInteractive
	}

	fmt.Fprintln(p.out, question)
	for i, opt := range options {
		marker := " "
		if i == def {
			marker = "*"
		}
		fmt.Fprintf(p.out, " %s %d) %s\n", marker, i+1, opt)
	}

	for {
		fmt.Fprintf(p.out, "Choice [%d]: ", def+1)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Enter a number between 1 and %d.\n", len(options))
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// editMessage opens msg in $EDITOR (vi if unset) and returns the edited text
// with comment lines removed.
func editMessage(msg string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	f, err := os.CreateTemp("", "gitgud-commit-*.txt")
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	defer os.Remove(f.Name())

	content := msg + "\n\n# Edit the commit message. Lines starting with '#' are ignored.\n"
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", errors.Wrap(err, "write temp file")
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], f.Name())...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "editor %s", editor)
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		return "", err
	}
	return stripComments(string(data)), nil
}

func stripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
