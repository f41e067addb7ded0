package commitmsg

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/kilupskalvis/gitgud/internal/ollama"
	"go.uber.org/zap"
)

// DefaultMaxDiffChars bounds the diff sent to the model.
const DefaultMaxDiffChars = 3000

const truncationMarker = "\n... (diff truncated)"

var (
	conventionalRe = regexp.MustCompile(`^(feat|fix|docs|style|refactor|test|chore)(\([^)]+\))?!?:\s*\S`)
	typeRe         = regexp.MustCompile(`^(feat|fix|docs|style|refactor|test|chore)(\([^)]+\))?$`)
	preambleRe     = regexp.MustCompile(`(?i)^(here's|here is|the commit message is)[^:\n]*:\s*`)
)

// stopPhrases mark the start of prose a model appends after the message.
var stopPhrases = []string{
	"this commit",
	"this message",
	"explanation",
	"note:",
	"i hope",
	"let me know",
	"the above",
	"feel free",
}

// ModelGenerator asks the model service for a commit message.
type ModelGenerator struct {
	client   *ollama.Client
	maxChars int
	logger   *zap.Logger
}

// NewModelGenerator returns a generator that sends at most maxChars of diff.
func NewModelGenerator(client *ollama.Client, maxChars int, logger *zap.Logger) *ModelGenerator {
	if maxChars <= 0 {
		maxChars = DefaultMaxDiffChars
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelGenerator{client: client, maxChars: maxChars, logger: logger}
}

// Available checks the model service.
func (m *ModelGenerator) Available(ctx context.Context) bool {
	return m.client.Ping(ctx) == nil
}

// Generate returns a conventional commit message or an error marked models.ErrProvider.
func (m *ModelGenerator) Generate(ctx context.Context, diff string, status *models.RepositoryStatus) (string, error) {
	text, err := m.client.Generate(ctx, BuildPrompt(Truncate(diff, m.maxChars), status), ollama.FormatJSON)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "commit message generation failed"), models.ErrProvider)
	}

	msg, err := ParseMessage(text)
	if err == nil {
		return msg, nil
	}
	m.logger.Debug("model returned malformed JSON, extracting message from text", zap.Error(err))

	if msg = ExtractConventional(text); msg != "" {
		return msg, nil
	}
	return "", errors.Mark(errors.New("model response contained no commit message"), models.ErrProvider)
}

// Truncate cuts diff to at most max bytes on a rune boundary and appends a
// marker when it does.
func Truncate(diff string, max int) string {
	if len(diff) <= max {
		return diff
	}
	return cut(diff, max) + truncationMarker
}

// BuildPrompt asks for a strict {type, message} JSON object.
func BuildPrompt(diff string, status *models.RepositoryStatus) string {
	var modified, created, deleted int
	if status != nil {
		modified, created, deleted = status.Modified, status.Created, status.Deleted
	}

	var b strings.Builder
	b.WriteString("You are a Git commit message expert following the Conventional Commits format.\n\n")
	b.WriteString("Analyze this git diff and write a clear, concise commit message.\n\n")
	b.WriteString("Repository state:\n")
	fmt.Fprintf(&b, "- Modified files: %d\n", modified)
	fmt.Fprintf(&b, "- New files: %d\n", created)
	fmt.Fprintf(&b, "- Deleted files: %d\n\n", deleted)
	b.WriteString("Diff:\n")
	b.WriteString(diff)
	b.WriteString("\n\nRules:\n")
	fmt.Fprintf(&b, "- type is one of: %s, optionally followed by a scope in parentheses\n", strings.Join(Types, ", "))
	fmt.Fprintf(&b, "- \"<type>: <message>\" must fit in %d characters\n", MaxSubjectLength)
	b.WriteString("- use the imperative mood (\"add\" not \"added\")\n")
	b.WriteString("- do not include diff content\n\n")
	b.WriteString("Respond ONLY with valid JSON in this exact format:\n")
	b.WriteString("{\"type\": \"feat\", \"message\": \"short description\"}")
	return b.String()
}

type wireMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ParseMessage decodes {type, message} into "<type>: <message>".
func ParseMessage(text string) (string, error) {
	var w wireMessage
	if err := json.Unmarshal([]byte(stripFences(text)), &w); err != nil {
		return "", errors.Wrap(err, "decode commit message")
	}

	typ := strings.ToLower(strings.TrimSpace(w.Type))
	if !typeRe.MatchString(typ) {
		return "", errors.Newf("unknown commit type %q", w.Type)
	}

	msg := strings.TrimSpace(w.Message)
	// Some models repeat the type inside the message
	if conventionalRe.MatchString(msg) {
		if i := strings.Index(msg, ":"); i >= 0 {
			msg = strings.TrimSpace(msg[i+1:])
		}
	}
	if msg == "" {
		return "", errors.New("empty commit message")
	}

	lines := strings.SplitN(msg, "\n", 2)
	subject := Subject(typ, lines[0])
	if len(lines) == 2 && strings.TrimSpace(lines[1]) != "" {
		return subject + "\n\n" + strings.TrimSpace(lines[1]), nil
	}
	return subject, nil
}

// ExtractConventional finds a conventional commit line in free text and keeps
// the lines after it up to the first explanatory prose.
func ExtractConventional(text string) string {
	text = preambleRe.ReplaceAllString(stripFences(text), "")

	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if conventionalRe.MatchString(cleanLine(line)) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	out := []string{capSubject(cleanLine(lines[start]))}
	for _, line := range lines[start+1:] {
		line = strings.TrimSpace(line)
		if isStopLine(line) {
			break
		}
		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// cleanLine removes list markers and quotes a model wraps around a subject.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*> ")
	return strings.Trim(line, "`\"'")
}

func capSubject(line string) string {
	i := strings.Index(line, ":")
	return Subject(line[:i], line[i+1:])
}

func isStopLine(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range stopPhrases {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
