package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\ny\n", false, true},
		{"", true, false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader(tt.input), &out, true)
		assert.Equal(t, tt.want, p.Confirm("Continue?", tt.def), "input %q", tt.input)
	}
}

func TestConfirm_NonInteractiveDeclines(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("y\n"), &out, false)

	assert.False(t, p.Confirm("Execute these commands?", true))
	assert.Contains(t, out.String(), "non-interactive")
}

func TestLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  fix: handle nil  \n"), &out, true)

	line, err := p.Line("Commit message")
	require.NoError(t, err)
	assert.Equal(t, "fix: handle nil", line)
	assert.Equal(t, "Commit message: ", out.String())
}

func TestLine_NoTrailingNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("docs: readme"), &bytes.Buffer{}, true)

	line, err := p.Line("Commit message")
	require.NoError(t, err)
	assert.Equal(t, "docs: readme", line)
}

func TestLine_NonInteractive(t *testing.T) {
	p := NewPrompter(strings.NewReader("x\n"), &bytes.Buffer{}, false)
	_, err := p.Line("Commit message")
	assert.ErrorIs(t, err, errNotInteractive)
}

func TestSelect(t *testing.T) {
	options := []string{"Use", "Edit", "Cancel"}

	p := NewPrompter(strings.NewReader("\n"), &bytes.Buffer{}, true)
	idx, err := p.Select("Pick", options, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx, "empty answer selects the default")

	var out bytes.Buffer
	p = NewPrompter(strings.NewReader("9\nabc\n3\n"), &out, true)
	idx, err = p.Select("Pick", options, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 2, strings.Count(out.String(), "Enter a number between 1 and 3."))
}

func TestSelect_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{}, true)
	_, err := p.Select("Pick", []string{"a"}, 0)
	assert.Error(t, err)
}

func TestStripComments(t *testing.T) {
	text := "feat: add resolve\n\nbody line   \n# comment\n#another\n"
	assert.Equal(t, "feat: add resolve\n\nbody line", stripComments(text))
}
