package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_AskReturnsInputAsIs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "alice\n", expected: "alice"},
		{name: "padded", input: "  alice \n", expected: "  alice "},
		{name: "empty", input: "\n", expected: ""},
		{name: "crlf", input: "alice\r\n", expected: "alice"},
		{name: "no newline", input: "alice", expected: "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewReaderPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Ask("Username: ")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, "Username: ", out.String())
			assert.False(t, p.IsTerminal())
		})
	}
}

func TestPrompter_SecretKeepsSpaces(t *testing.T) {
	p := NewReaderPrompter(strings.NewReader(" p&q=1 \r\n"), &bytes.Buffer{})
	got, err := p.Secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, " p&q=1 ", got)
}

func TestPrompter_SecretEmptyLine(t *testing.T) {
	p := NewReaderPrompter(strings.NewReader("\n"), &bytes.Buffer{})
	got, err := p.Secret("Password: ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrompter_EOF(t *testing.T) {
	p := NewReaderPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Secret("Password: ")
	assert.Error(t, err)
	_, err = p.Ask("Username: ")
	assert.Error(t, err)
}

func TestTrimLineEnding(t *testing.T) {
	assert.Equal(t, " x ", TrimLineEnding(" x \r\n"))
	assert.Equal(t, "x\n", TrimLineEnding("x\n\n"))
	assert.Equal(t, "x", TrimLineEnding("x"))
}

func TestClearPreviousLines(t *testing.T) {
	var out bytes.Buffer
	ClearPreviousLines(&out, 10)
	// one line of text plus the line after Enter
	assert.Equal(t, "\r\x1b[2K\x1b[1A\r\x1b[2K", out.String())
}
