package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	fd    int
	isTTY bool
}

// NewPrompter reads from in. When in is a terminal, secrets are read with
// echo disabled.
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	fd := int(in.Fd())
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd, isTTY: term.IsTerminal(fd)}
}

// NewReaderPrompter reads from an arbitrary reader. Secrets are echoed.
func NewReaderPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// IsTerminal reports whether answers come from an interactive terminal.
func (p *Prompter) IsTerminal() bool {
	return p.isTTY
}

// Ask prints label and returns the line typed in reply, without its line
// terminator. Whatever was typed is returned as-is, empty or padded.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if p.isTTY {
		ClearPreviousLines(p.out, len(label)+len(line))
	}
	return line, nil
}

// Secret prints label and reads a value without echoing it. Like Ask, the
// value is returned as-is.
func (p *Prompter) Secret(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if p.isTTY {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		ClearPreviousLines(p.out, len(label))
		return string(b), nil
	}
	return p.readLine()
}

// readLine reads up to the next newline. A final line without one is
// accepted; EOF before any input is an error.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return TrimLineEnding(line), nil
}

// TrimLineEnding strips one trailing "\n" or "\r\n".
func TrimLineEnding(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
