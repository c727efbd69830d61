package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lockam/lockam/internal/security"
)

// prompter reads answers from the command's input. Prompts go to stderr so
// stdout stays clean for piping.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	tty *os.File
}

func newPrompter(cmd *cobra.Command) *prompter {
	p := &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = f
	}
	return p
}

// Line prints label and returns the next input line without its newline.
func (p *prompter) Line(label string) (string, error) {
	if label != "" {
		_, _ = fmt.Fprint(p.out, label)
	}
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// Password reads without echo on a terminal and falls back to Line when
// input is piped.
func (p *prompter) Password(label string) (security.Secret, error) {
	if p.tty == nil {
		s, err := p.Line(label)
		if err != nil {
			return nil, err
		}
		return security.NewSecret(s), nil
	}
	_, _ = fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(int(p.tty.Fd()))
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return nil, err
	}
	return security.Secret(b), nil
}
