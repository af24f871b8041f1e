// Package prompt asks the user for input when a terminal is attached.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompter reads answers from a terminal form or, without one, plain lines.
type Prompter struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool

	lines *bufio.Reader
}

// New returns a Prompter on stdin and stdout.
func New() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stdout, Interactive: IsInteractive()}
}

// GamePath asks for the game directory. An empty answer means detect it.
func (p *Prompter) GamePath() (string, error) {
	const title = "Game directory"
	const hint = "Leave empty to detect it from Steam"

	if !p.Interactive {
		fmt.Fprintf(p.Out, "%s (empty to detect it from Steam):\n", title)
		return p.readLine()
	}

	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(hint).
				Placeholder(`C:\Program Files (x86)\Steam\steamapps\common\Liar's Bar`).
				Value(&answer),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading game directory: %w", err)
	}
	return strings.Trim(strings.TrimSpace(answer), `"`), nil
}

// Confirm asks a yes/no question. Without a terminal it answers yes.
func (p *Prompter) Confirm(title string) (bool, error) {
	if !p.Interactive {
		return true, nil
	}

	ok := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, ErrAborted
	}
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return ok, nil
}

func (p *Prompter) readLine() (string, error) {
	if p.lines == nil {
		p.lines = bufio.NewReader(p.In)
	}
	line, err := p.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.Trim(strings.TrimSpace(line), `"`), nil
}

// WaitForKey prints msg and blocks until a key is pressed. It returns
// immediately when no terminal is attached.
func (p *Prompter) WaitForKey(msg string) {
	if !p.Interactive {
		return
	}
	fmt.Fprintln(p.Out, msg)

	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		_, _ = p.readLine()
		return
	}
	defer term.Restore(fd, state)

	var b [1]byte
	_, _ = os.Stdin.Read(b[:])
}
