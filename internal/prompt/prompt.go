// Package prompt asks the user questions: the start directory, the menu
// choice, and the foundry yes/no. On a terminal it uses pterm's interactive
// widgets; otherwise it reads plain lines, so piped input works.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/term"
)

// ErrNoInput is returned when input ends before an answer is read.
var ErrNoInput = errors.Base("no input")

// NoChoice is returned by Choice for an answer that names no option.
const NoChoice = -1

// Prompter asks questions.
type Prompter interface {
	// Directory asks for a path. Surrounding whitespace and quotes are
	// removed.
	Directory(question string) (string, error)
	// Choice shows numbered options and returns the chosen index, or
	// NoChoice when the answer matches none of them.
	Choice(question string, options []string) (int, error)
	// Confirm asks a yes/no question. An empty answer selects defaultYes.
	Confirm(question string, defaultYes bool) (bool, error)
}

// New returns an interactive prompter when in is a terminal, and a
// line-based one otherwise.
func New(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(in) {
		return Interactive{}
	}
	return NewLine(in, out)
}

// --- Interactive (pterm) ---

// Interactive uses pterm's text input, select, and confirm widgets.
type Interactive struct{}

func (Interactive) Directory(question string) (string, error) {
	s, err := pterm.DefaultInteractiveTextInput.Show(question)
	if err != nil {
		return "", errors.Errorf("reading directory: %w", err)
	}
	return cleanPath(s), nil
}

func (Interactive) Choice(question string, options []string) (int, error) {
	picked, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show(question)
	if err != nil {
		return NoChoice, errors.Errorf("reading choice: %w", err)
	}
	for i, o := range options {
		if o == picked {
			return i, nil
		}
	}
	return NoChoice, nil
}

func (Interactive) Confirm(question string, defaultYes bool) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(defaultYes).Show(question)
	if err != nil {
		return false, errors.Errorf("reading answer: %w", err)
	}
	return ok, nil
}

// --- Line-based ---

// Line reads one answer per line from r and writes questions to w.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

// NewLine creates a line-based prompter.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

func (l *Line) readLine() (string, error) {
	s, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			return strings.TrimSpace(s), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errors.WithStack(ErrNoInput)
		}
		return "", errors.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(s), nil
}

func (l *Line) Directory(question string) (string, error) {
	fmt.Fprintf(l.w, "%s: ", question)
	s, err := l.readLine()
	if err != nil {
		return "", err
	}
	return cleanPath(s), nil
}

func (l *Line) Choice(question string, options []string) (int, error) {
	fmt.Fprintln(l.w, question)
	for i, o := range options {
		fmt.Fprintf(l.w, "  %d) %s\n", i+1, o)
	}
	fmt.Fprint(l.w, "> ")
	s, err := l.readLine()
	if err != nil {
		return NoChoice, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(options) {
		return NoChoice, nil
	}
	return n - 1, nil
}

func (l *Line) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	fmt.Fprintf(l.w, "%s [%s]: ", question, hint)
	s, err := l.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// cleanPath trims whitespace and one pair of surrounding quotes, as left
// by dragging a folder into a terminal.
func cleanPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// --- Scripted ---

// Scripted replays canned answers in order.
type Scripted struct {
	Dirs    []string
	Choices []int
	Answers []bool
	Asked   []string
}

func (s *Scripted) Directory(question string) (string, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Dirs) == 0 {
		return "", errors.WithStack(ErrNoInput)
	}
	d := s.Dirs[0]
	s.Dirs = s.Dirs[1:]
	return d, nil
}

func (s *Scripted) Choice(question string, _ []string) (int, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Choices) == 0 {
		return NoChoice, errors.WithStack(ErrNoInput)
	}
	c := s.Choices[0]
	s.Choices = s.Choices[1:]
	return c, nil
}

func (s *Scripted) Confirm(question string, _ bool) (bool, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Answers) == 0 {
		return false, errors.WithStack(ErrNoInput)
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}
