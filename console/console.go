// Package console renders the terminal side of the session: CRLF-aware
// printing, prompt styling and the raw-mode lifecycle. Everything writes
// through an io.Writer so tests can capture output.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	titleColor     = color.New(color.FgHiMagenta)
	errorColor     = color.New(color.FgRed)
	highlightColor = color.New(color.FgBlack, color.BgWhite)
	logoColor      = color.New(color.FgYellow)
	commandColor   = color.New(color.FgGreen, color.Bold)
)

// Screen is the controller's whole output surface.
type Screen struct {
	w io.Writer
}

func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w}
}

func (s *Screen) Print(text string) {
	fmt.Fprint(s.w, text)
}

func (s *Screen) Printf(format string, args ...interface{}) {
	fmt.Fprintf(s.w, format, args...)
}

// Line prints text followed by CRLF; raw mode needs the explicit CR.
func (s *Screen) Line(text string) {
	fmt.Fprint(s.w, text, "\r\n")
}

func (s *Screen) Title(text string) {
	titleColor.Fprintf(s.w, "==%s==", text)
	fmt.Fprint(s.w, "\r\n")
}

func (s *Screen) Error(text string) {
	errorColor.Fprint(s.w, "ERROR")
	fmt.Fprint(s.w, ": ", text, "\r\n")
}

// Highlight renders text inverted, for must-read prompt fragments.
func (s *Screen) Highlight(text string) {
	highlightColor.Fprint(s.w, text)
}

// Command renders a menu key in the command style.
func (s *Screen) Command(key string) {
	commandColor.Fprint(s.w, key)
}

func (s *Screen) Logo(logo string) {
	logoColor.Fprint(s.w, logo)
}

func (s *Screen) Echo(r rune) {
	fmt.Fprintf(s.w, "%c", r)
}

// Backspace erases the character left of the cursor.
func (s *Screen) Backspace() {
	fmt.Fprint(s.w, "\x1b[D \x1b[D")
}

func (s *Screen) Clear() {
	fmt.Fprint(s.w, "\x1b[2J")
}

// MoveBottom puts the cursor on the last row, first column, where the
// prompt lives so output scrolls up from the bottom of the screen.
func (s *Screen) MoveBottom() {
	fmt.Fprint(s.w, "\x1b[9999;1H")
}

// EnableRaw switches the controlling terminal to raw mode and enters the
// alternate screen. The returned restore function undoes both and must
// run on every exit path.
func EnableRaw(out io.Writer) (func(), error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(out, "\x1b[?1049h\x1b[H")
	return func() {
		fmt.Fprint(out, "\x1b[?1049l")
		term.Restore(fd, oldState)
	}, nil
}
