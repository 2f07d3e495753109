// Package sink writes marquee frames to a terminal or any other writer.
package sink

import (
	"io"
	"os"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	runewidth "github.com/mattn/go-runewidth"
)

// Terminal writes frames to w.
type Terminal struct {
	w io.Writer
}

func New(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// WriteLine prints s followed by a newline.
func (t *Terminal) WriteLine(s string) error {
	_, err := io.WriteString(t.w, s+"\n")
	return err
}

// Overwrite returns the carriage to the start of the line and prints s.
// Callers pad s when the previous frame was wider.
func (t *Terminal) Overwrite(s string) error {
	_, err := io.WriteString(t.w, "\r"+s)
	return err
}

// DisplayWidth is the number of terminal cells s occupies, ignoring escape
// sequences.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(xansi.Strip(s))
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
