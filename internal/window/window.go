// Package window computes the visible slice of a scrolling marquee.
//
// Text is measured in runes. When the text is wider than the window it is
// joined with the separator (after it when scanning forward, before it when
// scanning in reverse) and doubled into a wrap buffer, and the window is a
// run of width runes starting at the cursor.
package window

import (
	"strings"
	"unicode/utf8"
)

// Render returns the visible window for text at cursor and the cursor to use
// on the next tick. Text no wider than width is returned as is with the
// cursor untouched. The cursor only moves when rotate is set.
func Render(text, sep string, cursor, width int, reverse, rotate bool) (string, int) {
	n := utf8.RuneCountInString(text)
	if n <= width {
		return text, cursor
	}

	buf := wrapBuffer(text, sep, reverse)
	out := take(buf, cursor, width)
	if !rotate {
		return out, cursor
	}

	if reverse {
		if cursor <= 0 {
			return out, len(buf) - 1
		}
		return out, cursor - 1
	}
	return out, (cursor + 1) % (n + utf8.RuneCountInString(sep))
}

// ResetCursor is the cursor a newly seen text starts from: 0 when scanning
// forward, near the tail of the doubled text when scanning in reverse.
func ResetCursor(text string, width int, reverse bool) int {
	if !reverse {
		return 0
	}
	c := utf8.RuneCountInString(text)*2 - width
	if c < 0 {
		return 0
	}
	return c
}

func wrapBuffer(text, sep string, reverse bool) []rune {
	unit := text + sep
	if reverse {
		unit = sep + text
	}
	return []rune(strings.Repeat(unit, 2))
}

// take copies width runes from buf starting at start. The buffer is periodic,
// so reads running off the end continue from the beginning.
func take(buf []rune, start, width int) string {
	size := len(buf)
	start %= size
	if start < 0 {
		start += size
	}
	out := make([]rune, width)
	for i := range out {
		out[i] = buf[(start+i)%size]
	}
	return string(out)
}
