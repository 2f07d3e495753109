// Package feed provides the producers that fill the marquee register: lines
// from a reader, the last line of a watched file, or values posted over HTTP.
package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"marquee/internal/register"
	"marquee/internal/system"
)

// Feed stores input values into a register until its source is exhausted or
// ctx is cancelled. A nil return means the source ended cleanly; any error
// is fatal to the process.
type Feed interface {
	Run(ctx context.Context, reg *register.Register) error
}

// maxLine bounds a single input value.
const maxLine = 1 << 20

// Reader stores every line read from R, one value per line. An empty line
// pauses the marquee.
type Reader struct {
	R io.Reader
}

func (f *Reader) Run(ctx context.Context, reg *register.Register) error {
	sc := bufio.NewScanner(f.R)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		reg.Store(strings.TrimSuffix(sc.Text(), "\r"))
		if ctx.Err() != nil {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	system.Logger.Debug("input closed")
	return nil
}
