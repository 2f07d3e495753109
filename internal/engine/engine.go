// Package engine drives the marquee: once per tick it samples the register,
// renders the next window and hands the decorated frame to a sink.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"marquee/internal/config"
	"marquee/internal/payload"
	"marquee/internal/register"
	"marquee/internal/sink"
	"marquee/internal/system"
	"marquee/internal/window"
)

// Sink receives rendered frames.
type Sink interface {
	WriteLine(s string) error
	Overwrite(s string) error
}

// Outcome describes what a single tick did.
type Outcome int

const (
	// Idle means the register was empty and nothing was emitted.
	Idle Outcome = iota
	// Rendered means a frame was emitted.
	Rendered
	// DecodeFailed means a structured value was rejected and the register
	// cleared.
	DecodeFailed
	// Stopped means the single pass of a non-looping marquee is complete.
	// Every later tick reports Stopped as well.
	Stopped
)

func (o Outcome) String() string {
	switch o {
	case Idle:
		return "idle"
	case Rendered:
		return "rendered"
	case DecodeFailed:
		return "decode-failed"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Engine owns the animation state. It is not safe for concurrent use; the
// register is the only thing it shares with the feed.
type Engine struct {
	cfg config.Config
	reg *register.Register
	out Sink
	log *log.Logger

	cursor    int
	prevText  string
	prevFrame string
	stopped   bool
}

// New returns an engine reading from reg and writing to out. A nil logger
// means system.Logger.
func New(cfg config.Config, reg *register.Register, out Sink, logger *log.Logger) *Engine {
	if logger == nil {
		logger = system.Logger
	}
	return &Engine{cfg: cfg, reg: reg, out: out, log: logger}
}

// Cursor returns the cursor the next rendered frame starts from.
func (e *Engine) Cursor() int { return e.cursor }

// Run ticks until the marquee stops, ctx is cancelled or the sink fails.
// It returns nil when a non-looping marquee completes. Reaching the end of
// the input does not stop it.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		outcome, err := e.Tick()
		if err != nil {
			return err
		}
		if outcome == Stopped {
			e.log.Debug("marquee finished", "cursor", e.cursor)
			return nil
		}
		if err := sleep(ctx, e.cfg.Delay-time.Since(start)); err != nil {
			return err
		}
	}
}

// Tick performs one iteration without sleeping.
func (e *Engine) Tick() (Outcome, error) {
	if e.stopped {
		return Stopped, nil
	}

	raw, ok := e.reg.Load()
	if !ok || raw == "" {
		return Idle, nil
	}

	p := payload.Plain(raw)
	if e.cfg.JSON {
		decoded, err := payload.Decode(raw)
		if err != nil {
			e.log.Error("invalid payload", "err", err)
			e.reg.ClearIf(raw)
			return DecodeFailed, nil
		}
		p = decoded
	}

	text := p.Content
	if text != e.prevText {
		e.cursor = window.ResetCursor(text, e.cfg.Width, e.cfg.Reverse)
		e.log.Debug("new text", "len", utf8.RuneCountInString(text), "cursor", e.cursor)
	}
	e.prevText = text

	win, next := window.Render(text, e.cfg.Separator, e.cursor, e.cfg.Width, e.cfg.Reverse, p.Rotate)
	e.cursor = next

	frame := e.decorate(win, p)

	if !e.cfg.Loop && e.cursor+e.cfg.Width == utf8.RuneCountInString(text)+2 {
		e.stopped = true
		return Stopped, nil
	}

	if err := e.emit(frame); err != nil {
		return Rendered, err
	}
	return Rendered, nil
}

// decorate prepends the static prefix and then the payload prefix, and
// appends the payload suffix and then the static suffix. The payload prefix
// therefore ends up outermost on the left while the static suffix is
// outermost on the right.
func (e *Engine) decorate(win string, p payload.Payload) string {
	out := win
	out = e.cfg.Prefix + out
	out = p.Prefix + out
	out += p.Suffix
	out += e.cfg.Suffix
	return out
}

func (e *Engine) emit(frame string) error {
	if !e.cfg.SameLine {
		return e.out.WriteLine(frame)
	}
	line := frame
	if pad := sink.DisplayWidth(e.prevFrame) - sink.DisplayWidth(frame); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	e.prevFrame = frame
	return e.out.Overwrite(line)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsShutdown reports whether err only signals that the engine was asked to
// stop, by cancellation or deadline.
func IsShutdown(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
