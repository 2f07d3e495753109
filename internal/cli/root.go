package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"marquee/internal/config"
	"marquee/internal/engine"
	"marquee/internal/feed"
	"marquee/internal/register"
	"marquee/internal/sink"
	"marquee/internal/system"
	appver "marquee/internal/version"
)

type rootOptions struct {
	delay     int
	width     int
	noLoop    bool
	prefix    string
	suffix    string
	separator string
	reverse   bool
	sameLine  bool
	json      bool
	watch     string
	listen    string
	logLevel  string
}

func (o *rootOptions) config() config.Config {
	return config.Config{
		Delay:     time.Duration(o.delay) * time.Millisecond,
		Width:     o.width,
		Loop:      !o.noLoop,
		Prefix:    o.prefix,
		Suffix:    o.suffix,
		Separator: o.separator,
		Reverse:   o.reverse,
		SameLine:  o.sameLine,
		JSON:      o.json,
	}
}

func (o *rootOptions) newFeed(in io.Reader) feed.Feed {
	switch {
	case o.watch != "":
		return &feed.File{Path: o.watch}
	case o.listen != "":
		return &feed.HTTP{Addr: o.listen}
	}
	return &feed.Reader{R: in}
}

const rootLong = `Read stdin and output it in a marquee style.

Once a line is read, the previous marquee stops and the new one starts from
the beginning. An empty line pauses output until the next non-empty line.

This is intended for user-facing output. For use in a pipeline, try
"marquee -ld0".

Every flag can also be set through a MARQUEE_<FLAG> environment variable
(for example MARQUEE_WIDTH=40), including from a .env file in the working
directory or in the marquee config directory.`

// NewRootCmd builds the marquee command tree.
func NewRootCmd() *cobra.Command {
	defaults := config.Default()
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "marquee",
		Short:   "Scroll lines of input as a marquee",
		Long:    rootLong,
		Version: appver.AppVersion,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindEnv(cmd.Flags(), nil); err != nil {
				return err
			}
			return system.SetLevel(o.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.config()
			if err := cfg.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.SameLine && !sink.IsTerminal(out) {
				system.Logger.Warn("same-line output is not a terminal; frames will share one line")
			}
			return run(cmd.Context(), cfg, o.newFeed(cmd.InOrStdin()), sink.New(out))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()
	f.IntVarP(&o.delay, "delay", "d", int(defaults.Delay/time.Millisecond), "milliseconds to delay between every print")
	f.IntVarP(&o.width, "width", "w", defaults.Width, "maximum width of the moving content (prefix/suffix not included)")
	f.BoolVarP(&o.noLoop, "no-loop", "l", false, "prevent the marquee from looping (scroll the first line once)")
	f.StringVarP(&o.prefix, "prefix", "p", "", "prefix to print before every output line")
	f.StringVarP(&o.suffix, "suffix", "f", "", "suffix to print after every output line")
	f.StringVarP(&o.separator, "separator", "s", defaults.Separator, "separator placed between repetitions when looping")
	f.BoolVarP(&o.reverse, "reverse", "r", false, "reverse the output (start at the far right and move left)")
	f.BoolVarP(&o.sameLine, "same-line", "L", false, "print the output on the same line using a carriage return")
	f.BoolVarP(&o.json, "json", "j", false, "read input lines as JSON payloads (see \"marquee schema\")")
	f.StringVar(&o.watch, "watch", "", "read input from the last line of a file, following changes")
	f.StringVar(&o.listen, "listen", "", "read input from HTTP requests to /text on this address (host:port)")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.MarkFlagsMutuallyExclusive("watch", "listen")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSchemaCmd())
	return cmd
}

// run drives the feed and the engine until the engine stops, a signal
// arrives or the feed fails. A feed that ends cleanly leaves the engine
// running on the last value it stored.
func run(ctx context.Context, cfg config.Config, in feed.Feed, out engine.Sink) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	reg := &register.Register{}
	eng := engine.New(cfg, reg, out, system.Logger)
	g, gctx := errgroup.WithContext(ctx)

	// Blocking reads such as stdin cannot be interrupted, so the feed runs
	// outside the group and is abandoned once the engine is done.
	feedErr := make(chan error, 1)
	go func() { feedErr <- in.Run(gctx, reg) }()

	g.Go(func() error {
		select {
		case err := <-feedErr:
			if err != nil {
				return err
			}
			system.Logger.Debug("input ended; holding last value")
			return nil
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		defer stop()
		if err := eng.Run(gctx); err != nil && !engine.IsShutdown(err) {
			return fmt.Errorf("render: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Execute runs the CLI.
func Execute() {
	if err := config.LoadEnvFiles(); err != nil {
		system.Logger.Warn("ignoring env files", "err", err)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
