// Package config holds the immutable marquee settings and the layers that
// populate them: flag defaults, MARQUEE_* environment variables and .env
// files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// EnvPrefix namespaces the environment variables that default flags.
const EnvPrefix = "MARQUEE_"

const (
	DefaultDelay     = 1000 * time.Millisecond
	DefaultWidth     = 20
	DefaultSeparator = "    "
)

// Config is read-only for the lifetime of the process.
type Config struct {
	// Delay is the tick interval.
	Delay time.Duration
	// Width is the number of runes in the animated window. Prefix and
	// suffix are not counted.
	Width     int
	Loop      bool
	Prefix    string
	Suffix    string
	Separator string
	Reverse   bool
	// SameLine overwrites the current terminal line instead of printing
	// one frame per line.
	SameLine bool
	// JSON enables structured payload input.
	JSON bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Delay:     DefaultDelay,
		Width:     DefaultWidth,
		Loop:      true,
		Separator: DefaultSeparator,
	}
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative (got %s)", c.Delay))
	}
	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("width must not be negative (got %d)", c.Width))
	}
	return errors.Join(errs...)
}

// LoadEnvFiles loads the dotenv files returned by EnvFiles. Variables that
// are already set in the process environment are left alone.
func LoadEnvFiles() error {
	files := EnvFiles()
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// EnvKey maps a flag name to its environment variable, e.g. "same-line"
// becomes MARQUEE_SAME_LINE.
func EnvKey(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// BindEnv sets every flag not given on the command line from its
// environment variable, when one is present. lookup defaults to
// os.LookupEnv.
func BindEnv(fs *pflag.FlagSet, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" || f.Name == "version" {
			return
		}
		key := EnvKey(f.Name)
		v, ok := lookup(key)
		if !ok {
			return
		}
		if err := fs.Set(f.Name, v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})
	return errors.Join(errs...)
}
