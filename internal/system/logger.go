package system

import (
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger. Frames own stdout, so every
// diagnostic goes to stderr with timestamps enabled.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "marquee",
})

// SetLevel applies a level name such as "debug", "info" or "error".
func SetLevel(name string) error {
	lvl, err := clog.ParseLevel(name)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}
