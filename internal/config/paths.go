package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the marquee config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/marquee; on macOS
// to ~/Library/Application Support/marquee; and on Windows to %AppData%/marquee.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "marquee"), nil
}

// EnvFiles lists the dotenv files consulted at startup, most specific first:
// ./.env, then <config dir>/.env. Only files that exist are returned.
func EnvFiles() []string {
	candidates := []string{".env"}
	if dir, err := Dir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	out := make([]string, 0, len(candidates))
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			out = append(out, p)
		}
	}
	return out
}
