package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	tu "marquee/internal/testutil"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Delay != time.Second || c.Width != 20 || !c.Loop || c.Separator != "    " {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Reverse || c.SameLine || c.JSON || c.Prefix != "" || c.Suffix != "" {
		t.Fatalf("flags should default off: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Delay = -time.Millisecond
	c.Width = -1
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
	c = Default()
	c.Delay = 0
	c.Width = 0
	if err := c.Validate(); err != nil {
		t.Fatalf("zero delay and width are allowed: %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	if got := EnvKey("same-line"); got != "MARQUEE_SAME_LINE" {
		t.Fatalf("EnvKey = %q", got)
	}
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntP("width", "w", 20, "")
	fs.Bool("same-line", false, "")
	fs.String("separator", "    ", "")
	return fs
}

func TestBindEnv_FillsUnsetFlags(t *testing.T) {
	fs := newFlags()
	if err := fs.Parse([]string{"--separator", "|"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	env := map[string]string{
		"MARQUEE_WIDTH":     "42",
		"MARQUEE_SAME_LINE": "true",
		"MARQUEE_SEPARATOR": "ignored",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	if err := BindEnv(fs, lookup); err != nil {
		t.Fatalf("BindEnv error: %v", err)
	}
	if w, _ := fs.GetInt("width"); w != 42 {
		t.Fatalf("width = %d, want 42", w)
	}
	if sl, _ := fs.GetBool("same-line"); !sl {
		t.Fatalf("same-line should be set from env")
	}
	if sep, _ := fs.GetString("separator"); sep != "|" {
		t.Fatalf("explicit flag must win over env, got %q", sep)
	}
}

func TestBindEnv_InvalidValue(t *testing.T) {
	fs := newFlags()
	lookup := func(k string) (string, bool) {
		if k == "MARQUEE_WIDTH" {
			return "wide", true
		}
		return "", false
	}
	if err := BindEnv(fs, lookup); err == nil {
		t.Fatalf("expected error for invalid MARQUEE_WIDTH")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	tmp := t.TempDir()
	tu.WithEnv(t, "XDG_CONFIG_HOME", filepath.Join(tmp, "cfg"))
	tu.WithEnv(t, "HOME", tmp)
	tu.WithEnv(t, "MARQUEE_WIDTH", "")
	tu.WithEnv(t, "MARQUEE_DELAY", "250")
	tu.Chdir(t, tmp)

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir error: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MARQUEE_WIDTH=33\nMARQUEE_DELAY=10\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}

	if got := EnvFiles(); len(got) != 1 {
		t.Fatalf("expected one env file, got %v", got)
	}
	if err := LoadEnvFiles(); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}

	if v := os.Getenv("MARQUEE_WIDTH"); v != "33" {
		t.Fatalf("MARQUEE_WIDTH = %q, want 33", v)
	}
	if v := os.Getenv("MARQUEE_DELAY"); v != "250" {
		t.Fatalf("existing env must not be overridden, got %q", v)
	}
}
