package feed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	fsnotify "github.com/fsnotify/fsnotify"

	"marquee/internal/register"
	"marquee/internal/system"
)

// File stores the last line of the file at Path, once at start and again
// every time the file is written or replaced. The parent directory is
// watched so editors that save by renaming are picked up. A missing file
// leaves the register untouched.
type File struct {
	Path string
}

func (f *File) Run(ctx context.Context, reg *register.Register) error {
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", f.Path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", f.Path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", f.Path, err)
	}
	if err := loadLastLine(abs, reg); err != nil {
		return err
	}
	system.Logger.Debug("watching input file", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := loadLastLine(abs, reg); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", f.Path, err)
		}
	}
}

func loadLastLine(path string, reg *register.Register) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read input: %w", err)
	}
	reg.Store(LastLine(string(b)))
	return nil
}

// LastLine returns the final line of s, ignoring one trailing newline.
func LastLine(s string) string {
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSuffix(s, "\r")
}
