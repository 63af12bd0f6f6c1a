package prompts

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Store serves system prompts. Built-in defaults can be overridden by
// <name>.txt files in an override directory; Watch reloads overrides when
// the directory changes, so prompt tuning does not require a restart.
type Store struct {
	dir string

	mu        sync.RWMutex
	overrides map[string]string
}

// NewStore creates a store with optional override directory dir (empty
// disables overrides). Existing override files are loaded immediately.
func NewStore(dir string, logger *slog.Logger) *Store {
	s := &Store{dir: dir, overrides: map[string]string{}}
	if dir != "" {
		s.reload(logger)
	}
	return s
}

// Get returns the prompt text for name, preferring an override when one is
// loaded. Unknown names return an empty string.
func (s *Store) Get(name string) string {
	s.mu.RLock()
	text, ok := s.overrides[name]
	s.mu.RUnlock()
	if ok {
		return text
	}
	return defaults()[name]
}

func (s *Store) reload(logger *slog.Logger) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("prompts: read override dir failed",
				slog.String("dir", s.dir),
				slog.String("error", err.Error()))
		}
		return
	}

	loaded := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".txt")
		if _, known := defaults()[name]; !known {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			logger.Warn("prompts: read override failed",
				slog.String("file", entry.Name()),
				slog.String("error", err.Error()))
			continue
		}
		loaded[name] = strings.TrimSpace(string(data))
	}

	s.mu.Lock()
	s.overrides = loaded
	s.mu.Unlock()

	if len(loaded) > 0 {
		logger.Info("prompts: overrides loaded", slog.Int("count", len(loaded)))
	}
}

// Watch reloads overrides whenever the override directory changes, until
// ctx is cancelled. Returns immediately when no directory is configured.
func (s *Store) Watch(ctx context.Context, logger *slog.Logger) error {
	if s.dir == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		logger.Warn("prompts: watch failed", slog.String("dir", s.dir), slog.String("error", err.Error()))
		return nil
	}

	logger.Info("prompts: watching overrides", slog.String("dir", s.dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.reload(logger)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompts: watcher error", slog.String("error", err.Error()))
		}
	}
}
