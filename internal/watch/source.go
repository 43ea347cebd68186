package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// NotifyFunc receives changed paths. Session.Notify satisfies it.
type NotifyFunc func(path string) bool

// FSSource forwards filesystem events under a set of roots. Directories
// created after Add are watched as they appear.
type FSSource struct {
	watcher *fsnotify.Watcher
	notify  NotifyFunc
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
	stopped chan struct{}
}

// NewFSSource creates a source that calls notify for every created,
// written or renamed path.
func NewFSSource(notify NotifyFunc, logger *slog.Logger) (*FSSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FSSource{
		watcher: w,
		notify:  notify,
		logger:  logger,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Add watches root and every directory below it.
func (s *FSSource) Add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", root)
	}
	return s.addTree(root)
}

func (s *FSSource) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := s.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		s.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// WatchList returns the watched directories.
func (s *FSSource) WatchList() []string {
	return s.watcher.WatchList()
}

// Start begins forwarding events until ctx is cancelled or Stop is called.
func (s *FSSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.running = true

	go s.loop(ctx)
	return nil
}

func (s *FSSource) loop(ctx context.Context) {
	defer close(s.stopped)

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(event)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("file watcher error", "error", err)

		case <-ctx.Done():
			return

		case <-s.done:
			return
		}
	}
}

func (s *FSSource) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addTree(event.Name); err != nil {
				s.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if s.notify(event.Name) {
		s.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
	}
}

// Stop stops forwarding events and releases the watcher.
func (s *FSSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.running = false
		close(s.done)
		<-s.stopped
	}
	return s.watcher.Close()
}
