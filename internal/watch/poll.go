package watch

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DefaultPollInterval is used when no interval is set.
const DefaultPollInterval = 500 * time.Millisecond

type fileStamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (a fileStamp) same(b fileStamp) bool {
	return a.exists == b.exists && a.size == b.size && a.modTime.Equal(b.modTime)
}

func stampOf(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, size: info.Size(), modTime: info.ModTime()}
}

// PollSource watches a fixed set of files by polling their size and
// modification time. Compilers often replace outputs by rename, which
// polling sees regardless of how the file was written.
type PollSource struct {
	mu     sync.RWMutex
	logger *slog.Logger
	notify NotifyFunc

	interval time.Duration
	stamps   map[string]fileStamp

	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewPollSource creates a polling source for paths.
func NewPollSource(paths []string, interval time.Duration, notify NotifyFunc, logger *slog.Logger) *PollSource {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	stamps := make(map[string]fileStamp, len(paths))
	for _, p := range paths {
		stamps[p] = fileStamp{}
	}

	return &PollSource{
		logger:   logger,
		notify:   notify,
		interval: interval,
		stamps:   stamps,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start records the current state of every file and begins polling.
func (p *PollSource) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	for path := range p.stamps {
		p.stamps[path] = stampOf(path)
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.pollLoop(ctx)

	p.logger.Debug("poll source started", "files", len(p.stamps), "interval", p.interval)
	return nil
}

// Stop stops polling and waits for the loop to exit.
func (p *PollSource) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	<-p.doneCh
	p.logger.Debug("poll source stopped")
}

// IsRunning returns whether the source is polling.
func (p *PollSource) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

func (p *PollSource) pollLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.checkForChanges()
		}
	}
}

func (p *PollSource) checkForChanges() {
	var changed []string

	p.mu.Lock()
	for path, prev := range p.stamps {
		cur := stampOf(path)
		if cur.same(prev) {
			continue
		}
		p.stamps[path] = cur
		if !cur.exists {
			// Mid-replace or deleted; the next write shows up as a change.
			p.logger.Debug("watched file missing", "path", path)
			continue
		}
		changed = append(changed, path)
	}
	p.mu.Unlock()

	for _, path := range changed {
		p.logger.Debug("file changed", "path", path)
		p.notify(path)
	}
}
