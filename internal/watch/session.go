// Package watch rebuilds outputs after their inputs change.
//
// A Session debounces change notifications and runs at most one build at a
// time. Event sources (FSSource, PollSource) feed it paths through Notify.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultDelay is the quiet period used when Options.Delay is zero.
const DefaultDelay = 250 * time.Millisecond

// State is the debounce state of a session.
type State int

const (
	StateIdle State = iota
	StatePending
	StateBuilding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateBuilding:
		return "building"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// BuildFunc rebuilds outputs. changed holds the accepted paths collected
// since the previous build, sorted and without duplicates.
type BuildFunc func(ctx context.Context, changed []string) error

// Options configures a Session.
type Options struct {
	Delay  time.Duration
	Filter Filter
	Build  BuildFunc
	Logger *slog.Logger
}

// Session is a debounced rebuild loop.
type Session struct {
	opts   Options
	logger *slog.Logger

	mu     sync.Mutex
	queue  []string
	state  State
	builds int

	wake chan struct{}
}

// NewSession creates a session. Call Run to start processing events.
func NewSession(opts Options) *Session {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Filter == nil {
		opts.Filter = All
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		opts:   opts,
		logger: logger,
		wake:   make(chan struct{}, 1),
	}
}

// Notify reports a changed path. It returns false when the filter rejects
// the path; rejected paths never touch the timer. Notify never blocks.
func (s *Session) Notify(path string) bool {
	if !s.opts.Filter(path) {
		return false
	}

	s.mu.Lock()
	s.queue = append(s.queue, path)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// State returns the current debounce state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Builds returns the number of finished builds, failed ones included.
func (s *Session) Builds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builds
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) drain() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queue
	s.queue = nil
	return q
}

// Run processes events until ctx is cancelled. A running build is waited
// for before Run returns.
func (s *Session) Run(ctx context.Context) error {
	var (
		timer     *time.Timer
		timerC    <-chan time.Time
		buildDone chan struct{}
		changed   = make(map[string]struct{})
	)

	arm := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.NewTimer(s.opts.Delay)
		timerC = timer.C
		s.setState(StatePending)
	}

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		s.setState(StateIdle)
	}()

	for {
		select {
		case <-ctx.Done():
			if buildDone != nil {
				<-buildDone
			}
			return nil

		case <-s.wake:
			for _, p := range s.drain() {
				changed[p] = struct{}{}
			}
			if buildDone != nil || len(changed) == 0 {
				// Picked up once the running build finishes.
				continue
			}
			arm()

		case <-timerC:
			timerC = nil
			paths := make([]string, 0, len(changed))
			for p := range changed {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			changed = make(map[string]struct{})

			s.setState(StateBuilding)
			buildDone = make(chan struct{})
			go s.build(ctx, paths, buildDone)

		case <-buildDone:
			buildDone = nil
			if len(changed) > 0 {
				arm()
			} else {
				s.setState(StateIdle)
			}
		}
	}
}

func (s *Session) build(ctx context.Context, changed []string, done chan struct{}) {
	id := ulid.Make().String()
	start := time.Now()
	logger := s.logger.With("build", id)

	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("build panicked", "panic", r)
		}
		s.mu.Lock()
		s.builds++
		s.mu.Unlock()
	}()

	logger.Debug("build started", "changed", len(changed))
	if err := s.opts.Build(ctx, changed); err != nil {
		logger.Error("build failed", "error", err, "duration", time.Since(start))
		return
	}
	logger.Debug("build finished", "duration", time.Since(start))
}
