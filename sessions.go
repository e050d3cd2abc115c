package centroidtrack

import (
	"sync"

	"github.com/swdee/go-centroidtrack/tracker"
)

// Sessions manages one independent tracking Processor per stream, for
// hosts consuming multiple cameras in a single process.  Processors are
// created lazily on first use and share the same configuration.
//
// Sessions is safe for concurrent lookup, but each returned Processor
// still requires its frames to be processed sequentially
type Sessions struct {
	cfg  tracker.Config
	opts []ProcessorOption
	// procs maps stream ids to their tracking sessions
	procs map[string]*Processor
	mu    sync.Mutex
}

// NewSessions creates a session manager.  The configuration is
// validated once up front so misconfiguration surfaces before any
// stream starts
func NewSessions(cfg tracker.Config, opts ...ProcessorOption) (*Sessions, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Sessions{
		cfg:   cfg,
		opts:  opts,
		procs: make(map[string]*Processor),
	}, nil
}

// Get returns the Processor tracking the given stream, creating it on
// first use
func (s *Sessions) Get(stream string) *Processor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if proc, ok := s.procs[stream]; ok {
		return proc
	}

	// config was validated at construction so this cannot fail
	proc, _ := NewProcessor(s.cfg, s.opts...)
	s.procs[stream] = proc

	return proc
}

// Remove drops the tracking session for a stream that has ended
func (s *Sessions) Remove(stream string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.procs, stream)
}

// Len returns the number of active tracking sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.procs)
}
