// Package search turns a stream of keystrokes into debounced catalog
// searches. A Session issues at most one request per quiet period and only
// ever shows the results of the most recently issued request.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"moviehub/pkg/models"
)

// DefaultQuiet is how long typing must pause before a search is issued.
const DefaultQuiet = 300 * time.Millisecond

type Searcher interface {
	Search(ctx context.Context, q string) ([]models.Movie, error)
}

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePending  Phase = "pending"
	PhaseInFlight Phase = "in_flight"
	PhaseResults  Phase = "results"
)

// Snapshot is the observable state after a change. Version increases by
// one per change.
type Snapshot struct {
	Version   uint64         `json:"version"`
	Text      string         `json:"text"`
	Phase     Phase          `json:"phase"`
	Searching bool           `json:"searching"`
	Results   []models.Movie `json:"results"`
}

type Options struct {
	Quiet time.Duration
	Clock Clock
	// OnChange receives snapshots in version order. A snapshot that loses
	// the race to a newer one is skipped, never delivered late.
	OnChange func(Snapshot)
	Log      zerolog.Logger
}

type Session struct {
	id       string
	searcher Searcher
	quiet    time.Duration
	clock    Clock
	onChange func(Snapshot)
	log      zerolog.Logger

	mu       sync.Mutex
	closed   bool
	text     string
	gen      uint64 // bumped on every keystroke; stale timers compare against it
	timer    Timer
	seq      uint64 // latest issued request; clearing also advances it
	cancel   context.CancelFunc
	inflight bool
	phase    Phase
	results  []models.Movie
	version  uint64

	notifyMu  sync.Mutex
	delivered uint64

	wg sync.WaitGroup
}

func NewSession(searcher Searcher, opts Options) *Session {
	if opts.Quiet <= 0 {
		opts.Quiet = DefaultQuiet
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		searcher: searcher,
		quiet:    opts.Quiet,
		clock:    opts.Clock,
		onChange: opts.OnChange,
		log:      opts.Log.With().Str("component", "search").Str("session", id).Logger(),
		phase:    PhaseIdle,
		results:  []models.Movie{},
	}
}

func (s *Session) ID() string { return s.id }

// Input records the query text after a keystroke.
func (s *Session) Input(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.text = text
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if strings.TrimSpace(text) == "" {
		s.supersede()
		s.results = []models.Movie{}
		s.phase = PhaseIdle
	} else {
		gen := s.gen
		s.timer = s.clock.AfterFunc(s.quiet, func() { s.fire(gen) })
		s.phase = PhasePending
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Session) Clear() { s.Input("") }

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Close stops the timer, cancels any outstanding request and waits for
// search goroutines to return.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.supersede()
	s.mu.Unlock()

	s.wg.Wait()
}

// supersede voids the outstanding request, if any. Caller holds mu.
func (s *Session) supersede() {
	if !s.inflight {
		return
	}
	s.seq++
	s.cancel()
	s.cancel = nil
	s.inflight = false
}

func (s *Session) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil

	if s.inflight {
		s.cancel()
	}
	s.seq++
	seq, text := s.seq, s.text
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.inflight = true
	s.phase = PhaseInFlight

	s.wg.Add(1)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	issuedTotal.Inc()
	s.log.Debug().Uint64("seq", seq).Str("q", text).Msg("search issued")
	s.notify(snap)

	go s.run(ctx, seq, text)
}

func (s *Session) run(ctx context.Context, seq uint64, text string) {
	defer s.wg.Done()
	movies, err := s.searcher.Search(ctx, text)
	s.complete(seq, movies, err)
}

func (s *Session) complete(seq uint64, movies []models.Movie, err error) {
	s.mu.Lock()
	if s.closed || seq != s.seq || !s.inflight {
		s.mu.Unlock()
		staleTotal.Inc()
		s.log.Debug().Uint64("seq", seq).Msg("stale response dropped")
		return
	}

	s.cancel()
	s.cancel = nil
	s.inflight = false

	if err != nil {
		failuresTotal.Inc()
		s.log.Debug().Err(err).Uint64("seq", seq).Msg("search failed")
		movies = nil
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	s.results = movies

	switch {
	case s.timer != nil:
		s.phase = PhasePending
	case err != nil:
		s.phase = PhaseIdle
	default:
		s.phase = PhaseResults
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// snapshotLocked records a change. Caller holds mu.
func (s *Session) snapshotLocked() Snapshot {
	s.version++
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Version:   s.version,
		Text:      s.text,
		Phase:     s.phase,
		Searching: s.inflight,
		Results:   s.results,
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.onChange == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if snap.Version <= s.delivered {
		return
	}
	s.delivered = snap.Version
	s.onChange(snap)
}
