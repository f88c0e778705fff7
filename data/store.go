package data

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultRefreshDelay is how long a refresh keeps the loading flag raised
const DefaultRefreshDelay = 1500 * time.Millisecond

// Repository is the read side the panels depend on. A live data source can
// replace Store without touching them.
type Repository interface {
	Snapshot() Snapshot
	// Refresh raises Loading immediately and returns a channel closed once it is cleared.
	Refresh() <-chan struct{}
	// Transactions returns the history, newest first.
	Transactions() []Transaction
	Record(tx Transaction)
}

// Store serves a fixed dataset and pulses Loading on refresh.
//
// Overlapping refreshes restart the delay: only the latest one clears the flag,
// and every outstanding done channel closes at that moment.
type Store struct {
	base   Snapshot
	delay  time.Duration
	seed   []Transaction
	logger *log.Logger

	mu      sync.Mutex
	loading bool
	gen     uint64
	timer   *time.Timer
	waiting []chan struct{}
	closed  bool
	history []Transaction
}

// Option configures a Store
type Option func(*Store)

// WithRefreshDelay overrides the simulated refresh latency.
func WithRefreshDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithDataset replaces the built-in dataset.
func WithDataset(snap Snapshot) Option {
	return func(s *Store) { s.base = snap }
}

// WithHistory replaces the seeded transaction history.
func WithHistory(txs []Transaction) Option {
	return func(s *Store) { s.seed = txs }
}

// WithLogger logs refresh start and end at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore validates the dataset and returns a store that is not loading.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		base:  Static(),
		delay: DefaultRefreshDelay,
		seed:  History(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.base.Validate(); err != nil {
		return nil, err
	}
	s.base = s.base.clone()
	s.base.Loading = false
	s.history = append([]Transaction(nil), s.seed...)
	s.seed = nil
	return s, nil
}

// SetLogger swaps the refresh logger.
func (s *Store) SetLogger(l *log.Logger) {
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

// Snapshot returns a copy of the data with the current loading flag.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	loading := s.loading
	s.mu.Unlock()

	snap := s.base.clone()
	snap.Loading = loading
	return snap
}

func (s *Store) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Transaction(nil), s.history...)
}

// Record prepends tx to the history.
func (s *Store) Record(tx Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]Transaction{tx}, s.history...)
	if s.logger != nil {
		s.logger.Debug("transaction recorded", "type", tx.Type, "hash", tx.TxHash)
	}
}

// Loading reports whether a refresh is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Refresh() <-chan struct{} {
	done := make(chan struct{})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(done)
		return done
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.loading = true
	s.waiting = append(s.waiting, done)
	s.timer = time.AfterFunc(s.delay, func() { s.finish(gen) })
	if s.logger != nil {
		s.logger.Debug("refresh started", "gen", gen, "delay", s.delay)
	}
	return done
}

func (s *Store) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.closed {
		return
	}
	s.loading = false
	s.timer = nil
	s.release()
	if s.logger != nil {
		s.logger.Debug("refresh finished", "gen", gen)
	}
}

// release must be called with s.mu held.
func (s *Store) release() {
	for _, ch := range s.waiting {
		close(ch)
	}
	s.waiting = nil
}

// Close cancels a pending refresh, clears Loading and releases waiters.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.loading = false
	s.release()
}

var _ Repository = (*Store)(nil)
