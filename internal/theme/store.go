package theme

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"folio/internal/metrics"
)

type State int

const (
	Uninitialized State = iota
	Initialized
)

func (s State) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// Store owns the single accent colour shared by every consumer in the process.
type Store struct {
	// setMu orders whole Set calls so memory, storage and subscribers agree
	// on the last value.
	setMu   sync.Mutex
	mu      sync.RWMutex
	current Accent
	state   State
	strict  bool
	storage Storage
	logger  *zap.SugaredLogger

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Accent)
}

func NewStore(storage Storage, strict bool, logger *zap.SugaredLogger) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	def, _ := NewAccent(DefaultColor)
	return &Store{
		current: def,
		strict:  strict,
		storage: storage,
		logger:  logger,
		subs:    make(map[int]func(Accent)),
	}
}

// Init reads the persisted accent once. Values that fail the same rule Set
// applies are ignored and the default stays in place.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Initialized {
		return
	}
	s.state = Initialized

	raw, ok, err := s.storage.Load(ctx, StorageKey)
	if err != nil {
		s.logger.Warnw("theme: load persisted accent", "error", err)
		return
	}
	if !ok {
		return
	}
	hex, err := s.accept(raw)
	if err != nil {
		s.logger.Warnw("theme: ignoring persisted accent", "value", raw, "error", err)
		return
	}
	a, err := NewAccent(hex)
	if err != nil {
		return
	}
	s.current = a
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Strict() bool { return s.strict }

// Get returns the current hex value.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Hex
}

func (s *Store) Accent() Accent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set validates c, persists it and notifies every subscriber before returning.
// Concurrent calls run one at a time. Subscribers must not call Set.
func (s *Store) Set(ctx context.Context, c string) error {
	hex, err := s.accept(c)
	if err != nil {
		return err
	}
	a, err := NewAccent(hex)
	if err != nil {
		return err
	}

	s.setMu.Lock()
	defer s.setMu.Unlock()

	s.mu.Lock()
	s.current = a
	s.state = Initialized
	s.mu.Unlock()

	metrics.AccentChanges.Inc()
	if err := s.storage.Save(ctx, StorageKey, hex); err != nil {
		s.logger.Warnw("theme: persist accent", "value", hex, "error", err)
		s.notify(a)
		return fmt.Errorf("persist accent: %w", err)
	}
	s.notify(a)
	return nil
}

// Subscribe registers fn for every later change. The returned func removes it
// and is safe to call more than once.
func (s *Store) Subscribe(fn func(Accent)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(a Accent) {
	s.subMu.Lock()
	fns := make([]func(Accent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(a)
	}
}

func (s *Store) accept(c string) (string, error) {
	hex, err := Normalize(c)
	if err != nil {
		return "", err
	}
	if s.strict && !InPalette(hex) {
		return "", ErrNotInPalette
	}
	return hex, nil
}
