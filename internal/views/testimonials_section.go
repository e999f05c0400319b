package views

import (
	"context"
	"sync"

	"folio/internal/domain/reviews"

	"go.uber.org/zap"
)

type TestimonialBackend interface {
	ListTestimonials(ctx context.Context, limit int) ([]reviews.Review, error)
}

// TestimonialsSection is the read-only showcase of approved reviews.
type TestimonialsSection struct {
	backend TestimonialBackend
	limit   int
	logger  *zap.SugaredLogger

	mu     sync.Mutex
	loaded bool
	rows   []reviews.Review
	err    error
}

func NewTestimonialsSection(backend TestimonialBackend, limit int, logger *zap.SugaredLogger) *TestimonialsSection {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &TestimonialsSection{backend: backend, limit: limit, logger: logger}
}

// Load fetches the feed once. A failure is logged and leaves the section empty;
// the showcase never shows an error banner.
func (s *TestimonialsSection) Load(ctx context.Context) {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	rows, err := s.backend.ListTestimonials(ctx, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warnw("loading testimonials failed", "error", err)
		s.err = err
		return
	}

	// the backend already filters; unapproved rows are still never shown
	filtered := reviews.ApprovedOnly(rows)
	if dropped := len(rows) - len(filtered); dropped > 0 {
		s.logger.Warnw("dropped unapproved testimonials", "count", dropped)
	}
	reviews.SortNewestFirst(filtered)
	if s.limit > 0 && len(filtered) > s.limit {
		filtered = filtered[:s.limit]
	}
	s.rows = filtered
	s.loaded = true
	s.err = nil
}

func (s *TestimonialsSection) Testimonials() []reviews.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]reviews.Review(nil), s.rows...)
}

// Err is the last load failure, if any.
func (s *TestimonialsSection) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
