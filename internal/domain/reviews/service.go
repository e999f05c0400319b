package reviews

import (
	"context"
	"errors"
	"net"
	"sort"

	"folio/internal/apperr"
	"folio/internal/metrics"
	"folio/internal/validation"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Limits are the page sizes used when a caller does not ask for one.
// A zero default means unlimited; Max caps what callers may ask for.
type Limits struct {
	Reviews      int
	Testimonials int
	Max          int
}

var DefaultLimits = Limits{Reviews: 10, Testimonials: 4, Max: 50}

const (
	SubmittedMessage    = "Thank you! Your review has been submitted for approval."
	submitFailedMessage = "Failed to submit review. Please try again."
	loadFailedMessage   = "Failed to load reviews"
)

// Service is the single data-access module both the reviews list and the
// testimonial feed read through.
type Service struct {
	store  Store
	cache  Cache
	limits Limits
	logger *zap.SugaredLogger
}

func NewService(store Store, cache Cache, limits Limits, logger *zap.SugaredLogger) *Service {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Service{store: store, cache: cache, limits: limits, logger: logger}
}

func (s *Service) Limits() Limits { return s.limits }

// Submit validates the draft and stores it unapproved.
func (s *Service) Submit(ctx context.Context, draft Draft) (*Review, error) {
	draft = draft.Normalize()
	if err := validation.Struct(draft); err != nil {
		metrics.ReviewsSubmitted.WithLabelValues("invalid").Inc()
		return nil, err
	}

	review := &Review{
		Name:    draft.Name,
		Role:    draft.Role,
		Content: draft.Content,
		Rating:  draft.Rating,
		Avatar:  draft.Avatar,
	}
	if err := s.store.Create(ctx, review); err != nil {
		metrics.ReviewsSubmitted.WithLabelValues("failed").Inc()
		s.logger.Errorw("review insert failed", "error", err)
		return nil, classify("reviews.create", err, submitFailedMessage)
	}

	s.cache.Purge(ctx)
	metrics.ReviewsSubmitted.WithLabelValues("stored").Inc()
	return review, nil
}

// ListReviews returns the newest reviews regardless of moderation state.
func (s *Service) ListReviews(ctx context.Context, limit int) ([]Review, error) {
	return s.List(ctx, Filter{Limit: s.resolveLimit(limit, s.limits.Reviews)})
}

// ListTestimonials returns the newest approved reviews.
func (s *Service) ListTestimonials(ctx context.Context, limit int) ([]Review, error) {
	return s.List(ctx, Filter{ApprovedOnly: true, Limit: s.resolveLimit(limit, s.limits.Testimonials)})
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Review, error) {
	key := filter.Key()
	if cached, ok := s.cache.Get(ctx, key); ok {
		metrics.ReviewCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.ReviewCache.WithLabelValues("miss").Inc()

	token := s.cache.Token(ctx)
	rows, err := s.store.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("review query failed", "filter", key, "error", err)
		return nil, classify("reviews.list", err, loadFailedMessage)
	}

	if filter.ApprovedOnly {
		rows = s.approvedOnly(rows)
	}
	SortNewestFirst(rows)

	s.cache.Set(ctx, token, key, rows)
	return rows, nil
}

// approvedOnly re-checks the moderation flag the query already filtered on.
func (s *Service) approvedOnly(rows []Review) []Review {
	out := rows[:0]
	for _, r := range rows {
		if !r.Approved {
			metrics.UnapprovedFiltered.Inc()
			s.logger.Warnw("unapproved review returned by approved query", "id", r.ID)
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Service) resolveLimit(requested, fallback int) int {
	if requested <= 0 {
		return fallback
	}
	if s.limits.Max > 0 && requested > s.limits.Max {
		return s.limits.Max
	}
	return requested
}

// SortNewestFirst orders by created_at descending, keeping store order for ties.
func SortNewestFirst(rows []Review) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
}

// ApprovedOnly drops unapproved rows without touching the input slice.
func ApprovedOnly(rows []Review) []Review {
	out := make([]Review, 0, len(rows))
	for _, r := range rows {
		if r.Approved {
			out = append(out, r)
		}
	}
	return out
}

func classify(op string, err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &apperr.StoreError{Op: op, Message: message, Err: err}
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &apperr.NetworkError{Op: op, Err: err}
	}

	return &apperr.StoreError{Op: op, Message: message, Err: err}
}
