package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"folio/internal/apperr"
	"folio/internal/domain/reviews"
	"folio/internal/validation"

	"go.uber.org/zap"
)

var ErrSubmitInProgress = errors.New("a submission is already in progress")

const (
	loadReviewsFailed  = "Failed to load reviews"
	submitReviewFailed = "Failed to submit review. Please try again."
)

// ReviewBackend is satisfied by both reviews.Service and client.Client.
type ReviewBackend interface {
	ListReviews(ctx context.Context, limit int) ([]reviews.Review, error)
	Submit(ctx context.Context, d reviews.Draft) (*reviews.Review, error)
}

// ReviewsSection holds the state of the reviews list with its submission form.
type ReviewsSection struct {
	backend ReviewBackend
	limit   int
	logger  *zap.SugaredLogger
	now     func() time.Time

	mu         sync.Mutex
	loaded     bool
	rows       []reviews.Review
	draft      reviews.Draft
	submitting bool
	notice     *Notification
}

func NewReviewsSection(backend ReviewBackend, limit int, logger *zap.SugaredLogger) *ReviewsSection {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ReviewsSection{
		backend: backend,
		limit:   limit,
		logger:  logger,
		now:     time.Now,
		draft:   reviews.NewDraft(),
	}
}

// Load fetches the list once. Later calls are no-ops after a successful load.
func (s *ReviewsSection) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	rows, err := s.backend.ListReviews(ctx, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Errorw("loading reviews failed", "error", err)
		s.notify(Error, apperr.UserMessage(err, loadReviewsFailed))
		return err
	}
	if s.loaded {
		return nil
	}
	reviews.SortNewestFirst(rows)
	s.rows = rows
	s.loaded = true
	return nil
}

func (s *ReviewsSection) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *ReviewsSection) Reviews() []reviews.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]reviews.Review(nil), s.rows...)
}

func (s *ReviewsSection) Draft() reviews.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// EditDraft applies fn to the form state. Rating stays clamped.
func (s *ReviewsSection) EditDraft(fn func(d *reviews.Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.draft)
	s.draft.Rating = reviews.ClampRating(s.draft.Rating)
}

// SetRating selects a star. Selecting the current value again changes nothing.
func (s *ReviewsSection) SetRating(r int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Rating = reviews.ClampRating(r)
}

// Submit validates the draft locally and only then calls the backend. On
// success the stored review is prepended and the draft is reset; on failure
// the draft is kept for the visitor to retry.
func (s *ReviewsSection) Submit(ctx context.Context) (*reviews.Review, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	draft := s.draft.Normalize()
	if err := validation.Struct(draft); err != nil {
		s.notify(Error, apperr.UserMessage(err, submitReviewFailed))
		s.mu.Unlock()
		return nil, err
	}
	s.submitting = true
	s.mu.Unlock()

	created, err := s.backend.Submit(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.logger.Errorw("submitting review failed", "error", err)
		s.notify(Error, apperr.UserMessage(err, submitReviewFailed))
		return nil, err
	}

	s.rows = append([]reviews.Review{*created}, s.rows...)
	s.draft = reviews.NewDraft()
	s.notify(Success, reviews.SubmittedMessage)
	return created, nil
}

// Notification returns the banner if it has not expired yet.
func (s *ReviewsSection) Notification() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil || s.notice.Expired(s.now()) {
		return nil
	}
	n := *s.notice
	return &n
}

func (s *ReviewsSection) Dismiss() {
	s.mu.Lock()
	s.notice = nil
	s.mu.Unlock()
}

func (s *ReviewsSection) notify(t NotificationType, msg string) {
	n := NewNotification(t, msg, s.now())
	s.notice = &n
}
