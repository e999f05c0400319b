package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"folio/internal/apperr"
	"folio/internal/domain/reviews"
	"folio/internal/theme"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeBackend struct {
	mu        sync.Mutex
	rows      []reviews.Review
	listErr   error
	submitErr error
	lists     int
	submits   int
}

func (f *fakeBackend) ListReviews(context.Context, int) ([]reviews.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]reviews.Review(nil), f.rows...), nil
}

func (f *fakeBackend) ListTestimonials(ctx context.Context, limit int) ([]reviews.Review, error) {
	return f.ListReviews(ctx, limit)
}

func (f *fakeBackend) Submit(_ context.Context, d reviews.Draft) (*reviews.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	r := reviews.Review{
		ID: uuid.New(), CreatedAt: time.Now().UTC(),
		Name: d.Name, Role: d.Role, Content: d.Content, Rating: d.Rating, Avatar: d.Avatar,
	}
	f.rows = append([]reviews.Review{r}, f.rows...)
	return &r, nil
}

func fillDraft(s *ReviewsSection, name, role, content string, rating int) {
	s.EditDraft(func(d *reviews.Draft) {
		d.Name, d.Role, d.Content, d.Rating = name, role, content, rating
	})
}

func TestSubmitPrependsAndClearsDraft(t *testing.T) {
	older := reviews.Review{ID: uuid.New(), Name: "Old", CreatedAt: time.Now().Add(-time.Hour)}
	backend := &fakeBackend{rows: []reviews.Review{older}}
	s := NewReviewsSection(backend, 10, zaptest.NewLogger(t).Sugar())
	require.NoError(t, s.Load(context.Background()))

	before := time.Now().UTC().Add(-time.Second)
	fillDraft(s, "Ada", "CTO", "Great work", 5)
	created, err := s.Submit(context.Background())
	require.NoError(t, err)

	list := s.Reviews()
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "Ada", list[0].Name)
	assert.False(t, list[0].Approved)
	assert.NotEqual(t, uuid.Nil, list[0].ID)
	assert.False(t, list[0].CreatedAt.Before(before))

	assert.Equal(t, reviews.NewDraft(), s.Draft())

	n := s.Notification()
	require.NotNil(t, n)
	assert.Equal(t, Success, n.Type)
	assert.Contains(t, n.Message, "submitted")
}

func TestSubmitRejectsLocallyWithoutNetwork(t *testing.T) {
	backend := &fakeBackend{}
	s := NewReviewsSection(backend, 10, nil)
	fillDraft(s, "Ada", "CTO", "", 5)

	_, err := s.Submit(context.Background())
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "content")
	assert.Equal(t, 0, backend.submits)
	assert.Empty(t, s.Reviews())
	assert.Equal(t, "Ada", s.Draft().Name)

	n := s.Notification()
	require.NotNil(t, n)
	assert.Equal(t, Error, n.Type)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	backend := &fakeBackend{submitErr: &apperr.NetworkError{Op: "reviews.create", Err: errors.New("dial tcp: refused")}}
	s := NewReviewsSection(backend, 10, nil)
	fillDraft(s, "Ada", "CTO", "Great work", 4)

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Great work", s.Draft().Content)
	assert.Equal(t, 4, s.Draft().Rating)
	assert.Empty(t, s.Reviews())

	n := s.Notification()
	require.NotNil(t, n)
	assert.Equal(t, Error, n.Type)
	assert.Equal(t, "Could not reach the server. Please try again.", n.Message)
}

func TestSetRatingIdempotentAndClamped(t *testing.T) {
	s := NewReviewsSection(&fakeBackend{}, 10, nil)
	s.SetRating(3)
	s.SetRating(3)
	assert.Equal(t, 3, s.Draft().Rating)

	s.SetRating(9)
	assert.Equal(t, reviews.MaxRating, s.Draft().Rating)
	s.SetRating(-2)
	assert.Equal(t, reviews.MinRating, s.Draft().Rating)
}

func TestLoadIsOneShot(t *testing.T) {
	backend := &fakeBackend{rows: []reviews.Review{{ID: uuid.New(), CreatedAt: time.Now()}}}
	s := NewReviewsSection(backend, 10, nil)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 1, backend.lists)
	assert.True(t, s.Loaded())
}

func TestLoadFailureShowsNotification(t *testing.T) {
	backend := &fakeBackend{listErr: &apperr.StoreError{Op: "reviews.list", Message: "Failed to load reviews"}}
	s := NewReviewsSection(backend, 10, nil)
	require.Error(t, s.Load(context.Background()))
	assert.False(t, s.Loaded())
	n := s.Notification()
	require.NotNil(t, n)
	assert.Equal(t, "Failed to load reviews", n.Message)

	backend.listErr = nil
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 2, backend.lists)
}

func TestNotificationExpires(t *testing.T) {
	now := time.Now()
	s := NewReviewsSection(&fakeBackend{}, 10, nil)
	s.now = func() time.Time { return now }
	fillDraft(s, "Ada", "CTO", "Great work", 5)
	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s.Notification())

	now = now.Add(DefaultNotificationDuration)
	assert.Nil(t, s.Notification())

	n := NewNotification(Info, "hi", time.Unix(0, 0))
	assert.False(t, n.Expired(time.Unix(4, 0)))
	assert.True(t, n.Expired(time.Unix(5, 0)))
}

func TestDismiss(t *testing.T) {
	s := NewReviewsSection(&fakeBackend{}, 10, nil)
	fillDraft(s, "Ada", "CTO", "Great work", 5)
	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	s.Dismiss()
	assert.Nil(t, s.Notification())
}

func TestTestimonialsFilterMisbehavingStore(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{rows: []reviews.Review{
		{ID: uuid.New(), Name: "ok-old", Approved: true, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), Name: "leak", Approved: false, CreatedAt: now},
		{ID: uuid.New(), Name: "ok-new", Approved: true, CreatedAt: now.Add(-time.Hour)},
	}}
	s := NewTestimonialsSection(backend, 4, zaptest.NewLogger(t).Sugar())
	s.Load(context.Background())

	got := s.Testimonials()
	require.Len(t, got, 2)
	assert.Equal(t, "ok-new", got[0].Name)
	assert.Equal(t, "ok-old", got[1].Name)
	for _, r := range got {
		assert.True(t, r.Approved)
	}
}

func TestTestimonialsFailureIsSilent(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("boom")}
	s := NewTestimonialsSection(backend, 4, nil)
	s.Load(context.Background())
	assert.Empty(t, s.Testimonials())
	assert.Error(t, s.Err())
}

func TestAccentBinding(t *testing.T) {
	store := theme.NewStore(theme.NewMemoryStorage(), true, nil)
	b := BindAccent(store)
	defer b.Close()

	css, etag := b.CSS()
	assert.Contains(t, css, theme.DefaultColor)
	assert.Equal(t, `"accent-10b981"`, etag)

	require.NoError(t, store.Set(context.Background(), "#f43f5e"))
	css, etag = b.CSS()
	assert.Contains(t, css, "--accent: #f43f5e;")
	assert.Equal(t, `"accent-f43f5e"`, etag)

	b.Close()
	require.NoError(t, store.Set(context.Background(), "#06b6d4"))
	css, _ = b.CSS()
	assert.Contains(t, css, "#f43f5e")
}
