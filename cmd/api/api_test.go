package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"folio/internal/domain/contact"
	"folio/internal/domain/reviews"
	"folio/internal/mailer"
	"folio/internal/ratelimiter"
	"folio/internal/theme"
	"folio/internal/views"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type fakeReviewStore struct {
	mu      sync.Mutex
	rows    []reviews.Review
	err     error
	created int
}

func (s *fakeReviewStore) Create(_ context.Context, r *reviews.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.created++
	r.ID = uuid.New()
	r.CreatedAt = time.Now().UTC()
	r.Approved = false
	s.rows = append(s.rows, *r)
	return nil
}

func (s *fakeReviewStore) List(_ context.Context, f reviews.Filter) ([]reviews.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []reviews.Review{}
	for _, r := range s.rows {
		if f.ApprovedOnly && !r.Approved {
			continue
		}
		out = append(out, r)
	}
	reviews.SortNewestFirst(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

type fakeContactStore struct {
	mu   sync.Mutex
	msgs []contact.Message
	err  error
}

func (s *fakeContactStore) Create(_ context.Context, m *contact.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	m.ID = uuid.New()
	m.CreatedAt = time.Now().UTC()
	s.msgs = append(s.msgs, *m)
	return nil
}

func (s *fakeContactStore) List(_ context.Context, opts contact.ListOptions) ([]contact.Message, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []contact.Message
	for _, m := range s.msgs {
		if opts.UnreadOnly && m.Read {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func (s *fakeContactStore) MarkRead(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		if s.msgs[i].ID == id {
			s.msgs[i].Read = true
			return nil
		}
	}
	return contact.ErrNotFound
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Envelope
}

func (m *recordingMailer) Send(_ string, env mailer.Envelope, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, env)
	return nil
}

type fakeUploader struct{ url string }

func (u fakeUploader) UploadAvatar(_ context.Context, r io.Reader, publicID string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return u.url + "/" + publicID, nil
}

type denyAll struct{}

func (denyAll) Allow(string) (bool, time.Duration) { return false, 3 * time.Second }

type testApp struct {
	app      *application
	reviews  *fakeReviewStore
	contact  *fakeContactStore
	mail     *recordingMailer
	handler  http.Handler
	password string
}

func newTestApplication(t *testing.T) *testApp {
	t.Helper()
	logger := zaptest.NewLogger(t).Sugar()
	rs := &fakeReviewStore{}
	cs := &fakeContactStore{}
	mail := &recordingMailer{}

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	app := &application{
		config: config{
			env:  "test",
			auth: authConfig{basic: basicConfig{user: "admin", passHash: string(hash)}},
			site: siteConfig{measurementID: "G-TEST"},
		},
		reviews: reviews.NewService(rs, reviews.NewMemoryCache(8, time.Minute), reviews.DefaultLimits, logger),
		contact: contact.NewService(cs, mail, contact.Owner{Name: "Owner", Email: "owner@example.com"}, logger),
		theme:   theme.NewStore(theme.NewMemoryStorage(), true, logger),
		logger:  logger,
	}
	app.theme.Init(context.Background())
	app.accentCSS = views.BindAccent(app.theme)
	t.Cleanup(app.accentCSS.Close)

	return &testApp{app: app, reviews: rs, contact: cs, mail: mail, handler: app.mount(), password: "s3cret"}
}

func (ta *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	return rr
}

func (ta *testApp) doAdmin(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	return ta.doAdminJSON(t, method, path, nil)
}

func (ta *testApp) doAdminJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:"+ta.password)))
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	return rr
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env.Data
}

func TestSubmitAndListReviews(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodPost, "/v1/reviews", map[string]any{
		"name":    "  ada ",
		"role":    "Engineer",
		"content": "Great work",
		"rating":  9,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeData[submitReviewResponse](t, rr)
	assert.Equal(t, reviews.SubmittedMessage, created.Message)
	assert.Equal(t, "ada", created.Review.Name)
	assert.Equal(t, 5, created.Review.Rating)
	assert.False(t, created.Review.Approved)
	assert.Equal(t, "A", created.Review.Initial)
	assert.NotEqual(t, uuid.Nil, created.Review.ID)

	rr = ta.do(t, http.MethodGet, "/v1/reviews", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decodeData[[]reviewView](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, created.Review.ID, list[0].ID)

	rr = ta.do(t, http.MethodGet, "/v1/testimonials", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeData[[]reviewView](t, rr), "unapproved reviews are never testimonials")
}

func TestSubmitReviewValidation(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodPost, "/v1/reviews", map[string]any{"name": "Ada", "rating": 3})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Success bool              `json:"success"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Fields, "role")
	assert.Contains(t, body.Fields, "content")
	assert.Equal(t, 0, ta.reviews.created)
}

func TestSubmitReviewUnknownField(t *testing.T) {
	ta := newTestApplication(t)
	rr := ta.do(t, http.MethodPost, "/v1/reviews", map[string]any{"name": "A", "role": "B", "content": "C", "approved": true})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, ta.reviews.created)
}

func TestListReviewsStoreFailure(t *testing.T) {
	ta := newTestApplication(t)
	ta.reviews.err = &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}

	rr := ta.do(t, http.MethodGet, "/v1/reviews", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Failed to load reviews")

	ta.reviews.err = context.DeadlineExceeded
	rr = ta.do(t, http.MethodGet, "/v1/testimonials", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestListLimitParsing(t *testing.T) {
	ta := newTestApplication(t)
	now := time.Now().UTC()
	for i := 0; i < 6; i++ {
		ta.reviews.rows = append(ta.reviews.rows, reviews.Review{
			ID: uuid.New(), Name: "n", Role: "r", Content: "c", Rating: 5, Approved: true,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
	}

	rr := ta.do(t, http.MethodGet, "/v1/testimonials", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decodeData[[]reviewView](t, rr)
	require.Len(t, list, 4)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))

	rr = ta.do(t, http.MethodGet, "/v1/testimonials?limit=2", nil)
	assert.Len(t, decodeData[[]reviewView](t, rr), 2)

	rr = ta.do(t, http.MethodGet, "/v1/reviews?limit=ten", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTheme(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodGet, "/v1/theme", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, theme.DefaultColor, decodeData[themeResponse](t, rr).Hex)

	rr = ta.do(t, http.MethodPut, "/v1/theme", SetThemePayload{Color: "#3B82F6"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "only the owner changes the accent")
	assert.Equal(t, theme.DefaultColor, ta.app.theme.Get())

	rr = ta.doAdminJSON(t, http.MethodPut, "/v1/theme", SetThemePayload{Color: "#3B82F6"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	got := decodeData[themeResponse](t, rr)
	assert.Equal(t, "#3b82f6", got.Hex)
	assert.Equal(t, "Blue", got.Name)

	rr = ta.doAdminJSON(t, http.MethodPut, "/v1/theme", SetThemePayload{Color: "#123456"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = ta.doAdminJSON(t, http.MethodPut, "/v1/theme", SetThemePayload{Color: "blue"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "#3b82f6", ta.app.theme.Get())

	rr = ta.do(t, http.MethodGet, "/v1/theme/vars.css", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rr.Body.String(), "--accent: #3b82f6;")
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/v1/theme/vars.css", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotModified, rr.Code)

	rr = ta.do(t, http.MethodGet, "/v1/theme/palette", nil)
	assert.Len(t, decodeData[[]theme.Swatch](t, rr), len(theme.Palette))
}

func TestContact(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodPost, "/v1/contact", contact.Input{Name: "Grace", Email: "grace@example.com", Message: "Hello"})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp contactResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, contact.SentMessage, resp.Message)

	ta.app.wg.Wait()
	require.Len(t, ta.mail.sent, 1)
	assert.Equal(t, "grace@example.com", ta.mail.sent[0].ReplyTo)

	rr = ta.do(t, http.MethodPost, "/v1/contact", contact.Input{Name: "Grace", Email: "nope", Message: "Hello"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	ta.contact.err = errors.New("db down")
	rr = ta.do(t, http.MethodPost, "/v1/contact", contact.Input{Name: "Grace", Email: "grace@example.com", Message: "Hello"})
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	resp = contactResponse{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, contact.FailedMessage, resp.Message)
}

func TestAdminContact(t *testing.T) {
	ta := newTestApplication(t)
	ta.do(t, http.MethodPost, "/v1/contact", contact.Input{Name: "Grace", Email: "grace@example.com", Message: "Hello"})
	ta.app.wg.Wait()

	rr := ta.do(t, http.MethodGet, "/v1/admin/contact", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))

	rr = ta.doAdmin(t, http.MethodGet, "/v1/admin/contact?unread=true")
	require.Equal(t, http.StatusOK, rr.Code)
	inbox := decodeData[contactInbox](t, rr)
	require.Len(t, inbox.Messages, 1)
	assert.Equal(t, 1, inbox.Pagination.Total)

	id := inbox.Messages[0].ID.String()
	rr = ta.doAdmin(t, http.MethodPatch, "/v1/admin/contact/"+id+"/read")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ta.doAdmin(t, http.MethodGet, "/v1/admin/contact?unread=true")
	assert.Empty(t, decodeData[contactInbox](t, rr).Messages)

	rr = ta.doAdmin(t, http.MethodPatch, "/v1/admin/contact/"+uuid.NewString()+"/read")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = ta.doAdmin(t, http.MethodPatch, "/v1/admin/contact/not-a-uuid/read")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBasicAuthWrongPassword(t *testing.T) {
	ta := newTestApplication(t)
	ta.password = "wrong"
	rr := ta.doAdmin(t, http.MethodGet, "/v1/health")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	ta.password = "s3cret"
	rr = ta.doAdmin(t, http.MethodGet, "/v1/health")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter(t *testing.T) {
	ta := newTestApplication(t)
	ta.app.config.rateLimiter = ratelimiter.Config{Enabled: true}
	ta.app.rateLimiter = denyAll{}

	rr := ta.do(t, http.MethodPost, "/v1/reviews", map[string]any{"name": "A", "role": "B", "content": "C"})
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "3", rr.Header().Get("Retry-After"))

	rr = ta.do(t, http.MethodGet, "/v1/reviews", nil)
	assert.Equal(t, http.StatusOK, rr.Code, "reads are not rate limited")
}

func TestRateLimiterKeysOnHost(t *testing.T) {
	ta := newTestApplication(t)
	limiter := ratelimiter.NewFixedWindowLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	ta.app.config.rateLimiter = ratelimiter.Config{Enabled: true}
	ta.app.rateLimiter = limiter

	post := func(remote string) int {
		b, err := json.Marshal(contact.Input{Name: "Ada", Email: "ada@example.com", Message: "Hello there"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		ta.handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, post("203.0.113.7:40000"))
	for port := 40001; port <= 40004; port++ {
		assert.Equal(t, http.StatusTooManyRequests, post(fmt.Sprintf("203.0.113.7:%d", port)))
	}
	assert.Equal(t, http.StatusOK, post("198.51.100.2:40000"), "other addresses keep their own window")
	ta.app.wg.Wait()
}

func TestSetThemeRateLimited(t *testing.T) {
	ta := newTestApplication(t)
	ta.app.config.rateLimiter = ratelimiter.Config{Enabled: true}
	ta.app.rateLimiter = denyAll{}

	rr := ta.doAdminJSON(t, http.MethodPut, "/v1/theme", SetThemePayload{Color: "#3b82f6"})
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, theme.DefaultColor, ta.app.theme.Get())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", clientIP(req))
	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", clientIP(req))
}

func TestSiteConfig(t *testing.T) {
	ta := newTestApplication(t)
	rr := ta.do(t, http.MethodGet, "/v1/site", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	site := decodeData[siteConfigResponse](t, rr)
	assert.Equal(t, "G-TEST", site.AnalyticsMeasurementID)
	assert.Equal(t, theme.DefaultColor, site.AccentDefault)
	assert.True(t, site.StrictPalette)
	assert.False(t, site.AvatarUploads)

	rr = ta.do(t, http.MethodPost, "/v1/reviews/avatar", nil)
	assert.NotEqual(t, http.StatusCreated, rr.Code)
}

// smallest valid PNG header that mimetype recognises
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func avatarRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/reviews/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadAvatar(t *testing.T) {
	ta := newTestApplication(t)
	ta.app.avatars = fakeUploader{url: "https://cdn.example.com"}
	handler := ta.app.mount()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, avatarRequest(t, pngBytes))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, decodeData[avatarResponse](t, rr).URL, "https://cdn.example.com/avatar_")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, avatarRequest(t, []byte("just some text")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
