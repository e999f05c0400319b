// Package client talks to the folio HTTP API and normalises every failure into
// one of the apperr shapes, so callers never see raw transport or status errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"folio/internal/apperr"
	"folio/internal/domain/contact"
	"folio/internal/domain/reviews"
	"folio/internal/theme"
)

const defaultTimeout = 8 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	user    string
	pass    string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBasicAuth is needed for the admin endpoints only.
func WithBasicAuth(user, pass string) Option {
	return func(c *Client) { c.user, c.pass = user, pass }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Fields  map[string]string `json:"fields"`
}

func (c *Client) ListReviews(ctx context.Context, limit int) ([]reviews.Review, error) {
	var out []reviews.Review
	err := c.do(ctx, "reviews.list", http.MethodGet, "/v1/reviews"+limitQuery(limit), nil, &out)
	return out, err
}

func (c *Client) ListTestimonials(ctx context.Context, limit int) ([]reviews.Review, error) {
	var out []reviews.Review
	err := c.do(ctx, "testimonials.list", http.MethodGet, "/v1/testimonials"+limitQuery(limit), nil, &out)
	return out, err
}

type SubmitResult struct {
	Message string         `json:"message"`
	Review  reviews.Review `json:"review"`
}

func (c *Client) SubmitReview(ctx context.Context, d reviews.Draft) (*SubmitResult, error) {
	var out SubmitResult
	if err := c.do(ctx, "reviews.create", http.MethodPost, "/v1/reviews", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit lets the client stand in for reviews.Service behind the views.
func (c *Client) Submit(ctx context.Context, d reviews.Draft) (*reviews.Review, error) {
	res, err := c.SubmitReview(ctx, d)
	if err != nil {
		return nil, err
	}
	return &res.Review, nil
}

type ThemeState struct {
	theme.Accent
	HSL           string `json:"hsl"`
	StrictPalette bool   `json:"strict_palette"`
}

func (c *Client) Theme(ctx context.Context) (*ThemeState, error) {
	var out ThemeState
	if err := c.do(ctx, "theme.get", http.MethodGet, "/v1/theme", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetTheme(ctx context.Context, color string) (*ThemeState, error) {
	var out ThemeState
	body := map[string]string{"color": color}
	if err := c.do(ctx, "theme.set", http.MethodPut, "/v1/theme", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Palette(ctx context.Context) ([]theme.Swatch, error) {
	var out []theme.Swatch
	err := c.do(ctx, "theme.palette", http.MethodGet, "/v1/theme/palette", nil, &out)
	return out, err
}

// SendContact posts the contact form. The endpoint answers with a bare
// {success, message} body instead of the data envelope.
func (c *Client) SendContact(ctx context.Context, in contact.Input) (string, error) {
	var out struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	status, raw, err := c.roundTrip(ctx, "contact.send", http.MethodPost, "/v1/contact", in)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &apperr.StoreError{Op: "contact.send", Status: status, Message: contact.FailedMessage, Err: err}
	}
	switch {
	case status == http.StatusBadRequest && len(out.Fields) > 0:
		return "", &apperr.ValidationError{Fields: out.Fields}
	case status >= 300 || !out.Success:
		return "", statusError("contact.send", status, errorEnvelope{Message: out.Message, Fields: out.Fields})
	}
	return out.Message, nil
}

type Inbox struct {
	Messages   []contact.Message `json:"messages"`
	Pagination struct {
		Total      int  `json:"total"`
		Page       int  `json:"page"`
		TotalPages int  `json:"total_pages"`
		HasNext    bool `json:"has_next"`
	} `json:"pagination"`
}

func (c *Client) ContactInbox(ctx context.Context, unread bool, page, limit int) (*Inbox, error) {
	q := url.Values{}
	if unread {
		q.Set("unread", "true")
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/v1/admin/contact"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out Inbox
	if err := c.do(ctx, "contact.inbox", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkContactRead(ctx context.Context, id string) error {
	return c.do(ctx, "contact.read", http.MethodPatch, "/v1/admin/contact/"+url.PathEscape(id)+"/read", nil, nil)
}

func limitQuery(limit int) string {
	if limit <= 0 {
		return ""
	}
	return "?limit=" + strconv.Itoa(limit)
}

// do sends body as JSON and unwraps the {"data": ...} envelope into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	status, raw, err := c.roundTrip(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	if status >= 300 {
		var env errorEnvelope
		_ = json.Unmarshal(raw, &env)
		return statusError(op, status, env)
	}
	if out == nil {
		return nil
	}

	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return &apperr.StoreError{Op: op, Status: status, Message: "unexpected response from server", Err: err}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &apperr.StoreError{Op: op, Status: status, Message: "unexpected response from server", Err: err}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body any) (int, []byte, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &apperr.NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return 0, nil, &apperr.NetworkError{Op: op, Err: err}
	}
	return res.StatusCode, raw, nil
}

func statusError(op string, status int, env errorEnvelope) error {
	switch {
	case status == http.StatusBadRequest && len(env.Fields) > 0:
		return &apperr.ValidationError{Fields: env.Fields}
	case status == http.StatusBadRequest:
		msg := env.Message
		if msg == "" {
			msg = "is invalid"
		}
		return apperr.NewValidationError("request", msg)
	case status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout || status == http.StatusBadGateway:
		return &apperr.NetworkError{Op: op, Err: errors.New(http.StatusText(status))}
	default:
		return &apperr.StoreError{Op: op, Status: status, Message: env.Message}
	}
}
