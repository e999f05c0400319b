package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/9ssi7/exponent"
)

var ErrNoTokens = errors.New("no push tokens")

const previewLength = 80

// OwnerNotifier pushes site activity to the owner's devices.
type OwnerNotifier struct {
	push   PushSender
	tokens []string
}

func NewOwnerNotifier(push PushSender, tokens []string) *OwnerNotifier {
	return &OwnerNotifier{push: push, tokens: dedupe(tokens)}
}

// Enabled reports whether there is a sender and at least one device to reach.
func (n *OwnerNotifier) Enabled() bool {
	return n != nil && n.push != nil && len(n.tokens) > 0
}

// ReviewSubmitted tells the owner a review is waiting for approval.
func (n *OwnerNotifier) ReviewSubmitted(ctx context.Context, reviewID, name string, rating int) error {
	title := "New review awaiting approval"
	body := fmt.Sprintf("%s left a %d star review", name, rating)
	return n.send(ctx, title, body, map[string]string{
		"type":      "review_submitted",
		"review_id": reviewID,
		"screen":    "reviews",
	})
}

// ContactReceived tells the owner a visitor used the contact form.
func (n *OwnerNotifier) ContactReceived(ctx context.Context, messageID, name, message string) error {
	title := fmt.Sprintf("Message from %s", name)
	return n.send(ctx, title, preview(message), map[string]string{
		"type":       "contact_message",
		"message_id": messageID,
		"screen":     "contact",
	})
}

func (n *OwnerNotifier) send(ctx context.Context, title, body string, data map[string]string) error {
	if !n.Enabled() {
		return ErrNoTokens
	}

	msgs := make([]*exponent.Message, 0, len(n.tokens))
	for _, t := range n.tokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data:  data,
		})
	}

	if _, err := n.push.Publish(ctx, msgs); err != nil {
		return fmt.Errorf("publish owner notification: %w", err)
	}
	return nil
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= previewLength {
		return s
	}
	r := []rune(s)
	return string(r[:previewLength-1]) + "…"
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
