package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

type ExpoAdapter struct {
	client *exponent.Client
}

func NewExpoAdapter(c *exponent.Client) *ExpoAdapter {
	return &ExpoAdapter{client: c}
}

// NewExpoSender builds an exponent client; accessToken may be empty when the
// Expo project does not enforce push security.
func NewExpoSender(accessToken string) *ExpoAdapter {
	if accessToken == "" {
		return NewExpoAdapter(exponent.NewClient())
	}
	return NewExpoAdapter(exponent.NewClient(exponent.WithAccessToken(accessToken)))
}

func (a *ExpoAdapter) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	return a.client.Publish(ctx, msgs)
}

func (a *ExpoAdapter) PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error) {
	return a.client.PublishSingle(ctx, msg)
}
