package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// PushSender is the subset of the exponent client the notifier needs.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
	PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error)
}
