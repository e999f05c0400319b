package contact

import (
	"context"
	"time"

	"folio/internal/apperr"
	"folio/internal/mailer"
	"folio/internal/metrics"
	"folio/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SentMessage   = "Message sent successfully"
	FailedMessage = "Error sending message"
)

// Owner is where contact mail is delivered.
type Owner struct {
	Name  string
	Email string
}

type Service struct {
	store  Store
	mailer mailer.Client
	owner  Owner
	logger *zap.SugaredLogger
}

func NewService(store Store, m mailer.Client, owner Owner, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, mailer: m, owner: owner, logger: logger}
}

// Submit validates and stores a contact message. Delivery is a separate step
// so callers can run it off the request path.
func (s *Service) Submit(ctx context.Context, in Input) (*Message, error) {
	in = in.Normalize()
	if err := validation.Struct(in); err != nil {
		metrics.ContactMessages.WithLabelValues("invalid").Inc()
		return nil, err
	}

	msg := &Message{Name: in.Name, Email: in.Email, Message: in.Message}
	if err := s.store.Create(ctx, msg); err != nil {
		metrics.ContactMessages.WithLabelValues("failed").Inc()
		return nil, &apperr.StoreError{Op: "contact.create", Message: FailedMessage, Err: err}
	}

	metrics.ContactMessages.WithLabelValues("stored").Inc()
	return msg, nil
}

// Deliver mails msg to the owner with the visitor as Reply-To.
func (s *Service) Deliver(msg *Message) error {
	if s.mailer == nil || s.owner.Email == "" {
		s.logger.Infow("contact mail delivery disabled", "id", msg.ID)
		return nil
	}

	data := struct {
		Name       string
		Email      string
		Message    string
		ReceivedAt string
	}{
		Name:       msg.Name,
		Email:      msg.Email,
		Message:    msg.Message,
		ReceivedAt: msg.CreatedAt.Format(time.RFC1123),
	}

	env := mailer.Envelope{ToName: s.owner.Name, ToEmail: s.owner.Email, ReplyTo: msg.Email}
	if err := s.mailer.Send(mailer.ContactMessageTemplate, env, data); err != nil {
		s.logger.Errorw("contact mail delivery failed", "id", msg.ID, "error", err)
		return err
	}
	s.logger.Infow("contact mail delivered", "id", msg.ID)
	return nil
}

func (s *Service) List(ctx context.Context, opts ListOptions) ([]Message, int, error) {
	msgs, total, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, 0, &apperr.StoreError{Op: "contact.list", Err: err}
	}
	return msgs, total, nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.store.MarkRead(ctx, id)
}
