package contact

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
}

type Input struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	return in
}

// ListOptions filters the admin inbox.
type ListOptions struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
