package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("contact message not found")

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store interface {
	Create(ctx context.Context, msg *Message) error
	List(ctx context.Context, opts ListOptions) ([]Message, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type Repository struct {
	db DBTX
}

func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, msg *Message) error {
	query := `
        INSERT INTO contact_messages (name, email, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, read
    `
	err := r.db.QueryRow(ctx, query, msg.Name, msg.Email, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt, &msg.Read)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

// List returns one page of messages, newest first, with the total matching count.
func (r *Repository) List(ctx context.Context, opts ListOptions) ([]Message, int, error) {
	where := ""
	if opts.UnreadOnly {
		where = " WHERE NOT read"
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, created_at, name, email, message, read FROM contact_messages`)
	sb.WriteString(where)
	sb.WriteString(` ORDER BY created_at DESC LIMIT $1 OFFSET $2`)

	rows, err := r.db.Query(ctx, sb.String(), opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.Name, &m.Email, &m.Message, &m.Read); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_messages SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
