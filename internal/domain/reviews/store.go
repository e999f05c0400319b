package reviews

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store interface {
	Create(ctx context.Context, review *Review) error
	List(ctx context.Context, filter Filter) ([]Review, error)
}

type Repository struct {
	db DBTX
}

func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// Create inserts the submitted fields. approved is written as a literal so no
// caller can influence it.
func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
        INSERT INTO reviews (name, role, content, rating, avatar, approved)
        VALUES ($1, $2, $3, $4, $5, false)
        RETURNING id, created_at, approved
    `
	err := r.db.QueryRow(ctx, query,
		review.Name,
		review.Role,
		review.Content,
		review.Rating,
		review.Avatar,
	).Scan(&review.ID, &review.CreatedAt, &review.Approved)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Review, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID,
			&rv.CreatedAt,
			&rv.Name,
			&rv.Role,
			&rv.Content,
			&rv.Rating,
			&rv.Avatar,
			&rv.Approved,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func buildListQuery(filter Filter) (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT id, created_at, name, role, content, rating, avatar, approved FROM reviews`)
	if filter.ApprovedOnly {
		sb.WriteString(` WHERE approved = true`)
	}
	sb.WriteString(` ORDER BY created_at DESC`)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(fmt.Sprintf(` LIMIT $%d`, len(args)))
	}
	return sb.String(), args
}
