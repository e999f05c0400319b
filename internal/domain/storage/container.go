package storage

import (
	"context"

	"folio/internal/domain/contact"
	"folio/internal/domain/reviews"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool    *pgxpool.Pool
	Reviews reviews.Store
	Contact contact.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:    db,
		Reviews: reviews.NewRepository(db),
		Contact: contact.NewRepository(db),
	}
}

// Ping checks the pool can still reach Postgres.
func (c *Container) Ping(ctx context.Context) error {
	if c.pool == nil {
		return nil
	}
	return c.pool.Ping(ctx)
}

// Stats exposes pool counters for expvar.
func (c *Container) Stats() any {
	if c.pool == nil {
		return nil
	}
	s := c.pool.Stat()
	return map[string]any{
		"total_conns":    s.TotalConns(),
		"idle_conns":     s.IdleConns(),
		"acquired_conns": s.AcquiredConns(),
		"max_conns":      s.MaxConns(),
	}
}
