package repository

import (
	"context"

	"gorm.io/gorm"
)

// Gateway runs one-off parameterized statements that do not belong to a single
// entity repository. Callers pass SQL text written in code; request data may only
// reach it through bound arguments.
type Gateway interface {
	// Query scans the result rows into dest (a pointer to a slice or struct).
	Query(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	// Exec runs a write statement and returns the number of affected rows.
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
}

type gateway struct {
	db *gorm.DB
}

// NewGateway builds a GORM-backed raw query gateway.
func NewGateway(db *gorm.DB) Gateway {
	return &gateway{db: db}
}

func (g *gateway) Query(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return g.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error
}

func (g *gateway) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res := g.db.WithContext(ctx).Exec(query, args...)
	return res.RowsAffected, res.Error
}
