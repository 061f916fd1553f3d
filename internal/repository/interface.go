package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB checks that a backing store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// PortfolioRepository persists the portfolio profile document.
type PortfolioRepository interface {
	// Load returns the stored document, or ErrNotFound when none exists.
	Load(ctx context.Context) (model.Portfolio, error)
	// Save replaces the stored document.
	Save(ctx context.Context, doc model.Portfolio) error
}

// ContactStore is a ContactRepository that can report its health.
type ContactStore interface {
	ContactRepository
	DB
}
