package repository

import (
	"context"
	"errors"
	"io/fs"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/storage"
)

// PortfolioKey is the document holding the portfolio profile.
const PortfolioKey = "portfolio_data.json"

type filePortfolioRepository struct {
	store *storage.LocalStorage
	key   string
}

// NewFilePortfolioRepository returns a PortfolioRepository backed by a JSON
// document under store.
func NewFilePortfolioRepository(store *storage.LocalStorage, key string) PortfolioRepository {
	if key == "" {
		key = PortfolioKey
	}
	return &filePortfolioRepository{store: store, key: key}
}

func (r *filePortfolioRepository) Load(ctx context.Context) (model.Portfolio, error) {
	var doc model.Portfolio
	if err := r.store.Load(ctx, r.key, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "load", Path: r.store.Path(r.key), Err: err}
	}
	if doc == nil {
		doc = model.Portfolio{}
	}
	return doc, nil
}

func (r *filePortfolioRepository) Save(ctx context.Context, doc model.Portfolio) error {
	if doc == nil {
		doc = model.Portfolio{}
	}
	if err := r.store.Save(ctx, r.key, doc); err != nil {
		return &StorageError{Op: "save", Path: r.store.Path(r.key), Err: err}
	}
	return nil
}
