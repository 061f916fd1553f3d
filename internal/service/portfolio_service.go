package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// ErrUnknownSection is returned by Section for names the API does not expose.
var ErrUnknownSection = errors.New("unknown portfolio section")

// PortfolioService provides access to the portfolio profile document.
type PortfolioService interface {
	Get(ctx context.Context) (model.Portfolio, error)
	Section(ctx context.Context, name string) (json.RawMessage, error)
	Replace(ctx context.Context, doc model.Portfolio) error
	// Invalidate drops the cached document so the next read reloads it.
	Invalidate()
}

type portfolioService struct {
	repo repository.PortfolioRepository

	mu     sync.RWMutex
	cached model.Portfolio
	// gen counts invalidations; a load only fills the cache if no
	// invalidation happened while it ran.
	gen uint64
}

// NewPortfolioService creates a PortfolioService.
func NewPortfolioService(repo repository.PortfolioRepository) PortfolioService {
	return &portfolioService{repo: repo}
}

// Get returns the document, loading it on first use. A missing document is
// served as an empty one.
func (s *portfolioService) Get(ctx context.Context) (model.Portfolio, error) {
	s.mu.RLock()
	doc, gen := s.cached, s.gen
	s.mu.RUnlock()
	if doc != nil {
		return doc, nil
	}

	doc, err := s.repo.Load(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		doc, err = model.Portfolio{}, nil
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cached = doc
	}
	s.mu.Unlock()
	return doc, nil
}

func (s *portfolioService) Section(ctx context.Context, name string) (json.RawMessage, error) {
	if !model.IsKnownSection(name) {
		return nil, ErrUnknownSection
	}
	doc, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Section(name), nil
}

func (s *portfolioService) Replace(ctx context.Context, doc model.Portfolio) error {
	if err := s.repo.Save(ctx, doc); err != nil {
		return err
	}
	s.mu.Lock()
	s.cached = doc
	s.gen++
	s.mu.Unlock()
	return nil
}

func (s *portfolioService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.gen++
	s.mu.Unlock()
}
