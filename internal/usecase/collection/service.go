// Package collection exposes collection listing.
package collection

import (
	"context"
	"fmt"

	"github.com/cloudmesh-labs/weavegate/internal/domain"
)

// Service lists the backend's collections.
type Service struct {
	repo Repository
}

// New creates a collection service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all collection names in backend order. The result is
// never nil: zero collections yield an empty slice.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
