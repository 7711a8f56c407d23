package search

import (
	"context"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/cloudmesh-labs/weavegate/internal/domain/search/filter"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/result"
)

// Repository is the backend contract for search operations. Collection
// resolution is separate from the search call so a missing collection
// can be distinguished before any query runs.
type Repository interface {
	Collection(ctx context.Context, name string) (*models.Class, error)

	NearText(
		ctx context.Context, class *models.Class,
		query string, topK int, conds []filter.Valid, disjunctive bool,
	) ([]result.Row, error)
}
