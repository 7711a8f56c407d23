// Package search orchestrates a query: collection resolution, filter
// reduction, the nearText call, and result assembly.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cloudmesh-labs/weavegate/internal/domain"
	"github.com/cloudmesh-labs/weavegate/internal/domain/props"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/request"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/result"
	"github.com/cloudmesh-labs/weavegate/internal/logger"
	"github.com/cloudmesh-labs/weavegate/internal/metrics"
)

// Service executes search queries against the backend.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Query runs a semantic search. Results come back in backend ranking
// order; zero matches yield an empty slice, not an error. Invalid
// filter conditions are dropped with a warning and the query proceeds
// with the reduced set. Failures other than a missing collection are
// reported as domain.ErrBackend.
func (s *Service) Query(ctx context.Context, req *request.Request) ([]result.Result, error) {
	class, err := s.repo.Collection(ctx, req.Collection())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}

	conds, skipped := req.Filters().Reduce()
	log := logger.FromContext(ctx)
	for _, skip := range skipped {
		metrics.FilterConditionsSkippedTotal.Inc()
		log.Warn("skipping invalid filter condition",
			zap.String("collection", req.Collection()),
			zap.String("field", skip.Condition.Field),
			zap.String("operator", skip.Condition.Operator),
			zap.String("reason", skip.Reason),
		)
	}

	start := time.Now()
	rows, err := s.repo.NearText(
		ctx, class, req.Query(), req.TopK(), conds, req.Filters().Disjunctive(),
	)
	metrics.SearchQueryDuration.WithLabelValues(req.Collection()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues(req.Collection(), "error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}
	metrics.SearchQueriesTotal.WithLabelValues(req.Collection(), "ok").Inc()

	exclude := make(map[string]struct{}, len(req.ExcludeFields()))
	for _, f := range req.ExcludeFields() {
		exclude[f] = struct{}{}
	}

	results := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		properties := make(map[string]any, len(row.Properties))
		for key, value := range row.Properties {
			if _, drop := exclude[key]; drop {
				continue
			}
			properties[key] = props.Normalize(value)
		}
		results = append(results, result.New(row.UUID, row.Distance, properties))
	}
	return results, nil
}
