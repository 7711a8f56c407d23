package weavegate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cloudmesh-labs/weavegate/internal/domain/search/request"
	"github.com/cloudmesh-labs/weavegate/internal/logger"
	weaviaterepo "github.com/cloudmesh-labs/weavegate/internal/repository/weaviate"
	collectionuc "github.com/cloudmesh-labs/weavegate/internal/usecase/collection"
	healthuc "github.com/cloudmesh-labs/weavegate/internal/usecase/health"
	searchuc "github.com/cloudmesh-labs/weavegate/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the weavegate SDK entry point.
type Client struct {
	collSvc   *collectionuc.Service
	searchSvc *searchuc.Service
	healthSvc *healthuc.Service
	logger    *zap.Logger
}

// New creates a Client connected to the Weaviate instance at host.
// The provided context bounds the initial readiness wait.
func New(ctx context.Context, host string, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, errors.New("weavegate: host required")
	}

	cfg := &clientConfig{
		scheme:           "http",
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	repo, err := weaviaterepo.New(weaviaterepo.Config{
		Host:    host,
		Scheme:  cfg.scheme,
		APIKey:  cfg.apiKey,
		Headers: cfg.headers,
	})
	if err != nil {
		return nil, fmt.Errorf("weavegate: create client: %w", err)
	}

	if err := repo.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		return nil, fmt.Errorf("weavegate: backend not ready: %w", err)
	}

	return &Client{
		collSvc:   collectionuc.New(repo),
		searchSvc: searchuc.New(repo),
		healthSvc: healthuc.New(repo),
		logger:    cfg.logger,
	}, nil
}

// Collections returns all collection names in backend order.
func (c *Client) Collections(ctx context.Context) ([]string, error) {
	return c.collSvc.List(c.withLogger(ctx))
}

// Query runs a semantic search and returns hits in backend ranking
// order. Zero matches yield an empty slice. A missing collection is
// reported as ErrNotFound, a malformed request as ErrValidation.
func (c *Client) Query(ctx context.Context, q QueryRequest) ([]Result, error) {
	req, err := request.New(q.Collection, q.Query, q.TopK, q.ExcludeFields, q.Filter.toSpec())
	if err != nil {
		return nil, err
	}

	results, err := c.searchSvc.Query(c.withLogger(ctx), &req)
	if err != nil {
		return nil, err
	}
	return resultsFromDomain(results), nil
}

// Health probes the backend.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	report, err := c.healthSvc.Check(c.withLogger(ctx))
	if err != nil {
		return HealthStatus{}, err
	}
	return HealthStatus{Ready: report.Ready, WeaviateVersion: report.Version}, nil
}

func (c *Client) withLogger(ctx context.Context) context.Context {
	if c.logger == nil {
		return ctx
	}
	return logger.ContextWithLogger(ctx, c.logger)
}
