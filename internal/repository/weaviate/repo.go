// Package weaviate binds the gateway to a Weaviate instance through the
// official Go client: schema resolution, where-predicate compilation,
// nearText search with typed row decoding, and readiness probing.
package weaviate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	wvt "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/cloudmesh-labs/weavegate/internal/domain"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/filter"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/result"
)

const readyPollInterval = 500 * time.Millisecond

// Config holds Weaviate connection settings.
type Config struct {
	Host    string
	Scheme  string
	APIKey  string
	Headers map[string]string
}

// Repo is the Weaviate backend binding. The underlying client is safe
// for concurrent use and is held for the process lifetime.
type Repo struct {
	client *wvt.Client
}

// New creates a Weaviate repository.
func New(cfg Config) (*Repo, error) {
	wcfg := wvt.Config{
		Host:    cfg.Host,
		Scheme:  cfg.Scheme,
		Headers: cfg.Headers,
	}
	if cfg.APIKey != "" {
		wcfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}

	client, err := wvt.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Repo{client: client}, nil
}

// WaitForReady polls the readiness probe until Weaviate reports ready
// or the timeout elapses.
func (r *Repo) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		if ready, err := r.Ready(ctx); err == nil && ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("weaviate not ready after %s: %w", timeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

// ListCollections returns the names of all collections in the schema,
// in the order Weaviate reports them.
func (r *Repo) ListCollections(ctx context.Context) ([]string, error) {
	schema, err := r.client.Schema().Getter().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("get schema: %w", err)
	}

	names := make([]string, 0, len(schema.Classes))
	for _, c := range schema.Classes {
		names = append(names, c.Class)
	}
	return names, nil
}

// Collection resolves a collection by name. A missing collection maps
// to domain.ErrNotFound; any other failure is returned as-is.
func (r *Repo) Collection(ctx context.Context, name string) (*models.Class, error) {
	class, err := r.client.Schema().ClassGetter().WithClassName(name).Do(ctx)
	if err != nil {
		var clientErr *fault.WeaviateClientError
		if errors.As(err, &clientErr) && clientErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("get class %s: %w", name, err)
	}
	return class, nil
}

// NearText runs a semantic nearText search over the collection. All
// schema properties are fetched (field exclusion happens upstream),
// together with the object id and distance metadata. The surviving
// filter conditions, if any, are compiled into a where predicate.
func (r *Repo) NearText(
	ctx context.Context, class *models.Class,
	query string, topK int, conds []filter.Valid, disjunctive bool,
) ([]result.Row, error) {
	nearText := r.client.GraphQL().NearTextArgBuilder().WithConcepts([]string{query})

	builder := r.client.GraphQL().Get().
		WithClassName(class.Class).
		WithNearText(nearText).
		WithLimit(topK).
		WithFields(fieldsForClass(class)...)

	if where := whereFromConditions(conds, disjunctive, propertyTypes(class)); where != nil {
		builder = builder.WithWhere(where)
	}

	resp, err := builder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("near text %s: %w", class.Class, err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("near text %s: %s", class.Class, resp.Errors[0].Message)
	}

	return rowsFromResponse(resp, class)
}

// Ready probes the Weaviate readiness endpoint.
func (r *Repo) Ready(ctx context.Context) (bool, error) {
	ready, err := r.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return false, fmt.Errorf("readiness probe: %w", err)
	}
	return ready, nil
}

// Meta returns the Weaviate server version.
func (r *Repo) Meta(ctx context.Context) (string, error) {
	meta, err := r.client.Misc().MetaGetter().Do(ctx)
	if err != nil {
		return "", fmt.Errorf("get meta: %w", err)
	}
	return meta.Version, nil
}
