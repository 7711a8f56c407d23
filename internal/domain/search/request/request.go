// Package request models a validated query request.
package request

import (
	"fmt"

	"github.com/cloudmesh-labs/weavegate/internal/domain"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/filter"
)

// DefaultTopK is the result limit applied when the caller omits top_k.
const DefaultTopK = 5

// Request is a validated search request.
type Request struct {
	collection    string
	query         string
	topK          int
	excludeFields []string
	filters       *filter.Spec
}

// New validates and creates a Request. Collection and query are
// required; a non-positive topK falls back to DefaultTopK. No upper
// bound is enforced here — the backend applies its own limits.
func New(collection, query string, topK int, excludeFields []string, filters *filter.Spec) (Request, error) {
	if collection == "" || query == "" {
		return Request{}, fmt.Errorf(
			"%w: Missing required fields: 'collection_name' and 'query'", domain.ErrValidation,
		)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return Request{
		collection:    collection,
		query:         query,
		topK:          topK,
		excludeFields: excludeFields,
		filters:       filters,
	}, nil
}

// Collection returns the target collection name.
func (r *Request) Collection() string { return r.collection }

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// TopK returns the result limit.
func (r *Request) TopK() int { return r.topK }

// ExcludeFields returns the top-level property keys to drop from results.
func (r *Request) ExcludeFields() []string { return r.excludeFields }

// Filters returns the raw filter spec, or nil when no filter was given.
func (r *Request) Filters() *filter.Spec { return r.filters }
