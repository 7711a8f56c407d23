package weavegate

import (
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/filter"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/result"
)

// QueryRequest describes a semantic search.
type QueryRequest struct {
	Collection    string
	Query         string
	TopK          int // <= 0 uses the service default of 5
	ExcludeFields []string
	Filter        *Filter
}

// Filter is a flat conjunction or disjunction of conditions.
type Filter struct {
	Operator   string // "And" (default) or "Or"
	Conditions []FilterCondition
}

// FilterCondition is a single filter clause. Operator is one of
// eq, neq, gt, gte, lt, lte, like (case-insensitive). Conditions
// that fail validation are skipped, not rejected.
type FilterCondition struct {
	Field    string
	Operator string
	Value    any
}

// Result is a single search hit in backend ranking order.
type Result struct {
	UUID       string
	Score      float64
	Distance   *float64
	Properties map[string]any
}

// HealthStatus is the backend probe outcome.
type HealthStatus struct {
	Ready           bool
	WeaviateVersion string
}

func (f *Filter) toSpec() *filter.Spec {
	if f == nil {
		return nil
	}
	conditions := make([]filter.Condition, len(f.Conditions))
	for i, c := range f.Conditions {
		conditions[i] = filter.Condition{
			Field:    c.Field,
			Operator: c.Operator,
			Value:    c.Value,
		}
	}
	return &filter.Spec{Operator: f.Operator, Conditions: conditions}
}

func resultsFromDomain(results []result.Result) []Result {
	out := make([]Result, len(results))
	for i := range results {
		r := &results[i]
		out[i] = Result{
			UUID:       r.UUID(),
			Score:      r.Score(),
			Distance:   r.Distance(),
			Properties: r.Properties(),
		}
	}
	return out
}
