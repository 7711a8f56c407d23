package chi

import (
	"encoding/json"
	"strconv"

	"github.com/cloudmesh-labs/weavegate/internal/domain/search/filter"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/result"
)

// queryRequest is the POST /query body. top_k and filters decode
// leniently: a malformed filters shape means "no filter", not a client
// error, and top_k coerces from any numeric form.
type queryRequest struct {
	CollectionName string          `json:"collection_name"`
	Query          string          `json:"query"`
	TopK           json.RawMessage `json:"top_k"`
	ExcludeFields  []string        `json:"exclude_fields"`
	Filters        json.RawMessage `json:"filters"`
}

// topK coerces the raw top_k value to an integer: numbers truncate,
// numeric strings parse. Anything else falls back to the service
// default via 0.
func (q *queryRequest) topK() int {
	if len(q.TopK) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(q.TopK, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(q.TopK, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// filterSpec decodes the raw filters value best-effort. A value that is
// not an object, or whose conditions are not a list of objects, yields
// a nil spec and the search runs unfiltered.
func (q *queryRequest) filterSpec() *filter.Spec {
	if len(q.Filters) == 0 {
		return nil
	}
	var spec filterSpecJSON
	if err := json.Unmarshal(q.Filters, &spec); err != nil {
		return nil
	}
	return spec.toDomain()
}

type filterSpecJSON struct {
	Operator   string              `json:"operator"`
	Conditions []filterConditionJSON `json:"conditions"`
}

type filterConditionJSON struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

func (f *filterSpecJSON) toDomain() *filter.Spec {
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

// queryResultJSON is one row of the POST /query response.
type queryResultJSON struct {
	Properties map[string]any `json:"properties"`
	Score      float64        `json:"score"`
	Distance   *float64       `json:"distance"`
	UUID       string         `json:"uuid"`
}

func resultsToJSON(results []result.Result) []queryResultJSON {
	out := make([]queryResultJSON, len(results))
	for i := range results {
		r := &results[i]
		properties := r.Properties()
		if properties == nil {
			properties = map[string]any{}
		}
		out[i] = queryResultJSON{
			Properties: properties,
			Score:      r.Score(),
			Distance:   r.Distance(),
			UUID:       r.UUID(),
		}
	}
	return out
}

type collectionsResponse struct {
	Collections []string `json:"collections"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type healthResponse struct {
	Status          string `json:"status"`
	WeaviateVersion string `json:"weaviate_version,omitempty"`
	Message         string `json:"message,omitempty"`
}
