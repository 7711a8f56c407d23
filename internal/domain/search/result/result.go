// Package result holds the search result types: the raw row shape
// returned by the backend binding and the normalized result served to
// callers.
package result

// Row is one raw search hit as decoded from the backend, before
// normalization and field exclusion. Properties hold typed values
// (time.Time, uuid.UUID, props.GeoCoordinate, containers, scalars).
type Row struct {
	UUID       string
	Distance   *float64
	Properties map[string]any
}

// Result is one normalized search hit.
type Result struct {
	uuid       string
	score      float64
	distance   *float64
	properties map[string]any
}

// New creates a result. The score is derived from the distance.
func New(uuid string, distance *float64, properties map[string]any) Result {
	return Result{
		uuid:       uuid,
		score:      ScoreFromDistance(distance),
		distance:   distance,
		properties: properties,
	}
}

// UUID returns the object identifier.
func (r *Result) UUID() string { return r.uuid }

// Score returns the derived similarity score (higher is better).
func (r *Result) Score() float64 { return r.score }

// Distance returns the raw backend distance (lower is better), or nil
// when the backend reported none.
func (r *Result) Distance() *float64 { return r.distance }

// Properties returns the normalized properties.
func (r *Result) Properties() map[string]any { return r.properties }

// ScoreFromDistance derives a similarity score from a backend distance:
// 1 − distance when present, 0 otherwise. The formula assumes a
// cosine-like metric where 0 means identical; it is kept as-is for
// compatibility with existing clients.
func ScoreFromDistance(distance *float64) float64 {
	if distance == nil {
		return 0.0
	}
	return 1.0 - *distance
}
