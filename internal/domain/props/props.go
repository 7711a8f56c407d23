// Package props converts typed backend property values into JSON-safe
// values. The backend binding surfaces Weaviate properties as Go values
// (time.Time for dates, uuid.UUID for identifiers, GeoCoordinate for geo
// points, []any and map[string]any for containers); Normalize collapses
// them into the external representation.
package props

import (
	"time"

	"github.com/google/uuid"
)

// GeoCoordinate is a geographic point property value.
type GeoCoordinate struct {
	Latitude  float64
	Longitude float64
}

// Normalize converts a property value into a JSON-safe value. It is
// total: values that already are JSON-safe scalars pass through
// unchanged, containers are normalized recursively with element order
// and key set preserved. Classification order matters — timestamps and
// identifiers are resolved before the container checks.
func Normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case uuid.UUID:
		return t.String()
	case GeoCoordinate:
		return map[string]any{
			"latitude":  t.Latitude,
			"longitude": t.Longitude,
		}
	case *GeoCoordinate:
		if t == nil {
			return nil
		}
		return Normalize(*t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Normalize(e)
		}
		return out
	default:
		return v
	}
}

// NormalizeAll normalizes every value of a property map, preserving the
// key set. A nil map normalizes to an empty one.
func NormalizeAll(properties map[string]any) map[string]any {
	out := make(map[string]any, len(properties))
	for k, v := range properties {
		out[k] = Normalize(v)
	}
	return out
}
