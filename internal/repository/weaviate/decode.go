package weaviate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/cloudmesh-labs/weavegate/internal/domain/props"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/result"
)

// propSchema carries what decoding needs to know about one property.
type propSchema struct {
	dataType string
	nested   []*models.NestedProperty
}

// rowsFromResponse extracts the result rows from a GraphQL Get
// response, decoding property values into their typed forms according
// to the class schema. Rows come back in backend ranking order.
func rowsFromResponse(resp *models.GraphQLResponse, class *models.Class) ([]result.Row, error) {
	var getData any = resp.Data["Get"]
	byClass, ok := getData.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected response shape for %s", class.Class)
	}

	items, ok := byClass[class.Class].([]any)
	if !ok {
		// Weaviate omits the class key when nothing matched.
		return nil, nil
	}

	schema := make(map[string]propSchema, len(class.Properties))
	for _, p := range class.Properties {
		schema[p.Name] = propSchema{
			dataType: primaryDataType(p.DataType),
			nested:   p.NestedProperties,
		}
	}

	rows := make([]result.Row, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rows = append(rows, rowFromObject(obj, schema))
	}
	return rows, nil
}

func rowFromObject(obj map[string]any, schema map[string]propSchema) result.Row {
	row := result.Row{Properties: make(map[string]any, len(obj))}

	for key, value := range obj {
		if key == "_additional" {
			continue
		}
		if ps, known := schema[key]; known {
			value = decodeValue(value, ps.dataType, ps.nested)
		}
		row.Properties[key] = value
	}

	if add, ok := obj["_additional"].(map[string]any); ok {
		if id, ok := add["id"].(string); ok {
			row.UUID = id
		}
		if d, ok := add["distance"].(float64); ok {
			row.Distance = &d
		}
	}
	return row
}

// decodeValue converts one raw GraphQL value into its typed form.
// Values that do not match their declared type pass through unchanged —
// decoding is best effort, the normalizer copes with anything.
func decodeValue(v any, dataType string, nested []*models.NestedProperty) any {
	if v == nil {
		return nil
	}

	if elem, isArray := strings.CutSuffix(dataType, "[]"); isArray {
		items, ok := v.([]any)
		if !ok {
			return v
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = decodeValue(item, elem, nested)
		}
		return out
	}

	switch dataType {
	case "date":
		s, ok := v.(string)
		if !ok {
			return v
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return v
		}
		return t
	case "uuid":
		s, ok := v.(string)
		if !ok {
			return v
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return v
		}
		return id
	case "geoCoordinates":
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		lat, latOK := m["latitude"].(float64)
		lon, lonOK := m["longitude"].(float64)
		if !latOK || !lonOK {
			return v
		}
		return props.GeoCoordinate{Latitude: lat, Longitude: lon}
	case "int":
		if f, ok := v.(float64); ok {
			return int64(f)
		}
		return v
	case "object":
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		byName := make(map[string]*models.NestedProperty, len(nested))
		for _, n := range nested {
			byName[n.Name] = n
		}
		out := make(map[string]any, len(m))
		for k, e := range m {
			if n, known := byName[k]; known {
				e = decodeValue(e, primaryDataType(n.DataType), n.NestedProperties)
			}
			out[k] = e
		}
		return out
	default:
		return v
	}
}
