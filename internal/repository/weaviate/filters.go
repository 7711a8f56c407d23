package weaviate

import (
	"fmt"
	"strings"
	"time"

	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/cloudmesh-labs/weavegate/internal/domain/search/filter"
)

// whereFromConditions compiles the surviving filter conditions into a
// Weaviate where predicate. Conditions combine into a single flat group:
// Or when disjunctive, And otherwise. A single condition is used bare.
// Returns nil when there is nothing to filter on.
func whereFromConditions(
	conds []filter.Valid, disjunctive bool, types map[string]string,
) *filters.WhereBuilder {
	if len(conds) == 0 {
		return nil
	}

	operands := make([]*filters.WhereBuilder, len(conds))
	for i, c := range conds {
		operands[i] = whereFromCondition(c, types[c.Field])
	}

	if len(operands) == 1 {
		return operands[0]
	}

	groupOp := filters.And
	if disjunctive {
		groupOp = filters.Or
	}
	return filters.Where().WithOperator(groupOp).WithOperands(operands)
}

// whereFromCondition builds the per-field comparison for one condition.
// dataType is the schema type of the field ("" when the field is not in
// the schema — the value's own kind decides then).
func whereFromCondition(c filter.Valid, dataType string) *filters.WhereBuilder {
	b := filters.Where().
		WithPath([]string{c.Field}).
		WithOperator(whereOperator(c.Operator))
	return withTypedValue(b, c.Value, dataType)
}

// whereOperator maps the filter grammar operators onto Weaviate's.
func whereOperator(op filter.Operator) filters.WhereOperator {
	switch op {
	case filter.OpEqual:
		return filters.Equal
	case filter.OpNotEqual:
		return filters.NotEqual
	case filter.OpGreaterThan:
		return filters.GreaterThan
	case filter.OpGreaterOrEqual:
		return filters.GreaterThanEqual
	case filter.OpLessThan:
		return filters.LessThan
	case filter.OpLessOrEqual:
		return filters.LessThanEqual
	case filter.OpLike:
		return filters.Like
	default:
		// Reduce only emits the seven operators above.
		return filters.Equal
	}
}

// withTypedValue applies the condition value with the GraphQL value
// type Weaviate expects for the field.
func withTypedValue(b *filters.WhereBuilder, value any, dataType string) *filters.WhereBuilder {
	switch valueCategory(value, dataType) {
	case "int":
		return b.WithValueInt(asInt64(value))
	case "number":
		return b.WithValueNumber(asFloat64(value))
	case "boolean":
		return b.WithValueBoolean(value.(bool))
	case "date":
		t, _ := asTime(value)
		return b.WithValueDate(t)
	default:
		return b.WithValueText(asString(value))
	}
}

// valueCategory resolves the value type to use in the predicate. The
// schema type of the field wins when the value is compatible with it;
// otherwise the value's own kind decides.
func valueCategory(value any, dataType string) string {
	// Conditions on array fields compare against single elements.
	dataType = strings.TrimSuffix(dataType, "[]")

	switch dataType {
	case "int":
		if isNumeric(value) {
			return "int"
		}
	case "number":
		if isNumeric(value) {
			return "number"
		}
	case "boolean":
		if _, ok := value.(bool); ok {
			return "boolean"
		}
	case "date":
		if _, ok := asTime(value); ok {
			return "date"
		}
	}

	switch value.(type) {
	case bool:
		return "boolean"
	case int, int32, int64:
		return "int"
	case float32, float64:
		return "number"
	default:
		return "text"
	}
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

func asInt64(value any) int64 {
	switch n := value.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asFloat64(value any) float64 {
	switch n := value.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func asTime(value any) (time.Time, bool) {
	switch t := value.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func asString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// propertyTypes indexes the class schema by property name, keeping the
// primary data type of each property.
func propertyTypes(class *models.Class) map[string]string {
	types := make(map[string]string, len(class.Properties))
	for _, p := range class.Properties {
		types[p.Name] = primaryDataType(p.DataType)
	}
	return types
}

func primaryDataType(dataType []string) string {
	if len(dataType) == 0 {
		return ""
	}
	return dataType[0]
}
