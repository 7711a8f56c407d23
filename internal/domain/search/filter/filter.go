// Package filter models the declarative filter grammar accepted by the
// query endpoint: a single flat group of field conditions combined with
// AND or OR. Nested groups are not part of the grammar.
package filter

import "strings"

// Operator is a per-field comparison operator.
type Operator string

const (
	// OpEqual matches fields equal to the value.
	OpEqual Operator = "eq"
	// OpNotEqual matches fields not equal to the value.
	OpNotEqual Operator = "neq"
	// OpGreaterThan matches fields strictly greater than the value.
	OpGreaterThan Operator = "gt"
	// OpGreaterOrEqual matches fields greater than or equal to the value.
	OpGreaterOrEqual Operator = "gte"
	// OpLessThan matches fields strictly less than the value.
	OpLessThan Operator = "lt"
	// OpLessOrEqual matches fields less than or equal to the value.
	OpLessOrEqual Operator = "lte"
	// OpLike matches fields against a string wildcard pattern.
	OpLike Operator = "like"
)

// ParseOperator parses a comparison operator case-insensitively.
func ParseOperator(s string) (Operator, bool) {
	switch Operator(strings.ToLower(s)) {
	case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterOrEqual, OpLessThan, OpLessOrEqual, OpLike:
		return Operator(strings.ToLower(s)), true
	default:
		return "", false
	}
}

// Condition is a single raw filter clause as supplied by the caller.
// It has not been validated; Reduce decides whether it survives.
type Condition struct {
	Field    string
	Operator string
	Value    any
}

// Spec is a raw filter specification: a flat list of conditions and the
// operator combining them ("And" is the default, "Or" is the alternative).
type Spec struct {
	Operator   string
	Conditions []Condition
}

// Valid is a condition that passed validation, with its operator parsed.
type Valid struct {
	Field    string
	Operator Operator
	Value    any
}

// Skip records a condition that was dropped during Reduce and why.
// Skips are a logging concern, never an error: the query proceeds with
// the reduced condition set.
type Skip struct {
	Condition Condition
	Reason    string
}

// Reduce validates each condition in order and returns the surviving set
// together with the skipped ones. A nil spec or an empty condition list
// reduces to nothing, meaning no filter is applied.
func (s *Spec) Reduce() ([]Valid, []Skip) {
	if s == nil || len(s.Conditions) == 0 {
		return nil, nil
	}

	valid := make([]Valid, 0, len(s.Conditions))
	var skipped []Skip

	for _, c := range s.Conditions {
		if c.Field == "" {
			skipped = append(skipped, Skip{Condition: c, Reason: "missing field"})
			continue
		}
		op, ok := ParseOperator(c.Operator)
		if !ok {
			skipped = append(skipped, Skip{Condition: c, Reason: "unsupported operator"})
			continue
		}
		if c.Value == nil {
			skipped = append(skipped, Skip{Condition: c, Reason: "missing value"})
			continue
		}
		if op == OpLike {
			if _, isString := c.Value.(string); !isString {
				skipped = append(skipped, Skip{Condition: c, Reason: "like requires a string value"})
				continue
			}
		}
		valid = append(valid, Valid{Field: c.Field, Operator: op, Value: c.Value})
	}

	return valid, skipped
}

// Disjunctive reports whether the surviving conditions combine with OR.
// Any operator other than "or" (case-insensitive), including absence,
// combines with AND.
func (s *Spec) Disjunctive() bool {
	return s != nil && strings.EqualFold(s.Operator, "or")
}
