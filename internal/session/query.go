package session

import (
	"fmt"
	"slices"
	"strings"

	"geoedit/internal/dataset"
)

// Operator is the comparison of an attribute query.
type Operator string

const (
	OpEq      Operator = "eq"
	OpNeq     Operator = "neq"
	OpIn      Operator = "in"
	OpGte     Operator = "gte"
	OpLte     Operator = "lte"
	OpBetween Operator = "between"
)

var operatorAliases = map[string]Operator{
	"eq": OpEq, "=": OpEq, "==": OpEq,
	"neq": OpNeq, "!=": OpNeq, "<>": OpNeq,
	"in":  OpIn,
	"gte": OpGte, ">=": OpGte,
	"lte": OpLte, "<=": OpLte,
	"between": OpBetween,
}

// AttributeQuery is a single-field predicate over point attributes.
// Value serves eq/neq/gte/lte, Values serves in, Min/Max serve between.
type AttributeQuery struct {
	Field    string
	Operator Operator
	Value    any
	Values   []any
	Min      *float64
	Max      *float64
}

func (q AttributeQuery) clone() AttributeQuery {
	q.Values = slices.Clone(q.Values)
	if q.Min != nil {
		v := *q.Min
		q.Min = &v
	}
	if q.Max != nil {
		v := *q.Max
		q.Max = &v
	}
	return q
}

// normalize stores numeric operands as float64 and rejects operand types an
// attribute can never hold.
func (q AttributeQuery) normalize() (AttributeQuery, error) {
	q = q.clone()
	v, err := operand(q.Value)
	if err != nil {
		return q, err
	}
	q.Value = v
	for i, c := range q.Values {
		if q.Values[i], err = operand(c); err != nil {
			return q, err
		}
	}
	return q, nil
}

func operand(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool:
		return v, nil
	}
	if n, ok := dataset.AsNumber(v); ok {
		return n, nil
	}
	return nil, &dataset.ValidationError{Field: "query", Msg: fmt.Sprintf("unsupported operand type %T", v)}
}

func (q AttributeQuery) Equal(o AttributeQuery) bool {
	return q.Field == o.Field && q.Operator == o.Operator && q.Value == o.Value &&
		slices.Equal(q.Values, o.Values) && floatPtrEq(q.Min, o.Min) && floatPtrEq(q.Max, o.Max)
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Matches evaluates the query against one point's attributes. Equality
// operators compare string forms; ordering operators need numbers on both
// sides and never match otherwise.
func (q AttributeQuery) Matches(attrs dataset.Attributes) bool {
	v := attrs[q.Field]
	switch q.Operator {
	case OpEq:
		return dataset.CompareString(v) == dataset.CompareString(q.Value)
	case OpNeq:
		return dataset.CompareString(v) != dataset.CompareString(q.Value)
	case OpIn:
		s := dataset.CompareString(v)
		for _, c := range q.Values {
			if dataset.CompareString(c) == s {
				return true
			}
		}
		return false
	case OpGte, OpLte:
		n, ok := dataset.AsNumber(v)
		ref, rok := dataset.AsNumber(q.Value)
		if !ok || !rok {
			return false
		}
		if q.Operator == OpGte {
			return n >= ref
		}
		return n <= ref
	case OpBetween:
		n, ok := dataset.AsNumber(v)
		if !ok || q.Min == nil || q.Max == nil {
			return false
		}
		return n >= *q.Min && n <= *q.Max
	}
	return false
}

// ParseQuery reads the prompt form of a query:
//
//	alt between 15 25
//	alt >= 100
//	action in photo|video
//	name = wp 3
//
// The field must exist in schema. Operands of number fields are stored as
// numbers so they compare against the typed attribute mirror.
func ParseQuery(text string, schema dataset.Schema) (AttributeQuery, error) {
	parts := strings.Fields(text)
	if len(parts) < 3 {
		return AttributeQuery{}, &dataset.ValidationError{Field: "query", Msg: "want: <field> <operator> <value>"}
	}
	field, ok := schema.Field(parts[0])
	if !ok {
		return AttributeQuery{}, &dataset.ValidationError{Field: parts[0], Msg: "unknown field"}
	}
	op, ok := operatorAliases[strings.ToLower(parts[1])]
	if !ok {
		return AttributeQuery{}, &dataset.ValidationError{Field: "operator", Msg: fmt.Sprintf("unknown operator %q", parts[1])}
	}
	q := AttributeQuery{Field: field.Name, Operator: op}
	rest := parts[2:]
	typed := func(s string) any {
		if field.Type == dataset.FieldNumber {
			if n, ok := dataset.ParseNumber(s); ok {
				return n
			}
		}
		return s
	}
	number := func(s string) (float64, error) {
		n, ok := dataset.ParseNumber(s)
		if !ok {
			return 0, &dataset.ValidationError{Field: field.Name, Msg: fmt.Sprintf("%q is not a number", s), Err: dataset.ErrNotNumeric}
		}
		return n, nil
	}

	switch op {
	case OpEq, OpNeq:
		q.Value = typed(strings.Join(rest, " "))
	case OpIn:
		for _, s := range strings.Split(strings.Join(rest, " "), "|") {
			q.Values = append(q.Values, typed(strings.TrimSpace(s)))
		}
	case OpGte, OpLte:
		if len(rest) != 1 {
			return AttributeQuery{}, &dataset.ValidationError{Field: field.Name, Msg: "want a single number"}
		}
		n, err := number(rest[0])
		if err != nil {
			return AttributeQuery{}, err
		}
		q.Value = n
	case OpBetween:
		if len(rest) != 2 {
			return AttributeQuery{}, &dataset.ValidationError{Field: field.Name, Msg: "want: between <min> <max>"}
		}
		lo, err := number(rest[0])
		if err != nil {
			return AttributeQuery{}, err
		}
		hi, err := number(rest[1])
		if err != nil {
			return AttributeQuery{}, err
		}
		q.Min, q.Max = &lo, &hi
	}
	return q, nil
}
