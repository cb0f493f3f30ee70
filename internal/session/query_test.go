package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoedit/internal/dataset"
)

func testSchema() dataset.Schema {
	return dataset.InferSchema([]map[string]string{
		{"alt": "10", "action": "photo"},
		{"alt": "20", "action": "video"},
	}, []string{"alt", "action"}, dataset.DefaultSampleRows)
}

func TestParseQuery(t *testing.T) {
	schema := testSchema()
	for _, tc := range []struct {
		in   string
		want AttributeQuery
	}{
		{"alt >= 15", AttributeQuery{Field: "alt", Operator: OpGte, Value: 15.0}},
		{"alt lte 15,5", AttributeQuery{Field: "alt", Operator: OpLte, Value: 15.5}},
		{"alt = 20", AttributeQuery{Field: "alt", Operator: OpEq, Value: 20.0}},
		{"action != photo", AttributeQuery{Field: "action", Operator: OpNeq, Value: "photo"}},
		{"action eq take photo", AttributeQuery{Field: "action", Operator: OpEq, Value: "take photo"}},
		{"action in photo | video", AttributeQuery{Field: "action", Operator: OpIn, Values: []any{"photo", "video"}}},
		{"alt in 10|20", AttributeQuery{Field: "alt", Operator: OpIn, Values: []any{10.0, 20.0}}},
		{"alt between 15 25", AttributeQuery{Field: "alt", Operator: OpBetween, Min: ptr(15), Max: ptr(25)}},
	} {
		got, err := ParseQuery(tc.in, schema)
		require.NoError(t, err, tc.in)
		assert.True(t, got.Equal(tc.want), "%s: got %+v", tc.in, got)
	}
}

func TestParseQueryErrors(t *testing.T) {
	schema := testSchema()
	for _, in := range []string{
		"",
		"alt >=",
		"speed >= 3",
		"alt ~ 3",
		"alt >= high",
		"alt >= 1 2",
		"alt between 1",
		"alt between a 2",
		"alt between 1 b",
	} {
		_, err := ParseQuery(in, schema)
		var verr *dataset.ValidationError
		assert.True(t, errors.As(err, &verr), "%q: %v", in, err)
	}

	_, err := ParseQuery("alt >= high", schema)
	assert.True(t, errors.Is(err, dataset.ErrNotNumeric))
}

func TestAttributeQueryMatches(t *testing.T) {
	attrs := dataset.Attributes{"alt": 20.0, "action": "photo", "gap": nil, "flag": true, "note": ""}
	for _, tc := range []struct {
		q    AttributeQuery
		want bool
	}{
		{AttributeQuery{Field: "alt", Operator: OpEq, Value: 20.0}, true},
		{AttributeQuery{Field: "alt", Operator: OpEq, Value: "20"}, true},
		{AttributeQuery{Field: "action", Operator: OpEq, Value: "video"}, false},
		{AttributeQuery{Field: "action", Operator: OpNeq, Value: "video"}, true},
		{AttributeQuery{Field: "gap", Operator: OpEq, Value: nil}, true},
		{AttributeQuery{Field: "flag", Operator: OpEq, Value: "true"}, true},
		{AttributeQuery{Field: "action", Operator: OpIn, Values: []any{"video", "photo"}}, true},
		{AttributeQuery{Field: "action", Operator: OpIn}, false},
		{AttributeQuery{Field: "alt", Operator: OpGte, Value: 20.0}, true},
		{AttributeQuery{Field: "alt", Operator: OpGte, Value: 21.0}, false},
		{AttributeQuery{Field: "alt", Operator: OpLte, Value: 20.0}, true},
		{AttributeQuery{Field: "alt", Operator: OpGte, Value: "10"}, false},
		{AttributeQuery{Field: "action", Operator: OpGte, Value: 0.0}, false},
		{AttributeQuery{Field: "alt", Operator: OpBetween, Min: ptr(20), Max: ptr(20)}, true},
		{AttributeQuery{Field: "alt", Operator: OpBetween, Min: ptr(21), Max: ptr(30)}, false},
		{AttributeQuery{Field: "alt", Operator: OpBetween, Min: ptr(0)}, false},
		{AttributeQuery{Field: "missing", Operator: OpNeq, Value: "x"}, true},
		{AttributeQuery{Field: "alt", Operator: OpGte, Value: 10}, true},
		{AttributeQuery{Field: "alt", Operator: OpLte, Value: int64(19)}, false},
		{AttributeQuery{Field: "alt", Operator: OpEq, Value: 20}, true},
		{AttributeQuery{Field: "alt", Operator: OpIn, Values: []any{uint8(20)}}, true},
		{AttributeQuery{Field: "note", Operator: OpEq, Value: 5}, false},
		{AttributeQuery{Field: "note", Operator: OpEq, Value: ""}, true},
	} {
		assert.Equal(t, tc.want, tc.q.Matches(attrs), "%+v", tc.q)
	}
}

func TestNormalizeQueryOperands(t *testing.T) {
	q, err := AttributeQuery{Field: "alt", Operator: OpIn, Value: int32(3), Values: []any{1, "x", nil}}.normalize()
	require.NoError(t, err)
	assert.Equal(t, 3.0, q.Value)
	assert.Equal(t, []any{1.0, "x", nil}, q.Values)

	_, err = AttributeQuery{Field: "alt", Operator: OpEq, Value: []int{1}}.normalize()
	var ve *dataset.ValidationError
	assert.ErrorAs(t, err, &ve)
	_, err = AttributeQuery{Field: "alt", Operator: OpIn, Values: []any{struct{}{}}}.normalize()
	assert.Error(t, err)
}
