package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsOf(col string, vals ...string) []map[string]string {
	out := make([]map[string]string, len(vals))
	for i, v := range vals {
		out[i] = map[string]string{col: v}
	}
	return out
}

func TestParseNumber(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{" 12,5 ", 12.5, true},
		{"-0,001", -0.001, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"1,2,3", 0, false},
	} {
		got, ok := ParseNumber(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if ok {
			assert.InDelta(t, tc.want, got, 1e-12, tc.in)
		}
	}
}

func TestInferSchemaTypes(t *testing.T) {
	rows := []map[string]string{
		{"n": "1", "s": "a", "e": "", "mixed": "x"},
		{"n": "3,5", "s": "b", "e": " ", "mixed": "7"},
		{"n": "-2", "s": "a", "e": "", "mixed": "y"},
	}
	s := InferSchema(rows, []string{"n", "s", "e", "mixed"}, 0)
	require.Len(t, s.Fields, 4)

	n, _ := s.Field("n")
	assert.Equal(t, FieldNumber, n.Type)
	require.NotNil(t, n.Stats.Min)
	assert.Equal(t, -2.0, *n.Stats.Min)
	assert.Equal(t, 3.5, *n.Stats.Max)

	str, _ := s.Field("s")
	assert.Equal(t, FieldString, str.Type)
	assert.Equal(t, []string{"a", "b"}, str.Stats.Unique())

	e, _ := s.Field("e")
	assert.Equal(t, FieldOther, e.Type)

	mixed, _ := s.Field("mixed")
	assert.Equal(t, FieldNumber, mixed.Type, "one numeric sample is enough")
	assert.Equal(t, 7.0, *mixed.Stats.Min)
}

func TestInferSchemaSampleBoundStatsOverAll(t *testing.T) {
	vals := make([]string, 0, 150)
	for range 120 {
		vals = append(vals, "")
	}
	vals = append(vals, "5", "99")
	s := InferSchema(rowsOf("v", vals...), []string{"v"}, 100)
	assert.Equal(t, FieldOther, s.Fields[0].Type, "numbers past the sample are not seen")

	vals = []string{"1"}
	for range 200 {
		vals = append(vals, "1")
	}
	vals = append(vals, "500")
	s = InferSchema(rowsOf("v", vals...), []string{"v"}, 100)
	assert.Equal(t, 500.0, *s.Fields[0].Stats.Max, "stats cover every row")
}

func TestInferSchemaNoParsableNumbers(t *testing.T) {
	s := InferSchema(nil, []string{"a"}, 10)
	assert.Equal(t, FieldOther, s.Fields[0].Type)
	assert.Nil(t, s.Fields[0].Stats.Min)
}

func TestFieldTypeString(t *testing.T) {
	assert.Equal(t, "number", FieldNumber.String())
	assert.Equal(t, "string", FieldString.String())
	assert.Equal(t, "other", FieldOther.String())
}
