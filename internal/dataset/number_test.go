package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"wp1", "wp1"},
		{20.5, "20.5"},
		{true, "true"},
		{7, "7"},
		{int64(-3), "-3"},
		{float32(1.5), "1.5"},
		{[]int{1}, "[1]"},
	} {
		assert.Equal(t, tc.want, FormatValue(tc.in), "%#v", tc.in)
	}
	assert.Equal(t, "null", CompareString(nil))
}

func TestAsNumber(t *testing.T) {
	n, ok := AsNumber(uint16(12))
	assert.True(t, ok)
	assert.Equal(t, 12.0, n)

	_, ok = AsNumber("12")
	assert.False(t, ok)
}
