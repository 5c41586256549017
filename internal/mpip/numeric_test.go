package mpip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		tok      string
		kind     Kind
		intVal   int
		floatVal float64
	}{
		{tok: "42", kind: Integer, intVal: 42, floatVal: 42},
		{tok: "-7", kind: Integer, intVal: -7, floatVal: -7},
		{tok: "+3", kind: Integer, intVal: 3, floatVal: 3},
		{tok: "1.5", kind: Float, floatVal: 1.5},
		{tok: "4.02e+04", kind: Float, floatVal: 40200},
		{tok: ".25", kind: Float, floatVal: 0.25},
		{tok: "12.", kind: Float, floatVal: 12},
		{tok: "99999999999999999999", kind: Float, floatVal: 1e20},
		{tok: "*", kind: NotNumeric},
		{tok: "Allreduce", kind: NotNumeric},
		{tok: "inf", kind: NotNumeric},
		{tok: "NaN", kind: NotNumeric},
		{tok: "0x1p3", kind: NotNumeric},
		{tok: "1_000", kind: NotNumeric},
		{tok: "", kind: NotNumeric},
		{tok: "App%", kind: NotNumeric},
	}

	for _, tc := range testCases {
		t.Run(tc.tok, func(t *testing.T) {
			t.Parallel()

			n := Coerce(tc.tok)

			require.Equal(t, tc.kind, n.Kind)
			if tc.kind == Integer {
				v, ok := n.AsInt()
				require.True(t, ok)
				assert.Equal(t, tc.intVal, v)
			}
			if tc.kind != NotNumeric {
				v, ok := n.AsFloat()
				require.True(t, ok)
				assert.InDelta(t, tc.floatVal, v, 1e-9)
			}
		})
	}
}

func TestNumber_AsIntRejectsFloat(t *testing.T) {
	t.Parallel()

	_, ok := Coerce("1.0").AsInt()
	assert.False(t, ok, "a float token must not be read as an integer")

	_, ok = Coerce("*").AsFloat()
	assert.False(t, ok)
}

func TestIsNumericLike(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNumericLike("0"))
	assert.True(t, IsNumericLike("8.48"))
	assert.False(t, IsNumericLike(AggregateMarker))
	assert.False(t, IsNumericLike("Op"))
}
