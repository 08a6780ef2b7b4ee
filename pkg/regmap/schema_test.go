package regmap

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected float64
		nan      bool
	}{
		{name: "number", in: `42`, expected: 42},
		{name: "float", in: `2.5`, expected: 2.5},
		{name: "decimal string", in: `"17"`, expected: 17},
		{name: "hex string", in: `"0x1F"`, expected: 31},
		{name: "garbage string", in: `"soon"`, nan: true},
		{name: "empty string", in: `""`, nan: true},
		{name: "null", in: `null`, nan: true},
		{name: "object", in: `{"v": 1}`, nan: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Scalar
			require.NoError(t, json.Unmarshal([]byte(tt.in), &s))
			if tt.nan {
				assert.True(t, math.IsNaN(float64(s)), "got %v", float64(s))
				return
			}
			assert.Equal(t, tt.expected, float64(s))
		})
	}
}

func TestScalar_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected string
	}{
		{name: "integer", in: 42, expected: `42`},
		{name: "zero", in: 0, expected: `0`},
		{name: "fraction", in: 2.5, expected: `2.5`},
		{name: "NaN becomes null", in: math.NaN(), expected: `null`},
		{name: "infinity becomes null", in: math.Inf(1), expected: `null`},
		{name: "huge value keeps a numeric form", in: math.Ldexp(1, 60), expected: `1.152921504606847e+18`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(Scalar(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(b))
		})
	}
}

func TestBitsSpec_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected BitsSpec
		nanAt    []int
	}{
		{name: "bare number", in: `5`, expected: BitsSpec{5}},
		{name: "pair", in: `[7, 4]`, expected: BitsSpec{7, 4}},
		{name: "reversed pair kept raw", in: `[0, 3]`, expected: BitsSpec{0, 3}},
		{name: "hex string elements", in: `["0x7", 4]`, expected: BitsSpec{7, 4}},
		{name: "numeric string", in: `"6"`, expected: BitsSpec{6}},
		{name: "three elements kept", in: `[1, 2, 3]`, expected: BitsSpec{1, 2, 3}},
		{name: "empty array", in: `[]`, expected: BitsSpec{}},
		{name: "null", in: `null`, expected: BitsSpec{}},
		{name: "garbage string", in: `"7:4"`, expected: BitsSpec{0}, nanAt: []int{0}},
		{name: "garbage element", in: `[7, "x"]`, expected: BitsSpec{7, 0}, nanAt: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b BitsSpec
			require.NoError(t, json.Unmarshal([]byte(tt.in), &b))
			if tt.nanAt == nil {
				assert.Equal(t, tt.expected, b)
				return
			}
			nan := make(map[int]bool)
			for _, i := range tt.nanAt {
				nan[i] = true
			}
			require.Len(t, b, len(tt.expected))
			for i := range b {
				if nan[i] {
					assert.True(t, math.IsNaN(b[i]), "element %d should be NaN", i)
				} else {
					assert.Equal(t, tt.expected[i], b[i])
				}
			}
		})
	}
}

func TestBitsSpec_Marshal(t *testing.T) {
	b, err := json.Marshal(BitsSpec{5})
	require.NoError(t, err)
	assert.Equal(t, `5`, string(b), "single bits store as a bare number")

	b, err = json.Marshal(BitsSpec{7, 4})
	require.NoError(t, err)
	assert.Equal(t, `[7,4]`, string(b))

	b, err = json.Marshal(PairFor(0, 3))
	require.NoError(t, err)
	assert.Equal(t, `[3,0]`, string(b), "pairs store MSB first")
}

func TestFieldDef_RoundTrip(t *testing.T) {
	in := `{
		"name": "MODE",
		"bits": [6, 4],
		"reset": "0x2",
		"access": "rw",
		"color": "green"
	}`

	var fd FieldDef
	require.NoError(t, json.Unmarshal([]byte(in), &fd))
	assert.Equal(t, "MODE", fd.Name)
	assert.Equal(t, BitsSpec{6, 4}, fd.Bits)
	require.NotNil(t, fd.Reset)
	assert.Equal(t, Scalar(2), *fd.Reset)

	out, err := json.Marshal(fd)
	require.NoError(t, err)
	// Hex strings normalize to numbers on the way back out.
	assert.JSONEq(t, `{"name":"MODE","bits":[6,4],"reset":2,"access":"rw","color":"green"}`, string(out))
}

func TestFieldDef_AbsentReset(t *testing.T) {
	var fd FieldDef
	require.NoError(t, json.Unmarshal([]byte(`{"name": "F", "bits": 0}`), &fd))
	assert.Nil(t, fd.Reset, "absent reset stays absent")

	out, err := json.Marshal(fd)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "reset")
}
