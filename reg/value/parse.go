package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ipcraft/regkit/internal/bits"
	"github.com/ipcraft/regkit/pkg/types"
)

// Parse reads operator-typed value text. Decimal and 0x-prefixed
// hexadecimal forms are accepted; surrounding whitespace is ignored.
// Returns false for empty or non-numeric text.
//
// Parse deliberately accepts negative and fractional values: it only
// answers "is this a number", and Check answers "is this number legal
// for a field of this width". Splitting the stages lets a host show
// range errors separately from typos.
func Parse(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	if len(text) > 2 && (strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")) {
		u, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(u), true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Check validates a parsed value against a field width, returning the
// engine value. Non-finite and fractional inputs fail as malformed;
// negative and too-large inputs fail as out of range.
func Check(v float64, width int) (uint64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &types.Error{Kind: types.ErrKindValue, Msg: "value is not finite", Err: types.ErrValueForm}
	}
	if v != math.Trunc(v) {
		return 0, &types.Error{Kind: types.ErrKindValue, Msg: fmt.Sprintf("value %v is not a whole number", v), Err: types.ErrValueForm}
	}
	if v < 0 {
		return 0, &types.Error{Kind: types.ErrKindValue, Msg: fmt.Sprintf("value %v is negative", v), Err: types.ErrValueRange}
	}
	if v >= math.Ldexp(1, 64) {
		return 0, &types.Error{Kind: types.ErrKindValue, Msg: fmt.Sprintf("value %v exceeds 64 bits", v), Err: types.ErrValueRange}
	}
	u := uint64(v)
	if limit := bits.MaxValue(width); u > limit {
		return 0, &types.Error{
			Kind: types.ErrKindValue,
			Msg:  fmt.Sprintf("value %d does not fit in %d bits (max %d)", u, width, limit),
			Err:  types.ErrValueRange,
		}
	}
	return u, nil
}
