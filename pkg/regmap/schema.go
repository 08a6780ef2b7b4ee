package regmap

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/ipcraft/regkit/reg/value"
)

// Map is the root of a register-map document.
type Map struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Registers   []RegisterDef `json:"registers"`
}

// RegisterDef describes one register and its field records.
type RegisterDef struct {
	Name        string     `json:"name"`
	Offset      *Scalar    `json:"offset,omitempty"`
	Width       int        `json:"width"`
	Description string     `json:"description,omitempty"`
	Fields      []FieldDef `json:"fields"`
}

// FieldDef is one field record as stored in the file.
type FieldDef struct {
	Name        string   `json:"name"`
	Bits        BitsSpec `json:"bits"`
	Reset       *Scalar  `json:"reset,omitempty"`
	Access      string   `json:"access,omitempty"`
	Color       string   `json:"color,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Scalar is a JSON number or a numeric string ("42", "0x2A"). Anything
// else decodes as NaN rather than failing, keeping the raw-value degrade
// paths reachable from real files.
type Scalar float64

func (s *Scalar) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Scalar(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, ok := value.Parse(str); ok {
			*s = Scalar(v)
			return nil
		}
	}
	*s = Scalar(math.NaN())
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.AppendInt(nil, int64(f), 10), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// BitsSpec is the raw "bits" encoding: a bare number for a single bit or
// an [hi, lo] array. Like Scalar it never fails to decode; unresolvable
// forms are kept for the engine to skip.
type BitsSpec []float64

func (b *BitsSpec) UnmarshalJSON(data []byte) error {
	var elems []Scalar
	if err := json.Unmarshal(data, &elems); err == nil {
		out := make(BitsSpec, len(elems))
		for i, e := range elems {
			out[i] = float64(e)
		}
		*b = out
		return nil
	}
	var sc Scalar
	_ = sc.UnmarshalJSON(data)
	*b = BitsSpec{float64(sc)}
	return nil
}

func (b BitsSpec) MarshalJSON() ([]byte, error) {
	if len(b) == 1 {
		return Scalar(b[0]).MarshalJSON()
	}
	elems := make([]Scalar, len(b))
	for i, v := range b {
		elems[i] = Scalar(v)
	}
	return json.Marshal(elems)
}

// PairFor encodes a concrete range back into the stored [hi, lo] form.
func PairFor(lo, hi int) BitsSpec {
	return BitsSpec{float64(hi), float64(lo)}
}
