package regmap

import (
	"fmt"

	"github.com/ipcraft/regkit/pkg/types"
)

// Severity classifies how serious a map problem is.
type Severity int

const (
	SevWarning Severity = iota // Cosmetic or recoverable, editing still works
	SevError                   // The register or field cannot be edited as stored
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Problem is one validation finding, located by register and field name.
type Problem struct {
	Severity Severity
	Register string // "" for map-level problems
	Field    string // "" for register-level problems
	Msg      string
}

func (p Problem) String() string {
	where := p.Register
	if p.Field != "" {
		where += "." + p.Field
	}
	if where == "" {
		where = "map"
	}
	return fmt.Sprintf("%s %s: %s", p.Severity, where, p.Msg)
}

// Validate reports the problems in a map worth surfacing to an operator.
// Unresolvable bit specs are not reported here: the engine skips those
// fields by policy, and flagging them would make every half-typed record
// an error.
func (m *Map) Validate() []Problem {
	var problems []Problem

	regNames := make(map[string]bool)
	for _, reg := range m.Registers {
		if reg.Name == "" {
			problems = append(problems, Problem{
				Severity: SevWarning,
				Msg:      "register has no name",
			})
		} else if regNames[reg.Name] {
			problems = append(problems, Problem{
				Severity: SevWarning,
				Register: reg.Name,
				Msg:      "duplicate register name",
			})
		}
		regNames[reg.Name] = true

		if reg.Width < 1 || reg.Width > types.MaxWidth {
			problems = append(problems, Problem{
				Severity: SevError,
				Register: reg.Name,
				Msg:      fmt.Sprintf("width %d outside [1, %d]", reg.Width, types.MaxWidth),
			})
			// Range checks below would be meaningless.
			continue
		}

		problems = append(problems, validateFields(reg)...)
	}
	return problems
}

func validateFields(reg RegisterDef) []Problem {
	var problems []Problem

	fieldNames := make(map[string]bool)
	type placed struct {
		name string
		bits types.BitRange
	}
	var resolved []placed

	for _, f := range reg.Fields {
		if f.Name == "" {
			problems = append(problems, Problem{
				Severity: SevWarning,
				Register: reg.Name,
				Msg:      "field has no name",
			})
		} else if fieldNames[f.Name] {
			problems = append(problems, Problem{
				Severity: SevWarning,
				Register: reg.Name,
				Field:    f.Name,
				Msg:      "duplicate field name",
			})
		}
		fieldNames[f.Name] = true

		r, ok := types.BitSpec(f.Bits).Resolve()
		if !ok {
			continue
		}
		if r.Lo < 0 || r.Hi > reg.Width-1 {
			problems = append(problems, Problem{
				Severity: SevError,
				Register: reg.Name,
				Field:    f.Name,
				Msg:      fmt.Sprintf("bits %v outside register width %d", r, reg.Width),
			})
			continue
		}
		for _, other := range resolved {
			if r.Overlaps(other.bits) {
				problems = append(problems, Problem{
					Severity: SevError,
					Register: reg.Name,
					Field:    f.Name,
					Msg:      fmt.Sprintf("bits %v overlap field %q %v", r, other.name, other.bits),
				})
			}
		}
		resolved = append(resolved, placed{name: f.Name, bits: r})
	}
	return problems
}
