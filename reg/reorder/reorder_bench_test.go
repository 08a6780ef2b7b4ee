package reorder

import (
	"fmt"
	"testing"

	"github.com/ipcraft/regkit/pkg/types"
)

func benchFields(n int) []types.Field {
	fields := make([]types.Field, n)
	for i := range fields {
		lo := i * 3
		fields[i] = types.Field{
			Index: i,
			Bits:  types.SpecRange(lo+1, lo),
			Name:  fmt.Sprintf("F%d", i),
		}
	}
	return fields
}

// BenchmarkPlan measures drag-preview computation, rerun on every cursor
// move while a reorder gesture is held.
func BenchmarkPlan(b *testing.B) {
	reg := types.MustRegister(64)
	fields := benchFields(21)

	b.ResetTimer()
	b.ReportAllocs()
	for i := range b.N {
		Plan(fields, reg, 10, i%64)
	}
}

// BenchmarkStep measures a single-slot swap with its update list.
func BenchmarkStep(b *testing.B) {
	reg := types.MustRegister(64)
	fields := benchFields(21)

	b.ResetTimer()
	b.ReportAllocs()
	for range b.N {
		Step(fields, reg, 10, TowardLSB)
	}
}
