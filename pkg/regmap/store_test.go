package regmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipcraft/regkit/pkg/types"
)

func openSample(t *testing.T) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uart.regmap.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))
	doc, err := Open(path)
	require.NoError(t, err)
	return doc
}

func TestOpen(t *testing.T) {
	doc := openSample(t)
	assert.Equal(t, "uart", doc.Map.Name)
	assert.False(t, doc.Dirty())
	assert.Contains(t, doc.Path(), "uart.regmap.json")
}

func TestSave_RoundTrip(t *testing.T) {
	doc := openSample(t)

	doc.Map.Registers[0].Fields[0].Name = "ENABLE"
	doc.markDirty()
	require.True(t, doc.Dirty())

	require.NoError(t, doc.Save())
	assert.False(t, doc.Dirty(), "save clears the dirty flag")

	again, err := Open(doc.Path())
	require.NoError(t, err)
	assert.Equal(t, "ENABLE", again.Map.Registers[0].Fields[0].Name)
}

func TestSave_NormalizesScalars(t *testing.T) {
	doc := openSample(t)
	require.NoError(t, doc.Save())

	raw, err := os.ReadFile(doc.Path())
	require.NoError(t, err)
	// The sample stores BAUD's reset as "0x5"; saving re-encodes it as a
	// plain number.
	assert.Contains(t, string(raw), `"reset": 5`)
	assert.NotContains(t, string(raw), `"0x5"`)
}

func TestSave_WithoutPath(t *testing.T) {
	doc := &Document{Map: Map{Name: "scratch"}}
	err := doc.Save()
	require.Error(t, err)

	var te *types.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, types.ErrKindState, te.Kind)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	doc := openSample(t)
	require.NoError(t, doc.Save())

	entries, err := os.ReadDir(filepath.Dir(doc.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}
