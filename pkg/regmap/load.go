package regmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ipcraft/regkit/pkg/types"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText normalizes file bytes to UTF-8. Register maps exported by
// Windows EDA tools frequently arrive as BOM-marked UTF-16; the BOM
// picks the byte order. Undecodable input passes through untouched and
// fails later as JSON.
func decodeText(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return data
		}
		return out
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):]
	}
	return data
}

// Parse decodes register-map JSON that has already been read and
// normalized to UTF-8 text.
func Parse(data []byte) (Map, error) {
	var m Map
	if err := json.Unmarshal(decodeText(data), &m); err != nil {
		return Map{}, &types.Error{
			Kind: types.ErrKindDocument,
			Msg:  fmt.Sprintf("not a register map: %v", err),
			Err:  types.ErrNotRegisterMap,
		}
	}
	return m, nil
}

// Load reads and parses the register map at path.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, &types.Error{
			Kind: types.ErrKindDocument,
			Msg:  fmt.Sprintf("read register map %s", path),
			Err:  err,
		}
	}
	return Parse(data)
}
