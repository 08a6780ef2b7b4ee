package regmap

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofrs/flock"

	"github.com/ipcraft/regkit/pkg/types"
)

// Document is a register map bound to its file: the single mutable owner
// of the field records the engine edits through views.
type Document struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock

	Map   Map
	dirty bool
}

// Open loads the register map at path into a Document.
func Open(path string) (*Document, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Document{
		path: path,
		lock: flock.New(path + ".lock"),
		Map:  m,
	}, nil
}

// Path returns the file the document was opened from.
func (d *Document) Path() string { return d.path }

// Dirty reports whether the document holds unsaved edits.
func (d *Document) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

func (d *Document) markDirty() {
	d.mu.Lock()
	d.dirty = true
	d.mu.Unlock()
}

// Save writes the document back to its file. The write goes to a temp
// file renamed into place under a sidecar flock, so another host never
// sees a torn map. Saving clears the dirty flag.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.path == "" {
		return &types.Error{Kind: types.ErrKindState, Msg: "document has no file path"}
	}

	if err := d.lock.Lock(); err != nil {
		return fmt.Errorf("lock register map: %w", err)
	}
	defer func() { _ = d.lock.Unlock() }()

	b, err := json.MarshalIndent(d.Map, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal register map: %w", err)
	}
	b = append(b, '\n')

	if err := atomicWriteFile(d.path, b, 0o644); err != nil {
		return fmt.Errorf("write register map: %w", err)
	}

	d.dirty = false
	return nil
}
