package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ErrNoSave is returned by Load when nothing has been saved.
var ErrNoSave = errors.New("persist: no saved game")

// Store keeps at most one snapshot.
type Store interface {
	Save(s *Snapshot) error
	Load() (*Snapshot, error)
	Delete() error
	Exists() bool
}

// FileStore writes the snapshot as YAML to a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the save file location.
func (f *FileStore) Path() string { return f.path }

// Exists checks if a save file exists
func (f *FileStore) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Save writes to a temporary file next to the target and renames it into
// place, so a failed write never truncates an earlier save.
func (f *FileStore) Save(s *Snapshot) (err error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	enc := yaml.NewEncoder(tmp)
	enc.SetIndent(2)
	werr := enc.Encode(s)
	werr = multierr.Append(werr, enc.Close())
	werr = multierr.Append(werr, tmp.Close())
	if werr != nil {
		return fmt.Errorf("write save %s: %w", f.path, werr)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace save %s: %w", f.path, err)
	}
	return nil
}

// Load reads the snapshot. A missing file yields ErrNoSave.
func (f *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save %s: %w", f.path, err)
	}

	var s Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse save %s: %w", f.path, multierr.Combine(ErrCorrupt, err))
	}
	return &s, nil
}

// Delete removes the save file. Deleting a missing file is not an error.
func (f *FileStore) Delete() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save %s: %w", f.path, err)
	}
	return nil
}

// MemoryStore keeps the snapshot in memory. Tests and headless runs use it.
type MemoryStore struct {
	snap *Snapshot
}

func (m *MemoryStore) Save(s *Snapshot) error {
	m.snap = s
	return nil
}

func (m *MemoryStore) Load() (*Snapshot, error) {
	if m.snap == nil {
		return nil, ErrNoSave
	}
	return m.snap, nil
}

func (m *MemoryStore) Delete() error {
	m.snap = nil
	return nil
}

func (m *MemoryStore) Exists() bool { return m.snap != nil }
