/*
Package manifest implements the list of grid files kept alongside the grids
themselves. The list is stored as an indented JSON array of filenames and is
read by the front end to discover which grids are available.
*/
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Filename is the expected filename used when writing to disk
const Filename = "manifest.json"

// Manifest is an ordered list of unique filenames. It implements the
// json.Marshaler and json.Unmarshaler interfaces.
type Manifest struct {
	names []string
	index map[string]struct{}
}

// New returns an empty manifest
func New() *Manifest {
	return &Manifest{
		index: make(map[string]struct{}),
	}
}

// Load reads the manifest stored in file. A missing file, or one that doesn't
// hold a JSON array of strings, results in an empty manifest rather than an
// error. The recovered return value reports when that happened.
func Load(file string) (m *Manifest, recovered bool, err error) {
	b, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), true, nil
		}
		return nil, false, err
	}

	m = New()
	if err := json.Unmarshal(b, m); err != nil {
		return New(), true, nil
	}
	return m, false, nil
}

// Len returns the number of filenames in the manifest
func (m *Manifest) Len() int {
	return len(m.names)
}

// Names returns a copy of the filenames in insertion order
func (m *Manifest) Names() []string {
	return append([]string(nil), m.names...)
}

// Contains reports whether name is in the manifest
func (m *Manifest) Contains(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Add appends name unless it is already present and reports whether it was
// added
func (m *Manifest) Add(name string) bool {
	if m.Contains(name) {
		return false
	}
	m.names = append(m.names, name)
	m.index[name] = struct{}{}
	return true
}

// MarshalJSON encodes the manifest as a JSON array
func (m *Manifest) MarshalJSON() ([]byte, error) {
	if m.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m.names)
}

// UnmarshalJSON decodes the manifest from a JSON array, dropping any
// duplicate names
func (m *Manifest) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	if names == nil {
		return errors.New("manifest: not an array")
	}

	m.names = nil
	m.index = make(map[string]struct{})
	for _, name := range names {
		m.Add(name)
	}
	return nil
}

// Save overwrites file with the manifest, creating the parent directory if
// required
func (m *Manifest) Save(file string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(b); err != nil {
		return err
	}

	return f.Close()
}
