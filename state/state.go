// Package state keeps per-directory covview session state (trace colours,
// the y autorange switch and the last contig) in .covview/state.yml.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/covview/pkg/colormap"
)

const (
	// KeyColors holds the trace colour map.
	KeyColors = "colors"
	// KeyAutorange holds the y autorange switch.
	KeyAutorange = "autorange"
	// KeyContig holds the contig the viewer last showed.
	KeyContig = "contig"
)

// State is the stored state as a generic map so keys added later survive
// a round trip through older binaries.
type State map[string]interface{}

// Store reads and writes the state file under one directory.
type Store struct {
	path string
}

// Open returns the store for dir. Nothing is read until Load.
func Open(dir string) *Store {
	return &Store{path: filepath.Join(dir, ".covview", "state.yml")}
}

// Default returns the store for the working directory.
func Default() (*Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get current directory: %w", err)
	}
	return Open(cwd), nil
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state. A missing file is an empty state.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(State), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", s.path, err)
	}
	if st == nil {
		st = make(State)
	}
	return st, nil
}

// Save replaces the state file. The new content is written to a temporary
// file first so a crash never leaves a truncated state behind.
func (s *Store) Save(st State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yml")
	if err != nil {
		return fmt.Errorf("create temporary state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Update loads the state, applies fn and saves the result. Nothing is
// written when fn fails.
func (s *Store) Update(fn func(State) error) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return s.Save(st)
}

// Load reads the state of the working directory.
func Load() (State, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	return s.Load()
}

// Save writes the state of the working directory.
func Save(st State) error {
	s, err := Default()
	if err != nil {
		return err
	}
	return s.Save(st)
}

// Delete removes key from the working directory's state.
func Delete(key string) error {
	s, err := Default()
	if err != nil {
		return err
	}
	return s.Update(func(st State) error {
		delete(st, key)
		return nil
	})
}

// Colors returns the stored trace colours. Non-string entries are dropped.
func (s State) Colors() colormap.Map {
	out := colormap.Map{}
	raw, ok := s[KeyColors].(map[string]interface{})
	if !ok {
		return out
	}
	for trace, v := range raw {
		if c, ok := v.(string); ok {
			out[trace] = c
		}
	}
	return out
}

// SetColors stores m as the trace colour map.
func (s State) SetColors(m colormap.Map) {
	raw := make(map[string]interface{}, len(m))
	for trace, c := range m {
		raw[trace] = c
	}
	s[KeyColors] = raw
}

// Autorange returns the stored switch, true when unset.
func (s State) Autorange() bool {
	if v, ok := s[KeyAutorange].(bool); ok {
		return v
	}
	return true
}

// SetAutorange stores the y autorange switch.
func (s State) SetAutorange(enabled bool) {
	s[KeyAutorange] = enabled
}

// Contig returns the last viewed contig, or "".
func (s State) Contig() string {
	c, _ := s[KeyContig].(string)
	return c
}

// SetContig stores the last viewed contig. An empty name clears it.
func (s State) SetContig(contig string) {
	if contig == "" {
		delete(s, KeyContig)
		return
	}
	s[KeyContig] = contig
}
