package localstate

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/pkg/file"
)

// Store persists State as a JSON file.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads State from disk. A missing file yields an empty State.
func (s *Store) Load() (*State, error) {
	state := &State{}
	if !file.Exists(s.path) {
		return state, nil
	}
	stateBytes, err := ioutil.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading state file at %s", s.path)
	}
	if err := json.Unmarshal(stateBytes, state); err != nil {
		return nil, errors.Wrapf(err, "error parsing state file at %s", s.path)
	}
	return state, nil
}

// Save writes State to disk, creating the containing directory if needed.
// The file holds a refresh token, so it is readable by its owner only.
func (s *Store) Save(state *State) error {
	if err := file.EnsureDir(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	stateBytes, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error marshaling state")
	}
	if err := ioutil.WriteFile(s.path, stateBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", s.path)
	}
	return nil
}

// Delete removes the backing file. Deleting a missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "error deleting state")
	}
	return nil
}
