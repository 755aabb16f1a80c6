package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StateStore handles reading and writing check-run state.
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .docspec).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

// ReadLastRun loads the last run summary. A missing file is clean state.
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	path := s.lastRunPath()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening last run file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var last LastRun
	if err := json.NewDecoder(f).Decode(&last); err != nil {
		return nil, fmt.Errorf("decoding last run: %w", err)
	}
	return &last, nil
}

// WriteLastRun saves the run summary.
func (s *StateStore) WriteLastRun(last LastRun) (err error) {
	path := s.lastRunPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(last)
}

// WriteFileResult saves a single file's result under files/.
func (s *StateStore) WriteFileResult(res FileResult) (err error) {
	path := filepath.Join(s.baseDir, "files", stateFileName(res.File))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

// stateFileName flattens a repo-relative path into a single filename.
func stateFileName(file string) string {
	return strings.ReplaceAll(file, "/", "__") + ".json"
}
