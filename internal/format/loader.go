// SPDX-License-Identifier: AGPL-3.0-or-later
package format

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FormatFileName is the canonical format-definition filename probed for at
// each candidate location.
const FormatFileName = "DOCSPEC_FORMAT.md"

// ConfigError reports a missing, unreadable, or structurally invalid format
// definition. It is fatal: nothing downstream can run without a format.
type ConfigError struct {
	msg   string
	cause error
}

func (e *ConfigError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ConfigError) Unwrap() error { return e.cause }

// Loader resolves and caches the format definition. Construct one per
// process (or per test) and hand the loaded Definition to the validator and
// generator; there is no package-level cache.
type Loader struct {
	// Override, when set, is used instead of probing and must exist.
	Override string

	mu     sync.Mutex
	cached *Definition
}

// NewLoader returns a Loader that probes the standard candidate locations.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns the format definition, reading and parsing it on first call
// and serving the cached value afterwards. All failures are *ConfigError.
func (l *Loader) Load() (*Definition, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}

	path, candidates := l.resolve()
	if path == "" {
		return nil, &ConfigError{msg: fmt.Sprintf(
			"format file not found: %s must exist at the project root (searched: %s)",
			FormatFileName, strings.Join(candidates, ", "))}
	}

	def, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	l.cached = def
	return def, nil
}

// LoadFile reads and parses a format definition from an explicit path.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{msg: fmt.Sprintf("reading format file %s", path), cause: err}
	}
	def, err := ParseFormat(string(data))
	if err != nil {
		return nil, &ConfigError{msg: fmt.Sprintf("invalid format file %s", path), cause: err}
	}
	return def, nil
}

// resolve returns the first existing candidate path, plus the full candidate
// list for error reporting.
func (l *Loader) resolve() (string, []string) {
	var candidates []string
	if l.Override != "" {
		candidates = append(candidates, l.Override)
	} else {
		if exe, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exe)
			candidates = append(candidates,
				filepath.Join(exeDir, FormatFileName),
				filepath.Join(exeDir, "..", FormatFileName),
			)
		}
		if wd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(wd, FormatFileName))
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, candidates
		}
	}
	return "", candidates
}
