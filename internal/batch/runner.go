// SPDX-License-Identifier: AGPL-3.0-or-later

// Package batch validates many docspec files in one pass, persisting a run
// summary so repeated checks can report what changed. One unreadable or
// invalid file never stops the run; every file's defects are collected.
package batch

import (
	"context"
	"path/filepath"

	"github.com/docspec-io/docspec/internal/logger"
	"github.com/docspec-io/docspec/internal/validate"
)

// Runner validates an ordered list of docspec files.
type Runner struct {
	validator *validate.Validator
	store     *StateStore
	repoRoot  string
}

// NewRunner creates a runner. store may be nil to skip state persistence.
func NewRunner(v *validate.Validator, store *StateStore, repoRoot string) *Runner {
	return &Runner{validator: v, store: store, repoRoot: repoRoot}
}

// Run validates every file (repo-relative paths) in order and returns the
// per-file results plus the run summary. Validation defects do not produce an
// error; the returned error covers state persistence and cancellation only.
func (r *Runner) Run(ctx context.Context, files []string) ([]FileResult, LastRun, error) {
	last := LastRun{Status: StatusPass, Files: []string{}, Failed: []string{}}
	results := make([]FileResult, 0, len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, last, err
		}

		logger.Debug("validating %s", file)
		res := r.validator.ValidateFile(filepath.Join(r.repoRoot, file))

		fr := FileResult{File: file, Status: StatusPass}
		if !res.Valid {
			fr.Status = StatusFail
			fr.Errors = res.Errors
			last.Status = StatusFail
			last.Failed = append(last.Failed, file)
		}
		last.Files = append(last.Files, file)
		results = append(results, fr)

		if r.store != nil {
			if err := r.store.WriteFileResult(fr); err != nil {
				return results, last, err
			}
		}
	}

	if r.store != nil {
		if err := r.store.WriteLastRun(last); err != nil {
			return results, last, err
		}
	}
	return results, last, nil
}
