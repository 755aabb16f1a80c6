package batch

// Status represents the outcome of validating one file or a whole run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// FileResult is the validation outcome for a single docspec file.
// Matches the .docspec/files/<file>.json schema.
type FileResult struct {
	File   string   `json:"file"`
	Status Status   `json:"status"`
	Errors []string `json:"errors,omitempty"`
}

// LastRun summarizes the most recent check run.
// Matches the .docspec/last-run.json schema.
type LastRun struct {
	Status Status   `json:"status"` // "pass" or "fail"
	Files  []string `json:"files"`  // Ordered list of files checked
	Failed []string `json:"failed"` // Files with at least one defect
}
