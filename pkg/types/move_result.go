package types

// MoveResult holds the outcome of an organization attempt for a single file
type MoveResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Moved       bool   `json:"moved"`
	Error       error  `json:"error,omitempty"`
}

// Report aggregates the outcome of one organizing pass over a directory.
// Skipped counts entries that were not regular files or could not be
// inspected; those never mark the pass as failed.
type Report struct {
	Results []MoveResult
	Skipped int
	Failed  bool
}

// MovedCount returns how many files were actually renamed.
func (r *Report) MovedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Moved {
			n++
		}
	}
	return n
}

// FailureCount returns how many entries failed.
func (r *Report) FailureCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Error != nil {
			n++
		}
	}
	return n
}
