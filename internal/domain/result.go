package domain

// Result aggregates the outcome of one crawl run.
type Result struct {
	// RunID uniquely identifies the crawl run
	RunID string `json:"run_id"`
	// PerSection maps each requested section name to its extracted records
	PerSection map[string][]ArticleRecord `json:"per_section"`
	// OK counts candidates that produced a record
	OK int `json:"ok"`
	// Failed counts candidates whose fetch or extraction failed
	Failed int `json:"failed"`
}

// NewResult creates an empty result with one list per requested section.
func NewResult(runID string, sections []string) *Result {
	perSection := make(map[string][]ArticleRecord, len(sections))
	for _, s := range sections {
		perSection[s] = nil
	}
	return &Result{
		RunID:      runID,
		PerSection: perSection,
	}
}

// Total returns the number of processed candidates.
func (r *Result) Total() int {
	return r.OK + r.Failed
}
