package importer

// MaxRowErrors caps how many row errors are kept in a report payload.
// The Errors counter still reflects the true total.
const MaxRowErrors = 200

// RowError describes why a single data row was rejected
type RowError struct {
	Row   int    `json:"row"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Report is the outcome of one import run
type Report struct {
	Model     string     `json:"model"`
	DryRun    bool       `json:"dry_run"`
	TotalRows int        `json:"total_rows"`
	Created   int        `json:"created"`
	Updated   int        `json:"updated"`
	Skipped   int        `json:"skipped"`
	Errors    int        `json:"errors"`
	RowErrors []RowError `json:"row_errors"`
}

// NewReport creates an empty report for a model
func NewReport(model string, dryRun bool, totalRows int) *Report {
	return &Report{
		Model:     model,
		DryRun:    dryRun,
		TotalRows: totalRows,
		RowErrors: make([]RowError, 0),
	}
}

// AddRowError counts a row failure and keeps it if under the cap
func (r *Report) AddRowError(row int, code, message string) {
	r.Errors++
	if len(r.RowErrors) < MaxRowErrors {
		r.RowErrors = append(r.RowErrors, RowError{Row: row, Code: code, Error: message})
	}
}

// HasErrors returns true if any row failed
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}
