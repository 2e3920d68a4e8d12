package diag

import "sort"

// Report accumulates diagnostics for one validation run.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{Diagnostics: make([]Diagnostic, 0)}
}

// Add appends a diagnostic to the report.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Merge appends all diagnostics from another report.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Sort orders diagnostics by entry path, then field, then rule. Entries are
// validated concurrently, so sorting makes repeated runs byte-identical.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.EntryPath != b.EntryPath {
			return a.EntryPath < b.EntryPath
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.Rule < b.Rule
	})
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of error and warning diagnostics.
func (r *Report) Counts() (errors, warnings int) {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

// ByRule returns all diagnostics produced by the given rule.
func (r *Report) ByRule(rule Rule) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

// ForEntry returns all diagnostics for the given entry path.
func (r *Report) ForEntry(path string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.EntryPath == path {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the total number of diagnostics.
func (r *Report) Len() int {
	return len(r.Diagnostics)
}
