// Package diag defines the diagnostic model produced by registry
// validation.
//
// Validation is fail-soft: content problems never abort the run. Every
// finding becomes a Diagnostic carrying the entry path, the offending field
// (when one exists), a rule identifier, a severity, and a message with
// enough context to fix the registry file without consulting the rule set.
//
// A Report accumulates diagnostics across all entries of a document. The
// engine validates entries concurrently, so Report.Sort normalizes ordering
// before the report is rendered or compared.
//
// # Basic Usage
//
//	r := diag.NewReport()
//	r.Add(diag.Diagnostic{
//	    EntryPath: "browser.session.page_load",
//	    Field:     "bucket_count",
//	    Rule:      diag.RuleRangeViolation,
//	    Severity:  diag.SeverityError,
//	    Message:   "bucket_count 101 is greater than the maximum of 100",
//	})
//	if r.HasErrors() {
//	    // fail the build
//	}
package diag
