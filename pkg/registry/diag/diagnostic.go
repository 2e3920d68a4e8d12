package diag

import (
	"fmt"
	"strings"
)

// Rule identifies the validation rule a diagnostic was produced by.
type Rule string

const (
	// RuleMissingRequiredField reports a required field that is absent.
	RuleMissingRequiredField Rule = "missing_required_field"
	// RuleUnknownField reports a field outside the closed schema.
	RuleUnknownField Rule = "unknown_field"
	// RuleInvalidIdentifier reports an identifier grammar violation.
	RuleInvalidIdentifier Rule = "invalid_identifier"
	// RuleInvalidEnumValue reports a value outside a fixed enumeration.
	RuleInvalidEnumValue Rule = "invalid_enum_value"
	// RuleTypeConstraint reports a field required or forbidden for the
	// declared metric type.
	RuleTypeConstraint Rule = "type_constraint"
	// RuleReservedName reports use of a reserved category or ping name.
	RuleReservedName Rule = "reserved_name"
	// RuleLengthExceeded reports a list or identifier over its size limit.
	RuleLengthExceeded Rule = "length_exceeded"
	// RuleRangeViolation reports a numeric value outside its valid range.
	RuleRangeViolation Rule = "range_violation"
	// RuleMalformedReference reports a malformed URI or email address.
	RuleMalformedReference Rule = "malformed_reference"
	// RuleMalformedEntry reports an entry (or document root) that is not
	// an object. Validation of that subtree stops; siblings continue.
	RuleMalformedEntry Rule = "malformed_entry"
	// RuleDuplicateName reports a metric defined in more than one input
	// file.
	RuleDuplicateName Rule = "duplicate_name"
)

// Severity classifies how a diagnostic affects build outcome.
type Severity string

const (
	// SeverityError diagnostics typically fail the build.
	SeverityError Severity = "error"
	// SeverityWarning diagnostics are reported but do not fail the build
	// unless the caller runs in strict mode.
	SeverityWarning Severity = "warning"
)

// Diagnostic is one reported validation finding.
type Diagnostic struct {
	// EntryPath locates the entry: "category.name" for metrics, the ping
	// name for pings, or "" for document-level findings.
	EntryPath string `json:"entry_path,omitempty"`
	// Field names the offending field within the entry, when one exists.
	Field string `json:"field,omitempty"`
	// Rule is the violated rule.
	Rule Rule `json:"rule"`
	// Severity is error or warning.
	Severity Severity `json:"severity"`
	// Message is the human-readable description.
	Message string `json:"message"`
}

// String formats the diagnostic for terminal output.
// Format: "severity: entry_path: [field:] message (rule)"
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(string(d.Severity))
	sb.WriteString(": ")
	if d.EntryPath != "" {
		sb.WriteString(d.EntryPath)
		sb.WriteString(": ")
	}
	if d.Field != "" {
		sb.WriteString(d.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(d.Message)
	fmt.Fprintf(&sb, " (%s)", d.Rule)
	return sb.String()
}
