package ident

import (
	"fmt"
	"regexp"
	"strings"
)

// Length tiers for snake_case identifiers. Categories use the long tier,
// category segments the short tier, and metric names the very short tier.
const (
	MaxLenLong      = 40
	MaxLenShort     = 30
	MaxLenVeryShort = 20

	// MaxLenLabeled is the total length limit for labeled-metric
	// identifiers (two short segments plus the joining dot).
	MaxLenLabeled = 61

	// MaxLabels is the maximum number of statically declared labels on a
	// labeled metric.
	MaxLabels = 16
)

var (
	// snakeCasePattern validates snake_case tokens (e.g., "page_load_count")
	snakeCasePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

	// labeledSegmentPattern validates one segment of a labeled-metric
	// identifier. Unlike snake_case, hyphens are allowed.
	labeledPattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,29}(\.[a-z0-9_-]{0,29})*$`)

	// genericTokenPattern is the permissive grammar for loosely structured
	// list items (e.g., gecko datapoint names).
	genericTokenPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// Reason classifies why an identifier failed validation.
type Reason int

const (
	// OK means the identifier is valid.
	OK Reason = iota

	// TooLong means the identifier (or one of its segments) exceeds the
	// length limit.
	TooLong

	// BadCharacter means the identifier contains characters outside the
	// grammar, or is ordered badly (e.g., leading digit).
	BadCharacter

	// EmptySegment means a dotted path contains an empty segment, or the
	// whole identifier is empty.
	EmptySegment
)

// String returns a short human-readable description of the failure reason.
func (r Reason) String() string {
	switch r {
	case OK:
		return "ok"
	case TooLong:
		return "too long"
	case BadCharacter:
		return "contains invalid characters"
	case EmptySegment:
		return "has an empty segment"
	default:
		return "invalid"
	}
}

// Result is the outcome of an identifier check.
type Result struct {
	Reason Reason
	// Detail carries the offending segment or the measured length,
	// formatted for inclusion in a diagnostic message.
	Detail string
}

// Valid reports whether the check passed.
func (r Result) Valid() bool {
	return r.Reason == OK
}

// Describe formats the result as a message fragment for diagnostics.
// Returns "" for valid identifiers.
func (r Result) Describe() string {
	if r.Reason == OK {
		return ""
	}
	if r.Detail == "" {
		return r.Reason.String()
	}
	return fmt.Sprintf("%s (%s)", r.Reason, r.Detail)
}

func ok() Result {
	return Result{Reason: OK}
}

// SnakeCase checks a plain snake_case token against the given length tier.
func SnakeCase(s string, maxLen int) Result {
	if s == "" {
		return Result{Reason: EmptySegment}
	}
	if len(s) > maxLen {
		return Result{Reason: TooLong, Detail: fmt.Sprintf("%d > %d characters", len(s), maxLen)}
	}
	if !snakeCasePattern.MatchString(s) {
		return Result{Reason: BadCharacter, Detail: "expected lowercase letters, digits and underscores"}
	}
	return ok()
}

// DottedSnakeCase checks a dotted path of snake_case segments. Each segment
// is limited to MaxLenShort and the whole path to maxLen.
func DottedSnakeCase(s string, maxLen int) Result {
	if s == "" {
		return Result{Reason: EmptySegment}
	}
	if len(s) > maxLen {
		return Result{Reason: TooLong, Detail: fmt.Sprintf("%d > %d characters", len(s), maxLen)}
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return Result{Reason: EmptySegment}
		}
		if len(seg) > MaxLenShort {
			return Result{Reason: TooLong, Detail: fmt.Sprintf("segment %q is %d > %d characters", seg, len(seg), MaxLenShort)}
		}
		if !snakeCasePattern.MatchString(seg) {
			return Result{Reason: BadCharacter, Detail: fmt.Sprintf("segment %q", seg)}
		}
	}
	return ok()
}

// LabeledMetricID checks a labeled-metric identifier. The grammar is looser
// than snake_case: hyphens are allowed and segments may start with a digit
// after the first.
func LabeledMetricID(s string) Result {
	if s == "" {
		return Result{Reason: EmptySegment}
	}
	if len(s) > MaxLenLabeled {
		return Result{Reason: TooLong, Detail: fmt.Sprintf("%d > %d characters", len(s), MaxLenLabeled)}
	}
	if !labeledPattern.MatchString(s) {
		return Result{Reason: BadCharacter, Detail: "expected lowercase letters, digits, underscores and hyphens"}
	}
	return ok()
}

// GenericToken checks the permissive identifier grammar used for loosely
// structured values such as gecko datapoint names.
func GenericToken(s string) Result {
	if s == "" {
		return Result{Reason: EmptySegment}
	}
	if !genericTokenPattern.MatchString(s) {
		return Result{Reason: BadCharacter, Detail: "expected letters, digits, underscores and dots"}
	}
	return ok()
}
