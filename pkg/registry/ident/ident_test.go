package ident

import (
	"strings"
	"testing"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   Reason
	}{
		{"simple", "page_load", MaxLenVeryShort, OK},
		{"leading underscore", "_private", MaxLenVeryShort, OK},
		{"digits allowed after first", "load2", MaxLenVeryShort, OK},
		{"empty", "", MaxLenVeryShort, EmptySegment},
		{"camel case", "pageLoad", MaxLenVeryShort, BadCharacter},
		{"leading digit", "2fast", MaxLenVeryShort, BadCharacter},
		{"hyphen", "page-load", MaxLenVeryShort, BadCharacter},
		{"slash", "name/with_slash", MaxLenVeryShort, BadCharacter},
		{"pound", "name#with_pound", MaxLenVeryShort, BadCharacter},
		{"at limit", strings.Repeat("a", 20), MaxLenVeryShort, OK},
		{"over limit", strings.Repeat("a", 21), MaxLenVeryShort, TooLong},
		{"long tier", strings.Repeat("a", 40), MaxLenLong, OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SnakeCase(tt.input, tt.maxLen)
			if got.Reason != tt.want {
				t.Errorf("SnakeCase(%q, %d) = %v, want %v", tt.input, tt.maxLen, got.Reason, tt.want)
			}
			if (got.Reason == OK) != got.Valid() {
				t.Errorf("Valid() inconsistent with Reason for %q", tt.input)
			}
		})
	}
}

func TestDottedSnakeCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Reason
	}{
		{"single segment", "telemetry", OK},
		{"two segments", "browser.session", OK},
		{"three segments", "browser.session.page", OK},
		{"empty", "", EmptySegment},
		{"trailing dot", "browser.", EmptySegment},
		{"leading dot", ".browser", EmptySegment},
		{"double dot", "browser..session", EmptySegment},
		{"camel segment", "browser.pageLoad", BadCharacter},
		{"segment too long", "browser." + strings.Repeat("a", 31), TooLong},
		{"total too long", strings.Repeat("a", 30) + "." + strings.Repeat("b", 30), TooLong},
		{"total at limit", strings.Repeat("a", 20) + "." + strings.Repeat("b", 19), OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DottedSnakeCase(tt.input, MaxLenLong)
			if got.Reason != tt.want {
				t.Errorf("DottedSnakeCase(%q) = %v, want %v", tt.input, got.Reason, tt.want)
			}
		})
	}
}

func TestLabeledMetricID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Reason
	}{
		{"plain", "label", OK},
		{"hyphenated", "label-one", OK},
		{"dotted", "label.sub-part", OK},
		{"digit segment", "label.2nd", OK},
		{"empty", "", EmptySegment},
		{"uppercase", "Label", BadCharacter},
		{"slash", "name/with_slash", BadCharacter},
		{"too long", strings.Repeat("a", 30) + "." + strings.Repeat("b", 30) + ".c", TooLong},
		{"segment too long", strings.Repeat("a", 31), BadCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabeledMetricID(tt.input)
			if got.Reason != tt.want {
				t.Errorf("LabeledMetricID(%q) = %v, want %v", tt.input, got.Reason, tt.want)
			}
		})
	}
}

func TestGenericToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Reason
	}{
		{"upper snake", "GC_MS", OK},
		{"dotted", "Gfx.Frame.Time", OK},
		{"empty", "", EmptySegment},
		{"hyphen", "GC-MS", BadCharacter},
		{"leading digit", "2GC", BadCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenericToken(tt.input)
			if got.Reason != tt.want {
				t.Errorf("GenericToken(%q) = %v, want %v", tt.input, got.Reason, tt.want)
			}
		})
	}
}

func TestResultDescribe(t *testing.T) {
	if got := SnakeCase("ok_name", MaxLenVeryShort).Describe(); got != "" {
		t.Errorf("Describe() on valid result = %q, want empty", got)
	}
	res := SnakeCase(strings.Repeat("a", 25), MaxLenVeryShort)
	if !strings.Contains(res.Describe(), "too long") {
		t.Errorf("Describe() = %q, want it to mention 'too long'", res.Describe())
	}
}
