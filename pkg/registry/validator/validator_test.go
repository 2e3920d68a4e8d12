package validator

import (
	"strings"
	"testing"

	"telescope-hq/callisto/pkg/registry/defs"
	"telescope-hq/callisto/pkg/registry/diag"
)

// minimalMetric returns the smallest valid metric entry for a type: all
// required base fields, nothing else.
func minimalMetric(typ string) map[string]any {
	return map[string]any{
		"type":                typ,
		"description":         "A test metric.",
		"notification_emails": []any{"telemetry@example.com"},
		"bugs":                []any{int64(1234567)},
		"data_reviews":        []any{"https://example.com/review/1"},
		"expires":             "never",
	}
}

func errorCount(diags []diag.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			n++
		}
	}
	return n
}

func hasDiag(diags []diag.Diagnostic, rule diag.Rule, field string) bool {
	for _, d := range diags {
		if d.Rule == rule && d.Field == field {
			return true
		}
	}
	return false
}

func TestMetricValidator_MinimalEntryDefaults(t *testing.T) {
	v := NewMetricValidator(Options{})

	metric, diags := v.Validate("browser.session", "page_load", minimalMetric("counter"), defs.Location{})
	if errorCount(diags) != 0 {
		t.Fatalf("minimal counter metric produced errors: %v", diags)
	}
	if metric == nil {
		t.Fatal("expected a normalized metric")
	}

	if metric.Lifetime != defs.LifetimePing {
		t.Errorf("Lifetime = %q, want %q", metric.Lifetime, defs.LifetimePing)
	}
	if len(metric.SendInPings) != 1 || metric.SendInPings[0] != "default" {
		t.Errorf("SendInPings = %v, want [default]", metric.SendInPings)
	}
	if metric.Disabled {
		t.Error("Disabled = true, want false")
	}
	if metric.Version != 0 {
		t.Errorf("Version = %d, want 0", metric.Version)
	}
	if metric.Path() != "browser.session.page_load" {
		t.Errorf("Path() = %q", metric.Path())
	}
}

func TestMetricValidator_MissingBaseFields(t *testing.T) {
	v := NewMetricValidator(Options{})

	entry := map[string]any{"type": "counter"}
	_, diags := v.Validate("category", "metric", entry, defs.Location{})

	for _, field := range []string{"description", "notification_emails", "bugs", "data_reviews", "expires"} {
		if !hasDiag(diags, diag.RuleMissingRequiredField, field) {
			t.Errorf("missing %q not reported, got %v", field, diags)
		}
	}
}

func TestMetricValidator_TypeConditionalRequired(t *testing.T) {
	tests := []struct {
		name       string
		typ        string
		wantFields []string
	}{
		{"quantity needs unit and datapoint", "quantity", []string{"unit", "gecko_datapoint"}},
		{"custom_distribution needs bucket params", "custom_distribution",
			[]string{"range_max", "bucket_count", "histogram_type", "gecko_datapoint"}},
		{"memory_distribution needs memory_unit", "memory_distribution", []string{"memory_unit"}},
		{"use_counter needs denominator", "use_counter", []string{"denominator"}},
		{"enumeration needs values", "enumeration", []string{"values"}},
		{"labeled_quantity needs unit only", "labeled_quantity", []string{"unit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewMetricValidator(Options{})
			_, diags := v.Validate("category", "metric", minimalMetric(tt.typ), defs.Location{})

			if got := errorCount(diags); got != len(tt.wantFields) {
				t.Errorf("got %d errors, want %d: %v", got, len(tt.wantFields), diags)
			}
			for _, field := range tt.wantFields {
				if !hasDiag(diags, diag.RuleTypeConstraint, field) {
					t.Errorf("missing type-constraint diagnostic for %q: %v", field, diags)
				}
			}
		})
	}
}

func TestMetricValidator_GeckoDatapointGating(t *testing.T) {
	// Allowed on the histogram-like gecko types.
	for _, typ := range []string{"timing_distribution", "memory_distribution"} {
		entry := minimalMetric(typ)
		entry["gecko_datapoint"] = "GC_MS"
		if typ == "memory_distribution" {
			entry["memory_unit"] = "megabyte"
		}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("%s with gecko_datapoint produced errors: %v", typ, diags)
		}
	}

	// Forbidden everywhere else.
	entry := minimalMetric("event")
	entry["gecko_datapoint"] = "GC_MS"
	v := NewMetricValidator(Options{})
	_, diags := v.Validate("category", "metric", entry, defs.Location{})
	if !hasDiag(diags, diag.RuleTypeConstraint, "gecko_datapoint") {
		t.Errorf("gecko_datapoint on event not rejected: %v", diags)
	}
}

func TestMetricValidator_EventLifetime(t *testing.T) {
	t.Run("explicit user lifetime rejected", func(t *testing.T) {
		entry := minimalMetric("event")
		entry["lifetime"] = "user"
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleTypeConstraint, "lifetime") {
			t.Errorf("event with user lifetime not rejected: %v", diags)
		}
	})

	t.Run("default lifetime fine", func(t *testing.T) {
		v := NewMetricValidator(Options{})
		metric, diags := v.Validate("category", "metric", minimalMetric("event"), defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("event without lifetime produced errors: %v", diags)
		}
		if metric == nil || metric.Lifetime != defs.LifetimePing {
			t.Error("event lifetime not defaulted to ping")
		}
	})

	t.Run("explicit ping lifetime fine", func(t *testing.T) {
		entry := minimalMetric("event")
		entry["lifetime"] = "ping"
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("event with explicit ping lifetime produced errors: %v", diags)
		}
	})
}

func TestMetricValidator_LabelsBoundary(t *testing.T) {
	makeLabels := func(n int) []any {
		out := make([]any, n)
		for i := range out {
			out[i] = "label_" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		}
		return out
	}

	t.Run("16 labels fine", func(t *testing.T) {
		entry := minimalMetric("labeled_counter")
		entry["labels"] = makeLabels(16)
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("16 labels produced errors: %v", diags)
		}
	})

	t.Run("17 labels exceeds limit", func(t *testing.T) {
		entry := minimalMetric("labeled_counter")
		entry["labels"] = makeLabels(17)
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleLengthExceeded, "labels") {
			t.Errorf("17 labels not rejected: %v", diags)
		}
	})

	t.Run("null labels fine", func(t *testing.T) {
		entry := minimalMetric("labeled_counter")
		entry["labels"] = nil
		v := NewMetricValidator(Options{})
		metric, diags := v.Validate("category", "metric", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("null labels produced errors: %v", diags)
		}
		if metric == nil || !metric.HasLabels || metric.Labels != nil {
			t.Error("null labels should be recorded as present but unrestricted")
		}
	})

	t.Run("labels on scalar type unknown", func(t *testing.T) {
		entry := minimalMetric("counter")
		entry["labels"] = []any{"a"}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleUnknownField, "labels") {
			t.Errorf("labels on counter not rejected: %v", diags)
		}
	})

	t.Run("invalid label grammar", func(t *testing.T) {
		entry := minimalMetric("labeled_counter")
		entry["labels"] = []any{"name/with_slash"}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleInvalidIdentifier, "labels") {
			t.Errorf("bad label grammar not rejected: %v", diags)
		}
	})
}

func TestMetricValidator_CustomDistribution(t *testing.T) {
	complete := func() map[string]any {
		entry := minimalMetric("custom_distribution")
		entry["gecko_datapoint"] = "FROM_GECKO"
		entry["range_max"] = int64(60000)
		entry["bucket_count"] = int64(100)
		entry["histogram_type"] = "exponential"
		return entry
	}

	t.Run("complete entry with range_min default", func(t *testing.T) {
		v := NewMetricValidator(Options{})
		metric, diags := v.Validate("category", "metric", complete(), defs.Location{})
		if errorCount(diags) != 0 {
			t.Fatalf("complete custom_distribution produced errors: %v", diags)
		}
		if metric.RangeMin != 1 {
			t.Errorf("RangeMin = %d, want default 1", metric.RangeMin)
		}
		if metric.RangeMax != 60000 || metric.BucketCount != 100 {
			t.Errorf("RangeMax/BucketCount = %d/%d", metric.RangeMax, metric.BucketCount)
		}
		if metric.HistogramType != defs.HistogramTypeExponential {
			t.Errorf("HistogramType = %q", metric.HistogramType)
		}
	})

	t.Run("bucket_count over maximum", func(t *testing.T) {
		entry := complete()
		entry["bucket_count"] = int64(101)
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleRangeViolation, "bucket_count") {
			t.Errorf("bucket_count 101 not rejected: %v", diags)
		}
	})

	t.Run("bucket_count under minimum", func(t *testing.T) {
		entry := complete()
		entry["bucket_count"] = int64(0)
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleRangeViolation, "bucket_count") {
			t.Errorf("bucket_count 0 not rejected: %v", diags)
		}
	})

	t.Run("bad histogram_type", func(t *testing.T) {
		entry := complete()
		entry["histogram_type"] = "logarithmic"
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleInvalidEnumValue, "histogram_type") {
			t.Errorf("histogram_type logarithmic not rejected: %v", diags)
		}
	})
}

func TestMetricValidator_UnknownType(t *testing.T) {
	v := NewMetricValidator(Options{})
	entry := minimalMetric("unknown")
	_, diags := v.Validate("category", "metric", entry, defs.Location{})

	if !hasDiag(diags, diag.RuleInvalidEnumValue, "type") {
		t.Errorf("unknown type not reported: %v", diags)
	}
	// Only the type diagnostic; structural fields are present and fine.
	if got := errorCount(diags); got != 1 {
		t.Errorf("got %d errors, want 1: %v", got, diags)
	}
}

func TestMetricValidator_UnknownTypeWithBadCategory(t *testing.T) {
	// Multiple independent failures accumulate.
	v := NewMetricValidator(Options{})
	_, diags := v.Validate("camelCaseName", "metric", minimalMetric("unknown"), defs.Location{})
	if got := errorCount(diags); got != 2 {
		t.Errorf("got %d errors, want 2 (bad category + unknown type): %v", got, diags)
	}
}

func TestMetricValidator_UnknownField(t *testing.T) {
	v := NewMetricValidator(Options{})
	entry := minimalMetric("counter")
	entry["liftime"] = "user"
	_, diags := v.Validate("category", "metric", entry, defs.Location{})

	if !hasDiag(diags, diag.RuleUnknownField, "liftime") {
		t.Fatalf("unknown field not reported: %v", diags)
	}
	for _, d := range diags {
		if d.Field == "liftime" && d.Rule == diag.RuleUnknownField {
			if want := `did you mean "lifetime"?`; !strings.Contains(d.Message, want) {
				t.Errorf("message %q does not suggest lifetime", d.Message)
			}
		}
	}
}

func TestMetricValidator_ReservedCategory(t *testing.T) {
	t.Run("pings category always rejected", func(t *testing.T) {
		v := NewMetricValidator(Options{AllowReserved: true})
		_, diags := v.Validate("pings", "metric", minimalMetric("counter"), defs.Location{})
		if !hasDiag(diags, diag.RuleReservedName, "") {
			t.Errorf("pings category not rejected: %v", diags)
		}
	})

	t.Run("glean namespace gated by allow_reserved", func(t *testing.T) {
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("glean.baseline", "metric", minimalMetric("string"), defs.Location{})
		if !hasDiag(diags, diag.RuleReservedName, "") {
			t.Errorf("glean.baseline not rejected: %v", diags)
		}

		v = NewMetricValidator(Options{AllowReserved: true})
		_, diags = v.Validate("glean.baseline", "metric", minimalMetric("string"), defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("glean.baseline rejected despite allow_reserved: %v", diags)
		}
	})
}

func TestMetricValidator_SendInPings(t *testing.T) {
	t.Run("all_pings reserved", func(t *testing.T) {
		entry := minimalMetric("string")
		entry["send_in_pings"] = []any{"all_pings"}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleReservedName, "send_in_pings") {
			t.Errorf("send_in_pings all_pings not rejected: %v", diags)
		}

		v = NewMetricValidator(Options{AllowReserved: true})
		_, diags = v.Validate("category", "metric", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("all_pings rejected despite allow_reserved: %v", diags)
		}
	})

	t.Run("declared pings preserved in order", func(t *testing.T) {
		entry := minimalMetric("counter")
		entry["send_in_pings"] = []any{"core", "metrics"}
		v := NewMetricValidator(Options{AllowReserved: true})
		metric, diags := v.Validate("telemetry", "test", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Fatalf("unexpected errors: %v", diags)
		}
		if len(metric.SendInPings) != 2 || metric.SendInPings[0] != "core" || metric.SendInPings[1] != "metrics" {
			t.Errorf("SendInPings = %v, want [core metrics]", metric.SendInPings)
		}
	})
}

func TestMetricValidator_ExtraKeys(t *testing.T) {
	t.Run("valid extra keys", func(t *testing.T) {
		entry := minimalMetric("event")
		entry["extra_keys"] = map[string]any{
			"source_page": map[string]any{"description": "The page the event came from."},
		}
		v := NewMetricValidator(Options{})
		metric, diags := v.Validate("category", "metric", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Fatalf("valid extra_keys produced errors: %v", diags)
		}
		if _, ok := metric.ExtraKeys["source_page"]; !ok {
			t.Error("extra key not recorded")
		}
	})

	t.Run("extra key missing description", func(t *testing.T) {
		entry := minimalMetric("event")
		entry["extra_keys"] = map[string]any{"source_page": map[string]any{}}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleMissingRequiredField, "extra_keys") {
			t.Errorf("missing description not reported: %v", diags)
		}
	})

	t.Run("extra key bad grammar", func(t *testing.T) {
		entry := minimalMetric("event")
		entry["extra_keys"] = map[string]any{
			"SourcePage": map[string]any{"description": "x"},
		}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleInvalidIdentifier, "extra_keys") {
			t.Errorf("bad extra key grammar not reported: %v", diags)
		}
	})

	t.Run("extra_keys on non-event unknown", func(t *testing.T) {
		entry := minimalMetric("counter")
		entry["extra_keys"] = map[string]any{}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleUnknownField, "extra_keys") {
			t.Errorf("extra_keys on counter not rejected: %v", diags)
		}
	})
}

func TestMetricValidator_References(t *testing.T) {
	t.Run("bad email", func(t *testing.T) {
		entry := minimalMetric("counter")
		entry["notification_emails"] = []any{"not-an-email"}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleMalformedReference, "notification_emails") {
			t.Errorf("bad email not reported: %v", diags)
		}
	})

	t.Run("bug URI accepted", func(t *testing.T) {
		entry := minimalMetric("counter")
		entry["bugs"] = []any{"https://bugzilla.mozilla.org/1234567"}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("bug URI rejected: %v", diags)
		}
	})

	t.Run("bug plain string rejected", func(t *testing.T) {
		entry := minimalMetric("counter")
		entry["bugs"] = []any{"not a bug"}
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleMalformedReference, "bugs") {
			t.Errorf("non-URI bug string not reported: %v", diags)
		}
	})

	t.Run("bad expires", func(t *testing.T) {
		entry := minimalMetric("counter")
		entry["expires"] = "someday"
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if !hasDiag(diags, diag.RuleInvalidEnumValue, "expires") {
			t.Errorf("bad expires not reported: %v", diags)
		}
	})

	t.Run("ISO date expires accepted", func(t *testing.T) {
		entry := minimalMetric("counter")
		entry["expires"] = "2030-06-01"
		v := NewMetricValidator(Options{})
		_, diags := v.Validate("category", "metric", entry, defs.Location{})
		if errorCount(diags) != 0 {
			t.Errorf("ISO date expires rejected: %v", diags)
		}
	})
}

func TestMetricValidator_BadLifetimeEnum(t *testing.T) {
	entry := minimalMetric("counter")
	entry["lifetime"] = "user2"
	v := NewMetricValidator(Options{})
	_, diags := v.Validate("category", "metric", entry, defs.Location{})
	if !hasDiag(diags, diag.RuleInvalidEnumValue, "lifetime") {
		t.Errorf("lifetime user2 not rejected: %v", diags)
	}
}

func TestMetricValidator_EntryNotObject(t *testing.T) {
	v := NewMetricValidator(Options{})
	_, diags := v.Validate("category", "metric", "b", defs.Location{})
	if !hasDiag(diags, diag.RuleMalformedEntry, "") {
		t.Errorf("non-object entry not reported: %v", diags)
	}
}
