package validator

import (
	"reflect"
	"testing"

	"telescope-hq/callisto/pkg/registry/defs"
	"telescope-hq/callisto/pkg/registry/diag"
	"telescope-hq/callisto/pkg/registry/parser"
)

func metricsDoc(root any) *parser.Document {
	return &parser.Document{Source: "metrics.yaml", Root: root}
}

func pingsDoc(root any) *parser.Document {
	return &parser.Document{Source: "pings.yaml", Root: root}
}

func TestEngine_ValidateMetrics(t *testing.T) {
	doc := metricsDoc(map[string]any{
		"$schema": "moz://mozilla.org/schemas/glean/metrics/1-0-0",
		"browser.engagement": map[string]any{
			"tab_count":  minimalMetric("counter"),
			"is_default": minimalMetric("boolean"),
		},
	})

	result := NewEngine(Options{}).ValidateMetrics(doc)
	if result.Report.HasErrors() {
		t.Fatalf("valid document produced errors: %v", result.Report.Diagnostics)
	}

	category := result.Metrics["browser.engagement"]
	if len(category) != 2 {
		t.Fatalf("got %d metrics in category, want 2", len(category))
	}
	if category["tab_count"].Type != defs.TypeCounter {
		t.Errorf("tab_count type = %q", category["tab_count"].Type)
	}
}

func TestEngine_FailSoftAcrossEntries(t *testing.T) {
	// One broken entry must not suppress validation of its siblings, and a
	// broken category must not suppress other categories.
	doc := metricsDoc(map[string]any{
		"good.category": map[string]any{
			"fine":   minimalMetric("string"),
			"broken": map[string]any{"type": "counter"},
		},
		"bad_category": "not an object",
	})

	result := NewEngine(Options{}).ValidateMetrics(doc)

	if result.Metrics["good.category"]["fine"] == nil {
		t.Error("valid sibling of a broken entry was not stored")
	}
	if result.Metrics["good.category"]["broken"] != nil {
		t.Error("broken entry stored despite errors")
	}

	var sawCategory, sawEntry bool
	for _, d := range result.Report.Diagnostics {
		if d.EntryPath == "bad_category" && d.Rule == diag.RuleMalformedEntry {
			sawCategory = true
		}
		if d.EntryPath == "good.category.broken" && d.Rule == diag.RuleMissingRequiredField {
			sawEntry = true
		}
	}
	if !sawCategory {
		t.Error("malformed category not reported")
	}
	if !sawEntry {
		t.Error("broken entry diagnostics not reported")
	}
}

func TestEngine_Deterministic(t *testing.T) {
	// Many entries with errors, validated concurrently: the sorted report
	// must come out identical on every run.
	root := map[string]any{}
	for _, cat := range []string{"cat_a", "cat_b", "cat_c", "cat_d"} {
		entries := map[string]any{}
		for _, name := range []string{"one", "two", "three", "four", "five"} {
			entries[name] = map[string]any{"type": "quantity"}
		}
		root[cat] = entries
	}

	engine := NewEngine(Options{Concurrency: 4})
	first := engine.ValidateMetrics(metricsDoc(root))
	for i := 0; i < 10; i++ {
		next := engine.ValidateMetrics(metricsDoc(root))
		if !reflect.DeepEqual(first.Report.Diagnostics, next.Report.Diagnostics) {
			t.Fatalf("run %d produced a different report", i)
		}
	}
}

func TestEngine_RootNotObject(t *testing.T) {
	result := NewEngine(Options{}).ValidateMetrics(metricsDoc([]any{"a"}))
	if !result.Report.HasErrors() {
		t.Fatal("non-object root not reported")
	}
	if len(result.Report.Diagnostics) != 1 || result.Report.Diagnostics[0].Rule != diag.RuleMalformedEntry {
		t.Errorf("unexpected diagnostics: %v", result.Report.Diagnostics)
	}
}

func TestEngine_SchemaWarnings(t *testing.T) {
	t.Run("non-string schema", func(t *testing.T) {
		doc := metricsDoc(map[string]any{"$schema": int64(1)})
		result := NewEngine(Options{}).ValidateMetrics(doc)
		if result.Report.HasErrors() {
			t.Errorf("schema shape should warn, not error: %v", result.Report.Diagnostics)
		}
		if _, warnings := result.Report.Counts(); warnings != 1 {
			t.Errorf("want 1 warning, got %d", warnings)
		}
	})

	t.Run("non-URL schema", func(t *testing.T) {
		doc := metricsDoc(map[string]any{"$schema": "not a url"})
		result := NewEngine(Options{}).ValidateMetrics(doc)
		if _, warnings := result.Report.Counts(); warnings != 1 {
			t.Errorf("want 1 warning, got %d", warnings)
		}
	})

	t.Run("valid schema silent", func(t *testing.T) {
		doc := metricsDoc(map[string]any{"$schema": "moz://mozilla.org/schemas/glean/metrics/1-0-0"})
		result := NewEngine(Options{}).ValidateMetrics(doc)
		if len(result.Report.Diagnostics) != 0 {
			t.Errorf("unexpected diagnostics: %v", result.Report.Diagnostics)
		}
	})
}

func minimalPing() map[string]any {
	return map[string]any{
		"description":         "A custom ping.",
		"include_client_id":   true,
		"notification_emails": []any{"telemetry@example.com"},
		"bugs":                []any{int64(1234567)},
		"data_reviews":        []any{"https://example.com/review/2"},
	}
}

func TestEngine_ValidatePings(t *testing.T) {
	doc := pingsDoc(map[string]any{
		"$schema":       "moz://mozilla.org/schemas/glean/pings/1-0-0",
		"search.counts": minimalPing(),
	})

	result := NewEngine(Options{}).ValidatePings(doc)
	if result.Report.HasErrors() {
		t.Fatalf("valid ping document produced errors: %v", result.Report.Diagnostics)
	}
	ping := result.Pings["search.counts"]
	if ping == nil {
		t.Fatal("ping not stored")
	}
	if !ping.IncludeClientID {
		t.Error("IncludeClientID not decoded")
	}
}

func TestPingValidator_MissingFields(t *testing.T) {
	entry := minimalPing()
	delete(entry, "include_client_id")

	v := NewPingValidator(Options{})
	ping, diags := v.Validate("custom", entry, defs.Location{})
	if ping != nil {
		t.Error("ping returned despite errors")
	}
	if !hasDiag(diags, diag.RuleMissingRequiredField, "include_client_id") {
		t.Errorf("missing include_client_id not reported: %v", diags)
	}
}

func TestPingValidator_UnknownField(t *testing.T) {
	entry := minimalPing()
	entry["send_if_empty"] = true

	v := NewPingValidator(Options{})
	_, diags := v.Validate("custom", entry, defs.Location{})
	if !hasDiag(diags, diag.RuleUnknownField, "send_if_empty") {
		t.Errorf("unknown ping field not reported: %v", diags)
	}
	if got := errorCount(diags); got != 1 {
		t.Errorf("got %d errors, want 1: %v", got, diags)
	}
}

func TestPingValidator_ReservedNames(t *testing.T) {
	t.Run("all_pings always rejected", func(t *testing.T) {
		v := NewPingValidator(Options{AllowReserved: true})
		_, diags := v.Validate("all_pings", minimalPing(), defs.Location{})
		if !hasDiag(diags, diag.RuleReservedName, "") {
			t.Errorf("all_pings not rejected: %v", diags)
		}
	})

	t.Run("built-in names gated by allow_reserved", func(t *testing.T) {
		for _, name := range defs.ReservedPingNames {
			v := NewPingValidator(Options{})
			_, diags := v.Validate(name, minimalPing(), defs.Location{})
			if !hasDiag(diags, diag.RuleReservedName, "") {
				t.Errorf("reserved ping %q not rejected: %v", name, diags)
			}

			v = NewPingValidator(Options{AllowReserved: true})
			_, diags = v.Validate(name, minimalPing(), defs.Location{})
			if errorCount(diags) != 0 {
				t.Errorf("reserved ping %q rejected despite allow_reserved: %v", name, diags)
			}
		}
	})

	t.Run("bad grammar", func(t *testing.T) {
		v := NewPingValidator(Options{})
		_, diags := v.Validate("MyPing", minimalPing(), defs.Location{})
		if !hasDiag(diags, diag.RuleInvalidIdentifier, "") {
			t.Errorf("MyPing not rejected: %v", diags)
		}
	})
}

func TestEngine_ValidateDocumentDispatch(t *testing.T) {
	engine := NewEngine(Options{})

	result := engine.ValidateDocument(parser.KindPings, pingsDoc(map[string]any{
		"custom": minimalPing(),
	}))
	if result.Pings == nil || result.Metrics != nil {
		t.Error("pings kind did not dispatch to the ping validator")
	}

	result = engine.ValidateDocument(parser.KindMetrics, metricsDoc(map[string]any{
		"category": map[string]any{"metric": minimalMetric("counter")},
	}))
	if result.Metrics == nil || result.Pings != nil {
		t.Error("metrics kind did not dispatch to the metric validator")
	}
}

// Every declared metric type must have a rule table row, and vice versa:
// a type without a row would silently accept every conditional field, a
// row without a type is dead.
func TestRuleTableCoversAllTypes(t *testing.T) {
	for _, typ := range defs.AllTypes {
		if _, ok := metricRules[typ]; !ok {
			t.Errorf("no rule table row for type %q", typ)
		}
	}
	for typ := range metricRules {
		found := false
		for _, known := range defs.AllTypes {
			if typ == known {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rule table row for undeclared type %q", typ)
		}
	}
	if len(defs.AllTypes) != 26 {
		t.Errorf("declared %d metric types, want 26", len(defs.AllTypes))
	}
}
