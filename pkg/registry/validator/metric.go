package validator

import (
	"fmt"
	"strings"

	"telescope-hq/callisto/pkg/registry/defs"
	"telescope-hq/callisto/pkg/registry/diag"
	"telescope-hq/callisto/pkg/registry/ident"
)

// Options controls engine-wide validation behavior.
type Options struct {
	// AllowReserved permits reserved names (the glean category namespace,
	// built-in ping names, send_in_pings: [all_pings]). Only the SDK's
	// own registry files set this. The pings category and an all_pings
	// custom ping are rejected regardless.
	AllowReserved bool

	// Concurrency bounds the number of entries validated in parallel.
	// Zero means one worker per CPU.
	Concurrency int
}

// MetricValidator validates a single metric entry: structural checks plus
// dispatch into the type rule table.
type MetricValidator struct {
	opts Options
}

// NewMetricValidator creates a metric validator.
func NewMetricValidator(opts Options) *MetricValidator {
	return &MetricValidator{opts: opts}
}

// entryDiags accumulates diagnostics for one entry. All helpers record and
// continue; nothing here aborts the entry except a non-object shape.
type entryDiags struct {
	path  string
	diags []diag.Diagnostic
}

func (e *entryDiags) add(field string, rule diag.Rule, sev diag.Severity, format string, args ...any) {
	e.diags = append(e.diags, diag.Diagnostic{
		EntryPath: e.path,
		Field:     field,
		Rule:      rule,
		Severity:  sev,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (e *entryDiags) errorf(field string, rule diag.Rule, format string, args ...any) {
	e.add(field, rule, diag.SeverityError, format, args...)
}

func (e *entryDiags) hasErrors() bool {
	for _, d := range e.diags {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// Validate checks one metric entry and returns the accumulated diagnostics
// plus, when no errors were found, the normalized definition with defaults
// filled in.
func (v *MetricValidator) Validate(category, name string, entry any, loc defs.Location) (*defs.Metric, []diag.Diagnostic) {
	e := &entryDiags{path: category + "." + name}

	v.checkCategory(e, category)
	v.checkName(e, name)

	obj, ok := asObject(entry)
	if !ok {
		// Structural failure: nothing further can be checked on this
		// entry, but siblings continue.
		e.errorf("", diag.RuleMalformedEntry, "metric entry is not an object (got %T)", entry)
		return nil, e.diags
	}

	metric := &defs.Metric{
		Category: category,
		Name:     name,
		Location: loc,
		// Defaults; overwritten below when declared.
		Lifetime:    defs.LifetimePing,
		SendInPings: append([]string(nil), defs.DefaultSendInPings...),
	}

	// Rule 1: the type must be a known enum value. Without one, the
	// type-conditional checks are skipped but structural fields are still
	// validated.
	metricType, typeKnown := v.checkType(e, obj)
	metric.Type = metricType

	var rule typeRule
	if typeKnown {
		rule = metricRules[metricType]
		allowed := rule.fields(metricType)

		// Closed schema: report unknown keys, with a suggestion when a
		// known field is a near miss. Skipped for unknown types, whose
		// conditional field set cannot be determined.
		for key := range obj {
			if key == "type" || allowed[key] {
				continue
			}
			suggestion := diag.SuggestField(key, sortedKeys(allowed))
			e.errorf(key, diag.RuleUnknownField, "unknown field for %s metric; %s", metricType, suggestion)
		}
	}

	// Rule 2: required base fields.
	v.checkBaseFields(e, obj, metric)

	if !typeKnown {
		return nil, e.diags
	}

	// Rule 3: type-conditional required fields.
	for _, field := range rule.required {
		if _, present := obj[field]; !present {
			e.errorf(field, diag.RuleTypeConstraint,
				"`%s` is missing required parameter `%s`", metricType, field)
		}
	}

	// Rule 4: gecko_datapoint is forbidden except on histogram-like
	// gecko-sourced types.
	if _, present := obj["gecko_datapoint"]; present && !rule.allowGecko {
		e.errorf("gecko_datapoint", diag.RuleTypeConstraint,
			"`gecko_datapoint` is only allowed for Gecko metrics (timing_distribution, custom_distribution, memory_distribution, quantity), not `%s`", metricType)
	}

	// Rule 5: a forced lifetime rejects an explicit conflicting value.
	// The declared value was already decoded by checkBaseFields.
	if rule.forcedLifetime != "" {
		if raw, present := obj["lifetime"]; present {
			if s, ok := asString(raw); ok && s != string(rule.forcedLifetime) {
				e.errorf("lifetime", diag.RuleTypeConstraint,
					"`%s` metrics must have `%s` lifetime, got `%s`", metricType, rule.forcedLifetime, s)
			}
		}
	}

	// Rules 6-9: the type-conditional field values themselves.
	v.checkLabels(e, obj, metric)
	v.checkExtraKeys(e, obj, metric)
	v.checkEnumFields(e, obj, metric)
	v.checkDistribution(e, obj, metric)
	v.checkConditionalScalars(e, obj, metric)

	if e.hasErrors() {
		return nil, e.diags
	}
	return metric, e.diags
}

// checkCategory validates the category grammar and reserved names.
func (v *MetricValidator) checkCategory(e *entryDiags, category string) {
	if res := ident.DottedSnakeCase(category, ident.MaxLenLong); !res.Valid() {
		rule := diag.RuleInvalidIdentifier
		if res.Reason == ident.TooLong {
			rule = diag.RuleLengthExceeded
		}
		e.errorf("", rule, "invalid category %q: %s", category, res.Describe())
		return
	}
	if category == defs.ReservedPingsCategory {
		e.errorf("", diag.RuleReservedName,
			"category %q is reserved for ping metadata", category)
		return
	}
	if v.opts.AllowReserved {
		return
	}
	if category == defs.ReservedNamespace || strings.HasPrefix(category, defs.ReservedNamespace+".") {
		e.errorf("", diag.RuleReservedName,
			"for category %q: the `%s` namespace is reserved for internal metrics", category, defs.ReservedNamespace)
	}
}

// checkName validates the metric name grammar (very short snake_case).
func (v *MetricValidator) checkName(e *entryDiags, name string) {
	if res := ident.SnakeCase(name, ident.MaxLenVeryShort); !res.Valid() {
		rule := diag.RuleInvalidIdentifier
		if res.Reason == ident.TooLong {
			rule = diag.RuleLengthExceeded
		}
		e.errorf("", rule, "invalid metric name %q: %s", name, res.Describe())
	}
}

// checkType decodes and validates the type field. Returns the parsed type
// and whether type-conditional validation can proceed.
func (v *MetricValidator) checkType(e *entryDiags, obj map[string]any) (defs.Type, bool) {
	raw, present := obj["type"]
	if !present {
		e.errorf("type", diag.RuleMissingRequiredField, "missing required field `type`")
		return "", false
	}
	s, ok := asString(raw)
	if !ok {
		e.errorf("type", diag.RuleInvalidEnumValue, "`type` must be a string, got %T", raw)
		return "", false
	}
	t, known := defs.ParseType(s)
	if !known {
		e.errorf("type", diag.RuleInvalidEnumValue, "unknown metric type %q", s)
		return t, false
	}
	return t, true
}

// checkBaseFields validates the required metadata and optional base fields
// shared by all metric types, filling normalized values into metric.
func (v *MetricValidator) checkBaseFields(e *entryDiags, obj map[string]any, metric *defs.Metric) {
	for _, field := range requiredBaseFields {
		if field == "type" {
			continue // handled by checkType
		}
		if _, present := obj[field]; !present {
			e.errorf(field, diag.RuleMissingRequiredField, "missing required field `%s`", field)
		}
	}

	if raw, present := obj["description"]; present {
		if s, ok := asString(raw); ok && s != "" {
			metric.Description = s
		} else {
			e.errorf("description", diag.RuleMalformedEntry, "`description` must be a non-empty string")
		}
	}

	if raw, present := obj["notification_emails"]; present {
		emails, ok := asStringList(raw)
		switch {
		case !ok:
			e.errorf("notification_emails", diag.RuleMalformedEntry, "`notification_emails` must be a list of strings")
		case len(emails) == 0:
			e.errorf("notification_emails", diag.RuleMissingRequiredField, "`notification_emails` must list at least one address")
		default:
			for _, addr := range emails {
				if !validEmail(addr) {
					e.errorf("notification_emails", diag.RuleMalformedReference, "%q is not a valid email address", addr)
				}
			}
			metric.NotificationEmails = emails
		}
	}

	if raw, present := obj["bugs"]; present {
		metric.Bugs = checkBugs(e, raw)
	}

	if raw, present := obj["data_reviews"]; present {
		reviews, ok := asStringList(raw)
		if !ok {
			e.errorf("data_reviews", diag.RuleMalformedEntry, "`data_reviews` must be a list of URIs")
		} else {
			for _, uri := range reviews {
				if !validURI(uri) {
					e.errorf("data_reviews", diag.RuleMalformedReference, "%q is not a valid URI", uri)
				}
			}
			metric.DataReviews = reviews
		}
	}

	if raw, present := obj["expires"]; present {
		s, ok := asString(raw)
		if !ok || !defs.ValidExpires(s) {
			e.errorf("expires", diag.RuleInvalidEnumValue,
				"`expires` must be `never`, `expired`, or a YYYY-MM-DD date")
		} else {
			metric.Expires = s
		}
	}

	if raw, present := obj["lifetime"]; present {
		s, ok := asString(raw)
		if !ok {
			e.errorf("lifetime", diag.RuleInvalidEnumValue, "`lifetime` must be a string")
		} else if lt, valid := defs.ParseLifetime(s); valid {
			metric.Lifetime = lt
		} else {
			e.errorf("lifetime", diag.RuleInvalidEnumValue,
				"%q is not one of [ping, user, application]", s)
		}
	}

	if raw, present := obj["send_in_pings"]; present {
		v.checkSendInPings(e, raw, metric)
	}

	if raw, present := obj["disabled"]; present {
		if b, ok := asBool(raw); ok {
			metric.Disabled = b
		} else {
			e.errorf("disabled", diag.RuleMalformedEntry, "`disabled` must be a boolean")
		}
	}

	if raw, present := obj["version"]; present {
		n, ok := asInt(raw)
		switch {
		case !ok:
			e.errorf("version", diag.RuleMalformedEntry, "`version` must be an integer")
		case n < 0:
			e.errorf("version", diag.RuleRangeViolation, "`version` must be non-negative, got %d", n)
		default:
			metric.Version = int(n)
		}
	}
}

// checkBugs validates a bugs list (shared by metrics and pings): each
// entry is a bug number or a URI. Returns the stringified bug references.
func checkBugs(e *entryDiags, raw any) []string {
	list, ok := asList(raw)
	if !ok {
		e.errorf("bugs", diag.RuleMalformedEntry, "`bugs` must be a list of bug numbers or URIs")
		return nil
	}
	if len(list) == 0 {
		e.errorf("bugs", diag.RuleMissingRequiredField, "`bugs` must list at least one bug")
		return nil
	}
	bugs := make([]string, 0, len(list))
	for _, item := range list {
		switch b := item.(type) {
		case int64:
			bugs = append(bugs, fmt.Sprintf("%d", b))
		case int:
			bugs = append(bugs, fmt.Sprintf("%d", b))
		case string:
			if !validURI(b) {
				e.errorf("bugs", diag.RuleMalformedReference, "%q is neither a bug number nor a valid URI", b)
				continue
			}
			bugs = append(bugs, b)
		default:
			e.errorf("bugs", diag.RuleMalformedReference, "bug entry %v is neither a bug number nor a URI", item)
		}
	}
	return bugs
}

// checkSendInPings validates send_in_pings entries: snake_case tokens, with
// all_pings reserved for internal metrics.
func (v *MetricValidator) checkSendInPings(e *entryDiags, raw any, metric *defs.Metric) {
	pings, ok := asStringList(raw)
	if !ok {
		e.errorf("send_in_pings", diag.RuleMalformedEntry, "`send_in_pings` must be a list of ping names")
		return
	}
	for _, p := range pings {
		if p == defs.ReservedAllPings {
			if !v.opts.AllowReserved {
				e.errorf("send_in_pings", diag.RuleReservedName,
					"only internal metrics may be sent in `%s`", defs.ReservedAllPings)
			}
			continue
		}
		if res := ident.SnakeCase(p, ident.MaxLenShort); !res.Valid() {
			e.errorf("send_in_pings", diag.RuleInvalidIdentifier, "invalid ping name %q: %s", p, res.Describe())
		}
	}
	if len(pings) > 0 {
		metric.SendInPings = pings
	}
}

// checkLabels validates the labels field on labeled metric types (rule 6).
// Absence means unrestricted labels; an explicit null is equivalent; a list
// is a static label set capped at ident.MaxLabels.
func (v *MetricValidator) checkLabels(e *entryDiags, obj map[string]any, metric *defs.Metric) {
	raw, present := obj["labels"]
	if !present || !metric.Type.Labeled() {
		// Presence on a non-labeled type was already reported as an
		// unknown field by the closed-schema check.
		return
	}
	metric.HasLabels = true
	if raw == nil {
		return
	}
	list, ok := asList(raw)
	if !ok {
		e.errorf("labels", diag.RuleMalformedEntry, "`labels` must be a list of labels or null")
		return
	}
	if len(list) > ident.MaxLabels {
		e.errorf("labels", diag.RuleLengthExceeded,
			"too many labels: %d declared, at most %d are allowed", len(list), ident.MaxLabels)
	}
	labels := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := asString(item)
		if !ok {
			e.errorf("labels", diag.RuleMalformedEntry, "label %v is not a string", item)
			continue
		}
		if res := ident.LabeledMetricID(s); !res.Valid() {
			rule := diag.RuleInvalidIdentifier
			if res.Reason == ident.TooLong {
				rule = diag.RuleLengthExceeded
			}
			e.errorf("labels", rule, "invalid label %q: %s", s, res.Describe())
			continue
		}
		labels = append(labels, s)
	}
	metric.Labels = labels
}

// checkExtraKeys validates event extra_keys (rule 7): dotted-snake keys,
// each value an object with a required description.
func (v *MetricValidator) checkExtraKeys(e *entryDiags, obj map[string]any, metric *defs.Metric) {
	raw, present := obj["extra_keys"]
	if !present || metric.Type != defs.TypeEvent {
		return
	}
	keys, ok := asObject(raw)
	if !ok {
		e.errorf("extra_keys", diag.RuleMalformedEntry, "`extra_keys` must be an object")
		return
	}
	metric.ExtraKeys = make(map[string]defs.ExtraKey, len(keys))
	for key, val := range keys {
		if res := ident.DottedSnakeCase(key, ident.MaxLenLong); !res.Valid() {
			e.errorf("extra_keys", diag.RuleInvalidIdentifier, "invalid extra key %q: %s", key, res.Describe())
		}
		spec, ok := asObject(val)
		if !ok {
			e.errorf("extra_keys", diag.RuleMalformedEntry, "extra key %q must be an object", key)
			continue
		}
		desc, ok := asString(spec["description"])
		if !ok || desc == "" {
			e.errorf("extra_keys", diag.RuleMissingRequiredField, "extra key %q is missing a description", key)
			continue
		}
		metric.ExtraKeys[key] = defs.ExtraKey{Description: desc}
	}
}

// checkEnumFields validates the fixed-enumeration fields time_unit,
// memory_unit and histogram_type when present (rule 8).
func (v *MetricValidator) checkEnumFields(e *entryDiags, obj map[string]any, metric *defs.Metric) {
	if raw, present := obj["time_unit"]; present {
		s, _ := asString(raw)
		if u, ok := defs.ParseTimeUnit(s); ok {
			metric.TimeUnit = u
		} else {
			e.errorf("time_unit", diag.RuleInvalidEnumValue, "%v is not one of %v", raw, defs.TimeUnits)
		}
	}
	if raw, present := obj["memory_unit"]; present {
		s, _ := asString(raw)
		if u, ok := defs.ParseMemoryUnit(s); ok {
			metric.MemoryUnit = u
		} else {
			e.errorf("memory_unit", diag.RuleInvalidEnumValue, "%v is not one of %v", raw, defs.MemoryUnits)
		}
	}
	if raw, present := obj["histogram_type"]; present {
		s, _ := asString(raw)
		if h, ok := defs.ParseHistogramType(s); ok {
			metric.HistogramType = h
		} else {
			e.errorf("histogram_type", diag.RuleInvalidEnumValue, "%v is not one of %v", raw, defs.HistogramTypes)
		}
	}
}

// checkDistribution validates the numeric bucket parameters of custom
// distributions, including the bucket_count range (rule 9), and applies
// the range_min default.
func (v *MetricValidator) checkDistribution(e *entryDiags, obj map[string]any, metric *defs.Metric) {
	if metric.Type != defs.TypeCustomDistribution {
		return
	}
	metric.RangeMin = defaultRangeMin
	if raw, present := obj["range_min"]; present {
		if n, ok := asInt(raw); ok {
			metric.RangeMin = n
		} else {
			e.errorf("range_min", diag.RuleMalformedEntry, "`range_min` must be an integer")
		}
	}
	if raw, present := obj["range_max"]; present {
		if n, ok := asInt(raw); ok {
			metric.RangeMax = n
		} else {
			e.errorf("range_max", diag.RuleMalformedEntry, "`range_max` must be an integer")
		}
	}
	if raw, present := obj["bucket_count"]; present {
		n, ok := asInt(raw)
		switch {
		case !ok:
			e.errorf("bucket_count", diag.RuleMalformedEntry, "`bucket_count` must be an integer")
		case n > maxBucketCount:
			e.errorf("bucket_count", diag.RuleRangeViolation,
				"%d is greater than the maximum of %d", n, maxBucketCount)
		case n < minBucketCount:
			e.errorf("bucket_count", diag.RuleRangeViolation,
				"%d is less than the minimum of %d", n, minBucketCount)
		default:
			metric.BucketCount = n
		}
	}
}

// checkConditionalScalars validates the remaining type-conditional scalar
// fields: unit, gecko_datapoint, denominator, values.
func (v *MetricValidator) checkConditionalScalars(e *entryDiags, obj map[string]any, metric *defs.Metric) {
	if raw, present := obj["unit"]; present {
		if s, ok := asString(raw); ok && s != "" {
			metric.Unit = s
		} else {
			e.errorf("unit", diag.RuleMalformedEntry, "`unit` must be a non-empty string")
		}
	}
	if raw, present := obj["gecko_datapoint"]; present && metricRules[metric.Type].allowGecko {
		s, ok := asString(raw)
		if !ok {
			e.errorf("gecko_datapoint", diag.RuleMalformedEntry, "`gecko_datapoint` must be a string")
		} else if res := ident.GenericToken(s); !res.Valid() {
			e.errorf("gecko_datapoint", diag.RuleInvalidIdentifier, "invalid datapoint %q: %s", s, res.Describe())
		} else {
			metric.GeckoDatapoint = s
		}
	}
	if raw, present := obj["denominator"]; present {
		s, ok := asString(raw)
		if !ok {
			e.errorf("denominator", diag.RuleMalformedEntry, "`denominator` must be a string naming a counter metric")
		} else if res := ident.DottedSnakeCase(s, ident.MaxLenLabeled); !res.Valid() {
			e.errorf("denominator", diag.RuleInvalidIdentifier, "invalid denominator %q: %s", s, res.Describe())
		} else {
			metric.Denominator = s
		}
	}
	if raw, present := obj["values"]; present {
		values, ok := asStringList(raw)
		switch {
		case !ok:
			e.errorf("values", diag.RuleMalformedEntry, "`values` must be a list of strings")
		case len(values) == 0:
			e.errorf("values", diag.RuleMissingRequiredField, "`values` must list at least one value")
		default:
			metric.Values = values
		}
	}
}
