package validator

import "telescope-hq/callisto/pkg/registry/defs"

// baseFields is the closed schema shared by every metric type. Anything
// outside baseFields plus the type's conditional fields is unknown.
var baseFields = map[string]bool{
	"type":                true,
	"description":         true,
	"notification_emails": true,
	"bugs":                true,
	"data_reviews":        true,
	"expires":             true,
	"lifetime":            true,
	"send_in_pings":       true,
	"disabled":            true,
	"version":             true,
}

// requiredBaseFields must be present on every metric entry.
var requiredBaseFields = []string{
	"type", "description", "notification_emails", "bugs", "data_reviews", "expires",
}

// typeRule is one row of the metric rule table: the type-conditional
// constraints for a single metric type.
type typeRule struct {
	// required fields beyond the base set. Absence is a type-constraint
	// violation naming the type.
	required []string

	// optional fields beyond the base set.
	optional []string

	// allowGecko marks the types a gecko_datapoint may appear on.
	// Everywhere else its presence is an error.
	allowGecko bool

	// forcedLifetime, when set, rejects any explicitly declared lifetime
	// other than this one. Absence of lifetime is fine (the default
	// already matches).
	forcedLifetime defs.Lifetime
}

// fields returns the full allowed field set for the rule: base fields plus
// the type-conditional ones, plus labels for labeled types.
func (r typeRule) fields(t defs.Type) map[string]bool {
	out := make(map[string]bool, len(baseFields)+len(r.required)+len(r.optional)+2)
	for f := range baseFields {
		out[f] = true
	}
	for _, f := range r.required {
		out[f] = true
	}
	for _, f := range r.optional {
		out[f] = true
	}
	if r.allowGecko {
		out["gecko_datapoint"] = true
	}
	if t.Labeled() {
		out["labels"] = true
	}
	return out
}

// metricRules is the rule table: one row per metric type variant. The table
// is immutable, process-wide configuration; it is never written after
// package initialization.
var metricRules = map[defs.Type]typeRule{
	defs.TypeBoolean:    {},
	defs.TypeString:     {},
	defs.TypeStringList: {},
	defs.TypeEnumeration: {
		required: []string{"values"},
	},
	defs.TypeCounter: {},
	defs.TypeQuantity: {
		required:   []string{"unit", "gecko_datapoint"},
		allowGecko: true,
	},
	defs.TypeTimespan: {
		optional: []string{"time_unit"},
	},
	defs.TypeTimingDistribution: {
		optional:   []string{"time_unit"},
		allowGecko: true,
	},
	defs.TypeCustomDistribution: {
		required:   []string{"range_max", "bucket_count", "histogram_type", "gecko_datapoint"},
		optional:   []string{"range_min"},
		allowGecko: true,
	},
	defs.TypeMemoryDistribution: {
		required:   []string{"memory_unit"},
		allowGecko: true,
	},
	defs.TypeDatetime: {
		optional: []string{"time_unit"},
	},
	defs.TypeUseCounter: {
		required: []string{"denominator"},
	},
	defs.TypeUsage: {},
	defs.TypeRate: {
		optional: []string{"denominator"},
	},
	defs.TypeUUID: {},
	defs.TypeEvent: {
		optional:       []string{"extra_keys"},
		forcedLifetime: defs.LifetimePing,
	},

	// Labeled variants share the base type's conditional fields, except
	// gecko_datapoint: the gecko allow set is exactly the four scalar
	// histogram-like types, so labeled variants never require or accept
	// it.
	defs.TypeLabeledBoolean:    {},
	defs.TypeLabeledString:     {},
	defs.TypeLabeledStringList: {},
	defs.TypeLabeledEnumeration: {
		required: []string{"values"},
	},
	defs.TypeLabeledCounter: {},
	defs.TypeLabeledQuantity: {
		required: []string{"unit"},
	},
	defs.TypeLabeledTimespan: {
		optional: []string{"time_unit"},
	},
	defs.TypeLabeledDatetime: {
		optional: []string{"time_unit"},
	},
	defs.TypeLabeledUUID: {},
	defs.TypeLabeledRate: {
		optional: []string{"denominator"},
	},
}

// Numeric limits for custom distributions.
const (
	minBucketCount = 1
	maxBucketCount = 100

	// defaultRangeMin is applied when a custom distribution omits
	// range_min.
	defaultRangeMin = 1
)

// pingFields is the closed schema for ping entries.
var pingFields = map[string]bool{
	"description":         true,
	"include_client_id":   true,
	"notification_emails": true,
	"bugs":                true,
	"data_reviews":        true,
}

// requiredPingFields must all be present on a ping entry.
var requiredPingFields = []string{
	"description", "include_client_id", "notification_emails", "bugs", "data_reviews",
}
