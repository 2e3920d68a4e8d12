package defs

import "time"

// Reserved identifiers. Categories and ping names colliding with these are
// rejected by the validation engine (some only outside internal builds, see
// the validator's Options).
const (
	// ReservedPingsCategory is the metrics-file category name reserved for
	// ping metadata. Never valid as a metric category.
	ReservedPingsCategory = "pings"

	// ReservedAllPings is the token meaning "send in every ping". Never
	// valid as a custom ping name; valid in send_in_pings only for
	// internal metrics.
	ReservedAllPings = "all_pings"

	// ReservedNamespace is the category namespace reserved for the SDK's
	// own metrics.
	ReservedNamespace = "glean"
)

// ReservedPingNames are the ping names reserved for the SDK's built-in
// pings. Custom pings may not use them unless reserved names are allowed.
var ReservedPingNames = []string{"baseline", "metrics", "events"}

// DefaultSendInPings is the send_in_pings value applied when a metric does
// not declare one.
var DefaultSendInPings = []string{"default"}

// Metric is a validated, normalized metric definition.
//
// Fields that carry defaults (Lifetime, SendInPings, Disabled, Version,
// RangeMin for custom distributions) are filled in during validation, so
// downstream consumers never see the zero value unless the registry file
// declared it.
type Metric struct {
	Category string // Dotted category path (e.g., "browser.session")
	Name     string // Metric name within the category
	Type     Type

	// Required metadata
	Description        string
	NotificationEmails []string
	Bugs               []string // Bug numbers or URIs, stringified
	DataReviews        []string // Data review URIs
	Expires            string   // "never", "expired", or an ISO date

	// Optional metadata, normalized
	Lifetime    Lifetime
	SendInPings []string
	Disabled    bool
	Version     int

	// Type-conditional fields. Pointer or nil-able fields distinguish
	// "absent" from an explicit zero.
	Values         []string            // enumeration: allowed values
	TimeUnit       TimeUnit            // timespan, timing_distribution, datetime
	MemoryUnit     MemoryUnit          // memory_distribution
	Labels         []string            // labeled types: static label set, nil when unrestricted
	HasLabels      bool                // distinguishes labels: [] from labels absent
	Denominator    string              // use_counter, rate
	ExtraKeys      map[string]ExtraKey // event
	GeckoDatapoint string              // gecko-sourced histogram-like metrics
	RangeMin       int64               // custom_distribution, defaults to 1
	RangeMax       int64               // custom_distribution
	BucketCount    int64               // custom_distribution
	HistogramType  HistogramType       // custom_distribution
	Unit           string              // quantity

	Location Location
}

// ExtraKey describes one allowed key on an event metric.
type ExtraKey struct {
	Description string
}

// Path returns the full dotted identifier "category.name".
func (m *Metric) Path() string {
	return m.Category + "." + m.Name
}

// IsExpired reports whether the metric's expires field denotes a date in
// the past (or the literal "expired"). "never" and future dates return
// false; malformed values are the validator's concern, not this helper's.
func (m *Metric) IsExpired(now time.Time) bool {
	switch m.Expires {
	case "never":
		return false
	case "expired":
		return true
	}
	d, err := time.Parse("2006-01-02", m.Expires)
	if err != nil {
		return false
	}
	return d.Before(now)
}

// ValidExpires reports whether s is a well-formed expires value: "never",
// "expired", or an ISO YYYY-MM-DD date.
func ValidExpires(s string) bool {
	if s == "never" || s == "expired" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
