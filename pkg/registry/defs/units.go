package defs

// Lifetime is the reset policy for a metric's stored value.
type Lifetime string

const (
	// LifetimePing resets the metric each time it is sent in a ping.
	// This is the default.
	LifetimePing Lifetime = "ping"
	// LifetimeUser ties the metric to the user profile; it is never reset.
	LifetimeUser Lifetime = "user"
	// LifetimeApplication resets the metric at application restarts.
	LifetimeApplication Lifetime = "application"
)

// Lifetimes lists the valid lifetime values.
var Lifetimes = []Lifetime{LifetimePing, LifetimeUser, LifetimeApplication}

// ParseLifetime returns the Lifetime for a registry string and whether it
// is valid.
func ParseLifetime(s string) (Lifetime, bool) {
	switch Lifetime(s) {
	case LifetimePing, LifetimeUser, LifetimeApplication:
		return Lifetime(s), true
	}
	return "", false
}

// TimeUnit is the resolution for time-based metrics.
type TimeUnit string

const (
	TimeUnitNanosecond  TimeUnit = "nanosecond"
	TimeUnitMicrosecond TimeUnit = "microsecond"
	TimeUnitMillisecond TimeUnit = "millisecond"
	TimeUnitSecond      TimeUnit = "second"
	TimeUnitMinute      TimeUnit = "minute"
	TimeUnitHour        TimeUnit = "hour"
	TimeUnitDay         TimeUnit = "day"
)

// TimeUnits lists the valid time_unit values.
var TimeUnits = []TimeUnit{
	TimeUnitNanosecond, TimeUnitMicrosecond, TimeUnitMillisecond,
	TimeUnitSecond, TimeUnitMinute, TimeUnitHour, TimeUnitDay,
}

// ParseTimeUnit returns the TimeUnit for a registry string and whether it
// is valid.
func ParseTimeUnit(s string) (TimeUnit, bool) {
	for _, u := range TimeUnits {
		if TimeUnit(s) == u {
			return u, true
		}
	}
	return "", false
}

// MemoryUnit is the resolution for memory distribution metrics.
type MemoryUnit string

const (
	MemoryUnitByte     MemoryUnit = "byte"
	MemoryUnitKilobyte MemoryUnit = "kilobyte"
	MemoryUnitMegabyte MemoryUnit = "megabyte"
	MemoryUnitGigabyte MemoryUnit = "gigabyte"
)

// MemoryUnits lists the valid memory_unit values.
var MemoryUnits = []MemoryUnit{
	MemoryUnitByte, MemoryUnitKilobyte, MemoryUnitMegabyte, MemoryUnitGigabyte,
}

// ParseMemoryUnit returns the MemoryUnit for a registry string and whether
// it is valid.
func ParseMemoryUnit(s string) (MemoryUnit, bool) {
	for _, u := range MemoryUnits {
		if MemoryUnit(s) == u {
			return u, true
		}
	}
	return "", false
}

// HistogramType selects the bucketing strategy for custom distributions.
type HistogramType string

const (
	HistogramTypeLinear      HistogramType = "linear"
	HistogramTypeExponential HistogramType = "exponential"
)

// HistogramTypes lists the valid histogram_type values.
var HistogramTypes = []HistogramType{HistogramTypeLinear, HistogramTypeExponential}

// ParseHistogramType returns the HistogramType for a registry string and
// whether it is valid.
func ParseHistogramType(s string) (HistogramType, bool) {
	switch HistogramType(s) {
	case HistogramTypeLinear, HistogramTypeExponential:
		return HistogramType(s), true
	}
	return "", false
}
