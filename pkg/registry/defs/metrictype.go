package defs

// Type identifies the shape of a metric. The set is closed; unknown strings
// in a registry file fail validation before a Metric is built.
type Type string

// Scalar metric types.
const (
	TypeBoolean            Type = "boolean"
	TypeString             Type = "string"
	TypeStringList         Type = "string_list"
	TypeEnumeration        Type = "enumeration"
	TypeCounter            Type = "counter"
	TypeQuantity           Type = "quantity"
	TypeTimespan           Type = "timespan"
	TypeTimingDistribution Type = "timing_distribution"
	TypeCustomDistribution Type = "custom_distribution"
	TypeMemoryDistribution Type = "memory_distribution"
	TypeDatetime           Type = "datetime"
	TypeUseCounter         Type = "use_counter"
	TypeUsage              Type = "usage"
	TypeRate               Type = "rate"
	TypeUUID               Type = "uuid"
	TypeEvent              Type = "event"
)

// Labeled metric types. A labeled metric tracks multiple independent
// instances of its base type, distinguished by a label string.
const (
	TypeLabeledBoolean     Type = "labeled_boolean"
	TypeLabeledString      Type = "labeled_string"
	TypeLabeledStringList  Type = "labeled_string_list"
	TypeLabeledEnumeration Type = "labeled_enumeration"
	TypeLabeledCounter     Type = "labeled_counter"
	TypeLabeledQuantity    Type = "labeled_quantity"
	TypeLabeledTimespan    Type = "labeled_timespan"
	TypeLabeledDatetime    Type = "labeled_datetime"
	TypeLabeledUUID        Type = "labeled_uuid"
	TypeLabeledRate        Type = "labeled_rate"
)

// AllTypes lists every metric type, scalar first, then labeled.
var AllTypes = []Type{
	TypeBoolean, TypeString, TypeStringList, TypeEnumeration, TypeCounter,
	TypeQuantity, TypeTimespan, TypeTimingDistribution, TypeCustomDistribution,
	TypeMemoryDistribution, TypeDatetime, TypeUseCounter, TypeUsage, TypeRate,
	TypeUUID, TypeEvent,
	TypeLabeledBoolean, TypeLabeledString, TypeLabeledStringList,
	TypeLabeledEnumeration, TypeLabeledCounter, TypeLabeledQuantity,
	TypeLabeledTimespan, TypeLabeledDatetime, TypeLabeledUUID, TypeLabeledRate,
}

// ParseType returns the Type for a registry string and whether it is known.
func ParseType(s string) (Type, bool) {
	t := Type(s)
	_, ok := typeSet[t]
	return t, ok
}

var typeSet = func() map[Type]struct{} {
	set := make(map[Type]struct{}, len(AllTypes))
	for _, t := range AllTypes {
		set[t] = struct{}{}
	}
	return set
}()

// Labeled reports whether the type is a labeled variant.
func (t Type) Labeled() bool {
	switch t {
	case TypeLabeledBoolean, TypeLabeledString, TypeLabeledStringList,
		TypeLabeledEnumeration, TypeLabeledCounter, TypeLabeledQuantity,
		TypeLabeledTimespan, TypeLabeledDatetime, TypeLabeledUUID,
		TypeLabeledRate:
		return true
	}
	return false
}

// Base returns the underlying scalar type for labeled variants, or the type
// itself for scalar types.
func (t Type) Base() Type {
	switch t {
	case TypeLabeledBoolean:
		return TypeBoolean
	case TypeLabeledString:
		return TypeString
	case TypeLabeledStringList:
		return TypeStringList
	case TypeLabeledEnumeration:
		return TypeEnumeration
	case TypeLabeledCounter:
		return TypeCounter
	case TypeLabeledQuantity:
		return TypeQuantity
	case TypeLabeledTimespan:
		return TypeTimespan
	case TypeLabeledDatetime:
		return TypeDatetime
	case TypeLabeledUUID:
		return TypeUUID
	case TypeLabeledRate:
		return TypeRate
	}
	return t
}

// String returns the registry spelling of the type.
func (t Type) String() string {
	return string(t)
}
