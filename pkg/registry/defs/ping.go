package defs

// Ping is a validated custom ping definition. Unlike metrics, pings have a
// fixed, unconditional field set.
type Ping struct {
	Name string // Dotted ping name

	Description        string
	IncludeClientID    bool
	NotificationEmails []string
	Bugs               []string
	DataReviews        []string

	Location Location
}
