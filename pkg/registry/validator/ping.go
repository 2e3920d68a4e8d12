package validator

import (
	"telescope-hq/callisto/pkg/registry/defs"
	"telescope-hq/callisto/pkg/registry/diag"
	"telescope-hq/callisto/pkg/registry/ident"
)

// PingValidator validates a single ping entry. Ping rules are uniform:
// a fixed required-field set and reserved-name checks, with no conditional
// logic.
type PingValidator struct {
	opts Options
}

// NewPingValidator creates a ping validator.
func NewPingValidator(opts Options) *PingValidator {
	return &PingValidator{opts: opts}
}

// Validate checks one ping entry and returns the accumulated diagnostics
// plus, when no errors were found, the normalized definition.
func (v *PingValidator) Validate(name string, entry any, loc defs.Location) (*defs.Ping, []diag.Diagnostic) {
	e := &entryDiags{path: name}

	v.checkPingName(e, name)

	obj, ok := asObject(entry)
	if !ok {
		e.errorf("", diag.RuleMalformedEntry, "ping entry is not an object (got %T)", entry)
		return nil, e.diags
	}

	for _, field := range requiredPingFields {
		if _, present := obj[field]; !present {
			e.errorf(field, diag.RuleMissingRequiredField, "missing required field `%s`", field)
		}
	}

	// Closed schema, same as metrics but with a fixed field set.
	for key := range obj {
		if pingFields[key] {
			continue
		}
		suggestion := diag.SuggestField(key, sortedKeys(pingFields))
		e.errorf(key, diag.RuleUnknownField, "unknown field for ping; %s", suggestion)
	}

	ping := &defs.Ping{Name: name, Location: loc}

	if raw, present := obj["description"]; present {
		if s, ok := asString(raw); ok && s != "" {
			ping.Description = s
		} else {
			e.errorf("description", diag.RuleMalformedEntry, "`description` must be a non-empty string")
		}
	}

	if raw, present := obj["include_client_id"]; present {
		if b, ok := asBool(raw); ok {
			ping.IncludeClientID = b
		} else {
			e.errorf("include_client_id", diag.RuleMalformedEntry, "`include_client_id` must be a boolean")
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
			ping.NotificationEmails = emails
		}
	}

	if raw, present := obj["bugs"]; present {
		ping.Bugs = checkBugs(e, raw)
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
			ping.DataReviews = reviews
		}
	}

	if e.hasErrors() {
		return nil, e.diags
	}
	return ping, e.diags
}

// checkPingName validates the ping name grammar and reserved names. The
// all_pings token is rejected even for internal registries; the built-in
// ping names only when reserved names are disallowed.
func (v *PingValidator) checkPingName(e *entryDiags, name string) {
	if res := ident.DottedSnakeCase(name, ident.MaxLenLong); !res.Valid() {
		rule := diag.RuleInvalidIdentifier
		if res.Reason == ident.TooLong {
			rule = diag.RuleLengthExceeded
		}
		e.errorf("", rule, "invalid ping name %q: %s", name, res.Describe())
		return
	}
	if name == defs.ReservedAllPings {
		e.errorf("", diag.RuleReservedName,
			"custom pings can not be named %q", defs.ReservedAllPings)
		return
	}
	if v.opts.AllowReserved {
		return
	}
	for _, reserved := range defs.ReservedPingNames {
		if name == reserved {
			e.errorf("", diag.RuleReservedName,
				"ping name %q is reserved for a built-in ping", name)
			return
		}
	}
}
