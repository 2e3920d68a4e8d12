package validator

import (
	"net/url"
	"regexp"
	"sort"
)

// emailPattern is a permissive email shape check: something@domain.tld.
// Registry emails gate notification routing, not RFC compliance.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validEmail reports whether s is email-shaped.
func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validURI reports whether s is an absolute http(s) URI.
func validURI(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// asString extracts a string field value.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asBool extracts a boolean field value.
func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt extracts an integer field value. YAML integers arrive as int64
// from the parser; plain int is accepted for callers that build documents
// in code.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

// asList extracts a list field value.
func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// asObject extracts a map field value.
func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asStringList extracts a list of strings. Returns false if the value is
// not a list or any element is not a string.
func asStringList(v any) ([]string, bool) {
	l, ok := asList(v)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		s, ok := asString(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// sortedKeys returns the keys of a field set in stable order for use in
// messages and suggestions.
func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
