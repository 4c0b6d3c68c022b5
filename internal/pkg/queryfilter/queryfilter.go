// Package queryfilter turns whitelisted query-string parameters into
// equality filters for list endpoints.
package queryfilter

import (
	"net/url"
	"strconv"
	"strings"
)

// Filters maps column names to the coerced filter values a repository
// should apply as equality conditions.
type Filters map[string]interface{}

// Key is a whitelisted filter parameter together with the coercion its
// column type needs. Typing the coercion per key keeps text columns
// comparing as text: "?instructor=123" must stay the string "123", not
// become an int64 the statement parameter cannot encode.
type Key struct {
	name   string
	coerce func(string) (interface{}, bool)
}

// Text whitelists a parameter compared against a text column; the raw
// value is used as-is.
func Text(name string) Key {
	return Key{name: name, coerce: func(raw string) (interface{}, bool) {
		return raw, true
	}}
}

// Int whitelists an id-typed parameter. Values that are not integers
// are ignored.
func Int(name string) Key {
	return Key{name: name, coerce: func(raw string) (interface{}, bool) {
		n, err := strconv.ParseInt(raw, 10, 64)
		return n, err == nil
	}}
}

// Bool whitelists a boolean parameter accepting "true"/"false"
// case-insensitively. Other values are ignored.
func Bool(name string) Key {
	return Key{name: name, coerce: func(raw string) (interface{}, bool) {
		switch strings.ToLower(raw) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	}}
}

// Collect picks the whitelisted keys out of the query string. Empty
// values, keys outside the whitelist and values the key's coercion
// rejects are ignored.
func Collect(values url.Values, keys ...Key) Filters {
	filters := Filters{}
	for _, key := range keys {
		if !values.Has(key.name) {
			continue
		}
		raw := values.Get(key.name)
		if raw == "" {
			continue
		}
		if v, ok := key.coerce(raw); ok {
			filters[key.name] = v
		}
	}
	return filters
}
