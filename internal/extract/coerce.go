package extract

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Built-in coercers, addressable by name from rule files and usable
// directly in a Config. Each returns the typed value or the reason the
// raw string was rejected.

// DateLayout is the layout accepted by CoerceDate.
const DateLayout = "2006-01-02"

// CoerceString passes the raw value through unchanged.
func CoerceString(raw string) (any, error) {
	return raw, nil
}

// CoerceInt parses a base-10 integer into an int64.
func CoerceInt(raw string) (any, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", raw)
	}
	return n, nil
}

// CoerceFloat parses a float64.
func CoerceFloat(raw string) (any, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("not a float: %q", raw)
	}
	return f, nil
}

// CoerceBool parses a boolean (accepts 1/0, t/f, true/false).
func CoerceBool(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("not a bool: %q", raw)
	}
	return b, nil
}

// CoerceDate parses a calendar date in 2006-01-02 form into a time.Time.
func CoerceDate(raw string) (any, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("not a date: %q", raw)
	}
	return t, nil
}

// CoerceDateTime parses an RFC 3339 timestamp into a time.Time.
func CoerceDateTime(raw string) (any, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("not a timestamp: %q", raw)
	}
	return t, nil
}

// builtinCoercers maps rule-file type names to coercers.
var builtinCoercers = map[string]Coercer{
	"string":   CoerceString,
	"int":      CoerceInt,
	"float":    CoerceFloat,
	"bool":     CoerceBool,
	"date":     CoerceDate,
	"datetime": CoerceDateTime,
}

// CoercerByName returns the built-in coercer registered under name.
func CoercerByName(name string) (Coercer, bool) {
	c, ok := builtinCoercers[name]
	return c, ok
}

// CoercerNames returns the sorted names of all built-in coercers, for
// error messages listing the valid choices.
func CoercerNames() []string {
	names := make([]string, 0, len(builtinCoercers))
	for name := range builtinCoercers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
