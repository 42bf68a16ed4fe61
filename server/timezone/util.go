// Package timezone resolves the reference instant a request is recognized
// against.
package timezone

import (
	"time"

	"github.com/pkg/errors"
)

// UTC is the default location.
var UTC = time.UTC

// Layouts accepted for a reference instant, most specific first.
var referenceLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Shanghai").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return UTC, errors.Wrapf(err, "invalid timezone %q", tz)
	}

	return loc, nil
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	_, err := ParseTimezone(tz)
	return err == nil
}

// ParseReference reads a reference instant. An empty value means now. A
// value without an explicit offset is read as wall time in tz; a value with
// one keeps its offset unless tz is given, in which case it is converted.
func ParseReference(value, tz string, now func() time.Time) (time.Time, error) {
	loc, err := ParseTimezone(tz)
	if err != nil {
		return time.Time{}, err
	}
	if value == "" {
		return now().In(loc), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		if tz != "" {
			return t.In(loc), nil
		}
		return t, nil
	}
	for _, layout := range referenceLayouts[1:] {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid reference %q", value)
}
