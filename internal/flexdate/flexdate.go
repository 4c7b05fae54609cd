// Package flexdate normalizes the two date encodings the backend emits:
// ISO-8601 strings and numeric tuples of the form
// [year, month, day, hour, minute, second, nanosecond] with the month
// 1-indexed and the trailing components optional. The union never leaves
// this package; every consumer sees a plain time.Time.
package flexdate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrorKind classifies why a raw date value could not be normalized.
type ErrorKind int

const (
	KindEmpty ErrorKind = iota
	KindTooFewComponents
	KindBadComponent
	KindBadFormat
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindTooFewComponents:
		return "too few components"
	case KindBadComponent:
		return "bad component"
	case KindBadFormat:
		return "bad format"
	default:
		return "unknown"
	}
}

// ParseError reports a date value that could not be normalized. It is only
// returned in strict mode; lenient mode substitutes the current time.
type ParseError struct {
	Kind ErrorKind
	Raw  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing date %q: %s", e.Raw, e.Kind)
}

// strict controls whether malformed values fail or fall back to "now".
// The lenient fallback matches the backend's historical behavior; strict
// mode is opt-in via configuration.
var strict bool

// SetStrict switches between failing on malformed dates and substituting
// the current time.
func SetStrict(on bool) { strict = on }

// IsStrict reports the current normalization mode.
func IsStrict() bool { return strict }

// Accepted string layouts, most specific first. The backend emits local
// date-times without a zone designator; zoned forms are accepted too.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseString normalizes an ISO-8601 date or date-time string.
func ParseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback(&ParseError{Kind: KindEmpty, Raw: s})
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return fallback(&ParseError{Kind: KindBadFormat, Raw: s})
}

// FromComponents normalizes a numeric tuple. Hour, minute, second and
// nanosecond default to zero when omitted; fewer than three components is
// malformed.
func FromComponents(parts []float64) (time.Time, error) {
	if len(parts) < 3 {
		return fallback(&ParseError{Kind: KindTooFewComponents, Raw: fmt.Sprint(parts)})
	}
	padded := make([]int, 7)
	for i, p := range parts {
		if i >= len(padded) {
			break
		}
		padded[i] = int(p)
	}
	year, month, day := padded[0], padded[1], padded[2]
	hour, minute, sec, nano := padded[3], padded[4], padded[5], padded[6]
	return time.Date(year, time.Month(month), day, hour, minute, sec, nano, time.Local), nil
}

// Normalize dispatches on the raw JSON encoding of a date value.
func Normalize(raw json.RawMessage) (time.Time, error) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "" || trimmed == "null":
		return time.Time{}, nil
	case strings.HasPrefix(trimmed, "["):
		var parts []float64
		if err := json.Unmarshal(raw, &parts); err != nil {
			return fallback(&ParseError{Kind: KindBadComponent, Raw: trimmed})
		}
		return FromComponents(parts)
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fallback(&ParseError{Kind: KindBadFormat, Raw: trimmed})
		}
		return ParseString(s)
	default:
		return fallback(&ParseError{Kind: KindBadFormat, Raw: trimmed})
	}
}

func fallback(perr *ParseError) (time.Time, error) {
	if strict {
		return time.Time{}, perr
	}
	return time.Now(), nil
}

// Time is the boundary type for date fields in backend payloads. It decodes
// either union arm and re-encodes as RFC 3339 so cached records round-trip
// through plain JSON.
type Time struct {
	time.Time
}

// At wraps a plain time.Time, mostly for tests and fixtures.
func At(t time.Time) Time { return Time{Time: t} }

func (t *Time) UnmarshalJSON(data []byte) error {
	parsed, err := Normalize(data)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
