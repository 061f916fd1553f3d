package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the on-disk form of Timestamp. Fixed-width fractional
// seconds keep lexical and chronological order identical.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Older message files carry zone-less local timestamps.
var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Timestamp is an ISO-8601 instant with microsecond precision.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the precision stored on disk, so a value read
// back from storage compares equal to the one written.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// String returns the ISO-8601 form.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts RFC 3339 and the zone-less legacy layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewTimestamp(parsed), nil
	}
	for _, layout := range legacyLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return NewTimestamp(parsed), nil
		}
	}
	return Timestamp{}, fmt.Errorf("model: invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
