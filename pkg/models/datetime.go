package models

import (
	"time"

	"github.com/araddon/dateparse"
)

// LocalDateTime is a server timestamp in the server's local zone, e.g.
// "2024-03-01 10:15:30.123+0100". The wire text is kept verbatim so a note
// survives a get/patch round trip unchanged.
type LocalDateTime string

// UTCDateTime is a server timestamp in UTC, e.g. "2024-03-01 09:15:30.123Z".
type UTCDateTime string

// Time parses the timestamp, keeping the offset it was written with.
func (d LocalDateTime) Time() (time.Time, error) {
	return parseServerTime(string(d), time.Local)
}

func (d LocalDateTime) IsZero() bool {
	return d == ""
}

// Time parses the timestamp as UTC.
func (d UTCDateTime) Time() (time.Time, error) {
	t, err := parseServerTime(string(d), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func (d UTCDateTime) IsZero() bool {
	return d == ""
}

// NewUTCDateTime formats t the way the server does.
func NewUTCDateTime(t time.Time) UTCDateTime {
	return UTCDateTime(t.UTC().Format("2006-01-02 15:04:05.000Z"))
}

var serverLayouts = []string{
	"2006-01-02 15:04:05.000-0700",
	"2006-01-02 15:04:05.000Z07:00",
}

// parseServerTime tries the layouts the server writes before falling back to
// dateparse for timestamps written by older servers or other tools.
func parseServerTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range serverLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return dateparse.ParseIn(s, loc)
}
