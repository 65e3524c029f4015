package core

import (
	"time"
)

// Timestamp is an instant in epoch milliseconds. The persisted collections
// sort and generate ids at millisecond precision, so the wire representation
// is the canonical one.
type Timestamp int64

// NewTimestamp creates a timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Now returns the current timestamp
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// Time returns the underlying time.Time
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t))
}

// IsZero checks if the timestamp is unset
func (t Timestamp) IsZero() bool {
	return t == 0
}

// Before returns true if t is before u
func (t Timestamp) Before(u Timestamp) bool {
	return t < u
}

// After returns true if t is after u
func (t Timestamp) After(u Timestamp) bool {
	return t > u
}

func (t Timestamp) String() string {
	return t.Time().Format(time.RFC3339)
}
