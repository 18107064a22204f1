package models

import (
	"strings"
	"time"
)

// Task is a single to-do item as served by the task API
type Task struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   *Timestamp `json:"updatedAt,omitempty"`
}

// timestampLayouts lists the formats the task API emits for dates.
// The backend writes local date-times without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Timestamp is a time.Time that accepts the zone-less ISO-8601
// date-times produced by the task API.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, truncated to microseconds like the backend stores it
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.Truncate(time.Microsecond)}
}

// MarshalJSON writes the timestamp in the backend's local date-time form
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.Format("2006-01-02T15:04:05.999999") + `"`), nil
}

// UnmarshalJSON parses any of the supported layouts
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		ts.Time = time.Time{}
		return nil
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			ts.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// Equal reports whether two tasks carry the same id, fields and timestamps
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID &&
		t.Title == other.Title &&
		t.Description == other.Description &&
		t.Completed == other.Completed &&
		sameTimestamp(t.CreatedAt, other.CreatedAt) &&
		sameTimestamp(t.UpdatedAt, other.UpdatedAt)
}

func sameTimestamp(a, b *Timestamp) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b.Time)
}
