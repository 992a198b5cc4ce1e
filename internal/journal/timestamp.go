package journal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Timestamp is a trade time as sent by clients. Besides RFC3339 it accepts
// zoneless forms such as "2024-01-15 10:30:00", which are read as wall clock
// time in the journal's stats location when the trade is built.
type Timestamp struct {
	raw string
}

// NewTimestamp wraps an absolute time.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{raw: t.Format(time.RFC3339Nano)}
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s != "" {
		if _, err := cast.ToTimeInDefaultLocationE(s, time.UTC); err != nil {
			return fmt.Errorf("invalid timestamp %q", s)
		}
	}
	t.raw = s
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.raw)
}

// In resolves the timestamp, placing zoneless values in loc. An empty value
// resolves to nil.
func (t *Timestamp) In(loc *time.Location) (*time.Time, error) {
	if t == nil || t.raw == "" {
		return nil, nil
	}
	ts, err := cast.ToTimeInDefaultLocationE(t.raw, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", t.raw, err)
	}
	return &ts, nil
}
