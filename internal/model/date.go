package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Date is a calendar timestamp that accepts the loose formats browsers and
// date pickers send ("2024-05-01", RFC 3339, ...) and always emits RFC 3339.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t.UTC()}
}

// ParseDate parses s in UTC. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
