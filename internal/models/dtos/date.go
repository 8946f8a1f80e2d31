package dtos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar date exchanged as "YYYY-MM-DD". Inbound values may also be
// RFC 3339 timestamps or Mongo extended JSON ({"$date": ...}). An empty string
// or null decodes to the zero Date, which means "not set".
type Date struct {
	time.Time
}

func NewDate(t time.Time) *Date {
	if t.IsZero() {
		return nil
	}
	return &Date{Time: t.UTC()}
}

// DateOf returns nil for a nil time so optional columns map straight through.
func DateOf(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return NewDate(*t)
}

// ParseDate parses "YYYY-MM-DD" or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t.UTC()}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return Date{Time: t.UTC()}, nil
}

func (d *Date) Valid() bool {
	return d != nil && !d.IsZero()
}

// TimePtr converts back to the storage representation.
func (d *Date) TimePtr() *time.Time {
	if !d.Valid() {
		return nil
	}
	t := d.Time
	return &t
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}

	if len(b) > 0 && b[0] == '{' {
		var ext struct {
			Date json.RawMessage `json:"$date"`
		}
		if err := json.Unmarshal(b, &ext); err != nil {
			return fmt.Errorf("invalid date object: %w", err)
		}
		if len(ext.Date) == 0 {
			return fmt.Errorf("invalid date object: missing $date")
		}
		return d.UnmarshalJSON(ext.Date)
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// OptionalDate is a request date that records whether the field was sent.
// A field sent as null or "" clears the stored date; an omitted field keeps it.
type OptionalDate struct {
	Set  bool
	Date Date
}

// DateValue marks d as sent. An empty string clears.
func DateValue(s string) (OptionalDate, error) {
	d, err := ParseDate(s)
	if err != nil {
		return OptionalDate{}, err
	}
	return OptionalDate{Set: true, Date: d}, nil
}

// TimePtr is nil when the field was omitted or cleared.
func (o *OptionalDate) TimePtr() *time.Time {
	return o.Date.TimePtr()
}

func (o OptionalDate) MarshalJSON() ([]byte, error) {
	return o.Date.MarshalJSON()
}

func (o *OptionalDate) UnmarshalJSON(b []byte) error {
	if err := o.Date.UnmarshalJSON(b); err != nil {
		return err
	}
	o.Set = true
	return nil
}
