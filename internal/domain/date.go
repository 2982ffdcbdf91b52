package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Date is a calendar day in UTC. The zero value marks a missing date.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// dateLayouts are tried in order by ParseDate. Zoned timestamps are converted
// to UTC before the time of day is dropped.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	dateLayout,
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",
	"2006-1-2",
	"2006.1.2",
}

// NewDate returns the UTC day y-m-d. Out-of-range values are normalized the
// way time.Date does; use civilDate when the input must be a real day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// civilDate builds y-m-d and reports false for impossible days such as 2/30.
func civilDate(year, month, day int) (Date, bool) {
	if month < 1 || month > 12 || day < 1 {
		return Date{}, false
	}
	d := NewDate(year, time.Month(month), day)
	if d.Month() != time.Month(month) || d.Day() != day {
		return Date{}, false
	}
	return d, true
}

// ParseDate parses the date formats seen across the feeds. Unparseable input
// yields a missing Date rather than an error.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t)
		}
	}
	return Date{}
}

// Missing reports whether the date is absent.
func (d Date) Missing() bool {
	return d.IsZero()
}

// DaysSince returns d - o in whole days. Both dates must be present.
func (d Date) DaysSince(o Date) int {
	return int(d.Sub(o.Time).Hours() / 24)
}

// String formats the date as YYYY-MM-DD, or "" when missing.
func (d Date) String() string {
	if d.Missing() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Missing() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = ParseDate(s)
	return nil
}
