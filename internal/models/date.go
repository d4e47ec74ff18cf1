package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar month with an optional day. Geometry only looks at
// Year and Month; Day is kept for ordering and display.
type Date struct {
	Year  int
	Month int // 1..12, 0 when it did not parse
	Day   int // 0 when absent

	raw    string // source text when it did not fully parse
	noYear bool
}

// MonthOf builds a month-precision date.
func MonthOf(year, month int) Date {
	return Date{Year: year, Month: month}
}

// ParseDate accepts YYYY-MM or YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	d := LenientDate(s)
	if !d.Valid() || d.raw != "" {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// LenientDate keeps whatever components of s parse and remembers the
// source text otherwise. It never fails, so a stored milestone with a
// malformed date is kept and simply not drawn.
func LenientDate(s string) Date {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")

	var d Date
	complete := len(parts) == 2 || len(parts) == 3

	year, exact, ok := leadingInt(parts[0])
	if !ok {
		d.noYear = true
		complete = false
	} else {
		d.Year = year
		complete = complete && exact
	}
	if len(parts) >= 2 {
		if m, exact, ok := leadingInt(parts[1]); ok && m >= 1 && m <= 12 {
			d.Month = m
			complete = complete && exact
		} else {
			complete = false
		}
	}
	if len(parts) == 3 {
		if day, exact, ok := leadingInt(parts[2]); ok && day >= 1 && day <= 31 {
			d.Day = day
			complete = complete && exact
		} else {
			complete = false
		}
	}
	if !complete {
		d.raw = s
	}
	return d
}

// leadingInt reads an optionally signed run of digits at the start of s,
// so "2025abc" yields 2025. exact reports whether nothing followed.
func leadingInt(s string) (n int, exact, ok bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false, false
	}
	return n, end == len(s), true
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// HasYear reports whether the year component is usable.
func (d Date) HasYear() bool {
	return !d.noYear && !d.IsZero()
}

// Valid reports whether the date can be placed on the timeline.
func (d Date) Valid() bool {
	return d.HasYear() && d.Month >= 1 && d.Month <= 12
}

// Truncate drops the day component.
func (d Date) Truncate() Date {
	if !d.Valid() {
		return d
	}
	return MonthOf(d.Year, d.Month)
}

func (d Date) String() string {
	if d.raw != "" {
		return d.raw
	}
	if d.Day > 0 {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

// MonthKey is the YYYY-MM grouping key used for stacking.
func (d Date) MonthKey() string {
	s := d.String()
	if len(s) > 7 {
		return s[:7]
	}
	return s
}

// Before orders dates chronologically. Dates that cannot be placed sort last.
func (d Date) Before(other Date) bool {
	if d.Valid() != other.Valid() {
		return d.Valid()
	}
	if !d.Valid() {
		return d.String() < other.String()
	}
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = LenientDate(strings.Trim(string(data), `"`))
		return nil
	}
	*d = LenientDate(s)
	return nil
}
