package date

import (
	"fmt"
	"strings"
	"time"
)

// Range represents an inclusive range of dates, such as the span between
// two consecutive portfolio checkpoints.
type Range struct{ From, To Date }

// NewRange returns the range between two dates.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether the date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of calendar days covered by the range, boundaries
// included.
func (r Range) Days() int {
	n := 1
	for d := r.From; d.Before(r.To); d = d.Add(1) {
		n++
	}
	return n
}

// String formats the range as "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// ParseRange parses a range from its "from..to" form.
func ParseRange(str string) (Range, error) {
	from, to, found := strings.Cut(str, "..")
	if !found {
		return Range{}, fmt.Errorf("invalid range %q want %q", str, "from..to")
	}
	f, err := Parse(from)
	if err != nil {
		return Range{}, err
	}
	t, err := Parse(to)
	if err != nil {
		return Range{}, err
	}
	return NewRange(f, t), nil
}

// MarshalText makes Range usable as a JSON map key.
func (r Range) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText parses a range from its "from..to" text form.
func (r *Range) UnmarshalText(text []byte) error {
	parsed, err := ParseRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MonthKey identifies the calendar month of a date, used to group ranges by
// the month their To date falls in.
type MonthKey struct {
	Year  int
	Month int
}

// MonthOf returns the MonthKey of a date.
func MonthOf(d Date) MonthKey { return MonthKey{Year: d.Year(), Month: int(d.Month())} }

// Before reports whether k is strictly before x in calendar order.
func (k MonthKey) Before(x MonthKey) bool {
	if k.Year != x.Year {
		return k.Year < x.Year
	}
	return k.Month < x.Month
}

// Name returns the English month name, e.g. "January".
func (k MonthKey) Name() string {
	return New(k.Year, time.Month(k.Month), 1).Format("January")
}

// String formats the key as "2006-01".
func (k MonthKey) String() string { return fmt.Sprintf("%04d-%02d", k.Year, k.Month) }

// Quarter returns the calendar quarter (1-4) of the month.
func (k MonthKey) Quarter() int { return (k.Month-1)/3 + 1 }
