package stockbook

import (
	"fmt"
	"strings"
	"time"
)

// Period is a standard reporting period.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	default:
		return "period"
	}
}

// ParsePeriod parses a period name like "month" or "monthly".
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// Range returns the period containing d.
func (p Period) Range(d Date) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Weekday returns the day of the week of the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// StartOf returns the first day of the period containing d. Weeks start on
// Monday.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Weekly:
		offset := int(d.Weekday()+6) % 7 // days since Monday
		return d.Add(-offset)
	case Monthly:
		return NewDate(d.Year(), d.Month(), 1)
	case Quarterly:
		quarter := (d.Month() - 1) / 3
		return NewDate(d.Year(), quarter*3+1, 1)
	case Yearly:
		return NewDate(d.Year(), time.January, 1)
	default:
		return d
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(period Period) Date {
	switch period {
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return NewDate(d.Year(), d.Month()+1, 0)
	case Quarterly:
		quarter := (d.Month() - 1) / 3
		return NewDate(d.Year(), quarter*3+4, 0) // day 0 of the next quarter
	case Yearly:
		return NewDate(d.Year(), time.December, 31)
	default:
		return d
	}
}

// Range represents a range of dates, boundaries included. A zero boundary is
// open.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true if date is included in the range.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	return r.To.IsZero() || !date.After(r.To)
}

func (r Range) String() string {
	switch {
	case r.From.IsZero() && r.To.IsZero():
		return "all time"
	case r.From.IsZero():
		return fmt.Sprintf("until %s", r.To)
	case r.To.IsZero():
		return fmt.Sprintf("since %s", r.From)
	default:
		return fmt.Sprintf("from %s to %s", r.From, r.To)
	}
}

// InRange selects the realized events of a date range.
func InRange(r Range) func(RealizedEvent) bool {
	return func(e RealizedEvent) bool { return r.Contains(e.Date) }
}
