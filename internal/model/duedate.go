package model

import (
	"time"

	"github.com/sandeepkv93/duedate/internal/clock"
)

// Due dates are epoch milliseconds. A date-only due date sits at 12:00:00.000
// local time; a due date with a time of day carries one second past the minute,
// so the seconds field tells the two apart.
const (
	NoDueDate int64 = 0

	dueHour        = 12
	timeMarkSecond = 1
	millisInMinute = int64(time.Minute / time.Millisecond)
)

type DueDateCalculator struct {
	clock clock.Clock
	loc   *time.Location
}

func NewDueDateCalculator(c clock.Clock, loc *time.Location) DueDateCalculator {
	if c == nil {
		c = clock.System{}
	}
	if loc == nil {
		loc = time.Local
	}
	return DueDateCalculator{clock: c, loc: loc}
}

func (c DueDateCalculator) Location() *time.Location {
	return c.loc
}

func (c DueDateCalculator) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// CreateDueDate turns an urgency into a due date. ref is only read for the
// specific urgencies; a non-positive ref there means no due date.
func (c DueDateCalculator) CreateDueDate(u Urgency, ref int64) int64 {
	now := c.Now()

	var day time.Time
	switch u {
	case UrgencyNone:
		return NoDueDate
	case UrgencyToday:
		day = now
	case UrgencyTomorrow:
		day = now.AddDate(0, 0, 1)
	case UrgencyDayAfterTomorrow:
		day = now.AddDate(0, 0, 2)
	case UrgencyNextWeek:
		day = now.AddDate(0, 0, 7)
	case UrgencyInTwoWeeks:
		day = now.AddDate(0, 0, 14)
	case UrgencyNextMonth:
		day = addMonthsClamped(now, 1)
	case UrgencySpecificDay:
		if ref <= 0 {
			return NoDueDate
		}
		day = c.fromMillis(ref)
	case UrgencySpecificDayAndTime:
		if ref <= 0 {
			return NoDueDate
		}
		return withTimeMark(c.fromMillis(ref)).UnixMilli()
	default:
		return NoDueDate
	}
	return atHour(day, dueHour).UnixMilli()
}

func (c DueDateCalculator) fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).In(c.loc)
}

// HasDueDate reports whether dueDate is set.
func HasDueDate(dueDate int64) bool {
	return dueDate > 0
}

// HasDueTime reports whether dueDate carries an explicit time of day rather
// than just a date pinned to noon. The check is on the epoch value, so it
// assumes the zone offset is a whole number of minutes; historic offsets such
// as Monrovia's -0:44:30 make date-only values read as timed.
func HasDueTime(dueDate int64) bool {
	return dueDate > 0 && dueDate%millisInMinute != 0
}

// addMonthsClamped adds n calendar months, clamping the day to the last day of
// the target month (Jan 31 + 1 month = Feb 28 or 29).
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

func atHour(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}

func withTimeMark(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), timeMarkSecond, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return atHour(t, 0)
}
