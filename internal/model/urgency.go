package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidUrgency = errors.New("model: invalid urgency")

type Urgency string

const (
	UrgencyNone               Urgency = "none"
	UrgencyToday              Urgency = "today"
	UrgencyTomorrow           Urgency = "tomorrow"
	UrgencyDayAfterTomorrow   Urgency = "day-after"
	UrgencyNextWeek           Urgency = "next-week"
	UrgencyInTwoWeeks         Urgency = "two-weeks"
	UrgencyNextMonth          Urgency = "next-month"
	UrgencySpecificDay        Urgency = "day"
	UrgencySpecificDayAndTime Urgency = "day-time"
)

var urgencyAliases = map[string]Urgency{
	"dayafter":           UrgencyDayAfterTomorrow,
	"day-after-tomorrow": UrgencyDayAfterTomorrow,
	"week":               UrgencyNextWeek,
	"nextweek":           UrgencyNextWeek,
	"2w":                 UrgencyInTwoWeeks,
	"in-two-weeks":       UrgencyInTwoWeeks,
	"month":              UrgencyNextMonth,
	"nextmonth":          UrgencyNextMonth,
	"date":               UrgencySpecificDay,
	"datetime":           UrgencySpecificDayAndTime,
}

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyNone, UrgencyToday, UrgencyTomorrow, UrgencyDayAfterTomorrow, UrgencyNextWeek,
		UrgencyInTwoWeeks, UrgencyNextMonth, UrgencySpecificDay, UrgencySpecificDayAndTime:
		return true
	default:
		return false
	}
}

// IsSpecific reports whether the urgency takes its date from the caller
// instead of the clock.
func (u Urgency) IsSpecific() bool {
	return u == UrgencySpecificDay || u == UrgencySpecificDayAndTime
}

func ParseUrgency(raw string) (Urgency, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", "-")
	if u := Urgency(key); u.IsValid() {
		return u, nil
	}
	if u, ok := urgencyAliases[key]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUrgency, raw)
}
