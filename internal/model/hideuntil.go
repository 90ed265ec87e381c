package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidHideUntil = errors.New("model: invalid hide-until setting")

type HideUntil string

const (
	HideUntilNone               HideUntil = "none"
	HideUntilDue                HideUntil = "due"
	HideUntilDueTime            HideUntil = "due-time"
	HideUntilDayBefore          HideUntil = "day-before"
	HideUntilWeekBefore         HideUntil = "week-before"
	HideUntilSpecificDay        HideUntil = "day"
	HideUntilSpecificDayAndTime HideUntil = "day-time"
)

func (h HideUntil) IsValid() bool {
	switch h {
	case HideUntilNone, HideUntilDue, HideUntilDueTime, HideUntilDayBefore, HideUntilWeekBefore,
		HideUntilSpecificDay, HideUntilSpecificDayAndTime:
		return true
	default:
		return false
	}
}

func (h HideUntil) IsSpecific() bool {
	return h == HideUntilSpecificDay || h == HideUntilSpecificDayAndTime
}

func ParseHideUntil(raw string) (HideUntil, error) {
	h := HideUntil(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-"))
	if !h.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidHideUntil, raw)
	}
	return h, nil
}

// CreateHideUntil derives the instant a task stays hidden until. Settings
// relative to the due date read dueDate; the specific ones read custom.
// Date-only results land on local midnight.
func (c DueDateCalculator) CreateHideUntil(setting HideUntil, dueDate, custom int64) int64 {
	var base int64
	switch setting {
	case HideUntilNone:
		return 0
	case HideUntilDue, HideUntilDueTime, HideUntilDayBefore, HideUntilWeekBefore:
		base = dueDate
	case HideUntilSpecificDay, HideUntilSpecificDayAndTime:
		base = custom
	default:
		return 0
	}
	if base <= 0 {
		return 0
	}

	t := c.fromMillis(base)
	switch setting {
	case HideUntilDueTime, HideUntilSpecificDayAndTime:
		return withTimeMark(t).UnixMilli()
	case HideUntilDayBefore:
		t = t.AddDate(0, 0, -1)
	case HideUntilWeekBefore:
		t = t.AddDate(0, 0, -7)
	}
	return startOfDay(t).UnixMilli()
}
