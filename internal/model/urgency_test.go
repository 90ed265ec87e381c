package model

import (
	"errors"
	"testing"
)

func TestParseUrgency(t *testing.T) {
	cases := []struct {
		in   string
		want Urgency
	}{
		{"none", UrgencyNone},
		{"Today", UrgencyToday},
		{" tomorrow ", UrgencyTomorrow},
		{"day_after", UrgencyDayAfterTomorrow},
		{"next-week", UrgencyNextWeek},
		{"2w", UrgencyInTwoWeeks},
		{"month", UrgencyNextMonth},
		{"day", UrgencySpecificDay},
		{"DAY-TIME", UrgencySpecificDayAndTime},
	}
	for _, tc := range cases {
		got, err := ParseUrgency(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseUrgencyInvalid(t *testing.T) {
	_, err := ParseUrgency("someday")
	if !errors.Is(err, ErrInvalidUrgency) {
		t.Fatalf("expected ErrInvalidUrgency, got %v", err)
	}
}

func TestUrgencyIsSpecific(t *testing.T) {
	if !UrgencySpecificDay.IsSpecific() || !UrgencySpecificDayAndTime.IsSpecific() {
		t.Fatal("expected specific urgencies to report specific")
	}
	if UrgencyNextMonth.IsSpecific() {
		t.Fatal("expected next-month to be relative")
	}
}
