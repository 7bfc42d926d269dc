package domain

import (
	"testing"
	"time"
)

// 2024-01-01 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func alarm(id string, days []int, at string, enabled bool) *Alarm {
	return &Alarm{
		ID:         id,
		VideoID:    "abc12345678",
		DaysOfWeek: days,
		Time:       at,
		Enabled:    enabled,
	}
}

func TestNextOccurrence_BeforeAndAfterTodaysTime(t *testing.T) {
	a := alarm("a", []int{1}, "07:00", true) // Mondays 07:00

	// Evaluated Monday 06:59 -> fires today at 07:00.
	occ, ok := NextOccurrence([]*Alarm{a}, monday(6, 59))
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if want := monday(7, 0); !occ.FiresAt.Equal(want) {
		t.Errorf("FiresAt = %v, want %v", occ.FiresAt, want)
	}
	if occ.Alarm.ID != "a" {
		t.Errorf("Alarm.ID = %s, want a", occ.Alarm.ID)
	}

	// Evaluated Monday 07:01 -> fires next Monday, not today.
	occ, ok = NextOccurrence([]*Alarm{a}, monday(7, 1))
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if want := monday(7, 0).AddDate(0, 0, 7); !occ.FiresAt.Equal(want) {
		t.Errorf("FiresAt = %v, want %v", occ.FiresAt, want)
	}
}

func TestNextOccurrence_ExactTimeIsExcluded(t *testing.T) {
	a := alarm("a", []int{1}, "07:00", true)

	// now == scheduled time: today's occurrence counts as already passed.
	occ, ok := NextOccurrence([]*Alarm{a}, monday(7, 0))
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if want := monday(7, 0).AddDate(0, 0, 7); !occ.FiresAt.Equal(want) {
		t.Errorf("FiresAt = %v, want next week %v", occ.FiresAt, want)
	}
}

func TestNextOccurrence_EarlierTimeWinsRegardlessOfOrder(t *testing.T) {
	early := alarm("early", []int{1}, "08:00", true)
	late := alarm("late", []int{1}, "09:00", true)

	for _, alarms := range [][]*Alarm{{early, late}, {late, early}} {
		occ, ok := NextOccurrence(alarms, monday(6, 0))
		if !ok {
			t.Fatal("expected an occurrence")
		}
		if occ.Alarm.ID != "early" {
			t.Errorf("Alarm.ID = %s, want early", occ.Alarm.ID)
		}
	}
}

func TestNextOccurrence_ExactTieKeepsFirstScanned(t *testing.T) {
	a := alarm("a", []int{1}, "08:00", true)
	b := alarm("b", []int{1}, "08:00", true)

	occ, ok := NextOccurrence([]*Alarm{a, b}, monday(6, 0))
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if occ.Alarm.ID != "a" {
		t.Errorf("Alarm.ID = %s, want first-scanned a", occ.Alarm.ID)
	}
}

func TestNextOccurrence_None(t *testing.T) {
	tests := []struct {
		name   string
		alarms []*Alarm
	}{
		{"no alarms", nil},
		{"all disabled", []*Alarm{alarm("a", []int{1}, "07:00", false)}},
		{"empty day set", []*Alarm{alarm("a", nil, "07:00", true)}},
		{"malformed time", []*Alarm{alarm("a", []int{1}, "7 o'clock", true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := NextOccurrence(tt.alarms, monday(6, 0)); ok {
				t.Error("expected no occurrence")
			}
		})
	}
}

func TestNextOccurrence_PicksNearestScheduledDay(t *testing.T) {
	// Wednesday (3) and Friday (5); evaluated Monday -> Wednesday wins.
	a := alarm("a", []int{5, 3}, "07:00", true)

	occ, ok := NextOccurrence([]*Alarm{a}, monday(12, 0))
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if want := monday(7, 0).AddDate(0, 0, 2); !occ.FiresAt.Equal(want) {
		t.Errorf("FiresAt = %v, want Wednesday %v", occ.FiresAt, want)
	}
}

func TestNextOccurrence_AlwaysStrictlyInFuture(t *testing.T) {
	alarms := []*Alarm{
		alarm("a", []int{0, 2, 4}, "06:30", true),
		alarm("b", []int{1, 3, 5, 6}, "22:15", true),
	}

	now := monday(0, 0)
	for i := 0; i < 14*24; i++ {
		occ, ok := NextOccurrence(alarms, now)
		if !ok {
			t.Fatalf("expected an occurrence at %v", now)
		}
		if !occ.FiresAt.After(now) {
			t.Fatalf("FiresAt %v not after now %v", occ.FiresAt, now)
		}
		now = now.Add(time.Hour)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"07:00", 7, 0, false},
		{"23:59", 23, 59, false},
		{"00:00", 0, 0, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"1200", 0, 0, true},
		{"", 0, 0, true},
		{"aa:bb", 0, 0, true},
	}

	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (h != tt.hour || m != tt.minute) {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.hour, tt.minute)
		}
	}
}

func TestAlarmValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Alarm)
		wantErr bool
	}{
		{"valid", func(a *Alarm) {}, false},
		{"missing video", func(a *Alarm) { a.VideoID = "" }, true},
		{"empty day set", func(a *Alarm) { a.DaysOfWeek = nil }, true},
		{"day out of range", func(a *Alarm) { a.DaysOfWeek = []int{7} }, true},
		{"negative day", func(a *Alarm) { a.DaysOfWeek = []int{-1} }, true},
		{"bad time", func(a *Alarm) { a.Time = "25:00" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := alarm("a", []int{1, 3}, "07:30", true)
			tt.mutate(a)
			if err := a.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
