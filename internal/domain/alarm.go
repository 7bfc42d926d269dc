package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Alarm is a recurring schedule (weekdays + time of day) bound to one video.
//
// JSON field names match the original client storage format so that blobs
// written by older app versions keep loading unchanged.
type Alarm struct {
	// ID is the canonical unique identifier, generated at creation.
	ID string `json:"alarmId"`

	// VideoID references a Video. The reference is not enforced to exist;
	// readers fall back to display defaults when the video is gone.
	VideoID string `json:"videoId"`

	// Title is an optional user-facing label.
	Title string `json:"title,omitempty"`

	// DaysOfWeek holds weekday indices, 0=Sunday .. 6=Saturday.
	// Order is irrelevant and duplicates are meaningless.
	// An empty set makes the alarm unreachable by the scheduler.
	DaysOfWeek []int `json:"daysOfWeek"`

	// Time is the local time of day in "HH:MM" form, no seconds.
	Time string `json:"time"`

	// Enabled gates scheduling. Toggling it is the most frequent mutation.
	Enabled bool `json:"enabled"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Clock parses the alarm's Time field into hour and minute.
func (a *Alarm) Clock() (hour, minute int, err error) {
	return ParseClock(a.Time)
}

// FiresOn reports whether the alarm's day set contains the given weekday.
func (a *Alarm) FiresOn(day time.Weekday) bool {
	for _, d := range a.DaysOfWeek {
		if d == int(day) {
			return true
		}
	}
	return false
}

// ParseClock parses a "HH:MM" time-of-day string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// Validate checks the fields a user can set. It does not check that the
// referenced video exists; readers tolerate dangling references.
func (a *Alarm) Validate() error {
	if a.VideoID == "" {
		return fmt.Errorf("alarm %s: videoId is required", a.ID)
	}
	if len(a.DaysOfWeek) == 0 {
		return fmt.Errorf("alarm %s: at least one weekday is required", a.ID)
	}
	for _, d := range a.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("alarm %s: weekday %d out of range 0..6", a.ID, d)
		}
	}
	if _, _, err := a.Clock(); err != nil {
		return fmt.Errorf("alarm %s: %w", a.ID, err)
	}
	return nil
}
