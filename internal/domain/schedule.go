package domain

import "time"

// Occurrence is a concrete next firing instant computed from an Alarm and
// the current time.
type Occurrence struct {
	Alarm   *Alarm
	FiresAt time.Time
}

// NextOccurrence computes which enabled alarm fires next and when, relative
// to now's local day. It is a pure function: no side effects, deterministic
// given now and the alarm set. Callers must re-evaluate it on every poll
// tick rather than cache the result, since "next" moves with the clock.
//
// For each enabled alarm the next 7 calendar days are scanned (offsets 0..6
// inclusive). A candidate on day 0 that is not strictly after now is
// discarded: an alarm whose time today has already passed is not retried
// until its next scheduled day. Across all alarms the earliest candidate
// wins; exact ties keep the first-scanned alarm.
//
// Returns false when no enabled alarm has a valid candidate, which only
// happens when every enabled alarm has an empty day set or an unparseable
// time. Alarms with malformed times are skipped, never an error.
func NextOccurrence(alarms []*Alarm, now time.Time) (Occurrence, bool) {
	var best Occurrence

	year, month, day := now.Date()
	loc := now.Location()

	for _, alarm := range alarms {
		if !alarm.Enabled {
			continue
		}
		hour, minute, err := alarm.Clock()
		if err != nil {
			continue
		}

		for offset := 0; offset < 7; offset++ {
			candidate := time.Date(year, month, day+offset, hour, minute, 0, 0, loc)
			if !alarm.FiresOn(candidate.Weekday()) {
				continue
			}
			if offset == 0 && !candidate.After(now) {
				continue
			}
			if best.Alarm == nil || candidate.Before(best.FiresAt) {
				best = Occurrence{Alarm: alarm, FiresAt: candidate}
			}
			// Later offsets for this alarm can only be later in time.
			break
		}
	}

	return best, best.Alarm != nil
}
