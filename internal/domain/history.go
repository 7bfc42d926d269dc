package domain

import "time"

// HistoryDateLayout is the layout of HistoryRecord.Date.
const HistoryDateLayout = "2006-01-02"

// HistoryRecord marks that the user acted on a reminder. Records are
// append-only: they are created when a reminder is acknowledged and never
// mutated afterwards. The AlarmID reference may dangle once the alarm is
// deleted; readers tolerate that.
type HistoryRecord struct {
	ID      string `json:"id"`
	AlarmID string `json:"alarmId"`

	// Date is the local calendar day of the acknowledgment, "2006-01-02".
	Date string `json:"date"`

	// Timestamp is the acknowledgment instant in epoch milliseconds,
	// matching the original client storage format.
	Timestamp int64 `json:"timestamp"`
}

// NewHistoryRecord builds a record for an acknowledgment at the given time.
func NewHistoryRecord(id, alarmID string, at time.Time) *HistoryRecord {
	return &HistoryRecord{
		ID:        id,
		AlarmID:   alarmID,
		Date:      at.Format(HistoryDateLayout),
		Timestamp: at.UnixMilli(),
	}
}
