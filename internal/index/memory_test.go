package index

import (
	"testing"

	"github.com/Kim-wonder/routineon/internal/domain"
)

func TestMemoryIndex_AlarmLifecycle(t *testing.T) {
	idx := NewMemoryIndex()

	alarm := &domain.Alarm{
		ID:         "a1",
		VideoID:    "abc12345678",
		DaysOfWeek: []int{1, 3, 5},
		Time:       "07:00",
		Enabled:    true,
	}
	idx.PutAlarm(alarm)

	got, ok := idx.Alarm("a1")
	if !ok {
		t.Fatal("alarm not found after PutAlarm")
	}
	if got.Time != "07:00" || !got.Enabled {
		t.Errorf("unexpected alarm: %+v", got)
	}
	if idx.AlarmCount() != 1 {
		t.Errorf("AlarmCount = %d, want 1", idx.AlarmCount())
	}

	// Replacing under the same id keeps a single entry.
	updated := *alarm
	updated.Enabled = false
	idx.PutAlarm(&updated)
	got, _ = idx.Alarm("a1")
	if got.Enabled {
		t.Error("expected replacement to be visible")
	}
	if idx.AlarmCount() != 1 {
		t.Errorf("AlarmCount = %d, want 1", idx.AlarmCount())
	}

	idx.DeleteAlarm("a1")
	if _, ok := idx.Alarm("a1"); ok {
		t.Error("alarm still present after delete")
	}
}

func TestMemoryIndex_ReplaceAll(t *testing.T) {
	idx := NewMemoryIndex()
	idx.PutAlarm(&domain.Alarm{ID: "stale"})

	alarms := []*domain.Alarm{{ID: "a1"}, {ID: "a2"}}
	videos := []*domain.Video{{ID: "v1"}}
	idx.ReplaceAll(alarms, videos)

	if idx.AlarmCount() != 2 {
		t.Errorf("AlarmCount = %d, want 2", idx.AlarmCount())
	}
	if _, ok := idx.Alarm("stale"); ok {
		t.Error("stale alarm survived ReplaceAll")
	}
	if _, ok := idx.Video("v1"); !ok {
		t.Error("video missing after ReplaceAll")
	}
	if idx.LastSync().IsZero() {
		t.Error("LastSync not updated")
	}
}

func TestMemoryIndex_MissingVideoIsNotAnError(t *testing.T) {
	idx := NewMemoryIndex()

	if _, ok := idx.Video("gone"); ok {
		t.Error("expected a miss for an unknown video")
	}
	if got := idx.AllVideos(); len(got) != 0 {
		t.Errorf("AllVideos = %d entries, want 0", len(got))
	}
}
