package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Kim-wonder/routineon/internal/domain"
	"github.com/Kim-wonder/routineon/internal/index"
	"github.com/Kim-wonder/routineon/internal/logger"
)

type stubSender struct {
	sends chan string // titles, in emission order
}

func newStubSender() *stubSender {
	return &stubSender{sends: make(chan string, 16)}
}

func (s *stubSender) Send(_ context.Context, title, _ string, _ map[string]string) error {
	s.sends <- title
	return nil
}

type stubHistory struct {
	mu      sync.Mutex
	records []*domain.HistoryRecord
}

func (h *stubHistory) AppendHistory(_ context.Context, record *domain.HistoryRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *stubHistory) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// failingHistory rejects the first failuresLeft appends, then delegates.
type failingHistory struct {
	stubHistory
	failuresLeft int
}

func (h *failingHistory) AppendHistory(ctx context.Context, record *domain.HistoryRecord) error {
	if h.failuresLeft > 0 {
		h.failuresLeft--
		return errors.New("history unavailable")
	}
	return h.stubHistory.AppendHistory(ctx, record)
}

// 2024-01-01 is a Monday. The test alarm fires Mondays at 07:00 and "now"
// sits 30 seconds before that, inside the trigger window.
var (
	testFiresAt = time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	testNow     = testFiresAt.Add(-30 * time.Second)
)

func testEngine(t *testing.T, sender *stubSender, history HistoryAppender, withVideo bool) *Engine {
	t.Helper()

	idx := index.NewMemoryIndex()
	idx.PutAlarm(&domain.Alarm{
		ID:         "a1",
		VideoID:    "abc12345678",
		Title:      "Morning Stretch",
		DaysOfWeek: []int{1},
		Time:       "07:00",
		Enabled:    true,
	})
	if withVideo {
		idx.PutVideo(&domain.Video{ID: "abc12345678", Title: "Full Body 10min"})
	}

	opts := Options{
		PollInterval:  time.Hour, // ticks are driven manually in tests
		TriggerWindow: time.Minute,
		RetryInterval: 15 * time.Millisecond,
		MaxRetries:    3,
		TimeNow:       func() time.Time { return testNow },
	}

	// A typed nil inside the interface would defeat the sender == nil check.
	if sender == nil {
		return NewEngine(idx, history, nil, logger.New("error", false), opts)
	}
	return NewEngine(idx, history, sender, logger.New("error", false), opts)
}

func waitSend(t *testing.T, sender *stubSender) string {
	t.Helper()
	select {
	case title := <-sender.sends:
		return title
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a notification")
		return ""
	}
}

func expectNoSend(t *testing.T, sender *stubSender, within time.Duration) {
	t.Helper()
	select {
	case title := <-sender.sends:
		t.Fatalf("unexpected notification %q", title)
	case <-time.After(within):
	}
}

func TestEngine_TriggerThenRetryUntilExhausted(t *testing.T) {
	sender := newStubSender()
	history := &stubHistory{}
	e := testEngine(t, sender, history, true)

	e.tick(context.Background())

	// Initial emission plus exactly three retries.
	for i := 0; i < 4; i++ {
		waitSend(t, sender)
	}
	expectNoSend(t, sender, 100*time.Millisecond)

	// Back to idle, nothing recorded.
	if _, ok := e.Current(); ok {
		t.Error("engine should be idle after exhaustion")
	}
	if history.count() != 0 {
		t.Errorf("history has %d records, want 0", history.count())
	}
}

func TestEngine_SameOccurrenceNotRetriggered(t *testing.T) {
	sender := newStubSender()
	e := testEngine(t, sender, &stubHistory{}, true)

	ctx := context.Background()
	e.tick(ctx)
	for i := 0; i < 4; i++ {
		waitSend(t, sender)
	}

	// Exhausted; the same occurrence must stay handled.
	e.tick(ctx)
	expectNoSend(t, sender, 100*time.Millisecond)
}

func TestEngine_AcknowledgeCancelsRetriesAndRecordsHistory(t *testing.T) {
	sender := newStubSender()
	history := &stubHistory{}
	e := testEngine(t, sender, history, true)

	e.tick(context.Background())
	waitSend(t, sender)

	snap, err := e.Acknowledge(context.Background())
	if err != nil {
		t.Fatalf("Acknowledge failed: %v", err)
	}
	if snap.Alarm.ID != "a1" {
		t.Errorf("acknowledged alarm = %s, want a1", snap.Alarm.ID)
	}

	expectNoSend(t, sender, 100*time.Millisecond)

	if history.count() != 1 {
		t.Fatalf("history has %d records, want 1", history.count())
	}
	record := history.records[0]
	if record.AlarmID != "a1" {
		t.Errorf("record.AlarmID = %s", record.AlarmID)
	}
	if record.Date != testNow.Format(domain.HistoryDateLayout) {
		t.Errorf("record.Date = %s", record.Date)
	}
	if record.Timestamp != testNow.UnixMilli() {
		t.Errorf("record.Timestamp = %d", record.Timestamp)
	}

	if _, err := e.Acknowledge(context.Background()); err != ErrNoActiveReminder {
		t.Errorf("second Acknowledge err = %v, want ErrNoActiveReminder", err)
	}
}

func TestEngine_AcknowledgeRetriesAfterHistoryFailure(t *testing.T) {
	sender := newStubSender()
	history := &failingHistory{failuresLeft: 1}
	e := testEngine(t, sender, history, true)
	// Keep the cascade from exhausting while the ack is retried.
	e.opts.RetryInterval = time.Hour

	e.tick(context.Background())
	waitSend(t, sender)

	if _, err := e.Acknowledge(context.Background()); err == nil {
		t.Fatal("expected the first Acknowledge to fail")
	}
	// The reminder stays active so the acknowledgment can be retried.
	if _, ok := e.Current(); !ok {
		t.Fatal("reminder should remain active after a failed acknowledgment")
	}
	if history.count() != 0 {
		t.Fatalf("history has %d records after a failed append, want 0", history.count())
	}

	if _, err := e.Acknowledge(context.Background()); err != nil {
		t.Fatalf("retried Acknowledge failed: %v", err)
	}
	if history.count() != 1 {
		t.Errorf("history has %d records, want 1", history.count())
	}
	if _, ok := e.Current(); ok {
		t.Error("engine should be idle after a successful acknowledgment")
	}
}

func TestEngine_DismissSkipsHistory(t *testing.T) {
	sender := newStubSender()
	history := &stubHistory{}
	e := testEngine(t, sender, history, true)

	e.tick(context.Background())
	waitSend(t, sender)

	if _, err := e.Dismiss(); err != nil {
		t.Fatalf("Dismiss failed: %v", err)
	}
	expectNoSend(t, sender, 100*time.Millisecond)
	if history.count() != 0 {
		t.Errorf("history has %d records, want 0", history.count())
	}
}

func TestEngine_NoTriggerOutsideWindow(t *testing.T) {
	sender := newStubSender()
	e := testEngine(t, sender, &stubHistory{}, true)
	// Move "now" well before the fire time.
	e.opts.TimeNow = func() time.Time { return testFiresAt.Add(-time.Hour) }

	e.tick(context.Background())
	expectNoSend(t, sender, 50*time.Millisecond)
	if _, ok := e.Current(); ok {
		t.Error("engine should stay idle outside the trigger window")
	}
}

func TestEngine_MissingVideoIsNonFatal(t *testing.T) {
	sender := newStubSender()
	e := testEngine(t, sender, &stubHistory{}, false)

	e.tick(context.Background())
	waitSend(t, sender)

	snap, ok := e.Current()
	if !ok {
		t.Fatal("expected an active reminder")
	}
	if snap.Video != nil {
		t.Error("expected a nil video on the snapshot")
	}
	if snap.Message == "" {
		t.Error("expected a reminder message")
	}
}

func TestEngine_InAppOnlyWithoutSender(t *testing.T) {
	e := testEngine(t, nil, &stubHistory{}, true)

	e.tick(context.Background())

	snap, ok := e.Current()
	if !ok {
		t.Fatal("expected an active in-app reminder")
	}
	if snap.Alarm.ID != "a1" {
		t.Errorf("Alarm.ID = %s", snap.Alarm.ID)
	}
	if _, err := e.Dismiss(); err != nil {
		t.Fatalf("Dismiss failed: %v", err)
	}
}
