package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kim-wonder/routineon/internal/domain"
	"github.com/Kim-wonder/routineon/internal/index"
	"github.com/Kim-wonder/routineon/internal/logger"
	"github.com/Kim-wonder/routineon/internal/push"
)

const (
	// DefaultPollInterval is how often the engine recomputes the next occurrence.
	DefaultPollInterval = 30 * time.Second
	// DefaultTriggerWindow is the span before an occurrence during which the
	// engine fires the reminder.
	DefaultTriggerWindow = time.Minute
	// DefaultRetryInterval is the spacing between re-notifications.
	DefaultRetryInterval = 5 * time.Minute
	// DefaultMaxRetries is how many re-notifications follow the initial one.
	DefaultMaxRetries = 3

	reminderMessage = "Time to work out 💪 Ready to start?"
)

// ErrNoActiveReminder is returned when there is nothing to acknowledge.
var ErrNoActiveReminder = errors.New("no active reminder")

// HistoryAppender records acknowledged reminders. Satisfied by the Redis store.
type HistoryAppender interface {
	AppendHistory(ctx context.Context, record *domain.HistoryRecord) error
}

// Options tune the engine's timers. Zero values select the defaults.
type Options struct {
	PollInterval  time.Duration
	TriggerWindow time.Duration
	RetryInterval time.Duration
	MaxRetries    int
	TimeNow       func() time.Time // for testing, defaults to time.Now
}

func (o *Options) fill() {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.TriggerWindow <= 0 {
		o.TriggerWindow = DefaultTriggerWindow
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = DefaultRetryInterval
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.TimeNow == nil {
		o.TimeNow = time.Now
	}
}

// reminder is one surfaced occurrence and its retry state. The cancel
// channel is the occurrence's own cancellation token: closing it stops the
// retry cascade for this occurrence and nothing else.
type reminder struct {
	alarm      *domain.Alarm
	video      *domain.Video // nil when the lookup failed; non-fatal
	firesAt    time.Time
	retryCount int
	cancel     chan struct{}
}

// Snapshot is the in-app view of the active reminder.
type Snapshot struct {
	Alarm      *domain.Alarm `json:"alarm"`
	Video      *domain.Video `json:"video,omitempty"`
	Message    string        `json:"message"`
	FiresAt    time.Time     `json:"firesAt"`
	RetryCount int           `json:"retryCount"`
}

// Engine polls the alarm index, surfaces reminders when an occurrence comes
// due, and drives the bounded retry cascade until the user acknowledges or
// the retries are exhausted.
//
// At most one reminder is active at a time. A missed reminder is not
// re-surfaced until its next natural occurrence.
type Engine struct {
	index   *index.MemoryIndex
	history HistoryAppender
	sender  push.Sender // nil = in-app presentation only
	logger  logger.Logger
	opts    Options

	mu          sync.Mutex
	active      *reminder
	lastHandled time.Time // FiresAt of the most recently triggered occurrence

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewEngine creates a notification engine. sender may be nil, in which case
// reminders are in-app only.
func NewEngine(
	idx *index.MemoryIndex,
	history HistoryAppender,
	sender push.Sender,
	log logger.Logger,
	opts Options,
) *Engine {
	opts.fill()
	return &Engine{
		index:   idx,
		history: history,
		sender:  sender,
		logger:  log,
		opts:    opts,
		stopCh:  make(chan struct{}),
	}
}

// Start begins the polling loop. The loop stops when ctx is done or Stop is
// called; both timers (poll and retry) are torn down with it.
func (e *Engine) Start(ctx context.Context) error {
	ticker := time.NewTicker(e.opts.PollInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.tick(ctx)
			case <-e.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	e.logger.Info("notification engine started",
		logger.Duration("poll_interval", e.opts.PollInterval),
		logger.Duration("trigger_window", e.opts.TriggerWindow),
		logger.Bool("push_enabled", e.sender != nil))

	return nil
}

// Stop stops the polling loop and any in-flight retry cascade.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
}

// PushEnabled reports whether a push channel is configured.
func (e *Engine) PushEnabled() bool {
	return e.sender != nil
}

// tick recomputes the next occurrence and triggers when it falls inside the
// window. The computation is never cached: "next" moves with the clock.
func (e *Engine) tick(ctx context.Context) {
	now := e.opts.TimeNow()
	occ, ok := domain.NextOccurrence(e.index.AllAlarms(), now)
	if !ok {
		return
	}

	gap := occ.FiresAt.Sub(now)
	if gap <= 0 || gap >= e.opts.TriggerWindow {
		return
	}

	e.mu.Lock()
	if e.active != nil || occ.FiresAt.Equal(e.lastHandled) {
		e.mu.Unlock()
		return
	}

	video, found := e.index.Video(occ.Alarm.VideoID)
	if !found {
		// Show the reminder anyway, without title/thumbnail.
		e.logger.Warn("reminder video not found",
			logger.String("alarm_id", occ.Alarm.ID),
			logger.String("video_id", occ.Alarm.VideoID))
		video = nil
	}

	rem := &reminder{
		alarm:   occ.Alarm,
		video:   video,
		firesAt: occ.FiresAt,
		cancel:  make(chan struct{}),
	}
	e.active = rem
	e.lastHandled = occ.FiresAt
	e.mu.Unlock()

	e.logger.Info("reminder triggered",
		logger.String("alarm_id", rem.alarm.ID),
		logger.Time("fires_at", rem.firesAt))

	e.emit(ctx, rem)
	go e.retryLoop(ctx, rem)
}

// emit sends one notification for the reminder. Push failure and push
// absence both degrade to in-app only.
func (e *Engine) emit(ctx context.Context, rem *reminder) {
	if e.sender == nil {
		return
	}

	title := rem.alarm.Title
	if title == "" && rem.video != nil {
		title = rem.video.Title
	}
	if title == "" {
		title = "Workout reminder"
	}

	data := map[string]string{
		"alarmId": rem.alarm.ID,
		"videoId": rem.alarm.VideoID,
	}
	if err := e.sender.Send(ctx, title, reminderMessage, data); err != nil {
		e.logger.Warn("push delivery failed, reminder remains in-app",
			logger.String("alarm_id", rem.alarm.ID),
			logger.Error(err))
	}
}

// retryLoop re-emits the reminder up to MaxRetries times, then gives up and
// returns the engine to idle. The loop belongs to exactly one occurrence;
// acknowledging or dismissing closes its cancel channel.
func (e *Engine) retryLoop(ctx context.Context, rem *reminder) {
	for attempt := 1; attempt <= e.opts.MaxRetries; attempt++ {
		timer := time.NewTimer(e.opts.RetryInterval)
		select {
		case <-rem.cancel:
			timer.Stop()
			return
		case <-e.stopCh:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		e.mu.Lock()
		if e.active != rem {
			e.mu.Unlock()
			return
		}
		rem.retryCount = attempt
		e.mu.Unlock()

		e.logger.Info("reminder retry",
			logger.String("alarm_id", rem.alarm.ID),
			logger.Int("attempt", attempt))
		e.emit(ctx, rem)
	}

	e.mu.Lock()
	if e.active == rem {
		e.active = nil
	}
	e.mu.Unlock()

	e.logger.Info("reminder exhausted without acknowledgment",
		logger.String("alarm_id", rem.alarm.ID),
		logger.Int("retries", e.opts.MaxRetries))
}

// Current returns the active reminder, if any.
func (e *Engine) Current() (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return Snapshot{}, false
	}
	return Snapshot{
		Alarm:      e.active.alarm,
		Video:      e.active.video,
		Message:    reminderMessage,
		FiresAt:    e.active.firesAt,
		RetryCount: e.active.retryCount,
	}, true
}

// Acknowledge records a history entry for the active occurrence and then
// cancels the pending retries. The record is written first: if it fails the
// reminder stays active, so the acknowledgment can be retried instead of
// silently losing the completion.
func (e *Engine) Acknowledge(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	rem := e.active
	e.mu.Unlock()
	if rem == nil {
		return Snapshot{}, ErrNoActiveReminder
	}

	now := e.opts.TimeNow()
	record := domain.NewHistoryRecord(uuid.NewString(), rem.alarm.ID, now)
	if err := e.history.AppendHistory(ctx, record); err != nil {
		e.logger.Error("failed to record reminder acknowledgment",
			logger.String("alarm_id", rem.alarm.ID),
			logger.Error(err))
		return Snapshot{}, fmt.Errorf("failed to record acknowledgment: %w", err)
	}

	e.mu.Lock()
	// The cascade may have exhausted while the record was being written;
	// the history entry stands either way.
	if e.active == rem {
		close(rem.cancel)
		e.active = nil
	}
	snap := Snapshot{
		Alarm:      rem.alarm,
		Video:      rem.video,
		Message:    reminderMessage,
		FiresAt:    rem.firesAt,
		RetryCount: rem.retryCount,
	}
	e.mu.Unlock()

	e.logger.Info("reminder acknowledged",
		logger.String("alarm_id", rem.alarm.ID),
		logger.Int("retries_used", snap.RetryCount))

	return snap, nil
}

// Dismiss cancels the pending retries without recording history.
func (e *Engine) Dismiss() (Snapshot, error) {
	snap, rem, err := e.clearActive()
	if err != nil {
		return Snapshot{}, err
	}

	e.logger.Info("reminder dismissed",
		logger.String("alarm_id", rem.alarm.ID))

	return snap, nil
}

func (e *Engine) clearActive() (Snapshot, *reminder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rem := e.active
	if rem == nil {
		return Snapshot{}, nil, ErrNoActiveReminder
	}
	close(rem.cancel)
	e.active = nil

	return Snapshot{
		Alarm:      rem.alarm,
		Video:      rem.video,
		Message:    reminderMessage,
		FiresAt:    rem.firesAt,
		RetryCount: rem.retryCount,
	}, rem, nil
}
