package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Kim-wonder/routineon/internal/domain"
	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/index"
	"github.com/Kim-wonder/routineon/internal/logger"
)

// 2024-01-01 is a Monday.
var testNow = time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC)

// memStore implements deps.Store for handler tests.
type memStore struct {
	alarms  map[string]*domain.Alarm
	videos  map[string]*domain.Video
	history []*domain.HistoryRecord
}

func newMemStore() *memStore {
	return &memStore{
		alarms: make(map[string]*domain.Alarm),
		videos: make(map[string]*domain.Video),
	}
}

func (s *memStore) SaveAlarm(_ context.Context, alarm *domain.Alarm) error {
	cp := *alarm
	s.alarms[alarm.ID] = &cp
	return nil
}

func (s *memStore) DeleteAlarm(_ context.Context, id string) error {
	delete(s.alarms, id)
	return nil
}

func (s *memStore) SaveVideo(_ context.Context, video *domain.Video) error {
	cp := *video
	s.videos[video.ID] = &cp
	return nil
}

func (s *memStore) GetHistory(_ context.Context) ([]*domain.HistoryRecord, error) {
	return s.history, nil
}

func testDeps() deps.Deps {
	return deps.Deps{
		Logger:      logger.New("error", false),
		MemoryIndex: index.NewMemoryIndex(),
		Validate:    validator.New(),
		TimeNow:     func() time.Time { return testNow },
	}
}

func alarmRouter(d deps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/alarms", ListAlarms(d))
	r.Post("/api/alarms", CreateAlarm(d))
	r.Get("/api/alarms/next", NextAlarm(d))
	r.Get("/api/alarms/{alarmID}", GetAlarm(d))
	r.Patch("/api/alarms/{alarmID}", UpdateAlarm(d))
	r.Delete("/api/alarms/{alarmID}", DeleteAlarm(d))
	return r
}

func TestListAlarms(t *testing.T) {
	d := testDeps()
	d.MemoryIndex.PutAlarm(&domain.Alarm{
		ID: "a1", VideoID: "v1", DaysOfWeek: []int{1}, Time: "07:00", Enabled: true,
	})

	rec := httptest.NewRecorder()
	alarmRouter(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alarms", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var alarms []*domain.Alarm
	if err := json.NewDecoder(rec.Body).Decode(&alarms); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(alarms) != 1 || alarms[0].ID != "a1" {
		t.Fatalf("unexpected alarms: %+v", alarms)
	}
}

func TestGetAlarmNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	alarmRouter(testDeps()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alarms/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateAlarmRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing video", `{"daysOfWeek":[1],"time":"07:00"}`},
		{"empty days", `{"videoId":"v1","daysOfWeek":[],"time":"07:00"}`},
		{"day out of range", `{"videoId":"v1","daysOfWeek":[7],"time":"07:00"}`},
		{"malformed time", `{"videoId":"v1","daysOfWeek":[1],"time":"7am"}`},
		{"hour out of range", `{"videoId":"v1","daysOfWeek":[1],"time":"25:00"}`},
	}

	d := testDeps()
	r := alarmRouter(d)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/alarms", strings.NewReader(tt.body))
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if d.MemoryIndex.AlarmCount() != 0 {
				t.Fatal("rejected alarm must not reach the index")
			}
		})
	}
}

func TestCreateAlarmPersists(t *testing.T) {
	d := testDeps()
	ms := newMemStore()
	d.Store = ms

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/alarms",
		strings.NewReader(`{"videoId":"abc12345678","title":"Morning","daysOfWeek":[1,3,5],"time":"07:00"}`))
	alarmRouter(d).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created domain.Alarm
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated alarm id")
	}
	if !created.Enabled {
		t.Error("alarm should default to enabled")
	}
	if !created.CreatedAt.Equal(testNow) || !created.UpdatedAt.Equal(testNow) {
		t.Errorf("unexpected timestamps: %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	stored, ok := ms.alarms[created.ID]
	if !ok {
		t.Fatal("alarm not written to the store")
	}
	indexed, ok := d.MemoryIndex.Alarm(created.ID)
	if !ok {
		t.Fatal("alarm not written to the index")
	}
	if stored.Time != created.Time || indexed.Time != created.Time {
		t.Error("store, index and response disagree")
	}
}

func TestUpdateAlarmPartial(t *testing.T) {
	d := testDeps()
	ms := newMemStore()
	d.Store = ms

	seeded := &domain.Alarm{
		ID:         "a1",
		VideoID:    "abc12345678",
		Title:      "Morning",
		DaysOfWeek: []int{1, 3, 5},
		Time:       "07:00",
		Enabled:    true,
		CreatedAt:  testNow.Add(-24 * time.Hour),
		UpdatedAt:  testNow.Add(-24 * time.Hour),
	}
	d.MemoryIndex.PutAlarm(seeded)
	_ = ms.SaveAlarm(context.Background(), seeded)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/alarms/a1", strings.NewReader(`{"enabled":false}`))
	alarmRouter(d).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Only the patched field changes; everything else survives untouched.
	updated, ok := d.MemoryIndex.Alarm("a1")
	if !ok {
		t.Fatal("alarm missing from the index")
	}
	if updated.Enabled {
		t.Error("enabled should have been flipped to false")
	}
	if updated.VideoID != seeded.VideoID {
		t.Errorf("VideoID changed: %s", updated.VideoID)
	}
	if updated.Title != seeded.Title {
		t.Errorf("Title changed: %s", updated.Title)
	}
	if updated.Time != seeded.Time {
		t.Errorf("Time changed: %s", updated.Time)
	}
	if len(updated.DaysOfWeek) != len(seeded.DaysOfWeek) {
		t.Fatalf("DaysOfWeek changed: %v", updated.DaysOfWeek)
	}
	for i, day := range seeded.DaysOfWeek {
		if updated.DaysOfWeek[i] != day {
			t.Fatalf("DaysOfWeek changed: %v", updated.DaysOfWeek)
		}
	}
	if !updated.CreatedAt.Equal(seeded.CreatedAt) {
		t.Errorf("CreatedAt changed: %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(testNow) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, testNow)
	}

	// Save-then-get: the stored copy matches what a follow-up GET returns.
	stored, ok := ms.alarms["a1"]
	if !ok {
		t.Fatal("alarm missing from the store")
	}
	rec = httptest.NewRecorder()
	alarmRouter(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alarms/a1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", rec.Code)
	}
	var fetched domain.Alarm
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if fetched.Enabled != stored.Enabled || fetched.Time != stored.Time || fetched.VideoID != stored.VideoID {
		t.Errorf("get result diverged from store: %+v vs %+v", fetched, stored)
	}
}

func TestDeleteAlarmRemoves(t *testing.T) {
	d := testDeps()
	ms := newMemStore()
	d.Store = ms

	seeded := &domain.Alarm{
		ID: "a1", VideoID: "abc12345678", DaysOfWeek: []int{1}, Time: "07:00", Enabled: true,
	}
	d.MemoryIndex.PutAlarm(seeded)
	_ = ms.SaveAlarm(context.Background(), seeded)

	rec := httptest.NewRecorder()
	alarmRouter(d).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/alarms/a1", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, ok := ms.alarms["a1"]; ok {
		t.Error("alarm still in the store")
	}
	if _, ok := d.MemoryIndex.Alarm("a1"); ok {
		t.Error("alarm still in the index")
	}
}

func TestUpdateAlarmNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/alarms/missing", strings.NewReader(`{"enabled":false}`))
	alarmRouter(testDeps()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteAlarmNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	alarmRouter(testDeps()).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/alarms/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestNextAlarm(t *testing.T) {
	d := testDeps()
	r := alarmRouter(d)

	// Empty index: nothing scheduled.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alarms/next", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	d.MemoryIndex.PutAlarm(&domain.Alarm{
		ID: "a1", VideoID: "v1", DaysOfWeek: []int{1}, Time: "07:00", Enabled: true,
	})

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alarms/next", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp nextAlarmResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	if !resp.FiresAt.Equal(want) {
		t.Fatalf("expected firesAt %v, got %v", want, resp.FiresAt)
	}
	if resp.Alarm == nil || resp.Alarm.ID != "a1" {
		t.Fatalf("unexpected alarm in response: %+v", resp.Alarm)
	}
}
