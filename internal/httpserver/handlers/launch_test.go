package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Kim-wonder/routineon/internal/deeplink"
	"github.com/Kim-wonder/routineon/internal/domain"
)

func TestLaunch(t *testing.T) {
	d := testDeps()
	d.MemoryIndex.PutVideo(&domain.Video{ID: "abc12345678"})

	r := chi.NewRouter()
	r.Get("/api/launch/{videoID}", Launch(d))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/launch/abc12345678", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var plan deeplink.Plan
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode plan: %v", err)
	}
	if plan.NativeURL != "youtube://watch?v=abc12345678" {
		t.Fatalf("unexpected native URL: %s", plan.NativeURL)
	}
	if plan.WebURL != "https://www.youtube.com/watch?v=abc12345678" {
		t.Fatalf("unexpected web URL: %s", plan.WebURL)
	}
	if plan.FallbackAfterMS != 1000 {
		t.Fatalf("unexpected fallback delay: %d", plan.FallbackAfterMS)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/launch/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
