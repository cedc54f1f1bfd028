package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseServeMonthBounds_NoFlagsUsesCurrentMonth(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)
	bounds, err := parseServeMonthBounds("", "", now)
	if err != nil {
		t.Fatalf("parse bounds: %v", err)
	}
	if got := bounds.defaultMonth.String(); got != "2025-11" {
		t.Fatalf("expected default month 2025-11, got %q", got)
	}
}

func TestParseServeMonthBounds_ClampsWhenNowOutsideRange(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)

	futureBounds, err := parseServeMonthBounds("2026-01", "", now)
	if err != nil {
		t.Fatalf("parse future bounds: %v", err)
	}
	if got := futureBounds.defaultMonth.String(); got != "2026-01" {
		t.Fatalf("expected future clamp 2026-01, got %q", got)
	}

	pastBounds, err := parseServeMonthBounds("", "2025-09", now)
	if err != nil {
		t.Fatalf("parse past bounds: %v", err)
	}
	if got := pastBounds.defaultMonth.String(); got != "2025-09" {
		t.Fatalf("expected past clamp 2025-09, got %q", got)
	}
}

func TestParseServeMonthBounds_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)
	if _, err := parseServeMonthBounds("2025-13", "", now); err == nil {
		t.Fatalf("expected error for invalid --from month")
	}
	if _, err := parseServeMonthBounds("2025-10", "2025-09", now); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

func TestWithServeMonthRedirect(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	bounds, err := parseServeMonthBounds("", "", now)
	if err != nil {
		t.Fatalf("parse bounds: %v", err)
	}

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusNoContent)
	})
	handler := withServeMonthRedirect(next, "demo_user_1", bounds)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusFound {
		t.Fatalf("expected redirect status, got %d", res.Code)
	}
	if got := res.Header().Get("Location"); got != "/users/demo_user_1/month/2026-03" {
		t.Fatalf("unexpected redirect target: %q", got)
	}
	if nextCalled {
		t.Fatalf("expected wrapper to intercept root redirect")
	}

	shareReq := httptest.NewRequest(http.MethodGet, "/?share=abc", nil)
	shareRes := httptest.NewRecorder()
	handler.ServeHTTP(shareRes, shareReq)
	if shareRes.Code != http.StatusNoContent || !nextCalled {
		t.Fatalf("expected shared report link to pass through, got %d", shareRes.Code)
	}
}

func TestWithServeMonthRedirect_NoUserPassesThrough(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := withServeMonthRedirect(next, "", serveMonthBounds{})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	if res.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", res.Code)
	}
}
