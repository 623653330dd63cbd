package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/auth"
	"github.com/keyurgolani/PrenatalLearning-sub004/internal/domain"
	"github.com/keyurgolani/PrenatalLearning-sub004/internal/persistence/memory"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func authedRequest(method, target string, body string, scopes ...string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	scopeSet := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		scopeSet[s] = struct{}{}
	}
	claims := &auth.Claims{
		Subject:   "learner-1",
		Scopes:    scopeSet,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}

func TestRecordActivitySuccess(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	store := memory.NewStore()
	service := domain.NewService(store, domain.WithClock(fixedClock(now)))
	handler := NewHandler(service)

	req := authedRequest(http.MethodPost, "/v1/streaks/activities",
		`{"activity_type":"story-completion","reference_id":"story-42"}`,
		auth.ScopeStreaksWrite)

	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp StreakUpdateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CurrentStreak != 1 {
		t.Fatalf("expected current streak 1 got %d", resp.CurrentStreak)
	}
	if resp.LongestStreak != 1 {
		t.Fatalf("expected longest streak 1 got %d", resp.LongestStreak)
	}
	if resp.IsNewMilestone {
		t.Fatalf("first activity should not be a milestone")
	}

	events := store.Events()
	if len(events) != 1 || events[0].Type != domain.EventStreakUpdated {
		t.Fatalf("expected a single streak.updated event, got %v", events)
	}
}

func TestRecordActivityRejectsUnknownType(t *testing.T) {
	service := domain.NewService(memory.NewStore())
	handler := NewHandler(service)

	req := authedRequest(http.MethodPost, "/v1/streaks/activities",
		`{"activity_type":"napping"}`, auth.ScopeStreaksWrite)

	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestRecordActivityRequiresWriteScope(t *testing.T) {
	service := domain.NewService(memory.NewStore())
	handler := NewHandler(service)

	req := authedRequest(http.MethodPost, "/v1/streaks/activities",
		`{"activity_type":"story-completion"}`, auth.ScopeStreaksRead)

	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rr.Code)
	}
}

func TestCurrentStreakEmptyRecord(t *testing.T) {
	service := domain.NewService(memory.NewStore())
	handler := NewHandler(service)

	req := authedRequest(http.MethodGet, "/v1/streaks/current", "", auth.ScopeStreaksRead)
	rr := httptest.NewRecorder()
	handler.currentStreak(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var resp CurrentStreakResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CurrentStreak != 0 {
		t.Fatalf("expected streak 0 got %d", resp.CurrentStreak)
	}
}

func TestActivityCalendarValidatesMonth(t *testing.T) {
	service := domain.NewService(memory.NewStore())
	handler := NewHandler(service)

	req := authedRequest(http.MethodGet, "/v1/streaks/calendar?year=2024&month=13", "", auth.ScopeStreaksRead)
	rr := httptest.NewRecorder()
	handler.activityCalendar(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestActivityCalendarReturnsRecordedDays(t *testing.T) {
	now := time.Date(2024, time.February, 3, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	service := domain.NewService(store, domain.WithClock(fixedClock(now)))
	handler := NewHandler(service)

	recordReq := authedRequest(http.MethodPost, "/v1/streaks/activities",
		`{"activity_type":"journal-entry"}`, auth.ScopeStreaksWrite)
	handler.activities(httptest.NewRecorder(), recordReq)

	req := authedRequest(http.MethodGet, "/v1/streaks/calendar?year=2024&month=2", "", auth.ScopeStreaksRead)
	rr := httptest.NewRecorder()
	handler.activityCalendar(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var resp ActivityCalendarResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Days) != 1 {
		t.Fatalf("expected 1 day got %d", len(resp.Days))
	}
	if resp.Days[0].Date != "2024-02-03" {
		t.Fatalf("unexpected date %s", resp.Days[0].Date)
	}
	if resp.Days[0].ActivityCount != 1 {
		t.Fatalf("expected count 1 got %d", resp.Days[0].ActivityCount)
	}
}

func TestActivityLogRejectsBadCursor(t *testing.T) {
	service := domain.NewService(memory.NewStore())
	handler := NewHandler(service)

	req := authedRequest(http.MethodGet, "/v1/streaks/log?cursor=%25notbase64", "", auth.ScopeStreaksRead)
	rr := httptest.NewRecorder()
	handler.activityLog(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestReadEndpointsRequireClaims(t *testing.T) {
	service := domain.NewService(memory.NewStore())
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/v1/streaks/stats", nil)
	rr := httptest.NewRecorder()
	handler.streakStats(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}
