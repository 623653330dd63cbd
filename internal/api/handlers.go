// Package api exposes HTTP handlers for the streak service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/auth"
	"github.com/keyurgolani/PrenatalLearning-sub004/internal/domain"
	"github.com/keyurgolani/PrenatalLearning-sub004/internal/persistence"
)

// Handler coordinates HTTP requests with the streak service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/streaks/activities", h.activities)
	mux.HandleFunc("/v1/streaks/current", h.currentStreak)
	mux.HandleFunc("/v1/streaks/longest", h.longestStreak)
	mux.HandleFunc("/v1/streaks/history", h.streakHistory)
	mux.HandleFunc("/v1/streaks/calendar", h.activityCalendar)
	mux.HandleFunc("/v1/streaks/stats", h.streakStats)
	mux.HandleFunc("/v1/streaks/log", h.activityLog)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeStreaksWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope streaks:write required")
		return
	}

	var req RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	update, err := h.service.RecordActivity(r.Context(), domain.RecordActivityInput{
		OwnerID:      claims.Subject,
		ActivityType: domain.ActivityType(req.ActivityType),
		ReferenceID:  req.ReferenceID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownActivityType) || errors.Is(err, domain.ErrInvalidOwnerID) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toStreakUpdateResponse(update))
}

func (h *Handler) currentStreak(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireRead(w, r)
	if !ok {
		return
	}

	streak, err := h.service.GetCurrentStreak(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CurrentStreakResponse{CurrentStreak: streak})
}

func (h *Handler) longestStreak(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireRead(w, r)
	if !ok {
		return
	}

	streak, err := h.service.GetLongestStreak(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, LongestStreakResponse{LongestStreak: streak})
}

func (h *Handler) streakHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireRead(w, r)
	if !ok {
		return
	}

	history, err := h.service.GetStreakHistory(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]StreakHistoryView, 0, len(history))
	for _, entry := range history {
		items = append(items, StreakHistoryView{
			StartDate: string(entry.StartDate),
			EndDate:   string(entry.EndDate),
			Length:    entry.Length,
		})
	}
	writeJSON(w, http.StatusOK, StreakHistoryResponse{Items: items})
}

func (h *Handler) activityCalendar(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireRead(w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing or invalid year parameter")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing or invalid month parameter")
		return
	}

	days, err := h.service.GetActivityCalendar(r.Context(), claims.Subject, year, time.Month(month))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	views := make([]ActivityDayView, 0, len(days))
	for _, day := range days {
		views = append(views, toActivityDayView(day))
	}
	writeJSON(w, http.StatusOK, ActivityCalendarResponse{Year: year, Month: month, Days: views})
}

func (h *Handler) streakStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireRead(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetStreakStats(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StreakStatsResponse{
		CurrentStreak:           stats.CurrentStreak,
		LongestStreak:           stats.LongestStreak,
		TotalLearningDays:       stats.TotalLearningDays,
		AverageActivitiesPerDay: stats.AverageActivitiesPerDay,
		LastActivityDate:        string(stats.LastActivityDate),
	})
}

func (h *Handler) activityLog(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireRead(w, r)
	if !ok {
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			if parsed > 100 {
				parsed = 100
			}
			limit = parsed
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	entries, next, err := h.service.ListActivityLog(r.Context(), claims.Subject, cursor, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]ActivityLogView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toActivityLogView(entry))
	}
	writeJSON(w, http.StatusOK, ActivityLogResponse{
		Items:      items,
		NextCursor: persistence.EncodeCursor(next),
	})
}

// requireRead enforces method and read-scope checks shared by every GET
// endpoint.
func (h *Handler) requireRead(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return nil, false
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	if !claims.HasScope(auth.ScopeStreaksRead) && !claims.HasScope(auth.ScopeStreaksWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope streaks:read required")
		return nil, false
	}
	return claims, true
}

// RecordActivityRequest is the payload for POST /v1/streaks/activities.
type RecordActivityRequest struct {
	ActivityType string `json:"activity_type"`
	ReferenceID  string `json:"reference_id,omitempty"`
}

// Validate ensures request correctness before the engine is invoked.
func (r RecordActivityRequest) Validate() error {
	if strings.TrimSpace(r.ActivityType) == "" {
		return errors.New("activity_type is required")
	}
	if !domain.ValidActivityType(domain.ActivityType(r.ActivityType)) {
		return errors.New("activity_type must be one of story-completion, exercise-completion, journal-entry")
	}
	return nil
}

// StreakUpdateResponse describes the outcome of recording an activity.
type StreakUpdateResponse struct {
	CurrentStreak  int  `json:"current_streak"`
	LongestStreak  int  `json:"longest_streak"`
	IsNewMilestone bool `json:"is_new_milestone"`
	Milestone      *int `json:"milestone,omitempty"`
}

// CurrentStreakResponse carries the live streak value.
type CurrentStreakResponse struct {
	CurrentStreak int `json:"current_streak"`
}

// LongestStreakResponse carries the longest streak ever achieved.
type LongestStreakResponse struct {
	LongestStreak int `json:"longest_streak"`
}

// StreakHistoryView is one archived streak.
type StreakHistoryView struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Length    int    `json:"length"`
}

// StreakHistoryResponse packages the streak archive.
type StreakHistoryResponse struct {
	Items []StreakHistoryView `json:"items"`
}

// ActivityDayView is one day in the monthly calendar.
type ActivityDayView struct {
	Date          string   `json:"date"`
	ActivityCount int      `json:"activity_count"`
	ActivityTypes []string `json:"activity_types"`
}

// ActivityCalendarResponse packages the monthly calendar view.
type ActivityCalendarResponse struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Days  []ActivityDayView `json:"days"`
}

// StreakStatsResponse bundles headline statistics.
type StreakStatsResponse struct {
	CurrentStreak           int     `json:"current_streak"`
	LongestStreak           int     `json:"longest_streak"`
	TotalLearningDays       int     `json:"total_learning_days"`
	AverageActivitiesPerDay float64 `json:"average_activities_per_day"`
	LastActivityDate        string  `json:"last_activity_date,omitempty"`
}

// ActivityLogView exposes one activity-log entry.
type ActivityLogView struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	ReferenceID string    `json:"reference_id,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// ActivityLogResponse packages paginated log results.
type ActivityLogResponse struct {
	Items      []ActivityLogView `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func toStreakUpdateResponse(update *domain.StreakUpdate) StreakUpdateResponse {
	resp := StreakUpdateResponse{
		CurrentStreak:  update.CurrentStreak,
		LongestStreak:  update.LongestStreak,
		IsNewMilestone: update.IsNewMilestone,
	}
	if update.IsNewMilestone {
		milestone := update.Milestone
		resp.Milestone = &milestone
	}
	return resp
}

func toActivityDayView(day domain.ActivityDay) ActivityDayView {
	types := make([]string, 0, len(day.ActivityTypes))
	for _, t := range day.ActivityTypes {
		types = append(types, string(t))
	}
	return ActivityDayView{
		Date:          string(day.Date),
		ActivityCount: day.ActivityCount,
		ActivityTypes: types,
	}
}

func toActivityLogView(entry domain.ActivityLogEntry) ActivityLogView {
	return ActivityLogView{
		ID:          entry.ID,
		Date:        string(entry.Date),
		Type:        string(entry.Type),
		ReferenceID: entry.ReferenceID,
		RecordedAt:  entry.RecordedAt,
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
