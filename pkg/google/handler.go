package google

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/padelcoach/padelcoach/internal/rest"
	"github.com/padelcoach/padelcoach/pkg/weekly_plan"
	log "github.com/sirupsen/logrus"
)

type CalendarItemDto struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

type ExportResultDto struct {
	ExportedItems int `json:"exportedItems"`
}

type Handler struct {
	exporter Exporter
}

func NewHandler(exporter Exporter) *Handler {
	return &Handler{exporter: exporter}
}

// ListCalendars godoc
// @Summary List Google calendars
// @Description List the calendars of the authenticated Google account
// @Tags GoogleCalendar
// @Produce json
// @Success 200 {array} CalendarItemDto
// @Failure 403 {string} string "Google authentication required"
// @Router /api/integrations/google/calendars [get]
// @Security XUserId
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	calendars, err := h.exporter.ListCalendars(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	calendarItems := make([]CalendarItemDto, 0, len(calendars))
	for _, c := range calendars {
		calendarItems = append(calendarItems, toCalendarItemDto(c))
	}

	if err := json.NewEncoder(w).Encode(calendarItems); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ExportWeek godoc
// @Summary Export a weekly plan to Google Calendar
// @Description Create one all-day event per scheduled plan item in the given calendar
// @Tags GoogleCalendar
// @Produce json
// @Param year query int true "ISO year"
// @Param week query int true "ISO week number (1-53)"
// @Param calendarId query string false "Target calendar (defaults to primary)"
// @Success 200 {object} ExportResultDto
// @Failure 400 {object} rest.ErrorResponse "Invalid year or week"
// @Failure 403 {string} string "Google authentication required"
// @Router /api/weekly-planning/export-to-google [post]
// @Security XUserId
func (h *Handler) ExportWeek(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeBadRequest(w, "Invalid year", "Parameter year must be a number")
		return
	}
	weekNumber, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil {
		writeBadRequest(w, "Invalid week", "Parameter week must be a number")
		return
	}
	week, err := weekly_plan.NewWeek(year, weekNumber)
	if err != nil {
		writeBadRequest(w, "Invalid week", err.Error())
		return
	}

	calendarId := r.URL.Query().Get("calendarId")
	if calendarId == "" {
		calendarId = "primary"
	}

	exported, err := h.exporter.ExportWeek(r.Context(), week, calendarId)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		log.Errorf("failed to export week %s: %v", week, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(ExportResultDto{ExportedItems: exported}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeBadRequest(w http.ResponseWriter, message string, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toCalendarItemDto(ci CalendarItem) CalendarItemDto {
	return CalendarItemDto{
		Id:      ci.ID,
		Summary: ci.Summary,
	}
}
