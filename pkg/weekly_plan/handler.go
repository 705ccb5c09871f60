package weekly_plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/padelcoach/padelcoach/internal/rest"
	"github.com/padelcoach/padelcoach/pkg/content"
	"github.com/padelcoach/padelcoach/pkg/user"
	log "github.com/sirupsen/logrus"
)

// User-facing error messages. The frontend renders these inline.
const (
	msgUnauthorized  = "Não autorizado"
	msgAddFailed     = "Erro ao adicionar item"
	msgUpdateFailed  = "Erro ao atualizar item"
	msgRemoveFailed  = "Erro ao remover item"
	msgItemNotFound  = "Item não encontrado"
	msgModuleMissing = "Módulo não encontrado"
)

const dateFormat = "2006-01-02"

type PlanItemDTO struct {
	Id             int    `json:"id"`
	ItemExternalId string `json:"itemExternalId"`
	ItemType       string `json:"itemType"`
	DayOfWeek      int    `json:"dayOfWeek"`
	OrderIndex     int    `json:"orderIndex"`
	Notes          string `json:"notes,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type PlanItemViewDTO struct {
	PlanItemDTO
	Module   *content.ModuleDTO   `json:"module,omitempty"`
	Exercise *content.ExerciseDTO `json:"exercise,omitempty"`
	// Placeholder carries the not-found text when the external id did
	// not resolve against the catalog.
	Placeholder string `json:"placeholder,omitempty"`
}

type DayViewDTO struct {
	Year      int               `json:"year"`
	Week      int               `json:"week"`
	DayOfWeek int               `json:"dayOfWeek"`
	DayLabel  string            `json:"dayLabel"`
	Date      string            `json:"date"`
	IsToday   bool              `json:"isToday"`
	Items     []PlanItemViewDTO `json:"items"`
}

type WeeklyPlanViewDTO struct {
	Year          int          `json:"year"`
	Week          int          `json:"week"`
	StartDate     string       `json:"startDate"`
	EndDate       string       `json:"endDate"`
	IsCurrentWeek bool         `json:"isCurrentWeek"`
	HasPlan       bool         `json:"hasPlan"`
	Days          []DayViewDTO `json:"days"`
}

type AddItemDTO struct {
	Year           int    `json:"year"`
	Week           int    `json:"week"`
	ItemExternalId string `json:"itemExternalId"`
	ItemType       string `json:"itemType"`
	DayOfWeek      int    `json:"dayOfWeek"`
	OrderIndex     *int   `json:"orderIndex,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type UpdateItemDTO struct {
	OrderIndex *int    `json:"orderIndex,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// weekFromQuery reads year/week query parameters, falling back to the
// current week when both are absent.
func (h *Handler) weekFromQuery(r *http.Request) (Week, error) {
	yearString := r.URL.Query().Get("year")
	weekString := r.URL.Query().Get("week")
	if yearString == "" && weekString == "" {
		return h.service.CurrentWeek(), nil
	}
	year, err := strconv.Atoi(yearString)
	if err != nil {
		return Week{}, errors.New("parameter year must be a number")
	}
	weekNumber, err := strconv.Atoi(weekString)
	if err != nil {
		return Week{}, errors.New("parameter week must be a number")
	}
	return NewWeek(year, weekNumber)
}

func writeError(w http.ResponseWriter, status int, response rest.ErrorResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeResult(w http.ResponseWriter, status int, response rest.ResultResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetWeeklyPlan godoc
// @Summary Get the weekly plan
// @Description Retrieve the seven-day plan view for a given ISO week
// @Tags WeeklyPlanning
// @Produce json
// @Param year query int false "ISO year (defaults to current week)"
// @Param week query int false "ISO week number (1-53)"
// @Success 200 {object} WeeklyPlanViewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year or week"
// @Failure 401 {object} rest.ResultResponse "Unauthorized"
// @Router /api/weekly-planning [get]
// @Security XUserId
func (h *Handler) GetWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	week, err := h.weekFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid week", Details: err.Error()})
		return
	}

	view, err := h.service.GetWeeklyPlan(r.Context(), week)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			writeResult(w, http.StatusUnauthorized, rest.ResultResponse{Success: false, Error: msgUnauthorized})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(weeklyPlanViewToDTO(view)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetDayDetails godoc
// @Summary Get one day of the weekly plan
// @Description Retrieve the plan items scheduled on a single day
// @Tags WeeklyPlanning
// @Produce json
// @Param year query int true "ISO year"
// @Param week query int true "ISO week number (1-53)"
// @Param day query int true "Day of week (1=Monday ... 7=Sunday)"
// @Success 200 {object} DayViewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year, week or day"
// @Failure 401 {object} rest.ResultResponse "Unauthorized"
// @Router /api/weekly-planning/day [get]
// @Security XUserId
func (h *Handler) GetDayDetails(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	week, err := h.weekFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid week", Details: err.Error()})
		return
	}
	dayNumber, err := strconv.Atoi(r.URL.Query().Get("day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid day", Details: "Parameter day must be a number"})
		return
	}
	day, err := NewDayOfWeek(dayNumber)
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid day", Details: err.Error()})
		return
	}

	dayView, err := h.service.GetDayDetails(r.Context(), week, day)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			writeResult(w, http.StatusUnauthorized, rest.ResultResponse{Success: false, Error: msgUnauthorized})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(dayViewToDTO(dayView)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// AddItem godoc
// @Summary Add an item to a day
// @Description Schedule a module or exercise on a day of a week, creating the weekly plan when missing
// @Tags WeeklyPlanning
// @Accept json
// @Produce json
// @Param item body AddItemDTO true "Item to schedule"
// @Success 201 {object} PlanItemDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 401 {object} rest.ResultResponse "Unauthorized"
// @Failure 500 {object} rest.ResultResponse "Store failure"
// @Router /api/weekly-planning [post]
// @Security XUserId
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var addItemDTO AddItemDTO
	if err := json.NewDecoder(r.Body).Decode(&addItemDTO); err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	// All validation happens before any store call.
	week, err := NewWeek(addItemDTO.Year, addItemDTO.Week)
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid week", Details: err.Error()})
		return
	}
	day, err := NewDayOfWeek(addItemDTO.DayOfWeek)
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid day", Details: err.Error()})
		return
	}
	itemType, err := ParseItemType(addItemDTO.ItemType)
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid item type", Details: err.Error()})
		return
	}
	if addItemDTO.ItemExternalId == "" {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "itemExternalId is required"})
		return
	}

	item, err := h.service.AddItemToDay(r.Context(), week, day, addItemDTO.ItemExternalId, itemType, addItemDTO.OrderIndex, addItemDTO.Notes)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			writeResult(w, http.StatusUnauthorized, rest.ResultResponse{Success: false, Error: msgUnauthorized})
			return
		}
		log.Errorf("failed to add item to day: %v", err)
		writeResult(w, http.StatusInternalServerError, rest.ResultResponse{Success: false, Error: msgAddFailed})
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(planItemToDTO(item)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateItem godoc
// @Summary Update a plan item
// @Description Update order index and/or notes of a scheduled item
// @Tags WeeklyPlanning
// @Accept json
// @Produce json
// @Param itemId path int true "Plan item ID"
// @Param item body UpdateItemDTO true "Fields to update"
// @Success 200 {object} PlanItemDTO
// @Failure 400 {object} rest.ErrorResponse "No fields given or invalid values"
// @Failure 401 {object} rest.ResultResponse "Unauthorized"
// @Failure 404 {object} rest.ResultResponse "Item not found"
// @Router /api/weekly-planning/module/{itemId} [put]
// @Security XUserId
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	itemId, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid itemId format", Details: "Parameter itemId must be a number"})
		return
	}

	var updateItemDTO UpdateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&updateItemDTO); err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if updateItemDTO.OrderIndex == nil && updateItemDTO.Notes == nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "At least one of orderIndex or notes must be provided"})
		return
	}

	item, err := h.service.UpdateItem(r.Context(), itemId, ItemUpdate{
		OrderIndex: updateItemDTO.OrderIndex,
		Notes:      updateItemDTO.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNoUser):
			writeResult(w, http.StatusUnauthorized, rest.ResultResponse{Success: false, Error: msgUnauthorized})
		case errors.Is(err, ErrPlanItemNotFound):
			writeResult(w, http.StatusNotFound, rest.ResultResponse{Success: false, Error: msgItemNotFound})
		default:
			log.Errorf("failed to update plan item %d: %v", itemId, err)
			writeResult(w, http.StatusInternalServerError, rest.ResultResponse{Success: false, Error: msgUpdateFailed})
		}
		return
	}

	if err := json.NewEncoder(w).Encode(planItemToDTO(item)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// RemoveItem godoc
// @Summary Remove a plan item
// @Description Delete a scheduled item from the weekly plan
// @Tags WeeklyPlanning
// @Produce json
// @Param itemId path int true "Plan item ID"
// @Success 200 {object} rest.ResultResponse
// @Failure 400 {object} rest.ErrorResponse "Invalid itemId"
// @Failure 401 {object} rest.ResultResponse "Unauthorized"
// @Failure 404 {object} rest.ResultResponse "Item not found"
// @Router /api/weekly-planning/module/{itemId} [delete]
// @Security XUserId
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	itemId, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid itemId format", Details: "Parameter itemId must be a number"})
		return
	}

	if err := h.service.RemoveItem(r.Context(), itemId); err != nil {
		switch {
		case errors.Is(err, user.ErrNoUser):
			writeResult(w, http.StatusUnauthorized, rest.ResultResponse{Success: false, Error: msgUnauthorized})
		case errors.Is(err, ErrPlanItemNotFound):
			writeResult(w, http.StatusNotFound, rest.ResultResponse{Success: false, Error: msgItemNotFound})
		default:
			log.Errorf("failed to remove plan item %d: %v", itemId, err)
			writeResult(w, http.StatusInternalServerError, rest.ResultResponse{Success: false, Error: msgRemoveFailed})
		}
		return
	}

	writeResult(w, http.StatusOK, rest.ResultResponse{Success: true})
}

func planItemToDTO(item PlanItem) PlanItemDTO {
	return PlanItemDTO{
		Id:             item.Id,
		ItemExternalId: item.ExternalId,
		ItemType:       string(item.Type),
		DayOfWeek:      int(item.Day),
		OrderIndex:     item.OrderIndex,
		Notes:          item.Notes,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}

func planItemViewToDTO(item PlanItemView) PlanItemViewDTO {
	dto := PlanItemViewDTO{PlanItemDTO: planItemToDTO(item.PlanItem)}
	switch {
	case item.Module != nil:
		moduleDTO := content.ModuleToDTO(*item.Module)
		dto.Module = &moduleDTO
	case item.Exercise != nil:
		exerciseDTO := content.ExerciseToDTO(*item.Exercise)
		dto.Exercise = &exerciseDTO
	default:
		dto.Placeholder = msgModuleMissing
	}
	return dto
}

func dayViewToDTO(day DayView) DayViewDTO {
	items := make([]PlanItemViewDTO, 0, len(day.Items))
	for _, item := range day.Items {
		items = append(items, planItemViewToDTO(item))
	}
	return DayViewDTO{
		Year:      day.Week.Year,
		Week:      day.Week.Number,
		DayOfWeek: int(day.Day),
		DayLabel:  day.Day.Label(),
		Date:      day.Date.Format(dateFormat),
		IsToday:   day.IsToday,
		Items:     items,
	}
}

func weeklyPlanViewToDTO(view WeeklyPlanView) WeeklyPlanViewDTO {
	days := make([]DayViewDTO, 0, len(view.Days))
	for _, day := range view.Days {
		days = append(days, dayViewToDTO(day))
	}
	return WeeklyPlanViewDTO{
		Year:          view.Week.Year,
		Week:          view.Week.Number,
		StartDate:     view.StartDate.Format(dateFormat),
		EndDate:       view.EndDate.Format(dateFormat),
		IsCurrentWeek: view.IsCurrentWeek,
		HasPlan:       view.Plan != nil,
		Days:          days,
	}
}
