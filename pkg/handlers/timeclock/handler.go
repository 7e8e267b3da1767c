package timeclock

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clocksynk/dashboard/pkg/adapters"
	"github.com/clocksynk/dashboard/pkg/handlers"
	"github.com/clocksynk/dashboard/pkg/models/api"
	"github.com/clocksynk/dashboard/pkg/services/timeclock"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
)

type Handler struct {
	clock timeclock.Service
}

func NewHandler(clock timeclock.Service) *Handler {
	return &Handler{clock: clock}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/time/clock-in", h.ClockIn)
	r.Post("/time/clock-out", h.ClockOut)
	r.Get("/time/{userId}/week", h.WeeklyHours)
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	entry, err := h.clock.ClockIn(r.Context(), req.UserID, req.Notes)
	if err != nil {
		handlers.Error(w, r, statusFor(err), err)
		return
	}
	handlers.JSON(w, r, http.StatusCreated, adapters.MapTimeEntryDomainToApi(entry))
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	entry, err := h.clock.ClockOut(r.Context(), req.UserID, req.Notes)
	if err != nil {
		handlers.Error(w, r, statusFor(err), err)
		return
	}
	handlers.JSON(w, r, http.StatusOK, adapters.MapTimeEntryDomainToApi(entry))
}

func (h *Handler) WeeklyHours(w http.ResponseWriter, r *http.Request) {
	rows, err := h.clock.WeeklyHours(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		handlers.Error(w, r, statusFor(err), err)
		return
	}
	handlers.JSON(w, r, http.StatusOK, adapters.MapDailyHoursDomainToApi(rows))
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (api.ClockRequest, bool) {
	var req api.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.Error(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return req, false
	}
	return req, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, timeclock.ErrMissingUser):
		return http.StatusBadRequest
	case errors.Is(err, timeclock.ErrAlreadyClockedIn),
		errors.Is(err, timeclock.ErrNotClockedIn),
		errors.Is(err, dashboard.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, dashboard.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
