package handler

import (
	"fmt"
	"net/http"
	"time"

	"venued/internal/availability/service"
	"venued/pkg/availability"
	apperrors "venued/pkg/errors"
	httputil "venued/pkg/http"
	"venued/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

// Occupancy handles GET /api/v1/venues/:id/occupancy. The optional `at`
// parameter is RFC3339 and defaults to the current time.
func (h *AvailabilityHandler) Occupancy(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	at := time.Now()
	if atStr := r.URL.Query().Get("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid at parameter: %s", atStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Occupancy", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		at = parsed
	}

	view, err := h.service.Occupancy(r.Context(), ps.ByName("id"), at)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Occupancy", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Occupancy", "operation", "WriteSuccess", "error", err)
	}
}

// Grid handles GET /api/v1/venues/:id/grid. The `date` parameter is the
// venue-local calendar day in YYYY-MM-DD form; when absent the service
// defaults to today in the venue's own zone.
func (h *AvailabilityHandler) Grid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var date availability.LocalDate
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := availability.ParseLocalDate(dateStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid date parameter: %s", dateStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Grid", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		date = parsed
	}

	view, err := h.service.DayGrid(r.Context(), ps.ByName("id"), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Grid", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Grid", "operation", "WriteSuccess", "error", err)
	}
}

// Conflicts handles GET /api/v1/venues/:id/conflicts. Both `start` and `end`
// are required RFC3339 instants; the check is a dry run and persists nothing.
func (h *AvailabilityHandler) Conflicts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid start parameter: %s", query.Get("start")))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Conflicts", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid end parameter: %s", query.Get("end")))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Conflicts", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	view, err := h.service.CheckSlot(r.Context(), ps.ByName("id"), start, end)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Conflicts", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Conflicts", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/venues/:id/occupancy", h.Occupancy)
	router.GET("/api/v1/venues/:id/grid", h.Grid)
	router.GET("/api/v1/venues/:id/conflicts", h.Conflicts)
}
