package handler

import (
	"encoding/json"
	"net/http"

	"venued/internal/admissions/service"
	httputil "venued/pkg/http"
	"venued/pkg/logger"
	"venued/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AdmissionHandler struct {
	service service.AdmissionService
	log     *logger.Logger
}

func NewAdmissionHandler(service service.AdmissionService, log *logger.Logger) *AdmissionHandler {
	return &AdmissionHandler{
		service: service,
		log:     log,
	}
}

// Admit handles POST /api/v1/venues/:id/reservations. The venue in the path
// wins over any venue_id in the body.
func (h *AdmissionHandler) Admit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Admit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	reservation.VenueID = ps.ByName("id")

	if err := h.service.Admit(r.Context(), &reservation); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Admit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Admit", "operation", "WriteCreated", "error", err)
	}
}

// Cancel handles DELETE /api/v1/reservations/:id.
func (h *AdmissionHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Cancel(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdmissionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/venues/:id/reservations", h.Admit)
	router.DELETE("/api/v1/reservations/:id", h.Cancel)
}
