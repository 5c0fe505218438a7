package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pawcare/PetCare-BookingService/internal/api/handlers"
	"github.com/pawcare/PetCare-BookingService/internal/api/middleware"
	"github.com/pawcare/PetCare-BookingService/internal/service/availability"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgInvalidBody       = "invalid request body"
	msgInvalidWindow     = "window open time must be before close time"
	msgForbidden         = "only the owning provider or an admin may change the schedule"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SetWeeklyWindow PUT /api/v1/providers/{providerId}/availability/weekly
func (h *Handler) SetWeeklyWindow(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req SetWeeklyWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/%d/availability/weekly - Invalid request body: %v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	weekday, err := req.ToWeekday()
	if err != nil {
		h.logger.Warn("PUT /providers/%d/availability/weekly - %v", providerID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	window, err := req.ToWindow()
	if err != nil {
		h.logger.Warn("PUT /providers/%d/availability/weekly - %v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.SetWeeklyWindow(r.Context(), providerID, weekday, window, actor); err != nil {
		h.respondError(w, "PUT /providers/%d/availability/weekly", providerID, actor.ID, err)
		return
	}

	h.logger.Info("PUT /providers/%d/availability/weekly - Updated %s by actor=%d", providerID, weekday, actor.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// AddException POST /api/v1/providers/{providerId}/availability/exceptions
func (h *Handler) AddException(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req AddExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/%d/availability/exceptions - Invalid request body: %v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	exc, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /providers/%d/availability/exceptions - %v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.AddException(r.Context(), providerID, exc, actor); err != nil {
		h.respondError(w, "POST /providers/%d/availability/exceptions", providerID, actor.ID, err)
		return
	}

	h.logger.Info("POST /providers/%d/availability/exceptions - Added %s by actor=%d",
		providerID, req.Date, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, providerID, actorID int64, err error) {
	switch {
	case errors.Is(err, availability.ErrForbidden):
		h.logger.Warn(route+" - Forbidden for actor=%d", providerID, actorID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, availability.ErrInvalidWindow):
		handlers.RespondBadRequest(w, msgInvalidWindow)

	case errors.Is(err, availability.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidBody)

	default:
		h.logger.Error(route+" - Failed: %v", providerID, err)
		handlers.RespondInternalError(w)
	}
}
