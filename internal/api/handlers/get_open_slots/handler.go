package get_open_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pawcare/PetCare-BookingService/internal/api/handlers"
	getOpenSlots "github.com/pawcare/PetCare-BookingService/internal/usecase/get_open_slots"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgInvalidQuery      = "invalid query parameters"
	msgProviderNotFound  = "provider not found"
	msgServiceNotFound   = "service not found"
	msgServiceInactive   = "service is not available for booking"
	msgServiceMismatch   = "service does not belong to this provider"
)

type Handler struct {
	useCase GetOpenSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetOpenSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/open-slots?date=&serviceId=&granularity=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	req, err := ParseRequest(providerID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /providers/%d/open-slots - Invalid query: %v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getOpenSlots.ErrProviderNotFound):
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getOpenSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getOpenSlots.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getOpenSlots.ErrServiceProviderMismatch):
			handlers.RespondBadRequest(w, msgServiceMismatch)

		case errors.Is(err, getOpenSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /providers/%d/open-slots - Failed: %v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/%d/open-slots - Returned %d slots for service=%d date=%s",
		providerID, len(result.Slots), req.ServiceID, req.Date.Format("2006-01-02"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
