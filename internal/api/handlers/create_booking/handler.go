package create_booking

import (
	"errors"
	"net/http"

	"github.com/pawcare/PetCare-BookingService/internal/api/handlers"
	"github.com/pawcare/PetCare-BookingService/internal/api/middleware"
	"github.com/pawcare/PetCare-BookingService/internal/domain"
	requestBooking "github.com/pawcare/PetCare-BookingService/internal/usecase/request_booking"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDate         = "invalid booking date, expected YYYY-MM-DD"
	msgInvalidTime         = "invalid start time, expected HH:MM"
	msgCustomersOnly       = "only customers can request bookings"
	msgProviderNotFound    = "provider not found"
	msgServiceNotFound     = "service not found"
	msgServiceInactive     = "service is not available for booking"
	msgServiceMismatch     = "service does not belong to this provider"
	msgOutsideAvailability = "requested time is outside provider working hours"
	msgSlotConflict        = "requested slot is already booked"
	msgSlotMisaligned      = "start time is not aligned to the booking grid"
	msgInvalidBookingDate  = "booking date is in the past"
	msgTooLateToBook       = "too late to book this slot"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	if actor.Role != domain.RoleCustomer {
		h.logger.Warn("POST /bookings - Non-customer actor=%d role=%s", actor.ID, actor.Role)
		handlers.RespondForbidden(w, msgCustomersOnly)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.ID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeString) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: customer=%d provider=%d", actor.ID, req.ProviderID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, requestBooking.ErrOutsideAvailability):
			h.logger.Warn("POST /bookings - Outside availability: customer=%d provider=%d", actor.ID, req.ProviderID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, requestBooking.ErrProviderNotFound):
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, requestBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, requestBooking.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, requestBooking.ErrServiceProviderMismatch):
			handlers.RespondBadRequest(w, msgServiceMismatch)

		case errors.Is(err, requestBooking.ErrSlotMisaligned):
			handlers.RespondBadRequest(w, msgSlotMisaligned)

		case errors.Is(err, requestBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, requestBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer=%d provider=%d error=%v",
				actor.ID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking=%d customer=%d provider=%d",
		result.ID, actor.ID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
