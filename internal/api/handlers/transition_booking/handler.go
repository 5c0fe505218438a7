package transition_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pawcare/PetCare-BookingService/internal/api/handlers"
	"github.com/pawcare/PetCare-BookingService/internal/api/middleware"
	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID  = "invalid booking id"
	msgInvalidBody       = "invalid request body"
	msgBookingNotFound   = "booking not found"
	msgForbidden         = "not allowed to perform this operation"
	msgInvalidTransition = "action is not allowed from the current booking status"
	msgReasonRequired    = "a reason is required for this operation"
	msgStaleState        = "booking changed concurrently, reload and retry"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Confirm PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionConfirm)
}

// Cancel PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionCancel)
}

// Complete PATCH /api/v1/bookings/{bookingId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionComplete)
}

// NoShow PATCH /api/v1/bookings/{bookingId}/no-show
func (h *Handler) NoShow(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.ActionNoShow)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action domain.Action) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	req, err := decodeBody(r)
	if err != nil {
		h.logger.Warn("PATCH /bookings/%d/%s - Invalid request body: %v", bookingID, action, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.dispatch(r, bookingID, action, actor, req)
	if err != nil {
		h.respondError(w, bookingID, action, actor, err)
		return
	}

	h.logger.Info("PATCH /bookings/%d/%s - Applied by actor=%d role=%s, status=%s",
		bookingID, action, actor.ID, actor.Role, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

// dispatch routes the action to the service. Admin calls go through
// the override path so they hit the audit log.
func (h *Handler) dispatch(r *http.Request, bookingID int64, action domain.Action, actor domain.Actor, req *TransitionRequest) (*models.BookingResponse, error) {
	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}

	if actor.Role == domain.RoleAdmin {
		return h.service.AdminOverride(r.Context(), bookingID, action, actor.ID, reason)
	}

	switch action {
	case domain.ActionConfirm:
		return h.service.Confirm(r.Context(), bookingID, actor)
	case domain.ActionCancel:
		return h.service.Cancel(r.Context(), bookingID, actor, req.Reason)
	case domain.ActionComplete:
		return h.service.Complete(r.Context(), bookingID, actor)
	default:
		return h.service.MarkNoShow(r.Context(), bookingID, actor, reason)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID int64, action domain.Action, actor domain.Actor, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, bookings.ErrForbidden):
		h.logger.Warn("PATCH /bookings/%d/%s - Forbidden for actor=%d role=%s", bookingID, action, actor.ID, actor.Role)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, bookings.ErrInvalidTransition):
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, bookings.ErrReasonRequired):
		handlers.RespondBadRequest(w, msgReasonRequired)

	case errors.Is(err, bookings.ErrStaleState):
		handlers.RespondConflict(w, msgStaleState)

	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidBody)

	default:
		h.logger.Error("PATCH /bookings/%d/%s - Failed: actor=%d error=%v", bookingID, action, actor.ID, err)
		handlers.RespondInternalError(w)
	}
}

// decodeBody tolerates an empty body: confirm and complete need none
func decodeBody(r *http.Request) (*TransitionRequest, error) {
	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			return &req, nil
		}
		return nil, err
	}
	return &req, nil
}
