package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role identifies the kind of actor calling into the lifecycle
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Actor is the resolved identity performing a transition
type Actor struct {
	ID   int64
	Role Role
}

// Action is a booking lifecycle transition request
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionNoShow   Action = "no_show"
)

// ValidAction reports whether a is a known lifecycle action
func ValidAction(a Action) bool {
	switch a {
	case ActionConfirm, ActionCancel, ActionComplete, ActionNoShow:
		return true
	default:
		return false
	}
}

var (
	// ErrInvalidTransition is returned for transitions not present in
	// the state graph, including any transition out of a terminal state
	ErrInvalidTransition = errors.New("domain: invalid booking transition")

	// ErrReasonRequired is returned when a provider or admin cancels or
	// marks a no-show without a non-empty reason
	ErrReasonRequired = errors.New("domain: cancellation reason is required")

	// ErrActorNotAllowed is returned when the actor's role is not
	// permitted to perform the action
	ErrActorNotAllowed = errors.New("domain: actor role not allowed for this action")
)

// transitionTable maps (current status, action) to the resulting
// status. Absence means the transition is illegal. Terminal states
// have no outgoing edges.
var transitionTable = map[BookingStatus]map[Action]BookingStatus{
	StatusPending: {
		ActionConfirm: StatusConfirmed,
		ActionCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		ActionCancel:   StatusCancelled,
		ActionComplete: StatusCompleted,
		ActionNoShow:   StatusNoShow,
	},
}

// actionRoles maps each action to the roles allowed to trigger it.
// Customers can only cancel; ownership checks live in the service
// layer, this table covers role legality alone.
var actionRoles = map[Action]map[Role]bool{
	ActionConfirm:  {RoleProvider: true, RoleAdmin: true},
	ActionCancel:   {RoleCustomer: true, RoleProvider: true, RoleAdmin: true},
	ActionComplete: {RoleProvider: true, RoleAdmin: true},
	ActionNoShow:   {RoleProvider: true, RoleAdmin: true},
}

// Transition applies a lifecycle action to a booking and returns the
// updated snapshot. The input booking is never mutated, so a failed
// transition leaves the stored record untouched by construction.
//
// Reason rules: cancel and no_show by a provider or admin require a
// non-empty reason; a customer cancelling without a reason gets the
// generic default.
func Transition(b Booking, action Action, actor Actor, reason string, now time.Time) (Booking, error) {
	if !ValidAction(action) {
		return b, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}

	if roles := actionRoles[action]; !roles[actor.Role] {
		return b, fmt.Errorf("%w: role=%s action=%s", ErrActorNotAllowed, actor.Role, action)
	}

	next, ok := transitionTable[b.Status][action]
	if !ok {
		return b, fmt.Errorf("%w: %s --%s--> ?", ErrInvalidTransition, b.Status, action)
	}

	reason = strings.TrimSpace(reason)

	if action == ActionCancel || action == ActionNoShow {
		if reason == "" {
			if actor.Role != RoleCustomer {
				return b, fmt.Errorf("%w: action=%s role=%s", ErrReasonRequired, action, actor.Role)
			}
			reason = DefaultCancellationReason
		}
	}

	updated := b
	updated.Status = next
	updated.LastTransitionAt = now

	if next == StatusCancelled {
		updated.CancellationReason = &reason
		cancelledAt := now
		updated.CancelledAt = &cancelledAt
	}

	return updated, nil
}

// PaymentStatus is the payment collaborator's status vocabulary
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PaymentStatusFor returns the payment status mirroring a booking
// status, and whether a sync is needed at all. Only cancellation and
// completion move the payment record; everything else leaves it
// pending.
func PaymentStatusFor(status BookingStatus) (PaymentStatus, bool) {
	switch status {
	case StatusCancelled:
		return PaymentCancelled, true
	case StatusCompleted:
		return PaymentCompleted, true
	default:
		return PaymentPending, false
	}
}
