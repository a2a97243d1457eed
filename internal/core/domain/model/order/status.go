package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrIllegalTransition is the unwrap target for IllegalTransitionError.
// Writers reject an illegal transition outright; the status is never clamped
// to the nearest legal value.
var ErrIllegalTransition = errors.New("status transition is not allowed")

// IllegalTransitionError is returned when a caller attempts a status
// transition that the state machine does not permit: skipping a stage,
// moving backward, or leaving a terminal status.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("status transition is not allowed: %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct fulfillment workflow.
//
// State transitions:
//
//	Placed -> Confirmed -> Preparing -> Ready -> PickedUp -> InTransit -> Delivered
//	   └─────────┴────────────┴──────────┴──────────┴────────────┘
//	                  (each may transition to Cancelled)
//
// Delivered and Cancelled are terminal. Status is a value object that
// validates state transitions and provides string representations for
// persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when an order is created by a customer.
	Placed

	// Confirmed indicates the merchant has accepted the order.
	Confirmed

	// Preparing indicates the kitchen or warehouse is preparing the order.
	Preparing

	// Ready indicates the order is ready for driver pickup.
	Ready

	// PickedUp indicates the assigned driver has collected the order.
	PickedUp

	// InTransit indicates the driver is on the way to the delivery address.
	InTransit

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was abandoned before delivery.
	// This is a terminal state reachable from any non-terminal status.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Placed:    "placed",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked-up",
		InTransit: "in-transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:    "placed",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked-up",
		InTransit: "in-transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// progression returns the canonical linear sequence of fulfillment stages.
// Cancelled is not part of the linear sequence.
func progression() []Status {
	return []Status{Placed, Confirmed, Preparing, Ready, PickedUp, InTransit, Delivered}
}

// progressIndex returns the zero-based position of a status in the canonical
// sequence, and false for statuses outside it (Unknown, Cancelled).
func progressIndex(s Status) (int, bool) {
	for i, step := range progression() {
		if step == s {
			return i, true
		}
	}
	return 0, false
}

// Validate checks if the Status value is valid.
//
// Valid statuses are the seven linear stages plus Cancelled.
// Unknown (0) and any other values are invalid. A record carrying an
// unrecognized status is data corruption at the boundary and is rejected,
// never coerced.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "picked-up".
//
// Returns "unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus parses a wire name (e.g. "in-transit") into a Status.
// Returns an error for unrecognized names.
func ParseStatus(raw string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", raw))
}

// ProgressPercent returns how far along the canonical sequence the status
// sits, as an integer in [0,100]: Placed is 0 and Delivered is 100. The ok
// result is false for statuses outside the linear sequence (Unknown,
// Cancelled); a cancelled order reports progress via the status it held at
// cancellation.
func (s Status) ProgressPercent() (int, bool) {
	idx, ok := progressIndex(s)
	if !ok {
		return 0, false
	}
	return 100 * idx / (len(progression()) - 1), true
}

// Next returns the immediate successor in the canonical sequence. The ok
// result is false when no successor exists: for Delivered, Cancelled, and
// invalid statuses.
func (s Status) Next() (Status, bool) {
	idx, ok := progressIndex(s)
	if !ok || idx == len(progression())-1 {
		return Unknown, false
	}
	return progression()[idx+1], true
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the state machine permits moving from s
// to the given status.
//
// A transition is legal iff:
//   - to is the immediate successor of s in the canonical sequence, or
//   - to is Cancelled and s is non-terminal.
//
// All other pairs, including backward moves and skipped stages, are illegal.
func (s Status) CanTransitionTo(to Status) bool {
	if s.Validate() != nil || to.Validate() != nil {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if to == Cancelled {
		return true
	}
	next, ok := s.Next()
	return ok && to == next
}
