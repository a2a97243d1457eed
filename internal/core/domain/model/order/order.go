package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods. This
	// ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrDriverAlreadyAssigned is returned when a second driver assignment is
	// attempted. A driver is assigned exactly once per delivery leg.
	ErrDriverAlreadyAssigned = errors.New("driver is already assigned to this order")
)

// Order represents a delivery order in the marketplace. It is the aggregate
// root that manages the order lifecycle from placement through fulfillment to
// delivery or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, customer, route, type, and pricing
//   - Status advances monotonically along the canonical sequence; Cancelled
//     is reachable from any non-terminal status
//   - The estimated delivery time is never before the creation time
//   - A driver is assigned at most once, and must be assigned before the
//     order can be picked up
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. The aggregate never performs I/O; it
// classifies and validates transitions proposed by external fulfillment
// actors.
type Order struct {
	id                  kernel.UUID
	customer            Customer
	route               Route
	orderType           OrderType
	pricing             Pricing
	specialInstructions string

	status   Status
	driverID *kernel.UUID

	createdAt           time.Time
	estimatedDeliveryAt time.Time

	// reachedAt records when each status was entered. Placed maps to createdAt.
	reachedAt map[Status]time.Time

	// cancelledFrom holds the last linear status before cancellation; it
	// drives the progress percent of cancelled orders. Unknown otherwise.
	cancelledFrom Status

	isConstructed bool
}

// NewOrder creates a newly placed Order with validation. The order starts in
// Placed status with its placement time recorded and an estimated delivery
// time of createdAt plus the configured offset.
//
// Parameters:
//   - id: unique identifier for the order
//   - customer: the ordering actor reference
//   - route: pickup and delivery addresses
//   - orderType: kind of goods carried
//   - pricing: order value and delivery fee
//   - specialInstructions: optional free text for the driver
//   - createdAt: placement time supplied by the caller
//   - etaOffset: offset added to createdAt to produce the delivery estimate
//
// Returns the created order if all validations pass, or a validation error.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	route Route,
	orderType OrderType,
	pricing Pricing,
	specialInstructions string,
	createdAt time.Time,
	etaOffset time.Duration,
) (*Order, error) {
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}
	if etaOffset < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("etaOffset",
			fmt.Errorf("%s is negative", etaOffset))
	}

	o := &Order{
		status:              Placed,
		specialInstructions: specialInstructions,
		createdAt:           createdAt,
		estimatedDeliveryAt: createdAt.Add(etaOffset),
		reachedAt:           map[Status]time.Time{Placed: createdAt},
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setRoute(route),
		o.setOrderType(orderType),
		o.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state without replaying
// its history. It re-checks every invariant so corrupt rows are rejected at
// the boundary instead of silently skewing downstream consumers.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	route Route,
	orderType OrderType,
	pricing Pricing,
	specialInstructions string,
	status Status,
	driverID *kernel.UUID,
	createdAt time.Time,
	estimatedDeliveryAt time.Time,
	reachedAt map[Status]time.Time,
	cancelledFrom Status,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}
	if estimatedDeliveryAt.Before(createdAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause("estimatedDeliveryAt",
			fmt.Errorf("estimate %s precedes creation %s", estimatedDeliveryAt, createdAt))
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}
	// A driver must be aboard from pickup onward.
	if status >= PickedUp && status <= Delivered && driverID == nil {
		return nil, errs.NewValueIsRequiredError("assignedDriverID")
	}
	if status == Cancelled {
		if err := cancelledFrom.Validate(); err != nil {
			return nil, err
		}
		if cancelledFrom.IsTerminal() {
			return nil, errs.NewValueIsInvalidErrorWithCause("cancelledFrom",
				fmt.Errorf("%s is terminal", cancelledFrom))
		}
	} else if cancelledFrom != Unknown {
		return nil, errs.NewValueIsInvalidErrorWithCause("cancelledFrom",
			fmt.Errorf("set to %s on a non-cancelled order", cancelledFrom))
	}

	times := make(map[Status]time.Time, len(reachedAt)+1)
	for s, t := range reachedAt {
		times[s] = t
	}
	if _, ok := times[Placed]; !ok {
		times[Placed] = createdAt
	}

	o := &Order{
		status:              status,
		driverID:            driverID,
		specialInstructions: specialInstructions,
		createdAt:           createdAt,
		estimatedDeliveryAt: estimatedDeliveryAt,
		reachedAt:           times,
		cancelledFrom:       cancelledFrom,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setRoute(route),
		o.setOrderType(orderType),
		o.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through its
// factory methods. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the ordering actor reference.
func (o *Order) Customer() Customer {
	return o.customer
}

// Route returns the pickup and delivery addresses.
func (o *Order) Route() Route {
	return o.route
}

// OrderType returns the kind of goods the order carries.
func (o *Order) OrderType() OrderType {
	return o.orderType
}

// Pricing returns the order value and delivery fee.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// SpecialInstructions returns the optional delivery note, empty if none.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Driver returns the assigned driver's ID, nil if no driver is assigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedDeliveryAt returns the delivery estimate set at placement.
func (o *Order) EstimatedDeliveryAt() time.Time {
	return o.estimatedDeliveryAt
}

// ReachedAt returns when the given status was entered, with ok reporting
// whether the order has reached that status at all.
func (o *Order) ReachedAt(s Status) (time.Time, bool) {
	t, ok := o.reachedAt[s]
	return t, ok
}

// DeliveredAt returns the delivery time, with ok false while undelivered.
func (o *Order) DeliveredAt() (time.Time, bool) {
	return o.ReachedAt(Delivered)
}

// CancelledFrom returns the linear status the order held when it was
// cancelled, and Unknown for non-cancelled orders.
func (o *Order) CancelledFrom() Status {
	return o.cancelledFrom
}

// AssignDriver assigns the order to a driver.
//
// Assignment happens exactly once per delivery leg: a second call fails with
// ErrDriverAlreadyAssigned. Terminal orders cannot be assigned. Assignment
// does not itself advance the status; it is a precondition for the PickedUp
// transition.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.driverID != nil {
		return ErrDriverAlreadyAssigned
	}
	if o.status.IsTerminal() {
		return &IllegalTransitionError{From: o.status, To: o.status}
	}

	o.driverID = &driverID
	return nil
}

// AdvanceTo moves the order to the next fulfillment stage, recording the
// transition time.
//
// The target must be the immediate successor of the current status in the
// canonical sequence; anything else fails with IllegalTransitionError and the
// order is left unchanged. Cancellation goes through Cancel, not AdvanceTo.
// Advancing to PickedUp requires a driver to be assigned.
func (o *Order) AdvanceTo(to Status, at time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if to == Cancelled || !o.status.CanTransitionTo(to) {
		return &IllegalTransitionError{From: o.status, To: to}
	}
	if to == PickedUp && o.driverID == nil {
		return errs.NewValueIsRequiredError("assignedDriverID")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}

	o.reachedAt[to] = at
	o.status = to
	return nil
}

// Cancel marks the order as cancelled, recording the status it was cancelled
// from so the progress percent remains meaningful.
//
// Cancellation is allowed from any non-terminal status; a delivered or
// already-cancelled order fails with IllegalTransitionError.
func (o *Order) Cancel(at time.Time) error {
	if !o.status.CanTransitionTo(Cancelled) {
		return &IllegalTransitionError{From: o.status, To: Cancelled}
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}

	o.cancelledFrom = o.status
	o.reachedAt[Cancelled] = at
	o.status = Cancelled
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setRoute(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	o.route = route
	return nil
}

func (o *Order) setOrderType(orderType OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}
	o.pricing = pricing
	return nil
}
