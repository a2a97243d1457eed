package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// OrderType classifies what kind of goods an order carries.
// The type is chosen at placement and is immutable afterwards.
type OrderType string

const (
	TypeFood     OrderType = "food"
	TypePackage  OrderType = "package"
	TypeGrocery  OrderType = "grocery"
	TypePharmacy OrderType = "pharmacy"
)

// ParseOrderType parses a wire name into an OrderType.
// Returns an error for unrecognized names.
func ParseOrderType(raw string) (OrderType, error) {
	t := OrderType(raw)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks if the OrderType is one of the known kinds.
func (t OrderType) Validate() error {
	switch t {
	case TypeFood, TypePackage, TypeGrocery, TypePharmacy:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a valid order type", string(t)))
	}
}

// String returns the wire name of the order type.
func (t OrderType) String() string {
	return string(t)
}
