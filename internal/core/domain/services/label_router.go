package services

import (
	"errors"
	"fmt"

	"buyback/internal/core/domain/model/order"
	"buyback/internal/pkg/errs"
)

// LabelDirection selects which party ships and which receives.
type LabelDirection int

const (
	// DirectionUnknown represents an invalid or undefined direction.
	DirectionUnknown LabelDirection = iota

	// Outbound ships the device customer -> business.
	Outbound

	// Return ships the device business -> customer.
	Return
)

// DirectionFromString parses "outbound" or "return".
func DirectionFromString(s string) (LabelDirection, error) {
	switch s {
	case "outbound":
		return Outbound, nil
	case "return":
		return Return, nil
	default:
		return DirectionUnknown, errs.NewValueIsInvalidErrorWithCause("label direction",
			fmt.Errorf("%q is not a valid direction", s))
	}
}

// String returns the wire-format name of the direction.
func (d LabelDirection) String() string {
	switch d {
	case Outbound:
		return "outbound"
	case Return:
		return "return"
	default:
		return "unknown"
	}
}

// Party is one side of a shipping label.
type Party struct {
	Name       string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// Parcel describes the package forwarded to the label provider.
type Parcel struct {
	LengthIn float64
	WidthIn  float64
	HeightIn float64
	WeightOz float64
}

// DefaultDeviceParcel is the standard box used for buyback devices.
var DefaultDeviceParcel = Parcel{LengthIn: 9, WidthIn: 6, HeightIn: 2, WeightOz: 16}

// LabelRoute is a fully resolved label request: who ships, who receives,
// the parcel, and the human-readable order reference printed on the label.
type LabelRoute struct {
	ShipFrom  Party
	ShipTo    Party
	Parcel    Parcel
	Reference string
}

// ErrLabelRouterIsNotConstructed is returned when a LabelRouter instance was
// not created through NewLabelRouter.
var ErrLabelRouterIsNotConstructed = errors.New("LabelRouter must be created via NewLabelRouter constructor")

// LabelRouter resolves the address pair for a label request from an order and
// a direction. It is a pure domain service; the actual provider call lives
// behind ports.LabelProvider.
type LabelRouter struct {
	business Party

	isConstructed bool
}

// NewLabelRouter creates a router shipping to and from the given business
// warehouse address. All address fields except phone are required.
func NewLabelRouter(business Party) (*LabelRouter, error) {
	if err := errors.Join(
		requireAddressField("business name", business.Name),
		requireAddressField("business street", business.Street),
		requireAddressField("business city", business.City),
		requireAddressField("business state", business.State),
		requireAddressField("business postal code", business.PostalCode),
		requireAddressField("business country", business.Country),
	); err != nil {
		return nil, err
	}

	return &LabelRouter{business: business, isConstructed: true}, nil
}

// Validate ensures the router was created through NewLabelRouter.
func (r *LabelRouter) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrLabelRouterIsNotConstructed
	}
	return nil
}

// Route builds the label route for the order in the given direction.
//
// Fails fast on incomplete customer shipping fields instead of forwarding bad
// data to the provider. The order's NN-NNN number is attached as the label
// reference so the physical label stays traceable without the store key.
func (r *LabelRouter) Route(o *order.Order, direction LabelDirection) (LabelRoute, error) {
	if err := r.Validate(); err != nil {
		return LabelRoute{}, err
	}
	if err := o.Validate(); err != nil {
		return LabelRoute{}, err
	}

	shipping := o.Shipping()
	if err := shipping.Validate(); err != nil {
		return LabelRoute{}, err
	}
	if err := errors.Join(
		requireAddressField("shipping name", shipping.Name()),
		requireAddressField("shipping street", shipping.Street()),
		requireAddressField("shipping city", shipping.City()),
		requireAddressField("shipping state", shipping.State()),
		requireAddressField("shipping postal code", shipping.PostalCode()),
	); err != nil {
		return LabelRoute{}, err
	}

	customer := Party{
		Name:       shipping.Name(),
		Street:     shipping.Street(),
		City:       shipping.City(),
		State:      shipping.State(),
		PostalCode: shipping.PostalCode(),
		Country:    shipping.Country(),
		Phone:      shipping.Phone(),
	}

	route := LabelRoute{
		Parcel:    DefaultDeviceParcel,
		Reference: o.Number().String(),
	}

	switch direction {
	case Outbound:
		route.ShipFrom = customer
		route.ShipTo = r.business
	case Return:
		route.ShipFrom = r.business
		route.ShipTo = customer
	default:
		return LabelRoute{}, errs.NewValueIsInvalidErrorWithCause("label direction",
			fmt.Errorf("%d is not a valid direction", direction))
	}

	return route, nil
}

func requireAddressField(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
