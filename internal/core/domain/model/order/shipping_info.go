package order

import (
	"errors"

	"buyback/internal/pkg/errs"
	"buyback/internal/pkg/guard"
)

// ErrShippingInfoIsNotConstructed is returned when a ShippingInfo instance
// was not created through NewShippingInfo.
var ErrShippingInfoIsNotConstructed = errors.New(
	"ShippingInfo must be created via NewShippingInfo constructor")

// ShippingInfo is the buyer's name, address and contact details. It is
// required before any label can be generated and is not changed once the
// order leaves pending_shipment, so labels and ticket messages always refer
// to the address the quote was made against.
//
// Name, street, city, state, postal code and email are required. Country
// defaults to "US"; phone is optional.
type ShippingInfo struct {
	name       string
	street     string
	city       string
	state      string
	postalCode string
	country    string
	email      string
	phone      string

	guard guard.ConstructorGuard
}

// NewShippingInfo creates a validated ShippingInfo value.
func NewShippingInfo(name, street, city, state, postalCode, country, email, phone string) (ShippingInfo, error) {
	if country == "" {
		country = "US"
	}

	info := ShippingInfo{
		name:       name,
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
		email:      email,
		phone:      phone,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireField("shipping name", name),
		requireField("shipping street", street),
		requireField("shipping city", city),
		requireField("shipping state", state),
		requireField("shipping postal code", postalCode),
		requireField("shipping email", email),
	); err != nil {
		return ShippingInfo{}, err
	}

	return info, nil
}

func requireField(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

// Name returns the buyer's full name.
func (s ShippingInfo) Name() string { return s.name }

// Street returns the street address line.
func (s ShippingInfo) Street() string { return s.street }

// City returns the city.
func (s ShippingInfo) City() string { return s.city }

// State returns the state or region code.
func (s ShippingInfo) State() string { return s.state }

// PostalCode returns the postal code.
func (s ShippingInfo) PostalCode() string { return s.postalCode }

// Country returns the country code.
func (s ShippingInfo) Country() string { return s.country }

// Email returns the buyer's contact email, used as the ticket requester.
func (s ShippingInfo) Email() string { return s.email }

// Phone returns the buyer's phone number, possibly empty.
func (s ShippingInfo) Phone() string { return s.phone }

// Validate ensures the value was created through NewShippingInfo.
func (s ShippingInfo) Validate() error {
	return s.guard.Validate(ErrShippingInfoIsNotConstructed)
}
