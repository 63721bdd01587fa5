// Package queries holds the read side of the application layer. Query
// handlers bypass the aggregate and read the order rows directly, returning
// plain response structs shaped for the HTTP layer.
package queries

import (
	"errors"
	"time"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/pkg/errs"
	"buyback/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQueryByID or NewGetOrderQueryByNumber",
)

// GetOrderQuery retrieves a single order by its internal UUID or by its
// human-facing NN-NNN number. Exactly one of the two is set, depending on
// which constructor built the query.
type GetOrderQuery struct {
	id     *kernel.UUID
	number *kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewGetOrderQueryByID creates a query that looks the order up by UUID.
func NewGetOrderQueryByID(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: &id, guard: guard.NewConstructorGuard()}, nil
}

// NewGetOrderQueryByNumber creates a query that looks the order up by its
// NN-NNN number.
func NewGetOrderQueryByNumber(number kernel.OrderNumber) (GetOrderQuery, error) {
	if err := number.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{number: &number, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the UUID criterion, or nil when the query is by number.
func (q GetOrderQuery) ID() *kernel.UUID {
	return q.id
}

// Number returns the order number criterion, or nil when the query is by ID.
func (q GetOrderQuery) Number() *kernel.OrderNumber {
	return q.number
}

// Validate ensures the query was created through a constructor and carries a
// lookup criterion.
func (q GetOrderQuery) Validate() error {
	if err := q.guard.Validate(ErrGetOrderQueryIsNotConstructed); err != nil {
		return err
	}
	if q.id == nil && q.number == nil {
		return errs.NewValueIsRequiredError("order reference")
	}
	return nil
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID       kernel.UUID
	Number   string
	Status   string
	Shipping ShippingResponse
	Quote    string

	Reoffer *ReofferResponse

	ThreadID *string

	LabelURL             string
	TrackingNumber       string
	ReturnLabelURL       string
	ReturnTrackingNumber string

	CreatedAt         time.Time
	LabelGeneratedAt  *time.Time
	AcceptedAt        *time.Time
	DeclinedAt        *time.Time
	ReturnRequestedAt *time.Time
}

// ShippingResponse is the shipping block of the order read model.
type ShippingResponse struct {
	Name       string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Email      string
	Phone      string
}

// ReofferResponse is the re-offer block of the order read model. Present only
// when a re-offer was submitted for the order.
type ReofferResponse struct {
	NewPrice   string
	Reasons    []string
	Comments   string
	CreatedAt  time.Time
	Deadline   time.Time
	Resolution string
	ResolvedAt *time.Time
}
