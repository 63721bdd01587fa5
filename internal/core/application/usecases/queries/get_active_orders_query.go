package queries

import (
	"errors"
	"time"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders that have not reached a terminal
// status. This is the operational work queue: everything still waiting on a
// shipment, an inspection outcome, or a buyer response.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for all non-terminal orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one row of the active-orders listing.
type GetActiveOrdersQueryResponse struct {
	ID        kernel.UUID
	Number    string
	Status    string
	BuyerName string
	Quote     string
	CreatedAt time.Time
}
