package ports

import (
	"context"

	"buyback/internal/core/domain/services"
)

// LabelInfo is the provider's answer to a successful label request.
type LabelInfo struct {
	LabelURL       string
	TrackingNumber string
}

// LabelProvider is the external shipping-label collaborator. The route
// already carries the resolved from/to pair, parcel and order reference;
// the provider only prints it.
type LabelProvider interface {
	// CreateLabel purchases a shipping label for the given route.
	CreateLabel(ctx context.Context, route services.LabelRoute) (LabelInfo, error)
}
