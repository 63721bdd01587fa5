package services

import (
	"context"

	"buyback/internal/core/domain/model/order"
	domainservices "buyback/internal/core/domain/services"
	"buyback/internal/core/ports"
	"buyback/internal/pkg/errs"
)

// LabelResolver turns an order plus a direction into a purchased label.
// It is idempotent per direction: when the order already carries a label for
// the requested direction, the stored pair is returned and the provider is
// not called again. That is what makes label-generation retries safe after a
// committed transition whose provider call failed.
type LabelResolver struct {
	router   *domainservices.LabelRouter
	provider ports.LabelProvider
}

// NewLabelResolver creates a LabelResolver.
func NewLabelResolver(router *domainservices.LabelRouter, provider ports.LabelProvider) (*LabelResolver, error) {
	if err := router.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errs.NewValueIsRequiredError("provider")
	}

	return &LabelResolver{router: router, provider: provider}, nil
}

// Resolve returns the label for the order in the given direction, purchasing
// one from the provider if the order does not carry it yet. Provider failures
// are reported as upstream failures; the caller's committed state stands.
func (r *LabelResolver) Resolve(
	ctx context.Context, o *order.Order, direction domainservices.LabelDirection,
) (ports.LabelInfo, error) {
	if err := o.Validate(); err != nil {
		return ports.LabelInfo{}, err
	}

	switch direction {
	case domainservices.Outbound:
		if o.LabelURL() != "" {
			return ports.LabelInfo{LabelURL: o.LabelURL(), TrackingNumber: o.TrackingNumber()}, nil
		}
	case domainservices.Return:
		if o.ReturnLabelURL() != "" {
			return ports.LabelInfo{LabelURL: o.ReturnLabelURL(), TrackingNumber: o.ReturnTrackingNumber()}, nil
		}
	}

	route, err := r.router.Route(o, direction)
	if err != nil {
		return ports.LabelInfo{}, err
	}

	info, err := r.provider.CreateLabel(ctx, route)
	if err != nil {
		return ports.LabelInfo{}, errs.NewUpstreamFailureError("shipping label", err)
	}

	return info, nil
}
