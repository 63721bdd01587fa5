package order

import (
	"errors"
	"fmt"
	"time"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNoReofferPresent indicates a resolution was attempted on an order
	// that has no re-offer sub-record. A conflict: the order's current state
	// does not admit the resolution.
	ErrNoReofferPresent = errs.NewConflictError("reoffer", "order has no re-offer to resolve")

	// ErrReofferDeadlineNotReached indicates an auto-accept was attempted
	// before the auto-resolve deadline. A conflict: the buyer still owns the
	// decision.
	ErrReofferDeadlineNotReached = errs.NewConflictError("reoffer", "re-offer deadline has not been reached")

	// ErrLabelAlreadyAttached indicates the outbound label fields are
	// already set; they are write-once.
	ErrLabelAlreadyAttached = errors.New("outbound label is already attached")

	// ErrReturnLabelAlreadyAttached indicates the return label fields are
	// already set; they are write-once.
	ErrReturnLabelAlreadyAttached = errors.New("return label is already attached")

	// ErrThreadAlreadyBound indicates the order is already correlated with a
	// different conversation thread.
	ErrThreadAlreadyBound = errors.New("order is already bound to a thread")
)

// Order is the aggregate root of a single buyback transaction, tracked from
// submission through payment or return.
//
// Invariants:
//   - id and number are assigned at creation and never change
//   - status only moves along the edges defined in the Status state machine
//   - each event timestamp is set at most once, at its transition
//   - label URL/tracking pairs are write-once and independent per direction
//   - the thread binding is set at most once
//
// Orders are never deleted; offer_accepted, auto_accepted and
// return_label_generated are terminal business states.
type Order struct {
	id       kernel.UUID
	number   kernel.OrderNumber
	shipping ShippingInfo
	quote    kernel.Money
	status   Status

	reoffer  *Reoffer
	threadID *string

	labelURL             string
	trackingNumber       string
	returnLabelURL       string
	returnTrackingNumber string

	createdAt         time.Time
	labelGeneratedAt  *time.Time
	acceptedAt        *time.Time
	declinedAt        *time.Time
	returnRequestedAt *time.Time

	isConstructed bool
}

// NewOrder creates a freshly submitted order in pending_shipment status.
// All inputs must be valid value objects; the order number is expected to be
// unique, which the number generator enforces against the store.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	shipping ShippingInfo,
	quote kernel.Money,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        PendingShipment,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setShipping(shipping),
		o.setQuote(quote),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. Used by repository
// adapters only; it validates the identifier value objects and the status but
// trusts the stored field combination.
func RestoreOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	shipping ShippingInfo,
	quote kernel.Money,
	status Status,
	reoffer *Reoffer,
	threadID *string,
	labelURL, trackingNumber string,
	returnLabelURL, returnTrackingNumber string,
	createdAt time.Time,
	labelGeneratedAt, acceptedAt, declinedAt, returnRequestedAt *time.Time,
) (*Order, error) {
	o := &Order{
		reoffer:              reoffer,
		threadID:             threadID,
		labelURL:             labelURL,
		trackingNumber:       trackingNumber,
		returnLabelURL:       returnLabelURL,
		returnTrackingNumber: returnTrackingNumber,
		createdAt:            createdAt,
		labelGeneratedAt:     labelGeneratedAt,
		acceptedAt:           acceptedAt,
		declinedAt:           declinedAt,
		returnRequestedAt:    returnRequestedAt,
		isConstructed:        true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setShipping(shipping),
		o.setQuote(quote),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
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

// ID returns the store-assigned primary identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-facing NN-NNN order number.
func (o *Order) Number() kernel.OrderNumber { return o.number }

// Shipping returns the buyer's shipping details.
func (o *Order) Shipping() ShippingInfo { return o.shipping }

// Quote returns the original offer made at submission.
func (o *Order) Quote() kernel.Money { return o.quote }

// Status returns the current lifecycle state.
func (o *Order) Status() Status { return o.status }

// Reoffer returns the current re-offer sub-record, or nil if none was ever
// issued.
func (o *Order) Reoffer() *Reoffer { return o.reoffer }

// ThreadID returns the external conversation thread identifier, or nil if no
// thread exists yet. A nil value is not an error; it means "no thread yet".
func (o *Order) ThreadID() *string { return o.threadID }

// LabelURL returns the outbound label URL, empty until attached.
func (o *Order) LabelURL() string { return o.labelURL }

// TrackingNumber returns the outbound tracking number, empty until attached.
func (o *Order) TrackingNumber() string { return o.trackingNumber }

// ReturnLabelURL returns the return label URL, empty until attached.
func (o *Order) ReturnLabelURL() string { return o.returnLabelURL }

// ReturnTrackingNumber returns the return tracking number, empty until
// attached.
func (o *Order) ReturnTrackingNumber() string { return o.returnTrackingNumber }

// CreatedAt returns when the order was submitted.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// LabelGeneratedAt returns when the outbound label transition happened.
func (o *Order) LabelGeneratedAt() *time.Time { return o.labelGeneratedAt }

// AcceptedAt returns when the re-offer was accepted, by the buyer or by
// auto-resolution.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// DeclinedAt returns when the buyer declined the re-offer.
func (o *Order) DeclinedAt() *time.Time { return o.declinedAt }

// ReturnRequestedAt returns when the return was requested.
func (o *Order) ReturnRequestedAt() *time.Time { return o.returnRequestedAt }

// MarkLabelGenerated transitions pending_shipment -> label_generated and
// stamps labelGeneratedAt. The label itself is attached separately once the
// provider call succeeds, so a provider failure never leaves the status
// inconsistent.
func (o *Order) MarkLabelGenerated(now time.Time) error {
	newStatus, err := o.status.GenerateLabel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.labelGeneratedAt = &now
	return nil
}

// SubmitReoffer transitions label_generated -> re_offer_pending and installs
// the re-offer sub-record. A later re-offer overwrites a previous, resolved
// one, but the state machine prevents a second re-offer while one is pending.
func (o *Order) SubmitReoffer(reoffer *Reoffer) error {
	if err := reoffer.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.SubmitReoffer()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.reoffer = reoffer
	return nil
}

// Accept transitions re_offer_pending -> offer_accepted. Fails if the
// re-offer was already resolved by a concurrent path.
func (o *Order) Accept(now time.Time) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}
	if o.reoffer == nil {
		return ErrNoReofferPresent
	}
	if err := o.reoffer.resolve(ResolutionAccepted, now); err != nil {
		return err
	}

	o.status = newStatus
	o.acceptedAt = &now
	return nil
}

// Decline transitions re_offer_pending -> return_requested. Declining a
// re-offer and requesting a return are the same event; both timestamps are
// stamped at this moment.
func (o *Order) Decline(now time.Time) error {
	newStatus, err := o.status.Decline()
	if err != nil {
		return err
	}
	if o.reoffer == nil {
		return ErrNoReofferPresent
	}
	if err := o.reoffer.resolve(ResolutionDeclined, now); err != nil {
		return err
	}

	o.status = newStatus
	o.declinedAt = &now
	o.returnRequestedAt = &now
	return nil
}

// AutoAccept transitions re_offer_pending -> auto_accepted. Only allowed once
// the auto-resolve deadline has passed; the scheduler sweep relies on the
// status precondition to stay idempotent across overlapping runs.
func (o *Order) AutoAccept(now time.Time) error {
	newStatus, err := o.status.AutoAccept()
	if err != nil {
		return err
	}
	if o.reoffer == nil {
		return ErrNoReofferPresent
	}
	if !o.reoffer.IsExpired(now) {
		return ErrReofferDeadlineNotReached
	}
	if err := o.reoffer.resolve(ResolutionAutoAccepted, now); err != nil {
		return err
	}

	o.status = newStatus
	o.acceptedAt = &now
	return nil
}

// MarkReturnLabelGenerated transitions return_requested ->
// return_label_generated.
func (o *Order) MarkReturnLabelGenerated() error {
	newStatus, err := o.status.GenerateReturnLabel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// TransitionTo applies the lifecycle transition whose target state is the
// given status. Backs the explicit update-status operation; targets that
// require a payload (re_offer_pending) or are initial (pending_shipment)
// cannot be reached this way.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	switch target {
	case LabelGenerated:
		return o.MarkLabelGenerated(now)
	case OfferAccepted:
		return o.Accept(now)
	case ReturnRequested:
		return o.Decline(now)
	case AutoAccepted:
		return o.AutoAccept(now)
	case ReturnLabelGenerated:
		return o.MarkReturnLabelGenerated()
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not directly reachable via a status update", target))
	}
}

// AttachLabel sets the outbound label fields once the provider call
// succeeded. Write-once: retrying a generation that already produced a label
// must not overwrite it.
func (o *Order) AttachLabel(labelURL, trackingNumber string) error {
	if labelURL == "" {
		return errs.NewValueIsRequiredError("label URL")
	}
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	if o.labelURL != "" {
		return ErrLabelAlreadyAttached
	}

	o.labelURL = labelURL
	o.trackingNumber = trackingNumber
	return nil
}

// AttachReturnLabel sets the return label fields once the provider call
// succeeded. Independent of the outbound pair.
func (o *Order) AttachReturnLabel(labelURL, trackingNumber string) error {
	if labelURL == "" {
		return errs.NewValueIsRequiredError("return label URL")
	}
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("return tracking number")
	}
	if o.returnLabelURL != "" {
		return ErrReturnLabelAlreadyAttached
	}

	o.returnLabelURL = labelURL
	o.returnTrackingNumber = trackingNumber
	return nil
}

// BindThread correlates the order with its external conversation thread.
// Set-once: binding the same thread again is a no-op, binding a different one
// is an error. The store-level conditional write is the real single-writer
// guarantee; this guard keeps the in-memory aggregate consistent.
func (o *Order) BindThread(threadID string) error {
	if threadID == "" {
		return errs.NewValueIsRequiredError("thread ID")
	}
	if o.threadID != nil {
		if *o.threadID == threadID {
			return nil
		}
		return ErrThreadAlreadyBound
	}

	o.threadID = &threadID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setShipping(shipping ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	o.shipping = shipping
	return nil
}

func (o *Order) setQuote(quote kernel.Money) error {
	if err := quote.Validate(); err != nil {
		return err
	}
	o.quote = quote
	return nil
}
