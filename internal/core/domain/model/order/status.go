package order

import (
	"fmt"

	"buyback/internal/pkg/errs"
)

// Status represents the lifecycle state of a buyback order. It implements a
// state machine with a closed edge set; every mutation goes through a
// transition method that validates the current state first.
type Status int

const (
	// Unknown represents an invalid or undefined status. This value (0)
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingShipment is the initial status after submission. The buyer has
	// a quote and the device has not shipped yet.
	PendingShipment

	// LabelGenerated indicates an outbound shipping label exists (or is
	// being generated) for the buyer to send the device in.
	LabelGenerated

	// ReofferPending indicates a revised price was proposed after inspection
	// and the buyer has not yet responded.
	ReofferPending

	// OfferAccepted indicates the buyer accepted the revised price.
	// Terminal for this service.
	OfferAccepted

	// ReturnRequested indicates the buyer declined the revised price and the
	// device goes back to the buyer.
	ReturnRequested

	// AutoAccepted indicates the re-offer resolved automatically because the
	// buyer did not respond before the deadline. Terminal for this service.
	AutoAccepted

	// ReturnLabelGenerated indicates a return label exists for shipping the
	// device back. Terminal for this service.
	ReturnLabelGenerated
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "unknown",
		PendingShipment:      "pending_shipment",
		LabelGenerated:       "label_generated",
		ReofferPending:       "re_offer_pending",
		OfferAccepted:        "offer_accepted",
		ReturnRequested:      "return_requested",
		AutoAccepted:         "auto_accepted",
		ReturnLabelGenerated: "return_label_generated",
	}
}

// transitions is the closed edge set of the lifecycle. A status missing from
// the map is terminal.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		PendingShipment: {LabelGenerated},
		LabelGenerated:  {ReofferPending},
		ReofferPending:  {OfferAccepted, ReturnRequested, AutoAccepted},
		ReturnRequested: {ReturnLabelGenerated},
	}
}

// StatusFromString parses a wire-format status name ("pending_shipment",
// "re_offer_pending", ...). Returns an error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status name", s))
}

// String returns the wire-format name of the status. Implements fmt.Stringer
// and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	if s.Validate() != nil {
		return false
	}
	return len(transitions()[s]) == 0
}

// CanTransitionTo reports whether the edge s -> target exists.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the transition to target.
//
// Returns:
//   - (target, nil) when the edge exists
//   - (0, error) when the transition is not allowed from the current status
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewConflictError("status",
			fmt.Sprintf("cannot transition from %s to %s", s, target))
	}
	return target, nil
}

// GenerateLabel transitions pending_shipment -> label_generated.
func (s Status) GenerateLabel() (Status, error) {
	return s.TransitionTo(LabelGenerated)
}

// SubmitReoffer transitions label_generated -> re_offer_pending.
func (s Status) SubmitReoffer() (Status, error) {
	return s.TransitionTo(ReofferPending)
}

// Accept transitions re_offer_pending -> offer_accepted. Any other current
// status means the re-offer was already resolved by a concurrent path.
func (s Status) Accept() (Status, error) {
	return s.TransitionTo(OfferAccepted)
}

// Decline transitions re_offer_pending -> return_requested.
func (s Status) Decline() (Status, error) {
	return s.TransitionTo(ReturnRequested)
}

// AutoAccept transitions re_offer_pending -> auto_accepted.
func (s Status) AutoAccept() (Status, error) {
	return s.TransitionTo(AutoAccepted)
}

// GenerateReturnLabel transitions return_requested -> return_label_generated.
func (s Status) GenerateReturnLabel() (Status, error) {
	return s.TransitionTo(ReturnLabelGenerated)
}
