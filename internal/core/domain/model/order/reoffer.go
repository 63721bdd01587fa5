package order

import (
	"errors"
	"fmt"
	"time"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/pkg/errs"
	"buyback/internal/pkg/guard"
)

// ReofferResponseWindow is how long the buyer has to accept or decline a
// re-offer before it auto-resolves as accepted.
const ReofferResponseWindow = 7 * 24 * time.Hour

var (
	// ErrReofferIsNotConstructed is returned when a Reoffer instance was not
	// created through NewReoffer or RestoreReoffer.
	ErrReofferIsNotConstructed = errors.New("Reoffer must be created via NewReoffer constructor")

	// ErrReofferAlreadyResolved indicates the resolution fields were already
	// set; they are write-once.
	ErrReofferAlreadyResolved = errors.New("re-offer is already resolved")
)

// Resolution records how a re-offer was resolved.
type Resolution int

const (
	// ResolutionNone means the re-offer is still awaiting a response.
	ResolutionNone Resolution = iota

	// ResolutionAccepted means the buyer accepted the revised price.
	ResolutionAccepted

	// ResolutionDeclined means the buyer declined and requested a return.
	ResolutionDeclined

	// ResolutionAutoAccepted means the deadline passed with no response.
	ResolutionAutoAccepted
)

// String returns the wire-format name of the resolution.
func (r Resolution) String() string {
	switch r {
	case ResolutionAccepted:
		return "accepted"
	case ResolutionDeclined:
		return "declined"
	case ResolutionAutoAccepted:
		return "auto_accepted"
	default:
		return "none"
	}
}

// Reoffer is the revised price proposal issued after physical inspection of
// the device. It is present on an order only from submission of the re-offer
// onward; a later re-offer on the same order overwrites the previous
// sub-record. The resolution fields are set exactly once.
type Reoffer struct {
	newPrice            kernel.Money
	reasons             []string
	comments            string
	createdAt           time.Time
	autoResolveDeadline time.Time

	resolution Resolution
	resolvedAt *time.Time

	guard guard.ConstructorGuard
}

// NewReoffer creates a pending re-offer. The price must be a valid positive
// amount and at least one non-empty reason is required. The auto-resolve
// deadline is fixed at now + ReofferResponseWindow and is never moved by
// anything except a fresh re-offer.
func NewReoffer(newPrice kernel.Money, reasons []string, comments string, now time.Time) (*Reoffer, error) {
	if err := newPrice.Validate(); err != nil {
		return nil, err
	}
	if len(reasons) == 0 {
		return nil, errs.NewValueIsRequiredError("re-offer reasons")
	}
	for _, reason := range reasons {
		if reason == "" {
			return nil, errs.NewValueIsInvalidErrorWithCause("re-offer reasons",
				fmt.Errorf("reasons must not contain empty entries"))
		}
	}

	return &Reoffer{
		newPrice:            newPrice,
		reasons:             append([]string(nil), reasons...),
		comments:            comments,
		createdAt:           now,
		autoResolveDeadline: now.Add(ReofferResponseWindow),
		resolution:          ResolutionNone,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// RestoreReoffer reconstructs a re-offer from persistence, including its
// resolution state.
func RestoreReoffer(
	newPrice kernel.Money,
	reasons []string,
	comments string,
	createdAt time.Time,
	autoResolveDeadline time.Time,
	resolution Resolution,
	resolvedAt *time.Time,
) (*Reoffer, error) {
	if err := newPrice.Validate(); err != nil {
		return nil, err
	}
	if len(reasons) == 0 {
		return nil, errs.NewValueIsRequiredError("re-offer reasons")
	}

	return &Reoffer{
		newPrice:            newPrice,
		reasons:             append([]string(nil), reasons...),
		comments:            comments,
		createdAt:           createdAt,
		autoResolveDeadline: autoResolveDeadline,
		resolution:          resolution,
		resolvedAt:          resolvedAt,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// NewPrice returns the revised price.
func (r *Reoffer) NewPrice() kernel.Money {
	return r.newPrice
}

// Reasons returns a copy of the inspection reasons behind the re-offer.
func (r *Reoffer) Reasons() []string {
	return append([]string(nil), r.reasons...)
}

// Comments returns the free-form inspector comments, possibly empty.
func (r *Reoffer) Comments() string {
	return r.comments
}

// CreatedAt returns when the re-offer was issued.
func (r *Reoffer) CreatedAt() time.Time {
	return r.createdAt
}

// AutoResolveDeadline returns the moment after which the scheduler may
// force-accept the re-offer.
func (r *Reoffer) AutoResolveDeadline() time.Time {
	return r.autoResolveDeadline
}

// IsResolved reports whether the resolution fields have been set.
func (r *Reoffer) IsResolved() bool {
	return r.resolution != ResolutionNone
}

// IsExpired reports whether the auto-resolve deadline has passed.
func (r *Reoffer) IsExpired(now time.Time) bool {
	return !now.Before(r.autoResolveDeadline)
}

// Resolution returns how the re-offer was resolved, or ResolutionNone while
// pending.
func (r *Reoffer) Resolution() Resolution {
	return r.resolution
}

// ResolvedAt returns when the re-offer was resolved, or nil while pending.
func (r *Reoffer) ResolvedAt() *time.Time {
	return r.resolvedAt
}

// Validate ensures the re-offer was created through a constructor.
func (r *Reoffer) Validate() error {
	if r == nil {
		return ErrReofferIsNotConstructed
	}
	return r.guard.Validate(ErrReofferIsNotConstructed)
}

// resolve sets the resolution fields. They are write-once: resolving an
// already-resolved re-offer is an error regardless of the kind.
func (r *Reoffer) resolve(kind Resolution, now time.Time) error {
	if kind == ResolutionNone {
		return errs.NewValueIsInvalidError("resolution")
	}
	if r.IsResolved() {
		return ErrReofferAlreadyResolved
	}

	r.resolution = kind
	r.resolvedAt = &now
	return nil
}
