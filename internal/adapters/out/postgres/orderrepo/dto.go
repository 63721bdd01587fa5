// Package orderrepo implements order persistence over GORM: the DTO mapping
// between the Order aggregate and its relational shape, and the repository
// with the conditional writes the lifecycle depends on.
package orderrepo

import (
	"time"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate. The number
// column carries a unique index; it is the store-level arbiter of NN-NNN
// uniqueness under concurrent submissions.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number string    `gorm:"size:6;uniqueIndex;not null"`
	Status int       `gorm:"not null;index"`

	Shipping   ShippingDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	QuoteCents int64

	Reoffer ReofferDTO `gorm:"embedded;embeddedPrefix:reoffer_"`

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

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ShippingDTO is the embedded shipping block within the order row.
type ShippingDTO struct {
	Name       string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Email      string
	Phone      string
}

// ReofferDTO is the embedded re-offer sub-record. A nil PriceCents means the
// order never had a re-offer. The deadline column is indexed for the
// scheduler sweep.
type ReofferDTO struct {
	PriceCents *int64
	Reasons    []string `gorm:"serializer:json"`
	Comments   string
	CreatedAt  *time.Time
	Deadline   *time.Time `gorm:"index"`
	Resolution int
	ResolvedAt *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	shipping := o.Shipping()

	dto := OrderDTO{
		ID:     o.ID().Bytes(),
		Number: o.Number().String(),
		Status: int(o.Status()),
		Shipping: ShippingDTO{
			Name:       shipping.Name(),
			Street:     shipping.Street(),
			City:       shipping.City(),
			State:      shipping.State(),
			PostalCode: shipping.PostalCode(),
			Country:    shipping.Country(),
			Email:      shipping.Email(),
			Phone:      shipping.Phone(),
		},
		QuoteCents:           o.Quote().Cents(),
		ThreadID:             o.ThreadID(),
		LabelURL:             o.LabelURL(),
		TrackingNumber:       o.TrackingNumber(),
		ReturnLabelURL:       o.ReturnLabelURL(),
		ReturnTrackingNumber: o.ReturnTrackingNumber(),
		CreatedAt:            o.CreatedAt(),
		LabelGeneratedAt:     o.LabelGeneratedAt(),
		AcceptedAt:           o.AcceptedAt(),
		DeclinedAt:           o.DeclinedAt(),
		ReturnRequestedAt:    o.ReturnRequestedAt(),
	}

	if reoffer := o.Reoffer(); reoffer != nil {
		price := reoffer.NewPrice().Cents()
		created := reoffer.CreatedAt()
		deadline := reoffer.AutoResolveDeadline()
		dto.Reoffer = ReofferDTO{
			PriceCents: &price,
			Reasons:    reoffer.Reasons(),
			Comments:   reoffer.Comments(),
			CreatedAt:  &created,
			Deadline:   &deadline,
			Resolution: int(reoffer.Resolution()),
			ResolvedAt: reoffer.ResolvedAt(),
		}
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.NewOrderNumber(dto.Number)
	if err != nil {
		return nil, err
	}

	shipping, err := order.NewShippingInfo(
		dto.Shipping.Name,
		dto.Shipping.Street,
		dto.Shipping.City,
		dto.Shipping.State,
		dto.Shipping.PostalCode,
		dto.Shipping.Country,
		dto.Shipping.Email,
		dto.Shipping.Phone,
	)
	if err != nil {
		return nil, err
	}

	quote, err := kernel.MoneyFromCents(dto.QuoteCents)
	if err != nil {
		return nil, err
	}

	var reoffer *order.Reoffer
	if dto.Reoffer.PriceCents != nil {
		price, priceErr := kernel.MoneyFromCents(*dto.Reoffer.PriceCents)
		if priceErr != nil {
			return nil, priceErr
		}

		reoffer, err = order.RestoreReoffer(
			price,
			dto.Reoffer.Reasons,
			dto.Reoffer.Comments,
			derefTime(dto.Reoffer.CreatedAt),
			derefTime(dto.Reoffer.Deadline),
			order.Resolution(dto.Reoffer.Resolution),
			dto.Reoffer.ResolvedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		number,
		shipping,
		quote,
		order.Status(dto.Status),
		reoffer,
		dto.ThreadID,
		dto.LabelURL,
		dto.TrackingNumber,
		dto.ReturnLabelURL,
		dto.ReturnTrackingNumber,
		dto.CreatedAt,
		dto.LabelGeneratedAt,
		dto.AcceptedAt,
		dto.DeclinedAt,
		dto.ReturnRequestedAt,
	)
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
