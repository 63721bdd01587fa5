package http

import (
	"time"

	"buyback/internal/core/application/usecases/queries"
)

// Error is the API error envelope.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ShippingAddress is the buyer's shipping block on the wire.
type ShippingAddress struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// SubmitOrderRequest is the payload of POST /api/v1/orders.
type SubmitOrderRequest struct {
	Shipping ShippingAddress `json:"shipping"`
	Quote    float64         `json:"quote"`
}

// SubmitOrderResponse is the reply to a successful order submission.
type SubmitOrderResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// SubmitReofferRequest is the payload of POST /api/v1/orders/:ref/reoffer.
type SubmitReofferRequest struct {
	NewPrice float64  `json:"new_price"`
	Reasons  []string `json:"reasons"`
	Comments string   `json:"comments"`
}

// UpdateStatusRequest is the payload of PATCH /api/v1/orders/:ref/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ActiveOrder is one row of the active-orders listing.
type ActiveOrder struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	BuyerName string    `json:"buyer_name"`
	Quote     string    `json:"quote"`
	CreatedAt time.Time `json:"created_at"`
}

// ReofferView is the re-offer block of the order view.
type ReofferView struct {
	NewPrice   string     `json:"new_price"`
	Reasons    []string   `json:"reasons"`
	Comments   string     `json:"comments,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	Deadline   time.Time  `json:"deadline"`
	Resolution string     `json:"resolution"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// OrderView is the full order representation returned by the API.
type OrderView struct {
	ID       string          `json:"id"`
	Number   string          `json:"number"`
	Status   string          `json:"status"`
	Shipping ShippingAddress `json:"shipping"`
	Quote    string          `json:"quote"`

	Reoffer *ReofferView `json:"reoffer,omitempty"`

	ThreadID *string `json:"thread_id,omitempty"`

	LabelURL             string `json:"label_url,omitempty"`
	TrackingNumber       string `json:"tracking_number,omitempty"`
	ReturnLabelURL       string `json:"return_label_url,omitempty"`
	ReturnTrackingNumber string `json:"return_tracking_number,omitempty"`

	CreatedAt         time.Time  `json:"created_at"`
	LabelGeneratedAt  *time.Time `json:"label_generated_at,omitempty"`
	AcceptedAt        *time.Time `json:"accepted_at,omitempty"`
	DeclinedAt        *time.Time `json:"declined_at,omitempty"`
	ReturnRequestedAt *time.Time `json:"return_requested_at,omitempty"`
}

func toOrderView(r queries.GetOrderQueryResponse) OrderView {
	view := OrderView{
		ID:     r.ID.String(),
		Number: r.Number,
		Status: r.Status,
		Shipping: ShippingAddress{
			Name:       r.Shipping.Name,
			Street:     r.Shipping.Street,
			City:       r.Shipping.City,
			State:      r.Shipping.State,
			PostalCode: r.Shipping.PostalCode,
			Country:    r.Shipping.Country,
			Email:      r.Shipping.Email,
			Phone:      r.Shipping.Phone,
		},
		Quote:                r.Quote,
		ThreadID:             r.ThreadID,
		LabelURL:             r.LabelURL,
		TrackingNumber:       r.TrackingNumber,
		ReturnLabelURL:       r.ReturnLabelURL,
		ReturnTrackingNumber: r.ReturnTrackingNumber,
		CreatedAt:            r.CreatedAt,
		LabelGeneratedAt:     r.LabelGeneratedAt,
		AcceptedAt:           r.AcceptedAt,
		DeclinedAt:           r.DeclinedAt,
		ReturnRequestedAt:    r.ReturnRequestedAt,
	}

	if r.Reoffer != nil {
		view.Reoffer = &ReofferView{
			NewPrice:   r.Reoffer.NewPrice,
			Reasons:    r.Reoffer.Reasons,
			Comments:   r.Reoffer.Comments,
			CreatedAt:  r.Reoffer.CreatedAt,
			Deadline:   r.Reoffer.Deadline,
			Resolution: r.Reoffer.Resolution,
			ResolvedAt: r.Reoffer.ResolvedAt,
		}
	}

	return view
}
