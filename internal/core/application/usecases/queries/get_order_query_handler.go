package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"
	"buyback/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order row and maps it to the full read
// model, re-offer block included.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns an object-not-found error when no
// order matches the criterion.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	const selectOrder = `
		SELECT
			id,
			number,
			status,
			shipping_name,
			shipping_street,
			shipping_city,
			shipping_state,
			shipping_postal_code,
			shipping_country,
			shipping_email,
			shipping_phone,
			quote_cents,
			reoffer_price_cents,
			reoffer_reasons,
			reoffer_comments,
			reoffer_created_at,
			reoffer_deadline,
			reoffer_resolution,
			reoffer_resolved_at,
			thread_id,
			label_url,
			tracking_number,
			return_label_url,
			return_tracking_number,
			created_at,
			label_generated_at,
			accepted_at,
			declined_at,
			return_requested_at
		FROM orders
	`

	var rows *sql.Rows
	var err error
	switch {
	case query.ID() != nil:
		rows, err = h.db.WithContext(ctx).
			Raw(selectOrder+"WHERE id = ?", query.ID().Bytes()).Rows()
	default:
		rows, err = h.db.WithContext(ctx).
			Raw(selectOrder+"WHERE number = ?", query.Number().String()).Rows()
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return GetOrderQueryResponse{}, rowsErr
		}
		if query.ID() != nil {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.ID().String())
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.Number().String())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

// scanOrderRow maps one row of the selectOrder column list to the read model.
func scanOrderRow(rows *sql.Rows) (GetOrderQueryResponse, error) {
	var (
		id         uuid.UUID
		status     int
		quoteCents int64

		reofferPriceCents sql.NullInt64
		reofferReasons    sql.NullString
		reofferComments   sql.NullString
		reofferCreatedAt  sql.NullTime
		reofferDeadline   sql.NullTime
		reofferResolution sql.NullInt64
		reofferResolvedAt sql.NullTime

		threadID sql.NullString

		labelGeneratedAt  sql.NullTime
		acceptedAt        sql.NullTime
		declinedAt        sql.NullTime
		returnRequestedAt sql.NullTime
	)

	var resp GetOrderQueryResponse
	err := rows.Scan(
		&id,
		&resp.Number,
		&status,
		&resp.Shipping.Name,
		&resp.Shipping.Street,
		&resp.Shipping.City,
		&resp.Shipping.State,
		&resp.Shipping.PostalCode,
		&resp.Shipping.Country,
		&resp.Shipping.Email,
		&resp.Shipping.Phone,
		&quoteCents,
		&reofferPriceCents,
		&reofferReasons,
		&reofferComments,
		&reofferCreatedAt,
		&reofferDeadline,
		&reofferResolution,
		&reofferResolvedAt,
		&threadID,
		&resp.LabelURL,
		&resp.TrackingNumber,
		&resp.ReturnLabelURL,
		&resp.ReturnTrackingNumber,
		&resp.CreatedAt,
		&labelGeneratedAt,
		&acceptedAt,
		&declinedAt,
		&returnRequestedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID
	resp.Status = order.Status(status).String()

	quote, err := kernel.MoneyFromCents(quoteCents)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Quote = quote.String()

	if reofferPriceCents.Valid {
		price, priceErr := kernel.MoneyFromCents(reofferPriceCents.Int64)
		if priceErr != nil {
			return GetOrderQueryResponse{}, priceErr
		}

		var reasons []string
		if reofferReasons.String != "" {
			if jsonErr := json.Unmarshal([]byte(reofferReasons.String), &reasons); jsonErr != nil {
				return GetOrderQueryResponse{}, jsonErr
			}
		}

		resp.Reoffer = &ReofferResponse{
			NewPrice:   price.String(),
			Reasons:    reasons,
			Comments:   reofferComments.String,
			CreatedAt:  reofferCreatedAt.Time,
			Deadline:   reofferDeadline.Time,
			Resolution: order.Resolution(reofferResolution.Int64).String(),
			ResolvedAt: nullableTime(reofferResolvedAt),
		}
	}

	if threadID.Valid {
		resp.ThreadID = &threadID.String
	}
	resp.LabelGeneratedAt = nullableTime(labelGeneratedAt)
	resp.AcceptedAt = nullableTime(acceptedAt)
	resp.DeclinedAt = nullableTime(declinedAt)
	resp.ReturnRequestedAt = nullableTime(returnRequestedAt)

	return resp, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
