// Package shiplabel implements ports.LabelProvider over the shipping label
// vendor's REST API.
package shiplabel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"buyback/internal/core/domain/services"
	"buyback/internal/core/ports"
	"buyback/internal/pkg/errs"
)

const requestTimeout = 15 * time.Second

// Client talks to the label vendor. Create it via NewClient.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a label client for the given API endpoint and key.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("base URL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("API key")
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

type addressPayload struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type parcelPayload struct {
	LengthIn float64 `json:"length_in"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	WeightOz float64 `json:"weight_oz"`
}

type createLabelRequest struct {
	ShipFrom  addressPayload `json:"ship_from"`
	ShipTo    addressPayload `json:"ship_to"`
	Parcel    parcelPayload  `json:"parcel"`
	Reference string         `json:"reference"`
}

type createLabelResponse struct {
	LabelURL       string `json:"label_url"`
	TrackingNumber string `json:"tracking_number"`
}

// CreateLabel purchases a shipping label for the route.
func (c *Client) CreateLabel(
	ctx context.Context, route services.LabelRoute,
) (ports.LabelInfo, error) {
	payload := createLabelRequest{
		ShipFrom:  toAddressPayload(route.ShipFrom),
		ShipTo:    toAddressPayload(route.ShipTo),
		Parcel:    parcelPayload(route.Parcel),
		Reference: route.Reference,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.LabelInfo{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/labels", bytes.NewReader(body))
	if err != nil {
		return ports.LabelInfo{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.LabelInfo{}, fmt.Errorf("shiplabel: create label: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.LabelInfo{}, fmt.Errorf("shiplabel: create label returned status %d", resp.StatusCode)
	}

	var decoded createLabelResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.LabelInfo{}, fmt.Errorf("shiplabel: decode create label response: %w", err)
	}

	if decoded.LabelURL == "" || decoded.TrackingNumber == "" {
		return ports.LabelInfo{}, fmt.Errorf("shiplabel: create label returned an incomplete label")
	}

	return ports.LabelInfo{
		LabelURL:       decoded.LabelURL,
		TrackingNumber: decoded.TrackingNumber,
	}, nil
}

func toAddressPayload(p services.Party) addressPayload {
	return addressPayload{
		Name:       p.Name,
		Street:     p.Street,
		City:       p.City,
		State:      p.State,
		PostalCode: p.PostalCode,
		Country:    p.Country,
		Phone:      p.Phone,
	}
}
