package shiplabel_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"buyback/internal/adapters/out/shiplabel"
	"buyback/internal/core/domain/services"
	"buyback/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func testRoute() services.LabelRoute {
	return services.LabelRoute{
		ShipFrom: services.Party{
			Name:       "Ada Lovelace",
			Street:     "12 Analytical Way",
			City:       "Reno",
			State:      "NV",
			PostalCode: "89501",
			Country:    "US",
			Phone:      "+1 775 555 0100",
		},
		ShipTo: services.Party{
			Name:       "Gadget Buyback Inc",
			Street:     "400 Warehouse Rd",
			City:       "Reno",
			State:      "NV",
			PostalCode: "89506",
			Country:    "US",
		},
		Parcel:    services.DefaultDeviceParcel,
		Reference: "42-007",
	}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := shiplabel.NewClient("", "key")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = shiplabel.NewClient("https://labels.example.com", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestClient_CreateLabel(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"label_url":       "https://labels/out.pdf",
			"tracking_number": "TRK-OUT",
		})
	}))
	defer server.Close()

	client, err := shiplabel.NewClient(server.URL, "key")
	require.NoError(t, err)

	info, err := client.CreateLabel(t.Context(), testRoute())

	require.NoError(t, err)
	require.Equal(t, "https://labels/out.pdf", info.LabelURL)
	require.Equal(t, "TRK-OUT", info.TrackingNumber)
	require.Equal(t, "/labels", gotPath)
	require.Equal(t, "key", gotKey)
	require.Equal(t, "42-007", gotBody["reference"])

	from, ok := gotBody["ship_from"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Ada Lovelace", from["name"])

	to, ok := gotBody["ship_to"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Gadget Buyback Inc", to["name"])

	parcel, ok := gotBody["parcel"].(map[string]any)
	require.True(t, ok)
	require.InDelta(t, 16.0, parcel["weight_oz"], 0.001)
}

func TestClient_CreateLabel_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := shiplabel.NewClient(server.URL, "key")
	require.NoError(t, err)

	_, err = client.CreateLabel(t.Context(), testRoute())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 502")
}

func TestClient_CreateLabel_IncompleteResponseIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"label_url": "https://labels/out.pdf"})
	}))
	defer server.Close()

	client, err := shiplabel.NewClient(server.URL, "key")
	require.NoError(t, err)

	_, err = client.CreateLabel(t.Context(), testRoute())
	require.Error(t, err)
	require.Contains(t, err.Error(), "incomplete label")
}
