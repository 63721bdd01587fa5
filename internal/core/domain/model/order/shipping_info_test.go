package order_test

import (
	"testing"

	"buyback/internal/core/domain/model/order"
	"buyback/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShippingInfo(t *testing.T) order.ShippingInfo {
	t.Helper()
	info, err := order.NewShippingInfo(
		"Ada Lovelace", "12 Analytical Way", "Portland", "OR", "97201", "US",
		"ada@example.com", "+1 503 555 0100",
	)
	require.NoError(t, err)
	return info
}

func TestNewShippingInfo(t *testing.T) {
	t.Run("creates valid shipping info", func(t *testing.T) {
		info := validShippingInfo(t)

		require.NoError(t, info.Validate())
		assert.Equal(t, "Ada Lovelace", info.Name())
		assert.Equal(t, "12 Analytical Way", info.Street())
		assert.Equal(t, "Portland", info.City())
		assert.Equal(t, "OR", info.State())
		assert.Equal(t, "97201", info.PostalCode())
		assert.Equal(t, "US", info.Country())
		assert.Equal(t, "ada@example.com", info.Email())
		assert.Equal(t, "+1 503 555 0100", info.Phone())
	})

	t.Run("country defaults to US", func(t *testing.T) {
		info, err := order.NewShippingInfo(
			"Ada Lovelace", "12 Analytical Way", "Portland", "OR", "97201", "",
			"ada@example.com", "",
		)

		require.NoError(t, err)
		assert.Equal(t, "US", info.Country())
	})

	t.Run("phone is optional", func(t *testing.T) {
		info, err := order.NewShippingInfo(
			"Ada Lovelace", "12 Analytical Way", "Portland", "OR", "97201", "US",
			"ada@example.com", "",
		)

		require.NoError(t, err)
		assert.Empty(t, info.Phone())
	})

	t.Run("each required field is enforced", func(t *testing.T) {
		cases := []struct {
			missing string
			build   func() (order.ShippingInfo, error)
		}{
			{"name", func() (order.ShippingInfo, error) {
				return order.NewShippingInfo("", "s", "c", "st", "p", "US", "e@x.com", "")
			}},
			{"street", func() (order.ShippingInfo, error) {
				return order.NewShippingInfo("n", "", "c", "st", "p", "US", "e@x.com", "")
			}},
			{"city", func() (order.ShippingInfo, error) {
				return order.NewShippingInfo("n", "s", "", "st", "p", "US", "e@x.com", "")
			}},
			{"state", func() (order.ShippingInfo, error) {
				return order.NewShippingInfo("n", "s", "c", "", "p", "US", "e@x.com", "")
			}},
			{"postal code", func() (order.ShippingInfo, error) {
				return order.NewShippingInfo("n", "s", "c", "st", "", "US", "e@x.com", "")
			}},
			{"email", func() (order.ShippingInfo, error) {
				return order.NewShippingInfo("n", "s", "c", "st", "p", "US", "", "")
			}},
		}

		for _, tc := range cases {
			_, err := tc.build()
			require.ErrorIs(t, err, errs.ErrValueIsRequired, "missing %s", tc.missing)
		}
	})
}

func TestShippingInfo_Validate(t *testing.T) {
	var zero order.ShippingInfo

	require.ErrorIs(t, zero.Validate(), order.ErrShippingInfoIsNotConstructed)
}
