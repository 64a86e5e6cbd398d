package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurehub/backend/internal/domain/shared"
)

func TestNewProductListing(t *testing.T) {
	shopID := uuid.New()
	productID := uuid.New()
	price := decimal.RequireFromString("110000.0000")
	priceRRC := decimal.RequireFromString("116990.0000")

	t.Run("creates listing with offer fields", func(t *testing.T) {
		listing, err := NewProductListing(shopID, productID, "4216292", "A713GT", price, priceRRC, 14)
		require.NoError(t, err)
		require.NotNil(t, listing)

		assert.Equal(t, shopID, listing.ShopID)
		assert.Equal(t, productID, listing.ProductID)
		assert.Equal(t, "4216292", listing.ExternalID)
		assert.Equal(t, "A713GT", listing.Model)
		assert.True(t, listing.Price.Equal(price))
		assert.True(t, listing.PriceRRC.Equal(priceRRC))
		assert.Equal(t, 14, listing.Quantity)
		assert.NotEmpty(t, listing.ID)
	})

	t.Run("allows zero price and zero quantity", func(t *testing.T) {
		_, err := NewProductListing(shopID, productID, "4216292", "", decimal.Zero, decimal.Zero, 0)
		require.NoError(t, err)
	})

	t.Run("fails with nil shop", func(t *testing.T) {
		_, err := NewProductListing(uuid.Nil, productID, "4216292", "", price, priceRRC, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Shop ID cannot be empty")
	})

	t.Run("fails with nil product", func(t *testing.T) {
		_, err := NewProductListing(shopID, uuid.Nil, "4216292", "", price, priceRRC, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Product ID cannot be empty")
	})

	t.Run("fails with empty external id", func(t *testing.T) {
		_, err := NewProductListing(shopID, productID, "", "", price, priceRRC, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "External ID cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProductListing(shopID, productID, "4216292", "", decimal.RequireFromString("-1"), priceRRC, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})

	t.Run("fails with negative recommended price", func(t *testing.T) {
		_, err := NewProductListing(shopID, productID, "4216292", "", price, decimal.RequireFromString("-1"), 1)
		require.Error(t, err)
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		_, err := NewProductListing(shopID, productID, "4216292", "", price, priceRRC, -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Quantity cannot be negative")
	})
}

func TestProductListingUpdateOffer(t *testing.T) {
	newListing := func(t *testing.T) *ProductListing {
		listing, err := NewProductListing(uuid.New(), uuid.New(), "4216292", "A713GT",
			decimal.RequireFromString("100"), decimal.RequireFromString("120"), 5)
		require.NoError(t, err)
		return listing
	}

	t.Run("overwrites mutable fields and keeps identity", func(t *testing.T) {
		listing := newListing(t)
		id := listing.ID
		version := listing.GetVersion()
		newProductID := uuid.New()

		err := listing.UpdateOffer(newProductID, "B820",
			decimal.RequireFromString("90"), decimal.RequireFromString("110"), 30)
		require.NoError(t, err)

		assert.Equal(t, id, listing.ID)
		assert.Equal(t, "4216292", listing.ExternalID)
		assert.Equal(t, newProductID, listing.ProductID)
		assert.Equal(t, "B820", listing.Model)
		assert.True(t, listing.Price.Equal(decimal.RequireFromString("90")))
		assert.Equal(t, 30, listing.Quantity)
		assert.Equal(t, version+1, listing.GetVersion())
	})

	t.Run("fails with nil product", func(t *testing.T) {
		listing := newListing(t)
		err := listing.UpdateOffer(uuid.Nil, "", decimal.Zero, decimal.Zero, 0)
		require.Error(t, err)
	})

	t.Run("fails with negative price and leaves offer intact", func(t *testing.T) {
		listing := newListing(t)
		err := listing.UpdateOffer(uuid.New(), "", decimal.RequireFromString("-5"), decimal.Zero, 0)
		require.Error(t, err)
		assert.True(t, listing.Price.Equal(decimal.RequireFromString("100")))
		assert.Equal(t, 5, listing.Quantity)
	})
}

func TestProductListingReplaceParameters(t *testing.T) {
	listing, err := NewProductListing(uuid.New(), uuid.New(), "4216292", "",
		decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)

	t.Run("binds values to the listing", func(t *testing.T) {
		listing.ReplaceParameters([]ListingParameterValue{
			{BaseEntity: shared.NewBaseEntity(), ParameterID: uuid.New(), Value: "6.5"},
			{BaseEntity: shared.NewBaseEntity(), ParameterID: uuid.New(), Value: "black"},
		})

		require.Len(t, listing.Parameters, 2)
		for _, v := range listing.Parameters {
			assert.Equal(t, listing.ID, v.ListingID)
		}
	})

	t.Run("replaces the previous set wholesale", func(t *testing.T) {
		listing.ReplaceParameters([]ListingParameterValue{
			{BaseEntity: shared.NewBaseEntity(), ParameterID: uuid.New(), Value: "256GB"},
		})
		assert.Len(t, listing.Parameters, 1)
	})

	t.Run("empty set clears parameters", func(t *testing.T) {
		listing.ReplaceParameters(nil)
		assert.Empty(t, listing.Parameters)
	})
}

func TestNewParameter(t *testing.T) {
	t.Run("creates parameter name", func(t *testing.T) {
		p, err := NewParameter("Screen Size (inches)")
		require.NoError(t, err)
		assert.Equal(t, "Screen Size (inches)", p.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewParameter("")
		require.Error(t, err)
	})
}
