package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShop(t *testing.T) {
	t.Run("creates shop accepting orders", func(t *testing.T) {
		supplierID := uuid.New()
		shop, err := NewShop(supplierID, "Connect Shop")
		require.NoError(t, err)
		require.NotNil(t, shop)

		assert.Equal(t, "Connect Shop", shop.Name)
		assert.Equal(t, supplierID, shop.SupplierID)
		assert.True(t, shop.AcceptingOrders)
		assert.NotEmpty(t, shop.ID)
		assert.Equal(t, 1, shop.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewShop(uuid.New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewShop(uuid.New(), strings.Repeat("x", 101))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 100 characters")
	})

	t.Run("fails with nil supplier", func(t *testing.T) {
		_, err := NewShop(uuid.Nil, "Connect Shop")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Supplier ID cannot be empty")
	})
}

func TestShopSetAcceptingOrders(t *testing.T) {
	t.Run("flipping the flag publishes an event", func(t *testing.T) {
		shop, err := NewShop(uuid.New(), "Connect Shop")
		require.NoError(t, err)
		shop.ClearDomainEvents()

		shop.SetAcceptingOrders(false)
		assert.False(t, shop.AcceptingOrders)

		events := shop.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeShopAcceptanceChanged, events[0].EventType())
	})

	t.Run("setting the same value is a no-op", func(t *testing.T) {
		shop, err := NewShop(uuid.New(), "Connect Shop")
		require.NoError(t, err)
		shop.ClearDomainEvents()
		version := shop.GetVersion()

		shop.SetAcceptingOrders(true)
		assert.True(t, shop.AcceptingOrders)
		assert.Empty(t, shop.GetDomainEvents())
		assert.Equal(t, version, shop.GetVersion())
	})
}

func TestShopIsOwnedBy(t *testing.T) {
	supplierID := uuid.New()
	shop, err := NewShop(supplierID, "Connect Shop")
	require.NoError(t, err)

	assert.True(t, shop.IsOwnedBy(supplierID))
	assert.False(t, shop.IsOwnedBy(uuid.New()))
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		category, err := NewCategory("Smartphones")
		require.NoError(t, err)
		assert.Equal(t, "Smartphones", category.Name)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("")
		require.Error(t, err)
	})
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product under a category", func(t *testing.T) {
		categoryID := uuid.New()
		product, err := NewProduct("Smartphone X", categoryID)
		require.NoError(t, err)
		assert.Equal(t, "Smartphone X", product.Name)
		assert.Equal(t, categoryID, product.CategoryID)
	})

	t.Run("fails with nil category", func(t *testing.T) {
		_, err := NewProduct("Smartphone X", uuid.Nil)
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("", uuid.New())
		require.Error(t, err)
	})
}
