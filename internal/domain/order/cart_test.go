package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCart(t *testing.T) {
	t.Run("creates empty cart for user", func(t *testing.T) {
		userID := uuid.New()
		cart, err := NewCart(userID)
		require.NoError(t, err)
		require.NotNil(t, cart)

		assert.Equal(t, userID, cart.UserID)
		assert.True(t, cart.IsEmpty())
		assert.NotEmpty(t, cart.ID)
	})

	t.Run("fails with nil user", func(t *testing.T) {
		_, err := NewCart(uuid.Nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User ID cannot be empty")
	})
}

func TestCartUpsertItem(t *testing.T) {
	t.Run("inserts a new item", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		listingID := uuid.New()
		require.NoError(t, cart.UpsertItem(listingID, 3))

		require.Len(t, cart.Items, 1)
		assert.Equal(t, listingID, cart.Items[0].ListingID)
		assert.Equal(t, 3, cart.Items[0].Quantity)
		assert.Equal(t, cart.ID, cart.Items[0].CartID)
		assert.False(t, cart.IsEmpty())
	})

	t.Run("overwrites quantity of an existing item", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		listingID := uuid.New()
		require.NoError(t, cart.UpsertItem(listingID, 3))
		require.NoError(t, cart.UpsertItem(listingID, 7))

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 7, cart.Items[0].Quantity)
	})

	t.Run("keeps separate lines per listing", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		require.NoError(t, cart.UpsertItem(uuid.New(), 1))
		require.NoError(t, cart.UpsertItem(uuid.New(), 2))

		assert.Len(t, cart.Items, 2)
	})

	t.Run("fails with nil listing", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		err = cart.UpsertItem(uuid.Nil, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Listing ID cannot be empty")
	})

	t.Run("fails with zero quantity", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		err = cart.UpsertItem(uuid.New(), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1")
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		err = cart.UpsertItem(uuid.New(), -2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1")
	})
}

func TestCartRemoveItems(t *testing.T) {
	t.Run("removes matching items and reports the count", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		keep := uuid.New()
		gone1 := uuid.New()
		gone2 := uuid.New()
		require.NoError(t, cart.UpsertItem(keep, 1))
		require.NoError(t, cart.UpsertItem(gone1, 2))
		require.NoError(t, cart.UpsertItem(gone2, 3))

		removed := cart.RemoveItems([]uuid.UUID{gone1, gone2})
		assert.Equal(t, 2, removed)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, keep, cart.Items[0].ListingID)
	})

	t.Run("absent listings are a no-op", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)
		require.NoError(t, cart.UpsertItem(uuid.New(), 1))

		removed := cart.RemoveItems([]uuid.UUID{uuid.New(), uuid.New()})
		assert.Equal(t, 0, removed)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("mixed present and absent counts only removals", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		present := uuid.New()
		require.NoError(t, cart.UpsertItem(present, 1))

		removed := cart.RemoveItems([]uuid.UUID{present, uuid.New()})
		assert.Equal(t, 1, removed)
		assert.True(t, cart.IsEmpty())
	})
}

func TestCartClear(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	require.NoError(t, cart.UpsertItem(uuid.New(), 1))
	require.NoError(t, cart.UpsertItem(uuid.New(), 2))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.Items)
}

func TestCartIsOwnedBy(t *testing.T) {
	userID := uuid.New()
	cart, err := NewCart(userID)
	require.NoError(t, err)

	assert.True(t, cart.IsOwnedBy(userID))
	assert.False(t, cart.IsOwnedBy(uuid.New()))
}
