package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurehub/backend/internal/domain/shared"
)

func snapshotFixture(shopID uuid.UUID, quantity int, price string) Snapshot {
	return Snapshot{
		ListingID:   uuid.New(),
		ShopID:      shopID,
		ExternalID:  "SKU-1",
		ProductName: "Widget",
		Quantity:    quantity,
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()
	contactID := uuid.New()

	t.Run("creates order in state new with captured items", func(t *testing.T) {
		shopID := uuid.New()
		o, err := NewOrder(userID, contactID, []Snapshot{
			snapshotFixture(shopID, 2, "10.50"),
			snapshotFixture(shopID, 1, "3.00"),
		})
		require.NoError(t, err)
		require.NotNil(t, o)

		assert.Equal(t, userID, o.UserID)
		assert.Equal(t, contactID, o.ContactID)
		assert.Equal(t, StatusNew, o.Status)
		require.Len(t, o.Items, 2)
		assert.Equal(t, o.ID, o.Items[0].OrderID)
		assert.Equal(t, shopID, o.Items[0].ShopID)
		assert.Equal(t, "SKU-1", o.Items[0].ExternalID)
		assert.Equal(t, "Widget", o.Items[0].ProductName)
	})

	t.Run("publishes OrderPlaced event", func(t *testing.T) {
		o, err := NewOrder(userID, contactID, []Snapshot{snapshotFixture(uuid.New(), 2, "10.00")})
		require.NoError(t, err)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())

		event, ok := events[0].(*OrderPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, o.ID, event.OrderID)
		assert.Equal(t, userID, event.UserID)
		assert.Equal(t, 1, event.ItemCount)
		assert.True(t, event.Total.Equal(decimal.RequireFromString("20.00")))
	})

	t.Run("fails with nil user", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, contactID, []Snapshot{snapshotFixture(uuid.New(), 1, "1.00")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User ID cannot be empty")
	})

	t.Run("fails with nil contact", func(t *testing.T) {
		_, err := NewOrder(userID, uuid.Nil, []Snapshot{snapshotFixture(uuid.New(), 1, "1.00")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Contact ID cannot be empty")
	})

	t.Run("fails with no snapshots", func(t *testing.T) {
		_, err := NewOrder(userID, contactID, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty cart")
	})

	t.Run("fails with zero quantity snapshot", func(t *testing.T) {
		_, err := NewOrder(userID, contactID, []Snapshot{snapshotFixture(uuid.New(), 0, "1.00")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1")
	})

	t.Run("fails with negative captured price", func(t *testing.T) {
		_, err := NewOrder(userID, contactID, []Snapshot{snapshotFixture(uuid.New(), 1, "-0.01")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestOrderAdvanceTo(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		o, err := NewOrder(uuid.New(), uuid.New(), []Snapshot{snapshotFixture(uuid.New(), 1, "5.00")})
		require.NoError(t, err)
		o.ClearDomainEvents()
		return o
	}

	t.Run("advances through the full chain", func(t *testing.T) {
		o := newOrder(t)
		version := o.GetVersion()

		require.NoError(t, o.AdvanceTo(StatusConfirmed))
		require.NoError(t, o.AdvanceTo(StatusAssembled))
		require.NoError(t, o.AdvanceTo(StatusSent))

		assert.Equal(t, StatusSent, o.Status)
		assert.Equal(t, version+3, o.GetVersion())
	})

	t.Run("publishes OrderStatusChanged event", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.AdvanceTo(StatusConfirmed))

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, o.ID, event.OrderID)
		assert.Equal(t, StatusNew, event.OldStatus)
		assert.Equal(t, StatusConfirmed, event.NewStatus)
	})

	t.Run("rejects skipping a state", func(t *testing.T) {
		o := newOrder(t)
		err := o.AdvanceTo(StatusSent)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindConflict, domainErr.Kind)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		assert.Equal(t, StatusNew, o.Status)
	})

	t.Run("rejects regression", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.AdvanceTo(StatusConfirmed))

		err := o.AdvanceTo(StatusNew)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		assert.Equal(t, StatusConfirmed, o.Status)
	})

	t.Run("rejects unknown target status", func(t *testing.T) {
		o := newOrder(t)
		err := o.AdvanceTo("cancelled")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindValidation, domainErr.Kind)
		assert.Equal(t, "status", domainErr.Field)
	})

	t.Run("rejects advancing past the terminal state", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.AdvanceTo(StatusConfirmed))
		require.NoError(t, o.AdvanceTo(StatusAssembled))
		require.NoError(t, o.AdvanceTo(StatusSent))

		err := o.AdvanceTo(StatusSent)
		require.Error(t, err)
	})
}

func TestOrderTotal(t *testing.T) {
	t.Run("sums quantity times captured price", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), uuid.New(), []Snapshot{
			snapshotFixture(uuid.New(), 3, "10.00"),
			snapshotFixture(uuid.New(), 2, "0.25"),
		})
		require.NoError(t, err)

		assert.True(t, o.Total().Equal(decimal.RequireFromString("30.50")))
	})
}

func TestOrderShopScoping(t *testing.T) {
	shopA := uuid.New()
	shopB := uuid.New()

	o, err := NewOrder(uuid.New(), uuid.New(), []Snapshot{
		snapshotFixture(shopA, 1, "1.00"),
		snapshotFixture(shopA, 2, "2.00"),
		snapshotFixture(shopB, 3, "3.00"),
	})
	require.NoError(t, err)

	t.Run("HasShopItems matches only shops with items", func(t *testing.T) {
		assert.True(t, o.HasShopItems(shopA))
		assert.True(t, o.HasShopItems(shopB))
		assert.False(t, o.HasShopItems(uuid.New()))
	})

	t.Run("RestrictToShop keeps only that shop's slice", func(t *testing.T) {
		scoped := o.RestrictToShop(shopA)
		require.Len(t, scoped.Items, 2)
		for _, item := range scoped.Items {
			assert.Equal(t, shopA, item.ShopID)
		}
		assert.Equal(t, o.ID, scoped.ID)
		assert.Len(t, o.Items, 3)
	})

	t.Run("RestrictToShop with foreign shop yields no items", func(t *testing.T) {
		scoped := o.RestrictToShop(uuid.New())
		assert.Empty(t, scoped.Items)
	})
}

func TestOrderIsOwnedBy(t *testing.T) {
	userID := uuid.New()
	o, err := NewOrder(userID, uuid.New(), []Snapshot{snapshotFixture(uuid.New(), 1, "1.00")})
	require.NoError(t, err)

	assert.True(t, o.IsOwnedBy(userID))
	assert.False(t, o.IsOwnedBy(uuid.New()))
}
