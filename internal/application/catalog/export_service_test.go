package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurehub/backend/internal/domain/shared"
	"github.com/procurehub/backend/internal/infrastructure/feed"
)

func TestExportService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("exports the shop in feed shape", func(t *testing.T) {
		fx := newImportFixture(t)
		supplierID := uuid.New()

		imported, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)

		f, err := fx.exportSvc.Export(ctx, supplierID, imported.ShopID)
		require.NoError(t, err)

		assert.Equal(t, "Connect Shop", f.Shop)
		require.Len(t, f.Categories, 2)
		require.Len(t, f.Goods, 2)

		names := []string{f.Categories[0].Name, f.Categories[1].Name}
		assert.ElementsMatch(t, []string{"Smartphones", "Accessories"}, names)

		byExternal := make(map[feed.Scalar]feed.Good, len(f.Goods))
		for _, g := range f.Goods {
			byExternal[g.ID] = g
		}

		smartphone, ok := byExternal["4216292"]
		require.True(t, ok)
		assert.Equal(t, "Smartphone A713GT", smartphone.Name)
		assert.Equal(t, "A713GT", smartphone.Model)
		assert.Equal(t, 14, smartphone.Quantity)
		assert.Equal(t, feed.Scalar("6.5"), smartphone.Parameters["Screen Size (inches)"])
		assert.Equal(t, feed.Scalar("black"), smartphone.Parameters["Color"])
	})

	t.Run("goods reference categories declared in the document", func(t *testing.T) {
		fx := newImportFixture(t)
		supplierID := uuid.New()

		imported, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)

		f, err := fx.exportSvc.Export(ctx, supplierID, imported.ShopID)
		require.NoError(t, err)

		// The exported document must validate on its own, including the
		// good-to-category references
		require.NoError(t, feed.Validate(f))
	})

	t.Run("re-importing an export is a no-op", func(t *testing.T) {
		fx := newImportFixture(t)
		supplierID := uuid.New()

		imported, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)

		exported, err := fx.exportSvc.Export(ctx, supplierID, imported.ShopID)
		require.NoError(t, err)

		data, err := feed.Render(exported)
		require.NoError(t, err)
		parsed, err := feed.Parse(data)
		require.NoError(t, err)

		result, err := fx.importSvc.Import(ctx, supplierID, parsed)
		require.NoError(t, err)
		assert.Equal(t, 0, result.ListingsCreated)
		assert.Equal(t, 0, result.ListingsDeleted)
	})

	t.Run("exporting another supplier's shop is forbidden", func(t *testing.T) {
		fx := newImportFixture(t)

		imported, err := fx.importSvc.Import(ctx, uuid.New(), sampleFeed())
		require.NoError(t, err)

		_, err = fx.exportSvc.Export(ctx, uuid.New(), imported.ShopID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindAuthorization, domainErr.Kind)
	})

	t.Run("exporting a missing shop reports not found", func(t *testing.T) {
		fx := newImportFixture(t)

		_, err := fx.exportSvc.Export(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
