package feed

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurehub/backend/internal/domain/shared"
)

const sampleFeed = `
shop: Connect Shop
categories:
  - id: 224
    name: Smartphones
  - id: 15
    name: Accessories
goods:
  - id: 4216292
    category: 224
    model: A713GT
    name: Smartphone A713GT
    price: 110000.00
    price_rrc: 116990.50
    quantity: 14
    parameters:
      "Screen Size (inches)": 6.5
      "Color": black
  - id: "4216313"
    category: 15
    model: ""
    name: USB Cable
    price: 270
    price_rrc: 299
    quantity: 120
`

func TestParse(t *testing.T) {
	t.Run("decodes a full feed document", func(t *testing.T) {
		f, err := Parse([]byte(sampleFeed))
		require.NoError(t, err)
		require.NotNil(t, f)

		assert.Equal(t, "Connect Shop", f.Shop)
		require.Len(t, f.Categories, 2)
		assert.Equal(t, int64(224), f.Categories[0].ID)
		assert.Equal(t, "Smartphones", f.Categories[0].Name)

		require.Len(t, f.Goods, 2)
		g := f.Goods[0]
		assert.Equal(t, Scalar("4216292"), g.ID)
		assert.Equal(t, int64(224), g.Category)
		assert.Equal(t, "A713GT", g.Model)
		assert.True(t, g.Price.Equal(decimal.RequireFromString("110000.00")))
		assert.True(t, g.PriceRRC.Equal(decimal.RequireFromString("116990.50")))
		assert.Equal(t, 14, g.Quantity)
	})

	t.Run("bare numeric ids and parameter values decode as strings", func(t *testing.T) {
		f, err := Parse([]byte(sampleFeed))
		require.NoError(t, err)

		assert.Equal(t, Scalar("4216292"), f.Goods[0].ID)
		assert.Equal(t, Scalar("4216313"), f.Goods[1].ID)
		assert.Equal(t, Scalar("6.5"), f.Goods[0].Parameters["Screen Size (inches)"])
		assert.Equal(t, Scalar("black"), f.Goods[0].Parameters["Color"])
	})

	t.Run("fails on malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("shop: [unclosed"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindValidation, domainErr.Kind)
		assert.Equal(t, "feed", domainErr.Field)
	})

	t.Run("fails when shop name is missing", func(t *testing.T) {
		_, err := Parse([]byte("categories: []\ngoods: []"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "shop", domainErr.Field)
	})

	t.Run("fails when a good has no name", func(t *testing.T) {
		doc := `
shop: Connect Shop
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 1
    category: 224
    price: 10
    quantity: 1
`
		_, err := Parse([]byte(doc))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Field, "name")
	})

	t.Run("fails on negative price", func(t *testing.T) {
		doc := `
shop: Connect Shop
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 1
    category: 224
    name: Smartphone
    price: -10
    quantity: 1
`
		_, err := Parse([]byte(doc))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "goods[0].price", domainErr.Field)
	})

	t.Run("fails on negative quantity", func(t *testing.T) {
		doc := `
shop: Connect Shop
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 1
    category: 224
    name: Smartphone
    price: 10
    quantity: -1
`
		_, err := Parse([]byte(doc))
		require.Error(t, err)
	})

	t.Run("fails when a good references an undeclared category", func(t *testing.T) {
		doc := `
shop: Connect Shop
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 1
    category: 999
    name: Smartphone
    price: 10
    quantity: 1
`
		_, err := Parse([]byte(doc))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "goods[0].category", domainErr.Field)
		assert.Contains(t, domainErr.Message, "999")
	})

	t.Run("empty price decodes as zero", func(t *testing.T) {
		doc := `
shop: Connect Shop
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 1
    category: 224
    name: Smartphone
    price: ""
    quantity: 1
`
		f, err := Parse([]byte(doc))
		require.NoError(t, err)
		assert.True(t, f.Goods[0].Price.IsZero())
	})
}

func TestRenderRoundTrip(t *testing.T) {
	original := &Feed{
		Shop: "Connect Shop",
		Categories: []Category{
			{ID: 224, Name: "Smartphones"},
		},
		Goods: []Good{
			{
				ID:       "4216292",
				Category: 224,
				Model:    "A713GT",
				Name:     "Smartphone A713GT",
				Price:    NewMoney(decimal.RequireFromString("110000")),
				PriceRRC: NewMoney(decimal.RequireFromString("116990.5")),
				Quantity: 14,
				Parameters: map[string]Scalar{
					"Color": "black",
				},
			},
		},
	}

	data, err := Render(original)
	require.NoError(t, err)

	decoded, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, original.Shop, decoded.Shop)
	assert.Equal(t, original.Categories, decoded.Categories)
	require.Len(t, decoded.Goods, 1)
	assert.Equal(t, original.Goods[0].ID, decoded.Goods[0].ID)
	assert.True(t, decoded.Goods[0].Price.Equal(original.Goods[0].Price.Decimal))
	assert.True(t, decoded.Goods[0].PriceRRC.Equal(original.Goods[0].PriceRRC.Decimal))
	assert.Equal(t, original.Goods[0].Parameters, decoded.Goods[0].Parameters)
}
