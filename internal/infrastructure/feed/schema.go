// Package feed defines the YAML price-feed document shared by catalog import
// and export. Both directions use the same structs so the two shapes cannot
// drift apart.
package feed

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Feed is a supplier's full current assortment for one shop.
type Feed struct {
	Shop       string     `yaml:"shop" validate:"required"`
	Categories []Category `yaml:"categories" validate:"dive"`
	Goods      []Good     `yaml:"goods" validate:"dive"`
}

// Category is a feed-local category declaration. The id is only meaningful
// within the document: goods reference it to name their category. Catalog
// categories are matched by name.
type Category struct {
	ID   int64  `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required,max=80"`
}

// Good is one offered product with its per-shop price and stock.
type Good struct {
	ID         Scalar            `yaml:"id" validate:"required"`
	Category   int64             `yaml:"category" validate:"required"`
	Model      string            `yaml:"model" validate:"max=100"`
	Name       string            `yaml:"name" validate:"required,max=200"`
	Price      Money             `yaml:"price"`
	PriceRRC   Money             `yaml:"price_rrc"`
	Quantity   int               `yaml:"quantity" validate:"min=0"`
	Parameters map[string]Scalar `yaml:"parameters"`
}

// Scalar is a string that also accepts bare numeric YAML scalars, since
// supplier feeds routinely leave SKUs and parameter values unquoted.
type Scalar string

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected scalar value, got %s", node.Tag)
	}
	*s = Scalar(node.Value)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (s Scalar) MarshalYAML() (interface{}, error) {
	return string(s), nil
}

// Money is a decimal price that decodes from any numeric or string scalar.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal in a feed Money value
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// UnmarshalYAML implements yaml.Unmarshaler
func (m *Money) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected scalar price, got %s", node.Tag)
	}
	if node.Value == "" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", node.Value, err)
	}
	m.Decimal = d
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (m Money) MarshalYAML() (interface{}, error) {
	return m.Decimal.String(), nil
}
