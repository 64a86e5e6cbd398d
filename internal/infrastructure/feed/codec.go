package feed

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/procurehub/backend/internal/domain/shared"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes and validates a YAML feed document. Malformed documents and
// entries missing required fields fail with a ValidationError naming the
// offending field; nothing is touched in the catalog on failure.
func Parse(data []byte) (*Feed, error) {
	var f Feed
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, shared.NewValidationError("feed", fmt.Sprintf("Malformed feed document: %v", err))
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Render encodes a feed document to YAML
func Render(f *Feed) ([]byte, error) {
	return yaml.Marshal(f)
}

// Validate checks structural constraints on a decoded feed: required fields,
// non-negative prices, and goods referencing declared categories.
func Validate(f *Feed) error {
	if err := validate.Struct(f); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return shared.NewValidationError(fieldPath(e), validationMessage(e))
		}
		return shared.NewValidationError("feed", err.Error())
	}

	declared := make(map[int64]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		declared[c.ID] = struct{}{}
	}
	for i, g := range f.Goods {
		if g.Price.IsNegative() {
			return shared.NewValidationError(
				fmt.Sprintf("goods[%d].price", i), "Price cannot be negative")
		}
		if g.PriceRRC.IsNegative() {
			return shared.NewValidationError(
				fmt.Sprintf("goods[%d].price_rrc", i), "Recommended retail price cannot be negative")
		}
		if _, ok := declared[g.Category]; !ok {
			return shared.NewValidationError(
				fmt.Sprintf("goods[%d].category", i),
				fmt.Sprintf("References undeclared category %d", g.Category))
		}
	}
	return nil
}

// fieldPath strips the top-level struct name from the validator's namespace,
// leaving a yaml-style path like goods[0].name
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	default:
		return "Invalid value"
	}
}
