package cart

import (
	"strconv"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/validators"
	"github.com/shopspring/decimal"
)

// ItemInput is the raw text typed into the name, price and quantity fields.
type ItemInput struct {
	Name     string `json:"name" validate:"required"`
	Price    string `json:"price" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
}

type parsedInput struct {
	name      string
	unitPrice decimal.Decimal
	quantity  int
}

func (in ItemInput) sanitized() ItemInput {
	return ItemInput{
		Name:     validators.SanitizeString(in.Name, 0),
		Price:    validators.SanitizeString(in.Price, 0),
		Quantity: validators.SanitizeString(in.Quantity, 0),
	}
}

// validate reports a missing field after trimming.
func (in ItemInput) validate() error {
	return validators.Struct(in)
}

func (in ItemInput) parse() (parsedInput, error) {
	price, err := ParsePrice(in.Price)
	if err != nil {
		return parsedInput{}, err
	}
	qty, err := ParseQuantity(in.Quantity)
	if err != nil {
		return parsedInput{}, err
	}
	return parsedInput{name: in.Name, unitPrice: price, quantity: qty}, nil
}

// ParsePrice parses a non-negative decimal unit price.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeParse, err, "price must be numeric").
			WithDetails(map[string]any{"field": "price", "value": raw})
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative").
			WithDetails(map[string]any{"field": "price", "value": raw})
	}
	return price, nil
}

// ParseQuantity parses a non-negative base-10 quantity.
func ParseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeParse, err, "quantity must be numeric").
			WithDetails(map[string]any{"field": "quantity", "value": raw})
	}
	if qty < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative").
			WithDetails(map[string]any{"field": "quantity", "value": raw})
	}
	return qty, nil
}
