package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Item is one purchasable line in the cart. Number is assigned by the Store and
// changes whenever the cart is renumbered.
type Item struct {
	Number    int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// LineTotal is UnitPrice * Quantity, recomputed on every call.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i Item) String() string {
	return fmt.Sprintf("Item Number: %d | Name: %s | Price: $%s | Quantity: %d",
		i.Number, i.Name, i.UnitPrice.StringFixed(2), i.Quantity)
}
