package auction

import (
	"github.com/shopspring/decimal"

	model "agroverse/internal/models"
)

// CurrentPrice returns the display price of a product: the highest bid if
// one exists, the starting price otherwise.
func CurrentPrice(p model.Product) decimal.Decimal {
	if p.CurrentHighestBid != nil {
		return *p.CurrentHighestBid
	}
	return p.StartingPrice
}

// HasBids reports whether any bid has been admitted for the product.
func HasBids(p model.Product) bool {
	return p.BidCount > 0
}
