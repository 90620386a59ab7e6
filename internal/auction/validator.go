package auction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"agroverse/internal/auctionerrors"
	model "agroverse/internal/models"
)

// bidFloor returns the amount a new bid must strictly exceed: the current
// highest bid once one exists, the starting price before that.
func bidFloor(snapshot model.Product) decimal.Decimal {
	floor := snapshot.StartingPrice
	if snapshot.CurrentHighestBid != nil && snapshot.CurrentHighestBid.GreaterThan(floor) {
		floor = *snapshot.CurrentHighestBid
	}
	return floor
}

// validateBidAgainst decides whether a candidate bid is admissible against
// the given product snapshot. Pure: no I/O, no side effects, so the ledger
// can re-run it on every transaction attempt.
func validateBidAgainst(snapshot model.Product, bidderID string, amount decimal.Decimal) error {
	if bidderID == snapshot.SellerID {
		return fmt.Errorf("bid on product %s by seller %s: %w", snapshot.ID, bidderID, auctionerrors.ErrSelfBid)
	}

	if floor := bidFloor(snapshot); !amount.GreaterThan(floor) {
		return &auctionerrors.BidTooLowError{Floor: floor}
	}

	return nil
}
