package ledger

import (
	"context"

	model "agroverse/internal/models"
)

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=ledger

// DecideBid inspects the authoritative product snapshot read inside the
// store transaction and either returns the bid to admit or an error that
// aborts the transaction. It must be free of side effects: the ledger may
// call it once per attempt when transactions race.
type DecideBid func(snapshot model.Product) (model.Bid, error)

// Ledger is the transactional document store behind the auction: product
// aggregates, their append-only bid histories, and user profiles.
type Ledger interface {
	CreateProduct(ctx context.Context, product model.Product) error
	GetProduct(ctx context.Context, productID string) (model.Product, error)
	// ListProducts returns all products, newest first.
	ListProducts(ctx context.Context) ([]model.Product, error)
	// BidHistory returns the product's admitted bids in reverse commit
	// order (newest first).
	BidHistory(ctx context.Context, productID string) ([]model.Bid, error)

	SaveProfile(ctx context.Context, profile model.UserProfile) error
	GetProfile(ctx context.Context, userID string) (model.UserProfile, error)

	// SubmitBid runs the optimistic bid transaction against productID:
	// read the aggregate, call decide on that snapshot, and on admission
	// append the bid and apply CurrentHighestBid/BidCount atomically.
	// A conflicting concurrent commit restarts the whole sequence up to a
	// bounded number of attempts; exhaustion reports ErrLedgerUnavailable.
	// An error from decide aborts immediately with nothing written.
	// On success it returns the admitted bid and the updated aggregate.
	SubmitBid(ctx context.Context, productID string, decide DecideBid) (model.Bid, model.Product, error)
}

// applyAdmission folds an admitted bid into the aggregate. Both store
// implementations share it so the invariant lives in one place.
func applyAdmission(product model.Product, bid model.Bid) model.Product {
	amount := bid.BidAmount
	product.CurrentHighestBid = &amount
	product.BidCount++
	return product
}

// cloneProduct returns a copy that shares no pointers with the original,
// so callers can never reach into stored state.
func cloneProduct(p model.Product) model.Product {
	if p.CurrentHighestBid != nil {
		highest := *p.CurrentHighestBid
		p.CurrentHighestBid = &highest
	}
	if p.AuctionEndTime != nil {
		end := *p.AuctionEndTime
		p.AuctionEndTime = &end
	}
	return p
}
