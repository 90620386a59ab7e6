package auctionerrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Ledger-level errors
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user profile not found")
	ErrLedgerUnavailable = errors.New("ledger unavailable")
)

// Business logic errors
var (
	ErrInvalidBid     = errors.New("invalid bid")
	ErrBidTooLow      = errors.New("bid amount too low")
	ErrSelfBid        = errors.New("sellers cannot bid on their own listings")
	ErrInvalidListing = errors.New("invalid product listing")
	ErrInvalidProfile = errors.New("invalid user profile")
	ErrNotFarmer      = errors.New("only farmers can list products")
)

// smallestIncrement is the minimum step above the floor a new bid must
// reach to be worth suggesting to the user. Admission itself only
// requires a strictly greater amount.
var smallestIncrement = decimal.New(1, -2) // 0.01

// BidTooLowError reports a rejected bid along with the floor it failed to
// clear, so callers can tell the user what to resubmit.
type BidTooLowError struct {
	Floor decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("%v: must be greater than %s", ErrBidTooLow, e.Floor.StringFixed(2))
}

func (e *BidTooLowError) Unwrap() error {
	return ErrBidTooLow
}

// MinimumRequired returns the smallest amount the user should enter next.
func (e *BidTooLowError) MinimumRequired() decimal.Decimal {
	return e.Floor.Add(smallestIncrement)
}

// IsTerminal reports whether err is a validation or not-found failure that
// retrying cannot fix. Anything else is treated as a transient store fault.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInvalidBid) ||
		errors.Is(err, ErrBidTooLow) ||
		errors.Is(err, ErrSelfBid) ||
		errors.Is(err, ErrInvalidListing) ||
		errors.Is(err, ErrInvalidProfile) ||
		errors.Is(err, ErrNotFarmer)
}
