package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole identifies what a marketplace participant is allowed to do.
type UserRole string

const (
	RoleFarmer   UserRole = "farmer"
	RoleConsumer UserRole = "consumer"
	RoleAdmin    UserRole = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleFarmer, RoleConsumer, RoleAdmin:
		return true
	}
	return false
}

// UserProfile represents a marketplace participant.
type UserProfile struct {
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Role        UserRole `json:"role"`
}

// Product represents a sellable listing with its auction aggregate state.
// CurrentHighestBid and BidCount are mutated only through the ledger's
// bid transaction; CurrentHighestBid stays nil until the first admitted bid.
type Product struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Category          string           `json:"category,omitempty"`
	Unit              string           `json:"unit,omitempty"`
	ImageURL          string           `json:"image_url"`
	StartingPrice     decimal.Decimal  `json:"starting_price"`
	SellerID          string           `json:"seller_id"`
	SellerName        string           `json:"seller_name,omitempty"` // display cache, not identity
	CreatedAt         time.Time        `json:"created_at"`
	CurrentHighestBid *decimal.Decimal `json:"current_highest_bid,omitempty"`
	BidCount          int64            `json:"bid_count"`
	AuctionEndTime    *time.Time       `json:"auction_end_time,omitempty"`
}

// BidStatus is the lifecycle state of a bid. Only BidStatusActive is
// produced today; the other values are reserved for seller decisions.
type BidStatus string

const (
	BidStatusActive   BidStatus = "active"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// Bid is an immutable record of an admitted bid on a product.
type Bid struct {
	BidID      string          `json:"bid_id"`
	ProductID  string          `json:"product_id"`
	BidderID   string          `json:"bidder_id"`
	BidderName string          `json:"bidder_name,omitempty"` // display cache, not identity
	BidAmount  decimal.Decimal `json:"bid_amount"`
	BidTime    time.Time       `json:"bid_time"`
	Status     BidStatus       `json:"status"`
}
