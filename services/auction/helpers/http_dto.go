package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	"agroverse/internal/auction"
	model "agroverse/internal/models"
)

// Request DTOs
type RegisterProfileRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" binding:"omitempty,email"`
	Role        string `json:"role" binding:"required"`
}

type ListProductRequest struct {
	SellerID      string          `json:"seller_id" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	ImageURL      string          `json:"image_url" binding:"omitempty,url"`
	StartingPrice decimal.Decimal `json:"starting_price" binding:"required"`
}

type PlaceBidRequest struct {
	BidderID   string          `json:"bidder_id" binding:"required"`
	BidderName string          `json:"bidder_name"`
	BidAmount  decimal.Decimal `json:"bid_amount" binding:"required"`
}

// Response DTOs
type ProfileResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
}

type ProductResponse struct {
	ProductID         string           `json:"product_id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Category          string           `json:"category,omitempty"`
	Unit              string           `json:"unit,omitempty"`
	ImageURL          string           `json:"image_url"`
	StartingPrice     decimal.Decimal  `json:"starting_price"`
	SellerID          string           `json:"seller_id"`
	SellerName        string           `json:"seller_name,omitempty"`
	CreatedAt         string           `json:"created_at"`
	CurrentHighestBid *decimal.Decimal `json:"current_highest_bid,omitempty"`
	BidCount          int64            `json:"bid_count"`
	CurrentPrice      decimal.Decimal  `json:"current_price"`
	HasBids           bool             `json:"has_bids"`
}

type BidResponse struct {
	BidID      string          `json:"bid_id"`
	ProductID  string          `json:"product_id"`
	BidderID   string          `json:"bidder_id"`
	BidderName string          `json:"bidder_name,omitempty"`
	BidAmount  decimal.Decimal `json:"bid_amount"`
	BidTime    string          `json:"bid_time"`
	Status     string          `json:"status"`
}

type PlaceBidResponse struct {
	Bid     BidResponse     `json:"bid"`
	Product ProductResponse `json:"product"`
}

// NewProfileResponse maps a profile onto its response DTO.
func NewProfileResponse(profile model.UserProfile) ProfileResponse {
	return ProfileResponse{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		Role:        string(profile.Role),
	}
}

// NewProductResponse maps a product aggregate onto its response DTO,
// including the projected display fields.
func NewProductResponse(product model.Product) ProductResponse {
	return ProductResponse{
		ProductID:         product.ID,
		Name:              product.Name,
		Description:       product.Description,
		Category:          product.Category,
		Unit:              product.Unit,
		ImageURL:          product.ImageURL,
		StartingPrice:     product.StartingPrice,
		SellerID:          product.SellerID,
		SellerName:        product.SellerName,
		CreatedAt:         product.CreatedAt.UTC().Format(time.RFC3339),
		CurrentHighestBid: product.CurrentHighestBid,
		BidCount:          product.BidCount,
		CurrentPrice:      auction.CurrentPrice(product),
		HasBids:           auction.HasBids(product),
	}
}

// NewBidResponse maps a bid record onto its response DTO.
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:      bid.BidID,
		ProductID:  bid.ProductID,
		BidderID:   bid.BidderID,
		BidderName: bid.BidderName,
		BidAmount:  bid.BidAmount,
		BidTime:    bid.BidTime.UTC().Format(time.RFC3339),
		Status:     string(bid.Status),
	}
}
