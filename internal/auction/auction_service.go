package auction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"agroverse/internal/auctionerrors"
	"agroverse/internal/ledger"
	model "agroverse/internal/models"
	"agroverse/utils"
)

// anonymousBidder is the display name recorded when a bidder supplies none.
const anonymousBidder = "Anonymous Bidder"

// AuctionService defines the business logic for the marketplace auction:
// product listings, user profiles, and the bid admission transaction.
type AuctionService struct {
	store ledger.Ledger
	now   func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store ledger.Ledger) *AuctionService {
	return &AuctionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ListingInput carries the seller-supplied fields for a new product.
type ListingInput struct {
	SellerID      string
	Name          string
	Description   string
	Category      string
	Unit          string
	ImageURL      string
	StartingPrice decimal.Decimal
}

// RegisterProfile validates and stores a user profile.
func (s *AuctionService) RegisterProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error) {
	if strings.TrimSpace(profile.UserID) == "" {
		return model.UserProfile{}, fmt.Errorf("service: %w - missing user ID", auctionerrors.ErrInvalidProfile)
	}
	if !model.ValidRole(profile.Role) {
		return model.UserProfile{}, fmt.Errorf("service: %w - unknown role %q", auctionerrors.ErrInvalidProfile, profile.Role)
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("service: failed to save profile for user %s: %w", profile.UserID, err)
	}
	return profile, nil
}

// GetProfile returns the stored profile for a user.
func (s *AuctionService) GetProfile(ctx context.Context, userID string) (model.UserProfile, error) {
	if userID == "" {
		return model.UserProfile{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidProfile)
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("service: failed to get profile for user %s: %w", userID, err)
	}
	return profile, nil
}

// ListProduct creates a new product listing for a seller with the farmer
// role. The seller's role comes from the stored profile, never from the
// request.
func (s *AuctionService) ListProduct(ctx context.Context, input ListingInput) (model.Product, error) {
	if err := validateListing(input); err != nil {
		return model.Product{}, err
	}

	seller, err := s.store.GetProfile(ctx, input.SellerID)
	if err != nil {
		return model.Product{}, fmt.Errorf("service: failed to verify seller %s: %w", input.SellerID, err)
	}
	if seller.Role != model.RoleFarmer {
		return model.Product{}, fmt.Errorf("service: seller %s has role %q: %w", seller.UserID, seller.Role, auctionerrors.ErrNotFarmer)
	}

	product := model.Product{
		ID:            utils.GenerateID(),
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		Unit:          input.Unit,
		ImageURL:      input.ImageURL,
		StartingPrice: input.StartingPrice,
		SellerID:      seller.UserID,
		SellerName:    seller.DisplayName,
		CreatedAt:     s.now(),
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return model.Product{}, fmt.Errorf("service: failed to create product for seller %s: %w", seller.UserID, err)
	}
	return product, nil
}

// validateListing checks input validity for a new product
func validateListing(input ListingInput) error {
	if input.SellerID == "" {
		return fmt.Errorf("service: %w - missing seller ID", auctionerrors.ErrInvalidListing)
	}
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("service: %w - missing product name", auctionerrors.ErrInvalidListing)
	}
	if !input.StartingPrice.IsPositive() {
		return fmt.Errorf("service: %w - starting price must be positive", auctionerrors.ErrInvalidListing)
	}
	return nil
}

// GetProduct returns a product aggregate by ID.
func (s *AuctionService) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	if productID == "" {
		return model.Product{}, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrInvalidListing)
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return model.Product{}, fmt.Errorf("service: failed to get product %s: %w", productID, err)
	}
	return product, nil
}

// BrowseProducts returns all products, newest first.
func (s *AuctionService) BrowseProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

// BidHistory returns a product's admitted bids, newest first.
func (s *AuctionService) BidHistory(ctx context.Context, productID string) ([]model.Bid, error) {
	if productID == "" {
		return nil, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.store.BidHistory(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bid history for product %s: %w", productID, err)
	}
	return bids, nil
}

// PlaceBid submits a bid for a product. Validation runs inside the ledger
// transaction against the freshly read aggregate, so two racing bidders
// serialize: whoever commits first raises the floor the other must beat.
// On success it returns the admitted bid and the updated aggregate.
func (s *AuctionService) PlaceBid(ctx context.Context, productID, bidderID, bidderName string, amount decimal.Decimal) (model.Bid, model.Product, error) {
	if productID == "" || bidderID == "" {
		return model.Bid{}, model.Product{}, fmt.Errorf("service: %w - missing productID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return model.Bid{}, model.Product{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}
	if bidderName == "" {
		bidderName = anonymousBidder
	}

	decide := func(snapshot model.Product) (model.Bid, error) {
		if err := validateBidAgainst(snapshot, bidderID, amount); err != nil {
			return model.Bid{}, err
		}
		return model.Bid{
			BidID:      utils.GenerateID(),
			ProductID:  snapshot.ID,
			BidderID:   bidderID,
			BidderName: bidderName,
			BidAmount:  amount,
			BidTime:    s.now(),
			Status:     model.BidStatusActive,
		}, nil
	}

	bid, product, err := s.store.SubmitBid(ctx, productID, decide)
	if err != nil {
		return model.Bid{}, model.Product{}, fmt.Errorf("service: failed to submit bid for product %s by user %s: %w", productID, bidderID, err)
	}
	return bid, product, nil
}
