package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"agroverse/internal/auction"
	model "agroverse/internal/models"
	"agroverse/services/auction/helpers"
	"agroverse/utils"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_service_test.go -package=handler

type AuctionServiceInterface interface {
	RegisterProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (model.UserProfile, error)
	ListProduct(ctx context.Context, input auction.ListingInput) (model.Product, error)
	GetProduct(ctx context.Context, productID string) (model.Product, error)
	BrowseProducts(ctx context.Context) ([]model.Product, error)
	BidHistory(ctx context.Context, productID string) ([]model.Bid, error)
	PlaceBid(ctx context.Context, productID, bidderID, bidderName string, amount decimal.Decimal) (model.Bid, model.Product, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// RegisterProfileHandler handles POST /users
func (h *AuctionHandler) RegisterProfileHandler(c *gin.Context) {
	var req helpers.RegisterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterProfileHandler", err)
		return
	}

	profile, err := h.service.RegisterProfile(c.Request.Context(), model.UserProfile{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Role:        model.UserRole(req.Role),
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("RegisterProfileHandler: failed to register profile", map[string]any{
			"user_id": req.UserID,
			"role":    req.Role,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewProfileResponse(profile), "profile registered successfully")
	helpers.LogSuccess("RegisterProfileHandler", "profile registered successfully", map[string]any{
		"user_id": profile.UserID,
		"role":    string(profile.Role),
	})
}

// GetProfileHandler handles GET /users/:user_id
func (h *AuctionHandler) GetProfileHandler(c *gin.Context) {
	userID := c.Param("user_id")
	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetProfileHandler: error retrieving profile", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewProfileResponse(profile), "profile retrieved successfully")
}

// ListProductHandler handles POST /products
func (h *AuctionHandler) ListProductHandler(c *gin.Context) {
	var req helpers.ListProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ListProductHandler", err)
		return
	}

	product, err := h.service.ListProduct(c.Request.Context(), auction.ListingInput{
		SellerID:      req.SellerID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Unit:          req.Unit,
		ImageURL:      req.ImageURL,
		StartingPrice: req.StartingPrice,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("ListProductHandler: failed to list product", map[string]any{
			"seller_id": req.SellerID,
			"name":      req.Name,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewProductResponse(product), "product listed successfully")
	helpers.LogSuccess("ListProductHandler", "product listed successfully", map[string]any{
		"product_id": product.ID,
		"seller_id":  product.SellerID,
	})
}

// BrowseProductsHandler handles GET /products
func (h *AuctionHandler) BrowseProductsHandler(c *gin.Context) {
	products, err := h.service.BrowseProducts(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("BrowseProductsHandler: error listing products", map[string]any{"error": err.Error()})
		return
	}

	resp := make([]helpers.ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, helpers.NewProductResponse(product))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "products retrieved successfully")
	helpers.LogSuccess("BrowseProductsHandler", "products retrieved successfully", map[string]any{
		"count": len(resp),
	})
}

// GetProductHandler handles GET /products/:product_id
func (h *AuctionHandler) GetProductHandler(c *gin.Context) {
	productID := c.Param("product_id")
	product, err := h.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetProductHandler: error retrieving product", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewProductResponse(product), "product retrieved successfully")
}

// BidHistoryHandler handles GET /products/:product_id/bids
func (h *AuctionHandler) BidHistoryHandler(c *gin.Context) {
	productID := c.Param("product_id")
	bids, err := h.service.BidHistory(c.Request.Context(), productID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("BidHistoryHandler: error retrieving bids", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, helpers.NewBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("BidHistoryHandler", "bids retrieved successfully", map[string]any{
		"product_id": productID,
		"count":      len(resp),
	})
}

// PlaceBidHandler handles POST /products/:product_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	productID := c.Param("product_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, product, err := h.service.PlaceBid(c.Request.Context(), productID, req.BidderID, req.BidderName, req.BidAmount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"product_id": productID,
			"bidder_id":  req.BidderID,
			"amount":     req.BidAmount.String(),
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		Bid:     helpers.NewBidResponse(bid),
		Product: helpers.NewProductResponse(product),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"product_id": bid.ProductID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.BidAmount.String(),
		"bid_count":  product.BidCount,
	})
}
