package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"agroverse/internal/auctionerrors"
	"agroverse/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	var tooLow *auctionerrors.BidTooLowError
	switch {
	case errors.Is(err, auctionerrors.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user profile not found"
	case errors.As(err, &tooLow):
		return http.StatusConflict, fmt.Sprintf("bid amount too low; minimum acceptable bid is %s", tooLow.MinimumRequired().StringFixed(2))
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrSelfBid):
		return http.StatusForbidden, "sellers cannot bid on their own listings"
	case errors.Is(err, auctionerrors.ErrNotFarmer):
		return http.StatusForbidden, "only farmers can list products"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidListing):
		return http.StatusBadRequest, "invalid product listing"
	case errors.Is(err, auctionerrors.ErrInvalidProfile):
		return http.StatusBadRequest, "invalid user profile"
	case errors.Is(err, auctionerrors.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable, "ledger unavailable, please retry"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
