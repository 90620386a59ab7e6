package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"agroverse/internal/auction"
	"agroverse/internal/ledger"
	model "agroverse/internal/models"
	"agroverse/internal/server"
	"agroverse/services/auction/helpers"
)

// SetupTestRouter initializes the router with an in-memory ledger for
// integration testing and returns the ledger for direct seeding.
func SetupTestRouter() (*gin.Engine, *ledger.MemoryLedger) {
	gin.SetMode(gin.TestMode)
	store := ledger.NewMemoryLedger()
	service := auction.NewAuctionService(store)
	router := server.SetupRouter(service)
	return router, store
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// RegisterFarmer seeds a farmer profile through the API.
func RegisterFarmer(t *testing.T, router *gin.Engine, userID, displayName string) {
	t.Helper()

	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/users", helpers.RegisterProfileRequest{
		UserID:      userID,
		DisplayName: displayName,
		Role:        string(model.RoleFarmer),
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

// ListTestProduct creates a product through the API and returns its ID.
func ListTestProduct(t *testing.T, router *gin.Engine, sellerID, name, startingPrice string) string {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/products", map[string]any{
		"seller_id":      sellerID,
		"name":           name,
		"description":    "integration test listing",
		"image_url":      "https://example.com/item.jpg",
		"starting_price": startingPrice,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := resp["data"].(map[string]any)
	return data["product_id"].(string)
}

// SeedProfile writes a profile straight into the ledger, bypassing the API.
func SeedProfile(t *testing.T, store *ledger.MemoryLedger, profile model.UserProfile) {
	t.Helper()
	require.NoError(t, store.SaveProfile(context.Background(), profile))
}
