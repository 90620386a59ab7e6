package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"agroverse/internal/auction"
	"agroverse/internal/ledger"
	model "agroverse/internal/models"
	"agroverse/internal/server"
	"agroverse/utils"
)

func main() {
	store, cleanup, err := openLedger(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open ledger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	auctionSvc := auction.NewAuctionService(store)

	router := server.SetupRouter(auctionSvc)

	port := getPort()
	fmt.Printf("Starting auction server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// openLedger connects to redis when REDIS_ADDR is set and falls back to
// the in-memory ledger (with sample data) for local development.
func openLedger(ctx context.Context) (ledger.Ledger, func(), error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		utils.Warn("REDIS_ADDR not set, using in-memory ledger", nil)
		memory := ledger.NewMemoryLedger()
		prepopulate(ctx, memory)
		return memory, func() {}, nil
	}

	store, err := ledger.NewRedisLedger(ctx, ledger.RedisOptions{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getRedisDB(),
	})
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}

// prepopulate seeds the in-memory ledger with a farmer and sample listings
func prepopulate(ctx context.Context, store *ledger.MemoryLedger) {
	farmer := model.UserProfile{UserID: "farmer1", DisplayName: "Demo Farmer", Role: model.RoleFarmer}
	if err := store.SaveProfile(ctx, farmer); err != nil {
		utils.Warn("failed to seed farmer profile", map[string]any{"error": err.Error()})
		return
	}

	svc := auction.NewAuctionService(store)
	listings := []auction.ListingInput{
		{SellerID: farmer.UserID, Name: "Organic Tomatoes", Description: "Vine-ripened, pesticide free", Unit: "kg", ImageURL: "https://example.com/tomatoes.jpg", StartingPrice: decimal.NewFromInt(100)},
		{SellerID: farmer.UserID, Name: "Raw Honey", Description: "Single-origin wildflower honey", Unit: "jar", ImageURL: "https://example.com/honey.jpg", StartingPrice: decimal.NewFromInt(200)},
		{SellerID: farmer.UserID, Name: "Free-Range Eggs", Description: "Pasture-raised", Unit: "dozen", ImageURL: "https://example.com/eggs.jpg", StartingPrice: decimal.NewFromInt(150)},
	}
	for _, listing := range listings {
		if _, err := svc.ListProduct(ctx, listing); err != nil {
			utils.Warn("failed to seed listing", map[string]any{"name": listing.Name, "error": err.Error()})
		}
	}
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}

// getRedisDB returns the redis database index from env or 0
func getRedisDB() int {
	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		return 0
	}
	return db
}
