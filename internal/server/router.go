package server

import (
	"agroverse/internal/auction"
	handler "agroverse/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService *auction.AuctionService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService)

	users := router.Group("/users")
	{
		users.POST("", auctionHandler.RegisterProfileHandler)
		users.GET("/:user_id", auctionHandler.GetProfileHandler)
	}

	products := router.Group("/products")
	{
		products.POST("", auctionHandler.ListProductHandler)
		products.GET("", auctionHandler.BrowseProductsHandler)
		products.GET("/:product_id", auctionHandler.GetProductHandler)
		products.GET("/:product_id/bids", auctionHandler.BidHistoryHandler)
		products.POST("/:product_id/bids", auctionHandler.PlaceBidHandler)
	}

	return router
}
