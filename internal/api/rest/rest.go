package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes on the given router
func SetupRoutes(router *gin.Engine, handler Handler) {
	router.GET("/", handler.Welcome)
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		collections := api.Group("/collections")
		{
			collections.POST("", handler.CreateCollection)
			collections.GET("", handler.ListCollections)
			collections.GET("/user-collections", handler.GetUserCollections)
			collections.GET("/:id/collection-by-id", handler.GetCollectionByID)
		}

		items := api.Group("/collection-items")
		{
			items.GET("/:id/items", handler.ListCollectionItems)
			items.GET("/:id/item-single", handler.GetCollectionItem)
			items.GET("/get-user-owned-items", handler.GetUserOwnedItems)
			items.GET("/get-collection-summary", handler.GetCollectionSummary)
			items.GET("/get-collection-attributes", handler.GetCollectionAttributes)
			items.POST("/item", handler.CreateCollectionItem)
			items.POST("/create-full-item", handler.CreateFullCollectionItem)
			items.PUT("/:id/update-list-collection-item", handler.UpdateListCollectionItem)
			items.PUT("/:id/update-buy-collection-item", handler.UpdateBuyCollectionItem)
		}

		offers := api.Group("/collection-item-offer")
		{
			offers.POST("/create", handler.CreateOffer)
			offers.GET("/list", handler.ListOffers)
			offers.GET("/get-user-offers", handler.GetUserOffers)
			offers.PUT("/:id/accept-offer", handler.AcceptOffer)
		}

		activityLog := api.Group("/activity-log")
		{
			activityLog.POST("/create", handler.CreateActivityLog)
			activityLog.GET("/list", handler.ListActivityLogs)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}
