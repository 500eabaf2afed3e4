package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lunarmint/marketplace-api/internal/api/shared/dto"
	"github.com/lunarmint/marketplace-api/internal/api/shared/executor"
	"github.com/lunarmint/marketplace-api/internal/domain"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// CreateCollection creates a new collection
	// POST /api/collections
	CreateCollection(c *gin.Context)

	// ListCollections retrieves collections with their item summaries
	// GET /api/collections?page=<page>&limit=<limit>&sortBy=<column>&sortOrder=<order>&search=<name>
	ListCollections(c *gin.Context)

	// GetUserCollections retrieves all collections created by an address
	// GET /api/collections/user-collections?createdBy=<address>
	GetUserCollections(c *gin.Context)

	// GetCollectionByID retrieves a single collection
	// GET /api/collections/:id/collection-by-id
	GetCollectionByID(c *gin.Context)

	// ListCollectionItems retrieves a collection's browsable items; any
	// non-reserved query key is a trait filter
	// GET /api/collection-items/:id/items?page=<page>&limit=<limit>&sortBy=<column>&sortOrder=<order>&search=<name>&<traitType>=<v1>,<v2>
	ListCollectionItems(c *gin.Context)

	// GetCollectionItem retrieves a single item with attributes and offers
	// GET /api/collection-items/:id/item-single
	GetCollectionItem(c *gin.Context)

	// GetUserOwnedItems retrieves items owned by a wallet address
	// GET /api/collection-items/get-user-owned-items?ownerAddress=<address>
	GetUserOwnedItems(c *gin.Context)

	// CreateCollectionItem creates a minimal collection item
	// POST /api/collection-items/item
	CreateCollectionItem(c *gin.Context)

	// CreateFullCollectionItem creates an item with attributes and creators
	// POST /api/collection-items/create-full-item
	CreateFullCollectionItem(c *gin.Context)

	// GetCollectionSummary retrieves the global item aggregates
	// GET /api/collection-items/get-collection-summary
	GetCollectionSummary(c *gin.Context)

	// GetCollectionAttributes retrieves the global attribute histogram
	// GET /api/collection-items/get-collection-attributes
	GetCollectionAttributes(c *gin.Context)

	// UpdateListCollectionItem puts an item up for sale
	// PUT /api/collection-items/:id/update-list-collection-item
	UpdateListCollectionItem(c *gin.Context)

	// UpdateBuyCollectionItem completes a direct purchase of a listed item
	// PUT /api/collection-items/:id/update-buy-collection-item
	UpdateBuyCollectionItem(c *gin.Context)

	// CreateOffer creates a new offer on an item
	// POST /api/collection-item-offer/create
	CreateOffer(c *gin.Context)

	// ListOffers retrieves offers with optional filters
	// GET /api/collection-item-offer/list?collectionItemId=<id>&offerCreatedBy=<address>&isAccepted=<bool>
	ListOffers(c *gin.Context)

	// GetUserOffers retrieves offers on items owned by an address
	// GET /api/collection-item-offer/get-user-offers?currentOwner=<address>
	GetUserOffers(c *gin.Context)

	// AcceptOffer accepts an offer and transfers the item to the bidder
	// PUT /api/collection-item-offer/:id/accept-offer
	AcceptOffer(c *gin.Context)

	// CreateActivityLog appends an activity log entry
	// POST /api/activity-log/create
	CreateActivityLog(c *gin.Context)

	// ListActivityLogs retrieves activity log entries with optional filters
	// GET /api/activity-log/list?actionType=<type>&actionBy=<address>
	ListActivityLogs(c *gin.Context)

	// Welcome returns the API welcome message
	// GET /
	Welcome(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid id parameter")
		return 0, false
	}
	return id, true
}

// CreateCollection creates a new collection
func (h *handler) CreateCollection(c *gin.Context) {
	var req dto.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	collection, err := h.executor.CreateCollection(c.Request.Context(), req)
	if err != nil {
		respondInternalError(c, err, "Failed to create collection")
		return
	}

	c.JSON(http.StatusCreated, collection)
}

// ListCollections retrieves collections with their item summaries
func (h *handler) ListCollections(c *gin.Context) {
	query, err := ParseListQuery(c, collectionSortSpec)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetCollections(c.Request.Context(), *query)
	if err != nil {
		respondInternalError(c, err, "Failed to list collections")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUserCollections retrieves all collections created by an address
func (h *handler) GetUserCollections(c *gin.Context) {
	createdBy := c.Query("createdBy")
	if createdBy == "" {
		respondBadRequest(c, "The 'createdBy' parameter is required")
		return
	}

	collections, err := h.executor.GetUserCollections(c.Request.Context(), createdBy)
	if err != nil {
		respondInternalError(c, err, "Failed to get user collections")
		return
	}

	if len(collections) == 0 {
		respondNotFound(c, "No collections found for this user")
		return
	}

	c.JSON(http.StatusOK, collections)
}

// GetCollectionByID retrieves a single collection
func (h *handler) GetCollectionByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	collection, err := h.executor.GetCollectionByID(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "Failed to get collection")
		return
	}

	if collection == nil {
		respondNotFound(c, "Collection not found")
		return
	}

	c.JSON(http.StatusOK, collection)
}

// ListCollectionItems retrieves a collection's browsable items
func (h *handler) ListCollectionItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	query, err := ParseListQuery(c, itemSortSpec)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	traits := ExtractTraitFilters(c)

	response, err := h.executor.GetCollectionItems(c.Request.Context(), id, *query, traits)
	if err != nil {
		respondInternalError(c, err, "Failed to list collection items")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCollectionItem retrieves a single item with attributes and offers
func (h *handler) GetCollectionItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.executor.GetCollectionItemByID(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "Failed to get collection item")
		return
	}

	if item == nil {
		respondNotFound(c, "Collection item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetUserOwnedItems retrieves items owned by a wallet address
func (h *handler) GetUserOwnedItems(c *gin.Context) {
	query, err := ParseListQuery(c, itemSortSpec)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ownerAddress := c.Query("ownerAddress")

	response, err := h.executor.GetUserOwnedItems(c.Request.Context(), ownerAddress, *query)
	if err != nil {
		respondInternalError(c, err, "Failed to get user owned items")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateCollectionItem creates a minimal collection item
func (h *handler) CreateCollectionItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.executor.CreateCollectionItem(c.Request.Context(), req)
	if err != nil {
		respondInternalError(c, err, "Failed to create collection item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// CreateFullCollectionItem creates an item with attributes and creators
func (h *handler) CreateFullCollectionItem(c *gin.Context) {
	var req dto.CreateFullItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.executor.CreateFullCollectionItem(c.Request.Context(), req); err != nil {
		respondInternalError(c, err, "Failed to create full collection item")
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Collection data saved successfully"})
}

// GetCollectionSummary retrieves the global item aggregates
func (h *handler) GetCollectionSummary(c *gin.Context) {
	summary, err := h.executor.GetMarketSummary(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get collection summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetCollectionAttributes retrieves the global attribute histogram
func (h *handler) GetCollectionAttributes(c *gin.Context) {
	attributes, err := h.executor.GetCollectionAttributes(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get collection attributes")
		return
	}

	c.JSON(http.StatusOK, attributes)
}

// UpdateListCollectionItem puts an item up for sale
func (h *handler) UpdateListCollectionItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.ListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.executor.ListCollectionItem(c.Request.Context(), id, req.Amount, req.EscrowAccount)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionItemNotFound) {
			respondNotFound(c, "Collection item not found")
			return
		}
		respondInternalError(c, err, "Failed to update collection item")
		return
	}

	c.JSON(http.StatusOK, dto.ItemUpdateResponse{
		Message: "CollectionItem updated successfully",
		Data:    item,
	})
}

// UpdateBuyCollectionItem completes a direct purchase of a listed item
func (h *handler) UpdateBuyCollectionItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.BuyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.executor.BuyCollectionItem(c.Request.Context(), id, req.CurrentOwner, req.TokenAddress)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionItemNotFound) {
			respondNotFound(c, "Collection item not found")
			return
		}
		respondInternalError(c, err, "Failed to update collection item")
		return
	}

	c.JSON(http.StatusOK, dto.ItemUpdateResponse{
		Message: "CollectionItem updated successfully",
		Data:    item,
	})
}

// CreateOffer creates a new offer on an item
func (h *handler) CreateOffer(c *gin.Context) {
	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	offer, err := h.executor.CreateOffer(c.Request.Context(), req)
	if err != nil {
		respondInternalError(c, err, "Failed to create offer")
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// ListOffers retrieves offers with optional filters
func (h *handler) ListOffers(c *gin.Context) {
	query, err := ParseListQuery(c, offerSortSpec)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var filters OfferListQueryParams
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetOffers(c.Request.Context(), *query, executor.OfferQuery{
		CollectionItemID: filters.CollectionItemID,
		OfferCreatedBy:   filters.OfferCreatedBy,
		IsAccepted:       filters.IsAccepted,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to list offers")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUserOffers retrieves offers on items owned by an address
func (h *handler) GetUserOffers(c *gin.Context) {
	query, err := ParseListQuery(c, offerSortSpec)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var filters OfferListQueryParams
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if filters.CurrentOwner == "" {
		respondBadRequest(c, "The 'currentOwner' parameter is required")
		return
	}

	response, err := h.executor.GetOffers(c.Request.Context(), *query, executor.OfferQuery{
		CollectionItemID: filters.CollectionItemID,
		OfferCreatedBy:   filters.OfferCreatedBy,
		IsAccepted:       filters.IsAccepted,
		ItemCurrentOwner: filters.CurrentOwner,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to get user offers")
		return
	}

	c.JSON(http.StatusOK, response)
}

// AcceptOffer accepts an offer and transfers the item to the bidder
func (h *handler) AcceptOffer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.AcceptOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	offer, err := h.executor.AcceptOffer(c.Request.Context(), id, req.TokenAddress)
	if err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			respondNotFound(c, "CollectionItemOffer not found")
			return
		}
		if errors.Is(err, domain.ErrCollectionItemNotFound) {
			respondNotFound(c, "Collection item not found")
			return
		}
		respondInternalError(c, err, "Failed to accept offer")
		return
	}

	c.JSON(http.StatusOK, dto.OfferUpdateResponse{
		Message: "CollectionItemOffer accepted successfully",
		Data:    offer,
	})
}

// CreateActivityLog appends an activity log entry
func (h *handler) CreateActivityLog(c *gin.Context) {
	var req dto.CreateActivityLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	entry, err := h.executor.CreateActivityLog(c.Request.Context(), req)
	if err != nil {
		respondInternalError(c, err, "Failed to create activity log")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListActivityLogs retrieves activity log entries with optional filters
func (h *handler) ListActivityLogs(c *gin.Context) {
	query, err := ParseListQuery(c, activityLogSortSpec)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var filters ActivityLogQueryParams
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetActivityLogs(c.Request.Context(), *query, filters.ActionType, filters.ActionBy)
	if err != nil {
		respondInternalError(c, err, "Failed to list activity logs")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Welcome returns the API welcome message
func (h *handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the LunarMint Marketplace API!",
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "marketplace-api",
	})
}
