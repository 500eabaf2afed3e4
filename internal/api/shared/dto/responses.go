package dto

import (
	"github.com/lunarmint/marketplace-api/internal/store/schema"
)

// Pagination is the standard pagination envelope for list responses
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
}

// NewPagination computes the pagination envelope for a page of results.
// totalPages is ceil(totalCount/limit).
func NewPagination(page, limit int, totalCount int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((totalCount + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
	}
}

// CollectionWithSummary is a collection row enriched with its item aggregates
type CollectionWithSummary struct {
	schema.Collection
	CollectionItemCount int64   `json:"collectionItemCount"`
	ListItemsCount      int64   `json:"listItemsCount"`
	SoldItemsCount      int64   `json:"soldItemsCount"`
	UniqueOwners        int64   `json:"uniqueOwners"`
	TotalAmount         float64 `json:"totalAmount"`
	LowestAmount        float64 `json:"lowestAmount"`
}

// CollectionListResponse is the response for GET /api/collections
type CollectionListResponse struct {
	Collections []CollectionWithSummary `json:"collections"`
	Pagination  Pagination              `json:"pagination"`
}

// ItemListResponse is the response for paginated item listings
type ItemListResponse struct {
	Items      []schema.CollectionItem `json:"items"`
	Pagination Pagination              `json:"pagination"`
}

// OfferListResponse is the response for paginated offer listings
type OfferListResponse struct {
	Items      []schema.CollectionItemOffer `json:"items"`
	Pagination Pagination                   `json:"pagination"`
}

// ActivityLogListResponse is the response for paginated activity log listings
type ActivityLogListResponse struct {
	Items      []schema.ActivityLog `json:"items"`
	Pagination Pagination           `json:"pagination"`
}

// MarketSummaryResponse is the response for the global collection summary
type MarketSummaryResponse struct {
	TotalItems   int64   `json:"totalItems"`
	UniqueOwners int64   `json:"uniqueOwners"`
	TotalAmount  float64 `json:"totalAmount"`
}

// AttributeValueCount is one (value, occurrence count) pair in the attribute
// histogram
type AttributeValueCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// AttributeGroup is the histogram for one trait type. Key.Count is the sum of
// the value counts.
type AttributeGroup struct {
	Key    AttributeValueCount   `json:"key"`
	Values []AttributeValueCount `json:"values"`
}

// MessageResponse is a bare confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// ItemUpdateResponse wraps an updated item with a confirmation message
type ItemUpdateResponse struct {
	Message string                 `json:"message"`
	Data    *schema.CollectionItem `json:"data"`
}

// OfferUpdateResponse wraps an updated offer with a confirmation message
type OfferUpdateResponse struct {
	Message string                      `json:"message"`
	Data    *schema.CollectionItemOffer `json:"data"`
}
