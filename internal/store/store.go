package store

import (
	"context"

	"github.com/lunarmint/marketplace-api/internal/store/schema"
)

// CollectionFilter holds filtering, sorting, and pagination for collection listings
type CollectionFilter struct {
	// Search is a case-insensitive substring match on the collection name
	Search string
	// SortBy is the database column to sort by (validated by the caller)
	SortBy string
	// SortDesc sorts descending when true
	SortDesc bool
	Limit    int
	Offset   int
}

// ItemFilter holds filtering, sorting, and pagination for item listings
type ItemFilter struct {
	// CollectionID restricts to items of a single collection
	CollectionID *int64
	// CurrentOwner restricts to items owned by a wallet address
	CurrentOwner *string
	// Statuses is the status allow-list for the endpoint
	Statuses []schema.ItemStatus
	// Search is a case-insensitive substring match on the item name
	Search string
	// Traits maps a trait type to the set of accepted values. Distinct trait
	// types combine with AND; values within a type combine with OR.
	Traits map[string][]string
	// SortBy is the database column to sort by (validated by the caller)
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// OfferFilter holds filtering, sorting, and pagination for offer listings
type OfferFilter struct {
	// CollectionItemID restricts to offers for a single item
	CollectionItemID *int64
	// OfferCreatedBy is a substring match on the bidder address
	OfferCreatedBy string
	// IsAccepted restricts by acceptance state when set
	IsAccepted *bool
	// ItemCurrentOwner restricts to offers on items owned by a wallet address
	ItemCurrentOwner string
	// SortBy is the database column to sort by (validated by the caller)
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// ActivityLogFilter holds filtering, sorting, and pagination for activity log listings
type ActivityLogFilter struct {
	// ActionType is an exact match on the action type
	ActionType string
	// ActionBy is an exact match on the acting address
	ActionBy string
	// SortBy is the database column to sort by (validated by the caller)
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// CreateCollectionInput holds the fields for creating a collection
type CreateCollectionInput struct {
	Name        string
	Description string
	CreatedBy   string
}

// CreateItemInput holds the fields for creating a collection item
type CreateItemInput struct {
	CollectionID int64
	Name         string
	Description  *string
	ExternalURL  *string
	Image        *string
	MetadataURL  *string
	Symbol       *string
	Amount       *float64
	Status       schema.ItemStatus
	TokenAddress *string
	MintAddress  *string
	InitialOwner *string
	CurrentOwner *string
}

// AttributeInput holds a trait key/value pair for item creation
type AttributeInput struct {
	TraitType  string
	TraitValue string
}

// CreatorInput holds a royalty recipient for item creation
type CreatorInput struct {
	Address string
	Share   int
}

// CreateFullItemInput holds an item together with its attributes and creators.
// The whole input is persisted in a single transaction.
type CreateFullItemInput struct {
	Item       CreateItemInput
	Attributes []AttributeInput
	Creators   []CreatorInput
}

// CreateOfferInput holds the fields for creating an offer
type CreateOfferInput struct {
	CollectionItemID  int64
	OfferCreatedBy    string
	OfferTokenAccount string
	Amount            float64
}

// CreateActivityLogInput holds the fields for creating an activity log entry
type CreateActivityLogInput struct {
	ActionType            string
	ActionBy              string
	CollectionItemID      *int64
	CollectionItemOfferID *int64
}

// CollectionSummary holds aggregate statistics over a set of items.
// Null amounts contribute 0 to TotalAmount; an empty set yields 0 for
// LowestAmount. UniqueOwners counts distinct non-null current owners.
type CollectionSummary struct {
	TotalItems   int64   `gorm:"column:total_items"`
	TotalAmount  float64 `gorm:"column:total_amount"`
	LowestAmount float64 `gorm:"column:lowest_amount"`
	UniqueOwners int64   `gorm:"column:unique_owners"`
	ListItems    int64   `gorm:"column:list_items"`
	SoldItems    int64   `gorm:"column:sold_items"`
}

// TraitValueCount is one grouped row of the attribute histogram
type TraitValueCount struct {
	TraitType  string `gorm:"column:trait_type"`
	TraitValue string `gorm:"column:trait_value"`
	Count      int64  `gorm:"column:count"`
}

// Store defines the interface for database operations
type Store interface {
	// CreateCollection creates a new collection
	CreateCollection(ctx context.Context, input CreateCollectionInput) (*schema.Collection, error)
	// GetCollections retrieves collections matching the filter and the total match count
	GetCollections(ctx context.Context, filter CollectionFilter) ([]schema.Collection, int64, error)
	// GetCollectionsByCreator retrieves all collections created by an address
	GetCollectionsByCreator(ctx context.Context, createdBy string) ([]schema.Collection, error)
	// GetCollectionByID retrieves a collection by its ID (nil when absent)
	GetCollectionByID(ctx context.Context, id int64) (*schema.Collection, error)

	// CreateItem creates a new collection item
	CreateItem(ctx context.Context, input CreateItemInput) (*schema.CollectionItem, error)
	// CreateFullItem creates an item with its attributes and creators in one transaction
	CreateFullItem(ctx context.Context, input CreateFullItemInput) (*schema.CollectionItem, error)
	// GetItems retrieves items matching the filter and the total match count
	GetItems(ctx context.Context, filter ItemFilter) ([]schema.CollectionItem, int64, error)
	// GetItemByID retrieves an item with its collection, attributes, and offers (nil when absent)
	GetItemByID(ctx context.Context, id int64) (*schema.CollectionItem, error)
	// GetCollectionSummary computes aggregate statistics for one collection, or
	// globally when collectionID is nil
	GetCollectionSummary(ctx context.Context, collectionID *int64) (*CollectionSummary, error)
	// GetTraitValueCounts groups all attribute rows by (trait_type, trait_value)
	// with occurrence counts, ordered by trait_type then trait_value ascending
	GetTraitValueCounts(ctx context.Context) ([]TraitValueCount, error)
	// ListItem transitions an item to LIST, setting its price and escrow account.
	// Returns domain.ErrCollectionItemNotFound if the item does not exist.
	ListItem(ctx context.Context, id int64, amount float64, escrowAccount string) (*schema.CollectionItem, error)
	// BuyItem transitions an item to SELL, transferring ownership and clearing escrow.
	// Returns domain.ErrCollectionItemNotFound if the item does not exist.
	BuyItem(ctx context.Context, id int64, newOwner string, tokenAddress string) (*schema.CollectionItem, error)

	// CreateOffer creates a new offer for an item
	CreateOffer(ctx context.Context, input CreateOfferInput) (*schema.CollectionItemOffer, error)
	// GetOffers retrieves offers matching the filter and the total match count
	GetOffers(ctx context.Context, filter OfferFilter) ([]schema.CollectionItemOffer, int64, error)
	// AcceptOffer marks an offer accepted and transfers the referenced item to the
	// bidder in a single transaction. Returns domain.ErrOfferNotFound if the offer
	// does not exist.
	AcceptOffer(ctx context.Context, id int64, tokenAddress string) (*schema.CollectionItemOffer, error)

	// CreateActivityLog appends an activity log entry
	CreateActivityLog(ctx context.Context, input CreateActivityLogInput) (*schema.ActivityLog, error)
	// GetActivityLogs retrieves activity log entries matching the filter and the total match count
	GetActivityLogs(ctx context.Context, filter ActivityLogFilter) ([]schema.ActivityLog, int64, error)
}
