package dto

import (
	apierrors "github.com/lunarmint/marketplace-api/internal/api/shared/errors"
	"github.com/lunarmint/marketplace-api/internal/store/schema"
)

// CreateCollectionRequest represents the request body for creating a collection
type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy"`
}

// Validate validates the request body
func (r *CreateCollectionRequest) Validate() error {
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if r.CreatedBy == "" {
		return apierrors.NewValidationError("createdBy is required")
	}

	return nil
}

// CreateItemRequest represents the request body for creating a collection item
type CreateItemRequest struct {
	CollectionID int64    `json:"collectionId"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	ExternalURL  *string  `json:"externalUrl"`
	Image        *string  `json:"image"`
	MetadataURL  *string  `json:"metadataUrl"`
	Symbol       *string  `json:"symbol"`
	Amount       *float64 `json:"amount"`
	Status       string   `json:"status"`
	TokenAddress *string  `json:"tokenAddress"`
	MintAddress  *string  `json:"mintAddress"`
	InitialOwner *string  `json:"initialOwner"`
	CurrentOwner *string  `json:"currentOwner"`
}

// Validate validates the request body
func (r *CreateItemRequest) Validate() error {
	if r.CollectionID <= 0 {
		return apierrors.NewValidationError("collectionId is required")
	}
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	// Empty status defaults to MINT at the store layer
	switch schema.ItemStatus(r.Status) {
	case "", schema.ItemStatusMint, schema.ItemStatusList, schema.ItemStatusSell:
	default:
		return apierrors.NewValidationError("status must be one of MINT, LIST, SELL")
	}

	return nil
}

// ItemAttributeRequest is a single trait on a full-item create
type ItemAttributeRequest struct {
	TraitType  string `json:"traitType"`
	TraitValue string `json:"traitValue"`
}

// ItemCreatorRequest is a single royalty recipient on a full-item create
type ItemCreatorRequest struct {
	Address string `json:"address"`
	Share   int    `json:"share"`
}

// CollectionItemData is the nested payload of a full-item create
type CollectionItemData struct {
	CreateItemRequest
	Attributes []ItemAttributeRequest `json:"attributes"`
	Creators   []ItemCreatorRequest   `json:"creators"`
}

// CreateFullItemRequest represents the request body for creating an item together
// with its attributes and creators
type CreateFullItemRequest struct {
	CollectionItemData CollectionItemData `json:"collectionItemData"`
}

// Validate validates the request body
func (r *CreateFullItemRequest) Validate() error {
	if err := r.CollectionItemData.CreateItemRequest.Validate(); err != nil {
		return err
	}

	for _, attr := range r.CollectionItemData.Attributes {
		if attr.TraitType == "" || attr.TraitValue == "" {
			return apierrors.NewValidationError("attributes require traitType and traitValue")
		}
	}
	for _, creator := range r.CollectionItemData.Creators {
		if creator.Address == "" {
			return apierrors.NewValidationError("creators require address")
		}
		if creator.Share < 0 || creator.Share > 100 {
			return apierrors.NewValidationError("creator share must be between 0 and 100")
		}
	}

	return nil
}

// ListItemRequest represents the request body for listing an item for sale
type ListItemRequest struct {
	Amount        float64 `json:"amount"`
	EscrowAccount string  `json:"escrowAccount"`
}

// Validate validates the request body
func (r *ListItemRequest) Validate() error {
	if r.Amount <= 0 {
		return apierrors.NewValidationError("amount must be greater than zero")
	}
	if r.EscrowAccount == "" {
		return apierrors.NewValidationError("escrowAccount is required")
	}

	return nil
}

// BuyItemRequest represents the request body for buying a listed item
type BuyItemRequest struct {
	CurrentOwner string `json:"currentOwner"`
	TokenAddress string `json:"tokenAddress"`
}

// Validate validates the request body
func (r *BuyItemRequest) Validate() error {
	if r.CurrentOwner == "" {
		return apierrors.NewValidationError("currentOwner is required")
	}
	if r.TokenAddress == "" {
		return apierrors.NewValidationError("tokenAddress is required")
	}

	return nil
}

// CreateOfferRequest represents the request body for creating an offer
type CreateOfferRequest struct {
	CollectionItemID  int64   `json:"collectionItemId"`
	OfferCreatedBy    string  `json:"offerCreatedBy"`
	OfferTokenAccount string  `json:"offerTokenAccount"`
	Amount            float64 `json:"amount"`
}

// Validate validates the request body
func (r *CreateOfferRequest) Validate() error {
	if r.CollectionItemID <= 0 {
		return apierrors.NewValidationError("collectionItemId is required")
	}
	if r.OfferCreatedBy == "" {
		return apierrors.NewValidationError("offerCreatedBy is required")
	}
	if r.OfferTokenAccount == "" {
		return apierrors.NewValidationError("offerTokenAccount is required")
	}
	if r.Amount <= 0 {
		return apierrors.NewValidationError("amount must be greater than zero")
	}

	return nil
}

// AcceptOfferRequest represents the request body for accepting an offer
type AcceptOfferRequest struct {
	TokenAddress string `json:"tokenAddress"`
}

// Validate validates the request body
func (r *AcceptOfferRequest) Validate() error {
	if r.TokenAddress == "" {
		return apierrors.NewValidationError("tokenAddress is required")
	}

	return nil
}

// CreateActivityLogRequest represents the request body for appending an
// activity log entry
type CreateActivityLogRequest struct {
	ActionType            string `json:"actionType"`
	ActionBy              string `json:"actionBy"`
	CollectionItemID      *int64 `json:"collectionItemId"`
	CollectionItemOfferID *int64 `json:"collectionItemOfferId"`
}

// Validate validates the request body
func (r *CreateActivityLogRequest) Validate() error {
	if r.ActionType == "" {
		return apierrors.NewValidationError("actionType is required")
	}
	if r.ActionBy == "" {
		return apierrors.NewValidationError("actionBy is required")
	}

	return nil
}
