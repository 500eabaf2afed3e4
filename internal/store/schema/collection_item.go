package schema

import (
	"time"
)

// ItemStatus represents the lifecycle state of a collection item
type ItemStatus string

const (
	// ItemStatusMint means the item has been minted but is not listed for sale
	ItemStatusMint ItemStatus = "MINT"
	// ItemStatusList means the item is listed for sale with a funded escrow account
	ItemStatusList ItemStatus = "LIST"
	// ItemStatusSell means the item has been sold and transferred
	ItemStatusSell ItemStatus = "SELL"
)

// CollectionItem represents the collection_items table - a single token-like entity
// belonging to a collection.
//
// Invariants:
//   - EscrowAccount is non-nil only while Status is LIST and is cleared on SELL
//   - CurrentOwner changes only on the SELL transition (direct buy or accepted offer)
type CollectionItem struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// CollectionID references the owning collection
	CollectionID int64 `gorm:"column:collection_id;not null;index" json:"collectionId"`
	// Name is the display name of the item
	Name string `gorm:"column:name;not null;type:text" json:"name"`
	// Description is the optional free-text description
	Description *string `gorm:"column:description;type:text" json:"description"`
	// ExternalURL is an optional link to the item's external page
	ExternalURL *string `gorm:"column:external_url;type:text" json:"externalUrl"`
	// Image is an optional URL to the item's image
	Image *string `gorm:"column:image;type:text" json:"image"`
	// MetadataURL is an optional URL to the item's off-chain metadata
	MetadataURL *string `gorm:"column:metadata_url;type:text" json:"metadataUrl"`
	// Symbol is the optional token symbol
	Symbol *string `gorm:"column:symbol;type:text" json:"symbol"`
	// Amount is the listing price (nil until the item has been priced)
	Amount *float64 `gorm:"column:amount;type:numeric" json:"amount"`
	// Status is the lifecycle state (MINT -> LIST -> SELL)
	Status ItemStatus `gorm:"column:status;not null;type:text;default:MINT;index" json:"status"`
	// TokenAddress is the on-chain token account address
	TokenAddress *string `gorm:"column:token_address;type:text" json:"tokenAddress"`
	// MintAddress is the on-chain mint address
	MintAddress *string `gorm:"column:mint_address;type:text" json:"mintAddress"`
	// InitialOwner is the wallet address that minted the item
	InitialOwner *string `gorm:"column:initial_owner;type:text" json:"initialOwner"`
	// CurrentOwner is the wallet address that currently owns the item
	CurrentOwner *string `gorm:"column:current_owner;type:text;index" json:"currentOwner"`
	// EscrowAccount is the external escrow account held while the item is listed
	EscrowAccount *string `gorm:"column:escrow_account;type:text" json:"escrowAccount"`
	// CreatedDate is the timestamp when this record was created
	CreatedDate time.Time `gorm:"column:created_date;not null;default:now()" json:"createdDate"`

	// Associations
	Collection *Collection               `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	Attributes []CollectionItemAttribute `gorm:"foreignKey:CollectionItemID;constraint:OnDelete:CASCADE" json:"collectionItemAttributes,omitempty"`
	Creators   []CollectionItemCreator   `gorm:"foreignKey:CollectionItemID;constraint:OnDelete:CASCADE" json:"collectionItemCreators,omitempty"`
	Offers     []CollectionItemOffer     `gorm:"foreignKey:CollectionItemID" json:"collectionItemOffers,omitempty"`
}

// TableName specifies the table name for the CollectionItem model
func (CollectionItem) TableName() string {
	return "collection_items"
}
