package schema

import (
	"time"
)

// CollectionItemOffer represents the collection_item_offers table - a proposed
// purchase of an item at a given amount, pending acceptance.
//
// Invariant: once IsAccepted is true the offer is terminal; no further mutation
// is modeled (there is no rejection or cancellation state).
type CollectionItemOffer struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// CollectionItemID references the item the offer is for
	CollectionItemID int64 `gorm:"column:collection_item_id;not null;index" json:"collectionItemId"`
	// OfferCreatedBy is the wallet address of the bidder
	OfferCreatedBy string `gorm:"column:offer_created_by;not null;type:text;index" json:"offerCreatedBy"`
	// OfferTokenAccount is the bidder's token account funding the offer
	OfferTokenAccount string `gorm:"column:offer_token_account;not null;type:text" json:"offerTokenAccount"`
	// Amount is the offered price
	Amount float64 `gorm:"column:amount;not null;type:numeric" json:"amount"`
	// IsAccepted marks the offer as accepted (terminal)
	IsAccepted bool `gorm:"column:is_accepted;not null;default:false" json:"isAccepted"`
	// CreatedDate is the timestamp when this record was created
	CreatedDate time.Time `gorm:"column:created_date;not null;default:now()" json:"createdDate"`

	// Associations
	CollectionItem *CollectionItem `gorm:"foreignKey:CollectionItemID" json:"collectionItem,omitempty"`
}

// TableName specifies the table name for the CollectionItemOffer model
func (CollectionItemOffer) TableName() string {
	return "collection_item_offers"
}
