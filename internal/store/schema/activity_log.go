package schema

import (
	"time"
)

// ActivityLog represents the activity_log table - an append-only audit trail of
// marketplace actions. Rows are never updated or deleted.
type ActivityLog struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// ActionType names the action being recorded (e.g. "MINT", "LIST", "OFFER")
	ActionType string `gorm:"column:action_type;not null;type:text;index" json:"actionType"`
	// ActionBy is the wallet address that performed the action
	ActionBy string `gorm:"column:action_by;not null;type:text;index" json:"actionBy"`
	// CollectionItemID optionally references the item the action concerns
	CollectionItemID *int64 `gorm:"column:collection_item_id" json:"collectionItemId"`
	// CollectionItemOfferID optionally references the offer the action concerns
	CollectionItemOfferID *int64 `gorm:"column:collection_item_offer_id" json:"collectionItemOfferId"`
	// ActionDateTime is the timestamp of the action
	ActionDateTime time.Time `gorm:"column:action_date_time;not null;default:now()" json:"actionDateTime"`

	// Associations
	CollectionItem      *CollectionItem      `gorm:"foreignKey:CollectionItemID" json:"collectionItem,omitempty"`
	CollectionItemOffer *CollectionItemOffer `gorm:"foreignKey:CollectionItemOfferID" json:"collectionItemOffer,omitempty"`
}

// TableName specifies the table name for the ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_log"
}
