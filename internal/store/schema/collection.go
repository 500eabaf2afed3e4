package schema

import (
	"time"
)

// Collection represents the collections table - a grouping of items created by a single owner
type Collection struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// Name is the display name of the collection
	Name string `gorm:"column:name;not null;type:text" json:"name"`
	// Description is the free-text description of the collection
	Description string `gorm:"column:description;type:text" json:"description"`
	// CreatedBy is the wallet address of the collection owner
	CreatedBy string `gorm:"column:created_by;not null;type:text;index" json:"createdBy"`
	// CreatedDate is the timestamp when this record was created
	CreatedDate time.Time `gorm:"column:created_date;not null;default:now()" json:"createdDate"`

	// Associations
	Items []CollectionItem `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
