package schema

// CollectionItemCreator represents the collection_item_creators table - a royalty
// recipient for an item. Rows are append-only and set at item creation.
type CollectionItemCreator struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// CollectionItemID references the owning item
	CollectionItemID int64 `gorm:"column:collection_item_id;not null;index" json:"collectionItemId"`
	// Address is the creator's wallet address
	Address string `gorm:"column:address;not null;type:text" json:"address"`
	// Share is the creator's royalty share in percent
	Share int `gorm:"column:share;not null" json:"share"`
}

// TableName specifies the table name for the CollectionItemCreator model
func (CollectionItemCreator) TableName() string {
	return "collection_item_creators"
}
