package schema

// CollectionItemAttribute represents the collection_item_attributes table - a trait
// key/value pair describing an item. Rows are append-only and set at item creation.
type CollectionItemAttribute struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// CollectionItemID references the owning item
	CollectionItemID int64 `gorm:"column:collection_item_id;not null;index" json:"collectionItemId"`
	// TraitType is the trait key (e.g. "color")
	TraitType string `gorm:"column:trait_type;not null;type:text;index:idx_attributes_trait,priority:1" json:"traitType"`
	// TraitValue is the trait value (e.g. "red")
	TraitValue string `gorm:"column:trait_value;not null;type:text;index:idx_attributes_trait,priority:2" json:"traitValue"`
}

// TableName specifies the table name for the CollectionItemAttribute model
func (CollectionItemAttribute) TableName() string {
	return "collection_item_attributes"
}
