package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lunarmint/marketplace-api/internal/domain"
	"github.com/lunarmint/marketplace-api/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into
// safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// orderClause builds a safe ORDER BY for a caller-validated column
func orderClause(table, column string, desc bool) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Table: table, Name: column},
		Desc:   desc,
	}
}

// CreateCollection creates a new collection
func (s *pgStore) CreateCollection(ctx context.Context, input CreateCollectionInput) (*schema.Collection, error) {
	collection := schema.Collection{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.db.WithContext(ctx).Create(&collection).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return &collection, nil
}

// GetCollections retrieves collections matching the filter and the total match count
func (s *pgStore) GetCollections(ctx context.Context, filter CollectionFilter) ([]schema.Collection, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Collection{})

	if filter.Search != "" {
		query = query.Where("collections.name ILIKE ?", "%"+filter.Search+"%")
	}

	// Count total before pagination
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count collections: %w", err)
	}

	query = query.
		Order(orderClause("collections", filter.SortBy, filter.SortDesc)).
		Limit(filter.Limit).
		Offset(filter.Offset)

	var collections []schema.Collection
	if err := query.Find(&collections).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get collections: %w", err)
	}

	return collections, total, nil
}

// GetCollectionsByCreator retrieves all collections created by an address
func (s *pgStore) GetCollectionsByCreator(ctx context.Context, createdBy string) ([]schema.Collection, error) {
	var collections []schema.Collection
	err := s.db.WithContext(ctx).
		Where("created_by = ?", createdBy).
		Order("id ASC").
		Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get collections by creator: %w", err)
	}

	return collections, nil
}

// GetCollectionByID retrieves a collection by its ID
func (s *pgStore) GetCollectionByID(ctx context.Context, id int64) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return &collection, nil
}

// CreateItem creates a new collection item
func (s *pgStore) CreateItem(ctx context.Context, input CreateItemInput) (*schema.CollectionItem, error) {
	item := newItemFromInput(input)

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection item: %w", err)
	}

	return &item, nil
}

// CreateFullItem creates an item with its attributes and creators in one transaction
func (s *pgStore) CreateFullItem(ctx context.Context, input CreateFullItemInput) (*schema.CollectionItem, error) {
	// Full creation always starts the item lifecycle at MINT
	input.Item.Status = schema.ItemStatusMint
	item := newItemFromInput(input.Item)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create collection item: %w", err)
		}

		if len(input.Attributes) > 0 {
			attributes := make([]schema.CollectionItemAttribute, len(input.Attributes))
			for i, attr := range input.Attributes {
				attributes[i] = schema.CollectionItemAttribute{
					CollectionItemID: item.ID,
					TraitType:        attr.TraitType,
					TraitValue:       attr.TraitValue,
				}
			}
			if err := tx.Create(&attributes).Error; err != nil {
				return fmt.Errorf("failed to create item attributes: %w", err)
			}
		}

		if len(input.Creators) > 0 {
			creators := make([]schema.CollectionItemCreator, len(input.Creators))
			for i, creator := range input.Creators {
				creators[i] = schema.CollectionItemCreator{
					CollectionItemID: item.ID,
					Address:          creator.Address,
					Share:            creator.Share,
				}
			}
			if err := tx.Create(&creators).Error; err != nil {
				return fmt.Errorf("failed to create item creators: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func newItemFromInput(input CreateItemInput) schema.CollectionItem {
	status := input.Status
	if status == "" {
		status = schema.ItemStatusMint
	}

	return schema.CollectionItem{
		CollectionID: input.CollectionID,
		Name:         input.Name,
		Description:  input.Description,
		ExternalURL:  input.ExternalURL,
		Image:        input.Image,
		MetadataURL:  input.MetadataURL,
		Symbol:       input.Symbol,
		Amount:       input.Amount,
		Status:       status,
		TokenAddress: input.TokenAddress,
		MintAddress:  input.MintAddress,
		InitialOwner: input.InitialOwner,
		CurrentOwner: input.CurrentOwner,
	}
}

// GetItems retrieves items matching the filter and the total match count
func (s *pgStore) GetItems(ctx context.Context, filter ItemFilter) ([]schema.CollectionItem, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.CollectionItem{})

	if filter.CollectionID != nil {
		query = query.Where("collection_items.collection_id = ?", *filter.CollectionID)
	}

	if filter.CurrentOwner != nil {
		query = query.Where("collection_items.current_owner = ?", *filter.CurrentOwner)
	}

	if len(filter.Statuses) > 0 {
		query = query.Where("collection_items.status IN ?", filter.Statuses)
	}

	if filter.Search != "" {
		query = query.Where("collection_items.name ILIKE ?", "%"+filter.Search+"%")
	}

	// Trait filters: AND across trait types, OR within a type's value list.
	// Keys are sorted so the generated SQL is deterministic.
	traitTypes := make([]string, 0, len(filter.Traits))
	for traitType := range filter.Traits {
		traitTypes = append(traitTypes, traitType)
	}
	sort.Strings(traitTypes)
	for _, traitType := range traitTypes {
		query = query.Where(
			`EXISTS (
				SELECT 1 FROM collection_item_attributes a
				WHERE a.collection_item_id = collection_items.id
					AND a.trait_type = ?
					AND a.trait_value IN ?
			)`, traitType, filter.Traits[traitType])
	}

	// Count total before pagination
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count collection items: %w", err)
	}

	query = query.
		Order(orderClause("collection_items", filter.SortBy, filter.SortDesc)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Preload("Collection")

	var items []schema.CollectionItem
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get collection items: %w", err)
	}

	return items, total, nil
}

// GetItemByID retrieves an item with its collection, attributes, and offers
func (s *pgStore) GetItemByID(ctx context.Context, id int64) (*schema.CollectionItem, error) {
	var item schema.CollectionItem
	err := s.db.WithContext(ctx).
		Preload("Collection").
		Preload("Attributes").
		Preload("Offers").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection item: %w", err)
	}

	return &item, nil
}

// GetCollectionSummary computes aggregate statistics for one collection, or
// globally when collectionID is nil
func (s *pgStore) GetCollectionSummary(ctx context.Context, collectionID *int64) (*CollectionSummary, error) {
	query := s.db.WithContext(ctx).Model(&schema.CollectionItem{}).
		Select(`COUNT(*) AS total_items,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(MIN(amount), 0) AS lowest_amount,
			COUNT(DISTINCT current_owner) AS unique_owners,
			COUNT(*) FILTER (WHERE status = ?) AS list_items,
			COUNT(*) FILTER (WHERE status = ?) AS sold_items`,
			schema.ItemStatusList, schema.ItemStatusSell)

	if collectionID != nil {
		query = query.Where("collection_id = ?", *collectionID)
	}

	var summary CollectionSummary
	if err := query.Scan(&summary).Error; err != nil {
		return nil, fmt.Errorf("failed to get collection summary: %w", err)
	}

	return &summary, nil
}

// GetTraitValueCounts groups all attribute rows by (trait_type, trait_value)
// with occurrence counts, ordered by trait_type then trait_value ascending
func (s *pgStore) GetTraitValueCounts(ctx context.Context) ([]TraitValueCount, error) {
	var counts []TraitValueCount
	err := s.db.WithContext(ctx).Model(&schema.CollectionItemAttribute{}).
		Select(`trait_type, trait_value, COUNT(*) AS count`).
		Group("trait_type").
		Group("trait_value").
		Order("trait_type ASC, trait_value ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get trait value counts: %w", err)
	}

	return counts, nil
}

// ListItem transitions an item to LIST, setting its price and escrow account
func (s *pgStore) ListItem(ctx context.Context, id int64, amount float64, escrowAccount string) (*schema.CollectionItem, error) {
	var item schema.CollectionItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCollectionItemNotFound
			}
			return fmt.Errorf("failed to get collection item: %w", err)
		}

		item.Amount = &amount
		item.EscrowAccount = &escrowAccount
		item.Status = schema.ItemStatusList

		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("failed to update collection item: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// BuyItem transitions an item to SELL, transferring ownership and clearing escrow
func (s *pgStore) BuyItem(ctx context.Context, id int64, newOwner string, tokenAddress string) (*schema.CollectionItem, error) {
	var item schema.CollectionItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCollectionItemNotFound
			}
			return fmt.Errorf("failed to get collection item: %w", err)
		}

		item.CurrentOwner = &newOwner
		item.TokenAddress = &tokenAddress
		item.EscrowAccount = nil
		item.Status = schema.ItemStatusSell

		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("failed to update collection item: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// CreateOffer creates a new offer for an item
func (s *pgStore) CreateOffer(ctx context.Context, input CreateOfferInput) (*schema.CollectionItemOffer, error) {
	offer := schema.CollectionItemOffer{
		CollectionItemID:  input.CollectionItemID,
		OfferCreatedBy:    input.OfferCreatedBy,
		OfferTokenAccount: input.OfferTokenAccount,
		Amount:            input.Amount,
	}

	if err := s.db.WithContext(ctx).Create(&offer).Error; err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	return &offer, nil
}

// GetOffers retrieves offers matching the filter and the total match count
func (s *pgStore) GetOffers(ctx context.Context, filter OfferFilter) ([]schema.CollectionItemOffer, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.CollectionItemOffer{})

	if filter.CollectionItemID != nil {
		query = query.Where("collection_item_offers.collection_item_id = ?", *filter.CollectionItemID)
	}

	if filter.OfferCreatedBy != "" {
		query = query.Where("collection_item_offers.offer_created_by LIKE ?", "%"+filter.OfferCreatedBy+"%")
	}

	if filter.IsAccepted != nil {
		query = query.Where("collection_item_offers.is_accepted = ?", *filter.IsAccepted)
	}

	if filter.ItemCurrentOwner != "" {
		query = query.
			Joins("JOIN collection_items ON collection_items.id = collection_item_offers.collection_item_id").
			Where("collection_items.current_owner = ?", filter.ItemCurrentOwner)
	}

	// Count total before pagination
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count offers: %w", err)
	}

	query = query.
		Order(orderClause("collection_item_offers", filter.SortBy, filter.SortDesc)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Preload("CollectionItem")

	var offers []schema.CollectionItemOffer
	if err := query.Find(&offers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get offers: %w", err)
	}

	return offers, total, nil
}

// AcceptOffer marks an offer accepted and transfers the referenced item to the
// bidder. Both writes commit atomically.
func (s *pgStore) AcceptOffer(ctx context.Context, id int64, tokenAddress string) (*schema.CollectionItemOffer, error) {
	var offer schema.CollectionItemOffer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&offer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOfferNotFound
			}
			return fmt.Errorf("failed to get offer: %w", err)
		}

		offer.IsAccepted = true
		if err := tx.Save(&offer).Error; err != nil {
			return fmt.Errorf("failed to update offer: %w", err)
		}

		var item schema.CollectionItem
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", offer.CollectionItemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCollectionItemNotFound
			}
			return fmt.Errorf("failed to get collection item: %w", err)
		}

		item.CurrentOwner = &offer.OfferCreatedBy
		item.TokenAddress = &tokenAddress
		item.EscrowAccount = nil
		item.Status = schema.ItemStatusSell

		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("failed to update collection item: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &offer, nil
}

// CreateActivityLog appends an activity log entry
func (s *pgStore) CreateActivityLog(ctx context.Context, input CreateActivityLogInput) (*schema.ActivityLog, error) {
	entry := schema.ActivityLog{
		ActionType:            input.ActionType,
		ActionBy:              input.ActionBy,
		CollectionItemID:      input.CollectionItemID,
		CollectionItemOfferID: input.CollectionItemOfferID,
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create activity log: %w", err)
	}

	return &entry, nil
}

// GetActivityLogs retrieves activity log entries matching the filter and the
// total match count
func (s *pgStore) GetActivityLogs(ctx context.Context, filter ActivityLogFilter) ([]schema.ActivityLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.ActivityLog{})

	if filter.ActionType != "" {
		query = query.Where("activity_log.action_type = ?", filter.ActionType)
	}

	if filter.ActionBy != "" {
		query = query.Where("activity_log.action_by = ?", filter.ActionBy)
	}

	// Count total before pagination
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	query = query.
		Order(orderClause("activity_log", filter.SortBy, filter.SortDesc)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Preload("CollectionItem").
		Preload("CollectionItemOffer")

	var logs []schema.ActivityLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get activity logs: %w", err)
	}

	return logs, total, nil
}
