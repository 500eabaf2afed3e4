package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"

	"github.com/lunarmint/marketplace-api/internal/api/shared/dto"
	apierrors "github.com/lunarmint/marketplace-api/internal/api/shared/errors"
	"github.com/lunarmint/marketplace-api/internal/domain"
	"github.com/lunarmint/marketplace-api/internal/store"
	"github.com/lunarmint/marketplace-api/internal/store/schema"
)

// SUMMARY_POOL_SIZE bounds the concurrent per-collection summary queries on
// the collection listing page
const SUMMARY_POOL_SIZE = 8

// ListQuery holds normalized pagination, sorting, and search parameters.
// SortBy is a validated column name; Page and Limit are already clamped.
type ListQuery struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
	Search   string
}

func (q ListQuery) offset() int {
	return (q.Page - 1) * q.Limit
}

// OfferQuery holds offer-specific filters
type OfferQuery struct {
	CollectionItemID *int64
	OfferCreatedBy   string
	IsAccepted       *bool
	ItemCurrentOwner string
}

// Executor is the interface for the API executor
type Executor interface {
	// CreateCollection creates a new collection
	CreateCollection(ctx context.Context, req dto.CreateCollectionRequest) (*schema.Collection, error)

	// GetCollections retrieves a page of collections, each enriched with its
	// item summary
	GetCollections(ctx context.Context, q ListQuery) (*dto.CollectionListResponse, error)

	// GetUserCollections retrieves all collections created by an address
	GetUserCollections(ctx context.Context, createdBy string) ([]schema.Collection, error)

	// GetCollectionByID retrieves a single collection, nil when absent
	GetCollectionByID(ctx context.Context, id int64) (*schema.Collection, error)

	// GetCollectionItems retrieves a page of a collection's browsable items
	// (status MINT or LIST) with optional trait filters
	GetCollectionItems(ctx context.Context, collectionID int64, q ListQuery, traits map[string][]string) (*dto.ItemListResponse, error)

	// GetCollectionItemByID retrieves a single item with its collection,
	// attributes, and offers, nil when absent
	GetCollectionItemByID(ctx context.Context, id int64) (*schema.CollectionItem, error)

	// GetUserOwnedItems retrieves a page of items owned by a wallet address
	GetUserOwnedItems(ctx context.Context, ownerAddress string, q ListQuery) (*dto.ItemListResponse, error)

	// CreateCollectionItem creates a minimal collection item
	CreateCollectionItem(ctx context.Context, req dto.CreateItemRequest) (*schema.CollectionItem, error)

	// CreateFullCollectionItem creates an item with its attributes and
	// creators in one transaction
	CreateFullCollectionItem(ctx context.Context, req dto.CreateFullItemRequest) error

	// GetMarketSummary computes the global item aggregates
	GetMarketSummary(ctx context.Context) (*dto.MarketSummaryResponse, error)

	// GetCollectionAttributes computes the global attribute histogram
	GetCollectionAttributes(ctx context.Context) ([]dto.AttributeGroup, error)

	// ListCollectionItem transitions an item to LIST
	ListCollectionItem(ctx context.Context, id int64, amount float64, escrowAccount string) (*schema.CollectionItem, error)

	// BuyCollectionItem transitions an item to SELL
	BuyCollectionItem(ctx context.Context, id int64, currentOwner, tokenAddress string) (*schema.CollectionItem, error)

	// CreateOffer creates a new offer for an item
	CreateOffer(ctx context.Context, req dto.CreateOfferRequest) (*schema.CollectionItemOffer, error)

	// GetOffers retrieves a page of offers matching the filters
	GetOffers(ctx context.Context, q ListQuery, f OfferQuery) (*dto.OfferListResponse, error)

	// AcceptOffer accepts an offer and transfers the item to the bidder
	AcceptOffer(ctx context.Context, id int64, tokenAddress string) (*schema.CollectionItemOffer, error)

	// CreateActivityLog appends an activity log entry
	CreateActivityLog(ctx context.Context, req dto.CreateActivityLogRequest) (*schema.ActivityLog, error)

	// GetActivityLogs retrieves a page of activity log entries
	GetActivityLogs(ctx context.Context, q ListQuery, actionType, actionBy string) (*dto.ActivityLogListResponse, error)
}

type executor struct {
	store       store.Store
	summaryPool pond.Pool
}

func NewExecutor(store store.Store) Executor {
	return &executor{
		store:       store,
		summaryPool: pond.NewPool(SUMMARY_POOL_SIZE),
	}
}

func (e *executor) CreateCollection(ctx context.Context, req dto.CreateCollectionRequest) (*schema.Collection, error) {
	collection, err := e.store.CreateCollection(ctx, store.CreateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create collection: %v", err))
	}

	return collection, nil
}

func (e *executor) GetCollections(ctx context.Context, q ListQuery) (*dto.CollectionListResponse, error) {
	collections, total, err := e.store.GetCollections(ctx, store.CollectionFilter{
		Search:   q.Search,
		SortBy:   q.SortBy,
		SortDesc: q.SortDesc,
		Limit:    q.Limit,
		Offset:   q.offset(),
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collections: %v", err))
	}

	// Summaries for independent collections are computed concurrently
	enriched := make([]dto.CollectionWithSummary, len(collections))
	group := e.summaryPool.NewGroup()
	for i, collection := range collections {
		group.SubmitErr(func() error {
			summary, err := e.store.GetCollectionSummary(ctx, &collection.ID)
			if err != nil {
				return fmt.Errorf("failed to get summary for collection %d: %w", collection.ID, err)
			}

			enriched[i] = dto.CollectionWithSummary{
				Collection:          collection,
				CollectionItemCount: summary.TotalItems,
				ListItemsCount:      summary.ListItems,
				SoldItemsCount:      summary.SoldItems,
				UniqueOwners:        summary.UniqueOwners,
				TotalAmount:         summary.TotalAmount,
				LowestAmount:        summary.LowestAmount,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection summaries: %v", err))
	}

	return &dto.CollectionListResponse{
		Collections: enriched,
		Pagination:  dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (e *executor) GetUserCollections(ctx context.Context, createdBy string) ([]schema.Collection, error) {
	collections, err := e.store.GetCollectionsByCreator(ctx, createdBy)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user collections: %v", err))
	}

	return collections, nil
}

func (e *executor) GetCollectionByID(ctx context.Context, id int64) (*schema.Collection, error) {
	collection, err := e.store.GetCollectionByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection: %v", err))
	}

	return collection, nil
}

func (e *executor) GetCollectionItems(ctx context.Context, collectionID int64, q ListQuery, traits map[string][]string) (*dto.ItemListResponse, error) {
	items, total, err := e.store.GetItems(ctx, store.ItemFilter{
		CollectionID: &collectionID,
		Statuses:     []schema.ItemStatus{schema.ItemStatusMint, schema.ItemStatusList},
		Traits:       traits,
		Search:       q.Search,
		SortBy:       q.SortBy,
		SortDesc:     q.SortDesc,
		Limit:        q.Limit,
		Offset:       q.offset(),
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection items: %v", err))
	}

	return &dto.ItemListResponse{
		Items:      items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (e *executor) GetCollectionItemByID(ctx context.Context, id int64) (*schema.CollectionItem, error) {
	item, err := e.store.GetItemByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection item: %v", err))
	}

	return item, nil
}

func (e *executor) GetUserOwnedItems(ctx context.Context, ownerAddress string, q ListQuery) (*dto.ItemListResponse, error) {
	items, total, err := e.store.GetItems(ctx, store.ItemFilter{
		CurrentOwner: &ownerAddress,
		Statuses:     []schema.ItemStatus{schema.ItemStatusMint, schema.ItemStatusList, schema.ItemStatusSell},
		Search:       q.Search,
		SortBy:       q.SortBy,
		SortDesc:     q.SortDesc,
		Limit:        q.Limit,
		Offset:       q.offset(),
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user owned items: %v", err))
	}

	return &dto.ItemListResponse{
		Items:      items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (e *executor) CreateCollectionItem(ctx context.Context, req dto.CreateItemRequest) (*schema.CollectionItem, error) {
	item, err := e.store.CreateItem(ctx, itemInputFromRequest(req))
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create collection item: %v", err))
	}

	return item, nil
}

func (e *executor) CreateFullCollectionItem(ctx context.Context, req dto.CreateFullItemRequest) error {
	data := req.CollectionItemData

	attributes := make([]store.AttributeInput, len(data.Attributes))
	for i, attr := range data.Attributes {
		attributes[i] = store.AttributeInput{
			TraitType:  attr.TraitType,
			TraitValue: attr.TraitValue,
		}
	}

	creators := make([]store.CreatorInput, len(data.Creators))
	for i, creator := range data.Creators {
		creators[i] = store.CreatorInput{
			Address: creator.Address,
			Share:   creator.Share,
		}
	}

	_, err := e.store.CreateFullItem(ctx, store.CreateFullItemInput{
		Item:       itemInputFromRequest(data.CreateItemRequest),
		Attributes: attributes,
		Creators:   creators,
	})
	if err != nil {
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to create full collection item: %v", err))
	}

	return nil
}

func itemInputFromRequest(req dto.CreateItemRequest) store.CreateItemInput {
	return store.CreateItemInput{
		CollectionID: req.CollectionID,
		Name:         req.Name,
		Description:  req.Description,
		ExternalURL:  req.ExternalURL,
		Image:        req.Image,
		MetadataURL:  req.MetadataURL,
		Symbol:       req.Symbol,
		Amount:       req.Amount,
		Status:       schema.ItemStatus(req.Status),
		TokenAddress: req.TokenAddress,
		MintAddress:  req.MintAddress,
		InitialOwner: req.InitialOwner,
		CurrentOwner: req.CurrentOwner,
	}
}

func (e *executor) GetMarketSummary(ctx context.Context) (*dto.MarketSummaryResponse, error) {
	summary, err := e.store.GetCollectionSummary(ctx, nil)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection summary: %v", err))
	}

	return &dto.MarketSummaryResponse{
		TotalItems:   summary.TotalItems,
		UniqueOwners: summary.UniqueOwners,
		TotalAmount:  summary.TotalAmount,
	}, nil
}

func (e *executor) GetCollectionAttributes(ctx context.Context) ([]dto.AttributeGroup, error) {
	counts, err := e.store.GetTraitValueCounts(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection attributes: %v", err))
	}

	return FoldAttributeCounts(counts), nil
}

// FoldAttributeCounts folds (trait_type, trait_value, count) rows, already
// ordered by trait type then value, into per-type histogram groups. The group
// key's count is the sum of its value counts.
func FoldAttributeCounts(counts []store.TraitValueCount) []dto.AttributeGroup {
	groups := make([]dto.AttributeGroup, 0)
	for _, row := range counts {
		if len(groups) == 0 || groups[len(groups)-1].Key.Value != row.TraitType {
			groups = append(groups, dto.AttributeGroup{
				Key: dto.AttributeValueCount{Value: row.TraitType},
			})
		}

		group := &groups[len(groups)-1]
		group.Key.Count += row.Count
		group.Values = append(group.Values, dto.AttributeValueCount{
			Value: row.TraitValue,
			Count: row.Count,
		})
	}

	return groups
}

func (e *executor) ListCollectionItem(ctx context.Context, id int64, amount float64, escrowAccount string) (*schema.CollectionItem, error) {
	item, err := e.store.ListItem(ctx, id, amount, escrowAccount)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionItemNotFound) {
			return nil, err
		}
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list collection item: %v", err))
	}

	return item, nil
}

func (e *executor) BuyCollectionItem(ctx context.Context, id int64, currentOwner, tokenAddress string) (*schema.CollectionItem, error) {
	item, err := e.store.BuyItem(ctx, id, currentOwner, tokenAddress)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionItemNotFound) {
			return nil, err
		}
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to buy collection item: %v", err))
	}

	return item, nil
}

func (e *executor) CreateOffer(ctx context.Context, req dto.CreateOfferRequest) (*schema.CollectionItemOffer, error) {
	offer, err := e.store.CreateOffer(ctx, store.CreateOfferInput{
		CollectionItemID:  req.CollectionItemID,
		OfferCreatedBy:    req.OfferCreatedBy,
		OfferTokenAccount: req.OfferTokenAccount,
		Amount:            req.Amount,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create offer: %v", err))
	}

	return offer, nil
}

func (e *executor) GetOffers(ctx context.Context, q ListQuery, f OfferQuery) (*dto.OfferListResponse, error) {
	offers, total, err := e.store.GetOffers(ctx, store.OfferFilter{
		CollectionItemID: f.CollectionItemID,
		OfferCreatedBy:   f.OfferCreatedBy,
		IsAccepted:       f.IsAccepted,
		ItemCurrentOwner: f.ItemCurrentOwner,
		SortBy:           q.SortBy,
		SortDesc:         q.SortDesc,
		Limit:            q.Limit,
		Offset:           q.offset(),
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get offers: %v", err))
	}

	return &dto.OfferListResponse{
		Items:      offers,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (e *executor) AcceptOffer(ctx context.Context, id int64, tokenAddress string) (*schema.CollectionItemOffer, error) {
	offer, err := e.store.AcceptOffer(ctx, id, tokenAddress)
	if err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) || errors.Is(err, domain.ErrCollectionItemNotFound) {
			return nil, err
		}
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to accept offer: %v", err))
	}

	return offer, nil
}

func (e *executor) CreateActivityLog(ctx context.Context, req dto.CreateActivityLogRequest) (*schema.ActivityLog, error) {
	entry, err := e.store.CreateActivityLog(ctx, store.CreateActivityLogInput{
		ActionType:            req.ActionType,
		ActionBy:              req.ActionBy,
		CollectionItemID:      req.CollectionItemID,
		CollectionItemOfferID: req.CollectionItemOfferID,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create activity log: %v", err))
	}

	return entry, nil
}

func (e *executor) GetActivityLogs(ctx context.Context, q ListQuery, actionType, actionBy string) (*dto.ActivityLogListResponse, error) {
	logs, total, err := e.store.GetActivityLogs(ctx, store.ActivityLogFilter{
		ActionType: actionType,
		ActionBy:   actionBy,
		SortBy:     q.SortBy,
		SortDesc:   q.SortDesc,
		Limit:      q.Limit,
		Offset:     q.offset(),
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get activity logs: %v", err))
	}

	return &dto.ActivityLogListResponse{
		Items:      logs,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}
