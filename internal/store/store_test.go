package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarmint/marketplace-api/internal/domain"
	"github.com/lunarmint/marketplace-api/internal/store/schema"
)

// StoreTestSuite provides the interface for running store tests against different implementations
type StoreTestSuite struct {
	Store Store
	// InitDB should be called before each test to initialize the database
	InitDB func(t *testing.T) Store
	// CleanupDB should be called after each test to clean up the database
	CleanupDB func(t *testing.T)
}

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestCollection creates a test collection input
func buildTestCollection(name, createdBy string) CreateCollectionInput {
	return CreateCollectionInput{
		Name:        name,
		Description: fmt.Sprintf("Description for %s", name),
		CreatedBy:   createdBy,
	}
}

// buildTestItem creates a test item input for a collection
func buildTestItem(collectionID int64, name string) CreateItemInput {
	symbol := "LNRM"
	image := fmt.Sprintf("https://cdn.example.com/%s.png", name)
	return CreateItemInput{
		CollectionID: collectionID,
		Name:         name,
		Symbol:       &symbol,
		Image:        &image,
	}
}

// mustCreateCollection creates a collection or fails the test
func mustCreateCollection(t *testing.T, store Store, name, createdBy string) *schema.Collection {
	collection, err := store.CreateCollection(context.Background(), buildTestCollection(name, createdBy))
	require.NoError(t, err)
	require.NotNil(t, collection)
	return collection
}

// mustCreateItem creates an item or fails the test
func mustCreateItem(t *testing.T, store Store, collectionID int64, name string) *schema.CollectionItem {
	item, err := store.CreateItem(context.Background(), buildTestItem(collectionID, name))
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

// =============================================================================
// Test: Collections
// =============================================================================

func testCreateCollection(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates a collection with generated id and created date", func(t *testing.T) {
		input := buildTestCollection("Lunar Apes", "8Yx1fJ4vJ8kKqW8nR3mTzV5cH6bD2aE9sL7pQ4uN1wXo")

		collection, err := store.CreateCollection(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, collection)
		assert.NotZero(t, collection.ID)
		assert.Equal(t, input.Name, collection.Name)
		assert.Equal(t, input.Description, collection.Description)
		assert.Equal(t, input.CreatedBy, collection.CreatedBy)
		assert.False(t, collection.CreatedDate.IsZero())
	})
}

func testGetCollectionByID(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns collection when it exists", func(t *testing.T) {
		created := mustCreateCollection(t, store, "Moon Rocks", "creator-moon")

		collection, err := store.GetCollectionByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, collection)
		assert.Equal(t, created.ID, collection.ID)
		assert.Equal(t, "Moon Rocks", collection.Name)
	})

	t.Run("returns nil without error when collection does not exist", func(t *testing.T) {
		collection, err := store.GetCollectionByID(ctx, 999999999)
		require.NoError(t, err)
		assert.Nil(t, collection)
	})
}

func testGetCollections(t *testing.T, store Store) {
	ctx := context.Background()

	mustCreateCollection(t, store, "Alpha Squad", "creator-a")
	mustCreateCollection(t, store, "Beta Brigade", "creator-b")
	mustCreateCollection(t, store, "alpha centauri", "creator-c")

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		collections, total, err := store.GetCollections(ctx, CollectionFilter{
			Search: "ALPHA",
			SortBy: "name",
			Limit:  10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, collections, 2)
		assert.Equal(t, "Alpha Squad", collections[0].Name)
		assert.Equal(t, "alpha centauri", collections[1].Name)
	})

	t.Run("sorts descending when requested", func(t *testing.T) {
		collections, _, err := store.GetCollections(ctx, CollectionFilter{
			SortBy:   "id",
			SortDesc: true,
			Limit:    10,
		})
		require.NoError(t, err)
		require.NotEmpty(t, collections)
		for i := 1; i < len(collections); i++ {
			assert.Greater(t, collections[i-1].ID, collections[i].ID)
		}
	})

	t.Run("total count ignores pagination", func(t *testing.T) {
		collections, total, err := store.GetCollections(ctx, CollectionFilter{
			SortBy: "id",
			Limit:  1,
			Offset: 1,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, int64(3))
		assert.Len(t, collections, 1)
	})
}

func testGetCollectionsByCreator(t *testing.T, store Store) {
	ctx := context.Background()

	mustCreateCollection(t, store, "First Drop", "wallet-creator-x")
	mustCreateCollection(t, store, "Second Drop", "wallet-creator-x")
	mustCreateCollection(t, store, "Other Drop", "wallet-creator-y")

	t.Run("returns all collections for the creator in id order", func(t *testing.T) {
		collections, err := store.GetCollectionsByCreator(ctx, "wallet-creator-x")
		require.NoError(t, err)
		require.Len(t, collections, 2)
		assert.Equal(t, "First Drop", collections[0].Name)
		assert.Equal(t, "Second Drop", collections[1].Name)
	})

	t.Run("returns empty slice for unknown creator", func(t *testing.T) {
		collections, err := store.GetCollectionsByCreator(ctx, "wallet-nobody")
		require.NoError(t, err)
		assert.Empty(t, collections)
	})
}

// =============================================================================
// Test: Collection Items
// =============================================================================

func testCreateItem(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Item Home", "creator-items")

	t.Run("creates an item defaulting to MINT status", func(t *testing.T) {
		item, err := store.CreateItem(ctx, buildTestItem(collection.ID, "Ape #1"))
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.NotZero(t, item.ID)
		assert.Equal(t, collection.ID, item.CollectionID)
		assert.Equal(t, schema.ItemStatusMint, item.Status)
		assert.Nil(t, item.Amount)
		assert.Nil(t, item.EscrowAccount)
	})
}

func testCreateFullItem(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Full Item Home", "creator-full")

	t.Run("creates item with attributes and creators atomically", func(t *testing.T) {
		input := CreateFullItemInput{
			Item: buildTestItem(collection.ID, "Ape #42"),
			Attributes: []AttributeInput{
				{TraitType: "Background", TraitValue: "Blue"},
				{TraitType: "Fur", TraitValue: "Golden"},
			},
			Creators: []CreatorInput{
				{Address: "creator-full", Share: 70},
				{Address: "co-creator", Share: 30},
			},
		}

		item, err := store.CreateFullItem(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, schema.ItemStatusMint, item.Status)

		loaded, err := store.GetItemByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Len(t, loaded.Attributes, 2)
		require.NotNil(t, loaded.Collection)
		assert.Equal(t, collection.ID, loaded.Collection.ID)
	})

	t.Run("forces MINT status even when the input says otherwise", func(t *testing.T) {
		itemInput := buildTestItem(collection.ID, "Ape #43")
		itemInput.Status = schema.ItemStatusSell

		item, err := store.CreateFullItem(ctx, CreateFullItemInput{Item: itemInput})
		require.NoError(t, err)
		assert.Equal(t, schema.ItemStatusMint, item.Status)
	})
}

func testGetItems(t *testing.T, store Store) {
	ctx := context.Background()
	collectionA := mustCreateCollection(t, store, "Traits A", "creator-traits")
	collectionB := mustCreateCollection(t, store, "Traits B", "creator-traits")

	mkItem := func(collectionID int64, name string, attrs []AttributeInput) *schema.CollectionItem {
		item, err := store.CreateFullItem(ctx, CreateFullItemInput{
			Item:       buildTestItem(collectionID, name),
			Attributes: attrs,
		})
		require.NoError(t, err)
		return item
	}

	blueGolden := mkItem(collectionA.ID, "Blue Golden", []AttributeInput{
		{TraitType: "Background", TraitValue: "Blue"},
		{TraitType: "Fur", TraitValue: "Golden"},
	})
	redGolden := mkItem(collectionA.ID, "Red Golden", []AttributeInput{
		{TraitType: "Background", TraitValue: "Red"},
		{TraitType: "Fur", TraitValue: "Golden"},
	})
	mkItem(collectionA.ID, "Blue Brown", []AttributeInput{
		{TraitType: "Background", TraitValue: "Blue"},
		{TraitType: "Fur", TraitValue: "Brown"},
	})
	otherItem := mkItem(collectionB.ID, "Other Collection Item", nil)

	t.Run("filters by collection id", func(t *testing.T) {
		items, total, err := store.GetItems(ctx, ItemFilter{
			CollectionID: &collectionB.ID,
			SortBy:       "id",
			Limit:        10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, otherItem.ID, items[0].ID)
		require.NotNil(t, items[0].Collection)
		assert.Equal(t, collectionB.ID, items[0].Collection.ID)
	})

	t.Run("trait filters AND across types and OR within values", func(t *testing.T) {
		items, total, err := store.GetItems(ctx, ItemFilter{
			CollectionID: &collectionA.ID,
			Traits: map[string][]string{
				"Background": {"Blue", "Red"},
				"Fur":        {"Golden"},
			},
			SortBy: "id",
			Limit:  10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 2)
		assert.Equal(t, blueGolden.ID, items[0].ID)
		assert.Equal(t, redGolden.ID, items[1].ID)
	})

	t.Run("trait filter with no matching combination returns no items", func(t *testing.T) {
		_, total, err := store.GetItems(ctx, ItemFilter{
			CollectionID: &collectionA.ID,
			Traits: map[string][]string{
				"Background": {"Red"},
				"Fur":        {"Brown"},
			},
			SortBy: "id",
			Limit:  10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("filters by status list", func(t *testing.T) {
		_, err := store.ListItem(ctx, blueGolden.ID, 2.5, "escrow-list-filter")
		require.NoError(t, err)

		items, total, err := store.GetItems(ctx, ItemFilter{
			CollectionID: &collectionA.ID,
			Statuses:     []schema.ItemStatus{schema.ItemStatusList},
			SortBy:       "id",
			Limit:        10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, blueGolden.ID, items[0].ID)
	})

	t.Run("search matches item name case-insensitively", func(t *testing.T) {
		items, total, err := store.GetItems(ctx, ItemFilter{
			CollectionID: &collectionA.ID,
			Search:       "golden",
			SortBy:       "name",
			Limit:        10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 2)
	})
}

func testGetItemByID(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns nil without error when item does not exist", func(t *testing.T) {
		item, err := store.GetItemByID(ctx, 999999999)
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("preloads collection, attributes, and offers", func(t *testing.T) {
		collection := mustCreateCollection(t, store, "Preload Home", "creator-preload")
		created, err := store.CreateFullItem(ctx, CreateFullItemInput{
			Item: buildTestItem(collection.ID, "Preload #1"),
			Attributes: []AttributeInput{
				{TraitType: "Eyes", TraitValue: "Laser"},
			},
		})
		require.NoError(t, err)

		_, err = store.CreateOffer(ctx, CreateOfferInput{
			CollectionItemID:  created.ID,
			OfferCreatedBy:    "bidder-preload",
			OfferTokenAccount: "token-account-preload",
			Amount:            1.25,
		})
		require.NoError(t, err)

		item, err := store.GetItemByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, item)
		require.NotNil(t, item.Collection)
		assert.Equal(t, "Preload Home", item.Collection.Name)
		require.Len(t, item.Attributes, 1)
		assert.Equal(t, "Eyes", item.Attributes[0].TraitType)
		require.Len(t, item.Offers, 1)
		assert.Equal(t, "bidder-preload", item.Offers[0].OfferCreatedBy)
	})
}

// =============================================================================
// Test: Aggregations
// =============================================================================

func testGetCollectionSummary(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Summary Home", "creator-summary")

	itemA := mustCreateItem(t, store, collection.ID, "Summary #1")
	itemB := mustCreateItem(t, store, collection.ID, "Summary #2")
	mustCreateItem(t, store, collection.ID, "Summary #3")

	_, err := store.ListItem(ctx, itemA.ID, 3.0, "escrow-summary-a")
	require.NoError(t, err)
	_, err = store.ListItem(ctx, itemB.ID, 1.5, "escrow-summary-b")
	require.NoError(t, err)
	_, err = store.BuyItem(ctx, itemB.ID, "owner-summary", "token-summary")
	require.NoError(t, err)

	t.Run("computes per-collection aggregates", func(t *testing.T) {
		summary, err := store.GetCollectionSummary(ctx, &collection.ID)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, int64(3), summary.TotalItems)
		assert.Equal(t, 4.5, summary.TotalAmount)
		assert.Equal(t, 1.5, summary.LowestAmount)
		assert.Equal(t, int64(1), summary.ListItems)
		assert.Equal(t, int64(1), summary.SoldItems)
		// Only itemB has a non-null owner
		assert.Equal(t, int64(1), summary.UniqueOwners)
	})

	t.Run("empty collection yields zeroed aggregates", func(t *testing.T) {
		empty := mustCreateCollection(t, store, "Empty Summary", "creator-summary")

		summary, err := store.GetCollectionSummary(ctx, &empty.ID)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, int64(0), summary.TotalItems)
		assert.Equal(t, float64(0), summary.TotalAmount)
		assert.Equal(t, float64(0), summary.LowestAmount)
		assert.Equal(t, int64(0), summary.UniqueOwners)
	})

	t.Run("nil collection id aggregates across all collections", func(t *testing.T) {
		summary, err := store.GetCollectionSummary(ctx, nil)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.GreaterOrEqual(t, summary.TotalItems, int64(3))
	})
}

func testGetTraitValueCounts(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Trait Counts", "creator-counts")

	for i, attrs := range [][]AttributeInput{
		{{TraitType: "Background", TraitValue: "Blue"}, {TraitType: "Fur", TraitValue: "Golden"}},
		{{TraitType: "Background", TraitValue: "Blue"}},
		{{TraitType: "Background", TraitValue: "Red"}},
	} {
		_, err := store.CreateFullItem(ctx, CreateFullItemInput{
			Item:       buildTestItem(collection.ID, fmt.Sprintf("Counted #%d", i)),
			Attributes: attrs,
		})
		require.NoError(t, err)
	}

	t.Run("groups by trait type and value in ascending order", func(t *testing.T) {
		counts, err := store.GetTraitValueCounts(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(counts), 3)

		byTrait := map[string]map[string]int64{}
		for i := 1; i < len(counts); i++ {
			prev, cur := counts[i-1], counts[i]
			if prev.TraitType == cur.TraitType {
				assert.LessOrEqual(t, prev.TraitValue, cur.TraitValue)
			} else {
				assert.Less(t, prev.TraitType, cur.TraitType)
			}
		}
		for _, c := range counts {
			if byTrait[c.TraitType] == nil {
				byTrait[c.TraitType] = map[string]int64{}
			}
			byTrait[c.TraitType][c.TraitValue] = c.Count
		}

		assert.Equal(t, int64(2), byTrait["Background"]["Blue"])
		assert.Equal(t, int64(1), byTrait["Background"]["Red"])
		assert.Equal(t, int64(1), byTrait["Fur"]["Golden"])
	})
}

// =============================================================================
// Test: Item Transitions
// =============================================================================

func testListItem(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Listing Home", "creator-listing")

	t.Run("sets amount, escrow account, and LIST status", func(t *testing.T) {
		created := mustCreateItem(t, store, collection.ID, "Listed #1")

		item, err := store.ListItem(ctx, created.ID, 9.99, "escrow-account-1")
		require.NoError(t, err)
		require.NotNil(t, item)
		require.NotNil(t, item.Amount)
		assert.Equal(t, 9.99, *item.Amount)
		require.NotNil(t, item.EscrowAccount)
		assert.Equal(t, "escrow-account-1", *item.EscrowAccount)
		assert.Equal(t, schema.ItemStatusList, item.Status)
	})

	t.Run("returns ErrCollectionItemNotFound for unknown item", func(t *testing.T) {
		_, err := store.ListItem(ctx, 999999999, 1.0, "escrow-missing")
		require.ErrorIs(t, err, domain.ErrCollectionItemNotFound)
	})
}

func testBuyItem(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Buying Home", "creator-buying")

	t.Run("transfers ownership, clears escrow, and sets SELL status", func(t *testing.T) {
		created := mustCreateItem(t, store, collection.ID, "Bought #1")
		_, err := store.ListItem(ctx, created.ID, 5.0, "escrow-before-buy")
		require.NoError(t, err)

		item, err := store.BuyItem(ctx, created.ID, "new-owner-wallet", "token-address-1")
		require.NoError(t, err)
		require.NotNil(t, item)
		require.NotNil(t, item.CurrentOwner)
		assert.Equal(t, "new-owner-wallet", *item.CurrentOwner)
		require.NotNil(t, item.TokenAddress)
		assert.Equal(t, "token-address-1", *item.TokenAddress)
		assert.Nil(t, item.EscrowAccount)
		assert.Equal(t, schema.ItemStatusSell, item.Status)

		// Verify the persisted row, not just the returned struct
		loaded, err := store.GetItemByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Nil(t, loaded.EscrowAccount)
		assert.Equal(t, schema.ItemStatusSell, loaded.Status)
	})

	t.Run("returns ErrCollectionItemNotFound for unknown item", func(t *testing.T) {
		_, err := store.BuyItem(ctx, 999999999, "nobody", "token-missing")
		require.ErrorIs(t, err, domain.ErrCollectionItemNotFound)
	})
}

// =============================================================================
// Test: Offers
// =============================================================================

func testOffers(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Offer Home", "creator-offers")
	itemA := mustCreateItem(t, store, collection.ID, "Offered #1")
	itemB := mustCreateItem(t, store, collection.ID, "Offered #2")

	_, err := store.BuyItem(ctx, itemB.ID, "owner-of-b", "token-b")
	require.NoError(t, err)

	offerOnA, err := store.CreateOffer(ctx, CreateOfferInput{
		CollectionItemID:  itemA.ID,
		OfferCreatedBy:    "bidder-alice",
		OfferTokenAccount: "token-account-alice",
		Amount:            2.0,
	})
	require.NoError(t, err)

	_, err = store.CreateOffer(ctx, CreateOfferInput{
		CollectionItemID:  itemB.ID,
		OfferCreatedBy:    "bidder-bob",
		OfferTokenAccount: "token-account-bob",
		Amount:            3.5,
	})
	require.NoError(t, err)

	t.Run("new offers start unaccepted", func(t *testing.T) {
		assert.False(t, offerOnA.IsAccepted)
		assert.NotZero(t, offerOnA.ID)
	})

	t.Run("filters by item id", func(t *testing.T) {
		offers, total, err := store.GetOffers(ctx, OfferFilter{
			CollectionItemID: &itemA.ID,
			SortBy:           "id",
			Limit:            10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, offers, 1)
		assert.Equal(t, offerOnA.ID, offers[0].ID)
		require.NotNil(t, offers[0].CollectionItem)
		assert.Equal(t, itemA.ID, offers[0].CollectionItem.ID)
	})

	t.Run("filters by bidder address substring", func(t *testing.T) {
		offers, total, err := store.GetOffers(ctx, OfferFilter{
			OfferCreatedBy: "alice",
			SortBy:         "id",
			Limit:          10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, offers, 1)
		assert.Equal(t, "bidder-alice", offers[0].OfferCreatedBy)
	})

	t.Run("filters by current owner of the offered item", func(t *testing.T) {
		offers, total, err := store.GetOffers(ctx, OfferFilter{
			ItemCurrentOwner: "owner-of-b",
			SortBy:           "id",
			Limit:            10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, offers, 1)
		assert.Equal(t, "bidder-bob", offers[0].OfferCreatedBy)
	})

	t.Run("filters by acceptance flag", func(t *testing.T) {
		accepted := true
		_, total, err := store.GetOffers(ctx, OfferFilter{
			IsAccepted: &accepted,
			SortBy:     "id",
			Limit:      10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func testAcceptOffer(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Accept Home", "creator-accept")

	t.Run("accepts the offer and transfers the item to the bidder", func(t *testing.T) {
		item := mustCreateItem(t, store, collection.ID, "Accepted #1")
		_, err := store.ListItem(ctx, item.ID, 4.0, "escrow-accept")
		require.NoError(t, err)

		offer, err := store.CreateOffer(ctx, CreateOfferInput{
			CollectionItemID:  item.ID,
			OfferCreatedBy:    "bidder-carol",
			OfferTokenAccount: "token-account-carol",
			Amount:            4.2,
		})
		require.NoError(t, err)

		accepted, err := store.AcceptOffer(ctx, offer.ID, "token-address-accepted")
		require.NoError(t, err)
		require.NotNil(t, accepted)
		assert.True(t, accepted.IsAccepted)

		loaded, err := store.GetItemByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		require.NotNil(t, loaded.CurrentOwner)
		assert.Equal(t, "bidder-carol", *loaded.CurrentOwner)
		require.NotNil(t, loaded.TokenAddress)
		assert.Equal(t, "token-address-accepted", *loaded.TokenAddress)
		assert.Nil(t, loaded.EscrowAccount)
		assert.Equal(t, schema.ItemStatusSell, loaded.Status)
	})

	t.Run("returns ErrOfferNotFound for unknown offer", func(t *testing.T) {
		_, err := store.AcceptOffer(ctx, 999999999, "token-missing")
		require.ErrorIs(t, err, domain.ErrOfferNotFound)
	})
}

// =============================================================================
// Test: Activity Log
// =============================================================================

func testActivityLog(t *testing.T, store Store) {
	ctx := context.Background()
	collection := mustCreateCollection(t, store, "Activity Home", "creator-activity")
	item := mustCreateItem(t, store, collection.ID, "Logged #1")

	offer, err := store.CreateOffer(ctx, CreateOfferInput{
		CollectionItemID:  item.ID,
		OfferCreatedBy:    "bidder-log",
		OfferTokenAccount: "token-account-log",
		Amount:            1.0,
	})
	require.NoError(t, err)

	entry, err := store.CreateActivityLog(ctx, CreateActivityLogInput{
		ActionType:       "MINT",
		ActionBy:         "wallet-log",
		CollectionItemID: &item.ID,
	})
	require.NoError(t, err)

	_, err = store.CreateActivityLog(ctx, CreateActivityLogInput{
		ActionType:            "OFFER",
		ActionBy:              "bidder-log",
		CollectionItemID:      &item.ID,
		CollectionItemOfferID: &offer.ID,
	})
	require.NoError(t, err)

	t.Run("created entry carries a timestamp", func(t *testing.T) {
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.ActionDateTime.IsZero())
	})

	t.Run("filters by action type with related records preloaded", func(t *testing.T) {
		logs, total, err := store.GetActivityLogs(ctx, ActivityLogFilter{
			ActionType: "OFFER",
			SortBy:     "id",
			Limit:      10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, logs, 1)
		require.NotNil(t, logs[0].CollectionItem)
		assert.Equal(t, item.ID, logs[0].CollectionItem.ID)
		require.NotNil(t, logs[0].CollectionItemOffer)
		assert.Equal(t, offer.ID, logs[0].CollectionItemOffer.ID)
	})

	t.Run("filters by acting address", func(t *testing.T) {
		logs, total, err := store.GetActivityLogs(ctx, ActivityLogFilter{
			ActionBy: "wallet-log",
			SortBy:   "id",
			Limit:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, logs, 1)
		assert.Equal(t, "MINT", logs[0].ActionType)
	})
}

// =============================================================================
// Test Runner - runs all tests against a given store implementation
// =============================================================================

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateCollection", testCreateCollection},
		{"GetCollectionByID", testGetCollectionByID},
		{"GetCollections", testGetCollections},
		{"GetCollectionsByCreator", testGetCollectionsByCreator},
		{"CreateItem", testCreateItem},
		{"CreateFullItem", testCreateFullItem},
		{"GetItems", testGetItems},
		{"GetItemByID", testGetItemByID},
		{"GetCollectionSummary", testGetCollectionSummary},
		{"GetTraitValueCounts", testGetTraitValueCounts},
		{"ListItem", testListItem},
		{"BuyItem", testBuyItem},
		{"Offers", testOffers},
		{"AcceptOffer", testAcceptOffer},
		{"ActivityLog", testActivityLog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
