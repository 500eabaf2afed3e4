package rest

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lunarmint/marketplace-api/internal/api/shared/executor"
)

const (
	MAX_PAGE_SIZE     = 100
	DEFAULT_PAGE_SIZE = 10
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func (o Order) Desc() bool {
	return o == OrderDesc
}

func (o Order) Asc() bool {
	return o == OrderAsc
}

// ListQueryParams holds the common pagination, sorting, and search query
// parameters shared by all list endpoints
type ListQueryParams struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Search    string `form:"search"`
}

// SortSpec defines the sorting rules of one endpoint: which sortBy values are
// allowed (mapped to column names), the column used when sortBy is unknown,
// the order used when sortOrder is absent, and the order used when sortOrder
// is present but invalid.
type SortSpec struct {
	Columns       map[string]string
	DefaultColumn string
	DefaultOrder  Order
	FallbackOrder Order
}

var collectionSortSpec = SortSpec{
	Columns: map[string]string{
		"id":          "id",
		"name":        "name",
		"createdBy":   "created_by",
		"createdDate": "created_date",
	},
	DefaultColumn: "name",
	DefaultOrder:  OrderAsc,
	FallbackOrder: OrderAsc,
}

var itemSortSpec = SortSpec{
	Columns: map[string]string{
		"id":          "id",
		"name":        "name",
		"amount":      "amount",
		"status":      "status",
		"createdDate": "created_date",
	},
	DefaultColumn: "name",
	DefaultOrder:  OrderAsc,
	FallbackOrder: OrderDesc,
}

var offerSortSpec = SortSpec{
	Columns: map[string]string{
		"id":          "id",
		"amount":      "amount",
		"createdDate": "created_date",
	},
	DefaultColumn: "created_date",
	DefaultOrder:  OrderDesc,
	FallbackOrder: OrderDesc,
}

var activityLogSortSpec = SortSpec{
	Columns: map[string]string{
		"id":             "id",
		"actionType":     "action_type",
		"actionBy":       "action_by",
		"actionDateTime": "action_date_time",
	},
	DefaultColumn: "action_date_time",
	DefaultOrder:  OrderDesc,
	FallbackOrder: OrderDesc,
}

// ParseListQuery parses and normalizes the common list query parameters
// against an endpoint's sort spec
func ParseListQuery(c *gin.Context, spec SortSpec) (*executor.ListQuery, error) {
	var params ListQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	q := params.Normalize(spec)
	return &q, nil
}

// Normalize clamps pagination and resolves the sort column and direction
func (p ListQueryParams) Normalize(spec SortSpec) executor.ListQuery {
	page := p.Page
	if page < 1 {
		page = 1
	}

	limit := p.Limit
	if limit < 1 {
		limit = DEFAULT_PAGE_SIZE
	}
	if limit > MAX_PAGE_SIZE {
		limit = MAX_PAGE_SIZE
	}

	column, ok := spec.Columns[p.SortBy]
	if !ok {
		column = spec.DefaultColumn
	}

	var order Order
	switch Order(p.SortOrder) {
	case OrderAsc, OrderDesc:
		order = Order(p.SortOrder)
	case "":
		order = spec.DefaultOrder
	default:
		order = spec.FallbackOrder
	}

	return executor.ListQuery{
		Page:     page,
		Limit:    limit,
		SortBy:   column,
		SortDesc: order.Desc(),
		Search:   p.Search,
	}
}

// reservedItemQueryKeys are the query keys of the item listing that are NOT
// trait filters
var reservedItemQueryKeys = map[string]bool{
	"page":      true,
	"limit":     true,
	"sortBy":    true,
	"sortOrder": true,
	"search":    true,
}

// ExtractTraitFilters interprets every non-reserved query key of the item
// listing as a trait filter. Values are comma-split: items match when, for
// every filtered trait type, they carry at least one of its listed values.
func ExtractTraitFilters(c *gin.Context) map[string][]string {
	traits := make(map[string][]string)
	for key, values := range c.Request.URL.Query() {
		if reservedItemQueryKeys[key] {
			continue
		}
		for _, raw := range values {
			for _, value := range strings.Split(raw, ",") {
				value = strings.TrimSpace(value)
				if value != "" {
					traits[key] = append(traits[key], value)
				}
			}
		}
	}

	if len(traits) == 0 {
		return nil
	}
	return traits
}

// OfferListQueryParams holds the offer-specific filter parameters
type OfferListQueryParams struct {
	CollectionItemID *int64 `form:"collectionItemId"`
	OfferCreatedBy   string `form:"offerCreatedBy"`
	IsAccepted       *bool  `form:"isAccepted"`
	CurrentOwner     string `form:"currentOwner"`
}

// ActivityLogQueryParams holds the activity-log filter parameters
type ActivityLogQueryParams struct {
	ActionType string `form:"actionType"`
	ActionBy   string `form:"actionBy"`
}
