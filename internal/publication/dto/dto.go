package dto

import (
	"time"

	"github.com/pymerp/gastro-catalog/internal/model"
)

type CatalogResponse struct {
	ID             string    `json:"id"`
	BusinessUnitID string    `json:"businessUnitId"`
	SalesChannelID string    `json:"salesChannelId"`
	OrderModeID    string    `json:"orderModeId"`
	Name           string    `json:"name"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CatalogRequest struct {
	BusinessUnitID string `json:"businessUnitId" binding:"required"`
	SalesChannelID string `json:"salesChannelId" binding:"required"`
	OrderModeID    string `json:"orderModeId" binding:"required"`
	Name           string `json:"name" binding:"required"`
}

type CatalogProductResponse struct {
	ID        string   `json:"id"`
	CatalogID string   `json:"catalogId"`
	ProductID string   `json:"productId"`
	BasePrice *float64 `json:"basePrice"`
	Currency  string   `json:"currency"`
	SortOrder int      `json:"sortOrder"`
	Available bool     `json:"available"`
}

type VariantPriceItemResponse struct {
	VariantID   string  `json:"variantId"`
	VariantName string  `json:"variantName,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
}

// CatalogProductStateResponse is one row of the publication matrix: a catalog
// of the company and the product's standing in it.
type CatalogProductStateResponse struct {
	CatalogProductID *string                    `json:"catalogProductId"`
	CatalogID        string                     `json:"catalogId"`
	CatalogName      string                     `json:"catalogName"`
	BusinessUnitID   string                     `json:"businessUnitId"`
	Published        bool                       `json:"published"`
	BasePrice        *float64                   `json:"basePrice"`
	Currency         string                     `json:"currency,omitempty"`
	SortOrder        int                        `json:"sortOrder"`
	Available        bool                       `json:"available"`
	Status           string                     `json:"status"`
	VariantPrices    []VariantPriceItemResponse `json:"variantPrices"`
}

type VariantPriceUpsertRequest struct {
	VariantID string  `json:"variantId" binding:"required"`
	Price     float64 `json:"price"`
}

type CatalogProductUpsertRequest struct {
	BasePrice     *float64                    `json:"basePrice"`
	Currency      string                      `json:"currency" binding:"required"`
	SortOrder     int                         `json:"sortOrder"`
	Available     *bool                       `json:"available"`
	VariantPrices []VariantPriceUpsertRequest `json:"variantPrices"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

type VariantPriceBulkItemRequest struct {
	VariantID string  `json:"variantId" binding:"required"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency" binding:"required"`
}

type VariantPriceBulkRequest struct {
	CatalogID     string                        `json:"catalogId" binding:"required"`
	ProductID     string                        `json:"productId" binding:"required"`
	VariantPrices []VariantPriceBulkItemRequest `json:"variantPrices" binding:"required"`
}

func ToCatalogResponse(c *model.Catalog) CatalogResponse {
	return CatalogResponse{
		ID:             c.ID,
		BusinessUnitID: c.BusinessUnitID,
		SalesChannelID: c.SalesChannelID,
		OrderModeID:    c.OrderModeID,
		Name:           c.Name,
		Active:         c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

func ToCatalogResponses(catalogs []model.Catalog) []CatalogResponse {
	out := make([]CatalogResponse, len(catalogs))
	for i := range catalogs {
		out[i] = ToCatalogResponse(&catalogs[i])
	}
	return out
}

func ToCatalogProductResponse(cp *model.CatalogProduct) CatalogProductResponse {
	return CatalogProductResponse{
		ID:        cp.ID,
		CatalogID: cp.CatalogID,
		ProductID: cp.ProductID,
		BasePrice: cp.BasePrice,
		Currency:  cp.Currency,
		SortOrder: cp.SortOrder,
		Available: cp.Available,
	}
}

// PriceItems converts wire prices to usecase inputs.
func PriceItems(prices []VariantPriceUpsertRequest) []VariantPriceItem {
	out := make([]VariantPriceItem, len(prices))
	for i, p := range prices {
		out[i] = VariantPriceItem{VariantID: p.VariantID, Price: p.Price}
	}
	return out
}
