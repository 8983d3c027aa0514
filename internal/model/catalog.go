package model

import "time"

// Catalog is one sellable surface: business unit x sales channel x order mode.
type Catalog struct {
	BaseModel
	CompanyID      string `db:"company_id" json:"company_id"`
	BusinessUnitID string `db:"business_unit_id" json:"business_unit_id"`
	SalesChannelID string `db:"sales_channel_id" json:"sales_channel_id"`
	OrderModeID    string `db:"order_mode_id" json:"order_mode_id"`
	Name           string `db:"name" json:"name"`
	IsActive       bool   `db:"is_active" json:"is_active"`
}

// CatalogProduct existing = the product is published in that catalog.
// BasePrice is non-null only when no variant prices exist for the pair.
type CatalogProduct struct {
	BaseModel
	CatalogID string   `db:"catalog_id" json:"catalog_id"`
	ProductID string   `db:"product_id" json:"product_id"`
	BasePrice *float64 `db:"base_price" json:"base_price"`
	Currency  string   `db:"currency" json:"currency"`
	SortOrder int      `db:"sort_order" json:"sort_order"`
	Available bool     `db:"available" json:"available"`
}

type VariantPrice struct {
	CatalogID string    `db:"catalog_id" json:"catalog_id"`
	ProductID string    `db:"product_id" json:"product_id"`
	VariantID string    `db:"variant_id" json:"variant_id"`
	Price     float64   `db:"price" json:"price"`
	Currency  string    `db:"currency" json:"currency"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
