package publication

import (
	"context"

	"github.com/pymerp/gastro-catalog/internal/model"
)

type Repository interface {
	CreateCatalog(ctx context.Context, catalog *model.Catalog) error
	FindCatalogs(ctx context.Context, companyID string) ([]model.Catalog, error)
	FindCatalogByID(ctx context.Context, companyID, id string) (*model.Catalog, error)

	FindCatalogProduct(ctx context.Context, catalogID, productID string) (*model.CatalogProduct, error)
	FindCatalogProductByID(ctx context.Context, companyID, id string) (*model.CatalogProduct, error)
	FindCatalogProductsByProduct(ctx context.Context, companyID, productID string) ([]model.CatalogProduct, error)

	FindVariantPrices(ctx context.Context, catalogID, productID string) ([]model.VariantPrice, error)
	FindVariantPricesByProduct(ctx context.Context, companyID, productID string) ([]model.VariantPrice, error)

	// Publish applies the catalog row and its variant prices in one
	// transaction. prices replaces the stored set: stale rows are deleted.
	Publish(ctx context.Context, cp *model.CatalogProduct, prices []model.VariantPrice) error

	// ReplaceVariantPrices swaps the stored prices for the pair and clears
	// base_price in the same transaction.
	ReplaceVariantPrices(ctx context.Context, catalogID, productID string, prices []model.VariantPrice) error

	UpdateAvailability(ctx context.Context, id string, available bool) error
}

// ProductSource is the slice of the product domain publication needs.
// Satisfied by product.Repository.
type ProductSource interface {
	FindByID(ctx context.Context, companyID, id string) (*model.Product, error)
	FindVariantsByProduct(ctx context.Context, productID string) ([]model.Variant, error)
}
