package publication

import (
	"context"

	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/publication/dto"
)

type UseCase interface {
	CreateCatalog(ctx context.Context, input *dto.CreateCatalogInput) (*model.Catalog, error)
	ListCatalogs(ctx context.Context, companyID string) ([]model.Catalog, error)

	// GetPublicationState reports, per catalog of the company, whether the
	// product is published there and with which prices.
	GetPublicationState(ctx context.Context, companyID, productID string) ([]dto.CatalogProductStateResponse, error)

	Publish(ctx context.Context, input *dto.PublishInput) (*model.CatalogProduct, error)
	SetAvailability(ctx context.Context, companyID, catalogProductID string, available bool) (*model.CatalogProduct, error)
	BulkUpsertVariantPrices(ctx context.Context, input *dto.VariantPriceBulkInput) error
}
