package product

import (
	"context"

	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, companyID, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, companyID, id string) error

	CreateVariant(ctx context.Context, variant *model.Variant) error
	UpdateVariant(ctx context.Context, variant *model.Variant) error
	FindVariantByID(ctx context.Context, id string) (*model.Variant, error)
	FindVariantsByProduct(ctx context.Context, productID string) ([]model.Variant, error)
}
