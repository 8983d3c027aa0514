package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/product"
	"github.com/pymerp/gastro-catalog/internal/product/dto"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		logger: log,
	}
}

func validateBaseFields(name, description, kind string) []apperr.FieldIssue {
	var issues []apperr.FieldIssue
	if strings.TrimSpace(name) == "" {
		issues = append(issues, apperr.FieldIssue{Field: "name", Issue: "required"})
	}
	if len(description) > model.MaxDescriptionLen {
		issues = append(issues, apperr.FieldIssue{Field: "description", Issue: "too_long"})
	}
	if !model.ProductKind(kind).Valid() {
		issues = append(issues, apperr.FieldIssue{Field: "productKind", Issue: "unknown_kind"})
	}
	return issues
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if issues := validateBaseFields(input.Name, input.Description, input.ProductKind); len(issues) > 0 {
		return nil, apperr.Validation("invalid product", issues...)
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CompanyID:   input.CompanyID,
		SKUInternal: optional(input.SKUInternal),
		Name:        input.Name,
		Description: optional(input.Description),
		ProductKind: model.ProductKind(input.ProductKind),
		IsActive:    true,
		Variants:    []model.Variant{},
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create product")
	}

	uc.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("company_id", p.CompanyID),
		zap.String("product_kind", string(p.ProductKind)),
	)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, companyID, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}

	variants, err := uc.repo.FindVariantsByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}

	// Kind is fixed at creation; a payload carrying a different kind is an
	// attempt to change it, not a default.
	if input.ProductKind != "" && model.ProductKind(input.ProductKind) != p.ProductKind {
		return nil, apperr.ImmutableField("productKind")
	}

	if issues := validateBaseFields(input.Name, input.Description, string(p.ProductKind)); len(issues) > 0 {
		return nil, apperr.Validation("invalid product", issues...)
	}

	p.Name = input.Name
	p.Description = optional(input.Description)
	p.SKUInternal = optional(input.SKUInternal)
	p.IsActive = input.IsActive
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, companyID, id string) error {
	p, err := uc.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // already gone
	}

	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return errors.Wrap(err, "delete product")
	}

	uc.logger.Info("product deleted", zap.String("product_id", id), zap.String("company_id", companyID))
	return nil
}

func (uc *productUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.Variant, error) {
	p, err := uc.repo.FindByID(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.Validation("invalid variant", apperr.FieldIssue{Field: "name", Issue: "required"})
	}

	existing, err := uc.repo.FindVariantsByProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	v := &model.Variant{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:   input.ProductID,
		Name:        input.Name,
		SKUInternal: optional(input.SKUInternal),
		Position:    len(existing) + 1,
		IsActive:    true,
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, errors.Wrap(err, "create variant")
	}
	return v, nil
}

func (uc *productUseCase) UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.Variant, error) {
	v, err := uc.repo.FindVariantByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("variant")
	}

	// The variant is reachable only through its product's tenant.
	p, err := uc.repo.FindByID(ctx, input.CompanyID, v.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("variant")
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.Validation("invalid variant", apperr.FieldIssue{Field: "name", Issue: "required"})
	}

	v.Name = input.Name
	v.SKUInternal = optional(input.SKUInternal)
	v.IsActive = input.IsActive
	v.UpdatedAt = time.Now()

	if err := uc.repo.UpdateVariant(ctx, v); err != nil {
		return nil, errors.Wrap(err, "update variant")
	}
	return v, nil
}

func (uc *productUseCase) ListVariants(ctx context.Context, companyID, productID string) ([]model.Variant, error) {
	p, err := uc.repo.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	return uc.repo.FindVariantsByProduct(ctx, productID)
}
