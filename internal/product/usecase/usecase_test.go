package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/product/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	products map[string]*model.Product
	variants map[string]*model.Variant
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: map[string]*model.Product{},
		variants: map[string]*model.Variant{},
	}
}

func (r *fakeRepo) Create(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, companyID, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) FindAll(_ context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	out := []model.Product{}
	for _, p := range r.products {
		if p.CompanyID != filters.CompanyID {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, _, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) CreateVariant(_ context.Context, v *model.Variant) error {
	cp := *v
	r.variants[v.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateVariant(_ context.Context, v *model.Variant) error {
	cp := *v
	r.variants[v.ID] = &cp
	return nil
}

func (r *fakeRepo) FindVariantByID(_ context.Context, id string) (*model.Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeRepo) FindVariantsByProduct(_ context.Context, productID string) ([]model.Variant, error) {
	out := []model.Variant{}
	for _, v := range r.variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func newTestUseCase() (*fakeRepo, *productUseCase) {
	repo := newFakeRepo()
	uc := &productUseCase{repo: repo, logger: zap.NewNop()}
	return repo, uc
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	_, uc := newTestUseCase()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		CompanyID:   "company-1",
		Name:        "Burger",
		ProductKind: "CONFIGURABLE",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, model.KindConfigurable, p.ProductKind)
	assert.True(t, p.IsActive)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	_, uc := newTestUseCase()

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		CompanyID:   "company-1",
		Name:        "",
		Description: strings.Repeat("x", model.MaxDescriptionLen+1),
		ProductKind: "WEIRD",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Len(t, appErr.Details, 3)
}

func TestUpdateProductKindIsImmutable(t *testing.T) {
	ctx := context.Background()
	_, uc := newTestUseCase()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		CompanyID:   "company-1",
		Name:        "Burger",
		ProductKind: "SIMPLE",
	})
	require.NoError(t, err)

	_, err = uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:          p.ID,
		CompanyID:   "company-1",
		Name:        "Burger XL",
		ProductKind: "CONFIGURABLE",
		IsActive:    true,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindImmutableField))
}

func TestUpdateProductSameKindAllowed(t *testing.T) {
	ctx := context.Background()
	_, uc := newTestUseCase()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		CompanyID:   "company-1",
		Name:        "Burger",
		ProductKind: "SIMPLE",
	})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:          p.ID,
		CompanyID:   "company-1",
		Name:        "Burger XL",
		ProductKind: "SIMPLE",
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Burger XL", updated.Name)
}

func TestGetProductCrossTenant(t *testing.T) {
	ctx := context.Background()
	_, uc := newTestUseCase()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		CompanyID:   "company-1",
		Name:        "Burger",
		ProductKind: "SIMPLE",
	})
	require.NoError(t, err)

	_, err = uc.GetProduct(ctx, "company-2", p.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteProductMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	_, uc := newTestUseCase()

	err := uc.DeleteProduct(ctx, "company-1", "nope")
	assert.NoError(t, err)
}

func TestAddVariantAssignsPosition(t *testing.T) {
	ctx := context.Background()
	_, uc := newTestUseCase()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		CompanyID:   "company-1",
		Name:        "Pizza",
		ProductKind: "CONFIGURABLE",
	})
	require.NoError(t, err)

	v1, err := uc.AddVariant(ctx, &dto.CreateVariantInput{CompanyID: "company-1", ProductID: p.ID, Name: "Small"})
	require.NoError(t, err)
	v2, err := uc.AddVariant(ctx, &dto.CreateVariantInput{CompanyID: "company-1", ProductID: p.ID, Name: "Large"})
	require.NoError(t, err)

	assert.Equal(t, 1, v1.Position)
	assert.Equal(t, 2, v2.Position)
}

func TestUpdateVariantCrossTenant(t *testing.T) {
	ctx := context.Background()
	_, uc := newTestUseCase()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		CompanyID:   "company-1",
		Name:        "Pizza",
		ProductKind: "CONFIGURABLE",
	})
	require.NoError(t, err)
	v, err := uc.AddVariant(ctx, &dto.CreateVariantInput{CompanyID: "company-1", ProductID: p.ID, Name: "Small"})
	require.NoError(t, err)

	_, err = uc.UpdateVariant(ctx, &dto.UpdateVariantInput{
		ID:        v.ID,
		CompanyID: "company-2",
		Name:      "Tiny",
		IsActive:  true,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
