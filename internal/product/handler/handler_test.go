package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/auth"
	"github.com/pymerp/gastro-catalog/internal/model"
	modifierdto "github.com/pymerp/gastro-catalog/internal/modifier/dto"
	"github.com/pymerp/gastro-catalog/internal/product/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProductUseCase struct {
	created int
}

func (s *stubProductUseCase) CreateProduct(_ context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	s.created++
	return &model.Product{
		BaseModel:   model.BaseModel{ID: "product-1"},
		CompanyID:   input.CompanyID,
		Name:        input.Name,
		ProductKind: model.ProductKind(input.ProductKind),
		IsActive:    true,
	}, nil
}

func (s *stubProductUseCase) GetProduct(_ context.Context, _, _ string) (*model.Product, error) {
	return nil, apperr.NotFound("product")
}

func (s *stubProductUseCase) ListProducts(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}

func (s *stubProductUseCase) UpdateProduct(_ context.Context, _ *dto.UpdateProductInput) (*model.Product, error) {
	return nil, apperr.NotFound("product")
}

func (s *stubProductUseCase) DeleteProduct(_ context.Context, _, _ string) error { return nil }

func (s *stubProductUseCase) AddVariant(_ context.Context, _ *dto.CreateVariantInput) (*model.Variant, error) {
	return nil, apperr.NotFound("product")
}

func (s *stubProductUseCase) UpdateVariant(_ context.Context, _ *dto.UpdateVariantInput) (*model.Variant, error) {
	return nil, apperr.NotFound("variant")
}

func (s *stubProductUseCase) ListVariants(_ context.Context, _, _ string) ([]model.Variant, error) {
	return nil, nil
}

type stubModifierUseCase struct {
	stepsErr error
	replaced int
}

func (s *stubModifierUseCase) CreateGroup(_ context.Context, _ *modifierdto.CreateGroupInput) (*model.ModifierGroup, error) {
	return nil, nil
}

func (s *stubModifierUseCase) SearchGroups(_ context.Context, _, _ string) ([]model.ModifierGroup, error) {
	return nil, nil
}

func (s *stubModifierUseCase) CreateItem(_ context.Context, _ *modifierdto.CreateItemInput) (*model.ModifierItem, error) {
	return nil, nil
}

func (s *stubModifierUseCase) ListGroupItems(_ context.Context, _, _ string) ([]model.ModifierItem, error) {
	return nil, nil
}

func (s *stubModifierUseCase) ValidateStepUpserts(_ context.Context, _ string, _ []modifierdto.StepUpsert) error {
	return s.stepsErr
}

func (s *stubModifierUseCase) ReplaceSteps(_ context.Context, input *modifierdto.ReplaceStepsInput) ([]model.ModifierStep, error) {
	if s.stepsErr != nil {
		return nil, s.stepsErr
	}
	s.replaced++
	return []model.ModifierStep{}, nil
}

func (s *stubModifierUseCase) ListSteps(_ context.Context, _, _ string, _ model.Scope) ([]model.ModifierStep, error) {
	return nil, nil
}

func (s *stubModifierUseCase) ListAllSteps(_ context.Context, _, _ string) ([]model.ModifierStep, error) {
	return nil, nil
}

func (s *stubModifierUseCase) EditLookups(_ context.Context, _ string, _ []model.ModifierStep) ([]model.ModifierGroup, []model.ModifierItem, error) {
	return nil, nil, nil
}

func (s *stubModifierUseCase) ValidateSelection(_ context.Context, _ *modifierdto.ValidateSelectionInput) (*modifierdto.SelectionReportResponse, error) {
	return &modifierdto.SelectionReportResponse{Complete: true}, nil
}

func newTestRouter(products *stubProductUseCase, modifiers *stubModifierUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/gastro")
	api.Use(auth.RequireCompany())
	NewProductHandler(products, modifiers, zap.NewNop()).RegisterRoutes(api)
	return router
}

func postProduct(t *testing.T, router *gin.Engine, req dto.CreateProductRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/gastro/products", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(auth.HeaderCompanyID, "company-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)
	return w
}

func TestCreateProductWithSteps(t *testing.T) {
	products := &stubProductUseCase{}
	modifiers := &stubModifierUseCase{}
	router := newTestRouter(products, modifiers)

	w := postProduct(t, router, dto.CreateProductRequest{
		ProductBaseRequest: dto.ProductBaseRequest{Name: "Burger", ProductKind: "CONFIGURABLE"},
		ModifierSteps: []modifierdto.StepUpsertRequest{
			{ModifierGroupID: "group-1", MaxSelection: 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, products.created)
	assert.Equal(t, 1, modifiers.replaced)
}

func TestCreateProductInvalidStepsWritesNothing(t *testing.T) {
	products := &stubProductUseCase{}
	modifiers := &stubModifierUseCase{
		stepsErr: apperr.Validation("invalid modifier steps",
			apperr.FieldIssue{Field: "steps[0].modifierGroupId", Issue: "unknown_group"}),
	}
	router := newTestRouter(products, modifiers)

	w := postProduct(t, router, dto.CreateProductRequest{
		ProductBaseRequest: dto.ProductBaseRequest{Name: "Burger", ProductKind: "CONFIGURABLE"},
		ModifierSteps: []modifierdto.StepUpsertRequest{
			{ModifierGroupID: "nope", MaxSelection: 1},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, products.created)
	assert.Equal(t, 0, modifiers.replaced)
}

func TestCreateProductStepsOnSimpleKind(t *testing.T) {
	products := &stubProductUseCase{}
	modifiers := &stubModifierUseCase{}
	router := newTestRouter(products, modifiers)

	w := postProduct(t, router, dto.CreateProductRequest{
		ProductBaseRequest: dto.ProductBaseRequest{Name: "Soda", ProductKind: "SIMPLE"},
		ModifierSteps: []modifierdto.StepUpsertRequest{
			{ModifierGroupID: "group-1", MaxSelection: 1},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, products.created)
}
