package dto

import (
	"time"

	"github.com/pymerp/gastro-catalog/internal/model"
	modifierdto "github.com/pymerp/gastro-catalog/internal/modifier/dto"
)

// Wire shapes. The public contract uses camelCase field names; models keep
// their db-aligned tags, so handlers always map through these.

type ProductBaseRequest struct {
	SKUInternal *string `json:"skuInternal"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ProductKind string  `json:"productKind" binding:"required"`
	IsActive    *bool   `json:"isActive"`
}

type CreateProductRequest struct {
	ProductBaseRequest
	// Optional initial step set for CONFIGURABLE kinds, product scope.
	ModifierSteps []modifierdto.StepUpsertRequest `json:"modifierSteps"`
}

type VariantRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKUInternal *string `json:"skuInternal"`
	IsActive    *bool   `json:"isActive"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	SKUInternal *string   `json:"skuInternal"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ProductKind string    `json:"productKind"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type VariantResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	SKUInternal *string `json:"skuInternal"`
	Active      bool    `json:"active"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

type ProductEditResponse struct {
	Product        ProductResponse             `json:"product"`
	Variants       []VariantResponse           `json:"variants"`
	Steps          []modifierdto.StepResponse  `json:"steps"`
	ModifierGroups []modifierdto.GroupResponse `json:"modifierGroups"`
	ModifierItems  []modifierdto.ItemResponse  `json:"modifierItems"`
}

func ToProductResponse(m *model.Product) ProductResponse {
	return ProductResponse{
		ID:          m.ID,
		SKUInternal: m.SKUInternal,
		Name:        m.Name,
		Description: m.Description,
		ProductKind: string(m.ProductKind),
		Active:      m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToVariantResponse(v *model.Variant) VariantResponse {
	return VariantResponse{
		ID:          v.ID,
		Name:        v.Name,
		SKUInternal: v.SKUInternal,
		Active:      v.IsActive,
	}
}

func ToVariantResponses(variants []model.Variant) []VariantResponse {
	out := make([]VariantResponse, len(variants))
	for i := range variants {
		out[i] = ToVariantResponse(&variants[i])
	}
	return out
}
