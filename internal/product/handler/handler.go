package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/auth"
	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/modifier"
	modifierdto "github.com/pymerp/gastro-catalog/internal/modifier/dto"
	"github.com/pymerp/gastro-catalog/internal/product"
	"github.com/pymerp/gastro-catalog/internal/product/dto"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc        product.UseCase
	modifiers modifier.UseCase
	logger    *zap.Logger
}

func NewProductHandler(uc product.UseCase, modifiers modifier.UseCase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, modifiers: modifiers, logger: log}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
	rg.POST("/products", h.Create)
	rg.GET("/products/:id/edit", h.Edit)
	rg.PUT("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)

	rg.POST("/products/:id/variants", h.AddVariant)
	rg.PUT("/variants/:id", h.UpdateVariant)

	rg.GET("/products/:id/steps", h.ListSteps)
	rg.PUT("/products/:id/steps", h.ReplaceSteps)
	rg.POST("/products/:id/selections/validate", h.ValidateSelection)
}

func (h *ProductHandler) respondError(c *gin.Context, err error) {
	if _, ok := apperr.KindOf(err); !ok {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(apperr.Status(err), apperr.ToPayload(err, c.GetString("request_id")))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}
	companyID := auth.CompanyID(c)

	// The initial step set is checked before the product row is written, so
	// a bad payload leaves nothing behind.
	steps := modifierdto.StepUpserts(req.ModifierSteps)
	if len(steps) > 0 {
		if req.ProductKind != string(model.KindConfigurable) {
			h.respondError(c, apperr.Validation(
				"only CONFIGURABLE products carry modifier steps",
				apperr.FieldIssue{Field: "productKind", Issue: "not_configurable"},
			))
			return
		}
		if err := h.modifiers.ValidateStepUpserts(c.Request.Context(), companyID, steps); err != nil {
			h.respondError(c, err)
			return
		}
	}

	input := &dto.CreateProductInput{
		CompanyID:   companyID,
		Name:        req.Name,
		ProductKind: req.ProductKind,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.SKUInternal != nil {
		input.SKUInternal = *req.SKUInternal
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if len(steps) > 0 {
		_, err := h.modifiers.ReplaceSteps(c.Request.Context(), &modifierdto.ReplaceStepsInput{
			CompanyID: companyID,
			ProductID: p.ID,
			Steps:     steps,
		})
		if err != nil {
			h.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

func (h *ProductHandler) List(c *gin.Context) {
	filters := &dto.ProductFilters{
		CompanyID:   auth.CompanyID(c),
		Kind:        c.Query("kind"),
		SearchQuery: c.Query("query"),
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]dto.ProductResponse, len(products))
	for i := range products {
		out[i] = dto.ToProductResponse(&products[i])
	}
	c.JSON(http.StatusOK, dto.ListProductsResponse{
		Products: out,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

// Edit aggregates everything the product editor needs in one response.
func (h *ProductHandler) Edit(c *gin.Context) {
	companyID := auth.CompanyID(c)
	id := c.Param("id")

	p, err := h.uc.GetProduct(c.Request.Context(), companyID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	steps, err := h.modifiers.ListAllSteps(c.Request.Context(), companyID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	groups, items, err := h.modifiers.EditLookups(c.Request.Context(), companyID, steps)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductEditResponse{
		Product:        dto.ToProductResponse(p),
		Variants:       dto.ToVariantResponses(p.Variants),
		Steps:          modifierdto.ToStepResponses(steps),
		ModifierGroups: modifierdto.ToGroupResponses(groups),
		ModifierItems:  modifierdto.ToItemResponses(items),
	})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.ProductBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	input := &dto.UpdateProductInput{
		ID:          c.Param("id"),
		CompanyID:   auth.CompanyID(c),
		Name:        req.Name,
		ProductKind: req.ProductKind,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.SKUInternal != nil {
		input.SKUInternal = *req.SKUInternal
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), auth.CompanyID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) AddVariant(c *gin.Context) {
	var req dto.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	input := &dto.CreateVariantInput{
		CompanyID: auth.CompanyID(c),
		ProductID: c.Param("id"),
		Name:      req.Name,
	}
	if req.SKUInternal != nil {
		input.SKUInternal = *req.SKUInternal
	}

	v, err := h.uc.AddVariant(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVariantResponse(v))
}

func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	var req dto.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	input := &dto.UpdateVariantInput{
		ID:        c.Param("id"),
		CompanyID: auth.CompanyID(c),
		Name:      req.Name,
		IsActive:  req.IsActive == nil || *req.IsActive,
	}
	if req.SKUInternal != nil {
		input.SKUInternal = *req.SKUInternal
	}

	v, err := h.uc.UpdateVariant(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVariantResponse(v))
}

func (h *ProductHandler) ListSteps(c *gin.Context) {
	var variantID *string
	if v := c.Query("variantId"); v != "" {
		variantID = &v
	}

	steps, err := h.modifiers.ListSteps(c.Request.Context(),
		auth.CompanyID(c), c.Param("id"), model.ScopeFor(variantID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, modifierdto.ToStepResponses(steps))
}

// ReplaceSteps swaps the full step set of one scope; submission order becomes
// the step order.
func (h *ProductHandler) ReplaceSteps(c *gin.Context) {
	var req modifierdto.StepBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	steps, err := h.modifiers.ReplaceSteps(c.Request.Context(), &modifierdto.ReplaceStepsInput{
		CompanyID: auth.CompanyID(c),
		ProductID: c.Param("id"),
		VariantID: req.VariantID,
		Steps:     modifierdto.StepUpserts(req.Steps),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, modifierdto.ToStepResponses(steps))
}

func (h *ProductHandler) ValidateSelection(c *gin.Context) {
	var req modifierdto.ValidateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	report, err := h.modifiers.ValidateSelection(c.Request.Context(), &modifierdto.ValidateSelectionInput{
		CompanyID:  auth.CompanyID(c),
		ProductID:  c.Param("id"),
		VariantID:  req.VariantID,
		Selections: req.Selections,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
