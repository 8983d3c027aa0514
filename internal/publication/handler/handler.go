package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/auth"
	"github.com/pymerp/gastro-catalog/internal/publication"
	"github.com/pymerp/gastro-catalog/internal/publication/dto"
	"go.uber.org/zap"
)

type PublicationHandler struct {
	uc     publication.UseCase
	logger *zap.Logger
}

func NewPublicationHandler(uc publication.UseCase, log *zap.Logger) *PublicationHandler {
	return &PublicationHandler{uc: uc, logger: log}
}

func (h *PublicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalogs", h.ListCatalogs)
	rg.POST("/catalogs", h.CreateCatalog)
	rg.GET("/catalog-products", h.PublicationState)
	rg.PUT("/catalog-products/:catalogId/product/:productId", h.Publish)
	rg.PATCH("/catalog-products/:id/availability", h.SetAvailability)
	rg.PUT("/variant-prices", h.BulkUpsertVariantPrices)
}

func (h *PublicationHandler) respondError(c *gin.Context, err error) {
	if _, ok := apperr.KindOf(err); !ok {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(apperr.Status(err), apperr.ToPayload(err, c.GetString("request_id")))
}

func (h *PublicationHandler) ListCatalogs(c *gin.Context) {
	catalogs, err := h.uc.ListCatalogs(c.Request.Context(), auth.CompanyID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCatalogResponses(catalogs))
}

func (h *PublicationHandler) CreateCatalog(c *gin.Context) {
	var req dto.CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	catalog, err := h.uc.CreateCatalog(c.Request.Context(), &dto.CreateCatalogInput{
		CompanyID:      auth.CompanyID(c),
		BusinessUnitID: req.BusinessUnitID,
		SalesChannelID: req.SalesChannelID,
		OrderModeID:    req.OrderModeID,
		Name:           req.Name,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCatalogResponse(catalog))
}

// PublicationState returns one row per catalog of the company with the
// product's publication and pricing standing.
func (h *PublicationHandler) PublicationState(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		h.respondError(c, apperr.Validation("productId is required",
			apperr.FieldIssue{Field: "productId", Issue: "required"}))
		return
	}

	rows, err := h.uc.GetPublicationState(c.Request.Context(), auth.CompanyID(c), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PublicationHandler) Publish(c *gin.Context) {
	var req dto.CatalogProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	cp, err := h.uc.Publish(c.Request.Context(), &dto.PublishInput{
		CompanyID:     auth.CompanyID(c),
		CatalogID:     c.Param("catalogId"),
		ProductID:     c.Param("productId"),
		BasePrice:     req.BasePrice,
		Currency:      req.Currency,
		SortOrder:     req.SortOrder,
		Available:     req.Available,
		VariantPrices: dto.PriceItems(req.VariantPrices),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCatalogProductResponse(cp))
}

func (h *PublicationHandler) SetAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	cp, err := h.uc.SetAvailability(c.Request.Context(), auth.CompanyID(c), c.Param("id"), *req.IsAvailable)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCatalogProductResponse(cp))
}

func (h *PublicationHandler) BulkUpsertVariantPrices(c *gin.Context) {
	var req dto.VariantPriceBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	// Items carry the currency on the wire; a pair holds a single currency.
	currency := ""
	prices := make([]dto.VariantPriceItem, len(req.VariantPrices))
	for i, item := range req.VariantPrices {
		if currency == "" {
			currency = item.Currency
		} else if item.Currency != currency {
			h.respondError(c, apperr.Validation("mixed currencies in one payload",
				apperr.FieldIssue{Field: "variantPrices", Issue: "mixed_currencies"}))
			return
		}
		prices[i] = dto.VariantPriceItem{VariantID: item.VariantID, Price: item.Price}
	}

	err := h.uc.BulkUpsertVariantPrices(c.Request.Context(), &dto.VariantPriceBulkInput{
		CompanyID: auth.CompanyID(c),
		CatalogID: req.CatalogID,
		ProductID: req.ProductID,
		Currency:  currency,
		Prices:    prices,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
