package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/auth"
	"github.com/pymerp/gastro-catalog/internal/modifier"
	"github.com/pymerp/gastro-catalog/internal/modifier/dto"
	"go.uber.org/zap"
)

type ModifierHandler struct {
	uc     modifier.UseCase
	logger *zap.Logger
}

func NewModifierHandler(uc modifier.UseCase, log *zap.Logger) *ModifierHandler {
	return &ModifierHandler{uc: uc, logger: log}
}

func (h *ModifierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/modifier-groups", h.SearchGroups)
	rg.POST("/modifier-groups", h.CreateGroup)
	rg.GET("/modifier-groups/:id/items", h.ListItems)
	rg.POST("/modifier-groups/:id/items", h.CreateItem)
}

func (h *ModifierHandler) respondError(c *gin.Context, err error) {
	if _, ok := apperr.KindOf(err); !ok {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(apperr.Status(err), apperr.ToPayload(err, c.GetString("request_id")))
}

func (h *ModifierHandler) SearchGroups(c *gin.Context) {
	groups, err := h.uc.SearchGroups(c.Request.Context(), auth.CompanyID(c), c.Query("query"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponses(groups))
}

func (h *ModifierHandler) CreateGroup(c *gin.Context) {
	var req dto.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	g, err := h.uc.CreateGroup(c.Request.Context(), &dto.CreateGroupInput{
		CompanyID: auth.CompanyID(c),
		Name:      req.Name,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupResponse(g))
}

func (h *ModifierHandler) ListItems(c *gin.Context) {
	items, err := h.uc.ListGroupItems(c.Request.Context(), auth.CompanyID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponses(items))
}

func (h *ModifierHandler) CreateItem(c *gin.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation(err.Error()))
		return
	}

	it, err := h.uc.CreateItem(c.Request.Context(), &dto.CreateItemInput{
		CompanyID:  auth.CompanyID(c),
		GroupID:    c.Param("id"),
		Name:       req.Name,
		PriceDelta: req.PriceDelta,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(it))
}
