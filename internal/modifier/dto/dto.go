package dto

import (
	"time"

	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/selection"
)

type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ItemResponse struct {
	ID              string  `json:"id"`
	ModifierGroupID string  `json:"modifierGroupId"`
	Name            string  `json:"name"`
	PriceDelta      float64 `json:"priceDelta"`
	Active          bool    `json:"active"`
}

type StepResponse struct {
	ID              string  `json:"id"`
	ModifierGroupID string  `json:"modifierGroupId"`
	VariantID       *string `json:"variantId"`
	StepOrder       int     `json:"stepOrder"`
	MinSelection    int     `json:"minSelection"`
	MaxSelection    int     `json:"maxSelection"`
	Required        bool    `json:"required"`
}

type GroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type ItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	PriceDelta float64 `json:"priceDelta"`
}

type StepUpsertRequest struct {
	ID              *string `json:"id"`
	ModifierGroupID string  `json:"modifierGroupId" binding:"required"`
	StepOrder       int     `json:"stepOrder"` // informational; submission order wins
	MinSelection    int     `json:"minSelection"`
	MaxSelection    int     `json:"maxSelection"`
	IsRequired      bool    `json:"isRequired"`
}

type StepBulkRequest struct {
	VariantID *string             `json:"variantId"`
	Steps     []StepUpsertRequest `json:"steps"`
}

type ValidateSelectionRequest struct {
	VariantID  *string             `json:"variantId"`
	Selections map[string][]string `json:"selections"`
}

type SelectionReportResponse struct {
	Complete bool              `json:"complete"`
	Issues   []selection.Issue `json:"issues"`
}

func ToGroupResponse(g *model.ModifierGroup) GroupResponse {
	return GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Active:    g.IsActive,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func ToGroupResponses(groups []model.ModifierGroup) []GroupResponse {
	out := make([]GroupResponse, len(groups))
	for i := range groups {
		out[i] = ToGroupResponse(&groups[i])
	}
	return out
}

func ToItemResponse(it *model.ModifierItem) ItemResponse {
	return ItemResponse{
		ID:              it.ID,
		ModifierGroupID: it.ModifierGroupID,
		Name:            it.Name,
		PriceDelta:      it.PriceDelta,
		Active:          it.IsActive,
	}
}

func ToItemResponses(items []model.ModifierItem) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}

func ToStepResponse(s *model.ModifierStep) StepResponse {
	return StepResponse{
		ID:              s.ID,
		ModifierGroupID: s.ModifierGroupID,
		VariantID:       s.VariantID,
		StepOrder:       s.StepOrder,
		MinSelection:    s.MinSelection,
		MaxSelection:    s.MaxSelection,
		Required:        s.IsRequired,
	}
}

func ToStepResponses(steps []model.ModifierStep) []StepResponse {
	out := make([]StepResponse, len(steps))
	for i := range steps {
		out[i] = ToStepResponse(&steps[i])
	}
	return out
}

// StepUpserts converts wire steps to usecase inputs preserving order.
func StepUpserts(steps []StepUpsertRequest) []StepUpsert {
	out := make([]StepUpsert, len(steps))
	for i, s := range steps {
		id := ""
		if s.ID != nil {
			id = *s.ID
		}
		out[i] = StepUpsert{
			ID:              id,
			ModifierGroupID: s.ModifierGroupID,
			MinSelection:    s.MinSelection,
			MaxSelection:    s.MaxSelection,
			IsRequired:      s.IsRequired,
		}
	}
	return out
}
