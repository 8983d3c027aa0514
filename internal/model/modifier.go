package model

type ModifierGroup struct {
	BaseModel
	CompanyID string `db:"company_id" json:"company_id"`
	Name      string `db:"name" json:"name"`
	IsActive  bool   `db:"is_active" json:"is_active"`
}

type ModifierItem struct {
	BaseModel
	ModifierGroupID string  `db:"modifier_group_id" json:"modifier_group_id"`
	Name            string  `db:"name" json:"name"`
	PriceDelta      float64 `db:"price_delta" json:"price_delta"`
	IsActive        bool    `db:"is_active" json:"is_active"`
}

// ModifierStep binds one modifier group to a product or variant scope with
// selection cardinality rules. Within a scope step_order is dense from 1.
type ModifierStep struct {
	BaseModel
	ProductID       string  `db:"product_id" json:"product_id"`
	ModifierGroupID string  `db:"modifier_group_id" json:"modifier_group_id"`
	VariantID       *string `db:"variant_id" json:"variant_id"` // nil = product-wide
	StepOrder       int     `db:"step_order" json:"step_order"`
	MinSelection    int     `db:"min_selection" json:"min_selection"`
	MaxSelection    int     `db:"max_selection" json:"max_selection"`
	IsRequired      bool    `db:"is_required" json:"is_required"`
}

func (s *ModifierStep) Scope() Scope {
	return ScopeFor(s.VariantID)
}
