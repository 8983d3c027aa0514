package model

type ProductKind string

const (
	KindSimple       ProductKind = "SIMPLE"
	KindConfigurable ProductKind = "CONFIGURABLE"
	KindCombo        ProductKind = "COMBO"
)

func (k ProductKind) Valid() bool {
	switch k {
	case KindSimple, KindConfigurable, KindCombo:
		return true
	}
	return false
}

// MaxDescriptionLen caps product descriptions for menu card rendering.
const MaxDescriptionLen = 160

type Product struct {
	BaseModel
	CompanyID   string      `db:"company_id" json:"company_id"`
	SKUInternal *string     `db:"sku_internal" json:"sku_internal"` // Nullable
	Name        string      `db:"name" json:"name"`
	Description *string     `db:"description" json:"description"`
	ProductKind ProductKind `db:"product_kind" json:"product_kind"` // Immutable after creation
	IsActive    bool        `db:"is_active" json:"is_active"`
	Variants    []Variant   `db:"-" json:"variants"` // Not in DB table directly
}

type Variant struct {
	BaseModel
	ProductID   string  `db:"product_id" json:"product_id"`
	Name        string  `db:"name" json:"name"`
	SKUInternal *string `db:"sku_internal" json:"sku_internal"`
	Position    int     `db:"position" json:"position"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}
