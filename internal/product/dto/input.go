package dto

type CreateProductInput struct {
	CompanyID   string
	Name        string
	Description string
	SKUInternal string
	ProductKind string
}

type UpdateProductInput struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	SKUInternal string
	ProductKind string // compared against the stored kind, never written
	IsActive    bool
}

type CreateVariantInput struct {
	CompanyID   string
	ProductID   string
	Name        string
	SKUInternal string
}

type UpdateVariantInput struct {
	ID          string
	CompanyID   string
	Name        string
	SKUInternal string
	IsActive    bool
}

type ProductFilters struct {
	CompanyID   string
	Kind        string
	IsActive    *bool
	SearchQuery string // name or internal sku
	Page        int
	PageSize    int
}
