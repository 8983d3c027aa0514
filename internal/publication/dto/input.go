package dto

type CreateCatalogInput struct {
	CompanyID      string
	BusinessUnitID string
	SalesChannelID string
	OrderModeID    string
	Name           string
}

type VariantPriceItem struct {
	VariantID string
	Price     float64
}

// PublishInput carries one catalog row upsert. BasePrice and VariantPrices
// are mutually exclusive; which one applies depends on the product kind and
// whether variant prices are supplied.
type PublishInput struct {
	CompanyID     string
	CatalogID     string
	ProductID     string
	BasePrice     *float64
	Currency      string
	SortOrder     int
	Available     *bool
	VariantPrices []VariantPriceItem
}

type VariantPriceBulkInput struct {
	CompanyID string
	CatalogID string
	ProductID string
	Currency  string
	Prices    []VariantPriceItem
}
