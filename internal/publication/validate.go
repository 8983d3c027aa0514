// Package publication manages the catalog surfaces a product is sold on and
// the prices it carries there. Pricing for a catalog/product pair is either a
// single base price or a complete set of per-variant prices, never both.
package publication

import (
	"regexp"

	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/model"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

const (
	StatusOK           = "ok"
	StatusPendingPrice = "pending_price"
)

// PriceRow is the pricing side of one publish request, detached from wire and
// storage concerns so the policy stays testable on its own.
type PriceRow struct {
	BasePrice     *float64
	Currency      string
	VariantPrices map[string]float64
}

// HasVariantPrices reports whether the row carries a positive price for any
// of the given variants. Non-positive entries count as not entered, and
// prices for unknown variants do not count; those are rejected separately.
func (r PriceRow) HasVariantPrices(variants []model.Variant) bool {
	for _, v := range variants {
		if p, ok := r.VariantPrices[v.ID]; ok && p > 0 {
			return true
		}
	}
	return false
}

// ValidateRow enforces the exclusivity policy on one publish row.
//
// A CONFIGURABLE product with variants takes the per-variant path as soon as
// any variant carries a positive price: the base price must then be empty and
// every variant must carry a positive price. Everything else takes the base
// path; non-positive variant entries count as not entered.
func ValidateRow(row PriceRow, kind model.ProductKind, variants []model.Variant) *apperr.Error {
	if !currencyPattern.MatchString(row.Currency) {
		return apperr.Validation("invalid currency code", apperr.FieldIssue{Field: "currency", Issue: "invalid"})
	}

	perVariant := kind == model.KindConfigurable && len(variants) > 0 && row.HasVariantPrices(variants)

	if !perVariant {
		noVariantPath := kind != model.KindConfigurable || len(variants) == 0
		if noVariantPath && len(row.VariantPrices) > 0 {
			return apperr.Validation(
				"variant prices only apply to CONFIGURABLE products with variants",
				apperr.FieldIssue{Field: "variantPrices", Issue: "not_applicable"},
			)
		}
		if row.BasePrice == nil || *row.BasePrice <= 0 {
			return apperr.Validation("base price must be positive", apperr.FieldIssue{Field: "basePrice", Issue: "not_positive"})
		}
		return nil
	}

	if row.BasePrice != nil {
		return apperr.Validation(
			"base price must be empty when variant prices are set",
			apperr.FieldIssue{Field: "basePrice", Issue: "exclusive_with_variant_prices"},
		)
	}
	for _, v := range variants {
		price, ok := row.VariantPrices[v.ID]
		if !ok {
			return apperr.Validation(
				"missing price for some variant",
				apperr.FieldIssue{Field: "variantPrices", Issue: "incomplete"},
			)
		}
		if price <= 0 {
			return apperr.Validation(
				"variant prices must be positive",
				apperr.FieldIssue{Field: "variantPrices", Issue: "not_positive"},
			)
		}
	}
	return nil
}

// RowStatus projects the stored pricing of a published pair into the status
// shown on the publication matrix.
func RowStatus(cp *model.CatalogProduct, prices []model.VariantPrice, kind model.ProductKind, variants []model.Variant) string {
	if cp.BasePrice != nil && *cp.BasePrice > 0 {
		return StatusOK
	}
	if kind == model.KindConfigurable && len(variants) > 0 {
		priced := map[string]bool{}
		for _, p := range prices {
			if p.Price > 0 {
				priced[p.VariantID] = true
			}
		}
		for _, v := range variants {
			if !priced[v.ID] {
				return StatusPendingPrice
			}
		}
		return StatusOK
	}
	return StatusPendingPrice
}
