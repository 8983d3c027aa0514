package model

// Scope says whether a modifier step applies to the whole product or to one
// specific variant. It replaces the nullable variant id as a map key so that
// lookups never branch on nil.
type Scope struct {
	variantID string
}

const productScopeKey = "product"

func ProductScope() Scope { return Scope{} }

func VariantScope(variantID string) Scope { return Scope{variantID: variantID} }

// ScopeFor resolves a nullable variant id from a request payload.
func ScopeFor(variantID *string) Scope {
	if variantID == nil || *variantID == "" {
		return ProductScope()
	}
	return VariantScope(*variantID)
}

func (s Scope) IsProduct() bool { return s.variantID == "" }

// VariantID returns nil for the product scope.
func (s Scope) VariantID() *string {
	if s.variantID == "" {
		return nil
	}
	v := s.variantID
	return &v
}

func (s Scope) Key() string {
	if s.variantID == "" {
		return productScopeKey
	}
	return s.variantID
}
