package dto

type CreateGroupInput struct {
	CompanyID string
	Name      string
}

type CreateItemInput struct {
	CompanyID  string
	GroupID    string
	Name       string
	PriceDelta float64
}

type StepUpsert struct {
	ID              string // empty = create
	ModifierGroupID string
	MinSelection    int
	MaxSelection    int
	IsRequired      bool
}

// ReplaceStepsInput carries a full step set for one scope; submission order
// is the presentation order.
type ReplaceStepsInput struct {
	CompanyID string
	ProductID string
	VariantID *string // nil = product scope
	Steps     []StepUpsert
}

type ValidateSelectionInput struct {
	CompanyID  string
	ProductID  string
	VariantID  *string
	Selections map[string][]string // selected item ids by modifier group id
}
