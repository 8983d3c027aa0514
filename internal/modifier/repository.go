package modifier

import (
	"context"

	"github.com/pymerp/gastro-catalog/internal/model"
)

type Repository interface {
	CreateGroup(ctx context.Context, group *model.ModifierGroup) error
	FindGroupByID(ctx context.Context, companyID, id string) (*model.ModifierGroup, error)
	FindGroupsByIDs(ctx context.Context, companyID string, ids []string) ([]model.ModifierGroup, error)
	SearchGroups(ctx context.Context, companyID, query string, limit int) ([]model.ModifierGroup, error)

	CreateItem(ctx context.Context, item *model.ModifierItem) error
	FindItemsByGroup(ctx context.Context, groupID string) ([]model.ModifierItem, error)
	FindItemsByGroups(ctx context.Context, groupIDs []string) ([]model.ModifierItem, error)

	FindStepsByProduct(ctx context.Context, productID string) ([]model.ModifierStep, error)
	FindStepsByScope(ctx context.Context, productID string, scope model.Scope) ([]model.ModifierStep, error)

	// ReplaceSteps swaps the whole step set of one scope in a single
	// transaction: omitted steps are deleted, matching ids updated, the rest
	// inserted.
	ReplaceSteps(ctx context.Context, productID string, scope model.Scope, steps []model.ModifierStep) ([]model.ModifierStep, error)
}

// ProductSource is the slice of the product domain the step engine needs.
// Satisfied by product.Repository.
type ProductSource interface {
	FindByID(ctx context.Context, companyID, id string) (*model.Product, error)
	FindVariantByID(ctx context.Context, id string) (*model.Variant, error)
}
