package modifier

import (
	"context"

	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/modifier/dto"
)

type UseCase interface {
	CreateGroup(ctx context.Context, input *dto.CreateGroupInput) (*model.ModifierGroup, error)
	SearchGroups(ctx context.Context, companyID, query string) ([]model.ModifierGroup, error)
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.ModifierItem, error)
	ListGroupItems(ctx context.Context, companyID, groupID string) ([]model.ModifierItem, error)

	// ValidateStepUpserts checks a step payload without touching any product,
	// for callers that must validate before a product row exists.
	ValidateStepUpserts(ctx context.Context, companyID string, steps []dto.StepUpsert) error
	ReplaceSteps(ctx context.Context, input *dto.ReplaceStepsInput) ([]model.ModifierStep, error)
	ListSteps(ctx context.Context, companyID, productID string, scope model.Scope) ([]model.ModifierStep, error)
	ListAllSteps(ctx context.Context, companyID, productID string) ([]model.ModifierStep, error)

	// EditLookups resolves the groups and items referenced by a step set, for
	// the aggregated edit view.
	EditLookups(ctx context.Context, companyID string, steps []model.ModifierStep) ([]model.ModifierGroup, []model.ModifierItem, error)

	ValidateSelection(ctx context.Context, input *dto.ValidateSelectionInput) (*dto.SelectionReportResponse, error)
}
