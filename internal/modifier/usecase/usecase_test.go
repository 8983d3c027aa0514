package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/modifier/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeModifierRepo struct {
	groups    map[string]*model.ModifierGroup
	items     map[string]*model.ModifierItem
	steps     map[string]*model.ModifierStep
	groupsErr error
}

func newFakeModifierRepo() *fakeModifierRepo {
	return &fakeModifierRepo{
		groups: map[string]*model.ModifierGroup{},
		items:  map[string]*model.ModifierItem{},
		steps:  map[string]*model.ModifierStep{},
	}
}

func (r *fakeModifierRepo) CreateGroup(_ context.Context, g *model.ModifierGroup) error {
	cp := *g
	r.groups[g.ID] = &cp
	return nil
}

func (r *fakeModifierRepo) FindGroupByID(_ context.Context, companyID, id string) (*model.ModifierGroup, error) {
	g, ok := r.groups[id]
	if !ok || g.CompanyID != companyID {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *fakeModifierRepo) FindGroupsByIDs(_ context.Context, companyID string, ids []string) ([]model.ModifierGroup, error) {
	if r.groupsErr != nil {
		return nil, r.groupsErr
	}
	out := []model.ModifierGroup{}
	for _, id := range ids {
		if g, ok := r.groups[id]; ok && g.CompanyID == companyID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeModifierRepo) SearchGroups(_ context.Context, companyID, query string, _ int) ([]model.ModifierGroup, error) {
	out := []model.ModifierGroup{}
	for _, g := range r.groups {
		if g.CompanyID == companyID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeModifierRepo) CreateItem(_ context.Context, it *model.ModifierItem) error {
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *fakeModifierRepo) FindItemsByGroup(_ context.Context, groupID string) ([]model.ModifierItem, error) {
	out := []model.ModifierItem{}
	for _, it := range r.items {
		if it.ModifierGroupID == groupID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeModifierRepo) FindItemsByGroups(_ context.Context, groupIDs []string) ([]model.ModifierItem, error) {
	out := []model.ModifierItem{}
	for _, id := range groupIDs {
		items, _ := r.FindItemsByGroup(context.Background(), id)
		out = append(out, items...)
	}
	return out, nil
}

func (r *fakeModifierRepo) FindStepsByProduct(_ context.Context, productID string) ([]model.ModifierStep, error) {
	out := []model.ModifierStep{}
	for _, s := range r.steps {
		if s.ProductID == productID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeModifierRepo) FindStepsByScope(_ context.Context, productID string, scope model.Scope) ([]model.ModifierStep, error) {
	out := []model.ModifierStep{}
	for _, s := range r.steps {
		if s.ProductID == productID && s.Scope() == scope {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeModifierRepo) ReplaceSteps(_ context.Context, productID string, scope model.Scope, steps []model.ModifierStep) ([]model.ModifierStep, error) {
	for id, s := range r.steps {
		if s.ProductID == productID && s.Scope() == scope {
			delete(r.steps, id)
		}
	}
	for i := range steps {
		cp := steps[i]
		r.steps[cp.ID] = &cp
	}
	return steps, nil
}

type fakeProductSource struct {
	products map[string]*model.Product
	variants map[string]*model.Variant
}

func (s *fakeProductSource) FindByID(_ context.Context, companyID, id string) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}

func (s *fakeProductSource) FindVariantByID(_ context.Context, id string) (*model.Variant, error) {
	v, ok := s.variants[id]
	if !ok {
		return nil, nil
	}
	return v, nil
}

type fixture struct {
	repo     *fakeModifierRepo
	products *fakeProductSource
	uc       *modifierUseCase
}

func newFixture() *fixture {
	repo := newFakeModifierRepo()
	products := &fakeProductSource{
		products: map[string]*model.Product{},
		variants: map[string]*model.Variant{},
	}
	return &fixture{
		repo:     repo,
		products: products,
		uc:       &modifierUseCase{repo: repo, products: products, logger: zap.NewNop()},
	}
}

func (f *fixture) addProduct(companyID string, kind model.ProductKind) *model.Product {
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String()},
		CompanyID:   companyID,
		Name:        "product",
		ProductKind: kind,
		IsActive:    true,
	}
	f.products.products[p.ID] = p
	return p
}

func (f *fixture) addVariant(productID string) *model.Variant {
	v := &model.Variant{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		ProductID: productID,
		Name:      "variant",
		IsActive:  true,
	}
	f.products.variants[v.ID] = v
	return v
}

func (f *fixture) addGroup(companyID string, active bool) *model.ModifierGroup {
	g := &model.ModifierGroup{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		CompanyID: companyID,
		Name:      "group",
		IsActive:  active,
	}
	f.repo.groups[g.ID] = g
	return g
}

func TestReplaceStepsSubmissionOrderWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	g1 := f.addGroup("company-1", true)
	g2 := f.addGroup("company-1", true)
	g3 := f.addGroup("company-1", true)

	steps, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps: []dto.StepUpsert{
			{ModifierGroupID: g3.ID, MinSelection: 0, MaxSelection: 1},
			{ModifierGroupID: g1.ID, MinSelection: 1, MaxSelection: 1},
			{ModifierGroupID: g2.ID, MinSelection: 0, MaxSelection: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, steps, 3)

	for i, s := range steps {
		assert.Equal(t, i+1, s.StepOrder)
	}
	assert.Equal(t, g3.ID, steps[0].ModifierGroupID)
	assert.Equal(t, g1.ID, steps[1].ModifierGroupID)
	assert.Equal(t, g2.ID, steps[2].ModifierGroupID)
}

func TestReplaceStepsKeepsSubmittedIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	g := f.addGroup("company-1", true)

	first, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MaxSelection: 1}},
	})
	require.NoError(t, err)

	second, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps: []dto.StepUpsert{
			{ID: first[0].ID, ModifierGroupID: g.ID, MinSelection: 1, MaxSelection: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 2, second[0].MaxSelection)
}

func TestReplaceStepsUnknownGroup(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)

	_, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: "nope", MaxSelection: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "unknown_group", appErr.Details[0].Issue)
}

func TestReplaceStepsForeignGroup(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	g := f.addGroup("company-2", true)

	_, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MaxSelection: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestReplaceStepsInactiveGroup(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	g := f.addGroup("company-1", false)

	_, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MaxSelection: 1}},
	})
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "inactive_group", appErr.Details[0].Issue)
}

func TestReplaceStepsMinGreaterThanMax(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	g := f.addGroup("company-1", true)

	_, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MinSelection: 3, MaxSelection: 1}},
	})
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "min_greater_than_max", appErr.Details[0].Issue)
}

func TestReplaceStepsNonConfigurable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindSimple)
	g := f.addGroup("company-1", true)

	_, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MaxSelection: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestReplaceStepsEmptySetClearsAnyKind(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindSimple)

	steps, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{},
	})
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestReplaceStepsVariantScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	v := f.addVariant(p.ID)
	g := f.addGroup("company-1", true)

	productSteps, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MaxSelection: 1}},
	})
	require.NoError(t, err)

	variantSteps, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		VariantID: &v.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MinSelection: 1, MaxSelection: 2}},
	})
	require.NoError(t, err)

	// The two scopes do not touch each other.
	got, err := f.uc.ListSteps(ctx, "company-1", p.ID, model.ProductScope())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, productSteps[0].ID, got[0].ID)

	got, err = f.uc.ListSteps(ctx, "company-1", p.ID, model.VariantScope(v.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, variantSteps[0].ID, got[0].ID)
}

func TestReplaceStepsForeignVariant(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	other := f.addProduct("company-1", model.KindConfigurable)
	v := f.addVariant(other.ID)
	g := f.addGroup("company-1", true)

	_, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		VariantID: &v.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MaxSelection: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReplaceStepsRejectsStepIDOfAnotherProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	victim := f.addProduct("company-1", model.KindConfigurable)
	attacker := f.addProduct("company-2", model.KindConfigurable)
	victimGroup := f.addGroup("company-1", true)
	attackerGroup := f.addGroup("company-2", true)

	victimSteps, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: victim.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: victimGroup.ID, MinSelection: 1, MaxSelection: 1}},
	})
	require.NoError(t, err)

	_, err = f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-2",
		ProductID: attacker.ID,
		Steps: []dto.StepUpsert{
			{ID: victimSteps[0].ID, ModifierGroupID: attackerGroup.ID, MinSelection: 0, MaxSelection: 5},
		},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "unknown_step", appErr.Details[0].Issue)

	// The victim's step set is untouched and still reads back densely.
	got, err := f.uc.ListSteps(ctx, "company-1", victim.ID, model.ProductScope())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, victimGroup.ID, got[0].ModifierGroupID)
	assert.Equal(t, 1, got[0].StepOrder)
	assert.Equal(t, 1, got[0].MaxSelection)
}

func TestReplaceStepsRejectsStepIDOfAnotherScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	v := f.addVariant(p.ID)
	g := f.addGroup("company-1", true)

	productSteps, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MaxSelection: 1}},
	})
	require.NoError(t, err)

	_, err = f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		VariantID: &v.ID,
		Steps: []dto.StepUpsert{
			{ID: productSteps[0].ID, ModifierGroupID: g.ID, MaxSelection: 2},
		},
	})
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "unknown_step", appErr.Details[0].Issue)
}

func TestReplaceStepsGroupLookupFailureIsNotValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	g := f.addGroup("company-1", true)
	f.repo.groupsErr = errors.New("connection reset")

	_, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps:     []dto.StepUpsert{{ModifierGroupID: g.ID, MaxSelection: 1}},
	})
	require.Error(t, err)

	_, isAppErr := apperr.KindOf(err)
	assert.False(t, isAppErr)
}

func TestValidateStepUpserts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	g := f.addGroup("company-1", true)

	err := f.uc.ValidateStepUpserts(ctx, "company-1", []dto.StepUpsert{
		{ModifierGroupID: g.ID, MinSelection: 1, MaxSelection: 2},
	})
	assert.NoError(t, err)

	err = f.uc.ValidateStepUpserts(ctx, "company-1", []dto.StepUpsert{
		{ModifierGroupID: "nope", MaxSelection: 1},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// No product exists yet, so submitted ids cannot refer to anything.
	err = f.uc.ValidateStepUpserts(ctx, "company-1", []dto.StepUpsert{
		{ID: "some-step", ModifierGroupID: g.ID, MaxSelection: 1},
	})
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "unknown_step", appErr.Details[0].Issue)
}

func TestValidateSelectionReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct("company-1", model.KindConfigurable)
	g1 := f.addGroup("company-1", true)
	g2 := f.addGroup("company-1", true)

	_, err := f.uc.ReplaceSteps(ctx, &dto.ReplaceStepsInput{
		CompanyID: "company-1",
		ProductID: p.ID,
		Steps: []dto.StepUpsert{
			{ModifierGroupID: g1.ID, MinSelection: 1, MaxSelection: 1},
			{ModifierGroupID: g2.ID, MinSelection: 0, MaxSelection: 2},
		},
	})
	require.NoError(t, err)

	report, err := f.uc.ValidateSelection(ctx, &dto.ValidateSelectionInput{
		CompanyID:  "company-1",
		ProductID:  p.ID,
		Selections: map[string][]string{g2.ID: {"item-a"}},
	})
	require.NoError(t, err)
	assert.False(t, report.Complete)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, g1.ID, report.Issues[0].ModifierGroupID)

	report, err = f.uc.ValidateSelection(ctx, &dto.ValidateSelectionInput{
		CompanyID:  "company-1",
		ProductID:  p.ID,
		Selections: map[string][]string{g1.ID: {"item-x"}, g2.ID: {"item-a", "item-b"}},
	})
	require.NoError(t, err)
	assert.True(t, report.Complete)
	assert.Empty(t, report.Issues)
}

func TestCreateItemValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	g := f.addGroup("company-1", true)

	_, err := f.uc.CreateItem(ctx, &dto.CreateItemInput{
		CompanyID:  "company-1",
		GroupID:    g.ID,
		Name:       "Extra cheese",
		PriceDelta: -1,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	it, err := f.uc.CreateItem(ctx, &dto.CreateItemInput{
		CompanyID:  "company-1",
		GroupID:    g.ID,
		Name:       "Extra cheese",
		PriceDelta: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, g.ID, it.ModifierGroupID)
}
