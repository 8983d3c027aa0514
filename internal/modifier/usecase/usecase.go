package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/cache"
	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/modifier"
	"github.com/pymerp/gastro-catalog/internal/modifier/dto"
	"github.com/pymerp/gastro-catalog/internal/search"
	"github.com/pymerp/gastro-catalog/internal/selection"
	"go.uber.org/zap"
)

const (
	groupsIndex  = "modifier-groups"
	itemCacheTTL = 5 * time.Minute
)

type modifierUseCase struct {
	repo     modifier.Repository
	products modifier.ProductSource
	cache    *cache.RedisClient
	es       *search.Client
	logger   *zap.Logger
}

func NewModifierUseCase(repo modifier.Repository, products modifier.ProductSource, cache *cache.RedisClient, es *search.Client, log *zap.Logger) modifier.UseCase {
	return &modifierUseCase{
		repo:     repo,
		products: products,
		cache:    cache,
		es:       es,
		logger:   log,
	}
}

func (uc *modifierUseCase) CreateGroup(ctx context.Context, input *dto.CreateGroupInput) (*model.ModifierGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.Validation("invalid modifier group", apperr.FieldIssue{Field: "name", Issue: "required"})
	}

	now := time.Now()
	g := &model.ModifierGroup{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CompanyID: input.CompanyID,
		Name:      input.Name,
		IsActive:  true,
	}

	if err := uc.repo.CreateGroup(ctx, g); err != nil {
		return nil, errors.Wrap(err, "create modifier group")
	}

	go uc.syncGroupToElastic(context.Background(), g)
	go uc.invalidateLookupCache(context.Background(), input.CompanyID)

	return g, nil
}

func (uc *modifierUseCase) syncGroupToElastic(ctx context.Context, g *model.ModifierGroup) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"company_id": { "type": "keyword" },
				"name": { "type": "text" },
				"is_active": { "type": "boolean" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, groupsIndex, mapping)

	if err := uc.es.Index(ctx, groupsIndex, g.ID, g); err != nil {
		uc.logger.Error("failed to index modifier group", zap.Error(err))
	}
}

func (uc *modifierUseCase) SearchGroups(ctx context.Context, companyID, query string) ([]model.ModifierGroup, error) {
	if query != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						{
							"query_string": map[string]interface{}{
								"query":  fmt.Sprintf("*%s*", query),
								"fields": []string{"name"},
							},
						},
						{
							"term": map[string]interface{}{
								"company_id": companyID,
							},
						},
					},
				},
			},
			"size": 50,
		}

		res, err := uc.es.Search(ctx, groupsIndex, q)
		if err == nil {
			var groups []model.ModifierGroup
			for _, hit := range res.Hits.Hits {
				var g model.ModifierGroup
				if err := json.Unmarshal(hit.Source, &g); err == nil {
					groups = append(groups, g)
				}
			}
			return groups, nil
		}
		// If ES fails, fall through to DB
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	return uc.repo.SearchGroups(ctx, companyID, query, 50)
}

func (uc *modifierUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.ModifierItem, error) {
	g, err := uc.repo.FindGroupByID(ctx, input.CompanyID, input.GroupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, apperr.NotFound("modifier group")
	}

	var issues []apperr.FieldIssue
	if strings.TrimSpace(input.Name) == "" {
		issues = append(issues, apperr.FieldIssue{Field: "name", Issue: "required"})
	}
	if input.PriceDelta < 0 {
		issues = append(issues, apperr.FieldIssue{Field: "priceDelta", Issue: "negative"})
	}
	if len(issues) > 0 {
		return nil, apperr.Validation("invalid modifier item", issues...)
	}

	now := time.Now()
	it := &model.ModifierItem{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ModifierGroupID: input.GroupID,
		Name:            input.Name,
		PriceDelta:      input.PriceDelta,
		IsActive:        true,
	}

	if err := uc.repo.CreateItem(ctx, it); err != nil {
		return nil, errors.Wrap(err, "create modifier item")
	}

	go uc.invalidateLookupCache(context.Background(), input.CompanyID)

	return it, nil
}

func itemCacheKey(companyID, groupID string) string {
	return fmt.Sprintf("modifiers:items:%s:%s", companyID, groupID)
}

// ListGroupItems is the hot lookup of the configuration wizard; it reads
// through a redis cache keyed per company and group.
func (uc *modifierUseCase) ListGroupItems(ctx context.Context, companyID, groupID string) ([]model.ModifierItem, error) {
	key := itemCacheKey(companyID, groupID)
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, key).Result(); err == nil {
			var items []model.ModifierItem
			if err := json.Unmarshal([]byte(val), &items); err == nil {
				return items, nil
			}
		}
	}

	g, err := uc.repo.FindGroupByID(ctx, companyID, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, apperr.NotFound("modifier group")
	}

	items, err := uc.repo.FindItemsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			uc.cache.Client.Set(ctx, key, data, itemCacheTTL)
		}
	}
	return items, nil
}

func (uc *modifierUseCase) invalidateLookupCache(ctx context.Context, companyID string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("modifiers:*:%s:*", companyID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *modifierUseCase) ReplaceSteps(ctx context.Context, input *dto.ReplaceStepsInput) ([]model.ModifierStep, error) {
	p, err := uc.products.FindByID(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}

	scope := model.ScopeFor(input.VariantID)
	if !scope.IsProduct() {
		v, err := uc.products.FindVariantByID(ctx, *scope.VariantID())
		if err != nil {
			return nil, err
		}
		if v == nil || v.ProductID != input.ProductID {
			return nil, apperr.NotFound("variant")
		}
	}

	// Only CONFIGURABLE products carry steps; clearing a scope is fine for
	// any kind.
	if len(input.Steps) > 0 && p.ProductKind != model.KindConfigurable {
		return nil, apperr.Validation(
			"only CONFIGURABLE products carry modifier steps",
			apperr.FieldIssue{Field: "productKind", Issue: "not_configurable"},
		)
	}

	// Submitted ids may only address steps already in this scope; anything
	// else would let a payload rewrite rows of another scope or tenant.
	existing, err := uc.repo.FindStepsByScope(ctx, input.ProductID, scope)
	if err != nil {
		return nil, err
	}
	existingIDs := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		existingIDs[s.ID] = struct{}{}
	}

	issues, err := uc.validateSteps(ctx, input.CompanyID, input.Steps, existingIDs)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, apperr.Validation("invalid modifier steps", issues...)
	}

	now := time.Now()
	steps := make([]model.ModifierStep, len(input.Steps))
	for i, s := range input.Steps {
		id := s.ID
		if id == "" {
			id = uuid.New().String()
		}
		steps[i] = model.ModifierStep{
			BaseModel:       model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
			ProductID:       input.ProductID,
			ModifierGroupID: s.ModifierGroupID,
			VariantID:       scope.VariantID(),
			StepOrder:       i + 1, // dense, submission order wins
			MinSelection:    s.MinSelection,
			MaxSelection:    s.MaxSelection,
			IsRequired:      s.IsRequired,
		}
	}

	persisted, err := uc.repo.ReplaceSteps(ctx, input.ProductID, scope, steps)
	if err != nil {
		return nil, errors.Wrap(err, "replace steps")
	}

	go uc.invalidateLookupCache(context.Background(), input.CompanyID)

	uc.logger.Info("steps replaced",
		zap.String("product_id", input.ProductID),
		zap.String("scope", scope.Key()),
		zap.Int("steps", len(persisted)),
	)
	return persisted, nil
}

func (uc *modifierUseCase) validateSteps(ctx context.Context, companyID string, steps []dto.StepUpsert, existingIDs map[string]struct{}) ([]apperr.FieldIssue, error) {
	var issues []apperr.FieldIssue

	groupIDs := make([]string, 0, len(steps))
	seen := map[string]struct{}{}
	for _, s := range steps {
		if s.ModifierGroupID == "" {
			continue
		}
		if _, dup := seen[s.ModifierGroupID]; dup {
			continue
		}
		seen[s.ModifierGroupID] = struct{}{}
		groupIDs = append(groupIDs, s.ModifierGroupID)
	}

	groups := map[string]model.ModifierGroup{}
	if len(groupIDs) > 0 {
		found, err := uc.repo.FindGroupsByIDs(ctx, companyID, groupIDs)
		if err != nil {
			return nil, errors.Wrap(err, "load modifier groups")
		}
		for _, g := range found {
			groups[g.ID] = g
		}
	}

	for i, s := range steps {
		field := func(name string) string { return fmt.Sprintf("steps[%d].%s", i, name) }

		if s.ID != "" {
			if _, ok := existingIDs[s.ID]; !ok {
				issues = append(issues, apperr.FieldIssue{Field: field("id"), Issue: "unknown_step"})
			}
		}

		g, ok := groups[s.ModifierGroupID]
		switch {
		case s.ModifierGroupID == "" || !ok:
			issues = append(issues, apperr.FieldIssue{Field: field("modifierGroupId"), Issue: "unknown_group"})
		case !g.IsActive:
			issues = append(issues, apperr.FieldIssue{Field: field("modifierGroupId"), Issue: "inactive_group"})
		}

		if s.MinSelection < 0 {
			issues = append(issues, apperr.FieldIssue{Field: field("minSelection"), Issue: "negative"})
		}
		if s.MaxSelection < 0 {
			issues = append(issues, apperr.FieldIssue{Field: field("maxSelection"), Issue: "negative"})
		}
		// The one hard cardinality failure; required-with-zero-min is always
		// derivable via the effective minimum.
		if s.MinSelection > s.MaxSelection {
			issues = append(issues, apperr.FieldIssue{Field: field("minSelection"), Issue: "min_greater_than_max"})
		}
	}
	return issues, nil
}

// ValidateStepUpserts runs the persistence-free step checks for a payload
// that has no product yet, so callers can reject it before creating one.
// Submitted ids cannot refer to anything at that point and are rejected.
func (uc *modifierUseCase) ValidateStepUpserts(ctx context.Context, companyID string, steps []dto.StepUpsert) error {
	issues, err := uc.validateSteps(ctx, companyID, steps, map[string]struct{}{})
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return apperr.Validation("invalid modifier steps", issues...)
	}
	return nil
}

func (uc *modifierUseCase) ListSteps(ctx context.Context, companyID, productID string, scope model.Scope) ([]model.ModifierStep, error) {
	p, err := uc.products.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	return uc.repo.FindStepsByScope(ctx, productID, scope)
}

func (uc *modifierUseCase) ListAllSteps(ctx context.Context, companyID, productID string) ([]model.ModifierStep, error) {
	p, err := uc.products.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}
	return uc.repo.FindStepsByProduct(ctx, productID)
}

func (uc *modifierUseCase) EditLookups(ctx context.Context, companyID string, steps []model.ModifierStep) ([]model.ModifierGroup, []model.ModifierItem, error) {
	groupIDs := make([]string, 0, len(steps))
	seen := map[string]struct{}{}
	for _, s := range steps {
		if _, dup := seen[s.ModifierGroupID]; dup {
			continue
		}
		seen[s.ModifierGroupID] = struct{}{}
		groupIDs = append(groupIDs, s.ModifierGroupID)
	}

	groups, err := uc.repo.FindGroupsByIDs(ctx, companyID, groupIDs)
	if err != nil {
		return nil, nil, err
	}
	items, err := uc.repo.FindItemsByGroups(ctx, groupIDs)
	if err != nil {
		return nil, nil, err
	}
	return groups, items, nil
}

// ValidateSelection enforces the step cardinality rules against an
// externally submitted selection, e.g. from an ordering surface.
func (uc *modifierUseCase) ValidateSelection(ctx context.Context, input *dto.ValidateSelectionInput) (*dto.SelectionReportResponse, error) {
	p, err := uc.products.FindByID(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}

	scope := model.ScopeFor(input.VariantID)
	steps, err := uc.repo.FindStepsByScope(ctx, input.ProductID, scope)
	if err != nil {
		return nil, err
	}

	state := selection.NewState()
	for groupID, ids := range input.Selections {
		state.SetSelected(groupID, ids)
	}

	issues := selection.Validate(steps, state)
	return &dto.SelectionReportResponse{
		Complete: len(issues) == 0 && selection.Complete(steps, state),
		Issues:   issues,
	}, nil
}
