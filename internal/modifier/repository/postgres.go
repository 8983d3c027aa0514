package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateGroup(ctx context.Context, g *model.ModifierGroup) error {
	query := `
        INSERT INTO modifier_groups (id, company_id, name, is_active, created_at, updated_at)
        VALUES (:id, :company_id, :name, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, g)
	return err
}

func (r *PGRepository) FindGroupByID(ctx context.Context, companyID, id string) (*model.ModifierGroup, error) {
	var group model.ModifierGroup
	query := `SELECT * FROM modifier_groups WHERE id = $1 AND company_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &group, query, id, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *PGRepository) FindGroupsByIDs(ctx context.Context, companyID string, ids []string) ([]model.ModifierGroup, error) {
	groups := []model.ModifierGroup{}
	if len(ids) == 0 {
		return groups, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM modifier_groups WHERE company_id = ? AND id IN (?)`, companyID, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)
	if err := r.DB.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PGRepository) SearchGroups(ctx context.Context, companyID, search string, limit int) ([]model.ModifierGroup, error) {
	groups := []model.ModifierGroup{}
	query := `SELECT * FROM modifier_groups WHERE company_id = $1`
	args := []interface{}{companyID}
	if search != "" {
		query += ` AND name ILIKE $2`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	if err := r.DB.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PGRepository) CreateItem(ctx context.Context, it *model.ModifierItem) error {
	query := `
        INSERT INTO modifier_items (id, modifier_group_id, name, price_delta, is_active, created_at, updated_at)
        VALUES (:id, :modifier_group_id, :name, :price_delta, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, it)
	return err
}

func (r *PGRepository) FindItemsByGroup(ctx context.Context, groupID string) ([]model.ModifierItem, error) {
	items := []model.ModifierItem{}
	query := `SELECT * FROM modifier_items WHERE modifier_group_id = $1 ORDER BY name ASC`
	if err := r.DB.SelectContext(ctx, &items, query, groupID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) FindItemsByGroups(ctx context.Context, groupIDs []string) ([]model.ModifierItem, error) {
	items := []model.ModifierItem{}
	if len(groupIDs) == 0 {
		return items, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM modifier_items WHERE modifier_group_id IN (?) ORDER BY name ASC`, groupIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) FindStepsByProduct(ctx context.Context, productID string) ([]model.ModifierStep, error) {
	steps := []model.ModifierStep{}
	query := `SELECT * FROM modifier_steps WHERE product_id = $1 ORDER BY variant_id NULLS FIRST, step_order ASC`
	if err := r.DB.SelectContext(ctx, &steps, query, productID); err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *PGRepository) FindStepsByScope(ctx context.Context, productID string, scope model.Scope) ([]model.ModifierStep, error) {
	steps := []model.ModifierStep{}
	if scope.IsProduct() {
		query := `SELECT * FROM modifier_steps WHERE product_id = $1 AND variant_id IS NULL ORDER BY step_order ASC`
		if err := r.DB.SelectContext(ctx, &steps, query, productID); err != nil {
			return nil, err
		}
		return steps, nil
	}

	query := `SELECT * FROM modifier_steps WHERE product_id = $1 AND variant_id = $2 ORDER BY step_order ASC`
	if err := r.DB.SelectContext(ctx, &steps, query, productID, *scope.VariantID()); err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *PGRepository) ReplaceSteps(ctx context.Context, productID string, scope model.Scope, steps []model.ModifierStep) ([]model.ModifierStep, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Delete everything in the scope that the new set does not keep.
	scopeCond := `variant_id IS NULL`
	scopeArgs := []interface{}{productID}
	if !scope.IsProduct() {
		scopeCond = `variant_id = ?`
		scopeArgs = append(scopeArgs, *scope.VariantID())
	}

	if len(steps) == 0 {
		query := tx.Rebind(`DELETE FROM modifier_steps WHERE product_id = ? AND ` + scopeCond)
		if _, err := tx.ExecContext(ctx, query, scopeArgs...); err != nil {
			return nil, err
		}
		return []model.ModifierStep{}, tx.Commit()
	}

	keep := make([]string, len(steps))
	for i := range steps {
		keep[i] = steps[i].ID
	}

	// Any kept id that already exists outside this scope belongs to another
	// scope or tenant; upserting it would rewrite that row in place.
	var foreign []string
	query, args, err := sqlx.In(
		`SELECT id FROM modifier_steps WHERE id IN (?) AND NOT (product_id = ? AND `+scopeCond+`)`,
		append([]interface{}{keep}, scopeArgs...)...,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.SelectContext(ctx, &foreign, tx.Rebind(query), args...); err != nil {
		return nil, err
	}
	if len(foreign) > 0 {
		return nil, apperr.Validation(
			"step does not belong to the target scope",
			apperr.FieldIssue{Field: "steps", Issue: "unknown_step"},
		)
	}

	query, args, err = sqlx.In(
		`DELETE FROM modifier_steps WHERE product_id = ? AND `+scopeCond+` AND id NOT IN (?)`,
		append(scopeArgs, keep)...,
	)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return nil, err
	}

	upsert := `
        INSERT INTO modifier_steps (
            id, product_id, modifier_group_id, variant_id, step_order,
            min_selection, max_selection, is_required, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :modifier_group_id, :variant_id, :step_order,
            :min_selection, :max_selection, :is_required, :created_at, :updated_at
        )
        ON CONFLICT (id) DO UPDATE SET
            modifier_group_id = EXCLUDED.modifier_group_id,
            step_order = EXCLUDED.step_order,
            min_selection = EXCLUDED.min_selection,
            max_selection = EXCLUDED.max_selection,
            is_required = EXCLUDED.is_required,
            updated_at = EXCLUDED.updated_at
    `
	for i := range steps {
		if _, err := tx.NamedExecContext(ctx, upsert, &steps[i]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return steps, nil
}
