package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

func (r *PGRepository) CreateCatalog(ctx context.Context, c *model.Catalog) error {
	query := `
        INSERT INTO catalogs (
            id, company_id, business_unit_id, sales_channel_id, order_mode_id,
            name, is_active, created_at, updated_at
        )
        VALUES (
            :id, :company_id, :business_unit_id, :sales_channel_id, :order_mode_id,
            :name, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindCatalogs(ctx context.Context, companyID string) ([]model.Catalog, error) {
	catalogs := []model.Catalog{}
	query := `SELECT * FROM catalogs WHERE company_id = $1 AND is_active = true ORDER BY name ASC`
	if err := r.DB.SelectContext(ctx, &catalogs, query, companyID); err != nil {
		return nil, err
	}
	return catalogs, nil
}

func (r *PGRepository) FindCatalogByID(ctx context.Context, companyID, id string) (*model.Catalog, error) {
	var c model.Catalog
	query := `SELECT * FROM catalogs WHERE id = $1 AND company_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, id, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindCatalogProduct(ctx context.Context, catalogID, productID string) (*model.CatalogProduct, error) {
	var cp model.CatalogProduct
	query := `SELECT * FROM catalog_products WHERE catalog_id = $1 AND product_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &cp, query, catalogID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cp, nil
}

func (r *PGRepository) FindCatalogProductByID(ctx context.Context, companyID, id string) (*model.CatalogProduct, error) {
	var cp model.CatalogProduct
	query := `
        SELECT cp.* FROM catalog_products cp
        JOIN catalogs c ON c.id = cp.catalog_id
        WHERE cp.id = $1 AND c.company_id = $2
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &cp, query, id, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cp, nil
}

func (r *PGRepository) FindCatalogProductsByProduct(ctx context.Context, companyID, productID string) ([]model.CatalogProduct, error) {
	rows := []model.CatalogProduct{}
	query := `
        SELECT cp.* FROM catalog_products cp
        JOIN catalogs c ON c.id = cp.catalog_id
        WHERE cp.product_id = $1 AND c.company_id = $2
    `
	if err := r.DB.SelectContext(ctx, &rows, query, productID, companyID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PGRepository) FindVariantPrices(ctx context.Context, catalogID, productID string) ([]model.VariantPrice, error) {
	prices := []model.VariantPrice{}
	query := `SELECT * FROM variant_prices WHERE catalog_id = $1 AND product_id = $2`
	if err := r.DB.SelectContext(ctx, &prices, query, catalogID, productID); err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *PGRepository) FindVariantPricesByProduct(ctx context.Context, companyID, productID string) ([]model.VariantPrice, error) {
	prices := []model.VariantPrice{}
	query := `
        SELECT vp.* FROM variant_prices vp
        JOIN catalogs c ON c.id = vp.catalog_id
        WHERE vp.product_id = $1 AND c.company_id = $2
    `
	if err := r.DB.SelectContext(ctx, &prices, query, productID, companyID); err != nil {
		return nil, err
	}
	return prices, nil
}

const upsertCatalogProduct = `
    INSERT INTO catalog_products (
        id, catalog_id, product_id, base_price, currency, sort_order,
        available, created_at, updated_at
    )
    VALUES (
        :id, :catalog_id, :product_id, :base_price, :currency, :sort_order,
        :available, :created_at, :updated_at
    )
    ON CONFLICT (catalog_id, product_id) DO UPDATE SET
        base_price = EXCLUDED.base_price,
        currency = EXCLUDED.currency,
        sort_order = EXCLUDED.sort_order,
        available = EXCLUDED.available,
        updated_at = EXCLUDED.updated_at
`

const upsertVariantPrice = `
    INSERT INTO variant_prices (catalog_id, product_id, variant_id, price, currency, updated_at)
    VALUES (:catalog_id, :product_id, :variant_id, :price, :currency, :updated_at)
    ON CONFLICT (catalog_id, product_id, variant_id) DO UPDATE SET
        price = EXCLUDED.price,
        currency = EXCLUDED.currency,
        updated_at = EXCLUDED.updated_at
`

func replaceVariantPricesTx(ctx context.Context, tx *sqlx.Tx, catalogID, productID string, prices []model.VariantPrice) error {
	if len(prices) == 0 {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM variant_prices WHERE catalog_id = $1 AND product_id = $2`,
			catalogID, productID)
		return err
	}

	keep := make([]string, len(prices))
	for i := range prices {
		keep[i] = prices[i].VariantID
	}
	query, args, err := sqlx.In(
		`DELETE FROM variant_prices WHERE catalog_id = ? AND product_id = ? AND variant_id NOT IN (?)`,
		catalogID, productID, keep,
	)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return err
	}

	for i := range prices {
		if _, err := tx.NamedExecContext(ctx, upsertVariantPrice, &prices[i]); err != nil {
			return err
		}
	}
	return nil
}

// Publish writes the catalog row and then its variant prices. Both writes
// share one transaction; should the second fail AND the rollback of the first
// fail too, the caller gets a partial publication error naming the applied
// stage.
func (r *PGRepository) Publish(ctx context.Context, cp *model.CatalogProduct, prices []model.VariantPrice) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.NamedExecContext(ctx, upsertCatalogProduct, cp); err != nil {
		tx.Rollback()
		return err
	}

	if err := replaceVariantPricesTx(ctx, tx, cp.CatalogID, cp.ProductID, prices); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return apperr.PartialPublication("catalog_products", err)
		}
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) ReplaceVariantPrices(ctx context.Context, catalogID, productID string, prices []model.VariantPrice) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceVariantPricesTx(ctx, tx, catalogID, productID, prices); err != nil {
		return err
	}

	// Per-variant pricing supersedes the base price for the pair.
	_, err = tx.ExecContext(ctx,
		`UPDATE catalog_products SET base_price = NULL, updated_at = $3 WHERE catalog_id = $1 AND product_id = $2`,
		catalogID, productID, time.Now())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) UpdateAvailability(ctx context.Context, id string, available bool) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE catalog_products SET available = $2, updated_at = $3 WHERE id = $1`,
		id, available, time.Now())
	return err
}
