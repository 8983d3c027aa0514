package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pymerp/gastro-catalog/internal/apperr"
	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/pymerp/gastro-catalog/internal/publication"
	"github.com/pymerp/gastro-catalog/internal/publication/dto"
	"go.uber.org/zap"
)

type publicationUseCase struct {
	repo     publication.Repository
	products publication.ProductSource
	logger   *zap.Logger
}

func NewPublicationUseCase(repo publication.Repository, products publication.ProductSource, log *zap.Logger) publication.UseCase {
	return &publicationUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func (uc *publicationUseCase) CreateCatalog(ctx context.Context, input *dto.CreateCatalogInput) (*model.Catalog, error) {
	var issues []apperr.FieldIssue
	if strings.TrimSpace(input.Name) == "" {
		issues = append(issues, apperr.FieldIssue{Field: "name", Issue: "required"})
	}
	if input.BusinessUnitID == "" {
		issues = append(issues, apperr.FieldIssue{Field: "businessUnitId", Issue: "required"})
	}
	if len(issues) > 0 {
		return nil, apperr.Validation("invalid catalog", issues...)
	}

	now := time.Now()
	c := &model.Catalog{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CompanyID:      input.CompanyID,
		BusinessUnitID: input.BusinessUnitID,
		SalesChannelID: input.SalesChannelID,
		OrderModeID:    input.OrderModeID,
		Name:           input.Name,
		IsActive:       true,
	}
	if err := uc.repo.CreateCatalog(ctx, c); err != nil {
		return nil, errors.Wrap(err, "create catalog")
	}
	return c, nil
}

func (uc *publicationUseCase) ListCatalogs(ctx context.Context, companyID string) ([]model.Catalog, error) {
	return uc.repo.FindCatalogs(ctx, companyID)
}

func (uc *publicationUseCase) GetPublicationState(ctx context.Context, companyID, productID string) ([]dto.CatalogProductStateResponse, error) {
	p, err := uc.products.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}

	variants, err := uc.products.FindVariantsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	variantNames := make(map[string]string, len(variants))
	for _, v := range variants {
		variantNames[v.ID] = v.Name
	}

	catalogs, err := uc.repo.FindCatalogs(ctx, companyID)
	if err != nil {
		return nil, err
	}
	published, err := uc.repo.FindCatalogProductsByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	prices, err := uc.repo.FindVariantPricesByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}

	byCatalog := make(map[string]*model.CatalogProduct, len(published))
	for i := range published {
		byCatalog[published[i].CatalogID] = &published[i]
	}
	pricesByCatalog := make(map[string][]model.VariantPrice)
	for _, vp := range prices {
		pricesByCatalog[vp.CatalogID] = append(pricesByCatalog[vp.CatalogID], vp)
	}

	rows := make([]dto.CatalogProductStateResponse, 0, len(catalogs))
	for _, c := range catalogs {
		row := dto.CatalogProductStateResponse{
			CatalogID:      c.ID,
			CatalogName:    c.Name,
			BusinessUnitID: c.BusinessUnitID,
			VariantPrices:  []dto.VariantPriceItemResponse{},
		}

		cp, ok := byCatalog[c.ID]
		if !ok {
			rows = append(rows, row)
			continue
		}

		catalogPrices := pricesByCatalog[c.ID]
		row.CatalogProductID = &cp.ID
		row.Published = true
		row.BasePrice = cp.BasePrice
		row.Currency = cp.Currency
		row.SortOrder = cp.SortOrder
		row.Available = cp.Available
		row.Status = publication.RowStatus(cp, catalogPrices, p.ProductKind, variants)
		for _, vp := range catalogPrices {
			row.VariantPrices = append(row.VariantPrices, dto.VariantPriceItemResponse{
				VariantID:   vp.VariantID,
				VariantName: variantNames[vp.VariantID],
				Price:       vp.Price,
				Currency:    vp.Currency,
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (uc *publicationUseCase) Publish(ctx context.Context, input *dto.PublishInput) (*model.CatalogProduct, error) {
	p, err := uc.products.FindByID(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product")
	}

	catalog, err := uc.repo.FindCatalogByID(ctx, input.CompanyID, input.CatalogID)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, apperr.NotFound("catalog")
	}

	variants, err := uc.products.FindVariantsByProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	variantIDs := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		variantIDs[v.ID] = struct{}{}
	}

	row := publication.PriceRow{
		BasePrice:     input.BasePrice,
		Currency:      input.Currency,
		VariantPrices: make(map[string]float64, len(input.VariantPrices)),
	}
	for _, vp := range input.VariantPrices {
		if _, ok := variantIDs[vp.VariantID]; !ok {
			return nil, apperr.Validation(
				"variant does not belong to the product",
				apperr.FieldIssue{Field: "variantPrices", Issue: "unknown_variant"},
			)
		}
		row.VariantPrices[vp.VariantID] = vp.Price
	}
	if vErr := publication.ValidateRow(row, p.ProductKind, variants); vErr != nil {
		return nil, vErr
	}

	now := time.Now()
	available := true
	if input.Available != nil {
		available = *input.Available
	}

	cp := &model.CatalogProduct{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CatalogID: input.CatalogID,
		ProductID: input.ProductID,
		BasePrice: input.BasePrice,
		Currency:  input.Currency,
		SortOrder: input.SortOrder,
		Available: available,
	}
	if existing, err := uc.repo.FindCatalogProduct(ctx, input.CatalogID, input.ProductID); err != nil {
		return nil, err
	} else if existing != nil {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	}

	// On the base path any non-positive entries count as not entered and the
	// pair's stored variant prices are cleared.
	var prices []model.VariantPrice
	if row.HasVariantPrices(variants) {
		prices = make([]model.VariantPrice, 0, len(input.VariantPrices))
		for _, vp := range input.VariantPrices {
			prices = append(prices, model.VariantPrice{
				CatalogID: input.CatalogID,
				ProductID: input.ProductID,
				VariantID: vp.VariantID,
				Price:     vp.Price,
				Currency:  input.Currency,
				UpdatedAt: now,
			})
		}
	}

	if err := uc.repo.Publish(ctx, cp, prices); err != nil {
		if apperr.IsKind(err, apperr.KindPartialPublication) {
			uc.logger.Error("publication partially applied",
				zap.String("catalog_id", input.CatalogID),
				zap.String("product_id", input.ProductID),
				zap.Error(err),
			)
			return nil, err
		}
		return nil, errors.Wrap(err, "publish catalog product")
	}

	uc.logger.Info("product published",
		zap.String("catalog_id", input.CatalogID),
		zap.String("product_id", input.ProductID),
		zap.Int("variant_prices", len(prices)),
	)
	return cp, nil
}

func (uc *publicationUseCase) SetAvailability(ctx context.Context, companyID, catalogProductID string, available bool) (*model.CatalogProduct, error) {
	cp, err := uc.repo.FindCatalogProductByID(ctx, companyID, catalogProductID)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, apperr.Precondition("product is not published in this catalog yet")
	}

	if err := uc.repo.UpdateAvailability(ctx, cp.ID, available); err != nil {
		return nil, errors.Wrap(err, "update availability")
	}
	cp.Available = available
	return cp, nil
}

func (uc *publicationUseCase) BulkUpsertVariantPrices(ctx context.Context, input *dto.VariantPriceBulkInput) error {
	p, err := uc.products.FindByID(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product")
	}
	catalog, err := uc.repo.FindCatalogByID(ctx, input.CompanyID, input.CatalogID)
	if err != nil {
		return err
	}
	if catalog == nil {
		return apperr.NotFound("catalog")
	}
	cp, err := uc.repo.FindCatalogProduct(ctx, input.CatalogID, input.ProductID)
	if err != nil {
		return err
	}
	if cp == nil {
		return apperr.Precondition("product is not published in this catalog yet")
	}

	if len(input.Prices) == 0 {
		return apperr.Validation("prices must not be empty", apperr.FieldIssue{Field: "prices", Issue: "required"})
	}

	variants, err := uc.products.FindVariantsByProduct(ctx, input.ProductID)
	if err != nil {
		return err
	}

	row := publication.PriceRow{
		Currency:      input.Currency,
		VariantPrices: make(map[string]float64, len(input.Prices)),
	}
	variantIDs := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		variantIDs[v.ID] = struct{}{}
	}
	for _, vp := range input.Prices {
		if _, ok := variantIDs[vp.VariantID]; !ok {
			return apperr.Validation(
				"variant does not belong to the product",
				apperr.FieldIssue{Field: "prices", Issue: "unknown_variant"},
			)
		}
		row.VariantPrices[vp.VariantID] = vp.Price
	}
	if vErr := publication.ValidateRow(row, p.ProductKind, variants); vErr != nil {
		return vErr
	}

	now := time.Now()
	prices := make([]model.VariantPrice, 0, len(input.Prices))
	for _, vp := range input.Prices {
		prices = append(prices, model.VariantPrice{
			CatalogID: input.CatalogID,
			ProductID: input.ProductID,
			VariantID: vp.VariantID,
			Price:     vp.Price,
			Currency:  input.Currency,
			UpdatedAt: now,
		})
	}

	return uc.repo.ReplaceVariantPrices(ctx, input.CatalogID, input.ProductID, prices)
}
