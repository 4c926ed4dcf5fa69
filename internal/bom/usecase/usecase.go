package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tokotrack/catalog-service/internal/bom"
	"github.com/tokotrack/catalog-service/internal/bom/dto"
	"github.com/tokotrack/catalog-service/internal/costing"
	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

// ProductReader resolves the parent product for validation and for the
// cost report's price/margin figures.
type ProductReader interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// VariationReader resolves variations when attaching overrides and when
// building the per-variation report section.
type VariationReader interface {
	FindVariationByID(ctx context.Context, id string) (*model.ProductVariation, error)
	FindVariationsByProduct(ctx context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error)
}

// MaterialReader resolves materials so a BOM row can snapshot the unit
// cost at creation time.
type MaterialReader interface {
	FindByID(ctx context.Context, id string) (*model.Material, error)
}

type bomUseCase struct {
	repo       bom.Repository
	products   ProductReader
	variations VariationReader
	materials  MaterialReader
	logger     logger.ZapLogger
}

func NewBOMUseCase(repo bom.Repository, products ProductReader, variations VariationReader, materials MaterialReader, log logger.ZapLogger) bom.UseCase {
	return &bomUseCase{
		repo:       repo,
		products:   products,
		variations: variations,
		materials:  materials,
		logger:     log,
	}
}

func (uc *bomUseCase) resolveMaterial(ctx context.Context, id string) (*model.Material, error) {
	m, err := uc.materials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsActive {
		return nil, apperror.NotFound("ErrMaterialNotFound", "material not found")
	}
	return m, nil
}

func (uc *bomUseCase) AddItem(ctx context.Context, input *dto.CreateBOMItemInput) (*model.BOMItem, error) {
	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrProductNotFound", "product not found")
	}

	m, err := uc.resolveMaterial(ctx, input.MaterialID)
	if err != nil {
		return nil, err
	}

	unitCost := m.UnitCost
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	}
	totalCost, err := costing.LineCost(input.Quantity, unitCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.BOMItem{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:  input.ProductID,
		MaterialID: input.MaterialID,
		Quantity:   input.Quantity,
		UnitCost:   unitCost,
		TotalCost:  totalCost,
		Notes:      &input.Notes,
		IsActive:   true,
	}

	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *bomUseCase) ListItems(ctx context.Context, productID string, activeOnly bool) ([]model.BOMItem, error) {
	return uc.repo.FindItemsByProduct(ctx, productID, activeOnly)
}

func (uc *bomUseCase) UpdateItem(ctx context.Context, input *dto.UpdateBOMItemInput) (*model.BOMItem, error) {
	item, err := uc.repo.FindItemByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("ErrBOMItemNotFound", "BOM item not found")
	}

	unitCost := item.UnitCost
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	}
	totalCost, err := costing.LineCost(input.Quantity, unitCost)
	if err != nil {
		return nil, err
	}

	item.Quantity = input.Quantity
	item.UnitCost = unitCost
	item.TotalCost = totalCost
	item.Notes = &input.Notes
	item.IsActive = input.IsActive
	item.UpdatedAt = time.Now()

	if err := uc.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *bomUseCase) RemoveItem(ctx context.Context, id string) error {
	item, err := uc.repo.FindItemByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NotFound("ErrBOMItemNotFound", "BOM item not found")
	}
	return uc.repo.SoftDeleteItem(ctx, id)
}

func (uc *bomUseCase) AddVariationEntry(ctx context.Context, input *dto.CreateBOMVariationInput) (*model.BOMVariation, error) {
	v, err := uc.variations.FindVariationByID(ctx, input.ProductVariationID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NotFound("ErrVariationNotFound", "product variation not found")
	}

	m, err := uc.resolveMaterial(ctx, input.MaterialID)
	if err != nil {
		return nil, err
	}

	unitCost := m.UnitCost
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	}
	totalCost, err := costing.LineCost(input.Quantity, unitCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &model.BOMVariation{
		BaseModel:          model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductVariationID: input.ProductVariationID,
		MaterialID:         input.MaterialID,
		Quantity:           input.Quantity,
		UnitCost:           unitCost,
		TotalCost:          totalCost,
		Notes:              &input.Notes,
		IsActive:           true,
	}

	if err := uc.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (uc *bomUseCase) ListVariationEntries(ctx context.Context, variationID string, activeOnly bool) ([]model.BOMVariation, error) {
	return uc.repo.FindEntriesByVariation(ctx, variationID, activeOnly)
}

func (uc *bomUseCase) UpdateVariationEntry(ctx context.Context, input *dto.UpdateBOMVariationInput) (*model.BOMVariation, error) {
	entry, err := uc.repo.FindEntryByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NotFound("ErrBOMVariationNotFound", "BOM variation entry not found")
	}

	unitCost := entry.UnitCost
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	}
	totalCost, err := costing.LineCost(input.Quantity, unitCost)
	if err != nil {
		return nil, err
	}

	entry.Quantity = input.Quantity
	entry.UnitCost = unitCost
	entry.TotalCost = totalCost
	entry.Notes = &input.Notes
	entry.IsActive = input.IsActive
	entry.UpdatedAt = time.Now()

	if err := uc.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (uc *bomUseCase) RemoveVariationEntry(ctx context.Context, id string) error {
	entry, err := uc.repo.FindEntryByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NotFound("ErrBOMVariationNotFound", "BOM variation entry not found")
	}
	return uc.repo.SoftDeleteEntry(ctx, id)
}

func (uc *bomUseCase) EffectiveBOM(ctx context.Context, variationID string) ([]costing.BOMLine, error) {
	v, err := uc.variations.FindVariationByID(ctx, variationID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NotFound("ErrVariationNotFound", "product variation not found")
	}

	items, err := uc.repo.FindItemsByProduct(ctx, v.ProductID, true)
	if err != nil {
		return nil, err
	}
	entries, err := uc.repo.FindEntriesByVariation(ctx, variationID, true)
	if err != nil {
		return nil, err
	}

	return costing.EffectiveBOM(items, entries), nil
}

func (uc *bomUseCase) CostReport(ctx context.Context, productID, shopID string) (*dto.CostReport, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ShopID != shopID {
		return nil, apperror.NotFound("ErrProductNotFound", "product not found")
	}

	items, err := uc.repo.FindItemsByProduct(ctx, productID, false)
	if err != nil {
		return nil, err
	}
	materialCost := costing.AggregateMaterialCost(items)

	report := &dto.CostReport{
		ProductID:    productID,
		Price:        p.Price,
		MaterialCost: materialCost,
		Margin:       costing.ProfitMargin(p.Price, materialCost),
	}

	variations, err := uc.variations.FindVariationsByProduct(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	for _, v := range variations {
		entries, err := uc.repo.FindEntriesByVariation(ctx, v.ID, true)
		if err != nil {
			return nil, err
		}
		lines := costing.EffectiveBOM(items, entries)
		cost := costing.AggregateLineCost(lines)
		report.Variations = append(report.Variations, dto.VariationCost{
			VariationID:  v.ID,
			Name:         v.Name,
			FinalPrice:   v.FinalPrice,
			MaterialCost: cost,
			Margin:       costing.ProfitMargin(v.FinalPrice, cost),
			Lines:        lines,
		})
	}

	return report, nil
}
