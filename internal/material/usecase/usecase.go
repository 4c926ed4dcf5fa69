package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/costing"
	"github.com/tokotrack/catalog-service/internal/material"
	"github.com/tokotrack/catalog-service/internal/material/dto"
	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/cache"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

// BOMStore is the slice of the BOM repository the material usecase
// needs: the rows referencing a material (for recosting) and the rows
// backing a variation's effective BOM (for sale consumption).
type BOMStore interface {
	FindItemsByMaterial(ctx context.Context, materialID string) ([]model.BOMItem, error)
	FindEntriesByMaterial(ctx context.Context, materialID string) ([]model.BOMVariation, error)
	FindItemsByProduct(ctx context.Context, productID string, activeOnly bool) ([]model.BOMItem, error)
	FindEntriesByVariation(ctx context.Context, variationID string, activeOnly bool) ([]model.BOMVariation, error)
	RecostForMaterial(ctx context.Context, items []model.BOMItem, entries []model.BOMVariation) error
}

// VariationReader resolves the sold variation when consuming stock.
type VariationReader interface {
	FindVariationByID(ctx context.Context, id string) (*model.ProductVariation, error)
}

// Locker is satisfied by *cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

var _ Locker = (*cache.RedisClient)(nil)

type materialUseCase struct {
	repo       material.Repository
	bom        BOMStore
	variations VariationReader
	locks      Locker
	logger     logger.ZapLogger
}

func NewMaterialUseCase(repo material.Repository, bom BOMStore, variations VariationReader, locks Locker, log logger.ZapLogger) material.UseCase {
	return &materialUseCase{
		repo:       repo,
		bom:        bom,
		variations: variations,
		locks:      locks,
		logger:     log,
	}
}

func (uc *materialUseCase) CreateMaterial(ctx context.Context, input *dto.CreateMaterialInput) (*model.Material, error) {
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}
	if input.UnitCost < 0 {
		return nil, apperror.Validation("ErrInvalidCost", "invalid cost")
	}
	if input.CurrentStock < 0 {
		return nil, apperror.Validation("ErrInvalidStock", "invalid stock")
	}

	now := time.Now()
	var sku *string
	if input.SKU != "" {
		sku = &input.SKU
	}
	var unitPrice *float64
	if input.UnitPrice > 0 {
		unitPrice = &input.UnitPrice
	}

	m := &model.Material{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ShopID:       input.ShopID,
		Name:         input.Name,
		SKU:          sku,
		Unit:         input.Unit,
		UnitCost:     input.UnitCost,
		UnitPrice:    unitPrice,
		CurrentStock: input.CurrentStock,
		MinStock:     input.MinStock,
		IsActive:     true,
	}

	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *materialUseCase) GetMaterial(ctx context.Context, id string) (*model.Material, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperror.NotFound("ErrMaterialNotFound", "material not found")
	}
	return m, nil
}

func (uc *materialUseCase) ListMaterials(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *materialUseCase) UpdateMaterial(ctx context.Context, input *dto.UpdateMaterialInput) (*model.Material, error) {
	m, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrMaterialNotFound", "material not found")
	}
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}

	// Unit cost deliberately excluded: it goes through UpdateUnitCost
	// so BOM rows get recosted.
	m.Name = input.Name
	if input.SKU != "" {
		sku := input.SKU
		m.SKU = &sku
	} else {
		m.SKU = nil
	}
	m.Unit = input.Unit
	if input.UnitPrice > 0 {
		up := input.UnitPrice
		m.UnitPrice = &up
	} else {
		m.UnitPrice = nil
	}
	m.MinStock = input.MinStock
	m.IsActive = input.IsActive
	m.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *materialUseCase) DeleteMaterial(ctx context.Context, id, shopID string) error {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil || m.ShopID != shopID {
		return apperror.NotFound("ErrMaterialNotFound", "material not found")
	}
	return uc.repo.SoftDelete(ctx, id, shopID)
}

// UpdateUnitCost writes the material's new unit cost and recomputes
// total_cost on every BOM row that references it, row by row.
func (uc *materialUseCase) UpdateUnitCost(ctx context.Context, input *dto.UpdateUnitCostInput) (*model.Material, error) {
	if input.UnitCost < 0 {
		return nil, apperror.Validation("ErrInvalidCost", "invalid cost")
	}

	m, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrMaterialNotFound", "material not found")
	}

	items, err := uc.bom.FindItemsByMaterial(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.bom.FindEntriesByMaterial(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range items {
		total, err := costing.LineCost(items[i].Quantity, input.UnitCost)
		if err != nil {
			return nil, err
		}
		items[i].UnitCost = input.UnitCost
		items[i].TotalCost = total
		items[i].UpdatedAt = now
	}
	for i := range entries {
		total, err := costing.LineCost(entries[i].Quantity, input.UnitCost)
		if err != nil {
			return nil, err
		}
		entries[i].UnitCost = input.UnitCost
		entries[i].TotalCost = total
		entries[i].UpdatedAt = now
	}

	m.UnitCost = input.UnitCost
	m.UpdatedAt = now
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	if err := uc.bom.RecostForMaterial(ctx, items, entries); err != nil {
		return nil, err
	}

	uc.logger.Info("recosted BOM rows for material",
		zap.String("material_id", m.ID),
		zap.Int("items", len(items)),
		zap.Int("entries", len(entries)),
	)
	return m, nil
}

func (uc *materialUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Material, error) {
	release, err := uc.lockMaterial(ctx, input.ShopID, input.MaterialID)
	if err != nil {
		return nil, err
	}
	defer release()

	return uc.adjustLocked(ctx, input)
}

// lockMaterial takes the per-material redis lock with a short retry
// loop, mirroring how concurrent order deductions are serialized.
func (uc *materialUseCase) lockMaterial(ctx context.Context, shopID, materialID string) (func(), error) {
	lockKey := fmt.Sprintf("lock:stock:%s:%s", shopID, materialID)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.locks.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, apperror.Conflict("ErrSystemBusy", "system busy, please try again later")
	}

	return func() { uc.locks.ReleaseLock(ctx, lockKey, lockValue) }, nil
}

func (uc *materialUseCase) adjustLocked(ctx context.Context, input *dto.AdjustStockInput) (*model.Material, error) {
	m, err := uc.repo.FindByID(ctx, input.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrMaterialNotFound", "material not found")
	}

	quantityBefore := m.CurrentStock
	m.CurrentStock += input.QuantityChange
	if m.CurrentStock < 0 {
		return nil, apperror.Validation("ErrInsufficientStock", "insufficient stock")
	}

	now := time.Now()
	m.UpdatedAt = now

	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		ShopID:         input.ShopID,
		SubjectType:    "material",
		SubjectID:      m.ID,
		QuantityChange: input.QuantityChange,
		QuantityBefore: quantityBefore,
		QuantityAfter:  m.CurrentStock,
		ReferenceType:  optional(input.ReferenceType),
		ReferenceID:    optional(input.ReferenceID),
		Notes:          input.Reason,
		CreatedBy:      optional(input.UserID),
		CreatedAt:      now,
	}

	if err := uc.repo.AdjustStockWithMovement(ctx, m, movement); err != nil {
		return nil, err
	}

	if m.CurrentStock <= m.MinStock {
		uc.logger.Warn("material at or below minimum stock",
			zap.String("material_id", m.ID),
			zap.Float64("current_stock", m.CurrentStock),
			zap.Float64("min_stock", m.MinStock),
		)
	}

	return m, nil
}

// ConsumeForSale deducts the sold variation's stock and every material
// in its effective BOM, scaled by the sold quantity. Each deduction is
// its own single-row write; the store gives no multi-row transaction,
// so a partial failure is logged and surfaced for the caller to retry.
func (uc *materialUseCase) ConsumeForSale(ctx context.Context, input *dto.ConsumeForSaleInput) error {
	if input.Quantity <= 0 {
		return apperror.Validation("ErrInvalidQuantity", "invalid quantity")
	}

	v, err := uc.variations.FindVariationByID(ctx, input.VariationID)
	if err != nil {
		return err
	}
	if v == nil {
		return apperror.NotFound("ErrVariationNotFound", "product variation not found")
	}

	// 1. Deduct variation stock
	before := v.StockQuantity
	v.StockQuantity -= input.Quantity
	if v.StockQuantity < 0 {
		return apperror.Validation("ErrInsufficientStock", "insufficient stock")
	}
	now := time.Now()
	v.UpdatedAt = now

	refType := "sale"
	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		ShopID:         input.ShopID,
		SubjectType:    "variation",
		SubjectID:      v.ID,
		QuantityChange: float64(-input.Quantity),
		QuantityBefore: float64(before),
		QuantityAfter:  float64(v.StockQuantity),
		ReferenceType:  &refType,
		ReferenceID:    optional(input.ReferenceID),
		Notes:          "Order Sale",
		CreatedBy:      optional(input.UserID),
		CreatedAt:      now,
	}
	if err := uc.repo.AdjustVariationStockWithMovement(ctx, v, movement); err != nil {
		return err
	}

	// 2. Deduct the consumed materials via the effective BOM
	items, err := uc.bom.FindItemsByProduct(ctx, v.ProductID, true)
	if err != nil {
		return err
	}
	entries, err := uc.bom.FindEntriesByVariation(ctx, v.ID, true)
	if err != nil {
		return err
	}

	for _, line := range costing.EffectiveBOM(items, entries) {
		_, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{
			MaterialID:     line.MaterialID,
			ShopID:         input.ShopID,
			QuantityChange: -line.Quantity * float64(input.Quantity),
			Reason:         "Order Consumption",
			ReferenceID:    input.ReferenceID,
			ReferenceType:  "sale",
			UserID:         input.UserID,
		})
		if err != nil {
			uc.logger.Error("failed to deduct material for sale",
				zap.String("variation_id", v.ID),
				zap.String("material_id", line.MaterialID),
				zap.Error(err),
			)
			return err
		}
	}

	return nil
}

func (uc *materialUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
