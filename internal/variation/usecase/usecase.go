package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/costing"
	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/internal/variation"
	"github.com/tokotrack/catalog-service/internal/variation/dto"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

// ProductReader is the slice of the product repository the composer
// needs: the parent's current price and shop scope.
type ProductReader interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

type variationUseCase struct {
	repo     variation.Repository
	products ProductReader
	logger   logger.ZapLogger
}

func NewVariationUseCase(repo variation.Repository, products ProductReader, log logger.ZapLogger) variation.UseCase {
	return &variationUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

// --- Axis administration ---

func (uc *variationUseCase) CreateVariationType(ctx context.Context, input *dto.CreateVariationTypeInput) (*model.VariationType, error) {
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}

	now := time.Now()
	t := &model.VariationType{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: &input.Description,
	}

	if err := uc.repo.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *variationUseCase) ListVariationTypes(ctx context.Context, ownerID string) ([]model.VariationType, error) {
	return uc.repo.FindTypes(ctx, ownerID)
}

func (uc *variationUseCase) UpdateVariationType(ctx context.Context, input *dto.UpdateVariationTypeInput) (*model.VariationType, error) {
	t, err := uc.repo.FindTypeByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.NotFound("ErrVariationTypeNotFound", "variation type not found")
	}
	// Shared presets are readable by everyone, writable by no one
	if t.OwnerID == model.SystemOwner || t.OwnerID != input.OwnerID {
		return nil, apperror.Validation("ErrPresetReadOnly", "system presets cannot be modified")
	}
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}

	t.Name = input.Name
	t.Description = &input.Description
	t.UpdatedAt = time.Now()

	if err := uc.repo.UpdateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *variationUseCase) CreateVariationOption(ctx context.Context, input *dto.CreateVariationOptionInput) (*model.VariationOption, error) {
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}

	t, err := uc.repo.FindTypeByID(ctx, input.VariationTypeID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.NotFound("ErrVariationTypeNotFound", "variation type not found")
	}
	if t.OwnerID == model.SystemOwner || t.OwnerID != input.OwnerID {
		return nil, apperror.Validation("ErrPresetReadOnly", "system presets cannot be modified")
	}

	now := time.Now()
	o := &model.VariationOption{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		VariationTypeID: input.VariationTypeID,
		Name:            input.Name,
		Description:     &input.Description,
	}

	if err := uc.repo.CreateOption(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *variationUseCase) ListVariationOptions(ctx context.Context, typeID string) ([]model.VariationOption, error) {
	t, err := uc.repo.FindTypeByID(ctx, typeID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.NotFound("ErrVariationTypeNotFound", "variation type not found")
	}
	return uc.repo.FindOptionsByType(ctx, typeID)
}

// --- Composer ---

// ComposeVariation validates the selected option set and creates the
// variation plus one combination row per option, all before any write:
//  1. every option id must resolve
//  2. no two options may share an axis
//  3. the option set must not duplicate an existing active variation
func (uc *variationUseCase) ComposeVariation(ctx context.Context, input *dto.ComposeVariationInput) (*model.ProductVariation, error) {
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}
	if input.StockQuantity < 0 {
		return nil, apperror.Validation("ErrInvalidStock", "invalid stock")
	}

	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrProductNotFound", "product not found")
	}

	// 1. Resolve every selected option
	options, err := uc.repo.FindOptionsByIDs(ctx, input.OptionIDs)
	if err != nil {
		return nil, err
	}
	if len(options) != len(input.OptionIDs) {
		return nil, apperror.Validation("ErrInvalidCombination", "invalid combination")
	}

	// 2. At most one option per axis
	seenAxis := make(map[string]bool, len(options))
	for _, o := range options {
		if seenAxis[o.VariationTypeID] {
			return nil, apperror.Validation("ErrInvalidCombination", "invalid combination")
		}
		seenAxis[o.VariationTypeID] = true
	}

	variationID := uuid.New().String()
	combos := make([]model.VariationCombination, 0, len(options))
	for _, o := range options {
		combos = append(combos, model.VariationCombination{
			ID:                 uuid.New().String(),
			ProductVariationID: variationID,
			VariationTypeID:    o.VariationTypeID,
			VariationOptionID:  o.ID,
		})
	}

	// 3. No duplicate option set among the product's active variations
	signature := costing.CombinationSignature(combos)
	existing, err := uc.repo.FindVariationsByProduct(ctx, p.ID, true)
	if err != nil {
		return nil, err
	}
	for _, ex := range existing {
		exCombos, err := uc.repo.FindCombinations(ctx, ex.ID)
		if err != nil {
			return nil, err
		}
		if costing.CombinationSignature(exCombos) == signature {
			return nil, apperror.Conflict("ErrDuplicateVariation", "duplicate variation")
		}
	}

	now := time.Now()
	var sku *string
	if input.SKU != "" {
		sku = &input.SKU
	}
	v := &model.ProductVariation{
		BaseModel:       model.BaseModel{ID: variationID, CreatedAt: now, UpdatedAt: now},
		ProductID:       p.ID,
		Name:            input.Name,
		SKU:             sku,
		PriceAdjustment: input.PriceAdjustment,
		FinalPrice:      costing.FinalPrice(p.Price, input.PriceAdjustment),
		StockQuantity:   input.StockQuantity,
		IsActive:        true,
	}

	if err := uc.repo.CreateVariationWithCombinations(ctx, v, combos); err != nil {
		return nil, err
	}

	v.Combinations = combos
	uc.logger.Info("composed product variation",
		zap.String("product_id", p.ID),
		zap.String("variation_id", v.ID),
		zap.Int("options", len(combos)),
	)
	return v, nil
}

func (uc *variationUseCase) GetVariation(ctx context.Context, id string) (*model.ProductVariation, error) {
	v, err := uc.repo.FindVariationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NotFound("ErrVariationNotFound", "product variation not found")
	}

	combos, err := uc.repo.FindCombinations(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.Combinations = combos
	return v, nil
}

func (uc *variationUseCase) ListVariations(ctx context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error) {
	variations, err := uc.repo.FindVariationsByProduct(ctx, productID, activeOnly)
	if err != nil {
		return nil, err
	}
	for i := range variations {
		combos, err := uc.repo.FindCombinations(ctx, variations[i].ID)
		if err != nil {
			return nil, err
		}
		variations[i].Combinations = combos
	}
	return variations, nil
}

func (uc *variationUseCase) UpdateVariation(ctx context.Context, input *dto.UpdateVariationInput) (*model.ProductVariation, error) {
	if input.StockQuantity < 0 {
		return nil, apperror.Validation("ErrInvalidStock", "invalid stock")
	}

	v, err := uc.repo.FindVariationByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NotFound("ErrVariationNotFound", "product variation not found")
	}

	p, err := uc.products.FindByID(ctx, v.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrProductNotFound", "product not found")
	}

	v.Name = input.Name
	if input.SKU != "" {
		sku := input.SKU
		v.SKU = &sku
	} else {
		v.SKU = nil
	}
	v.PriceAdjustment = input.PriceAdjustment
	// Adjustment may have changed, so re-derive against the current price
	v.FinalPrice = costing.FinalPrice(p.Price, input.PriceAdjustment)
	v.StockQuantity = input.StockQuantity
	v.IsActive = input.IsActive
	v.UpdatedAt = time.Now()

	if err := uc.repo.UpdateVariation(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *variationUseCase) DeleteVariation(ctx context.Context, id string) error {
	v, err := uc.repo.FindVariationByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return apperror.NotFound("ErrVariationNotFound", "product variation not found")
	}
	return uc.repo.SoftDeleteVariation(ctx, id)
}
