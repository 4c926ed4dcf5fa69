package bom

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/bom/dto"
	"github.com/tokotrack/catalog-service/internal/costing"
	"github.com/tokotrack/catalog-service/internal/model"
)

type UseCase interface {
	AddItem(ctx context.Context, input *dto.CreateBOMItemInput) (*model.BOMItem, error)
	ListItems(ctx context.Context, productID string, activeOnly bool) ([]model.BOMItem, error)
	UpdateItem(ctx context.Context, input *dto.UpdateBOMItemInput) (*model.BOMItem, error)
	RemoveItem(ctx context.Context, id string) error

	AddVariationEntry(ctx context.Context, input *dto.CreateBOMVariationInput) (*model.BOMVariation, error)
	ListVariationEntries(ctx context.Context, variationID string, activeOnly bool) ([]model.BOMVariation, error)
	UpdateVariationEntry(ctx context.Context, input *dto.UpdateBOMVariationInput) (*model.BOMVariation, error)
	RemoveVariationEntry(ctx context.Context, id string) error

	// EffectiveBOM merges the product recipe with one variation's
	// overrides (variation entry wins per material).
	EffectiveBOM(ctx context.Context, variationID string) ([]costing.BOMLine, error)

	// CostReport rolls material cost up to the product and each of its
	// active variations, with profit margins.
	CostReport(ctx context.Context, productID, shopID string) (*dto.CostReport, error)
}
