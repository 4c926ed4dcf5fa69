package bom

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/model"
)

type Repository interface {
	// Product-level BOM items
	CreateItem(ctx context.Context, item *model.BOMItem) error
	FindItemByID(ctx context.Context, id string) (*model.BOMItem, error)
	FindItemsByProduct(ctx context.Context, productID string, activeOnly bool) ([]model.BOMItem, error)
	FindItemsByMaterial(ctx context.Context, materialID string) ([]model.BOMItem, error)
	UpdateItem(ctx context.Context, item *model.BOMItem) error
	SoftDeleteItem(ctx context.Context, id string) error

	// Variation-level overrides
	CreateEntry(ctx context.Context, entry *model.BOMVariation) error
	FindEntryByID(ctx context.Context, id string) (*model.BOMVariation, error)
	FindEntriesByVariation(ctx context.Context, variationID string, activeOnly bool) ([]model.BOMVariation, error)
	FindEntriesByMaterial(ctx context.Context, materialID string) ([]model.BOMVariation, error)
	UpdateEntry(ctx context.Context, entry *model.BOMVariation) error
	SoftDeleteEntry(ctx context.Context, id string) error

	// RecostForMaterial batches the recomputed rows for one material's
	// unit-cost change into a single transaction.
	RecostForMaterial(ctx context.Context, items []model.BOMItem, entries []model.BOMVariation) error
}
