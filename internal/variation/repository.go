package variation

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/model"
)

type Repository interface {
	// Variation types and options (admin axis data)
	CreateType(ctx context.Context, t *model.VariationType) error
	FindTypeByID(ctx context.Context, id string) (*model.VariationType, error)
	FindTypes(ctx context.Context, ownerID string) ([]model.VariationType, error)
	UpdateType(ctx context.Context, t *model.VariationType) error

	CreateOption(ctx context.Context, o *model.VariationOption) error
	FindOptionsByIDs(ctx context.Context, ids []string) ([]model.VariationOption, error)
	FindOptionsByType(ctx context.Context, typeID string) ([]model.VariationOption, error)
	UpdateOption(ctx context.Context, o *model.VariationOption) error

	// Product variations. Create persists the variation and its
	// combination rows together.
	CreateVariationWithCombinations(ctx context.Context, v *model.ProductVariation, combos []model.VariationCombination) error
	FindVariationByID(ctx context.Context, id string) (*model.ProductVariation, error)
	FindVariationsByProduct(ctx context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error)
	FindCombinations(ctx context.Context, variationID string) ([]model.VariationCombination, error)
	UpdateVariation(ctx context.Context, v *model.ProductVariation) error
	SoftDeleteVariation(ctx context.Context, id string) error
}
