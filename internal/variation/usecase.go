package variation

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/internal/variation/dto"
)

type UseCase interface {
	CreateVariationType(ctx context.Context, input *dto.CreateVariationTypeInput) (*model.VariationType, error)
	ListVariationTypes(ctx context.Context, ownerID string) ([]model.VariationType, error)
	UpdateVariationType(ctx context.Context, input *dto.UpdateVariationTypeInput) (*model.VariationType, error)

	CreateVariationOption(ctx context.Context, input *dto.CreateVariationOptionInput) (*model.VariationOption, error)
	ListVariationOptions(ctx context.Context, typeID string) ([]model.VariationOption, error)

	// ComposeVariation creates a ProductVariation together with its
	// combination set, validating the option set first.
	ComposeVariation(ctx context.Context, input *dto.ComposeVariationInput) (*model.ProductVariation, error)
	GetVariation(ctx context.Context, id string) (*model.ProductVariation, error)
	ListVariations(ctx context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error)
	UpdateVariation(ctx context.Context, input *dto.UpdateVariationInput) (*model.ProductVariation, error)
	DeleteVariation(ctx context.Context, id string) error
}
