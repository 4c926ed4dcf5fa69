package product

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	SoftDelete(ctx context.Context, id, shopID string) error

	IsSKUUnique(ctx context.Context, shopID, sku, excludeID string) (bool, error)

	// Price-change support: the product row and every recomputed
	// variation final price commit in one transaction.
	FindActiveVariations(ctx context.Context, productID string) ([]model.ProductVariation, error)
	UpdatePriceWithVariations(ctx context.Context, product *model.Product, variations []model.ProductVariation) error
}
