package product

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	UpdatePrice(ctx context.Context, input *dto.UpdatePriceInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id, shopID string) error
}
