package category

import (
	"context"

	"github.com/tokotrack/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, cat *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, shopID string, activeOnly bool) ([]model.Category, error)
	Update(ctx context.Context, cat *model.Category) error
	SoftDelete(ctx context.Context, id, shopID string) error
}
