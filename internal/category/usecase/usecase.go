package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tokotrack/catalog-service/internal/category"
	"github.com/tokotrack/catalog-service/internal/category/dto"
	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}

	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ShopID != input.ShopID {
			return nil, apperror.NotFound("ErrCategoryNotFound", "parent category not found")
		}
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ShopID:      input.ShopID,
		ParentID:    input.ParentID,
		Name:        input.Name,
		Description: &input.Description,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("ErrCategoryNotFound", "category not found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, shopID string, activeOnly bool) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, shopID, activeOnly)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrCategoryNotFound", "category not found")
	}
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}

	cat.ParentID = input.ParentID
	cat.Name = input.Name
	cat.Description = &input.Description
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id, shopID string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil || cat.ShopID != shopID {
		return apperror.NotFound("ErrCategoryNotFound", "category not found")
	}
	return uc.repo.SoftDelete(ctx, id, shopID)
}
