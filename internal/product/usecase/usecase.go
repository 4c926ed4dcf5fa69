package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/costing"
	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/internal/product"
	"github.com/tokotrack/catalog-service/internal/product/dto"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/cache"
	"github.com/tokotrack/catalog-service/pkg/logger"
	"github.com/tokotrack/catalog-service/pkg/search"
)

const productIndex = "products"

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, apperror.Validation("ErrNameRequired", "name is required")
	}
	if input.Price < 0 {
		return nil, apperror.Validation("ErrInvalidPrice", "invalid price")
	}
	if input.StockQuantity < 0 {
		return nil, apperror.Validation("ErrInvalidStock", "invalid stock")
	}

	unique, err := uc.repo.IsSKUUnique(ctx, input.ShopID, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.Conflict("ErrSKUExists", "SKU already exists")
	}

	now := time.Now()

	costPrice := input.CostPrice
	categoryID := &input.CategoryID
	if input.CategoryID == "" {
		categoryID = nil
	}

	p := &model.Product{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ShopID:        input.ShopID,
		CategoryID:    categoryID,
		SKU:           input.SKU,
		Name:          input.Name,
		Description:   &input.Description,
		Price:         input.Price,
		CostPrice:     &costPrice,
		StockQuantity: input.StockQuantity,
		ImageURL:      &input.ImageURL,
		IsActive:      true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Invalidate Cache
	go uc.invalidateProductCache(context.Background(), input.ShopID)

	// Sync to Elastic
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"shop_id": { "type": "keyword" },
				"name": { "type": "text" },
				"description": { "type": "text" },
				"sku": { "type": "keyword" },
				"price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("ErrProductNotFound", "product not found")
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	// 1. Generate Cache Key
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		// 2. Check Cache
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				// Cache Hit
				return result.Products, result.Count, nil
			}
		}
	}

	// 3. Search via Elastic (if query present)
	if filters.SearchQuery != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						{
							"query_string": map[string]interface{}{
								"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
								"fields": []string{"name^3", "sku", "description"},
							},
						},
						{
							"term": map[string]interface{}{
								"shop_id": filters.ShopID,
							},
						},
					},
				},
			},
			"from": (filters.Page - 1) * filters.PageSize,
		}
		if filters.PageSize > 0 {
			q["size"] = filters.PageSize
		}

		res, err := uc.es.Search(ctx, productIndex, q)
		if err == nil {
			var esProducts []model.Product
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					esProducts = append(esProducts, p)
				}
			}
			return esProducts, res.Hits.Total.Value, nil
		}
		// If ES fails, fall through to DB
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	// 4. DB Query (Fallback or Standard List)
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	// 5. Set Cache
	if cacheKey != "" && uc.cache != nil {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{
			Products: products,
			Count:    count,
		}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%s:%x", filters.ShopID, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context, shopID string) {
	if uc.cache == nil {
		return
	}
	// Invalidate all list caches for this shop
	pattern := fmt.Sprintf("products:list:%s:*", shopID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrProductNotFound", "product not found")
	}
	if input.StockQuantity < 0 {
		return nil, apperror.Validation("ErrInvalidStock", "invalid stock")
	}

	if p.SKU != input.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, input.ShopID, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, apperror.Conflict("ErrSKUExists", "SKU already exists")
		}
	}

	// Update fields. Price deliberately excluded: it goes through
	// UpdatePrice so variation final prices stay consistent.
	p.SKU = input.SKU
	p.Name = input.Name
	p.Description = &input.Description
	cost := input.CostPrice
	p.CostPrice = &cost
	p.StockQuantity = input.StockQuantity
	p.ImageURL = &input.ImageURL
	p.IsActive = input.IsActive
	if input.CategoryID != "" {
		catID := input.CategoryID
		p.CategoryID = &catID
	} else {
		p.CategoryID = nil
	}

	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Invalidate Cache
	go uc.invalidateProductCache(context.Background(), p.ShopID)
	// Sync ES
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

// UpdatePrice changes the product price and recomputes the final price
// of every active variation before the change commits.
func (uc *productUseCase) UpdatePrice(ctx context.Context, input *dto.UpdatePriceInput) (*model.Product, error) {
	if input.Price < 0 {
		return nil, apperror.Validation("ErrInvalidPrice", "invalid price")
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ShopID != input.ShopID {
		return nil, apperror.NotFound("ErrProductNotFound", "product not found")
	}

	variations, err := uc.repo.FindActiveVariations(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p.Price = input.Price
	p.UpdatedAt = now
	for i := range variations {
		variations[i].FinalPrice = costing.FinalPrice(p.Price, variations[i].PriceAdjustment)
		variations[i].UpdatedAt = now
	}

	if err := uc.repo.UpdatePriceWithVariations(ctx, p, variations); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), p.ShopID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id, shopID string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || p.ShopID != shopID {
		return apperror.NotFound("ErrProductNotFound", "product not found")
	}

	// Soft delete only; historical cost and sales rows keep referencing the id
	if err := uc.repo.SoftDelete(ctx, id, shopID); err != nil {
		return err
	}

	go uc.invalidateProductCache(context.Background(), shopID)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}
