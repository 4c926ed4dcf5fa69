package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/internal/product/dto"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

type fakeRepo struct {
	products   map[string]*model.Product
	variations map[string]*model.ProductVariation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:   map[string]*model.Product{},
		variations: map[string]*model.ProductVariation{},
	}
}

func (f *fakeRepo) Create(_ context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindAll(_ context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.ShopID != filters.ShopID {
			continue
		}
		if filters.IsActive != nil && p.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id, shopID string) error {
	if p, ok := f.products[id]; ok && p.ShopID == shopID {
		p.IsActive = false
	}
	return nil
}

func (f *fakeRepo) IsSKUUnique(_ context.Context, shopID, sku, excludeID string) (bool, error) {
	for _, p := range f.products {
		if p.ShopID == shopID && p.SKU == sku && p.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeRepo) FindActiveVariations(_ context.Context, productID string) ([]model.ProductVariation, error) {
	var out []model.ProductVariation
	for _, v := range f.variations {
		if v.ProductID == productID && v.IsActive {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdatePriceWithVariations(_ context.Context, p *model.Product, variations []model.ProductVariation) error {
	cp := *p
	f.products[p.ID] = &cp
	for i := range variations {
		vcp := variations[i]
		f.variations[vcp.ID] = &vcp
	}
	return nil
}

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "json", DisableCaller: true, DisableStacktrace: true})
}

func seedProduct(repo *fakeRepo, id string, price float64) {
	repo.products[id] = &model.Product{
		BaseModel: model.BaseModel{ID: id},
		ShopID:    "shop1",
		SKU:       "SKU-" + id,
		Name:      id,
		Price:     price,
		IsActive:  true,
	}
}

func TestCreateProduct_RejectsDuplicateSKU(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", 100000)
	uc := NewProductUseCase(repo, nil, nil, testLogger())

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		ShopID: "shop1",
		SKU:    "SKU-p1",
		Name:   "Kopi Susu",
		Price:  100000,
	})
	require.Error(t, err)
	ae, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindConflict, ae.Kind)
	assert.Equal(t, "ErrSKUExists", ae.Code)
}

func TestCreateProduct_RejectsNegativePrice(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), nil, nil, testLogger())

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		ShopID: "shop1",
		SKU:    "SKU-1",
		Name:   "Kopi Susu",
		Price:  -1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpdatePrice_RecomputesVariationFinalPrices(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", 100000)
	repo.variations["v1"] = &model.ProductVariation{
		BaseModel:       model.BaseModel{ID: "v1"},
		ProductID:       "p1",
		Name:            "Large",
		PriceAdjustment: 5000,
		FinalPrice:      105000,
		IsActive:        true,
	}
	repo.variations["v2"] = &model.ProductVariation{
		BaseModel:       model.BaseModel{ID: "v2"},
		ProductID:       "p1",
		Name:            "Small",
		PriceAdjustment: -2000,
		FinalPrice:      98000,
		IsActive:        true,
	}
	// Soft-deleted variation must keep its stale final price.
	repo.variations["v3"] = &model.ProductVariation{
		BaseModel:       model.BaseModel{ID: "v3"},
		ProductID:       "p1",
		Name:            "Old",
		PriceAdjustment: 1000,
		FinalPrice:      101000,
		IsActive:        false,
	}
	uc := NewProductUseCase(repo, nil, nil, testLogger())

	p, err := uc.UpdatePrice(context.Background(), &dto.UpdatePriceInput{
		ID: "p1", ShopID: "shop1", Price: 120000,
	})
	require.NoError(t, err)
	assert.Equal(t, 120000.0, p.Price)

	assert.Equal(t, 125000.0, repo.variations["v1"].FinalPrice)
	assert.Equal(t, 118000.0, repo.variations["v2"].FinalPrice)
	assert.Equal(t, 101000.0, repo.variations["v3"].FinalPrice)
}

func TestUpdatePrice_RejectsNegative(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", 100000)
	uc := NewProductUseCase(repo, nil, nil, testLogger())

	_, err := uc.UpdatePrice(context.Background(), &dto.UpdatePriceInput{
		ID: "p1", ShopID: "shop1", Price: -500,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, 100000.0, repo.products["p1"].Price)
}

func TestUpdatePrice_WrongShop(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", 100000)
	uc := NewProductUseCase(repo, nil, nil, testLogger())

	_, err := uc.UpdatePrice(context.Background(), &dto.UpdatePriceInput{
		ID: "p1", ShopID: "shop2", Price: 120000,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteProduct_SoftDeletes(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo, "p1", 100000)
	uc := NewProductUseCase(repo, nil, nil, testLogger())

	err := uc.DeleteProduct(context.Background(), "p1", "shop1")
	require.NoError(t, err)
	// the row survives as inactive
	require.Contains(t, repo.products, "p1")
	assert.False(t, repo.products["p1"].IsActive)
}
