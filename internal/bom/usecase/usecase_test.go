package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokotrack/catalog-service/internal/bom/dto"
	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

type fakeRepo struct {
	items   map[string]*model.BOMItem
	entries map[string]*model.BOMVariation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   map[string]*model.BOMItem{},
		entries: map[string]*model.BOMVariation{},
	}
}

func (f *fakeRepo) CreateItem(_ context.Context, item *model.BOMItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeRepo) FindItemByID(_ context.Context, id string) (*model.BOMItem, error) {
	if it, ok := f.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindItemsByProduct(_ context.Context, productID string, activeOnly bool) ([]model.BOMItem, error) {
	var out []model.BOMItem
	for _, it := range f.items {
		if it.ProductID != productID {
			continue
		}
		if activeOnly && !it.IsActive {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeRepo) FindItemsByMaterial(_ context.Context, materialID string) ([]model.BOMItem, error) {
	var out []model.BOMItem
	for _, it := range f.items {
		if it.MaterialID == materialID && it.IsActive {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateItem(_ context.Context, item *model.BOMItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeRepo) SoftDeleteItem(_ context.Context, id string) error {
	if it, ok := f.items[id]; ok {
		it.IsActive = false
	}
	return nil
}

func (f *fakeRepo) CreateEntry(_ context.Context, entry *model.BOMVariation) error {
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeRepo) FindEntryByID(_ context.Context, id string) (*model.BOMVariation, error) {
	if e, ok := f.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindEntriesByVariation(_ context.Context, variationID string, activeOnly bool) ([]model.BOMVariation, error) {
	var out []model.BOMVariation
	for _, e := range f.entries {
		if e.ProductVariationID != variationID {
			continue
		}
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepo) FindEntriesByMaterial(_ context.Context, materialID string) ([]model.BOMVariation, error) {
	var out []model.BOMVariation
	for _, e := range f.entries {
		if e.MaterialID == materialID && e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateEntry(_ context.Context, entry *model.BOMVariation) error {
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeRepo) SoftDeleteEntry(_ context.Context, id string) error {
	if e, ok := f.entries[id]; ok {
		e.IsActive = false
	}
	return nil
}

func (f *fakeRepo) RecostForMaterial(_ context.Context, items []model.BOMItem, entries []model.BOMVariation) error {
	for i := range items {
		cp := items[i]
		f.items[cp.ID] = &cp
	}
	for i := range entries {
		cp := entries[i]
		f.entries[cp.ID] = &cp
	}
	return nil
}

type fakeProducts struct{ products map[string]*model.Product }

func (f *fakeProducts) FindByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

type fakeVariations struct{ variations map[string]*model.ProductVariation }

func (f *fakeVariations) FindVariationByID(_ context.Context, id string) (*model.ProductVariation, error) {
	if v, ok := f.variations[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeVariations) FindVariationsByProduct(_ context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error) {
	var out []model.ProductVariation
	for _, v := range f.variations {
		if v.ProductID != productID {
			continue
		}
		if activeOnly && !v.IsActive {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

type fakeMaterials struct{ materials map[string]*model.Material }

func (f *fakeMaterials) FindByID(_ context.Context, id string) (*model.Material, error) {
	if m, ok := f.materials[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "json", DisableCaller: true, DisableStacktrace: true})
}

func fixtures() (*fakeRepo, *fakeProducts, *fakeVariations, *fakeMaterials) {
	repo := newFakeRepo()
	products := &fakeProducts{products: map[string]*model.Product{
		"p1": {BaseModel: model.BaseModel{ID: "p1"}, ShopID: "shop1", Price: 100000, IsActive: true},
	}}
	variations := &fakeVariations{variations: map[string]*model.ProductVariation{
		"v1": {BaseModel: model.BaseModel{ID: "v1"}, ProductID: "p1", Name: "Large", FinalPrice: 105000, IsActive: true},
	}}
	materials := &fakeMaterials{materials: map[string]*model.Material{
		"flour": {BaseModel: model.BaseModel{ID: "flour"}, ShopID: "shop1", UnitCost: 1500, IsActive: true},
		"sugar": {BaseModel: model.BaseModel{ID: "sugar"}, ShopID: "shop1", UnitCost: 20, IsActive: true},
	}}
	return repo, products, variations, materials
}

func TestAddItem_DerivesTotalCost(t *testing.T) {
	repo, products, variations, materials := fixtures()
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	item, err := uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID:  "p1",
		ShopID:     "shop1",
		MaterialID: "flour",
		Quantity:   3,
	})
	require.NoError(t, err)
	// unit cost snapshotted from the material
	assert.Equal(t, 1500.0, item.UnitCost)
	assert.Equal(t, 4500.0, item.TotalCost)
}

func TestAddItem_NegativeQuantityRejected(t *testing.T) {
	repo, products, variations, materials := fixtures()
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	_, err := uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID:  "p1",
		ShopID:     "shop1",
		MaterialID: "flour",
		Quantity:   -3,
	})
	require.Error(t, err)
	ae, _ := apperror.FromError(err)
	assert.Equal(t, "ErrInvalidQuantity", ae.Code)
	assert.Empty(t, repo.items, "nothing should be written on validation failure")
}

func TestAddItem_NegativeUnitCostRejected(t *testing.T) {
	repo, products, variations, materials := fixtures()
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	bad := -1.0
	_, err := uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID:  "p1",
		ShopID:     "shop1",
		MaterialID: "flour",
		Quantity:   1,
		UnitCost:   &bad,
	})
	require.Error(t, err)
	ae, _ := apperror.FromError(err)
	assert.Equal(t, "ErrInvalidCost", ae.Code)
}

func TestAddItem_UnknownMaterial(t *testing.T) {
	repo, products, variations, materials := fixtures()
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	_, err := uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID:  "p1",
		ShopID:     "shop1",
		MaterialID: "missing",
		Quantity:   1,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateItem_RecomputesTotalCost(t *testing.T) {
	repo, products, variations, materials := fixtures()
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	item, err := uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID: "p1", ShopID: "shop1", MaterialID: "flour", Quantity: 3,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateItem(context.Background(), &dto.UpdateBOMItemInput{
		ID:       item.ID,
		Quantity: 5,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7500.0, updated.TotalCost)
}

func TestEffectiveBOM_VariationOverrideWins(t *testing.T) {
	repo, products, variations, materials := fixtures()
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	_, err := uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID: "p1", ShopID: "shop1", MaterialID: "flour", Quantity: 2,
	})
	require.NoError(t, err)
	_, err = uc.AddVariationEntry(context.Background(), &dto.CreateBOMVariationInput{
		ProductVariationID: "v1",
		ShopID:             "shop1",
		MaterialID:         "flour",
		Quantity:           4,
	})
	require.NoError(t, err)

	lines, err := uc.EffectiveBOM(context.Background(), "v1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4.0, lines[0].Quantity)
	assert.True(t, lines[0].FromVariation)
}

func TestCostReport(t *testing.T) {
	repo, products, variations, materials := fixtures()
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	_, err := uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID: "p1", ShopID: "shop1", MaterialID: "flour", Quantity: 10,
	})
	require.NoError(t, err)

	report, err := uc.CostReport(context.Background(), "p1", "shop1")
	require.NoError(t, err)
	assert.Equal(t, 15000.0, report.MaterialCost)
	require.NotNil(t, report.Margin)
	assert.InDelta(t, 0.85, *report.Margin, 1e-9)
	require.Len(t, report.Variations, 1)
	assert.Equal(t, 15000.0, report.Variations[0].MaterialCost)
}

func TestCostReport_ZeroPriceMarginUndefined(t *testing.T) {
	repo, products, variations, materials := fixtures()
	products.products["p1"].Price = 0
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	report, err := uc.CostReport(context.Background(), "p1", "shop1")
	require.NoError(t, err)
	assert.Nil(t, report.Margin)
}

func TestRemoveItem_ExcludedFromRollUp(t *testing.T) {
	repo, products, variations, materials := fixtures()
	uc := NewBOMUseCase(repo, products, variations, materials, testLogger())

	item, err := uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID: "p1", ShopID: "shop1", MaterialID: "flour", Quantity: 10,
	})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), &dto.CreateBOMItemInput{
		ProductID: "p1", ShopID: "shop1", MaterialID: "sugar", Quantity: 5,
	})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveItem(context.Background(), item.ID))

	report, err := uc.CostReport(context.Background(), "p1", "shop1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.MaterialCost)
}
