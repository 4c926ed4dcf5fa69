package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/internal/variation/dto"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

// --- in-memory fakes ---

type fakeRepo struct {
	types      map[string]*model.VariationType
	options    map[string]*model.VariationOption
	variations map[string]*model.ProductVariation
	combos     map[string][]model.VariationCombination // by variation id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		types:      map[string]*model.VariationType{},
		options:    map[string]*model.VariationOption{},
		variations: map[string]*model.ProductVariation{},
		combos:     map[string][]model.VariationCombination{},
	}
}

func (f *fakeRepo) CreateType(_ context.Context, t *model.VariationType) error {
	cp := *t
	f.types[t.ID] = &cp
	return nil
}

func (f *fakeRepo) FindTypeByID(_ context.Context, id string) (*model.VariationType, error) {
	if t, ok := f.types[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindTypes(_ context.Context, ownerID string) ([]model.VariationType, error) {
	var out []model.VariationType
	for _, t := range f.types {
		if t.OwnerID == ownerID || t.OwnerID == model.SystemOwner {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateType(_ context.Context, t *model.VariationType) error {
	cp := *t
	f.types[t.ID] = &cp
	return nil
}

func (f *fakeRepo) CreateOption(_ context.Context, o *model.VariationOption) error {
	cp := *o
	f.options[o.ID] = &cp
	return nil
}

func (f *fakeRepo) FindOptionsByIDs(_ context.Context, ids []string) ([]model.VariationOption, error) {
	var out []model.VariationOption
	for _, id := range ids {
		if o, ok := f.options[id]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindOptionsByType(_ context.Context, typeID string) ([]model.VariationOption, error) {
	var out []model.VariationOption
	for _, o := range f.options {
		if o.VariationTypeID == typeID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateOption(_ context.Context, o *model.VariationOption) error {
	cp := *o
	f.options[o.ID] = &cp
	return nil
}

func (f *fakeRepo) CreateVariationWithCombinations(_ context.Context, v *model.ProductVariation, combos []model.VariationCombination) error {
	cp := *v
	f.variations[v.ID] = &cp
	f.combos[v.ID] = append([]model.VariationCombination{}, combos...)
	return nil
}

func (f *fakeRepo) FindVariationByID(_ context.Context, id string) (*model.ProductVariation, error) {
	if v, ok := f.variations[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindVariationsByProduct(_ context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error) {
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

func (f *fakeRepo) FindCombinations(_ context.Context, variationID string) ([]model.VariationCombination, error) {
	return append([]model.VariationCombination{}, f.combos[variationID]...), nil
}

func (f *fakeRepo) UpdateVariation(_ context.Context, v *model.ProductVariation) error {
	cp := *v
	f.variations[v.ID] = &cp
	return nil
}

func (f *fakeRepo) SoftDeleteVariation(_ context.Context, id string) error {
	if v, ok := f.variations[id]; ok {
		v.IsActive = false
	}
	return nil
}

type fakeProducts struct {
	products map[string]*model.Product
}

func (f *fakeProducts) FindByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// --- fixtures ---

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "json", DisableCaller: true, DisableStacktrace: true})
}

func seed(repo *fakeRepo, products *fakeProducts) {
	products.products["p1"] = &model.Product{
		BaseModel: model.BaseModel{ID: "p1"},
		ShopID:    "shop1",
		Name:      "Kopi Susu",
		Price:     100000,
		IsActive:  true,
	}

	repo.types["size"] = &model.VariationType{BaseModel: model.BaseModel{ID: "size"}, OwnerID: "user1", Name: "Size"}
	repo.types["temp"] = &model.VariationType{BaseModel: model.BaseModel{ID: "temp"}, OwnerID: "user1", Name: "Temperature"}

	repo.options["large"] = &model.VariationOption{BaseModel: model.BaseModel{ID: "large"}, VariationTypeID: "size", Name: "Large"}
	repo.options["small"] = &model.VariationOption{BaseModel: model.BaseModel{ID: "small"}, VariationTypeID: "size", Name: "Small"}
	repo.options["hot"] = &model.VariationOption{BaseModel: model.BaseModel{ID: "hot"}, VariationTypeID: "temp", Name: "Hot"}
	repo.options["iced"] = &model.VariationOption{BaseModel: model.BaseModel{ID: "iced"}, VariationTypeID: "temp", Name: "Iced"}
}

func composeInput(options ...string) *dto.ComposeVariationInput {
	return &dto.ComposeVariationInput{
		ProductID:       "p1",
		ShopID:          "shop1",
		Name:            "Large Iced",
		PriceAdjustment: 5000,
		StockQuantity:   10,
		OptionIDs:       options,
	}
}

// --- tests ---

func TestComposeVariation_Success(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	uc := NewVariationUseCase(repo, products, testLogger())

	v, err := uc.ComposeVariation(context.Background(), composeInput("large", "iced"))
	require.NoError(t, err)

	assert.Equal(t, 105000.0, v.FinalPrice)
	assert.True(t, v.IsActive)
	require.Len(t, v.Combinations, 2)
	for _, c := range v.Combinations {
		assert.Equal(t, v.ID, c.ProductVariationID)
	}
}

func TestComposeVariation_UnknownOption(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	uc := NewVariationUseCase(repo, products, testLogger())

	_, err := uc.ComposeVariation(context.Background(), composeInput("large", "nope"))
	require.Error(t, err)
	ae, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "ErrInvalidCombination", ae.Code)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
}

func TestComposeVariation_TwoOptionsSameAxis(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	uc := NewVariationUseCase(repo, products, testLogger())

	_, err := uc.ComposeVariation(context.Background(), composeInput("large", "small"))
	require.Error(t, err)
	ae, _ := apperror.FromError(err)
	assert.Equal(t, "ErrInvalidCombination", ae.Code)
}

func TestComposeVariation_DuplicateOptionSet(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	uc := NewVariationUseCase(repo, products, testLogger())

	_, err := uc.ComposeVariation(context.Background(), composeInput("large", "iced"))
	require.NoError(t, err)

	// same set in a different order is still a duplicate
	_, err = uc.ComposeVariation(context.Background(), composeInput("iced", "large"))
	require.Error(t, err)
	ae, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "ErrDuplicateVariation", ae.Code)
	assert.Equal(t, apperror.KindConflict, ae.Kind)
}

func TestComposeVariation_SoftDeletedSetCanBeReused(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	uc := NewVariationUseCase(repo, products, testLogger())

	v, err := uc.ComposeVariation(context.Background(), composeInput("large", "iced"))
	require.NoError(t, err)
	require.NoError(t, uc.DeleteVariation(context.Background(), v.ID))

	// only active variations count toward the duplicate check
	_, err = uc.ComposeVariation(context.Background(), composeInput("large", "iced"))
	assert.NoError(t, err)
}

func TestComposeVariation_NegativeStock(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	uc := NewVariationUseCase(repo, products, testLogger())

	input := composeInput("large", "iced")
	input.StockQuantity = -1
	_, err := uc.ComposeVariation(context.Background(), input)
	require.Error(t, err)
	ae, _ := apperror.FromError(err)
	assert.Equal(t, "ErrInvalidStock", ae.Code)
}

func TestComposeVariation_ProductNotFound(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	uc := NewVariationUseCase(repo, products, testLogger())

	input := composeInput("large")
	input.ProductID = "missing"
	_, err := uc.ComposeVariation(context.Background(), input)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateVariation_RederivesFinalPrice(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	uc := NewVariationUseCase(repo, products, testLogger())

	v, err := uc.ComposeVariation(context.Background(), composeInput("large", "iced"))
	require.NoError(t, err)

	// product price changed upstream
	products.products["p1"].Price = 120000

	updated, err := uc.UpdateVariation(context.Background(), &dto.UpdateVariationInput{
		ID:              v.ID,
		ShopID:          "shop1",
		Name:            v.Name,
		PriceAdjustment: 5000,
		StockQuantity:   10,
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, 125000.0, updated.FinalPrice)
}

func TestUpdateVariationType_SystemPresetReadOnly(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	repo.types["preset"] = &model.VariationType{BaseModel: model.BaseModel{ID: "preset"}, OwnerID: model.SystemOwner, Name: "Size"}
	uc := NewVariationUseCase(repo, products, testLogger())

	_, err := uc.UpdateVariationType(context.Background(), &dto.UpdateVariationTypeInput{
		ID:      "preset",
		OwnerID: "user1",
		Name:    "Renamed",
	})
	require.Error(t, err)
	ae, _ := apperror.FromError(err)
	assert.Equal(t, "ErrPresetReadOnly", ae.Code)
}

func TestListVariationTypes_IncludesSystemPresets(t *testing.T) {
	repo, products := newFakeRepo(), &fakeProducts{products: map[string]*model.Product{}}
	seed(repo, products)
	repo.types["preset"] = &model.VariationType{BaseModel: model.BaseModel{ID: "preset"}, OwnerID: model.SystemOwner, Name: "Color"}
	uc := NewVariationUseCase(repo, products, testLogger())

	types, err := uc.ListVariationTypes(context.Background(), "user1")
	require.NoError(t, err)
	assert.Len(t, types, 3)
}
