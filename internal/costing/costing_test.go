package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/pkg/apperror"
)

func TestFinalPrice(t *testing.T) {
	assert.Equal(t, 105000.0, FinalPrice(100000, 5000))
	assert.Equal(t, 95000.0, FinalPrice(100000, -5000))

	// price change on the parent recomputes against the same adjustment
	assert.Equal(t, 125000.0, FinalPrice(120000, 5000))
}

func TestLineCost(t *testing.T) {
	got, err := LineCost(3, 1500)
	require.NoError(t, err)
	assert.Equal(t, 4500.0, got)

	got, err = LineCost(0, 1500)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestLineCost_NegativeQuantity(t *testing.T) {
	_, err := LineCost(-1, 1500)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	ae, _ := apperror.FromError(err)
	assert.Equal(t, "ErrInvalidQuantity", ae.Code)
}

func TestLineCost_NegativeCost(t *testing.T) {
	_, err := LineCost(2, -10)
	require.Error(t, err)
	ae, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "ErrInvalidCost", ae.Code)
}

func TestAggregateMaterialCost_SkipsInactive(t *testing.T) {
	items := []model.BOMItem{
		{TotalCost: 10, IsActive: true},
		{TotalCost: 5, IsActive: false},
	}
	assert.Equal(t, 10.0, AggregateMaterialCost(items))
}

func TestAggregateMaterialCost_Empty(t *testing.T) {
	assert.Equal(t, 0.0, AggregateMaterialCost(nil))
}

func TestProfitMargin(t *testing.T) {
	m := ProfitMargin(100, 40)
	require.NotNil(t, m)
	assert.InDelta(t, 0.6, *m, 1e-9)
}

func TestProfitMargin_ZeroPrice(t *testing.T) {
	assert.Nil(t, ProfitMargin(0, 40))
}

func TestEffectiveBOM_OverrideWins(t *testing.T) {
	items := []model.BOMItem{
		{MaterialID: "flour", Quantity: 200, UnitCost: 10, TotalCost: 2000, IsActive: true},
		{MaterialID: "sugar", Quantity: 50, UnitCost: 20, TotalCost: 1000, IsActive: true},
	}
	overrides := []model.BOMVariation{
		{MaterialID: "flour", Quantity: 300, UnitCost: 10, TotalCost: 3000, IsActive: true},
	}

	lines := EffectiveBOM(items, overrides)
	require.Len(t, lines, 2)

	byMat := map[string]BOMLine{}
	for _, l := range lines {
		byMat[l.MaterialID] = l
	}
	assert.Equal(t, 3000.0, byMat["flour"].TotalCost)
	assert.True(t, byMat["flour"].FromVariation)
	assert.Equal(t, 1000.0, byMat["sugar"].TotalCost)
	assert.False(t, byMat["sugar"].FromVariation)

	assert.Equal(t, 4000.0, AggregateLineCost(lines))
}

func TestEffectiveBOM_ExtendsWithNewMaterials(t *testing.T) {
	items := []model.BOMItem{
		{MaterialID: "flour", Quantity: 200, UnitCost: 10, TotalCost: 2000, IsActive: true},
	}
	overrides := []model.BOMVariation{
		{MaterialID: "chocolate", Quantity: 30, UnitCost: 100, TotalCost: 3000, IsActive: true},
	}

	lines := EffectiveBOM(items, overrides)
	require.Len(t, lines, 2)
	assert.Equal(t, 5000.0, AggregateLineCost(lines))
}

func TestEffectiveBOM_SkipsInactiveOnBothSides(t *testing.T) {
	items := []model.BOMItem{
		{MaterialID: "flour", TotalCost: 2000, IsActive: false},
		{MaterialID: "sugar", TotalCost: 1000, IsActive: true},
	}
	overrides := []model.BOMVariation{
		{MaterialID: "sugar", TotalCost: 500, IsActive: false},
	}

	lines := EffectiveBOM(items, overrides)
	require.Len(t, lines, 1)
	// inactive override does not shadow the product entry
	assert.Equal(t, "sugar", lines[0].MaterialID)
	assert.Equal(t, 1000.0, lines[0].TotalCost)
}

func TestCombinationSignature_OrderIndependent(t *testing.T) {
	a := []model.VariationCombination{
		{VariationTypeID: "size", VariationOptionID: "large"},
		{VariationTypeID: "color", VariationOptionID: "red"},
	}
	b := []model.VariationCombination{
		{VariationTypeID: "color", VariationOptionID: "red"},
		{VariationTypeID: "size", VariationOptionID: "large"},
	}
	assert.Equal(t, CombinationSignature(a), CombinationSignature(b))
}

func TestCombinationSignature_DistinguishesOptionSets(t *testing.T) {
	a := []model.VariationCombination{
		{VariationTypeID: "size", VariationOptionID: "large"},
	}
	b := []model.VariationCombination{
		{VariationTypeID: "size", VariationOptionID: "small"},
	}
	assert.NotEqual(t, CombinationSignature(a), CombinationSignature(b))
}
