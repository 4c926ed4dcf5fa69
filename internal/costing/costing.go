// Package costing owns the derived-value computations for the catalog:
// variation final prices, BOM line costs, material-cost roll-ups and the
// effective BOM of a variation. Everything here is a pure function; the
// surrounding usecases call it before or after a store write.
package costing

import (
	"sort"
	"strings"

	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/pkg/apperror"
)

// FinalPrice derives a variation's selling price from the parent
// product's price and the variation's signed adjustment.
func FinalPrice(productPrice, priceAdjustment float64) float64 {
	return productPrice + priceAdjustment
}

// LineCost derives quantity * unitCost for a BOM row. Negative factors
// are a validation failure, never clamped.
func LineCost(quantity, unitCost float64) (float64, error) {
	if quantity < 0 {
		return 0, apperror.Validation("ErrInvalidQuantity", "invalid quantity")
	}
	if unitCost < 0 {
		return 0, apperror.Validation("ErrInvalidCost", "invalid cost")
	}
	return quantity * unitCost, nil
}

// BOMLine is one entry of a variation's effective BOM after merging the
// product recipe with the variation's overrides.
type BOMLine struct {
	MaterialID    string  `json:"material_id"`
	Quantity      float64 `json:"quantity"`
	UnitCost      float64 `json:"unit_cost"`
	TotalCost     float64 `json:"total_cost"`
	FromVariation bool    `json:"from_variation"`
}

// AggregateMaterialCost sums total_cost over active items only.
// Soft-deleted rows stay in the slice but never in the total.
func AggregateMaterialCost(items []model.BOMItem) float64 {
	var total float64
	for _, it := range items {
		if !it.IsActive {
			continue
		}
		total += it.TotalCost
	}
	return total
}

// AggregateLineCost sums an effective BOM (which is already filtered to
// active rows by EffectiveBOM).
func AggregateLineCost(lines []BOMLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.TotalCost
	}
	return total
}

// ProfitMargin returns (price - materialCost) / price, or nil when the
// price is zero. Nil means "undefined", not an error.
func ProfitMargin(price, materialCost float64) *float64 {
	if price == 0 {
		return nil
	}
	m := (price - materialCost) / price
	return &m
}

// EffectiveBOM merges a product's BOM with one variation's overrides.
// The product items come first; an override replaces the product entry
// for the same material, and overrides for materials the product recipe
// does not mention are appended. Inactive rows on either side are
// skipped.
func EffectiveBOM(items []model.BOMItem, overrides []model.BOMVariation) []BOMLine {
	overrideByMaterial := make(map[string]model.BOMVariation, len(overrides))
	for _, ov := range overrides {
		if !ov.IsActive {
			continue
		}
		overrideByMaterial[ov.MaterialID] = ov
	}

	lines := make([]BOMLine, 0, len(items)+len(overrides))
	seen := make(map[string]bool, len(items))

	for _, it := range items {
		if !it.IsActive {
			continue
		}
		seen[it.MaterialID] = true
		if ov, ok := overrideByMaterial[it.MaterialID]; ok {
			lines = append(lines, BOMLine{
				MaterialID:    ov.MaterialID,
				Quantity:      ov.Quantity,
				UnitCost:      ov.UnitCost,
				TotalCost:     ov.TotalCost,
				FromVariation: true,
			})
			continue
		}
		lines = append(lines, BOMLine{
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
			UnitCost:   it.UnitCost,
			TotalCost:  it.TotalCost,
		})
	}

	for _, ov := range overrides {
		if !ov.IsActive || seen[ov.MaterialID] {
			continue
		}
		lines = append(lines, BOMLine{
			MaterialID:    ov.MaterialID,
			Quantity:      ov.Quantity,
			UnitCost:      ov.UnitCost,
			TotalCost:     ov.TotalCost,
			FromVariation: true,
		})
	}

	return lines
}

// CombinationSignature canonicalizes a variation's option set so two
// variations selecting the same options compare equal regardless of
// input order. Format: "typeID=optionID|typeID=optionID|...".
func CombinationSignature(combos []model.VariationCombination) string {
	pairs := make([]string, 0, len(combos))
	for _, c := range combos {
		pairs = append(pairs, c.VariationTypeID+"="+c.VariationOptionID)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}
