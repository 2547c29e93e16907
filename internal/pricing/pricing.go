// Package pricing computes retail quotes for furniture and signage from product
// parameters. All functions are pure and never fail; missing or zero inputs
// simply price at zero.
package pricing

import "math"

// CostItem is one line of a breakdown.
type CostItem struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Details string  `json:"details,omitempty"`
}

// CostBreakdown is the full quote. TotalCost is the sum of the three lines,
// ProfitMargin the absolute profit amount and FinalPrice their sum.
type CostBreakdown struct {
	MaterialCost CostItem `json:"materialCost"`
	HardwareCost CostItem `json:"hardwareCost"`
	LaborCost    CostItem `json:"laborCost"`
	TotalCost    float64  `json:"totalCost"`
	ProfitMargin float64  `json:"profitMargin"`
	FinalPrice   float64  `json:"finalPrice"`
}

// Finite reports whether every amount of b is a finite number. Inputs large
// enough to overflow float64 produce breakdowns that cannot be shown or encoded.
func (b CostBreakdown) Finite() bool {
	for _, v := range []float64{
		b.MaterialCost.Value, b.HardwareCost.Value, b.LaborCost.Value,
		b.TotalCost, b.ProfitMargin, b.FinalPrice,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Line names shown on every breakdown.
const (
	materialLineName = "Chi phí vật tư"
	laborLineName    = "Chi phí nhân công"
)

// finish fills the roll-up fields from the three lines and a margin percentage.
func finish(material, hardware, labor CostItem, marginPercent float64) CostBreakdown {
	subtotal := material.Value + hardware.Value + labor.Value
	profit := subtotal * (marginPercent / 100.0)

	return CostBreakdown{
		MaterialCost: material,
		HardwareCost: hardware,
		LaborCost:    labor,
		TotalCost:    subtotal,
		ProfitMargin: profit,
		FinalPrice:   subtotal + profit,
	}
}
