package pricing

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// StandardPanelWidth and StandardPanelHeight are the purchased sheet size in mm.
	StandardPanelWidth  = 1220.0
	StandardPanelHeight = 2440.0

	// PanelArea is one standard sheet in m².
	PanelArea = StandardPanelWidth * StandardPanelHeight / 1_000_000

	// WasteFactor inflates net surface to the board area that must be bought.
	WasteFactor = 1.8
)

// HardwareLine is one kind of fitting on a furniture piece.
type HardwareLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// FurnitureParams describes one engineered-wood product. Dimensions are in mm,
// material and finish prices per m², labor rate per hour and ProfitMargin a
// percentage.
type FurnitureParams struct {
	Name          string         `json:"name"`
	Length        float64        `json:"length"`
	Width         float64        `json:"width"`
	Height        float64        `json:"height"`
	Material      string         `json:"material"`
	MaterialPrice float64        `json:"materialPrice"`
	Finish        string         `json:"finish"`
	FinishPrice   float64        `json:"finishPrice"`
	Hardware      []HardwareLine `json:"hardware"`
	LaborHours    float64        `json:"laborHours"`
	LaborRate     float64        `json:"laborRate"`
	ProfitMargin  float64        `json:"profitMargin"`
}

// SurfaceArea approximates the product as a closed box and returns its
// exterior area in m² from dimensions in mm. Thickness and joinery are ignored.
func SurfaceArea(length, width, height float64) float64 {
	return 2 * (length*width + length*height + width*height) / 1_000_000
}

// PanelCount is the number of whole standard sheets needed for a net surface
// area in m², after the waste factor. The count is a whole float64 so that
// huge areas saturate to +Inf instead of wrapping.
func PanelCount(netArea float64) float64 {
	n := math.Ceil(netArea * WasteFactor / PanelArea)
	if n == 0 {
		return 0
	}
	return n
}

// Furniture prices a furniture piece. Board is billed on purchased sheets, the
// finish on net surface only.
func Furniture(p FurnitureParams) CostBreakdown {
	surface := SurfaceArea(p.Length, p.Width, p.Height)
	panels := PanelCount(surface)

	boardCost := panels * PanelArea * p.MaterialPrice
	finishCost := surface * p.FinishPrice

	material := CostItem{
		Name:    materialLineName,
		Value:   boardCost + finishCost,
		Details: fmt.Sprintf("%.0f tấm ván + %.2fm² bề mặt", panels, surface),
	}

	hardwareTotal := 0.0
	for _, h := range p.Hardware {
		hardwareTotal += h.Quantity * h.Price
	}
	hardware := CostItem{
		Name:    "Chi phí phụ kiện",
		Value:   hardwareTotal,
		Details: fmt.Sprintf("%d loại", len(p.Hardware)),
	}

	labor := CostItem{
		Name:    laborLineName,
		Value:   p.LaborHours * p.LaborRate,
		Details: strconv.FormatFloat(p.LaborHours, 'f', -1, 64) + " giờ",
	}

	return finish(material, hardware, labor, p.ProfitMargin)
}
