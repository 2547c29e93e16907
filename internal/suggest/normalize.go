package suggest

import (
	"github.com/Simplici0/baogia/internal/catalog"
	"github.com/Simplici0/baogia/internal/pricing"
)

// Normalize merges a suggestion over prev. Name and dimensions are copied.
// Material and finish take the catalog price when the name is known and keep
// prev's price otherwise. Hardware is replaced wholesale and each line is priced
// from the catalog, unknown names at zero.
func Normalize(prev pricing.FurnitureParams, s FurnitureSuggestion, c catalog.Catalog) pricing.FurnitureParams {
	out := prev
	out.Name = s.ProductName
	out.Length = s.Dimensions.Length
	out.Width = s.Dimensions.Width
	out.Height = s.Dimensions.Height

	out.Material = s.Material
	if price, ok := c.Lookup(catalog.CategoryMaterials, s.Material); ok {
		out.MaterialPrice = price
	}
	out.Finish = s.Finish
	if price, ok := c.Lookup(catalog.CategoryFinishes, s.Finish); ok {
		out.FinishPrice = price
	}

	out.Hardware = make([]pricing.HardwareLine, 0, len(s.Hardware))
	for _, h := range s.Hardware {
		out.Hardware = append(out.Hardware, pricing.HardwareLine{
			Name:     h.Name,
			Quantity: h.Quantity,
			Price:    catalog.LookupPrice(c, catalog.CategoryHardware, h.Name),
		})
	}
	return out
}
