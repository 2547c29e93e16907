package pricing

import "github.com/Simplici0/baogia/internal/catalog"

// RepriceFurniture re-resolves every price of p by name from c. Names missing
// from the catalog price at zero, the same as a fresh selection would.
func RepriceFurniture(p FurnitureParams, c catalog.Catalog) FurnitureParams {
	out := p
	out.MaterialPrice = catalog.LookupPrice(c, catalog.CategoryMaterials, p.Material)
	out.FinishPrice = catalog.LookupPrice(c, catalog.CategoryFinishes, p.Finish)
	out.Hardware = make([]HardwareLine, len(p.Hardware))
	for i, h := range p.Hardware {
		h.Price = catalog.LookupPrice(c, catalog.CategoryHardware, h.Name)
		out.Hardware[i] = h
	}
	return out
}

// RepriceSignage resolves frame and face prices from c, keeping the given price
// for a name the catalog does not know.
func RepriceSignage(p SignageParams, c catalog.Catalog) SignageParams {
	out := p
	if price, ok := c.Lookup(catalog.CategoryFrames, p.FrameMaterial); ok {
		out.FramePrice = price
	}
	if price, ok := c.Lookup(catalog.CategoryFaces, p.FaceMaterial); ok {
		out.FacePrice = price
	}
	return out
}

// DefaultFurniture is the starting form: the first material, finish and hardware
// of c with the standard example dimensions and rates.
func DefaultFurniture(c catalog.Catalog) FurnitureParams {
	p := FurnitureParams{
		Length:       1200,
		Width:        600,
		Height:       800,
		LaborHours:   8,
		LaborRate:    50000,
		ProfitMargin: 25,
	}
	if it := c.Items(catalog.CategoryMaterials); len(it) > 0 {
		p.Material, p.MaterialPrice = it[0].Name, it[0].Price
	}
	if it := c.Items(catalog.CategoryFinishes); len(it) > 0 {
		p.Finish, p.FinishPrice = it[0].Name, it[0].Price
	}
	hw := HardwareLine{Name: "Bản lề", Quantity: 4}
	if it := c.Items(catalog.CategoryHardware); len(it) > 0 {
		hw.Name, hw.Price = it[0].Name, it[0].Price
	}
	p.Hardware = []HardwareLine{hw}
	return p
}

// DefaultSignage is the starting signage form.
func DefaultSignage(c catalog.Catalog) SignageParams {
	p := SignageParams{
		Name:          "Bảng hiệu công ty",
		Width:         3,
		Height:        1.2,
		SignType:      SignTypes[0],
		FrameMaterial: "Nhôm",
		FramePrice:    80000,
		FaceMaterial:  "Mica",
		FacePrice:     400000,
		Lighting:      true,
		LightingCost:  500000,
		LaborHours:    12,
		LaborRate:     60000,
		ProfitMargin:  30,
	}
	return RepriceSignage(p, c)
}
