package pricing

import "fmt"

// SignTypes are the sign styles offered for signage quotes.
var SignTypes = []string{"Hộp đèn", "Chữ nổi", "Bảng Alu", "Bảng LED"}

// SignageParams describes one sign. Width and height are in meters, the frame
// is priced per linear meter of perimeter and the face per m². LightingCost is
// a flat total added only when Lighting is set.
type SignageParams struct {
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	SignType      string  `json:"signType"`
	FrameMaterial string  `json:"frameMaterial"`
	FramePrice    float64 `json:"framePrice"`
	FaceMaterial  string  `json:"faceMaterial"`
	FacePrice     float64 `json:"facePrice"`
	Lighting      bool    `json:"lighting"`
	LightingCost  float64 `json:"lightingCost"`
	LaborHours    float64 `json:"laborHours"`
	LaborRate     float64 `json:"laborRate"`
	ProfitMargin  float64 `json:"profitMargin"`
}

// Signage prices a sign. Signage has no hardware model; its hardware line is
// always zero.
func Signage(p SignageParams) CostBreakdown {
	area := p.Width * p.Height
	perimeter := 2 * (p.Width + p.Height)

	lighting := 0.0
	if p.Lighting {
		lighting = p.LightingCost
	}

	material := CostItem{
		Name:    materialLineName,
		Value:   area*p.FacePrice + perimeter*p.FramePrice + lighting,
		Details: fmt.Sprintf("Mặt: %.2fm², Khung: %.2fm", area, perimeter),
	}
	hardware := CostItem{Name: "Phụ kiện", Value: 0, Details: "Chưa tính"}
	labor := CostItem{
		Name:    laborLineName,
		Value:   p.LaborHours * p.LaborRate,
		Details: "Thi công & lắp đặt",
	}

	return finish(material, hardware, labor, p.ProfitMargin)
}
