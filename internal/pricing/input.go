package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a float that decodes leniently from user input: JSON numbers and
// numeric strings keep their value, true is 1, and anything else (null, false,
// text, objects, non-finite values) becomes 0.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = 0
	b = bytes.TrimSpace(b)

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = finite(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s = strings.TrimSpace(s); s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = finite(f)
		}
		return nil
	}

	var t bool
	if err := json.Unmarshal(b, &t); err == nil && t {
		*n = 1
	}
	return nil
}

func finite(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Number(f)
}

// HardwareInput is the lenient wire form of HardwareLine.
type HardwareInput struct {
	Name     string `json:"name"`
	Quantity Number `json:"quantity"`
	Price    Number `json:"price"`
}

// FurnitureInput is the lenient wire form of FurnitureParams.
type FurnitureInput struct {
	Name          string          `json:"name"`
	Length        Number          `json:"length"`
	Width         Number          `json:"width"`
	Height        Number          `json:"height"`
	Material      string          `json:"material"`
	MaterialPrice Number          `json:"materialPrice"`
	Finish        string          `json:"finish"`
	FinishPrice   Number          `json:"finishPrice"`
	Hardware      []HardwareInput `json:"hardware"`
	LaborHours    Number          `json:"laborHours"`
	LaborRate     Number          `json:"laborRate"`
	ProfitMargin  Number          `json:"profitMargin"`
}

// Params converts the input to engine parameters.
func (in FurnitureInput) Params() FurnitureParams {
	hw := make([]HardwareLine, 0, len(in.Hardware))
	for _, h := range in.Hardware {
		hw = append(hw, HardwareLine{Name: h.Name, Quantity: float64(h.Quantity), Price: float64(h.Price)})
	}
	return FurnitureParams{
		Name:          in.Name,
		Length:        float64(in.Length),
		Width:         float64(in.Width),
		Height:        float64(in.Height),
		Material:      in.Material,
		MaterialPrice: float64(in.MaterialPrice),
		Finish:        in.Finish,
		FinishPrice:   float64(in.FinishPrice),
		Hardware:      hw,
		LaborHours:    float64(in.LaborHours),
		LaborRate:     float64(in.LaborRate),
		ProfitMargin:  float64(in.ProfitMargin),
	}
}

// SignageInput is the lenient wire form of SignageParams.
type SignageInput struct {
	Name          string `json:"name"`
	Width         Number `json:"width"`
	Height        Number `json:"height"`
	SignType      string `json:"signType"`
	FrameMaterial string `json:"frameMaterial"`
	FramePrice    Number `json:"framePrice"`
	FaceMaterial  string `json:"faceMaterial"`
	FacePrice     Number `json:"facePrice"`
	Lighting      bool   `json:"lighting"`
	LightingCost  Number `json:"lightingCost"`
	LaborHours    Number `json:"laborHours"`
	LaborRate     Number `json:"laborRate"`
	ProfitMargin  Number `json:"profitMargin"`
}

// Params converts the input to engine parameters.
func (in SignageInput) Params() SignageParams {
	return SignageParams{
		Name:          in.Name,
		Width:         float64(in.Width),
		Height:        float64(in.Height),
		SignType:      in.SignType,
		FrameMaterial: in.FrameMaterial,
		FramePrice:    float64(in.FramePrice),
		FaceMaterial:  in.FaceMaterial,
		FacePrice:     float64(in.FacePrice),
		Lighting:      in.Lighting,
		LightingCost:  float64(in.LightingCost),
		LaborHours:    float64(in.LaborHours),
		LaborRate:     float64(in.LaborRate),
		ProfitMargin:  float64(in.ProfitMargin),
	}
}
