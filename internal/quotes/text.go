package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Simplici0/baogia/internal/money"
	"github.com/Simplici0/baogia/internal/pricing"
)

// KindLabel is the customer-facing name of k.
func KindLabel(k Kind) string {
	switch k {
	case KindFurniture:
		return "Nội thất"
	case KindSignage:
		return "Bảng hiệu"
	}
	return string(k)
}

// RenderText writes a plain text summary of q.
func RenderText(w io.Writer, q Quote) error {
	var b strings.Builder
	format := money.VND

	fmt.Fprintf(&b, "Báo giá #%d\n", q.ID)
	fmt.Fprintf(&b, "Mã: %s\n", q.Ref)
	fmt.Fprintf(&b, "Ngày: %s\n", q.CreatedAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Loại: %s\n", KindLabel(q.Kind))
	if q.Title != "" {
		fmt.Fprintf(&b, "Sản phẩm: %s\n", q.Title)
	}

	lines, err := paramLines(q)
	if err != nil {
		return err
	}
	if len(lines) > 0 {
		b.WriteString("\nThông số:\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}

	b.WriteString("\nChi phí:\n")
	for _, item := range []pricing.CostItem{q.Breakdown.MaterialCost, q.Breakdown.HardwareCost, q.Breakdown.LaborCost} {
		fmt.Fprintf(&b, "- %s: %s", item.Name, format(item.Value))
		if item.Details != "" {
			fmt.Fprintf(&b, " (%s)", item.Details)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nTổng chi phí: %s\n", format(q.Breakdown.TotalCost))
	fmt.Fprintf(&b, "Lợi nhuận: %s\n", format(q.Breakdown.ProfitMargin))
	fmt.Fprintf(&b, "Giá bán: %s\n", format(q.Breakdown.FinalPrice))

	_, err = io.WriteString(w, b.String())
	return err
}

// paramLines describes the saved parameters, one fact per line.
func paramLines(q Quote) ([]string, error) {
	if len(q.Params) == 0 {
		return nil, nil
	}
	switch q.Kind {
	case KindFurniture:
		var p pricing.FurnitureParams
		if err := json.Unmarshal(q.Params, &p); err != nil {
			return nil, fmt.Errorf("decode furniture params: %w", err)
		}
		lines := []string{
			fmt.Sprintf("Kích thước: %s x %s x %s mm", num(p.Length), num(p.Width), num(p.Height)),
			fmt.Sprintf("Vật liệu: %s", p.Material),
			fmt.Sprintf("Bề mặt: %s", p.Finish),
		}
		for _, h := range p.Hardware {
			lines = append(lines, fmt.Sprintf("Phụ kiện: %s x %s", h.Name, num(h.Quantity)))
		}
		lines = append(lines,
			fmt.Sprintf("Nhân công: %s giờ", num(p.LaborHours)),
			fmt.Sprintf("Lợi nhuận: %s%%", num(p.ProfitMargin)))
		return lines, nil
	case KindSignage:
		var p pricing.SignageParams
		if err := json.Unmarshal(q.Params, &p); err != nil {
			return nil, fmt.Errorf("decode signage params: %w", err)
		}
		lighting := "Không"
		if p.Lighting {
			lighting = "Có"
		}
		return []string{
			fmt.Sprintf("Kích thước: %s x %s m", num(p.Width), num(p.Height)),
			fmt.Sprintf("Loại bảng: %s", p.SignType),
			fmt.Sprintf("Khung: %s", p.FrameMaterial),
			fmt.Sprintf("Mặt: %s", p.FaceMaterial),
			fmt.Sprintf("Đèn: %s", lighting),
			fmt.Sprintf("Nhân công: %s giờ", num(p.LaborHours)),
			fmt.Sprintf("Lợi nhuận: %s%%", num(p.ProfitMargin)),
		}, nil
	}
	return nil, nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
