package suggest

import (
	"strings"
	"text/template"

	"github.com/Simplici0/baogia/internal/catalog"
)

var furniturePrompt = template.Must(template.New("furniture").Parse(`Dựa trên mô tả sản phẩm nội thất gỗ công nghiệp sau, hãy trả về một đối tượng JSON gợi ý vật liệu, kích thước và phụ kiện.
Mô tả: "{{.Description}}"

Chỉ chọn vật tư trong danh sách có sẵn:
- Vật liệu ván (material): {{.Materials}}
- Bề mặt hoàn thiện (finish): {{.Finishes}}
- Phụ kiện (hardware): {{.Hardware}}

Chỉ trả về JSON hợp lệ, không kèm giải thích. Kích thước tính bằng milimét (mm).
Dùng đúng cấu trúc sau, không thêm trường nào khác:
{
  "productName": "Tên sản phẩm (ví dụ: Tủ bếp dưới)",
  "material": "Một giá trị trong danh sách vật liệu ván",
  "finish": "Một giá trị trong danh sách bề mặt hoàn thiện",
  "dimensions": {"length": 1200, "width": 600, "height": 800},
  "hardware": [
    {"name": "Một giá trị trong danh sách phụ kiện", "quantity": 4}
  ]
}
`))

// FurniturePrompt builds the generation prompt for description, listing the
// names available in c.
func FurniturePrompt(description string, c catalog.Catalog) string {
	var b strings.Builder
	// The template is static and all fields are strings, so Execute cannot fail.
	_ = furniturePrompt.Execute(&b, struct {
		Description string
		Materials   string
		Finishes    string
		Hardware    string
	}{
		Description: strings.TrimSpace(description),
		Materials:   strings.Join(c.Names(catalog.CategoryMaterials), ", "),
		Finishes:    strings.Join(c.Names(catalog.CategoryFinishes), ", "),
		Hardware:    strings.Join(c.Names(catalog.CategoryHardware), ", "),
	})
	return b.String()
}
