package quotes

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Simplici0/baogia/internal/money"
	"github.com/Simplici0/baogia/internal/pricing"
)

const (
	pdfMargin = 15.0
	pdfQRSize = 28.0
)

var dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

// FoldASCII strips Vietnamese diacritics so text renders with the PDF core fonts.
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, dStroke.Replace(s))
	if err != nil {
		return dStroke.Replace(s)
	}
	return out
}

// RenderPDF writes q as a one-page A4 quote sheet with a QR code of its ref.
func RenderPDF(w io.Writer, q Quote) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	cp := pdf.UnicodeTranslatorFromDescriptor("")
	txt := func(s string) string { return cp(FoldASCII(s)) }

	qrPNG, err := qrcode.Encode(q.Ref, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate quote qr code: %w", err)
	}
	pageW, _ := pdf.GetPageSize()
	imgName := "qr_" + q.Ref
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageW-pdfMargin-pdfQRSize, pdfMargin, pdfQRSize, pdfQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textW := pageW - 2*pdfMargin - pdfQRSize - 4

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(textW, 10, txt(fmt.Sprintf("Báo giá #%d", q.ID)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(textW, 5, txt("Mã: "+q.Ref), "", 1, "L", false, 0, "")
	pdf.CellFormat(textW, 5, txt("Ngày: "+q.CreatedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(textW, 5, txt("Loại: "+KindLabel(q.Kind)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	if q.Title != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(textW, 7, txt(q.Title), "", 1, "L", false, 0, "")
	}

	pdf.SetY(pdfMargin + pdfQRSize + 6)

	lines, err := paramLines(q)
	if err != nil {
		return err
	}
	if len(lines) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, txt("Thông số"), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, l := range lines {
			pdf.CellFormat(0, 6, txt(l), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	amountW := 45.0
	nameW := pageW - 2*pdfMargin - amountW

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(nameW, 8, txt("Hạng mục"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountW, 8, txt("Thành tiền"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range []pricing.CostItem{q.Breakdown.MaterialCost, q.Breakdown.HardwareCost, q.Breakdown.LaborCost} {
		label := item.Name
		if item.Details != "" {
			label += " (" + item.Details + ")"
		}
		pdf.CellFormat(nameW, 7, txt(label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(amountW, 7, money.VNDPlain(item.Value), "1", 1, "R", false, 0, "")
	}

	totals := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Tổng chi phí", q.Breakdown.TotalCost, false},
		{"Lợi nhuận", q.Breakdown.ProfitMargin, false},
		{"Giá bán", q.Breakdown.FinalPrice, true},
	}
	for _, t := range totals {
		style := ""
		if t.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(nameW, 7, txt(t.label), "1", 0, "R", false, 0, "")
		pdf.CellFormat(amountW, 7, money.VNDPlain(t.value), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write quote pdf: %w", err)
	}
	return nil
}
