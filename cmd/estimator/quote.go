package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simplici0/baogia/internal/catalog"
	"github.com/Simplici0/baogia/internal/money"
	"github.com/Simplici0/baogia/internal/pricing"
)

var errOutOfRange = errors.New("quote amounts are out of range")

func newQuoteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Tính báo giá",
	}
	cmd.AddCommand(newFurnitureQuoteCmd(a), newSignageQuoteCmd(a))
	return cmd
}

func newFurnitureQuoteCmd(a *app) *cobra.Command {
	var (
		p        pricing.FurnitureParams
		hardware []string
		resolve  bool
	)
	cmd := &cobra.Command{
		Use:   "furniture",
		Short: "Báo giá nội thất",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseHardware(hardware)
			if err != nil {
				return err
			}
			p.Hardware = lines

			if resolve {
				c, err := a.fetch(cmd.Context())
				if err != nil {
					return err
				}
				p = pricing.RepriceFurniture(p, c)
			}
			return printBreakdown(cmd.OutOrStdout(), p.Name, pricing.Furniture(p))
		},
	}

	d := pricing.DefaultFurniture(catalog.Catalog{})
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "product name")
	f.Float64Var(&p.Length, "length", d.Length, "length in mm")
	f.Float64Var(&p.Width, "width", d.Width, "width in mm")
	f.Float64Var(&p.Height, "height", d.Height, "height in mm")
	f.StringVar(&p.Material, "material", "", "board material name")
	f.Float64Var(&p.MaterialPrice, "material-price", 200000, "board price per m²")
	f.StringVar(&p.Finish, "finish", "", "surface finish name")
	f.Float64Var(&p.FinishPrice, "finish-price", 80000, "finish price per m²")
	f.StringArrayVar(&hardware, "hardware", []string{"Bản lề:4:15000"}, `hardware line as "name:quantity[:price]", repeatable`)
	f.Float64Var(&p.LaborHours, "labor-hours", d.LaborHours, "labor hours")
	f.Float64Var(&p.LaborRate, "labor-rate", d.LaborRate, "labor rate per hour")
	f.Float64Var(&p.ProfitMargin, "margin", d.ProfitMargin, "profit margin in percent")
	f.BoolVar(&resolve, "resolve", false, "take material, finish and hardware prices from the server catalog")
	return cmd
}

func newSignageQuoteCmd(a *app) *cobra.Command {
	var (
		p       pricing.SignageParams
		resolve bool
	)
	cmd := &cobra.Command{
		Use:   "signage",
		Short: "Báo giá bảng hiệu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resolve {
				c, err := a.fetch(cmd.Context())
				if err != nil {
					return err
				}
				p = pricing.RepriceSignage(p, c)
			}
			return printBreakdown(cmd.OutOrStdout(), p.Name, pricing.Signage(p))
		},
	}

	d := pricing.DefaultSignage(catalog.Catalog{})
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", d.Name, "sign name")
	f.Float64Var(&p.Width, "width", d.Width, "width in m")
	f.Float64Var(&p.Height, "height", d.Height, "height in m")
	f.StringVar(&p.SignType, "type", d.SignType, "sign type: "+strings.Join(pricing.SignTypes, ", "))
	f.StringVar(&p.FrameMaterial, "frame", d.FrameMaterial, "frame material name")
	f.Float64Var(&p.FramePrice, "frame-price", d.FramePrice, "frame price per m")
	f.StringVar(&p.FaceMaterial, "face", d.FaceMaterial, "face material name")
	f.Float64Var(&p.FacePrice, "face-price", d.FacePrice, "face price per m²")
	f.BoolVar(&p.Lighting, "lighting", d.Lighting, "include lighting")
	f.Float64Var(&p.LightingCost, "lighting-cost", d.LightingCost, "total lighting cost")
	f.Float64Var(&p.LaborHours, "labor-hours", d.LaborHours, "labor hours")
	f.Float64Var(&p.LaborRate, "labor-rate", d.LaborRate, "labor rate per hour")
	f.Float64Var(&p.ProfitMargin, "margin", d.ProfitMargin, "profit margin in percent")
	f.BoolVar(&resolve, "resolve", false, "take frame and face prices from the server catalog")
	return cmd
}

func (a *app) fetch(ctx context.Context) (catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()
	return a.client().Fetch(ctx)
}

// parseHardware reads "name:quantity[:price]" values.
func parseHardware(values []string) ([]pricing.HardwareLine, error) {
	lines := make([]pricing.HardwareLine, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ":")
		if len(parts) < 2 || len(parts) > 3 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid hardware %q: want name:quantity[:price]", v)
		}
		line := pricing.HardwareLine{Name: strings.TrimSpace(parts[0])}

		var err error
		if line.Quantity, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
			return nil, fmt.Errorf("invalid hardware quantity %q: %w", v, err)
		}
		if len(parts) == 3 {
			if line.Price, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err != nil {
				return nil, fmt.Errorf("invalid hardware price %q: %w", v, err)
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func printBreakdown(w io.Writer, name string, b pricing.CostBreakdown) error {
	if !b.Finite() {
		return errOutOfRange
	}
	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "Sản phẩm: %s\n", name)
	}
	for _, item := range []pricing.CostItem{b.MaterialCost, b.HardwareCost, b.LaborCost} {
		fmt.Fprintf(&sb, "%s: %s", item.Name, money.VND(item.Value))
		if item.Details != "" {
			fmt.Fprintf(&sb, " (%s)", item.Details)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Tổng chi phí: %s\n", money.VND(b.TotalCost))
	fmt.Fprintf(&sb, "Lợi nhuận: %s\n", money.VND(b.ProfitMargin))
	fmt.Fprintf(&sb, "Giá bán: %s\n", money.VND(b.FinalPrice))

	_, err := io.WriteString(w, sb.String())
	return err
}
