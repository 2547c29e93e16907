package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/baogia/internal/catalog"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// DefaultCatalog is the price list a fresh installation starts with.
func DefaultCatalog() catalog.Catalog {
	return catalog.Catalog{
		Furniture: catalog.FurnitureMaterials{
			Materials: []catalog.MaterialItem{
				{Name: "Ván MFC", Price: 200000},
				{Name: "Ván MDF chống ẩm", Price: 260000},
				{Name: "Ván HDF", Price: 320000},
				{Name: "Ván Plywood", Price: 280000},
			},
			Finishes: []catalog.MaterialItem{
				{Name: "Melamine", Price: 50000},
				{Name: "Laminate", Price: 80000},
				{Name: "Sơn PU", Price: 150000},
				{Name: "Acrylic", Price: 180000},
			},
			Hardware: []catalog.MaterialItem{
				{Name: "Bản lề", Price: 15000},
				{Name: "Ray trượt", Price: 60000},
				{Name: "Tay nắm", Price: 25000},
				{Name: "Chân tủ", Price: 10000},
			},
		},
		Signage: catalog.SignageMaterials{
			Frames: []catalog.MaterialItem{
				{Name: "Sắt", Price: 50000},
				{Name: "Nhôm", Price: 80000},
				{Name: "Inox", Price: 120000},
			},
			Faces: []catalog.MaterialItem{
				{Name: "Mica", Price: 400000},
				{Name: "Alu", Price: 350000},
				{Name: "Bạt Hiflex", Price: 80000},
			},
		},
	}
}

// Run seeds the default catalog in an idempotent way. Items whose name already
// exists in their category are skipped. After the first run the catalog belongs
// to its editors: deleted defaults are not restored.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	seeded, err := alreadySeeded(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	def := DefaultCatalog()
	for _, sec := range catalog.Sections {
		if seeded[sec] {
			continue
		}
		for _, it := range def.Items(sec.Category) {
			if err := ensureItem(ctx, tx, sec, it, &stats); err != nil {
				_ = tx.Rollback()
				return Stats{}, err
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO seed_runs (id, ran_at) VALUES (1, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET ran_at = excluded.ran_at
	`); err != nil {
		_ = tx.Rollback()
		return Stats{}, fmt.Errorf("record seed run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// alreadySeeded lists the sections that were present in a previous run.
func alreadySeeded(ctx context.Context, tx *sql.Tx) (map[catalog.Section]bool, error) {
	var runs int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM seed_runs`).Scan(&runs); err != nil {
		return nil, fmt.Errorf("check seed runs: %w", err)
	}
	out := make(map[catalog.Section]bool)
	if runs == 0 {
		return out, nil
	}
	for _, sec := range catalog.Sections {
		out[sec] = true
	}
	return out, nil
}

func ensureItem(ctx context.Context, tx *sql.Tx, sec catalog.Section, it catalog.MaterialItem, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM catalog_items
			WHERE domain = ? AND category = ? AND name = ?
			LIMIT 1
		)
	`, sec.Domain, sec.Category, it.Name).Scan(&exists); err != nil {
		return fmt.Errorf("check %s item %q existence: %w", sec, it.Name, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_items (domain, category, position, name, price)
		VALUES (?, ?, (
			SELECT COALESCE(MAX(position) + 1, 0)
			FROM catalog_items
			WHERE domain = ? AND category = ?
		), ?, ?)
	`, sec.Domain, sec.Category, sec.Domain, sec.Category, it.Name, it.Price); err != nil {
		return fmt.Errorf("insert %s item %q: %w", sec, it.Name, err)
	}
	stats.Inserts++
	return nil
}
