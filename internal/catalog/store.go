package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Store persists the catalog in the catalog_items table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the whole catalog. Rows for pairs outside the catalog shape are
// skipped.
func (s *Store) Load(ctx context.Context) (Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, category, name, price
		FROM catalog_items
		ORDER BY domain, category, position
	`)
	if err != nil {
		return Catalog{}, fmt.Errorf("query catalog items: %w", err)
	}
	defer rows.Close()

	c := Catalog{}.Clone()
	for rows.Next() {
		var (
			d   Domain
			cat Category
			it  MaterialItem
		)
		if err := rows.Scan(&d, &cat, &it.Name, &it.Price); err != nil {
			return Catalog{}, fmt.Errorf("scan catalog item: %w", err)
		}
		items, ok := c.list(d, cat)
		if !ok {
			continue
		}
		*items = append(*items, it)
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("iterate catalog items: %w", err)
	}

	return c, nil
}

// Replace swaps the stored catalog for c in one transaction.
func (s *Store) Replace(ctx context.Context, c Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_items`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear catalog items: %w", err)
	}

	for _, sec := range Sections {
		for pos, it := range c.Items(sec.Category) {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO catalog_items (domain, category, position, name, price)
				VALUES (?, ?, ?, ?, ?)
			`, sec.Domain, sec.Category, pos, it.Name, it.Price); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert catalog item %s[%d]: %w", sec, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog transaction: %w", err)
	}
	return nil
}

// Save implements Saver.
func (s *Store) Save(ctx context.Context, c Catalog) error {
	return s.Replace(ctx, c)
}
