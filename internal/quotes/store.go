// Package quotes keeps priced quote snapshots and renders them for customers.
// A saved quote is never recalculated: its breakdown is the one computed when
// it was saved.
package quotes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/baogia/internal/pricing"
)

// Kind is the product line a quote was priced for.
type Kind string

const (
	KindFurniture Kind = "furniture"
	KindSignage   Kind = "signage"
)

var ErrNotFound = errors.New("quote not found")

// Quote is a saved snapshot of parameters and their breakdown.
type Quote struct {
	ID        int64                 `json:"id"`
	Ref       string                `json:"ref"`
	CreatedAt time.Time             `json:"createdAt"`
	Kind      Kind                  `json:"kind"`
	Title     string                `json:"title"`
	Params    json.RawMessage       `json:"params"`
	Breakdown pricing.CostBreakdown `json:"breakdown"`
}

// Summary is one row of a quote listing.
type Summary struct {
	ID         int64     `json:"id"`
	Ref        string    `json:"ref"`
	CreatedAt  time.Time `json:"createdAt"`
	Kind       Kind      `json:"kind"`
	Title      string    `json:"title"`
	FinalPrice float64   `json:"finalPrice"`
}

// NewFurniture builds an unsaved furniture quote.
func NewFurniture(p pricing.FurnitureParams, b pricing.CostBreakdown) (Quote, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return Quote{}, fmt.Errorf("encode furniture params: %w", err)
	}
	return Quote{Kind: KindFurniture, Title: p.Name, Params: raw, Breakdown: b}, nil
}

// NewSignage builds an unsaved signage quote.
func NewSignage(p pricing.SignageParams, b pricing.CostBreakdown) (Quote, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return Quote{}, fmt.Errorf("encode signage params: %w", err)
	}
	return Quote{Kind: KindSignage, Title: p.Name, Params: raw, Breakdown: b}, nil
}

const timeLayout = "2006-01-02 15:04:05"

// Store reads and writes the quotes table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Save inserts q, filling ID, Ref and CreatedAt.
func (s *Store) Save(ctx context.Context, q *Quote) error {
	if q.Kind != KindFurniture && q.Kind != KindSignage {
		return fmt.Errorf("save quote: unknown kind %q", q.Kind)
	}
	if q.Ref == "" {
		q.Ref = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = s.now().UTC().Truncate(time.Second)
	}

	breakdown, err := json.Marshal(q.Breakdown)
	if err != nil {
		return fmt.Errorf("encode breakdown: %w", err)
	}
	params := q.Params
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (ref, created_at, kind, title, params_json, breakdown_json, final_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, q.Ref, q.CreatedAt.Format(timeLayout), q.Kind, q.Title, string(params), string(breakdown), q.Breakdown.FinalPrice)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read quote id: %w", err)
	}
	q.ID = id
	return nil
}

// Get returns the quote with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (Quote, error) {
	var (
		q         Quote
		createdAt string
		params    string
		breakdown string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, ref, created_at, kind, COALESCE(title, ''), params_json, breakdown_json
		FROM quotes
		WHERE id = ?
	`, id).Scan(&q.ID, &q.Ref, &createdAt, &q.Kind, &q.Title, &params, &breakdown)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	if err != nil {
		return Quote{}, fmt.Errorf("query quote %d: %w", id, err)
	}

	if q.CreatedAt, err = parseTime(createdAt); err != nil {
		return Quote{}, err
	}
	q.Params = json.RawMessage(params)
	if err := json.Unmarshal([]byte(breakdown), &q.Breakdown); err != nil {
		return Quote{}, fmt.Errorf("decode breakdown of quote %d: %w", id, err)
	}
	return q, nil
}

// List returns quotes newest first. A non-empty query keeps only quotes whose
// title or ref contains it.
func (s *Store) List(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ref, created_at, kind, COALESCE(title, ''), final_price
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR ref LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var (
			item      Summary
			createdAt string
		)
		if err := rows.Scan(&item.ID, &item.Ref, &createdAt, &item.Kind, &item.Title, &item.FinalPrice); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		if item.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return out, nil
}

// parseTime accepts the stored layout and the RFC 3339 form the driver produces
// for DATETIME columns.
func parseTime(v string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse quote timestamp %q", v)
}
