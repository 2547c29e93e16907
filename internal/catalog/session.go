package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BlankItemName is the name given to items appended by Session.Add.
const BlankItemName = "Vật tư mới"

// SaveFailedMessage is the single user-facing message for a failed commit.
const SaveFailedMessage = "Không thể lưu dữ liệu. Vui lòng thử lại."

var ErrSaveFailed = errors.New(SaveFailedMessage)

// Field is an editable MaterialItem field.
type Field string

const (
	FieldName  Field = "name"
	FieldPrice Field = "price"
)

// Saver persists a whole catalog document, replacing what was there.
type Saver interface {
	Save(ctx context.Context, c Catalog) error
}

// Session is an edit session over a private deep copy of a catalog. Nothing it
// does is visible to other readers until Commit succeeds; dropping a session
// discards its edits.
type Session struct {
	draft Catalog
}

// NewSession starts editing a copy of base.
func NewSession(base Catalog) *Session {
	return &Session{draft: base.Clone()}
}

// Draft returns a copy of the edited catalog.
func (s *Session) Draft() Catalog {
	return s.draft.Clone()
}

// Add appends a blank item to the section and returns its index.
func (s *Session) Add(d Domain, c Category) (int, error) {
	items, err := s.items(d, c)
	if err != nil {
		return 0, err
	}
	*items = append(*items, MaterialItem{Name: BlankItemName, Price: 0})
	return len(*items) - 1, nil
}

// SetName renames the item at index.
func (s *Session) SetName(d Domain, c Category, index int, name string) error {
	it, err := s.item(d, c, index)
	if err != nil {
		return err
	}
	it.Name = name
	return nil
}

// SetPrice changes the price of the item at index.
func (s *Session) SetPrice(d Domain, c Category, index int, price float64) error {
	it, err := s.item(d, c, index)
	if err != nil {
		return err
	}
	it.Price = price
	return nil
}

// SetField edits one field from its text form. Price text that does not parse as
// a finite number, "NaN" and "Inf" included, is stored as 0.
func (s *Session) SetField(d Domain, c Category, index int, field Field, value string) error {
	switch field {
	case FieldName:
		return s.SetName(d, c, index, value)
	case FieldPrice:
		price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}
		return s.SetPrice(d, c, index, price)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
}

// Remove deletes the item at index; later items shift down by one.
func (s *Session) Remove(d Domain, c Category, index int) error {
	items, err := s.items(d, c)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*items) {
		return fmt.Errorf("%s[%d]: %w", Section{d, c}, index, ErrIndexOutOfRange)
	}
	*items = append((*items)[:index], (*items)[index+1:]...)
	return nil
}

// Commit sends the whole draft to saver as one document. On failure the draft is
// kept so the caller can retry; the returned error wraps ErrSaveFailed.
func (s *Session) Commit(ctx context.Context, saver Saver) error {
	if err := saver.Save(ctx, s.Draft()); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

func (s *Session) items(d Domain, c Category) (*[]MaterialItem, error) {
	items, ok := s.draft.list(d, c)
	if !ok {
		return nil, fmt.Errorf("%s: %w", Section{d, c}, ErrUnknownCategory)
	}
	return items, nil
}

func (s *Session) item(d Domain, c Category, index int) (*MaterialItem, error) {
	items, err := s.items(d, c)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(*items) {
		return nil, fmt.Errorf("%s[%d]: %w", Section{d, c}, index, ErrIndexOutOfRange)
	}
	return &(*items)[index], nil
}
