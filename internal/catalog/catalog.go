// Package catalog holds the materials price list used by the estimators: its wire
// shape, typed lookups, ownership of the current snapshot, edit sessions and
// persistence.
package catalog

import (
	"errors"
	"fmt"
	"math"
)

// Domain groups categories by product line.
type Domain string

const (
	DomainFurniture Domain = "furniture"
	DomainSignage   Domain = "signage"
)

// Category names one ordered list of items inside a domain.
type Category string

const (
	CategoryMaterials Category = "materials"
	CategoryFinishes  Category = "finishes"
	CategoryHardware  Category = "hardware"
	CategoryFrames    Category = "frames"
	CategoryFaces     Category = "faces"
)

var (
	ErrUnknownCategory = errors.New("unknown catalog category")
	ErrIndexOutOfRange = errors.New("catalog item index out of range")
	ErrInvalidPrice    = errors.New("invalid catalog price")
)

// MaterialItem is a single priced entry. Names are not unique; lookups take the
// first match.
type MaterialItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FurnitureMaterials are the furniture categories.
type FurnitureMaterials struct {
	Materials []MaterialItem `json:"materials"`
	Finishes  []MaterialItem `json:"finishes"`
	Hardware  []MaterialItem `json:"hardware"`
}

// SignageMaterials are the signage categories.
type SignageMaterials struct {
	Frames []MaterialItem `json:"frames"`
	Faces  []MaterialItem `json:"faces"`
}

// Catalog is the whole price list document, fetched and replaced wholesale.
type Catalog struct {
	Furniture FurnitureMaterials `json:"furniture"`
	Signage   SignageMaterials   `json:"signage"`
}

// Section identifies one (domain, category) pair.
type Section struct {
	Domain   Domain
	Category Category
}

// Sections lists every valid pair in display order.
var Sections = []Section{
	{DomainFurniture, CategoryMaterials},
	{DomainFurniture, CategoryFinishes},
	{DomainFurniture, CategoryHardware},
	{DomainSignage, CategoryFrames},
	{DomainSignage, CategoryFaces},
}

func (s Section) String() string {
	return string(s.Domain) + "/" + string(s.Category)
}

// DomainOf returns the domain a category belongs to.
func DomainOf(c Category) (Domain, bool) {
	for _, s := range Sections {
		if s.Category == c {
			return s.Domain, true
		}
	}
	return "", false
}

// list returns a pointer to the slice backing the pair, or false when the pair is
// not part of the catalog shape.
func (c *Catalog) list(d Domain, cat Category) (*[]MaterialItem, bool) {
	switch {
	case d == DomainFurniture && cat == CategoryMaterials:
		return &c.Furniture.Materials, true
	case d == DomainFurniture && cat == CategoryFinishes:
		return &c.Furniture.Finishes, true
	case d == DomainFurniture && cat == CategoryHardware:
		return &c.Furniture.Hardware, true
	case d == DomainSignage && cat == CategoryFrames:
		return &c.Signage.Frames, true
	case d == DomainSignage && cat == CategoryFaces:
		return &c.Signage.Faces, true
	}
	return nil, false
}

// Items returns the items of a category. The returned slice must not be modified.
func (c Catalog) Items(cat Category) []MaterialItem {
	d, ok := DomainOf(cat)
	if !ok {
		return nil
	}
	items, _ := c.list(d, cat)
	return *items
}

// Lookup returns the price of the first item in cat named exactly name.
// found is false when the category is unknown or holds no such item.
func (c Catalog) Lookup(cat Category, name string) (price float64, found bool) {
	for _, it := range c.Items(cat) {
		if it.Name == name {
			return it.Price, true
		}
	}
	return 0, false
}

// LookupPrice applies the zero-default policy to Lookup: unknown names price at 0.
// Callers showing the result should flag a zero price as suspicious.
func LookupPrice(c Catalog, cat Category, name string) float64 {
	price, _ := c.Lookup(cat, name)
	return price
}

// Names lists the item names of a category in order.
func (c Catalog) Names(cat Category) []string {
	items := c.Items(cat)
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

// Clone returns a deep copy. Empty categories come back as empty, non-nil slices
// so the JSON form always carries [].
func (c Catalog) Clone() Catalog {
	return Catalog{
		Furniture: FurnitureMaterials{
			Materials: cloneItems(c.Furniture.Materials),
			Finishes:  cloneItems(c.Furniture.Finishes),
			Hardware:  cloneItems(c.Furniture.Hardware),
		},
		Signage: SignageMaterials{
			Frames: cloneItems(c.Signage.Frames),
			Faces:  cloneItems(c.Signage.Faces),
		},
	}
}

func cloneItems(items []MaterialItem) []MaterialItem {
	out := make([]MaterialItem, len(items))
	copy(out, items)
	return out
}

// Len counts all items across categories.
func (c Catalog) Len() int {
	n := 0
	for _, s := range Sections {
		n += len(c.Items(s.Category))
	}
	return n
}

// Validate rejects negative or non-finite prices.
func (c Catalog) Validate() error {
	for _, s := range Sections {
		for i, it := range c.Items(s.Category) {
			if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
				return fmt.Errorf("%w: %s[%d] %q: price must be a finite number", ErrInvalidPrice, s, i, it.Name)
			}
			if it.Price < 0 {
				return fmt.Errorf("%w: %s[%d] %q: price must be >= 0", ErrInvalidPrice, s, i, it.Name)
			}
		}
	}
	return nil
}
