package catalog

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() Catalog {
	return Catalog{
		Furniture: FurnitureMaterials{
			Materials: []MaterialItem{{Name: "Ván MDF chống ẩm", Price: 200000}, {Name: "Ván MFC", Price: 180000}},
			Finishes:  []MaterialItem{{Name: "Melamine", Price: 80000}},
			Hardware: []MaterialItem{
				{Name: "Bản lề", Price: 15000},
				{Name: "Ray trượt", Price: 60000},
				{Name: "Bản lề", Price: 99999},
			},
		},
		Signage: SignageMaterials{
			Frames: []MaterialItem{{Name: "Nhôm", Price: 80000}},
		},
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	c := sampleCatalog()

	price, found := c.Lookup(CategoryHardware, "Bản lề")
	require.True(t, found)
	assert.Equal(t, 15000.0, price)
}

func TestLookupIsCaseSensitive(t *testing.T) {
	c := sampleCatalog()

	_, found := c.Lookup(CategoryFinishes, "melamine")
	assert.False(t, found)
}

func TestLookupPriceZeroDefault(t *testing.T) {
	c := sampleCatalog()

	assert.Equal(t, 0.0, LookupPrice(c, CategoryMaterials, "Gỗ thông"))
	assert.Equal(t, 0.0, LookupPrice(c, Category("nope"), "Ván MFC"))
	assert.Equal(t, 180000.0, LookupPrice(c, CategoryMaterials, "Ván MFC"))
}

func TestLookupEmptyCategory(t *testing.T) {
	c := sampleCatalog()

	price, found := c.Lookup(CategoryFaces, "Mica")
	assert.False(t, found)
	assert.Zero(t, price)
	assert.Zero(t, LookupPrice(Catalog{}, CategoryFaces, "Mica"))
}

func TestNamesKeepsOrder(t *testing.T) {
	c := sampleCatalog()

	assert.Equal(t, []string{"Bản lề", "Ray trượt", "Bản lề"}, c.Names(CategoryHardware))
	assert.Empty(t, c.Names(CategoryFaces))
}

func TestCloneIsDeepAndMarshalsEmptyArrays(t *testing.T) {
	c := sampleCatalog()
	cp := c.Clone()
	cp.Furniture.Hardware[0].Price = 1

	assert.Equal(t, 15000.0, c.Furniture.Hardware[0].Price)

	b, err := json.Marshal(Catalog{}.Clone())
	require.NoError(t, err)
	assert.JSONEq(t, `{"furniture":{"materials":[],"finishes":[],"hardware":[]},"signage":{"frames":[],"faces":[]}}`, string(b))
}

func TestValidate(t *testing.T) {
	c := sampleCatalog()
	require.NoError(t, c.Validate())

	c.Signage.Frames[0].Price = -1
	assert.ErrorContains(t, c.Validate(), "signage/frames[0]")

	assert.ErrorIs(t, c.Validate(), ErrInvalidPrice)

	c.Signage.Frames[0].Price = math.Inf(1)
	assert.ErrorIs(t, c.Validate(), ErrInvalidPrice)
}

func TestDomainOf(t *testing.T) {
	d, ok := DomainOf(CategoryFaces)
	require.True(t, ok)
	assert.Equal(t, DomainSignage, d)

	_, ok = DomainOf(Category("legs"))
	assert.False(t, ok)
}

func TestHolderSnapshotsAreIsolated(t *testing.T) {
	h := NewHolder(sampleCatalog())

	snap := h.Snapshot()
	snap.Furniture.Materials[0].Price = 1
	assert.Equal(t, 200000.0, h.Snapshot().Furniture.Materials[0].Price)

	v := h.Version()
	h.Replace(Catalog{})
	assert.Equal(t, v+1, h.Version())
	assert.Zero(t, h.Snapshot().Len())
}
