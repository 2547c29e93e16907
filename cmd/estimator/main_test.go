package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/baogia/internal/catalog"
)

// catalogServer serves one in-memory catalog on the materials resource.
type catalogServer struct {
	mu    sync.Mutex
	c     catalog.Catalog
	saves int
}

func (s *catalogServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != catalog.MaterialsPath {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(s.c.Clone())
	case http.MethodPost:
		var c catalog.Catalog
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.c = c
		s.saves++
		_ = json.NewEncoder(w).Encode(c)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newCatalogServer(t *testing.T) (*catalogServer, string) {
	t.Helper()
	cs := &catalogServer{c: catalog.Catalog{
		Furniture: catalog.FurnitureMaterials{
			Materials: []catalog.MaterialItem{{Name: "Ván MFC", Price: 200000}},
			Finishes:  []catalog.MaterialItem{{Name: "Laminate", Price: 80000}},
			Hardware:  []catalog.MaterialItem{{Name: "Bản lề", Price: 15000}},
		},
		Signage: catalog.SignageMaterials{
			Frames: []catalog.MaterialItem{{Name: "Nhôm", Price: 80000}},
			Faces:  []catalog.MaterialItem{{Name: "Mica", Price: 400000}},
		},
	}}
	srv := httptest.NewServer(cs)
	t.Cleanup(srv.Close)
	return cs, srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteFurnitureOffline(t *testing.T) {
	out, err := run(t, "quote", "furniture",
		"--name", "Tủ bếp",
		"--material-price", "200000",
		"--finish-price", "80000",
		"--hardware", "Bản lề:4:15000")
	require.NoError(t, err)

	assert.Contains(t, out, "Sản phẩm: Tủ bếp")
	assert.Contains(t, out, "Chi phí vật tư: 2.093.280 ₫ (3 tấm ván + 3.84m² bề mặt)")
	assert.Contains(t, out, "Giá bán: 3.191.600 ₫")
}

func TestQuoteFurnitureResolvesFromServer(t *testing.T) {
	_, url := newCatalogServer(t)

	out, err := run(t, "--server", url, "quote", "furniture",
		"--material", "Ván MFC",
		"--finish", "Laminate",
		"--hardware", "Bản lề:4",
		"--resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "Giá bán: 3.191.600 ₫")
}

func TestQuoteFurnitureDefaults(t *testing.T) {
	out, err := run(t, "quote", "furniture")
	require.NoError(t, err)

	assert.Contains(t, out, "Chi phí vật tư: 2.093.280 ₫ (3 tấm ván + 3.84m² bề mặt)")
	assert.Contains(t, out, "Chi phí phụ kiện: 60.000 ₫ (1 loại)")
	assert.Contains(t, out, "Giá bán: 3.191.600 ₫")
}

func TestQuoteRejectsOverflowingInput(t *testing.T) {
	for _, args := range [][]string{
		{"quote", "furniture", "--length", "NaN"},
		{"quote", "furniture", "--length", "1e200", "--width", "1e200"},
		{"quote", "signage", "--width", "Inf"},
	} {
		var err error
		require.NotPanics(t, func() { _, err = run(t, args...) }, "%v", args)
		require.ErrorIs(t, err, errOutOfRange, "%v", args)
	}
}

func TestQuoteSignageDefaults(t *testing.T) {
	out, err := run(t, "quote", "signage")
	require.NoError(t, err)

	assert.Contains(t, out, "Chi phí vật tư: 2.612.000 ₫ (Mặt: 3.60m², Khung: 8.40m)")
	assert.Contains(t, out, "Giá bán: 4.331.600 ₫")
}

func TestQuoteRejectsBadHardware(t *testing.T) {
	_, err := run(t, "quote", "furniture", "--hardware", "Bản lề")
	require.Error(t, err)

	_, err = run(t, "quote", "furniture", "--hardware", "Bản lề:bốn")
	require.Error(t, err)
}

func TestMaterialsList(t *testing.T) {
	_, url := newCatalogServer(t)

	out, err := run(t, "--server", url, "materials", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[furniture/materials]")
	assert.Contains(t, out, "Ván MFC")
	assert.Contains(t, out, "[signage/faces]")
	assert.Contains(t, out, "400.000 ₫")
}

func TestMaterialsEditCommitsWholeCatalog(t *testing.T) {
	cs, url := newCatalogServer(t)

	_, err := run(t, "--server", url, "materials", "add", "furniture", "hardware", "Ray trượt", "60000")
	require.NoError(t, err)
	_, err = run(t, "--server", url, "materials", "set", "signage", "faces", "0", "price", "420000")
	require.NoError(t, err)
	out, err := run(t, "--server", url, "materials", "rm", "signage", "frames", "0")
	require.NoError(t, err)

	assert.Equal(t, 3, cs.saves)
	price, ok := cs.c.Lookup(catalog.CategoryHardware, "Ray trượt")
	assert.True(t, ok)
	assert.Equal(t, 60000.0, price)
	assert.Equal(t, 420000.0, cs.c.Signage.Faces[0].Price)
	assert.Empty(t, cs.c.Signage.Frames)
	assert.NotContains(t, out, "Nhôm")
}

func TestMaterialsEditErrorsDoNotSave(t *testing.T) {
	cs, url := newCatalogServer(t)

	_, err := run(t, "--server", url, "materials", "rm", "signage", "frames", "5")
	require.ErrorIs(t, err, catalog.ErrIndexOutOfRange)

	_, err = run(t, "--server", url, "materials", "add", "signage", "hardware", "x", "1")
	require.ErrorIs(t, err, catalog.ErrUnknownCategory)

	_, err = run(t, "--server", url, "materials", "set", "furniture", "materials", "zero", "name", "x")
	require.Error(t, err)

	assert.Zero(t, cs.saves)
}
