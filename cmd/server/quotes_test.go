package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/baogia/internal/quotes"
)

func furnitureBody(resolve, save bool) map[string]any {
	return map[string]any{
		"params": map[string]any{
			"name":          "Tủ bếp trên",
			"length":        1200,
			"width":         600,
			"height":        800,
			"material":      "Ván MFC",
			"materialPrice": 1,
			"finish":        "Laminate",
			"finishPrice":   80000,
			"hardware":      []map[string]any{{"name": "Bản lề", "quantity": 4, "price": 15000}},
			"laborHours":    8,
			"laborRate":     50000,
			"profitMargin":  25,
		},
		"resolvePrices": resolve,
		"save":          save,
	}
}

func TestQuoteFurnitureUsesGivenPrices(t *testing.T) {
	h := newTestServer(t, nil).routes()

	rr := doJSON(t, h, http.MethodPost, "/api/quotes/furniture", furnitureBody(false, false))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	var resp quoteResponse
	decodeBody(t, rr, &resp)
	if resp.Quote != nil {
		t.Fatalf("expected unsaved quote")
	}
	// materialPrice 1 stays as given.
	if resp.Breakdown.FinalPrice >= 3191600 {
		t.Fatalf("expected given material price to be used, got %v", resp.Breakdown.FinalPrice)
	}
}

func TestQuoteFurnitureResolvesCatalogPrices(t *testing.T) {
	h := newTestServer(t, nil).routes()

	rr := doJSON(t, h, http.MethodPost, "/api/quotes/furniture", furnitureBody(true, false))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	var resp quoteResponse
	decodeBody(t, rr, &resp)
	if math.Abs(resp.Breakdown.FinalPrice-3191600) > 1e-6 {
		t.Fatalf("expected final price 3191600, got %v", resp.Breakdown.FinalPrice)
	}
	if resp.Formatted.FinalPrice != "3.191.600 ₫" {
		t.Fatalf("unexpected formatted final price %q", resp.Formatted.FinalPrice)
	}
	if resp.Formatted.LaborCost != "400.000 ₫" {
		t.Fatalf("unexpected formatted labor cost %q", resp.Formatted.LaborCost)
	}
}

func TestQuoteSignage(t *testing.T) {
	h := newTestServer(t, nil).routes()

	body := map[string]any{
		"params": map[string]any{
			"name":          "Bảng hiệu công ty",
			"width":         "3",
			"height":        1.2,
			"frameMaterial": "Nhôm",
			"faceMaterial":  "Mica",
			"lighting":      true,
			"lightingCost":  500000,
			"laborHours":    12,
			"laborRate":     60000,
			"profitMargin":  30,
		},
		"resolvePrices": true,
	}
	rr := doJSON(t, h, http.MethodPost, "/api/quotes/signage", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	var resp quoteResponse
	decodeBody(t, rr, &resp)
	if resp.Formatted.FinalPrice != "4.331.600 ₫" {
		t.Fatalf("unexpected final price %q", resp.Formatted.FinalPrice)
	}
	if resp.Breakdown.HardwareCost.Details != "Chưa tính" {
		t.Fatalf("unexpected hardware details %q", resp.Breakdown.HardwareCost.Details)
	}
}

func TestQuoteOverflowingDimensionsAreRejected(t *testing.T) {
	h := newTestServer(t, nil).routes()

	furniture := furnitureBody(false, true)
	params := furniture["params"].(map[string]any)
	params["length"], params["width"] = 1e200, 1e200

	signage := map[string]any{"params": map[string]any{"width": 1e300, "height": 1e300, "facePrice": 400000}}

	for path, body := range map[string]any{"/api/quotes/furniture": furniture, "/api/quotes/signage": signage} {
		rr := doJSON(t, h, http.MethodPost, path, body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d %s", path, rr.Code, rr.Body.String())
		}
		var er errorResponse
		decodeBody(t, rr, &er)
		if er.Error != outOfRangeMessage {
			t.Fatalf("%s: unexpected error %q", path, er.Error)
		}
	}

	rr := doJSON(t, h, http.MethodGet, "/api/quotes", nil)
	var list quoteListResponse
	decodeBody(t, rr, &list)
	if len(list.Quotes) != 0 {
		t.Fatalf("expected overflowing quote not to be saved, got %+v", list.Quotes)
	}
}

func TestQuoteBadJSON(t *testing.T) {
	h := newTestServer(t, nil).routes()

	req := httptest.NewRequest(http.MethodPost, "/api/quotes/furniture", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestQuoteSaveAndRetrieve(t *testing.T) {
	h := newTestServer(t, nil).routes()

	rr := doJSON(t, h, http.MethodPost, "/api/quotes/furniture", furnitureBody(true, true))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	var saved quoteResponse
	decodeBody(t, rr, &saved)
	if saved.Quote == nil || saved.Quote.ID == 0 || saved.Quote.Ref == "" {
		t.Fatalf("expected saved quote with id and ref, got %+v", saved.Quote)
	}
	id := saved.Quote.ID

	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/quotes/%d", id), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get failed: %d", rr.Code)
	}
	var got quotes.Quote
	decodeBody(t, rr, &got)
	if got.Ref != saved.Quote.Ref || got.Kind != quotes.KindFurniture || got.Title != "Tủ bếp trên" {
		t.Fatalf("unexpected quote %+v", got)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/quotes?q="+url.QueryEscape("bếp"), nil)
	var list quoteListResponse
	decodeBody(t, rr, &list)
	if len(list.Quotes) != 1 || list.Quotes[0].ID != id {
		t.Fatalf("expected listing with quote %d, got %+v", id, list.Quotes)
	}

	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/quotes/%d/text", id), nil)
	if rr.Code != http.StatusOK || !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("unexpected text response %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
	if !strings.Contains(rr.Body.String(), "Giá bán: 3.191.600 ₫") {
		t.Fatalf("text quote missing final price: %s", rr.Body.String())
	}

	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/quotes/%d/pdf", id), nil)
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected pdf response %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf body")
	}
}

func TestQuoteGetMissing(t *testing.T) {
	h := newTestServer(t, nil).routes()

	if rr := doJSON(t, h, http.MethodGet, "/api/quotes/999", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestQuoteTextRejectsBadID(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, id := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+id+"/text", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rr := httptest.NewRecorder()

		srv.handleQuoteText(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected status 400, got %d", id, rr.Code)
		}
	}
}
