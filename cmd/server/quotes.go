package main

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/baogia/internal/money"
	"github.com/Simplici0/baogia/internal/pricing"
	"github.com/Simplici0/baogia/internal/quotes"
)

// outOfRangeMessage answers inputs so large that the amounts overflow.
const outOfRangeMessage = "quote amounts are out of range"

type furnitureQuoteRequest struct {
	Params        pricing.FurnitureInput `json:"params"`
	ResolvePrices bool                   `json:"resolvePrices"`
	Save          bool                   `json:"save"`
}

type signageQuoteRequest struct {
	Params        pricing.SignageInput `json:"params"`
	ResolvePrices bool                 `json:"resolvePrices"`
	Save          bool                 `json:"save"`
}

type formattedBreakdown struct {
	MaterialCost string `json:"materialCost"`
	HardwareCost string `json:"hardwareCost"`
	LaborCost    string `json:"laborCost"`
	TotalCost    string `json:"totalCost"`
	ProfitMargin string `json:"profitMargin"`
	FinalPrice   string `json:"finalPrice"`
}

type quoteResponse struct {
	Params    any                   `json:"params"`
	Breakdown pricing.CostBreakdown `json:"breakdown"`
	Formatted formattedBreakdown    `json:"formatted"`
	Quote     *quotes.Quote         `json:"quote,omitempty"`
}

type quoteListResponse struct {
	Query  string           `json:"query"`
	Quotes []quotes.Summary `json:"quotes"`
}

func formatBreakdown(b pricing.CostBreakdown) formattedBreakdown {
	return formattedBreakdown{
		MaterialCost: money.VND(b.MaterialCost.Value),
		HardwareCost: money.VND(b.HardwareCost.Value),
		LaborCost:    money.VND(b.LaborCost.Value),
		TotalCost:    money.VND(b.TotalCost),
		ProfitMargin: money.VND(b.ProfitMargin),
		FinalPrice:   money.VND(b.FinalPrice),
	}
}

func (s *server) handleQuoteFurniture(w http.ResponseWriter, r *http.Request) {
	var req furnitureQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote json")
		return
	}

	p := req.Params.Params()
	if req.ResolvePrices {
		p = pricing.RepriceFurniture(p, s.catalog.Holder().Snapshot())
	}
	b := pricing.Furniture(p)
	if !b.Finite() {
		writeError(w, http.StatusBadRequest, outOfRangeMessage)
		return
	}
	s.metrics.QuotesPriced.WithLabelValues(string(quotes.KindFurniture)).Inc()

	resp := quoteResponse{Params: p, Breakdown: b, Formatted: formatBreakdown(b)}
	if req.Save {
		q, err := quotes.NewFurniture(p, b)
		if err == nil {
			err = s.saveQuote(r, &q)
		}
		if err != nil {
			s.log.Error("save furniture quote", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save quote")
			return
		}
		resp.Quote = &q
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleQuoteSignage(w http.ResponseWriter, r *http.Request) {
	var req signageQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote json")
		return
	}

	p := req.Params.Params()
	if req.ResolvePrices {
		p = pricing.RepriceSignage(p, s.catalog.Holder().Snapshot())
	}
	b := pricing.Signage(p)
	if !b.Finite() {
		writeError(w, http.StatusBadRequest, outOfRangeMessage)
		return
	}
	s.metrics.QuotesPriced.WithLabelValues(string(quotes.KindSignage)).Inc()

	resp := quoteResponse{Params: p, Breakdown: b, Formatted: formatBreakdown(b)}
	if req.Save {
		q, err := quotes.NewSignage(p, b)
		if err == nil {
			err = s.saveQuote(r, &q)
		}
		if err != nil {
			s.log.Error("save signage quote", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save quote")
			return
		}
		resp.Quote = &q
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) saveQuote(r *http.Request, q *quotes.Quote) error {
	if err := s.quotes.Save(r.Context(), q); err != nil {
		return err
	}
	s.metrics.QuotesSaved.WithLabelValues(string(q.Kind)).Inc()
	return nil
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	list, err := s.quotes.List(r.Context(), query)
	if err != nil {
		s.log.Error("list quotes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}
	writeJSON(w, http.StatusOK, quoteListResponse{Query: query, Quotes: list})
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := quotes.RenderText(&buf, q); err != nil {
		s.log.Error("render quote text", zap.Int64("id", q.ID), zap.Error(err))
		http.Error(w, "failed to render quote", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := quotes.RenderPDF(&buf, q); err != nil {
		s.log.Error("render quote pdf", zap.Int64("id", q.ID), zap.Error(err))
		http.Error(w, "failed to render quote", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="bao-gia-`+strconv.FormatInt(q.ID, 10)+`.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

// loadQuote reads the quote named by the id URL parameter, writing the error
// response itself when it cannot.
func (s *server) loadQuote(w http.ResponseWriter, r *http.Request) (quotes.Quote, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return quotes.Quote{}, false
	}

	q, err := s.quotes.Get(r.Context(), id)
	if errors.Is(err, quotes.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return quotes.Quote{}, false
	}
	if err != nil {
		s.log.Error("load quote", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return quotes.Quote{}, false
	}
	return q, true
}
