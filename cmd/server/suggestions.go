package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/baogia/internal/pricing"
	"github.com/Simplici0/baogia/internal/suggest"
)

type suggestionRequest struct {
	Prompt  string                 `json:"prompt"`
	Session string                 `json:"session"`
	Params  pricing.FurnitureInput `json:"params"`
}

type suggestionResponse struct {
	Status    suggest.Status          `json:"status"`
	Params    pricing.FurnitureParams `json:"params"`
	Breakdown pricing.CostBreakdown   `json:"breakdown"`
	Reason    string                  `json:"reason,omitempty"`
}

func (s *server) handleSuggestFurniture(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid suggestion json")
		return
	}

	// Without a session there is nothing to supersede: key the request by itself.
	key := req.Session
	if key == "" {
		key = middleware.GetReqID(r.Context())
	}

	start := time.Now()
	out, err := s.suggest.SuggestFurniture(r.Context(), key, req.Prompt, req.Params.Params(), s.catalog.Holder().Snapshot())
	s.metrics.SuggestionDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		b := pricing.Furniture(out.Params)
		if !b.Finite() {
			s.metrics.Suggestions.WithLabelValues("out_of_range").Inc()
			writeError(w, http.StatusBadRequest, outOfRangeMessage)
			return
		}
		s.metrics.Suggestions.WithLabelValues(string(out.Status)).Inc()
		writeJSON(w, http.StatusOK, suggestionResponse{
			Status:    out.Status,
			Params:    out.Params,
			Breakdown: b,
			Reason:    out.Reason,
		})
	case errors.Is(err, suggest.ErrEmptyPrompt):
		s.metrics.Suggestions.WithLabelValues("empty_prompt").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, suggest.ErrSuperseded):
		s.metrics.Suggestions.WithLabelValues("superseded").Inc()
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, suggest.ErrNotConfigured):
		s.metrics.Suggestions.WithLabelValues("not_configured").Inc()
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.metrics.Suggestions.WithLabelValues("error").Inc()
		s.log.Warn("suggestion failed", zap.String("session", key), zap.Error(err))
		writeError(w, http.StatusBadGateway, suggest.TransportFailedMessage)
	}
}
