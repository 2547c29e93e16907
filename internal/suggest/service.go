package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/baogia/internal/catalog"
	"github.com/Simplici0/baogia/internal/pricing"
)

// TransportFailedMessage is shown to the user when the model call fails.
const TransportFailedMessage = "Đã xảy ra lỗi khi nhận gợi ý từ AI. Vui lòng thử lại."

var ErrEmptyPrompt = errors.New("prompt is empty")

// Status is the result kind of a suggestion request.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusNoSuggestion Status = "no_suggestion"
)

// Outcome is a finished suggestion request. Params equals the previous parameters
// unless Status is StatusApplied.
type Outcome struct {
	Status     Status
	Params     pricing.FurnitureParams
	Suggestion *FurnitureSuggestion
	Reason     string
}

// Service runs suggestion requests end to end.
type Service struct {
	gen     Generator
	coord   *Coordinator
	timeout time.Duration
	log     *zap.Logger
}

// NewService returns a Service. A nil gen makes every request fail with
// ErrNotConfigured.
func NewService(gen Generator, timeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gen: gen, coord: NewCoordinator(), timeout: timeout, log: log}
}

// Configured reports whether a generator is present.
func (s *Service) Configured() bool {
	return s.gen != nil
}

// SuggestFurniture asks the model for parameters matching prompt and merges
// them over prev. Malformed output is not an error: it yields
// StatusNoSuggestion with prev unchanged.
func (s *Service) SuggestFurniture(ctx context.Context, key, prompt string, prev pricing.FurnitureParams, c catalog.Catalog) (Outcome, error) {
	if s.gen == nil {
		return Outcome{}, ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return Outcome{}, ErrEmptyPrompt
	}

	ctx, ticket := s.coord.Begin(ctx, key)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, FurniturePrompt(prompt, c))
	if !s.coord.Finish(ticket) {
		s.log.Info("suggestion superseded", zap.String("session", key))
		return Outcome{}, ErrSuperseded
	}
	if err != nil {
		s.log.Warn("suggestion request failed",
			zap.String("session", key),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return Outcome{}, fmt.Errorf("request suggestion: %w", err)
	}

	sug, err := Parse(text)
	if err != nil {
		s.log.Warn("suggestion rejected",
			zap.String("session", key),
			zap.Error(err),
			zap.String("raw", text))
		return Outcome{Status: StatusNoSuggestion, Params: prev, Reason: err.Error()}, nil
	}

	s.log.Debug("suggestion applied",
		zap.String("session", key),
		zap.String("product", sug.ProductName),
		zap.Duration("elapsed", time.Since(start)))
	return Outcome{
		Status:     StatusApplied,
		Params:     Normalize(prev, sug, c),
		Suggestion: &sug,
	}, nil
}
