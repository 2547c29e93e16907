package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	text string
	err  error

	mu      sync.Mutex
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.text, f.err
}

// blockingGenerator waits until released or cancelled.
type blockingGenerator struct {
	started chan struct{}
	release chan string
}

func (b *blockingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	b.started <- struct{}{}
	select {
	case text := <-b.release:
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestSuggestFurniture_Applied(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n" + cabinetJSON + "\n```"}
	svc := NewService(gen, time.Second, zap.NewNop())

	out, err := svc.SuggestFurniture(context.Background(), "s1", "tủ bếp dưới", previousParams(), testCatalog())
	require.NoError(t, err)

	assert.Equal(t, StatusApplied, out.Status)
	assert.Equal(t, "Tủ bếp dưới", out.Params.Name)
	assert.Equal(t, 220000.0, out.Params.MaterialPrice)
	require.NotNil(t, out.Suggestion)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "tủ bếp dưới")
}

func TestSuggestFurniture_MalformedKeepsPrevious(t *testing.T) {
	gen := &fakeGenerator{text: "Xin lỗi, tôi không hiểu."}
	svc := NewService(gen, time.Second, nil)
	prev := previousParams()

	out, err := svc.SuggestFurniture(context.Background(), "s1", "tủ", prev, testCatalog())
	require.NoError(t, err)

	assert.Equal(t, StatusNoSuggestion, out.Status)
	assert.Equal(t, prev, out.Params)
	assert.NotEmpty(t, out.Reason)
	assert.Nil(t, out.Suggestion)
}

func TestSuggestFurniture_TransportError(t *testing.T) {
	boom := errors.New("503 unavailable")
	svc := NewService(&fakeGenerator{err: boom}, time.Second, nil)

	_, err := svc.SuggestFurniture(context.Background(), "s1", "tủ", previousParams(), testCatalog())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsValidation(err))
}

func TestSuggestFurniture_NotConfigured(t *testing.T) {
	svc := NewService(nil, time.Second, nil)

	assert.False(t, svc.Configured())
	_, err := svc.SuggestFurniture(context.Background(), "s1", "tủ", previousParams(), testCatalog())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSuggestFurniture_EmptyPrompt(t *testing.T) {
	svc := NewService(&fakeGenerator{text: cabinetJSON}, time.Second, nil)

	_, err := svc.SuggestFurniture(context.Background(), "s1", "  ", previousParams(), testCatalog())
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestSuggestFurniture_NewerRequestSupersedesOlder(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan string, 1)}
	svc := NewService(gen, 5*time.Second, nil)

	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.SuggestFurniture(context.Background(), "s1", "tủ cũ", previousParams(), testCatalog())
		firstErr <- err
	}()
	<-gen.started

	secondOut := make(chan Outcome, 1)
	go func() {
		out, err := svc.SuggestFurniture(context.Background(), "s1", "tủ mới", previousParams(), testCatalog())
		assert.NoError(t, err)
		secondOut <- out
	}()
	<-gen.started

	assert.ErrorIs(t, <-firstErr, ErrSuperseded)

	gen.release <- cabinetJSON
	out := <-secondOut
	assert.Equal(t, StatusApplied, out.Status)
	assert.Equal(t, 0, svc.coord.InFlight())
}

func TestSuggestFurniture_Timeout(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}, 1), release: make(chan string)}
	svc := NewService(gen, 20*time.Millisecond, nil)

	_, err := svc.SuggestFurniture(context.Background(), "s1", "tủ", previousParams(), testCatalog())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
