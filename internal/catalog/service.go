package catalog

import (
	"context"
	"fmt"
)

// Loader reads the persisted catalog.
type Loader interface {
	Load(ctx context.Context) (Catalog, error)
}

// Persister is a catalog store that can be read and fully replaced.
type Persister interface {
	Loader
	Replace(ctx context.Context, c Catalog) error
}

// Service ties a store to the Holder serving reads. Every save is followed by a
// full re-fetch from the store.
type Service struct {
	store  Persister
	holder *Holder
}

func NewService(store Persister, holder *Holder) *Service {
	return &Service{store: store, holder: holder}
}

// Holder returns the snapshot owner fed by this service.
func (s *Service) Holder() *Holder {
	return s.holder
}

// Reload re-fetches the stored catalog into the holder.
func (s *Service) Reload(ctx context.Context) (Catalog, error) {
	c, err := s.store.Load(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	s.holder.Replace(c)
	return c, nil
}

// Save validates and stores c as the new catalog, then reloads.
func (s *Service) Save(ctx context.Context, c Catalog) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate catalog: %w", err)
	}
	if err := s.store.Replace(ctx, c); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	if _, err := s.Reload(ctx); err != nil {
		return err
	}
	return nil
}
