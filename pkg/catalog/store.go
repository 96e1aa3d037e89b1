package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/voltbos/voltbos/pkg/log"
	"github.com/voltbos/voltbos/pkg/types"
)

// Store is the subset of the storage layer the catalog reads from.
type Store interface {
	ListCatalog(ctx context.Context) ([]types.CatalogEquipment, error)
}

// Stored serves the catalog from storage with a short cache, falling back to
// the built-in rows when storage has not been seeded yet.
type Stored struct {
	store Store
	ttl   time.Duration

	mu      sync.Mutex
	rows    []types.CatalogEquipment
	fetched time.Time
}

var _ Provider = (*Stored)(nil)

// NewStored returns a storage-backed provider with the given cache TTL.
func NewStored(store Store, ttl time.Duration) *Stored {
	return &Stored{store: store, ttl: ttl}
}

func (s *Stored) load(ctx context.Context) []types.CatalogEquipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows != nil && time.Since(s.fetched) < s.ttl {
		return s.rows
	}
	rows, err := s.store.ListCatalog(ctx)
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to load catalog from storage, using built-in rows",
			slog.Any("error", err))
		if s.rows != nil {
			return s.rows
		}
		return defaultCatalog
	}
	if len(rows) == 0 {
		return defaultCatalog
	}
	s.rows = rows
	s.fetched = time.Now()
	return s.rows
}

func (s *Stored) Lookup(ctx context.Context, equipmentType string, minAmps int, preferredMake string) ([]types.CatalogEquipment, error) {
	return selectRows(s.load(ctx), equipmentType, minAmps, preferredMake), nil
}

func (s *Stored) BatteryCoupleType(ctx context.Context, make, model string) (string, error) {
	for _, r := range s.load(ctx) {
		if r.CoupleType != "" && equalFoldTrim(r.Make, make) && equalFoldTrim(r.Model, model) {
			return r.CoupleType, nil
		}
	}
	return lookupCoupleType(make, model), nil
}

func (s *Stored) List(ctx context.Context) ([]types.CatalogEquipment, error) {
	rows := s.load(ctx)
	out := make([]types.CatalogEquipment, len(rows))
	copy(out, rows)
	return out, nil
}
