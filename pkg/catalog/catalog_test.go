package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltbos/voltbos/pkg/types"
)

func TestStaticLookup(t *testing.T) {
	ctx := context.Background()
	c := Static{}

	t.Run("smallest rating at or above min", func(t *testing.T) {
		rows, err := c.Lookup(ctx, "AC Disconnect", 40, "")
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		for _, r := range rows {
			assert.Equal(t, 60, r.Amps)
			assert.Equal(t, "AC Disconnect", r.Type)
		}
	})

	t.Run("exact rating", func(t *testing.T) {
		rows, err := c.Lookup(ctx, "AC Disconnect", 200, "")
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		for _, r := range rows {
			assert.Equal(t, 200, r.Amps)
		}
	})

	t.Run("preferred make narrows to one", func(t *testing.T) {
		rows, err := c.Lookup(ctx, "Fused AC Disconnect", 78, "EATON")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "EATON", rows[0].Make)
		assert.Equal(t, 100, rows[0].Amps)
	})

	t.Run("unknown preferred make keeps all candidates", func(t *testing.T) {
		rows, err := c.Lookup(ctx, "Fused AC Disconnect", 78, "GENERAC")
		require.NoError(t, err)
		assert.Greater(t, len(rows), 1)
	})

	t.Run("nothing big enough", func(t *testing.T) {
		rows, err := c.Lookup(ctx, "AC Disconnect", 500, "")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("unknown type", func(t *testing.T) {
		rows, err := c.Lookup(ctx, "Flux Capacitor", 10, "")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("unrated equipment matches without a minimum", func(t *testing.T) {
		rows, err := c.Lookup(ctx, "Junction Box", 0, "")
		require.NoError(t, err)
		assert.NotEmpty(t, rows)
	})
}

func TestStaticBatteryCoupleType(t *testing.T) {
	ctx := context.Background()
	c := Static{}

	cases := []struct {
		make, model, want string
	}{
		{"Tesla", "Powerwall 3", "DC"},
		{"Tesla", "Powerwall 2", "AC"},
		{"Enphase", "IQ Battery 5P", "AC"},
		{"FranklinWH", "aPower 2", "AC"},
		{"SolarEdge", "Energy Bank", "DC"},
		{"Acme", "Unknown 9000", ""},
	}
	for _, tc := range cases {
		got, err := c.BatteryCoupleType(ctx, tc.make, tc.model)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s", tc.make, tc.model)
	}
}

type fakeStore struct {
	rows  []types.CatalogEquipment
	err   error
	calls int
}

func (f *fakeStore) ListCatalog(context.Context) ([]types.CatalogEquipment, error) {
	f.calls++
	return f.rows, f.err
}

func TestStoredProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("serves and caches storage rows", func(t *testing.T) {
		store := &fakeStore{rows: []types.CatalogEquipment{
			{Type: "AC Disconnect", Make: "EATON", Model: "X1", AmpRating: "60", Amps: 60},
		}}
		s := NewStored(store, time.Minute)

		rows, err := s.Lookup(ctx, "AC Disconnect", 40, "")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "X1", rows[0].Model)

		_, err = s.Lookup(ctx, "AC Disconnect", 40, "")
		require.NoError(t, err)
		assert.Equal(t, 1, store.calls)
	})

	t.Run("falls back to built-in rows when unseeded", func(t *testing.T) {
		s := NewStored(&fakeStore{}, time.Minute)
		rows, err := s.Lookup(ctx, "AC Disconnect", 40, "")
		require.NoError(t, err)
		assert.NotEmpty(t, rows)
	})

	t.Run("falls back to built-in rows on error", func(t *testing.T) {
		s := NewStored(&fakeStore{err: errors.New("unavailable")}, time.Minute)
		rows, err := s.Lookup(ctx, "PV Meter", 100, "")
		require.NoError(t, err)
		assert.NotEmpty(t, rows)
	})

	t.Run("stored couple type wins over inference", func(t *testing.T) {
		s := NewStored(&fakeStore{rows: []types.CatalogEquipment{
			{Type: "Battery", Make: "Tesla", Model: "Powerwall 3", CoupleType: "AC"},
		}}, time.Minute)
		got, err := s.BatteryCoupleType(ctx, "tesla", "powerwall 3")
		require.NoError(t, err)
		assert.Equal(t, "AC", got)
	})
}
