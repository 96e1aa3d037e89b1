// Package catalog resolves equipment types and minimum amp ratings to
// concrete devices from the BOS equipment catalog.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/voltbos/voltbos/pkg/types"
)

// Provider looks up catalog equipment. Lookup returns every device of the
// given standard type at the smallest rating at or above minAmps, narrowed
// to preferredMake when that make carries the rating. An empty result means
// nothing in the catalog satisfies the minimum.
type Provider interface {
	Lookup(ctx context.Context, equipmentType string, minAmps int, preferredMake string) ([]types.CatalogEquipment, error)

	// BatteryCoupleType returns the coupling metadata ("AC" or "DC") for a
	// battery model, or "" when unknown.
	BatteryCoupleType(ctx context.Context, make, model string) (string, error)

	// List returns all catalog rows, for the list API and seeding.
	List(ctx context.Context) ([]types.CatalogEquipment, error)
}

// selectRows applies the shared lookup semantics over a row set.
func selectRows(rows []types.CatalogEquipment, equipmentType string, minAmps int, preferredMake string) []types.CatalogEquipment {
	var typed []types.CatalogEquipment
	for _, r := range rows {
		if strings.EqualFold(r.Type, equipmentType) {
			typed = append(typed, r)
		}
	}
	if len(typed) == 0 {
		return nil
	}

	// Unrated equipment (junction boxes) matches only when no minimum is
	// required.
	best := 0
	for _, r := range typed {
		if r.Amps < minAmps {
			continue
		}
		if best == 0 || r.Amps < best {
			best = r.Amps
		}
	}
	if best == 0 && minAmps > 0 {
		return nil
	}

	var out []types.CatalogEquipment
	for _, r := range typed {
		if r.Amps == best {
			out = append(out, r)
		}
	}

	if preferredMake != "" {
		var preferred []types.CatalogEquipment
		for _, r := range out {
			if strings.EqualFold(r.Make, preferredMake) {
				preferred = append(preferred, r)
			}
		}
		if len(preferred) > 0 {
			out = preferred
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Make != out[j].Make {
			return out[i].Make < out[j].Make
		}
		return out[i].Model < out[j].Model
	})
	return out
}

// batteryCoupleType matches battery metadata by model substring, most
// specific first.
var batteryCoupleTypes = []struct {
	match      string
	coupleType string
}{
	{"powerwall 3", "DC"},
	{"pw3", "DC"},
	{"powerwall", "AC"},
	{"iq battery", "AC"},
	{"encharge", "AC"},
	{"apower", "AC"},
	{"evervolt", "AC"},
	{"energy bank", "DC"},
	{"resu", "AC"},
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func lookupCoupleType(make, model string) string {
	combined := strings.ToLower(make + " " + model)
	for _, b := range batteryCoupleTypes {
		if strings.Contains(combined, b.match) {
			return b.coupleType
		}
	}
	return ""
}
