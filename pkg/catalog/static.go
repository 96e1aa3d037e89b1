package catalog

import (
	"context"

	"github.com/voltbos/voltbos/pkg/types"
)

// Static serves the built-in catalog. It backs development and tests and is
// the seed source for the storage-backed catalog.
type Static struct{}

var _ Provider = Static{}

func (Static) Lookup(_ context.Context, equipmentType string, minAmps int, preferredMake string) ([]types.CatalogEquipment, error) {
	return selectRows(defaultCatalog, equipmentType, minAmps, preferredMake), nil
}

func (Static) BatteryCoupleType(_ context.Context, make, model string) (string, error) {
	return lookupCoupleType(make, model), nil
}

func (Static) List(_ context.Context) ([]types.CatalogEquipment, error) {
	out := make([]types.CatalogEquipment, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out, nil
}

var defaultCatalog = []types.CatalogEquipment{
	{Type: "AC Disconnect", Make: "CUTLER HAMMER", Model: "DG221URB", AmpRating: "30", Amps: 30},
	{Type: "AC Disconnect", Make: "CUTLER HAMMER", Model: "DG222URB", AmpRating: "60", Amps: 60},
	{Type: "AC Disconnect", Make: "CUTLER HAMMER", Model: "DG323UGB", AmpRating: "100", Amps: 100},
	{Type: "AC Disconnect", Make: "CUTLER HAMMER", Model: "DG324URK", AmpRating: "200", Amps: 200},
	{Type: "AC Disconnect", Make: "EATON", Model: "DG221URB", AmpRating: "30", Amps: 30},
	{Type: "AC Disconnect", Make: "EATON", Model: "DG222URB", AmpRating: "60", Amps: 60},
	{Type: "AC Disconnect", Make: "EATON", Model: "DG223URB", AmpRating: "100", Amps: 100},
	{Type: "AC Disconnect", Make: "EATON", Model: "DG324URK", AmpRating: "200", Amps: 200},
	{Type: "AC Disconnect", Make: "SIEMENS", Model: "LNF221R", AmpRating: "30", Amps: 30},
	{Type: "AC Disconnect", Make: "SIEMENS", Model: "LNF222R", AmpRating: "60", Amps: 60},
	{Type: "AC Disconnect", Make: "SIEMENS", Model: "GNF323R", AmpRating: "100", Amps: 100},
	{Type: "AC Disconnect", Make: "SIEMENS", Model: "DU324RB", AmpRating: "200", Amps: 200},
	{Type: "AC Disconnect", Make: "SQUARE D", Model: "DU221RB", AmpRating: "30", Amps: 30},
	{Type: "AC Disconnect", Make: "SQUARE D", Model: "DU222RB", AmpRating: "60", Amps: 60},
	{Type: "AC Disconnect", Make: "SQUARE D", Model: "DTU223RB", AmpRating: "100", Amps: 100},
	{Type: "AC Disconnect", Make: "SQUARE D", Model: "DU324RB", AmpRating: "200", Amps: 200},

	{Type: "Fused AC Disconnect", Make: "CUTLER HAMMER", Model: "DG221NRB", AmpRating: "30", Amps: 30},
	{Type: "Fused AC Disconnect", Make: "CUTLER HAMMER", Model: "DG222NRB", AmpRating: "60", Amps: 60},
	{Type: "Fused AC Disconnect", Make: "CUTLER HAMMER", Model: "DG223NRB", AmpRating: "100", Amps: 100},
	{Type: "Fused AC Disconnect", Make: "CUTLER HAMMER", Model: "DG324NRK", AmpRating: "200", Amps: 200},
	{Type: "Fused AC Disconnect", Make: "EATON", Model: "DG221NRB", AmpRating: "30", Amps: 30},
	{Type: "Fused AC Disconnect", Make: "EATON", Model: "DG222NRB", AmpRating: "60", Amps: 60},
	{Type: "Fused AC Disconnect", Make: "EATON", Model: "DG223NRB", AmpRating: "100", Amps: 100},
	{Type: "Fused AC Disconnect", Make: "EATON", Model: "DG324NRK", AmpRating: "200", Amps: 200},
	{Type: "Fused AC Disconnect", Make: "SIEMENS", Model: "LF221R", AmpRating: "30", Amps: 30},
	{Type: "Fused AC Disconnect", Make: "SIEMENS", Model: "LF222R", AmpRating: "60", Amps: 60},
	{Type: "Fused AC Disconnect", Make: "SIEMENS", Model: "GF323", AmpRating: "100", Amps: 100},
	{Type: "Fused AC Disconnect", Make: "SIEMENS", Model: "GF224NR", AmpRating: "200", Amps: 200},
	{Type: "Fused AC Disconnect", Make: "SIEMENS", Model: "GNF324R", AmpRating: "200", Amps: 200},
	{Type: "Fused AC Disconnect", Make: "SQUARE D", Model: "D221NRB", AmpRating: "30", Amps: 30},
	{Type: "Fused AC Disconnect", Make: "SQUARE D", Model: "D222NRB", AmpRating: "60", Amps: 60},

	{Type: "Combiner Panel", Make: "EATON", Model: "BR816L100RP", AmpRating: "100", Amps: 100},
	{Type: "Combiner Panel", Make: "EATON", Model: "BR816L125RP", AmpRating: "125", Amps: 125},
	{Type: "Combiner Panel", Make: "EATON", Model: "BR816L200RP", AmpRating: "200", Amps: 200},
	{Type: "Combiner Panel", Make: "SIEMENS", Model: "W0816ML1125CU", AmpRating: "125", Amps: 125},

	{Type: "PV Meter", Make: "EATON", Model: "011", AmpRating: "125", Amps: 125},
	{Type: "PV Meter", Make: "EATON", Model: "1004455BCH", AmpRating: "200", Amps: 200},
	{Type: "PV Meter", Make: "MILBANK", Model: "U5929XL", AmpRating: "100", Amps: 100},
	{Type: "PV Meter", Make: "MILBANK", Model: "U4015-0", AmpRating: "200", Amps: 200},
	{Type: "PV Meter", Make: "MILBANK", Model: "U4518-XL-W", AmpRating: "200", Amps: 200},
	{Type: "PV Meter", Make: "MILBANK", Model: "U1104-RL-PG-KK", AmpRating: "200", Amps: 200},
	{Type: "PV Meter", Make: "SIEMENS", Model: "UAT111-BPCC", AmpRating: "135", Amps: 135},

	{Type: "Bi-Directional Meter", Make: "ITRON", Model: "C1SR", AmpRating: "200", Amps: 200},
	{Type: "Bi-Directional Meter", Make: "LANDIS+GYR", Model: "FOCUS AXE-SD", AmpRating: "200", Amps: 200},
	{Type: "Bi-Directional Meter", Make: "SENSUS", Model: "iCon A", AmpRating: "200", Amps: 200},

	{Type: "Bi-Directional Meter DER Side Disconnect", Make: "EATON", Model: "DG221URB", AmpRating: "30", Amps: 30},
	{Type: "Bi-Directional Meter DER Side Disconnect", Make: "EATON", Model: "DG222URB", AmpRating: "60", Amps: 60},
	{Type: "Bi-Directional Meter DER Side Disconnect", Make: "EATON", Model: "DG223URB", AmpRating: "100", Amps: 100},
	{Type: "Bi-Directional Meter DER Side Disconnect", Make: "EATON", Model: "DG324URK", AmpRating: "200", Amps: 200},

	{Type: "Bi-Directional Meter Line Side Disconnect", Make: "EATON", Model: "DG221URB", AmpRating: "30", Amps: 30},
	{Type: "Bi-Directional Meter Line Side Disconnect", Make: "EATON", Model: "DG222URB", AmpRating: "60", Amps: 60},
	{Type: "Bi-Directional Meter Line Side Disconnect", Make: "EATON", Model: "DG223URB", AmpRating: "100", Amps: 100},
	{Type: "Bi-Directional Meter Line Side Disconnect", Make: "EATON", Model: "DG324URK", AmpRating: "200", Amps: 200},

	{Type: "Load Center", Make: "SQUARE D", Model: "QO142M200PC", AmpRating: "200", Amps: 200},
	{Type: "Load Center", Make: "EATON", Model: "BR2040B200", AmpRating: "200", Amps: 200},
	{Type: "Load Center", Make: "SIEMENS", Model: "P2040B1200CU", AmpRating: "200", Amps: 200},

	{Type: "Junction Box", Make: "VYNCKIER", Model: "RU2LP", AmpRating: ""},
	{Type: "Junction Box", Make: "WILEY", Model: "BR816L100RP", AmpRating: "100", Amps: 100},
}
