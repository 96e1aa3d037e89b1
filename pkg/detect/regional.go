package detect

import (
	"context"

	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/types"
	"github.com/voltbos/voltbos/pkg/utility"
)

// regionalDetectors covers the non-APS Arizona utilities and Xcel Energy.
// Each utility has a battery variant and a PV-only variant; Xcel instead
// splits on the point of interconnection, which decides whether the
// disconnect must be fused.
func regionalDetectors() []Detector {
	return []Detector{
		{
			ConfigID:    "srp_battery",
			Name:        "SRP Storage",
			Description: "Battery system on Salt River Project",
			Priority:    25,
			Utilities:   []utility.Code{utility.SRP},
			Applies:     func(s types.EquipmentState) bool { return s.HasBattery },
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "SRP Storage", types.ConfidenceMedium)
				b.meter("bi-directional", "dedicated DER meter")
				b.add(types.SectionUtility, "AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
				b.add(types.SectionUtility, "PV Meter",
					sizing.Fixed(200, "200A dedicated DER meter"), "ITRON", types.BlockPreCombine)
				addBatterySections(b, s)
				if s.RequiresBackupPower {
					addBackupSection(b, s)
				}
				return b.build(), nil
			},
		},
		{
			ConfigID:    "srp_pv_only",
			Name:        "SRP PV-Only",
			Description: "Solar-only system on Salt River Project",
			Priority:    26,
			Utilities:   []utility.Code{utility.SRP},
			Applies: func(s types.EquipmentState) bool {
				return !s.HasBattery && s.HasSolarPanels && s.HasInverter
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "SRP PV-Only", types.ConfidenceMedium)
				b.meter("uni-directional", "dedicated DER meter")
				b.add(types.SectionUtility, "AC Disconnect", pvSizing(s), "EATON", types.BlockPreCombine)
				b.add(types.SectionUtility, "PV Meter",
					sizing.Fixed(200, "200A dedicated DER meter"), "ITRON", types.BlockPreCombine)
				return b.build(), nil
			},
		},
		{
			ConfigID:    "tep_battery",
			Name:        "TEP Storage",
			Description: "Battery system on Tucson Electric Power",
			Priority:    27,
			Utilities:   []utility.Code{utility.TEP},
			Applies:     func(s types.EquipmentState) bool { return s.HasBattery },
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "TEP Storage", types.ConfidenceMedium)
				b.meter("bi-directional", "DG meter")
				b.add(types.SectionUtility, "AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
				b.add(types.SectionUtility, "PV Meter",
					sizing.Fixed(200, "200A DG meter"), "ITRON", types.BlockPreCombine)
				addBatterySections(b, s)
				if s.RequiresBackupPower {
					addBackupSection(b, s)
				}
				return b.build(), nil
			},
		},
		{
			ConfigID:    "tep_pv_only",
			Name:        "TEP PV-Only",
			Description: "Solar-only system on Tucson Electric Power",
			Priority:    28,
			Utilities:   []utility.Code{utility.TEP},
			Applies: func(s types.EquipmentState) bool {
				return !s.HasBattery && s.HasSolarPanels && s.HasInverter
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "TEP PV-Only", types.ConfidenceMedium)
				b.meter("uni-directional", "DG meter")
				b.add(types.SectionUtility, "AC Disconnect", pvSizing(s), "EATON", types.BlockPreCombine)
				b.note("TEP may require a dedicated DG meter depending on system size")
				return b.build(), nil
			},
		},
		{
			ConfigID:    "trico_battery",
			Name:        "TRICO Storage",
			Description: "Battery system on Trico Electric Cooperative",
			Priority:    29,
			Utilities:   []utility.Code{utility.TRICO},
			Applies:     func(s types.EquipmentState) bool { return s.HasBattery },
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "TRICO Storage", types.ConfidenceMedium)
				b.meter("bi-directional", "co-generation meter")
				b.add(types.SectionUtility, "AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
				addBatterySections(b, s)
				if s.RequiresBackupPower {
					addBackupSection(b, s)
				}
				return b.build(), nil
			},
		},
		{
			ConfigID:    "trico_pv_only",
			Name:        "TRICO PV-Only",
			Description: "Solar-only system on Trico Electric Cooperative",
			Priority:    30,
			Utilities:   []utility.Code{utility.TRICO},
			Applies: func(s types.EquipmentState) bool {
				return !s.HasBattery && s.HasSolarPanels && s.HasInverter
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "TRICO PV-Only", types.ConfidenceMedium)
				b.meter("uni-directional", "production meter")
				b.add(types.SectionUtility, "AC Disconnect", pvSizing(s), "EATON", types.BlockPreCombine)
				return b.build(), nil
			},
		},
		{
			ConfigID:    "xcel_supply_side",
			Name:        "Xcel Supply-Side Interconnection",
			Description: "Xcel Energy interconnection requiring a fused disconnect",
			Priority:    31,
			Utilities:   []utility.Code{utility.Xcel},
			Applies: func(s types.EquipmentState) bool {
				return s.HasInverter && utility.XcelRequiresFused(string(s.POI))
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "Xcel Supply-Side Interconnection", types.ConfidenceMedium)
				b.meter("bi-directional", "production meter")
				b.add(types.SectionUtility, "Fused AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
				addBatterySections(b, s)
				b.note("supply-side interconnection requires the fused disconnect variant")
				return b.build(), nil
			},
		},
		{
			ConfigID:    "xcel_load_side",
			Name:        "Xcel Load-Side Interconnection",
			Description: "Xcel Energy load-side interconnection",
			Priority:    32,
			Utilities:   []utility.Code{utility.Xcel},
			Applies:     func(s types.EquipmentState) bool { return s.HasInverter },
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "Xcel Load-Side Interconnection", types.ConfidenceMedium)
				b.meter("bi-directional", "production meter")
				b.add(types.SectionUtility, "AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
				addBatterySections(b, s)
				return b.build(), nil
			},
		},
	}
}
