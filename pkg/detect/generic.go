package detect

import (
	"context"

	"github.com/voltbos/voltbos/pkg/types"
)

// genericDetectors are the last-resort fallbacks for any utility. They only
// ever run when nothing more specific matched, so their confidence is low
// and their proposals stick to standard equipment names.
func genericDetectors() []Detector {
	return []Detector{
		{
			ConfigID:    "generic_ac_coupled",
			Name:        "Solar + Storage",
			Description: "AC-coupled solar and storage, generic utility requirements",
			Priority:    40,
			Applies: func(s types.EquipmentState) bool {
				return s.HasBattery && s.HasSolarPanels
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "Solar + Storage", types.ConfidenceLow)
				b.meter("bi-directional", "inverter output")
				b.add(types.SectionUtility, "AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
				addBatterySections(b, s)
				if s.RequiresBackupPower {
					addBackupSection(b, s)
				}
				if s.HasSMS {
					addPostSMSSection(b, s)
				}
				b.note("utility not recognized, applied standard interconnection requirements")
				return b.build(), nil
			},
		},
		{
			ConfigID:    "generic_battery_only",
			Name:        "Standby Storage",
			Description: "Battery without solar, generic utility requirements",
			Priority:    41,
			Applies: func(s types.EquipmentState) bool {
				return s.StandbyOnly
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "Standby Storage", types.ConfidenceLow)
				b.meter("bi-directional", "")
				b.add(types.SectionUtility, "AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
				addBatterySections(b, s)
				if s.RequiresBackupPower {
					addBackupSection(b, s)
				}
				return b.build(), nil
			},
		},
		{
			ConfigID:    "generic_pv_only",
			Name:        "Solar Only",
			Description: "Solar without storage, generic utility requirements",
			Priority:    42,
			Applies: func(s types.EquipmentState) bool {
				return !s.HasBattery && s.HasSolarPanels && s.HasInverter
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, "Solar Only", types.ConfidenceLow)
				b.meter("uni-directional", "production meter")
				b.add(types.SectionUtility, "AC Disconnect", pvSizing(s), "EATON", types.BlockPreCombine)
				return b.build(), nil
			},
		},
	}
}
