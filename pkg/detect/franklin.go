package detect

import (
	"context"
	"strings"

	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/types"
	"github.com/voltbos/voltbos/pkg/utility"
)

func isFranklinBattery(s types.EquipmentState) bool {
	combined := strings.ToLower(s.Battery1.Make + " " + s.Battery1.Model)
	return strings.Contains(combined, "franklin") || strings.Contains(combined, "apower")
}

// franklinDetectors covers FranklinWH aPower systems on APS, which always
// ship with the aGate controller acting as the SMS.
func franklinDetectors() []Detector {
	return []Detector{
		{
			ConfigID:    "franklin_aps_backup",
			Name:        "FranklinWH + APS with Backup",
			Description: "FranklinWH aPower AC-coupled storage on APS with a backed-up loads panel",
			Priority:    1,
			Utilities:   []utility.Code{utility.APS},
			Applies: func(s types.EquipmentState) bool {
				return s.HasBattery && isFranklinBattery(s) && s.RequiresBackupPower
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := franklinBase(s, deps, "FranklinWH + APS with Backup")
				addBackupSection(b, s)
				return b.build(), nil
			},
		},
		{
			ConfigID:    "franklin_aps",
			Name:        "FranklinWH + APS",
			Description: "FranklinWH aPower AC-coupled storage on APS",
			Priority:    2,
			Utilities:   []utility.Code{utility.APS},
			Applies: func(s types.EquipmentState) bool {
				return s.HasBattery && isFranklinBattery(s)
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				return franklinBase(s, deps, "FranklinWH + APS").build(), nil
			},
		},
	}
}

func franklinBase(s types.EquipmentState, deps Deps, name string) *matchBuilder {
	b := newMatch(s, deps.Utility, name, types.ConfidenceExact)
	b.meter("bi-directional", "post-SMS")
	b.add(types.SectionUtility, "PV Meter",
		sizing.Fixed(200, "200A standard production meter"), "ITRON", types.BlockPreCombine)
	if s.HasSolarPanels {
		b.add(types.SectionUtility, "AC Disconnect", pvSizing(s), "EATON", types.BlockPreCombine)
	}
	b.add(types.SectionUtility, "Fused AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
	addBatterySections(b, s)
	if s.HasSMS {
		addPostSMSSection(b, s)
	} else {
		b.note("aGate controller acts as the storage management system")
	}
	return b
}
