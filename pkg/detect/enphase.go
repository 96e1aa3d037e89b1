package detect

import (
	"context"
	"strings"

	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/types"
	"github.com/voltbos/voltbos/pkg/utility"
)

func isEnphaseBattery(s types.EquipmentState) bool {
	combined := strings.ToLower(s.Battery1.Make + " " + s.Battery1.Model)
	return strings.Contains(combined, "enphase") ||
		strings.Contains(combined, "iq battery") ||
		strings.Contains(combined, "encharge")
}

// enphaseDetectors covers Enphase IQ Battery systems on APS. These are
// always AC coupled behind IQ microinverters with the IQ System Controller
// as the SMS.
func enphaseDetectors() []Detector {
	return []Detector{
		{
			ConfigID:    "enphase_aps_backup",
			Name:        "Enphase + APS with Backup",
			Description: "Enphase IQ Battery AC-coupled storage on APS with a backed-up loads panel",
			Priority:    3,
			Utilities:   []utility.Code{utility.APS},
			Applies: func(s types.EquipmentState) bool {
				return s.HasBattery && isEnphaseBattery(s) && s.RequiresBackupPower
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := enphaseBase(s, deps, "Enphase + APS with Backup")
				addBackupSection(b, s)
				return b.build(), nil
			},
		},
		{
			ConfigID:    "enphase_aps",
			Name:        "Enphase + APS",
			Description: "Enphase IQ Battery AC-coupled storage on APS",
			Priority:    4,
			Utilities:   []utility.Code{utility.APS},
			Applies: func(s types.EquipmentState) bool {
				return s.HasBattery && isEnphaseBattery(s)
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				return enphaseBase(s, deps, "Enphase + APS").build(), nil
			},
		},
	}
}

func enphaseBase(s types.EquipmentState, deps Deps, name string) *matchBuilder {
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
	}
	return b
}
