package detect

import (
	"context"

	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/types"
	"github.com/voltbos/voltbos/pkg/utility"
)

// apsDetectors is the APS configuration grid: DC-coupled variants, AC
// string and AC micro variants split by SMS and backup presence, then the
// PV-only ladder. Brand-specific APS detectors (Franklin, Enphase, Tesla)
// outrank all of these.
func apsDetectors() []Detector {
	var out []Detector
	out = append(out, apsDCCoupledGrid()...)
	out = append(out, apsACCoupledGrid()...)
	out = append(out, apsPVOnlyLadder()...)
	return out
}

type apsVariant struct {
	id       string
	name     string
	priority int
	sms      bool
	backup   bool
}

func apsDCCoupledGrid() []Detector {
	variants := []apsVariant{
		{"aps_dc_sms_backup", "APS DC-Coupled + SMS + Backup", 5, true, true},
		{"aps_dc_sms", "APS DC-Coupled + SMS", 6, true, false},
		{"aps_dc_backup", "APS DC-Coupled + Backup", 7, false, true},
		{"aps_dc", "APS DC-Coupled", 8, false, false},
	}

	out := make([]Detector, 0, len(variants))
	for _, v := range variants {
		v := v
		out = append(out, Detector{
			ConfigID:    v.id,
			Name:        v.name,
			Description: "DC-coupled battery behind a hybrid inverter on APS",
			Priority:    v.priority,
			Utilities:   []utility.Code{utility.APS},
			Applies: func(s types.EquipmentState) bool {
				return s.HasBattery && s.CouplingType == types.CouplingDC &&
					s.HasSMS == v.sms && s.RequiresBackupPower == v.backup
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, v.name, types.ConfidenceHigh)
				b.meter("bi-directional", "inverter output")
				b.add(types.SectionUtility, "PV Meter",
					sizing.Fixed(200, "200A standard production meter"), "ITRON", types.BlockPreCombine)
				b.add(types.SectionUtility, "AC Disconnect",
					sizing.DCCoupled(s.InverterMaxContOut), "EATON", types.BlockPreCombine)
				b.add(types.SectionUtility, "Fused AC Disconnect",
					sizing.DCCoupled(s.InverterMaxContOut), "EATON", types.BlockPreCombine)
				if v.backup {
					addBackupSection(b, s)
				}
				if v.sms {
					addPostSMSSection(b, s)
				}
				b.note("DC-coupled battery shares the inverter output, no separate battery chain")
				return b.build(), nil
			},
		})
	}
	return out
}

func apsACCoupledGrid() []Detector {
	type acVariant struct {
		apsVariant
		inverterType types.InverterType
	}
	variants := []acVariant{
		{apsVariant{"aps_ac_string_sms_backup", "APS AC-Coupled String + SMS + Backup", 11, true, true}, types.InverterString},
		{apsVariant{"aps_ac_string_sms", "APS AC-Coupled String + SMS", 12, true, false}, types.InverterString},
		{apsVariant{"aps_ac_string_backup", "APS AC-Coupled String + Backup", 13, false, true}, types.InverterString},
		{apsVariant{"aps_ac_string", "APS AC-Coupled String", 14, false, false}, types.InverterString},
		{apsVariant{"aps_ac_micro_sms_backup", "APS AC-Coupled Micro + SMS + Backup", 15, true, true}, types.InverterMicro},
		{apsVariant{"aps_ac_micro_sms", "APS AC-Coupled Micro + SMS", 16, true, false}, types.InverterMicro},
		{apsVariant{"aps_ac_micro_backup", "APS AC-Coupled Micro + Backup", 17, false, true}, types.InverterMicro},
		{apsVariant{"aps_ac_micro", "APS AC-Coupled Micro", 18, false, false}, types.InverterMicro},
	}

	out := make([]Detector, 0, len(variants))
	for _, v := range variants {
		v := v
		out = append(out, Detector{
			ConfigID:    v.id,
			Name:        v.name,
			Description: "AC-coupled battery on APS",
			Priority:    v.priority,
			Utilities:   []utility.Code{utility.APS},
			Applies: func(s types.EquipmentState) bool {
				return s.HasBattery && s.HasSolarPanels &&
					s.CouplingType == types.CouplingAC &&
					s.InverterType == v.inverterType &&
					s.HasSMS == v.sms && s.RequiresBackupPower == v.backup
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, v.name, types.ConfidenceHigh)
				b.meter("bi-directional", "post-SMS")
				b.add(types.SectionUtility, "PV Meter",
					sizing.Fixed(200, "200A standard production meter"), "ITRON", types.BlockPreCombine)
				b.add(types.SectionUtility, "AC Disconnect", pvSizing(s), "EATON", types.BlockPreCombine)
				b.add(types.SectionUtility, "Fused AC Disconnect", combinedSizing(s), "EATON", types.BlockPreCombine)
				addBatterySections(b, s)
				if v.backup {
					addBackupSection(b, s)
				}
				if v.sms {
					addPostSMSSection(b, s)
				}
				return b.build(), nil
			},
		})
	}
	return out
}

func apsPVOnlyLadder() []Detector {
	type pvVariant struct {
		id           string
		name         string
		priority     int
		inverterType types.InverterType
		sms          bool
		combiner     bool
	}
	variants := []pvVariant{
		{"aps_pv_micro_sms", "APS PV-Only Micro + SMS", 19, types.InverterMicro, true, false},
		{"aps_pv_string_sms", "APS PV-Only String + SMS", 20, types.InverterString, true, false},
		{"aps_pv_micro_combiner", "APS PV-Only Micro + Combiner", 21, types.InverterMicro, false, true},
		{"aps_pv_string_combiner", "APS PV-Only String + Combiner", 22, types.InverterString, false, true},
		{"aps_pv_micro", "APS PV-Only Micro", 23, types.InverterMicro, false, false},
		{"aps_pv_string", "APS PV-Only String", 24, types.InverterString, false, false},
	}

	out := make([]Detector, 0, len(variants))
	for _, v := range variants {
		v := v
		out = append(out, Detector{
			ConfigID:    v.id,
			Name:        v.name,
			Description: "Solar-only system on APS",
			Priority:    v.priority,
			Utilities:   []utility.Code{utility.APS},
			Applies: func(s types.EquipmentState) bool {
				if s.HasBattery || !s.HasSolarPanels || !s.HasInverter {
					return false
				}
				if s.InverterType != v.inverterType {
					return false
				}
				if v.sms != s.HasSMS {
					return false
				}
				if v.combiner && s.InverterQuantity < 2 {
					return false
				}
				return true
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				b := newMatch(s, deps.Utility, v.name, types.ConfidenceHigh)
				b.meter("uni-directional", "production meter")
				b.add(types.SectionUtility, "PV Meter",
					sizing.Fixed(200, "200A standard production meter"), "ITRON", types.BlockPreCombine)
				b.add(types.SectionUtility, "AC Disconnect", pvSizing(s), "EATON", types.BlockPreCombine)
				if v.combiner {
					b.add(types.SectionUtility, "Combiner Panel", pvSizing(s), "EATON", types.BlockPreCombine)
					b.note("%d inverters aggregate at a combiner panel", s.InverterQuantity)
				}
				if v.sms {
					addPostSMSSection(b, s)
				}
				return b.build(), nil
			},
		})
	}
	return out
}
