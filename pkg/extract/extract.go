// Package extract builds immutable equipment state snapshots from the flat
// persisted record. Extraction is pure: it never talks to storage or the
// network, so callers resolve catalog hints (battery couple type) first and
// pass them in through Options.
package extract

import (
	"fmt"
	"strings"

	"github.com/voltbos/voltbos/pkg/types"
)

// Options carries per-run inputs that are not part of the record itself.
type Options struct {
	// UtilityName overrides the record's utility field when set.
	UtilityName string
	// Battery1CoupleType and Battery2CoupleType are catalog metadata for the
	// named battery models ("AC" or "DC"), when known. The catalog value
	// wins over inverter-model inference.
	Battery1CoupleType string
	Battery2CoupleType string
}

// microinverterMakes are manufacturers whose presence implies a
// microinverter system even when the type field is missing.
var microinverterMakes = []string{
	"enphase",
	"hoymiles",
	"apsystems",
	"ap systems",
	"iq",
}

// hybridInverterModels mark string inverters with an integrated battery
// port, which makes the system DC coupled.
var hybridInverterModels = []string{
	"powerwall 3",
	"pw3",
	"powerwall3",
	"sol-ark",
	"solark",
	"eg4",
	"hybrid",
}

// HasSystemData reports whether system n (1-4) has any equipment configured.
func HasSystemData(d types.SystemDetails, n int) bool {
	p := prefix(n)
	return d.Has(p+"solar_panel_make") ||
		d.Has(p+"micro_inverter_make") ||
		d.Has(p+"battery_1_make")
}

// ActiveSystems returns the system numbers (1-4) that have equipment data.
func ActiveSystems(d types.SystemDetails) []int {
	var out []int
	for n := 1; n <= 4; n++ {
		if HasSystemData(d, n) {
			out = append(out, n)
		}
	}
	return out
}

// ForSystem extracts the equipment state snapshot for system n (1-4).
// Missing or malformed fields become zero values; extraction never fails.
func ForSystem(d types.SystemDetails, n int, opts Options) types.EquipmentState {
	p := prefix(n)

	s := types.EquipmentState{
		SystemNumber: n,
		SystemPrefix: p,
	}

	s.UtilityName = opts.UtilityName
	if s.UtilityName == "" {
		s.UtilityName = d.String("utility")
	}

	// Solar
	s.SolarPanelMake = d.String(p + "solar_panel_make")
	s.SolarPanelModel = d.String(p + "solar_panel_model")
	s.HasSolarPanels = s.SolarPanelMake != "" && s.SolarPanelModel != ""
	s.SolarQuantity = d.Int(p + "solar_panel_qty")
	s.SolarWattage = d.Int(p + "solar_panel_wattage")
	// _existing=true means the equipment predates this project
	s.SolarPanelIsNew = !d.Bool(p + "solar_panel_existing")

	// Inverter fields use "micro_inverter" naming for string inverters too
	s.InverterMake = d.String(p + "micro_inverter_make")
	s.InverterModel = d.String(p + "micro_inverter_model")
	s.HasInverter = s.InverterMake != "" && s.InverterModel != ""
	s.InverterType = inverterType(d, p)
	s.InverterMaxContOut = d.Float(p + "inv_max_continuous_output")
	s.InverterQuantity = d.Int(p + "micro_inverter_qty")
	if s.InverterQuantity == 0 {
		s.InverterQuantity = 1
	}
	s.InverterIsNew = !d.Bool(p + "micro_inverter_existing")
	s.AggregatePVBreaker = d.Int(p + "aggregate_pv_breaker")

	// Batteries
	s.Battery1 = batteryState(d, p, 1, opts.Battery1CoupleType)
	s.Battery2 = batteryState(d, p, 2, opts.Battery2CoupleType)
	s.HasBattery = s.Battery1.Quantity > 0
	s.MultiBattery = s.Battery1.Quantity > 0 && s.Battery2.Quantity > 0

	// SMS; "No SMS" placeholder counts as absent
	s.SMSMake = d.String(p + "sms_make")
	s.SMSModel = d.String(p + "sms_model")
	s.HasSMS = s.SMSMake != "" && s.SMSModel != "" &&
		!strings.EqualFold(s.SMSMake, "no sms") &&
		!strings.EqualFold(s.SMSModel, "no sms")
	s.SMSIsNew = !d.Bool(p + "sms_existing")

	// Backup load sub panel. System 1 predates the sys-prefix convention
	// and keeps its bls1_ field names.
	if n == 1 {
		s.BackupMake = d.String("bls1_backup_load_sub_panel_make")
		s.BackupModel = d.String("bls1_backup_load_sub_panel_model")
		s.BackupBusRating = d.Int("bls1_backuploader_bus_bar_rating")
		s.BackupIsNew = !d.Bool("bls1_backuploader_existing")
	} else {
		s.BackupMake = d.String(p + "backuploadsubpanel_make")
		s.BackupModel = d.String(p + "backuploadsubpanel_model")
		s.BackupBusRating = d.Int(p + "backuploadsubpanel_bus_rating")
		s.BackupIsNew = !d.Bool(p + "backuploadsubpanel_existing")
	}
	s.HasBackupPanel = s.BackupMake != "" && s.BackupModel != ""
	s.BackupPanelBusSet = s.BackupBusRating > 0
	if !s.BackupPanelBusSet {
		s.BackupBusRating = 200
	}
	s.BackupOption = types.BackupOption(d.String(p + "backup_option"))
	s.RequiresBackupPower = s.BackupOption == types.BackupWholeHome ||
		s.BackupOption == types.BackupPartialHome

	s.POI = poiType(d.String("ele_method_of_interconnection"))

	s.CouplingType = couplingType(s)
	s.StandbyOnly = s.HasBattery && !s.HasSolarPanels
	s.GridFormingCapable = isHybridInverterModel(s.InverterModel)

	s.ExistingBOS = existingBOS(d, n)

	return s
}

func prefix(n int) string {
	return fmt.Sprintf("sys%d_", n)
}

func batteryState(d types.SystemDetails, p string, slot int, coupleHint string) types.BatteryState {
	base := fmt.Sprintf("%sbattery_%d_", p, slot)
	b := types.BatteryState{
		Make:          d.String(base + "make"),
		Model:         d.String(base + "model"),
		Quantity:      d.Int(base + "qty"),
		MaxContOutput: d.Float(base + "max_continuous_output"),
		IsNew:         !d.Bool(base + "existing"),
		CoupleType:    strings.ToUpper(strings.TrimSpace(coupleHint)),
	}
	if b.Make == "" || b.Model == "" {
		b.Quantity = 0
	}
	return b
}

// inverterType resolves the inverter class through a fallback chain: the
// explicit type field, the selected-system field, make inference, then
// model presence defaulting to string inverter.
func inverterType(d types.SystemDetails, p string) types.InverterType {
	switch t := d.String(p + "inverter_type"); t {
	case string(types.InverterMicro), string(types.InverterString):
		return types.InverterType(t)
	}
	switch strings.ToLower(d.String(p + "selectedsystem")) {
	case "microinverter":
		return types.InverterMicro
	case "inverter":
		return types.InverterString
	}
	invMake := strings.ToLower(d.String(p + "micro_inverter_make"))
	for _, m := range microinverterMakes {
		if strings.Contains(invMake, m) {
			return types.InverterMicro
		}
	}
	if d.Has(p + "micro_inverter_model") {
		return types.InverterString
	}
	return ""
}

// couplingType decides AC vs DC coupling: catalog metadata on the battery
// wins, then hybrid-inverter model inference, then AC as the safe default
// since it sizes equipment for both sources.
func couplingType(s types.EquipmentState) types.CouplingType {
	if s.Battery1.Quantity == 0 {
		return types.CouplingNone
	}
	switch s.Battery1.CoupleType {
	case "AC":
		return types.CouplingAC
	case "DC":
		return types.CouplingDC
	}
	if s.InverterType == types.InverterMicro {
		return types.CouplingAC
	}
	if isHybridInverterModel(s.InverterModel) {
		return types.CouplingDC
	}
	return types.CouplingAC
}

func isHybridInverterModel(model string) bool {
	lower := strings.ToLower(model)
	if lower == "" {
		return false
	}
	for _, m := range hybridInverterModels {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func poiType(raw string) types.POIType {
	lower := strings.ToLower(raw)
	switch {
	case lower == "":
		return ""
	case strings.Contains(lower, "supply"):
		return types.POISupplySide
	case strings.Contains(lower, "load"):
		return types.POILoadSide
	}
	return ""
}

// existingBOS scans the record for occupied slot positions in each section
// so detection and population never propose over a filled slot.
func existingBOS(d types.SystemDetails, n int) types.ExistingBOS {
	sys := fmt.Sprintf("sys%d", n)
	var e types.ExistingBOS
	for i := 1; i <= types.SectionUtility.MaxSlots(); i++ {
		if d.Has(fmt.Sprintf("bos_%s_type%d_equipment_type", sys, i)) {
			e.Utility = append(e.Utility, i)
		}
	}
	for i := 1; i <= 3; i++ {
		if d.Has(fmt.Sprintf("bos_%s_battery1_type%d_equipment_type", sys, i)) {
			e.Battery1 = append(e.Battery1, i)
		}
		if d.Has(fmt.Sprintf("bos_%s_battery2_type%d_equipment_type", sys, i)) {
			e.Battery2 = append(e.Battery2, i)
		}
		if d.Has(fmt.Sprintf("bos_%s_backup_type%d_equipment_type", sys, i)) {
			e.Backup = append(e.Backup, i)
		}
		if d.Has(fmt.Sprintf("post_sms_bos_%s_type%d_equipment_type", sys, i)) {
			e.PostSMS = append(e.PostSMS, i)
		}
	}
	e.Combine = CombineSlots(d)
	return e
}

// CombineSlots returns the occupied combine-point slots. The combine point
// belongs to the project, not to any one system.
func CombineSlots(d types.SystemDetails) []int {
	var out []int
	for i := 1; i <= types.SectionCombine.MaxSlots(); i++ {
		if d.Has(fmt.Sprintf("postcombine_%d_1_equipment_type", i)) {
			out = append(out, i)
		}
	}
	return out
}

// Positions returns the occupied positions for a section.
func Positions(e types.ExistingBOS, section types.SectionType) []int {
	switch section {
	case types.SectionUtility:
		return e.Utility
	case types.SectionBattery1:
		return e.Battery1
	case types.SectionBattery2:
		return e.Battery2
	case types.SectionBackup:
		return e.Backup
	case types.SectionPostSMS:
		return e.PostSMS
	case types.SectionCombine:
		return e.Combine
	}
	return nil
}

// NextSlot returns the first unoccupied 1-based slot in a section, or false
// when the section is full.
func NextSlot(occupied []int, section types.SectionType) (int, bool) {
	taken := make(map[int]bool, len(occupied))
	for _, p := range occupied {
		taken[p] = true
	}
	for i := 1; i <= section.MaxSlots(); i++ {
		if !taken[i] {
			return i, true
		}
	}
	return 0, false
}
