package detect

import (
	"fmt"

	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/types"
)

// pvSizing sizes for solar output only. Microinverter systems size from the
// aggregate PV breaker when it is set, since per-unit output times quantity
// overshoots the actual backfeed.
func pvSizing(s types.EquipmentState) sizing.Result {
	if s.InverterType == types.InverterMicro && s.AggregatePVBreaker > 0 {
		return sizing.Fixed(s.AggregatePVBreaker,
			fmt.Sprintf("%dA aggregate PV breaker", s.AggregatePVBreaker))
	}
	return sizing.DCCoupled(s.InverterMaxContOut)
}

// combinedSizing sizes for everything the utility side sees: inverter plus
// battery for AC coupling, inverter only for DC coupling.
func combinedSizing(s types.EquipmentState) sizing.Result {
	switch s.CouplingType {
	case types.CouplingDC:
		return sizing.DCCoupled(s.InverterMaxContOut)
	case types.CouplingAC:
		return sizing.ACCoupled(s.InverterMaxContOut, s.BatteryMaxContOutput())
	}
	return pvSizing(s)
}

// addBatterySections places the per-battery disconnects. DC-coupled
// batteries sit behind the inverter and get no battery chain.
func addBatterySections(b *matchBuilder, s types.EquipmentState) {
	if !s.HasBattery || s.CouplingType == types.CouplingDC {
		return
	}
	b.add(types.SectionBattery1, "AC Disconnect",
		sizing.BatteryOnly(s.Battery1.MaxContOutput), "EATON", types.BlockESS)
	if s.MultiBattery {
		b.add(types.SectionBattery2, "AC Disconnect",
			sizing.BatteryOnly(s.Battery2.MaxContOutput), "EATON", types.BlockESS)
	}
}

// addBackupSection places the backed-up loads panel sized to its bus.
func addBackupSection(b *matchBuilder, s types.EquipmentState) {
	b.add(types.SectionBackup, "Load Center",
		sizing.FromBusRating(s.BackupBusRating), "SQUARE D", types.BlockBackup)
	if !s.BackupPanelBusSet {
		b.note("backup panel bus rating not set, assuming 200A")
	}
}

// addPostSMSSection places the metering chain between the SMS and the
// utility.
func addPostSMSSection(b *matchBuilder, s types.EquipmentState) {
	b.add(types.SectionPostSMS, "Bi-Directional Meter",
		sizing.Fixed(200, "200A standard service meter"), "ITRON", types.BlockPostSMS)
	b.add(types.SectionPostSMS, "Bi-Directional Meter DER Side Disconnect",
		combinedSizing(s), "EATON", types.BlockPostSMS)
}
