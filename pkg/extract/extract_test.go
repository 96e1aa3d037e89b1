package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltbos/voltbos/pkg/types"
)

func enphaseDetails() types.SystemDetails {
	return types.SystemDetails{
		"utility":                              "Arizona Public Service (APS)",
		"sys1_solar_panel_make":                "QCells",
		"sys1_solar_panel_model":               "Q.PEAK DUO BLK ML-G10+",
		"sys1_solar_panel_qty":                 "24",
		"sys1_solar_panel_wattage":             "400",
		"sys1_micro_inverter_make":             "Enphase",
		"sys1_micro_inverter_model":            "IQ8PLUS-72-2-US",
		"sys1_micro_inverter_qty":              "24",
		"sys1_inv_max_continuous_output":       "32",
		"sys1_aggregate_pv_breaker":            "40",
		"sys1_battery_1_make":                  "Enphase",
		"sys1_battery_1_model":                 "IQ Battery 5P",
		"sys1_battery_1_qty":                   "2",
		"sys1_battery_1_max_continuous_output": "30",
		"sys1_sms_make":                        "Enphase",
		"sys1_sms_model":                       "IQ System Controller 3",
		"sys1_backup_option":                   "Whole Home",
		"bls1_backup_load_sub_panel_make":      "Square D",
		"bls1_backup_load_sub_panel_model":     "QO142M200PC",
	}
}

func TestForSystemEnphase(t *testing.T) {
	s := ForSystem(enphaseDetails(), 1, Options{Battery1CoupleType: "AC"})

	assert.Equal(t, 1, s.SystemNumber)
	assert.Equal(t, "sys1_", s.SystemPrefix)
	assert.Equal(t, "Arizona Public Service (APS)", s.UtilityName)

	assert.True(t, s.HasSolarPanels)
	assert.Equal(t, 24, s.SolarQuantity)
	assert.True(t, s.SolarPanelIsNew)

	assert.True(t, s.HasInverter)
	assert.Equal(t, types.InverterMicro, s.InverterType)
	assert.Equal(t, 32.0, s.InverterMaxContOut)
	assert.Equal(t, 40, s.AggregatePVBreaker)

	assert.True(t, s.HasBattery)
	assert.Equal(t, 2, s.Battery1.Quantity)
	assert.Equal(t, 30.0, s.Battery1.MaxContOutput)
	assert.False(t, s.MultiBattery)
	assert.Equal(t, types.CouplingAC, s.CouplingType)

	assert.True(t, s.HasSMS)
	assert.True(t, s.HasBackupPanel)
	assert.Equal(t, "Square D", s.BackupMake)
	assert.Equal(t, 200, s.BackupBusRating)
	assert.False(t, s.BackupPanelBusSet)
	assert.True(t, s.RequiresBackupPower)
	assert.False(t, s.StandbyOnly)
}

func TestForSystemExistingInversion(t *testing.T) {
	d := enphaseDetails()
	d["sys1_solar_panel_existing"] = "true"
	d["sys1_micro_inverter_existing"] = true
	d["sys1_battery_1_existing"] = "true"

	s := ForSystem(d, 1, Options{})
	assert.False(t, s.SolarPanelIsNew)
	assert.False(t, s.InverterIsNew)
	assert.False(t, s.Battery1.IsNew)
	assert.True(t, s.SMSIsNew)
}

func TestForSystemBackupPrefixQuirk(t *testing.T) {
	d := types.SystemDetails{
		"sys2_solar_panel_make":              "REC",
		"sys2_solar_panel_model":             "Alpha Pure-R",
		"sys2_backuploadsubpanel_make":       "Eaton",
		"sys2_backuploadsubpanel_model":      "BR2040B200",
		"sys2_backuploadsubpanel_bus_rating": "225",
	}
	s := ForSystem(d, 2, Options{})
	assert.True(t, s.HasBackupPanel)
	assert.Equal(t, "Eaton", s.BackupMake)
	assert.Equal(t, 225, s.BackupBusRating)
	assert.True(t, s.BackupPanelBusSet)

	// bls fields only apply to system 1
	d2 := types.SystemDetails{
		"bls1_backup_load_sub_panel_make":  "Square D",
		"bls1_backup_load_sub_panel_model": "QO142M200PC",
		"bls1_backuploader_bus_bar_rating": "200",
	}
	s2 := ForSystem(d2, 1, Options{})
	assert.True(t, s2.HasBackupPanel)
	assert.True(t, s2.BackupPanelBusSet)
}

func TestInverterTypeFallbacks(t *testing.T) {
	t.Run("explicit field wins", func(t *testing.T) {
		d := types.SystemDetails{
			"sys1_inverter_type":        "inverter",
			"sys1_micro_inverter_make":  "Enphase",
			"sys1_micro_inverter_model": "IQ8",
		}
		assert.Equal(t, types.InverterString, ForSystem(d, 1, Options{}).InverterType)
	})
	t.Run("selectedsystem", func(t *testing.T) {
		d := types.SystemDetails{"sys1_selectedsystem": "Microinverter"}
		assert.Equal(t, types.InverterMicro, ForSystem(d, 1, Options{}).InverterType)
	})
	t.Run("inferred from make", func(t *testing.T) {
		d := types.SystemDetails{"sys1_micro_inverter_make": "AP Systems"}
		assert.Equal(t, types.InverterMicro, ForSystem(d, 1, Options{}).InverterType)
	})
	t.Run("model presence defaults to string", func(t *testing.T) {
		d := types.SystemDetails{"sys1_micro_inverter_model": "SE7600H-US"}
		assert.Equal(t, types.InverterString, ForSystem(d, 1, Options{}).InverterType)
	})
	t.Run("nothing", func(t *testing.T) {
		assert.Equal(t, types.InverterType(""), ForSystem(types.SystemDetails{}, 1, Options{}).InverterType)
	})
}

func TestCouplingType(t *testing.T) {
	base := func() types.SystemDetails {
		return types.SystemDetails{
			"sys1_micro_inverter_make":  "Tesla",
			"sys1_micro_inverter_model": "Powerwall 3",
			"sys1_battery_1_make":       "Tesla",
			"sys1_battery_1_model":      "Powerwall 3",
			"sys1_battery_1_qty":        "1",
		}
	}

	t.Run("catalog hint wins", func(t *testing.T) {
		s := ForSystem(base(), 1, Options{Battery1CoupleType: "ac"})
		assert.Equal(t, types.CouplingAC, s.CouplingType)
	})
	t.Run("hybrid model infers DC", func(t *testing.T) {
		s := ForSystem(base(), 1, Options{})
		assert.Equal(t, types.CouplingDC, s.CouplingType)
		assert.True(t, s.GridFormingCapable)
	})
	t.Run("no battery means no coupling", func(t *testing.T) {
		d := base()
		delete(d, "sys1_battery_1_qty")
		assert.Equal(t, types.CouplingNone, ForSystem(d, 1, Options{}).CouplingType)
	})
	t.Run("micro with battery defaults AC", func(t *testing.T) {
		d := base()
		d["sys1_micro_inverter_make"] = "Enphase"
		d["sys1_micro_inverter_model"] = "IQ8PLUS"
		assert.Equal(t, types.CouplingAC, ForSystem(d, 1, Options{}).CouplingType)
	})
}

func TestStandbyOnly(t *testing.T) {
	d := types.SystemDetails{
		"sys1_battery_1_make":  "Franklin",
		"sys1_battery_1_model": "aPower 2",
		"sys1_battery_1_qty":   "2",
	}
	s := ForSystem(d, 1, Options{})
	assert.True(t, s.StandbyOnly)
	assert.True(t, s.HasBattery)
	assert.False(t, s.HasSolarPanels)
}

func TestExistingBOSScan(t *testing.T) {
	d := types.SystemDetails{
		"bos_sys1_type1_equipment_type":          "Uni-Directional Meter",
		"bos_sys1_type3_equipment_type":          "Utility Disconnect",
		"bos_sys1_battery1_type1_equipment_type": "AC Disconnect",
		"bos_sys1_backup_type2_equipment_type":   "Load Center",
		"post_sms_bos_sys1_type1_equipment_type": "Bi-Directional Meter",
		"postcombine_1_1_equipment_type":         "Combiner Panel",
	}
	s := ForSystem(d, 1, Options{})
	assert.Equal(t, []int{1, 3}, s.ExistingBOS.Utility)
	assert.Equal(t, []int{1}, s.ExistingBOS.Battery1)
	assert.Empty(t, s.ExistingBOS.Battery2)
	assert.Equal(t, []int{2}, s.ExistingBOS.Backup)
	assert.Equal(t, []int{1}, s.ExistingBOS.PostSMS)
	assert.Equal(t, []int{1}, s.ExistingBOS.Combine)
}

func TestHasSystemDataAndActiveSystems(t *testing.T) {
	d := types.SystemDetails{
		"sys1_solar_panel_make":    "QCells",
		"sys3_battery_1_make":      "Tesla",
		"sys4_micro_inverter_make": "Enphase",
	}
	assert.True(t, HasSystemData(d, 1))
	assert.False(t, HasSystemData(d, 2))
	assert.Equal(t, []int{1, 3, 4}, ActiveSystems(d))
	assert.Empty(t, ActiveSystems(types.SystemDetails{}))
}

func TestNextSlot(t *testing.T) {
	slot, ok := NextSlot(nil, types.SectionUtility)
	require.True(t, ok)
	assert.Equal(t, 1, slot)

	slot, ok = NextSlot([]int{1, 2}, types.SectionUtility)
	require.True(t, ok)
	assert.Equal(t, 3, slot)

	slot, ok = NextSlot([]int{1, 3}, types.SectionBattery1)
	require.True(t, ok)
	assert.Equal(t, 2, slot)

	_, ok = NextSlot([]int{1, 2, 3}, types.SectionBackup)
	assert.False(t, ok)
}

func TestParseCombinePoint(t *testing.T) {
	t.Run("json positions", func(t *testing.T) {
		d := types.SystemDetails{
			"ele_combine_positions": `{"method":"Combiner Panel","systems":[1,2]}`,
		}
		cp, ok := ParseCombinePoint(d)
		require.True(t, ok)
		assert.Equal(t, []int{1, 2}, cp.Systems)
		assert.Equal(t, "Combiner Panel", cp.Method)
	})
	t.Run("fallback to combine systems text", func(t *testing.T) {
		d := types.SystemDetails{
			"ele_combine_positions": "not json",
			"ele_combine_systems":   "System 1 + System 2",
		}
		cp, ok := ParseCombinePoint(d)
		require.True(t, ok)
		assert.Equal(t, []int{1, 2}, cp.Systems)
	})
	t.Run("single system is not a combine", func(t *testing.T) {
		d := types.SystemDetails{"ele_combine_systems": "System 1"}
		_, ok := ParseCombinePoint(d)
		assert.False(t, ok)
	})
	t.Run("absent", func(t *testing.T) {
		_, ok := ParseCombinePoint(types.SystemDetails{})
		assert.False(t, ok)
	})
}
