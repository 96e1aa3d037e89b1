package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemDetailsAccessors(t *testing.T) {
	d := SystemDetails{
		"sys1_solar_panel_make":       "  QCells ",
		"sys1_solar_panel_quantity":   float64(24),
		"sys1_inv_max_continuous_output": "32",
		"sys1_battery_1_existing":     "true",
		"sys2_battery_1_existing":     true,
		"sys1_sms_existing":           "TRUE",
		"sys1_micro_inverter_quantity": "not a number",
		"empty":                       "",
		"nil":                         nil,
	}

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "QCells", d.String("sys1_solar_panel_make"))
		assert.Equal(t, "24", d.String("sys1_solar_panel_quantity"))
		assert.Equal(t, "true", d.String("sys2_battery_1_existing"))
		assert.Equal(t, "", d.String("missing"))
		assert.Equal(t, "", d.String("nil"))
	})

	t.Run("numbers", func(t *testing.T) {
		assert.Equal(t, 24, d.Int("sys1_solar_panel_quantity"))
		assert.Equal(t, 32.0, d.Float("sys1_inv_max_continuous_output"))
		assert.Equal(t, 0, d.Int("sys1_micro_inverter_quantity"))
		assert.Equal(t, 0.0, d.Float("missing"))
	})

	t.Run("bool", func(t *testing.T) {
		assert.True(t, d.Bool("sys1_battery_1_existing"))
		assert.True(t, d.Bool("sys2_battery_1_existing"))
		assert.True(t, d.Bool("sys1_sms_existing"))
		assert.False(t, d.Bool("sys1_solar_panel_make"))
		assert.False(t, d.Bool("missing"))
	})

	t.Run("has", func(t *testing.T) {
		assert.True(t, d.Has("sys1_solar_panel_make"))
		assert.False(t, d.Has("empty"))
		assert.False(t, d.Has("nil"))
		assert.False(t, d.Has("missing"))
	})
}

func TestSectionMaxSlots(t *testing.T) {
	assert.Equal(t, 6, SectionUtility.MaxSlots())
	assert.Equal(t, 3, SectionBattery1.MaxSlots())
	assert.Equal(t, 3, SectionBattery2.MaxSlots())
	assert.Equal(t, 3, SectionBackup.MaxSlots())
	assert.Equal(t, 3, SectionPostSMS.MaxSlots())
	assert.Equal(t, 3, SectionCombine.MaxSlots())
}

func TestProjectConfigurationMatch(t *testing.T) {
	m := &ConfigurationMatch{ConfigID: "aps_dc_coupled", SystemNumber: 2}
	p := ProjectConfiguration{Systems: []SystemResult{
		{SystemNumber: 1},
		{SystemNumber: 2, Match: m},
	}}
	assert.Nil(t, p.Match(1))
	assert.Equal(t, m, p.Match(2))
	assert.Nil(t, p.Match(3))
}
