package detect

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voltbos/voltbos/pkg/catalog"
	"github.com/voltbos/voltbos/pkg/storage"
	"github.com/voltbos/voltbos/pkg/storage/storagemock"
	"github.com/voltbos/voltbos/pkg/types"
)

func aggregatorProject(db *storagemock.MockDatabase, details types.SystemDetails) {
	db.On("GetSystemDetails", mock.Anything, "proj1").Return(details, nil)
	db.On("GetProject", mock.Anything, "proj1").
		Return(types.Project{}, storage.ErrProjectNotFound)
	db.On("InsertConfiguration", mock.Anything, "proj1", mock.Anything).Return(nil)
}

func TestAggregatorRun(t *testing.T) {
	details := types.SystemDetails{
		"utility": "Arizona Public Service (APS)",

		"sys1_solar_panel_make":                "QCells",
		"sys1_solar_panel_model":               "Q.PEAK DUO",
		"sys1_micro_inverter_make":             "Enphase",
		"sys1_micro_inverter_model":            "IQ8PLUS",
		"sys1_inv_max_continuous_output":       "32",
		"sys1_battery_1_make":                  "Enphase",
		"sys1_battery_1_model":                 "IQ Battery 5P",
		"sys1_battery_1_qty":                   "2",
		"sys1_battery_1_max_continuous_output": "30",
		"sys1_sms_make":                        "Enphase",
		"sys1_sms_model":                       "IQ System Controller 3",

		"sys2_solar_panel_make":          "REC",
		"sys2_solar_panel_model":         "Alpha Pure-R",
		"sys2_micro_inverter_make":       "SolarEdge",
		"sys2_micro_inverter_model":      "SE7600H-US",
		"sys2_inv_max_continuous_output": "32",
	}

	db := &storagemock.MockDatabase{}
	aggregatorProject(db, details)

	agg := NewAggregator(Default(), catalog.Static{}, db)
	cfg, err := agg.Run(context.Background(), "proj1")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.RunID)
	assert.Equal(t, "proj1", cfg.ProjectID)
	assert.Equal(t, "Arizona Public Service (APS)", cfg.UtilityName)
	require.Len(t, cfg.Systems, 2)

	m1 := cfg.Match(1)
	require.NotNil(t, m1)
	assert.Equal(t, "enphase_aps", m1.ConfigID)

	m2 := cfg.Match(2)
	require.NotNil(t, m2)
	assert.Equal(t, "aps_pv_string", m2.ConfigID)

	assert.Equal(t, 2, cfg.MatchCount)
	assert.NotEmpty(t, cfg.AllEquipment)
	assert.Nil(t, cfg.Combine)
	db.AssertCalled(t, "InsertConfiguration", mock.Anything, "proj1", mock.Anything)
}

func TestAggregatorCombinePass(t *testing.T) {
	details := types.SystemDetails{
		"utility": "APS",

		// system 1 is DC coupled (Powerwall 3)
		"sys1_solar_panel_make":          "QCells",
		"sys1_solar_panel_model":         "Q.PEAK DUO",
		"sys1_micro_inverter_make":       "Tesla",
		"sys1_micro_inverter_model":      "Powerwall 3",
		"sys1_inv_max_continuous_output": "32",
		"sys1_battery_1_make":            "Tesla",
		"sys1_battery_1_model":           "Powerwall 3",
		"sys1_battery_1_qty":             "1",

		// system 2 is AC coupled (Enphase)
		"sys2_solar_panel_make":                "REC",
		"sys2_solar_panel_model":               "Alpha Pure-R",
		"sys2_micro_inverter_make":             "Enphase",
		"sys2_micro_inverter_model":            "IQ8PLUS",
		"sys2_inv_max_continuous_output":       "16",
		"sys2_battery_1_make":                  "Enphase",
		"sys2_battery_1_model":                 "IQ Battery 5P",
		"sys2_battery_1_qty":                   "1",
		"sys2_battery_1_max_continuous_output": "15",

		"ele_combine_positions": `{"method":"Combiner Panel","systems":[1,2]}`,
	}

	db := &storagemock.MockDatabase{}
	aggregatorProject(db, details)

	agg := NewAggregator(Default(), catalog.Static{}, db)
	cfg, err := agg.Run(context.Background(), "proj1")
	require.NoError(t, err)

	require.NotNil(t, cfg.Combine)
	assert.Equal(t, "project_combine", cfg.Combine.ConfigID)
	require.NotNil(t, cfg.Combine.MultiSystem)
	assert.Equal(t, []int{1, 2}, cfg.Combine.MultiSystem.Systems)
	require.NotEmpty(t, cfg.Combine.BOSEquipment)
	assert.Equal(t, types.SectionCombine, cfg.Combine.BOSEquipment[0].Section)
	assert.Equal(t, 0, cfg.Combine.BOSEquipment[0].SystemNumber)

	// mixed AC and DC coupling warns
	var warned bool
	for _, w := range cfg.Warnings {
		if w == "combined systems mix AC and DC coupling, verify the combine point handles both sources" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestAggregatorNoMatchRecommendation(t *testing.T) {
	details := types.SystemDetails{
		"utility": "APS",
		// battery-only fields are incomplete, so nothing matches
		"sys1_battery_1_make": "Acme",
	}

	db := &storagemock.MockDatabase{}
	aggregatorProject(db, details)

	agg := NewAggregator(Default(), catalog.Static{}, db)
	cfg, err := agg.Run(context.Background(), "proj1")
	require.NoError(t, err)

	require.Len(t, cfg.Systems, 1)
	assert.Nil(t, cfg.Match(1))
	assert.Equal(t, 0, cfg.MatchCount)
	require.NotEmpty(t, cfg.Recommendations)
	assert.Contains(t, cfg.Recommendations[0], "system 1")
}

func TestAggregatorAuditFailureIsNonFatal(t *testing.T) {
	details := types.SystemDetails{
		"utility":                        "APS",
		"sys1_solar_panel_make":          "QCells",
		"sys1_solar_panel_model":         "Q.PEAK DUO",
		"sys1_micro_inverter_make":       "Enphase",
		"sys1_micro_inverter_model":      "IQ8PLUS",
		"sys1_inv_max_continuous_output": "32",
	}

	db := &storagemock.MockDatabase{}
	db.On("GetSystemDetails", mock.Anything, "proj1").Return(details, nil)
	db.On("GetProject", mock.Anything, "proj1").
		Return(types.Project{}, storage.ErrProjectNotFound)
	db.On("InsertConfiguration", mock.Anything, "proj1", mock.Anything).
		Return(errors.New("firestore unavailable"))

	agg := NewAggregator(Default(), catalog.Static{}, db)
	cfg, err := agg.Run(context.Background(), "proj1")
	require.NoError(t, err)
	assert.NotNil(t, cfg.Match(1))
}

func TestAggregatorDetailsLoadFailure(t *testing.T) {
	db := &storagemock.MockDatabase{}
	db.On("GetSystemDetails", mock.Anything, "proj1").
		Return(nil, errors.New("unavailable"))

	agg := NewAggregator(Default(), catalog.Static{}, db)
	_, err := agg.Run(context.Background(), "proj1")
	assert.Error(t, err)
}

func TestAggregatorProjectUtilityWins(t *testing.T) {
	details := types.SystemDetails{
		"utility":                        "APS",
		"sys1_solar_panel_make":          "QCells",
		"sys1_solar_panel_model":         "Q.PEAK DUO",
		"sys1_micro_inverter_make":       "SolarEdge",
		"sys1_micro_inverter_model":      "SE7600H-US",
		"sys1_inv_max_continuous_output": "32",
	}

	db := &storagemock.MockDatabase{}
	db.On("GetSystemDetails", mock.Anything, "proj1").Return(details, nil)
	db.On("GetProject", mock.Anything, "proj1").
		Return(types.Project{ID: "proj1", UtilityName: "Salt River Project (SRP)"}, nil)
	db.On("InsertConfiguration", mock.Anything, "proj1", mock.Anything).Return(nil)

	agg := NewAggregator(Default(), catalog.Static{}, db)
	cfg, err := agg.Run(context.Background(), "proj1")
	require.NoError(t, err)

	assert.Equal(t, "Salt River Project (SRP)", cfg.UtilityName)
	require.NotNil(t, cfg.Match(1))
	assert.Equal(t, "srp_pv_only", cfg.Match(1).ConfigID)
}
