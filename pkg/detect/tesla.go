package detect

import (
	"context"
	"strings"

	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/types"
)

// powerwall3Amps is the fixed continuous output of a Powerwall 3. Additional
// units stack behind the same gateway, so quantity does not add output.
const powerwall3Amps = 48

func isPowerwall3(s types.EquipmentState) bool {
	combined := strings.ToLower(s.Battery1.Make + " " + s.Battery1.Model + " " + s.InverterModel)
	return strings.Contains(combined, "powerwall 3") ||
		strings.Contains(combined, "powerwall3") ||
		strings.Contains(combined, "pw3")
}

// teslaDetectors covers Tesla Powerwall 3 systems, which integrate a hybrid
// inverter and are DC coupled. The multi-system variant runs on System 2 and
// reads System 1 to decide whether both feed a shared combiner.
func teslaDetectors() []Detector {
	return []Detector{
		{
			ConfigID:    "tesla_pw3_multi",
			Name:        "Tesla Powerwall 3 Multi-System",
			Description: "Two Powerwall 3 systems combining at a shared combiner panel",
			Priority:    9,
			MultiSystem: true,
			Applies: func(s types.EquipmentState) bool {
				return s.SystemNumber == 2 && isPowerwall3(s)
			},
			Detect: func(ctx context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				sibling, err := deps.SystemState(ctx, 1)
				if err != nil {
					// Without the sibling we cannot prove the combined
					// topology; skip and let later detectors run.
					return nil, err
				}
				if !isPowerwall3(sibling) {
					return nil, nil
				}

				b := teslaBase(s, deps, "Tesla Powerwall 3 Multi-System")
				b.m.MultiSystem = &types.MultiSystemConfig{
					Systems:       []int{1, 2},
					CombineMethod: "Combiner Panel",
				}
				total := sibling.InverterMaxContOut + s.InverterMaxContOut
				b.add(types.SectionCombine, "Combiner Panel",
					sizing.DCCoupled(total), "EATON", types.BlockPostCombine)
				b.note("systems 1 and 2 combine ahead of the point of interconnection")
				return b.build(), nil
			},
		},
		{
			ConfigID:    "tesla_pw3",
			Name:        "Tesla Powerwall 3",
			Description: "Single Powerwall 3 DC-coupled system",
			Priority:    10,
			Applies: func(s types.EquipmentState) bool {
				return s.SystemNumber == 1 && isPowerwall3(s)
			},
			Detect: func(_ context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error) {
				return teslaBase(s, deps, "Tesla Powerwall 3").build(), nil
			},
		},
	}
}

func teslaBase(s types.EquipmentState, deps Deps, name string) *matchBuilder {
	b := newMatch(s, deps.Utility, name, types.ConfidenceExact)
	b.meter("bi-directional", "inverter output")
	b.add(types.SectionUtility, "PV Meter",
		sizing.Fixed(200, "200A standard production meter"), "ITRON", types.BlockPreCombine)
	b.add(types.SectionUtility, "AC Disconnect",
		sizing.DCCoupled(s.InverterMaxContOut), "EATON", types.BlockPreCombine)
	b.add(types.SectionUtility, "Fused AC Disconnect",
		sizing.BatteryOnly(powerwall3Amps), "EATON", types.BlockPreCombine)
	b.note("Powerwall 3 output is fixed at %dA, unit quantity does not add output", powerwall3Amps)
	if s.RequiresBackupPower {
		addBackupSection(b, s)
	}
	return b
}
