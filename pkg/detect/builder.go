package detect

import (
	"fmt"

	"github.com/voltbos/voltbos/pkg/extract"
	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/types"
	"github.com/voltbos/voltbos/pkg/utility"
)

// matchBuilder assembles a ConfigurationMatch, placing equipment into the
// first free slot of each section and translating equipment names to the
// utility's terminology.
type matchBuilder struct {
	s    types.EquipmentState
	u    utility.Code
	m    types.ConfigurationMatch
	used map[types.SectionType][]int
}

func newMatch(s types.EquipmentState, u utility.Code, name string, confidence types.Confidence) *matchBuilder {
	return &matchBuilder{
		s: s,
		u: u,
		m: types.ConfigurationMatch{
			ConfigName: name,
			Confidence: confidence,
		},
		used: make(map[types.SectionType][]int),
	}
}

func (b *matchBuilder) meter(utilityMeter, productionPoint string) *matchBuilder {
	b.m.Meter = types.MeterConfig{
		UtilityMeter:            utilityMeter,
		ProductionMeteringPoint: productionPoint,
	}
	return b
}

func (b *matchBuilder) note(format string, args ...any) *matchBuilder {
	b.m.Notes = append(b.m.Notes, fmt.Sprintf(format, args...))
	return b
}

func (b *matchBuilder) warn(format string, args ...any) *matchBuilder {
	b.m.Warnings = append(b.m.Warnings, fmt.Sprintf(format, args...))
	return b
}

// add places one device in the named section. Sizing results with no source
// current flag the item for manual review instead of dropping it.
func (b *matchBuilder) add(section types.SectionType, standardType string, r sizing.Result, preferredMake, blockName string) *matchBuilder {
	occupied := append(extract.Positions(b.s.ExistingBOS, section), b.used[section]...)
	slot, ok := extract.NextSlot(occupied, section)
	if !ok {
		b.warn("no free slot in %s section for %s", section, standardType)
		return b
	}
	b.used[section] = append(b.used[section], slot)

	item := types.BOSEquipment{
		EquipmentType: b.u.TranslateEquipment(standardType),
		StandardType:  standardType,
		Section:       section,
		SystemNumber:  b.s.SystemNumber,
		Position:      slot,
		PreferredMake: preferredMake,
		BlockName:     blockName,
		IsNew:         true,
	}
	if r.Insufficient {
		item.RequiresUserSelection = true
		b.warn("%s has no source current to size from, select rating manually", standardType)
	} else {
		item.MinAmpRating = r.MinAmps
		item.SizingCalculation = r.Calculation
	}
	b.m.BOSEquipment = append(b.m.BOSEquipment, item)

	if !b.hasSection(section) {
		b.m.EnabledSections = append(b.m.EnabledSections, section)
	}
	return b
}

func (b *matchBuilder) hasSection(section types.SectionType) bool {
	for _, s := range b.m.EnabledSections {
		if s == section {
			return true
		}
	}
	return false
}

func (b *matchBuilder) build() *types.ConfigurationMatch {
	m := b.m
	return &m
}
