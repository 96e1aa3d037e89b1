// Package populate writes detected BOS equipment into the flat persisted
// record, resolving each proposal to a concrete catalog device first.
package populate

import (
	"fmt"

	"github.com/voltbos/voltbos/pkg/types"
)

// SlotPrefix returns the field name prefix for a section slot. The mobile
// clients read these exact patterns, so they cannot change shape.
func SlotPrefix(section types.SectionType, systemNumber, slot int) string {
	switch section {
	case types.SectionUtility:
		return fmt.Sprintf("bos_sys%d_type%d", systemNumber, slot)
	case types.SectionBattery1:
		return fmt.Sprintf("bos_sys%d_battery1_type%d", systemNumber, slot)
	case types.SectionBattery2:
		return fmt.Sprintf("bos_sys%d_battery2_type%d", systemNumber, slot)
	case types.SectionBackup:
		return fmt.Sprintf("bos_sys%d_backup_type%d", systemNumber, slot)
	case types.SectionPostSMS:
		return fmt.Sprintf("post_sms_bos_sys%d_type%d", systemNumber, slot)
	case types.SectionCombine:
		// Combine slots belong to the project, not a system.
		return fmt.Sprintf("postcombine_%d_1", slot)
	}
	return ""
}

// triggerValue names the equipment-form source that enables a section's
// visibility on the clients. The combine section has no trigger.
func triggerValue(section types.SectionType, systemNumber int) string {
	switch section {
	case types.SectionUtility:
		return fmt.Sprintf("sys%d_stringCombiner", systemNumber)
	case types.SectionBattery1:
		return fmt.Sprintf("sys%d_battery1", systemNumber)
	case types.SectionBattery2:
		return fmt.Sprintf("sys%d_battery2", systemNumber)
	case types.SectionBackup:
		return fmt.Sprintf("sys%d_backup", systemNumber)
	case types.SectionPostSMS:
		return fmt.Sprintf("sys%d_postSMS", systemNumber)
	}
	return ""
}

// hasActive reports whether the section schema carries an _active field.
// Battery sections never do.
func hasActive(section types.SectionType) bool {
	switch section {
	case types.SectionUtility, types.SectionBackup, types.SectionPostSMS:
		return true
	}
	return false
}

func defaultBlockName(section types.SectionType) string {
	switch section {
	case types.SectionUtility:
		return types.BlockPreCombine
	case types.SectionBattery1, types.SectionBattery2:
		return types.BlockESS
	case types.SectionBackup:
		return types.BlockBackup
	case types.SectionPostSMS:
		return types.BlockPostSMS
	case types.SectionCombine:
		return types.BlockPostCombine
	}
	return ""
}

// Fields renders one equipment item into its persisted field set. The
// combine section uses the legacy schema: no system prefix, no trigger, and
// an inverted _existing flag instead of _is_new.
func Fields(e types.BOSEquipment) map[string]any {
	p := SlotPrefix(e.Section, e.SystemNumber, e.Position)
	if p == "" {
		return nil
	}

	blockName := e.BlockName
	if blockName == "" {
		blockName = defaultBlockName(e.Section)
	}

	f := map[string]any{
		p + "_equipment_type": e.EquipmentType,
		p + "_make":           e.Make,
		p + "_model":          e.Model,
		p + "_amp_rating":     e.AmpRating,
	}

	if e.Section == types.SectionCombine {
		f[p+"_existing"] = !e.IsNew
		f[p+"_position"] = blockName
		return f
	}

	f[p+"_is_new"] = e.IsNew
	f[p+"_block_name"] = blockName
	f[p+"_trigger"] = triggerValue(e.Section, e.SystemNumber)
	if hasActive(e.Section) {
		f[p+"_active"] = true
	}
	return f
}
