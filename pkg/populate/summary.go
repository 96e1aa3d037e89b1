package populate

import (
	"fmt"
	"strings"

	"github.com/voltbos/voltbos/pkg/types"
)

// Summary renders the run's equipment grouped by block, for run logs and the
// API response. Items awaiting a user's pick show up alongside the resolved
// ones so the whole layout reads in one place.
func (r Result) Summary() string {
	items := make([]types.BOSEquipment, 0, len(r.Populated)+len(r.RequiresUserSelection))
	items = append(items, r.Populated...)
	items = append(items, r.RequiresUserSelection...)
	if len(items) == 0 {
		return "No BOS equipment detected"
	}

	var blocks []string
	byBlock := map[string][]int{}
	for i, item := range items {
		block := item.BlockName
		if block == "" {
			block = defaultBlockName(item.Section)
		}
		if _, ok := byBlock[block]; !ok {
			blocks = append(blocks, block)
		}
		byBlock[block] = append(byBlock[block], i)
	}

	var b strings.Builder
	for _, block := range blocks {
		fmt.Fprintf(&b, "\n%s:", block)
		for _, i := range byBlock[block] {
			item := items[i]
			info := "Manual selection required"
			if item.Make != "" && item.Model != "" {
				info = fmt.Sprintf("%s %s (%sA)", item.Make, item.Model, item.AmpRating)
			}
			fmt.Fprintf(&b, "\n  • %s: %s", item.EquipmentType, info)
		}
	}
	return strings.TrimPrefix(b.String(), "\n")
}
