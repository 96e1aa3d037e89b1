package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/voltbos/voltbos/pkg/types"
)

// CombinePoint is the project-level configuration of where multiple systems
// merge before the point of interconnection.
type CombinePoint struct {
	Systems []int  `json:"systems"`
	Method  string `json:"method,omitempty"`
}

// combinePositions is the persisted ele_combine_positions JSON shape.
type combinePositions struct {
	Method  string `json:"method"`
	Systems []int  `json:"systems"`
}

// ParseCombinePoint reads the multi-system combine configuration from the
// record. The second return is false when no combine is configured. A
// malformed positions blob still yields the combined system list when
// ele_combine_systems is present.
func ParseCombinePoint(d types.SystemDetails) (CombinePoint, bool) {
	var cp CombinePoint

	if raw := d.String("ele_combine_positions"); raw != "" {
		var pos combinePositions
		if err := json.Unmarshal([]byte(raw), &pos); err == nil {
			cp.Method = pos.Method
			cp.Systems = pos.Systems
		}
	}

	if len(cp.Systems) == 0 {
		cp.Systems = parseSystemList(d.String("ele_combine_systems"))
	}

	if len(cp.Systems) < 2 {
		return CombinePoint{}, false
	}
	return cp, true
}

// parseSystemList pulls system numbers out of free text like
// "System 1 + System 2" or "1,2,3".
func parseSystemList(raw string) []int {
	if raw == "" {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	for _, f := range strings.FieldsFunc(raw, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > 4 || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
