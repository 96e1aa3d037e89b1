package detect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/voltbos/voltbos/pkg/log"
	"github.com/voltbos/voltbos/pkg/types"
)

// Registry holds detectors sorted by priority.
type Registry struct {
	detectors []Detector
}

// NewRegistry builds a registry from the given detectors. Duplicate config
// IDs panic since they make matches ambiguous to audit.
func NewRegistry(detectors ...Detector) *Registry {
	seen := make(map[string]bool, len(detectors))
	for _, d := range detectors {
		if d.ConfigID == "" {
			panic("detector missing config ID")
		}
		if seen[d.ConfigID] {
			panic(fmt.Sprintf("duplicate detector config ID: %s", d.ConfigID))
		}
		seen[d.ConfigID] = true
	}
	sorted := make([]Detector, len(detectors))
	copy(sorted, detectors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Registry{detectors: sorted}
}

// Default returns the full built-in detector library.
func Default() *Registry {
	var all []Detector
	all = append(all, franklinDetectors()...)
	all = append(all, enphaseDetectors()...)
	all = append(all, teslaDetectors()...)
	all = append(all, apsDetectors()...)
	all = append(all, regionalDetectors()...)
	all = append(all, genericDetectors()...)
	return NewRegistry(all...)
}

// Detectors returns the registry contents in priority order.
func (r *Registry) Detectors() []Detector {
	out := make([]Detector, len(r.detectors))
	copy(out, r.detectors)
	return out
}

// DetectSystem runs the registry against one system's state, strictly in
// priority order, returning on the first match. A panicking detector is
// contained and skipped; Candidates records every detector whose gate
// passed, for diagnostics.
func (r *Registry) DetectSystem(ctx context.Context, s types.EquipmentState, deps Deps) types.SystemResult {
	result := types.SystemResult{SystemNumber: s.SystemNumber}

	for _, d := range r.detectors {
		if !d.appliesToUtility(deps.Utility) {
			continue
		}
		if d.Applies != nil && !d.Applies(s) {
			continue
		}
		result.Candidates = append(result.Candidates, d.ConfigID)

		match, err := runDetector(ctx, d, s, deps)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "detector failed",
				slog.String("configID", d.ConfigID),
				slog.Int("system", s.SystemNumber),
				slog.Any("error", err))
			continue
		}
		if match == nil {
			continue
		}

		match.ConfigID = d.ConfigID
		match.Source = d.ConfigID
		match.Priority = d.Priority
		match.SystemNumber = s.SystemNumber
		if match.DetectedAt.IsZero() {
			match.DetectedAt = time.Now().UTC()
		}
		if match.ConfigName == "" {
			match.ConfigName = d.Name
		}
		if match.Description == "" {
			match.Description = d.Description
		}
		result.Match = match
		return result
	}
	return result
}

// runDetector contains panics so one broken detector cannot take down the
// whole run.
func runDetector(ctx context.Context, d Detector, s types.EquipmentState, deps Deps) (match *types.ConfigurationMatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			match = nil
			err = fmt.Errorf("detector %s panicked: %v", d.ConfigID, r)
		}
	}()
	return d.Detect(ctx, s, deps)
}
