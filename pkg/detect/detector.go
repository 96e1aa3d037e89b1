// Package detect matches equipment state snapshots against the library of
// known interconnection configurations. Detectors are plain records in a
// priority-ordered registry; for each system the first matching detector
// wins and the rest are never run.
package detect

import (
	"context"
	"sync"

	"github.com/voltbos/voltbos/pkg/types"
	"github.com/voltbos/voltbos/pkg/utility"
)

// Deps gives detectors read access to run-scoped resources. Detectors must
// not reach storage directly; cross-system reads go through SystemState so
// they stay memoized and mockable.
type Deps struct {
	Utility utility.Code

	// SystemState returns the extracted state of another system in the same
	// project. Results are memoized for the run.
	SystemState func(ctx context.Context, systemNumber int) (types.EquipmentState, error)
}

// Detector is one configuration archetype. Applies is a cheap gate with no
// I/O; Detect may use Deps and returns nil when the archetype does not fit
// after closer inspection.
type Detector struct {
	ConfigID    string
	Name        string
	Description string

	// Priority orders detectors; lower runs first. Specific archetypes get
	// low numbers so they win over the generic fallbacks.
	Priority int

	// Utilities limits the detector to the listed utilities. Empty means
	// any utility.
	Utilities []utility.Code

	// MultiSystem marks detectors whose match covers several systems at
	// once. Such detectors gate themselves in Applies to a single system's
	// pass so sibling passes do not report the same match twice.
	MultiSystem bool

	Applies func(s types.EquipmentState) bool
	Detect  func(ctx context.Context, s types.EquipmentState, deps Deps) (*types.ConfigurationMatch, error)
}

func (d Detector) appliesToUtility(u utility.Code) bool {
	if len(d.Utilities) == 0 {
		return true
	}
	for _, c := range d.Utilities {
		if c == u {
			return true
		}
	}
	return false
}

// stateMemo memoizes per-run system state extraction so concurrent
// detectors share one extraction per system.
type stateMemo struct {
	mu    sync.Mutex
	fetch func(ctx context.Context, systemNumber int) (types.EquipmentState, error)
	byNum map[int]memoEntry
}

type memoEntry struct {
	state types.EquipmentState
	err   error
}

func newStateMemo(fetch func(ctx context.Context, systemNumber int) (types.EquipmentState, error)) *stateMemo {
	return &stateMemo{fetch: fetch, byNum: make(map[int]memoEntry)}
}

func (m *stateMemo) get(ctx context.Context, systemNumber int) (types.EquipmentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.byNum[systemNumber]; ok {
		return e.state, e.err
	}
	s, err := m.fetch(ctx, systemNumber)
	m.byNum[systemNumber] = memoEntry{state: s, err: err}
	return s, err
}
