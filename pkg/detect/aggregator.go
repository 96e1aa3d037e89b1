package detect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voltbos/voltbos/pkg/catalog"
	"github.com/voltbos/voltbos/pkg/extract"
	"github.com/voltbos/voltbos/pkg/log"
	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/storage"
	"github.com/voltbos/voltbos/pkg/types"
	"github.com/voltbos/voltbos/pkg/utility"
)

// Aggregator runs detection across every active system of a project plus
// the project-level combine pass, and records the run for audit.
type Aggregator struct {
	registry *Registry
	catalog  catalog.Provider
	db       storage.Database
}

// NewAggregator returns an Aggregator over the given registry.
func NewAggregator(registry *Registry, cat catalog.Provider, db storage.Database) *Aggregator {
	return &Aggregator{registry: registry, catalog: cat, db: db}
}

// Run detects the configuration of every active system (1-4) concurrently,
// then runs the combine-point pass. Each system's detector chain is still
// strictly sequential; only whole systems run in parallel.
func (a *Aggregator) Run(ctx context.Context, projectID string) (types.ProjectConfiguration, error) {
	details, err := a.db.GetSystemDetails(ctx, projectID)
	if err != nil {
		return types.ProjectConfiguration{}, fmt.Errorf("failed to load system details: %w", err)
	}

	utilityName := details.String("utility")
	if project, err := a.db.GetProject(ctx, projectID); err == nil && project.UtilityName != "" {
		utilityName = project.UtilityName
	}
	code := utility.Normalize(utilityName)

	cfg := types.ProjectConfiguration{
		RunID:       uuid.NewString(),
		ProjectID:   projectID,
		UtilityName: utilityName,
		DetectedAt:  time.Now().UTC(),
	}

	memo := newStateMemo(func(ctx context.Context, n int) (types.EquipmentState, error) {
		if !extract.HasSystemData(details, n) {
			return types.EquipmentState{}, fmt.Errorf("system %d has no equipment data", n)
		}
		return a.extractSystem(ctx, details, n, utilityName), nil
	})
	deps := Deps{Utility: code, SystemState: memo.get}

	active := extract.ActiveSystems(details)
	results := make([]types.SystemResult, len(active))
	var wg sync.WaitGroup
	for i, n := range active {
		wg.Add(1)
		go func(i, n int) {
			defer wg.Done()
			s, err := memo.get(ctx, n)
			if err != nil {
				results[i] = types.SystemResult{SystemNumber: n}
				return
			}
			results[i] = a.registry.DetectSystem(ctx, s, deps)
		}(i, n)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].SystemNumber < results[j].SystemNumber
	})
	cfg.Systems = results

	if combine, warnings := a.combinePass(ctx, details, code, deps); combine != nil {
		cfg.Combine = combine
		cfg.Warnings = append(cfg.Warnings, warnings...)
	}

	for _, r := range cfg.Systems {
		if r.Match == nil {
			continue
		}
		cfg.MatchCount++
		cfg.AllEquipment = append(cfg.AllEquipment, r.Match.BOSEquipment...)
		cfg.Warnings = append(cfg.Warnings, r.Match.Warnings...)
	}
	if cfg.Combine != nil {
		cfg.MatchCount++
		cfg.AllEquipment = append(cfg.AllEquipment, cfg.Combine.BOSEquipment...)
		cfg.Warnings = append(cfg.Warnings, cfg.Combine.Warnings...)
	}
	for _, n := range active {
		if cfg.Match(n) == nil {
			cfg.Recommendations = append(cfg.Recommendations,
				fmt.Sprintf("no configuration matched system %d, configure its BOS manually", n))
		}
	}

	if err := a.db.InsertConfiguration(ctx, projectID, cfg); err != nil {
		// The run is still useful without the audit record.
		log.Ctx(ctx).WarnContext(ctx, "failed to record detection run",
			slog.String("projectID", projectID), slog.Any("error", err))
	}
	return cfg, nil
}

// extractSystem resolves catalog battery metadata and extracts one system.
// Catalog failures degrade to model inference rather than failing the run.
func (a *Aggregator) extractSystem(ctx context.Context, details types.SystemDetails, n int, utilityName string) types.EquipmentState {
	opts := extract.Options{UtilityName: utilityName}

	b1Make := details.String(fmt.Sprintf("sys%d_battery_1_make", n))
	b1Model := details.String(fmt.Sprintf("sys%d_battery_1_model", n))
	if b1Make != "" && b1Model != "" {
		ct, err := a.catalog.BatteryCoupleType(ctx, b1Make, b1Model)
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "battery couple type lookup failed",
				slog.String("make", b1Make), slog.String("model", b1Model), slog.Any("error", err))
		} else {
			opts.Battery1CoupleType = ct
		}
	}
	b2Make := details.String(fmt.Sprintf("sys%d_battery_2_make", n))
	b2Model := details.String(fmt.Sprintf("sys%d_battery_2_model", n))
	if b2Make != "" && b2Model != "" {
		if ct, err := a.catalog.BatteryCoupleType(ctx, b2Make, b2Model); err == nil {
			opts.Battery2CoupleType = ct
		}
	}

	return extract.ForSystem(details, n, opts)
}

// combinePass builds the project-level combine-point match when the record
// declares that multiple systems merge before the point of interconnection.
func (a *Aggregator) combinePass(ctx context.Context, details types.SystemDetails, code utility.Code, deps Deps) (*types.ConfigurationMatch, []string) {
	cp, ok := extract.ParseCombinePoint(details)
	if !ok {
		return nil, nil
	}

	var warnings []string
	var total float64
	couplings := make(map[types.CouplingType]bool)
	for _, n := range cp.Systems {
		s, err := deps.SystemState(ctx, n)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("combine references system %d which has no equipment data", n))
			continue
		}
		r := combinedSizing(s)
		total += float64(r.MinAmps)
		if s.CouplingType != types.CouplingNone {
			couplings[s.CouplingType] = true
		}
	}
	if len(couplings) > 1 {
		warnings = append(warnings,
			"combined systems mix AC and DC coupling, verify the combine point handles both sources")
	}

	// Per-system minimums already carry the continuous factor, so the
	// combine bus is sized to their sum.
	stub := types.EquipmentState{
		SystemNumber: 0,
		ExistingBOS:  types.ExistingBOS{Combine: extract.CombineSlots(details)},
	}
	b := newMatch(stub, code, "Multi-System Combine Point", types.ConfidenceHigh)
	b.m.MultiSystem = &types.MultiSystemConfig{Systems: cp.Systems, CombineMethod: cp.Method}
	b.add(types.SectionCombine, "Combiner Panel",
		sizing.Fixed(int(total), fmt.Sprintf("sum of combined system minimums = %dA", int(total))),
		"EATON", types.BlockPostCombine)

	m := b.build()
	m.ConfigID = "project_combine"
	m.Source = "project_combine"
	m.DetectedAt = time.Now().UTC()
	return m, warnings
}
