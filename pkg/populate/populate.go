package populate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/voltbos/voltbos/pkg/catalog"
	"github.com/voltbos/voltbos/pkg/log"
	"github.com/voltbos/voltbos/pkg/sizing"
	"github.com/voltbos/voltbos/pkg/storage"
	"github.com/voltbos/voltbos/pkg/types"
)

// Populator turns a detection result into saved slot fields.
type Populator struct {
	catalog catalog.Provider
	db      storage.Database
}

// NewPopulator returns a Populator backed by the given catalog and database.
func NewPopulator(c catalog.Provider, db storage.Database) *Populator {
	return &Populator{catalog: c, db: db}
}

// Options adjust a populate run.
type Options struct {
	// DryRun resolves and reports every field without saving anything.
	DryRun bool
	// Force places items even when the section already holds equipment of
	// the same type. Without it a re-run skips everything it placed before.
	Force bool
}

// Result reports what a populate run did.
type Result struct {
	// Fields is the full merge payload, also returned when saving failed so
	// the caller can retry or show it.
	Fields    map[string]any       `json:"fields"`
	Populated []types.BOSEquipment `json:"populated"`
	// RequiresUserSelection holds items the catalog could not decide. They
	// keep their assigned slot but are left out of Fields until a person
	// picks the device.
	RequiresUserSelection []types.BOSEquipment `json:"requiresUserSelection,omitempty"`
	Skipped               []string             `json:"skipped,omitempty"`
	Errors                []string             `json:"errors,omitempty"`
}

// Populate resolves each proposed item against the catalog, assigns it a free
// slot, and merges the resulting fields into the project's record. Items
// whose equipment type already exists in their section are skipped, which
// makes repeated runs converge instead of duplicating hardware. Items the
// catalog cannot decide are reported in RequiresUserSelection and never
// written.
func (p *Populator) Populate(ctx context.Context, projectID string, cfg types.ProjectConfiguration, opts Options) (Result, error) {
	res := Result{Fields: map[string]any{}}

	details, err := p.db.GetSystemDetails(ctx, projectID)
	if err != nil {
		return res, fmt.Errorf("loading system details: %w", err)
	}

	occ := newOccupancy(details)

	for _, item := range cfg.AllEquipment {
		slots := occ.section(item.Section, item.SystemNumber)

		if !opts.Force {
			if slot, ok := slots.holds(item.EquipmentType); ok {
				res.Skipped = append(res.Skipped, fmt.Sprintf(
					"%s already in %s slot %d (system %d)",
					item.EquipmentType, item.Section, slot, item.SystemNumber))
				continue
			}
		}

		slot, ok := slots.place(item.Position, item.Section.MaxSlots())
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"no free %s slot for %s (system %d)",
				item.Section, item.EquipmentType, item.SystemNumber))
			continue
		}
		item.Position = slot

		if err := p.resolve(ctx, &item, &res); err != nil {
			log.Ctx(ctx).WarnContext(ctx, "catalog lookup failed",
				slog.String("equipmentType", item.EquipmentType),
				slog.String("error", err.Error()))
			res.Errors = append(res.Errors, fmt.Sprintf(
				"catalog lookup for %s: %v", item.EquipmentType, err))
			slots.release(slot)
			continue
		}

		slots.fill(slot, item.EquipmentType)
		if item.RequiresUserSelection {
			res.RequiresUserSelection = append(res.RequiresUserSelection, item)
			continue
		}
		for k, v := range Fields(item) {
			res.Fields[k] = v
		}
		res.Populated = append(res.Populated, item)
	}

	if opts.DryRun || len(res.Fields) == 0 {
		return res, nil
	}
	if err := p.db.SaveSystemDetails(ctx, projectID, res.Fields); err != nil {
		return res, fmt.Errorf("saving populated fields: %w", err)
	}
	return res, nil
}

// resolve fills in make, model, and amp rating from the catalog. One
// candidate selects itself. Several or none leave the choice to the user,
// with the rating carried along as a hint; none also records an error on the
// result.
func (p *Populator) resolve(ctx context.Context, item *types.BOSEquipment, res *Result) error {
	lookupType := item.StandardType
	if lookupType == "" {
		lookupType = item.EquipmentType
	}

	rows, err := p.catalog.Lookup(ctx, lookupType, item.MinAmpRating, item.PreferredMake)
	if err != nil {
		return err
	}

	switch len(rows) {
	case 0:
		item.RequiresUserSelection = true
		if item.MinAmpRating > 0 {
			item.AmpRating = strconv.Itoa(sizing.NextStandard(item.MinAmpRating))
		}
		res.Errors = append(res.Errors, fmt.Sprintf(
			"no catalog %s rated for %dA or more", lookupType, item.MinAmpRating))
	case 1:
		item.Make = rows[0].Make
		item.Model = rows[0].Model
		item.AmpRating = rows[0].AmpRating
		item.AutoSelected = true
	default:
		// Lookup returns a single rating tier, so the rating is decided even
		// though the device is not.
		item.AmpRating = rows[0].AmpRating
		item.RequiresUserSelection = true
	}
	return nil
}

// occupancy tracks which slots hold what, seeded from the saved record and
// updated as the run places items.
type occupancy struct {
	details  types.SystemDetails
	sections map[string]*sectionSlots
}

type sectionSlots struct {
	types map[int]string
}

func newOccupancy(details types.SystemDetails) *occupancy {
	return &occupancy{details: details, sections: map[string]*sectionSlots{}}
}

func (o *occupancy) section(section types.SectionType, systemNumber int) *sectionSlots {
	key := fmt.Sprintf("%s/%d", section, systemNumber)
	if s, ok := o.sections[key]; ok {
		return s
	}
	s := &sectionSlots{types: map[int]string{}}
	for slot := 1; slot <= section.MaxSlots(); slot++ {
		if t := o.details.String(SlotPrefix(section, systemNumber, slot) + "_equipment_type"); t != "" {
			s.types[slot] = t
		}
	}
	o.sections[key] = s
	return s
}

// holds reports the slot already carrying the given equipment type.
func (s *sectionSlots) holds(equipmentType string) (int, bool) {
	for slot, t := range s.types {
		if strings.EqualFold(t, equipmentType) {
			return slot, true
		}
	}
	return 0, false
}

// place returns the preferred slot when free, otherwise the lowest free slot.
func (s *sectionSlots) place(preferred, max int) (int, bool) {
	if preferred >= 1 && preferred <= max {
		if _, taken := s.types[preferred]; !taken {
			return preferred, true
		}
	}
	for slot := 1; slot <= max; slot++ {
		if _, taken := s.types[slot]; !taken {
			return slot, true
		}
	}
	return 0, false
}

func (s *sectionSlots) fill(slot int, equipmentType string) {
	s.types[slot] = equipmentType
}

func (s *sectionSlots) release(slot int) {
	delete(s.types, slot)
}
