package types

import "time"

// SectionType identifies where a BOS device sits electrically.
type SectionType string

const (
	// SectionUtility is the main utility-side chain (6 slots).
	SectionUtility SectionType = "utility"
	// SectionBattery1 / SectionBattery2 sit between a battery bank and the
	// SMS (3 slots each).
	SectionBattery1 SectionType = "battery1"
	SectionBattery2 SectionType = "battery2"
	// SectionBackup sits on the backup load sub panel feed (3 slots).
	SectionBackup SectionType = "backup"
	// SectionPostSMS sits between the SMS and the utility (3 slots).
	SectionPostSMS SectionType = "postSMS"
	// SectionCombine is the project-level combine point where multiple
	// systems merge (3 slots, not owned by any one system).
	SectionCombine SectionType = "combine"
)

// MaxSlots returns the number of equipment slots a section supports.
func (s SectionType) MaxSlots() int {
	if s == SectionUtility {
		return 6
	}
	return 3
}

// Block names classify BOS items relative to the combine point for display
// and for the persisted _block_name fields.
const (
	BlockPreCombine  = "PRE COMBINE"
	BlockPostCombine = "POST COMBINE"
	BlockESS         = "ESS"
	BlockBackup      = "BACKUP LOAD SUB PANEL"
	BlockPostSMS     = "POST SMS"
)

// Confidence is a display hint on a match. Selection is always by detector
// priority; confidence never affects which match wins.
type Confidence string

const (
	ConfidenceExact  Confidence = "exact"
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// BOSEquipment is one proposed or existing interconnection device.
type BOSEquipment struct {
	EquipmentType string `json:"equipmentType"`
	// StandardType is the catalog type behind a utility-specific
	// EquipmentType name.
	StandardType string `json:"standardType,omitempty"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	AmpRating    string `json:"ampRating,omitempty"`
	// PreferredMake biases catalog selection when several devices carry the
	// chosen rating.
	PreferredMake string `json:"preferredMake,omitempty"`

	Section SectionType `json:"section"`
	// SystemNumber is 0 for combine-point items, which belong to the
	// project rather than a single system.
	SystemNumber int `json:"systemNumber"`
	Position     int `json:"position"` // 1-based slot within the section

	// Sizing audit trail
	MinAmpRating      int    `json:"minAmpRating"`
	SizingCalculation string `json:"sizingCalculation,omitempty"`
	SizingLabel       string `json:"sizingLabel,omitempty"`

	BlockName string `json:"blockName,omitempty"`
	IsNew     bool   `json:"isNew"`

	RequiresUserSelection bool `json:"requiresUserSelection,omitempty"`
	AutoSelected          bool `json:"autoSelected,omitempty"`
}

// MeterConfig describes the utility metering the matched configuration
// expects.
type MeterConfig struct {
	// UtilityMeter is "uni-directional" or "bi-directional".
	UtilityMeter string `json:"utilityMeter,omitempty"`
	// ProductionMeteringPoint names where production is measured (e.g.
	// "post-SMS", "inverter output").
	ProductionMeteringPoint string `json:"productionMeteringPoint,omitempty"`
}

// MultiSystemConfig describes where each affected system's output combines.
// Its presence means the match covers several systems at once and must only
// be produced once per affected set.
type MultiSystemConfig struct {
	Systems       []int  `json:"systems"`
	CombineMethod string `json:"combineMethod,omitempty"`
}

// ConfigurationMatch is a detector's positive result: the archetype it
// recognized and the BOS equipment that archetype implies.
type ConfigurationMatch struct {
	ConfigID    string `json:"configId"`
	ConfigName  string `json:"configName"`
	Description string `json:"description,omitempty"`

	Priority   int        `json:"priority"`
	Confidence Confidence `json:"confidence"`

	BOSEquipment    []BOSEquipment `json:"bosEquipment"`
	EnabledSections []SectionType  `json:"enabledSections,omitempty"`
	Meter           MeterConfig    `json:"meter,omitempty"`

	MultiSystem *MultiSystemConfig `json:"multiSystem,omitempty"`

	Notes    []string `json:"notes,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	// Provenance
	Source       string    `json:"source,omitempty"` // detector config ID that produced it
	DetectedAt   time.Time `json:"detectedAt"`
	SystemNumber int       `json:"systemNumber"` // 0 for combine-point matches
}

// SystemResult is the detection outcome for one system.
type SystemResult struct {
	SystemNumber int                 `json:"systemNumber"`
	Match        *ConfigurationMatch `json:"match,omitempty"`
	// Candidates lists config IDs whose quick check passed, for diagnostics.
	Candidates []string `json:"candidates,omitempty"`
}

// ProjectConfiguration is the project-wide detection result: one pass per
// active system plus the combine-point pass.
type ProjectConfiguration struct {
	RunID       string    `json:"runId"`
	ProjectID   string    `json:"projectId,omitempty"`
	UtilityName string    `json:"utilityName"`
	DetectedAt  time.Time `json:"detectedAt"`

	Systems []SystemResult      `json:"systems"`
	Combine *ConfigurationMatch `json:"combine,omitempty"`

	AllEquipment []BOSEquipment `json:"allEquipment"`
	MatchCount   int            `json:"matchCount"`

	Recommendations []string `json:"recommendations,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Match returns the selected match for the given system, or nil.
func (p ProjectConfiguration) Match(systemNumber int) *ConfigurationMatch {
	for _, s := range p.Systems {
		if s.SystemNumber == systemNumber {
			return s.Match
		}
	}
	return nil
}

// CatalogEquipment is one row of the BOS equipment catalog.
type CatalogEquipment struct {
	Type  string `json:"type"`
	Make  string `json:"make"`
	Model string `json:"model"`
	// AmpRating is the display string ("30", "60", ...); Amps is the parsed
	// numeric value used for sizing comparisons (0 when unrated, e.g.
	// junction boxes).
	AmpRating string `json:"amp"`
	Amps      int    `json:"ampNumeric,omitempty"`
	// CoupleType is set on battery metadata rows ("AC" or "DC").
	CoupleType string `json:"coupleType,omitempty"`
}
