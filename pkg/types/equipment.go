package types

// CouplingType describes how a battery connects relative to the inverter.
type CouplingType string

const (
	// CouplingAC means the battery discharges onto the AC bus independently
	// of the solar inverter, so downstream equipment sees both sources.
	CouplingAC CouplingType = "AC"
	// CouplingDC means the battery shares the inverter's DC bus (hybrid
	// inverter); only the inverter output reaches the AC side.
	CouplingDC CouplingType = "DC"
	// CouplingNone means no battery is present.
	CouplingNone CouplingType = ""
)

// InverterType is the inverter class selected on the equipment form.
type InverterType string

const (
	InverterMicro  InverterType = "microinverter"
	InverterString InverterType = "inverter"
)

// BackupOption is the backup configuration selected on the equipment form.
type BackupOption string

const (
	BackupWholeHome   BackupOption = "Whole Home"
	BackupPartialHome BackupOption = "Partial Home"
	BackupNone        BackupOption = "None"
)

// POIType is the point of interconnection, which some utilities (Xcel) use
// to pick between disconnect types.
type POIType string

const (
	POISupplySide POIType = "supply_side"
	POILoadSide   POIType = "load_side"
)

// ExistingBOS lists the occupied slot positions per section, used to avoid
// proposing equipment on top of slots the user already filled.
type ExistingBOS struct {
	Utility  []int `json:"utility"`
	Battery1 []int `json:"battery1"`
	Battery2 []int `json:"battery2"`
	Backup   []int `json:"backup"`
	PostSMS  []int `json:"postSMS"`
	Combine  []int `json:"combine"`
}

// BatteryState is one of up to two battery entries on a system.
type BatteryState struct {
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Quantity      int     `json:"quantity"`
	MaxContOutput float64 `json:"maxContOutput"` // amps
	IsNew         bool    `json:"isNew"`
	// CoupleType is catalog metadata when known ("AC" or "DC").
	CoupleType string `json:"coupleType,omitempty"`
}

// EquipmentState is the immutable snapshot of one system (1-4) of a project,
// built fresh from the persisted record on every detection run. Detectors
// only read it; derived values are computed at extraction time.
type EquipmentState struct {
	SystemNumber int    `json:"systemNumber"`
	SystemPrefix string `json:"systemPrefix"` // "sys1_".."sys4_"
	UtilityName  string `json:"utilityName"`

	// Solar
	HasSolarPanels  bool   `json:"hasSolarPanels"`
	SolarPanelMake  string `json:"solarPanelMake"`
	SolarPanelModel string `json:"solarPanelModel"`
	SolarQuantity   int    `json:"solarQuantity"`
	SolarWattage    int    `json:"solarWattage"`
	SolarPanelIsNew bool   `json:"solarPanelIsNew"`

	// Inverter (field names say "micro_inverter" even for string inverters)
	HasInverter          bool         `json:"hasInverter"`
	InverterMake         string       `json:"inverterMake"`
	InverterModel        string       `json:"inverterModel"`
	InverterType         InverterType `json:"inverterType"`
	InverterMaxContOut   float64      `json:"inverterMaxContOutput"` // amps
	InverterQuantity     int          `json:"inverterQuantity"`
	InverterIsNew        bool         `json:"inverterIsNew"`
	AggregatePVBreaker   int          `json:"aggregatePVBreaker"`
	GridFormingCapable   bool         `json:"gridFormingCapable"`

	// Batteries
	HasBattery bool         `json:"hasBattery"`
	Battery1   BatteryState `json:"battery1"`
	Battery2   BatteryState `json:"battery2"`

	// SMS / gateway
	HasSMS   bool   `json:"hasSMS"`
	SMSMake  string `json:"smsMake"`
	SMSModel string `json:"smsModel"`
	SMSIsNew bool   `json:"smsIsNew"`

	// Backup panel
	HasBackupPanel      bool         `json:"hasBackupPanel"`
	BackupMake          string       `json:"backupMake"`
	BackupModel         string       `json:"backupModel"`
	BackupBusRating     int          `json:"backupBusRating"`
	BackupPanelBusSet   bool         `json:"backupPanelBusSet"` // false when the 200A default applied
	BackupOption        BackupOption `json:"backupOption"`
	BackupIsNew         bool         `json:"backupIsNew"`

	// Point of interconnection
	POI POIType `json:"poi,omitempty"`

	// Derived
	CouplingType        CouplingType `json:"couplingType"`
	MultiBattery        bool         `json:"multiBattery"`
	StandbyOnly         bool         `json:"standbyOnly"`         // battery without solar
	RequiresBackupPower bool         `json:"requiresBackupPower"` // whole or partial home backup

	// Existing BOS, for dedupe
	ExistingBOS ExistingBOS `json:"existingBOS"`
}

// BatteryQuantity returns the total battery count across both entries.
func (s EquipmentState) BatteryQuantity() int {
	return s.Battery1.Quantity + s.Battery2.Quantity
}

// BatteryMaxContOutput returns the combined battery continuous output in amps.
func (s EquipmentState) BatteryMaxContOutput() float64 {
	return s.Battery1.MaxContOutput + s.Battery2.MaxContOutput
}
