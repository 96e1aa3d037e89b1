// Package utility normalizes free-text utility names and translates standard
// equipment type names to each utility's preferred terminology.
package utility

import "strings"

// Code is a normalized utility identifier.
type Code string

const (
	APS       Code = "APS"
	SRP       Code = "SRP"
	TEP       Code = "TEP"
	TRICO     Code = "TRICO"
	UniSource Code = "UniSource"
	SSVEC     Code = "SSVEC"
	Xcel      Code = "Xcel Energy"
	Oncor     Code = "Oncor"
	Generic   Code = "Gen"
)

// Normalize maps a free-text utility name to a Code by substring match.
// Unrecognized names fall back to Generic, which uses standard equipment
// names and the generic detector set.
func Normalize(name string) Code {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch {
	case lower == "":
		return Generic
	case strings.Contains(lower, "aps"), strings.Contains(lower, "arizona public service"):
		return APS
	case strings.Contains(lower, "srp"), strings.Contains(lower, "salt river"):
		return SRP
	case strings.Contains(lower, "tep"), strings.Contains(lower, "tucson"):
		return TEP
	case strings.Contains(lower, "trico"):
		return TRICO
	case strings.Contains(lower, "unisource"), strings.Contains(lower, "uns electric"):
		return UniSource
	case strings.Contains(lower, "ssvec"), strings.Contains(lower, "sulphur springs"):
		return SSVEC
	case strings.Contains(lower, "xcel"), strings.Contains(lower, "psco"),
		strings.Contains(lower, "public service company of colorado"):
		return Xcel
	case strings.Contains(lower, "oncor"):
		return Oncor
	}
	return Generic
}

// DisplayName returns the full utility name for a code.
func (c Code) DisplayName() string {
	switch c {
	case APS:
		return "Arizona Public Service (APS)"
	case SRP:
		return "Salt River Project (SRP)"
	case TEP:
		return "Tucson Electric Power (TEP)"
	case TRICO:
		return "Trico Electric Cooperative (TRICO)"
	case UniSource:
		return "UniSource Energy Services"
	case SSVEC:
		return "Sulphur Springs Valley Electric Cooperative (SSVEC)"
	case Xcel:
		return "Xcel Energy"
	case Oncor:
		return "Oncor Electric Delivery"
	}
	return "Generic Utility"
}

// All lists the recognized utility codes, Generic last.
func All() []Code {
	return []Code{APS, SRP, TEP, TRICO, UniSource, SSVEC, Xcel, Oncor, Generic}
}

// translations maps standard equipment type names to utility terminology.
// Types absent from a utility's map keep their standard name.
var translations = map[Code]map[string]string{
	APS: {
		"PV Meter":            "Uni-Directional Meter",
		"AC Disconnect":       "Uni-Directional Meter Line Side Disconnect",
		"Fused AC Disconnect": "Utility Disconnect",
		"Combiner Panel":      "Dedicated Photovoltaic System Combiner Panel",
	},
	SRP: {
		"PV Meter":            "Dedicated DER Meter",
		"AC Disconnect":       "DER Meter Disconnect Switch",
		"Fused AC Disconnect": "Utility AC Disconnect Switch",
	},
	TEP: {
		"PV Meter":      "Utility DG Meter",
		"AC Disconnect": "Utility DG Disconnect",
	},
	TRICO: {
		"AC Disconnect": "Co-Generation System Utility Disconnect",
	},
	UniSource: {
		"PV Meter":      "Utility DG Meter",
		"AC Disconnect": "Utility DG Disconnect",
	},
	SSVEC: {
		"AC Disconnect": "DG Disconnect Switch",
	},
	// Oncor uses the standard equipment names unchanged.
	Xcel: {
		"AC Disconnect":       "Utility PV AC Disconnect",
		"Fused AC Disconnect": "Utility PV AC Disconnect",
	},
}

// standardTypes is the reverse lookup, utility-specific name to standard
// catalog type, built once from translations.
var standardTypes = func() map[string]string {
	m := make(map[string]string)
	for _, t := range translations {
		for std, name := range t {
			// The Xcel "Utility PV AC Disconnect" alias covers two standard
			// types; keep the unfused mapping, POI resolves the rest.
			if _, ok := m[name]; !ok {
				m[name] = std
			}
		}
	}
	return m
}()

// TranslateEquipment returns the utility-specific display name for a standard
// equipment type, or the standard name unchanged.
func (c Code) TranslateEquipment(standardType string) string {
	if t, ok := translations[c]; ok {
		if name, ok := t[standardType]; ok {
			return name
		}
	}
	return standardType
}

// StandardType maps a possibly utility-specific equipment name back to the
// standard catalog type. Unknown names pass through unchanged.
func StandardType(name string) string {
	if std, ok := standardTypes[strings.TrimSpace(name)]; ok {
		return std
	}
	return strings.TrimSpace(name)
}

// xcelFusedPOI lists interconnection methods for which Xcel requires the
// fused disconnect variant.
var xcelFusedPOI = []string{
	"meter collar adapter",
	"line (supply) side tap",
	"load side tap",
	"supply_side",
}

// XcelRequiresFused reports whether the Xcel point of interconnection calls
// for a Fused AC Disconnect instead of the unfused one.
func XcelRequiresFused(poi string) bool {
	lower := strings.ToLower(strings.TrimSpace(poi))
	for _, p := range xcelFusedPOI {
		if lower == p {
			return true
		}
	}
	return false
}
