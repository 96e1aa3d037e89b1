package types

import (
	"strconv"
	"strings"
)

// SystemDetails is the flat persisted equipment record for a project. Field
// names encode section and slot (e.g. "sys1_solar_panel_make",
// "bos_sys2_type3_amp_rating"). Values arrive from storage and older mobile
// clients in mixed types, so all reads go through the defensive accessors
// below; a missing or malformed value is always the zero value, never an
// error or NaN.
type SystemDetails map[string]any

// Has reports whether the field exists and is non-empty.
func (d SystemDetails) Has(key string) bool {
	return d.String(key) != ""
}

// String returns the field as a trimmed string, or "" if absent.
func (d SystemDetails) String(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case bool:
		if s {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return ""
}

// Float returns the field parsed as a float64, or 0 if absent or non-numeric.
func (d SystemDetails) Float(key string) float64 {
	v, ok := d[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Int returns the field parsed as an int, or 0 if absent or non-numeric.
// Fractional values are truncated.
func (d SystemDetails) Int(key string) int {
	return int(d.Float(key))
}

// Bool returns the field as a bool. String forms "true"/"1"/"yes" count as
// true; anything else is false.
func (d SystemDetails) Bool(key string) bool {
	v, ok := d[key]
	if !ok || v == nil {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}
