// Package sizing computes minimum amp ratings for interconnection equipment
// using the NEC continuous-load factor. Every result carries the human
// readable calculation so the derivation is auditable on the populated
// record.
package sizing

import (
	"fmt"
	"math"
	"strconv"
)

// ContinuousFactor is the NEC 125% continuous-load multiplier.
const ContinuousFactor = 1.25

// Result is a computed minimum rating. MinAmps is rounded up to a whole amp;
// the actual device is then chosen as the smallest catalog rating at or
// above it.
type Result struct {
	MinAmps     int
	Calculation string
	// Insufficient means no source current was available, so MinAmps is 0
	// and the caller should flag the item for manual review instead of
	// selecting a device.
	Insufficient bool
}

// standardRatings is the ladder of common breaker/disconnect ratings.
// Above the top rung, ratings continue in 50A steps.
var standardRatings = []int{
	15, 20, 30, 40, 50, 60, 70, 80, 90, 100,
	125, 150, 175, 200, 225, 250, 300, 350, 400,
}

// NextStandard returns the smallest standard rating at or above min.
func NextStandard(min int) int {
	for _, r := range standardRatings {
		if r >= min {
			return r
		}
	}
	return int(math.Ceil(float64(min)/50)) * 50
}

// DCCoupled sizes for a DC-coupled system, where only the inverter output
// reaches the AC side.
func DCCoupled(inverterAmps float64) Result {
	if inverterAmps <= 0 {
		return Result{Insufficient: true}
	}
	min := ceil(inverterAmps * ContinuousFactor)
	return Result{
		MinAmps:     min,
		Calculation: fmt.Sprintf("%sA inverter × 1.25 = %dA", amps(inverterAmps), min),
	}
}

// ACCoupled sizes for an AC-coupled system, where the inverter and battery
// outputs sum on the AC bus.
func ACCoupled(inverterAmps, batteryAmps float64) Result {
	if inverterAmps <= 0 && batteryAmps <= 0 {
		return Result{Insufficient: true}
	}
	if batteryAmps <= 0 {
		return DCCoupled(inverterAmps)
	}
	if inverterAmps <= 0 {
		return BatteryOnly(batteryAmps)
	}
	min := ceil((inverterAmps + batteryAmps) * ContinuousFactor)
	return Result{
		MinAmps: min,
		Calculation: fmt.Sprintf("(%sA inverter + %sA battery) × 1.25 = %dA",
			amps(inverterAmps), amps(batteryAmps), min),
	}
}

// BatteryOnly sizes for a standby system with no solar output.
func BatteryOnly(batteryAmps float64) Result {
	if batteryAmps <= 0 {
		return Result{Insufficient: true}
	}
	min := ceil(batteryAmps * ContinuousFactor)
	return Result{
		MinAmps:     min,
		Calculation: fmt.Sprintf("%sA battery × 1.25 = %dA", amps(batteryAmps), min),
	}
}

// Fixed returns a predetermined rating with an explanatory note, for
// equipment whose size is dictated by the product rather than computed.
func Fixed(minAmps int, note string) Result {
	return Result{MinAmps: minAmps, Calculation: note}
}

// FromBusRating sizes to match a panel bus, for feeds that must carry
// whatever the panel can.
func FromBusRating(busAmps int) Result {
	if busAmps <= 0 {
		return Result{Insufficient: true}
	}
	return Result{
		MinAmps:     busAmps,
		Calculation: fmt.Sprintf("%dA bus rating", busAmps),
	}
}

func ceil(f float64) int {
	return int(math.Ceil(f))
}

// amps formats a current without trailing zeros ("32", "38.4").
func amps(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
