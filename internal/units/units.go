// Package units provides shared constants and validation for display units
package units

// Unit constants
const (
	KN   = "kn"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
	MPS  = "mps"
)

// ValidUnits contains all valid speed unit values
var ValidUnits = []string{KN, MPH, KMPH, KPH, MPS}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "kn, mph, kmph, kph, mps"
}

// ConvertSpeed converts a speed from knots to the target units.
// AIS reports and the database store speed-over-ground in knots.
func ConvertSpeed(speedKn float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedKn * 1.15078 // knots to mph
	case KMPH, KPH:
		return speedKn * 1.852 // knots to km/h
	case MPS:
		return speedKn * 0.514444 // knots to m/s
	case KN:
		return speedKn // no conversion needed
	default:
		return speedKn // default to knots if unknown unit
	}
}

// FeetToMeters converts a depth or clearance from feet to meters for display.
func FeetToMeters(ft float64) float64 {
	return ft * 0.3048
}

// NauticalMilesToKilometers converts a distance from nautical miles to kilometers.
func NauticalMilesToKilometers(nm float64) float64 {
	return nm * 1.852
}
