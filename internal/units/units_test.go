package units

import (
	"math"
	"testing"
)

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedKn  float64
		units    string
		expected float64
	}{
		{"10 kn to mph", 10.0, MPH, 11.5078},
		{"10 kn to kmph", 10.0, KMPH, 18.52},
		{"10 kn to kph", 10.0, KPH, 18.52},
		{"10 kn to mps", 10.0, MPS, 5.14444},
		{"10 kn to kn", 10.0, KN, 10.0},
		{"unknown units default to knots", 10.0, "unknown", 10.0},
		{"0 kn to mph", 0.0, MPH, 0.0},
		{"harbour speed 6 kn to kmph", 6.0, KMPH, 11.112},
		{"transit speed 18 kn to mph", 18.0, MPH, 20.71404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedKn, tt.units)
			if math.Abs(result-tt.expected) > 0.01 { // Allow small floating point differences
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedKn, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid kn", KN, true},
		{"valid mps", MPS, true},
		{"valid mph", MPH, true},
		{"valid kmph", KMPH, true},
		{"valid kph", KPH, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "KN", false},
		{"case sensitive", "Mph", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	expected := "kn, mph, kmph, kph, mps"
	result := GetValidUnitsString()
	if result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}

// Test conversion accuracy with known values
func TestConversionAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		speedKn  float64
		unit     string
		expected float64
	}{
		// Test MPH conversion (1 kn = 1.15078 mph)
		{"1 kn to mph", 1.0, MPH, 1.15078},
		{"5 kn to mph", 5.0, MPH, 5.7539},

		// Test KM/H conversion (1 kn = 1.852 km/h)
		{"1 kn to kmph", 1.0, KMPH, 1.852},
		{"5 kn to kmph", 5.0, KMPH, 9.26},
		{"1 kn to kph", 1.0, KPH, 1.852},

		// Test KN (no conversion)
		{"5 kn to kn", 5.0, KN, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedKn, tt.unit)
			if math.Abs(result-tt.expected) > 0.0001 { // Very precise check
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedKn, tt.unit, result, tt.expected)
			}
		})
	}
}

func TestDistanceAndDepthConversions(t *testing.T) {
	if got := FeetToMeters(35); math.Abs(got-10.668) > 0.0001 {
		t.Errorf("FeetToMeters(35) = %f, want 10.668", got)
	}
	if got := NauticalMilesToKilometers(10); math.Abs(got-18.52) > 0.0001 {
		t.Errorf("NauticalMilesToKilometers(10) = %f, want 18.52", got)
	}
}
