// Package models defines the core domain entities for the SafeSite service.
// These models represent sensor snapshots, safety alerts, and per-cycle
// forecast output. All models include built-in validation to ensure data
// integrity throughout the application.
package models

import (
	"errors"
	"fmt"
	"time"
)

// Vibration is the discrete vibration state reported by the site sensor.
type Vibration string

const (
	VibrationNormal  Vibration = "Normal"
	VibrationHigh    Vibration = "High"
	VibrationUnknown Vibration = "Unknown"
)

// ParseVibration maps a raw snapshot string to a Vibration state.
// Anything that is not exactly "Normal" or "High" is Unknown.
func ParseVibration(s string) Vibration {
	switch s {
	case string(VibrationNormal):
		return VibrationNormal
	case string(VibrationHigh):
		return VibrationHigh
	default:
		return VibrationUnknown
	}
}

// Reading is a single point-in-time sensor snapshot for the site.
// ObservedAt is the modification time of the snapshot file, not the
// wall-clock time the file was read; it is the canonical timestamp for
// history entries. A Reading is immutable after construction.
type Reading struct {
	Temperature      float64   `json:"temperature"`       // °C
	GasLevel         float64   `json:"gas_level"`         // ppm
	HelmetViolations int       `json:"helmet_violations"` // detections aggregated by the camera pipeline
	Vibration        Vibration `json:"vibration"`
	ObservedAt       time.Time `json:"observed_at"`
}

// ZeroReading is the degraded reading used when the snapshot source is
// absent or corrupt: all metrics zero, vibration unknown.
func ZeroReading() Reading {
	return Reading{Vibration: VibrationUnknown}
}

// Validate checks that all reading fields are valid.
func (r *Reading) Validate() error {
	if r.HelmetViolations < 0 {
		return errors.New("helmet violations must not be negative")
	}
	switch r.Vibration {
	case VibrationNormal, VibrationHigh, VibrationUnknown:
	default:
		return fmt.Errorf("unknown vibration state: %q", r.Vibration)
	}
	return nil
}

func (r *Reading) String() string {
	return fmt.Sprintf("temp=%.1f°C gas=%.0fppm helmet=%d vibration=%s",
		r.Temperature, r.GasLevel, r.HelmetViolations, r.Vibration)
}
