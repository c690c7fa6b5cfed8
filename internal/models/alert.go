package models

import (
	"errors"
	"time"
)

// AlertKind identifies which triage rule produced an alert. Kinds are
// ordered by the triage rules; at most one alert is produced per cycle.
type AlertKind string

const (
	AlertCriticalScore   AlertKind = "critical_score"
	AlertHighGas         AlertKind = "high_gas"
	AlertOverheat        AlertKind = "overheat"
	AlertHelmetViolation AlertKind = "helmet_violation"
)

// Alert is a single outbound safety notification. Alerts are
// fire-and-forget: they are not persisted, and delivery failure never
// interrupts the monitoring cycle.
type Alert struct {
	ID          string    `json:"id"`
	Kind        AlertKind `json:"kind"`
	Message     string    `json:"message"`
	Score       int       `json:"score"` // safety score at trigger time
	TriggeredAt time.Time `json:"triggered_at"`
}

// Validate checks that all alert fields are valid.
func (a *Alert) Validate() error {
	if a.ID == "" {
		return errors.New("alert ID must not be empty")
	}
	switch a.Kind {
	case AlertCriticalScore, AlertHighGas, AlertOverheat, AlertHelmetViolation:
	default:
		return errors.New("unknown alert kind")
	}
	if a.Message == "" {
		return errors.New("alert message must not be empty")
	}
	if a.Score < 0 || a.Score > 100 {
		return errors.New("alert score must be between 0 and 100")
	}
	if a.TriggeredAt.IsZero() {
		return errors.New("alert trigger time must be set")
	}
	return nil
}
