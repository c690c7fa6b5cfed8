package models

import "time"

// CycleReport is the full outcome of one monitoring cycle: the reading
// (zero-valued when the snapshot was unavailable), the derived scores and
// risk labels, the forecast set, and the alert selected by triage (nil when
// no rule matched). Reports are published to dashboard clients and then
// discarded.
type CycleReport struct {
	CycleID        string      `json:"cycle_id"`
	Reading        Reading     `json:"reading"`
	SnapshotOK     bool        `json:"snapshot_ok"`
	Score          int         `json:"score"`
	Risk           string      `json:"risk"`
	PredictedScore int         `json:"predicted_score"`
	PredictedRisk  string      `json:"predicted_risk"`
	Forecasts      ForecastSet `json:"forecasts"`
	Alert          *Alert      `json:"alert,omitempty"`
	GeneratedAt    time.Time   `json:"generated_at"`
}
