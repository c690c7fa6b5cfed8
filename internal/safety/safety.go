// Package safety implements the composite site safety score and its risk
// classification. Both functions are pure and deterministic; the scoring
// formula and its threshold constants are a hard interface contract relied
// on by alert triage and the dashboard.
package safety

import "github.com/buildwatch/safesite/internal/models"

// Scoring thresholds and penalty weights. Helmet violations carry a fixed
// per-violation penalty because they represent direct non-compliance rather
// than ambient condition drift.
const (
	TempThreshold = 38.0  // °C above which temperature starts to penalize
	GasThreshold  = 400.0 // ppm above which gas concentration starts to penalize

	helmetPenalty    = 10
	vibrationPenalty = 10
)

// Score maps a reading to a safety score in [0, 100]. The score starts at
// 100 and loses 2 points per °C above 38, 1 point per 5 ppm above 400,
// 10 points per helmet violation, and 10 points for high vibration.
// Fractional penalties are truncated.
func Score(r models.Reading) int {
	score := 100
	if r.Temperature > TempThreshold {
		score -= int((r.Temperature - TempThreshold) * 2)
	}
	if r.GasLevel > GasThreshold {
		score -= int((r.GasLevel - GasThreshold) / 5)
	}
	score -= r.HelmetViolations * helmetPenalty
	if r.Vibration == models.VibrationHigh {
		score -= vibrationPenalty
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Risk is the discrete classification of a safety score.
type Risk string

const (
	RiskLow      Risk = "Low"
	RiskModerate Risk = "Moderate"
	RiskHigh     Risk = "High"
)

// Label classifies a score: >=80 is Low risk, >=50 Moderate, anything
// below High. Total over all integers, though callers only pass 0–100.
func Label(score int) Risk {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 50:
		return RiskModerate
	default:
		return RiskHigh
	}
}
