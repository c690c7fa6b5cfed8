// Package triage evaluates each cycle's score and reading against ordered
// threshold rules and selects at most one alert per cycle (first match
// wins). It also tracks recently delivered alert kinds so a persisting
// condition does not re-alert every cycle: the same kind within the
// cooldown window is suppressed, a different kind or an expired cooldown
// is delivered.
package triage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/buildwatch/safesite/internal/models"
	"github.com/buildwatch/safesite/internal/safety"
)

// criticalScore is the score below which the critical rule fires,
// regardless of individual metric values.
const criticalScore = 50

// Triage holds the per-session suppression state.
type Triage struct {
	cooldown time.Duration
	sent     map[models.AlertKind]time.Time
	now      func() time.Time
}

// New creates a Triage with the given suppression cooldown. A
// non-positive cooldown disables suppression.
func New(cooldown time.Duration) *Triage {
	return &Triage{
		cooldown: cooldown,
		sent:     make(map[models.AlertKind]time.Time),
		now:      time.Now,
	}
}

// Evaluate applies the ordered rules to the current score and reading and
// returns the single selected alert, or nil when no rule matches. It does
// not consult suppression state; callers check Suppressed before delivery
// so a suppressed alert still appears in the cycle report.
func (t *Triage) Evaluate(score int, r models.Reading) *models.Alert {
	var (
		kind    models.AlertKind
		message string
	)
	switch {
	case score < criticalScore:
		kind = models.AlertCriticalScore
		message = fmt.Sprintf("🚨 CRITICAL: Safety score low (%d)! Immediate action required.", score)
	case r.GasLevel > safety.GasThreshold:
		kind = models.AlertHighGas
		message = fmt.Sprintf("⚠️ High Gas Detected: %.0f ppm in Zone A.", r.GasLevel)
	case r.Temperature > safety.TempThreshold:
		kind = models.AlertOverheat
		message = fmt.Sprintf("🔥 Overheat Risk: %.1f°C detected on site.", r.Temperature)
	case r.HelmetViolations > 0:
		kind = models.AlertHelmetViolation
		message = fmt.Sprintf("🪖 Helmet Violation(s) Detected: %d", r.HelmetViolations)
	default:
		return nil
	}

	return &models.Alert{
		ID:          uuid.New().String(),
		Kind:        kind,
		Message:     message,
		Score:       score,
		TriggeredAt: t.now(),
	}
}

// Suppressed reports whether an alert of the given kind was delivered
// within the cooldown window.
func (t *Triage) Suppressed(kind models.AlertKind) bool {
	if t.cooldown <= 0 {
		return false
	}
	sentAt, ok := t.sent[kind]
	if !ok {
		return false
	}
	return t.now().Sub(sentAt) < t.cooldown
}

// RecordSent marks an alert kind as delivered now. Call after a successful
// send so future cycles can suppress repeats.
func (t *Triage) RecordSent(kind models.AlertKind) {
	t.sent[kind] = t.now()
}
