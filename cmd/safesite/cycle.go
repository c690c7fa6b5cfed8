package main

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/buildwatch/safesite/internal/config"
	"github.com/buildwatch/safesite/internal/forecast"
	"github.com/buildwatch/safesite/internal/history"
	"github.com/buildwatch/safesite/internal/metrics"
	"github.com/buildwatch/safesite/internal/models"
	"github.com/buildwatch/safesite/internal/safety"
	"github.com/buildwatch/safesite/internal/snapshot"
	"github.com/buildwatch/safesite/internal/telegram"
	"github.com/buildwatch/safesite/internal/triage"
	"github.com/buildwatch/safesite/internal/ws"
)

// session holds the state owned by one monitoring session: the rolling
// history, the triage suppression record, and the collaborators every
// cycle consults. All cycles run sequentially on one goroutine.
type session struct {
	cfg     *config.Config
	reader  *snapshot.Reader
	history *history.Store
	triage  *triage.Triage
	engine  forecast.Forecaster
	tg      *telegram.Client
	hub     *ws.Hub
	logger  zerolog.Logger
}

// runCycle executes one synchronous monitoring pass: read the snapshot,
// fold it into history on success, score, triage, deliver, forecast,
// score the one-step-ahead prediction, and publish the report. Nothing in
// the pass can fail the session; missing or corrupt snapshots degrade to
// zero values and skip the history push.
func (s *session) runCycle(tickTime time.Time) models.CycleReport {
	reading, status := s.reader.Read()
	metrics.ObserveCycle(status.String())

	snapshotOK := status == snapshot.StatusOK
	if snapshotOK {
		s.history.Push(history.Entry{
			Time:             reading.ObservedAt,
			Temperature:      reading.Temperature,
			GasLevel:         reading.GasLevel,
			HelmetViolations: reading.HelmetViolations,
		})
	} else {
		s.logger.Warn().Stringer("status", status).Msg("snapshot unavailable, degrading to zero reading")
	}

	score := safety.Score(reading)
	risk := safety.Label(score)

	alert := s.triage.Evaluate(score, reading)
	if alert != nil {
		s.deliver(alert)
	}

	times, temps, gases, helmets := s.history.Series()
	steps := s.cfg.Forecast.Steps
	step := s.cfg.Site.RefreshInterval
	if step < time.Second {
		step = time.Second
	}

	base := tickTime
	if len(times) > 0 {
		base = times[len(times)-1]
	}
	futureTimes := forecast.FutureTimes(base, steps, step)

	set := models.ForecastSet{
		Temperature:      models.Forecast{Metric: "temperature", Values: s.engine.Forecast(times, temps, steps, step), Times: futureTimes},
		GasLevel:         models.Forecast{Metric: "gas_level", Values: s.engine.Forecast(times, gases, steps, step), Times: futureTimes},
		HelmetViolations: models.Forecast{Metric: "helmet_violations", Values: s.engine.Forecast(times, helmets, steps, step), Times: futureTimes},
	}

	// Score the one-step-ahead prediction. Forecasts cover the numeric
	// metrics only, so the predicted reading assumes normal vibration.
	predictedHelmets := int(math.Round(set.HelmetViolations.Values[0]))
	if predictedHelmets < 0 {
		predictedHelmets = 0
	}
	predicted := models.Reading{
		Temperature:      set.Temperature.Values[0],
		GasLevel:         set.GasLevel.Values[0],
		HelmetViolations: predictedHelmets,
		Vibration:        models.VibrationNormal,
	}
	predictedScore := safety.Score(predicted)
	metrics.SetScores(score, predictedScore)

	report := models.CycleReport{
		CycleID:        uuid.New().String(),
		Reading:        reading,
		SnapshotOK:     snapshotOK,
		Score:          score,
		Risk:           string(risk),
		PredictedScore: predictedScore,
		PredictedRisk:  string(safety.Label(predictedScore)),
		Forecasts:      set,
		Alert:          alert,
		GeneratedAt:    time.Now(),
	}

	if s.hub != nil {
		s.hub.BroadcastReport(report)
		if alert != nil {
			s.hub.BroadcastAlert(alert)
		}
	}

	s.logger.Info().
		Int("score", score).
		Str("risk", string(risk)).
		Int("predicted_score", predictedScore).
		Int("history_len", s.history.Len()).
		Bool("snapshot_ok", snapshotOK).
		Msg("cycle completed")

	return report
}

// deliver pushes an alert through the transport unless it is suppressed
// by the cooldown. Delivery failure is logged and isolated; the cycle
// continues regardless.
func (s *session) deliver(alert *models.Alert) {
	if s.triage.Suppressed(alert.Kind) {
		metrics.ObserveAlert(string(alert.Kind), "suppressed")
		s.logger.Debug().Str("kind", string(alert.Kind)).Msg("alert suppressed by cooldown")
		return
	}
	if s.tg == nil {
		metrics.ObserveAlert(string(alert.Kind), "disabled")
		s.logger.Info().Str("kind", string(alert.Kind)).Str("message", alert.Message).Msg("alert triggered (delivery disabled)")
		return
	}
	if err := s.tg.SendAlert(alert); err != nil {
		metrics.ObserveAlert(string(alert.Kind), "failed")
		s.logger.Warn().Err(err).Str("kind", string(alert.Kind)).Msg("failed to deliver alert")
		return
	}
	s.triage.RecordSent(alert.Kind)
	metrics.ObserveAlert(string(alert.Kind), "sent")
	s.logger.Info().Str("kind", string(alert.Kind)).Int("score", alert.Score).Msg("alert delivered")
}
