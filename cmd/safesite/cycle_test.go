package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildwatch/safesite/internal/config"
	"github.com/buildwatch/safesite/internal/forecast"
	"github.com/buildwatch/safesite/internal/history"
	"github.com/buildwatch/safesite/internal/models"
	"github.com/buildwatch/safesite/internal/snapshot"
	"github.com/buildwatch/safesite/internal/triage"
)

func testSession(t *testing.T, snapshotPath string) *session {
	t.Helper()
	cfg := &config.Config{
		Site:     config.SiteConfig{SnapshotPath: snapshotPath, RefreshInterval: 3 * time.Second},
		History:  config.HistoryConfig{Capacity: 60},
		Forecast: config.ForecastConfig{Engine: "trend", Steps: 12, Window: 5, FitWindow: 30},
		Logging:  config.LoggingConfig{Level: "info", Format: "json"},
	}
	return &session{
		cfg:     cfg,
		reader:  snapshot.NewReader(snapshotPath, zerolog.Nop()),
		history: history.New(cfg.History.Capacity),
		triage:  triage.New(cfg.Alerts.Cooldown),
		engine: forecast.Chain{
			Primary:  forecast.Trend{FitWindow: cfg.Forecast.FitWindow},
			Fallback: forecast.MovingAverage{Window: cfg.Forecast.Window},
			Logger:   zerolog.Nop(),
		},
		logger: zerolog.Nop(),
	}
}

func TestRunCycle_AbsentSnapshotDegradesGracefully(t *testing.T) {
	sess := testSession(t, filepath.Join(t.TempDir(), "data.json"))

	report := sess.runCycle(time.Now())

	if report.SnapshotOK {
		t.Error("snapshot should be reported as unavailable")
	}
	if sess.history.Len() != 0 {
		t.Errorf("history length = %d, expected 0 (no push on absent snapshot)", sess.history.Len())
	}
	// score(0, 0, 0, Unknown) == 100.
	if report.Score != 100 {
		t.Errorf("score = %d, expected 100 for the zero reading", report.Score)
	}
	if report.Risk != "Low" {
		t.Errorf("risk = %s, expected Low", report.Risk)
	}
	if report.Alert != nil {
		t.Errorf("expected no alert, got %+v", report.Alert)
	}
	if len(report.Forecasts.Temperature.Values) != 12 {
		t.Errorf("forecast length = %d, expected 12 even with empty history", len(report.Forecasts.Temperature.Values))
	}
	for i, v := range report.Forecasts.GasLevel.Values {
		if v != 0 {
			t.Errorf("gas forecast value %d = %f, expected 0", i, v)
		}
	}
}

func TestRunCycle_HealthySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	writeFile(t, path, `{"temperature": 25, "gas_level": 300, "helmet_violations": 0, "vibration": "Normal"}`)

	sess := testSession(t, path)
	report := sess.runCycle(time.Now())

	if !report.SnapshotOK {
		t.Fatal("snapshot should be OK")
	}
	if sess.history.Len() != 1 {
		t.Errorf("history length = %d, expected 1", sess.history.Len())
	}
	if report.Score != 100 {
		t.Errorf("score = %d, expected 100", report.Score)
	}
	if report.Alert != nil {
		t.Errorf("expected no alert for nominal reading, got %+v", report.Alert)
	}
	if len(report.Forecasts.Temperature.Values) != 12 ||
		len(report.Forecasts.GasLevel.Values) != 12 ||
		len(report.Forecasts.HelmetViolations.Values) != 12 {
		t.Error("all three metric forecasts should have the configured horizon")
	}
	if len(report.Forecasts.Temperature.Times) != 12 {
		t.Errorf("forecast times length = %d, expected 12", len(report.Forecasts.Temperature.Times))
	}
}

func TestRunCycle_BreachTriggersAlert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	writeFile(t, path, `{"temperature": 25, "gas_level": 480, "helmet_violations": 0, "vibration": "Normal"}`)

	sess := testSession(t, path)
	report := sess.runCycle(time.Now())

	if report.Alert == nil {
		t.Fatal("expected a high-gas alert")
	}
	if report.Alert.Kind != models.AlertHighGas {
		t.Errorf("alert kind = %s, expected %s", report.Alert.Kind, models.AlertHighGas)
	}
	// score = 100 - 80/5 = 84, above the critical rule.
	if report.Score != 84 {
		t.Errorf("score = %d, expected 84", report.Score)
	}
}

func TestRunCycle_HistoryGrowsAcrossCycles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	sess := testSession(t, path)

	for i := 0; i < 4; i++ {
		writeFile(t, path, `{"temperature": 25, "gas_level": 300, "helmet_violations": 0, "vibration": "Normal"}`)
		sess.runCycle(time.Now())
	}
	if sess.history.Len() != 4 {
		t.Errorf("history length = %d, expected 4", sess.history.Len())
	}

	// A corrupt cycle must not grow history.
	writeFile(t, path, `{"temperature": `)
	report := sess.runCycle(time.Now())
	if report.SnapshotOK {
		t.Error("corrupt snapshot should be reported as unavailable")
	}
	if sess.history.Len() != 4 {
		t.Errorf("history length = %d after corrupt cycle, expected 4", sess.history.Len())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
