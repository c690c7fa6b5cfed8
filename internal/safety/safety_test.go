package safety

import (
	"testing"

	"github.com/buildwatch/safesite/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		reading  models.Reading
		expected int
	}{
		{
			name:     "all nominal",
			reading:  models.Reading{Temperature: 25, GasLevel: 300, HelmetViolations: 0, Vibration: models.VibrationNormal},
			expected: 100,
		},
		{
			name:     "at thresholds exactly",
			reading:  models.Reading{Temperature: 38, GasLevel: 400, HelmetViolations: 0, Vibration: models.VibrationNormal},
			expected: 100,
		},
		{
			name:     "overheat only",
			reading:  models.Reading{Temperature: 50, GasLevel: 400, HelmetViolations: 0, Vibration: models.VibrationNormal},
			expected: 76, // 100 - (50-38)*2
		},
		{
			name:     "gas, helmet and vibration",
			reading:  models.Reading{Temperature: 0, GasLevel: 450, HelmetViolations: 1, Vibration: models.VibrationHigh},
			expected: 70, // 100 - 50/5 - 10 - 10
		},
		{
			name:     "fractional penalties truncate",
			reading:  models.Reading{Temperature: 38.4, GasLevel: 404, HelmetViolations: 0, Vibration: models.VibrationNormal},
			expected: 100, // 0.8 and 0.8 both truncate to 0
		},
		{
			name:     "zero reading scores full",
			reading:  models.ZeroReading(),
			expected: 100,
		},
		{
			name:     "clamped at zero",
			reading:  models.Reading{Temperature: 120, GasLevel: 2000, HelmetViolations: 10, Vibration: models.VibrationHigh},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.reading); got != tt.expected {
				t.Errorf("Score(%+v) = %d, expected %d", tt.reading, got, tt.expected)
			}
		})
	}
}

func TestScore_AlwaysClamped(t *testing.T) {
	readings := []models.Reading{
		{Temperature: -500, GasLevel: -500, HelmetViolations: 0, Vibration: models.VibrationNormal},
		{Temperature: 1e6, GasLevel: 1e6, HelmetViolations: 1000, Vibration: models.VibrationHigh},
		{Temperature: 38.001, GasLevel: 400.001, HelmetViolations: 3, Vibration: models.VibrationUnknown},
	}
	for _, r := range readings {
		got := Score(r)
		if got < 0 || got > 100 {
			t.Errorf("Score(%+v) = %d, expected value in [0, 100]", r, got)
		}
	}
}

func TestScore_UnknownVibrationNotPenalized(t *testing.T) {
	r := models.Reading{Temperature: 20, GasLevel: 100, Vibration: models.VibrationUnknown}
	if got := Score(r); got != 100 {
		t.Errorf("Score with unknown vibration = %d, expected 100", got)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		score    int
		expected Risk
	}{
		{100, RiskLow},
		{80, RiskLow},
		{79, RiskModerate},
		{50, RiskModerate},
		{49, RiskHigh},
		{0, RiskHigh},
		{-5, RiskHigh},
		{150, RiskLow},
	}

	for _, tt := range tests {
		if got := Label(tt.score); got != tt.expected {
			t.Errorf("Label(%d) = %s, expected %s", tt.score, got, tt.expected)
		}
	}
}
