package forecast

import (
	"math"
	"time"
)

// DefaultWindow is the moving-average window used when none is configured.
const DefaultWindow = 5

// MovingAverage is the deterministic fallback strategy. Each step predicts
// the mean of the last min(Window, len) values of a working buffer seeded
// with the history; the prediction is appended back to the buffer, so
// later steps compound on earlier forecasts rather than on raw history
// alone. It never fails: empty history yields all zeros.
type MovingAverage struct {
	Window int
}

// Forecast implements Forecaster. The result always has length periods.
func (m MovingAverage) Forecast(_ []time.Time, values []float64, periods int, _ time.Duration) []float64 {
	if periods <= 0 {
		return []float64{}
	}
	out := make([]float64, 0, periods)
	if len(values) == 0 {
		return make([]float64, periods)
	}

	window := m.Window
	if window <= 0 {
		window = DefaultWindow
	}

	buf := make([]float64, len(values), len(values)+periods)
	copy(buf, values)
	for i := 0; i < periods; i++ {
		w := window
		if w > len(buf) {
			w = len(buf)
		}
		var sum float64
		for _, v := range buf[len(buf)-w:] {
			sum += v
		}
		ma := round2(sum / float64(w))
		out = append(out, ma)
		buf = append(buf, ma)
	}
	return out
}

// round2 rounds to two decimals with halves away from zero, not to even.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
