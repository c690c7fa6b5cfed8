package forecast

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultFitWindow bounds how many trailing observations the trend model fits.
const DefaultFitWindow = 30

// Trend is the primary statistical strategy: a seasonality-free additive
// model (level + linear trend) fitted by ordinary least squares over up to
// the last FitWindow observations. It needs at least three observations
// spanning more than one distinct timestamp; any degenerate fit yields nil
// so the caller can fall back.
type Trend struct {
	FitWindow int
}

// Forecast implements Forecaster. Values are projected at step cadence
// from the last observed time and rounded to two decimals.
func (tr Trend) Forecast(times []time.Time, values []float64, periods int, step time.Duration) []float64 {
	if periods <= 0 {
		return []float64{}
	}
	if len(times) != len(values) || len(values) < 3 || step <= 0 {
		return nil
	}

	fitWindow := tr.FitWindow
	if fitWindow <= 0 {
		fitWindow = DefaultFitWindow
	}
	if len(values) > fitWindow {
		times = times[len(times)-fitWindow:]
		values = values[len(values)-fitWindow:]
	}

	// Regress on seconds since the first observation.
	origin := times[0]
	xs := make([]float64, len(times))
	distinct := 1
	for i, t := range times {
		xs[i] = t.Sub(origin).Seconds()
		if i > 0 && !t.Equal(times[i-1]) {
			distinct++
		}
	}
	if distinct < 2 {
		return nil
	}

	alpha, beta := stat.LinearRegression(xs, values, nil, false)
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil
	}

	last := times[len(times)-1]
	out := make([]float64, periods)
	for i := 0; i < periods; i++ {
		x := last.Add(step * time.Duration(i+1)).Sub(origin).Seconds()
		out[i] = round2(alpha + beta*x)
	}
	return out
}
