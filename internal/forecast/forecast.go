// Package forecast produces short-horizon per-metric predictions from the
// rolling history. Two interchangeable strategies satisfy the same
// contract: a least-squares trend model (primary) and a compounding
// moving average (fallback). The fallback is total, so a Chain of the two
// always yields a sequence of exactly the requested length.
package forecast

import (
	"time"

	"github.com/rs/zerolog"
)

// Forecaster predicts the next periods values of one metric at a fixed
// step cadence from the last observed time. A nil result means the
// strategy could not produce a forecast (insufficient data, degenerate
// fit); callers fall back to another strategy. A non-nil result always
// has length periods.
type Forecaster interface {
	Forecast(times []time.Time, values []float64, periods int, step time.Duration) []float64
}

// Chain tries the primary strategy and transparently falls back when it
// yields no result. Output shape is identical regardless of which
// strategy ran. Primary may be nil, in which case the fallback runs
// exclusively.
type Chain struct {
	Primary  Forecaster
	Fallback Forecaster
	Logger   zerolog.Logger
}

// Forecast implements Forecaster.
func (c Chain) Forecast(times []time.Time, values []float64, periods int, step time.Duration) []float64 {
	if c.Primary != nil {
		if out := c.Primary.Forecast(times, values, periods, step); out != nil {
			return out
		}
		c.Logger.Debug().Int("observations", len(values)).Msg("primary forecaster yielded no result, using fallback")
	}
	return c.Fallback.Forecast(times, values, periods, step)
}

// FutureTimes returns periods timestamps at step cadence after base.
// It is the time axis shared by every forecast produced in one cycle.
func FutureTimes(base time.Time, periods int, step time.Duration) []time.Time {
	if periods <= 0 {
		return []time.Time{}
	}
	out := make([]time.Time, periods)
	for i := 0; i < periods; i++ {
		out[i] = base.Add(step * time.Duration(i+1))
	}
	return out
}
