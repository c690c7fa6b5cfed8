package models

import (
	"errors"
	"time"
)

// Forecast is an ordered sequence of predicted values for one metric.
// Values and Times are parallel and always the same length: exactly the
// requested horizon, regardless of which forecasting strategy produced them.
type Forecast struct {
	Metric string      `json:"metric"`
	Values []float64   `json:"values"`
	Times  []time.Time `json:"times"`
}

// Validate checks that the forecast sequences are well formed.
func (f *Forecast) Validate() error {
	if f.Metric == "" {
		return errors.New("forecast metric must not be empty")
	}
	if len(f.Values) != len(f.Times) {
		return errors.New("forecast values and times must have equal length")
	}
	return nil
}

// ForecastSet groups the per-metric forecasts produced in one cycle.
type ForecastSet struct {
	Temperature      Forecast `json:"temperature"`
	GasLevel         Forecast `json:"gas_level"`
	HelmetViolations Forecast `json:"helmet_violations"`
}
