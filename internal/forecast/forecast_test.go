package forecast

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func secondsTimes(n int) []time.Time {
	base := time.Unix(1700000000, 0)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = base.Add(time.Duration(i) * time.Second)
	}
	return out
}

func TestMovingAverage_EmptyHistoryReturnsZeros(t *testing.T) {
	out := MovingAverage{Window: 5}.Forecast(nil, nil, 12, time.Second)
	if len(out) != 12 {
		t.Fatalf("expected 12 values, got %d", len(out))
	}
	for i, v := range out {
		if v != 0 {
			t.Errorf("value %d = %f, expected 0", i, v)
		}
	}
}

func TestMovingAverage_ConstantSeries(t *testing.T) {
	out := MovingAverage{Window: 5}.Forecast(nil, []float64{10, 10, 10, 10, 10}, 1, time.Second)
	if len(out) != 1 {
		t.Fatalf("expected 1 value, got %d", len(out))
	}
	if out[0] != 10.0 {
		t.Errorf("forecast = %f, expected 10.0", out[0])
	}
}

func TestMovingAverage_CompoundsOnOwnForecasts(t *testing.T) {
	// Window 2 over [1, 3]: mean(1,3)=2, then mean(3,2)=2.5, then mean(2,2.5)=2.25.
	out := MovingAverage{Window: 2}.Forecast(nil, []float64{1, 3}, 3, time.Second)
	expected := []float64{2, 2.5, 2.25}
	if len(out) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(out))
	}
	for i := range expected {
		if out[i] != expected[i] {
			t.Errorf("value %d = %f, expected %f", i, out[i], expected[i])
		}
	}
}

func TestMovingAverage_OutputLengthAlwaysPeriods(t *testing.T) {
	histories := [][]float64{
		{},
		{42},
		{1, 2, 3, 4, 5, 6, 7, 8},
	}
	for _, values := range histories {
		out := MovingAverage{Window: 5}.Forecast(nil, values, 7, time.Second)
		if len(out) != 7 {
			t.Errorf("history length %d: got %d values, expected 7", len(values), len(out))
		}
	}
}

func TestMovingAverage_WindowShorterThanHistory(t *testing.T) {
	// Only the last min(window, len) values contribute.
	out := MovingAverage{Window: 2}.Forecast(nil, []float64{1000, 4, 6}, 1, time.Second)
	if out[0] != 5.0 {
		t.Errorf("forecast = %f, expected 5.0", out[0])
	}
}

func TestTrend_LinearSeries(t *testing.T) {
	times := secondsTimes(3)
	out := Trend{}.Forecast(times, []float64{1, 2, 3}, 2, time.Second)
	if out == nil {
		t.Fatal("expected a forecast, got nil")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 values, got %d", len(out))
	}
	if out[0] != 4.0 || out[1] != 5.0 {
		t.Errorf("forecast = %v, expected [4, 5]", out)
	}
}

func TestTrend_RespectsFitWindow(t *testing.T) {
	// Older points outside the fit window must not skew the regression.
	times := secondsTimes(5)
	values := []float64{100, 100, 1, 2, 3}
	out := Trend{FitWindow: 3}.Forecast(times, values, 1, time.Second)
	if out == nil {
		t.Fatal("expected a forecast, got nil")
	}
	if out[0] != 4.0 {
		t.Errorf("forecast = %f, expected 4.0", out[0])
	}
}

func TestTrend_InsufficientData(t *testing.T) {
	times := secondsTimes(2)
	if out := (Trend{}).Forecast(times, []float64{1, 2}, 12, time.Second); out != nil {
		t.Errorf("expected nil for 2 observations, got %v", out)
	}
	if out := (Trend{}).Forecast(nil, nil, 12, time.Second); out != nil {
		t.Errorf("expected nil for empty history, got %v", out)
	}
}

func TestTrend_DegenerateTimestamps(t *testing.T) {
	same := time.Unix(1700000000, 0)
	times := []time.Time{same, same, same}
	if out := (Trend{}).Forecast(times, []float64{1, 2, 3}, 12, time.Second); out != nil {
		t.Errorf("expected nil for identical timestamps, got %v", out)
	}
}

func TestTrend_InvalidStep(t *testing.T) {
	times := secondsTimes(3)
	if out := (Trend{}).Forecast(times, []float64{1, 2, 3}, 12, 0); out != nil {
		t.Errorf("expected nil for non-positive step, got %v", out)
	}
}

func TestChain_FallsBackWhenPrimaryYieldsNothing(t *testing.T) {
	chain := Chain{
		Primary:  Trend{},
		Fallback: MovingAverage{Window: 5},
		Logger:   zerolog.Nop(),
	}

	// One observation: trend cannot fit, moving average can.
	out := chain.Forecast(secondsTimes(1), []float64{8}, 12, time.Second)
	if len(out) != 12 {
		t.Fatalf("expected 12 values, got %d", len(out))
	}
	for i, v := range out {
		if v != 8.0 {
			t.Errorf("value %d = %f, expected 8.0", i, v)
		}
	}
}

func TestChain_NilPrimaryUsesFallbackOnly(t *testing.T) {
	chain := Chain{Fallback: MovingAverage{Window: 5}, Logger: zerolog.Nop()}
	out := chain.Forecast(nil, nil, 3, time.Second)
	if len(out) != 3 {
		t.Errorf("expected 3 values, got %d", len(out))
	}
}

func TestChain_UsesPrimaryWhenItSucceeds(t *testing.T) {
	chain := Chain{
		Primary:  Trend{},
		Fallback: MovingAverage{Window: 5},
		Logger:   zerolog.Nop(),
	}
	out := chain.Forecast(secondsTimes(3), []float64{1, 2, 3}, 1, time.Second)
	if len(out) != 1 || out[0] != 4.0 {
		t.Errorf("forecast = %v, expected [4] from the trend engine", out)
	}
}

func TestFutureTimes(t *testing.T) {
	base := time.Unix(1700000000, 0)
	out := FutureTimes(base, 3, 2*time.Second)
	if len(out) != 3 {
		t.Fatalf("expected 3 times, got %d", len(out))
	}
	for i, ft := range out {
		want := base.Add(time.Duration(i+1) * 2 * time.Second)
		if !ft.Equal(want) {
			t.Errorf("time %d = %v, expected %v", i, ft, want)
		}
	}
}
