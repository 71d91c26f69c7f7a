package calculator

import (
	"fmt"
	"math"
	"portfoliowidget/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const tradingDaysPerYear = 252

type EquityMetricsResult struct {
	PeriodReturnPct float64
	AnnualizedStdev float64
	MaxDrawdownPct  float64
}

// CalculateEquityMetrics summarizes a daily equity series. points are
// taken in the order given, callers are expected to pass them oldest first
func CalculateEquityMetrics(points []domain.HistoryPoint) (*EquityMetricsResult, error) {
	returns, err := calculateReturns(points)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate returns: %w", err)
	}

	annualizedStdev := 0.0
	if len(returns) > 1 {
		stdev, err := stats.StandardDeviationSample(returns)
		if err != nil {
			return nil, err
		}
		annualizedStdev = stdev * math.Sqrt(tradingDaysPerYear)
	}

	startValue := points[0].Value
	endValue := points[len(points)-1].Value
	periodReturn := endValue.Sub(startValue).Div(startValue).InexactFloat64()

	return &EquityMetricsResult{
		PeriodReturnPct: 100 * periodReturn,
		AnnualizedStdev: annualizedStdev,
		MaxDrawdownPct:  100 * maxDrawdown(points),
	}, nil
}

func calculateReturns(points []domain.HistoryPoint) ([]float64, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("cannot calculate metrics on < 2 history points")
	}
	if points[0].Value.IsZero() {
		return nil, fmt.Errorf("cannot calculate metrics from a zero starting value on %s", points[0].Date)
	}

	returns := []float64{}
	lastValue := points[0].Value
	for _, p := range points[1:] {
		// unfunded days come back as zero, skip rather than divide by them
		if lastValue.IsZero() {
			lastValue = p.Value
			continue
		}
		ret := p.Value.Sub(lastValue).Div(lastValue).InexactFloat64()
		lastValue = p.Value

		returns = append(returns, ret)
	}

	return returns, nil
}

// maxDrawdown is the largest peak-to-trough drop as a fraction of the peak
func maxDrawdown(points []domain.HistoryPoint) float64 {
	peak := decimal.Zero
	worst := 0.0
	for _, p := range points {
		if p.Value.GreaterThan(peak) {
			peak = p.Value
			continue
		}
		if peak.IsZero() {
			continue
		}
		drawdown := peak.Sub(p.Value).Div(peak).InexactFloat64()
		if drawdown > worst {
			worst = drawdown
		}
	}
	return worst
}
