package calculator

import (
	"fmt"
	"math"
	"portfoliowidget/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func points(values ...int64) []domain.HistoryPoint {
	out := []domain.HistoryPoint{}
	for i, v := range values {
		out = append(out, domain.HistoryPoint{
			Date:  fmt.Sprintf("2024-01-%02d", i+1),
			Value: decimal.NewFromInt(v),
		})
	}
	return out
}

func TestCalculateEquityMetrics(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		result, err := CalculateEquityMetrics(points(100, 110, 99, 120))
		require.NoError(t, err)

		// returns: 0.1, -0.1, 0.2121...
		require.Equal(
			t,
			"",
			cmp.Diff(
				&EquityMetricsResult{
					PeriodReturnPct: 20,
					AnnualizedStdev: 2.5099,
					MaxDrawdownPct:  10,
				},
				result,
				cmp.Comparer(func(i, j float64) bool {
					return math.Abs(i-j) < 0.001
				}),
			),
		)
	})

	t.Run("two points have no volatility", func(t *testing.T) {
		result, err := CalculateEquityMetrics(points(100, 105))
		require.NoError(t, err)
		require.InDelta(t, 5, result.PeriodReturnPct, 0.0001)
		require.Equal(t, 0.0, result.AnnualizedStdev)
		require.Equal(t, 0.0, result.MaxDrawdownPct)
	})

	t.Run("not enough points", func(t *testing.T) {
		_, err := CalculateEquityMetrics(points(100))
		require.ErrorContains(t, err, "< 2 history points")
	})

	t.Run("zero start", func(t *testing.T) {
		_, err := CalculateEquityMetrics(points(0, 100))
		require.ErrorContains(t, err, "zero starting value")
	})

	t.Run("zero in the middle is skipped", func(t *testing.T) {
		result, err := CalculateEquityMetrics(points(100, 0, 100, 110))
		require.NoError(t, err)
		require.InDelta(t, 10, result.PeriodReturnPct, 0.0001)
		require.InDelta(t, 100, result.MaxDrawdownPct, 0.0001)
	})
}
