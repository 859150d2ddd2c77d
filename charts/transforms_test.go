package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermannm.dev/notecharts/notes"
)

func dailyAmountSource() notes.FixedSource {
	return notes.FixedSource{
		{Path: "n1", Properties: map[string]any{"day": "2024-01-01", "amount": 4}},
		{Path: "n2", Properties: map[string]any{"day": "2024-01-02", "amount": 2}},
		{Path: "n3", Properties: map[string]any{"day": "2024-01-03", "amount": 6}},
		{Path: "n4", Properties: map[string]any{"day": "2024-01-04", "amount": 8}},
	}
}

func TestCumulativeSum(t *testing.T) {
	chartData := runQuery(t, dailyAmountSource(), ChartQuery{
		Type:      ChartTypeLine,
		Encoding:  Encoding{X: "day", Y: "amount"},
		Aggregate: &Aggregate{Y: AggregationSum, Cumulative: true},
	})

	require.Len(t, chartData.Rows, 4)
	assert.Equal(t, []float64{4, 6, 12, 20}, rowYs(chartData.Rows))

	// With all y >= 0, cumulative sums are monotonically non-decreasing.
	for i := 1; i < len(chartData.Rows); i++ {
		assert.GreaterOrEqual(t, chartData.Rows[i].Y, chartData.Rows[i-1].Y)
	}
}

func TestCumulativeSumPerSeries(t *testing.T) {
	source := notes.FixedSource{
		{Path: "n1", Properties: map[string]any{"day": "2024-01-01", "who": "amy", "amount": 1}},
		{Path: "n2", Properties: map[string]any{"day": "2024-01-01", "who": "zoe", "amount": 10}},
		{Path: "n3", Properties: map[string]any{"day": "2024-01-02", "who": "amy", "amount": 2}},
		{Path: "n4", Properties: map[string]any{"day": "2024-01-02", "who": "zoe", "amount": 20}},
	}

	chartData := runQuery(t, source, ChartQuery{
		Type:      ChartTypeArea,
		Encoding:  Encoding{X: "day", Y: "amount", Series: "who"},
		Aggregate: &Aggregate{Y: AggregationSum, Cumulative: true},
	})

	require.Len(t, chartData.Rows, 4)
	// Sorted order: (day1, amy), (day1, zoe), (day2, amy), (day2, zoe).
	assert.Equal(t, []float64{1, 10, 3, 30}, rowYs(chartData.Rows))
}

func TestRollingAverage(t *testing.T) {
	chartData := runQuery(t, dailyAmountSource(), ChartQuery{
		Type:      ChartTypeLine,
		Encoding:  Encoding{X: "day", Y: "amount"},
		Aggregate: &Aggregate{Y: AggregationSum, Rolling: 2},
	})

	require.Len(t, chartData.Rows, 4)
	// First row averages over a single value; later rows over the window.
	assert.Equal(t, []float64{4, 3, 4, 7}, rowYs(chartData.Rows))
}

func TestRollingAverageEarlyRowsUseFilledBuffer(t *testing.T) {
	chartData := runQuery(t, dailyAmountSource(), ChartQuery{
		Type:      ChartTypeLine,
		Encoding:  Encoding{X: "day", Y: "amount"},
		Aggregate: &Aggregate{Y: AggregationSum, Rolling: 3},
	})

	require.Len(t, chartData.Rows, 4)
	// Row k (k <= window) is the mean of the first k values, not zero-padded.
	assert.Equal(t, []float64{4, 3, 4, (2.0 + 6 + 8) / 3}, rowYs(chartData.Rows))
}

func TestTransformValidation(t *testing.T) {
	engine := NewEngine(dailyAmountSource(), EngineOptions{})

	t.Run("transforms are restricted to line and area charts", func(t *testing.T) {
		_, err := engine.RunChartQuery(ChartQuery{
			Type:      ChartTypeBar,
			Encoding:  Encoding{X: "day", Y: "amount"},
			Aggregate: &Aggregate{Y: AggregationSum, Cumulative: true},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line and area")
	})

	t.Run("cumulative and rolling cannot be combined", func(t *testing.T) {
		_, err := engine.RunChartQuery(ChartQuery{
			Type:      ChartTypeLine,
			Encoding:  Encoding{X: "day", Y: "amount"},
			Aggregate: &Aggregate{Y: AggregationSum, Cumulative: true, Rolling: 7},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "combined")
	})
}

func rowYs(rows []Row) []float64 {
	ys := make([]float64, 0, len(rows))
	for _, row := range rows {
		ys = append(ys, row.Y)
	}
	return ys
}
