package charts

import "fmt"

// applyCumulative replaces each row's y with the running per-series total, in the
// current (sorted) row order. With all y >= 0 this makes each series monotonically
// non-decreasing.
func applyCumulative(rows []Row) {
	totals := make(map[string]float64)
	for i, row := range rows {
		totals[row.Series] += row.Y
		rows[i].Y = totals[row.Series]
	}
}

// applyRollingAverage replaces each row's y with the mean of the last `window` y values
// of its series, in the current (sorted) row order. Early rows average over however
// many values have been seen so far rather than being padded with zeroes.
func applyRollingAverage(rows []Row, window int) error {
	if window <= 0 {
		return fmt.Errorf("rolling window must be positive, got %d", window)
	}

	buffers := make(map[string][]float64)
	for i, row := range rows {
		buffer := append(buffers[row.Series], row.Y)
		if len(buffer) > window {
			buffer = buffer[1:]
		}
		buffers[row.Series] = buffer

		var sum float64
		for _, y := range buffer {
			sum += y
		}
		rows[i].Y = sum / float64(len(buffer))
	}
	return nil
}
