package charts

import (
	"slices"
	"strings"
	"time"

	"hermannm.dev/notecharts/notes"
	"hermannm.dev/wrap"
)

// chartData runs the aggregation pipeline for category/time charts: extract one (or,
// for exploding chart types, several) raw rows per record, group by (x, series) when an
// aggregation is requested, sort, then apply the optional per-series transform. The
// sorted order is the final output order; transforms never re-sort.
func chartData(records []notes.Record, query ChartQuery) (ChartData, error) {
	rows := extractRows(records, query)

	if query.Aggregate != nil && query.Aggregate.Y.Aggregates() {
		rows = groupRows(rows, query.Aggregate.Y)
	}

	sortRows(rows, querySortOrder(query))

	if query.Aggregate != nil {
		if query.Aggregate.Cumulative {
			applyCumulative(rows)
		} else if query.Aggregate.Rolling > 0 {
			if err := applyRollingAverage(rows, int(query.Aggregate.Rolling)); err != nil {
				return ChartData{}, wrap.Error(err, "failed to apply rolling average")
			}
		}
	}

	return ChartData{Rows: rows, XField: query.Encoding.X, YField: yFieldName(query)}, nil
}

// extractRows reads the x, y and series values for each record. Records missing their
// x value are dropped, not zero-filled; likewise records whose y value fails numeric
// coercion. The one exception is exploding chart types, where a missing category
// resolves to the "(missing)" sentinel bucket.
func extractRows(records []notes.Record, query ChartQuery) []Row {
	countQuery := isCountQuery(query)
	exploding := query.Type.ExplodesMultiValues()

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rawX, hasX := record.Properties[query.Encoding.X]
		if rawX == nil {
			hasX = false
		}
		if !hasX && !exploding {
			continue
		}

		y, ok := extractY(record, query.Encoding.Y, countQuery)
		if !ok {
			continue
		}

		series := extractSeries(record, query.Encoding.Series)

		for _, x := range extractXValues(rawX, exploding) {
			rows = append(rows, Row{X: x, Y: y, Series: series, Notes: []string{record.Path}})
		}
	}
	return rows
}

func extractY(record notes.Record, yField string, countQuery bool) (float64, bool) {
	if countQuery {
		return 1, true
	}

	value, ok := record.Properties[yField]
	if !ok || value == nil {
		return 0, false
	}
	return toNumber(value)
}

// extractSeries reads a record's series value; empty or whitespace-only values mean no
// series.
func extractSeries(record notes.Record, seriesField string) string {
	if seriesField == "" {
		return ""
	}
	value, ok := record.Properties[seriesField]
	if !ok || value == nil {
		return ""
	}
	return strings.TrimSpace(stringifyProperty(value))
}

// coerceXValue types a raw x value. ISO-date-like strings are normalized to the bare
// YYYY-MM-DD date, discarding any time component, so that same-day records group
// together.
func coerceXValue(raw any) XValue {
	if num, ok := rawNumber(raw); ok {
		return NumberX(num)
	}
	if date, ok := rawDate(raw); ok {
		return DateX(StartOfDay(date))
	}
	return StringX(stringifyProperty(raw))
}

func rawNumber(raw any) (float64, bool) {
	switch raw := raw.(type) {
	case int:
		return float64(raw), true
	case int64:
		return float64(raw), true
	case float64:
		return raw, true
	case float32:
		return float64(raw), true
	default:
		return 0, false
	}
}

func rawDate(raw any) (date time.Time, ok bool) {
	switch raw := raw.(type) {
	case time.Time:
		return raw, true
	case string:
		if LooksLikeISODate(raw) {
			return ToDate(raw)
		}
	}
	return time.Time{}, false
}

func querySortOrder(query ChartQuery) SortOrder {
	if query.Sort != nil && query.Sort.X.IsValid() {
		return query.Sort.X
	}
	return SortOrderAscending
}

func yFieldName(query ChartQuery) string {
	if query.Encoding.Y == "" && isCountQuery(query) {
		return "count"
	}
	return query.Encoding.Y
}

// aggregationBucket accumulates one (x, series) group. Buckets live for a single query
// call and are discarded once the grouped rows are built.
type aggregationBucket struct {
	x      XValue
	series string
	sum    float64
	count  int
	min    float64
	max    float64
	notes  []string
}

// groupRows groups raw rows by their (series, x) key and applies the aggregation kind.
// The representative x value of a bucket is the first one seen; contributing note paths
// are concatenated without deduplication.
func groupRows(rows []Row, kind AggregationKind) []Row {
	buckets := make(map[string]*aggregationBucket)
	var bucketOrder []string

	for _, row := range rows {
		key := row.Series + "||" + row.X.Key()

		bucket, ok := buckets[key]
		if !ok {
			bucket = &aggregationBucket{x: row.X, series: row.Series}
			buckets[key] = bucket
			bucketOrder = append(bucketOrder, key)
		}

		if bucket.count == 0 || row.Y < bucket.min {
			bucket.min = row.Y
		}
		if bucket.count == 0 || row.Y > bucket.max {
			bucket.max = row.Y
		}
		bucket.sum += row.Y
		bucket.count++
		bucket.notes = append(bucket.notes, row.Notes...)
	}

	grouped := make([]Row, 0, len(bucketOrder))
	for _, key := range bucketOrder {
		bucket := buckets[key]

		var y float64
		switch kind {
		case AggregationSum:
			y = bucket.sum
		case AggregationAverage:
			y = bucket.sum / float64(bucket.count)
		case AggregationMin:
			y = bucket.min
		case AggregationMax:
			y = bucket.max
		case AggregationCount:
			y = float64(bucket.count)
		}

		grouped = append(grouped, Row{
			X:      bucket.x,
			Y:      y,
			Series: bucket.series,
			Notes:  bucket.notes,
		})
	}
	return grouped
}

// sortRows sorts by x in the requested direction, with series ascending as tie-break
// (the empty series sorts first). Dates compare by timestamp, everything else as
// strings.
func sortRows(rows []Row, order SortOrder) {
	descending := order == SortOrderDescending

	slices.SortStableFunc(rows, func(row1 Row, row2 Row) int {
		if comparison := row1.X.Compare(row2.X); comparison != 0 {
			if descending {
				return -comparison
			}
			return comparison
		}
		return strings.Compare(row1.Series, row2.Series)
	})
}
