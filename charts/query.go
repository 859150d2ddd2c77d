// Package charts implements the chart query engine: declarative queries over a
// collection of property-bearing note records, with WHERE-clause filtering,
// aggregation, per-series transforms, and Gantt date-interval reconstruction.
package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hermannm.dev/notecharts/notes"
	"hermannm.dev/wrap"
)

// ChartQuery is the declarative specification of a chart: which records to include,
// how record properties map to visual channels, and how values are aggregated,
// transformed and sorted.
type ChartQuery struct {
	Type      ChartType   `json:"type"`
	Source    QuerySource `json:"source"`
	Encoding  Encoding    `json:"encoding"`
	Aggregate *Aggregate  `json:"aggregate,omitempty"`
	Sort      *Sort       `json:"sort,omitempty"`
}

// QuerySource selects the records a query runs against. All filters are conjunctive.
type QuerySource struct {
	Paths []string `json:"paths,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Where []string `json:"where,omitempty"`
}

// Encoding maps chart visual channels to record property field names.
type Encoding struct {
	X        string `json:"x,omitempty"`
	Y        string `json:"y,omitempty"`
	Series   string `json:"series,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Due      string `json:"due,omitempty"`
	Duration string `json:"duration,omitempty"`
	Group    string `json:"group,omitempty"`
	Label    string `json:"label,omitempty"`
}

type Aggregate struct {
	Y          AggregationKind `json:"y,omitempty"`
	Cumulative bool            `json:"cumulative,omitempty"`
	Rolling    RollingWindow   `json:"rolling,omitempty"`
}

type Sort struct {
	X SortOrder `json:"x,omitempty"`
}

// RollingWindow is a rolling-average window size. It unmarshals from either a JSON
// number or a string with leading digits ("7d" parses as 7).
type RollingWindow int

var leadingDigitsRegex = regexp.MustCompile(`^\d+`)

func (window RollingWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(window))
}

func (window *RollingWindow) UnmarshalJSON(bytes []byte) error {
	var asNumber float64
	if err := json.Unmarshal(bytes, &asNumber); err == nil {
		*window = RollingWindow(int(asNumber))
		return nil
	}

	var asString string
	if err := json.Unmarshal(bytes, &asString); err != nil {
		return errors.New("rolling window must be a number or a string")
	}
	digits := leadingDigitsRegex.FindString(strings.TrimSpace(asString))
	if digits == "" {
		return fmt.Errorf("invalid rolling window '%s'", asString)
	}

	parsed, err := strconv.Atoi(digits)
	if err != nil {
		return wrap.Errorf(err, "invalid rolling window '%s'", asString)
	}
	*window = RollingWindow(parsed)
	return nil
}

// XValue is a chart row's x-axis value: a string category, a number, or a date.
type XValue struct {
	Type ValueType
	Str  string
	Num  float64
	Date time.Time
}

func StringX(str string) XValue {
	return XValue{Type: ValueTypeString, Str: str}
}

func NumberX(num float64) XValue {
	return XValue{Type: ValueTypeNumber, Num: num}
}

func DateX(date time.Time) XValue {
	return XValue{Type: ValueTypeDate, Date: date}
}

// Key returns the grouping key for the value. Dates key on the bare YYYY-MM-DD string,
// which is what groups same-day records together regardless of time of day.
func (value XValue) Key() string {
	switch value.Type {
	case ValueTypeDate:
		return value.Date.Format("2006-01-02")
	case ValueTypeNumber:
		return strconv.FormatFloat(value.Num, 'f', -1, 64)
	default:
		return value.Str
	}
}

// Compare orders two x values: dates by timestamp, everything else by key string.
func (value XValue) Compare(other XValue) int {
	if value.Type == ValueTypeDate && other.Type == ValueTypeDate {
		return value.Date.Compare(other.Date)
	}
	return strings.Compare(value.Key(), other.Key())
}

func (value XValue) MarshalJSON() ([]byte, error) {
	switch value.Type {
	case ValueTypeDate:
		return json.Marshal(value.Date.Format("2006-01-02"))
	case ValueTypeNumber:
		return json.Marshal(value.Num)
	default:
		return json.Marshal(value.Str)
	}
}

// Row is one normalized result row, ready for rendering. Notes accumulates every
// record path that contributed to the row's bucket, never deduplicated, and serves as
// the drilldown set.
type Row struct {
	X      XValue         `json:"x"`
	Y      float64        `json:"y"`
	Series string         `json:"series,omitempty"`
	Notes  []string       `json:"notes"`
	Start  *time.Time     `json:"start,omitempty"`
	End    *time.Time     `json:"end,omitempty"`
	Due    *time.Time     `json:"due,omitempty"`
	Props  map[string]any `json:"props,omitempty"`
}

// ChartData is the engine's output: a normalized row-set handed to an opaque renderer.
type ChartData struct {
	Rows   []Row  `json:"rows"`
	XField string `json:"xField,omitempty"`
	YField string `json:"yField,omitempty"`
}

// Engine runs chart queries against an injected note source. A query call is
// synchronous and reads the source exactly once; it either completes or fails with an
// error, with no partial results.
type Engine struct {
	source            notes.Source
	ganttDefaultBlock time.Duration
}

type EngineOptions struct {
	// GanttDefaultBlock is the interval length assumed for Gantt records that only give
	// a single endpoint. Defaults to one hour.
	GanttDefaultBlock time.Duration
}

func NewEngine(source notes.Source, options EngineOptions) Engine {
	if options.GanttDefaultBlock <= 0 {
		options.GanttDefaultBlock = time.Hour
	}
	return Engine{source: source, ganttDefaultBlock: options.GanttDefaultBlock}
}

// RunChartQuery runs a chart query and returns its normalized row-set. Structural
// errors (malformed WHERE clauses, missing required encodings, invalid transform
// combinations) fail the whole query; records with missing or uncoercible values are
// silently dropped.
func (engine Engine) RunChartQuery(query ChartQuery) (ChartData, error) {
	return engine.RunChartQueryAt(query, time.Now())
}

// RunChartQueryAt is RunChartQuery with an explicit reference time, which anchors
// relative date values in WHERE clauses.
func (engine Engine) RunChartQueryAt(query ChartQuery, reference time.Time) (ChartData, error) {
	if err := validateChartQuery(query); err != nil {
		return ChartData{}, err
	}

	records := engine.source.GetAll()
	filtered, err := FilterRecords(records, query.Source, reference)
	if err != nil {
		return ChartData{}, wrap.Error(err, "failed to filter notes")
	}

	switch query.Type {
	case ChartTypeTable:
		return tableData(filtered), nil
	case ChartTypeGantt:
		return engine.ganttData(filtered, query.Encoding), nil
	default:
		return chartData(filtered, query)
	}
}

func validateChartQuery(query ChartQuery) error {
	if !query.Type.IsValid() {
		return errors.New("missing or unrecognized chart type")
	}

	if query.Type.RequiresXEncoding() {
		if query.Encoding.X == "" {
			return fmt.Errorf("chart type '%v' requires an 'x' encoding", query.Type)
		}
		if query.Encoding.Y == "" && !isCountQuery(query) {
			return fmt.Errorf(
				"chart type '%v' requires a 'y' encoding unless aggregating by count",
				query.Type,
			)
		}
	}

	if query.Aggregate != nil {
		cumulative := query.Aggregate.Cumulative
		rolling := query.Aggregate.Rolling > 0
		if cumulative && rolling {
			return errors.New("'cumulative' and 'rolling' transforms cannot be combined")
		}
		if (cumulative || rolling) && !query.Type.SupportsTransforms() {
			return fmt.Errorf(
				"'cumulative'/'rolling' transforms are only supported for line and area charts, got '%v'",
				query.Type,
			)
		}
	}

	return nil
}

func isCountQuery(query ChartQuery) bool {
	return query.Aggregate != nil && query.Aggregate.Y == AggregationCount
}

// tableData maps filtered records 1:1 to rows, with the full property bag attached.
func tableData(records []notes.Record) ChartData {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, Row{
			X:     StringX(record.Path),
			Notes: []string{record.Path},
			Props: record.Properties,
		})
	}
	return ChartData{Rows: rows}
}
