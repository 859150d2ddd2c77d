package charts

import "hermannm.dev/enumnames"

type ChartType uint8

const (
	ChartTypeBar ChartType = iota + 1
	ChartTypeLine
	ChartTypeArea
	ChartTypePie
	ChartTypeScatter
	ChartTypeTable
	ChartTypeGantt
)

var chartTypeNames = enumnames.NewMap(map[ChartType]string{
	ChartTypeBar:     "bar",
	ChartTypeLine:    "line",
	ChartTypeArea:    "area",
	ChartTypePie:     "pie",
	ChartTypeScatter: "scatter",
	ChartTypeTable:   "table",
	ChartTypeGantt:   "gantt",
})

// RequiresXEncoding reports whether queries of this chart type must map a property to
// the x channel. Tables and Gantt charts derive their layout from other channels.
func (chartType ChartType) RequiresXEncoding() bool {
	return chartType != ChartTypeTable && chartType != ChartTypeGantt
}

// SupportsTransforms reports whether cumulative/rolling transforms may be applied.
func (chartType ChartType) SupportsTransforms() bool {
	return chartType == ChartTypeLine || chartType == ChartTypeArea
}

// ExplodesMultiValues reports whether multi-valued category properties fan out into one
// row per value for this chart type.
func (chartType ChartType) ExplodesMultiValues() bool {
	return chartType == ChartTypePie
}

func (chartType ChartType) IsValid() bool {
	return chartTypeNames.ContainsEnumValue(chartType)
}

func (chartType ChartType) String() string {
	return chartTypeNames.GetNameOrFallback(chartType, "INVALID_CHART_TYPE")
}

func (chartType ChartType) MarshalJSON() ([]byte, error) {
	return chartTypeNames.MarshalToNameJSON(chartType)
}

func (chartType *ChartType) UnmarshalJSON(bytes []byte) error {
	return chartTypeNames.UnmarshalFromNameJSON(bytes, chartType)
}
