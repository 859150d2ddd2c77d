package charts

import "hermannm.dev/enumnames"

type AggregationKind uint8

const (
	AggregationNone AggregationKind = iota + 1
	AggregationSum
	AggregationAverage
	AggregationMin
	AggregationMax
	AggregationCount
)

var aggregationKindNames = enumnames.NewMap(map[AggregationKind]string{
	AggregationNone:    "none",
	AggregationSum:     "sum",
	AggregationAverage: "avg",
	AggregationMin:     "min",
	AggregationMax:     "max",
	AggregationCount:   "count",
})

// Aggregates reports whether this kind groups rows into buckets. The zero value and
// AggregationNone both pass raw rows through 1:1.
func (kind AggregationKind) Aggregates() bool {
	return kind.IsValid() && kind != AggregationNone
}

func (kind AggregationKind) IsValid() bool {
	return aggregationKindNames.ContainsEnumValue(kind)
}

func (kind AggregationKind) String() string {
	return aggregationKindNames.GetNameOrFallback(kind, "INVALID_AGGREGATION")
}

func (kind AggregationKind) MarshalJSON() ([]byte, error) {
	return aggregationKindNames.MarshalToNameJSON(kind)
}

func (kind *AggregationKind) UnmarshalJSON(bytes []byte) error {
	return aggregationKindNames.UnmarshalFromNameJSON(bytes, kind)
}
