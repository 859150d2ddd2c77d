package charts

import "hermannm.dev/enumnames"

// ValueType is the inferred type of a WHERE-clause value or an x-axis value. It is
// inferred once at parse time and decides the comparison semantics for all records.
type ValueType uint8

const (
	ValueTypeString ValueType = iota + 1
	ValueTypeNumber
	ValueTypeDate
)

var valueTypeNames = enumnames.NewMap(map[ValueType]string{
	ValueTypeString: "string",
	ValueTypeNumber: "number",
	ValueTypeDate:   "date",
})

func (valueType ValueType) IsValid() bool {
	return valueTypeNames.ContainsEnumValue(valueType)
}

func (valueType ValueType) String() string {
	return valueTypeNames.GetNameOrFallback(valueType, "INVALID_VALUE_TYPE")
}

func (valueType ValueType) MarshalJSON() ([]byte, error) {
	return valueTypeNames.MarshalToNameJSON(valueType)
}

func (valueType *ValueType) UnmarshalJSON(bytes []byte) error {
	return valueTypeNames.UnmarshalFromNameJSON(bytes, valueType)
}
