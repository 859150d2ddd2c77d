package charts

import (
	"strings"
	"time"

	"hermannm.dev/notecharts/notes"
)

// EvaluateCondition reports whether a record satisfies a parsed WHERE condition.
// Records missing the condition's field never match.
func EvaluateCondition(record notes.Record, condition Condition) bool {
	value, ok := record.Properties[condition.Field]
	if !ok || value == nil {
		return false
	}

	switch condition.ValueType {
	case ValueTypeDate:
		return evaluateDateCondition(value, condition)
	case ValueTypeNumber:
		return evaluateNumberCondition(value, condition)
	default:
		return evaluateStringCondition(value, condition)
	}
}

// Date conditions compare by day-truncated timestamp, so two times on the same
// calendar day are equal under '=='.
func evaluateDateCondition(value any, condition Condition) bool {
	left, ok := propertyDayTimestamp(value)
	if !ok {
		return false
	}
	right, ok := conditionDayTimestamp(condition.Value)
	if !ok {
		return false
	}

	switch condition.Operator {
	case OperatorEquals:
		return left == right
	case OperatorNotEquals:
		return left != right
	case OperatorGreaterThan:
		return left > right
	case OperatorGreaterOrEqual:
		return left >= right
	case OperatorLessThan:
		return left < right
	case OperatorLessOrEqual:
		return left <= right
	case OperatorBetween:
		if condition.Value2 == nil {
			return false
		}
		upper, ok := conditionDayTimestamp(*condition.Value2)
		if !ok {
			return false
		}
		return left >= right && left <= upper
	default:
		return false
	}
}

// propertyDayTimestamp coerces a record's property value to a start-of-day timestamp.
// Only dates and ISO-date-like strings qualify; anything else fails the condition.
func propertyDayTimestamp(value any) (int64, bool) {
	switch value := value.(type) {
	case time.Time:
		return StartOfDay(value).Unix(), true
	default:
		if !LooksLikeISODate(value) {
			return 0, false
		}
		date, ok := ToDate(value)
		if !ok {
			return 0, false
		}
		return StartOfDay(date).Unix(), true
	}
}

func conditionDayTimestamp(value ConditionValue) (int64, bool) {
	if value.Type != ValueTypeDate {
		return 0, false
	}
	return StartOfDay(value.Date).Unix(), true
}

func evaluateNumberCondition(value any, condition Condition) bool {
	left, ok := toNumber(value)
	if !ok {
		return false
	}
	right := condition.Value.Num

	switch condition.Operator {
	case OperatorEquals:
		return left == right
	case OperatorNotEquals:
		return left != right
	case OperatorGreaterThan:
		return left > right
	case OperatorGreaterOrEqual:
		return left >= right
	case OperatorLessThan:
		return left < right
	case OperatorLessOrEqual:
		return left <= right
	case OperatorBetween:
		if condition.Value2 == nil || condition.Value2.Type != ValueTypeNumber {
			return false
		}
		return left >= right && left <= condition.Value2.Num
	default:
		return false
	}
}

func evaluateStringCondition(value any, condition Condition) bool {
	left := stringifyProperty(value)
	right := condition.Value.Str

	switch condition.Operator {
	case OperatorEquals:
		return left == right
	case OperatorNotEquals:
		return left != right
	case OperatorGreaterThan:
		return strings.Compare(left, right) > 0
	case OperatorGreaterOrEqual:
		return strings.Compare(left, right) >= 0
	case OperatorLessThan:
		return strings.Compare(left, right) < 0
	case OperatorLessOrEqual:
		return strings.Compare(left, right) <= 0
	case OperatorBetween:
		// 'between' is deliberately unsupported for strings.
		return false
	default:
		return false
	}
}
