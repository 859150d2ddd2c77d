package charts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ConditionValue is a WHERE-clause value with its inferred type. Only the field
// matching Type is meaningful.
type ConditionValue struct {
	Type ValueType
	Str  string
	Num  float64
	Date time.Time
}

func stringConditionValue(str string) ConditionValue {
	return ConditionValue{Type: ValueTypeString, Str: str}
}

func numberConditionValue(num float64) ConditionValue {
	return ConditionValue{Type: ValueTypeNumber, Num: num}
}

func dateConditionValue(date time.Time) ConditionValue {
	return ConditionValue{Type: ValueTypeDate, Date: date}
}

// parseValueToken infers the type of a raw WHERE-clause value token. forceDate is set
// when the condition's field name is date-like, and takes priority over generic numeric
// parsing; an explicitly relative-shaped token ("-7d", "today") is honored as a date
// even on non-date fields.
func parseValueToken(token string, forceDate bool, reference time.Time) ConditionValue {
	token = strings.TrimSpace(token)

	if len(token) >= 2 {
		doubleQuoted := strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`)
		singleQuoted := strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'")
		if doubleQuoted || singleQuoted {
			return stringConditionValue(token[1 : len(token)-1])
		}
	}

	if forceDate {
		if token == "0" || strings.EqualFold(token, "today") {
			return dateConditionValue(StartOfDay(reference))
		}
		if date, ok := ResolveRelativeDate(token, reference); ok {
			return dateConditionValue(date)
		}
	} else if looksRelative(token) {
		if date, ok := ResolveRelativeDate(token, reference); ok {
			return dateConditionValue(date)
		}
	}

	if LooksLikeISODate(token) {
		if date, ok := ToDate(token); ok {
			return dateConditionValue(date)
		}
	}

	if num, err := strconv.ParseFloat(token, 64); err == nil {
		return numberConditionValue(num)
	}

	return stringConditionValue(token)
}

func looksRelative(token string) bool {
	return strings.HasPrefix(token, "+") || strings.HasPrefix(token, "-") ||
		strings.EqualFold(token, "today") || strings.EqualFold(token, "yesterday")
}

// toNumber coerces a property value to a float64, like the numeric coercion applied to
// y values. Strings must parse fully as numbers.
func toNumber(value any) (float64, bool) {
	switch value := value.(type) {
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case string:
		num, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return num, err == nil
	default:
		return 0, false
	}
}

// stringifyProperty renders a property value the way it is compared and grouped as a
// string category.
func stringifyProperty(value any) string {
	switch value := value.(type) {
	case string:
		return value
	case time.Time:
		return value.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", value)
	}
}
