package charts

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Condition is a parsed WHERE clause: a field, a comparison operator and the typed
// value(s) to compare against. Value2 is set iff Operator is 'between'. ValueType is
// inferred once at parse time and fixes the comparison semantics for every record the
// condition is evaluated against.
type Condition struct {
	Field     string
	Operator  ComparisonOperator
	Value     ConditionValue
	Value2    *ConditionValue
	ValueType ValueType
}

var (
	betweenRegex    = regexp.MustCompile(`(?i)^\s*([A-Za-z0-9_.-]+)\s+between\s+(.+?)\s+and\s+(.+?)\s*$`)
	comparisonRegex = regexp.MustCompile(`==|!=|>=|<=|>|<`)
)

// ParseWhere parses a WHERE clause string into a Condition, resolving relative date
// values against the current time. Two grammars are supported:
//
//	<field> between <value1> and <value2>
//	<field> <operator> <value>    with operator one of == != >= <= > <
func ParseWhere(expr string) (Condition, error) {
	return ParseWhereAt(expr, time.Now())
}

// ParseWhereAt is ParseWhere with an explicit reference time for relative date values.
func ParseWhereAt(expr string, reference time.Time) (Condition, error) {
	if match := betweenRegex.FindStringSubmatch(expr); match != nil {
		return parseBetweenCondition(match[1], match[2], match[3], reference), nil
	}

	fields := comparisonRegex.Split(expr, -1)
	operators := comparisonRegex.FindAllString(expr, -1)
	if len(fields) != 2 || len(operators) != 1 {
		return Condition{}, fmt.Errorf(
			"invalid 'where' clause '%s': expected '<field> <operator> <value>'", expr,
		)
	}

	operator, ok := comparisonOperatorFromSymbol(operators[0])
	if !ok {
		return Condition{}, fmt.Errorf(
			"invalid 'where' clause '%s': unrecognized operator '%s'", expr, operators[0],
		)
	}

	field := strings.TrimSpace(fields[0])
	value := parseValueToken(fields[1], IsDateFieldName(field), reference)

	return Condition{
		Field:     field,
		Operator:  operator,
		Value:     value,
		ValueType: value.Type,
	}, nil
}

func parseBetweenCondition(field string, token1 string, token2 string, reference time.Time) Condition {
	forceDate := IsDateFieldName(field)
	value1 := parseValueToken(token1, forceDate, reference)
	value2 := parseValueToken(token2, forceDate, reference)

	valueType := value1.Type
	if value1.Type == ValueTypeDate || value2.Type == ValueTypeDate {
		valueType = ValueTypeDate
	}

	return Condition{
		Field:     field,
		Operator:  OperatorBetween,
		Value:     value1,
		Value2:    &value2,
		ValueType: valueType,
	}
}
