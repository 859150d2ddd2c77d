package charts

type ComparisonOperator uint8

const (
	OperatorEquals ComparisonOperator = iota + 1
	OperatorNotEquals
	OperatorGreaterThan
	OperatorGreaterOrEqual
	OperatorLessThan
	OperatorLessOrEqual
	OperatorBetween
)

var comparisonOperatorSymbols = map[ComparisonOperator]string{
	OperatorEquals:         "==",
	OperatorNotEquals:      "!=",
	OperatorGreaterThan:    ">",
	OperatorGreaterOrEqual: ">=",
	OperatorLessThan:       "<",
	OperatorLessOrEqual:    "<=",
	OperatorBetween:        "between",
}

func (operator ComparisonOperator) IsValid() bool {
	_, ok := comparisonOperatorSymbols[operator]
	return ok
}

func (operator ComparisonOperator) String() string {
	if symbol, ok := comparisonOperatorSymbols[operator]; ok {
		return symbol
	} else {
		return "[INVALID OPERATOR]"
	}
}

func comparisonOperatorFromSymbol(symbol string) (ComparisonOperator, bool) {
	for operator, candidate := range comparisonOperatorSymbols {
		if candidate == symbol {
			return operator, true
		}
	}
	return 0, false
}
