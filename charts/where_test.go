package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var whereTestReference = time.Date(2024, time.January, 15, 13, 0, 0, 0, time.Local)

func TestParseWhereComparisons(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected Condition
	}{
		{
			name: "numeric greater-than",
			expr: "priority > 3",
			expected: Condition{
				Field:     "priority",
				Operator:  OperatorGreaterThan,
				Value:     numberConditionValue(3),
				ValueType: ValueTypeNumber,
			},
		},
		{
			name: "single-quoted string",
			expr: "status == 'done'",
			expected: Condition{
				Field:     "status",
				Operator:  OperatorEquals,
				Value:     stringConditionValue("done"),
				ValueType: ValueTypeString,
			},
		},
		{
			name: "double-quoted string",
			expr: `status != "open"`,
			expected: Condition{
				Field:     "status",
				Operator:  OperatorNotEquals,
				Value:     stringConditionValue("open"),
				ValueType: ValueTypeString,
			},
		},
		{
			name: "unquoted non-numeric value stays a string",
			expr: "status == done",
			expected: Condition{
				Field:     "status",
				Operator:  OperatorEquals,
				Value:     stringConditionValue("done"),
				ValueType: ValueTypeString,
			},
		},
		{
			name: "date field forces date interpretation",
			expr: "due <= today",
			expected: Condition{
				Field:    "due",
				Operator: OperatorLessOrEqual,
				Value: dateConditionValue(
					time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local),
				),
				ValueType: ValueTypeDate,
			},
		},
		{
			name: "relative date on date field",
			expr: "created >= -7d",
			expected: Condition{
				Field:    "created",
				Operator: OperatorGreaterOrEqual,
				Value: dateConditionValue(
					time.Date(2024, time.January, 8, 0, 0, 0, 0, time.Local),
				),
				ValueType: ValueTypeDate,
			},
		},
		{
			name: "relative-shaped value honored on non-date field",
			expr: "reviewed >= -7d",
			expected: Condition{
				Field:    "reviewed",
				Operator: OperatorGreaterOrEqual,
				Value: dateConditionValue(
					time.Date(2024, time.January, 8, 0, 0, 0, 0, time.Local),
				),
				ValueType: ValueTypeDate,
			},
		},
		{
			name: "ISO date value on any field",
			expr: "published == 2024-01-10",
			expected: Condition{
				Field:    "published",
				Operator: OperatorEquals,
				Value: dateConditionValue(
					time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local),
				),
				ValueType: ValueTypeDate,
			},
		},
		{
			name: "longest operator wins the split",
			expr: "cost >= 10",
			expected: Condition{
				Field:     "cost",
				Operator:  OperatorGreaterOrEqual,
				Value:     numberConditionValue(10),
				ValueType: ValueTypeNumber,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			condition, err := ParseWhereAt(test.expr, whereTestReference)
			require.NoError(t, err)
			assert.Equal(t, test.expected, condition)
		})
	}
}

func TestParseWhereBetween(t *testing.T) {
	t.Run("numeric between", func(t *testing.T) {
		condition, err := ParseWhereAt("cost between 10 and 20", whereTestReference)
		require.NoError(t, err)

		assert.Equal(t, "cost", condition.Field)
		assert.Equal(t, OperatorBetween, condition.Operator)
		assert.Equal(t, ValueTypeNumber, condition.ValueType)
		assert.Equal(t, numberConditionValue(10), condition.Value)
		require.NotNil(t, condition.Value2)
		assert.Equal(t, numberConditionValue(20), *condition.Value2)
	})

	t.Run("date between with relative values", func(t *testing.T) {
		condition, err := ParseWhereAt("due between -7d and today", whereTestReference)
		require.NoError(t, err)

		assert.Equal(t, OperatorBetween, condition.Operator)
		assert.Equal(t, ValueTypeDate, condition.ValueType)
		assert.True(
			t,
			time.Date(2024, time.January, 8, 0, 0, 0, 0, time.Local).Equal(condition.Value.Date),
		)
		require.NotNil(t, condition.Value2)
		assert.True(
			t,
			time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local).Equal(condition.Value2.Date),
		)
	})

	t.Run("between keywords are case-insensitive", func(t *testing.T) {
		condition, err := ParseWhereAt("cost BETWEEN 1 AND 2", whereTestReference)
		require.NoError(t, err)
		assert.Equal(t, OperatorBetween, condition.Operator)
	})

	t.Run("valueType is date when either bound is a date", func(t *testing.T) {
		condition, err := ParseWhereAt(
			"reviewed between 5 and 2024-01-20", whereTestReference,
		)
		require.NoError(t, err)
		assert.Equal(t, ValueTypeDate, condition.ValueType)
	})
}

func TestParseWhereErrors(t *testing.T) {
	invalidClauses := []string{
		"just some text",
		"a > b > c",
		"priority == 5 == 6",
		"",
	}

	for _, clause := range invalidClauses {
		t.Run(clause, func(t *testing.T) {
			_, err := ParseWhereAt(clause, whereTestReference)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "where")
		})
	}
}
