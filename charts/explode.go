package charts

import "strings"

// missingCategory is the sentinel bucket for records without a category value on
// exploding chart types.
const missingCategory = "(missing)"

// extractXValues produces the x values a record contributes to. For most chart types
// this is the single coerced x value. Exploding chart types (pie) fan multi-valued
// categories out into one value per element, so a record with 3 tags contributes fully
// to 3 slices rather than a third to each.
func extractXValues(raw any, exploding bool) []XValue {
	if !exploding {
		return []XValue{coerceXValue(raw)}
	}

	values := explodeCategoryValues(raw)
	if len(values) == 0 {
		return []XValue{StringX(missingCategory)}
	}
	return values
}

// explodeCategoryValues splits a multi-valued category property into its elements:
// lists element-wise, and whitespace-delimited strings on whitespace (the tag list
// shape). Single values come back as a one-element slice.
func explodeCategoryValues(raw any) []XValue {
	switch raw := raw.(type) {
	case nil:
		return nil
	case []any:
		values := make([]XValue, 0, len(raw))
		for _, element := range raw {
			values = append(values, categoryValue(stringifyProperty(element)))
		}
		return values
	case []string:
		values := make([]XValue, 0, len(raw))
		for _, element := range raw {
			values = append(values, categoryValue(element))
		}
		return values
	case string:
		if LooksLikeISODate(raw) {
			return []XValue{coerceXValue(raw)}
		}
		fields := strings.Fields(raw)
		values := make([]XValue, 0, len(fields))
		for _, field := range fields {
			values = append(values, categoryValue(field))
		}
		return values
	default:
		return []XValue{coerceXValue(raw)}
	}
}

func categoryValue(str string) XValue {
	str = strings.TrimSpace(str)
	if str == "" {
		return StringX(missingCategory)
	}
	return StringX(str)
}
