package charts

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePrefixRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dateTimeRegex      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[ T](\d{2}):(\d{2})(?::(\d{2}))?)?`)
	relativeDateRegex  = regexp.MustCompile(`^([+-])(\d+)([dwm]?)$`)
)

// Layouts tried for date strings that don't match the ISO shape.
var fallbackDateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
}

// LooksLikeISODate reports whether a property value is a string starting with an ISO
// date shape (YYYY-MM-DD). Purely syntactic: month/day ranges are not validated, so
// "2024-99-99" also passes. Callers that need a real date follow up with ToDate.
func LooksLikeISODate(value any) bool {
	str, ok := value.(string)
	return ok && isoDatePrefixRegex.MatchString(str)
}

// ToDate coerces a property value to a date. Dates pass through unchanged. Strings of
// the form YYYY-MM-DD, optionally followed by HH:MM(:SS) separated by space or 'T', are
// interpreted as local wall-clock time; any trailing timezone or offset is ignored.
// Other strings are tried against a few generic layouts.
func ToDate(value any) (time.Time, bool) {
	switch value := value.(type) {
	case time.Time:
		return value, true
	case string:
		if match := dateTimeRegex.FindStringSubmatch(value); match != nil {
			year := atoiOrZero(match[1])
			month := atoiOrZero(match[2])
			day := atoiOrZero(match[3])
			hour := atoiOrZero(match[4])
			minute := atoiOrZero(match[5])
			second := atoiOrZero(match[6])
			return time.Date(
				year, time.Month(month), day, hour, minute, second, 0, time.Local,
			), true
		}

		for _, layout := range fallbackDateLayouts {
			if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
				return parsed, true
			}
		}
	}

	return time.Time{}, false
}

func atoiOrZero(str string) int {
	parsed, err := strconv.Atoi(str)
	if err != nil {
		return 0
	}
	return parsed
}

// Field names that conventionally hold dates, used to bias ambiguous WHERE values
// toward date interpretation.
var dateFieldNames = map[string]struct{}{
	"date":         {},
	"scheduled":    {},
	"due":          {},
	"start":        {},
	"end":          {},
	"created":      {},
	"modified":     {},
	"datecreated":  {},
	"datemodified": {},
}

// IsDateFieldName reports whether a field name is date-like by naming convention: a
// member of the known set, or a name ending in "date", "at" or "on". This is a
// heuristic, not a schema declaration.
func IsDateFieldName(field string) bool {
	lowered := strings.ToLower(field)
	if _, ok := dateFieldNames[lowered]; ok {
		return true
	}
	return strings.HasSuffix(lowered, "date") ||
		strings.HasSuffix(lowered, "at") ||
		strings.HasSuffix(lowered, "on")
}

// ResolveRelativeDate resolves a relative date token ("today", "yesterday", "-7",
// "-7d", "+2w", "-1m") against the given reference date. The result is always
// truncated to local start of day. Weeks are 7 days; months step by calendar month,
// with month-length variance handled by date rollover.
func ResolveRelativeDate(token string, reference time.Time) (time.Time, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	anchor := StartOfDay(reference)

	switch token {
	case "today":
		return anchor, true
	case "yesterday":
		return anchor.AddDate(0, 0, -1), true
	}

	match := relativeDateRegex.FindStringSubmatch(token)
	if match == nil {
		return time.Time{}, false
	}
	amount, err := strconv.Atoi(match[2])
	if err != nil {
		return time.Time{}, false
	}
	if match[1] == "-" {
		amount = -amount
	}

	switch match[3] {
	case "", "d":
		return anchor.AddDate(0, 0, amount), true
	case "w":
		return anchor.AddDate(0, 0, 7*amount), true
	case "m":
		return anchor.AddDate(0, amount, 0), true
	default:
		return time.Time{}, false
	}
}

// StartOfDay truncates a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
