package charts

import (
	"strings"
	"time"

	"hermannm.dev/notecharts/notes"
	"hermannm.dev/wrap"
)

// FilterRecords applies a query source's path, tag and WHERE filters to the record
// collection. All three filter kinds are conjunctive: a record must pass every
// configured filter to be included. A WHERE clause that fails to parse aborts the whole
// query.
func FilterRecords(
	records []notes.Record,
	source QuerySource,
	reference time.Time,
) ([]notes.Record, error) {
	conditions := make([]Condition, len(source.Where))
	for i, clause := range source.Where {
		condition, err := ParseWhereAt(clause, reference)
		if err != nil {
			return nil, wrap.Errorf(err, "invalid 'where' filter '%s'", clause)
		}
		conditions[i] = condition
	}

	var filtered []notes.Record
	for _, record := range records {
		if !matchesPathFilter(record.Path, source.Paths) {
			continue
		}
		if !matchesTagFilter(record, source.Tags) {
			continue
		}
		if !matchesAllConditions(record, conditions) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered, nil
}

// matchesPathFilter reports whether a record path matches any configured path prefix.
// An empty prefix list matches everything, as does the prefix ".".
func matchesPathFilter(path string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, prefix := range prefixes {
		if prefix == "." || path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// matchesTagFilter reports whether a record's tags intersect the wanted tag set. An
// empty wanted set matches everything. The record's 'tags' property may be a list or a
// whitespace-joined string, with or without leading '#'.
func matchesTagFilter(record notes.Record, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}

	tags := recordTags(record)
	for _, tag := range wanted {
		if _, ok := tags[normalizeTag(tag)]; ok {
			return true
		}
	}
	return false
}

func recordTags(record notes.Record) map[string]struct{} {
	tags := make(map[string]struct{})

	switch value := record.Properties["tags"].(type) {
	case []any:
		for _, tag := range value {
			tags[normalizeTag(stringifyProperty(tag))] = struct{}{}
		}
	case []string:
		for _, tag := range value {
			tags[normalizeTag(tag)] = struct{}{}
		}
	case string:
		for _, tag := range strings.Fields(value) {
			tags[normalizeTag(tag)] = struct{}{}
		}
	}

	return tags
}

func normalizeTag(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "#")
}

func matchesAllConditions(record notes.Record, conditions []Condition) bool {
	for _, condition := range conditions {
		if !EvaluateCondition(record, condition) {
			return false
		}
	}
	return true
}
