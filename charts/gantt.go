package charts

import (
	"strings"
	"time"

	"hermannm.dev/notecharts/notes"
)

// ganttData derives a (start, end) interval for each record from whichever subset of
// {start, end, due, duration} properties it has, using a priority-ordered fallback
// policy. Records for which no interval can be derived are silently skipped: Gantt
// output is display-only, so data-quality gaps never fail the query.
func (engine Engine) ganttData(records []notes.Record, encoding Encoding) ChartData {
	fields := ganttFields(encoding)

	var rows []Row
	for _, record := range records {
		interval, ok := engine.reconstructInterval(record, fields)
		if !ok {
			continue
		}

		row := Row{
			X:      StringX(ganttLabel(record, fields.label)),
			Series: ganttSeries(record, fields),
			Notes:  []string{record.Path},
			Start:  &interval.start,
			End:    &interval.end,
		}
		if interval.due != nil {
			row.Due = interval.due
		}
		rows = append(rows, row)
	}

	return ChartData{Rows: rows}
}

type ganttFieldNames struct {
	start    string
	end      string
	due      string
	duration string
	label    string
	series   string
	group    string
}

// ganttFields resolves the encoding's field names, defaulting each channel to the
// property of the same name.
func ganttFields(encoding Encoding) ganttFieldNames {
	fields := ganttFieldNames{
		start:    encoding.Start,
		end:      encoding.End,
		due:      encoding.Due,
		duration: encoding.Duration,
		label:    encoding.Label,
		series:   encoding.Series,
		group:    encoding.Group,
	}
	if fields.start == "" {
		fields.start = "start"
	}
	if fields.end == "" {
		fields.end = "end"
	}
	if fields.due == "" {
		fields.due = "due"
	}
	if fields.duration == "" {
		fields.duration = "duration"
	}
	return fields
}

type ganttInterval struct {
	start time.Time
	end   time.Time
	due   *time.Time
}

// reconstructInterval applies the fallback ladder, in priority order:
//  1. start + end
//  2. start + duration
//  3. end + duration
//  4. due + duration (end = due)
//  5. only start (default block forward)
//  6. only end (default block backward)
//  7. only due (default block ending at due)
//
// Durations are minutes and must parse to a positive number. If derivation ends up
// with start after end, the two are swapped.
func (engine Engine) reconstructInterval(
	record notes.Record,
	fields ganttFieldNames,
) (ganttInterval, bool) {
	start, hasStart := recordDate(record, fields.start)
	end, hasEnd := recordDate(record, fields.end)
	due, hasDue := recordDate(record, fields.due)
	duration, hasDuration := recordDuration(record, fields.duration)

	switch {
	case hasStart && hasEnd:
	case hasStart && hasDuration:
		end = start.Add(duration)
	case hasEnd && hasDuration:
		start = end.Add(-duration)
	case hasDue && hasDuration:
		end = due
		start = due.Add(-duration)
	case hasStart:
		end = start.Add(engine.ganttDefaultBlock)
	case hasEnd:
		start = end.Add(-engine.ganttDefaultBlock)
	case hasDue:
		end = due
		start = due.Add(-engine.ganttDefaultBlock)
	default:
		return ganttInterval{}, false
	}

	if start.After(end) {
		start, end = end, start
	}

	interval := ganttInterval{start: start, end: end}
	if hasDue {
		interval.due = &due
	}
	return interval, true
}

func recordDate(record notes.Record, field string) (time.Time, bool) {
	value, ok := record.Properties[field]
	if !ok || value == nil {
		return time.Time{}, false
	}
	return ToDate(value)
}

func recordDuration(record notes.Record, field string) (time.Duration, bool) {
	value, ok := record.Properties[field]
	if !ok || value == nil {
		return 0, false
	}
	minutes, ok := toNumber(value)
	if !ok || minutes <= 0 {
		return 0, false
	}
	return time.Duration(minutes * float64(time.Minute)), true
}

func ganttLabel(record notes.Record, labelField string) string {
	if labelField != "" {
		if value, ok := record.Properties[labelField]; ok && value != nil {
			return stringifyProperty(value)
		}
	}
	return record.Path
}

// ganttSeries prefers the series channel, then the group channel.
func ganttSeries(record notes.Record, fields ganttFieldNames) string {
	if fields.series != "" {
		if value, ok := record.Properties[fields.series]; ok && value != nil {
			return strings.TrimSpace(stringifyProperty(value))
		}
	}
	if fields.group != "" {
		if value, ok := record.Properties[fields.group]; ok && value != nil {
			return strings.TrimSpace(stringifyProperty(value))
		}
	}
	return ""
}
