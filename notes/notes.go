// Package notes defines the note record model consumed by the chart query engine, and
// provides sources for obtaining record collections.
package notes

// Record is one note's extracted property bag plus its unique path identifier. The
// engine only ever reads records; property values may be scalars, lists or dates.
type Record struct {
	Path       string         `json:"path"`
	Properties map[string]any `json:"properties"`
}

// Source provides the record collection that chart queries run against. The engine
// calls GetAll once per query and treats the returned slice as immutable for the
// query's duration; any consistency guarantees across queries are the host's concern.
type Source interface {
	GetAll() []Record
}

// FixedSource is a Source over a fixed in-memory record slice, for tests and for hosts
// that maintain their own index.
type FixedSource []Record

func (source FixedSource) GetAll() []Record {
	return source
}
