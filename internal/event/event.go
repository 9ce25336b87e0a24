// Package event defines the structured event sink that the metadata and
// naming packages report to. The core never writes to the console; the CLI
// injects a sink (normally the logging.Logger) that decides what to show.
package event

// Kind identifies a point in the per-file pipeline.
type Kind string

const (
	ExtractStart      Kind = "extract_start"
	ExtractEnd        Kind = "extract_end"
	FieldDefaulted    Kind = "field_defaulted"
	CollisionDetected Kind = "collision_detected"
	RenamePerformed   Kind = "rename_performed"
	RenameUnchanged   Kind = "rename_unchanged"
	DryRun            Kind = "dry_run"
)

// Event is a single structured observation. Attrs carries kind-specific
// detail (e.g. "key" for FieldDefaulted, "dest" for RenamePerformed).
type Event struct {
	Kind  Kind
	Path  string
	Attrs map[string]string
}

// Sink receives events. Implementations must not block for long; Emit is
// called inline on the processing goroutine.
type Sink interface {
	Emit(e Event)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

type discard struct{}

func (discard) Emit(Event) {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

// New builds an Event from alternating key/value attribute pairs. A
// trailing key without a value is ignored.
func New(kind Kind, path string, kv ...string) Event {
	e := Event{Kind: kind, Path: path}
	if len(kv) >= 2 {
		e.Attrs = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Attrs[kv[i]] = kv[i+1]
		}
	}
	return e
}

// Recorder is a Sink that keeps every event in order. Intended for tests
// and for callers that want to inspect what happened to a file.
type Recorder struct {
	Events []Event
}

// Emit appends e.
func (r *Recorder) Emit(e Event) { r.Events = append(r.Events, e) }

// Kinds returns the recorded kinds in emission order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Kind
	}
	return out
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
