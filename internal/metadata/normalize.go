package metadata

import (
	"strings"

	"github.com/backmassage/ebookmeta/internal/event"
)

// Unknown is the sentinel used by DefaultUnknown.
const Unknown = "Unknown"

// DefaultPolicy supplies the value for a canonical key the provider did not
// fill. Keys missing from the policy default to the empty string.
type DefaultPolicy map[Key]string

// DefaultUnknown maps every canonical key to "Unknown".
func DefaultUnknown() DefaultPolicy {
	p := make(DefaultPolicy, len(Keys))
	for _, k := range Keys {
		p[k] = Unknown
	}
	return p
}

// DefaultEmpty maps every canonical key to "".
func DefaultEmpty() DefaultPolicy {
	p := make(DefaultPolicy, len(Keys))
	for _, k := range Keys {
		p[k] = ""
	}
	return p
}

// With returns a copy of p with k overridden.
func (p DefaultPolicy) With(k Key, v string) DefaultPolicy {
	out := make(DefaultPolicy, len(p)+1)
	for kk, vv := range p {
		out[kk] = vv
	}
	out[k] = v
	return out
}

// Normalizer turns raw provider bags into canonical records. It holds no
// per-file state and is safe to reuse across files.
type Normalizer struct {
	defaults DefaultPolicy
	tables   map[Format]Table
	sink     event.Sink
}

// NewNormalizer creates a Normalizer using the package field tables. A nil
// defaults means DefaultUnknown; a nil sink means event.Discard.
func NewNormalizer(defaults DefaultPolicy, sink event.Sink) *Normalizer {
	if defaults == nil {
		defaults = DefaultUnknown()
	}
	if sink == nil {
		sink = event.Discard
	}
	resolved := make(DefaultPolicy, len(Keys))
	for _, k := range Keys {
		resolved[k] = defaults[k]
	}
	return &Normalizer{defaults: resolved, tables: Tables, sink: sink}
}

// Default returns the value the normalizer substitutes for k.
func (n *Normalizer) Default(k Key) string { return n.defaults[k] }

// Normalize maps raw into a Record for format. Every canonical key,
// including Year, is present in the result. An unknown format yields a
// record made entirely of defaults (with Year derived from the default Date).
func (n *Normalizer) Normalize(format Format, raw RawFields) Record {
	return n.normalize(format, raw, "")
}

// NormalizeFile is Normalize with the source path attached to emitted events.
func (n *Normalizer) NormalizeFile(path string, format Format, raw RawFields) Record {
	return n.normalize(format, raw, path)
}

func (n *Normalizer) normalize(format Format, raw RawFields, path string) Record {
	rec := make(Record, len(Keys))
	table := n.tables[format]

	for _, k := range Keys {
		if k == Year {
			continue
		}
		if v, ok := lookup(table, k, raw); ok {
			rec[k] = v
			continue
		}
		rec[k] = n.defaults[k]
		n.sink.Emit(event.New(event.FieldDefaulted, path,
			"key", string(k), "format", string(format), "default", n.defaults[k]))
	}

	rec[Year] = ResolveYear(rec[Date])
	return rec
}

// lookup probes k's field names in order and returns the first cleaned,
// non-empty first value.
func lookup(table Table, k Key, raw RawFields) (string, bool) {
	for _, f := range table {
		if f.Key != k {
			continue
		}
		for _, name := range f.Names {
			v, _ := raw.First(name)
			if f.Clean != nil {
				v = f.Clean(v)
			}
			if strings.TrimSpace(v) != "" {
				return v, true
			}
		}
	}
	return "", false
}
