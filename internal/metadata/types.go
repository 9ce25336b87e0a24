package metadata

import (
	"path/filepath"
	"strings"
)

// Key is a canonical metadata field name.
type Key string

const (
	Title       Key = "Title"
	Author      Key = "Author"
	Description Key = "Description"
	Publisher   Key = "Publisher"
	Date        Key = "Date"
	Language    Key = "Language"
	Identifier  Key = "Identifier"
	Year        Key = "Year" // Derived from Date, never read from a provider.
)

// Keys lists every canonical key in display order.
var Keys = []Key{Title, Author, Description, Publisher, Date, Language, Identifier, Year}

// Format identifies an e-book container format.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatEPUB    Format = "epub"
	FormatMOBI    Format = "mobi"
	FormatUnknown Format = ""
)

// Formats lists the supported formats.
var Formats = []Format{FormatPDF, FormatEPUB, FormatMOBI}

// FormatFromPath maps a file extension (case-insensitive) to a Format.
// Returns FormatUnknown for anything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "pdf":
		return FormatPDF
	case "epub":
		return FormatEPUB
	case "mobi":
		return FormatMOBI
	}
	return FormatUnknown
}

// RawFields is the unordered bag a provider returns: native field name →
// one or more values in document order.
type RawFields map[string][]string

// Add appends values under name, skipping nothing; empty strings are kept so
// the normalizer can treat "present but empty" the same as "absent".
func (r RawFields) Add(name string, values ...string) {
	r[name] = append(r[name], values...)
}

// First returns the first value stored under name and whether name exists.
func (r RawFields) First(name string) (string, bool) {
	vs, ok := r[name]
	if !ok || len(vs) == 0 {
		return "", ok
	}
	return vs[0], true
}

// Record is the canonical, format-independent metadata view of one file.
type Record map[Key]string

// Get returns the value for k and whether k is present.
func (r Record) Get(k Key) (string, bool) {
	v, ok := r[k]
	return v, ok
}

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
