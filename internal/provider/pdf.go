package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ledongthuc/pdf"

	"github.com/backmassage/ebookmeta/internal/metadata"
)

// PDF reads the document information dictionary plus the catalog's /Lang.
// A file without an Info dictionary yields an empty bag, not an error.
type PDF struct{}

// Extract implements Provider.
func (PDF) Extract(ctx context.Context, path string) (raw metadata.RawFields, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = fail(metadata.FormatPDF, path, fmt.Errorf("%w: %v", ErrMalformed, r))
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fail(metadata.FormatPDF, path, err)
	}
	defer f.Close()

	return infoFields(r.Trailer()), nil
}

// infoFields flattens the trailer's /Info dictionary into a raw bag.
func infoFields(trailer pdf.Value) metadata.RawFields {
	raw := metadata.RawFields{}

	info := trailer.Key("Info")
	if info.Kind() == pdf.Dict {
		for _, k := range info.Keys() {
			if s, ok := pdfString(info.Key(k)); ok {
				raw.Add(k, s)
			}
		}
	}

	if lang, ok := pdfString(trailer.Key("Root").Key("Lang")); ok {
		raw.Add("Lang", lang)
	}
	return raw
}

// pdfString renders a scalar PDF object as text. Dictionaries, arrays and
// streams are not metadata values and report false.
func pdfString(v pdf.Value) (string, bool) {
	switch v.Kind() {
	case pdf.String:
		return v.Text(), true
	case pdf.Name:
		return v.Name(), true
	case pdf.Integer:
		return strconv.FormatInt(v.Int64(), 10), true
	case pdf.Real:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64), true
	case pdf.Bool:
		return strconv.FormatBool(v.Bool()), true
	}
	return "", false
}
