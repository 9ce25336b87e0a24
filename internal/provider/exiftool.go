package provider

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/barasher/go-exiftool"

	"github.com/backmassage/ebookmeta/internal/metadata"
)

// extractor is the subset of *exiftool.Exiftool used here.
type extractor interface {
	ExtractMetadata(files ...string) []exiftool.FileMetadata
	Close() error
}

// Exiftool reads metadata through one long-lived exiftool process, started
// lazily on first use. It serves MOBI files on the native backend and
// every format on the exiftool backend.
type Exiftool struct {
	mu       sync.Mutex
	start    func() (extractor, error)
	et       extractor
	startErr error
}

// NewExiftool returns a provider bound to the exiftool binary on PATH.
func NewExiftool() *Exiftool {
	return &Exiftool{
		start: func() (extractor, error) { return exiftool.NewExiftool() },
	}
}

// Extract implements Provider.
func (e *Exiftool) Extract(ctx context.Context, path string) (metadata.RawFields, error) {
	format := metadata.FormatFromPath(path)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.et == nil && e.startErr == nil {
		e.et, e.startErr = e.start()
	}
	if e.startErr != nil {
		return nil, fail(format, path, fmt.Errorf("%w: %v", ErrExiftoolUnavailable, e.startErr))
	}

	results := e.et.ExtractMetadata(path)
	if len(results) == 0 {
		return nil, fail(format, path, errors.New("exiftool returned no result"))
	}
	if err := results[0].Err; err != nil {
		return nil, fail(format, path, err)
	}
	return exifFields(results[0].Fields), nil
}

// Close stops the exiftool process. Safe to call when it never started.
func (e *Exiftool) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.et == nil {
		return nil
	}
	err := e.et.Close()
	e.et = nil
	return err
}

// exifFields converts exiftool's decoded JSON into a raw bag. Numbers come
// back as float64 and list tags as []interface{}; both are flattened to
// strings. Exif-style dates are rewritten to ISO order.
func exifFields(fields map[string]interface{}) metadata.RawFields {
	raw := metadata.RawFields{}
	for k, v := range fields {
		for _, s := range flatten(v) {
			if strings.Contains(k, "Date") {
				s = isoDate(s)
			}
			raw.Add(k, s)
		}
	}
	return raw
}

func flatten(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}
	case bool:
		return []string{strconv.FormatBool(t)}
	case []interface{}:
		var out []string
		for _, e := range t {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}

var exifDate = regexp.MustCompile(`^(\d{4}):(\d{2}):(\d{2})`)

// isoDate turns "2020:02:07 12:00:00+01:00" into "2020-02-07 12:00:00+01:00".
func isoDate(s string) string {
	return exifDate.ReplaceAllString(s, "$1-$2-$3")
}
