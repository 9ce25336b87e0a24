package provider

import (
	"context"
	"fmt"

	"github.com/backmassage/ebookmeta/internal/metadata"
)

// Provider extracts the raw metadata bag from one file.
type Provider interface {
	Extract(ctx context.Context, path string) (metadata.RawFields, error)
}

// Backend selects which provider family serves each format.
type Backend string

const (
	BackendNative   Backend = "native"
	BackendExiftool Backend = "exiftool"
)

// Registry maps formats to providers. It owns the shared exiftool process
// and must be closed after use.
type Registry struct {
	backend   Backend
	providers map[metadata.Format]Provider
	exif      *Exiftool
}

// NewRegistry wires the providers for backend. The exiftool process is not
// started until the first file that needs it.
func NewRegistry(backend Backend) (*Registry, error) {
	exif := NewExiftool()
	r := &Registry{backend: backend, exif: exif}

	switch backend {
	case BackendNative, "":
		r.backend = BackendNative
		r.providers = map[metadata.Format]Provider{
			metadata.FormatPDF:  PDF{},
			metadata.FormatEPUB: EPUB{},
			metadata.FormatMOBI: exif,
		}
	case BackendExiftool:
		r.providers = map[metadata.Format]Provider{
			metadata.FormatPDF:  exif,
			metadata.FormatEPUB: exif,
			metadata.FormatMOBI: exif,
		}
	default:
		return nil, fmt.Errorf("unknown provider backend %q", backend)
	}
	return r, nil
}

// Backend reports the backend the registry was built for.
func (r *Registry) Backend() Backend { return r.backend }

// Register replaces the provider for format.
func (r *Registry) Register(format metadata.Format, p Provider) {
	r.providers[format] = p
}

// Lookup returns the provider for format.
func (r *Registry) Lookup(format metadata.Format) (Provider, bool) {
	p, ok := r.providers[format]
	return p, ok
}

// Extract dispatches path to the provider registered for format. An
// unregistered format fails with ErrUnsupportedFormat.
func (r *Registry) Extract(ctx context.Context, format metadata.Format, path string) (metadata.RawFields, error) {
	p, ok := r.providers[format]
	if !ok {
		return nil, fail(format, path, ErrUnsupportedFormat)
	}
	return p.Extract(ctx, path)
}

// Close stops the exiftool process if one was started.
func (r *Registry) Close() error {
	return r.exif.Close()
}
