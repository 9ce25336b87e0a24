package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/ebookmeta/internal/metadata"
)

type stubProvider metadata.RawFields

func (s stubProvider) Extract(context.Context, string) (metadata.RawFields, error) {
	return metadata.RawFields(s), nil
}

func TestNewRegistry(t *testing.T) {
	cases := []struct {
		backend Backend
		pdf     interface{}
		epub    interface{}
	}{
		{BackendNative, PDF{}, EPUB{}},
		{"", PDF{}, EPUB{}},
		{BackendExiftool, &Exiftool{}, &Exiftool{}},
	}
	for _, tc := range cases {
		t.Run(string(tc.backend), func(t *testing.T) {
			r, err := NewRegistry(tc.backend)
			require.NoError(t, err)
			defer r.Close()

			p, ok := r.Lookup(metadata.FormatPDF)
			require.True(t, ok)
			assert.IsType(t, tc.pdf, p)

			p, ok = r.Lookup(metadata.FormatEPUB)
			require.True(t, ok)
			assert.IsType(t, tc.epub, p)

			p, ok = r.Lookup(metadata.FormatMOBI)
			require.True(t, ok)
			assert.IsType(t, &Exiftool{}, p)
		})
	}

	_, err := NewRegistry("calibre")
	assert.Error(t, err)
}

func TestRegistry_Extract(t *testing.T) {
	r, err := NewRegistry(BackendNative)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Extract(context.Background(), metadata.FormatUnknown, "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "unknown metadata from notes.txt")

	r.Register(metadata.FormatEPUB, stubProvider{"title": {"Dune"}})
	raw, err := r.Extract(context.Background(), metadata.FormatEPUB, "dune.epub")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, raw["title"])
}
