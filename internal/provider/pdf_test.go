package provider

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/ebookmeta/internal/metadata"
)

// writeTestPDF writes a one-page PDF whose trailer points at the given
// Info dictionary body (e.g. "/Title (Dune)"). An empty info omits /Info.
// The xref table offsets are computed so the file parses without repair.
func writeTestPDF(t *testing.T, info, lang string) string {
	t.Helper()

	catalog := "<< /Type /Catalog /Pages 2 0 R >>"
	if lang != "" {
		catalog = fmt.Sprintf("<< /Type /Catalog /Pages 2 0 R /Lang (%s) >>", lang)
	}
	objects := []string{
		catalog,
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}
	if info != "" {
		objects = append(objects, "<< "+info+" >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	trailer := fmt.Sprintf("/Size %d /Root 1 0 R", len(objects)+1)
	if info != "" {
		trailer += " /Info 3 0 R"
	}
	fmt.Fprintf(&buf, "trailer\n<< %s >>\nstartxref\n%d\n%%%%EOF\n", trailer, xref)

	path := filepath.Join(t.TempDir(), "book.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestPDF_Extract(t *testing.T) {
	path := writeTestPDF(t,
		`/Title (Dune) /Author (Frank Herbert) /Subject (Arrakis) `+
			`/CreationDate (D:19650801120000Z) /EBX_PUBLISHER /Chilton#20Books`,
		"en-US")

	raw, err := PDF{}.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Dune"}, raw["Title"])
	assert.Equal(t, []string{"Frank Herbert"}, raw["Author"])
	assert.Equal(t, []string{"en-US"}, raw["Lang"])
	assert.NotContains(t, raw, "Year")

	rec := metadata.NewNormalizer(nil, nil).Normalize(metadata.FormatPDF, raw)
	assert.Equal(t, "Dune", rec[metadata.Title])
	assert.Equal(t, "Arrakis", rec[metadata.Description])
	assert.Equal(t, "Chilton Books", rec[metadata.Publisher])
	assert.Equal(t, "D:19650801120000Z", rec[metadata.Date])
	assert.Equal(t, "1965", rec[metadata.Year])
	assert.Equal(t, "en-US", rec[metadata.Language])
	assert.Equal(t, metadata.Unknown, rec[metadata.Identifier])
}

func TestPDF_NoInfoDictionary(t *testing.T) {
	path := writeTestPDF(t, "", "")

	raw, err := PDF{}.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestPDF_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pdf at all"), 0o644))

	for _, path := range []string{garbage, filepath.Join(dir, "missing.pdf")} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := PDF{}.Extract(context.Background(), path)
			require.Error(t, err)

			var pe *Error
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, metadata.FormatPDF, pe.Format)
			assert.Equal(t, path, pe.Path)
		})
	}
}

func TestPDF_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PDF{}.Extract(ctx, "whatever.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}
