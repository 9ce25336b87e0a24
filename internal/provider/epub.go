package provider

import (
	"context"

	"github.com/simp-lee/epub"

	"github.com/backmassage/ebookmeta/internal/metadata"
)

// EPUB reads the OPF package metadata. Field names are the Dublin Core
// element names without the dc: prefix.
type EPUB struct{}

// Extract implements Provider. DRM-protected and structurally invalid
// books fail with epub.ErrDRMProtected / epub.ErrInvalidEPub in the chain.
func (EPUB) Extract(ctx context.Context, path string) (metadata.RawFields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	book, err := epub.Open(path)
	if err != nil {
		return nil, fail(metadata.FormatEPUB, path, err)
	}
	defer book.Close()

	return opfFields(book.Metadata()), nil
}

func opfFields(md epub.Metadata) metadata.RawFields {
	raw := metadata.RawFields{}
	addAll := func(name string, vs ...string) {
		for _, v := range vs {
			if v != "" {
				raw.Add(name, v)
			}
		}
	}

	addAll("title", md.Titles...)
	for _, a := range md.Authors {
		addAll("creator", a.Name)
	}
	addAll("description", md.Description)
	addAll("publisher", md.Publisher)
	addAll("date", md.Date)
	addAll("language", md.Language...)
	for _, id := range md.Identifiers {
		addAll("identifier", id.Value)
	}
	addAll("subject", md.Subjects...)
	addAll("rights", md.Rights)
	return raw
}
