package metadata

import "strings"

// Field maps one canonical key to the provider field names that can supply
// it, in priority order. Clean post-processes the chosen value; nil means
// the value is used as-is.
type Field struct {
	Key   Key
	Names []string
	Clean func(string) string
}

// Table is the ordered field list for one format. Year never appears here.
type Table []Field

var quoteStripper = strings.NewReplacer(`"`, "")

// stripQuotes removes embedded double quotes (PDF strings often carry them
// through from the producing application).
func stripQuotes(s string) string { return quoteStripper.Replace(s) }

var pdfNameReplacer = strings.NewReplacer(`"`, "", "/", "", "#20", " ")

// cleanPDFName turns a PDF name object such as "/Penguin#20Books" into
// "Penguin Books". Vendor fields like EBX_PUBLISHER are stored as names,
// so both the leading slash and the #20 escaped space survive extraction.
func cleanPDFName(s string) string { return pdfNameReplacer.Replace(s) }

// Names include both the native provider spelling and the exiftool tag
// spelling so one table serves either backend.
var (
	pdfTable = Table{
		{Title, []string{"Title"}, stripQuotes},
		{Author, []string{"Author"}, stripQuotes},
		{Description, []string{"Subject", "Description"}, stripQuotes},
		{Publisher, []string{"EBX_PUBLISHER", "Publisher"}, cleanPDFName},
		{Date, []string{"CreationDate", "CreateDate", "ModDate", "ModifyDate"}, stripQuotes},
		{Language, []string{"Lang", "Language"}, stripQuotes},
		{Identifier, []string{"ISBN", "EBX_ISBN", "Identifier"}, stripQuotes},
	}

	epubTable = Table{
		{Title, []string{"title", "Title"}, nil},
		{Author, []string{"creator", "author", "Creator", "Author"}, nil},
		{Description, []string{"description", "Description"}, nil},
		{Publisher, []string{"publisher", "Publisher"}, nil},
		{Date, []string{"date", "Date", "CreateDate"}, nil},
		{Language, []string{"language", "Language"}, nil},
		{Identifier, []string{"identifier", "Identifier"}, nil},
	}

	mobiTable = Table{
		{Title, []string{"UpdatedTitle", "BookName", "Title"}, nil},
		{Author, []string{"Author", "Creator"}, nil},
		{Description, []string{"Description"}, nil},
		{Publisher, []string{"Publisher"}, nil},
		{Date, []string{"PublishDate", "PublishingDate"}, nil},
		{Language, []string{"Language"}, nil},
		{Identifier, []string{"ISBN", "ASIN"}, nil},
	}
)

// Tables is the declarative field mapping for every supported format.
var Tables = map[Format]Table{
	FormatPDF:  pdfTable,
	FormatEPUB: epubTable,
	FormatMOBI: mobiTable,
}
