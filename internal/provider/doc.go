// Package provider reads raw, format-native metadata out of e-book files.
//
// Each Provider returns an unordered metadata.RawFields bag and never
// interprets it; mapping onto the canonical record is the metadata
// package's job. Two backends exist:
//
//   - native: PDF via github.com/ledongthuc/pdf, EPUB via
//     github.com/simp-lee/epub, MOBI via exiftool (no pure-Go MOBI reader).
//   - exiftool: every format through a single long-lived exiftool process
//     (github.com/barasher/go-exiftool).
//
// Failures are returned as *Error so callers can report the format and
// path and keep going with the next file.
package provider
