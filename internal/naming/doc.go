// Package naming turns a canonical metadata record into a new filename and
// moves the file there without overwriting anything.
//
// Types:
//   - Token (pattern placeholder → metadata key)
//   - Renamer (collision-safe rename executor; dry-run aware)
//   - Outcome (resulting path plus whether a suffix was applied)
//   - RenameError (source, destination and the filesystem error)
//
// Functions:
//   - Render(pattern, record) → stem
//     Literal token substitution in fixed order, then Sanitize.
//   - Sanitize(s) → s
//     "/"→"-", ":"→" -", drop ".", trim, NFC.
//   - (*Renamer).Rename(source, stem, ext, dryRun) → Outcome
//     Same-directory move. Collisions get a " NNNN" suffix derived from the
//     clock; the move itself is an atomic no-replace rename retried a
//     bounded number of times.
package naming
