// Package metadata reduces format-specific raw metadata into one canonical
// record and resolves the record's publication year.
//
// Types:
//   - Record (Key → value, the canonical view of an e-book)
//   - RawFields (provider-native key → ordered values)
//   - Field / Table (declarative per-format probe lists)
//   - DefaultPolicy (sentinel per canonical key, fixed at construction)
//
// Functions:
//   - (*Normalizer).Normalize(format, raw) → Record
//     Probes each canonical key's field names in priority order, cleans the
//     first non-empty value, falls back to the policy default, then derives
//     Year from Date.
//   - ResolveYear(date) → string
//     Four-digit passthrough, "D:" structured dates, ISO-8601 prefixes.
package metadata
