package naming

import (
	"strings"

	"github.com/backmassage/ebookmeta/internal/metadata"
)

// Render expands pattern against rec and returns a sanitized filename stem
// (no extension).
//
// Tokens are replaced literally, one token at a time, in [Tokens] order. A
// token whose key is absent from rec is left verbatim; a key that is present
// but empty expands to "Unknown". Render fails with [ErrEmptyPattern] when
// pattern is empty and [ErrEmptyName] when nothing survives sanitization.
func Render(pattern string, rec metadata.Record) (string, error) {
	if pattern == "" {
		return "", ErrEmptyPattern
	}

	name := pattern
	for _, tok := range Tokens {
		v, ok := rec.Get(tok.Key)
		if !ok {
			continue
		}
		if v == "" {
			v = missingValue
		}
		name = strings.ReplaceAll(name, tok.Placeholder, v)
	}

	name = Sanitize(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}
