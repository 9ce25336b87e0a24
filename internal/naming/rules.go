package naming

import "github.com/backmassage/ebookmeta/internal/metadata"

// Token pairs a two-character pattern placeholder with the record key it
// expands to. Tokens are applied in table order by [Render].
type Token struct {
	Placeholder string
	Key         metadata.Key
}

// Tokens is the ordered substitution table. Any other "%x" sequence in a
// pattern is literal text.
var Tokens = []Token{
	{"%t", metadata.Title},
	{"%a", metadata.Author},
	{"%p", metadata.Publisher},
	{"%i", metadata.Identifier},
	{"%y", metadata.Year},
}

// missingValue is substituted when a token's key is present but empty.
const missingValue = "Unknown"
