package metadata

import "strings"

// pdfDatePrefix marks a PDF structured date ("D:YYYYMMDDHHmmSS...").
const pdfDatePrefix = "D:"

// ResolveYear derives a year from a Date value. Rules, first match wins:
//
//	"2020"                       → "2020" (already a year)
//	"D:20200207120000"           → "2020" (second ':' segment, first 4 chars)
//	"2011-03-15T04:00:00+00:00"  → "2011" (text before the first '-')
//	anything else                → unchanged
//
// The result is whitespace-trimmed. Short or empty inputs never panic.
func ResolveYear(date string) string {
	switch {
	case isFourDigits(date):
		return date
	case strings.HasPrefix(date, pdfDatePrefix):
		parts := strings.Split(date, ":")
		seg := parts[1]
		if r := []rune(seg); len(r) > 4 {
			seg = string(r[:4])
		}
		return strings.TrimSpace(seg)
	case strings.Contains(date, "-"):
		before, _, _ := strings.Cut(date, "-")
		return strings.TrimSpace(before)
	}
	return strings.TrimSpace(date)
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
