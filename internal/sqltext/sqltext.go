// Package sqltext provides low-level helpers for emitting and scanning
// fragments of SQL text. It has no knowledge of schemas or query models.
package sqltext

import (
	"strconv"
	"strings"
)

// clauseKeywords are tokens that can follow a table reference and therefore
// must never be mistaken for an alias.
var clauseKeywords = map[string]bool{
	"JOIN":   true,
	"INNER":  true,
	"LEFT":   true,
	"RIGHT":  true,
	"FULL":   true,
	"CROSS":  true,
	"OUTER":  true,
	"ON":     true,
	"WHERE":  true,
	"GROUP":  true,
	"ORDER":  true,
	"HAVING": true,
	"LIMIT":  true,
	"OFFSET": true,
	"UNION":  true,
	"AS":     true,
}

// IsClauseKeyword reports whether tok is a clause keyword rather than a
// plausible alias. The check is case-insensitive.
func IsClauseKeyword(tok string) bool {
	return clauseKeywords[strings.ToUpper(tok)]
}

// IsNumeric reports whether s parses as a SQL numeric literal.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Literal formats a condition value: numbers pass through bare, everything
// else becomes a single-quoted string with embedded quotes doubled.
func Literal(v string) string {
	if IsNumeric(v) {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// StripQuotes removes one level of matching single or double quotes.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			inner := s[1 : len(s)-1]
			if s[0] == '\'' {
				inner = strings.ReplaceAll(inner, "''", "'")
			}
			return inner
		}
	}
	return s
}

// SplitTop splits s on sep, ignoring separators nested inside parentheses or
// quoted strings, so COUNT(a, b) survives a comma split as one item.
func SplitTop(s string, sep byte) []string {
	var parts []string
	depth := 0
	inQuote := byte(0)
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote != 0:
			if ch == inQuote {
				inQuote = 0
			}
		case ch == '\'' || ch == '"':
			inQuote = ch
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case ch == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// LastSegment returns the text after the final dot, or s unchanged.
func LastSegment(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// CollapseSpaces rewrites any run of whitespace to a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
