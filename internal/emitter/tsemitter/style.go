package tsemitter

import (
	"strings"

	"github.com/zodgen/openapi2zod/internal/compiler"
)

type LineEnding string

const (
	LF   LineEnding = "lf"
	CRLF LineEnding = "crlf"
)

type QuoteMark string

const (
	SingleQuote QuoteMark = "single"
	DoubleQuote QuoteMark = "double"
)

// Style is the externally supplied formatting configuration. It is validated
// before compilation proceeds; formatting itself is applied only while
// rendering, never inside the compiler.
type Style struct {
	Indent     int // spaces per level
	LineEnding LineEnding
	QuoteMark  QuoteMark
}

// DefaultStyle returns the formatting used when no configuration is given.
func DefaultStyle() Style {
	return Style{Indent: 2, LineEnding: LF, QuoteMark: DoubleQuote}
}

// Validate rejects values outside the recognized option set.
func (s Style) Validate() error {
	if s.Indent < 0 {
		return compiler.ErrConfiguration("indentation must be non-negative, got %d", s.Indent)
	}
	switch s.LineEnding {
	case LF, CRLF:
	default:
		return compiler.ErrConfiguration("unrecognized line ending %q (allowed: lf, crlf)", s.LineEnding)
	}
	switch s.QuoteMark {
	case SingleQuote, DoubleQuote:
	default:
		return compiler.ErrConfiguration("unrecognized quote mark %q (allowed: single, double)", s.QuoteMark)
	}
	return nil
}

func (s Style) indentUnit() string { return strings.Repeat(" ", s.Indent) }

// quote renders a string literal with the configured quote mark.
func (s Style) quote(v string) string {
	q := `"`
	if s.QuoteMark == SingleQuote {
		q = "'"
	}
	escaped := strings.ReplaceAll(v, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, q, `\`+q)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	return q + escaped + q
}

// applyLineEnding converts the renderer's LF output to the configured ending.
func (s Style) applyLineEnding(text string) string {
	if s.LineEnding != CRLF {
		return text
	}
	return strings.ReplaceAll(text, "\n", "\r\n")
}
