package recipe

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Diagnostic is a single problem found in a recipe file
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// ParseError reports every decode problem found in one recipe file.
// Syntax errors stop parsing, so they always arrive alone.
type ParseError struct {
	File        string
	Source      string
	Diagnostics []Diagnostic
}

func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "failed to parse Recipe"
	}
	first := e.Diagnostics[0]
	msg := fmt.Sprintf("failed to parse Recipe: %s:%d:%d: %s", e.File, first.Line, first.Column, first.Message)
	if more := len(e.Diagnostics) - 1; more > 0 {
		msg += fmt.Sprintf(" (and %d more)", more)
	}
	return msg
}

// Render formats every diagnostic with the offending source line and a caret
// under the reported column.
//
//	error: unknown node "bew", expected tap, cask or brew
//	  --> recipe.kdl:3:1
//	   |
//	 3 | bew "git"
//	   | ^
func (e *ParseError) Render() string {
	lines := sourceLines(e.Source)

	var b strings.Builder
	b.WriteString("failed to parse Recipe\n")
	for _, d := range e.Diagnostics {
		gutter := len(fmt.Sprint(d.Line))
		pad := strings.Repeat(" ", gutter)

		fmt.Fprintf(&b, "\nerror: %s\n", d.Message)
		fmt.Fprintf(&b, "%s--> %s:%d:%d\n", pad, e.File, d.Line, d.Column)
		if d.Line < 1 || d.Line > len(lines) {
			continue
		}
		text := lines[d.Line-1]
		fmt.Fprintf(&b, "%s |\n", pad)
		fmt.Fprintf(&b, "%d | %s\n", d.Line, text)
		fmt.Fprintf(&b, "%s | %s^\n", pad, caretPadding(text, d.Column))
	}
	return b.String()
}

func sourceLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

// caretPadding keeps tabs so the caret lines up with the printed source
func caretPadding(line string, column int) string {
	var b strings.Builder
	for i, r := range line {
		if utf8.RuneCountInString(line[:i]) >= column-1 {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
