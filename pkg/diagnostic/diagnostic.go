// Package diagnostic provides utilities for rendering diagnostic messages
// with source code snippets and underlines.
package diagnostic

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Span is a location in a source file. ColumnEnd is exclusive; zero means a single column.
type Span struct {
	Line      int
	Column    int
	ColumnEnd int
}

// Len returns the number of columns covered, at least one.
func (s Span) Len() int {
	if s.ColumnEnd > s.Column {
		return s.ColumnEnd - s.Column
	}
	return 1
}

// Diagnostic is a message pointing at one or more spans of a file.
// The first span is primary and gets the snippet, the others are listed as notes.
type Diagnostic struct {
	File    string
	Message string
	Spans   []Span
	Help    []string
	Notes   []string
}

// Render formats d like:
//
//	--> query.graphql:3:9
//	3 | query { user }
//	  |         ^^^^ error message here
//	  = help: did you mean `users`?
//
// lines holds the source, one entry per line.
func Render(d Diagnostic, lines []string) string {
	var b strings.Builder
	if len(d.Spans) == 0 {
		b.WriteString("  " + d.Message + "\n")
	} else {
		primary := d.Spans[0]
		b.WriteString(RenderLocation(d.File, primary.Line, primary.Column) + "\n")
		if primary.Line > 0 && primary.Line <= len(lines) {
			b.WriteString(RenderSnippet(lines[primary.Line-1], primary.Line, primary.Column, primary.Len(), d.Message) + "\n")
		} else {
			b.WriteString("  " + d.Message + "\n")
		}
		for _, s := range d.Spans[1:] {
			b.WriteString("  " + gutterStyle.Render("=") + " note: also at " + d.File + ":" + strconv.Itoa(s.Line) + ":" + strconv.Itoa(s.Column) + "\n")
		}
	}
	for _, h := range d.Help {
		b.WriteString("  " + gutterStyle.Render("=") + " " + helpStyle.Render("help:") + " " + h + "\n")
	}
	for _, n := range d.Notes {
		b.WriteString("  " + gutterStyle.Render("=") + " note: " + n + "\n")
	}
	return b.String()
}

// RenderSnippet renders a source line with line number, gutter, and underline caret.
// Returns something like:
//
//	3 | query { user }
//	  |         ^^^^ error message here
func RenderSnippet(source string, lineNum int, column int, length int, message string) string {
	if length < 1 {
		length = 1
	}
	if column < 1 {
		column = 1
	}

	numStr := strconv.Itoa(lineNum)
	gutterWidth := len(numStr)

	lineNumStyled := gutterStyle.Render(numStr)
	pipe := gutterStyle.Render("|")
	emptyGutter := strings.Repeat(" ", gutterWidth)

	// Tabs keep their width so the carets line up with the code above.
	var padding strings.Builder
	for i, r := range []rune(source) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	if n := column - 1 - len([]rune(source)); n > 0 {
		padding.WriteString(strings.Repeat(" ", n))
	}

	codeLine := lineNumStyled + " " + pipe + " " + source

	carets := caretStyle.Render(strings.Repeat("^", length))
	msgRendered := ""
	if message != "" {
		msgRendered = " " + messageStyle.Render(message)
	}
	underLine := emptyGutter + " " + pipe + " " + padding.String() + carets + msgRendered

	return codeLine + "\n" + underLine
}

// RenderLocation renders a location header like "--> file.graphql:3:9"
func RenderLocation(filename string, line int, column int) string {
	loc := filename + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
	arrow := gutterStyle.Render("-->")
	return arrow + " " + loc
}
