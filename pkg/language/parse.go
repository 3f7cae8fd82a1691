package language

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/lexer"
	"github.com/vektah/gqlparser/v2/parser"
)

// ErrEmptyDocument is returned when a source holds no definitions at all.
var ErrEmptyDocument = errors.New("document contains no definitions")

var executableKeywords = map[string]bool{
	"query":        true,
	"mutation":     true,
	"subscription": true,
	"fragment":     true,
}

var typeSystemKeywords = map[string]bool{
	"schema":    true,
	"scalar":    true,
	"type":      true,
	"interface": true,
	"union":     true,
	"enum":      true,
	"input":     true,
	"directive": true,
	"extend":    true,
}

// Keywords after which the next name is never the start of a new definition.
var nameTakingWords = map[string]bool{
	"extend":     true,
	"implements": true,
	"on":         true,
}

// span is a run of top-level definitions sharing executability, in rune offsets.
type span struct {
	start      int
	end        int
	executable bool
}

// Parse parses a source that may mix executable and type-system definitions.
// Each half is parsed by gqlparser from a copy of the input in which the other half is
// blanked out, so every position still points into the original source.
func Parse(src *ast.Source) (*Document, error) {
	spans, err := split(src)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return nil, ErrEmptyDocument
	}

	var query *ast.QueryDocument
	var schema *ast.SchemaDocument
	var members map[*ast.Definition][]*ast.Position

	if hasSpans(spans, true) {
		query, err = parser.ParseQuery(mask(src, spans, true))
		if err != nil {
			return nil, err
		}
	}
	if hasSpans(spans, false) {
		schemaSrc := mask(src, spans, false)
		schema, err = parser.ParseSchema(schemaSrc)
		if err != nil {
			return nil, err
		}
		members = memberPositions(schemaSrc, schema)
	}

	doc := newDocument(src, query, schema)
	doc.members = members
	return doc, nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(input string) *Document {
	doc, err := Parse(&ast.Source{Name: "document.graphql", Input: input})
	if err != nil {
		panic(fmt.Sprintf("language.MustParse: %v", err))
	}
	return doc
}

func hasSpans(spans []span, executable bool) bool {
	for _, s := range spans {
		if s.executable == executable {
			return true
		}
	}
	return false
}

// split scans the top level of the document and records where each definition starts.
func split(src *ast.Source) ([]span, error) {
	lx := lexer.New(src)

	var spans []span
	depth := 0
	pendingStart := -1
	// keyword of the definition being scanned and whether its body closed.
	current := ""
	closed := false
	var prev lexer.Token

	begin := func(start int, executable bool, keyword string) {
		if n := len(spans); n > 0 {
			spans[n-1].end = start
		}
		spans = append(spans, span{start: start, executable: executable})
		current = keyword
		closed = false
		pendingStart = -1
	}

	for {
		tok, err := lx.ReadToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.Comment {
			continue
		}
		if tok.Kind == lexer.EOF {
			if n := len(spans); n > 0 {
				spans[n-1].end = tok.Pos.Start
			}
			return spans, nil
		}

		start := tok.Pos.Start
		if pendingStart >= 0 {
			start = pendingStart
		}

		switch tok.Kind {
		case lexer.String, lexer.BlockString:
			if depth == 0 && pendingStart < 0 {
				pendingStart = tok.Pos.Start
			}
		case lexer.Name:
			if depth == 0 && !continuesDefinition(prev) {
				switch {
				case executableKeywords[tok.Value]:
					begin(start, true, tok.Value)
				case typeSystemKeywords[tok.Value]:
					begin(start, false, tok.Value)
				}
			} else if depth == 0 && prev.Kind == lexer.Name && prev.Value == "extend" {
				current = tok.Value
			}
		case lexer.BraceL:
			if depth == 0 && (len(spans) == 0 || closed || !takesBody(current)) {
				begin(start, true, "{")
			}
			depth++
		case lexer.ParenL, lexer.BracketL:
			depth++
		case lexer.BraceR:
			depth--
			if depth == 0 {
				closed = true
			}
		case lexer.ParenR, lexer.BracketR:
			depth--
		}

		if depth < 0 {
			depth = 0
		}
		prev = tok
	}
}

func continuesDefinition(prev lexer.Token) bool {
	switch prev.Kind {
	case lexer.Equals, lexer.Pipe, lexer.Amp, lexer.Colon, lexer.At, lexer.Dollar, lexer.Spread:
		return true
	case lexer.Name:
		return nameTakingWords[prev.Value] || executableKeywords[prev.Value] || typeSystemKeywords[prev.Value]
	}
	return false
}

func takesBody(keyword string) bool {
	switch keyword {
	case "", "scalar", "union", "directive":
		return false
	}
	return true
}

// mask returns a copy of src in which every span not matching executable is replaced
// by blanks. Line breaks are kept so line and column numbers stay valid.
func mask(src *ast.Source, spans []span, executable bool) *ast.Source {
	runes := []rune(src.Input)
	for _, s := range spans {
		if s.executable == executable {
			continue
		}
		end := min(s.end, len(runes))
		for i := s.start; i < end; i++ {
			if runes[i] != '\n' && runes[i] != '\r' {
				runes[i] = ' '
			}
		}
	}
	return &ast.Source{Name: src.Name, Input: string(runes), BuiltIn: src.BuiltIn}
}
