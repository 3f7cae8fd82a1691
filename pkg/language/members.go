package language

import (
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/lexer"
)

// memberPositions locates the names listed after "implements" and after the "=" of a
// union, for every type definition and extension of doc. src must be the source doc was
// parsed from.
func memberPositions(src *ast.Source, doc *ast.SchemaDocument) map[*ast.Definition][]*ast.Position {
	var tokens []lexer.Token
	lx := lexer.New(src)
	for {
		tok, err := lx.ReadToken()
		if err != nil {
			return nil
		}
		if tok.Kind == lexer.Comment {
			continue
		}
		if tok.Kind == lexer.EOF {
			break
		}
		tokens = append(tokens, tok)
	}

	positions := map[*ast.Definition][]*ast.Position{}
	locate := func(def *ast.Definition) {
		var names []string
		switch def.Kind {
		case ast.Object, ast.Interface:
			names = def.Interfaces
		case ast.Union:
			names = def.Types
		}
		if len(names) == 0 || def.Position == nil {
			return
		}
		start := sort.Search(len(tokens), func(i int) bool {
			return tokens[i].Pos.Start >= def.Position.Start
		})
		if found := listNames(tokens[start:], def.Kind == ast.Union, names); found != nil {
			positions[def] = found
		}
	}
	for _, def := range doc.Definitions {
		locate(def)
	}
	for _, def := range doc.Extensions {
		locate(def)
	}
	return positions
}

// listNames finds the list opened by "implements" (or "=" for unions) in the header whose
// name is tokens[0], and returns the position of each of names in it. It returns nil when the
// names cannot all be matched in order.
func listNames(tokens []lexer.Token, union bool, names []string) []*ast.Position {
	i := 0
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == lexer.BraceL {
			return nil
		}
		if union && tok.Kind == lexer.Equals {
			break
		}
		// gqlparser positions a definition at its name, so tokens[0] is never the keyword.
		if !union && i > 0 && tok.Kind == lexer.Name && tok.Value == "implements" {
			break
		}
	}

	found := make([]*ast.Position, 0, len(names))
	for i++; i < len(tokens) && len(found) < len(names); i++ {
		tok := tokens[i]
		switch {
		case tok.Kind == lexer.Amp || tok.Kind == lexer.Pipe:
		case tok.Kind == lexer.Name && tok.Value == names[len(found)]:
			pos := tok.Pos
			found = append(found, &pos)
		default:
			return nil
		}
	}
	if len(found) < len(names) {
		return nil
	}
	return found
}
