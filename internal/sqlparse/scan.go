package sqlparse

import "strings"

// Normalize trims surrounding whitespace, strips at most one trailing
// statement terminator, and strips trailing comments. Semicolons inside
// string literals, quoted identifiers, dollar-quoted strings and comments do
// not count as terminators. Any other semicolon means the input holds more
// than one statement and is rejected with *MultiStatementError.
//
// Trailing comments must go because the normalized statement gets embedded in
// larger SQL (FROM (<stmt>) AS subq); a trailing line comment would swallow
// the text appended after it.
func Normalize(sql string) (string, error) {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return "", &ParseError{Message: "empty statement"}
	}

	// end is the offset just past the last token that belongs to the
	// statement itself, so slicing there drops the terminator and anything
	// lexically invisible after it.
	end := 0
	terminated := false
	for l := NewLexer(trimmed); ; {
		tok := l.NextToken()
		if tok.Type == TOKEN_EOF {
			break
		}
		if terminated {
			// Real tokens after a statement terminator: a second statement.
			return "", &MultiStatementError{Pos: tok.Pos}
		}
		if tok.Type == TOKEN_SEMICOLON {
			terminated = true
			continue
		}
		end = tok.End
	}

	trimmed = strings.TrimSpace(trimmed[:end])
	if trimmed == "" {
		return "", &ParseError{Message: "empty statement"}
	}
	return trimmed, nil
}

// clause-ending token types terminate a GROUP BY list at nesting depth zero.
var groupByTerminators = map[TokenType]bool{
	TOKEN_HAVING:    true,
	TOKEN_ORDER:     true,
	TOKEN_LIMIT:     true,
	TOKEN_OFFSET:    true,
	TOKEN_WINDOW:    true,
	TOKEN_UNION:     true,
	TOKEN_INTERSECT: true,
	TOKEN_EXCEPT:    true,
	TOKEN_FETCH:     true,
	TOKEN_FOR:       true,
	TOKEN_SEMICOLON: true,
}

// GroupByColumns extracts the column names referenced in the top-level
// GROUP BY clause of a single SELECT statement. Only plain or qualified
// column references contribute; positional entries (GROUP BY 1) and
// expressions (GROUP BY date_trunc('day', ts)) are skipped. The returned
// slice is never nil.
func GroupByColumns(sql string) ([]string, error) {
	tokens := Tokenize(sql)
	cols := []string{}

	if len(tokens) == 0 || tokens[0].Type == TOKEN_EOF {
		return cols, &ParseError{Message: "empty statement"}
	}
	switch tokens[0].Type {
	case TOKEN_SELECT, TOKEN_WITH, TOKEN_LPAREN:
	default:
		return cols, &ParseError{
			Pos:     tokens[0].Pos,
			Message: "statement does not begin with SELECT or WITH",
		}
	}

	depth := 0
	i := 0
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Type {
		case TOKEN_ILLEGAL:
			return cols, &ParseError{Pos: tok.Pos, Message: tok.Literal}
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
		case TOKEN_GROUP:
			if depth == 0 && i+1 < len(tokens) && tokens[i+1].Type == TOKEN_BY {
				return scanGroupByList(tokens[i+2:]), nil
			}
		case TOKEN_EOF:
			return cols, nil
		}
	}
	return cols, nil
}

// scanGroupByList walks the tokens of a GROUP BY list and collects the
// column name of every entry that is a bare or qualified identifier chain.
func scanGroupByList(tokens []Token) []string {
	cols := []string{}
	depth := 0
	var entry []Token

	flush := func() {
		if name, ok := columnName(entry); ok {
			cols = append(cols, name)
		}
		entry = entry[:0]
	}

	for _, tok := range tokens {
		if depth == 0 {
			switch {
			case tok.Type == TOKEN_EOF || groupByTerminators[tok.Type]:
				flush()
				return cols
			case tok.Type == TOKEN_COMMA:
				flush()
				continue
			}
		}
		switch tok.Type {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
		}
		entry = append(entry, tok)
	}
	flush()
	return cols
}

// columnName reduces an entry to its column name when the entry is an
// identifier chain like col, t.col or schema.t.col. Returns false otherwise.
func columnName(entry []Token) (string, bool) {
	if len(entry) == 0 || len(entry)%2 == 0 {
		return "", false
	}
	for i, tok := range entry {
		if i%2 == 0 {
			if tok.Type != TOKEN_IDENT {
				return "", false
			}
		} else if tok.Type != TOKEN_DOT {
			return "", false
		}
	}
	last := entry[len(entry)-1]
	if last.Quoted {
		return last.Literal, true
	}
	// Unquoted identifiers fold to lowercase, matching the column names the
	// server reports when the statement is described.
	return strings.ToLower(last.Literal), true
}
