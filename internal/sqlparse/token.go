package sqlparse

import "fmt"

// TokenType identifies the class of a lexical token.
type TokenType int

//nolint:revive // TOKEN_* names follow SQL token conventions
const (
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_IDENT
	TOKEN_NUMBER
	TOKEN_STRING
	TOKEN_PARAM // positional parameter, e.g. $1

	// Punctuation
	TOKEN_COMMA
	TOKEN_DOT
	TOKEN_SEMICOLON
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_OPERATOR

	// Keywords
	TOKEN_SELECT
	TOKEN_FROM
	TOKEN_WHERE
	TOKEN_GROUP
	TOKEN_BY
	TOKEN_HAVING
	TOKEN_ORDER
	TOKEN_LIMIT
	TOKEN_OFFSET
	TOKEN_WINDOW
	TOKEN_UNION
	TOKEN_INTERSECT
	TOKEN_EXCEPT
	TOKEN_FETCH
	TOKEN_FOR
	TOKEN_WITH
	TOKEN_AS
	TOKEN_DISTINCT
	TOKEN_ALL
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:       "EOF",
	TOKEN_ILLEGAL:   "ILLEGAL",
	TOKEN_IDENT:     "IDENT",
	TOKEN_NUMBER:    "NUMBER",
	TOKEN_STRING:    "STRING",
	TOKEN_PARAM:     "PARAM",
	TOKEN_COMMA:     ",",
	TOKEN_DOT:       ".",
	TOKEN_SEMICOLON: ";",
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",
	TOKEN_OPERATOR:  "OPERATOR",
	TOKEN_SELECT:    "SELECT",
	TOKEN_FROM:      "FROM",
	TOKEN_WHERE:     "WHERE",
	TOKEN_GROUP:     "GROUP",
	TOKEN_BY:        "BY",
	TOKEN_HAVING:    "HAVING",
	TOKEN_ORDER:     "ORDER",
	TOKEN_LIMIT:     "LIMIT",
	TOKEN_OFFSET:    "OFFSET",
	TOKEN_WINDOW:    "WINDOW",
	TOKEN_UNION:     "UNION",
	TOKEN_INTERSECT: "INTERSECT",
	TOKEN_EXCEPT:    "EXCEPT",
	TOKEN_FETCH:     "FETCH",
	TOKEN_FOR:       "FOR",
	TOKEN_WITH:      "WITH",
	TOKEN_AS:        "AS",
	TOKEN_DISTINCT:  "DISTINCT",
	TOKEN_ALL:       "ALL",
}

// String returns a readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps lowercase identifiers to keyword token types.
var keywords = map[string]TokenType{
	"select":    TOKEN_SELECT,
	"from":      TOKEN_FROM,
	"where":     TOKEN_WHERE,
	"group":     TOKEN_GROUP,
	"by":        TOKEN_BY,
	"having":    TOKEN_HAVING,
	"order":     TOKEN_ORDER,
	"limit":     TOKEN_LIMIT,
	"offset":    TOKEN_OFFSET,
	"window":    TOKEN_WINDOW,
	"union":     TOKEN_UNION,
	"intersect": TOKEN_INTERSECT,
	"except":    TOKEN_EXCEPT,
	"fetch":     TOKEN_FETCH,
	"for":       TOKEN_FOR,
	"with":      TOKEN_WITH,
	"as":        TOKEN_AS,
	"distinct":  TOKEN_DISTINCT,
	"all":       TOKEN_ALL,
}

// LookupIdent returns the keyword token type for an identifier, or TOKEN_IDENT.
func LookupIdent(lowerIdent string) TokenType {
	if t, ok := keywords[lowerIdent]; ok {
		return t
	}
	return TOKEN_IDENT
}

// Position is a location in the SQL input (1-based line and column).
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token is a single lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position

	// End is the byte offset just past the token's source text.
	End int

	// Quoted is true for identifiers that were double-quoted in the input.
	Quoted bool
}
