// Package sqlparse provides lightweight lexical analysis of PostgreSQL
// statements: statement-terminator detection that is aware of string,
// identifier and comment context, and extraction of GROUP BY column
// references from a single SELECT statement.
//
// It is not a full SQL parser. Expressions are tokenized but not interpreted;
// callers that need column types or result shapes describe the statement
// against a live connection instead.
package sqlparse

import (
	"strings"
	"unicode"
)

// Lexer tokenizes SQL input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. The token's End field is the byte offset
// just past its source text, so input[tok.Pos.Offset:tok.End] covers the token
// without any surrounding whitespace or comments.
func (l *Lexer) NextToken() Token {
	tok := l.scanToken()
	tok.End = l.pos
	return tok
}

func (l *Lexer) scanToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	var tok Token
	tok.Pos = pos

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		tok.Literal = ""
		return tok
	case ',':
		tok = Token{Type: TOKEN_COMMA, Literal: ",", Pos: pos}
	case '.':
		tok = Token{Type: TOKEN_DOT, Literal: ".", Pos: pos}
	case ';':
		tok = Token{Type: TOKEN_SEMICOLON, Literal: ";", Pos: pos}
	case '(':
		tok = Token{Type: TOKEN_LPAREN, Literal: "(", Pos: pos}
	case ')':
		tok = Token{Type: TOKEN_RPAREN, Literal: ")", Pos: pos}
	case '\'':
		lit, ok := l.readString()
		if !ok {
			return Token{Type: TOKEN_ILLEGAL, Literal: "unterminated string literal", Pos: pos}
		}
		return Token{Type: TOKEN_STRING, Literal: lit, Pos: pos}
	case '"':
		lit, ok := l.readQuotedIdentifier()
		if !ok {
			return Token{Type: TOKEN_ILLEGAL, Literal: "unterminated quoted identifier", Pos: pos}
		}
		return Token{Type: TOKEN_IDENT, Literal: lit, Pos: pos, Quoted: true}
	case '$':
		return l.readDollar(pos)
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			lit := l.readIdentifier()
			return Token{Type: LookupIdent(strings.ToLower(lit)), Literal: lit, Pos: pos}
		case isDigit(l.ch):
			return Token{Type: TOKEN_NUMBER, Literal: l.readNumber(), Pos: pos}
		case isOperatorChar(l.ch):
			// One character per token so that comment openers directly after
			// an operator are still recognized on the next NextToken call.
			tok = Token{Type: TOKEN_OPERATOR, Literal: string(l.ch), Pos: pos}
		default:
			tok = Token{Type: TOKEN_ILLEGAL, Literal: string(l.ch), Pos: pos}
		}
	}

	l.readChar()
	return tok
}

// skipWhitespaceAndComments skips whitespace, line comments and block comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			l.skipBlockComment()
			continue
		}

		break
	}
}

// skipBlockComment skips a block comment. PostgreSQL block comments nest.
func (l *Lexer) skipBlockComment() {
	l.readChar() // skip '/'
	l.readChar() // skip '*'

	depth := 1
	for l.ch != 0 && depth > 0 {
		switch {
		case l.ch == '/' && l.peekChar() == '*':
			depth++
			l.readChar()
			l.readChar()
		case l.ch == '*' && l.peekChar() == '/':
			depth--
			l.readChar()
			l.readChar()
		default:
			l.readChar()
		}
	}
}

// readString reads a single-quoted string literal.
// Handles doubled single quotes as escape: 'it''s' -> it's
func (l *Lexer) readString() (string, bool) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		switch {
		case l.ch == 0:
			return result.String(), false
		case l.ch == '\'' && l.peekChar() == '\'':
			result.WriteByte('\'')
			l.readChar()
			l.readChar()
		case l.ch == '\'':
			l.readChar() // skip closing quote
			return result.String(), true
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readQuotedIdentifier reads a double-quoted identifier.
// Handles doubled double quotes as escape: "col""name" -> col"name
func (l *Lexer) readQuotedIdentifier() (string, bool) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		switch {
		case l.ch == 0:
			return result.String(), false
		case l.ch == '"' && l.peekChar() == '"':
			result.WriteByte('"')
			l.readChar()
			l.readChar()
		case l.ch == '"':
			l.readChar() // skip closing quote
			return result.String(), true
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readDollar reads either a positional parameter ($1) or a dollar-quoted
// string ($$...$$, $tag$...$tag$). A bare '$' is an operator character.
func (l *Lexer) readDollar(pos Position) Token {
	if isDigit(l.peekChar()) {
		start := l.pos
		l.readChar() // skip '$'
		for isDigit(l.ch) {
			l.readChar()
		}
		return Token{Type: TOKEN_PARAM, Literal: l.input[start:l.pos], Pos: pos}
	}

	// Scan a possible $tag$ opener.
	tagEnd := l.readPos
	for tagEnd < len(l.input) && (isLetter(l.input[tagEnd]) || l.input[tagEnd] == '_' || isDigit(l.input[tagEnd])) {
		tagEnd++
	}
	if tagEnd >= len(l.input) || l.input[tagEnd] != '$' {
		l.readChar()
		return Token{Type: TOKEN_OPERATOR, Literal: "$", Pos: pos}
	}

	delim := l.input[l.pos : tagEnd+1] // e.g. "$$" or "$body$"
	bodyStart := tagEnd + 1
	end := strings.Index(l.input[bodyStart:], delim)
	if end < 0 {
		// Consume the rest of the input so nothing inside the unterminated
		// quote is misread as statement structure.
		for l.ch != 0 {
			l.readChar()
		}
		return Token{Type: TOKEN_ILLEGAL, Literal: "unterminated dollar-quoted string", Pos: pos}
	}

	body := l.input[bodyStart : bodyStart+end]
	for l.pos < bodyStart+end+len(delim) && l.ch != 0 {
		l.readChar()
	}
	return Token{Type: TOKEN_STRING, Literal: body, Pos: pos}
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

// isLetter returns true if ch is a letter.
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch >= 0x80
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isOperatorChar returns true for characters that form SQL operators.
func isOperatorChar(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '<', '>', '=', '!', '~', '@', '#', '^', '&', '|', '?', ':', '[', ']', '{', '}':
		return true
	}
	return false
}

// Tokenize returns all tokens from the input, ending with TOKEN_EOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens
}
