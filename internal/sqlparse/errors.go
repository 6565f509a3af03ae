package sqlparse

import "fmt"

// ParseError reports a lexical or structural problem with position information.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// MultiStatementError is returned when the input contains more than one SQL
// statement. The metadata analyzer wraps its input as a subquery, so it accepts
// exactly one SELECT-shaped statement.
type MultiStatementError struct {
	Pos Position
}

func (e *MultiStatementError) Error() string {
	return fmt.Sprintf("multiple SQL statements detected at line %d, column %d: exactly one statement is accepted", e.Pos.Line, e.Pos.Column)
}
